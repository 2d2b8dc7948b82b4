package craft

import "errors"

var (
	ErrMenuClosed   = errors.New("crafting menu is not open")
	ErrNotBuildable = errors.New("recipe cannot be built from the bench inventory")
)

package game

import "errors"

var (
	ErrPanelClosed = errors.New("no container panel open")
	ErrSplitClosed = errors.New("split panel not open")
	ErrMenuClosed  = errors.New("no crafting menu open")
)

package item

import "errors"

var (
	// ErrInvalidCatalog is returned when a catalog document fails validation.
	ErrInvalidCatalog = errors.New("invalid item catalog")
	// ErrUnknownItem is returned when an item id does not resolve in the catalog.
	ErrUnknownItem = errors.New("unknown item")
)

package item

import "github.com/go-gl/mathgl/mgl32"

// Item is the static definition of an item type.
// Items are created once by the catalog and shared by pointer; two stacks hold
// the same item iff their Item pointers are equal.
type Item struct {
	ID          string
	DisplayName string
	Icon        string // icon path relative to the catalog
	MaxStack    int
	Prefab      Prefab
}

// Prefab describes the physical shape of an item as the set of parts a
// blueprint of it is built from.
type Prefab struct {
	Components []Component
}

// Component is one part of a prefab that must be filled with Required to build it.
type Component struct {
	Name     string
	Required *Item
	Offset   mgl32.Vec3 // local position relative to the prefab root
	Euler    mgl32.Vec3 // local rotation in degrees
	Extents  mgl32.Vec3 // half size of the drop point collider
}

// GetMaxStackSize returns the maximum stack size for this item.
// A missing or invalid definition stacks to one.
func (it *Item) GetMaxStackSize() int {
	if it == nil || it.MaxStack < 1 {
		return 1
	}
	return it.MaxStack
}

// IsRecipe reports whether the item can be built from parts on a crafting bench.
func (it *Item) IsRecipe() bool {
	return it != nil && len(it.Prefab.Components) > 0
}

// RequiredItems returns the distinct items needed by the prefab components,
// in first-seen order.
func (it *Item) RequiredItems() []*Item {
	if it == nil {
		return nil
	}
	seen := make(map[*Item]bool, len(it.Prefab.Components))
	var out []*Item
	for _, c := range it.Prefab.Components {
		if c.Required == nil || seen[c.Required] {
			continue
		}
		seen[c.Required] = true
		out = append(out, c.Required)
	}
	return out
}

func (it *Item) String() string {
	if it == nil {
		return "<none>"
	}
	return it.ID
}

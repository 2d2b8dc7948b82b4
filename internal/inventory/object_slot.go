package inventory

import "github.com/bhaddad5/Scrap-Merchant/internal/item"

// ObjectSlot is a single stack that lives outside any inventory, for example on
// a world object. It follows the same hand rule as an inventory slot.
type ObjectSlot struct {
	stack item.Stack
}

// NewObjectSlot creates an object slot holding s.
func NewObjectSlot(s item.Stack) *ObjectSlot {
	return &ObjectSlot{stack: normalize(s)}
}

// Stack returns the held stack.
func (o *ObjectSlot) Stack() item.Stack { return o.stack }

// Click applies a left click with hand. Other buttons do nothing.
func (o *ObjectSlot) Click(button MouseButton, hand *Hand) bool {
	if button != MouseButtonLeft {
		return false
	}
	return transfer(&o.stack, &hand.Stack)
}

// View returns what the slot widget shows.
func (o *ObjectSlot) View(icons *item.IconSet) View {
	return ViewOf(o.stack, icons)
}

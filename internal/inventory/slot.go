package inventory

import (
	"image"
	"strconv"

	"github.com/bhaddad5/Scrap-Merchant/internal/item"
)

// Slot is the UI-side view of a single inventory slot.
type Slot struct {
	inventory *Inventory
	index     int
	X, Y      int
}

// NewSlot creates a new slot
func NewSlot(inv *Inventory, index, x, y int) *Slot {
	return &Slot{
		inventory: inv,
		index:     index,
		X:         x,
		Y:         y,
	}
}

// Index returns the inventory index this slot shows.
func (s *Slot) Index() int { return s.index }

// Inventory returns the inventory this slot belongs to.
func (s *Slot) Inventory() *Inventory { return s.inventory }

// GetStack returns the item stack in this slot.
func (s *Slot) GetStack() item.Stack {
	if s.inventory == nil {
		return item.Empty()
	}
	return s.inventory.Get(s.index)
}

// TakeToHand moves up to amount items from the slot into the hand.
// If the hand holds a different item, or cannot take everything, the remainder
// goes back into the slot.
func (s *Slot) TakeToHand(amount int, hand *Hand) {
	taken := s.inventory.TakeFromSlot(s.index, amount)
	if taken.IsEmpty() {
		return
	}
	if rest := hand.Add(taken); !rest.IsEmpty() {
		// The slot was just drained by exactly this item, so the rest always fits.
		s.inventory.PlaceInSlot(s.index, rest)
	}
}

// View is what a slot widget shows.
type View struct {
	Icon      image.Image
	ShowIcon  bool
	CountText string
	ShowCount bool
}

// ViewOf builds the view of a stack. The count label is only shown for more than one item.
func ViewOf(s item.Stack, icons *item.IconSet) View {
	if s.IsEmpty() {
		return View{}
	}
	v := View{
		Icon:     icons.Icon(s.Item),
		ShowIcon: true,
	}
	if s.Count > 1 {
		v.CountText = strconv.Itoa(s.Count)
		v.ShowCount = true
	}
	return v
}

// View returns the view of this slot.
func (s *Slot) View(icons *item.IconSet) View {
	return ViewOf(s.GetStack(), icons)
}

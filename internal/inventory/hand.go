package inventory

import "github.com/bhaddad5/Scrap-Merchant/internal/item"

// Hand is what the player is currently carrying in the UI.
// It is the pivot of every slot transfer; the session owns exactly one.
type Hand struct {
	Stack item.Stack
}

// IsEmpty reports whether nothing is carried.
func (h *Hand) IsEmpty() bool {
	return h.Stack.IsEmpty()
}

// Add merges stack into the hand: an empty hand takes it whole, a hand holding
// the same item takes as much as fits. The rest is returned.
func (h *Hand) Add(stack item.Stack) item.Stack {
	if stack.IsEmpty() {
		return item.Empty()
	}
	if h.Stack.IsEmpty() {
		h.Stack = stack
		return item.Empty()
	}
	if !h.Stack.IsItemEqual(stack) {
		return stack
	}
	added := h.Stack.AddUpTo(stack.Count)
	stack.Count -= added
	return normalize(stack)
}

// Take empties the hand and returns what it held.
func (h *Hand) Take() item.Stack {
	s := normalize(h.Stack)
	h.Stack.Clear()
	return s
}

// PlaceInto runs the hand transfer rule against the slot at index of inv.
func (h *Hand) PlaceInto(inv *Inventory, index int) bool {
	return inv.TryPlaceFromHand(index, &h.Stack)
}

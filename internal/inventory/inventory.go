package inventory

import (
	"github.com/bhaddad5/Scrap-Merchant/internal/item"
)

// NoOutputSlot marks an inventory without an output slot.
const NoOutputSlot = -1

// OutputPolicy decides how the hand may interact with the output slot.
type OutputPolicy int

const (
	// OutputSealed rejects every hand interaction with the output slot.
	// Built items leave the output slot only programmatically.
	OutputSealed OutputPolicy = iota
	// OutputTakeOnly lets an empty hand pick up the output slot but never place into it.
	OutputTakeOnly
)

// Event is delivered to subscribers after a mutating operation.
type Event struct {
	Inventory *Inventory
	Slot      int // changed slot, or -1 when several slots changed
}

// Option configures an Inventory at creation.
type Option func(*Inventory)

// WithOutputSlot designates index as the output slot.
func WithOutputSlot(index int) Option {
	return func(inv *Inventory) {
		inv.outputSlot = index
	}
}

// WithOutputPolicy sets how the hand interacts with the output slot.
func WithOutputPolicy(p OutputPolicy) Option {
	return func(inv *Inventory) {
		inv.outputPolicy = p
	}
}

type subscriber struct {
	id uint64
	fn func(Event)
}

// Inventory is a fixed-size ordered collection of item stacks.
// It is owned by a single logical actor and is not safe for concurrent use.
type Inventory struct {
	name         string
	slots        []item.Stack
	outputSlot   int
	outputPolicy OutputPolicy

	subs   []subscriber
	nextID uint64
}

// New creates an inventory with size empty slots.
func New(name string, size int, opts ...Option) *Inventory {
	inv := &Inventory{
		name:       name,
		slots:      make([]item.Stack, size),
		outputSlot: NoOutputSlot,
	}
	for _, opt := range opts {
		opt(inv)
	}
	if inv.outputSlot < NoOutputSlot || inv.outputSlot >= size {
		inv.outputSlot = NoOutputSlot
	}
	return inv
}

// Name returns the inventory name.
func (inv *Inventory) Name() string { return inv.name }

// Size returns the number of slots.
func (inv *Inventory) Size() int { return len(inv.slots) }

// OutputSlot returns the output slot index or NoOutputSlot.
func (inv *Inventory) OutputSlot() int { return inv.outputSlot }

// IsOutputSlot reports whether index is the output slot.
func (inv *Inventory) IsOutputSlot(index int) bool {
	return inv.outputSlot != NoOutputSlot && index == inv.outputSlot
}

// Get returns the stack at index.
func (inv *Inventory) Get(index int) item.Stack {
	return inv.slots[index]
}

// Set replaces the stack at index. Counts above the item's max stack are cut down.
func (inv *Inventory) Set(index int, s item.Stack) {
	inv.slots[index] = capped(s)
	inv.notify(index)
}

// Subscribe registers fn to be called after every change, after all earlier
// subscribers. The returned function removes this subscription only.
func (inv *Inventory) Subscribe(fn func(Event)) (cancel func()) {
	inv.nextID++
	id := inv.nextID
	inv.subs = append(inv.subs, subscriber{id: id, fn: fn})
	return func() {
		for i, s := range inv.subs {
			if s.id == id {
				inv.subs = append(inv.subs[:i:i], inv.subs[i+1:]...)
				return
			}
		}
	}
}

func (inv *Inventory) notify(slot int) {
	if len(inv.subs) == 0 {
		return
	}
	// Snapshot so a subscriber may unsubscribe while being notified.
	subs := make([]subscriber, len(inv.subs))
	copy(subs, inv.subs)
	ev := Event{Inventory: inv, Slot: slot}
	for _, s := range subs {
		s.fn(ev)
	}
}

// TryPlaceFromHand applies the hand transfer rule to the slot at index:
// pick up into an empty hand, drop into an empty slot, merge the same item,
// or swap different items. It reports whether anything changed.
func (inv *Inventory) TryPlaceFromHand(index int, hand *item.Stack) bool {
	slot := inv.slots[index]

	if inv.IsOutputSlot(index) {
		if inv.outputPolicy != OutputTakeOnly || !hand.IsEmpty() || slot.IsEmpty() {
			return false
		}
	}

	if !transfer(&slot, hand) {
		return false
	}
	inv.slots[index] = slot
	inv.notify(index)
	return true
}

// transfer is the four-way hand rule shared by inventory slots and standalone object slots.
func transfer(slot, hand *item.Stack) bool {
	switch {
	case hand.IsEmpty():
		if slot.IsEmpty() {
			return false
		}
		*hand = *slot
		slot.Clear()
	case slot.IsEmpty():
		*slot = *hand
		hand.Clear()
	case slot.IsItemEqual(*hand):
		added := slot.AddUpTo(hand.Count)
		if added == 0 {
			return false
		}
		hand.Count -= added
		if hand.Count <= 0 {
			hand.Clear()
		}
	default:
		*slot, *hand = *hand, *slot
	}
	return true
}

// PlaceInSlot puts stack into the slot at index without hand semantics.
// An empty slot takes up to a full stack; a slot holding the same item takes as
// much as fits. Whatever did not fit is returned and must be handled by the caller.
func (inv *Inventory) PlaceInSlot(index int, stack item.Stack) item.Stack {
	if stack.IsEmpty() {
		return item.Empty()
	}
	slot := inv.slots[index]

	if slot.IsEmpty() {
		inv.slots[index] = stack.Split(stack.Item.GetMaxStackSize())
		inv.notify(index)
		return normalize(stack)
	}
	if !slot.IsItemEqual(stack) {
		return stack
	}

	added := slot.AddUpTo(stack.Count)
	stack.Count -= added
	inv.slots[index] = slot
	inv.notify(index)
	return normalize(stack)
}

// TakeFromSlot removes up to n items from the slot at index.
func (inv *Inventory) TakeFromSlot(index, n int) item.Stack {
	slot := inv.slots[index]
	if slot.IsEmpty() || n <= 0 {
		return item.Empty()
	}
	out := slot.Split(n)
	inv.slots[index] = slot
	inv.notify(index)
	return out
}

// ContainsItem reports whether any slot holds it.
func (inv *Inventory) ContainsItem(it *item.Item) bool {
	if it == nil {
		return false
	}
	for _, s := range inv.slots {
		if !s.IsEmpty() && s.Item == it {
			return true
		}
	}
	return false
}

// CountItem returns the total number of it across all slots.
func (inv *Inventory) CountItem(it *item.Item) int {
	total := 0
	for _, s := range inv.slots {
		if !s.IsEmpty() && s.Item == it {
			total += s.Count
		}
	}
	return total
}

// SlotCanAcceptItem reports whether count of it could be placed into the slot at index.
func (inv *Inventory) SlotCanAcceptItem(index int, it *item.Item, count int) bool {
	s := inv.slots[index]
	return s.IsEmpty() || (s.Item == it && s.Count+count <= s.Item.GetMaxStackSize())
}

// AddItem merges stack into matching slots, then fills empty slots.
// The output slot is never filled. The returned stack holds what did not fit.
func (inv *Inventory) AddItem(stack item.Stack) item.Stack {
	if stack.IsEmpty() {
		return item.Empty()
	}
	changed := false

	for i := range inv.slots {
		if inv.IsOutputSlot(i) {
			continue
		}
		existing := &inv.slots[i]
		if existing.IsEmpty() || !existing.IsItemEqual(stack) {
			continue
		}
		added := existing.AddUpTo(stack.Count)
		if added > 0 {
			stack.Count -= added
			changed = true
		}
		if stack.Count == 0 {
			break
		}
	}

	for stack.Count > 0 {
		empty := inv.FirstEmptySlot()
		if empty < 0 {
			break
		}
		inv.slots[empty] = stack.Split(stack.Item.GetMaxStackSize())
		changed = true
	}

	if changed {
		inv.notify(-1)
	}
	return normalize(stack)
}

// FirstEmptySlot returns the index of the first empty non-output slot, or -1.
func (inv *Inventory) FirstEmptySlot() int {
	for i, s := range inv.slots {
		if s.IsEmpty() && !inv.IsOutputSlot(i) {
			return i
		}
	}
	return -1
}

// Slots returns a copy of all slots.
func (inv *Inventory) Slots() []item.Stack {
	out := make([]item.Stack, len(inv.slots))
	copy(out, inv.slots)
	return out
}

// Restore replaces the slot contents with slots, truncating or padding to the inventory size.
func (inv *Inventory) Restore(slots []item.Stack) {
	for i := range inv.slots {
		if i < len(slots) {
			inv.slots[i] = capped(slots[i])
		} else {
			inv.slots[i] = item.Empty()
		}
	}
	inv.notify(-1)
}

// capped normalizes s and cuts it down to one full stack.
func capped(s item.Stack) item.Stack {
	s = normalize(s)
	if !s.IsEmpty() {
		s.Count = min(s.Count, s.Item.GetMaxStackSize())
	}
	return s
}

func normalize(s item.Stack) item.Stack {
	if s.IsEmpty() {
		return item.Empty()
	}
	return s
}

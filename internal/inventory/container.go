package inventory

// MouseButton represents a mouse button click
type MouseButton int

const (
	MouseButtonLeft   MouseButton = 0
	MouseButtonRight  MouseButton = 1
	MouseButtonMiddle MouseButton = 2
)

// Slot grid layout in panel pixels.
const (
	slotPitch   = 18
	slotMarginX = 8
	slotMarginY = 18
)

// Panel is the logical side of a container window: it lays out the slots of
// one inventory and routes clicks on them through the hand.
type Panel struct {
	Title string
	Slots []*Slot

	inventory *Inventory
	hand      *Hand
	split     *SplitPanel
}

// NewPanel creates a closed panel that transfers through hand and opens split for right clicks.
func NewPanel(hand *Hand, split *SplitPanel) *Panel {
	return &Panel{
		hand:  hand,
		split: split,
	}
}

// Open shows inv with the given title, laid out in rows of columns slots.
// Any previously open inventory is closed first.
func (p *Panel) Open(inv *Inventory, title string, columns int) {
	p.Close()
	if columns <= 0 {
		columns = 9
	}

	p.inventory = inv
	p.Title = title
	p.Slots = make([]*Slot, 0, inv.Size())
	for i := 0; i < inv.Size(); i++ {
		col := i % columns
		row := i / columns
		x := slotMarginX + col*slotPitch
		y := slotMarginY + row*slotPitch
		p.Slots = append(p.Slots, NewSlot(inv, i, x, y))
	}
}

// Close hides the panel and drops its slots.
func (p *Panel) Close() {
	if p.split != nil {
		p.split.Cancel()
	}
	p.inventory = nil
	p.Slots = nil
	p.Title = ""
}

// IsOpen reports whether an inventory is shown.
func (p *Panel) IsOpen() bool {
	return p.inventory != nil
}

// Inventory returns the open inventory, or nil.
func (p *Panel) Inventory() *Inventory {
	return p.inventory
}

// GetSlot returns the slot at index, or nil.
func (p *Panel) GetSlot(index int) *Slot {
	if index >= 0 && index < len(p.Slots) {
		return p.Slots[index]
	}
	return nil
}

// SlotAt returns the slot under panel coordinates (x, y), or nil.
func (p *Panel) SlotAt(x, y int) *Slot {
	const size = 16
	for _, s := range p.Slots {
		if x >= s.X && x < s.X+size && y >= s.Y && y < s.Y+size {
			return s
		}
	}
	return nil
}

// SlotClick handles interactions with a slot.
// It returns true if something happened.
func (p *Panel) SlotClick(slotIndex int, button MouseButton, isDoubleClick bool) bool {
	slot := p.GetSlot(slotIndex)
	if slot == nil {
		return false
	}
	inv := p.inventory

	if isDoubleClick && button == MouseButtonLeft {
		return p.collectIntoHand(slotIndex)
	}

	switch button {
	case MouseButtonLeft:
		return p.hand.PlaceInto(inv, slotIndex)
	case MouseButtonRight:
		if !p.hand.IsEmpty() {
			return p.placeOne(slotIndex)
		}
		stack := slot.GetStack()
		if stack.IsEmpty() || inv.IsOutputSlot(slotIndex) || p.split == nil {
			return false
		}
		p.split.Open(slot, stack.Count)
		return true
	}
	return false
}

// placeOne drops a single item from the hand into the slot.
func (p *Panel) placeOne(slotIndex int) bool {
	inv := p.inventory
	if inv.IsOutputSlot(slotIndex) {
		return false
	}
	if !inv.SlotCanAcceptItem(slotIndex, p.hand.Stack.Item, 1) {
		return false
	}
	one := p.hand.Stack.Split(1)
	if rest := inv.PlaceInSlot(slotIndex, one); !rest.IsEmpty() {
		p.hand.Add(rest)
		return false
	}
	return true
}

// collectIntoHand gathers items matching the hand from every other slot, up to the max stack size.
func (p *Panel) collectIntoHand(clickedSlot int) bool {
	inv := p.inventory
	hand := &p.hand.Stack
	if hand.IsEmpty() {
		return false
	}

	collected := false
	for i := 0; i < inv.Size(); i++ {
		if i == clickedSlot || inv.IsOutputSlot(i) {
			continue
		}
		space := hand.SpaceLeft()
		if space <= 0 {
			break
		}
		s := inv.Get(i)
		if s.IsEmpty() || !s.IsItemEqual(*hand) {
			continue
		}
		taken := inv.TakeFromSlot(i, space)
		hand.Count += taken.Count
		collected = true
	}
	return collected
}

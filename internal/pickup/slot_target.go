package pickup

import (
	"log/slog"

	"github.com/bhaddad5/Scrap-Merchant/internal/inventory"
	"github.com/bhaddad5/Scrap-Merchant/internal/item"

	"github.com/go-gl/mathgl/mgl32"
)

// SlotTarget is a drop point backed by a container inventory slot.
// The output slot only takes freshly built items; other slots only take
// existing items.
type SlotTarget struct {
	Inventory *inventory.Inventory
	Index     int
	Position  mgl32.Vec3
	Rotation  mgl32.Quat

	// Spill receives stacks that fit nowhere. Nil discards them with a warning.
	Spill func(item.Stack)
}

// NewSlotTarget creates a drop point for slot index of inv at pos.
func NewSlotTarget(inv *inventory.Inventory, index int, pos mgl32.Vec3, rot mgl32.Quat) *SlotTarget {
	return &SlotTarget{Inventory: inv, Index: index, Position: pos, Rotation: rot}
}

func (t *SlotTarget) Accepts(it *item.Item, isNew bool) bool {
	if it == nil || t.Inventory == nil {
		return false
	}
	if t.Inventory.IsOutputSlot(t.Index) != isNew {
		return false
	}
	return t.Inventory.SlotCanAcceptItem(t.Index, it, 1)
}

func (t *SlotTarget) Pose() (mgl32.Vec3, mgl32.Quat) {
	return t.Position, t.Rotation
}

// Commit moves one item into the slot. A built item comes from the pickup's
// build function, an existing one is taken out of its source slot, and a
// loose prop is turned into a single item.
func (t *SlotTarget) Commit(p *PickUp) bool {
	if p.IsNew() {
		built := p.Build()
		if built.IsEmpty() {
			return false
		}
		t.spill(t.Inventory.PlaceInSlot(t.Index, built))
		return true
	}

	src := p.Source()
	if !src.Valid() {
		leftover := t.Inventory.PlaceInSlot(t.Index, item.NewStack(p.Item(), 1))
		return leftover.IsEmpty()
	}
	if src.Inventory == t.Inventory && src.Slot == t.Index {
		return false
	}

	if !t.Inventory.SlotCanAcceptItem(t.Index, p.Item(), 1) {
		return false
	}
	moved := src.Inventory.TakeFromSlot(src.Slot, 1)
	if moved.IsEmpty() {
		return false
	}
	if moved.Item != p.Item() {
		t.spill(src.Inventory.PlaceInSlot(src.Slot, moved))
		return false
	}

	leftover := t.Inventory.PlaceInSlot(t.Index, moved)
	if !leftover.IsEmpty() {
		t.spill(src.Inventory.PlaceInSlot(src.Slot, leftover))
	}
	return true
}

func (t *SlotTarget) spill(s item.Stack) {
	if s.IsEmpty() {
		return
	}
	if t.Spill == nil {
		slog.Warn("stack discarded", "inventory", t.Inventory.Name(), "slot", t.Index, "stack", s.String())
		return
	}
	t.Spill(s)
}

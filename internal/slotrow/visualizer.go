package slotrow

import (
	"github.com/bhaddad5/Scrap-Merchant/internal/inventory"
	"github.com/bhaddad5/Scrap-Merchant/internal/item"
	"github.com/bhaddad5/Scrap-Merchant/internal/pickup"
	"github.com/bhaddad5/Scrap-Merchant/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
)

// Layout places the props of one slot in a row.
type Layout struct {
	MaxWidth    float32    // width of a row holding a full stack
	StartOffset mgl32.Vec3 // left end of the row, local to the root
	Euler       mgl32.Vec3 // prop rotation in degrees, local to the root
	Scale       float32
}

// DefaultLayout returns the stock row layout.
func DefaultLayout() Layout {
	return Layout{
		MaxWidth: 0.3,
		Euler:    mgl32.Vec3{0, 30, 0},
		Scale:    1,
	}
}

// Step is the spacing that makes maxStack props span maxWidth.
func Step(maxWidth float32, maxStack int) float32 {
	if maxStack <= 1 {
		return 0
	}
	return maxWidth / float32(maxStack-1)
}

// LocalPositions returns the local position of each of count props.
func (l Layout) LocalPositions(count, maxStack int) []mgl32.Vec3 {
	step := Step(l.MaxWidth, maxStack)
	out := make([]mgl32.Vec3, 0, max(0, count))
	for i := 0; i < count; i++ {
		out = append(out, l.StartOffset.Add(mgl32.Vec3{float32(i) * step, 0, 0}))
	}
	return out
}

// Spawner creates the grabbable props of a row.
type Spawner interface {
	SpawnSlotProp(it *item.Item, pos mgl32.Vec3, rot mgl32.Quat, scale float32, src pickup.Source) pickup.Prop
}

// Visualizer shows the stack in one inventory slot as a row of props, one
// per item. Props are rebuilt when the slot's item or count changes.
type Visualizer struct {
	inv      *inventory.Inventory
	slot     int
	origin   mgl32.Vec3
	rotation mgl32.Quat
	layout   Layout
	spawner  Spawner

	AutoRebuild   bool
	HideWhenEmpty bool

	props     []pickup.Prop
	prevItem  *item.Item
	prevCount int
	visible   bool
	enabled   bool
	cancel    func()
}

// New creates a disabled visualizer for slot of inv rooted at origin.
func New(inv *inventory.Inventory, slot int, origin mgl32.Vec3, rot mgl32.Quat, layout Layout, spawner Spawner) *Visualizer {
	if layout.Scale <= 0 {
		layout.Scale = 1
	}
	return &Visualizer{
		inv:         inv,
		slot:        slot,
		origin:      origin,
		rotation:    rot,
		layout:      layout,
		spawner:     spawner,
		AutoRebuild: true,
		visible:     true,
	}
}

// Enable starts following the slot and forces a rebuild.
func (v *Visualizer) Enable() {
	if v.enabled {
		return
	}
	v.enabled = true
	if v.AutoRebuild && v.inv != nil {
		v.cancel = v.inv.Subscribe(func(ev inventory.Event) {
			if ev.Slot == v.slot || ev.Slot < 0 {
				v.TryRebuild(false)
			}
		})
	}
	v.TryRebuild(true)
}

// Disable stops following the slot and clears the row.
func (v *Visualizer) Disable() {
	if !v.enabled {
		return
	}
	v.enabled = false
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
	v.clear()
}

// TryRebuild rebuilds when forced or when the slot differs from the last
// rebuild. It reports whether a rebuild happened.
func (v *Visualizer) TryRebuild(force bool) bool {
	s := v.stack()
	if !force && s.Item == v.prevItem && s.Count == v.prevCount {
		return false
	}
	v.prevItem = s.Item
	v.prevCount = s.Count
	v.Rebuild()
	return true
}

// Rebuild clears the props this visualizer spawned and spawns the current row.
func (v *Visualizer) Rebuild() {
	defer profiling.Track("slotrow.Rebuild")()
	v.clear()

	s := v.stack()
	if v.HideWhenEmpty {
		v.visible = !s.IsEmpty()
	}
	if s.IsEmpty() || v.spawner == nil {
		return
	}

	rot := v.rotation.Mul(mgl32.AnglesToQuat(
		mgl32.DegToRad(v.layout.Euler.X()),
		mgl32.DegToRad(v.layout.Euler.Y()),
		mgl32.DegToRad(v.layout.Euler.Z()),
		mgl32.XYZ,
	))
	src := pickup.Source{Inventory: v.inv, Slot: v.slot}
	for _, local := range v.layout.LocalPositions(s.Count, s.Item.GetMaxStackSize()) {
		pos := v.origin.Add(v.rotation.Rotate(local))
		v.props = append(v.props, v.spawner.SpawnSlotProp(s.Item, pos, rot, v.layout.Scale, src))
	}
}

func (v *Visualizer) clear() {
	for _, p := range v.props {
		p.Destroy()
	}
	v.props = v.props[:0]
}

func (v *Visualizer) stack() item.Stack {
	if v.inv == nil || v.slot < 0 || v.slot >= v.inv.Size() {
		return item.Empty()
	}
	return v.inv.Get(v.slot)
}

// Props returns the props currently spawned by this visualizer.
func (v *Visualizer) Props() []pickup.Prop {
	out := make([]pickup.Prop, len(v.props))
	copy(out, v.props)
	return out
}

// Visible reports whether the row is shown. Only HideWhenEmpty hides it.
func (v *Visualizer) Visible() bool { return v.visible }

func (v *Visualizer) Enabled() bool { return v.enabled }

func (v *Visualizer) Slot() int { return v.slot }

func (v *Visualizer) Inventory() *inventory.Inventory { return v.inv }

// Origin returns the row root position.
func (v *Visualizer) Origin() mgl32.Vec3 { return v.origin }

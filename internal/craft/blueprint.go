package craft

import (
	"github.com/bhaddad5/Scrap-Merchant/internal/inventory"
	"github.com/bhaddad5/Scrap-Merchant/internal/item"
	"github.com/bhaddad5/Scrap-Merchant/internal/physics"
	"github.com/bhaddad5/Scrap-Merchant/internal/pickup"

	"github.com/go-gl/mathgl/mgl32"
)

// Blueprint is a recipe laid out on a crafting bench. Each component of the
// recipe's prefab becomes a drop point that takes one matching item; once every
// drop point is filled the blueprint completes. Parts only come from the
// bench inventory the blueprint was laid out on.
type Blueprint struct {
	bench    *inventory.Inventory
	recipe   *item.Item
	position mgl32.Vec3
	rotation mgl32.Quat
	scene    *physics.Scene
	slots    []*BlueprintSlot

	completed  bool
	removed    bool
	product    pickup.Prop
	onComplete func(*Blueprint)
}

// BlueprintSlot is the drop point of a single prefab component.
type BlueprintSlot struct {
	blueprint *Blueprint
	component item.Component
	collider  *physics.Collider
	ready     bool
	source    pickup.Source
}

// NewBlueprint lays out recipe at pos on bench and registers one drop point per
// component. onComplete runs once when the last component is filled.
func NewBlueprint(scene *physics.Scene, bench *inventory.Inventory, recipe *item.Item, pos mgl32.Vec3, rot mgl32.Quat, onComplete func(*Blueprint)) *Blueprint {
	b := &Blueprint{
		bench:      bench,
		recipe:     recipe,
		position:   pos,
		rotation:   rot,
		scene:      scene,
		onComplete: onComplete,
	}
	for _, c := range recipe.Prefab.Components {
		s := &BlueprintSlot{blueprint: b, component: c, source: pickup.NoSource}
		center, _ := s.Pose()
		s.collider = scene.Add(physics.LayerDropPoints, physics.NewAABB(center, c.Extents), s)
		b.slots = append(b.slots, s)
	}
	return b
}

func (b *Blueprint) Recipe() *item.Item { return b.recipe }

func (b *Blueprint) Slots() []*BlueprintSlot { return b.slots }

// Pose returns where the finished item appears.
func (b *Blueprint) Pose() (mgl32.Vec3, mgl32.Quat) { return b.position, b.rotation }

func (b *Blueprint) IsComplete() bool { return b.completed }

func (b *Blueprint) IsRemoved() bool { return b.removed }

// SetProduct records the prop standing for the finished item so Remove can clear it.
func (b *Blueprint) SetProduct(p pickup.Prop) { b.product = p }

// CheckBuildComplete completes the blueprint when every slot is ready.
func (b *Blueprint) CheckBuildComplete() bool {
	if b.completed || b.removed {
		return b.completed
	}
	for _, s := range b.slots {
		if !s.ready {
			return false
		}
	}
	b.completed = true
	b.removeColliders()
	if b.onComplete != nil {
		b.onComplete(b)
	}
	return true
}

// CanBuild reports whether every recorded source slot still holds the parts.
func (b *Blueprint) CanBuild() bool {
	if !b.completed || b.removed {
		return false
	}
	need := make(map[pickup.Source]int, len(b.slots))
	for _, s := range b.slots {
		need[s.source]++
	}
	for _, s := range b.slots {
		src := s.source
		if !src.Valid() || src.Inventory != b.bench {
			return false
		}
		st := src.Inventory.Get(src.Slot)
		if st.IsEmpty() || st.Item != s.component.Required || st.Count < need[src] {
			return false
		}
	}
	return true
}

// Build consumes one item from the source slot of every component and returns
// the finished item. It returns an empty stack when the parts are gone.
func (b *Blueprint) Build() item.Stack {
	if !b.CanBuild() {
		return item.Empty()
	}
	sources := make([]pickup.Source, len(b.slots))
	for i, s := range b.slots {
		sources[i] = s.source
	}
	for _, src := range sources {
		src.Inventory.TakeFromSlot(src.Slot, 1)
	}
	return item.NewStack(b.recipe, 1)
}

// Remove takes the blueprint and any unclaimed product out of the world.
func (b *Blueprint) Remove() {
	if b.removed {
		return
	}
	b.removed = true
	b.removeColliders()
	if b.product != nil {
		b.product.Destroy()
		b.product = nil
	}
}

func (b *Blueprint) removeColliders() {
	for _, s := range b.slots {
		if s.collider != nil {
			b.scene.Remove(s.collider.ID)
			s.collider = nil
		}
	}
}

func (s *BlueprintSlot) Component() item.Component { return s.component }

func (s *BlueprintSlot) IsReady() bool { return s.ready }

func (s *BlueprintSlot) Source() pickup.Source { return s.source }

// Accepts takes existing inventory items of the required type only.
func (s *BlueprintSlot) Accepts(it *item.Item, isNew bool) bool {
	b := s.blueprint
	return !isNew && !s.ready && !b.completed && !b.removed &&
		it != nil && it == s.component.Required
}

// Pose places the component relative to the blueprint root.
func (s *BlueprintSlot) Pose() (mgl32.Vec3, mgl32.Quat) {
	b := s.blueprint
	c := s.component
	local := mgl32.AnglesToQuat(mgl32.DegToRad(c.Euler.X()), mgl32.DegToRad(c.Euler.Y()), mgl32.DegToRad(c.Euler.Z()), mgl32.XYZ)
	return b.position.Add(b.rotation.Rotate(c.Offset)), b.rotation.Mul(local)
}

// Commit fills the slot with the held prop, remembering which bench slot the
// part will be taken from when the blueprint is built. Props from any other
// inventory are refused.
func (s *BlueprintSlot) Commit(p *pickup.PickUp) bool {
	src := p.Source()
	if !src.Valid() || src.Inventory != s.blueprint.bench || !s.Accepts(p.Item(), p.IsNew()) {
		return false
	}
	if st := src.Inventory.Get(src.Slot); st.IsEmpty() || st.Item != s.component.Required {
		return false
	}
	s.MarkReady(src)
	return true
}

// MarkReady fills the slot from src and checks whether the blueprint is done.
func (s *BlueprintSlot) MarkReady(src pickup.Source) {
	s.ready = true
	s.source = src
	if s.collider != nil {
		s.collider.Enabled = false
	}
	s.blueprint.CheckBuildComplete()
}

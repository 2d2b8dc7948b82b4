package world_test

import (
	"testing"

	"github.com/bhaddad5/Scrap-Merchant/internal/entity"
	"github.com/bhaddad5/Scrap-Merchant/internal/inventory"
	"github.com/bhaddad5/Scrap-Merchant/internal/item"
	"github.com/bhaddad5/Scrap-Merchant/internal/physics"
	"github.com/bhaddad5/Scrap-Merchant/internal/pickup"
	"github.com/bhaddad5/Scrap-Merchant/internal/slotrow"
	"github.com/bhaddad5/Scrap-Merchant/internal/world"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bolt = &item.Item{ID: "bolt", DisplayName: "Bolt", MaxStack: 5}

type cursorQuery struct {
	scene *physics.Scene
	ray   physics.Ray
}

func (q *cursorQuery) CursorRay(mgl32.Vec2) physics.Ray { return q.ray }

func (q *cursorQuery) Raycast(ray physics.Ray, maxDist float32, mask physics.LayerMask) physics.RaycastResult {
	return q.scene.Raycast(ray, maxDist, mask)
}

func (q *cursorQuery) PointerOverUI() bool { return false }

func above(p mgl32.Vec3) physics.Ray {
	return physics.Ray{Origin: p.Add(mgl32.Vec3{0, 3, 0}), Dir: mgl32.Vec3{0, -1, 0}}
}

func newWorld() (*world.World, *cursorQuery) {
	scene := physics.NewScene()
	q := &cursorQuery{scene: scene}
	return world.New(scene, q, pickup.DefaultSettings(), nil), q
}

func TestWorld_ContainerShowsSlots(t *testing.T) {
	w, _ := newWorld()
	inv := inventory.New("shelf", 2)
	inv.Set(0, item.NewStack(bolt, 3))
	shelf := world.NewContainer("shelf", inv, mgl32.Vec3{0, 0.5, 0}, mgl32.Vec3{0.5, 0.5, 0.5})
	w.AddContainer(shelf)

	require.Len(t, w.Props(), 3)
	require.Len(t, shelf.Visualizers(), 2)
	require.Len(t, shelf.Targets(), 2)
	assert.Same(t, shelf, w.Container("shelf"))
	assert.Nil(t, w.Container("attic"))
	assert.False(t, shelf.IsBench())

	assert.Same(t, shelf, w.ContainerUnder(above(shelf.Position()), 10))
	assert.Nil(t, w.ContainerUnder(above(mgl32.Vec3{5, 0, 0}), 10))

	for _, p := range w.Props() {
		require.NotNil(t, p.PickUp)
		assert.Equal(t, pickup.Source{Inventory: inv, Slot: 0}, p.PickUp.Source())
		assert.True(t, p.Body().Kinematic)
	}
}

func TestWorld_DragPropBetweenSlots(t *testing.T) {
	w, q := newWorld()
	inv := inventory.New("shelf", 2)
	inv.Set(0, item.NewStack(bolt, 3))
	shelf := world.NewContainer("shelf", inv, mgl32.Vec3{0, 0.5, 0}, mgl32.Vec3{0.5, 0.5, 0.5})
	w.AddContainer(shelf)

	prop := w.Props()[0]
	q.ray = above(prop.Position())
	require.Same(t, prop, w.PropUnder(q.ray, 10))
	require.True(t, prop.PickUp.PointerDown(mgl32.Vec2{}))

	q.ray = above(shelf.Targets()[1].Position)
	prop.PickUp.Tick(1, mgl32.Vec2{})
	require.Same(t, shelf.Targets()[1], prop.PickUp.Target())

	assert.Equal(t, pickup.ResultCommitted, prop.PickUp.PointerUp(mgl32.Vec3{}))
	assert.Equal(t, item.NewStack(bolt, 2), inv.Get(0))
	assert.Equal(t, item.NewStack(bolt, 1), inv.Get(1))

	w.Update(1.0 / 60)
	assert.Len(t, w.Props(), 3)
	assert.Equal(t, 3, w.Entities().Len(), "dead props pruned")
	assert.Equal(t, 3, w.Entities().Pruned())
}

type tickEntity struct {
	ticks  int
	dead   bool
	onTick func()
}

func (e *tickEntity) Update(float64) {
	e.ticks++
	if e.onTick != nil {
		e.onTick()
	}
}
func (e *tickEntity) Position() mgl32.Vec3 { return mgl32.Vec3{} }
func (e *tickEntity) IsDead() bool         { return e.dead }
func (e *tickEntity) SetDead()             { e.dead = true }

func TestEntityManager_UpdatePrunesAndTicksNewcomers(t *testing.T) {
	em := world.NewEntityManager()
	late := &tickEntity{}
	dying := &tickEntity{}
	spawner := &tickEntity{}
	spawner.onTick = func() {
		if spawner.ticks == 1 {
			em.Add(late)
		}
	}
	em.Add(spawner)
	em.Add(dying)
	em.Add(nil)
	require.Equal(t, 2, em.Len())

	dying.SetDead()
	assert.Len(t, em.Live(), 1)
	assert.Equal(t, 2, em.Len(), "dead entities stay until the next update")

	em.Update(1.0 / 60)
	assert.Equal(t, 1, late.ticks, "spawned during the pass")
	assert.Zero(t, dying.ticks)
	assert.Equal(t, 2, em.Len())
	assert.Equal(t, 1, em.Pruned())
}

func TestWorld_SpawnStackDropsLooseProps(t *testing.T) {
	w, _ := newWorld()
	props := w.SpawnStack(item.NewStack(bolt, 2), mgl32.Vec3{0, 2, 0})
	require.Len(t, props, 2)
	assert.Nil(t, w.SpawnStack(item.Empty(), mgl32.Vec3{}))

	for _, p := range props {
		assert.False(t, p.Body().Kinematic)
		assert.False(t, p.PickUp.Source().Valid())
	}
	for i := 0; i < 120; i++ {
		w.Update(1.0 / 60)
	}
	assert.InDelta(t, entity.DefaultPropExtent, props[1].Position().Y(), 1e-5)
	assert.InDelta(t, world.SpillSpacing, props[1].Position().X(), 1e-5)
}

func TestWorld_Bench(t *testing.T) {
	w, _ := newWorld()
	pose := world.Pose{Position: mgl32.Vec3{0, 1.2, 0}, Rotation: mgl32.QuatIdent()}
	bench := world.NewContainer("bench", inventory.New("bench", 3, inventory.WithOutputSlot(2)),
		mgl32.Vec3{0, 0.5, 0}, mgl32.Vec3{1, 0.5, 0.5},
		world.WithBuildPose(pose),
		world.WithPointOfView(world.Pose{Position: mgl32.Vec3{0, 2, 1}, Rotation: mgl32.QuatIdent()}),
	)
	w.AddContainer(bench)

	assert.True(t, bench.IsBench())
	pos, _ := bench.BuildPose()
	assert.Equal(t, pose.Position, pos)
	pov, ok := bench.PointOfView()
	require.True(t, ok)
	assert.Equal(t, mgl32.Vec3{0, 2, 1}, pov.Position)

	// Only the output slot drop point takes new items.
	assert.True(t, bench.Targets()[2].Accepts(bolt, true))
	assert.False(t, bench.Targets()[0].Accepts(bolt, true))

	bench.Inventory().Set(0, item.NewStack(bolt, 2))
	before := len(w.Props())
	bench.RebuildVisualizers()
	assert.Len(t, w.Props(), before, "forced rebuild replaces the props")
}

func TestContainer_SlotOrigins(t *testing.T) {
	c := world.NewContainer("shelf", inventory.New("shelf", 3), mgl32.Vec3{0, 0.5, 0}, mgl32.Vec3{0.5, 0.5, 0.5},
		world.WithSlotLayout(slotrow.DefaultLayout(), 0.5))

	assert.Equal(t, mgl32.Vec3{0, 1, -0.5}, c.SlotOrigin(0))
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, c.SlotOrigin(1))
	assert.Equal(t, mgl32.Vec3{0, 1, 0.5}, c.SlotOrigin(2))
	_, ok := c.PointOfView()
	assert.False(t, ok)
}

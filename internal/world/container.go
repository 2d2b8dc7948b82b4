package world

import (
	"github.com/bhaddad5/Scrap-Merchant/internal/inventory"
	"github.com/bhaddad5/Scrap-Merchant/internal/item"
	"github.com/bhaddad5/Scrap-Merchant/internal/physics"
	"github.com/bhaddad5/Scrap-Merchant/internal/pickup"
	"github.com/bhaddad5/Scrap-Merchant/internal/slotrow"

	"github.com/go-gl/mathgl/mgl32"
)

// DefaultRowSpacing is the distance between two slot rows on a container top.
const DefaultRowSpacing = 0.25

// Container is a piece of furniture holding an inventory. Its slots are shown
// as rows of props along its top, each row with a drop point. A container
// with a build pose is a crafting bench.
type Container struct {
	name     string
	inv      *inventory.Inventory
	position mgl32.Vec3
	extents  mgl32.Vec3

	pov       *Pose
	buildPose *Pose

	layout     slotrow.Layout
	rowSpacing float32

	collider    *physics.Collider
	visualizers []*slotrow.Visualizer
	targets     []*pickup.SlotTarget
}

// ContainerOption configures a Container.
type ContainerOption func(*Container)

// WithPointOfView moves the camera to pose while the container is open.
func WithPointOfView(pose Pose) ContainerOption {
	return func(c *Container) { c.pov = &pose }
}

// WithBuildPose makes the container a crafting bench laying out blueprints at pose.
func WithBuildPose(pose Pose) ContainerOption {
	return func(c *Container) { c.buildPose = &pose }
}

// WithSlotLayout sets how slot rows are laid out.
func WithSlotLayout(layout slotrow.Layout, rowSpacing float32) ContainerOption {
	return func(c *Container) {
		c.layout = layout
		if rowSpacing > 0 {
			c.rowSpacing = rowSpacing
		}
	}
}

// NewContainer creates a container centred on pos with half size extents.
func NewContainer(name string, inv *inventory.Inventory, pos, extents mgl32.Vec3, opts ...ContainerOption) *Container {
	layout := slotrow.DefaultLayout()
	layout.StartOffset = mgl32.Vec3{-layout.MaxWidth / 2, 0, 0}
	c := &Container{
		name:       name,
		inv:        inv,
		position:   pos,
		extents:    extents,
		layout:     layout,
		rowSpacing: DefaultRowSpacing,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Container) Name() string { return c.name }

func (c *Container) Inventory() *inventory.Inventory { return c.inv }

func (c *Container) Position() mgl32.Vec3 { return c.position }

func (c *Container) IsBench() bool { return c.buildPose != nil }

// PointOfView returns the camera pose used while the container is open.
func (c *Container) PointOfView() (Pose, bool) {
	if c.pov == nil {
		return Pose{}, false
	}
	return *c.pov, true
}

// BuildPose returns where blueprints are laid out: the configured pose for a
// bench, the middle of the top otherwise.
func (c *Container) BuildPose() (mgl32.Vec3, mgl32.Quat) {
	if c.buildPose != nil {
		return c.buildPose.Position, c.buildPose.Rotation
	}
	return c.top(), mgl32.QuatIdent()
}

// RebuildVisualizers forces every slot row to respawn its props.
func (c *Container) RebuildVisualizers() {
	for _, v := range c.visualizers {
		v.TryRebuild(true)
	}
}

func (c *Container) Visualizers() []*slotrow.Visualizer { return c.visualizers }

// Targets returns the drop point of each slot, indexed by slot.
func (c *Container) Targets() []*pickup.SlotTarget { return c.targets }

// SlotOrigin returns the root of the row showing slot i.
func (c *Container) SlotOrigin(i int) mgl32.Vec3 {
	n := c.inv.Size()
	z := (float32(i) - float32(n-1)/2) * c.rowSpacing
	return c.top().Add(mgl32.Vec3{0, 0, z})
}

func (c *Container) top() mgl32.Vec3 {
	return c.position.Add(mgl32.Vec3{0, c.extents.Y(), 0})
}

func (c *Container) attach(w *World) {
	c.collider = w.scene.Add(physics.LayerInteract, physics.NewAABB(c.position, c.extents), c)

	spillAt := c.top().Add(mgl32.Vec3{0, 0.5, 0})
	half := mgl32.Vec3{c.layout.MaxWidth/2 + 0.05, 0.1, c.rowSpacing * 0.45}
	for i := 0; i < c.inv.Size(); i++ {
		origin := c.SlotOrigin(i)

		v := slotrow.New(c.inv, i, origin, mgl32.QuatIdent(), c.layout, w)
		v.Enable()
		c.visualizers = append(c.visualizers, v)

		mid := origin.Add(c.layout.StartOffset).Add(mgl32.Vec3{c.layout.MaxWidth / 2, 0, 0})
		t := pickup.NewSlotTarget(c.inv, i, mid, mgl32.QuatIdent())
		t.Spill = func(s item.Stack) { w.SpawnStack(s, spillAt) }
		w.scene.Add(physics.LayerDropPoints, physics.NewAABB(mid, half), t)
		c.targets = append(c.targets, t)
	}
}

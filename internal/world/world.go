package world

import (
	"log/slog"

	"github.com/bhaddad5/Scrap-Merchant/internal/entity"
	"github.com/bhaddad5/Scrap-Merchant/internal/item"
	"github.com/bhaddad5/Scrap-Merchant/internal/physics"
	"github.com/bhaddad5/Scrap-Merchant/internal/pickup"

	"github.com/go-gl/mathgl/mgl32"
)

// SpillSpacing is the gap between loose props spawned from one stack.
const SpillSpacing = 0.3

// Pose is a position and orientation in world space.
type Pose struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
}

// World holds the props and containers of a scene.
type World struct {
	scene      *physics.Scene
	entities   *EntityManager
	query      pickup.SpatialQuery
	settings   pickup.Settings
	containers []*Container
	log        *slog.Logger
}

// New creates an empty world. query is handed to every pickup the world creates.
func New(scene *physics.Scene, query pickup.SpatialQuery, settings pickup.Settings, logger *slog.Logger) *World {
	if logger == nil {
		logger = slog.Default()
	}
	return &World{
		scene:    scene,
		entities: NewEntityManager(),
		query:    query,
		settings: settings,
		log:      logger,
	}
}

func (w *World) Scene() *physics.Scene { return w.scene }

func (w *World) Entities() *EntityManager { return w.entities }

// PropOptions configure a spawned prop.
type PropOptions struct {
	Extents   mgl32.Vec3
	Scale     float32
	Kinematic bool
	Source    pickup.Source
	// Build marks the prop as a freshly built item.
	Build func() item.Stack
}

// SpawnProp creates a grabbable prop for it.
func (w *World) SpawnProp(it *item.Item, pos mgl32.Vec3, rot mgl32.Quat, opts PropOptions) *entity.Prop {
	p := entity.NewProp(w.scene, it, pos, rot, opts.Extents, opts.Scale)
	if opts.Kinematic {
		p.Body().Kinematic = true
		p.Body().UseGravity = false
	}

	pk := pickup.New(p, w.query, w.settings)
	if opts.Source.Inventory != nil {
		pk.SetSource(opts.Source)
	}
	if opts.Build != nil {
		pk.MarkNew(opts.Build)
	}
	p.PickUp = pk

	w.entities.Add(p)
	return p
}

// SpawnSlotProp spawns a kinematic prop standing for one item of src.
func (w *World) SpawnSlotProp(it *item.Item, pos mgl32.Vec3, rot mgl32.Quat, scale float32, src pickup.Source) pickup.Prop {
	return w.SpawnProp(it, pos, rot, PropOptions{Scale: scale, Kinematic: true, Source: src})
}

// SpawnBuilt spawns the finished item of a blueprint.
func (w *World) SpawnBuilt(it *item.Item, pos mgl32.Vec3, rot mgl32.Quat, build func() item.Stack) pickup.Prop {
	return w.SpawnProp(it, pos, rot, PropOptions{Kinematic: true, Build: build})
}

// SpawnStack drops a stack into the world as loose props, one per item.
func (w *World) SpawnStack(s item.Stack, pos mgl32.Vec3) []*entity.Prop {
	if s.IsEmpty() {
		return nil
	}
	out := make([]*entity.Prop, 0, s.Count)
	for i := 0; i < s.Count; i++ {
		at := pos.Add(mgl32.Vec3{float32(i) * SpillSpacing, 0, 0})
		out = append(out, w.SpawnProp(s.Item, at, mgl32.QuatIdent(), PropOptions{}))
	}
	w.log.Info("stack spilled into world", "item", s.Item.ID, "count", s.Count)
	return out
}

// Props returns every live prop.
func (w *World) Props() []*entity.Prop {
	var out []*entity.Prop
	for _, e := range w.entities.Live() {
		if p, ok := e.(*entity.Prop); ok {
			out = append(out, p)
		}
	}
	return out
}

// PropUnder returns the nearest grabbable prop hit by ray.
func (w *World) PropUnder(ray physics.Ray, maxDist float32) *entity.Prop {
	res := w.scene.Raycast(ray, maxDist, physics.Mask(physics.LayerProps))
	if !res.Hit {
		return nil
	}
	p, _ := res.Collider.Owner.(*entity.Prop)
	return p
}

// ContainerUnder returns the nearest container hit by ray.
func (w *World) ContainerUnder(ray physics.Ray, maxDist float32) *Container {
	res := w.scene.Raycast(ray, maxDist, physics.Mask(physics.LayerInteract))
	if !res.Hit {
		return nil
	}
	c, _ := res.Collider.Owner.(*Container)
	return c
}

// AddContainer places c in the world and starts showing its slots.
func (w *World) AddContainer(c *Container) {
	c.attach(w)
	w.containers = append(w.containers, c)
	w.log.Debug("container added", "name", c.Name(), "slots", c.Inventory().Size(), "bench", c.IsBench())
}

// Containers returns the containers in the order they were added.
func (w *World) Containers() []*Container {
	out := make([]*Container, len(w.containers))
	copy(out, w.containers)
	return out
}

// Container returns the container with the given name, or nil.
func (w *World) Container(name string) *Container {
	for _, c := range w.containers {
		if c.Name() == name {
			return c
		}
	}
	return nil
}

// Update advances every prop.
func (w *World) Update(dt float64) {
	w.entities.Update(dt)
}

package physics

import (
	"github.com/bhaddad5/Scrap-Merchant/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	MinReachDistance = 0.1
	MaxReachDistance = 5.0
)

// Layer is a collision layer index.
type Layer uint8

const (
	LayerDefault Layer = iota
	// LayerProps holds grabbable item props.
	LayerProps
	// LayerDropPoints holds blueprint slots and container slots a held prop can snap onto.
	LayerDropPoints
	// LayerInteract holds world containers the player can open.
	LayerInteract
)

// LayerMask selects a set of layers.
type LayerMask uint32

// MaskAll selects every layer.
const MaskAll LayerMask = ^LayerMask(0)

// Mask returns the mask selecting the given layers.
func Mask(layers ...Layer) LayerMask {
	var m LayerMask
	for _, l := range layers {
		m |= 1 << l
	}
	return m
}

// Has reports whether l is selected.
func (m LayerMask) Has(l Layer) bool {
	return m&(1<<l) != 0
}

// ColliderID identifies a collider in a scene.
type ColliderID uint64

// Collider is a box on a layer. Owner points back at the game object it belongs to.
type Collider struct {
	ID      ColliderID
	Layer   Layer
	Bounds  AABB
	Owner   any
	Enabled bool
}

// RaycastResult stores the result of a raycast operation
type RaycastResult struct {
	Collider *Collider
	Point    mgl32.Vec3
	Distance float32
	Hit      bool
}

// Scene is a flat set of colliders that can be queried with rays.
// It is not safe for concurrent use.
type Scene struct {
	colliders []*Collider
	nextID    ColliderID
}

// NewScene creates an empty scene.
func NewScene() *Scene {
	return &Scene{}
}

// Add registers a collider and returns it.
func (s *Scene) Add(layer Layer, bounds AABB, owner any) *Collider {
	s.nextID++
	c := &Collider{
		ID:      s.nextID,
		Layer:   layer,
		Bounds:  bounds,
		Owner:   owner,
		Enabled: true,
	}
	s.colliders = append(s.colliders, c)
	return c
}

// Remove unregisters the collider with id. Unknown ids are ignored.
func (s *Scene) Remove(id ColliderID) {
	for i, c := range s.colliders {
		if c.ID == id {
			s.colliders = append(s.colliders[:i], s.colliders[i+1:]...)
			return
		}
	}
}

// Len returns the number of registered colliders.
func (s *Scene) Len() int {
	return len(s.colliders)
}

// Raycast returns the nearest enabled collider on a masked layer hit within maxDist.
// Ties keep the collider registered first.
func (s *Scene) Raycast(ray Ray, maxDist float32, mask LayerMask) RaycastResult {
	defer profiling.Track("physics.Raycast")()

	result := RaycastResult{Hit: false}
	for _, c := range s.colliders {
		if !c.Enabled || !mask.Has(c.Layer) {
			continue
		}
		t, ok := ray.IntersectAABB(c.Bounds)
		if !ok || t > maxDist {
			continue
		}
		if !result.Hit || t < result.Distance {
			result = RaycastResult{
				Collider: c,
				Point:    ray.At(t),
				Distance: t,
				Hit:      true,
			}
		}
	}
	return result
}

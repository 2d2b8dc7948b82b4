package entity

import (
	"github.com/bhaddad5/Scrap-Merchant/internal/item"
	"github.com/bhaddad5/Scrap-Merchant/internal/physics"
	"github.com/bhaddad5/Scrap-Merchant/internal/pickup"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// FloorY is the height of the world floor props come to rest on.
	FloorY = 0.0

	// Half size of a prop without its own extents.
	DefaultPropExtent = 0.125
)

// Prop is a physical item in the world. It owns a body and a collider on the
// props layer whose owner is the prop itself.
type Prop struct {
	def      *item.Item
	body     *physics.Body
	extents  mgl32.Vec3
	scale    float32
	scene    *physics.Scene
	collider *physics.Collider
	dead     bool

	// PickUp lets the player drag the prop; nil for props that cannot be grabbed.
	PickUp *pickup.PickUp
}

// NewProp creates a prop for def at pos and registers its collider in scene.
// Extents are half sizes before scaling; zero extents use DefaultPropExtent.
func NewProp(scene *physics.Scene, def *item.Item, pos mgl32.Vec3, rot mgl32.Quat, extents mgl32.Vec3, scale float32) *Prop {
	if extents == (mgl32.Vec3{}) {
		extents = mgl32.Vec3{DefaultPropExtent, DefaultPropExtent, DefaultPropExtent}
	}
	if scale <= 0 {
		scale = 1
	}
	body := physics.NewBody(pos)
	body.Rotation = rot

	p := &Prop{
		def:     def,
		body:    body,
		extents: extents,
		scale:   scale,
		scene:   scene,
	}
	p.collider = scene.Add(physics.LayerProps, p.Bounds(), p)
	return p
}

// Update advances the body and keeps the collider on it.
func (p *Prop) Update(dt float64) {
	if p.dead {
		return
	}
	p.body.Step(dt, FloorY+p.extents.Y()*p.scale)
	p.collider.Bounds = p.Bounds()
}

// Bounds returns the world space box of the prop.
func (p *Prop) Bounds() physics.AABB {
	return physics.NewAABB(p.body.Position, p.extents.Mul(p.scale))
}

func (p *Prop) Position() mgl32.Vec3 { return p.body.Position }

func (p *Prop) Rotation() mgl32.Quat { return p.body.Rotation }

func (p *Prop) Body() *physics.Body { return p.body }

func (p *Prop) Item() *item.Item { return p.def }

func (p *Prop) Scale() float32 { return p.scale }

func (p *Prop) Collider() *physics.Collider { return p.collider }

func (p *Prop) IsDead() bool { return p.dead }

func (p *Prop) SetDead() { p.Destroy() }

// Destroy removes the prop from the scene. A held prop is let go first.
// Destroying twice is a no-op.
func (p *Prop) Destroy() {
	if p.dead {
		return
	}
	p.dead = true
	if p.PickUp != nil {
		p.PickUp.Disable()
	}
	p.scene.Remove(p.collider.ID)
}

package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Tuned to feel right with a variable dt rather than a fixed tick.
const (
	Gravity        = 18.0
	AirDrag        = 0.98 // per 1/20 s
	GroundFriction = 0.6  // per 1/20 s
)

// Constraints restrict how a body may move.
type Constraints uint8

const (
	FreezeNone     Constraints = 0
	FreezeRotation Constraints = 1 << iota
	FreezePosition
)

// Flags are the physics settings a held prop overrides and later restores.
type Flags struct {
	UseGravity  bool
	Kinematic   bool
	Constraints Constraints
}

// Body is a simple rigid body: a position, an orientation and a velocity.
type Body struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Velocity mgl32.Vec3
	OnGround bool
	Flags
}

// NewBody creates a dynamic body at pos with gravity enabled.
func NewBody(pos mgl32.Vec3) *Body {
	return &Body{
		Position: pos,
		Rotation: mgl32.QuatIdent(),
		Flags:    Flags{UseGravity: true},
	}
}

// AddImpulse changes the velocity of a dynamic body. Kinematic bodies ignore it.
func (b *Body) AddImpulse(v mgl32.Vec3) {
	if b.Kinematic || b.Constraints&FreezePosition != 0 {
		return
	}
	b.Velocity = b.Velocity.Add(v)
	b.OnGround = false
}

// Step advances a dynamic body by dt seconds and keeps it above floorY.
// Kinematic bodies are moved by their owner and are left untouched.
func (b *Body) Step(dt float64, floorY float32) {
	if b.Kinematic || b.Constraints&FreezePosition != 0 {
		return
	}

	if b.UseGravity {
		b.Velocity = b.Velocity.Sub(mgl32.Vec3{0, Gravity * float32(dt), 0})
	}

	// Adjust per-tick drag for dt: pow(0.98, dt*20)
	b.Velocity = b.Velocity.Mul(float32(math.Pow(AirDrag, dt*20)))

	next := b.Position.Add(b.Velocity.Mul(float32(dt)))
	if next.Y() <= floorY {
		next[1] = floorY
		if b.Velocity.Y() < 0 {
			b.Velocity[1] = 0
		}
		b.OnGround = true
	} else {
		b.OnGround = false
	}
	b.Position = next

	if b.OnGround {
		f := float32(math.Pow(GroundFriction, dt*20))
		b.Velocity = mgl32.Vec3{b.Velocity.X() * f, b.Velocity.Y(), b.Velocity.Z() * f}
	}
}

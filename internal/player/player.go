package player

import (
	"math"

	"github.com/bhaddad5/Scrap-Merchant/internal/input"
	"github.com/bhaddad5/Scrap-Merchant/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	EyeHeight   = 1.62
	WalkSpeed   = 3.0 // units per second
	Sensitivity = 1.0
)

// Player is a walking first-person camera.
type Player struct {
	Camera      Camera
	Speed       float32
	Sensitivity float32

	movementEnabled bool
}

// New creates a player standing at feet.
func New(feet mgl32.Vec3) *Player {
	return &Player{
		Camera:          NewCamera(feet.Add(mgl32.Vec3{0, EyeHeight, 0})),
		Speed:           WalkSpeed,
		Sensitivity:     Sensitivity,
		movementEnabled: true,
	}
}

// SetMovementEnabled freezes or releases walking and looking.
func (p *Player) SetMovementEnabled(enabled bool) {
	p.movementEnabled = enabled
}

func (p *Player) MovementEnabled() bool { return p.movementEnabled }

// Update applies look and WASD movement on the horizontal plane.
func (p *Player) Update(dt float64, im *input.InputManager) {
	defer profiling.Track("player.Update")()
	if !p.movementEnabled {
		return
	}

	look := im.Look()
	p.Camera.Look(look.X()*p.Sensitivity, look.Y()*p.Sensitivity)

	forward := float32(0)
	strafe := float32(0)
	if im.IsActive(input.ActionMoveForward) {
		forward += 1
	}
	if im.IsActive(input.ActionMoveBackward) {
		forward -= 1
	}
	if im.IsActive(input.ActionMoveLeft) {
		strafe -= 1
	}
	if im.IsActive(input.ActionMoveRight) {
		strafe += 1
	}
	if forward == 0 && strafe == 0 {
		return
	}

	yawRad := float64(mgl32.DegToRad(p.Camera.Yaw))
	front := mgl32.Vec3{float32(math.Cos(yawRad)), 0, float32(math.Sin(yawRad))}
	right := mgl32.Vec3{float32(math.Cos(yawRad + math.Pi/2)), 0, float32(math.Sin(yawRad + math.Pi/2))}

	move := front.Mul(forward).Add(right.Mul(strafe)).Normalize()
	p.Camera.Position = p.Camera.Position.Add(move.Mul(p.Speed * float32(dt)))
}

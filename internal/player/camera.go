package player

import (
	"math"

	"github.com/bhaddad5/Scrap-Merchant/internal/physics"
	"github.com/bhaddad5/Scrap-Merchant/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	DefaultFov    = 70.0
	DefaultAspect = 16.0 / 9.0
	MaxPitch      = 89.0
)

// Camera is a yaw/pitch camera. Angles are in degrees; yaw -90 looks down -Z.
type Camera struct {
	Position mgl32.Vec3
	Yaw      float32
	Pitch    float32
	Fov      float32
	Aspect   float32
}

func NewCamera(pos mgl32.Vec3) Camera {
	return Camera{Position: pos, Yaw: -90, Fov: DefaultFov, Aspect: DefaultAspect}
}

func (c *Camera) Front() mgl32.Vec3 {
	y := float64(mgl32.DegToRad(c.Yaw))
	pt := float64(mgl32.DegToRad(c.Pitch))
	fx := float32(math.Cos(y) * math.Cos(pt))
	fy := float32(math.Sin(pt))
	fz := float32(math.Sin(y) * math.Cos(pt))
	return mgl32.Vec3{fx, fy, fz}.Normalize()
}

func (c *Camera) Right() mgl32.Vec3 {
	return c.Front().Cross(mgl32.Vec3{0, 1, 0}).Normalize()
}

func (c *Camera) Up() mgl32.Vec3 {
	return c.Right().Cross(c.Front()).Normalize()
}

// Look turns the camera. Pitch is clamped short of straight up/down.
func (c *Camera) Look(yaw, pitch float32) {
	c.Yaw += yaw
	c.Pitch = mgl32.Clamp(c.Pitch+pitch, -MaxPitch, MaxPitch)
}

// SetPose places the camera at pose, facing the pose's -Z axis.
func (c *Camera) SetPose(pose world.Pose) {
	c.Position = pose.Position
	f := pose.Rotation.Rotate(mgl32.Vec3{0, 0, -1}).Normalize()
	c.Pitch = mgl32.Clamp(mgl32.RadToDeg(float32(math.Asin(float64(f.Y())))), -MaxPitch, MaxPitch)
	c.Yaw = mgl32.RadToDeg(float32(math.Atan2(float64(f.Z()), float64(f.X()))))
}

// CursorRay returns the ray through cursor, given in normalised device coordinates.
func (c *Camera) CursorRay(cursor mgl32.Vec2) physics.Ray {
	fov, aspect := c.Fov, c.Aspect
	if fov <= 0 {
		fov = DefaultFov
	}
	if aspect <= 0 {
		aspect = DefaultAspect
	}
	tan := float32(math.Tan(float64(mgl32.DegToRad(fov)) / 2))
	dir := c.Front().
		Add(c.Right().Mul(cursor.X() * tan * aspect)).
		Add(c.Up().Mul(cursor.Y() * tan))
	return physics.Ray{Origin: c.Position, Dir: dir.Normalize()}
}

func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Front()), mgl32.Vec3{0, 1, 0})
}

func (c *Camera) ProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.Fov), c.Aspect, 0.05, 100)
}

package entity

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Entity is anything the world ticks once per frame.
type Entity interface {
	Update(dt float64)
	Position() mgl32.Vec3
	IsDead() bool
	SetDead()
}

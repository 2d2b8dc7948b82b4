package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// AABB is an axis aligned bounding box.
type AABB struct {
	Min, Max mgl32.Vec3
}

// NewAABB returns the box centred on center with the given half extents.
func NewAABB(center, extents mgl32.Vec3) AABB {
	return AABB{Min: center.Sub(extents), Max: center.Add(extents)}
}

// Center returns the box centre.
func (b AABB) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Contains reports whether p lies inside the box (inclusive).
func (b AABB) Contains(p mgl32.Vec3) bool {
	return p.X() >= b.Min.X() && p.X() <= b.Max.X() &&
		p.Y() >= b.Min.Y() && p.Y() <= b.Max.Y() &&
		p.Z() >= b.Min.Z() && p.Z() <= b.Max.Z()
}

// Intersects reports whether two boxes overlap.
func (b AABB) Intersects(o AABB) bool {
	return b.Max.X() >= o.Min.X() && b.Min.X() <= o.Max.X() &&
		b.Max.Y() >= o.Min.Y() && b.Min.Y() <= o.Max.Y() &&
		b.Max.Z() >= o.Min.Z() && b.Min.Z() <= o.Max.Z()
}

// Ray is a half line starting at Origin. Dir is expected to be normalised.
type Ray struct {
	Origin mgl32.Vec3
	Dir    mgl32.Vec3
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}

// IntersectAABB returns the entry distance of the ray into b using the slab method.
// A ray starting inside the box hits at distance zero.
func (r Ray) IntersectAABB(b AABB) (float32, bool) {
	tMin := float32(0)
	tMax := float32(math.MaxFloat32)

	for axis := 0; axis < 3; axis++ {
		o := r.Origin[axis]
		d := r.Dir[axis]
		if d > -1e-8 && d < 1e-8 {
			// Parallel to the slab: miss unless the origin is between the planes.
			if o < b.Min[axis] || o > b.Max[axis] {
				return 0, false
			}
			continue
		}
		inv := 1 / d
		t1 := (b.Min[axis] - o) * inv
		t2 := (b.Max[axis] - o) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = max(tMin, t1)
		tMax = min(tMax, t2)
		if tMin > tMax {
			return 0, false
		}
	}
	return tMin, true
}

// IntersectPlaneY returns where the ray crosses the horizontal plane at height y.
// Rays parallel to the plane or pointing away from it miss.
func (r Ray) IntersectPlaneY(y float32) (mgl32.Vec3, bool) {
	d := r.Dir.Y()
	if d > -1e-6 && d < 1e-6 {
		return mgl32.Vec3{}, false
	}
	t := (y - r.Origin.Y()) / d
	if t < 0 {
		return mgl32.Vec3{}, false
	}
	p := r.At(t)
	p[1] = y // exact height, no float drift
	return p, true
}

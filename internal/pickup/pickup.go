package pickup

import (
	"github.com/bhaddad5/Scrap-Merchant/internal/inventory"
	"github.com/bhaddad5/Scrap-Merchant/internal/item"
	"github.com/bhaddad5/Scrap-Merchant/internal/physics"
	"github.com/bhaddad5/Scrap-Merchant/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
)

// SpatialQuery is what a pickup needs from the 3D world.
type SpatialQuery interface {
	// CursorRay returns the camera ray through the cursor position.
	CursorRay(cursor mgl32.Vec2) physics.Ray
	Raycast(ray physics.Ray, maxDist float32, mask physics.LayerMask) physics.RaycastResult
	// PointerOverUI reports whether a UI element would swallow a click.
	PointerOverUI() bool
}

// SnapTarget is a drop point a held prop can snap onto.
// Drop point colliders carry their SnapTarget as the collider owner.
type SnapTarget interface {
	Accepts(it *item.Item, isNew bool) bool
	Pose() (mgl32.Vec3, mgl32.Quat)
	// Commit hands the held item over to the target. Returning false turns
	// the release into an ordinary drop.
	Commit(p *PickUp) bool
}

// Prop is the physical object being dragged.
type Prop interface {
	Body() *physics.Body
	Item() *item.Item
	Destroy()
}

// Source is the inventory slot a prop stands for.
type Source struct {
	Inventory *inventory.Inventory
	Slot      int
}

// NoSource is used for loose props that do not stand for any inventory slot.
var NoSource = Source{Slot: -1}

// Valid reports whether the source points at an existing slot.
func (s Source) Valid() bool {
	return s.Inventory != nil && s.Slot >= 0 && s.Slot < s.Inventory.Size()
}

// Settings tune how a held prop follows the cursor.
type Settings struct {
	FollowLerp              float32 // higher is snappier
	FreezeRotationWhileHeld bool
	DropForwardImpulse      float32 // 0 drops in place
	SnapRange               float32 // length of the drop point ray
}

// DefaultSettings returns the stock pickup tuning.
func DefaultSettings() Settings {
	return Settings{
		FollowLerp:              18,
		FreezeRotationWhileHeld: true,
		SnapRange:               10,
	}
}

// State of a pickup.
type State int

const (
	Idle State = iota
	Held
)

func (s State) String() string {
	if s == Held {
		return "held"
	}
	return "idle"
}

// Result describes how a release ended.
type Result int

const (
	ResultNone Result = iota
	ResultDropped
	ResultCommitted
)

// PickUp drags a prop along a horizontal plane under the cursor and snaps it
// onto matching drop points. A release over a snap target commits the prop
// there; any other release restores the prop's physics.
type PickUp struct {
	prop     Prop
	query    SpatialQuery
	settings Settings

	state       State
	planeHeight float32
	grabOffset  mgl32.Vec2 // XZ offset from the cursor hit to the prop
	target      SnapTarget
	saved       physics.Flags
	homePos     mgl32.Vec3
	homeRot     mgl32.Quat

	source Source
	build  func() item.Stack
}

// New creates an idle pickup for prop.
func New(prop Prop, query SpatialQuery, settings Settings) *PickUp {
	if settings.FollowLerp <= 0 {
		settings.FollowLerp = DefaultSettings().FollowLerp
	}
	if settings.SnapRange <= 0 {
		settings.SnapRange = DefaultSettings().SnapRange
	}
	return &PickUp{
		prop:     prop,
		query:    query,
		settings: settings,
		source:   NoSource,
	}
}

// SetSource records the inventory slot the prop was spawned from.
func (p *PickUp) SetSource(src Source) { p.source = src }

// Source returns the inventory slot the prop was spawned from.
func (p *PickUp) Source() Source { return p.source }

// MarkNew flags the prop as a freshly built item. build produces the stack
// that is placed when the prop is committed, or an empty stack if building
// is no longer possible.
func (p *PickUp) MarkNew(build func() item.Stack) { p.build = build }

// IsNew reports whether the prop is a freshly built item.
func (p *PickUp) IsNew() bool { return p.build != nil }

// Build runs the build function of a new item.
func (p *PickUp) Build() item.Stack {
	if p.build == nil {
		return item.Empty()
	}
	return p.build()
}

func (p *PickUp) Item() *item.Item { return p.prop.Item() }

func (p *PickUp) Prop() Prop { return p.prop }

func (p *PickUp) State() State { return p.state }

func (p *PickUp) IsHeld() bool { return p.state == Held }

// Target returns the snap target found on the last tick, if any.
func (p *PickUp) Target() SnapTarget { return p.target }

// PointerDown starts holding the prop unless the UI takes the click.
func (p *PickUp) PointerDown(cursor mgl32.Vec2) bool {
	if p.state == Held {
		return false
	}
	if p.query.PointerOverUI() {
		return false
	}

	body := p.prop.Body()
	p.saved = body.Flags
	p.homePos, p.homeRot = body.Position, body.Rotation
	body.UseGravity = false
	body.Kinematic = true
	if p.settings.FreezeRotationWhileHeld {
		body.Constraints |= physics.FreezeRotation
	}
	body.Velocity = mgl32.Vec3{}

	p.planeHeight = body.Position.Y()
	p.grabOffset = mgl32.Vec2{}
	if hit, ok := p.query.CursorRay(cursor).IntersectPlaneY(p.planeHeight); ok {
		d := body.Position.Sub(hit)
		p.grabOffset = mgl32.Vec2{d.X(), d.Z()}
	}

	p.target = nil
	p.state = Held
	return true
}

// Tick moves a held prop toward the snap target under the cursor, or toward
// the cursor on the drag plane when there is none.
func (p *PickUp) Tick(dt float64, cursor mgl32.Vec2) {
	if p.state != Held {
		return
	}
	defer profiling.Track("pickup.Tick")()

	body := p.prop.Body()
	t := min(1, float32(dt)*p.settings.FollowLerp)
	ray := p.query.CursorRay(cursor)

	p.target = p.findTarget(ray)
	if p.target != nil {
		pos, rot := p.target.Pose()
		body.Position = lerp(body.Position, pos, t)
		body.Rotation = mgl32.QuatSlerp(body.Rotation, rot, t)
		return
	}

	hit, ok := ray.IntersectPlaneY(p.planeHeight)
	if !ok {
		return
	}
	goal := mgl32.Vec3{hit.X() + p.grabOffset.X(), p.planeHeight, hit.Z() + p.grabOffset.Y()}
	next := lerp(body.Position, goal, t)
	next[1] = p.planeHeight
	body.Position = next
}

func (p *PickUp) findTarget(ray physics.Ray) SnapTarget {
	res := p.query.Raycast(ray, p.settings.SnapRange, physics.Mask(physics.LayerDropPoints))
	if !res.Hit {
		return nil
	}
	target, ok := res.Collider.Owner.(SnapTarget)
	if !ok || !target.Accepts(p.Item(), p.IsNew()) {
		return nil
	}
	return target
}

// PointerUp releases the prop. Over a snap target the prop is committed and
// destroyed; otherwise its physics flags are restored. A prop spawned from an
// inventory slot goes back to where it was picked up, since it stands for an
// item still in that slot. A loose prop stays where it is and forward, if the
// settings ask for it, gives it a push.
func (p *PickUp) PointerUp(forward mgl32.Vec3) Result {
	if p.state != Held {
		return ResultNone
	}
	target := p.target
	p.state = Idle
	p.target = nil

	if target != nil && target.Commit(p) {
		p.prop.Destroy()
		return ResultCommitted
	}

	p.restore()
	if p.source.Valid() {
		body := p.prop.Body()
		body.Position, body.Rotation = p.homePos, p.homeRot
		body.Velocity = mgl32.Vec3{}
		return ResultDropped
	}
	if p.settings.DropForwardImpulse > 0 && forward.Len() > 0 {
		p.prop.Body().AddImpulse(forward.Normalize().Mul(p.settings.DropForwardImpulse))
	}
	return ResultDropped
}

// Disable drops a held prop in place without committing it.
func (p *PickUp) Disable() {
	if p.state != Held {
		return
	}
	p.state = Idle
	p.target = nil
	p.restore()
}

func (p *PickUp) restore() {
	p.prop.Body().Flags = p.saved
}

func lerp(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

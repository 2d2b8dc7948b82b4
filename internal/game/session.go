package game

import (
	"fmt"
	"log/slog"

	"github.com/bhaddad5/Scrap-Merchant/internal/config"
	"github.com/bhaddad5/Scrap-Merchant/internal/craft"
	"github.com/bhaddad5/Scrap-Merchant/internal/entity"
	standardInput "github.com/bhaddad5/Scrap-Merchant/internal/input"
	"github.com/bhaddad5/Scrap-Merchant/internal/inventory"
	"github.com/bhaddad5/Scrap-Merchant/internal/item"
	"github.com/bhaddad5/Scrap-Merchant/internal/physics"
	"github.com/bhaddad5/Scrap-Merchant/internal/pickup"
	"github.com/bhaddad5/Scrap-Merchant/internal/player"
	"github.com/bhaddad5/Scrap-Merchant/internal/profiling"
	"github.com/bhaddad5/Scrap-Merchant/internal/slotrow"
	"github.com/bhaddad5/Scrap-Merchant/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// Session owns everything of one play session: the scene, the player, the
// hand and the menus.
type Session struct {
	Catalog *item.Catalog
	Icons   *item.IconSet

	Scene      *physics.Scene
	World      *world.World
	Player     *player.Player
	Interactor *player.Interactor

	Hand      *inventory.Hand
	Inventory *inventory.Inventory
	Panel     *inventory.Panel
	Split     *inventory.SplitPanel
	Menu      *craft.Menu
	// Counter is the sale counter: one stack handed over outside any inventory.
	Counter *inventory.ObjectSlot

	held   *pickup.PickUp
	cursor mgl32.Vec2

	log *slog.Logger
}

// NewSession builds the scene described by cfg. It does not seed any items.
func NewSession(cfg config.File, catalog *item.Catalog, logger *slog.Logger) (*Session, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Session{
		Catalog:   catalog,
		Scene:     physics.NewScene(),
		Hand:      &inventory.Hand{},
		Inventory: inventory.New("player", cfg.PlayerInventorySize),
		Counter:   inventory.NewObjectSlot(item.Empty()),
		log:       logger,
	}

	settings := pickup.Settings{
		FollowLerp:              config.GetFollowLerp(),
		FreezeRotationWhileHeld: cfg.Pickup.FreezeRotation,
		DropForwardImpulse:      cfg.Pickup.DropForwardImpulse,
		SnapRange:               cfg.Pickup.SnapRange,
	}
	s.World = world.New(s.Scene, s, settings, logger)

	layout := slotrow.Layout{
		MaxWidth:    cfg.SlotRow.MaxWidth,
		StartOffset: mgl32.Vec3(cfg.SlotRow.StartOffset),
		Euler:       mgl32.Vec3(cfg.SlotRow.Euler),
		Scale:       cfg.SlotRow.Scale,
	}
	if layout.StartOffset == (mgl32.Vec3{}) {
		layout.StartOffset = mgl32.Vec3{-layout.MaxWidth / 2, 0, 0}
	}
	for _, cs := range cfg.Containers {
		c, err := newContainer(cs, layout, cfg.SlotRow.RowSpacing)
		if err != nil {
			return nil, err
		}
		s.World.AddContainer(c)
	}

	s.Split = inventory.NewSplitPanel(s.Hand)
	s.Panel = inventory.NewPanel(s.Hand, s.Split)
	s.Menu = craft.NewMenu(catalog, s.Scene, s.World, logger)
	s.Player = player.New(mgl32.Vec3{})
	s.Interactor = player.NewInteractor(s.Player, s.World, s.Panel, s.Menu, s.Hand, s.Inventory, logger)
	s.Interactor.UseRange = config.GetUseRange()

	return s, nil
}

func newContainer(cs config.ContainerSection, layout slotrow.Layout, rowSpacing float32) (*world.Container, error) {
	var opts []inventory.Option
	if cs.OutputSlot != nil {
		opts = append(opts, inventory.WithOutputSlot(*cs.OutputSlot))
	}
	inv := inventory.New(cs.Name, cs.Size, opts...)

	copts := []world.ContainerOption{world.WithSlotLayout(layout, rowSpacing)}
	if cs.BuildPose != nil {
		copts = append(copts, world.WithBuildPose(pose(*cs.BuildPose)))
	}
	if cs.PointOfView != nil {
		copts = append(copts, world.WithPointOfView(pose(*cs.PointOfView)))
	}
	if cs.Extents == ([3]float32{}) {
		return nil, fmt.Errorf("container %s: extents are zero", cs.Name)
	}
	return world.NewContainer(cs.Name, inv, mgl32.Vec3(cs.Position), mgl32.Vec3(cs.Extents), copts...), nil
}

func pose(p config.PoseSection) world.Pose {
	e := p.Euler
	rot := mgl32.AnglesToQuat(mgl32.DegToRad(e[0]), mgl32.DegToRad(e[1]), mgl32.DegToRad(e[2]), mgl32.XYZ)
	return world.Pose{Position: mgl32.Vec3(p.Position), Rotation: rot}
}

// Inventories returns the player inventory followed by every container's.
func (s *Session) Inventories() []*inventory.Inventory {
	out := []*inventory.Inventory{s.Inventory}
	for _, c := range s.World.Containers() {
		out = append(out, c.Inventory())
	}
	return out
}

// InventoryByName returns the named inventory, or nil.
func (s *Session) InventoryByName(name string) *inventory.Inventory {
	for _, inv := range s.Inventories() {
		if inv.Name() == name {
			return inv
		}
	}
	return nil
}

// CursorRay casts from the camera through the cursor.
func (s *Session) CursorRay(cursor mgl32.Vec2) physics.Ray {
	return s.Player.Camera.CursorRay(cursor)
}

func (s *Session) Raycast(ray physics.Ray, maxDist float32, mask physics.LayerMask) physics.RaycastResult {
	return s.Scene.Raycast(ray, maxDist, mask)
}

// PointerOverUI is true while a slot panel takes the pointer.
func (s *Session) PointerOverUI() bool {
	return s.Panel.IsOpen() || s.Split.IsOpen()
}

// PanelViews returns what each slot of the open panel shows.
func (s *Session) PanelViews() []inventory.View {
	views := make([]inventory.View, 0, len(s.Panel.Slots))
	for _, sl := range s.Panel.Slots {
		views = append(views, sl.View(s.Icons))
	}
	return views
}

// Held returns the pickup being dragged, if any.
func (s *Session) Held() *pickup.PickUp { return s.held }

// Paused reports whether a menu has the player frozen.
func (s *Session) Paused() bool { return s.Interactor.IsOpen() }

func (s *Session) Update(dt float64, im *standardInput.InputManager) {
	s.cursor = im.Cursor()

	func() {
		defer profiling.Track("session.Interact")()
		s.Interactor.Update(im)
	}()

	s.handleInputActions(im)

	func() {
		defer profiling.Track("session.Pointer")()
		s.updatePointer(dt, im)
	}()

	func() {
		defer profiling.Track("world.Update")()
		s.World.Update(dt)
	}()

	s.Player.Update(dt, im)
}

func (s *Session) updatePointer(dt float64, im *standardInput.InputManager) {
	if s.held != nil && !s.held.IsHeld() {
		// Destroyed or disabled by an inventory change.
		s.held = nil
	}

	if s.held == nil {
		if im.JustPressed(standardInput.ActionPointerPrimary) {
			s.tryGrab()
		}
		return
	}

	if im.JustReleased(standardInput.ActionPointerPrimary) {
		held := s.held
		s.held = nil
		res := held.PointerUp(s.Player.Camera.Front())
		s.log.Debug("prop released", "item", held.Item().ID, "committed", res == pickup.ResultCommitted)
		return
	}
	s.held.Tick(dt, s.cursor)
}

func (s *Session) tryGrab() {
	if s.PointerOverUI() {
		return
	}
	res := s.Scene.Raycast(s.CursorRay(s.cursor), physics.MaxReachDistance, physics.Mask(physics.LayerProps))
	if !res.Hit {
		return
	}
	prop, ok := res.Collider.Owner.(*entity.Prop)
	if !ok || prop.PickUp == nil {
		return
	}
	if prop.PickUp.PointerDown(s.cursor) {
		s.held = prop.PickUp
	}
}

// SeedStarterItems adds the configured starter items. What does not fit is logged.
func (s *Session) SeedStarterItems(items []config.StarterItem) error {
	for _, st := range items {
		it, err := s.Catalog.Lookup(st.Item)
		if err != nil {
			return fmt.Errorf("seeding starter items: %w", err)
		}
		inv := s.Inventory
		if st.Container != "" {
			c := s.World.Container(st.Container)
			if c == nil {
				return fmt.Errorf("seeding starter items: unknown container %q", st.Container)
			}
			inv = c.Inventory()
		}
		if left := inv.AddItem(item.NewStack(it, st.Count)); !left.IsEmpty() {
			s.log.Warn("starter items do not fit", "inventory", inv.Name(), "item", it.ID, "left", left.Count)
		}
	}
	return nil
}

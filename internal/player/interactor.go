package player

import (
	"log/slog"

	"github.com/bhaddad5/Scrap-Merchant/internal/craft"
	"github.com/bhaddad5/Scrap-Merchant/internal/input"
	"github.com/bhaddad5/Scrap-Merchant/internal/inventory"
	"github.com/bhaddad5/Scrap-Merchant/internal/physics"
	"github.com/bhaddad5/Scrap-Merchant/internal/profiling"
	"github.com/bhaddad5/Scrap-Merchant/internal/world"
)

const (
	UseRange     = 3.0
	PanelColumns = 9
)

// Interactor opens the container the player looks at and closes it again.
// Benches open the crafting menu, other containers the slot panel.
type Interactor struct {
	UseRange float32

	player    *Player
	world     *world.World
	panel     *inventory.Panel
	menu      *craft.Menu
	hand      *inventory.Hand
	inventory *inventory.Inventory
	log       *slog.Logger

	lookedAt *world.Container
	open     *world.Container
	saved    Camera
}

// NewInteractor wires the player to the menus. Whatever is left in hand when
// a container closes goes to inv, and what does not fit drops into w.
func NewInteractor(p *Player, w *world.World, panel *inventory.Panel, menu *craft.Menu,
	hand *inventory.Hand, inv *inventory.Inventory, logger *slog.Logger) *Interactor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Interactor{
		UseRange:  UseRange,
		player:    p,
		world:     w,
		panel:     panel,
		menu:      menu,
		hand:      hand,
		inventory: inv,
		log:       logger,
	}
}

// LookedAt returns the container in use range straight ahead, if any.
func (it *Interactor) LookedAt() *world.Container { return it.lookedAt }

// Current returns the open container.
func (it *Interactor) Current() *world.Container { return it.open }

func (it *Interactor) IsOpen() bool { return it.open != nil }

// Prompt is the hint shown for the looked-at container.
func (it *Interactor) Prompt() string {
	switch {
	case it.open != nil || it.lookedAt == nil:
		return ""
	case it.lookedAt.IsBench():
		return "[E] Craft at " + it.lookedAt.Name()
	default:
		return "[E] Open " + it.lookedAt.Name()
	}
}

func (it *Interactor) Update(im *input.InputManager) {
	defer profiling.Track("interactor.Update")()

	if it.open != nil {
		if im.JustPressed(input.ActionInteract) || im.JustPressed(input.ActionEscape) {
			it.Close()
		}
		return
	}

	cam := &it.player.Camera
	ray := physics.Ray{Origin: cam.Position, Dir: cam.Front()}
	it.lookedAt = it.world.ContainerUnder(ray, it.UseRange)
	if it.lookedAt != nil && im.JustPressed(input.ActionInteract) {
		it.Open(it.lookedAt)
	}
}

// Open shows c, freezing the player and moving the camera to c's point of view.
func (it *Interactor) Open(c *world.Container) {
	if it.open != nil {
		it.Close()
	}
	it.open = c
	it.lookedAt = nil
	it.saved = it.player.Camera
	it.player.SetMovementEnabled(false)
	if pov, ok := c.PointOfView(); ok {
		it.player.Camera.SetPose(pov)
	}

	if c.IsBench() {
		it.menu.Open(c)
	} else {
		it.panel.Open(c.Inventory(), c.Name(), PanelColumns)
	}
	it.log.Info("container opened", "name", c.Name(), "bench", c.IsBench())
}

// Close hides every menu, restores the camera and stows the hand.
func (it *Interactor) Close() {
	if it.open == nil {
		return
	}
	name := it.open.Name()
	it.open = nil

	it.panel.Close()
	it.menu.Close()
	it.player.Camera = it.saved
	it.player.SetMovementEnabled(true)

	if !it.hand.IsEmpty() {
		left := it.inventory.AddItem(it.hand.Take())
		if !left.IsEmpty() {
			at := it.player.Camera.Position.Add(it.player.Camera.Front())
			it.world.SpawnStack(left, at)
			it.log.Warn("inventory full, dropped hand", "item", left.Item.ID, "count", left.Count)
		}
	}
	it.log.Info("container closed", "name", name)
}

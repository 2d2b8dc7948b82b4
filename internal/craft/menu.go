package craft

import (
	"fmt"
	"log/slog"

	"github.com/bhaddad5/Scrap-Merchant/internal/inventory"
	"github.com/bhaddad5/Scrap-Merchant/internal/item"
	"github.com/bhaddad5/Scrap-Merchant/internal/physics"
	"github.com/bhaddad5/Scrap-Merchant/internal/pickup"

	"github.com/go-gl/mathgl/mgl32"
)

// Bench is a world container items are crafted on.
type Bench interface {
	Name() string
	Inventory() *inventory.Inventory
	// BuildPose is where blueprints are laid out.
	BuildPose() (mgl32.Vec3, mgl32.Quat)
	RebuildVisualizers()
}

// Spawner puts the finished item of a completed blueprint into the world.
type Spawner interface {
	SpawnBuilt(it *item.Item, pos mgl32.Vec3, rot mgl32.Quat, build func() item.Stack) pickup.Prop
}

// ItemSource lists every known item.
type ItemSource interface {
	All() []*item.Item
}

// CanBuild reports whether recipe has parts and every distinct required item
// is present in inv.
func CanBuild(recipe *item.Item, inv *inventory.Inventory) bool {
	if !recipe.IsRecipe() || inv == nil {
		return false
	}
	for _, need := range recipe.RequiredItems() {
		if !inv.ContainsItem(need) {
			return false
		}
	}
	return true
}

// AvailableRecipes returns the items that can be built from inv, in catalog order.
func AvailableRecipes(items []*item.Item, inv *inventory.Inventory) []*item.Item {
	var out []*item.Item
	for _, it := range items {
		if CanBuild(it, inv) {
			out = append(out, it)
		}
	}
	return out
}

// Menu is the crafting bench screen. While open it keeps the list of
// buildable recipes current and owns at most one blueprint.
type Menu struct {
	items   ItemSource
	scene   *physics.Scene
	spawner Spawner
	log     *slog.Logger

	bench    Bench
	cancel   func()
	recipes  []*item.Item
	selected *Blueprint

	// OnRecipesChanged is called after every recompute.
	OnRecipesChanged func(recipes []*item.Item)
}

// NewMenu creates a closed crafting menu.
func NewMenu(items ItemSource, scene *physics.Scene, spawner Spawner, logger *slog.Logger) *Menu {
	if logger == nil {
		logger = slog.Default()
	}
	return &Menu{
		items:   items,
		scene:   scene,
		spawner: spawner,
		log:     logger,
	}
}

// Open shows the menu for bench, closing whatever was open before.
func (m *Menu) Open(bench Bench) {
	m.Close()

	m.bench = bench
	m.refresh()
	m.cancel = bench.Inventory().Subscribe(func(inventory.Event) {
		m.refresh()
	})
	m.log.Debug("crafting menu opened", "bench", bench.Name())
}

// Close rebuilds the bench's slot rows and drops the selected blueprint.
func (m *Menu) Close() {
	if m.bench != nil {
		m.bench.RebuildVisualizers()
	}
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.ClearSelectedRecipe()
	m.bench = nil
	m.recipes = nil
}

func (m *Menu) IsOpen() bool { return m.bench != nil }

// Title is the bench name, or empty when closed.
func (m *Menu) Title() string {
	if m.bench == nil {
		return ""
	}
	return m.bench.Name()
}

func (m *Menu) Bench() Bench { return m.bench }

// Recipes returns the recipes buildable from the bench right now.
func (m *Menu) Recipes() []*item.Item {
	out := make([]*item.Item, len(m.recipes))
	copy(out, m.recipes)
	return out
}

func (m *Menu) Selected() *Blueprint { return m.selected }

// SelectRecipe lays out the blueprint of recipe on the bench.
func (m *Menu) SelectRecipe(recipe *item.Item) (*Blueprint, error) {
	if m.bench == nil {
		return nil, ErrMenuClosed
	}
	if !CanBuild(recipe, m.bench.Inventory()) {
		return nil, fmt.Errorf("selecting %s: %w", recipe, ErrNotBuildable)
	}
	m.ClearSelectedRecipe()

	pos, rot := m.bench.BuildPose()
	m.selected = NewBlueprint(m.scene, m.bench.Inventory(), recipe, pos, rot, m.complete)
	m.log.Info("recipe selected", "bench", m.bench.Name(), "recipe", recipe.ID, "components", len(recipe.Prefab.Components))
	return m.selected, nil
}

// ClearSelectedRecipe removes the current blueprint, if any.
func (m *Menu) ClearSelectedRecipe() {
	if m.selected == nil {
		return
	}
	m.selected.Remove()
	m.selected = nil
}

func (m *Menu) refresh() {
	m.ClearSelectedRecipe()
	m.recipes = AvailableRecipes(m.items.All(), m.bench.Inventory())
	if m.OnRecipesChanged != nil {
		m.OnRecipesChanged(m.Recipes())
	}
}

func (m *Menu) complete(b *Blueprint) {
	pos, rot := b.Pose()
	b.SetProduct(m.spawner.SpawnBuilt(b.Recipe(), pos, rot, b.Build))
	m.log.Info("blueprint complete", "recipe", b.Recipe().ID)
}

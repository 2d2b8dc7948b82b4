package slotrow_test

import (
	"testing"

	"github.com/bhaddad5/Scrap-Merchant/internal/inventory"
	"github.com/bhaddad5/Scrap-Merchant/internal/item"
	"github.com/bhaddad5/Scrap-Merchant/internal/physics"
	"github.com/bhaddad5/Scrap-Merchant/internal/pickup"
	"github.com/bhaddad5/Scrap-Merchant/internal/slotrow"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type spawned struct {
	it        *item.Item
	pos       mgl32.Vec3
	scale     float32
	src       pickup.Source
	destroyed bool
}

func (s *spawned) Body() *physics.Body { return physics.NewBody(s.pos) }
func (s *spawned) Item() *item.Item    { return s.it }
func (s *spawned) Destroy()            { s.destroyed = true }

type recorder struct {
	all []*spawned
}

func (r *recorder) SpawnSlotProp(it *item.Item, pos mgl32.Vec3, _ mgl32.Quat, scale float32, src pickup.Source) pickup.Prop {
	s := &spawned{it: it, pos: pos, scale: scale, src: src}
	r.all = append(r.all, s)
	return s
}

func (r *recorder) alive() int {
	n := 0
	for _, s := range r.all {
		if !s.destroyed {
			n++
		}
	}
	return n
}

var nut = &item.Item{ID: "nut", MaxStack: 4}

func TestStep(t *testing.T) {
	tests := []struct {
		width    float32
		maxStack int
		want     float32
	}{
		{0.3, 4, 0.1},
		{0.3, 1, 0},
		{0.3, 0, 0},
		{1, 2, 1},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, slotrow.Step(tt.width, tt.maxStack), 1e-6)
	}
}

func TestLayout_FullStackSpansMaxWidth(t *testing.T) {
	l := slotrow.Layout{MaxWidth: 0.3, StartOffset: mgl32.Vec3{-0.15, 0, 0}}
	pos := l.LocalPositions(4, 4)
	require.Len(t, pos, 4)
	assert.InDelta(t, -0.15, pos[0].X(), 1e-6)
	assert.InDelta(t, 0.15, pos[3].X(), 1e-6)
	assert.Empty(t, l.LocalPositions(0, 4))
}

func TestVisualizer_RebuildsOnChangeOnly(t *testing.T) {
	inv := inventory.New("shelf", 2)
	inv.Set(0, item.NewStack(nut, 2))
	rec := &recorder{}
	layout := slotrow.DefaultLayout()
	v := slotrow.New(inv, 0, mgl32.Vec3{0, 1, 0}, mgl32.QuatIdent(), layout, rec)

	assert.Empty(t, rec.all, "disabled visualizers spawn nothing")
	v.Enable()
	require.Len(t, v.Props(), 2)
	assert.Equal(t, pickup.Source{Inventory: inv, Slot: 0}, rec.all[0].src)
	assert.InDelta(t, 0.1, rec.all[1].pos.X()-rec.all[0].pos.X(), 1e-6)
	assert.Equal(t, float32(1), rec.all[0].pos.Y())

	// Other slots and unchanged stacks leave the row alone.
	inv.Set(1, item.NewStack(nut, 1))
	inv.Set(0, item.NewStack(nut, 2))
	assert.Len(t, rec.all, 2)

	inv.Set(0, item.NewStack(nut, 3))
	assert.Len(t, rec.all, 5)
	assert.Equal(t, 3, rec.alive(), "old props cleared")

	assert.True(t, v.TryRebuild(true))
	assert.False(t, v.TryRebuild(false))
	assert.Equal(t, 3, rec.alive())

	v.Disable()
	assert.Zero(t, rec.alive())
	inv.Set(0, item.NewStack(nut, 1))
	assert.Zero(t, rec.alive(), "disabled visualizers stop listening")
}

func TestVisualizer_MultiSlotChange(t *testing.T) {
	inv := inventory.New("shelf", 2)
	rec := &recorder{}
	v := slotrow.New(inv, 1, mgl32.Vec3{}, mgl32.QuatIdent(), slotrow.DefaultLayout(), rec)
	v.Enable()
	assert.Empty(t, v.Props())

	inv.AddItem(item.NewStack(nut, 6))
	assert.Len(t, v.Props(), 2, "second slot gets the overflow")
}

func TestVisualizer_HideWhenEmpty(t *testing.T) {
	inv := inventory.New("shelf", 1)
	rec := &recorder{}
	v := slotrow.New(inv, 0, mgl32.Vec3{}, mgl32.QuatIdent(), slotrow.Layout{MaxWidth: 1}, rec)
	v.HideWhenEmpty = true
	v.Enable()
	assert.False(t, v.Visible())

	inv.Set(0, item.NewStack(nut, 1))
	assert.True(t, v.Visible())
	assert.Equal(t, float32(1), rec.all[0].scale, "zero scale defaults to one")
}

func TestVisualizer_RotatedRoot(t *testing.T) {
	inv := inventory.New("shelf", 1)
	inv.Set(0, item.NewStack(nut, 2))
	rec := &recorder{}
	rot := mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 1, 0})
	v := slotrow.New(inv, 0, mgl32.Vec3{}, rot, slotrow.Layout{MaxWidth: 0.3}, rec)
	v.Enable()

	require.Len(t, rec.all, 2)
	assert.InDelta(t, 0, rec.all[1].pos.X(), 1e-5)
	assert.InDelta(t, -0.1, rec.all[1].pos.Z(), 1e-5, "row follows the root rotation")
}

func TestVisualizer_OutOfRangeSlot(t *testing.T) {
	rec := &recorder{}
	v := slotrow.New(inventory.New("shelf", 1), 5, mgl32.Vec3{}, mgl32.QuatIdent(), slotrow.DefaultLayout(), rec)
	v.Enable()
	assert.Empty(t, rec.all)
	assert.True(t, v.Enabled())
}

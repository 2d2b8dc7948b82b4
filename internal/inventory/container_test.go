package inventory_test

import (
	"testing"

	"github.com/bhaddad5/Scrap-Merchant/internal/inventory"
	"github.com/bhaddad5/Scrap-Merchant/internal/item"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPanel() (*inventory.Panel, *inventory.Hand, *inventory.SplitPanel) {
	hand := &inventory.Hand{}
	split := inventory.NewSplitPanel(hand)
	return inventory.NewPanel(hand, split), hand, split
}

func TestPanel_OpenLayoutAndClose(t *testing.T) {
	p, _, _ := newTestPanel()
	inv := inventory.New("chest", 5)

	assert.False(t, p.IsOpen())
	p.Open(inv, "Chest", 3)
	require.True(t, p.IsOpen())
	require.Len(t, p.Slots, 5)
	assert.Equal(t, "Chest", p.Title)

	s := p.GetSlot(4)
	require.NotNil(t, s)
	assert.Equal(t, 4, s.Index())
	assert.Equal(t, 8+1*18, s.X)
	assert.Equal(t, 18+1*18, s.Y)
	assert.Same(t, s, p.SlotAt(s.X+3, s.Y+15))
	assert.Nil(t, p.SlotAt(0, 0))

	p.Close()
	assert.False(t, p.IsOpen())
	assert.Nil(t, p.GetSlot(0))
}

func TestPanel_LeftClickUsesHand(t *testing.T) {
	a, _ := testItems()
	p, hand, _ := newTestPanel()
	inv := inventory.New("chest", 2)
	inv.Set(0, item.NewStack(a, 5))
	p.Open(inv, "Chest", 9)

	require.True(t, p.SlotClick(0, inventory.MouseButtonLeft, false))
	assert.Equal(t, item.NewStack(a, 5), hand.Stack)

	require.True(t, p.SlotClick(1, inventory.MouseButtonLeft, false))
	assert.True(t, hand.IsEmpty())
	assert.Equal(t, item.NewStack(a, 5), inv.Get(1))

	assert.False(t, p.SlotClick(7, inventory.MouseButtonLeft, false), "unknown slot")
}

func TestPanel_RightClickOpensSplit(t *testing.T) {
	a, _ := testItems()
	p, hand, split := newTestPanel()
	inv := inventory.New("chest", 2)
	inv.Set(0, item.NewStack(a, 7))
	p.Open(inv, "Chest", 9)

	assert.False(t, p.SlotClick(1, inventory.MouseButtonRight, false), "empty slot does not split")
	require.True(t, p.SlotClick(0, inventory.MouseButtonRight, false))
	require.True(t, split.IsOpen())
	assert.Equal(t, "Split 'Item A'", split.Title)
	assert.Equal(t, 3, split.Amount(), "defaults to half the stack")

	split.Confirm()
	assert.False(t, split.IsOpen())
	assert.Equal(t, item.NewStack(a, 3), hand.Stack)
	assert.Equal(t, item.NewStack(a, 4), inv.Get(0))
}

func TestPanel_RightClickWithHandPlacesOne(t *testing.T) {
	a, b := testItems()
	p, hand, _ := newTestPanel()
	inv := inventory.New("chest", 3, inventory.WithOutputSlot(2))
	inv.Set(1, item.NewStack(b, 1))
	p.Open(inv, "Chest", 9)
	hand.Stack = item.NewStack(a, 2)

	require.True(t, p.SlotClick(0, inventory.MouseButtonRight, false))
	assert.Equal(t, item.NewStack(a, 1), inv.Get(0))
	assert.Equal(t, item.NewStack(a, 1), hand.Stack)

	assert.False(t, p.SlotClick(1, inventory.MouseButtonRight, false), "different item")
	assert.False(t, p.SlotClick(2, inventory.MouseButtonRight, false), "output slot")
	assert.Equal(t, item.NewStack(a, 1), hand.Stack)

	require.True(t, p.SlotClick(0, inventory.MouseButtonRight, false))
	assert.True(t, hand.IsEmpty())
	assert.Equal(t, item.NewStack(a, 2), inv.Get(0))
}

func TestPanel_DoubleClickCollects(t *testing.T) {
	a, b := testItems()
	p, hand, _ := newTestPanel()
	inv := inventory.New("chest", 5)
	inv.Set(0, item.NewStack(a, 4))
	inv.Set(1, item.NewStack(b, 2))
	inv.Set(2, item.NewStack(a, 3))
	inv.Set(3, item.NewStack(a, 6))
	p.Open(inv, "Chest", 9)
	hand.Stack = item.NewStack(a, 1)

	require.True(t, p.SlotClick(4, inventory.MouseButtonLeft, true))
	assert.Equal(t, item.NewStack(a, 10), hand.Stack, "collects up to the max stack size")
	assert.True(t, inv.Get(0).IsEmpty())
	assert.True(t, inv.Get(2).IsEmpty())
	assert.Equal(t, item.NewStack(a, 4), inv.Get(3))
	assert.Equal(t, item.NewStack(b, 2), inv.Get(1))

	hand.Take()
	assert.False(t, p.SlotClick(3, inventory.MouseButtonLeft, true), "empty hand collects nothing")
}

func TestSplitPanel_Clamping(t *testing.T) {
	a, _ := testItems()
	_, hand, split := newTestPanel()
	inv := inventory.New("chest", 1)
	inv.Set(0, item.NewStack(a, 1))
	slot := inventory.NewSlot(inv, 0, 0, 0)

	split.Open(slot, 1)
	assert.Equal(t, 1, split.Amount(), "half of one still takes one")

	inv.Set(0, item.NewStack(a, 9))
	split.Open(slot, 9)
	split.SetAmount(0)
	assert.Equal(t, 1, split.Amount())
	split.SetAmount(50)
	assert.Equal(t, 9, split.Amount())

	require.NoError(t, split.SetText(" 6 "))
	assert.Equal(t, "6", split.Text())
	assert.Error(t, split.SetText("six"))
	assert.Equal(t, 6, split.Amount(), "bad input keeps the previous amount")

	split.Cancel()
	assert.False(t, split.IsOpen())
	assert.True(t, hand.IsEmpty())
	split.Confirm()
	assert.Equal(t, 9, inv.Get(0).Count, "confirm on a closed panel does nothing")
}

func TestSlot_TakeToHandWithDifferentItemPutsBack(t *testing.T) {
	a, b := testItems()
	inv := inventory.New("chest", 1)
	inv.Set(0, item.NewStack(a, 6))
	slot := inventory.NewSlot(inv, 0, 0, 0)
	hand := &inventory.Hand{Stack: item.NewStack(b, 1)}

	slot.TakeToHand(4, hand)
	assert.Equal(t, item.NewStack(a, 6), inv.Get(0))
	assert.Equal(t, item.NewStack(b, 1), hand.Stack)
}

func TestSlot_TakeToHandOverflowReturnsRest(t *testing.T) {
	a, _ := testItems()
	inv := inventory.New("chest", 1)
	inv.Set(0, item.NewStack(a, 6))
	slot := inventory.NewSlot(inv, 0, 0, 0)
	hand := &inventory.Hand{Stack: item.NewStack(a, 8)}

	slot.TakeToHand(5, hand)
	assert.Equal(t, item.NewStack(a, 10), hand.Stack)
	assert.Equal(t, item.NewStack(a, 4), inv.Get(0))
	assert.Equal(t, 14, inv.Get(0).Count+hand.Stack.Count, "no items are lost")
}

func TestObjectSlot_Click(t *testing.T) {
	a, b := testItems()
	o := inventory.NewObjectSlot(item.NewStack(a, 2))
	hand := &inventory.Hand{}

	assert.False(t, o.Click(inventory.MouseButtonRight, hand))
	require.True(t, o.Click(inventory.MouseButtonLeft, hand))
	assert.True(t, o.Stack().IsEmpty())
	assert.Equal(t, item.NewStack(a, 2), hand.Stack)

	require.True(t, o.Click(inventory.MouseButtonLeft, hand))
	hand.Stack = item.NewStack(b, 3)
	require.True(t, o.Click(inventory.MouseButtonLeft, hand))
	assert.Equal(t, item.NewStack(b, 3), o.Stack())
	assert.Equal(t, item.NewStack(a, 2), hand.Stack)
}

func TestViewOf(t *testing.T) {
	a, _ := testItems()

	assert.Equal(t, inventory.View{}, inventory.ViewOf(item.Empty(), nil))

	v := inventory.ViewOf(item.NewStack(a, 1), nil)
	assert.True(t, v.ShowIcon)
	assert.False(t, v.ShowCount)

	v = inventory.ViewOf(item.NewStack(a, 12), nil)
	assert.True(t, v.ShowCount)
	assert.Equal(t, "12", v.CountText)
}

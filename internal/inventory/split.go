package inventory

import (
	"fmt"
	"strconv"
	"strings"
)

// SplitPanel asks how many items to take from a slot into the hand.
type SplitPanel struct {
	Title string

	hand     *Hand
	slot     *Slot
	maxCount int
	amount   int
}

// NewSplitPanel creates a closed split panel that moves items into hand.
func NewSplitPanel(hand *Hand) *SplitPanel {
	return &SplitPanel{hand: hand}
}

// Open starts a split of slot, which currently holds count items.
// The amount starts at half the stack.
func (sp *SplitPanel) Open(slot *Slot, count int) {
	if slot == nil || count <= 0 {
		return
	}
	sp.slot = slot
	sp.maxCount = count
	sp.amount = clamp(count/2, 1, count)
	sp.Title = fmt.Sprintf("Split '%s'", slot.GetStack().Item.DisplayName)
}

// IsOpen reports whether a split is in progress.
func (sp *SplitPanel) IsOpen() bool {
	return sp.slot != nil
}

// Amount returns the currently selected amount.
func (sp *SplitPanel) Amount() int {
	return sp.amount
}

// Text returns the amount as shown in the input field.
func (sp *SplitPanel) Text() string {
	return strconv.Itoa(sp.amount)
}

// SetAmount selects v, clamped to [1, stack count].
func (sp *SplitPanel) SetAmount(v int) {
	if !sp.IsOpen() {
		return
	}
	sp.amount = clamp(v, 1, sp.maxCount)
}

// SetText parses typed input. Text that is not a number leaves the amount unchanged.
func (sp *SplitPanel) SetText(s string) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("split amount %q: %w", s, err)
	}
	sp.SetAmount(v)
	return nil
}

// Confirm moves the selected amount into the hand and closes the panel.
func (sp *SplitPanel) Confirm() {
	if !sp.IsOpen() {
		return
	}
	sp.slot.TakeToHand(clamp(sp.amount, 1, sp.maxCount), sp.hand)
	sp.Cancel()
}

// Cancel closes the panel without moving anything.
func (sp *SplitPanel) Cancel() {
	sp.slot = nil
	sp.maxCount = 0
	sp.amount = 0
	sp.Title = ""
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

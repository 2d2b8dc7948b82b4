package game

import (
	"fmt"
	"strings"

	"github.com/bhaddad5/Scrap-Merchant/internal/config"
	standardInput "github.com/bhaddad5/Scrap-Merchant/internal/input"
	"github.com/bhaddad5/Scrap-Merchant/internal/inventory"
)

func (s *Session) handleInputActions(im *standardInput.InputManager) {
	if im.JustPressed(standardInput.ActionToggleProfiling) {
		config.SetProfiling(!config.GetProfiling())
		s.log.Info("profiling toggled", "enabled", config.GetProfiling())
	}
}

// ClickSlot clicks slot of the open container panel.
func (s *Session) ClickSlot(slot int, button string, double bool) error {
	if !s.Panel.IsOpen() {
		return ErrPanelClosed
	}
	if slot < 0 || slot >= len(s.Panel.Slots) {
		return fmt.Errorf("clicking slot %d of %s: out of range", slot, s.Panel.Title)
	}
	b := inventory.MouseButtonLeft
	switch strings.ToLower(button) {
	case "", "left":
	case "right":
		b = inventory.MouseButtonRight
	default:
		return fmt.Errorf("clicking slot %d: unknown button %q", slot, button)
	}
	s.Panel.SlotClick(slot, b, double)
	return nil
}

// ClickCounter swaps the hand with the sale counter. It only works while a
// panel is open, like any slot.
func (s *Session) ClickCounter() error {
	if !s.Panel.IsOpen() {
		return ErrPanelClosed
	}
	s.Counter.Click(inventory.MouseButtonLeft, s.Hand)
	return nil
}

// ConfirmSplit moves amount items from the split slot into the hand.
func (s *Session) ConfirmSplit(amount int) error {
	if !s.Split.IsOpen() {
		return ErrSplitClosed
	}
	s.Split.SetAmount(amount)
	s.Split.Confirm()
	return nil
}

// SelectRecipe lays out the blueprint of the item with id on the open bench.
func (s *Session) SelectRecipe(id string) error {
	if !s.Menu.IsOpen() {
		return ErrMenuClosed
	}
	it, err := s.Catalog.Lookup(id)
	if err != nil {
		return fmt.Errorf("selecting recipe: %w", err)
	}
	_, err = s.Menu.SelectRecipe(it)
	return err
}

// HandleStep feeds a replay step: input first, then UI commands. Failed
// commands are logged and skipped.
func (s *Session) HandleStep(st standardInput.Step, im *standardInput.InputManager) {
	st.Apply(im)

	if st.Click != nil {
		if err := s.ClickSlot(st.Click.Slot, st.Click.Button, st.Click.Double); err != nil {
			s.log.Warn("replay click skipped", "frame", st.At, "error", err)
		}
	}
	if st.Counter {
		if err := s.ClickCounter(); err != nil {
			s.log.Warn("replay counter click skipped", "frame", st.At, "error", err)
		}
	}
	if st.Split > 0 {
		if err := s.ConfirmSplit(st.Split); err != nil {
			s.log.Warn("replay split skipped", "frame", st.At, "error", err)
		}
	}
	if st.Recipe != "" {
		if err := s.SelectRecipe(st.Recipe); err != nil {
			s.log.Warn("replay recipe skipped", "frame", st.At, "recipe", st.Recipe, "error", err)
		}
	}
}

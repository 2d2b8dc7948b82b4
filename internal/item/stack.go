package item

import "strconv"

// Stack represents a stack of items
type Stack struct {
	Item  *Item
	Count int
}

// NewStack creates a new item stack
func NewStack(it *Item, count int) Stack {
	return Stack{
		Item:  it,
		Count: count,
	}
}

// Empty returns the empty stack
func Empty() Stack {
	return Stack{}
}

// IsEmpty reports whether the stack holds nothing
func (s Stack) IsEmpty() bool {
	return s.Item == nil || s.Count <= 0
}

// SpaceLeft returns how many more items fit before MaxStack is reached.
// An empty stack has no item and therefore no space.
func (s Stack) SpaceLeft() int {
	if s.IsEmpty() {
		return 0
	}
	return max(0, s.Item.GetMaxStackSize()-s.Count)
}

// IsItemEqual checks if two stacks contain the same item type
func (s Stack) IsItemEqual(other Stack) bool {
	return s.Item != nil && s.Item == other.Item
}

// AddUpTo adds at most amount items and returns how many were actually added.
func (s *Stack) AddUpTo(amount int) int {
	if s.IsEmpty() || amount <= 0 {
		return 0
	}
	add := min(s.SpaceLeft(), amount)
	s.Count += add
	return add
}

// Split removes up to n items into a new stack, clearing s when it runs out.
func (s *Stack) Split(n int) Stack {
	if s.IsEmpty() || n <= 0 {
		return Empty()
	}
	take := min(s.Count, n)
	out := NewStack(s.Item, take)
	s.Count -= take
	if s.Count <= 0 {
		s.Clear()
	}
	return out
}

// Clear resets the stack to empty
func (s *Stack) Clear() {
	s.Item = nil
	s.Count = 0
}

func (s Stack) String() string {
	if s.IsEmpty() {
		return "empty"
	}
	return s.Item.ID + " x" + strconv.Itoa(s.Count)
}

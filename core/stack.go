package core

import (
	"errors"
	"fmt"
	"strings"
)

// ErrStackUnderflow is returned when an instruction needs more fragments than
// the stack holds.
var ErrStackUnderflow = errors.New("fragment stack underflow")

// FragmentStack is the LIFO working memory of the reconstruction. Each entry is
// the text of an expression that has not been consumed yet.
type FragmentStack struct {
	items []string
}

// Push puts a fragment on top of the stack.
func (s *FragmentStack) Push(fragment string) {
	s.items = append(s.items, fragment)
}

// Pop removes the top fragment.
func (s *FragmentStack) Pop() (string, error) {
	return s.PopAt(1)
}

// PopAt removes the fragment at the given depth, where depth 1 is the top of
// the stack. Fragments above it keep their order.
func (s *FragmentStack) PopAt(depth int) (string, error) {
	if depth < 1 || depth > len(s.items) {
		return "", fmt.Errorf("%w: depth %d with %d fragments",
			ErrStackUnderflow, depth, len(s.items))
	}

	idx := len(s.items) - depth
	fragment := s.items[idx]
	s.items = append(s.items[:idx], s.items[idx+1:]...)

	return fragment, nil
}

// Peek returns the top fragment without removing it.
func (s *FragmentStack) Peek() (string, bool) {
	if len(s.items) == 0 {
		return "", false
	}

	return s.items[len(s.items)-1], true
}

// Len returns the number of fragments.
func (s *FragmentStack) Len() int {
	return len(s.items)
}

// Concat joins all fragments, bottom first, without separators.
func (s *FragmentStack) Concat() string {
	return strings.Join(s.items, "")
}

// Snapshot returns a copy of the fragments, bottom first.
func (s *FragmentStack) Snapshot() []string {
	return append([]string(nil), s.items...)
}

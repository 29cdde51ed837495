package core

import (
	"strings"
)

// LineWarning records a line boundary that was crossed while fragments were
// still waiting on the stack.
type LineWarning struct {
	File  string
	Line  int
	Stack []string
}

// state is the interpreter context of one run.
type state struct {
	fileName string
	text     strings.Builder
	line     int

	stack FragmentStack

	// Remaining elements of every array literal under construction, innermost
	// last.
	arrayCounts []int

	// multiLine is set when the last padded line boundary found fragments on
	// the stack.
	multiLine bool

	files *SourceMap
	stats *Stats
}

func newState(fileName string) *state {
	return &state{
		fileName: fileName,
		files:    NewSourceMap(),
		stats:    newStats(),
	}
}

func (s *state) emit(text string) {
	s.text.WriteString(text)
}

func (s *state) push(fragment string) {
	s.stack.Push(fragment)
}

func (s *state) pop() (string, error) {
	return s.stack.Pop()
}

// popOrPlaceholder pops the top fragment, or returns the placeholder when the
// stack is empty.
func (s *state) popOrPlaceholder(placeholder string) string {
	if s.stack.Len() == 0 {
		s.stats.Placeholders++
		return placeholder
	}

	fragment, _ := s.stack.Pop()

	return fragment
}

// popInOrder removes the n topmost fragments and returns them bottom first.
func (s *state) popInOrder(n int) ([]string, error) {
	fragments := make([]string, 0, n)
	for i := 0; i < n; i++ {
		fragment, err := s.stack.PopAt(n - i)
		if err != nil {
			return nil, err
		}

		fragments = append(fragments, fragment)
	}

	return fragments, nil
}

// syncLine pads the buffer with newlines until the next line is the target.
// Every padded line receives whatever is left on the stack. The stack is only
// read here.
func (s *state) syncLine(target int) []LineWarning {
	var warnings []LineWarning

	for target > s.line+1 {
		s.text.WriteString(s.stack.Concat())
		s.text.WriteString("\n")

		if s.stack.Len() > 0 {
			w := LineWarning{
				File:  s.fileName,
				Line:  s.line,
				Stack: s.stack.Snapshot(),
			}
			warnings = append(warnings, w)
			s.stats.LineWarnings = append(s.stats.LineWarnings, w)
			s.multiLine = true
		} else {
			s.multiLine = false
		}

		s.line++
	}

	return warnings
}

// switchFile stores the active buffer and makes name the active one. A name
// seen before resumes its earlier text.
func (s *state) switchFile(name string) {
	s.freeze()

	s.line = 0
	s.fileName = name
	s.text.Reset()

	if previous, ok := s.files.Get(name); ok {
		s.text.WriteString(previous)
	}
}

func (s *state) freeze() {
	s.files.Set(s.fileName, s.text.String())
}

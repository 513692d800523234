package graphicsstate

import (
	"errors"
)

// ErrStackUnderflow is returned when Q has no matching q
var ErrStackUnderflow = errors.New("graphics state stack underflow")

// Stack is a stack of graphics states. The interpreter never lets it
// become empty while a stream is processed.
type Stack struct {
	states []*GraphicsState
}

// NewStack creates a stack holding a single state
func NewStack(initial *GraphicsState) *Stack {
	return &Stack{states: []*GraphicsState{initial}}
}

// Current returns the top state
func (s *Stack) Current() *GraphicsState {
	return s.states[len(s.states)-1]
}

// Depth returns the number of states
func (s *Stack) Depth() int {
	return len(s.states)
}

// Save pushes a clone of the top state (q operator)
func (s *Stack) Save() {
	s.states = append(s.states, s.Current().Clone())
}

// Restore pops the top state (Q operator). The bottom state is never
// popped.
func (s *Stack) Restore() error {
	if len(s.states) <= 1 {
		return ErrStackUnderflow
	}
	s.states[len(s.states)-1] = nil
	s.states = s.states[:len(s.states)-1]
	return nil
}

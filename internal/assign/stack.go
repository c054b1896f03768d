// Package assign saves and restores the host's joystick button assignment
// table around modifier modes.
package assign

import "github.com/soar/xgamepad/internal/xplane"

// Stack is a LIFO of button assignment snapshots. A mode that rebinds buttons
// pushes on entry and pops on exit, so nested modes restore in reverse order.
type Stack struct {
	store  xplane.Store
	frames [][]int
}

func NewStack(store xplane.Store) *Stack {
	return &Stack{store: store}
}

// Push snapshots the full assignment table.
func (s *Stack) Push() {
	snap := make([]int, xplane.NumButtons)
	s.store.Ints(xplane.JoystickButtonAssignments, snap, 0)
	s.frames = append(s.frames, snap)
}

// Pop writes the most recent snapshot back and discards it. It returns false
// and leaves the table untouched when the stack is empty.
func (s *Stack) Pop() bool {
	n := len(s.frames)
	if n == 0 {
		return false
	}
	snap := s.frames[n-1]
	s.frames[n-1] = nil
	s.frames = s.frames[:n-1]
	s.store.SetInts(xplane.JoystickButtonAssignments, snap, 0)
	return true
}

func (s *Stack) Depth() int {
	return len(s.frames)
}

// Unwind pops every snapshot, leaving the table as it was before the first
// Push, and returns how many were popped.
func (s *Stack) Unwind() int {
	n := 0
	for s.Pop() {
		n++
	}
	return n
}

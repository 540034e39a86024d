package memory

import "errors"

// StackDepth is the number of nested subroutine calls the machine supports.
const StackDepth = 16

var (
	// ErrStackOverflow is returned by Push when all frames are in use.
	ErrStackOverflow = errors.New("memory: call stack overflow")
	// ErrStackUnderflow is returned by Pop on an empty stack, which means a
	// RET executed without a matching CALL.
	ErrStackUnderflow = errors.New("memory: call stack underflow")
)

// Stack is the fixed-capacity return-address stack with an explicit stack
// pointer. The zero value is an empty stack.
type Stack struct {
	frames [StackDepth]uint16
	sp     uint8
}

// Push saves a return address. Pushing beyond StackDepth frames fails.
func (s *Stack) Push(addr uint16) error {
	if s.sp >= StackDepth {
		return ErrStackOverflow
	}
	s.frames[s.sp] = addr
	s.sp++
	return nil
}

// Pop removes and returns the most recently pushed address.
func (s *Stack) Pop() (uint16, error) {
	if s.sp == 0 {
		return 0, ErrStackUnderflow
	}
	s.sp--
	return s.frames[s.sp], nil
}

// Depth reports how many frames are in use.
func (s *Stack) Depth() int { return int(s.sp) }

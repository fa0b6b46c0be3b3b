// Copyright 2011, 2013 Vadim Vygonets. All rights reserved.
// Use of this source code is governed by the Bugroff
// license that can be found in the LICENSE file.

package forth

// Stack is a LIFO of T, used for both the parameter stack and the
// return stack.  The zero Stack is empty and ready to use.
type Stack[T comparable] struct {
	s []T
}

// NewStack returns a stack holding items, the last one on top.
func NewStack[T comparable](items ...T) *Stack[T] {
	return &Stack[T]{s: append([]T(nil), items...)}
}

// Clone returns an independent copy of s with the same order.
func (s *Stack[T]) Clone() *Stack[T] {
	return &Stack[T]{s: append(make([]T, 0, len(s.s)), s.s...)}
}

// Depth returns the number of items on s.
func (s *Stack[T]) Depth() int {
	return len(s.s)
}

// Clear empties s.
func (s *Stack[T]) Clear() {
	s.s = s.s[:0]
}

func (s *Stack[T]) need(down int) error {
	if len(s.s) < down {
		return StackUnderflow
	}
	return nil
}

// Push puts v on top of s.
func (s *Stack[T]) Push(v T) {
	s.s = append(s.s, v)
}

// Pop removes and returns the top of s.
func (s *Stack[T]) Pop() (T, error) {
	var v T
	if err := s.need(1); err != nil {
		return v, err
	}
	s.s, v = s.s[:len(s.s)-1], s.s[len(s.s)-1]
	return v, nil
}

// Pop2 removes x2 (the top) and x1 (below it), returning them in
// stack-comment order ( x1 x2 -- ).  On underflow s is unchanged.
func (s *Stack[T]) Pop2() (x1, x2 T, err error) {
	if err = s.need(2); err != nil {
		return
	}
	x2, _ = s.Pop()
	x1, _ = s.Pop()
	return
}

// Peek returns the top of s without removing it.
func (s *Stack[T]) Peek() (T, error) {
	var v T
	if err := s.need(1); err != nil {
		return v, err
	}
	return s.s[len(s.s)-1], nil
}

// Pick copies the item at depth from (0 is the top) to the top.
func (s *Stack[T]) Pick(from int) error {
	if from < 0 {
		return StackUnderflow
	}
	if err := s.need(from + 1); err != nil {
		return err
	}
	s.s = append(s.s, s.s[len(s.s)-1-from])
	return nil
}

// Roll moves the item at depth from to the top.
func (s *Stack[T]) Roll(from int) error {
	if from < 0 {
		return StackUnderflow
	}
	if err := s.need(from + 1); err != nil {
		return err
	}
	l := len(s.s)
	v := s.s[l-1-from]
	copy(s.s[l-1-from:], s.s[l-from:])
	s.s[l-1] = v
	return nil
}

// Items returns the contents of s from top to bottom.
func (s *Stack[T]) Items() []T {
	r := make([]T, len(s.s))
	for i, v := range s.s {
		r[len(s.s)-1-i] = v
	}
	return r
}

// Equal reports whether s and o hold equal items in the same order.
func (s *Stack[T]) Equal(o *Stack[T]) bool {
	if len(s.s) != len(o.s) {
		return false
	}
	for i := range s.s {
		if s.s[i] != o.s[i] {
			return false
		}
	}
	return true
}

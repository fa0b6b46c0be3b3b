// Copyright 2013 Vadim Vygonets. All rights reserved.
// Use of this source code is governed by the Bugroff
// license that can be found in the LICENSE file.

package forth

// The words below run with next: each one leaves IP and NIP where
// execution continues.

// offset reads the integer cell at NIP.
func (m *Machine) offset() (int, error) {
	c, err := m.State.Memory.Get(m.State.NIP)
	if err != nil {
		return 0, err
	}
	n, ok := c.Address()
	if !ok {
		return 0, TypeMismatch
	}
	return n, nil
}

// branch ( -- )
//
// Jumps by the offset stored in the cell after BRANCH, counted from
// that cell.
func (m *Machine) branch() error {
	off, err := m.offset()
	if err != nil {
		return err
	}
	m.jump(m.State.NIP + off)
	return nil
}

// 0branch ( flag -- )
func (m *Machine) zeroBranch() error {
	c, err := m.pop()
	if err != nil {
		return err
	}
	if isZero(c) {
		return m.branch()
	}
	m.jump(m.State.NIP + 1)
	return nil
}

// lit ( -- x )
func (m *Machine) lit() error {
	c, err := m.State.Memory.Get(m.State.NIP)
	if err != nil {
		return err
	}
	m.push(c)
	m.jump(m.State.NIP + 1)
	return nil
}

// docol ( -- ) ( R: -- nest-sys )
func (m *Machine) docol() error {
	m.State.RStack.Push(m.State.NIP)
	m.jump(m.w + 1)
	return nil
}

// exit ( -- ) ( R: nest-sys -- )
func (m *Machine) exit() error {
	r, err := m.State.RStack.Pop()
	if err != nil {
		return rstackError(err)
	}
	m.jump(r)
	return nil
}

// execute ( i*x xt -- j*x )
func (m *Machine) execute() error {
	cfa, err := m.popXT()
	if err != nil {
		return err
	}
	return m.dispatch(cfa)
}

// move ( to from u -- )
//
// Copies u cells upwards one at a time, so overlapping ranges with
// the destination above the source are not preserved.
func (m *Machine) move() error {
	st := m.State
	if err := st.Stack.need(3); err != nil {
		return err
	}
	n, _ := st.Stack.Pop()
	from, _ := st.Stack.Pop()
	to, _ := st.Stack.Pop()
	length, ok1 := n.Address()
	src, ok2 := from.Address()
	dst, ok3 := to.Address()
	if !ok1 || !ok2 || !ok3 {
		return &Error{Errno: InvalidAddress, Addr: -1}
	}
	for i := 0; i < length; i++ {
		c, err := st.Memory.Get(src + i)
		if err != nil {
			return err
		}
		st.Memory.Set(dst+i, c)
	}
	m.advance()
	return nil
}

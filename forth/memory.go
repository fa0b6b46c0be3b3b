// Copyright 2013 Vadim Vygonets. All rights reserved.
// Use of this source code is governed by the Bugroff
// license that can be found in the LICENSE file.

package forth

import (
	"fmt"
	"io"

	"golang.org/x/tools/container/intsets"
)

// System variable addresses
const (
	AddrHere   = 0 // next free cell
	AddrLatest = 1 // link cell of the newest dictionary entry
	AddrState  = 2 // 0: interpreting, otherwise compiling

	// AddrUser is the lowest address not reserved for system
	// variables.
	AddrUser = 3
)

// Memory is a sparse, append-only, address-indexed store of cells.
// Reading an address that was never written is an AddressError.
type Memory struct {
	cells map[int]Cell
	addrs intsets.Sparse // written addresses, for ordered walks
}

// NewMemory returns an empty Memory.
func NewMemory() *Memory {
	return &Memory{cells: make(map[int]Cell)}
}

// Get returns the cell at a.
func (m *Memory) Get(a int) (Cell, error) {
	c, ok := m.cells[a]
	if !ok {
		return Nil, &Error{Errno: AddressError, Addr: a}
	}
	return c, nil
}

// Set stores c at a, overwriting or extending the store.
func (m *Memory) Set(a int, c Cell) {
	if m.cells == nil {
		m.cells = make(map[int]Cell)
	}
	m.cells[a] = c
	m.addrs.Insert(a)
}

// Has reports whether a was ever written.
func (m *Memory) Has(a int) bool {
	return m.addrs.Has(a)
}

// Len returns the number of written addresses.
func (m *Memory) Len() int {
	return m.addrs.Len()
}

// Addresses returns the written addresses in ascending order.
func (m *Memory) Addresses() []int {
	return m.addrs.AppendTo(nil)
}

// address reads the cell at a as an address.
func (m *Memory) address(a int) (int, error) {
	c, err := m.Get(a)
	if err != nil {
		return 0, err
	}
	v, ok := c.Address()
	if !ok {
		return 0, &Error{Errno: InvalidAddress, Addr: a}
	}
	return v, nil
}

// Clone returns an independent copy of m.
func (m *Memory) Clone() *Memory {
	n := &Memory{cells: make(map[int]Cell, len(m.cells))}
	for a, c := range m.cells {
		n.cells[a] = c
	}
	n.addrs.Copy(&m.addrs)
	return n
}

// Equal reports whether m and o hold the same cells at the same
// addresses.
func (m *Memory) Equal(o *Memory) bool {
	if !m.addrs.Equals(&o.addrs) {
		return false
	}
	for a, c := range m.cells {
		if o.cells[a] != c {
			return false
		}
	}
	return true
}

// Dump writes one line per written address in ascending order.
func (m *Memory) Dump(w io.Writer) {
	for _, a := range m.Addresses() {
		fmt.Fprintf(w, "%6d: %s\n", a, m.cells[a])
	}
}

// Copyright 2011, 2013 Vadim Vygonets. All rights reserved.
// Use of this source code is governed by the Bugroff
// license that can be found in the LICENSE file.

package forth

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/zephyrtronium/contains"
)

// State is everything a step reads or writes.  It is owned by one
// Machine and is the unit of snapshot and comparison.
type State struct {
	IP     int // instruction pointer
	NIP    int // next instruction pointer
	Memory *Memory
	Dict   *Dictionary
	RStack *Stack[int]
	Stack  *Stack[Cell]
}

// NewState returns an empty state with IP 0 and NIP 1.
func NewState() *State {
	return &State{
		NIP:    1,
		Memory: NewMemory(),
		Dict:   NewDictionary(),
		RStack: &Stack[int]{},
		Stack:  &Stack[Cell]{},
	}
}

// Machine drives the fetch-execute cycle over its State.
type Machine struct {
	State *State

	in       io.RuneReader
	out      io.Writer
	traceOut io.Writer
	debug    bool
	w        int // code field address of the executing word
}

// NewMachine returns a machine with an empty state reading KEY input
// from in and writing EMIT output to out.
func NewMachine(in io.RuneReader, out io.Writer) *Machine {
	return NewMachineWithState(NewState(), in, out)
}

// NewMachineWithState returns a machine owning st.
func NewMachineWithState(st *State, in io.RuneReader, out io.Writer) *Machine {
	if out == nil {
		out = io.Discard
	}
	return &Machine{
		State:    st,
		in:       in,
		out:      out,
		traceOut: out,
	}
}

// Input returns the KEY device.
func (m *Machine) Input() io.RuneReader {
	return m.in
}

// SetInput replaces the KEY device.
func (m *Machine) SetInput(in io.RuneReader) {
	m.in = in
}

// SetTrace turns step tracing on or off.  Trace lines go to w, or to
// the output writer when w is nil.
func (m *Machine) SetTrace(on bool, w io.Writer) {
	m.debug = on
	if w != nil {
		m.traceOut = w
	}
}

func (m *Machine) trace(format string, a ...interface{}) {
	if m.debug {
		fmt.Fprintf(m.traceOut, format, a...)
	}
}

// resolve returns the code field address and primitive for the cell c
// found at address at.
func (m *Machine) resolve(at int, c Cell) (int, *Primitive, error) {
	if p, ok := c.Prim(); ok {
		return at, p, nil
	}
	if cfa, ok := c.Ref(); ok {
		if cc, err := m.State.Memory.Get(cfa); err == nil {
			if p, ok := cc.Prim(); ok {
				return cfa, p, nil
			}
		}
		return 0, nil, &Error{Errno: UnresolvableCell, Addr: cfa}
	}
	return 0, nil, &Error{Errno: UnresolvableCell, Addr: at}
}

// invoke runs p, whose code field is at w, under its contract.
func (m *Machine) invoke(w int, p *Primitive) error {
	m.w = w
	var err error
	switch {
	case p.execNext != nil:
		err = p.execNext(m)
	case p.exec != nil:
		if err = p.exec(m); err == nil {
			m.advance()
		}
	default:
		err = &Error{Errno: UnresolvableCell, Addr: w}
	}
	if err != nil {
		return named(err, p.Name)
	}
	return nil
}

// dispatch runs the word whose code field is at cfa as if it occupied
// the current IP.
func (m *Machine) dispatch(cfa int) error {
	c, err := m.State.Memory.Get(cfa)
	if err != nil {
		return err
	}
	p, ok := c.Prim()
	if !ok {
		return &Error{Errno: UnresolvableCell, Addr: cfa}
	}
	m.trace("-> %s ", p.Name)
	return m.invoke(cfa, p)
}

// advance is the default rule: IP := NIP, NIP := IP+1.
func (m *Machine) advance() {
	m.State.IP = m.State.NIP
	m.State.NIP = m.State.IP + 1
}

// jump sets IP to a and NIP to the cell after it.
func (m *Machine) jump(a int) {
	m.State.IP = a
	m.State.NIP = a + 1
}

func named(err error, word string) error {
	switch e := err.(type) {
	case Errno:
		return &Error{Errno: e, Word: word}
	case *Error:
		if e.Word == "" {
			e.Word = word
		}
	}
	return err
}

// Step executes the cell at IP.  Any error is returned as an *Error
// and the state is left as the failing primitive left it.
func (m *Machine) Step() error {
	st := m.State
	ip, nip := st.IP, st.NIP
	c, err := st.Memory.Get(ip)
	if err != nil {
		return m.newError(err, ip, nip, "")
	}
	w, p, err := m.resolve(ip, c)
	if err != nil {
		return m.newError(err, ip, nip, "")
	}
	m.trace("@ %d: %s ", ip, p.Name)
	st.NIP = ip + 1
	if err = m.invoke(w, p); err != nil {
		m.trace("\n")
		return m.newError(err, ip, nip, p.Name)
	}
	for _, v := range st.Stack.Items() {
		m.trace(" %s", v)
	}
	m.trace("\n")
	return nil
}

// Run steps the machine until ctx is done, BYE or end of input, or an
// error.  BYE and end of input return nil.
func (m *Machine) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		switch err := m.Step(); {
		case err == nil:
		case errors.Is(err, Bye), errors.Is(err, EOF):
			return nil
		default:
			return err
		}
	}
}

// Reset clears both stacks, leaves compile mode and restarts at ip,
// as ABORT and QUIT would.
func (m *Machine) Reset(ip int) {
	m.State.Stack.Clear()
	m.State.RStack.Clear()
	m.State.Memory.Set(AddrState, Int(0))
	m.jump(ip)
}

// Define builds a dictionary header at HERE, links it as the newest
// entry and inserts it into the dictionary.  HERE is left at the new
// entry's code field, which the caller fills in.
func (m *Machine) Define(name string) (*DictionaryItem, error) {
	mem := m.State.Memory
	h, err := mem.address(AddrHere)
	if err != nil {
		return nil, err
	}
	prev := Nil
	if c, err := mem.Get(AddrLatest); err == nil && !c.IsNil() {
		a, ok := c.Address()
		if !ok {
			return nil, &Error{Errno: InvalidAddress, Addr: AddrLatest}
		}
		prev = Addr(a)
	}
	cfa := h + 3
	mem.Set(h, Ref(cfa))
	mem.Set(h+1, prev)
	mem.Set(h+2, Text(name))
	mem.Set(AddrHere, Addr(cfa))
	mem.Set(AddrLatest, Addr(h))
	return m.State.Dict.Insert(DictionaryItem{
		Name:             name,
		CodeFieldAddress: cfa,
	}), nil
}

// entryAt returns the dictionary entry whose link cell is at link.
func (m *Machine) entryAt(link int) (*DictionaryItem, error) {
	c, err := m.State.Memory.Get(link)
	if err != nil {
		return nil, err
	}
	cfa, ok := c.Int()
	if !ok {
		return nil, &Error{Errno: DictionaryInconsistency, Addr: link}
	}
	item, ok := m.State.Dict.ByCodeAddress(cfa)
	if !ok {
		return nil, &Error{Errno: DictionaryInconsistency, Addr: link}
	}
	return item, nil
}

// Latest returns the newest dictionary entry, as found through LATEST.
func (m *Machine) Latest() (*DictionaryItem, error) {
	link, err := m.State.Memory.address(AddrLatest)
	if err != nil {
		return nil, err
	}
	return m.entryAt(link)
}

// Chain walks the entry chain in memory from LATEST, newest first.
func (m *Machine) Chain() ([]*DictionaryItem, error) {
	mem := m.State.Memory
	c, err := mem.Get(AddrLatest)
	if err != nil || c.IsNil() {
		return nil, nil
	}
	var (
		items []*DictionaryItem
		seen  contains.Set
	)
	for !c.IsNil() {
		link, ok := c.Address()
		if !ok {
			return items, &Error{Errno: DictionaryInconsistency, Addr: link}
		}
		if !seen.Add(uintptr(link)) {
			return items, &Error{Errno: DictionaryInconsistency, Addr: link}
		}
		item, err := m.entryAt(link)
		if err != nil {
			return items, err
		}
		items = append(items, item)
		if c, err = mem.Get(link + 1); err != nil {
			return items, err
		}
	}
	return items, nil
}

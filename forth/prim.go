// Copyright 2011, 2013 Vadim Vygonets. All rights reserved.
// Use of this source code is governed by the Bugroff
// license that can be found in the LICENSE file.

package forth

import (
	"fmt"
	"io"
)

var (
	forthFalse = Int(0)
	forthTrue  = Int(-1)
)

func flag(b bool) Cell {
	if b {
		return forthTrue
	}
	return forthFalse
}

// isZero reports whether c is a false flag.
func isZero(c Cell) bool {
	if c.IsNil() {
		return true
	}
	n, ok := c.Int()
	return ok && n == 0
}

func (m *Machine) push(c Cell) {
	m.State.Stack.Push(c)
}

func (m *Machine) pop() (Cell, error) {
	return m.State.Stack.Pop()
}

func (m *Machine) popInt() (int, error) {
	c, err := m.pop()
	if err != nil {
		return 0, err
	}
	n, ok := c.Int()
	if !ok {
		return 0, TypeMismatch
	}
	return n, nil
}

func (m *Machine) popAddress() (int, error) {
	c, err := m.pop()
	if err != nil {
		return 0, err
	}
	a, ok := c.Address()
	if !ok {
		return 0, &Error{Errno: InvalidAddress, Addr: -1}
	}
	return a, nil
}

// popXT pops an execution token: a ref cell or a code field address.
func (m *Machine) popXT() (int, error) {
	c, err := m.pop()
	if err != nil {
		return 0, err
	}
	if cfa, ok := c.Ref(); ok {
		return cfa, nil
	}
	a, ok := c.Address()
	if !ok {
		return 0, &Error{Errno: InvalidAddress, Addr: -1}
	}
	return a, nil
}

func (m *Machine) popText() (string, error) {
	c, err := m.pop()
	if err != nil {
		return "", err
	}
	s, ok := c.Text()
	if !ok {
		return "", TypeMismatch
	}
	return s, nil
}

// drop ( x -- )
func (m *Machine) drop() error {
	_, err := m.pop()
	return err
}

// dup ( x -- x x )
func (m *Machine) dup() error {
	return m.State.Stack.Pick(0)
}

// over ( x1 x2 -- x1 x2 x1 )
func (m *Machine) over() error {
	return m.State.Stack.Pick(1)
}

// swap ( x1 x2 -- x2 x1 )
func (m *Machine) swap() error {
	return m.State.Stack.Roll(1)
}

// rot ( x1 x2 x3 -- x2 x3 x1 )
func (m *Machine) rot() error {
	return m.State.Stack.Roll(2)
}

// depth ( -- +n )
func (m *Machine) depth() error {
	m.push(Int(m.State.Stack.Depth()))
	return nil
}

// >r ( x -- ) ( R:  -- x )
func (m *Machine) toR() error {
	n, err := m.popInt()
	if err != nil {
		return err
	}
	m.State.RStack.Push(n)
	return nil
}

// r> ( -- x ) ( R:  x -- )
func (m *Machine) rFrom() error {
	n, err := m.State.RStack.Pop()
	if err != nil {
		return rstackError(err)
	}
	m.push(Int(n))
	return nil
}

// r@ ( -- x ) ( R:  x -- x )
func (m *Machine) rFetch() error {
	n, err := m.State.RStack.Peek()
	if err != nil {
		return rstackError(err)
	}
	m.push(Int(n))
	return nil
}

// rdrop ( R: x -- )
func (m *Machine) rDrop() error {
	_, err := m.State.RStack.Pop()
	return rstackError(err)
}

func (m *Machine) binaryOp(op func(x, y int) Cell) error {
	if err := m.State.Stack.need(2); err != nil {
		return err
	}
	y, err := m.popInt()
	if err != nil {
		return err
	}
	x, err := m.popInt()
	if err != nil {
		return err
	}
	m.push(op(x, y))
	return nil
}

// + ( n1 n2 -- n3 )
func (m *Machine) plus() error {
	return m.binaryOp(func(x, y int) Cell { return Int(x + y) })
}

// - ( n1 n2 -- n3 )
func (m *Machine) minus() error {
	return m.binaryOp(func(x, y int) Cell { return Int(x - y) })
}

// * ( n1 n2 -- n3 )
func (m *Machine) star() error {
	return m.binaryOp(func(x, y int) Cell { return Int(x * y) })
}

// /mod ( n1 n2 -- n3 n4 )
func (m *Machine) slashMod() error {
	if err := m.State.Stack.need(2); err != nil {
		return err
	}
	y, err := m.popInt()
	if err != nil {
		return err
	}
	x, err := m.popInt()
	switch {
	case err != nil:
		return err
	case y == 0:
		return ZeroDivision
	}
	m.push(Int(x % y))
	m.push(Int(x / y))
	return nil
}

// negate ( n1 -- n2 )
func (m *Machine) negate() error {
	n, err := m.popInt()
	if err != nil {
		return err
	}
	m.push(Int(-n))
	return nil
}

// = ( x1 x2 -- flag )
//
// Cells with numeric payloads compare by number whatever their tags.
func (m *Machine) equals() error {
	x, y, err := m.State.Stack.Pop2()
	if err != nil {
		return err
	}
	xn, xok := x.Int()
	yn, yok := y.Int()
	if xok && yok {
		m.push(flag(xn == yn))
		return nil
	}
	m.push(flag(x == y))
	return nil
}

// < ( n1 n2 -- flag )
func (m *Machine) lessThan() error {
	return m.binaryOp(func(x, y int) Cell { return flag(x < y) })
}

// 0= ( x -- flag )
func (m *Machine) zeroEquals() error {
	c, err := m.pop()
	if err != nil {
		return err
	}
	m.push(flag(isZero(c)))
	return nil
}

// @ ( a-addr -- x )
func (m *Machine) fetch() error {
	a, err := m.popAddress()
	if err != nil {
		return err
	}
	c, err := m.State.Memory.Get(a)
	if err != nil {
		return err
	}
	m.push(c)
	return nil
}

// ! ( x a-addr -- )
func (m *Machine) store() error {
	if err := m.State.Stack.need(2); err != nil {
		return err
	}
	a, err := m.popAddress()
	if err != nil {
		return err
	}
	c, err := m.pop()
	if err != nil {
		return err
	}
	m.State.Memory.Set(a, c)
	return nil
}

// +! ( n a-addr -- )
func (m *Machine) plusStore() error {
	if err := m.State.Stack.need(2); err != nil {
		return err
	}
	a, err := m.popAddress()
	if err != nil {
		return err
	}
	n, err := m.popInt()
	if err != nil {
		return err
	}
	c, err := m.State.Memory.Get(a)
	if err != nil {
		return err
	}
	v, ok := c.Int()
	if !ok {
		return TypeMismatch
	}
	if c.Kind() == KindAddr {
		m.State.Memory.Set(a, Addr(v+n))
	} else {
		m.State.Memory.Set(a, Int(v+n))
	}
	return nil
}

func variable(a int) func(*Machine) error {
	return func(m *Machine) error {
		m.push(Addr(a))
		return nil
	}
}

// readKey reads one character from the input device.
func (m *Machine) readKey() (rune, error) {
	if m.in == nil {
		return 0, EOF
	}
	r, _, err := m.in.ReadRune()
	switch err {
	case nil:
		return r, nil
	case io.EOF:
		return 0, EOF
	default:
		return 0, &Error{Errno: IOError, Err: err}
	}
}

// key ( -- char )
func (m *Machine) key() error {
	r, err := m.readKey()
	if err != nil {
		return err
	}
	m.push(Char(r))
	return nil
}

// emit ( char -- )
func (m *Machine) emit() error {
	c, err := m.pop()
	if err != nil {
		return err
	}
	r, ok := c.Char()
	if !ok {
		return TypeMismatch
	}
	if _, err = io.WriteString(m.out, string(r)); err != nil {
		return &Error{Errno: IOError, Err: err}
	}
	return nil
}

// . ( n -- )
func (m *Machine) dot() error {
	c, err := m.pop()
	if err != nil {
		return err
	}
	var s string
	if n, ok := c.Int(); ok && c.Kind() == KindInt {
		s = fmt.Sprintf("%d ", n)
	} else {
		s = c.String() + " "
	}
	if _, err = io.WriteString(m.out, s); err != nil {
		return &Error{Errno: IOError, Err: err}
	}
	return nil
}

// cr ( -- )
func (m *Machine) cr() error {
	if _, err := io.WriteString(m.out, "\n"); err != nil {
		return &Error{Errno: IOError, Err: err}
	}
	return nil
}

// words ( -- )
func (m *Machine) words() error {
	items, err := m.Chain()
	if err != nil {
		return err
	}
	for _, item := range items {
		if !item.IsHidden {
			fmt.Fprintf(m.out, "%s ", item.Name)
		}
	}
	fmt.Fprintf(m.out, "\n")
	return nil
}

// trace ( flag -- )
func (m *Machine) setTrace() error {
	c, err := m.pop()
	if err != nil {
		return err
	}
	m.debug = !isZero(c)
	return nil
}

// bye ( -- )
func (m *Machine) bye() error {
	return Bye
}

var (
	primKey   = Ordinary("KEY", (*Machine).key)
	primLit   = WithNext("LIT", (*Machine).lit)
	primDocol = WithNext("DOCOL", (*Machine).docol)
	primExit  = WithNext("EXIT", (*Machine).exit)
)

var primitives = []*Primitive{
	// stack
	Ordinary("DROP", (*Machine).drop),
	Ordinary("DUP", (*Machine).dup),
	Ordinary("OVER", (*Machine).over),
	Ordinary("SWAP", (*Machine).swap),
	Ordinary("ROT", (*Machine).rot),
	Ordinary("DEPTH", (*Machine).depth),
	// rstack
	Ordinary(">R", (*Machine).toR),
	Ordinary("R>", (*Machine).rFrom),
	Ordinary("R@", (*Machine).rFetch),
	Ordinary("RDROP", (*Machine).rDrop),
	// arithmetics
	Ordinary("+", (*Machine).plus),
	Ordinary("-", (*Machine).minus),
	Ordinary("*", (*Machine).star),
	Ordinary("/MOD", (*Machine).slashMod),
	Ordinary("NEGATE", (*Machine).negate),
	// comparison
	Ordinary("=", (*Machine).equals),
	Ordinary("<", (*Machine).lessThan),
	Ordinary("0=", (*Machine).zeroEquals),
	// memory
	Ordinary("@", (*Machine).fetch),
	Ordinary("!", (*Machine).store),
	Ordinary("+!", (*Machine).plusStore),
	WithNext("MOVE", (*Machine).move),
	// variables
	Ordinary("HERE", variable(AddrHere)),
	Ordinary("LATEST", variable(AddrLatest)),
	Ordinary("STATE", variable(AddrState)),
	// control
	primLit,
	WithNext("BRANCH", (*Machine).branch),
	WithNext("0BRANCH", (*Machine).zeroBranch),
	primDocol,
	primExit,
	WithNext("EXECUTE", (*Machine).execute),
	// io
	primKey,
	Ordinary("EMIT", (*Machine).emit),
	Ordinary(".", (*Machine).dot),
	Ordinary("CR", (*Machine).cr),
	Ordinary("WORDS", (*Machine).words),
	// compiling!
	Ordinary("WORD", (*Machine).word),
	Ordinary("FIND", (*Machine).find),
	Ordinary("NUMBER", (*Machine).number),
	Ordinary(",", (*Machine).comma),
	Ordinary("CREATE", (*Machine).create),
	immediate(Ordinary("IMMEDIATE", (*Machine).immediate)),
	Ordinary("HIDDEN", (*Machine).hidden),
	immediate(Ordinary("[", (*Machine).lbrac)),
	Ordinary("]", (*Machine).rbrac),
	Ordinary(":", (*Machine).colon),
	immediate(Ordinary(";", (*Machine).semicolon)),
	Ordinary("'", (*Machine).tick),
	immediate(Ordinary("LITERAL", (*Machine).literal)),
	WithNext("INTERPRET", (*Machine).interpret),
	//
	Ordinary("TRACE", (*Machine).setTrace),
	Ordinary("BYE", (*Machine).bye),
}

var byName = func() map[string]*Primitive {
	rp := make(map[string]*Primitive)
	for _, p := range primitives {
		rp[p.Name] = p
	}
	return rp
}()

// Primitives returns the built-in words in installation order.
func Primitives() []*Primitive {
	return append([]*Primitive(nil), primitives...)
}

// Lookup returns the built-in word called name.
func Lookup(name string) (*Primitive, bool) {
	p, ok := byName[name]
	return p, ok
}

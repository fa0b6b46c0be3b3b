// Copyright 2013 Vadim Vygonets. All rights reserved.
// Use of this source code is governed by the Bugroff
// license that can be found in the LICENSE file.

package forth

import (
	"strconv"
	"unicode"
)

// Kind is the tag of a Cell.
type Kind uint8

// Cell kinds
const (
	KindNil Kind = iota
	KindInt
	KindChar
	KindText
	KindAddr
	KindPrim
	KindRef
)

var strKind = []string{
	"nil",
	"int",
	"char",
	"text",
	"addr",
	"prim",
	"ref",
}

func (k Kind) String() string {
	if int(k) < len(strKind) {
		return strKind[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Cell is one tagged value occupying one memory address or stack slot.
// The zero Cell is Nil.  Cells are compared with ==.
type Cell struct {
	kind Kind
	n    int
	s    string
	p    *Primitive
}

// Nil is the unparsed marker.
var Nil = Cell{}

// Int returns a signed integer cell.
func Int(n int) Cell { return Cell{kind: KindInt, n: n} }

// Char returns a character code cell.
func Char(r rune) Cell { return Cell{kind: KindChar, n: int(r)} }

// Text returns a text cell.
func Text(s string) Cell { return Cell{kind: KindText, s: s} }

// Addr returns a memory address cell.
func Addr(a int) Cell { return Cell{kind: KindAddr, n: a} }

// Prim returns a cell referencing a primitive.
func Prim(p *Primitive) Cell { return Cell{kind: KindPrim, p: p} }

// Ref returns a cell referencing the dictionary entry whose code
// field is at cfa.
func Ref(cfa int) Cell { return Cell{kind: KindRef, n: cfa} }

// Kind returns the cell's tag.
func (c Cell) Kind() Kind { return c.kind }

// IsNil reports whether c is the Nil cell.
func (c Cell) IsNil() bool { return c.kind == KindNil }

// Int returns the integer payload of Int, Char, Addr and Ref cells.
func (c Cell) Int() (int, bool) {
	switch c.kind {
	case KindInt, KindChar, KindAddr, KindRef:
		return c.n, true
	}
	return 0, false
}

// Address returns the payload of a cell used as an address.  Only Int
// and Addr cells qualify.
func (c Cell) Address() (int, bool) {
	switch c.kind {
	case KindInt, KindAddr:
		return c.n, true
	}
	return 0, false
}

// Char returns the payload of Char and Int cells as a rune.  Values
// outside 0..unicode.MaxRune are not characters.
func (c Cell) Char() (rune, bool) {
	switch c.kind {
	case KindChar, KindInt:
		if c.n < 0 || c.n > unicode.MaxRune {
			return 0, false
		}
		return rune(c.n), true
	}
	return 0, false
}

// Text returns the payload of a Text cell.
func (c Cell) Text() (string, bool) {
	return c.s, c.kind == KindText
}

// Prim returns the primitive referenced by a Prim cell.
func (c Cell) Prim() (*Primitive, bool) {
	return c.p, c.kind == KindPrim && c.p != nil
}

// Ref returns the code field address referenced by a Ref cell.
func (c Cell) Ref() (int, bool) {
	return c.n, c.kind == KindRef
}

func (c Cell) String() string {
	switch c.kind {
	case KindNil:
		return "nil"
	case KindInt:
		return strconv.Itoa(c.n)
	case KindChar:
		return strconv.QuoteRune(rune(c.n))
	case KindText:
		return strconv.Quote(c.s)
	case KindAddr:
		return "@" + strconv.Itoa(c.n)
	case KindPrim:
		if c.p == nil {
			return "<prim ?>"
		}
		return "<" + c.p.Name + ">"
	case KindRef:
		return "&" + strconv.Itoa(c.n)
	}
	return c.kind.String()
}

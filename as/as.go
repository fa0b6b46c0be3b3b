// Copyright 2013 Vadim Vygonets. All rights reserved.
// Use of this source code is governed by the Bugroff
// license that can be found in the LICENSE file.

// Package as assembles threaded code for the tforth VM.
//
// A listing is a sequence of blank-separated items; a backslash starts
// a comment running to the end of the line.
//
//	.L name		define label name at the current address
//	.C x		raw cell: integer, or the address of label x
//	.S text		text cell
//	LIT x		LIT followed by the cell x
//	BRANCH l	BRANCH followed by the offset to label l
//	0BRANCH l	0BRANCH followed by the offset to label l
//	123, 0x7b	integer cell
//	NAME		reference to the dictionary word NAME, or the
//			built-in primitive NAME when not in the dictionary
//
// Labels may be used before they are defined.
package as

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"tforth/forth"
)

var (
	ErrParse       = errors.New("parse error")
	ErrLabelExists = errors.New("label already exists")
	ErrUnknownWord = errors.New("unknown word")
	ErrUnresolved  = errors.New("unresolved symbols")
)

// Program is an assembled listing.
type Program struct {
	Base   int            // address of Cells[0]
	Cells  []forth.Cell   // assembled cells
	Labels map[string]int // label addresses
}

// End returns the address after the last cell.
func (p *Program) End() int {
	return p.Base + len(p.Cells)
}

// Load writes the program into mem.
func (p *Program) Load(mem *forth.Memory) {
	for i, c := range p.Cells {
		mem.Set(p.Base+i, c)
	}
}

type unres struct {
	i   int    // index into cells
	s   string // unresolved symbol
	rel bool   // offset from the cell rather than address
}

type parser struct {
	l    int    // line number
	a    int    // address
	f    []string
	d    map[string]int
	u    []unres
	i    []forth.Cell
	dict *forth.Dictionary
}

// Assemble assembles src at base, resolving words through dict, which
// may be nil.
func Assemble(src string, dict *forth.Dictionary, base int) (*Program, error) {
	p := &parser{
		a:    base,
		d:    make(map[string]int),
		dict: dict,
	}
	for _, line := range strings.Split(src, "\n") {
		p.l++
		if i := strings.IndexByte(line, '\\'); i >= 0 {
			line = line[:i]
		}
		p.f = strings.Fields(line)
		for len(p.f) > 0 {
			if err := p.item(); err != nil {
				return nil, fmt.Errorf("line %d: %w", p.l, err)
			}
		}
	}
	if syms := p.resolve(); len(syms) != 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnresolved, strings.Join(syms, " "))
	}
	return &Program{Base: base, Cells: p.i, Labels: p.d}, nil
}

func (p *parser) next() (string, error) {
	if len(p.f) == 0 {
		return "", ErrParse
	}
	s := p.f[0]
	p.f = p.f[1:]
	return s, nil
}

func (p *parser) store(c forth.Cell) {
	p.i = append(p.i, c)
	p.a++
}

func (p *parser) storeUnresolved(s string, rel bool) {
	p.u = append(p.u, unres{i: len(p.i), s: s, rel: rel})
	p.store(forth.Nil)
}

func (p *parser) resolve() []string {
	var syms []string
	for _, v := range p.u {
		a, ok := p.d[v.s]
		switch {
		case !ok:
			syms = append(syms, v.s)
		case v.rel:
			p.i[v.i] = forth.Int(a - (p.base() + v.i))
		default:
			p.i[v.i] = forth.Addr(a)
		}
	}
	return syms
}

func (p *parser) base() int {
	return p.a - len(p.i)
}

func parseNum(s string) (int, bool) {
	n, err := strconv.ParseInt(s, 0, strconv.IntSize)
	return int(n), err == nil
}

func (p *parser) defLabel(lbl string) error {
	if _, ok := p.d[lbl]; ok {
		return ErrLabelExists
	}
	p.d[lbl] = p.a
	return nil
}

// cell stores an integer, or the address of a label.
func (p *parser) cell(s string) {
	if n, ok := parseNum(s); ok {
		p.store(forth.Int(n))
	} else if a, ok := p.d[s]; ok {
		p.store(forth.Addr(a))
	} else {
		p.storeUnresolved(s, false)
	}
}

func (p *parser) word(name string) error {
	if p.dict != nil {
		if item, ok := p.dict.Find(name); ok {
			p.store(forth.Ref(item.CodeFieldAddress))
			return nil
		}
	}
	if prim, ok := forth.Lookup(name); ok {
		p.store(forth.Prim(prim))
		return nil
	}
	return fmt.Errorf("%w %q", ErrUnknownWord, name)
}

func (p *parser) item() error {
	s, _ := p.next()
	switch s {
	case ".L":
		lbl, err := p.next()
		if err != nil {
			return err
		}
		return p.defLabel(lbl)
	case ".C":
		x, err := p.next()
		if err != nil {
			return err
		}
		p.cell(x)
		return nil
	case ".S":
		t, err := p.next()
		if err != nil {
			return err
		}
		p.store(forth.Text(t))
		return nil
	case "LIT":
		x, err := p.next()
		if err != nil {
			return err
		}
		if err = p.word(s); err != nil {
			return err
		}
		p.cell(x)
		return nil
	case "BRANCH", "0BRANCH":
		lbl, err := p.next()
		if err != nil {
			return err
		}
		if err = p.word(s); err != nil {
			return err
		}
		if n, ok := parseNum(lbl); ok {
			p.store(forth.Int(n))
		} else {
			p.storeUnresolved(lbl, true)
		}
		return nil
	}
	if n, ok := parseNum(s); ok {
		p.store(forth.Int(n))
		return nil
	}
	return p.word(s)
}

// Copyright 2013 Vadim Vygonets. All rights reserved.
// Use of this source code is governed by the Bugroff
// license that can be found in the LICENSE file.

package forth

import (
	"strconv"
	"strings"
)

// Scanner states of WORD
const (
	scanBegin = iota
	scanComment
	scanWord
	scanEnd
)

func isBlank(r rune) bool {
	return r == ' ' || r == '\n' || r == '\t' || r == '\r'
}

// word ( -- text )
//
// Reads the next blank-delimited word through KEY.  Blanks are space,
// tab, CR and LF: any of them ends a word and all are skipped before
// one.  A backslash outside a word starts a comment running to the
// end of the line.
func (m *Machine) word() error {
	var (
		state = scanBegin
		buf   strings.Builder
	)
	for state != scanEnd {
		if err := primKey.exec(m); err != nil {
			if err == EOF && state == scanWord {
				break
			}
			return err
		}
		c, _ := m.pop()
		r, ok := c.Char()
		if !ok {
			return TypeMismatch
		}
		switch state {
		case scanBegin:
			switch {
			case r == '\\':
				state = scanComment
			case !isBlank(r):
				buf.WriteRune(r)
				state = scanWord
			}
		case scanComment:
			if r == '\n' {
				state = scanBegin
			}
		case scanWord:
			if isBlank(r) {
				state = scanEnd
			} else {
				buf.WriteRune(r)
			}
		}
	}
	m.push(Text(buf.String()))
	return nil
}

// find ( text -- | xt )
//
// Absence of the word is not an error: nothing is pushed.
func (m *Machine) find() error {
	name, err := m.popText()
	if err != nil {
		return err
	}
	if item, ok := m.State.Dict.Find(name); ok {
		m.push(Addr(item.CodeFieldAddress))
	}
	return nil
}

func parseNumber(s string) (int, bool) {
	n, err := strconv.ParseInt(s, 10, strconv.IntSize)
	return int(n), err == nil
}

// number ( text -- n 0 | nil -1 )
func (m *Machine) number() error {
	s, err := m.popText()
	if err != nil {
		return err
	}
	if n, ok := parseNumber(s); ok {
		m.push(Int(n))
		m.push(Int(0))
	} else {
		m.push(Nil)
		m.push(Int(-1))
	}
	return nil
}

// compile stores c at HERE and advances HERE.
func (m *Machine) compile(c Cell) error {
	mem := m.State.Memory
	h, err := mem.address(AddrHere)
	if err != nil {
		return err
	}
	mem.Set(h, c)
	mem.Set(AddrHere, Addr(h+1))
	return nil
}

// Comma stores c at HERE and advances HERE, as , does.
func (m *Machine) Comma(c Cell) error {
	return m.compile(c)
}

// , ( x -- )
func (m *Machine) comma() error {
	c, err := m.pop()
	if err != nil {
		return err
	}
	return m.compile(c)
}

// create ( text -- )
func (m *Machine) create() error {
	name, err := m.popText()
	if err != nil {
		return err
	}
	_, err = m.Define(name)
	return err
}

// immediate ( -- )
func (m *Machine) immediate() error {
	item, err := m.Latest()
	if err != nil {
		return err
	}
	item.IsImmediate = !item.IsImmediate
	return nil
}

// hidden ( xt -- )
func (m *Machine) hidden() error {
	cfa, err := m.popXT()
	if err != nil {
		return err
	}
	item, ok := m.State.Dict.ByCodeAddress(cfa)
	if !ok {
		return &Error{Errno: DictionaryInconsistency, Addr: cfa}
	}
	item.IsHidden = !item.IsHidden
	return nil
}

func (m *Machine) compiling() bool {
	c, err := m.State.Memory.Get(AddrState)
	return err == nil && !isZero(c)
}

// [ ( -- )
func (m *Machine) lbrac() error {
	m.State.Memory.Set(AddrState, Int(0))
	return nil
}

// ] ( -- )
func (m *Machine) rbrac() error {
	m.State.Memory.Set(AddrState, Int(1))
	return nil
}

// : ( "name" -- )
func (m *Machine) colon() error {
	if err := m.word(); err != nil {
		return err
	}
	name, _ := m.popText()
	item, err := m.Define(name)
	if err != nil {
		return err
	}
	if err = m.compile(Prim(primDocol)); err != nil {
		return err
	}
	item.IsHidden = true
	return m.rbrac()
}

// ; ( -- )
func (m *Machine) semicolon() error {
	if err := m.compile(Prim(primExit)); err != nil {
		return err
	}
	item, err := m.Latest()
	if err != nil {
		return err
	}
	item.IsHidden = false
	return m.lbrac()
}

// ' ( "name" -- xt )
func (m *Machine) tick() error {
	if err := m.word(); err != nil {
		return err
	}
	name, _ := m.popText()
	item, ok := m.State.Dict.Find(name)
	if !ok {
		return &Error{Errno: UnresolvableCell, Token: name}
	}
	m.push(Ref(item.CodeFieldAddress))
	return nil
}

// literal ( x -- )
func (m *Machine) literal() error {
	c, err := m.pop()
	if err != nil {
		return err
	}
	if err = m.compile(Prim(primLit)); err != nil {
		return err
	}
	return m.compile(c)
}

// interpret ( i*x "name" -- j*x )
//
// Reads a word and executes or compiles it according to STATE and
// the word's immediate flag.  Unknown words are parsed as numbers.
func (m *Machine) interpret() error {
	if err := m.word(); err != nil {
		return err
	}
	name, _ := m.popText()
	if item, ok := m.State.Dict.Find(name); ok {
		if item.IsImmediate || !m.compiling() {
			return m.dispatch(item.CodeFieldAddress)
		}
		if err := m.compile(Ref(item.CodeFieldAddress)); err != nil {
			return err
		}
		m.advance()
		return nil
	}
	n, ok := parseNumber(name)
	if !ok {
		return &Error{Errno: UnresolvableCell, Token: name}
	}
	if m.compiling() {
		if err := m.compile(Prim(primLit)); err != nil {
			return err
		}
		if err := m.compile(Int(n)); err != nil {
			return err
		}
	} else {
		m.push(Int(n))
	}
	m.advance()
	return nil
}

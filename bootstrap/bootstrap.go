// Copyright 2013 Vadim Vygonets. All rights reserved.
// Use of this source code is governed by the Bugroff
// license that can be found in the LICENSE file.

// Package bootstrap installs the built-in words and the outer
// interpreter into an empty tforth machine.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"

	"tforth/as"
	"tforth/forth"
)

// DefaultBase is the first free address of a fresh image.
const DefaultBase = 16

// ErrBase is returned for a base overlapping the system variables.
var ErrBase = errors.New("bootstrap: base overlaps system variables")

const quit = `
\ outer interpreter
.L quit
	INTERPRET
	BRANCH quit
`

// Core holds the definitions evaluated into every image.
const Core = `
\ control structures
: IF [ ' 0BRANCH ] LITERAL , HERE @ 0 , ; IMMEDIATE
: THEN DUP HERE @ SWAP - SWAP ! ; IMMEDIATE
: ELSE [ ' BRANCH ] LITERAL , HERE @ 0 ,
  SWAP DUP HERE @ SWAP - SWAP ! ; IMMEDIATE
: BEGIN HERE @ ; IMMEDIATE
: UNTIL [ ' 0BRANCH ] LITERAL , HERE @ - , ; IMMEDIATE
: AGAIN [ ' BRANCH ] LITERAL , HERE @ - , ; IMMEDIATE

\ stack
: NIP SWAP DROP ;
: TUCK SWAP OVER ;
: 2DUP OVER OVER ;
: 2DROP DROP DROP ;
: ?DUP DUP IF DUP THEN ;

\ arithmetics
: 1+ 1 + ;
: 1- 1 - ;
: / /MOD NIP ;
: MOD /MOD DROP ;
: > SWAP < ;
: <> = 0= ;
: 0< 0 < ;
: ABS DUP 0< IF NEGATE THEN ;
: NOT 0= ;

\ io
: BL 32 ;
: SPACE BL EMIT ;
`

// Image describes an installed machine.
type Image struct {
	Base int // first address after the system variables
	Quit int // address of the outer interpreter loop

	// Encoding decodes sources given to Evaluate.  Nil means UTF-8.
	Encoding encoding.Encoding
}

// Install builds the dictionary of built-in words at base, assembles
// the outer interpreter after it and evaluates Core.  The machine is
// left at the start of the outer interpreter.
func Install(ctx context.Context, m *forth.Machine, base int) (*Image, error) {
	if base <= forth.AddrState {
		return nil, ErrBase
	}
	mem := m.State.Memory
	mem.Set(forth.AddrHere, forth.Addr(base))
	mem.Set(forth.AddrLatest, forth.Nil)
	mem.Set(forth.AddrState, forth.Int(0))
	for _, p := range forth.Primitives() {
		item, err := m.Define(p.Name)
		if err != nil {
			return nil, err
		}
		if err = m.Comma(forth.Prim(p)); err != nil {
			return nil, err
		}
		item.IsImmediate = p.Immediate
	}
	img := &Image{Base: base}
	if err := img.assembleQuit(m); err != nil {
		return nil, err
	}
	if err := img.Evaluate(ctx, m, strings.NewReader(Core)); err != nil {
		return nil, fmt.Errorf("bootstrap: core: %w", err)
	}
	return img, nil
}

func (img *Image) assembleQuit(m *forth.Machine) error {
	mem := m.State.Memory
	docol, _ := forth.Lookup("DOCOL")
	item, err := m.Define("QUIT")
	if err != nil {
		return err
	}
	if err = m.Comma(forth.Prim(docol)); err != nil {
		return err
	}
	prog, err := as.Assemble(quit, m.State.Dict, item.CodeFieldAddress+1)
	if err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}
	prog.Load(mem)
	mem.Set(forth.AddrHere, forth.Addr(prog.End()))
	img.Quit = prog.Labels["quit"]
	m.Reset(img.Quit)
	return nil
}

// Evaluate runs the outer interpreter over the source read from r,
// decoded with img.Encoding, and restores the machine's input afterwards.  The stacks are kept, so
// successive calls see each other's results.  After an error the
// caller should Reset the machine to img.Quit.
func (img *Image) Evaluate(ctx context.Context, m *forth.Machine, r io.Reader) error {
	prev := m.Input()
	defer m.SetInput(prev)
	m.SetInput(forth.NewInput(r, img.Encoding))
	m.State.IP, m.State.NIP = img.Quit, img.Quit+1
	return m.Run(ctx)
}

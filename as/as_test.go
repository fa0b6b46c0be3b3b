// Copyright 2013 Vadim Vygonets. All rights reserved.
// Use of this source code is governed by the Bugroff
// license that can be found in the LICENSE file.

package as

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"testing"

	"github.com/lithammer/dedent"
	"github.com/sergi/go-diff/diffmatchpatch"

	"tforth/forth"
)

var reNL = regexp.MustCompile(`(?m)^`)

func diff(l, r string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(l, r, false)
	pretty := dmp.DiffPrettyText(diffs)
	return reNL.ReplaceAllLiteralString(pretty, "\t")
}

func listing(p *Program) string {
	var b strings.Builder
	for i, c := range p.Cells {
		fmt.Fprintf(&b, "%d %s\n", p.Base+i, c)
	}
	return b.String()
}

func TestAssemble(t *testing.T) {
	type testrow struct {
		Source   string
		Expected string
	}
	data := []testrow{
		{
			Source: `
				\ outer interpreter
				.L quit
					INTERPRET
					BRANCH quit
			`,
			Expected: `
				100 <INTERPRET>
				101 <BRANCH>
				102 -2
			`,
		},
		{
			Source: `
				.L top
					DUP 0BRANCH done
					LIT -1 + BRANCH top
				.L done
					DROP .C top .S hi 0x10
			`,
			Expected: `
				100 <DUP>
				101 <0BRANCH>
				102 6
				103 <LIT>
				104 -1
				105 <+>
				106 <BRANCH>
				107 -7
				108 <DROP>
				109 @100
				110 "hi"
				111 16
			`,
		},
		{
			Source: `LIT fwd .C fwd .L fwd`,
			Expected: `
				100 <LIT>
				101 @103
				102 @103
			`,
		},
	}
	for i, row := range data {
		p, err := Assemble(dedent.Dedent(row.Source), nil, 100)
		if err != nil {
			t.Errorf("%s/%03d: error: %v", t.Name(), i, err)
			continue
		}
		actual := listing(p)
		expected := dedent.Dedent(row.Expected)[1:]
		if actual != expected {
			t.Errorf("%s/%03d: wrong output:\n%s", t.Name(), i, diff(expected, actual))
		}
	}
}

func TestAssemble_Dictionary(t *testing.T) {
	m := forth.NewMachine(nil, nil)
	mem := m.State.Memory
	mem.Set(forth.AddrHere, forth.Addr(10))
	mem.Set(forth.AddrLatest, forth.Nil)
	item, err := m.Define("DUP")
	if err != nil {
		t.Fatal(err)
	}

	p, err := Assemble("DUP SWAP", m.State.Dict, 50)
	if err != nil {
		t.Fatal(err)
	}
	swap, _ := forth.Lookup("SWAP")
	if p.Cells[0] != forth.Ref(item.CodeFieldAddress) || p.Cells[1] != forth.Prim(swap) {
		t.Errorf("cells %v", p.Cells)
	}

	p.Load(mem)
	if c, _ := mem.Get(51); c != forth.Prim(swap) || p.End() != 52 {
		t.Errorf("memory[51] = %v, End() = %d", c, p.End())
	}
}

func TestAssemble_Errors(t *testing.T) {
	type testrow struct {
		Source   string
		Expected error
	}
	data := []testrow{
		{"FROB", ErrUnknownWord},
		{".L a .L a", ErrLabelExists},
		{"BRANCH nowhere", ErrUnresolved},
		{"LIT", ErrParse},
		{".S", ErrParse},
	}
	for i, row := range data {
		_, err := Assemble(row.Source, nil, 0)
		if !errors.Is(err, row.Expected) {
			t.Errorf("%s/%03d: %q: error %v, want %v", t.Name(), i, row.Source, err, row.Expected)
		}
	}
}

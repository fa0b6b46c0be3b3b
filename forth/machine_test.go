// Copyright 2013 Vadim Vygonets. All rights reserved.
// Use of this source code is governed by the Bugroff
// license that can be found in the LICENSE file.

package forth

import (
	"bytes"
	"regexp"
	"strings"
	"testing"

	"github.com/sergi/go-diff/diffmatchpatch"
)

const testBase = 16

// newTestMachine returns a machine reading input, with every built-in
// word defined from testBase and a two-cell outer interpreter
// (INTERPRET BRANCH -2) after them.  The machine is left at the
// interpreter loop, whose address is returned.
func newTestMachine(t *testing.T, input string) (*Machine, *bytes.Buffer, int) {
	t.Helper()
	var out bytes.Buffer
	m := NewMachine(strings.NewReader(input), &out)
	mem := m.State.Memory
	mem.Set(AddrHere, Addr(testBase))
	mem.Set(AddrLatest, Nil)
	mem.Set(AddrState, Int(0))
	for _, p := range primitives {
		item, err := m.Define(p.Name)
		if err != nil {
			t.Fatalf("define %s: %v", p.Name, err)
		}
		if err = m.Comma(Prim(p)); err != nil {
			t.Fatalf("compile %s: %v", p.Name, err)
		}
		item.IsImmediate = p.Immediate
	}
	quit, err := mem.address(AddrHere)
	if err != nil {
		t.Fatal(err)
	}
	mem.Set(quit, Prim(byName["INTERPRET"]))
	mem.Set(quit+1, Prim(byName["BRANCH"]))
	mem.Set(quit+2, Int(-2))
	mem.Set(AddrHere, Addr(quit+3))
	m.jump(quit)
	return m, &out, quit
}

// load writes cells from a and points IP at a.
func load(m *Machine, a int, cells ...Cell) {
	for i, c := range cells {
		m.State.Memory.Set(a+i, c)
	}
	m.jump(a)
}

func prim(name string) Cell {
	return Prim(byName[name])
}

func stackOf(cells ...Cell) *Stack[Cell] {
	return NewStack(cells...)
}

func here(t *testing.T, m *Machine) int {
	t.Helper()
	h, err := m.State.Memory.address(AddrHere)
	if err != nil {
		t.Fatal(err)
	}
	return h
}

var reNL = regexp.MustCompile(`(?m)^`)

func diff(l, r string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(l, r, false)
	pretty := dmp.DiffPrettyText(diffs)
	return reNL.ReplaceAllLiteralString(pretty, "\t")
}

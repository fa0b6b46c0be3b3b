// Copyright 2013 Vadim Vygonets. All rights reserved.
// Use of this source code is governed by the Bugroff
// license that can be found in the LICENSE file.

package forth

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/lithammer/dedent"
)

func TestWord(t *testing.T) {
	type testrow struct {
		Input    string
		Expected []string
	}
	data := []testrow{
		{"foo bar", []string{"foo", "bar"}},
		{"  \t\n foo\r\nbar  ", []string{"foo", "bar"}},
		{"\\ a comment\nfoo \\ another\n  bar", []string{"foo", "bar"}},
		{"a\\b c", []string{"a\\b", "c"}},
		{"\\ only a comment", nil},
		{"", nil},
	}
	for i, row := range data {
		m := NewMachine(strings.NewReader(row.Input), nil)
		var words []string
		for {
			load(m, 100, prim("WORD"))
			err := m.Step()
			if errors.Is(err, EOF) {
				break
			}
			if err != nil {
				t.Fatalf("%s/%03d: %v", t.Name(), i, err)
			}
			c, _ := m.State.Stack.Pop()
			s, _ := c.Text()
			words = append(words, s)
		}
		if strings.Join(words, "|") != strings.Join(row.Expected, "|") {
			t.Errorf("%s/%03d: words %q, want %q", t.Name(), i, words, row.Expected)
		}
	}
}

func TestFind(t *testing.T) {
	m, _, _ := newTestMachine(t, "")
	dup, _ := m.State.Dict.Find("DUP")
	const at = 1000

	load(m, at, prim("FIND"))
	m.State.Stack = stackOf(Int(1), Text("DUP"))
	if err := m.Step(); err != nil {
		t.Fatal(err)
	}
	if !m.State.Stack.Equal(stackOf(Int(1), Addr(dup.CodeFieldAddress))) {
		t.Errorf("FIND DUP: stack %v", m.State.Stack.Items())
	}

	load(m, at, prim("FIND"))
	m.State.Stack = stackOf(Int(1), Text("NOPE"))
	if err := m.Step(); err != nil {
		t.Fatal(err)
	}
	if !m.State.Stack.Equal(stackOf(Int(1))) {
		t.Errorf("FIND NOPE: stack %v", m.State.Stack.Items())
	}

	dup.IsHidden = true
	load(m, at, prim("FIND"))
	m.State.Stack = stackOf(Text("DUP"))
	if err := m.Step(); err != nil {
		t.Fatal(err)
	}
	if m.State.Stack.Depth() != 0 {
		t.Errorf("FIND of hidden DUP: stack %v", m.State.Stack.Items())
	}
}

func TestNumber(t *testing.T) {
	type testrow struct {
		Text     string
		Expected []Cell
	}
	data := []testrow{
		{"42", []Cell{Int(42), Int(0)}},
		{"-17", []Cell{Int(-17), Int(0)}},
		{"0", []Cell{Int(0), Int(0)}},
		{"12ab", []Cell{Nil, Int(-1)}},
		{"", []Cell{Nil, Int(-1)}},
		{"DUP", []Cell{Nil, Int(-1)}},
	}
	for i, row := range data {
		m, err := stepWord(t, "NUMBER", Text(row.Text))
		if err != nil {
			t.Errorf("%s/%03d: %v", t.Name(), i, err)
			continue
		}
		if !m.State.Stack.Equal(stackOf(row.Expected...)) {
			t.Errorf("%s/%03d: NUMBER %q: stack %v", t.Name(), i, row.Text, m.State.Stack.Items())
		}
	}
}

func TestCreateImmediateHidden(t *testing.T) {
	m, _, _ := newTestMachine(t, "")
	h := here(t, m)

	load(m, 1000, prim("CREATE"), prim("IMMEDIATE"), prim("HIDDEN"))
	m.State.Stack = stackOf(Text("NEW"))
	if err := m.Step(); err != nil {
		t.Fatal(err)
	}
	item, ok := m.State.Dict.Find("NEW")
	if !ok || item.CodeFieldAddress != h+3 || here(t, m) != h+3 {
		t.Fatalf("CREATE NEW: %v, %v, HERE %d", item, ok, here(t, m))
	}
	if c, _ := m.State.Memory.Get(AddrLatest); c != Addr(h) {
		t.Errorf("LATEST = %v, want @%d", c, h)
	}

	if err := m.Step(); err != nil {
		t.Fatal(err)
	}
	if !item.IsImmediate {
		t.Error("IMMEDIATE did not flag the newest entry")
	}

	m.State.Stack = stackOf(Ref(item.CodeFieldAddress))
	if err := m.Step(); err != nil {
		t.Fatal(err)
	}
	if _, ok := m.State.Dict.Find("NEW"); ok || !item.IsHidden {
		t.Error("HIDDEN did not hide the entry")
	}
}

func TestInterpret(t *testing.T) {
	type testrow struct {
		Input  string
		Output string
		Stack  []Cell
	}
	data := []testrow{
		{"2 3 + .", "5 ", nil},
		{"1 2 SWAP", "", []Cell{Int(2), Int(1)}},
		{": SQ DUP * ; 7 SQ .", "49 ", nil},
		{": SQ DUP * ; : QUAD SQ SQ ; 3 QUAD", "", []Cell{Int(81)}},
		{": TEN 10 ; : TEN TEN 1 + ; TEN", "", []Cell{Int(11)}},
		{": FOO 42 ; IMMEDIATE : BAR FOO ;", "", []Cell{Int(42)}},
		{": LIT7 [ 7 ] LITERAL ; LIT7 LIT7 +", "", []Cell{Int(14)}},
		{"' DUP 5 SWAP EXECUTE *", "", []Cell{Int(25)}},
		{"\\ nothing here\n65 EMIT 66 EMIT CR", "AB\n", nil},
		{"HERE @ 99 , @", "", []Cell{Int(99)}},
	}
	for i, row := range data {
		m, out, _ := newTestMachine(t, row.Input)
		if err := m.Run(context.Background()); err != nil {
			t.Errorf("%s/%03d: %q: %v", t.Name(), i, row.Input, err)
			continue
		}
		if out.String() != row.Output {
			t.Errorf("%s/%03d: %q: output %q, want %q", t.Name(), i, row.Input, out.String(), row.Output)
		}
		if !m.State.Stack.Equal(stackOf(row.Stack...)) {
			t.Errorf("%s/%03d: %q: stack %v", t.Name(), i, row.Input, m.State.Stack.Items())
		}
	}
}

func TestInterpret_Errors(t *testing.T) {
	type testrow struct {
		Input string
		Errno Errno
		Token string
	}
	data := []testrow{
		{"FROB", UnresolvableCell, "FROB"},
		{"1 2 FROB", UnresolvableCell, "FROB"},
		{"DROP", StackUnderflow, ""},
		{"' NOPE", UnresolvableCell, "NOPE"},
		{"1 0 /MOD", ZeroDivision, ""},
	}
	for i, row := range data {
		m, _, _ := newTestMachine(t, row.Input)
		err := m.Run(context.Background())
		var e *Error
		if !errors.As(err, &e) || e.Errno != row.Errno || e.Token != row.Token {
			t.Errorf("%s/%03d: %q: error %#v", t.Name(), i, row.Input, err)
		}
	}
}

func TestInterpret_Compiles(t *testing.T) {
	m, _, _ := newTestMachine(t, ": ADD5 5 + ;")
	if err := m.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	item, ok := m.State.Dict.Find("ADD5")
	if !ok || item.IsHidden {
		t.Fatalf("ADD5: %v, %v", item, ok)
	}
	plus, _ := m.State.Dict.Find("+")

	var got strings.Builder
	for a := item.CodeFieldAddress; a < here(t, m); a++ {
		c, _ := m.State.Memory.Get(a)
		got.WriteString(c.String() + "\n")
	}
	expected := dedent.Dedent(`
		<DOCOL>
		<LIT>
		5
		&` + strconv.Itoa(plus.CodeFieldAddress) + `
		<EXIT>
	`)[1:]
	if got.String() != expected {
		t.Errorf("compiled body:\n%s", diff(expected, got.String()))
	}
	if m.compiling() {
		t.Error("still compiling after ;")
	}
}

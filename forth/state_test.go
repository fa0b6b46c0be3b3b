// Copyright 2013 Vadim Vygonets. All rights reserved.
// Use of this source code is governed by the Bugroff
// license that can be found in the LICENSE file.

package forth

import (
	"strings"
	"testing"
)

func TestState_CloneIndependent(t *testing.T) {
	m, _, _ := newTestMachine(t, "")
	m.State.Stack.Push(Int(1))
	m.State.RStack.Push(2)
	snap := m.State.Clone()
	if !snap.Equal(m.State) {
		t.Fatalf("clone differs:\n%s", snap.Diff(m.State))
	}

	m.State.Stack.Push(Int(3))
	m.State.RStack.Clear()
	m.State.Memory.Set(5000, Int(4))
	item, _ := m.State.Dict.Find("DUP")
	item.IsHidden = true

	if snap.Stack.Depth() != 1 || snap.RStack.Depth() != 1 || snap.Memory.Has(5000) {
		t.Error("snapshot shares stacks or memory")
	}
	if dup, ok := snap.Dict.Find("DUP"); !ok || dup.IsHidden {
		t.Error("snapshot shares dictionary entries")
	}
}

func TestState_Diff(t *testing.T) {
	st := NewState()
	st.Memory.Set(3, Int(1))
	o := st.Clone()
	if d := st.Diff(o); d != "" {
		t.Fatalf("diff of equal states: %q", d)
	}
	o.Memory.Set(3, Int(2))
	o.Stack.Push(Text("x"))
	d := st.Diff(o)
	for _, want := range []string{"-      3: 1", "+      3: 2", "+ stack: \"x\""} {
		if !strings.Contains(d, want) {
			t.Errorf("diff lacks %q:\n%s", want, d)
		}
	}
}

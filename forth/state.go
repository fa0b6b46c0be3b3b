// Copyright 2013 Vadim Vygonets. All rights reserved.
// Use of this source code is governed by the Bugroff
// license that can be found in the LICENSE file.

package forth

import (
	"fmt"
	"io"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Clone returns a snapshot of st sharing no mutable state with it.
func (st *State) Clone() *State {
	return &State{
		IP:     st.IP,
		NIP:    st.NIP,
		Memory: st.Memory.Clone(),
		Dict:   st.Dict.Clone(),
		RStack: st.RStack.Clone(),
		Stack:  st.Stack.Clone(),
	}
}

// Equal reports whether st and o are indistinguishable.
func (st *State) Equal(o *State) bool {
	return st.IP == o.IP &&
		st.NIP == o.NIP &&
		st.Stack.Equal(o.Stack) &&
		st.RStack.Equal(o.RStack) &&
		st.Dict.Equal(o.Dict) &&
		st.Memory.Equal(o.Memory)
}

// Dump writes a readable listing of st.
func (st *State) Dump(w io.Writer) {
	fmt.Fprintf(w, "IP %d NIP %d\n", st.IP, st.NIP)
	fmt.Fprintf(w, "stack:")
	for _, c := range st.Stack.Items() {
		fmt.Fprintf(w, " %s", c)
	}
	fmt.Fprintf(w, "\nrstack:")
	for _, r := range st.RStack.Items() {
		fmt.Fprintf(w, " %d", r)
	}
	fmt.Fprintf(w, "\ndictionary:\n")
	st.Dict.Dump(w)
	fmt.Fprintf(w, "memory:\n")
	st.Memory.Dump(w)
}

func (st *State) String() string {
	var b strings.Builder
	st.Dump(&b)
	return b.String()
}

// Diff returns a line diff from st to o, or "" when they are equal.
func (st *State) Diff(o *State) string {
	if st.Equal(o) {
		return ""
	}
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(st.String(), o.String())
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)
	var buf strings.Builder
	for _, d := range diffs {
		var prefix string
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		default:
			continue
		}
		for _, l := range strings.SplitAfter(d.Text, "\n") {
			if l != "" {
				buf.WriteString(prefix + l)
			}
		}
	}
	return buf.String()
}

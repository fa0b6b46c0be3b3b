// Copyright 2013 Vadim Vygonets. All rights reserved.
// Use of this source code is governed by the Bugroff
// license that can be found in the LICENSE file.

package forth

import (
	"fmt"
	"io"
	"sort"
)

// DictionaryItem binds a name to the code field of a word.
type DictionaryItem struct {
	Name             string
	CodeFieldAddress int
	IsImmediate      bool
	IsHidden         bool
}

func (d DictionaryItem) String() string {
	s := fmt.Sprintf("%s@%d", d.Name, d.CodeFieldAddress)
	if d.IsImmediate {
		s += " immediate"
	}
	if d.IsHidden {
		s += " hidden"
	}
	return s
}

// Dictionary is the name index of the words defined in Memory.  Newer
// entries shadow older ones with the same name; hidden entries are
// never found by name.  Entries are never deleted.
type Dictionary struct {
	byName map[string][]*DictionaryItem // oldest first
	byCFA  map[int]*DictionaryItem
	n      int
}

// NewDictionary returns an empty Dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{
		byName: make(map[string][]*DictionaryItem),
		byCFA:  make(map[int]*DictionaryItem),
	}
}

// Insert adds item as the newest entry for its name and returns the
// stored entry.  The returned pointer may be used to change the
// entry's flags.
func (d *Dictionary) Insert(item DictionaryItem) *DictionaryItem {
	if d.byName == nil {
		d.byName = make(map[string][]*DictionaryItem)
		d.byCFA = make(map[int]*DictionaryItem)
	}
	p := &item
	d.byName[item.Name] = append(d.byName[item.Name], p)
	d.byCFA[item.CodeFieldAddress] = p
	d.n++
	return p
}

// Find returns the newest visible entry named name.  The match is
// exact and case-sensitive.
func (d *Dictionary) Find(name string) (*DictionaryItem, bool) {
	items := d.byName[name]
	for i := len(items) - 1; i >= 0; i-- {
		if !items[i].IsHidden {
			return items[i], true
		}
	}
	return nil, false
}

// ByCodeAddress returns the entry whose code field is at cfa, hidden
// or not.
func (d *Dictionary) ByCodeAddress(cfa int) (*DictionaryItem, bool) {
	p, ok := d.byCFA[cfa]
	return p, ok
}

// Len returns the number of entries, hidden ones included.
func (d *Dictionary) Len() int {
	return d.n
}

// Keys returns the distinct names in the dictionary, sorted.
func (d *Dictionary) Keys() []string {
	keys := make([]string, 0, len(d.byName))
	for k := range d.byName {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Entries returns copies of all entries named name, oldest first.
func (d *Dictionary) Entries(name string) []DictionaryItem {
	items := d.byName[name]
	r := make([]DictionaryItem, len(items))
	for i, p := range items {
		r[i] = *p
	}
	return r
}

// Clone returns a deep copy of d sharing no entries with it.
func (d *Dictionary) Clone() *Dictionary {
	n := NewDictionary()
	for k, items := range d.byName {
		c := make([]*DictionaryItem, len(items))
		for i, p := range items {
			item := *p
			c[i] = &item
			n.byCFA[item.CodeFieldAddress] = c[i]
		}
		n.byName[k] = c
	}
	n.n = d.n
	return n
}

// Equal compares the key sets and, per key, the full entry values.
func (d *Dictionary) Equal(o *Dictionary) bool {
	if len(d.byName) != len(o.byName) || d.n != o.n {
		return false
	}
	for k, items := range d.byName {
		other, ok := o.byName[k]
		if !ok || len(other) != len(items) {
			return false
		}
		for i := range items {
			if *items[i] != *other[i] {
				return false
			}
		}
	}
	return true
}

// Dump writes the entries, one per line, sorted by name.
func (d *Dictionary) Dump(w io.Writer) {
	for _, k := range d.Keys() {
		for _, item := range d.byName[k] {
			fmt.Fprintf(w, "%s\n", item)
		}
	}
}

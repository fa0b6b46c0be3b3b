// Copyright 2013 Vadim Vygonets. All rights reserved.
// Use of this source code is governed by the Bugroff
// license that can be found in the LICENSE file.

package forth

// Primitive is a built-in word.  A primitive runs under exactly one of
// two contracts:
//
//	ordinary    side effects only; the machine advances IP and NIP
//	with next   side effects, and the primitive sets IP and NIP itself
//
// The contract is fixed by the constructor used.
type Primitive struct {
	Name      string
	Immediate bool // installed as an immediate word

	exec     func(m *Machine) error
	execNext func(m *Machine) error
}

// Ordinary returns a primitive that leaves advancement to the machine.
func Ordinary(name string, f func(m *Machine) error) *Primitive {
	return &Primitive{Name: name, exec: f}
}

// WithNext returns a primitive that sets IP and NIP itself.
func WithNext(name string, f func(m *Machine) error) *Primitive {
	return &Primitive{Name: name, execNext: f}
}

func immediate(p *Primitive) *Primitive {
	p.Immediate = true
	return p
}

// TakesNext reports whether p runs under the control-flow-overriding
// contract.
func (p *Primitive) TakesNext() bool {
	return p.execNext != nil
}

func (p *Primitive) String() string {
	return p.Name
}

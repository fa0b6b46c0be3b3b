// Copyright 2011, 2013 Vadim Vygonets. All rights reserved.
// Use of this source code is governed by the Bugroff
// license that can be found in the LICENSE file.

package forth

import (
	"errors"
	"strconv"
)

// List of VM traps for Errno
const (
	Bye = Errno(iota)
	EOF
	AddressError
	StackUnderflow
	RStackUnderflow
	InvalidAddress
	TypeMismatch
	DictionaryInconsistency
	UnresolvableCell
	ZeroDivision
	IOError
)

var strError = []string{
	"BYE",
	"EOF",
	"uninitialized address",
	"stack underflow",
	"return stack underflow",
	"invalid address",
	"type mismatch",
	"dictionary inconsistency",
	"unresolvable cell",
	"zero division",
	"I/O error",
}

// Errno describes the reason for a VM trap.
type Errno int

func (e Errno) Error() string {
	if int(e) < 0 || int(e) >= len(strError) {
		return "errno " + strconv.Itoa(int(e))
	}
	return strError[e]
}

func rstackError(e error) error {
	if e == StackUnderflow {
		return RStackUnderflow
	}
	return e
}

// Error describes the cause and the context of a VM trap.
type Error struct {
	Errno  Errno  // nature of the trap
	Err    error  // I/O error when Errno is IOError
	IP     int    // instruction pointer before the trap
	NIP    int    // next instruction pointer before the trap
	Word   string // primitive that raised the trap
	Addr   int    // address for AddressError and InvalidAddress
	Token  string // unknown word for UnresolvableCell raised by INTERPRET
	Stack  []Cell // parameter stack, top first
	RStack []int  // return stack, top first

	bound bool // context filled in
}

func (e *Error) Error() string {
	var msg = "tforth: "
	if e.Err != nil {
		msg += e.Err.Error()
	} else {
		msg += e.Errno.Error()
		switch e.Errno {
		case AddressError, InvalidAddress:
			msg += " " + strconv.Itoa(e.Addr)
		case UnresolvableCell:
			if e.Token != "" {
				msg += " " + strconv.Quote(e.Token)
			}
		}
	}
	if e.Word != "" {
		msg += " in " + e.Word
	}
	if e.bound {
		msg += " at " + strconv.Itoa(e.IP)
	}
	return msg
}

// Unwrap returns the Errno so that errors.Is matches trap kinds.
func (e *Error) Unwrap() error {
	return e.Errno
}

// ErrnoOf returns the Errno carried by err, and false if err is not a
// VM trap.
func ErrnoOf(err error) (Errno, bool) {
	var e Errno
	if errors.As(err, &e) {
		return e, true
	}
	return 0, false
}

// newError binds err to the machine's context before the failing
// step.  Errors that are not traps become IOError.
func (m *Machine) newError(err error, ip, nip int, word string) *Error {
	var e *Error
	switch v := err.(type) {
	case *Error:
		e = v
	case Errno:
		e = &Error{Errno: v}
	default:
		e = &Error{Errno: IOError, Err: err}
	}
	if e.bound {
		return e
	}
	e.IP, e.NIP, e.bound = ip, nip, true
	if e.Word == "" {
		e.Word = word
	}
	e.Stack = m.State.Stack.Items()
	e.RStack = m.State.RStack.Items()
	return e
}

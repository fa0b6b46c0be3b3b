// Copyright 2011, 2013 Vadim Vygonets. All rights reserved.
// Use of this source code is governed by the Bugroff
// license that can be found in the LICENSE file.

// Package forth implements the tforth virtual machine.
//
// The tforth VM is an indirect-threaded FORTH machine with tagged
// cells, a sparse append-only memory, a name-indexed dictionary and
// two stacks.  A cell is one of
//
//	nil	the unparsed marker pushed by NUMBER
//	int	signed integer
//	char	character code
//	text	a whole string
//	addr	memory address
//	prim	built-in word
//	ref	dictionary entry, by code field address
//
// Memory addresses 0, 1 and 2 hold the system variables HERE, LATEST
// and STATE.  A dictionary header built at HERE takes four cells:
//
//	h+0	link cell	ref to the entry's code field
//	h+1	previous link	addr of the older header, or nil
//	h+2	name		text
//	h+3	code field	prim
//
// and LATEST holds h.  Colon definitions have DOCOL in the code field
// followed by the body, a thread of prim and ref cells ending in EXIT.
//
// Each step fetches the cell at IP.  A prim cell is executed directly;
// a ref cell is executed through the prim at its code field.  NIP is
// set to IP+1 first.  Ordinary words leave advancement to the machine,
// which then moves IP to NIP and NIP to IP+1; words running with next
// set IP and NIP themselves.
//
//	FORTH name	Contract	Stack effect
//
//	DROP		ordinary	( x -- )
//	DUP		ordinary	( x -- x x )
//	OVER		ordinary	( x1 x2 -- x1 x2 x1 )
//	SWAP		ordinary	( x1 x2 -- x2 x1 )
//	ROT		ordinary	( x1 x2 x3 -- x2 x3 x1 )
//	DEPTH		ordinary	( -- +n )
//	>R		ordinary	( x -- ) ( R: -- x )
//	R>		ordinary	( -- x ) ( R: x -- )
//	R@		ordinary	( -- x ) ( R: x -- x )
//	RDROP		ordinary	( R: x -- )
//	+ - *		ordinary	( n1 n2 -- n3 )
//	/MOD		ordinary	( n1 n2 -- rem quot )
//	NEGATE		ordinary	( n1 -- n2 )
//	= <		ordinary	( x1 x2 -- flag )
//	0=		ordinary	( x -- flag )
//	@		ordinary	( a-addr -- x )
//	!		ordinary	( x a-addr -- )
//	+!		ordinary	( n a-addr -- )
//	MOVE		next		( to from u -- )
//	HERE LATEST STATE ordinary	( -- a-addr )
//	LIT		next		( -- x )		\ x in the next cell
//	BRANCH		next		( -- )			\ offset in the next cell
//	0BRANCH		next		( flag -- )
//	DOCOL		next		( -- ) ( R: -- nest-sys )
//	EXIT		next		( -- ) ( R: nest-sys -- )
//	EXECUTE		next		( i*x xt -- j*x )
//	KEY		ordinary	( -- char )
//	EMIT		ordinary	( char -- )
//	.		ordinary	( n -- )
//	CR WORDS	ordinary	( -- )
//	WORD		ordinary	( -- text )
//	FIND		ordinary	( text -- | xt )
//	NUMBER		ordinary	( text -- n 0 | nil -1 )
//	,		ordinary	( x -- )
//	CREATE		ordinary	( text -- )
//	IMMEDIATE	ordinary	( -- )			\ immediate
//	HIDDEN		ordinary	( xt -- )
//	[		ordinary	( -- )			\ immediate
//	]		ordinary	( -- )
//	:		ordinary	( "name" -- )
//	;		ordinary	( -- )			\ immediate
//	'		ordinary	( "name" -- xt )
//	LITERAL		ordinary	( x -- )		\ immediate
//	INTERPRET	next		( i*x "name" -- j*x )
//	TRACE		ordinary	( flag -- )		\ set/reset VM tracing
//	BYE		ordinary	( -- )			\ raise BYE trap
package forth

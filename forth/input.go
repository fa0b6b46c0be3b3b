// Copyright 2013 Vadim Vygonets. All rights reserved.
// Use of this source code is governed by the Bugroff
// license that can be found in the LICENSE file.

package forth

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
	"golang.org/x/text/transform"
)

var encodings = map[string]encoding.Encoding{
	"utf-8":        unicode.UTF8,
	"utf-16":       unicode.UTF16(unicode.LittleEndian, unicode.UseBOM),
	"utf-16be":     unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM),
	"utf-32":       utf32.UTF32(utf32.LittleEndian, utf32.UseBOM),
	"latin1":       charmap.ISO8859_1,
	"iso-8859-1":   charmap.ISO8859_1,
	"windows-1252": charmap.Windows1252,
	"cp437":        charmap.CodePage437,
}

// Encoding returns the input encoding called name.  The empty name
// means UTF-8.
func Encoding(name string) (encoding.Encoding, error) {
	if name == "" {
		return unicode.UTF8, nil
	}
	if e, ok := encodings[strings.ToLower(name)]; ok {
		return e, nil
	}
	return nil, fmt.Errorf("unknown encoding %q", name)
}

// NewInput returns a KEY device reading characters from r, decoded
// from enc.  A nil enc means UTF-8.
func NewInput(r io.Reader, enc encoding.Encoding) io.RuneReader {
	if enc == nil {
		enc = unicode.UTF8
	}
	return bufio.NewReader(transform.NewReader(r, enc.NewDecoder()))
}

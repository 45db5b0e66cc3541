/*
Package literal formats packed 24-bit colors as a sequence literal suitable
for pasting into source code, for example:

	[ 0x626262, 0x001fb2, 0x2404c8 ]

Each color is written as 0x followed by exactly six lowercase hexadecimal
digits. An empty sequence is written as "[  ]".
*/
package literal

import (
	"io"

	"github.com/bodgit/palgen/palette"
)

const (
	prefix    = "[ "
	suffix    = " ]"
	separator = ", "
	hexDigits = "0123456789abcdef"
	mask      = 0xffffff
)

// TokenSize is the length of each formatted color
const TokenSize = 8

func appendToken(b []byte, v uint32) []byte {
	v &= mask
	b = append(b, '0', 'x')
	for shift := 20; shift >= 0; shift -= 4 {
		b = append(b, hexDigits[v>>uint(shift)&0xf])
	}
	return b
}

// Token formats a single packed color. Bits above the lower 24 are ignored.
func Token(v uint32) string {
	return string(appendToken(make([]byte, 0, TokenSize), v))
}

func appendLiteral(b []byte, values []uint32) []byte {
	b = append(b, prefix...)
	for i, v := range values {
		if i > 0 {
			b = append(b, separator...)
		}
		b = appendToken(b, v)
	}
	return append(b, suffix...)
}

func size(n int) int {
	s := len(prefix) + len(suffix) + n*TokenSize
	if n > 1 {
		s += (n - 1) * len(separator)
	}
	return s
}

// Fprintln writes the literal for values followed by a newline to w in a
// single call to Write.
func Fprintln(w io.Writer, values []uint32) error {
	b := appendLiteral(make([]byte, 0, size(len(values))+1), values)
	_, err := w.Write(append(b, '\n'))
	return err
}

// Writer writes palettes as sequence literals, one per line.
type Writer struct {
	w io.Writer
}

// NewWriter returns a Writer writing to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write writes p as a single line.
func (w *Writer) Write(p palette.Palette) error {
	return Fprintln(w.w, p.Packed())
}

package huffenc

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"unicode/utf8"
)

// Symbol represents a symbol in the input alphabet: either a byte or a
// Unicode code point, depending on the Alphabet used to read it.  Negative
// symbols are not valid.
type Symbol int32

// String returns a human-readable representation of this Symbol.
func (sym Symbol) String() string {
	if sym >= 0 && sym <= utf8.MaxRune && strconv.IsPrint(rune(sym)) {
		return strconv.QuoteRune(rune(sym))
	}
	return "#" + strconv.FormatInt(int64(sym), 10)
}

var _ fmt.Stringer = Symbol(0)

// Alphabet selects how an input stream is split into Symbols.
type Alphabet byte

const (
	// Runes decodes the input as UTF-8, one Symbol per code point.  Each
	// byte of an invalid sequence becomes one utf8.RuneError.
	Runes Alphabet = iota

	// Bytes reads one Symbol per input byte.
	Bytes
)

// String returns the name of this Alphabet.
func (alpha Alphabet) String() string {
	switch alpha {
	case Runes:
		return "runes"
	case Bytes:
		return "bytes"
	default:
		return "Alphabet(" + strconv.Itoa(int(alpha)) + ")"
	}
}

// symbolReader reads Symbols one at a time from a buffered stream.
type symbolReader struct {
	br    *bufio.Reader
	alpha Alphabet
}

func newSymbolReader(r io.Reader, alpha Alphabet) *symbolReader {
	return &symbolReader{br: bufio.NewReader(r), alpha: alpha}
}

// next returns the next Symbol, or io.EOF once the stream is exhausted.
func (sr *symbolReader) next() (Symbol, error) {
	if sr.alpha == Bytes {
		b, err := sr.br.ReadByte()
		return Symbol(b), err
	}
	ch, _, err := sr.br.ReadRune()
	return Symbol(ch), err
}

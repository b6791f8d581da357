package huffenc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/chronos-tachyon/assert"
)

// CodeTable maps each Symbol of a Huffman tree to its prefix-free Code.
type CodeTable struct {
	codes   map[Symbol]Code
	minSize byte
	maxSize byte
}

// NewCodeTable derives the CodeTable for the given tree by walking it
// depth-first, left before right.  Going left appends a 0 bit to the path
// and going right appends a 1 bit; the path at each leaf is that leaf's
// Code.
//
// A tree consisting of a single leaf assigns that leaf the 1-bit Code "0",
// since an empty Code could not represent any occurrences of the symbol.
func NewCodeTable(t *Tree) *CodeTable {
	ct := &CodeTable{codes: make(map[Symbol]Code, t.NumLeaves())}

	root := t.Node(t.Root())
	if root.IsLeaf() {
		ct.set(root.Symbol, MakeCode(1, 0))
		return ct
	}

	type stackItem struct {
		id   NodeID
		path Code
	}

	stack := make([]stackItem, 0, 32)
	stack = append(stack, stackItem{t.Root(), Code{}})
	for len(stack) != 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := t.Node(top.id)
		if n.IsLeaf() {
			ct.set(n.Symbol, top.path)
			continue
		}

		assert.Assertf(n.Left != NoNode && n.Right != NoNode, "internal node %d has only one child", top.id)
		stack = append(stack, stackItem{n.Right, top.path.Append(1)})
		stack = append(stack, stackItem{n.Left, top.path.Append(0)})
	}

	return ct
}

func (ct *CodeTable) set(sym Symbol, hc Code) {
	_, dupe := ct.codes[sym]
	assert.Assertf(!dupe, "symbol %v appears in more than one leaf", sym)
	if len(ct.codes) == 0 {
		ct.minSize = hc.Size
		ct.maxSize = hc.Size
	} else if ct.minSize > hc.Size {
		ct.minSize = hc.Size
	} else if ct.maxSize < hc.Size {
		ct.maxSize = hc.Size
	}
	ct.codes[sym] = hc
}

// Lookup returns the Code for the given Symbol.  The second result is false
// if the Symbol did not occur in the frequencies the table was built from.
func (ct *CodeTable) Lookup(sym Symbol) (Code, bool) {
	hc, found := ct.codes[sym]
	return hc, found
}

// Len returns the number of Symbols with a Code.
func (ct *CodeTable) Len() int {
	return len(ct.codes)
}

// Symbols returns the Symbols with a Code, in ascending order.
func (ct *CodeTable) Symbols() []Symbol {
	out := make(bySymbol, 0, len(ct.codes))
	for sym := range ct.codes {
		out = append(out, sym)
	}
	out.Sort()
	return out
}

// MinSize is the bit length of the shortest Code.
func (ct *CodeTable) MinSize() byte {
	return ct.minSize
}

// MaxSize is the bit length of the longest Code.
func (ct *CodeTable) MaxSize() byte {
	return ct.maxSize
}

// WeightedLength returns the sum of freq × len(code) over all Symbols of
// freqs, i.e. the number of bits needed to encode an input with those
// frequencies, before padding.  Symbols without a Code are ignored.
func (ct *CodeTable) WeightedLength(freqs Frequencies) uint64 {
	var sum uint64
	for sym, freq := range freqs {
		if hc, found := ct.codes[sym]; found {
			sum += freq * uint64(hc.Size)
		}
	}
	return sum
}

// Dump writes a programmer-readable debugging dump of the CodeTable to the
// given writer.
func (ct *CodeTable) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("CodeTable{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", ct.minSize)
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", ct.maxSize)
	for _, sym := range ct.Symbols() {
		fmt.Fprintf(&buf, "\tLookup(%v) = %s\n", sym, ct.codes[sym])
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// MarshalJSON renders the table as a JSON object mapping each Symbol's
// decimal value to its Code as a string of '0' and '1' characters.
func (ct *CodeTable) MarshalJSON() ([]byte, error) {
	raw := make(map[string]string, len(ct.codes))
	for sym, hc := range ct.codes {
		str, err := strconv.Unquote(hc.String())
		if err != nil {
			return nil, err
		}
		raw[strconv.FormatInt(int64(sym), 10)] = str
	}
	return json.Marshal(raw)
}

// UnmarshalJSON parses the format written by MarshalJSON.  The parsed table
// is checked to be prefix-free.
func (ct *CodeTable) UnmarshalJSON(data []byte) error {
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := CodeTable{codes: make(map[Symbol]Code, len(raw))}
	for key, str := range raw {
		n, err := strconv.ParseInt(key, 10, 32)
		if err != nil || n < 0 {
			return fmt.Errorf("invalid symbol %q in code table", key)
		}
		hc, err := ParseCode(str)
		if err != nil {
			return err
		}
		if hc.Size == 0 {
			return fmt.Errorf("empty code for symbol %d", n)
		}
		if _, dupe := out.codes[Symbol(n)]; dupe {
			return fmt.Errorf("duplicate symbol %d in code table", n)
		}
		out.set(Symbol(n), hc)
	}

	syms := out.Symbols()
	for i, a := range syms {
		for _, b := range syms[i+1:] {
			ca, cb := out.codes[a], out.codes[b]
			if ca.HasPrefix(cb) || cb.HasPrefix(ca) {
				return fmt.Errorf("code table is not prefix-free: %v=%s, %v=%s", a, ca, b, cb)
			}
		}
	}

	*ct = out
	return nil
}

var (
	_ json.Marshaler   = (*CodeTable)(nil)
	_ json.Unmarshaler = (*CodeTable)(nil)
)

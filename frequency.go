package huffenc

import (
	"io"
	"sort"
)

// Frequencies maps each Symbol seen in an input to its number of
// occurrences.  Symbols that never occurred are absent; no count is zero.
type Frequencies map[Symbol]uint64

// CountFrequencies reads r to the end, one Symbol at a time, and tallies how
// often each Symbol occurs.  Empty input yields an empty (non-nil) map.  A
// read failure is returned as an *IOError and the partial counts are
// discarded.
func CountFrequencies(r io.Reader, alpha Alphabet) (Frequencies, error) {
	freqs := make(Frequencies)
	sr := newSymbolReader(r, alpha)
	for {
		sym, err := sr.next()
		if err == io.EOF {
			return freqs, nil
		}
		if err != nil {
			return nil, ioError("count", "", err)
		}
		freqs[sym]++
	}
}

// Total returns the total number of symbols counted.
func (freqs Frequencies) Total() uint64 {
	var sum uint64
	for _, n := range freqs {
		sum += n
	}
	return sum
}

// Symbols returns the distinct symbols in ascending order.
func (freqs Frequencies) Symbols() []Symbol {
	out := make(bySymbol, 0, len(freqs))
	for sym := range freqs {
		out = append(out, sym)
	}
	out.Sort()
	return out
}

// type bySymbol {{{

type bySymbol []Symbol

func (list bySymbol) Sort() {
	sort.Sort(list)
}

func (list bySymbol) Len() int {
	return len(list)
}

func (list bySymbol) Swap(i, j int) {
	list[i], list[j] = list[j], list[i]
}

func (list bySymbol) Less(i, j int) bool {
	return list[i] < list[j]
}

var _ sort.Interface = bySymbol(nil)

// }}}

package huffenc

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/chronos-tachyon/huffenc/internal/log"
	"go.uber.org/multierr"
)

// Source is an input that can be read from the beginning more than once.
// The Encoder opens it once to count symbols and again to encode them.
type Source interface {
	// Open returns a fresh reader positioned at the start of the input.
	Open() (io.ReadCloser, error)

	// Name identifies the input in errors and logs.
	Name() string
}

// FileSource returns a Source that reads the named file.
func FileSource(path string) Source {
	return fileSource(path)
}

type fileSource string

func (src fileSource) Open() (io.ReadCloser, error) {
	return os.Open(string(src))
}

func (src fileSource) Name() string {
	return string(src)
}

// BytesSource returns a Source that reads from an in-memory buffer.
func BytesSource(data []byte) Source {
	return bytesSource(data)
}

type bytesSource []byte

func (src bytesSource) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(src)), nil
}

func (bytesSource) Name() string {
	return ""
}

// Result describes a completed encoding.
type Result struct {
	// Table is the code table the input was encoded with.  The output is
	// undecodable without it.
	Table *CodeTable

	// Frequencies holds the symbol counts from the first pass.
	Frequencies Frequencies

	// Symbols is the number of symbols encoded.  A decoder needs it to
	// tell the final byte's padding apart from real codes.
	Symbols uint64

	// Bits is the number of code bits written, not counting padding.
	Bits uint64

	// Bytes is the size of the output.
	Bytes uint64
}

// Encoder runs the static Huffman pipeline: count, build the tree, derive
// the code table, then encode.  The zero value encodes UTF-8 runes and logs
// nothing.
type Encoder struct {
	Alphabet Alphabet

	// Log receives debug-level progress messages.  May be nil.
	Log *log.Logger
}

func (e *Encoder) logger() *log.Logger {
	if e.Log == nil {
		return log.Discard
	}
	return e.Log
}

// Plan runs the first pass over src and builds the code table for it,
// without writing anything.
func (e *Encoder) Plan(src Source) (*CodeTable, Frequencies, error) {
	logger := e.logger()

	freqs, err := e.count(src)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("counted symbols",
		"input", src.Name(),
		"alphabet", e.Alphabet.String(),
		"symbols", freqs.Total(),
		"distinct", len(freqs))

	tree, err := BuildTree(freqs)
	if err != nil {
		return nil, nil, err
	}

	table := NewCodeTable(tree)
	logger.Debug("built code table",
		"nodes", tree.Len(),
		"minSize", int(table.MinSize()),
		"maxSize", int(table.MaxSize()))

	return table, freqs, nil
}

// Encode encodes src into dst, which it closes on every path, including
// failures that happen before anything is written.  The output holds the
// packed code bits only, with no header; see Result.
func (e *Encoder) Encode(src Source, dst io.WriteCloser) (*Result, error) {
	table, freqs, err := e.Plan(src)
	if err != nil {
		return nil, multierr.Append(err, ioError("close", "", dst.Close()))
	}
	return e.encodeWith(src, dst, table, freqs)
}

// EncodeFile encodes the file at inPath into a file at outPath.
//
// The output file is created only once the code table has been built, so an
// empty or unreadable input leaves no output behind.  If encoding fails
// after the output was created, the partial output is removed.  An outPath
// that names the same file as inPath is rejected with ErrInvalidInput, since
// creating the output would truncate the input before the second pass.
func (e *Encoder) EncodeFile(inPath, outPath string) (_ *Result, err error) {
	if err := checkDistinct(inPath, outPath); err != nil {
		return nil, err
	}

	src := FileSource(inPath)
	table, freqs, err := e.Plan(src)
	if err != nil {
		return nil, err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return nil, ioError("open", outPath, err)
	}
	defer func() {
		if err != nil {
			err = multierr.Append(err, removeIfExists(outPath))
		}
	}()

	res, err := e.encodeWith(src, namedWriter{f, outPath}, table, freqs)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (e *Encoder) count(src Source) (_ Frequencies, err error) {
	r, err := src.Open()
	if err != nil {
		return nil, ioError("open", src.Name(), err)
	}
	defer multierr.AppendInvoke(&err, closeInput(r, src.Name()))

	freqs, err := CountFrequencies(r, e.Alphabet)
	if err != nil {
		return nil, annotatePath(err, src.Name())
	}
	return freqs, nil
}

// encodeWith runs the second pass.  It owns dst from the start.
func (e *Encoder) encodeWith(src Source, dst io.WriteCloser, table *CodeTable, freqs Frequencies) (_ *Result, err error) {
	bw := NewBitWriter(dst)
	defer func() {
		// A no-op if the BitWriter was already closed below.
		if cerr := bw.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	r, err := src.Open()
	if err != nil {
		return nil, ioError("open", src.Name(), err)
	}
	defer multierr.AppendInvoke(&err, closeInput(r, src.Name()))

	var numSymbols uint64
	seen := make(Frequencies, len(freqs))
	sr := newSymbolReader(r, e.Alphabet)
	for {
		sym, rerr := sr.next()
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return nil, ioError("encode", src.Name(), rerr)
		}

		hc, found := table.Lookup(sym)
		if !found {
			return nil, fmt.Errorf("encode %s: %w: symbol %v has no code (input changed since it was counted?)",
				displayName(src), ErrContractViolation, sym)
		}
		seen[sym]++
		if seen[sym] > freqs[sym] {
			return nil, fmt.Errorf("encode %s: %w: symbol %v occurs more than the %d times counted",
				displayName(src), ErrContractViolation, sym, freqs[sym])
		}
		if werr := bw.WriteCode(hc); werr != nil {
			return nil, werr
		}
		numSymbols++
	}

	// Every count is bounded above by now, so a shortfall is the only
	// mismatch left.
	if numSymbols != freqs.Total() {
		for _, sym := range freqs.Symbols() {
			if seen[sym] != freqs[sym] {
				return nil, fmt.Errorf("encode %s: %w: symbol %v occurs %d times, counted %d",
					displayName(src), ErrContractViolation, sym, seen[sym], freqs[sym])
			}
		}
	}

	if err := bw.Close(); err != nil {
		return nil, err
	}

	res := &Result{
		Table:       table,
		Frequencies: freqs,
		Symbols:     numSymbols,
		Bits:        bw.BitsWritten(),
		Bytes:       bw.BytesWritten(),
	}
	e.logger().Debug("encoded",
		"input", src.Name(),
		"symbols", res.Symbols,
		"bits", res.Bits,
		"bytes", res.Bytes)
	return res, nil
}

// namedWriter attaches a file name to the errors of an output file.
type namedWriter struct {
	io.WriteCloser

	path string
}

func (w namedWriter) Write(p []byte) (int, error) {
	n, err := w.WriteCloser.Write(p)
	return n, ioError("write", w.path, err)
}

func (w namedWriter) Close() error {
	return ioError("close", w.path, w.WriteCloser.Close())
}

func closeInput(r io.Closer, path string) multierr.Invoker {
	return multierr.Invoke(func() error {
		return ioError("close", path, r.Close())
	})
}

func annotatePath(err error, path string) error {
	if ioErr, ok := err.(*IOError); ok && ioErr.Path == "" {
		ioErr.Path = path
	}
	return err
}

func displayName(src Source) string {
	if name := src.Name(); name != "" {
		return name
	}
	return "input"
}

// checkDistinct fails if outPath already exists and is the same file as
// inPath.  A missing input is left for the first pass to report.
func checkDistinct(inPath, outPath string) error {
	in, err := os.Stat(inPath)
	if err != nil {
		return nil
	}
	out, err := os.Stat(outPath)
	if err != nil {
		return nil
	}
	if os.SameFile(in, out) {
		return fmt.Errorf("encode %s: %w: output %s is the input file", inPath, ErrInvalidInput, outPath)
	}
	return nil
}

func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

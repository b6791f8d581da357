package huffenc

import (
	"io"

	"github.com/chronos-tachyon/assert"
	"go.uber.org/multierr"
)

// bitsPerByte is the width of each packed output unit.
const bitsPerByte = 8

// BitWriter packs single bits MSB-first into bytes and writes each byte to
// the underlying writer as soon as it is complete.
//
// The first write error is stored and returned by every later call.  Close
// pads a partial final byte with zero bits on the low-order side, writes
// it, and closes the underlying writer.
type BitWriter struct {
	w   io.WriteCloser
	err error

	// acc holds the pending bits in its nbits low-order positions, the
	// oldest bit highest.
	acc   byte
	nbits uint

	bitsWritten  uint64
	bytesWritten uint64
	closed       bool
}

// NewBitWriter returns a BitWriter that writes to w and owns it: w is closed
// by BitWriter.Close.
func NewBitWriter(w io.WriteCloser) *BitWriter {
	return &BitWriter{w: w}
}

// WriteBit appends one bit.  bit must be 0 or 1; any other value is a
// programming error and panics.
func (bw *BitWriter) WriteBit(bit uint8) error {
	assert.Assertf(bit <= 1, "bit value %d is not 0 or 1", bit)
	assert.Assertf(!bw.closed, "WriteBit called on a closed BitWriter")
	if bw.err != nil {
		return bw.err
	}

	bw.acc = (bw.acc << 1) | bit
	bw.nbits++
	bw.bitsWritten++
	if bw.nbits == bitsPerByte {
		bw.flushByte()
	}
	return bw.err
}

// WriteCode appends the bits of hc, first to last.
func (bw *BitWriter) WriteCode(hc Code) error {
	for i := byte(0); i < hc.Size; i++ {
		if err := bw.WriteBit(hc.Bit(i)); err != nil {
			return err
		}
	}
	return nil
}

// BitsWritten returns the number of bits accepted so far, not counting
// padding.
func (bw *BitWriter) BitsWritten() uint64 {
	return bw.bitsWritten
}

// BytesWritten returns the number of bytes written to the underlying
// writer so far, including the padded final byte once closed.
func (bw *BitWriter) BytesWritten() uint64 {
	return bw.bytesWritten
}

// Pending returns the number of bits waiting for a full byte (0 through 7).
func (bw *BitWriter) Pending() uint {
	return bw.nbits
}

// Close flushes a partial final byte, padded with zero bits, and closes the
// underlying writer.  The underlying writer is closed exactly once, even if
// the flush fails.  Calling Close again does nothing and returns nil.
func (bw *BitWriter) Close() error {
	if bw.closed {
		return nil
	}
	bw.closed = true

	if bw.err == nil && bw.nbits > 0 {
		bw.acc <<= bitsPerByte - bw.nbits
		bw.flushByte()
	}

	return multierr.Append(bw.err, ioError("close", "", bw.w.Close()))
}

func (bw *BitWriter) flushByte() {
	buf := [1]byte{bw.acc}
	bw.acc = 0
	bw.nbits = 0
	if _, err := bw.w.Write(buf[:]); err != nil {
		bw.err = ioError("write", "", err)
		return
	}
	bw.bytesWritten++
}

var _ io.Closer = (*BitWriter)(nil)

// Package huffenc implements a static Huffman encoder.  The input is read
// twice: once to count how often each symbol occurs, and once more to
// replace every symbol with its prefix-free code.  The codes are packed
// MSB-first into bytes, and the final byte is padded with zero bits.
//
// The output is the packed bits and nothing else.  It carries no header,
// no code table and no symbol count, so a decoder must be given the
// CodeTable and the original symbol count out of band.
//
// References:
//
//	<https://en.wikipedia.org/wiki/Huffman_coding>
package huffenc

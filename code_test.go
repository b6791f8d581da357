package huffenc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		give Code
		want string
	}{
		{Code{}, `""`},
		{MakeCode(1, 0), `"0"`},
		{MakeCode(4, 0x3), `"0011"`},
		{MakeCode(3, 0x5), `"101"`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.give.String())
	}
}

func TestCodeAppendAndBit(t *testing.T) {
	t.Parallel()

	hc := Code{}.Append(1).Append(0).Append(1).Append(1)
	assert.Equal(t, MakeCode(4, 0xb), hc)

	var got []uint8
	for i := byte(0); i < hc.Size; i++ {
		got = append(got, hc.Bit(i))
	}
	assert.Equal(t, []uint8{1, 0, 1, 1}, got)

	assert.Panics(t, func() { hc.Append(2) })
	assert.Panics(t, func() { hc.Bit(4) })
}

func TestCodeMaxSize(t *testing.T) {
	t.Parallel()

	var hc Code
	for i := 0; i < MaxCodeSize; i++ {
		hc = hc.Append(uint8(i & 1))
	}
	assert.Equal(t, byte(MaxCodeSize), hc.Size)
	assert.Equal(t, uint8(0), hc.Bit(0))
	assert.Equal(t, uint8(1), hc.Bit(MaxCodeSize-1))
	assert.Panics(t, func() { hc.Append(0) })
}

func TestParseCode(t *testing.T) {
	t.Parallel()

	hc, err := ParseCode("0110")
	require.NoError(t, err)
	assert.Equal(t, MakeCode(4, 0x6), hc)

	_, err = ParseCode("012")
	assert.Error(t, err)
}

func TestCodeHasPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code, prefix string
		want         bool
	}{
		{"0110", "", true},
		{"0110", "0", true},
		{"0110", "011", true},
		{"0110", "0110", true},
		{"0110", "1", false},
		{"0110", "0111", false},
		{"01", "011", false},
	}

	for _, tt := range tests {
		code, err := ParseCode(tt.code)
		require.NoError(t, err)
		prefix, err := ParseCode(tt.prefix)
		require.NoError(t, err)
		assert.Equal(t, tt.want, code.HasPrefix(prefix), "%q.HasPrefix(%q)", tt.code, tt.prefix)
	}
}

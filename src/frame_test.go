package ft8

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestFrameLayoutConstants(t *testing.T) {
	ft8_init(0)

	assert.Equal(t, FT8_NN, FT8_ND+FT8_NS)
	assert.Equal(t, FT8_NS, 3*len(costas_pattern))
	assert.Equal(t, LDPC_N, 3*FT8_ND)
}

// Full transmit chain checked against the WSJT-X encoder: CRC, LDPC,
// Gray map and Costas arrays in one go.
func TestEncodeFrameKnownTones(t *testing.T) {
	ft8_init(0)

	var payload, _ = parse_payload_bits("01100010110100101110110010001110101011111000010110001011011110000101100100011")

	var symbols, err = encode_frame(payload)
	require.NoError(t, err)

	var want = "3140652206612655263740653475121074173140652612626465724062075174121327473140652"
	require.Len(t, symbols, FT8_NN)

	var got = make([]byte, 0, FT8_NN)
	for _, s := range symbols {
		got = append(got, '0'+s)
	}
	assert.Equal(t, want, string(got))
}

func TestFrameSymbolsCostasPlacement(t *testing.T) {
	ft8_init(0)

	var symbols, err = frame_symbols(make([]byte, LDPC_N))
	require.NoError(t, err)

	for _, offset := range costas_offsets {
		for i, tone := range costas_pattern {
			assert.Equal(t, byte(tone), symbols[offset+i], "Costas mismatch at symbol %d", offset+i)
		}
	}
}

func Test_frame_extract(t *testing.T) {
	ft8_init(0)

	rapid.Check(t, func(t *rapid.T) {
		var in = rapid.SliceOfN(rapid.ByteRange(0, 1), LDPC_N, LDPC_N).Draw(t, "in")

		var symbols, err = frame_symbols(in)
		require.NoError(t, err)

		var out, extractErr = frame_extract(symbols)
		require.NoError(t, extractErr)

		assert.Equal(t, in, out, "extract did not invert symbol generation")
	})
}

func TestFrameRejectsWrongLength(t *testing.T) {
	ft8_init(0)

	var _, err = frame_symbols(make([]byte, LDPC_N-3))
	assert.ErrorIs(t, err, ErrInvalidLength)

	_, err = frame_extract(make([]byte, FT8_NN-1))
	assert.ErrorIs(t, err, ErrInvalidLength)

	_, err = encode_frame(make([]byte, FT8_MSG_BITS+1))
	assert.ErrorIs(t, err, ErrInvalidLength)
}

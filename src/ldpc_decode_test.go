package ft8

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func encode_payload_for_test(payload []byte) []byte {
	var crc, _ = crc14_encode(payload)

	var block = append([]byte{}, payload...)
	for i := CRC14_BITS - 1; i >= 0; i-- {
		block = append(block, byte(crc>>i)&1)
	}

	var cw, _ = ldpc_encode(block)

	return cw
}

func llr_from_codeword(cw []byte) []float64 {
	var llr = make([]float64, len(cw))
	for n, bit := range cw {
		llr[n] = IfThenElse(bit != 0, gen_llr_amplitude, -gen_llr_amplitude)
	}
	return llr
}

// Forty positions flipped to confident wrong values.  Belief propagation
// never gets near a valid codeword from here, which makes the two failure
// paths deterministic enough to test.
var decode_hopeless_flips = []int{
	13, 14, 16, 18, 30, 31, 42, 47, 54, 59, 62, 70, 71, 72, 77, 79, 81, 82,
	93, 105, 109, 113, 122, 123, 127, 128, 131, 132, 135, 136, 142, 145,
	146, 147, 157, 161, 163, 165, 166, 171,
}

func hopeless_llr() []float64 {
	var llr = make([]float64, LDPC_N)
	for n := range llr {
		llr[n] = -gen_llr_amplitude
	}
	for _, f := range decode_hopeless_flips {
		llr[f] = gen_llr_amplitude
	}
	return llr
}

func Test_ldpc_decode_clean(t *testing.T) {
	ft8_init(0)

	rapid.Check(t, func(t *rapid.T) {
		var payload = rapid.SliceOfN(rapid.ByteRange(0, 1), FT8_MSG_BITS, FT8_MSG_BITS).Draw(t, "payload")
		var cw = encode_payload_for_test(payload)

		var result, err = ldpc_decode(llr_from_codeword(cw), decode_config_defaults())
		require.NoError(t, err)

		assert.Equal(t, DECODE_SUCCESS, result.status)
		assert.Equal(t, 0, result.iterations, "a clean codeword must be accepted before any message passing")
		assert.Equal(t, cw, result.codeword)
		assert.Equal(t, payload, result.message())
	})
}

func TestDecodeAllZeroCodeword(t *testing.T) {
	ft8_init(0)

	// The all-zero codeword is valid and its CRC is zero, so uniformly
	// confident "all bits are 0" evidence must be accepted immediately.
	var llr = make([]float64, LDPC_N)
	for n := range llr {
		llr[n] = -10.0
	}

	var result, err = ldpc_decode(llr, decode_config_defaults())
	require.NoError(t, err)

	assert.Equal(t, DECODE_SUCCESS, result.status)
	assert.Equal(t, 0, result.iterations)
	assert.Equal(t, make([]byte, FT8_MSG_BITS), result.message())
}

func TestDecodeTwoWeakFlips(t *testing.T) {
	ft8_init(0)

	// Two low confidence wrong values is the easy error pattern this code
	// is built for.  It must be repaired within a round or two.
	rapid.Check(t, func(t *rapid.T) {
		var payload = rapid.SliceOfN(rapid.ByteRange(0, 1), FT8_MSG_BITS, FT8_MSG_BITS).Draw(t, "payload")
		var a = rapid.IntRange(0, LDPC_N-1).Draw(t, "a")
		var b = rapid.IntRange(0, LDPC_N-1).Draw(t, "b")
		if a == b {
			t.Skip("need two distinct positions")
		}

		var cw = encode_payload_for_test(payload)
		var llr = llr_from_codeword(cw)
		llr[a] = IfThenElse(cw[a] != 0, -0.5, 0.5)
		llr[b] = IfThenElse(cw[b] != 0, -0.5, 0.5)

		var result, err = ldpc_decode(llr, decode_config_defaults())
		require.NoError(t, err)

		assert.Equal(t, DECODE_SUCCESS, result.status)
		assert.GreaterOrEqual(t, result.iterations, 1)
		assert.LessOrEqual(t, result.iterations, 20)
		assert.Equal(t, payload, result.message())
	})
}

func TestDecodeNonConvergent(t *testing.T) {
	ft8_init(0)

	var result, err = ldpc_decode(hopeless_llr(), decode_config_defaults())
	require.NoError(t, err)

	assert.Equal(t, DECODE_NON_CONVERGENT, result.status)
	assert.Equal(t, "NON-CONVERGENT", result.status_text())
	assert.Less(t, result.iterations, DECODER_DEFAULT_MAX_ITERATIONS, "stagnation must give up well before the iteration budget")
	assert.GreaterOrEqual(t, result.iterations, decode_config_defaults().stag_min_iters)
	assert.Greater(t, result.unsatisfied, decode_config_defaults().stag_threshold)
	assert.Nil(t, result.codeword)
}

func TestDecodeMaxIterations(t *testing.T) {
	ft8_init(0)

	var config = decode_config_defaults()
	config.max_iterations = 5
	config.stag_window = 0 // Disable stagnation so only the budget can stop it.

	var result, err = ldpc_decode(hopeless_llr(), config)
	require.NoError(t, err)

	assert.Equal(t, DECODE_MAX_ITERATIONS, result.status)
	assert.Equal(t, "MAX-ITERATIONS", result.status_text())
	assert.Equal(t, 5, result.iterations)
	assert.Positive(t, result.unsatisfied)
	assert.Nil(t, result.codeword)
}

func TestDecodeNoiseTerminates(t *testing.T) {
	ft8_init(0)

	// Pure noise must terminate with a failure status, never hang and
	// never pretend to have found a message.
	var r = rand.New(rand.NewSource(12345))
	var llr = make([]float64, LDPC_N)
	for n := range llr {
		llr[n] = r.NormFloat64() * 2.0
	}

	var result, err = ldpc_decode(llr, decode_config_defaults())
	require.NoError(t, err)

	assert.NotEqual(t, DECODE_SUCCESS, result.status)
	assert.LessOrEqual(t, result.iterations, DECODER_DEFAULT_MAX_ITERATIONS)
}

func TestDecodeRejectsWrongLength(t *testing.T) {
	ft8_init(0)

	var _, err = ldpc_decode(make([]float64, LDPC_N-1), decode_config_defaults())
	assert.ErrorIs(t, err, ErrInvalidLength)

	_, err = ldpc_decode(nil, decode_config_defaults())
	assert.ErrorIs(t, err, ErrInvalidLength)
}

func TestDecodeConfigDefaults(t *testing.T) {
	var config = decode_config_defaults()

	assert.Equal(t, DECODER_DEFAULT_MAX_ITERATIONS, config.max_iterations)
	assert.Positive(t, config.stag_window)
	assert.Positive(t, config.stag_min_iters)
	assert.Positive(t, config.stag_threshold)
}

package ft8

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestLDPCFactorGraphStructure(t *testing.T) {
	ft8_init(0)

	var edges = 0
	var degree7 = 0
	for c := range ldpc_check_bits {
		var degree = len(ldpc_check_bits[c])
		assert.Contains(t, []int{6, 7}, degree, "check %d has degree %d", c, degree)
		edges += degree
		if degree == 7 {
			degree7++
		}
	}
	assert.Equal(t, LDPC_EDGES, edges)
	assert.Equal(t, 24, degree7)

	// Every edge slot table entry must point back to its own check.
	for c := range ldpc_check_bits {
		for k, b := range ldpc_check_bits[c] {
			var slot = ldpc_check_slot[c][k]
			assert.Equal(t, c, ldpc_bit_checks[b][slot], "slot table broken at check %d bit %d", c, b)
		}
	}

	// Spot values from WSJT-X lib/ft8/ldpc_174_91_c_reordered_parity.f90.
	assert.Equal(t, [LDPC_BIT_DEGREE]int{15, 44, 72}, ldpc_bit_checks[0])
	assert.Equal(t, [LDPC_BIT_DEGREE]int{0, 43, 44}, ldpc_bit_checks[3])
	assert.Equal(t, [LDPC_BIT_DEGREE]int{41, 48, 56}, ldpc_bit_checks[173])
	assert.Equal(t, []int{3, 30, 58, 90, 91, 95, 152}, ldpc_check_bits[0])
	assert.Equal(t, []int{16, 41, 74, 128, 169, 171}, ldpc_check_bits[LDPC_M-1])
}

func TestLDPCEncodeAllZero(t *testing.T) {
	ft8_init(0)

	var cw, err = ldpc_encode(make([]byte, LDPC_K))
	require.NoError(t, err)
	assert.Equal(t, make([]byte, LDPC_N), cw, "all-zero block must encode to the all-zero codeword")
}

// Checked against the WSJT-X encoder.
func TestLDPCEncodeKnownCodeword(t *testing.T) {
	ft8_init(0)

	var payload, _ = parse_payload_bits("01100010110100101110110010001110101011111000010110001011011110000101100100011")
	var crc, _ = crc14_encode(payload)
	require.Equal(t, uint16(0x38fa), crc)

	var block = append([]byte{}, payload...)
	for i := CRC14_BITS - 1; i >= 0; i-- {
		block = append(block, byte(crc>>i)&1)
	}

	var cw, err = ldpc_encode(block)
	require.NoError(t, err)
	assert.Equal(t,
		"011000101101001011101100100011101010111110000101100010110111100001011001000111110001111101001011101011101110101100111011110000101011000111100001111110001011001010011111110111",
		bits_to_string(cw))
}

func Test_ldpc_encode(t *testing.T) {
	ft8_init(0)

	rapid.Check(t, func(t *rapid.T) {
		var info = rapid.SliceOfN(rapid.ByteRange(0, 1), LDPC_K, LDPC_K).Draw(t, "info")

		var cw, err = ldpc_encode(info)
		require.NoError(t, err)
		require.Len(t, cw, LDPC_N)

		assert.Equal(t, info, cw[:LDPC_K], "code must be systematic")
		assert.Equal(t, 0, ldpc_count_unsatisfied(cw), "encoder output must satisfy every parity equation")
	})
}

func TestLDPCSingleFlipBreaksThreeChecks(t *testing.T) {
	ft8_init(0)

	rapid.Check(t, func(t *rapid.T) {
		var info = rapid.SliceOfN(rapid.ByteRange(0, 1), LDPC_K, LDPC_K).Draw(t, "info")
		var flip = rapid.IntRange(0, LDPC_N-1).Draw(t, "flip")

		var cw, err = ldpc_encode(info)
		require.NoError(t, err)

		// Each bit sits on exactly three parity equations, so one flip
		// breaks exactly three of them.
		cw[flip] ^= 1
		assert.Equal(t, LDPC_BIT_DEGREE, ldpc_count_unsatisfied(cw))
	})
}

func TestLDPCEncodeRejectsWrongLength(t *testing.T) {
	ft8_init(0)

	var _, err = ldpc_encode(make([]byte, LDPC_K-1))
	assert.ErrorIs(t, err, ErrInvalidLength)

	_, err = ldpc_encode(make([]byte, LDPC_N))
	assert.ErrorIs(t, err, ErrInvalidLength)
}

package ft8

/*-------------------------------------------------------------
 *
 * Purpose:	One time expansion of the coding tables.
 *
 *		The generator matrix is unpacked from its hex string form
 *		and the LDPC factor graph adjacency is built by inverting
 *		the parity check table.  Everything here is immutable after
 *		ft8_init returns, so concurrent encode and decode calls can
 *		share it without locking.
 *
 *--------------------------------------------------------------*/

// Expanded generator matrix.  One row per parity bit, one byte per
// information bit.
var ldpc_generator [LDPC_M][LDPC_K]byte

// Factor graph adjacency, 0 based.  ldpc_check_bits lists the codeword bit
// positions covered by each parity check.  ldpc_bit_checks is the inverse:
// the three checks each bit participates in.
var ldpc_check_bits [LDPC_M][]int
var ldpc_bit_checks [LDPC_N][LDPC_BIT_DEGREE]int

// On the edge from check c to its j'th bit, which of that bit's three edge
// slots leads back to c.  Lets per edge messages live in fixed [LDPC_N][3]
// arrays yet be addressed from either side of the graph.
var ldpc_check_slot [LDPC_M][]int

var g_debug_level int

func ft8_get_debug() int {
	return g_debug_level
}

func hex_digit_value(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	}
	Assert(false)
	return -1
}

/*-------------------------------------------------------------
 *
 * Name:	ft8_init
 *
 * Purpose:	This must be called once before any of the other
 *		encode / decode functions.
 *
 * Inputs:	debug_level - Controls level of informational / debug messages.
 *
 *			0	Only errors.
 *			1	Decode results.
 *			2	Accepted codewords with iteration counts.
 *			3	Per iteration decoder state.
 *
 * Description:	Builds the CRC divisor, the Gray inverse table, the
 *		expanded generator matrix and the factor graph, then
 *		verifies the structural invariants of all of them.
 *
 *--------------------------------------------------------------*/

func ft8_init(debug_level int) {
	g_debug_level = debug_level

	crc14_init()
	gray_init()

	// Each generator row is 23 hex digits, 92 bits, of which the final
	// low order bit is padding.  Shifting right once leaves the 91 bit
	// row, so the row is the first 91 bits of the expansion.
	for i, h := range ldpc_generator_hex {
		Assert(len(h)*4 == LDPC_K+1)

		var rowbits [LDPC_K + 1]byte
		for j := 0; j < len(h); j++ {
			var v = hex_digit_value(h[j])
			rowbits[j*4+0] = byte(v >> 3 & 1)
			rowbits[j*4+1] = byte(v >> 2 & 1)
			rowbits[j*4+2] = byte(v >> 1 & 1)
			rowbits[j*4+3] = byte(v & 1)
		}
		copy(ldpc_generator[i][:], rowbits[:LDPC_K])
	}

	// Check to bit adjacency, converted from the 1 based reference form.
	var edges = 0
	for c, row := range ldpc_check_terms {
		Assert(len(row) == LDPC_MAX_CHECK_DEGREE-1 || len(row) == LDPC_MAX_CHECK_DEGREE)

		ldpc_check_bits[c] = make([]int, len(row))
		for j, b := range row {
			Assert(b >= 1 && b <= LDPC_N)
			if j > 0 {
				Assert(b > row[j-1])
			}
			ldpc_check_bits[c][j] = b - 1
			edges++
		}
	}
	Assert(edges == LDPC_EDGES)

	// Invert to get the three checks covering each bit.
	var degree [LDPC_N]int
	for c := range ldpc_check_bits {
		for _, b := range ldpc_check_bits[c] {
			Assert(degree[b] < LDPC_BIT_DEGREE)
			ldpc_bit_checks[b][degree[b]] = c
			degree[b]++
		}
	}
	for b := range degree {
		Assert(degree[b] == LDPC_BIT_DEGREE)
	}

	// Edge slots: arriving at check c from its j'th bit, which of that
	// bit's three edges is the one back to c.
	for c := range ldpc_check_bits {
		ldpc_check_slot[c] = make([]int, len(ldpc_check_bits[c]))
		for j, b := range ldpc_check_bits[c] {
			var slot = -1
			for e, cc := range ldpc_bit_checks[b] {
				if cc == c {
					slot = e
				}
			}
			Assert(slot >= 0)
			ldpc_check_slot[c][j] = slot
		}
	}

	// Verify the derived adjacency against known rows of the reference
	// parity table (1 based there, 0 based here).
	Assert(ldpc_bit_checks[0] == [LDPC_BIT_DEGREE]int{15, 44, 72})
	Assert(ldpc_bit_checks[3] == [LDPC_BIT_DEGREE]int{0, 43, 44})
	Assert(ldpc_bit_checks[LDPC_N-1] == [LDPC_BIT_DEGREE]int{41, 48, 56})

	var degree7 = 0
	for c := range ldpc_check_bits {
		if len(ldpc_check_bits[c]) == LDPC_MAX_CHECK_DEGREE {
			degree7++
		}
	}
	Assert(degree7 == 24)

	// An all zero message has an all zero CRC, and the all zero
	// information block must encode to the all zero codeword.
	var zeros [FT8_MSG_BITS]byte
	var crc, _ = crc14_encode(zeros[:])
	Assert(crc == 0)

	var zblock [LDPC_K]byte
	var zcw, _ = ldpc_encode(zblock[:])
	for _, bit := range zcw {
		Assert(bit == 0)
	}
}

package ft8

/*-------------------------------------------------------------
 *
 * Purpose:	Systematic encoder for the (174,91) LDPC code.
 *
 * Reference:	WSJT-X lib/ft8/encode.f90.
 *
 *--------------------------------------------------------------*/

import (
	"fmt"
)

/*-------------------------------------------------------------
 *
 * Name:	ldpc_encode
 *
 * Purpose:	Encode a 91 bit information block into a 174 bit codeword.
 *
 * Inputs:	info	- 77 message bits followed by 14 CRC bits, one per
 *			  byte.  Must be exactly 91 bits.
 *
 * Returns:	The codeword: the information bits unchanged in positions
 *		[0,91) and 83 parity bits in positions [91,174).  Error if
 *		the input has the wrong size.
 *
 * Description:	Each parity bit is one generator matrix row times the
 *		information block: AND the row with the block and take
 *		the number of set bits modulo 2.
 *
 *--------------------------------------------------------------*/

func ldpc_encode(info []byte) ([]byte, error) {
	if len(info) != LDPC_K {
		return nil, fmt.Errorf("%w: information block is %d bits, want %d", ErrInvalidLength, len(info), LDPC_K)
	}

	var cw = make([]byte, LDPC_N)
	copy(cw, info)

	for i := range ldpc_generator {
		var sum byte
		for j, g := range ldpc_generator[i] {
			sum ^= g & info[j]
		}
		cw[LDPC_K+i] = sum
	}

	return cw, nil
}

// Number of parity check equations the codeword fails.  Zero means the
// codeword is valid.  The caller must supply exactly 174 bits.
func ldpc_count_unsatisfied(cw []byte) int {
	Assert(len(cw) == LDPC_N)

	var bad = 0
	for c := range ldpc_check_bits {
		var sum byte
		for _, b := range ldpc_check_bits[c] {
			sum ^= cw[b]
		}
		if sum != 0 {
			bad++
		}
	}

	return bad
}

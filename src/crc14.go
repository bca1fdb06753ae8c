package ft8

/*-------------------------------------------------------------
 *
 * Purpose:	CRC-14 outer code protecting the 77 bit payload.
 *
 *		The LDPC decoder can settle on a codeword that satisfies
 *		every parity equation yet is not the transmitted one.
 *		The CRC is the final arbiter: a codeword is accepted only
 *		when the 14 check bits match the 77 message bits.
 *
 * Reference:	WSJT-X lib/crc14.cpp and lib/ft8/encode.f90.
 *
 *--------------------------------------------------------------*/

import (
	"errors"
	"fmt"
)

// Inputs that do not have one of the fixed sizes (77, 91, 174 bits or a
// whole number of 3 bit symbols) are rejected, never truncated or padded.
var ErrInvalidLength = errors.New("ft8: invalid input length")

// Generator polynomial with its implicit leading x^14 term made explicit,
// one bit per byte, MSB first, ready for long division.  Built by crc14_init.
var crc14_divisor [CRC14_BITS + 1]byte

func crc14_init() {
	var poly = (1 << CRC14_BITS) | CRC14_POLYNOMIAL
	for i := 0; i <= CRC14_BITS; i++ {
		crc14_divisor[i] = byte((poly >> (CRC14_BITS - i)) & 1)
	}

	Assert(crc14_divisor[0] == 1)
	Assert(crc14_divisor[CRC14_BITS] == 1) // The polynomial has an x^0 term.
}

/*-------------------------------------------------------------
 *
 * Name:	crc14_encode
 *
 * Purpose:	Compute the 14 bit CRC over a 77 bit message.
 *
 * Inputs:	msg	- Message bits, one per byte, most significant first.
 *			  Must be exactly 77 bits.
 *
 * Returns:	The remainder in the low 14 bits of the result, or an
 *		error if the message has the wrong size.
 *
 * Description:	The message is zero padded to 96 bits, a whole number of
 *		bytes, then divided modulo 2 by the generator polynomial.
 *		The padding must be at least 14 bits for the division to
 *		produce a full remainder; the protocol designers rounded
 *		it up to a byte boundary.
 *
 *--------------------------------------------------------------*/

func crc14_encode(msg []byte) (uint16, error) {
	if len(msg) != FT8_MSG_BITS {
		return 0, fmt.Errorf("%w: message is %d bits, want %d", ErrInvalidLength, len(msg), FT8_MSG_BITS)
	}

	var buf [CRC14_PADDED_BITS]byte
	copy(buf[:], msg)

	// Polynomial long division modulo 2.  Only the remainder is kept.
	for i := 0; i < CRC14_PADDED_BITS-CRC14_BITS; i++ {
		if buf[i] != 0 {
			for j, d := range crc14_divisor {
				buf[i+j] ^= d
			}
		}
	}

	var crc uint16
	for _, b := range buf[CRC14_PADDED_BITS-CRC14_BITS:] {
		crc = crc<<1 | uint16(b)
	}

	return crc, nil
}

/*-------------------------------------------------------------
 *
 * Name:	crc14_check
 *
 * Purpose:	Verify the CRC of a 91 bit systematic block.
 *
 * Inputs:	block	- 77 message bits followed by 14 CRC bits, one
 *			  per byte, most significant first.
 *
 * Returns:	true when the trailing CRC matches the message bits, or
 *		an error if the block has the wrong size.
 *
 *--------------------------------------------------------------*/

func crc14_check(block []byte) (bool, error) {
	if len(block) != LDPC_K {
		return false, fmt.Errorf("%w: block is %d bits, want %d", ErrInvalidLength, len(block), LDPC_K)
	}

	var want, _ = crc14_encode(block[:FT8_MSG_BITS])

	var got uint16
	for _, b := range block[FT8_MSG_BITS:] {
		got = got<<1 | uint16(b)
	}

	return got == want, nil
}

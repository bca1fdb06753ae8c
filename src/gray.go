package ft8

/*-------------------------------------------------------------
 *
 * Purpose:	Gray mapping between 3 bit symbol values and tone numbers.
 *
 *		Adjacent tones differ in exactly one bit, so the most
 *		likely detection error, picking a tone next to the true
 *		one, corrupts a single bit which the LDPC code can repair.
 *
 *--------------------------------------------------------------*/

import (
	"fmt"
	"math/bits"
)

// Tone number back to symbol value.  Built from gray_map by gray_init.
var gray_inverse [8]int

func gray_init() {
	for s, t := range gray_map {
		gray_inverse[t] = s
	}

	// Verify the table is a permutation and has the Gray property:
	// tones one apart map to symbol values one bit apart.
	for s := range gray_map {
		Assert(gray_inverse[gray_map[s]] == s)
	}
	for t := 0; t < len(gray_inverse)-1; t++ {
		Assert(bits.OnesCount(uint(gray_inverse[t]^gray_inverse[t+1])) == 1)
	}
}

func gray_encode_symbol(s int) int {
	Assert(s >= 0 && s < len(gray_map))
	return gray_map[s]
}

func gray_decode_tone(t int) int {
	Assert(t >= 0 && t < len(gray_inverse))
	return gray_inverse[t]
}

/*-------------------------------------------------------------
 *
 * Name:	gray_map_codeword
 *
 * Purpose:	Convert codeword bits to Gray coded tone numbers.
 *
 * Inputs:	cw	- Codeword bits, one per byte.  Grouped into
 *			  consecutive triples, most significant bit first.
 *
 * Returns:	One tone number in [0,7] per 3 bits, or an error if the
 *		input is not a whole number of symbols.
 *
 *--------------------------------------------------------------*/

func gray_map_codeword(cw []byte) ([]byte, error) {
	if len(cw)%3 != 0 {
		return nil, fmt.Errorf("%w: %d bits is not a whole number of 3 bit symbols", ErrInvalidLength, len(cw))
	}

	var tones = make([]byte, 0, len(cw)/3)
	for i := 0; i < len(cw); i += 3 {
		var s = int(cw[i])<<2 | int(cw[i+1])<<1 | int(cw[i+2])
		tones = append(tones, byte(gray_encode_symbol(s)))
	}

	return tones, nil
}

/*-------------------------------------------------------------
 *
 * Name:	gray_unmap_tones
 *
 * Purpose:	Convert detected tone numbers back to codeword bits.
 *
 * Inputs:	tones	- Tone numbers in [0,7], e.g. hard decisions from
 *			  a demodulator.
 *
 * Returns:	Three bits per tone, one per byte, most significant first.
 *
 *--------------------------------------------------------------*/

func gray_unmap_tones(tones []byte) []byte {
	var cw = make([]byte, 0, len(tones)*3)
	for _, t := range tones {
		var s = gray_decode_tone(int(t))
		cw = append(cw, byte(s>>2&1), byte(s>>1&1), byte(s&1))
	}

	return cw
}

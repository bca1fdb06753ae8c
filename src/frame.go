package ft8

/*-------------------------------------------------------------
 *
 * Purpose:	Channel symbol frames: 79 tones per transmission.
 *
 *		The 58 Gray coded data symbols are bracketed by three
 *		7 symbol Costas arrays, one at the start, one in the
 *		middle, one at the end.  Receivers use them for time and
 *		frequency synchronization; here they are part of the
 *		fixed frame layout.
 *
 * Reference:	WSJT-X lib/ft8/genft8.f90.
 *
 *--------------------------------------------------------------*/

import (
	"fmt"
)

const FT8_ND = 58 // Data symbols per frame.
const FT8_NS = 21 // Sync symbols per frame: three Costas arrays of 7.
const FT8_NN = 79 // Total channel symbols per frame.

/*-------------------------------------------------------------
 *
 * Name:	frame_symbols
 *
 * Purpose:	Build the 79 channel symbols for one codeword.
 *
 * Inputs:	cw	- Codeword bits, one per byte.  Must be exactly
 *			  174 bits.
 *
 * Returns:	79 tone numbers in [0,7]: Costas array, 29 data symbols,
 *		Costas array, 29 data symbols, Costas array.
 *
 *--------------------------------------------------------------*/

func frame_symbols(cw []byte) ([]byte, error) {
	if len(cw) != LDPC_N {
		return nil, fmt.Errorf("%w: codeword is %d bits, want %d", ErrInvalidLength, len(cw), LDPC_N)
	}

	var data, err = gray_map_codeword(cw)
	if err != nil {
		return nil, err
	}
	Assert(len(data) == FT8_ND)

	var symbols = make([]byte, FT8_NN)
	for i, t := range costas_pattern {
		symbols[costas_offsets[0]+i] = byte(t)
		symbols[costas_offsets[1]+i] = byte(t)
		symbols[costas_offsets[2]+i] = byte(t)
	}
	copy(symbols[costas_offsets[0]+len(costas_pattern):costas_offsets[1]], data[:FT8_ND/2])
	copy(symbols[costas_offsets[1]+len(costas_pattern):costas_offsets[2]], data[FT8_ND/2:])

	return symbols, nil
}

/*-------------------------------------------------------------
 *
 * Name:	frame_extract
 *
 * Purpose:	Recover codeword bits from detected channel symbols.
 *
 * Inputs:	symbols	- 79 tone numbers, e.g. hard decisions from a
 *			  demodulator.
 *
 * Returns:	The 174 bits of the two data symbol runs, with the
 *		Costas positions skipped.  No error correction happens
 *		here; that is the decoder's job.
 *
 *--------------------------------------------------------------*/

func frame_extract(symbols []byte) ([]byte, error) {
	if len(symbols) != FT8_NN {
		return nil, fmt.Errorf("%w: frame has %d symbols, want %d", ErrInvalidLength, len(symbols), FT8_NN)
	}

	var data = make([]byte, 0, FT8_ND)
	data = append(data, symbols[costas_offsets[0]+len(costas_pattern):costas_offsets[1]]...)
	data = append(data, symbols[costas_offsets[1]+len(costas_pattern):costas_offsets[2]]...)

	return gray_unmap_tones(data), nil
}

/*-------------------------------------------------------------
 *
 * Name:	encode_frame
 *
 * Purpose:	Whole transmit side coding chain for one message.
 *
 * Inputs:	msg	- Message payload bits, one per byte.  Must be
 *			  exactly 77 bits.
 *
 * Returns:	The 79 channel symbols: CRC appended, LDPC encoded,
 *		Gray mapped, Costas arrays inserted.
 *
 *--------------------------------------------------------------*/

func encode_frame(msg []byte) ([]byte, error) {
	var crc, err = crc14_encode(msg)
	if err != nil {
		return nil, err
	}

	var block = make([]byte, 0, LDPC_K)
	block = append(block, msg...)
	for i := CRC14_BITS - 1; i >= 0; i-- {
		block = append(block, byte(crc>>i)&1)
	}

	var cw, encodeErr = ldpc_encode(block)
	if encodeErr != nil {
		return nil, encodeErr
	}

	return frame_symbols(cw)
}

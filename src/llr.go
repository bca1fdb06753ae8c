package ft8

/*-------------------------------------------------------------
 *
 * Purpose:	Condition raw soft demodulator output for decoding.
 *
 *		Demodulators produce bit metrics on whatever scale their
 *		DFT magnitudes happen to have.  The decoder wants log
 *		likelihood ratios, so the metrics are normalized to unit
 *		standard deviation and then scaled.
 *
 * Reference:	WSJT-X lib/ft8/ft8b.f90.
 *
 *--------------------------------------------------------------*/

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Scale applied after normalization.  WSJT-X uses 2.83, about sqrt(8).
const llr_scale = 2.83

/*-------------------------------------------------------------
 *
 * Name:	normalize_llrs
 *
 * Purpose:	Scale raw soft values into decoder ready LLRs, in place.
 *
 * Inputs:	llr	- One soft value per codeword bit position,
 *			  exactly 174 values.  Positive means bit 1.
 *
 * Returns:	Error if the input has the wrong size.  A vector with
 *		zero spread is left untouched.
 *
 *--------------------------------------------------------------*/

func normalize_llrs(llr []float64) error {
	if len(llr) != LDPC_N {
		return fmt.Errorf("%w: LLR vector has %d values, want %d", ErrInvalidLength, len(llr), LDPC_N)
	}

	var sd = stat.PopStdDev(llr, nil)
	if sd == 0 {
		return nil
	}

	floats.Scale(llr_scale/sd, llr)
	return nil
}

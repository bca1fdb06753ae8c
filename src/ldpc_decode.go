package ft8

/*-------------------------------------------------------------
 *
 * Purpose:	Sum product (belief propagation) decoder for the
 *		(174,91) LDPC code.
 *
 *		Soft bit estimates are passed back and forth between the
 *		174 bit nodes and the 83 check nodes of the factor graph
 *		until the hard decision satisfies every parity equation
 *		AND the outer CRC, or until the attempt is abandoned.
 *
 *		A codeword that satisfies the parity equations but fails
 *		the CRC is not accepted and not reported; iteration just
 *		continues, because a later iteration can move to a
 *		different valid codeword that does pass.
 *
 * Reference:	WSJT-X lib/ft8/bpdecode174_91.f90.
 *
 *--------------------------------------------------------------*/

import (
	"fmt"
	"math"

	"github.com/charmbracelet/log"
)

const DECODER_DEFAULT_MAX_ITERATIONS = 200

// Decode outcome.
const (
	DECODE_SUCCESS        = iota // Codeword satisfies all parity equations and the CRC.
	DECODE_NON_CONVERGENT        // Unsatisfied check count stopped improving.  Gave up early.
	DECODE_MAX_ITERATIONS        // Iteration budget exhausted without an accepted codeword.
)

var decode_status_text = []string{
	"SUCCESS",
	"NON-CONVERGENT",
	"MAX-ITERATIONS",
}

type decode_config_s struct {
	max_iterations int // Hard bound on message passing rounds.

	// The stagnation heuristic gives up when the unsatisfied check count
	// has not improved for stag_window consecutive rounds, at least
	// stag_min_iters rounds have run, and more than stag_threshold
	// checks still fail.  A window of 0 disables it.
	stag_window    int
	stag_min_iters int
	stag_threshold int
}

func decode_config_defaults() decode_config_s {
	return decode_config_s{
		max_iterations: DECODER_DEFAULT_MAX_ITERATIONS,
		stag_window:    5,
		stag_min_iters: 10,
		stag_threshold: 15,
	}
}

type decode_result_s struct {
	status      int    // DECODE_SUCCESS / DECODE_NON_CONVERGENT / DECODE_MAX_ITERATIONS.
	codeword    []byte // The accepted 174 bit codeword.  nil unless status is DECODE_SUCCESS.
	iterations  int    // Message passing rounds run before termination.
	unsatisfied int    // Failing parity checks at termination.  0 on success.
}

// The 77 message bits of an accepted codeword, for the unpacking layer.
func (r *decode_result_s) message() []byte {
	Assert(r.status == DECODE_SUCCESS)
	return r.codeword[:FT8_MSG_BITS]
}

func (r *decode_result_s) status_text() string {
	Assert(r.status >= 0 && r.status < len(decode_status_text))
	return decode_status_text[r.status]
}

// A product of tanh values can round to exactly +-1, whose arctanh is
// infinite.  Pulling it just inside the open interval caps check node
// messages near +-28 so no infinity or NaN can reach the bit sums.
const atanh_input_limit = 1 - 1e-12

func atanh_clamp(p float64) float64 {
	if p > atanh_input_limit {
		return atanh_input_limit
	}
	if p < -atanh_input_limit {
		return -atanh_input_limit
	}
	return p
}

/*-------------------------------------------------------------
 *
 * Name:	ldpc_decode
 *
 * Purpose:	Attempt to recover a codeword from soft bit estimates.
 *
 * Inputs:	llr	- One log likelihood ratio per codeword bit
 *			  position, exactly 174 values.  Positive means
 *			  bit value 1.  Magnitude is confidence.
 *
 *		config	- Iteration budget and stagnation policy.
 *
 * Returns:	A result whose status says whether a codeword was
 *		accepted, plus the iteration count, or an error if the
 *		input has the wrong size.  Failure to converge is an
 *		expected outcome at low signal quality, not an error.
 *
 * Description:	Messages travel along the 522 factor graph edges, one
 *		value per direction per edge, indexed (bit, edge slot).
 *
 *		Each round:
 *		  - every bit's corrected LLR is its input LLR plus all
 *		    three incoming check messages, and the hard decision
 *		    per bit is corrected LLR > 0;
 *		  - if the hard decision satisfies all 83 parity
 *		    equations and the CRC, it is accepted;
 *		  - otherwise each bit sends each check its corrected
 *		    LLR minus that check's own contribution, as
 *		    tanh(-x/2), and each check answers each bit with
 *		    -2*atanh of the product over its OTHER bits.
 *
 *		All working state is local to the call, so any number of
 *		decode attempts can run concurrently.
 *
 *--------------------------------------------------------------*/

func ldpc_decode(llr []float64, config decode_config_s) (decode_result_s, error) {
	if len(llr) != LDPC_N {
		return decode_result_s{}, fmt.Errorf("%w: LLR vector has %d values, want %d", ErrInvalidLength, len(llr), LDPC_N)
	}

	var bit_in [LDPC_N][LDPC_BIT_DEGREE]float64  // check to bit messages, already -2*atanh transformed
	var bit_out [LDPC_N][LDPC_BIT_DEGREE]float64 // bit to check messages, in tanh form

	var bit_llr [LDPC_N]float64
	var cw = make([]byte, LDPC_N)

	var prev_unsat = LDPC_M
	var stagnant = 0

	for iter := 0; iter < config.max_iterations; iter++ {

		// Corrected LLR per bit: the input plus every check node
		// message.  All messages are zero on the first round, so the
		// first hard decision is taken on the raw input.
		for n := 0; n < LDPC_N; n++ {
			bit_llr[n] = llr[n] + bit_in[n][0] + bit_in[n][1] + bit_in[n][2]
			if bit_llr[n] > 0 {
				cw[n] = 1
			} else {
				cw[n] = 0
			}
		}

		var unsat = ldpc_count_unsatisfied(cw)

		if g_debug_level >= 3 {
			log.Debug("LDPC iteration", "iteration", iter, "unsatisfied", unsat)
		}

		if unsat == 0 {
			var ok, _ = crc14_check(cw[:LDPC_K])
			if ok {
				if g_debug_level >= 2 {
					log.Debug("LDPC codeword accepted", "iterations", iter)
				}
				return decode_result_s{
					status:     DECODE_SUCCESS,
					codeword:   cw,
					iterations: iter,
				}, nil
			}
			// Valid codeword, wrong CRC.  Keep iterating.
		}

		if unsat < prev_unsat {
			stagnant = 0
		} else {
			stagnant++
		}
		prev_unsat = unsat

		if config.stag_window > 0 && stagnant >= config.stag_window &&
			iter >= config.stag_min_iters && unsat > config.stag_threshold {
			return decode_result_s{
				status:      DECODE_NON_CONVERGENT,
				iterations:  iter,
				unsatisfied: unsat,
			}, nil
		}

		// Bit to check messages.  The tanh is applied here, before
		// sending, rather than at the receiving check node.
		for n := 0; n < LDPC_N; n++ {
			for e := 0; e < LDPC_BIT_DEGREE; e++ {
				bit_out[n][e] = math.Tanh(-0.5 * (bit_llr[n] - bit_in[n][e]))
			}
		}

		// Check to bit messages: the product of the tanh values from
		// every OTHER bit on the check, turned back into LLR form.
		for c := range ldpc_check_bits {
			var row = ldpc_check_bits[c]
			var slot = ldpc_check_slot[c]
			for j, b := range row {
				var prod = 1.0
				for k, bk := range row {
					if k != j {
						prod *= bit_out[bk][slot[k]]
					}
				}
				bit_in[b][slot[j]] = -2 * math.Atanh(atanh_clamp(prod))
			}
		}
	}

	return decode_result_s{
		status:      DECODE_MAX_ITERATIONS,
		iterations:  config.max_iterations,
		unsatisfied: prev_unsat,
	}, nil
}

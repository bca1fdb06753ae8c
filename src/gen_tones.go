package ft8

/*------------------------------------------------------------------
 *
 * Name:	gen_tones
 *
 * Purpose:	Test program for generating FT8 channel symbol frames.
 *
 * Description:	Given or random message payloads are run through the
 *		whole transmit side coding chain and written out either
 *		as 79 tone numbers per frame, or as 174 soft values per
 *		frame for feeding the decoder test program.
 *
 * Examples:	One random frame as tone numbers:
 *
 *			gen_tones
 *
 *		A fixed payload:
 *
 *			gen_tones -m 00101...   (77 binary digits)
 *
 *		Fifty frames of soft values with increasing noise, then
 *		see how many still decode:
 *
 *			gen_tones -n 50 -o z.llr
 *			ltest -L 30 z.llr
 *
 *------------------------------------------------------------------*/

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
)

// Soft value magnitude for a clean bit.  Noise is added on top of this,
// so it also sets where the noise ramp of -n starts to flip signs.
const gen_llr_amplitude = 4.0

func parse_payload_bits(s string) ([]byte, error) {
	if len(s) != FT8_MSG_BITS {
		return nil, fmt.Errorf("%w: payload is %d digits, want %d", ErrInvalidLength, len(s), FT8_MSG_BITS)
	}

	var bits = make([]byte, 0, FT8_MSG_BITS)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '0':
			bits = append(bits, 0)
		case '1':
			bits = append(bits, 1)
		default:
			return nil, fmt.Errorf("ft8: payload digit %q is not 0 or 1", s[i])
		}
	}

	return bits, nil
}

func random_payload(r *rand.Rand) []byte {
	var bits = make([]byte, FT8_MSG_BITS)
	for i := range bits {
		bits[i] = byte(r.Intn(2))
	}
	return bits
}

func GenTonesMain() {
	var message = pflag.StringP("message", "m", "", "Message payload as 77 binary digits.  Random payloads are used when absent.")
	var frameCount = pflag.IntP("frame-count", "N", 0, "Generate specified number of frames.")
	var noisyFrameCount = pflag.IntP("noisy-frame-count", "n", 0, "Generate specified number of soft value frames with increasing noise.")
	var softOutput = pflag.BoolP("llr", "l", false, "Output 174 soft values per frame rather than 79 tone numbers.")
	var outputFile = pflag.StringP("output-file", "o", "", "Send output to file rather than stdout.")
	var seed = pflag.Int64P("seed", "S", 1, "Random seed for payloads and noise.")
	var debugLevel = pflag.IntP("debug", "d", 0, "Debug level.")
	var help = pflag.BoolP("help", "h", false, "Display help text.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s - Generate FT8 channel symbols for decoder testing.\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n", os.Args[0])
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "Each output line is one frame: 79 tone numbers in 0-7, or with -l\n")
		fmt.Fprintf(os.Stderr, "174 soft values suitable as input for ltest.\n")
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "Example:  gen_tones -n 50 -o z.llr\n")
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "    50 frames with noise ramping up from none, for checking where\n")
		fmt.Fprintf(os.Stderr, "    the decoder gives up.\n")
	}

	// !!! PARSE !!!
	pflag.Parse()

	if *help {
		pflag.Usage()
		os.Exit(1)
	}

	if *debugLevel > 0 {
		log.SetLevel(log.DebugLevel)
	}

	ft8_init(*debugLevel)

	if *noisyFrameCount > 0 && *frameCount > 0 {
		log.Error("Cannot choose both noisy frames (-n) and noiseless (-N) frames - pick at most one.")
		os.Exit(1)
	}

	var frame_count = 1
	var add_noise = false
	if *noisyFrameCount > 0 {
		frame_count = *noisyFrameCount
		add_noise = true
	} else if *frameCount > 0 {
		frame_count = *frameCount
	}

	var soft_output = *softOutput || add_noise

	var fixed_payload []byte
	if *message != "" {
		var parseErr error
		fixed_payload, parseErr = parse_payload_bits(*message)
		if parseErr != nil {
			log.Error("Bad payload", "error", parseErr)
			os.Exit(1)
		}
	}

	var out = os.Stdout
	if *outputFile != "" {
		var createErr error
		out, createErr = os.Create(*outputFile)
		if createErr != nil {
			log.Error("Couldn't open file for write", "file", *outputFile, "error", createErr)
			os.Exit(1)
		}
		defer out.Close()
	}
	var w = bufio.NewWriter(out)

	var r = rand.New(rand.NewSource(*seed))

	for i := 0; i < frame_count; i++ {
		var payload = fixed_payload
		if payload == nil {
			payload = random_payload(r)
		}

		var symbols, err = encode_frame(payload)
		if err != nil {
			log.Error("Encode failed", "error", err)
			os.Exit(1)
		}

		if soft_output {
			var cw, _ = frame_extract(symbols)

			// Noise ramps from zero on the first frame toward the
			// clean amplitude on the last, where signs start to flip
			// often enough that decodes should fail.
			var level = 0.0
			if add_noise && frame_count > 1 {
				level = gen_llr_amplitude * float64(i) / float64(frame_count-1)
			}

			for n, bit := range cw {
				var v = IfThenElse(bit != 0, gen_llr_amplitude, -gen_llr_amplitude)
				v += r.NormFloat64() * level
				fmt.Fprintf(w, "%s%.3f", IfThenElse(n == 0, "", " "), v)
			}
			fmt.Fprintf(w, "\n")
		} else {
			for _, tone := range symbols {
				fmt.Fprintf(w, "%d", tone)
			}
			fmt.Fprintf(w, "\n")
		}
	}

	w.Flush()

	log.Info("Generated frames", "count", frame_count,
		"format", IfThenElse(soft_output, "soft values", "tone numbers"))
}

package ft8

/*------------------------------------------------------------------
 *
 * Name:	ltest
 *
 * Purpose:	Test program for the LDPC decoder.
 *
 * Description:	Reads frames of soft values (174 per line, as produced
 *		by gen_tones -l) or tone numbers (79 digits per line)
 *		from the given files, attempts to decode each one, and
 *		prints the outcome per frame plus a summary.
 *
 *		The -L / -G options turn it into a pass / fail check for
 *		scripted regression runs.
 *
 * Examples:	gen_tones -n 50 -o z.llr
 *		ltest -L 30 z.llr
 *
 *------------------------------------------------------------------*/

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lestrrat-go/strftime"
	"github.com/spf13/pflag"
)

func bits_to_string(bits []byte) string {
	var sb strings.Builder
	for _, b := range bits {
		sb.WriteByte('0' + b)
	}
	return sb.String()
}

func parse_tone_digits(s string) ([]byte, error) {
	var tones = make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '7' {
			return nil, fmt.Errorf("ft8: tone digit %q is not in 0-7", s[i])
		}
		tones = append(tones, s[i]-'0')
	}
	return tones, nil
}

func parse_soft_values(fields []string) ([]float64, error) {
	var llr = make([]float64, 0, len(fields))
	for _, f := range fields {
		var v, err = strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		llr = append(llr, v)
	}
	return llr, nil
}

func LtestMain() {
	var maxIterations = pflag.IntP("max-iterations", "F", 0, "Iteration budget per decode attempt.  0 uses the configured default.")
	var tonesInput = pflag.BoolP("tones", "t", false, "Input lines are 79 tone digits rather than soft values.")
	var normalize = pflag.BoolP("normalize", "z", false, "Normalize each frame's soft values before decoding.")
	var timestampFormat = pflag.StringP("timestamp-format", "T", "", "Prefix each result line with the current time in this strftime format, e.g. %H:%M:%S.")
	var errorIfLessThan = pflag.IntP("error-if-less-than", "L", -1, "Error if less than this number decoded.")
	var errorIfGreaterThan = pflag.IntP("error-if-greater-than", "G", -1, "Error if greater than this number decoded.")
	var debugLevel = pflag.IntP("debug", "d", 0, "Debug level.")
	var help = pflag.BoolP("help", "h", false, "Display help text.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s - Decode FT8 frames from soft value or tone files.\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "Usage: %s [options] file [...]\n", os.Args[0])
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "Example:  gen_tones -n 50 -o z.llr && %s -L 30 z.llr\n", os.Args[0])
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

	var config = decode_config_load()
	if *maxIterations > 0 {
		config.max_iterations = *maxIterations
	}

	if len(pflag.Args()) == 0 {
		log.Error("Specify input file name on command line.")
		pflag.Usage()
		os.Exit(1)
	}

	var start_time = time.Now()
	var frames_decoded_total = 0
	var frames_seen_total = 0

	for _, fileName := range pflag.Args() {
		var fp, openErr = os.Open(fileName)
		if openErr != nil {
			log.Error("Couldn't open file for read", "file", fileName, "error", openErr)
			os.Exit(1)
		}

		var frames_decoded_one = 0
		var frame_number = 0

		var scanner = bufio.NewScanner(fp)
		for scanner.Scan() {
			var line = strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			frame_number++
			frames_seen_total++

			var llr []float64
			if *tonesInput {
				var tones, parseErr = parse_tone_digits(line)
				if parseErr != nil {
					log.Error("Bad input line", "file", fileName, "frame", frame_number, "error", parseErr)
					os.Exit(1)
				}
				var cw, extractErr = frame_extract(tones)
				if extractErr != nil {
					log.Error("Bad input line", "file", fileName, "frame", frame_number, "error", extractErr)
					os.Exit(1)
				}
				llr = make([]float64, len(cw))
				for n, bit := range cw {
					llr[n] = IfThenElse(bit != 0, gen_llr_amplitude, -gen_llr_amplitude)
				}
			} else {
				var parsed, parseErr = parse_soft_values(strings.Fields(line))
				if parseErr != nil {
					log.Error("Bad input line", "file", fileName, "frame", frame_number, "error", parseErr)
					os.Exit(1)
				}
				llr = parsed
				if *normalize {
					if normErr := normalize_llrs(llr); normErr != nil {
						log.Error("Bad input line", "file", fileName, "frame", frame_number, "error", normErr)
						os.Exit(1)
					}
				}
			}

			var result, decodeErr = ldpc_decode(llr, config)
			if decodeErr != nil {
				log.Error("Bad input line", "file", fileName, "frame", frame_number, "error", decodeErr)
				os.Exit(1)
			}

			var ts string // optional time stamp.
			if *timestampFormat != "" {
				var formattedTime, _ = strftime.Format(*timestampFormat, time.Now())
				ts = formattedTime + " "
			}

			if result.status == DECODE_SUCCESS {
				frames_decoded_one++
				fmt.Printf("%sFrame %d: %s  iterations %d  payload %s\n",
					ts, frame_number, result.status_text(), result.iterations, bits_to_string(result.message()))
			} else {
				fmt.Printf("%sFrame %d: %s  iterations %d  unsatisfied %d\n",
					ts, frame_number, result.status_text(), result.iterations, result.unsatisfied)
			}
		}
		if scanErr := scanner.Err(); scanErr != nil {
			log.Error("Error reading file", "file", fileName, "error", scanErr)
			os.Exit(1)
		}

		fmt.Printf("%d from %s\n", frames_decoded_one, fileName)
		frames_decoded_total += frames_decoded_one

		fp.Close()
	}

	var elapsed = time.Since(start_time)

	fmt.Printf("%d of %d frames decoded in %.3f seconds.\n", frames_decoded_total, frames_seen_total, elapsed.Seconds())

	if *errorIfLessThan != -1 && frames_decoded_total < *errorIfLessThan {
		fmt.Printf("\n * * * TEST FAILED: number decoded is less than %d * * * \n", *errorIfLessThan)
		os.Exit(1)
	}
	if *errorIfGreaterThan != -1 && frames_decoded_total > *errorIfGreaterThan {
		fmt.Printf("\n * * * TEST FAILED: number decoded is greater than %d * * * \n", *errorIfGreaterThan)
		os.Exit(1)
	}
}

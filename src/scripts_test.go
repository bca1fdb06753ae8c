package ft8

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
)

// pflag (not unreasonably) assumes it only ever gets called once. But the
// tests here are built around "generate frames with one command, decode
// them with another". Running both in one Go test process means doing some
// slight bodges.
func setupPflag(args []string) {
	os.Args = args
	pflag.CommandLine = pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
}

func Test_CleanTonesRoundTrip(t *testing.T) {
	var tmpdir = t.TempDir()
	var file = filepath.Join(tmpdir, "clean.tones")

	setupPflag([]string{"gen_tones", "-N", "4", "-o", file})
	GenTonesMain()

	// Without noise every frame must decode, no more, no less.
	setupPflag([]string{"ltest", "-t", "-L", "4", "-G", "4", file})
	LtestMain()
}

func Test_NoisyLLRRoundTrip(t *testing.T) {
	var tmpdir = t.TempDir()
	var file = filepath.Join(tmpdir, "ramp.llr")

	setupPflag([]string{"gen_tones", "-n", "10", "-o", file})
	GenTonesMain()

	// The noise ramp starts at zero, so the first few frames are
	// guaranteed to decode no matter how the last ones fare.
	setupPflag([]string{"ltest", "-L", "3", file})
	LtestMain()

	setupPflag([]string{"ltest", "-z", "-L", "3", file})
	LtestMain()
}

func Test_LtestTimestampedResults(t *testing.T) {
	var payload = "01100010110100101110110010001110101011111000010110001011011110000101100100011"

	var tmpdir = t.TempDir()
	var file = filepath.Join(tmpdir, "one.tones")

	setupPflag([]string{"gen_tones", "-m", payload, "-o", file})
	GenTonesMain()

	setupPflag([]string{"ltest", "-t", "-T", "%Y-%m-%d", file})
	AssertOutputContains(t, func() { LtestMain() },
		"Frame 1: SUCCESS  iterations 0  payload "+payload)
}

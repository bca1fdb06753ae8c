package ft8

/*-------------------------------------------------------------
 *
 * Purpose:	Optional decoder tuning file.
 *
 *		The stagnation policy thresholds are empirically tuned
 *		and worth adjusting against real traffic without
 *		rebuilding, so they can be overridden from a small yaml
 *		file.  Absence of the file is the normal case and means
 *		built in defaults.
 *
 *--------------------------------------------------------------*/

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

// Fields are pointers so an explicit 0, which disables the stagnation
// check, can be told apart from an absent key.
type tuning_file_s struct {
	MaxIterations           *int `yaml:"max_iterations"`
	StagnationWindow        *int `yaml:"stagnation_window"`
	StagnationMinIterations *int `yaml:"stagnation_min_iterations"`
	StagnationThreshold     *int `yaml:"stagnation_threshold"`
}

var tuning_search_locations = []string{
	"basenji.yaml",         // Current working directory
	"../data/basenji.yaml", // Source tree
	"/usr/local/share/basenji/basenji.yaml",
	"/usr/share/basenji/basenji.yaml",
}

/*-------------------------------------------------------------
 *
 * Name:	decode_config_load
 *
 * Purpose:	Decoder configuration: built in defaults, overridden by
 *		the first tuning file found in the search locations.
 *
 * Returns:	A usable configuration in every case.  A malformed file
 *		is reported and ignored.
 *
 *--------------------------------------------------------------*/

func decode_config_load() decode_config_s {
	var config = decode_config_defaults()

	var fp *os.File
	for _, location := range tuning_search_locations {
		var err error
		fp, err = os.Open(location)

		if err == nil {
			defer fp.Close()
			break
		}
	}

	if fp == nil {
		return config
	}

	var data, readErr = io.ReadAll(fp)
	if readErr != nil {
		log.Warn("Error reading tuning file, using defaults", "file", fp.Name(), "error", readErr)
		return config
	}

	var tuning tuning_file_s
	var unmarshalErr = yaml.Unmarshal(data, &tuning)
	if unmarshalErr != nil {
		log.Warn("Error parsing tuning file, using defaults", "file", fp.Name(), "error", unmarshalErr)
		return config
	}

	if tuning.MaxIterations != nil && *tuning.MaxIterations > 0 {
		config.max_iterations = *tuning.MaxIterations
	}
	if tuning.StagnationWindow != nil && *tuning.StagnationWindow >= 0 {
		config.stag_window = *tuning.StagnationWindow
	}
	if tuning.StagnationMinIterations != nil && *tuning.StagnationMinIterations >= 0 {
		config.stag_min_iters = *tuning.StagnationMinIterations
	}
	if tuning.StagnationThreshold != nil && *tuning.StagnationThreshold >= 0 {
		config.stag_threshold = *tuning.StagnationThreshold
	}

	if ft8_get_debug() >= 1 {
		log.Debug("Decoder tuning loaded", "file", fp.Name(),
			"max_iterations", config.max_iterations,
			"stagnation_window", config.stag_window)
	}

	return config
}

/*
NAME
  config.go

DESCRIPTION
  config.go provides the build-time configuration for a receiver session:
  sample rate, symbol timing, tone frequencies, and the preamble/sync
  words, along with the logger a session is built with.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package receiver implements the 4-FSK link's framer: the receive loop
// that drives the tone detector and the preamble/sync/length/CRC state
// machine, and emits the symbol, byte-progress, and packet observation
// streams to a Listener.
package receiver

import (
	"fmt"
	"math"

	"github.com/ausocean/utils/logging"
	"github.com/pkg/errors"
)

// Config holds the parameters of a receiver session. A Config is built
// once (NewDefault, optionally overridden by a caller) and validated
// before being handed to New; it is not mutated for the lifetime of the
// session it configures.
type Config struct {
	// SR is the PCM sample rate in Hz.
	SR float64

	// SymbolMS is the duration of one symbol window, in milliseconds.
	SymbolMS float64

	// Freq holds the four tone frequencies, in Hz, in band order.
	Freq [4]float64

	// PreambleSyms is the minimum count of alternating preamble symbols
	// required before the framer attempts to match the sync word.
	PreambleSyms int

	// Sync is the three-symbol sync word that follows the preamble.
	Sync [3]int

	// Logger receives Debug/Info/Warning log lines describing receiver
	// lifecycle and dropped-frame events. It must not be nil.
	Logger logging.Logger
}

// NewDefault returns a Config with the reference parameters used
// throughout this package's documentation and tests: 48kHz sample rate,
// 20ms symbols, tones at 1000/1400/1800/2200Hz, an 8-symbol preamble, and
// sync word (1,3,0).
func NewDefault(logger logging.Logger) Config {
	return Config{
		SR:           48000,
		SymbolMS:     20,
		Freq:         [4]float64{1000, 1400, 1800, 2200},
		PreambleSyms: 8,
		Sync:         [3]int{1, 3, 0},
		Logger:       logger,
	}
}

// SymFrames returns the number of PCM samples per symbol window.
func (c Config) SymFrames() int {
	return int(math.Round(c.SR * c.SymbolMS / 1000))
}

// SymBytes returns the number of PCM bytes (16-bit samples) per symbol
// window.
func (c Config) SymBytes() int {
	return c.SymFrames() * 2
}

// Validate checks that c describes a usable session, returning a combined
// error describing every problem found (mirroring the teacher's
// multi-error reporting convention for configuration checks).
func (c Config) Validate() error {
	var errs multiError

	if c.SR <= 0 {
		errs = append(errs, errors.Errorf("SR must be positive, got %v", c.SR))
	}
	if c.SymbolMS <= 0 {
		errs = append(errs, errors.Errorf("SymbolMS must be positive, got %v", c.SymbolMS))
	}
	if c.SymFrames() <= 0 {
		errs = append(errs, errors.Errorf("SymFrames must be positive, got %d", c.SymFrames()))
	}
	for i, f := range c.Freq {
		if f <= 0 {
			errs = append(errs, errors.Errorf("Freq[%d] must be positive, got %v", i, f))
		}
	}
	if c.PreambleSyms <= 0 {
		errs = append(errs, errors.Errorf("PreambleSyms must be positive, got %d", c.PreambleSyms))
	}
	for i, s := range c.Sync {
		if s < 0 || s > 3 {
			errs = append(errs, errors.Errorf("Sync[%d] must be in 0..3, got %d", i, s))
		}
	}
	if c.Logger == nil {
		errs = append(errs, errors.New("Logger must not be nil"))
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// multiError collects multiple validation errors into one, matching the
// teacher's device.MultiError convention.
type multiError []error

func (me multiError) Error() string {
	return fmt.Sprintf("%v", []error(me))
}

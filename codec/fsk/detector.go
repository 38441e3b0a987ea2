/*
NAME
  detector.go

DESCRIPTION
  detector.go implements the per-symbol-window tone detector: a narrowband
  (Goertzel) power estimate at each of four target frequencies, returning
  the band with maximum power.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package fsk implements the sample-to-symbol detector and the
// symbol/byte packing used by the 4-FSK link's framer.
package fsk

import (
	"encoding/binary"
	"math"

	"github.com/pkg/errors"
)

// NumBands is the number of tone frequencies the detector discriminates
// between; each symbol window carries 2 bits, one of {0,1,2,3}.
const NumBands = 4

// Detector estimates, for a fixed-size window of PCM samples, which of
// NumBands target frequencies carries the most power. A Detector is
// reusable across windows; it holds no per-window state between calls to
// Detect other than the last computed Powers, which is purely a
// diagnostics convenience (see receiver.Receiver).
type Detector struct {
	symFrames int
	coeffs    [NumBands]float64
	powers    [NumBands]float64
}

// NewDetector builds a Detector for windows of symFrames samples at
// sampleRate Hz, discriminating between the four freqs. The Goertzel bin
// index and recurrence coefficient for each band are precomputed once so
// that Detect does only the per-sample recurrence and a final combine.
func NewDetector(sampleRate float64, symFrames int, freqs [NumBands]float64) *Detector {
	d := &Detector{symFrames: symFrames}
	for i, f := range freqs {
		bin := math.Round(float64(symFrames) * f / sampleRate)
		d.coeffs[i] = 2 * math.Cos(2*math.Pi*bin/float64(symFrames))
	}
	return d
}

// Detect consumes a window of exactly symFrames samples, packed as
// little-endian signed 16-bit PCM (so len(window) must be 2*symFrames
// bytes), and returns the index (0..NumBands-1) of the band with maximum
// estimated power. Ties resolve to the lowest index. Powers() returns the
// four band powers behind the most recent call.
func (d *Detector) Detect(window []byte) (int, error) {
	if len(window) != 2*d.symFrames {
		return -1, errors.Errorf("short window: got %d bytes, want %d", len(window), 2*d.symFrames)
	}

	for band := 0; band < NumBands; band++ {
		d.powers[band] = goertzelPower(window, d.coeffs[band])
	}

	best := 0
	for band := 1; band < NumBands; band++ {
		if d.powers[band] > d.powers[best] {
			best = band
		}
	}
	return best, nil
}

// Powers returns the four band powers computed by the most recent call to
// Detect, in band order. It is a supplemental diagnostics hook; it does not
// change the decision made by Detect.
func (d *Detector) Powers() [NumBands]float64 {
	return d.powers
}

// goertzelPower runs the single-bin Goertzel recurrence over window's
// samples (normalized to [-1,1]) using the given coefficient, and returns
// the resulting power estimate.
func goertzelPower(window []byte, coeff float64) float64 {
	var sPrev, sPrev2 float64
	for i := 0; i+1 < len(window); i += 2 {
		sample := float64(int16(binary.LittleEndian.Uint16(window[i:i+2]))) / 32768
		s := sample + coeff*sPrev - sPrev2
		sPrev2 = sPrev
		sPrev = s
	}
	return sPrev2*sPrev2 + sPrev*sPrev - coeff*sPrev*sPrev2
}

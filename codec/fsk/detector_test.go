package fsk

import (
	"encoding/binary"
	"math"
	"testing"
)

const (
	testSR        = 48000.0
	testSymbolMS  = 20.0
	testSymFrames = 960 // round(testSR * testSymbolMS / 1000)
)

var testFreqs = [NumBands]float64{1000, 1400, 1800, 2200}

// renderTone renders symFrames samples of a sine wave at freq Hz, sampled
// at sampleRate Hz, as little-endian signed 16-bit PCM at roughly half
// full-scale.
func renderTone(freq, sampleRate float64, symFrames int) []byte {
	out := make([]byte, 2*symFrames)
	const amplitude = 0.5 * 32767
	for i := 0; i < symFrames; i++ {
		v := amplitude * math.Sin(2*math.Pi*freq*float64(i)/sampleRate)
		binary.LittleEndian.PutUint16(out[2*i:2*i+2], uint16(int16(v)))
	}
	return out
}

func TestDetectEachBand(t *testing.T) {
	d := NewDetector(testSR, testSymFrames, testFreqs)
	for want, freq := range testFreqs {
		window := renderTone(freq, testSR, testSymFrames)
		got, err := d.Detect(window)
		if err != nil {
			t.Fatalf("Detect failed for band %d: %v", want, err)
		}
		if got != want {
			t.Errorf("Detect(%.0f Hz) = %d, want %d", freq, got, want)
		}
	}
}

func TestDetectTieBreaksToLowestIndex(t *testing.T) {
	d := NewDetector(testSR, testSymFrames, testFreqs)
	silence := make([]byte, 2*testSymFrames)
	got, err := d.Detect(silence)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if got != 0 {
		t.Errorf("Detect(silence) = %d, want 0 (lowest index on tie)", got)
	}
}

func TestDetectRejectsShortWindow(t *testing.T) {
	d := NewDetector(testSR, testSymFrames, testFreqs)
	if _, err := d.Detect(make([]byte, 4)); err == nil {
		t.Error("Detect succeeded on a short window, want error")
	}
}

func TestDetectPowersReflectsLastCall(t *testing.T) {
	d := NewDetector(testSR, testSymFrames, testFreqs)
	window := renderTone(testFreqs[2], testSR, testSymFrames)
	if _, err := d.Detect(window); err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	powers := d.Powers()
	for i, p := range powers {
		if i == 2 {
			continue
		}
		if p >= powers[2] {
			t.Errorf("Powers()[%d] = %v >= Powers()[2] = %v, want dominant band strictly greater", i, p, powers[2])
		}
	}
}

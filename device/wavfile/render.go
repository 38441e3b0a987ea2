/*
NAME
  render.go

DESCRIPTION
  render.go synthesizes 4-FSK PCM streams: individual tone bursts, the
  preamble/sync preface, and complete framed packets, for use as test
  fixtures and by the fsk-receiver demo tool's synthetic-signal mode.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package wavfile provides a file-backed Transport for the 4-FSK receiver
// and a synthetic-signal renderer for producing test and demo PCM/WAV
// fixtures.
package wavfile

import (
	"encoding/binary"
	"math"

	"github.com/mjibson/go-dsp/window"

	codecfsk "github.com/ausocean/fsklink/codec/fsk"
	wirefsk "github.com/ausocean/fsklink/protocol/fsk"
	"github.com/ausocean/fsklink/receiver"
)

// toneAmplitude is the peak amplitude used for rendered tones, chosen well
// below full scale to leave headroom, matching common modem practice.
const toneAmplitude = 0.5 * 32767

// RenderSymbol renders one symbol window of little-endian signed 16-bit
// PCM at cfg.Freq[sym], Hann-windowed so consecutive symbol bursts don't
// click at their boundaries.
func RenderSymbol(cfg receiver.Config, sym int) []byte {
	n := cfg.SymFrames()
	win := window.Hann(n)
	freq := cfg.Freq[sym]

	out := make([]byte, 2*n)
	for i := 0; i < n; i++ {
		v := toneAmplitude * win[i] * math.Sin(2*math.Pi*freq*float64(i)/cfg.SR)
		binary.LittleEndian.PutUint16(out[2*i:2*i+2], uint16(int16(v)))
	}
	return out
}

// RenderSymbols renders a sequence of symbols back to back.
func RenderSymbols(cfg receiver.Config, syms []int) []byte {
	out := make([]byte, 0, len(syms)*cfg.SymBytes())
	for _, s := range syms {
		out = append(out, RenderSymbol(cfg, s)...)
	}
	return out
}

// Preamble returns the alternating 0,2,0,2,... symbol sequence of length
// cfg.PreambleSyms, starting at 0.
func Preamble(cfg receiver.Config) []int {
	syms := make([]int, cfg.PreambleSyms)
	for i := range syms {
		if i%2 == 0 {
			syms[i] = 0
		} else {
			syms[i] = 2
		}
	}
	return syms
}

// RenderPacket renders preamble + sync + an outer packet carrying payload,
// as the PCM stream a conformant transmitter would produce.
func RenderPacket(cfg receiver.Config, payload []byte) []byte {
	syms := append(Preamble(cfg), cfg.Sync[0], cfg.Sync[1], cfg.Sync[2])
	syms = append(syms, codecfsk.BytesToSymbols(wirefsk.MakePacket(payload))...)
	return RenderSymbols(cfg, syms)
}

// RenderStream renders several back-to-back framed packets, each with its
// own preamble and sync word.
func RenderStream(cfg receiver.Config, payloads ...[]byte) []byte {
	var out []byte
	for _, p := range payloads {
		out = append(out, RenderPacket(cfg, p)...)
	}
	return out
}

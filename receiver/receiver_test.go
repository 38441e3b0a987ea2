/*
NAME
  receiver_test.go

DESCRIPTION
  receiver_test.go exercises the framer end to end, driving it from PCM
  streams synthesized by device/wavfile over an in-memory device/loopback
  transport. It lives in an external test package so it can import both
  without an import cycle.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package receiver_test

import (
	"testing"

	"github.com/ausocean/fsklink/device/loopback"
	"github.com/ausocean/fsklink/device/wavfile"
	wirefsk "github.com/ausocean/fsklink/protocol/fsk"
	"github.com/ausocean/fsklink/receiver"
)

// dumbLogger discards everything, matching the teacher's config_test.go
// convention for a no-op logging.Logger test double.
type dumbLogger struct{}

func (dumbLogger) Log(l int8, m string, a ...interface{})  {}
func (dumbLogger) SetLevel(l int8)                         {}
func (dumbLogger) Debug(msg string, args ...interface{})   {}
func (dumbLogger) Info(msg string, args ...interface{})    {}
func (dumbLogger) Warning(msg string, args ...interface{}) {}
func (dumbLogger) Error(msg string, args ...interface{})   {}
func (dumbLogger) Fatal(msg string, args ...interface{})   {}

func testConfig() receiver.Config {
	return receiver.NewDefault(dumbLogger{})
}

// run drives a Receiver over pcm to completion (the loopback's writer is
// closed immediately after writing, so Run terminates once pcm is drained)
// and returns everything the listener observed.
func run(t *testing.T, cfg receiver.Config, pcm []byte) (symbols []int, byteProgress [][]byte, packets [][]byte) {
	t.Helper()

	tp := loopback.New()
	lis := receiver.Listener{
		OnSymbol:       func(s int) { symbols = append(symbols, s) },
		OnByteProgress: func(b []byte) { byteProgress = append(byteProgress, append([]byte(nil), b...)) },
		OnPacket:       func(p []byte) { packets = append(packets, append([]byte(nil), p...)) },
	}
	rcv := receiver.New(cfg, tp, lis)

	done := make(chan error, 1)
	go func() { done <- rcv.Run() }()

	if _, err := tp.Write(pcm); err != nil {
		t.Fatalf("did not expect error writing to loopback: %v", err)
	}
	if err := tp.CloseWrite(); err != nil {
		t.Fatalf("did not expect error closing loopback: %v", err)
	}

	if err := <-done; err != nil {
		t.Fatalf("did not expect error from Run: %v", err)
	}
	return symbols, byteProgress, packets
}

func TestReceiverEmptyPayload(t *testing.T) {
	cfg := testConfig()
	pcm := wavfile.RenderPacket(cfg, nil)

	_, _, packets := run(t, cfg, pcm)

	if len(packets) != 1 {
		t.Fatalf("got %d packets, want 1", len(packets))
	}
	if len(packets[0]) != 0 {
		t.Errorf("got payload %v, want empty", packets[0])
	}
}

func TestReceiverUTF8MessagePayload(t *testing.T) {
	cfg := testConfig()

	const src, dst, typ = 1, wirefsk.Broadcast, wirefsk.Announce
	payload := wirefsk.EncodeMessage(src, dst, typ, []byte("hi"))
	pcm := wavfile.RenderPacket(cfg, payload)

	_, _, packets := run(t, cfg, pcm)

	if len(packets) != 1 {
		t.Fatalf("got %d packets, want 1", len(packets))
	}
	gotSrc, gotDst, gotTyp, gotData, err := wirefsk.DecodeMessage(packets[0])
	if err != nil {
		t.Fatalf("did not expect error decoding message: %v", err)
	}
	if gotSrc != src || gotDst != dst || gotTyp != typ || string(gotData) != "hi" {
		t.Errorf("got (%d,%d,%d,%q), want (%d,%d,%d,%q)", gotSrc, gotDst, gotTyp, gotData, src, dst, typ, "hi")
	}
}

func TestReceiverRejectsCorruptedCRC(t *testing.T) {
	cfg := testConfig()
	pcm := wavfile.RenderPacket(cfg, []byte("hello"))

	// Flip a late symbol's tone so the CRC fails to verify but the stream
	// shape (preamble, sync, length byte) still looks legitimate: replace
	// the last symbol window with a different band's tone.
	pkt := wirefsk.MakePacket([]byte("hello"))
	lastSym := int(pkt[len(pkt)-1] & 0x3)
	last := len(pcm) - cfg.SymBytes()
	copy(pcm[last:], wavfile.RenderSymbol(cfg, (lastSym+1)%4))

	symbols, byteProgress, packets := run(t, cfg, pcm)

	if len(packets) != 0 {
		t.Fatalf("got %d packets, want 0 for a corrupted CRC", len(packets))
	}
	if len(symbols) == 0 {
		t.Errorf("got no symbols, want OnSymbol to still fire for a dropped packet")
	}
	if len(byteProgress) == 0 {
		t.Errorf("got no byte progress, want OnByteProgress to still fire for a dropped packet")
	}
}

func TestReceiverPreambleFalseStart(t *testing.T) {
	cfg := testConfig()

	// A false start: 0,2,0,2,0,1,0,2,... breaks the alternating run at the
	// 6th symbol (a 1 where a 2 was expected), then a fresh preamble
	// follows before the real packet.
	falseStart := []int{0, 2, 0, 2, 0, 1, 0, 2}
	pcm := append(wavfile.RenderSymbols(cfg, falseStart), wavfile.RenderPacket(cfg, []byte("x"))...)

	_, _, packets := run(t, cfg, pcm)

	if len(packets) != 1 {
		t.Fatalf("got %d packets, want 1 despite the false start", len(packets))
	}
	if string(packets[0]) != "x" {
		t.Errorf("got payload %q, want %q", packets[0], "x")
	}
}

func TestReceiverBackToBackPackets(t *testing.T) {
	cfg := testConfig()
	pcm := wavfile.RenderStream(cfg, []byte("one"), []byte("two"))

	_, _, packets := run(t, cfg, pcm)

	if len(packets) != 2 {
		t.Fatalf("got %d packets, want 2", len(packets))
	}
	if string(packets[0]) != "one" || string(packets[1]) != "two" {
		t.Errorf("got (%q,%q), want (%q,%q)", packets[0], packets[1], "one", "two")
	}
}

func TestReceiverTruncatedMidBody(t *testing.T) {
	cfg := testConfig()
	full := wavfile.RenderPacket(cfg, []byte("truncated"))
	pcm := full[:len(full)-cfg.SymBytes()*3]

	_, _, packets := run(t, cfg, pcm)

	if len(packets) != 0 {
		t.Fatalf("got %d packets, want 0 for a stream truncated mid-body", len(packets))
	}
}

func TestConfigValidateRejectsNilLogger(t *testing.T) {
	cfg := receiver.NewDefault(nil)
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected an error for a nil Logger, got nil")
	}
}

func TestConfigValidateAcceptsDefault(t *testing.T) {
	cfg := testConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("did not expect error validating the default config: %v", err)
	}
}

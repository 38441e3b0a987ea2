package fsk

import (
	"bytes"
	"testing"

	"pgregory.net/rapid"
)

func TestMessageRoundTripLiteral(t *testing.T) {
	msg := EncodeMessage(1, Broadcast, Announce, []byte("hi"))
	src, dst, typ, data, err := DecodeMessage(msg)
	if err != nil {
		t.Fatalf("DecodeMessage failed: %v", err)
	}
	if src != 1 || dst != Broadcast || typ != Announce || !bytes.Equal(data, []byte("hi")) {
		t.Errorf("decoded (%d,%d,%d,%q), want (1,%d,%d,\"hi\")", src, dst, typ, data, Broadcast, Announce)
	}
}

func TestMessageTruncatesOversizeData(t *testing.T) {
	data := bytes.Repeat([]byte{0x7F}, 300)
	msg := EncodeMessage(0, 0, Direct, data)
	_, _, _, got, err := DecodeMessage(msg)
	if err != nil {
		t.Fatalf("DecodeMessage failed: %v", err)
	}
	if !bytes.Equal(got, data[:MaxPayloadLen]) {
		t.Error("data not truncated to MaxPayloadLen")
	}
}

func TestDecodeMessageRejectsShort(t *testing.T) {
	for _, m := range [][]byte{nil, {1}, {1, 2}, {1, 2, 3}} {
		if _, _, _, _, err := DecodeMessage(m); err == nil {
			t.Errorf("DecodeMessage(% X) succeeded, want error", m)
		}
	}
}

func TestDecodeMessageRejectsLengthMismatch(t *testing.T) {
	msg := EncodeMessage(1, 2, Direct, []byte("abc"))
	msg[3] = 10 // claim more data than present.
	if _, _, _, _, err := DecodeMessage(msg); err == nil {
		t.Error("DecodeMessage succeeded with bad LEN, want error")
	}
}

// TestMessageRoundTrip checks: DecodeMessage(EncodeMessage(src, dst, typ,
// data)) == (src, dst, typ, data) for len(data) <= 255.
func TestMessageRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		src := rapid.Byte().Draw(t, "src")
		dst := rapid.Byte().Draw(t, "dst")
		typ := rapid.Byte().Draw(t, "typ")
		data := rapid.SliceOfN(rapid.Byte(), 0, MaxPayloadLen).Draw(t, "data")

		gs, gd, gt, gdata, err := DecodeMessage(EncodeMessage(src, dst, typ, data))
		if err != nil {
			t.Fatalf("DecodeMessage failed: %v", err)
		}
		if gs != src || gd != dst || gt != typ || !bytes.Equal(gdata, data) {
			t.Fatalf("round trip mismatch: got (%d,%d,%d,% X), want (%d,%d,%d,% X)", gs, gd, gt, gdata, src, dst, typ, data)
		}
	})
}

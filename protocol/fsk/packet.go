/*
NAME
  packet.go

DESCRIPTION
  packet.go implements the outer packet container: a length-prefixed
  payload followed by a big-endian CRC-16/CCITT.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package fsk

import "github.com/pkg/errors"

// MaxPayloadLen is the largest payload an outer packet can carry; LEN is a
// single unsigned byte.
const MaxPayloadLen = 255

// MakePacket builds an outer packet [LEN][PAYLOAD][CRC16] from payload. If
// payload is longer than MaxPayloadLen it is silently truncated, preserving
// sender/receiver symmetry (a receiver built from the same rules will never
// see a LEN it cannot represent).
func MakePacket(payload []byte) []byte {
	if len(payload) > MaxPayloadLen {
		payload = payload[:MaxPayloadLen]
	}

	pkt := make([]byte, 0, 1+len(payload)+2)
	pkt = append(pkt, byte(len(payload)))
	pkt = append(pkt, payload...)

	crc := CRC16(pkt)
	pkt = append(pkt, byte(crc>>8), byte(crc))
	return pkt
}

// TryParse validates and extracts the payload from an outer packet. It
// fails if pkt is too short to contain a LEN and CRC, if the declared LEN
// doesn't match the actual packet length, or if the CRC doesn't match.
func TryParse(pkt []byte) ([]byte, error) {
	if len(pkt) < 3 {
		return nil, errors.Errorf("packet too short: %d bytes", len(pkt))
	}

	length := int(pkt[0])
	if len(pkt) != 1+length+2 {
		return nil, errors.Errorf("length mismatch: LEN=%d, packet is %d bytes", length, len(pkt))
	}

	want := uint16(pkt[len(pkt)-2])<<8 | uint16(pkt[len(pkt)-1])
	got := CRC16(pkt[:1+length])
	if got != want {
		return nil, errors.Errorf("crc mismatch: got 0x%04X, want 0x%04X", got, want)
	}

	return pkt[1 : 1+length], nil
}

/*
NAME
  message.go

DESCRIPTION
  message.go implements the inner message payload carried inside an outer
  packet: a fixed SRC/DST/TYPE/LEN header followed by DATA.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package fsk

import "github.com/pkg/errors"

// Message types.
const (
	Direct   = 1
	Announce = 2
)

// Broadcast is the DST value meaning "every node".
const Broadcast = 0xFF

// messageHeaderLen is the size of the fixed SRC/DST/TYPE/LEN header.
const messageHeaderLen = 4

// EncodeMessage builds an inner message SRC||DST||TYPE||LEN||DATA. data is
// silently truncated to 255 bytes to enforce the wire-format cap, matching
// the truncation behavior of MakePacket.
func EncodeMessage(src, dst, typ byte, data []byte) []byte {
	if len(data) > MaxPayloadLen {
		data = data[:MaxPayloadLen]
	}
	msg := make([]byte, 0, messageHeaderLen+len(data))
	msg = append(msg, src, dst, typ, byte(len(data)))
	msg = append(msg, data...)
	return msg
}

// DecodeMessage parses an inner message, returning its header fields and
// data. It fails if payload is shorter than the fixed header or its length
// doesn't match the declared LEN.
func DecodeMessage(payload []byte) (src, dst, typ byte, data []byte, err error) {
	if len(payload) < messageHeaderLen {
		return 0, 0, 0, nil, errors.Errorf("message too short: %d bytes", len(payload))
	}

	src, dst, typ, length := payload[0], payload[1], payload[2], int(payload[3])
	if len(payload) != messageHeaderLen+length {
		return 0, 0, 0, nil, errors.Errorf("length mismatch: LEN=%d, message is %d bytes", length, len(payload))
	}

	return src, dst, typ, payload[messageHeaderLen:], nil
}

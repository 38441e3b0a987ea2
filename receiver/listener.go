/*
NAME
  listener.go

DESCRIPTION
  listener.go defines the Listener capability record: the three optional
  callbacks a receiver session emits observations to.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package receiver

// Listener is the set of callbacks a Receiver reports observations to, all
// invoked from the receiver's own goroutine. Any field may be left nil; a
// Receiver must elide the corresponding callback activity rather than
// panic or error. Within a single symbol window the order is always
// OnSymbol, then (if the stream length just crossed a multiple of 4)
// OnByteProgress, then (if a packet just completed) OnPacket.
type Listener struct {
	// OnSymbol is called once per detected symbol, in detection order,
	// including preamble, sync, and body symbols.
	OnSymbol func(sym int)

	// OnByteProgress is called with the raw byte view of the entire symbol
	// stream so far, exactly when the stream length crosses a positive
	// multiple of 4.
	OnByteProgress func(b []byte)

	// OnPacket is called with a validated packet payload once the framer
	// completes and CRC-checks an outer packet.
	OnPacket func(payload []byte)
}

func (l Listener) symbol(sym int) {
	if l.OnSymbol != nil {
		l.OnSymbol(sym)
	}
}

func (l Listener) byteProgress(b []byte) {
	if l.OnByteProgress != nil {
		l.OnByteProgress(b)
	}
}

func (l Listener) packet(payload []byte) {
	if l.OnPacket != nil {
		l.OnPacket(payload)
	}
}

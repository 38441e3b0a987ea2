/*
NAME
  loopback.go

DESCRIPTION
  loopback.go implements an in-memory receiver.Transport for tests and
  demos: a writer end feeds PCM bytes (typically produced by
  device/wavfile.RenderPacket) to a reader end that blocks until data is
  available, exactly like a live audio capture device would.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package loopback provides an in-memory Transport for driving a Receiver
// from synthetic or recorded PCM without a real audio device, mirroring
// the teacher's device.ManualInput.
package loopback

import "io"

// Pipe is a receiver.Transport backed by an io.Pipe: Write feeds bytes in,
// Read drains them, blocking when empty. Close the writer (via CloseWrite)
// once the session's input is exhausted so the reader sees a clean EOF.
type Pipe struct {
	r *io.PipeReader
	w *io.PipeWriter
}

// New returns a ready Pipe.
func New() *Pipe {
	r, w := io.Pipe()
	return &Pipe{r: r, w: w}
}

// Write feeds PCM bytes into the pipe, blocking until a reader has
// consumed them.
func (p *Pipe) Write(b []byte) (int, error) {
	return p.w.Write(b)
}

// Read implements receiver.Transport, blocking until data is written or
// the write end is closed.
func (p *Pipe) Read(b []byte) (int, error) {
	return p.r.Read(b)
}

// CloseWrite closes the write end, causing any blocked or future Read to
// return io.EOF once buffered data is drained.
func (p *Pipe) CloseWrite() error {
	return p.w.Close()
}

var _ io.Reader = (*Pipe)(nil)

/*
NAME
  transport.go

DESCRIPTION
  transport.go defines the blocking byte-channel contract a Receiver reads
  PCM from. The transport itself (audio device, loopback pipe, file) is an
  external collaborator; this package only depends on the read contract.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package receiver

// Transport is the byte-oriented channel a Receiver reads PCM samples
// from. It is borrowed for the lifetime of a session; a Receiver never
// starts, stops, or configures it (compare with the teacher's fuller
// device.AVDevice, whose lifecycle methods belong to the device's owner,
// not its readers).
type Transport interface {
	// Read behaves like io.Reader.Read. A short count (n < len(p)), with or
	// without an accompanying error, signals end of session: the Receiver
	// terminates cleanly with no error. Any other non-nil error is a
	// genuine transport failure and is returned from Receiver.Run.
	Read(p []byte) (int, error)
}

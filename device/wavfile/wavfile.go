/*
NAME
  wavfile.go

DESCRIPTION
  wavfile.go implements a receiver.Transport backed by a mono 16-bit PCM
  .wav file, and a writer for producing such files from a rendered PCM
  stream (see render.go).

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package wavfile

import (
	"encoding/binary"
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/pkg/errors"
)

// File is a receiver.Transport that reads little-endian signed 16-bit PCM
// samples out of a mono .wav file's data chunk. It satisfies the Transport
// contract structurally; it does not import the receiver package.
type File struct {
	f       *os.File
	decoder *wav.Decoder
	buf     *audio.IntBuffer
}

// Open opens the .wav file at path for reading as a Transport.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "could not open wav file")
	}

	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		f.Close()
		return nil, errors.New("not a valid wav file")
	}

	return &File{
		f:       f,
		decoder: d,
		buf:     &audio.IntBuffer{Format: &audio.Format{NumChannels: 1, SampleRate: int(d.SampleRate)}},
	}, nil
}

// Close closes the underlying file.
func (w *File) Close() error {
	return w.f.Close()
}

// Read fills p with little-endian signed 16-bit PCM samples decoded from
// the wav file's data chunk. A short count (including 0) signals end of
// file, per the Transport contract; it comes with a nil error.
func (w *File) Read(p []byte) (int, error) {
	wantSamples := len(p) / 2
	w.buf.Data = make([]int, wantSamples)

	n, err := w.decoder.PCMBuffer(w.buf)
	if err != nil && err != io.EOF {
		return 0, errors.Wrap(err, "could not decode wav samples")
	}

	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint16(p[2*i:2*i+2], uint16(int16(w.buf.Data[i])))
	}
	return n * 2, nil
}

// WriteFile encodes pcm (little-endian signed 16-bit mono samples) as a
// .wav file at path, at the given sample rate. It's used to turn a
// rendered synthetic signal (render.go) into a file playable outside this
// module.
func WriteFile(path string, sampleRate int, pcm []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "could not create wav file")
	}
	defer f.Close()

	enc := wav.NewEncoder(f, sampleRate, 16, 1, 1)

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           make([]int, len(pcm)/2),
		SourceBitDepth: 16,
	}
	for i := range buf.Data {
		buf.Data[i] = int(int16(binary.LittleEndian.Uint16(pcm[2*i : 2*i+2])))
	}

	if err := enc.Write(buf); err != nil {
		return errors.Wrap(err, "could not write wav samples")
	}
	return errors.Wrap(enc.Close(), "could not finalize wav file")
}

/*
NAME
  main.go

DESCRIPTION
  fsk-receiver is a bare bones program that decodes a 4-FSK link session
  from a .wav file (or, with -synth, a synthetic signal generated on the
  fly) and logs every observed symbol, byte, and decoded packet.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package main is a bare bones program for decoding a 4-FSK link session.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/ausocean/utils/logging"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ausocean/fsklink/device/loopback"
	"github.com/ausocean/fsklink/device/wavfile"
	"github.com/ausocean/fsklink/receiver"
)

// Logging related constants, matching the teacher's looper convention.
const (
	logPath      = "/var/log/fsk-receiver/fsk-receiver.log"
	logMaxSize   = 500 // MB
	logMaxBackup = 10
	logMaxAge    = 28 // days
	logVerbosity = logging.Debug
	logSuppress  = false
)

func main() {
	wavPath := flag.String("wav", "", "Path to a .wav file carrying the 4-FSK signal.")
	synthPayload := flag.String("synth", "", "If set, decode a synthetic signal carrying this payload instead of reading -wav.")
	flag.Parse()

	fileLog := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    logMaxSize,
		MaxBackups: logMaxBackup,
		MaxAge:     logMaxAge,
	}
	l := logging.New(logVerbosity, io.MultiWriter(fileLog, os.Stderr), logSuppress)

	cfg := receiver.NewDefault(l)
	if err := cfg.Validate(); err != nil {
		l.Fatal("invalid configuration", "error", err)
	}

	transport, err := openTransport(cfg, *wavPath, *synthPayload)
	if err != nil {
		l.Fatal("could not open transport", "error", err)
	}
	if c, ok := transport.(io.Closer); ok {
		defer c.Close()
	}

	lis := receiver.Listener{
		OnSymbol: func(sym int) {
			l.Debug("symbol decoded", "symbol", sym)
		},
		OnByteProgress: func(b []byte) {
			l.Debug("byte progress", "bytes", len(b))
		},
		OnPacket: func(payload []byte) {
			fmt.Printf("packet: %q\n", payload)
			l.Info("packet decoded", "bytes", len(payload))
		},
	}

	rcv := receiver.New(cfg, transport, lis)
	if err := rcv.Run(); err != nil {
		l.Fatal("receiver failed", "error", err)
	}
}

// openTransport opens either a .wav file transport or a loopback transport
// pre-loaded with a synthesized signal, depending on which flag was set.
func openTransport(cfg receiver.Config, wavPath, synth string) (receiver.Transport, error) {
	if synth != "" {
		pipe := loopback.New()
		pcm := wavfile.RenderPacket(cfg, []byte(synth))
		go func() {
			pipe.Write(pcm)
			pipe.CloseWrite()
		}()
		return pipe, nil
	}
	return wavfile.Open(wavPath)
}

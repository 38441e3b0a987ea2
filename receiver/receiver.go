/*
NAME
  receiver.go

DESCRIPTION
  receiver.go implements the receive loop: it drives the tone detector one
  symbol window at a time and threads the resulting symbols through the
  preamble/sync/length/CRC framing state machine, emitting the symbol,
  byte-progress, and packet observation streams along the way.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package receiver

import (
	"io"
	"sync/atomic"

	"github.com/ausocean/utils/bitrate"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"

	codecfsk "github.com/ausocean/fsklink/codec/fsk"
	wirefsk "github.com/ausocean/fsklink/protocol/fsk"
)

// linkQualityLogPeriod is how often (in detected symbols) the link quality
// diagnostic is logged, to avoid a Debug line per symbol window.
const linkQualityLogPeriod = 50

// frameState is the tagged variant of the framer's state, per spec.md §9:
// either hunting for a preamble or collecting a packet body after sync.
type frameState interface {
	isFrameState()
}

// huntState is the framer's state while searching for the preamble; the
// zero value (preambleRun 0) is the reset state entered on any mismatch or
// on completion of a packet (good or bad).
type huntState struct {
	preambleRun int
}

func (huntState) isFrameState() {}

// collectingState is the framer's state once the sync word has matched;
// bodySyms accumulates the symbols of the packet body in progress.
type collectingState struct {
	bodySyms []int
}

func (collectingState) isFrameState() {}

// Receiver drives one session of the 4-FSK link framer over one
// Transport. A Receiver is not safe for concurrent use; run exactly one
// goroutine through Run per Receiver, matching the "one receiver owns one
// transport" scheduling model.
type Receiver struct {
	cfg       Config
	transport Transport
	listener  Listener
	detector  *codecfsk.Detector

	state frameState

	// bytesSoFar and tail together represent the running byte view
	// without retaining the full symbol stream (spec.md §9's rolling
	// buffer alternative): bytesSoFar holds every completed byte, and tail
	// holds the 0-3 trailing symbols not yet forming one.
	bytesSoFar []byte
	tail       []int

	// bitrate tracks decoded packet throughput for diagnostics only; it
	// never influences the framer's decisions.
	bitrate bitrate.Calculator

	// symCount counts detected symbols, used only to throttle the link
	// quality diagnostic log line.
	symCount int

	stopFlag int32
}

// New builds a Receiver for cfg, reading from transport and reporting to
// listener. cfg must already be valid (see Config.Validate); New does not
// validate it again.
func New(cfg Config, transport Transport, listener Listener) *Receiver {
	return &Receiver{
		cfg:       cfg,
		transport: transport,
		listener:  listener,
		detector:  codecfsk.NewDetector(cfg.SR, cfg.SymFrames(), cfg.Freq),
		state:     huntState{},
	}
}

// Stop requests that Run terminate at the next iteration boundary. It may
// be called from any goroutine; termination latency is bounded by at most
// one symbol window plus the transport's own blocking behavior.
func (r *Receiver) Stop() {
	atomic.StoreInt32(&r.stopFlag, 1)
}

func (r *Receiver) stopRequested() bool {
	return atomic.LoadInt32(&r.stopFlag) != 0
}

// Bitrate returns the most recently measured decoded-payload throughput,
// in bytes/sec, purely as a diagnostic; it has no bearing on decoding.
func (r *Receiver) Bitrate() float64 {
	return r.bitrate.Bitrate()
}

// Run drives the receive loop until the transport ends, a short read
// occurs, or Stop is called. It returns nil on any clean termination and a
// non-nil error only for a genuine transport failure.
func (r *Receiver) Run() error {
	for {
		if r.stopRequested() {
			r.cfg.Logger.Info("receiver stopping: stop requested")
			return nil
		}

		sym, ok, err := r.nextSymbol()
		if err != nil {
			return err
		}
		if !ok {
			r.cfg.Logger.Info("receiver stopping: transport ended")
			return nil
		}

		r.observe(sym)

		term, err := r.step(sym)
		if err != nil {
			return err
		}
		if term {
			r.cfg.Logger.Info("receiver stopping: transport ended mid-sync")
			return nil
		}
	}
}

// nextSymbol reads exactly one symbol window from the transport and
// detects its symbol. ok is false on a clean end of session (short read or
// EOF); err is non-nil only for a genuine transport or detector failure.
func (r *Receiver) nextSymbol() (sym int, ok bool, err error) {
	window := make([]byte, r.cfg.SymBytes())
	n, rerr := r.transport.Read(window)
	switch {
	case n < len(window):
		return -1, false, nil
	case rerr != nil && !errors.Is(rerr, io.EOF):
		return -1, false, errors.Wrap(rerr, "transport read failed")
	}

	sym, derr := r.detector.Detect(window)
	if derr != nil {
		return -1, false, errors.Wrap(derr, "tone detection failed")
	}

	r.symCount++
	if r.symCount%linkQualityLogPeriod == 0 {
		r.cfg.Logger.Debug("link quality", "meanPower", linkQuality(r.detector.Powers()))
	}

	return sym, true, nil
}

// observe reports a single detected symbol and advances the running byte
// view, publishing OnByteProgress at most once, exactly when the stream
// length crosses a multiple of 4.
func (r *Receiver) observe(sym int) {
	r.listener.symbol(sym)
	if b, crossed := r.appendSymbol(sym); crossed {
		r.listener.byteProgress(b)
	}
}

// observeBatch reports a burst of symbols (used for the s2/s3 remainder of
// a sync-word attempt, after s1 has already gone through observe), publishing
// at most one OnByteProgress for the whole burst per spec.md §9, regardless
// of how many of the symbols individually complete a byte (at most one can,
// since a burst this short cannot cross two multiples of 4).
func (r *Receiver) observeBatch(syms []int) {
	var last []byte
	crossed := false
	for _, sym := range syms {
		r.listener.symbol(sym)
		if b, ok := r.appendSymbol(sym); ok {
			last, crossed = b, true
		}
	}
	if crossed {
		r.listener.byteProgress(last)
	}
}

// appendSymbol appends sym to the rolling tail, completing and recording a
// byte in bytesSoFar if the tail fills. It returns the (copied) byte view
// so far and whether this call completed a byte.
func (r *Receiver) appendSymbol(sym int) ([]byte, bool) {
	r.tail = append(r.tail, sym)
	if len(r.tail) < codecfsk.SymbolsPerByte {
		return nil, false
	}
	r.bytesSoFar = append(r.bytesSoFar, codecfsk.SymbolsToBytes(r.tail)[0])
	r.tail = r.tail[:0]
	view := make([]byte, len(r.bytesSoFar))
	copy(view, r.bytesSoFar)
	return view, true
}

// step advances the framing state machine given the symbol just observed,
// returning terminate=true if the transport ended while consuming the
// sync word burst.
func (r *Receiver) step(sym int) (terminate bool, err error) {
	switch st := r.state.(type) {
	case huntState:
		return r.stepHunt(st, sym)
	case collectingState:
		return r.stepCollecting(st, sym)
	default:
		return false, errors.Errorf("unreachable frame state %T", st)
	}
}

// stepHunt implements spec.md §4.6's HUNT state. spec.md §6 only requires
// *at least* PreambleSyms alternating symbols before the sync word, so the
// run keeps growing for as long as alternation holds; it's the symbol that
// finally breaks the alternation that is tried as s1 of the sync word, not
// whichever symbol happens to land the instant the run first reaches
// PreambleSyms. A break before the minimum run is reached instead applies
// the literal (and deliberately preserved) preamble-reset asymmetry from
// §9: preambleRun resets to 1 if the mismatching symbol is 0, else 0.
func (r *Receiver) stepHunt(st huntState, sym int) (bool, error) {
	match := (st.preambleRun%2 == 0 && sym == 0) || (st.preambleRun%2 == 1 && sym == 2)

	switch {
	case match:
		r.state = huntState{preambleRun: st.preambleRun + 1}
		return false, nil
	case st.preambleRun < r.cfg.PreambleSyms:
		next := 0
		if sym == 0 {
			next = 1
		}
		r.state = huntState{preambleRun: next}
		return false, nil
	}

	// sym is s1. It was already reported through Run's own per-symbol
	// OnSymbol call, so only s2 and s3 remain to be fetched; they're
	// reported together as one burst, preserving the at-most-once-per-burst
	// OnByteProgress rule across the three sync symbols.
	rest := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		s, ok, err := r.nextSymbol()
		if err != nil {
			r.observeBatch(rest)
			return false, err
		}
		if !ok {
			r.observeBatch(rest)
			return true, nil
		}
		rest = append(rest, s)
	}
	r.observeBatch(rest)

	if sym == r.cfg.Sync[0] && rest[0] == r.cfg.Sync[1] && rest[1] == r.cfg.Sync[2] {
		r.state = collectingState{}
		r.cfg.Logger.Debug("sync acquired, collecting packet body")
	} else {
		r.state = huntState{preambleRun: 0}
	}
	return false, nil
}

// stepCollecting implements spec.md §4.6's COLLECTING state.
func (r *Receiver) stepCollecting(st collectingState, sym int) (bool, error) {
	body := append(st.bodySyms, sym)

	if len(body) >= codecfsk.SymbolsPerByte {
		length := int(codecfsk.SymbolsToBytes(body[:codecfsk.SymbolsPerByte])[0])
		need := (1 + length + 2) * codecfsk.SymbolsPerByte

		switch {
		case len(body) == need:
			r.completePacket(body)
			r.state = huntState{}
			return false, nil
		case len(body) > need:
			r.cfg.Logger.Warning("packet desync: body overshot expected length, dropping")
			r.state = huntState{}
			return false, nil
		}
	}

	r.state = collectingState{bodySyms: body}
	return false, nil
}

// completePacket parses a complete body buffer as an outer packet and, if
// it validates, reports it to the listener and updates the throughput
// diagnostic. A CRC or framing failure is dropped silently per spec.md §7.
func (r *Receiver) completePacket(body []int) {
	pkt := codecfsk.SymbolsToBytes(body)
	payload, err := wirefsk.TryParse(pkt)
	if err != nil {
		r.cfg.Logger.Warning("packet dropped", "error", err.Error())
		return
	}
	r.bitrate.Report(len(payload))
	r.cfg.Logger.Debug("packet decoded", "bytes", len(payload), "bitrate", r.bitrate.Bitrate())
	r.listener.packet(payload)
}

// linkQuality summarizes the detector's most recent per-band powers as a
// single mean value, a supplemental diagnostic (spec.md §4.2's Powers())
// with no influence on symbol decisions.
func linkQuality(powers [codecfsk.NumBands]float64) float64 {
	return stat.Mean(powers[:], nil)
}

package progress

import (
	"bytes"
	"regexp"
)

// announcement matches a progress line anywhere in accumulated content:
// a known phase name, a colon, and a percentage with zero or one
// fractional digit. The engine may prefix arbitrary text.
var announcement = regexp.MustCompile(`(Scanning|Loading|Verifying|Repairing):\s*(\d+)(?:\.(\d))?%`)

// Extractor recognizes progress announcements in an unbounded byte stream.
// It implements io.Writer so it can sit directly on the engine's output;
// writes may arrive in arbitrary chunk sizes, including partial lines and
// multiple concatenated lines. The emitted event sequence is independent
// of chunk boundaries.
type Extractor struct {
	fn    Func
	tally *Tally
	buf   []byte
}

// NewExtractor returns an extractor that emits events through fn.
func NewExtractor(fn Func) *Extractor {
	return &Extractor{fn: fn}
}

// Observe additionally routes non-progress diagnostic lines into t for
// end-of-run counting.
func (e *Extractor) Observe(t *Tally) {
	e.tally = t
}

// maxBuffered caps the partial-line buffer. An announcement fits in tens
// of bytes; a stream that produces this much without a line terminator is
// not announcing progress and its accumulated bytes are dropped.
const maxBuffered = 64 * 1024

// Write consumes a chunk of engine output. It never fails; unrecognized
// content is silently discarded.
func (e *Extractor) Write(p []byte) (int, error) {
	e.buf = append(e.buf, p...)

	// The engine uses carriage returns for in-place updates, so both \r
	// and \n terminate a logical line.
	for {
		i := bytes.IndexAny(e.buf, "\r\n")
		if i < 0 {
			break
		}
		e.flush(e.buf[:i])
		e.buf = e.buf[i+1:]
	}

	if len(e.buf) > maxBuffered {
		e.buf = e.buf[:0]
	}

	return len(p), nil
}

// flush pattern-matches one completed line and emits at most one event.
func (e *Extractor) flush(line []byte) {
	m := announcement.FindSubmatch(line)
	if m == nil {
		if e.tally != nil {
			e.tally.scan(line)
		}
		return
	}

	current, ok := parseTenths(m[2], m[3])
	if !ok {
		return
	}

	e.fn(Event{
		Phase:   phaseFromName(m[1]),
		Current: current,
		Total:   Total,
	})
}

// parseTenths converts a whole percentage and an optional single
// fractional digit into tenths of a percent. Integer arithmetic keeps
// "45.3" at exactly 453. Values beyond 100% pass through unclamped; the
// engine is trusted not to emit invalid ranges.
func parseTenths(whole, frac []byte) (uint64, bool) {
	// Reject absurd lengths before multiplying.
	if len(whole) == 0 || len(whole) > 18 {
		return 0, false
	}

	var n uint64
	for _, c := range whole {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + uint64(c-'0')
	}
	n *= 10

	if len(frac) == 1 {
		if frac[0] < '0' || frac[0] > '9' {
			return 0, false
		}
		n += uint64(frac[0] - '0')
	}

	return n, true
}

// phaseFromName maps a matched phase name to its Phase value.
func phaseFromName(name []byte) Phase {
	switch name[0] {
	case 'L':
		return PhaseLoading
	case 'V':
		return PhaseVerifying
	case 'R':
		return PhaseRepairing
	default:
		return PhaseScanning
	}
}

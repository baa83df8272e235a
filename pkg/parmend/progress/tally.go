package progress

import (
	"bytes"
	"sync/atomic"
)

// Diagnostic markers in engine output. These are a best-effort scrape of
// informational text, not a contract: a marker the engine stops emitting
// simply stops being counted.
var (
	markerDamaged = []byte("damaged")
	markerMissing = []byte("missing")
	markerMatch   = []byte("is a match for")
)

// Tally counts diagnostic lines the engine emits while verifying a set.
// All fields are atomic so the extractor can write from engine threads
// while the caller reads for a summary.
type Tally struct {
	// Damaged counts files found damaged during verification.
	Damaged atomic.Int64

	// Missing counts files the set expects but the directory lacks.
	Missing atomic.Int64

	// Matched counts misnamed files identified by content hash.
	Matched atomic.Int64
}

// scan classifies one non-progress diagnostic line.
func (t *Tally) scan(line []byte) {
	lower := bytes.ToLower(line)
	switch {
	case bytes.Contains(lower, markerMatch):
		t.Matched.Add(1)
	case bytes.Contains(lower, markerDamaged):
		t.Damaged.Add(1)
	case bytes.Contains(lower, markerMissing):
		t.Missing.Add(1)
	}
}

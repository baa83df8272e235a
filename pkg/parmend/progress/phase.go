// Package progress converts the repair engine's free-form text output into
// structured progress events. The engine announces progress as lines like
// "Verifying: 45.3%\r" interleaved with ordinary diagnostics; the extractor
// is a line-oriented state machine that accumulates bytes until a carriage
// return or newline, pattern-matches the completed line, and emits one
// normalized event per recognized announcement. Everything else is
// discarded: the text stream is not a verified contract with the engine,
// so extraction failures are silent and the repair verdict is unaffected.
package progress

// Phase identifies the engine operation a progress event belongs to.
// The values match the engine's native operation codes.
type Phase uint8

// Engine phases in execution order.
const (
	PhaseScanning Phase = iota
	PhaseLoading
	PhaseVerifying
	PhaseRepairing
)

// String returns the phase name as it appears in engine output.
func (p Phase) String() string {
	switch p {
	case PhaseScanning:
		return "Scanning"
	case PhaseLoading:
		return "Loading"
	case PhaseVerifying:
		return "Verifying"
	case PhaseRepairing:
		return "Repairing"
	default:
		return "Scanning"
	}
}

// PhaseFromByte converts a native operation code to a Phase.
// Unknown codes map to PhaseScanning.
func PhaseFromByte(b uint8) Phase {
	if b > uint8(PhaseRepairing) {
		return PhaseScanning
	}
	return Phase(b)
}

// Total is the fixed event denominator: 1000 represents 100.0%, giving
// one-decimal-place resolution.
const Total = 1000

// Event is a normalized progress announcement. Current is percent times
// ten over a Total of 1000. Events are ephemeral: emitted, never stored.
type Event struct {
	Phase   Phase
	Current uint64
	Total   uint64
}

// Func receives progress events. It is invoked from whatever thread the
// engine writes on, possibly concurrently with the caller, and runs on the
// engine's critical path: implementations must be fast and must not block.
type Func func(Event)

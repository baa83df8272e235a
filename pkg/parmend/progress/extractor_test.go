package progress

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// collect returns an extractor and a pointer to the events it emits.
func collect() (*Extractor, *[]Event) {
	events := &[]Event{}
	e := NewExtractor(func(ev Event) {
		*events = append(*events, ev)
	})
	return e, events
}

func TestExtractorSingleWrite(t *testing.T) {
	e, events := collect()

	n, err := e.Write([]byte("Scanning: 45.3%\r"))
	require.NoError(t, err)
	assert.Equal(t, 16, n)

	require.Len(t, *events, 1)
	assert.Equal(t, Event{Phase: PhaseScanning, Current: 453, Total: 1000}, (*events)[0])
}

func TestExtractorChunkBoundaryIndependence(t *testing.T) {
	input := "Scanning: 45.3%\r"
	want := Event{Phase: PhaseScanning, Current: 453, Total: 1000}

	// Splitting the same text at every possible byte offset must yield the
	// identical single event.
	for offset := 0; offset <= len(input); offset++ {
		t.Run(fmt.Sprintf("offset %d", offset), func(t *testing.T) {
			e, events := collect()

			_, err := e.Write([]byte(input[:offset]))
			require.NoError(t, err)
			_, err = e.Write([]byte(input[offset:]))
			require.NoError(t, err)

			require.Len(t, *events, 1)
			assert.Equal(t, want, (*events)[0])
		})
	}
}

func TestExtractorByteAtATime(t *testing.T) {
	e, events := collect()

	for _, b := range []byte("Repairing: 100%\r") {
		_, err := e.Write([]byte{b})
		require.NoError(t, err)
	}

	require.Len(t, *events, 1)
	assert.Equal(t, Event{Phase: PhaseRepairing, Current: 1000, Total: 1000}, (*events)[0])
}

func TestExtractorWholePercent(t *testing.T) {
	e, events := collect()

	_, err := e.Write([]byte("Repairing: 100%\r"))
	require.NoError(t, err)

	require.Len(t, *events, 1)
	assert.Equal(t, Event{Phase: PhaseRepairing, Current: 1000, Total: 1000}, (*events)[0])
}

func TestExtractorInformationalTextIgnored(t *testing.T) {
	e, events := collect()

	_, err := e.Write([]byte("Loading \"movie.par2\".\nThere are 42 recoverable files.\n"))
	require.NoError(t, err)

	assert.Empty(t, *events)
}

func TestExtractorPrefixedLine(t *testing.T) {
	e, events := collect()

	// The engine may prefix arbitrary text; the announcement is matched
	// anywhere in the line.
	_, err := e.Write([]byte("processing set 2: Verifying: 12.5%\r"))
	require.NoError(t, err)

	require.Len(t, *events, 1)
	assert.Equal(t, Event{Phase: PhaseVerifying, Current: 125, Total: 1000}, (*events)[0])
}

func TestExtractorConcatenatedLines(t *testing.T) {
	e, events := collect()

	_, err := e.Write([]byte("Loading: 10%\rLoading: 50%\rLoading: 100%\rOpening files\n"))
	require.NoError(t, err)

	require.Len(t, *events, 3)
	assert.Equal(t, uint64(100), (*events)[0].Current)
	assert.Equal(t, uint64(500), (*events)[1].Current)
	assert.Equal(t, uint64(1000), (*events)[2].Current)
	for _, ev := range *events {
		assert.Equal(t, PhaseLoading, ev.Phase)
	}
}

func TestExtractorOutOfRangePassthrough(t *testing.T) {
	// Values beyond 100% are passed through unclamped. The engine is
	// trusted not to emit them, but the extractor places no hard clamp.
	e, events := collect()

	_, err := e.Write([]byte("Verifying: 250.0%\r"))
	require.NoError(t, err)

	require.Len(t, *events, 1)
	assert.Equal(t, uint64(2500), (*events)[0].Current)
}

func TestExtractorAmbiguousPunctuation(t *testing.T) {
	e, events := collect()

	// Multiple colons and decimal points around the announcement.
	_, err := e.Write([]byte("set: a.b.c: Verifying: 99.9% done: yes\n"))
	require.NoError(t, err)

	require.Len(t, *events, 1)
	assert.Equal(t, Event{Phase: PhaseVerifying, Current: 999, Total: 1000}, (*events)[0])
}

func TestExtractorMalformedLines(t *testing.T) {
	tests := []string{
		"Scanning:\r",
		"Scanning: %\r",
		"Scanning: 45.3\r", // no percent sign
		"Smoothing: 45.3%\r",
		"x\r",
		"\r",
		"\n",
		"Scanning: 12345678901234567890%\r", // too long to represent
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			e, events := collect()
			_, err := e.Write([]byte(input))
			require.NoError(t, err)
			assert.Empty(t, *events)
		})
	}
}

func TestExtractorMultiDigitFractionRejected(t *testing.T) {
	// One fractional digit is the whole grammar. A two-digit fraction is
	// not truncated to tenths, it fails to match and emits nothing.
	e, events := collect()

	_, err := e.Write([]byte("Verifying: 45.37%\r"))
	require.NoError(t, err)
	assert.Empty(t, *events)
}

func TestExtractorUnterminatedStreamBounded(t *testing.T) {
	e, events := collect()

	// A stream that never produces a line terminator must not grow the
	// buffer indefinitely.
	junk := bytes.Repeat([]byte("x"), 8*1024)
	for i := 0; i < 16; i++ {
		_, err := e.Write(junk)
		require.NoError(t, err)
	}
	assert.Empty(t, *events)
	assert.LessOrEqual(t, len(e.buf), maxBuffered)

	// The extractor keeps working once the stream recovers.
	_, err := e.Write([]byte("\rVerifying: 50.0%\r"))
	require.NoError(t, err)
	require.Len(t, *events, 1)
	assert.Equal(t, Event{Phase: PhaseVerifying, Current: 500, Total: 1000}, (*events)[0])
}

func TestExtractorNoDelimiterNoEvent(t *testing.T) {
	e, events := collect()

	// A complete-looking announcement without a line terminator stays
	// buffered.
	_, err := e.Write([]byte("Scanning: 45.3%"))
	require.NoError(t, err)
	assert.Empty(t, *events)

	_, err = e.Write([]byte("\n"))
	require.NoError(t, err)
	assert.Len(t, *events, 1)
}

func TestTally(t *testing.T) {
	var tally Tally
	e, events := collect()
	e.Observe(&tally)

	_, err := e.Write([]byte(
		"Target: \"a.mkv\" - damaged.\n" +
			"Target: \"b.mkv\" - damaged.\n" +
			"Target: \"c.mkv\" - missing.\n" +
			"File: \"x1y2\" - is a match for \"a.mkv\".\n" +
			"Verifying: 50.0%\r"))
	require.NoError(t, err)

	assert.Equal(t, int64(2), tally.Damaged.Load())
	assert.Equal(t, int64(1), tally.Missing.Load())
	assert.Equal(t, int64(1), tally.Matched.Load())

	// Progress announcements are not tallied.
	require.Len(t, *events, 1)
}

func TestPhaseFromByte(t *testing.T) {
	assert.Equal(t, PhaseScanning, PhaseFromByte(0))
	assert.Equal(t, PhaseLoading, PhaseFromByte(1))
	assert.Equal(t, PhaseVerifying, PhaseFromByte(2))
	assert.Equal(t, PhaseRepairing, PhaseFromByte(3))
	assert.Equal(t, PhaseScanning, PhaseFromByte(200))
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "Scanning", PhaseScanning.String())
	assert.Equal(t, "Loading", PhaseLoading.String())
	assert.Equal(t, "Verifying", PhaseVerifying.String())
	assert.Equal(t, "Repairing", PhaseRepairing.String())
}

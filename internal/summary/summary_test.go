package summary

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/upsuper/deja-dup-auto-ignore/internal/walker"
)

type bufLogger struct {
	lines []string
}

func (l *bufLogger) Info(format string, args ...interface{}) {
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

func TestFromTracker(t *testing.T) {
	tracker := walker.NewTracker()
	tracker.Track("/r", walker.Descended)
	tracker.Track("/r/build", walker.Ignored)
	tracker.Track("/r/x", walker.Pruned)

	res := FromTracker(tracker)
	assert.Equal(t, Results{Ignored: 1, Pruned: 1, Descended: 1}, res)
}

func TestDisplayResults(t *testing.T) {
	log := &bufLogger{}
	DisplayResults(log, Results{Ignored: 2, Skipped: 1, Descended: 3, Created: 2}, 1500*time.Microsecond, false)

	assert.Equal(t, []string{
		"Scanned 6 directories: 2 ignored, 1 already marked, 0 excluded, 0 unreadable.",
		"Created 2 marker files (0 failed).",
		"Scan complete in 2ms.",
	}, log.lines)
}

func TestDisplayResultsDryRunAndQuiet(t *testing.T) {
	log := &bufLogger{}
	DisplayResults(log, Results{DryRun: true}, time.Second, false)
	assert.Len(t, log.lines, 2)

	quiet := &bufLogger{}
	DisplayResults(quiet, Results{}, time.Second, true)
	assert.Empty(t, quiet.lines)
}

func TestDisplaySkippedItems(t *testing.T) {
	log := &bufLogger{}
	var out bytes.Buffer
	items := []walker.Item{
		{Path: "/r/z", Class: walker.Pruned},
		{Path: "/r/a", Class: walker.Skipped},
	}

	DisplaySkippedItems(log, items, &out, false)

	assert.Equal(t, "Skipped DIR: /r/a [Skipped (Marker Present)]\nSkipped DIR: /r/z [Pruned (Excluded Path)]\n", out.String())
	assert.Equal(t, "/r/z", items[0].Path)
	assert.Len(t, log.lines, 2)
}

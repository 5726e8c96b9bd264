// Package summary handles display of scan results and statistics
package summary

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/upsuper/deja-dup-auto-ignore/internal/walker"
)

// Logger defines the minimal logging interface required
type Logger interface {
	Info(format string, args ...interface{})
}

// Results gathers the numbers reported at the end of a run
type Results struct {
	Ignored    int
	Skipped    int
	Pruned     int
	Unreadable int
	Descended  int
	// Marker writer counts, unused in dry-run mode
	Created int
	Failed  int
	DryRun  bool
}

// FromTracker fills the classification counts from tracker
func FromTracker(tracker *walker.Tracker) Results {
	return Results{
		Ignored:    tracker.Count(walker.Ignored),
		Skipped:    tracker.Count(walker.Skipped),
		Pruned:     tracker.Count(walker.Pruned),
		Unreadable: tracker.Count(walker.Unreadable),
		Descended:  tracker.Count(walker.Descended),
	}
}

// DisplayResults shows the end results of a scan operation
func DisplayResults(logger Logger, res Results, duration time.Duration, quiet bool) {
	if quiet {
		return
	}
	logger.Info("Scanned %d directories: %d ignored, %d already marked, %d excluded, %d unreadable.",
		res.Descended+res.Ignored+res.Skipped+res.Pruned+res.Unreadable,
		res.Ignored, res.Skipped, res.Pruned, res.Unreadable)
	if !res.DryRun {
		logger.Info("Created %d marker files (%d failed).", res.Created, res.Failed)
	}
	logger.Info("Scan complete in %v.", duration.Round(time.Millisecond))
}

// DisplaySkippedItems lists the directories that were not entered for a
// reason other than being ignored
func DisplaySkippedItems(logger Logger, items []walker.Item, output io.Writer, quiet bool) {
	infoLog := func(format string, args ...interface{}) {
		if !quiet {
			logger.Info(format, args...)
		}
	}

	infoLog("--- Skipped Directories (%d) ---", len(items))
	if len(items) > 0 {
		// Sort for consistent output
		sorted := append([]walker.Item(nil), items...)
		sort.Slice(sorted, func(i, j int) bool {
			return sorted[i].Path < sorted[j].Path
		})
		for _, item := range sorted {
			fmt.Fprintf(output, "Skipped DIR: %s [%s]\n", item.Path, item.Class)
		}
	} else {
		infoLog("No directories were skipped.")
	}
	infoLog("--- End Skipped Directories ---")
}

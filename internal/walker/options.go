// Package walker finds the directories a backup should skip
package walker

import (
	"context"

	"github.com/upsuper/deja-dup-auto-ignore/internal/ignore"
	"github.com/upsuper/deja-dup-auto-ignore/internal/utils"
)

// Marker file names recognised by default. A directory holding one of them
// has already been dealt with and is never looked at again.
const (
	DejaDupIgnoreMarker = ".deja-dup-ignore"
	CacheDirTagMarker   = "CACHEDIR.TAG"
)

// VCSDirName is never matched, reported or entered
const VCSDirName = ".git"

// WalkOptions configures the behavior of Walk and Traverse
type WalkOptions struct {
	Logger         utils.Logger
	MarkerNames    []string
	IgnoreFileName string
	Tracker        *Tracker
	Context        context.Context
}

// defaultOptions returns the default walk options
func defaultOptions() WalkOptions {
	return WalkOptions{
		Logger:         utils.NoopLogger{},
		MarkerNames:    []string{DejaDupIgnoreMarker, CacheDirTagMarker},
		IgnoreFileName: ignore.DefaultFileName,
		Tracker:        nil,
		Context:        context.Background(),
	}
}

// Option is a functional option for configuring WalkOptions
type Option func(*WalkOptions)

// WithLogger sets a custom logger for the walker
func WithLogger(logger utils.Logger) Option {
	return func(opts *WalkOptions) {
		opts.Logger = utils.OrNoop(logger)
	}
}

// WithMarkerNames replaces the marker file names checked in every directory
func WithMarkerNames(names ...string) Option {
	return func(opts *WalkOptions) {
		if len(names) > 0 {
			opts.MarkerNames = append([]string(nil), names...)
		}
	}
}

// WithIgnoreFileName sets the per-directory rule file name
func WithIgnoreFileName(name string) Option {
	return func(opts *WalkOptions) {
		if name != "" {
			opts.IgnoreFileName = name
		}
	}
}

// WithTracker records the classification of every evaluated directory
func WithTracker(tracker *Tracker) Option {
	return func(opts *WalkOptions) {
		opts.Tracker = tracker
	}
}

// WithContext sets the context for cancellation
func WithContext(ctx context.Context) Option {
	return func(opts *WalkOptions) {
		if ctx != nil {
			opts.Context = ctx
		}
	}
}

package marker

import (
	"path/filepath"

	"github.com/upsuper/deja-dup-auto-ignore/internal/filelock"
	"github.com/upsuper/deja-dup-auto-ignore/internal/utils"
)

// cacheDirTagContent starts with the signature required by the cache
// directory tagging convention
const cacheDirTagContent = "Signature: 8a477f597d28d172789f06886806bc55\n" +
	"# This file is a cache directory tag created by deja-dup-auto-ignore.\n" +
	"# For information about cache directory tags, see:\n" +
	"#\thttps://bford.info/cachedir/\n"

// Content returns what a freshly written marker file contains
func Content(marker string) []byte {
	if marker == CacheDirTag {
		return []byte(cacheDirTagContent)
	}
	return nil
}

// Writer places marker files in ignored directories according to a Policy
type Writer struct {
	policy *Policy
	logger utils.Logger
	write  func(path string, data []byte) error

	created   int
	failed    int
	unmatched int
}

// NewWriter creates a Writer. A nil policy means DefaultPolicy.
func NewWriter(policy *Policy, logger utils.Logger) *Writer {
	if policy == nil {
		policy = DefaultPolicy()
	}
	return &Writer{
		policy: policy,
		logger: utils.OrNoop(logger),
		write:  filelock.AtomicWrite,
	}
}

// Mark writes the marker dir should receive. Failures are logged and
// counted; they never stop the walk.
func (w *Writer) Mark(dir string) {
	marker, ok := w.policy.MarkerFor(dir)
	if !ok {
		w.unmatched++
		w.logger.Debug("No marker rule for %s, leaving it alone", dir)
		return
	}

	path := filepath.Join(dir, marker)
	if err := w.write(path, Content(marker)); err != nil {
		w.failed++
		w.logger.Warn("Failed to create %s in %s: %v", marker, dir, err)
		return
	}
	w.created++
	w.logger.Info("Created %s in %s", marker, dir)
}

// Created returns the number of marker files written
func (w *Writer) Created() int { return w.created }

// Failed returns the number of marker files that could not be written
func (w *Writer) Failed() int { return w.failed }

// Unmatched returns the number of directories no rule applied to
func (w *Writer) Unmatched() int { return w.unmatched }

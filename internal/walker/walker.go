package walker

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/upsuper/deja-dup-auto-ignore/internal/ignore"
	"github.com/upsuper/deja-dup-auto-ignore/internal/stack"
)

var (
	// ErrRelativeRoot is returned for a root that is not an absolute path
	ErrRelativeRoot = errors.New("root is not an absolute path")
	// ErrNotDirectory is returned for a root that is not a directory
	ErrNotDirectory = errors.New("root is not a directory")
)

// Traverse walks every root in turn, reporting ignored directories through
// onIgnored. Roots are independent: each starts from the full excluded list
// and no ignore rules, and a failing root does not stop the others. The
// errors of all failed roots are returned joined.
func Traverse(roots, excluded []string, onIgnored IgnoredFunc, opts ...Option) error {
	options := buildOptions(opts)

	var errs []error
	for _, root := range roots {
		if err := options.Context.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if err := walkRoot(root, excluded, onIgnored, options); err != nil {
			options.Logger.Error("Walker: Traversal of %s failed: %v", root, err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Walk traverses the directory tree below root, which must be an absolute,
// canonical directory path. onIgnored is called for each ignored directory,
// parents before children, siblings in directory listing order.
func Walk(root string, excluded []string, onIgnored IgnoredFunc, opts ...Option) error {
	return walkRoot(root, excluded, onIgnored, buildOptions(opts))
}

func buildOptions(opts []Option) WalkOptions {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	return options
}

func walkRoot(root string, excluded []string, onIgnored IgnoredFunc, options WalkOptions) error {
	startTime := time.Now()

	if err := checkRoot(root); err != nil {
		return fmt.Errorf("walker: %s: %w", root, err)
	}

	options.Logger.Debug("walker.Walk started. Root: %s, Excluded paths: %d", root, len(excluded))

	w := &walk{options: options, onIgnored: onIgnored}
	err := w.visit(filepath.Clean(root), cleanAll(excluded), stack.New[*ignore.Matcher]())

	options.Logger.Debug("Walker: Total walk time for %s: %s", root, time.Since(startTime))
	if err != nil {
		return fmt.Errorf("walker: %s: %w", root, err)
	}
	return nil
}

func checkRoot(root string) error {
	if !filepath.IsAbs(root) {
		return ErrRelativeRoot
	}
	info, err := os.Stat(root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return ErrNotDirectory
	}
	return nil
}

type walk struct {
	options   WalkOptions
	onIgnored IgnoredFunc
}

// visit evaluates dir and, unless it is pruned, marked or ignored, recurses
// into its subdirectories. The order of the checks is significant: a marked
// directory is never reported, and an ignored directory's own rules are never
// read.
func (w *walk) visit(dir string, excluded []string, matchers *stack.Stack[*ignore.Matcher]) error {
	log := w.options.Logger

	if err := w.options.Context.Err(); err != nil {
		return err
	}

	next, pruned := narrowExcluded(dir, excluded)
	if pruned {
		log.Debug("Walker: Skipping excluded path: %s", dir)
		w.options.Tracker.Track(dir, Pruned)
		return nil
	}

	if marker, ok := findMarker(dir, w.options.MarkerNames); ok {
		log.Debug("Walker: Skipping directory with existing %s: %s", marker, dir)
		w.options.Tracker.Track(dir, Skipped)
		return nil
	}

	if ignore.AnyIgnored(matchers.Items(), dir, true) {
		log.Debug("Walker: Ignored %s", dir)
		w.options.Tracker.Track(dir, Ignored)
		if w.onIgnored != nil {
			w.onIgnored(dir)
		}
		return nil
	}

	scope := matchers.Scope()
	defer scope.Release()

	local, err := ignore.Load(dir,
		ignore.WithFileName(w.options.IgnoreFileName),
		ignore.WithLogger(log),
	)
	if err != nil {
		return err
	}
	if local != nil {
		scope.Push(local)
	}

	entries, err := listDir(dir)
	if err != nil {
		if len(entries) == 0 {
			log.Warn("Failed to read directory %s: %v", dir, err)
			w.options.Tracker.Track(dir, Unreadable)
			return nil
		}
		log.Warn("Failed to read some entries of %s: %v", dir, err)
	}
	w.options.Tracker.Track(dir, Descended)

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		// ignore rules don't apply to the repository metadata
		if entry.Name() == VCSDirName {
			continue
		}
		if err := w.visit(filepath.Join(dir, entry.Name()), next, scope.Stack()); err != nil {
			return err
		}
	}
	return nil
}

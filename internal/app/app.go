package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"

	"github.com/upsuper/deja-dup-auto-ignore/internal/config"
	"github.com/upsuper/deja-dup-auto-ignore/internal/filelock"
	"github.com/upsuper/deja-dup-auto-ignore/internal/logger"
	"github.com/upsuper/deja-dup-auto-ignore/internal/marker"
	"github.com/upsuper/deja-dup-auto-ignore/internal/printer"
	"github.com/upsuper/deja-dup-auto-ignore/internal/setup"
	"github.com/upsuper/deja-dup-auto-ignore/internal/summary"
	"github.com/upsuper/deja-dup-auto-ignore/internal/walker"
)

// App encapsulates the main application functionality
type App struct {
	cfg    *config.Config
	log    *logger.Logger
	stderr io.Writer
	Output io.Writer

	provider config.Provider
	env      *config.Env
}

// New creates a new App instance. Logs go to stderr; dry-run listings go to
// Output, stdout unless the config names a file.
func New(cfg *config.Config, stderr io.Writer) *App {
	// Configure color globally
	color.NoColor = !cfg.UseColors

	return &App{
		cfg:    cfg,
		log:    logger.New(stderr, cfg.EffectiveLevel(), cfg.UseColors),
		stderr: stderr,
		Output: os.Stdout,
	}
}

// WithProvider overrides where the include and exclude lists come from
func (a *App) WithProvider(p config.Provider) *App {
	a.provider = p
	return a
}

// WithEnv overrides the user environment used to expand paths
func (a *App) WithEnv(env config.Env) *App {
	a.env = &env
	return a
}

// Run executes the main application logic. It returns an error when the
// configuration cannot be resolved or when any root failed; the other roots
// are still processed.
func (a *App) Run(ctx context.Context) error {
	startTime := time.Now()

	if !a.cfg.DryRun && !a.cfg.NoLock {
		lockPath := a.cfg.LockFile
		if lockPath == "" {
			lockPath = filelock.DefaultPath(config.AppName)
		}
		lock := filelock.New(lockPath)
		if err := lock.Acquire(); err != nil {
			if errors.Is(err, filelock.ErrLocked) {
				return fmt.Errorf("another run is in progress: %w", err)
			}
			return err
		}
		defer lock.Release()
		a.log.Debug("Holding run lock %s", lockPath)
	}

	provider := a.provider
	if provider == nil {
		var err error
		provider, err = config.SelectProvider(a.cfg)
		if err != nil {
			return err
		}
	}
	env, err := a.currentEnv()
	if err != nil {
		return err
	}

	resolved, err := config.Resolve(ctx, a.cfg, provider, env, a.log)
	if err != nil {
		return err
	}
	a.log.Info("Include paths: %v", resolved.Include)
	a.log.Info("Exclude paths: %v", resolved.Exclude)
	a.log.Debug("Paths read from %s", resolved.Source)

	roots, rootErrs := a.canonicalRoots(resolved.Include)

	tracker := walker.NewTracker()
	policy, walkOptions, err := setup.ConfigureWalker(setup.WalkerConfig{
		Rules:   resolved.Rules,
		Tracker: tracker,
		Context: ctx,
		Logger:  a.log,
	}, a.log.Info)
	if err != nil {
		return err
	}

	var onIgnored walker.IgnoredFunc
	var p *printer.Printer
	var writer *marker.Writer
	if a.cfg.DryRun {
		out, closeOut, err := a.output()
		if err != nil {
			return err
		}
		defer closeOut()
		p = a.newPrinter(out)
		onIgnored = func(dir string) {
			name, _ := policy.MarkerFor(dir)
			p.PrintDir(dir, name)
		}
	} else {
		writer = marker.NewWriter(policy, a.log)
		onIgnored = writer.Mark
	}

	walkErr := walker.Traverse(roots, resolved.Exclude, onIgnored, walkOptions...)

	if p != nil {
		p.Finalize()
	}

	results := summary.FromTracker(tracker)
	results.DryRun = a.cfg.DryRun
	if writer != nil {
		results.Created = writer.Created()
		results.Failed = writer.Failed()
	}
	summary.DisplayResults(a.log, results, time.Since(startTime), a.cfg.Quiet)

	if a.cfg.ShowSkipped {
		skipped := tracker.Filter(walker.Pruned, walker.Skipped, walker.Unreadable)
		summary.DisplaySkippedItems(a.log, skipped, a.stderr, a.cfg.Quiet)
	}

	a.log.Info("Done!")
	return errors.Join(append(rootErrs, walkErr)...)
}

func (a *App) currentEnv() (config.Env, error) {
	if a.env != nil {
		return *a.env, nil
	}
	return config.CurrentEnv()
}

// canonicalRoots resolves each root to an absolute, symlink-free directory.
// A root that cannot be resolved is reported and left out.
func (a *App) canonicalRoots(include []string) ([]string, []error) {
	var roots []string
	var errs []error
	for _, path := range include {
		root, err := canonicalize(path)
		if err != nil {
			a.log.Error("Failed to canonicalize root path %s: %v", path, err)
			errs = append(errs, fmt.Errorf("root %s: %w", path, err))
			continue
		}
		roots = append(roots, root)
	}
	return roots, errs
}

func canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	target, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(target)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", walker.ErrNotDirectory
	}
	return target, nil
}

func (a *App) output() (io.Writer, func(), error) {
	if a.cfg.OutputFile == "" {
		return a.Output, func() {}, nil
	}
	f, err := os.Create(a.cfg.OutputFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, func() { f.Close() }, nil
}

func (a *App) newPrinter(out io.Writer) *printer.Printer {
	p := printer.New().WithOutput(out).WithLogger(a.log).WithColors(a.cfg.UseColors && a.cfg.OutputFile == "")
	switch {
	case a.cfg.JSONOutput:
		a.log.Debug("JSON output mode enabled")
		p.WithJSON(true).WithColors(false)
	case a.cfg.MarkdownOutput:
		a.log.Debug("Markdown output mode enabled")
		p.WithMarkdown(true).WithColors(false)
	}
	return p
}

package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/upsuper/deja-dup-auto-ignore/internal/app"
	"github.com/upsuper/deja-dup-auto-ignore/internal/config"
	"github.com/upsuper/deja-dup-auto-ignore/internal/logger"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command
func NewRootCommand() *cobra.Command {
	cfg := config.New()
	cfg.Version = Version

	cmd := &cobra.Command{
		Use:   config.AppName,
		Short: "Keep build outputs and caches out of Deja Dup backups",
		Long: `deja-dup-auto-ignore walks the directories Deja Dup backs up and finds
directories that git ignores, such as node_modules, target or .cache.

Each one receives a marker file Deja Dup honours: .deja-dup-ignore for
dependency and build directories, CACHEDIR.TAG for caches. Directories
and their ignore rules are read from Deja Dup's dconf settings unless a
config file or --include is given.`,
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return validate(cfg)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Finalize()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a := app.New(cfg, cmd.ErrOrStderr())
			a.Output = cmd.OutOrStdout()
			return a.Run(ctx)
		},
	}

	flags := cmd.Flags()
	flags.BoolVarP(&cfg.DryRun, "dry-run", "n", false, "List ignored directories without creating marker files")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Enable verbose logging")
	flags.BoolVarP(&cfg.Quiet, "quiet", "q", false, "Only log warnings and errors")
	flags.StringVar(&cfg.LogLevel, "log-level", "", "Log level: debug, info, warn, error (overrides -v and -q)")
	flags.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output")
	flags.StringVarP(&cfg.OutputFile, "output", "o", "", "Write the dry-run listing to a file instead of stdout")
	flags.BoolVar(&cfg.JSONOutput, "json", false, "Print the dry-run listing as JSON")
	flags.BoolVar(&cfg.MarkdownOutput, "markdown", false, "Print the dry-run listing as Markdown")
	flags.BoolVar(&cfg.ShowSkipped, "show-skipped", false, "List excluded, already marked and unreadable directories")
	flags.StringVarP(&cfg.ConfigFile, "config", "c", "", "Read include and exclude paths from a YAML file")
	flags.StringArrayVar(&cfg.Include, "include", nil, "Directory to scan instead of the configured ones (repeatable)")
	flags.StringArrayVar(&cfg.Exclude, "exclude", nil, "Additional directory to leave alone (repeatable)")
	flags.StringVar(&cfg.LockFile, "lock-file", "", "Path of the run lock (default: user cache directory)")
	flags.BoolVar(&cfg.NoLock, "no-lock", false, "Run without taking the run lock")

	cmd.MarkFlagsMutuallyExclusive("json", "markdown")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	return cmd
}

func validate(cfg *config.Config) error {
	if cfg.LogLevel != "" {
		if _, ok := logger.ParseLevel(cfg.LogLevel); !ok {
			return fmt.Errorf("invalid log level %q", cfg.LogLevel)
		}
	}
	if (cfg.JSONOutput || cfg.MarkdownOutput || cfg.OutputFile != "") && !cfg.DryRun {
		return fmt.Errorf("--output, --json and --markdown require --dry-run")
	}
	return nil
}

// Package setup provides initialization and configuration functions
package setup

import (
	"context"
	"fmt"
	"strings"

	"github.com/upsuper/deja-dup-auto-ignore/internal/marker"
	"github.com/upsuper/deja-dup-auto-ignore/internal/utils"
	"github.com/upsuper/deja-dup-auto-ignore/internal/walker"
)

// InfoLogger wraps the Info method for status updates
type InfoLogger func(format string, args ...interface{})

// WalkerConfig holds all parameters needed to configure a directory walker
type WalkerConfig struct {
	// Rules replaces the default marker rules when non-nil
	Rules   []marker.Rule
	Tracker *walker.Tracker
	Context context.Context
	Logger  utils.Logger
}

// ConfigureWalker builds the marker policy and the walker options for a run.
// The walker's marker short-circuit checks every name the policy can write,
// so directories handled by a previous run are never reported again.
func ConfigureWalker(cfg WalkerConfig, infoLog InfoLogger) (*marker.Policy, []walker.Option, error) {
	policy := marker.DefaultPolicy()
	if cfg.Rules != nil {
		var err error
		policy, err = marker.NewPolicy(cfg.Rules)
		if err != nil {
			return nil, nil, fmt.Errorf("error initializing marker rules: %w", err)
		}
		infoLog("Using %d custom marker rules.", len(cfg.Rules))
	}

	names := policy.MarkerNames()
	if cfg.Logger != nil {
		cfg.Logger.Debug("Marker files checked in every directory: %s", strings.Join(names, ", "))
	}

	walkOptions := []walker.Option{
		walker.WithLogger(cfg.Logger),
		walker.WithMarkerNames(names...),
	}
	if cfg.Tracker != nil {
		walkOptions = append(walkOptions, walker.WithTracker(cfg.Tracker))
	}
	if cfg.Context != nil {
		walkOptions = append(walkOptions, walker.WithContext(cfg.Context))
	}

	return policy, walkOptions, nil
}

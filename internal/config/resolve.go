package config

import (
	"context"
	"fmt"

	"github.com/upsuper/deja-dup-auto-ignore/internal/marker"
	"github.com/upsuper/deja-dup-auto-ignore/internal/utils"
)

// Resolved is the outcome of combining the provider and the command line
type Resolved struct {
	// Include holds the roots to scan, expanded but not canonicalized
	Include []string
	// Exclude holds the absolute paths never to scan
	Exclude []string
	// Rules overrides the default marker rules when non-nil
	Rules []marker.Rule
	// Source names where Include and Exclude came from
	Source string
}

// SelectProvider picks where paths come from: an explicit config file, the
// default config file if it exists, or dconf.
func SelectProvider(cfg *Config) (Provider, error) {
	if cfg.ConfigFile != "" {
		return &FileProvider{Path: cfg.ConfigFile}, nil
	}
	path, err := DefaultFilePath()
	if err == nil && fileExists(path) {
		return &FileProvider{Path: path}, nil
	}
	return NewDconfProvider(), nil
}

// Resolve collects and expands the paths for this run. When cfg.Include is
// set the provider is not consulted at all. Paths that fail to expand are
// logged and dropped; they never abort the run.
func Resolve(ctx context.Context, cfg *Config, provider Provider, env Env, log utils.Logger) (*Resolved, error) {
	log = utils.OrNoop(log)
	res := &Resolved{Source: "command line"}

	var include, exclude []string
	if len(cfg.Include) > 0 {
		include = cfg.Include
	} else {
		var err error
		include, exclude, err = provider.Paths(ctx)
		if err != nil {
			return nil, err
		}
		res.Source = provider.Name()
	}
	exclude = append(append([]string(nil), exclude...), cfg.Exclude...)

	if fp, ok := provider.(*FileProvider); ok {
		rules, err := fp.Markers()
		if err != nil {
			return nil, err
		}
		res.Rules = rules
	}

	res.Include = expandAll(env, include, "include", log)
	res.Exclude = expandAll(env, exclude, "exclude", log)
	if len(res.Include) == 0 {
		return nil, fmt.Errorf("no directories to scan (source: %s)", res.Source)
	}
	return res, nil
}

func expandAll(env Env, paths []string, kind string, log utils.Logger) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		expanded, err := env.ExpandPath(p)
		if err != nil {
			log.Warn("Ignoring %s path %q: %v", kind, p, err)
			continue
		}
		out = append(out, expanded)
	}
	return out
}

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/upsuper/deja-dup-auto-ignore/internal/logger"
	"github.com/upsuper/deja-dup-auto-ignore/internal/marker"
)

func TestEffectiveLevel(t *testing.T) {
	cfg := New()
	assert.Equal(t, logger.LevelInfo, cfg.EffectiveLevel())

	cfg.Quiet = true
	assert.Equal(t, logger.LevelWarn, cfg.EffectiveLevel())

	cfg.Verbose = true
	assert.Equal(t, logger.LevelDebug, cfg.EffectiveLevel())

	cfg.LogLevel = "error"
	assert.Equal(t, logger.LevelError, cfg.EffectiveLevel())

	cfg.LogLevel = "bogus"
	assert.Equal(t, logger.LevelDebug, cfg.EffectiveLevel())
}

func TestFinalizeNoColor(t *testing.T) {
	cfg := New()
	cfg.NoColor = true
	cfg.Finalize()
	assert.False(t, cfg.UseColors)
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, `
include:
  - ~/code
  - $HOME/work
exclude:
  - ~/code/vendor
markers:
  - marker: .deja-dup-ignore
    patterns: [node_modules, target]
  - marker: CACHEDIR.TAG
    patterns: ["*cache*"]
`)

	f, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"~/code", "$HOME/work"}, f.Include)
	assert.Equal(t, []string{"~/code/vendor"}, f.Exclude)
	assert.Equal(t, []marker.Rule{
		{Marker: marker.DejaDupIgnore, Patterns: []string{"node_modules", "target"}},
		{Marker: marker.CacheDirTag, Patterns: []string{"*cache*"}},
	}, f.Markers)
}

func TestLoadFileEmpty(t *testing.T) {
	f, err := LoadFile(writeFile(t, ""))
	require.NoError(t, err)
	assert.Empty(t, f.Include)
}

func TestLoadFileUnknownKey(t *testing.T) {
	_, err := LoadFile(writeFile(t, "includes: [/x]\n"))
	assert.ErrorContains(t, err, "failed to parse config file")
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

type staticProvider struct {
	include, exclude []string
	err              error
}

func (p staticProvider) Name() string { return "static" }

func (p staticProvider) Paths(context.Context) ([]string, []string, error) {
	return p.include, p.exclude, p.err
}

func TestResolveFromProvider(t *testing.T) {
	cfg := New()
	cfg.Exclude = []string{"/extra"}
	env := Env{Home: "/home/u"}
	provider := staticProvider{include: []string{"$HOME", "bad"}, exclude: []string{"$TRASH"}}

	res, err := Resolve(context.Background(), cfg, provider, env, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"/home/u"}, res.Include)
	assert.Equal(t, []string{"/home/u/.local/share/Trash", "/extra"}, res.Exclude)
	assert.Equal(t, "static", res.Source)
	assert.Nil(t, res.Rules)
}

func TestResolveCommandLineInclude(t *testing.T) {
	cfg := New()
	cfg.Include = []string{"/srv/code"}
	provider := staticProvider{err: errors.New("must not be called")}

	res, err := Resolve(context.Background(), cfg, provider, Env{Home: "/home/u"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"/srv/code"}, res.Include)
	assert.Empty(t, res.Exclude)
	assert.Equal(t, "command line", res.Source)
}

func TestResolveProviderError(t *testing.T) {
	provider := staticProvider{err: errors.New("dconf missing")}
	_, err := Resolve(context.Background(), New(), provider, Env{Home: "/home/u"}, nil)
	assert.ErrorContains(t, err, "dconf missing")
}

func TestResolveNothingToScan(t *testing.T) {
	provider := staticProvider{include: []string{"relative"}}
	_, err := Resolve(context.Background(), New(), provider, Env{Home: "/home/u"}, nil)
	assert.ErrorContains(t, err, "no directories to scan")
}

func TestResolveFileProviderMarkers(t *testing.T) {
	path := writeFile(t, `
include: [/srv]
markers:
  - marker: .nobackup
    patterns: [tmp]
`)
	cfg := New()
	cfg.ConfigFile = path

	provider, err := SelectProvider(cfg)
	require.NoError(t, err)
	assert.Equal(t, path, provider.Name())

	res, err := Resolve(context.Background(), cfg, provider, Env{Home: "/home/u"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"/srv"}, res.Include)
	assert.Equal(t, []marker.Rule{{Marker: ".nobackup", Patterns: []string{"tmp"}}}, res.Rules)
}

func TestSelectProviderFallsBackToDconf(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	provider, err := SelectProvider(New())
	require.NoError(t, err)
	assert.Equal(t, "dconf", provider.Name())
}

package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/upsuper/deja-dup-auto-ignore/internal/marker"
)

// File is the on-disk configuration format
type File struct {
	Include []string      `yaml:"include"`
	Exclude []string      `yaml:"exclude"`
	Markers []marker.Rule `yaml:"markers"`
}

// LoadFile reads and decodes a YAML config file. Unknown keys are rejected.
func LoadFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	var cfg File
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return &cfg, nil
}

// DefaultFilePath returns $XDG_CONFIG_HOME/deja-dup-auto-ignore/config.yaml
func DefaultFilePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppName, "config.yaml"), nil
}

// FileProvider supplies paths from a YAML config file
type FileProvider struct {
	Path string
	file *File
}

// Name implements Provider
func (p *FileProvider) Name() string { return p.Path }

// Paths implements Provider
func (p *FileProvider) Paths(context.Context) ([]string, []string, error) {
	f, err := p.load()
	if err != nil {
		return nil, nil, err
	}
	return f.Include, f.Exclude, nil
}

// Markers returns the marker rules of the file, nil when it has none
func (p *FileProvider) Markers() ([]marker.Rule, error) {
	f, err := p.load()
	if err != nil {
		return nil, err
	}
	return f.Markers, nil
}

func (p *FileProvider) load() (*File, error) {
	if p.file == nil {
		f, err := LoadFile(p.Path)
		if err != nil {
			return nil, err
		}
		p.file = f
	}
	return p.file, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || !errors.Is(err, fs.ErrNotExist)
}

package config

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Deja Dup's settings keys
const (
	dconfIncludeKey = "/org/gnome/deja-dup/include-list"
	dconfExcludeKey = "/org/gnome/deja-dup/exclude-list"
)

// Deja Dup's schema defaults, used when a key has never been set
var (
	defaultInclude = []string{"$HOME"}
	defaultExclude = []string{"$TRASH", "$DOWNLOAD"}
)

// Provider supplies the roots to scan and the paths never to scan, before
// expansion.
type Provider interface {
	Paths(ctx context.Context) (include, exclude []string, err error)
	Name() string
}

// Runner runs a command and returns its standard output
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// DconfProvider reads Deja Dup's own include and exclude lists
type DconfProvider struct {
	Run Runner
}

// NewDconfProvider creates a provider that shells out to dconf
func NewDconfProvider() *DconfProvider {
	return &DconfProvider{Run: execRunner}
}

// Name implements Provider
func (p *DconfProvider) Name() string { return "dconf" }

// Paths implements Provider
func (p *DconfProvider) Paths(ctx context.Context) ([]string, []string, error) {
	include, err := p.read(ctx, dconfIncludeKey, defaultInclude)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read include-list from dconf: %w", err)
	}
	exclude, err := p.read(ctx, dconfExcludeKey, defaultExclude)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read exclude-list from dconf: %w", err)
	}
	return include, exclude, nil
}

func (p *DconfProvider) read(ctx context.Context, key string, fallback []string) ([]string, error) {
	run := p.Run
	if run == nil {
		run = execRunner
	}
	out, err := run(ctx, "dconf", "read", key)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(string(out)) == "" {
		return append([]string(nil), fallback...), nil
	}
	return ParseDconfList(string(out))
}

// ParseDconfList parses a GVariant string array as printed by dconf, e.g.
// ['$HOME', '~/code'] or @as []. Empty input yields an empty list.
func ParseDconfList(s string) ([]string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	s = strings.TrimSpace(strings.TrimPrefix(s, "@as"))
	if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") {
		return nil, fmt.Errorf("not a string array: %q", s)
	}
	body := s[1 : len(s)-1]

	var items []string
	for i := 0; i < len(body); {
		switch c := body[i]; {
		case c == ' ' || c == '\t' || c == '\n' || c == ',':
			i++
		case c == '\'' || c == '"':
			item, n, err := scanQuoted(body[i:])
			if err != nil {
				return nil, err
			}
			items = append(items, item)
			i += n
		default:
			return nil, fmt.Errorf("unexpected %q at offset %d in %q", c, i+1, s)
		}
	}
	return items, nil
}

// scanQuoted reads one quoted string at the start of s and returns its
// unescaped value and the number of bytes consumed.
func scanQuoted(s string) (string, int, error) {
	quote := s[0]
	var b strings.Builder
	for i := 1; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			if i+1 >= len(s) {
				return "", 0, fmt.Errorf("dangling escape in %q", s)
			}
			i++
			b.WriteByte(unescape(s[i]))
		case quote:
			return b.String(), i + 1, nil
		default:
			b.WriteByte(c)
		}
	}
	return "", 0, fmt.Errorf("unterminated string in %q", s)
}

func unescape(c byte) byte {
	switch c {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	default:
		return c
	}
}

// Package marker decides which marker file, if any, an ignored directory
// should receive and writes it.
//
// Deja Dup skips any directory holding a .deja-dup-ignore file, and any
// directory holding a CACHEDIR.TAG (see https://bford.info/cachedir/). Which
// one a directory gets depends on its name: dependency and build output
// directories get .deja-dup-ignore, caches get CACHEDIR.TAG. Directories
// matching no rule are left alone.
package marker

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
)

// Marker file names understood by Deja Dup
const (
	DejaDupIgnore = ".deja-dup-ignore"
	CacheDirTag   = "CACHEDIR.TAG"
)

// Rule assigns Marker to directories whose base name matches one of
// Patterns. Patterns use gitignore syntax.
type Rule struct {
	Marker   string   `yaml:"marker"`
	Patterns []string `yaml:"patterns"`
}

// DefaultRules returns the built-in naming rules
func DefaultRules() []Rule {
	return []Rule{
		{
			Marker: DejaDupIgnore,
			Patterns: []string{
				"node_modules", "venv", ".venv", ".gradle",
				"target", "build", "out", "dist",
			},
		},
		{
			Marker:   CacheDirTag,
			Patterns: []string{"*cache*"},
		},
	}
}

// Policy is an ordered set of compiled rules. The first matching rule wins.
type Policy struct {
	rules []compiledRule
}

type compiledRule struct {
	marker  string
	matcher *gitignore.GitIgnore
}

// DefaultPolicy returns the policy built from DefaultRules
func DefaultPolicy() *Policy {
	p, err := NewPolicy(DefaultRules())
	if err != nil {
		panic(fmt.Sprintf("marker: default rules are invalid: %v", err))
	}
	return p
}

// NewPolicy compiles rules in order
func NewPolicy(rules []Rule) (*Policy, error) {
	p := &Policy{rules: make([]compiledRule, 0, len(rules))}
	for i, r := range rules {
		if err := validate(r); err != nil {
			return nil, fmt.Errorf("marker: rule %d: %w", i+1, err)
		}
		p.rules = append(p.rules, compiledRule{
			marker:  r.Marker,
			matcher: gitignore.CompileIgnoreLines(r.Patterns...),
		})
	}
	return p, nil
}

func validate(r Rule) error {
	switch {
	case r.Marker == "":
		return errors.New("marker name is empty")
	case strings.ContainsRune(r.Marker, '/') || strings.ContainsRune(r.Marker, filepath.Separator):
		return fmt.Errorf("marker name %q contains a path separator", r.Marker)
	case len(r.Patterns) == 0:
		return fmt.Errorf("rule for %q has no patterns", r.Marker)
	}
	return nil
}

// MarkerFor returns the marker file name dir should receive
func (p *Policy) MarkerFor(dir string) (string, bool) {
	name := filepath.Base(dir)
	for _, r := range p.rules {
		if r.matcher.MatchesPath(name) {
			return r.marker, true
		}
	}
	return "", false
}

// MarkerNames returns every marker name the policy can write, plus the two
// standard names, without duplicates. A directory holding any of them has
// been handled before.
func (p *Policy) MarkerNames() []string {
	names := []string{DejaDupIgnore, CacheDirTag}
	seen := map[string]bool{DejaDupIgnore: true, CacheDirTag: true}
	for _, r := range p.rules {
		if !seen[r.marker] {
			seen[r.marker] = true
			names = append(names, r.marker)
		}
	}
	return names
}

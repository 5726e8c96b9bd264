package ignore

import (
	"path"
	"path/filepath"
	"strings"

	gitignore "github.com/denormal/go-gitignore"
)

// Ignored reports whether path, an absolute path below the matcher's
// directory, is ignored by its rules. isDir enables directory-only rules
// such as "build/". The matcher's own directory and paths outside it never
// match.
func (m *Matcher) Ignored(path string, isDir bool) bool {
	if m == nil || m.rules == nil {
		return false
	}

	rel, ok := relativeTo(m.dir, path)
	if !ok {
		return false
	}

	match := m.match(rel, isDir)
	if match == nil {
		return false
	}
	if !match.Ignore() {
		m.logger.Debug("ignore.Ignored: %q re-included by %s", path, m.Source())
		return false
	}
	m.logger.Debug("ignore.Ignored: %q matched by %s", path, m.Source())
	return true
}

// match asks the library about rel. A library panic counts as no match.
func (m *Matcher) match(rel string, isDir bool) (match gitignore.Match) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("PANIC recovered in gitignore library for path %q: %v", rel, r)
			match = nil
		}
	}()

	match = m.rules.Relative(rel, isDir)
	if match != nil && m.matchesOnlyParent(match.String(), rel) {
		m.logger.Debug("ignore.Ignored: %q is the parent of pattern %q, not a match", rel, match.String())
		return nil
	}
	return match
}

// matchesOnlyParent reports whether pattern has the form "X/**" and rel is
// not below anything X matches. "X/**" covers the contents of X, never X
// itself.
func (m *Matcher) matchesOnlyParent(pattern, rel string) bool {
	parent, ok := parentPattern(pattern)
	if !ok {
		return false
	}

	rules, ok := m.parents[parent]
	if !ok {
		rules = gitignore.New(strings.NewReader(parent), m.dir, func(gitignore.Error) bool { return false })
		if m.parents == nil {
			m.parents = make(map[string]gitignore.GitIgnore)
		}
		m.parents[parent] = rules
	}
	if rules == nil {
		return false
	}

	for dir := path.Dir(rel); dir != "." && dir != "/"; dir = path.Dir(dir) {
		if rules.Relative(dir, true) != nil {
			return false
		}
	}
	return true
}

// parentPattern turns "X/**" (optionally negated or anchored) into an
// anchored pattern for X
func parentPattern(pattern string) (string, bool) {
	p := strings.TrimPrefix(strings.TrimSpace(pattern), "!")
	p = strings.TrimSuffix(strings.TrimPrefix(p, "/"), "/")
	if !strings.HasSuffix(p, "/**") {
		return "", false
	}
	p = strings.TrimSuffix(p, "/**")
	if p == "" {
		return "", false
	}
	return "/" + p, true
}

// AnyIgnored reports whether any of the matchers ignores path.
func AnyIgnored(matchers []*Matcher, path string, isDir bool) bool {
	for _, m := range matchers {
		if m.Ignored(path, isDir) {
			return true
		}
	}
	return false
}

// relativeTo returns path relative to dir in slash form, if path is strictly
// below dir.
func relativeTo(dir, path string) (string, bool) {
	rel, err := filepath.Rel(dir, filepath.Clean(path))
	if err != nil || rel == "." || rel == ".." ||
		strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

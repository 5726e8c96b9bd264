package ignore

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	gitignore "github.com/denormal/go-gitignore"
	"github.com/upsuper/deja-dup-auto-ignore/internal/utils"
)

// Load builds the matcher for dir from its rule file. It returns nil and no
// error when dir has no rule file.
func Load(dir string, opts ...Option) (*Matcher, error) {
	m := newMatcher(dir, opts)
	path := m.Source()

	// a rule file we cannot even stat is treated as absent; the caller's
	// own listing of dir reports the underlying problem
	if _, err := os.Stat(path); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			m.logger.Debug("ignore.Load: Cannot stat %s: %v", path, err)
		}
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ignore: failed to read %s: %w", path, err)
	}

	m.logger.Debug("ignore.Load: Parsing rules from %s", path)
	if err := m.parse(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("ignore: invalid rules in %s: %w", path, err)
	}
	return m, nil
}

// New builds a matcher anchored at dir from rules read from r
func New(dir string, r io.Reader, opts ...Option) (*Matcher, error) {
	m := newMatcher(dir, opts)
	if err := m.parse(r); err != nil {
		return nil, fmt.Errorf("ignore: invalid rules for %s: %w", dir, err)
	}
	return m, nil
}

func newMatcher(dir string, opts []Option) *Matcher {
	m := &Matcher{
		dir:      filepath.Clean(dir),
		fileName: DefaultFileName,
		logger:   utils.NoopLogger{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// parse stops at the first error the library reports. Some malformed lines,
// such as a lone "/", make the library panic; that is reported as an error.
func (m *Matcher) parse(r io.Reader) (err error) {
	defer func() {
		if p := recover(); p != nil {
			m.logger.Debug("ignore.parse: PANIC recovered in gitignore library for %s: %v", m.Source(), p)
			err = fmt.Errorf("malformed pattern: %v", p)
		}
	}()

	var parseErr error
	rules := gitignore.New(r, m.dir, func(e gitignore.Error) bool {
		parseErr = e
		return false
	})
	if parseErr != nil {
		return parseErr
	}
	if rules == nil {
		return errors.New("no rules produced")
	}
	m.rules = rules
	return nil
}

func joinPath(dir, name string) string {
	return filepath.Join(dir, name)
}

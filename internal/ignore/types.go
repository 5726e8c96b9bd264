// Package ignore provides file/directory pattern matching for exclusion
package ignore

import (
	gitignore "github.com/denormal/go-gitignore"
	"github.com/upsuper/deja-dup-auto-ignore/internal/utils"
)

// DefaultFileName is the per-directory rule file looked up by Load
const DefaultFileName = ".gitignore"

// Matcher holds the rules of a single rule file. Paths are matched relative
// to the directory the file lives in.
type Matcher struct {
	// Parsed rules for dir
	rules gitignore.GitIgnore

	dir      string
	fileName string
	logger   utils.Logger

	// Parent patterns of "X/**" rules, compiled on first use
	parents map[string]gitignore.GitIgnore
}

// Dir returns the directory the matcher's rules are anchored to
func (m *Matcher) Dir() string {
	return m.dir
}

// Source returns the path of the rule file the matcher was loaded from
func (m *Matcher) Source() string {
	return joinPath(m.dir, m.fileName)
}

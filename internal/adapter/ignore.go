package adapter

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	m "github.com/simondoesstuff/python-case/internal/model"
)

// IgnoreMatcher reports whether a root-relative path is excluded from
// processing. The domain consumes this as an opaque predicate.
type IgnoreMatcher interface {
	Matches(rel string) bool
}

// defaultIgnorePatterns are always active, on top of whatever the project's
// .gitignore declares.
var defaultIgnorePatterns = []string{
	"__pycache__/",
	"*.pyc",
	"*.pyo",
	"*.pyd",
	".git/",
	".venv/",
	"venv/",
	".env",
	"node_modules/",
	".DS_Store",
	"*.egg-info/",
	"build/",
	"dist/",
}

// GitignoreMatcher matches paths against gitignore-style patterns.
type GitignoreMatcher struct {
	inner *ignore.GitIgnore
}

// NewGitignoreMatcher builds a matcher from the root's .gitignore (when
// present), the built-in defaults, and any extra caller patterns. A missing
// or unreadable .gitignore is not an error; the defaults still apply.
func NewGitignoreMatcher(root m.Path, extra ...string) *GitignoreMatcher {
	lines := make([]string, 0, len(defaultIgnorePatterns)+len(extra))
	lines = append(lines, defaultIgnorePatterns...)
	lines = append(lines, gitignoreLines(filepath.Join(string(root), ".gitignore"))...)
	lines = append(lines, extra...)

	return &GitignoreMatcher{inner: ignore.CompileIgnoreLines(lines...)}
}

// Matches reports whether the root-relative path is ignored.
func (g *GitignoreMatcher) Matches(rel string) bool {
	if rel == "" || rel == "." {
		return false
	}

	return g.inner.MatchesPath(rel)
}

func gitignoreLines(path string) []string {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}

	defer func() {
		_ = f.Close()
	}()

	var lines []string

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		lines = append(lines, line)
	}

	return lines
}

package domain

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/simondoesstuff/python-case/internal/adapter"
	m "github.com/simondoesstuff/python-case/internal/model"
)

// preservedFileNames are well-known configuration files whose names are fixed
// by convention and never renamed, compliant or not.
var preservedFileNames = map[string]struct{}{
	"pyproject.toml":     {},
	"setup.py":           {},
	"requirements.txt":   {},
	"README.md":          {},
	"LICENSE":            {},
	"MANIFEST.in":        {},
	"Dockerfile":         {},
	"docker-compose.yml": {},
}

// ShouldRenamePath reports whether a file or directory name needs conversion
// to match naming conventions. Dot- and dunder-prefixed names, preserved
// config filenames, and PascalCase-named .py modules (the class-module
// convention, assumed deliberate) are left alone.
func ShouldRenamePath(path m.Path, isDir bool) bool {
	name := filepath.Base(string(path))

	if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "__") {
		return false
	}

	if _, ok := preservedFileNames[name]; ok {
		return false
	}

	if isDir {
		return name != ToSnakeCase(name)
	}

	if filepath.Ext(name) != ".py" {
		return false
	}

	stem := strings.TrimSuffix(name, ".py")

	return stem != ToSnakeCase(stem) && !IsPascalCase(stem)
}

// NewPathFor returns the convention-compliant path for a file or directory.
func NewPathFor(path m.Path, isDir bool) m.Path {
	dir := filepath.Dir(string(path))
	name := filepath.Base(string(path))

	if !isDir && filepath.Ext(name) == ".py" {
		stem := strings.TrimSuffix(name, ".py")
		if IsPascalCase(stem) {
			return path
		}

		return m.Path(filepath.Join(dir, ToSnakeCase(stem)+".py"))
	}

	return m.Path(filepath.Join(dir, ToSnakeCase(name)))
}

// Planner decides which file and directory names must change to match the
// convention. Planning is read-only; execution happens separately and assumes
// exclusive access to the tree in between.
type Planner struct {
	fs adapter.SourceFSAdapter
}

// NewPlanner creates a Planner over the given filesystem.
func NewPlanner(fs adapter.SourceFSAdapter) *Planner {
	return &Planner{fs: fs}
}

// Plan walks the tree under root and returns the renames needed, ordered
// deepest-path-first so executing them in order never invalidates a
// not-yet-processed ancestor path. Ignored paths are skipped, and a directory
// is only planned when it transitively contains at least one non-ignored
// Python file.
func (p *Planner) Plan(root m.Path, ignorer adapter.IgnoreMatcher) ([]m.RenameEntry, error) {
	type candidate struct {
		path  m.Path
		isDir bool
		depth int
	}

	var candidates []candidate

	// Directories that transitively contain a relevant Python file.
	hasPython := make(map[string]struct{})

	err := p.fs.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel, relErr := p.fs.RelPath(root, m.Path(path))
		if relErr != nil {
			return relErr
		}

		if string(rel) == "." {
			return nil
		}

		if ignorer != nil && ignorer.Matches(string(rel)) {
			if info.IsDir() {
				return filepath.SkipDir
			}

			return nil
		}

		if !info.IsDir() && filepath.Ext(path) == ".py" {
			for dir := filepath.Dir(path); len(dir) >= len(string(root)); dir = filepath.Dir(dir) {
				hasPython[dir] = struct{}{}

				if dir == filepath.Dir(dir) {
					break
				}
			}
		}

		if ShouldRenamePath(m.Path(path), info.IsDir()) {
			candidates = append(candidates, candidate{
				path:  m.Path(path),
				isDir: info.IsDir(),
				depth: strings.Count(string(rel), string(filepath.Separator)),
			})
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("planning renames under %s: %w", root, err)
	}

	// Deepest first; ties broken by path for a deterministic plan.
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].depth != candidates[j].depth {
			return candidates[i].depth > candidates[j].depth
		}

		return candidates[i].path < candidates[j].path
	})

	var plan []m.RenameEntry

	for _, c := range candidates {
		if c.isDir {
			if _, ok := hasPython[string(c.path)]; !ok {
				continue
			}
		}

		newPath := NewPathFor(c.path, c.isDir)
		if newPath == c.path {
			continue
		}

		plan = append(plan, m.RenameEntry{OldPath: c.path, NewPath: newPath})
	}

	return plan, nil
}

// Execute applies the plan one entry at a time. A failing entry is reported
// and does not abort the remaining entries. When apply is false no filesystem
// mutation happens; the reports describe what would be done.
func (p *Planner) Execute(plan []m.RenameEntry, apply bool) []m.RenameReport {
	reports := make([]m.RenameReport, 0, len(plan))

	for _, entry := range plan {
		report := m.RenameReport{Entry: entry}

		if apply {
			if err := p.fs.Rename(entry.OldPath, entry.NewPath); err != nil {
				report.Err = err.Error()
			} else {
				report.Applied = true
			}
		}

		reports = append(reports, report)
	}

	return reports
}

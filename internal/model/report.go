package model

import "time"

// RewriteStatus classifies the outcome of rewriting one source file.
type RewriteStatus string

const (
	// StatusRewritten indicates the file content changed (or would change in dry-run).
	StatusRewritten RewriteStatus = "rewritten"
	// StatusUnchanged indicates the file was already compliant.
	StatusUnchanged RewriteStatus = "unchanged"
	// StatusSkipped indicates the file was excluded by ignore patterns.
	StatusSkipped RewriteStatus = "skipped"
	// StatusFailed indicates the file could not be processed (parse or I/O error).
	StatusFailed RewriteStatus = "failed"
)

// FileReport records the outcome of rewriting a single source file.
type FileReport struct {
	Path   Path          `yaml:"path"`
	Status RewriteStatus `yaml:"status"`
	// Diff holds a unified diff of the pending change. Populated in dry-run only.
	Diff string `yaml:"diff,omitempty"`
	Err  string `yaml:"error,omitempty"`
}

// RenameReport records the outcome of one path rename plan entry.
type RenameReport struct {
	Entry   RenameEntry `yaml:"entry"`
	Applied bool        `yaml:"applied"`
	Err     string      `yaml:"error,omitempty"`
}

// RunSummary accumulates counts over a whole directory run. Batch operations
// continue past per-unit failures and report these totals at the end.
type RunSummary struct {
	Files          int `yaml:"files"`
	Rewritten      int `yaml:"rewritten"`
	Unchanged      int `yaml:"unchanged"`
	Skipped        int `yaml:"skipped"`
	Failed         int `yaml:"failed"`
	RenamesPlanned int `yaml:"renames_planned"`
	RenamesApplied int `yaml:"renames_applied"`
	RenamesFailed  int `yaml:"renames_failed"`
}

// AddFile folds one file outcome into the summary.
func (s *RunSummary) AddFile(r FileReport) {
	s.Files++

	switch r.Status {
	case StatusRewritten:
		s.Rewritten++
	case StatusUnchanged:
		s.Unchanged++
	case StatusSkipped:
		s.Skipped++
	case StatusFailed:
		s.Failed++
	}
}

// AddRename folds one rename outcome into the summary.
func (s *RunSummary) AddRename(r RenameReport) {
	s.RenamesPlanned++

	if r.Err != "" {
		s.RenamesFailed++
		return
	}

	if r.Applied {
		s.RenamesApplied++
	}
}

// RunReport is the persisted record of one run, stored by the report store.
type RunReport struct {
	StartedAt time.Time      `yaml:"started_at"`
	Root      Path           `yaml:"root"`
	DryRun    bool           `yaml:"dry_run"`
	Summary   RunSummary     `yaml:"summary"`
	Files     []FileReport   `yaml:"files,omitempty"`
	Renames   []RenameReport `yaml:"renames,omitempty"`
}

// Package controller provides output adapters for displaying run progress
// and results.
package controller

import (
	"os"

	"golang.org/x/term"

	m "github.com/simondoesstuff/python-case/internal/model"
)

// UI renders run progress, results, and rename plans. Implementations can use
// different output methods (plain text, TUI). The progress methods satisfy
// the workflow's Reporter and may be called from concurrent workers.
type UI interface {
	RunStarted(total int)
	FileReported(r m.FileReport)
	RenameReported(r m.RenameReport)
	SourceEmitted(src []byte)
	SummaryReported(s m.RunSummary)
	DisplayRenamePlan(reports []m.RenameReport, applied bool)
	DisplayReport(report m.RunReport)
}

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

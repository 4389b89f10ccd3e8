package controller

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "github.com/simondoesstuff/python-case/internal/model"
)

var (
	rewrittenStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	skippedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	unchangedStyle = lipgloss.NewStyle().Faint(true)
	diffAddStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	diffDelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	diffHunkStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
)

// SimpleUI implements UI using cobra Command's output writer. A mutex
// serializes prints from concurrent workers.
type SimpleUI struct {
	cmd     *cobra.Command
	verbose bool

	mu sync.Mutex
}

// NewSimpleUI creates a new SimpleUI. With verbose set, unchanged files are
// listed too; otherwise only files something happened to are printed.
func NewSimpleUI(cmd *cobra.Command, verbose bool) *SimpleUI {
	return &SimpleUI{cmd: cmd, verbose: verbose}
}

// RunStarted announces how many files the run will process.
func (s *SimpleUI) RunStarted(total int) {
	s.printf("Processing %d Python file(s)\n", total)
}

// FileReported prints the outcome of one file.
func (s *SimpleUI) FileReported(r m.FileReport) {
	if r.Status == m.StatusUnchanged && !s.verbose {
		return
	}

	line := fmt.Sprintf("%s %s", formatStatus(r.Status), r.Path)
	if r.Err != "" {
		line += ": " + r.Err
	}

	s.printf("%s\n", line)

	if r.Diff != "" {
		s.printf("%s\n", formatDiff(r.Diff))
	}
}

// RenameReported prints the outcome of one path rename.
func (s *SimpleUI) RenameReported(r m.RenameReport) {
	verb := "would rename"
	if r.Applied {
		verb = "renamed"
	}

	if r.Err != "" {
		s.printf("%s rename %s: %s\n", formatStatus(m.StatusFailed), r.Entry.OldPath, r.Err)
		return
	}

	s.printf("%s %s -> %s\n", verb, r.Entry.OldPath, r.Entry.NewPath)
}

// SourceEmitted writes rewritten source verbatim, for piping.
func (s *SimpleUI) SourceEmitted(src []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, _ = s.cmd.OutOrStdout().Write(src)
}

// SummaryReported prints the end-of-run summary table.
func (s *SimpleUI) SummaryReported(sum m.RunSummary) {
	s.printf("\n%s", renderSummaryTable(sum))
}

// DisplayRenamePlan prints a rename plan, one entry per line.
func (s *SimpleUI) DisplayRenamePlan(reports []m.RenameReport, applied bool) {
	if len(reports) == 0 {
		s.printf("All file and directory names already follow snake_case.\n")
		return
	}

	for _, r := range reports {
		s.RenameReported(r)
	}

	if !applied {
		s.printf("\n%d rename(s) planned. Re-run with --apply to perform them.\n", len(reports))
	}
}

// DisplayReport prints a previously saved run report.
func (s *SimpleUI) DisplayReport(report m.RunReport) {
	mode := "write"
	if report.DryRun {
		mode = "dry-run"
	}

	s.printf("Run of %s (%s) started %s\n\n",
		report.Root, mode, report.StartedAt.Format("2006-01-02 15:04:05"))

	for _, r := range report.Renames {
		s.RenameReported(r)
	}

	for _, f := range report.Files {
		s.FileReported(f)
	}

	s.printf("\n%s", renderSummaryTable(report.Summary))
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

func renderSummaryTable(sum m.RunSummary) string {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Rewritten", "Unchanged", "Skipped", "Failed", "Renamed"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER,
	})
	table.Append([]string{
		fmt.Sprintf("%d", sum.Rewritten),
		fmt.Sprintf("%d", sum.Unchanged),
		fmt.Sprintf("%d", sum.Skipped),
		fmt.Sprintf("%d", sum.Failed),
		fmt.Sprintf("%d/%d", sum.RenamesApplied, sum.RenamesPlanned),
	})
	table.Render()

	return buf.String()
}

func formatStatus(status m.RewriteStatus) string {
	switch status {
	case m.StatusRewritten:
		return rewrittenStyle.Render("rewritten")
	case m.StatusUnchanged:
		return unchangedStyle.Render("unchanged")
	case m.StatusSkipped:
		return skippedStyle.Render("skipped")
	case m.StatusFailed:
		return failedStyle.Render("failed")
	}

	return string(status)
}

func formatDiff(diff string) string {
	lines := strings.Split(strings.TrimRight(diff, "\n"), "\n")

	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "+"):
			lines[i] = diffAddStyle.Render(line)
		case strings.HasPrefix(line, "-"):
			lines[i] = diffDelStyle.Render(line)
		case strings.HasPrefix(line, "@@"):
			lines[i] = diffHunkStyle.Render(line)
		}
	}

	return strings.Join(lines, "\n")
}

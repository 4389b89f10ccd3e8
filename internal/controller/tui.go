package controller

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	m "github.com/simondoesstuff/python-case/internal/model"
)

// TUI implements UI using Bubble Tea. Results are buffered during the run and
// presented in a scrollable view at the end; short runs print straight
// through without entering the alternate screen.
type TUI struct {
	output io.Writer

	mu      sync.Mutex
	total   int
	files   []m.FileReport
	renames []m.RenameReport
}

// NewTUI creates a new TUI writing to output.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// RunStarted records how many files the run will process.
func (p *TUI) RunStarted(total int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.total = total
}

// FileReported buffers one file outcome for the final view.
func (p *TUI) FileReported(r m.FileReport) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.files = append(p.files, r)
}

// RenameReported buffers one rename outcome for the final view.
func (p *TUI) RenameReported(r m.RenameReport) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.renames = append(p.renames, r)
}

// SourceEmitted writes rewritten source verbatim.
func (p *TUI) SourceEmitted(src []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()

	_, _ = p.output.Write(src)
}

// SummaryReported presents the buffered results and the summary.
func (p *TUI) SummaryReported(sum m.RunSummary) {
	p.mu.Lock()
	files := p.files
	renames := p.renames
	p.mu.Unlock()

	p.present(newResultsModel(files, renames, sum))
}

// DisplayRenamePlan presents a rename plan.
func (p *TUI) DisplayRenamePlan(reports []m.RenameReport, applied bool) {
	sum := m.RunSummary{}
	for _, r := range reports {
		sum.AddRename(r)
	}

	model := newResultsModel(nil, reports, sum)
	model.planOnly = true
	model.planApplied = applied

	p.present(model)
}

// DisplayReport presents a previously saved run report.
func (p *TUI) DisplayReport(report m.RunReport) {
	p.present(newResultsModel(report.Files, report.Renames, report.Summary))
}

func (p *TUI) present(model resultsModel) {
	if f, ok := p.output.(*os.File); ok {
		if width, height, err := term.GetSize(int(f.Fd())); err == nil {
			model.width = width
			model.height = height
		}
	}

	if !model.needsPagination() {
		_, _ = fmt.Fprint(p.output, model.View())
		return
	}

	program := tea.NewProgram(model, tea.WithOutput(p.output), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		// Degrade to a plain dump rather than losing the results.
		_, _ = fmt.Fprint(p.output, model.View())
	}
}

// resultsModel is the Bubble Tea model for browsing run results.
type resultsModel struct {
	files   []m.FileReport
	renames []m.RenameReport
	summary m.RunSummary

	planOnly    bool
	planApplied bool

	bar    progress.Model
	width  int
	height int
	offset int
}

func newResultsModel(files []m.FileReport, renames []m.RenameReport, sum m.RunSummary) resultsModel {
	return resultsModel{
		files:   files,
		renames: renames,
		summary: sum,
		bar:     progress.New(progress.WithDefaultGradient()),
	}
}

func (rm resultsModel) Init() tea.Cmd {
	return nil
}

func (rm resultsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		rm.width = msg.Width
		rm.height = msg.Height

		return rm, nil

	case tea.KeyMsg:
		return rm.handleKeyPress(msg)
	}

	return rm, nil
}

func (rm resultsModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	//nolint:exhaustive // We only handle specific navigation keys
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return rm, tea.Quit
	default:
	}

	switch msg.String() {
	case "q":
		return rm, tea.Quit

	case "down", "j":
		rm.offset = min(rm.offset+1, rm.maxOffset())

	case "up", "k":
		rm.offset = max(rm.offset-1, 0)

	case "g", "home":
		rm.offset = 0

	case "G", "end":
		rm.offset = rm.maxOffset()

	case "d", "pgdown":
		rm.offset = min(rm.offset+rm.linesPerPage(), rm.maxOffset())

	case "u", "pgup":
		rm.offset = max(rm.offset-rm.linesPerPage(), 0)
	}

	return rm, nil
}

func (rm resultsModel) linesPerPage() int {
	if rm.height == 0 {
		return 10
	}

	// Header, summary, progress bar, and footer take a fixed band.
	available := rm.height - 9
	if available < 1 {
		return 1
	}

	return available
}

func (rm resultsModel) contentLines() []string {
	var lines []string

	for _, r := range rm.renames {
		verb := "would rename"
		if r.Applied {
			verb = "renamed"
		}

		if r.Err != "" {
			lines = append(lines, fmt.Sprintf("  %s rename %s: %s",
				formatStatus(m.StatusFailed), r.Entry.OldPath, r.Err))

			continue
		}

		lines = append(lines, fmt.Sprintf("  %s %s -> %s", verb, r.Entry.OldPath, r.Entry.NewPath))
	}

	for _, f := range rm.files {
		line := fmt.Sprintf("  %s %s", formatStatus(f.Status), f.Path)
		if f.Err != "" {
			line += ": " + f.Err
		}

		lines = append(lines, line)

		if f.Diff != "" {
			lines = append(lines, strings.Split(formatDiff(f.Diff), "\n")...)
		}
	}

	return lines
}

func (rm resultsModel) maxOffset() int {
	return max(len(rm.contentLines())-rm.linesPerPage(), 0)
}

func (rm resultsModel) needsPagination() bool {
	return rm.height > 0 && len(rm.contentLines()) > rm.linesPerPage()
}

func (rm resultsModel) View() string {
	var b strings.Builder

	b.WriteString("python-case\n\n")

	lines := rm.contentLines()
	if len(lines) == 0 {
		b.WriteString("  Nothing to do.\n")

		if rm.planOnly && !rm.planApplied {
			b.WriteString("  All file and directory names already follow snake_case.\n")
		}

		return b.String()
	}

	start := min(rm.offset, max(len(lines)-1, 0))

	end := len(lines)
	if rm.needsPagination() {
		end = min(start+rm.linesPerPage(), len(lines))
	}

	for _, line := range lines[start:end] {
		b.WriteString(line + "\n")
	}

	b.WriteString("\n")
	rm.writeSummary(&b)

	if rm.needsPagination() {
		fmt.Fprintf(&b, "\n  Lines %d-%d of %d\n", start+1, end, len(lines))
		b.WriteString("  ↑/k: up | ↓/j: down | g: top | G: bottom | q: quit\n")
	}

	return b.String()
}

func (rm resultsModel) writeSummary(b *strings.Builder) {
	if rm.planOnly {
		verb := "planned"
		if rm.planApplied {
			verb = "applied"
		}

		fmt.Fprintf(b, "  %d rename(s) %s\n", len(rm.renames), verb)

		return
	}

	total := rm.summary.Rewritten + rm.summary.Unchanged + rm.summary.Skipped + rm.summary.Failed

	fraction := 0.0
	if total > 0 {
		fraction = float64(rm.summary.Rewritten+rm.summary.Unchanged) / float64(total)
	}

	fmt.Fprintf(b, "  %s\n", rm.bar.ViewAs(fraction))
	fmt.Fprintf(b, "  rewritten: %d | unchanged: %d | skipped: %d | failed: %d | renamed: %d/%d\n",
		rm.summary.Rewritten, rm.summary.Unchanged, rm.summary.Skipped,
		rm.summary.Failed, rm.summary.RenamesApplied, rm.summary.RenamesPlanned)
}

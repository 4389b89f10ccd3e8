package domain

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/sync/errgroup"

	"github.com/simondoesstuff/python-case/internal/adapter"
	m "github.com/simondoesstuff/python-case/internal/model"
)

// Reporter receives progress and results while a run executes. Calls may
// arrive from concurrent workers; implementations must serialize their own
// output.
type Reporter interface {
	RunStarted(total int)
	FileReported(r m.FileReport)
	RenameReported(r m.RenameReport)
	SourceEmitted(src []byte)
	SummaryReported(s m.RunSummary)
}

// IgnoreFactory builds the ignore predicate for a scanned root.
type IgnoreFactory func(root m.Path, extra ...string) adapter.IgnoreMatcher

// ResolverFactory builds the module-origin resolver for a scanned root.
type ResolverFactory func(root m.Path, externals, sitePackages []string) ModuleResolver

// RunArgs carries the options of one run.
type RunArgs struct {
	Paths           []m.Path
	DryRun          bool
	Stdout          bool
	RenameFiles     bool
	Parallel        int
	Exclude         []string
	ExternalModules []string
	SitePackages    []string
	ReportsDir      m.Path
}

// Workflow drives whole runs: path rename planning, file discovery, parallel
// rewriting, and reporting.
type Workflow interface {
	Run(ctx context.Context, args RunArgs) (m.RunReport, error)
	PlanPaths(root m.Path, exclude []string) ([]m.RenameEntry, error)
	ExecutePaths(plan []m.RenameEntry, apply bool) []m.RenameReport
}

// WorkflowDeps wires the workflow's collaborators.
type WorkflowDeps struct {
	Parser   adapter.PythonFileAdapter
	FS       adapter.SourceFSAdapter
	Store    adapter.ReportStore
	Reporter Reporter
	Ignore   IgnoreFactory
	Resolver ResolverFactory
}

type workflow struct {
	deps WorkflowDeps

	mu      sync.Mutex
	summary m.RunSummary
	files   []m.FileReport
	renames []m.RenameReport
}

// NewWorkflow creates a Workflow from its collaborators.
func NewWorkflow(deps WorkflowDeps) Workflow {
	return &workflow{deps: deps}
}

// Run processes every requested path. Per-file failures never abort the
// batch; they are reported, counted, and reflected in the final summary. A
// file is only written after its full rewrite succeeded, so no partial
// content ever reaches disk.
func (w *workflow) Run(ctx context.Context, args RunArgs) (m.RunReport, error) {
	if err := w.validate(args); err != nil {
		return m.RunReport{}, err
	}

	w.reset()

	paths := args.Paths
	if len(paths) == 0 {
		paths = []m.Path{"."}
	}

	started := time.Now()

	for _, root := range paths {
		if err := ctx.Err(); err != nil {
			return m.RunReport{}, err
		}

		info, err := w.deps.FS.FileInfo(root)
		if err != nil {
			return m.RunReport{}, fmt.Errorf("path %s: %w", root, err)
		}

		if info.IsDir() {
			if args.Stdout {
				return m.RunReport{}, fmt.Errorf("stdout output is only supported for single files, %s is a directory", root)
			}

			if err := w.runDirectory(ctx, root, args); err != nil {
				return m.RunReport{}, err
			}

			continue
		}

		w.runSingleFile(ctx, root, args)
	}

	w.mu.Lock()
	sort.Slice(w.files, func(i, j int) bool { return w.files[i].Path < w.files[j].Path })

	report := m.RunReport{
		StartedAt: started,
		Root:      paths[0],
		DryRun:    args.DryRun,
		Summary:   w.summary,
		Files:     w.files,
		Renames:   w.renames,
	}
	w.mu.Unlock()

	if !args.Stdout {
		w.deps.Reporter.SummaryReported(report.Summary)
		w.persist(args, report)
	}

	return report, nil
}

// PlanPaths returns the path rename plan for root without touching the tree.
func (w *workflow) PlanPaths(root m.Path, exclude []string) ([]m.RenameEntry, error) {
	return NewPlanner(w.deps.FS).Plan(root, w.deps.Ignore(root, exclude...))
}

// ExecutePaths applies (or previews) a rename plan.
func (w *workflow) ExecutePaths(plan []m.RenameEntry, apply bool) []m.RenameReport {
	return NewPlanner(w.deps.FS).Execute(plan, apply)
}

func (w *workflow) validate(args RunArgs) error {
	if w.deps.Parser == nil || w.deps.FS == nil || w.deps.Reporter == nil ||
		w.deps.Ignore == nil || w.deps.Resolver == nil {
		return fmt.Errorf("workflow missing collaborators")
	}

	if args.Stdout && len(args.Paths) > 1 {
		return fmt.Errorf("stdout output is only supported for single files")
	}

	return nil
}

func (w *workflow) reset() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.summary = m.RunSummary{}
	w.files = nil
	w.renames = nil
}

func (w *workflow) engineFor(root m.Path, args RunArgs) *Engine {
	projectRoot, err := w.deps.FS.FindProjectRoot(root)
	if err != nil {
		projectRoot = root
	}

	resolver := w.deps.Resolver(projectRoot, args.ExternalModules, args.SitePackages)

	return NewEngine(w.deps.Parser, resolver)
}

func (w *workflow) runDirectory(ctx context.Context, root m.Path, args RunArgs) error {
	ignorer := w.deps.Ignore(root, args.Exclude...)

	if args.RenameFiles {
		root = w.renamePaths(root, ignorer, args)
		// Patterns are relative to the root; rebuild after renames moved it.
		ignorer = w.deps.Ignore(root, args.Exclude...)
	}

	files, err := w.discover(root, ignorer)
	if err != nil {
		return err
	}

	w.deps.Reporter.RunStarted(len(files))
	slog.Info("rewriting files", "root", string(root), "count", len(files), "dry_run", args.DryRun)

	engine := w.engineFor(root, args)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(args.Parallel, 1))

	for _, file := range files {
		file := file
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			w.report(w.rewriteFile(gctx, engine, file, args))

			return nil
		})
	}

	return g.Wait()
}

// renamePaths plans and executes path renames ahead of content rewriting and
// returns the (possibly renamed) root.
func (w *workflow) renamePaths(root m.Path, ignorer adapter.IgnoreMatcher, args RunArgs) m.Path {
	planner := NewPlanner(w.deps.FS)

	plan, err := planner.Plan(root, ignorer)
	if err != nil {
		slog.Warn("path rename planning failed", "root", string(root), "error", err)
		return root
	}

	for _, report := range planner.Execute(plan, !args.DryRun) {
		w.mu.Lock()
		w.renames = append(w.renames, report)
		w.summary.AddRename(report)
		w.mu.Unlock()

		w.deps.Reporter.RenameReported(report)

		if report.Applied && report.Entry.OldPath == root {
			root = report.Entry.NewPath
		}
	}

	return root
}

// discover collects the non-ignored Python files under root, sorted for a
// deterministic processing order.
func (w *workflow) discover(root m.Path, ignorer adapter.IgnoreMatcher) ([]m.SourceFile, error) {
	var files []m.SourceFile

	err := w.deps.FS.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel, relErr := w.deps.FS.RelPath(root, m.Path(path))
		if relErr != nil {
			return relErr
		}

		if ignorer.Matches(string(rel)) {
			if info.IsDir() {
				return filepath.SkipDir
			}

			return nil
		}

		if info.IsDir() || filepath.Ext(path) != ".py" || strings.HasPrefix(filepath.Base(path), ".") {
			return nil
		}

		files = append(files, m.SourceFile{Path: m.Path(path), ShortPath: rel})

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })

	return files, nil
}

func (w *workflow) runSingleFile(ctx context.Context, path m.Path, args RunArgs) {
	if filepath.Ext(string(path)) != ".py" {
		w.report(m.FileReport{Path: path, Status: m.StatusFailed, Err: m.ErrNotPythonFile.Error()})
		return
	}

	parent := m.Path(filepath.Dir(string(path)))

	ignorer := w.deps.Ignore(parent, args.Exclude...)
	if rel, err := w.deps.FS.RelPath(parent, path); err == nil && ignorer.Matches(string(rel)) {
		w.report(m.FileReport{Path: path, Status: m.StatusSkipped})
		return
	}

	engine := w.engineFor(parent, args)

	report := w.rewriteFile(ctx, engine, m.SourceFile{Path: path, ShortPath: path}, args)
	w.report(report)
}

// rewriteFile runs the engine over one source unit and decides what to do
// with the result. The rewritten text is only persisted after the full
// rewrite succeeded.
func (w *workflow) rewriteFile(ctx context.Context, engine *Engine, file m.SourceFile, args RunArgs) m.FileReport {
	report := m.FileReport{Path: file.ShortPath}

	original, err := w.deps.FS.ReadFile(file.Path)
	if err != nil {
		report.Status = m.StatusFailed
		report.Err = err.Error()

		return report
	}

	rewritten, err := engine.Rewrite(ctx, original)
	if err != nil {
		report.Status = m.StatusFailed
		report.Err = err.Error()
		slog.Warn("rewrite failed", "path", string(file.Path), "error", err)

		return report
	}

	if args.Stdout {
		w.deps.Reporter.SourceEmitted(rewritten)
		report.Status = m.StatusUnchanged

		return report
	}

	if string(original) == string(rewritten) {
		report.Status = m.StatusUnchanged
		return report
	}

	report.Status = m.StatusRewritten

	if args.DryRun {
		report.Diff = unifiedDiff(file.ShortPath, original, rewritten)
		return report
	}

	perm := os.FileMode(0o644)
	if info, err := w.deps.FS.FileInfo(file.Path); err == nil {
		perm = info.Mode().Perm()
	}

	if err := w.deps.FS.WriteFile(file.Path, rewritten, perm); err != nil {
		report.Status = m.StatusFailed
		report.Err = err.Error()
	}

	return report
}

func (w *workflow) report(r m.FileReport) {
	w.mu.Lock()
	w.files = append(w.files, r)
	w.summary.AddFile(r)
	w.mu.Unlock()

	w.deps.Reporter.FileReported(r)
}

func (w *workflow) persist(args RunArgs, report m.RunReport) {
	if args.ReportsDir == "" || w.deps.Store == nil {
		return
	}

	path, err := w.deps.Store.Save(args.ReportsDir, report)
	if err != nil {
		slog.Warn("saving run report failed", "error", err)
		return
	}

	slog.Info("run report saved", "path", string(path))
}

func unifiedDiff(path m.Path, original, rewritten []byte) string {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(original)),
		B:        difflib.SplitLines(string(rewritten)),
		FromFile: string(path) + " (original)",
		ToFile:   string(path) + " (rewritten)",
		Context:  3,
	})
	if err != nil {
		return ""
	}

	return diff
}

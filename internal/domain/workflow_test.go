package domain

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/simondoesstuff/python-case/internal/adapter"
	m "github.com/simondoesstuff/python-case/internal/model"
)

// stubReporter records reporter calls for assertions.
type stubReporter struct {
	mu        sync.Mutex
	total     int
	files     []m.FileReport
	renames   []m.RenameReport
	emitted   []byte
	summaries []m.RunSummary
}

func (r *stubReporter) RunStarted(total int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.total = total
}

func (r *stubReporter) FileReported(report m.FileReport) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.files = append(r.files, report)
}

func (r *stubReporter) RenameReported(report m.RenameReport) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.renames = append(r.renames, report)
}

func (r *stubReporter) SourceEmitted(src []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.emitted = append(r.emitted, src...)
}

func (r *stubReporter) SummaryReported(s m.RunSummary) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.summaries = append(r.summaries, s)
}

func newTestWorkflow(rep *stubReporter) Workflow {
	return NewWorkflow(WorkflowDeps{
		Parser:   adapter.NewTreeSitterPythonAdapter(),
		FS:       adapter.NewLocalSourceFSAdapter(),
		Store:    adapter.NewReportStore(),
		Reporter: rep,
		Ignore: func(root m.Path, extra ...string) adapter.IgnoreMatcher {
			return adapter.NewGitignoreMatcher(root, extra...)
		},
		Resolver: func(root m.Path, externals, sitePackages []string) ModuleResolver {
			return adapter.NewLocalModuleResolver(root,
				adapter.WithExternalModules(externals),
				adapter.WithSitePackages(sitePackages),
			)
		},
	})
}

func TestWorkflowRunRewritesDirectory(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "myScript.py"), "myValue = 1\n")
	writeFile(t, filepath.Join(root, "compliant.py"), "value = 1\n")

	rep := &stubReporter{}

	report, err := newTestWorkflow(rep).Run(context.Background(), RunArgs{
		Paths:    []m.Path{m.Path(root)},
		Parallel: 2,
	})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if rep.total != 2 {
		t.Errorf("expected 2 files announced, got %d", rep.total)
	}

	if report.Summary.Rewritten != 1 || report.Summary.Unchanged != 1 {
		t.Errorf("unexpected summary: %+v", report.Summary)
	}

	data, err := os.ReadFile(filepath.Join(root, "myScript.py"))
	if err != nil {
		t.Fatalf("read rewritten file: %v", err)
	}

	if string(data) != "my_value = 1\n" {
		t.Errorf("expected file rewritten in place, got %q", data)
	}
}

func TestWorkflowRunDryRun(t *testing.T) {
	root := t.TempDir()
	original := "myValue = 1\n"
	writeFile(t, filepath.Join(root, "myScript.py"), original)

	rep := &stubReporter{}

	report, err := newTestWorkflow(rep).Run(context.Background(), RunArgs{
		Paths:  []m.Path{m.Path(root)},
		DryRun: true,
	})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	data, _ := os.ReadFile(filepath.Join(root, "myScript.py"))
	if string(data) != original {
		t.Errorf("dry run must not modify files, got %q", data)
	}

	if len(report.Files) != 1 || report.Files[0].Status != m.StatusRewritten {
		t.Fatalf("unexpected file reports: %+v", report.Files)
	}

	diff := report.Files[0].Diff
	if !strings.Contains(diff, "-myValue = 1") || !strings.Contains(diff, "+my_value = 1") {
		t.Errorf("expected unified diff with the pending change, got:\n%s", diff)
	}
}

func TestWorkflowRunContinuesPastParseFailure(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "broken.py"), "def broken(:\n")
	writeFile(t, filepath.Join(root, "goodFile.py"), "myValue = 1\n")

	rep := &stubReporter{}

	report, err := newTestWorkflow(rep).Run(context.Background(), RunArgs{
		Paths: []m.Path{m.Path(root)},
	})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if report.Summary.Failed != 1 || report.Summary.Rewritten != 1 {
		t.Errorf("expected one failure and one rewrite, got %+v", report.Summary)
	}

	data, _ := os.ReadFile(filepath.Join(root, "good_file.py"))
	if data != nil {
		t.Errorf("run must not rename files without the rename flag")
	}
}

func TestWorkflowRunRenameFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "myDir", "myModule.py"), "myValue = 1\n")

	rep := &stubReporter{}

	report, err := newTestWorkflow(rep).Run(context.Background(), RunArgs{
		Paths:       []m.Path{m.Path(root)},
		RenameFiles: true,
	})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if report.Summary.RenamesApplied != 2 {
		t.Errorf("expected 2 renames applied, got %+v", report.Summary)
	}

	renamed := filepath.Join(root, "my_dir", "my_module.py")

	data, err := os.ReadFile(renamed)
	if err != nil {
		t.Fatalf("expected renamed and rewritten file at %s: %v", renamed, err)
	}

	if string(data) != "my_value = 1\n" {
		t.Errorf("expected content rewritten after rename, got %q", data)
	}
}

func TestWorkflowRunSingleFileStdout(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "myScript.py")
	original := "myValue = 1\n"
	writeFile(t, path, original)

	rep := &stubReporter{}

	_, err := newTestWorkflow(rep).Run(context.Background(), RunArgs{
		Paths:  []m.Path{m.Path(path)},
		Stdout: true,
	})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if string(rep.emitted) != "my_value = 1\n" {
		t.Errorf("expected rewritten source emitted, got %q", rep.emitted)
	}

	data, _ := os.ReadFile(path)
	if string(data) != original {
		t.Errorf("stdout mode must not modify the file, got %q", data)
	}
}

func TestWorkflowRunRejectsStdoutForDirectory(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.py"), "x = 1\n")

	rep := &stubReporter{}

	_, err := newTestWorkflow(rep).Run(context.Background(), RunArgs{
		Paths:  []m.Path{m.Path(root)},
		Stdout: true,
	})
	if err == nil {
		t.Fatalf("expected error for stdout over a directory")
	}
}

func TestWorkflowRunNonPythonFile(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "notes.txt")
	writeFile(t, path, "hello\n")

	rep := &stubReporter{}

	report, err := newTestWorkflow(rep).Run(context.Background(), RunArgs{
		Paths: []m.Path{m.Path(path)},
	})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if report.Summary.Failed != 1 {
		t.Errorf("expected non-Python file reported as failed, got %+v", report.Summary)
	}
}

func TestWorkflowRunPersistsReport(t *testing.T) {
	root := t.TempDir()
	reports := filepath.Join(t.TempDir(), "reports")
	writeFile(t, filepath.Join(root, "myScript.py"), "myValue = 1\n")

	rep := &stubReporter{}

	_, err := newTestWorkflow(rep).Run(context.Background(), RunArgs{
		Paths:      []m.Path{m.Path(root)},
		ReportsDir: m.Path(reports),
	})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	loaded, err := adapter.NewReportStore().LoadLatest(m.Path(reports))
	if err != nil {
		t.Fatalf("LoadLatest error: %v", err)
	}

	if loaded.Summary.Rewritten != 1 {
		t.Errorf("expected persisted summary, got %+v", loaded.Summary)
	}
}

func TestWorkflowRunSkipsIgnoredDirectories(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "venv", "libFile.py"), "myValue = 1\n")
	writeFile(t, filepath.Join(root, "appFile.py"), "myValue = 1\n")

	rep := &stubReporter{}

	report, err := newTestWorkflow(rep).Run(context.Background(), RunArgs{
		Paths: []m.Path{m.Path(root)},
	})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if report.Summary.Files != 1 {
		t.Errorf("expected only the non-ignored file processed, got %+v", report.Summary)
	}

	data, _ := os.ReadFile(filepath.Join(root, "venv", "libFile.py"))
	if string(data) != "myValue = 1\n" {
		t.Errorf("ignored file must stay untouched, got %q", data)
	}
}

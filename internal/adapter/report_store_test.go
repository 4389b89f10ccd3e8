package adapter

import (
	"testing"
	"time"

	m "github.com/simondoesstuff/python-case/internal/model"
)

func TestYAMLReportStore_SaveAndLoadLatest(t *testing.T) {
	store := NewReportStore()
	dir := m.Path(t.TempDir())

	first := m.RunReport{
		StartedAt: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		Root:      "proj",
		Summary:   m.RunSummary{Files: 1, Rewritten: 1},
	}
	second := m.RunReport{
		StartedAt: time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC),
		Root:      "proj",
		DryRun:    true,
		Summary:   m.RunSummary{Files: 3, Unchanged: 3},
		Files: []m.FileReport{
			{Path: "a.py", Status: m.StatusUnchanged},
		},
	}

	if _, err := store.Save(dir, first); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	path, err := store.Save(dir, second)
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}

	if path == "" {
		t.Fatalf("expected saved report path")
	}

	loaded, err := store.LoadLatest(dir)
	if err != nil {
		t.Fatalf("LoadLatest error: %v", err)
	}

	if !loaded.DryRun || loaded.Summary.Files != 3 {
		t.Errorf("expected the most recent report, got %+v", loaded)
	}

	if len(loaded.Files) != 1 || loaded.Files[0].Path != "a.py" {
		t.Errorf("expected file reports round-tripped, got %+v", loaded.Files)
	}
}

func TestYAMLReportStore_LoadLatestEmptyDir(t *testing.T) {
	store := NewReportStore()

	if _, err := store.LoadLatest(m.Path(t.TempDir())); err == nil {
		t.Errorf("expected error for empty reports dir")
	}
}

func TestYAMLReportStore_SaveCreatesDir(t *testing.T) {
	store := NewReportStore()
	dir := m.Path(t.TempDir() + "/nested/reports")

	if _, err := store.Save(dir, m.RunReport{StartedAt: time.Now()}); err != nil {
		t.Fatalf("Save into missing dir error: %v", err)
	}
}

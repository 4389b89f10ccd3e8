package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	m "github.com/simondoesstuff/python-case/internal/model"
)

// ReportStore persists run reports so a run's outcome can be inspected after
// the fact.
type ReportStore interface {
	Save(dir m.Path, report m.RunReport) (m.Path, error)
	LoadLatest(dir m.Path) (m.RunReport, error)
}

// YAMLReportStore stores one YAML document per run in a reports directory.
type YAMLReportStore struct{}

// NewReportStore constructs a YAMLReportStore.
func NewReportStore() *YAMLReportStore {
	return &YAMLReportStore{}
}

// Save writes the report to dir, creating it when necessary, and returns the
// path of the written file. File names sort chronologically so LoadLatest can
// pick the newest run lexically.
func (s *YAMLReportStore) Save(dir m.Path, report m.RunReport) (m.Path, error) {
	if err := os.MkdirAll(string(dir), 0o750); err != nil {
		return "", fmt.Errorf("creating reports dir: %w", err)
	}

	data, err := yaml.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("encoding report: %w", err)
	}

	name := fmt.Sprintf("run-%s.yaml", report.StartedAt.UTC().Format("20060102-150405"))
	path := filepath.Join(string(dir), name)

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}

	return m.Path(path), nil
}

// LoadLatest reads the most recent run report from dir.
func (s *YAMLReportStore) LoadLatest(dir m.Path) (m.RunReport, error) {
	entries, err := os.ReadDir(string(dir))
	if err != nil {
		return m.RunReport{}, fmt.Errorf("reading reports dir: %w", err)
	}

	var names []string

	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".yaml" {
			names = append(names, e.Name())
		}
	}

	if len(names) == 0 {
		return m.RunReport{}, fmt.Errorf("no reports found in %s", dir)
	}

	sort.Strings(names)

	data, err := os.ReadFile(filepath.Join(string(dir), names[len(names)-1]))
	if err != nil {
		return m.RunReport{}, fmt.Errorf("reading report: %w", err)
	}

	var report m.RunReport
	if err := yaml.Unmarshal(data, &report); err != nil {
		return m.RunReport{}, fmt.Errorf("decoding report: %w", err)
	}

	return report, nil
}

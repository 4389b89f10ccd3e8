package cmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simondoesstuff/python-case/internal/adapter"
	m "github.com/simondoesstuff/python-case/internal/model"
)

func TestReportCmdShowsLatestRun(t *testing.T) {
	dir := t.TempDir()

	_, err := adapter.NewReportStore().Save(m.Path(dir), m.RunReport{
		StartedAt: time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC),
		Root:      "proj",
		Summary:   m.RunSummary{Files: 1, Rewritten: 1},
		Files: []m.FileReport{
			{Path: "app.py", Status: m.StatusRewritten},
		},
	})
	require.NoError(t, err)

	cmd, buf := newTestRootCmd(t, newReportCmd())
	cmd.SetArgs([]string{"report", "--output", dir})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "app.py")
	assert.Contains(t, buf.String(), "proj")
}

func TestReportCmdEmptyDir(t *testing.T) {
	cmd, _ := newTestRootCmd(t, newReportCmd())
	cmd.SetArgs([]string{"report", "--output", t.TempDir()})

	assert.Error(t, cmd.Execute())
}

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketdash/internal/dashboard"
	"marketdash/internal/models"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	stdout := new(bytes.Buffer)
	cmd.SetOut(stdout)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func TestSnapshotMockup(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	stdout, err := runCmd(t, "--mockup", "--out", dir,
		"--series", "Nasdaq (^IXIC)", "--from", "2015", "--to", "2010", "--kind", "bar", "--log")
	require.NoError(t, err)
	assert.Contains(t, stdout, "index.html")
	assert.Contains(t, stdout, "primary.png")

	for _, name := range []string{"index.html", "charts.html", "outputs.json", "primary.png", "aux-1.png", "aux-2.png", "aux-3.png"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "outputs.json"))
	require.NoError(t, err)
	var out dashboard.Outputs
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, "Nasdaq (^IXIC)", out.State.Series)
	assert.Equal(t, 2010, out.State.MinYear)
	assert.Equal(t, 2015, out.State.MaxYear)
	assert.Equal(t, models.ChartBar, out.State.Kind)
	assert.True(t, out.State.LogScale)
	assert.Empty(t, out.Advisory)
}

func TestSnapshotAdvisory(t *testing.T) {
	dir := t.TempDir()

	_, err := runCmd(t, "--mockup", "--out", dir, "--series", "S&P500 (^GSPC)")
	require.NoError(t, err)

	page, err := os.ReadFile(filepath.Join(dir, "index.html"))
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(page), "RIGHT NOW!"))
}

func TestSnapshotRejectsArgs(t *testing.T) {
	_, err := runCmd(t, "--mockup", "extra")
	assert.Error(t, err)
}

func TestSnapshotLoadFailure(t *testing.T) {
	_, err := runCmd(t, "--data-url", filepath.Join(t.TempDir(), "missing.csv"), "--out", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load dataset")
}

package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/LoadTwin/internal/importer"
	"github.com/piwi3910/LoadTwin/internal/project"
)

const testManifest = `[
  {"container_type": "High Cube - Agro -> Shanghai",
   "products": [
     {"id": "P1", "name": "Cafe", "type": "AGROPECUARIO", "length": 1.2, "height": 1.1, "width": 1.0, "peso": 500, "volumen": 1.32},
     {"id": "P1", "name": "Cafe", "type": "AGROPECUARIO", "length": 1.2, "height": 1.1, "width": 1.0, "peso": 500, "volumen": 1.32},
     {"id": "P3", "name": "Mast", "type": "MINERO", "length": 13, "height": 1, "width": 1}
   ]},
  {"container_type": "Refrigerado - Perecible -> Rotterdam",
   "products": [
     {"id": "P4", "name": "Fish", "type": "PESQUERO", "length": 2, "height": 1, "width": 1, "peso": 800}
   ]}
]`

const overlappingManifest = `[
  {"container_type": "High Cube",
   "products": [
     {"id": "A", "length": 1, "height": 1, "width": 1, "position": {"x": 0, "y": 0, "z": 0}},
     {"id": "B", "length": 1, "height": 1, "width": 1, "position": {"x": 0.5, "y": 0, "z": 0}}
   ]}
]`

type testEnv struct {
	dir      string
	manifest string
	history  string
	baseArgs []string
}

func newTestEnv(t *testing.T, manifest string) testEnv {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.json")
	require.NoError(t, os.WriteFile(path, []byte(manifest), 0644))

	history := filepath.Join(dir, "history.json")
	return testEnv{
		dir:      dir,
		manifest: path,
		history:  history,
		baseArgs: []string{
			"--config", filepath.Join(dir, "config.json"),
			"--inventory", filepath.Join(dir, "containers.json"),
			"--history", history,
		},
	}
}

func (e testEnv) run(args ...string) (string, error) {
	buf := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(buf)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append(append([]string{}, e.baseArgs...), args...))
	err := cmd.Execute()
	return buf.String(), err
}

func decodeData(t *testing.T, out string, data interface{}) CLIResponse {
	t.Helper()
	var resp CLIResponse
	resp.Data = data
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	return resp
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "loadtwinctl", cmd.Use)

	for _, name := range []string{"place", "fetch", "export", "compare", "history"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	for _, name := range []string{"config", "log-level", "inventory", "history"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}
}

func TestInvalidFormat(t *testing.T) {
	env := newTestEnv(t, testManifest)
	_, err := env.run("--format", "yaml", "place", env.manifest)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestPlaceText(t *testing.T) {
	env := newTestEnv(t, testManifest)
	out, err := env.run("place", "--verify", env.manifest)
	require.NoError(t, err)

	assert.Contains(t, out, "C1000")
	assert.Contains(t, out, "Rotterdam")
	assert.Contains(t, out, "2 containers, 4 boxes, 1 omitted")
	assert.Contains(t, out, "WARNING: C1000: 1 item omitted from visualization")
	assert.Contains(t, out, "All placements verified")
}

func TestPlaceJSON(t *testing.T) {
	env := newTestEnv(t, testManifest)
	out, err := env.run("--format", "json", "place", "--verify", "--full", env.manifest)
	require.NoError(t, err)

	var report PlaceReport
	resp := decodeData(t, out, &report)
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, report.Containers, 2)
	assert.Equal(t, 4, report.Boxes)
	assert.Equal(t, 1, report.Omitted)

	first := report.Containers[0]
	assert.Equal(t, "C1000", first.ID)
	assert.Equal(t, "shelf", first.Strategy)
	assert.Equal(t, 2, first.Placed)
	assert.Empty(t, first.Problems)
	require.NotNil(t, first.Result)
	assert.Len(t, first.Result.Placed, 2)
}

func TestPlaceRecordsHistory(t *testing.T) {
	env := newTestEnv(t, testManifest)
	_, err := env.run("place", env.manifest)
	require.NoError(t, err)

	entries, err := project.LoadHistory(env.history)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, env.manifest, entries[0].Source)
	assert.Equal(t, 2, entries[0].Containers)
	assert.Equal(t, 1, entries[0].Omitted)
	assert.Equal(t, project.StatusPartial, entries[0].Status)

	_, err = env.run("place", "--no-history", env.manifest)
	require.NoError(t, err)
	entries, err = project.LoadHistory(env.history)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestPlaceVerifyFailure(t *testing.T) {
	env := newTestEnv(t, overlappingManifest)
	out, err := env.run("--format", "json", "place", "--strategy", "upstream", "--verify", env.manifest)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.ErrorIs(t, err, errVerification)

	var report PlaceReport
	resp := decodeData(t, out, &report)
	assert.Equal(t, "error", resp.Status)
	require.Len(t, report.Containers, 1)
	require.NotEmpty(t, report.Containers[0].Problems)
	assert.Contains(t, report.Containers[0].Problems[0], "boxes overlap")
}

func TestPlaceErrors(t *testing.T) {
	env := newTestEnv(t, testManifest)

	_, err := env.run("place", filepath.Join(env.dir, "missing.json"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	_, err = env.run("place", "--strategy", "diagonal", env.manifest)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestCompareJSON(t *testing.T) {
	env := newTestEnv(t, testManifest)
	out, err := env.run("--format", "json", "compare", env.manifest)
	require.NoError(t, err)

	var rows []StrategyRow
	resp := decodeData(t, out, &rows)
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, rows, 6)
	assert.Equal(t, "shelf", rows[0].Strategy)

	best := map[string]int{}
	for _, r := range rows {
		if r.Best {
			best[r.Container]++
		}
		if r.Strategy == "upstream" {
			assert.Zero(t, r.Placed, "boxes without positions cannot be placed upstream")
		}
	}
	assert.Equal(t, map[string]int{"C1000": 1, "C1001": 1}, best)
}

func TestExportWritesEveryFormat(t *testing.T) {
	env := newTestEnv(t, testManifest)
	out := filepath.Join(env.dir, "out")
	require.NoError(t, os.MkdirAll(out, 0755))

	stdout, err := env.run("--format", "json", "export",
		"--xlsx", filepath.Join(out, "packing.xlsx"),
		"--pdf", filepath.Join(out, "plan.pdf"),
		"--labels", filepath.Join(out, "labels.pdf"),
		"--charts", filepath.Join(out, "charts.html"),
		"--dxf", filepath.Join(out, "dxf"),
		env.manifest)
	require.NoError(t, err)

	var result ExportResult
	decodeData(t, stdout, &result)
	require.Len(t, result.Files, 6)
	for _, f := range result.Files {
		info, err := os.Stat(f)
		require.NoError(t, err, f)
		assert.Positive(t, info.Size(), f)
	}
	assert.FileExists(t, filepath.Join(out, "dxf", "C1000.dxf"))
	assert.FileExists(t, filepath.Join(out, "dxf", "C1001.dxf"))
}

func TestExportRequiresTarget(t *testing.T) {
	env := newTestEnv(t, testManifest)
	_, err := env.run("export", env.manifest)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestFetchSavesManifest(t *testing.T) {
	var body map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/optimize", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(testManifest))
	}))
	defer server.Close()

	env := newTestEnv(t, testManifest)
	target := filepath.Join(env.dir, "fetched.json")
	out, err := env.run("fetch", "--url", server.URL, "--ids", "P1,P3,P4", "-o", target)
	require.NoError(t, err)

	assert.Equal(t, []interface{}{"P1", "P3", "P4"}, body["product_ids"])
	assert.Contains(t, out, "Saved 2 containers (4 products)")

	m, err := importer.ImportManifestJSON(target)
	require.NoError(t, err)
	assert.Len(t, m.Shipments(), 2)
}

func TestFetchServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	env := newTestEnv(t, testManifest)
	_, err := env.run("fetch", "--url", server.URL, "--ids", "P1", "-o", filepath.Join(env.dir, "x.json"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestFetchRequiresIDs(t *testing.T) {
	env := newTestEnv(t, testManifest)
	_, err := env.run("fetch")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestHistory(t *testing.T) {
	env := newTestEnv(t, testManifest)

	out, err := env.run("history")
	require.NoError(t, err)
	assert.Contains(t, out, "No manifests processed yet.")

	for i := 0; i < 3; i++ {
		_, err := env.run("place", env.manifest)
		require.NoError(t, err)
	}

	out, err = env.run("--format", "json", "history", "-n", "2")
	require.NoError(t, err)
	var entries []project.HistoryEntry
	decodeData(t, out, &entries)
	assert.Len(t, entries, 2)
	assert.Equal(t, project.StatusPartial, entries[0].Status)
}

func TestSplitJoined(t *testing.T) {
	err := errors.Join(errors.New("a"), errors.New("b"))
	assert.Equal(t, []string{"a", "b"}, splitJoined(err))
	assert.Equal(t, []string{"single"}, splitJoined(errors.New("single")))
}

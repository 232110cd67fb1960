package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderCharts(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderCharts(&buf, buildTestTwins(t)))

	html := buf.String()
	assert.Contains(t, html, ChartsPageTitle)
	assert.Contains(t, html, "Volume by Cargo Type")
	assert.Contains(t, html, "Occupancy per Container")
	assert.Contains(t, html, "C1001")
	assert.Contains(t, html, "Agricultural")
}

func TestRenderChartsEmpty(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, RenderCharts(&buf, nil))
	assert.Zero(t, buf.Len())
}

func TestExportCharts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "charts.html")
	require.NoError(t, ExportCharts(path, buildTestTwins(t)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "echarts"))
}

package export

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestPackingLinesGroupsByProduct(t *testing.T) {
	lines := PackingLines(buildTestTwins(t))
	require.Len(t, lines, 4)

	cafe := lines[0]
	assert.Equal(t, "C1000", cafe.ContainerID)
	assert.Equal(t, "P1", cafe.ProductID)
	assert.Equal(t, 2, cafe.Quantity)
	assert.InDelta(t, 1000.0, cafe.WeightKg, 1e-9)
	assert.InDelta(t, 2.64, cafe.VolumeM3, 1e-9)
	assert.False(t, cafe.Rotated)

	assert.Equal(t, "P2", lines[1].ProductID)
	assert.True(t, lines[1].Rotated)

	mast := lines[2]
	assert.Equal(t, "P3", mast.ProductID)
	assert.Equal(t, 1, mast.Omitted)

	fish := lines[3]
	assert.Equal(t, "C1001", fish.ContainerID)
	assert.Equal(t, "Rotterdam", fish.Destination)
	assert.InDelta(t, 2.0, fish.VolumeM3, 1e-9, "volume falls back to dimensions")
}

func TestExportPackingList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "packing.xlsx")
	require.NoError(t, ExportPackingList(path, buildTestTwins(t)))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{PackingListSheet, PlacementSheet}, f.GetSheetList())

	rows, err := f.GetRows(PackingListSheet)
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, packingListHeaders, rows[0])
	assert.Equal(t, []string{"C1000", "Shanghai", "P1", "Cafe", "AGROPECUARIO", "2", "1000", "2.64", "No", "0"}, rows[1])
	assert.Equal(t, "Yes", rows[2][8])
	assert.Equal(t, "1", rows[3][9])

	placement, err := f.GetRows(PlacementSheet)
	require.NoError(t, err)
	require.Len(t, placement, 6)
	assert.Equal(t, "placed", placement[1][11])
	assert.Equal(t, "omitted: oversize", placement[4][11])
	assert.Equal(t, "4", placement[4][1])
	assert.Equal(t, "C1001", placement[5][0])
}

func TestExportPackingListEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	assert.Error(t, ExportPackingList(path, nil))
}

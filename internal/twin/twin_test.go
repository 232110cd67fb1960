package twin

import (
	"context"
	"fmt"
	"testing"

	"github.com/piwi3910/LoadTwin/internal/engine"
	"github.com/piwi3910/LoadTwin/internal/model"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testShipments() []model.Shipment {
	m := model.Manifest{
		{
			ContainerType: "High Cube - MIXTO -> Shanghai",
			Products: []model.Product{
				{ID: "P1", Name: "Coffee", Type: "AGROPECUARIO", Length: 1, Height: 1, Width: 1},
				{ID: "P2", Name: "Giant", Type: "MINERO", Length: 20, Height: 1, Width: 1},
			},
		},
		{
			ContainerType: "Refrigerado - Perecible",
			Products: []model.Product{
				{ID: "P3", Name: "Tuna", Type: "PESQUERO", Length: 1, Height: 1, Width: 1},
			},
		},
	}
	return m.Shipments()
}

func TestBuild(t *testing.T) {
	eng := engine.NewEngine(engine.Shelf{}, zerolog.Nop())

	twins, warnings, err := Build(context.Background(), testShipments(), model.DefaultInventory(), eng)

	require.NoError(t, err)
	require.Len(t, twins, 2)
	assert.Equal(t, 12.03, twins[0].Container().Length)
	assert.Equal(t, "High Cube - MIXTO", twins[0].Container().Label)
	assert.Equal(t, model.ContainerRefrigerated, twins[1].Container().Category)
	assert.Len(t, twins[0].Result.Placed, 1)
	assert.Equal(t, []string{"C1000: 1 item omitted from visualization"}, warnings)

	containers, boxes, omitted := Counts(twins)
	assert.Equal(t, 2, containers)
	assert.Equal(t, 3, boxes)
	assert.Equal(t, 1, omitted)
}

func TestBuild_EmptyInventory(t *testing.T) {
	eng := engine.NewEngine(engine.Shelf{}, zerolog.Nop())
	_, _, err := Build(context.Background(), testShipments(), model.Inventory{}, eng)
	assert.Error(t, err)
}

func TestBuild_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	eng := engine.NewEngine(engine.Shelf{}, zerolog.Nop())

	_, _, err := Build(ctx, testShipments(), model.DefaultInventory(), eng)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	page, n := Paginate(items, 1, 5)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, page)
	assert.Equal(t, 2, n)

	page, _ = Paginate(items, 2, 5)
	assert.Equal(t, []int{6, 7}, page)

	page, _ = Paginate(items, 9, 5)
	assert.Equal(t, []int{6, 7}, page, "clamped to last page")

	page, _ = Paginate(items, 0, 5)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, page, "clamped to first page")

	page, n = Paginate([]int{}, 1, 5)
	assert.Empty(t, page)
	assert.Equal(t, 1, n)
}

func TestSessionPaging(t *testing.T) {
	twins := make([]Twin, 12)
	for i := range twins {
		twins[i].Shipment.ID = fmt.Sprintf("C%d", 1000+i)
	}
	s := NewSession("test.json", twins, nil, 5)

	assert.Equal(t, 1, s.Page())
	assert.Equal(t, 3, s.PageCount())
	assert.False(t, s.PrevPage())
	assert.True(t, s.NextPage())
	assert.True(t, s.NextPage())
	assert.False(t, s.NextPage())
	assert.Len(t, s.PageItems(), 2)

	sel, ok := s.Selected()
	require.True(t, ok)
	assert.Equal(t, "C1000", sel.Shipment.ID)

	assert.True(t, s.Select("C1011"))
	sel, _ = s.Selected()
	assert.Equal(t, "C1011", sel.Shipment.ID)
	assert.False(t, s.Select("C9999"))
}

func TestSessionEmpty(t *testing.T) {
	s := NewSession("", nil, nil, 0)
	_, ok := s.Selected()
	assert.False(t, ok)
	assert.Equal(t, 1, s.PageCount())
	assert.Equal(t, 7, s.PerPage)
}

package widgets

import (
	"testing"
	"time"

	"github.com/piwi3910/LoadTwin/internal/model"
)

func TestAnimationLength(t *testing.T) {
	if got := AnimationLength(0, 20*time.Millisecond); got != 0 {
		t.Errorf("empty placement should not animate, got %v", got)
	}
	if got := AnimationLength(1, 20*time.Millisecond); got != growDuration {
		t.Errorf("single box = %v, want %v", got, growDuration)
	}
	if got := AnimationLength(11, 20*time.Millisecond); got != 200*time.Millisecond+growDuration {
		t.Errorf("eleven boxes = %v", got)
	}
}

func TestGrowProgress(t *testing.T) {
	stagger := 20 * time.Millisecond

	if p := GrowProgress(0, 0, stagger); p != 0 {
		t.Errorf("first box at t=0 should not have started, got %v", p)
	}
	if p := GrowProgress(growDuration/2, 0, stagger); p != 0.5 {
		t.Errorf("first box halfway = %v, want 0.5", p)
	}
	if p := GrowProgress(40*time.Millisecond, 2, stagger); p != 0 {
		t.Errorf("third box before its start = %v, want 0", p)
	}
	if p := GrowProgress(time.Second, 2, stagger); p != 1 {
		t.Errorf("third box after a second = %v, want 1", p)
	}
	if p := GrowProgress(0, 5, 0); p != 1 {
		t.Errorf("disabled stagger should draw fully grown, got %v", p)
	}
}

func TestProjectBox(t *testing.T) {
	c := model.Container{Length: 4, Height: 2, Width: 2}
	p := model.PlacedBox{Position: model.Position{X: -1.5, Y: -0.5, Z: 0.5}, Length: 1, Height: 1, Width: 1}

	x, y, w, h := ProjectBox(c, p, ProjectionTop, 10, 0)
	if x != 0 || y != 10 || w != 10 || h != 10 {
		t.Errorf("top = (%v, %v, %v, %v), want (0, 10, 10, 10)", x, y, w, h)
	}

	x, y, w, h = ProjectBox(c, p, ProjectionSide, 10, 0)
	if x != 0 || y != 10 || w != 10 || h != 10 {
		t.Errorf("side = (%v, %v, %v, %v), want (0, 10, 10, 10)", x, y, w, h)
	}

	// The gap shrinks the drawn box around its centre
	x, y, w, h = ProjectBox(c, p, ProjectionSide, 10, 0.2)
	if x != 1 || y != 11 || w != 8 || h != 8 {
		t.Errorf("side with gap = (%v, %v, %v, %v), want (1, 11, 8, 8)", x, y, w, h)
	}

	// A gap larger than the box is ignored
	_, _, w, _ = ProjectBox(c, p, ProjectionTop, 10, 2)
	if w != 10 {
		t.Errorf("oversized gap should be ignored, got width %v", w)
	}
}

func TestPaintOrder(t *testing.T) {
	placed := []model.PlacedBox{
		{Index: 0, Position: model.Position{Y: 1, Z: -1}},
		{Index: 1, Position: model.Position{Y: -1, Z: 1}},
	}
	if top := PaintOrder(placed, ProjectionTop); top[0].Index != 1 {
		t.Errorf("top view should paint the lower box first, got %d", top[0].Index)
	}
	if side := PaintOrder(placed, ProjectionSide); side[0].Index != 0 {
		t.Errorf("side view should paint the back box first, got %d", side[0].Index)
	}
}

func TestExtent(t *testing.T) {
	c := model.Container{Length: 12, Height: 2.6, Width: 2.3}
	if Extent(c, ProjectionTop) != 2.3 || Extent(c, ProjectionSide) != 2.6 {
		t.Error("unexpected projection extents")
	}
	if ProjectionSide.String() != "Side" {
		t.Errorf("unexpected name %q", ProjectionSide)
	}
}

package model

import (
	"errors"
	"math"
	"testing"
)

func TestNewContainerValid(t *testing.T) {
	c, err := NewContainer("HC", 12, 2.68, 2.35, ContainerDry)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.ID == "" {
		t.Error("expected generated ID")
	}
	min, max := c.Bounds()
	if min.X != -6 || max.X != 6 {
		t.Errorf("unexpected X bounds %v..%v", min.X, max.X)
	}
	if math.Abs(max.Y-1.34) > 1e-12 || math.Abs(min.Z+1.175) > 1e-12 {
		t.Errorf("unexpected bounds %v %v", min, max)
	}
}

func TestNewContainerRejectsNonPositive(t *testing.T) {
	cases := []struct {
		name    string
		l, h, w float64
	}{
		{"zero length", 0, 1, 1},
		{"negative height", 1, -1, 1},
		{"zero width", 1, 1, 0},
		{"NaN", math.NaN(), 1, 1},
		{"Inf", 1, math.Inf(1), 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewContainer("bad", tc.l, tc.h, tc.w, ContainerDry)
			if !errors.Is(err, ErrInvalidGeometry) {
				t.Errorf("expected ErrInvalidGeometry, got %v", err)
			}
		})
	}
}

func TestContainerValidate(t *testing.T) {
	if err := (Container{Length: 1, Height: 1, Width: 1}).Validate(); err != nil {
		t.Errorf("expected valid container, got %v", err)
	}
	if err := (Container{Length: 1, Height: 1}).Validate(); !errors.Is(err, ErrInvalidGeometry) {
		t.Errorf("expected ErrInvalidGeometry, got %v", err)
	}
}

func TestEffectiveDimsDefaultsMissing(t *testing.T) {
	b := BoxSpec{Length: 2, Height: 0, Width: math.NaN()}
	l, h, w := b.EffectiveDims()
	if l != 2 || h != DefaultDimension || w != DefaultDimension {
		t.Errorf("expected (2,1,1), got (%v,%v,%v)", l, h, w)
	}

	b = BoxSpec{Length: -3, Height: 0.5, Width: 0.25}
	l, h, w = b.EffectiveDims()
	if l != DefaultDimension || h != 0.5 || w != 0.25 {
		t.Errorf("expected (1,0.5,0.25), got (%v,%v,%v)", l, h, w)
	}
}

func TestPlacedBoxCornersAndOverlap(t *testing.T) {
	a := PlacedBox{Position: Position{X: 0.5, Y: 0.5, Z: 0.5}, Length: 1, Height: 1, Width: 1}
	b := PlacedBox{Position: Position{X: 1.5, Y: 0.5, Z: 0.5}, Length: 1, Height: 1, Width: 1}
	c := PlacedBox{Position: Position{X: 1.0, Y: 0.5, Z: 0.5}, Length: 1, Height: 1, Width: 1}

	if a.Min() != (Position{}) || a.Max() != (Position{X: 1, Y: 1, Z: 1}) {
		t.Errorf("unexpected corners %v %v", a.Min(), a.Max())
	}
	if a.Overlaps(b, 1e-9) {
		t.Error("touching boxes should not overlap")
	}
	if !a.Overlaps(c, 1e-9) {
		t.Error("expected overlap")
	}
	if a.Volume() != 1 {
		t.Errorf("expected volume 1, got %v", a.Volume())
	}
}

func TestPlacementResultCountsAndWarning(t *testing.T) {
	c, _ := NewContainer("cube", 2, 2, 2, ContainerDry)
	r := PlacementResult{Container: c}
	if r.Warning() != "" {
		t.Errorf("expected no warning, got %q", r.Warning())
	}
	if r.Utilization() != 0 {
		t.Errorf("expected 0 utilization, got %v", r.Utilization())
	}

	r.Placed = []PlacedBox{{Length: 1, Height: 1, Width: 1}, {Length: 1, Height: 1, Width: 2}}
	r.Skipped = []SkippedBox{{Index: 2, Reason: ReasonCeiling}}
	if r.InputCount() != 3 {
		t.Errorf("expected input count 3, got %d", r.InputCount())
	}
	if r.Warning() != "1 item omitted from visualization" {
		t.Errorf("unexpected warning %q", r.Warning())
	}
	if math.Abs(r.Utilization()-37.5) > 1e-9 {
		t.Errorf("expected 37.5%% utilization, got %v", r.Utilization())
	}

	r.Skipped = append(r.Skipped, SkippedBox{Index: 3, Reason: ReasonOversize})
	if r.Warning() != "2 items omitted from visualization" {
		t.Errorf("unexpected warning %q", r.Warning())
	}
}

func TestParsePlacementMode(t *testing.T) {
	for in, want := range map[string]PlacementMode{
		"":         PlacementShelf,
		"shelf":    PlacementShelf,
		"upstream": PlacementUpstream,
		"auto":     PlacementAuto,
	} {
		got, err := ParsePlacementMode(in)
		if err != nil || got != want {
			t.Errorf("ParsePlacementMode(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParsePlacementMode("solver"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestParseCategory(t *testing.T) {
	cases := map[string]Category{
		"AGROPECUARIO": CategoryAgricultural,
		" minero ":     CategoryMining,
		"Textil":       CategoryTextile,
		"QUIMICO":      CategoryChemical,
		"pesquero":     CategoryFishing,
		"chemical":     CategoryChemical,
		"":             CategoryDefault,
		"ELECTRONICO":  CategoryDefault,
	}
	for in, want := range cases {
		if got := ParseCategory(in); got != want {
			t.Errorf("ParseCategory(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestCategoryColors(t *testing.T) {
	if CategoryAgricultural.Hex() != "#10b981" {
		t.Errorf("unexpected agricultural colour %s", CategoryAgricultural.Hex())
	}
	if CategoryDefault.Hex() != "#3b82f6" {
		t.Errorf("unexpected default colour %s", CategoryDefault.Hex())
	}
	seen := map[string]Category{}
	for _, c := range Categories {
		hex := c.Hex()
		if prev, dup := seen[hex]; dup {
			t.Errorf("%v and %v share colour %s", prev, c, hex)
		}
		seen[hex] = c
	}
}

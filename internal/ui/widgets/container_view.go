package widgets

import (
	"fmt"
	"image/color"
	"sort"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/LoadTwin/internal/model"
	"github.com/piwi3910/LoadTwin/internal/twin"
)

// growDuration is how long a single box takes to grow into place.
const growDuration = 300 * time.Millisecond

// Projection selects which pair of container axes a view draws.
type Projection int

const (
	ProjectionTop  Projection = iota // X across, Z down
	ProjectionSide                   // X across, Y up
)

func (p Projection) String() string {
	if p == ProjectionSide {
		return "Side"
	}
	return "Top"
}

// ViewOptions carries the presentation settings of a container view.
type ViewOptions struct {
	MeshGap float64       // metres shaved off each drawn box
	Stagger time.Duration // delay between boxes in the grow-in animation
}

// ContainerView renders one orthographic projection of a placement.
type ContainerView struct {
	widget.BaseWidget
	result    model.PlacementResult
	order     []model.PlacedBox
	proj      Projection
	opts      ViewOptions
	maxWidth  float32
	maxHeight float32
	elapsed   time.Duration
	anim      *fyne.Animation
}

// NewContainerView creates a fully grown view. Call Animate to replay the
// grow-in sequence.
func NewContainerView(result model.PlacementResult, proj Projection, opts ViewOptions, maxW, maxH float32) *ContainerView {
	cv := &ContainerView{
		result:    result,
		order:     PaintOrder(result.Placed, proj),
		proj:      proj,
		opts:      opts,
		maxWidth:  maxW,
		maxHeight: maxH,
		elapsed:   AnimationLength(len(result.Placed), opts.Stagger),
	}
	cv.ExtendBaseWidget(cv)
	return cv
}

// Animate replays the grow-in sequence, one box after another in input
// order. It is purely cosmetic and never touches the placement.
func (cv *ContainerView) Animate() {
	if cv.anim != nil {
		cv.anim.Stop()
	}
	total := AnimationLength(len(cv.result.Placed), cv.opts.Stagger)
	if cv.opts.Stagger <= 0 || total <= 0 {
		cv.elapsed = total
		cv.Refresh()
		return
	}
	cv.elapsed = 0
	cv.anim = fyne.NewAnimation(total, func(f float32) {
		cv.elapsed = time.Duration(float64(total) * float64(f))
		cv.Refresh()
	})
	cv.anim.Curve = fyne.AnimationLinear
	cv.anim.Start()
}

func (cv *ContainerView) CreateRenderer() fyne.WidgetRenderer {
	return newContainerViewRenderer(cv)
}

// AnimationLength returns the time for n boxes to finish growing.
func AnimationLength(n int, stagger time.Duration) time.Duration {
	if n == 0 {
		return 0
	}
	if stagger < 0 {
		stagger = 0
	}
	return time.Duration(n-1)*stagger + growDuration
}

// GrowProgress returns how far box i (input order) has grown, in [0, 1].
func GrowProgress(elapsed time.Duration, i int, stagger time.Duration) float32 {
	if stagger <= 0 {
		return 1
	}
	start := time.Duration(i) * stagger
	switch {
	case elapsed <= start:
		return 0
	case elapsed >= start+growDuration:
		return 1
	default:
		return float32(elapsed-start) / float32(growDuration)
	}
}

// PaintOrder sorts placed boxes so the ones nearest the viewer are drawn
// last: highest boxes for the top view, front boxes for the side view.
func PaintOrder(placed []model.PlacedBox, proj Projection) []model.PlacedBox {
	out := append([]model.PlacedBox(nil), placed...)
	sort.SliceStable(out, func(i, j int) bool {
		if proj == ProjectionSide {
			return out[i].Position.Z < out[j].Position.Z
		}
		return out[i].Position.Y < out[j].Position.Y
	})
	return out
}

// Extent returns the container size along the vertical axis of the view.
func Extent(c model.Container, proj Projection) float64 {
	if proj == ProjectionSide {
		return c.Height
	}
	return c.Width
}

// ProjectBox maps a placed box to view coordinates with the given scale in
// pixels per metre. The gap is shaved off each dimension, split evenly
// between both sides. The side view keeps the floor at the bottom.
func ProjectBox(c model.Container, p model.PlacedBox, proj Projection, scale float32, gap float64) (x, y, w, h float32) {
	shrink := func(v float64) float64 {
		if v-gap <= 0 {
			return v
		}
		return v - gap
	}
	l := shrink(p.Length)
	left := p.Position.X - l/2 + c.Length/2
	x = float32(left) * scale
	w = float32(l) * scale
	if proj == ProjectionSide {
		ht := shrink(p.Height)
		top := c.Height/2 - (p.Position.Y + ht/2)
		return x, float32(top) * scale, w, float32(ht) * scale
	}
	wd := shrink(p.Width)
	top := p.Position.Z - wd/2 + c.Width/2
	return x, float32(top) * scale, w, float32(wd) * scale
}

func (cv *ContainerView) scale() float32 {
	c := cv.result.Container
	if c.Length <= 0 || Extent(c, cv.proj) <= 0 {
		return 0
	}
	scaleX := cv.maxWidth / float32(c.Length)
	scaleY := cv.maxHeight / float32(Extent(c, cv.proj))
	if scaleY < scaleX {
		return scaleY
	}
	return scaleX
}

type containerViewRenderer struct {
	cv      *ContainerView
	objects []fyne.CanvasObject
}

func newContainerViewRenderer(cv *ContainerView) *containerViewRenderer {
	r := &containerViewRenderer{cv: cv}
	r.rebuild()
	return r
}

func (r *containerViewRenderer) rebuild() {
	r.objects = nil

	cv := r.cv
	c := cv.result.Container
	scale := cv.scale()
	canvasW := float32(c.Length) * scale
	canvasH := float32(Extent(c, cv.proj)) * scale

	floor := color.NRGBA{R: 241, G: 245, B: 249, A: 255}
	if c.Category == model.ContainerRefrigerated {
		floor = color.NRGBA{R: 224, G: 242, B: 254, A: 255}
	}
	bg := canvas.NewRectangle(floor)
	bg.Resize(fyne.NewSize(canvasW, canvasH))
	r.objects = append(r.objects, bg)

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.NRGBA{R: 100, G: 100, B: 100, A: 255}
	border.StrokeWidth = 2
	border.Resize(fyne.NewSize(canvasW, canvasH))
	r.objects = append(r.objects, border)

	for _, p := range cv.order {
		grow := GrowProgress(cv.elapsed, p.Index, cv.opts.Stagger)
		if grow <= 0 {
			continue
		}
		bx, by, bw, bh := ProjectBox(c, p, cv.proj, scale, cv.opts.MeshGap)

		// Grow upward from the floor in the side view, outward from the
		// centre in the top view.
		gh := bh * grow
		gw := bw
		if cv.proj == ProjectionSide {
			by += bh - gh
		} else {
			gw = bw * grow
			bx += (bw - gw) / 2
			by += (bh - gh) / 2
		}

		col := p.Box.Kind().Color()
		col.A = 220
		rect := canvas.NewRectangle(col)
		rect.StrokeColor = color.NRGBA{R: 30, G: 30, B: 30, A: 255}
		rect.StrokeWidth = 1
		rect.Resize(fyne.NewSize(gw, gh))
		rect.Move(fyne.NewPos(bx, by))
		r.objects = append(r.objects, rect)

		if grow == 1 && bw > 40 && bh > 16 {
			label := canvas.NewText(p.Box.DisplayName(), color.White)
			label.TextSize = 10
			label.Move(fyne.NewPos(bx+3, by+2))
			r.objects = append(r.objects, label)
		}
	}
}

func (r *containerViewRenderer) Layout(size fyne.Size)        {}
func (r *containerViewRenderer) Refresh()                     { r.rebuild() }
func (r *containerViewRenderer) Destroy()                     {}
func (r *containerViewRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *containerViewRenderer) MinSize() fyne.Size {
	c := r.cv.result.Container
	scale := r.cv.scale()
	return fyne.NewSize(float32(c.Length)*scale, float32(Extent(c, r.cv.proj))*scale)
}

// TwinPanel is the rendered twin of one container with both projections.
type TwinPanel struct {
	fyne.CanvasObject
	Views []*ContainerView
}

// Animate replays the grow-in sequence on every projection.
func (tp *TwinPanel) Animate() {
	for _, v := range tp.Views {
		v.Animate()
	}
}

// RenderTwin builds the twin view of a container: a header, top and side
// projections, and the omitted-items warning when boxes were skipped.
func RenderTwin(t twin.Twin, opts ViewOptions, maxW float32) *TwinPanel {
	c := t.Container()
	r := t.Result

	header := widget.NewLabel(fmt.Sprintf(
		"%s: %s (%.2f × %.2f × %.2f m) → %s",
		t.Shipment.ID, t.Shipment.Type, c.Length, c.Height, c.Width, t.Shipment.Destination,
	))
	header.TextStyle = fyne.TextStyle{Bold: true}

	stats := widget.NewLabel(fmt.Sprintf(
		"%d of %d boxes placed, %.1f%% occupancy, strategy %s",
		len(r.Placed), r.InputCount(), r.Utilization(), r.Strategy,
	))

	tp := &TwinPanel{}
	items := []fyne.CanvasObject{header, stats}
	for _, proj := range []Projection{ProjectionTop, ProjectionSide} {
		v := NewContainerView(r, proj, opts, maxW, 160)
		tp.Views = append(tp.Views, v)
		items = append(items, widget.NewLabel(proj.String()+" view"), v)
	}

	if w := r.Warning(); w != "" {
		warning := widget.NewLabel("WARNING: " + w)
		warning.Importance = widget.DangerImportance
		items = append(items, warning)
	}
	items = append(items, buildLegend(r))

	tp.CanvasObject = container.NewVBox(items...)
	return tp
}

// buildLegend lists a colour chip per cargo category present.
func buildLegend(r model.PlacementResult) fyne.CanvasObject {
	counts := make(map[model.Category]int)
	for _, p := range r.Placed {
		counts[p.Box.Kind()]++
	}
	row := container.NewHBox()
	for _, cat := range model.Categories {
		n, ok := counts[cat]
		if !ok {
			continue
		}
		chip := canvas.NewRectangle(cat.Color())
		chip.SetMinSize(fyne.NewSize(12, 12))
		row.Add(container.NewCenter(chip))
		row.Add(widget.NewLabel(fmt.Sprintf("%s (%d)", cat, n)))
	}
	return row
}

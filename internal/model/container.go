package model

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
)

// ErrInvalidGeometry is returned when a container is built with a
// non-positive (or non-finite) interior dimension.
var ErrInvalidGeometry = errors.New("invalid container geometry")

// ContainerCategory is the cosmetic class of a container. It only affects
// how the container frame is drawn, never where boxes go.
type ContainerCategory int

const (
	ContainerDry           ContainerCategory = iota // Standard / High Cube dry container
	ContainerRefrigerated                           // Reefer
)

func (c ContainerCategory) String() string {
	switch c {
	case ContainerRefrigerated:
		return "Refrigerated"
	default:
		return "Dry"
	}
}

// Container is the fixed interior envelope of a shipping container in metres.
// Values are constructed once per visualization request and never mutated.
type Container struct {
	ID       string            `json:"id"`
	Label    string            `json:"label"`
	Length   float64           `json:"length"` // X axis
	Height   float64           `json:"height"` // Y axis
	Width    float64           `json:"width"`  // Z axis
	Category ContainerCategory `json:"category"`
}

// NewContainer validates the interior dimensions and returns a Container.
func NewContainer(label string, length, height, width float64, cat ContainerCategory) (Container, error) {
	for _, d := range []struct {
		axis string
		v    float64
	}{{"length", length}, {"height", height}, {"width", width}} {
		if !(d.v > 0) || math.IsInf(d.v, 0) {
			return Container{}, fmt.Errorf("%w: %s must be positive, got %g", ErrInvalidGeometry, d.axis, d.v)
		}
	}
	return Container{
		ID:       uuid.New().String()[:8],
		Label:    label,
		Length:   length,
		Height:   height,
		Width:    width,
		Category: cat,
	}, nil
}

// Validate re-checks the geometry of a container that was built without
// NewContainer, e.g. decoded from JSON.
func (c Container) Validate() error {
	_, err := NewContainer(c.Label, c.Length, c.Height, c.Width, c.Category)
	return err
}

// Bounds returns the min and max corners of the interior in the container's
// local frame, whose origin is the geometric centre.
func (c Container) Bounds() (min, max Position) {
	min = Position{X: -c.Length / 2, Y: -c.Height / 2, Z: -c.Width / 2}
	max = Position{X: c.Length / 2, Y: c.Height / 2, Z: c.Width / 2}
	return min, max
}

// Volume returns the interior volume in cubic metres.
func (c Container) Volume() float64 {
	return c.Length * c.Height * c.Width
}

package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Product is one item as reported by the optimization service. The service
// has shipped both English and Spanish field names over time, so decoding
// accepts either.
type Product struct {
	ID       string
	Name     string
	Type     string // Cargo type, e.g. "AGROPECUARIO"
	Group    string // Compatibility group
	Volume   float64
	Weight   float64
	Length   float64
	Width    float64
	Height   float64
	Rotated  bool
	Position *Position
}

// productWire lists every key the service is known to emit.
type productWire struct {
	ID            json.RawMessage `json:"id"`
	Name          string          `json:"name"`
	Nombre        string          `json:"nombre"`
	Type          string          `json:"type"`
	TipoMercancia string          `json:"tipo_mercancia"`
	Grupo         string          `json:"grupo"`
	Volume        float64         `json:"volume"`
	Volumen       float64         `json:"volumen"`
	Peso          float64         `json:"peso"`
	Weight        float64         `json:"weight"`
	Length        float64         `json:"length"`
	Largo         float64         `json:"largo"`
	DimL          float64         `json:"dim_l"`
	Width         float64         `json:"width"`
	Ancho         float64         `json:"ancho"`
	DimW          float64         `json:"dim_w"`
	Height        float64         `json:"height"`
	Alto          float64         `json:"alto"`
	DimH          float64         `json:"dim_h"`
	Rotado        bool            `json:"rotado"`
	Rotated       bool            `json:"rotated"`
	Position      *Position       `json:"position"`
}

func firstString(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstFloat(vals ...float64) float64 {
	for _, v := range vals {
		if v != 0 {
			return v
		}
	}
	return 0
}

// UnmarshalJSON decodes a product from any of the known key spellings.
func (p *Product) UnmarshalJSON(data []byte) error {
	var w productWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	id, err := decodeID(w.ID)
	if err != nil {
		return err
	}
	*p = Product{
		ID:       id,
		Name:     firstString(w.Name, w.Nombre),
		Type:     firstString(w.TipoMercancia, w.Type),
		Group:    w.Grupo,
		Volume:   firstFloat(w.Volume, w.Volumen),
		Weight:   firstFloat(w.Weight, w.Peso),
		Length:   firstFloat(w.Length, w.Largo, w.DimL),
		Width:    firstFloat(w.Width, w.Ancho, w.DimW),
		Height:   firstFloat(w.Height, w.Alto, w.DimH),
		Rotated:  w.Rotado || w.Rotated,
		Position: w.Position,
	}
	return nil
}

// MarshalJSON writes the canonical English keys.
func (p Product) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID       string    `json:"id"`
		Name     string    `json:"name"`
		Type     string    `json:"type"`
		Group    string    `json:"grupo,omitempty"`
		Volume   float64   `json:"volume"`
		Weight   float64   `json:"weight"`
		Length   float64   `json:"length"`
		Width    float64   `json:"width"`
		Height   float64   `json:"height"`
		Rotated  bool      `json:"rotated"`
		Position *Position `json:"position,omitempty"`
	}{p.ID, p.Name, p.Type, p.Group, p.Volume, p.Weight, p.Length, p.Width, p.Height, p.Rotated, p.Position})
}

// decodeID accepts string or numeric product IDs.
func decodeID(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("invalid product id %s: %w", string(raw), err)
	}
	return n.String(), nil
}

// ToBoxSpec converts the product into engine input.
func (p Product) ToBoxSpec() BoxSpec {
	b := NewBoxSpec(p.ID, p.Name, p.Type, p.Length, p.Height, p.Width)
	b.Weight = p.Weight
	b.Volume = p.Volume
	b.Rotated = p.Rotated
	if p.Position != nil {
		pos := *p.Position
		b.Position = &pos
	}
	return b
}

// ContainerLoad is one container of the service's response.
type ContainerLoad struct {
	ContainerType        string    `json:"container_type"`
	Products             []Product `json:"products"`
	TotalVolumeM3        float64   `json:"total_volume_m3"`
	TotalWeightKg        float64   `json:"total_weight_kg,omitempty"`
	UtilizationPct       float64   `json:"utilization_pct"`
	WeightUtilizationPct float64   `json:"weight_utilization_pct,omitempty"`
}

// Manifest is the full response of the optimization service.
type Manifest []ContainerLoad

// DefaultDestination is used when a container type carries no "-> port" suffix.
const DefaultDestination = "Various"

// Shipment is a container load prepared for display.
type Shipment struct {
	ID                   string    `json:"id"`
	Type                 string    `json:"type"`
	Destination          string    `json:"destination"`
	Products             []Product `json:"products"`
	TotalVolumeM3        float64   `json:"total_volume_m3"`
	TotalWeightKg        float64   `json:"total_weight_kg"`
	UtilizationPct       float64   `json:"utilization_pct"`
	WeightUtilizationPct float64   `json:"weight_utilization_pct"`
}

// ParseContainerType splits "High Cube - MIXTO -> Shanghai" into its type
// and destination parts.
func ParseContainerType(s string) (typ, destination string) {
	parts := strings.SplitN(s, "->", 2)
	typ = strings.TrimSpace(parts[0])
	if typ == "" {
		typ = "Standard"
	}
	destination = DefaultDestination
	if len(parts) == 2 {
		if d := strings.TrimSpace(parts[1]); d != "" {
			destination = d
		}
	}
	return typ, destination
}

// Shipments maps each container load to a Shipment with a display ID.
func (m Manifest) Shipments() []Shipment {
	out := make([]Shipment, 0, len(m))
	for i, c := range m {
		typ, dest := ParseContainerType(c.ContainerType)
		out = append(out, Shipment{
			ID:                   fmt.Sprintf("C%d", i+1000),
			Type:                 typ,
			Destination:          dest,
			Products:             c.Products,
			TotalVolumeM3:        c.TotalVolumeM3,
			TotalWeightKg:        c.TotalWeightKg,
			UtilizationPct:       c.UtilizationPct,
			WeightUtilizationPct: c.WeightUtilizationPct,
		})
	}
	return out
}

// BoxSpecs returns the shipment's products as engine input, in order.
func (s Shipment) BoxSpecs() []BoxSpec {
	boxes := make([]BoxSpec, len(s.Products))
	for i, p := range s.Products {
		boxes[i] = p.ToBoxSpec()
	}
	return boxes
}

package importer

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/piwi3910/LoadTwin/internal/model"
)

// ErrNoProducts is returned when a manifest holds no products at all.
var ErrNoProducts = errors.New("manifest contains no products")

// ReadManifest decodes a service response from r.
func ReadManifest(r io.Reader) (model.Manifest, error) {
	var m model.Manifest
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	total := 0
	for _, c := range m {
		total += len(c.Products)
	}
	if total == 0 {
		return nil, ErrNoProducts
	}
	return m, nil
}

// ImportManifestJSON reads a service response saved to disk.
func ImportManifestJSON(path string) (model.Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest: %w", err)
	}
	defer f.Close()
	return ReadManifest(f)
}

// SaveManifestJSON writes a manifest as indented JSON.
func SaveManifestJSON(path string, m model.Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ManifestFromProducts wraps an imported product list into a single
// container load of the given type so it can be placed like a service
// response.
func ManifestFromProducts(products []model.Product, containerType string) (model.Manifest, error) {
	if len(products) == 0 {
		return nil, ErrNoProducts
	}
	load := model.ContainerLoad{
		ContainerType: containerType,
		Products:      products,
	}
	for _, p := range products {
		load.TotalVolumeM3 += p.Volume
		load.TotalWeightKg += p.Weight
	}
	return model.Manifest{load}, nil
}

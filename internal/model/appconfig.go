package model

// AppConfig holds application-wide preferences.
type AppConfig struct {
	// Optimization service
	ServiceURL     string `json:"service_url" mapstructure:"service_url"`
	RequestTimeout int    `json:"request_timeout" mapstructure:"request_timeout"` // seconds

	// Placement
	PlacementMode PlacementMode `json:"placement_mode" mapstructure:"placement_mode"`

	// Presentation
	ItemsPerPage     int     `json:"items_per_page" mapstructure:"items_per_page"`
	AnimationStagger int     `json:"animation_stagger_ms" mapstructure:"animation_stagger_ms"` // delay between boxes, 0 = disabled
	MeshGap          float64 `json:"mesh_gap" mapstructure:"mesh_gap"`                         // metres shaved off each drawn box
	Theme            string  `json:"theme" mapstructure:"theme"`                               // "light", "dark", "system"

	// Application preferences
	ExportDir       string   `json:"export_dir" mapstructure:"export_dir"`
	LogLevel        string   `json:"log_level" mapstructure:"log_level"`
	RecentManifests []string `json:"recent_manifests" mapstructure:"recent_manifests"`
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		ServiceURL:       "http://localhost:8000",
		RequestTimeout:   60,
		PlacementMode:    PlacementShelf,
		ItemsPerPage:     7,
		AnimationStagger: 20,
		MeshGap:          0.05,
		Theme:            "system",
		ExportDir:        ".",
		LogLevel:         "info",
		RecentManifests:  []string{},
	}
}

// maxRecentManifests bounds the recent-files list.
const maxRecentManifests = 10

// AddRecentManifest moves path to the front of the recent list.
func (c *AppConfig) AddRecentManifest(path string) {
	recent := []string{path}
	for _, p := range c.RecentManifests {
		if p != path {
			recent = append(recent, p)
		}
	}
	if len(recent) > maxRecentManifests {
		recent = recent[:maxRecentManifests]
	}
	c.RecentManifests = recent
}

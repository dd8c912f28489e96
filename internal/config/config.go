package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds the application configuration
type Config struct {
	Dataset DatasetConfig `json:"dataset"`
	Render  RenderConfig  `json:"render"`
	Grid    GridConfig    `json:"grid"`
	Export  ExportConfig  `json:"export"`
	Output  OutputConfig  `json:"output"`
}

// DatasetConfig holds configuration for dataset loading
type DatasetConfig struct {
	Root string `json:"root"`
}

// RenderConfig holds configuration for annotation drawing
type RenderConfig struct {
	StrokeRatio  float64 `json:"stroke_ratio"`
	MinStroke    int     `json:"min_stroke"`
	DrawLabels   bool    `json:"draw_labels"`
	PaddingRatio float64 `json:"padding_ratio"`
}

// GridConfig holds configuration for contact sheets
type GridConfig struct {
	Columns   int `json:"columns"`
	CellSize  int `json:"cell_size"`
	ThumbSize int `json:"thumb_size"`
}

// ExportConfig holds configuration for annotation export
type ExportConfig struct {
	NumShards int `json:"num_shards"`
}

// OutputConfig holds configuration for output generation
type OutputConfig struct {
	DefaultFormat string `json:"default_format"`
	OutputDir     string `json:"output_dir"`
	Quality       int    `json:"quality"`
	Lossless      bool   `json:"lossless"`
}

// Default returns a configuration with default values
func Default() *Config {
	return &Config{
		Dataset: DatasetConfig{
			Root: "datasets/h2o",
		},
		Render: RenderConfig{
			StrokeRatio:  0.004,
			MinStroke:    2,
			DrawLabels:   true,
			PaddingRatio: 0.1,
		},
		Grid: GridConfig{
			Columns:   5,
			CellSize:  350,
			ThumbSize: 300,
		},
		Export: ExportConfig{
			NumShards: 1,
		},
		Output: OutputConfig{
			DefaultFormat: "jpg",
			OutputDir:     "./output",
			Quality:       85,
			Lossless:      false,
		},
	}
}

// LoadFromFile loads configuration from a JSON file
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// SaveToFile saves configuration to a JSON file
func (c *Config) SaveToFile(filename string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Dataset.Root == "" {
		return fmt.Errorf("dataset.root cannot be empty")
	}

	if c.Render.StrokeRatio < 0 || c.Render.StrokeRatio > 1 {
		return fmt.Errorf("render.stroke_ratio must be between 0 and 1")
	}

	if c.Render.MinStroke < 1 {
		return fmt.Errorf("render.min_stroke must be positive")
	}

	if c.Render.PaddingRatio < 0 || c.Render.PaddingRatio > 1 {
		return fmt.Errorf("render.padding_ratio must be between 0 and 1")
	}

	if c.Grid.Columns < 1 {
		return fmt.Errorf("grid.columns must be positive")
	}

	if c.Grid.CellSize < 1 || c.Grid.ThumbSize < 1 {
		return fmt.Errorf("grid.cell_size and grid.thumb_size must be positive")
	}

	if c.Grid.ThumbSize > c.Grid.CellSize {
		return fmt.Errorf("grid.thumb_size cannot exceed grid.cell_size")
	}

	if c.Export.NumShards < 1 {
		return fmt.Errorf("export.num_shards must be positive")
	}

	if c.Output.Quality < 1 || c.Output.Quality > 100 {
		return fmt.Errorf("output.quality must be between 1 and 100")
	}

	switch c.Output.DefaultFormat {
	case "jpg", "jpeg", "png", "webp":
	default:
		return fmt.Errorf("output.default_format must be one of jpg, jpeg, png, webp")
	}

	return nil
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./config.json"
	}
	return filepath.Join(home, ".config", "hoiview", "config.json")
}

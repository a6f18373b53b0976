package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrInvalidLayout is returned when a layout has an unusable container
var ErrInvalidLayout = errors.New("invalid layout")

// Layout is a collage container together with its panel rectangles
type Layout struct {
	Width  float64     `json:"width"`
	Height float64     `json:"height"`
	Border float64     `json:"border"`
	Panels []PanelRect `json:"panels"`
}

// Validate checks the container dimensions and panel ids
func (l Layout) Validate() error {
	if !isFinite(l.Width) || !isFinite(l.Height) || l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("%w: container %vx%v", ErrInvalidLayout, l.Width, l.Height)
	}
	if !isFinite(l.Border) || l.Border < 0 {
		return fmt.Errorf("%w: border %v", ErrInvalidLayout, l.Border)
	}
	seen := make(map[string]struct{}, len(l.Panels))
	for i, p := range l.Panels {
		if p.PanelID == "" {
			return fmt.Errorf("%w: panel %d has no id", ErrInvalidLayout, i)
		}
		if _, ok := seen[p.PanelID]; ok {
			return fmt.Errorf("%w: duplicate panel id %q", ErrInvalidLayout, p.PanelID)
		}
		seen[p.PanelID] = struct{}{}
	}
	return nil
}

// LoadLayout reads a layout from a JSON file
func LoadLayout(filename string) (Layout, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Layout{}, fmt.Errorf("failed to read layout file: %w", err)
	}

	var layout Layout
	if err := json.Unmarshal(data, &layout); err != nil {
		return Layout{}, fmt.Errorf("failed to parse layout file: %w", err)
	}
	if err := layout.Validate(); err != nil {
		return Layout{}, err
	}
	return layout, nil
}

// SaveLayout writes a layout to a JSON file
func SaveLayout(filename string, layout Layout) error {
	if dir := filepath.Dir(filename); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create layout directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(layout, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal layout: %w", err)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write layout file: %w", err)
	}
	return nil
}

package types

import "math"

// Box represents a normalized bounding box with coordinates in [0,1] range
type Box struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Primary represents the primary subject detected in a panel image
type Primary struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
	Box        Box     `json:"box"`
	Cx         float64 `json:"cx"`
	Cy         float64 `json:"cy"`
}

// AnalysisResult contains the subject location returned by a vision model
type AnalysisResult struct {
	Primary     Primary  `json:"primary"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// PanelRect is the rectangle occupied by one image panel in container pixels
type PanelRect struct {
	PanelID string  `json:"panelId"`
	Index   *int    `json:"index,omitempty"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
}

// Valid reports whether the rect has finite coordinates and a positive size
func (r PanelRect) Valid() bool {
	if !isFinite(r.X) || !isFinite(r.Y) || !isFinite(r.Width) || !isFinite(r.Height) {
		return false
	}
	return r.Width > 0 && r.Height > 0
}

// Right returns the x coordinate of the right edge
func (r PanelRect) Right() float64 {
	return r.X + r.Width
}

// Bottom returns the y coordinate of the bottom edge
func (r PanelRect) Bottom() float64 {
	return r.Y + r.Height
}

// ZoneType is the orientation of a border seam
type ZoneType string

const (
	// Vertical seams run top to bottom; dragging moves panels left/right.
	Vertical ZoneType = "vertical"
	// Horizontal seams run left to right; dragging moves panels up/down.
	Horizontal ZoneType = "horizontal"
)

// Cursor hints which pointer cursor a handle should show
type Cursor string

const (
	// CursorColResize is shown over vertical seams.
	CursorColResize Cursor = "col-resize"
	// CursorRowResize is shown over horizontal seams.
	CursorRowResize Cursor = "row-resize"
)

// BorderZone describes one draggable seam segment between panels.
//
// FirstPanelIDs holds the left (vertical) or top (horizontal) side and
// SecondPanelIDs the right or bottom side. EdgeID depends only on those sets
// so the same logical handle can be found again after geometry changes.
type BorderZone struct {
	ID     string   `json:"id"`
	EdgeID string   `json:"edgeId"`
	Type   ZoneType `json:"type"`
	Cursor Cursor   `json:"cursor"`

	BoundaryStart float64 `json:"boundaryStart"`
	BoundaryEnd   float64 `json:"boundaryEnd"`
	SegmentStart  float64 `json:"segmentStart"`
	SegmentEnd    float64 `json:"segmentEnd"`

	FirstPanelIDs  []string `json:"firstPanelIds"`
	SecondPanelIDs []string `json:"secondPanelIds"`

	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	CenterX float64 `json:"centerX"`
	CenterY float64 `json:"centerY"`

	HandleLength    float64 `json:"handleLength"`
	HandleThickness float64 `json:"handleThickness"`
}

// LeftPanelIDs returns the left side of a vertical zone
func (z BorderZone) LeftPanelIDs() []string {
	if z.Type != Vertical {
		return nil
	}
	return z.FirstPanelIDs
}

// RightPanelIDs returns the right side of a vertical zone
func (z BorderZone) RightPanelIDs() []string {
	if z.Type != Vertical {
		return nil
	}
	return z.SecondPanelIDs
}

// TopPanelIDs returns the top side of a horizontal zone
func (z BorderZone) TopPanelIDs() []string {
	if z.Type != Horizontal {
		return nil
	}
	return z.FirstPanelIDs
}

// BottomPanelIDs returns the bottom side of a horizontal zone
func (z BorderZone) BottomPanelIDs() []string {
	if z.Type != Horizontal {
		return nil
	}
	return z.SecondPanelIDs
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Package collagekit edits collage layouts by dragging the borders between
// panels.
//
// An Editor holds a layout, detects the draggable border zones between its
// panels and applies drag gestures to them. A gesture is either one-shot:
//
//	ed, err := collagekit.New(layout, collagekit.WithMinPanelSize(48, 48))
//	if err != nil {
//		log.Fatal(err)
//	}
//	res, err := ed.Drag("v|panel-1|panel-2", 24, 0)
//
// or a session driven by pointer events, where every move carries the
// cumulative offset since the pointer went down:
//
//	_ = ed.BeginDrag("v|panel-1|panel-2")
//	_, _ = ed.MoveDrag(10, 0)
//	_, _ = ed.MoveDrag(24, 0)
//	_ = ed.EndDrag()
//
// Detection and drag math live in pkg/borderzone; rendering the panels into
// an image lives in pkg/processing.
package collagekit

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"github.com/menta2k/collage-kit/pkg/borderzone"
	"github.com/menta2k/collage-kit/pkg/types"
)

// Version of the collage kit library
const Version = "1.0.0"

var (
	// ErrUnknownEdge is returned when no border zone has the requested edge id
	ErrUnknownEdge = errors.New("unknown edge")
	// ErrNoActiveDrag is returned by session calls made outside a drag
	ErrNoActiveDrag = errors.New("no active drag")
	// ErrDragInProgress is returned when a second drag starts before the
	// first one ended
	ErrDragInProgress = errors.New("drag already in progress")
	// ErrInvalidLayout is returned for layouts with an unusable container
	ErrInvalidLayout = types.ErrInvalidLayout
)

// Option configures an Editor
type Option func(*Editor)

// WithDetectOptions overrides the border detection heuristics
func WithDetectOptions(opts borderzone.DetectOptions) Option {
	return func(e *Editor) {
		e.detect = opts
	}
}

// WithMinPanelSize sets the smallest width and height a drag may leave
func WithMinPanelSize(width, height float64) Option {
	return func(e *Editor) {
		e.minWidth = width
		e.minHeight = height
	}
}

// WithCenterSnap enables snapping the seam to the middle of its range
func WithCenterSnap(snap borderzone.CenterSnap) Option {
	return func(e *Editor) {
		e.snap = &snap
	}
}

// WithLogger sets the logger used for debug output
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Editor) {
		e.logger = logger
	}
}

// Editor owns a layout and applies border drags to it. All methods are
// safe for concurrent use; at most one drag session is open at a time.
type Editor struct {
	mu sync.Mutex

	width, height, border float64
	panels                []types.PanelRect

	detect              borderzone.DetectOptions
	minWidth, minHeight float64
	snap                *borderzone.CenterSnap
	logger              zerolog.Logger

	session *dragSession
}

type dragSession struct {
	edgeID string
	start  []types.PanelRect
}

// New creates an editor for layout
func New(layout types.Layout, opts ...Option) (*Editor, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}

	e := &Editor{
		width:  layout.Width,
		height: layout.Height,
		border: layout.Border,
		panels: slices.Clone(layout.Panels),
		detect: borderzone.DefaultDetectOptions(),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Layout returns a copy of the current layout
func (e *Editor) Layout() types.Layout {
	e.mu.Lock()
	defer e.mu.Unlock()

	return types.Layout{
		Width:  e.width,
		Height: e.height,
		Border: e.border,
		Panels: slices.Clone(e.panels),
	}
}

// Panels returns a copy of the current panel rectangles
func (e *Editor) Panels() []types.PanelRect {
	e.mu.Lock()
	defer e.mu.Unlock()

	return slices.Clone(e.panels)
}

// Zones detects the border zones of the current panels
func (e *Editor) Zones() []types.BorderZone {
	e.mu.Lock()
	defer e.mu.Unlock()

	zones := e.zonesFor(e.panels)
	e.logger.Debug().Int("panels", len(e.panels)).Int("zones", len(zones)).Msg("detected border zones")
	return zones
}

// Zone returns the zone with the given edge id
func (e *Editor) Zone(edgeID string) (types.BorderZone, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.findZone(e.panels, edgeID)
}

// Dragging reports the edge id of the active drag session
func (e *Editor) Dragging() (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session == nil {
		return "", false
	}
	return e.session.edgeID, true
}

// Drag applies a single delta to the zone with the given edge id and keeps
// the result when the layout changed
func (e *Editor) Drag(edgeID string, dx, dy float64) (borderzone.DragResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session != nil {
		return borderzone.DragResult{}, ErrDragInProgress
	}
	zone, err := e.findZone(e.panels, edgeID)
	if err != nil {
		return borderzone.DragResult{}, err
	}

	res := e.apply(e.panels, zone, dx, dy)
	if res.Changed {
		e.panels = res.NextPanels
	}
	return res, nil
}

// BeginDrag starts a drag session on the zone with the given edge id
func (e *Editor) BeginDrag(edgeID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session != nil {
		return ErrDragInProgress
	}
	if _, err := e.findZone(e.panels, edgeID); err != nil {
		return err
	}
	e.session = &dragSession{
		edgeID: edgeID,
		start:  slices.Clone(e.panels),
	}
	e.logger.Debug().Str("edge", edgeID).Msg("drag started")
	return nil
}

// MoveDrag applies the cumulative offset since BeginDrag to the panels as
// they were when the drag started
func (e *Editor) MoveDrag(dx, dy float64) (borderzone.DragResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session == nil {
		return borderzone.DragResult{}, ErrNoActiveDrag
	}
	zone, err := e.findZone(e.session.start, e.session.edgeID)
	if err != nil {
		return borderzone.DragResult{}, err
	}

	res := e.apply(e.session.start, zone, dx, dy)
	switch res.Outcome {
	case borderzone.OutcomeChanged:
		e.panels = res.NextPanels
	case borderzone.OutcomeNoop:
		e.panels = slices.Clone(e.session.start)
	}
	return res, nil
}

// EndDrag keeps the panels of the last move and closes the session
func (e *Editor) EndDrag() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session == nil {
		return ErrNoActiveDrag
	}
	e.logger.Debug().Str("edge", e.session.edgeID).Msg("drag committed")
	e.session = nil
	return nil
}

// CancelDrag restores the panels from before BeginDrag and closes the
// session
func (e *Editor) CancelDrag() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session == nil {
		return ErrNoActiveDrag
	}
	e.panels = e.session.start
	e.logger.Debug().Str("edge", e.session.edgeID).Msg("drag canceled")
	e.session = nil
	return nil
}

// Range returns the allowed delta window of the zone with the given edge id
func (e *Editor) Range(edgeID string) (borderzone.AllowedRange, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	zone, err := e.findZone(e.panels, edgeID)
	if err != nil {
		return borderzone.AllowedRange{}, err
	}
	r, ok := borderzone.DragRange(e.panels, zone, e.minWidth, e.minHeight)
	if !ok {
		return borderzone.AllowedRange{}, fmt.Errorf("%w: %s does not resolve", ErrUnknownEdge, edgeID)
	}
	return r, nil
}

func (e *Editor) zonesFor(panels []types.PanelRect) []types.BorderZone {
	opts := e.detect
	return borderzone.Detect(borderzone.DetectInput{
		ContainerWidth:  e.width,
		ContainerHeight: e.height,
		BorderPixels:    e.border,
		Panels:          panels,
		Options:         &opts,
	})
}

func (e *Editor) findZone(panels []types.PanelRect, edgeID string) (types.BorderZone, error) {
	zone, ok := borderzone.FindByEdgeID(e.zonesFor(panels), edgeID)
	if !ok {
		return types.BorderZone{}, fmt.Errorf("%w: %s", ErrUnknownEdge, edgeID)
	}
	return zone, nil
}

func (e *Editor) apply(panels []types.PanelRect, zone types.BorderZone, dx, dy float64) borderzone.DragResult {
	res := borderzone.ApplyDragDelta(borderzone.DragInput{
		Panels:           panels,
		Zone:             &zone,
		DeltaX:           dx,
		DeltaY:           dy,
		MinPanelWidthPx:  e.minWidth,
		MinPanelHeightPx: e.minHeight,
		CenterSnap:       e.snap,
	})
	if !res.Changed {
		res.NextPanels = slices.Clone(panels)
	}

	e.logger.Debug().
		Str("edge", zone.EdgeID).
		Float64("dx", dx).
		Float64("dy", dy).
		Str("outcome", string(res.Outcome)).
		Float64("applied_dx", res.AppliedDeltaX).
		Float64("applied_dy", res.AppliedDeltaY).
		Bool("snapped", res.SnappedToCenter).
		Msg("drag applied")
	return res
}

package borderzone

import (
	"math"

	"github.com/menta2k/collage-kit/pkg/types"
)

// deadZonePx is the smallest applied delta that counts as a change
const deadZonePx = 0.01

// Outcome classifies the result of a drag
type Outcome string

const (
	// OutcomeInvalid means the input could not be used; ignore the event.
	OutcomeInvalid Outcome = "invalid"
	// OutcomeNoop means nothing feasible or meaningful changed.
	OutcomeNoop Outcome = "noop"
	// OutcomeChanged means NextPanels holds the new layout.
	OutcomeChanged Outcome = "changed"
)

// DragInput describes one drag step against a detected zone
type DragInput struct {
	Panels []types.PanelRect
	Zone   *types.BorderZone
	// DeltaX and DeltaY are the cumulative pointer movement; only the one
	// matching the zone axis is used.
	DeltaX           float64
	DeltaY           float64
	MinPanelWidthPx  float64
	MinPanelHeightPx float64
	CenterSnap       *CenterSnap
}

// DragResult is the outcome of ApplyDragDelta
type DragResult struct {
	Outcome         Outcome
	Changed         bool
	NextPanels      []types.PanelRect
	AppliedDeltaX   float64
	AppliedDeltaY   float64
	SnappedToCenter bool
}

// AllowedRange is the window of deltas a zone can move without pushing any
// adjacent panel below its minimum size.
type AllowedRange struct {
	Min float64
	Max float64
}

// Feasible reports whether at least one delta is allowed
func (r AllowedRange) Feasible() bool {
	return r.Min <= r.Max
}

// Mid returns the center of the range
func (r AllowedRange) Mid() float64 {
	return (r.Min + r.Max) / 2
}

// ApplyDragDelta moves the seam described by the zone and returns the
// resized panels. It never panics on bad input; every problem is reported
// through the Outcome.
func ApplyDragDelta(in DragInput) DragResult {
	unchanged := func(outcome Outcome) DragResult {
		return DragResult{Outcome: outcome, NextPanels: in.Panels}
	}

	if len(in.Panels) == 0 || in.Zone == nil {
		return unchanged(OutcomeInvalid)
	}
	zone := in.Zone

	var raw, minSize float64
	switch zone.Type {
	case types.Vertical:
		raw, minSize = in.DeltaX, in.MinPanelWidthPx
	case types.Horizontal:
		raw, minSize = in.DeltaY, in.MinPanelHeightPx
	default:
		return unchanged(OutcomeInvalid)
	}
	if !isFinite(raw) {
		return unchanged(OutcomeInvalid)
	}
	if !isFinite(minSize) || minSize < 0 {
		minSize = 0
	}

	first, ok := resolvePanels(in.Panels, zone.FirstPanelIDs)
	if !ok {
		return unchanged(OutcomeInvalid)
	}
	second, ok := resolvePanels(in.Panels, zone.SecondPanelIDs)
	if !ok {
		return unchanged(OutcomeInvalid)
	}

	allowed := allowedRange(in.Panels, first, second, zone.Type, minSize)
	if !allowed.Feasible() {
		return unchanged(OutcomeNoop)
	}

	delta := raw
	snapped := false
	if in.CenterSnap != nil && in.CenterSnap.Enabled {
		mid := allowed.Mid()
		if math.Abs(raw-mid) <= in.CenterSnap.threshold(allowed.Max-allowed.Min) {
			delta = mid
			snapped = true
		}
	}

	delta = clamp(delta, allowed.Min, allowed.Max)
	if math.Abs(delta) < deadZonePx {
		return unchanged(OutcomeNoop)
	}

	next := make([]types.PanelRect, len(in.Panels))
	copy(next, in.Panels)
	for _, idx := range first {
		if zone.Type == types.Vertical {
			next[idx].Width += delta
		} else {
			next[idx].Height += delta
		}
	}
	for _, idx := range second {
		if zone.Type == types.Vertical {
			next[idx].X += delta
			next[idx].Width -= delta
		} else {
			next[idx].Y += delta
			next[idx].Height -= delta
		}
	}

	result := DragResult{
		Outcome:         OutcomeChanged,
		Changed:         true,
		NextPanels:      next,
		SnappedToCenter: snapped,
	}
	if zone.Type == types.Vertical {
		result.AppliedDeltaX = delta
	} else {
		result.AppliedDeltaY = delta
	}
	return result
}

// DragRange returns the allowed delta window for a zone, or false when the
// zone does not resolve against the panels.
func DragRange(panels []types.PanelRect, zone types.BorderZone, minPanelWidthPx, minPanelHeightPx float64) (AllowedRange, bool) {
	minSize := minPanelWidthPx
	switch zone.Type {
	case types.Vertical:
	case types.Horizontal:
		minSize = minPanelHeightPx
	default:
		return AllowedRange{}, false
	}
	if !isFinite(minSize) || minSize < 0 {
		minSize = 0
	}
	first, ok := resolvePanels(panels, zone.FirstPanelIDs)
	if !ok {
		return AllowedRange{}, false
	}
	second, ok := resolvePanels(panels, zone.SecondPanelIDs)
	if !ok {
		return AllowedRange{}, false
	}
	return allowedRange(panels, first, second, zone.Type, minSize), true
}

// allowedRange: the first side limits shrinking (negative deltas), the
// second side limits growing (positive deltas).
func allowedRange(panels []types.PanelRect, first, second []int, zoneType types.ZoneType, minSize float64) AllowedRange {
	size := func(p types.PanelRect) float64 {
		if zoneType == types.Vertical {
			return p.Width
		}
		return p.Height
	}

	r := AllowedRange{Min: math.Inf(-1), Max: math.Inf(1)}
	for _, idx := range first {
		r.Min = math.Max(r.Min, minSize-size(panels[idx]))
	}
	for _, idx := range second {
		r.Max = math.Min(r.Max, size(panels[idx])-minSize)
	}
	return r
}

// resolvePanels maps ids to indices in panels. Every id must resolve to a
// valid rect and the set must not be empty. A repeated id resolves to its
// first valid rect, the same one Detect uses.
func resolvePanels(panels []types.PanelRect, ids []string) ([]int, bool) {
	if len(ids) == 0 {
		return nil, false
	}
	index := make(map[string]int, len(panels))
	for i, p := range panels {
		if !p.Valid() {
			continue
		}
		if _, dup := index[p.PanelID]; !dup {
			index[p.PanelID] = i
		}
	}

	out := make([]int, 0, len(ids))
	seen := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		idx, ok := index[id]
		if !ok {
			return nil, false
		}
		if _, dup := seen[idx]; dup {
			continue
		}
		seen[idx] = struct{}{}
		out = append(out, idx)
	}
	return out, true
}

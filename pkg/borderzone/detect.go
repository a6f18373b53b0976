// Package borderzone finds the draggable seams between collage panels and
// resizes panels when one of those seams is dragged.
package borderzone

import (
	"fmt"
	"math"
	"sort"

	"github.com/menta2k/collage-kit/pkg/types"
)

// DetectInput is everything Detect needs for one layout
type DetectInput struct {
	ContainerWidth  float64
	ContainerHeight float64
	// BorderPixels is the nominal gap left between neighbouring panels.
	BorderPixels float64
	Panels       []types.PanelRect
	// Options may be nil to use DefaultDetectOptions.
	Options *DetectOptions
}

// edgeNode is one adjacency between a pair of panels before merging
type edgeNode struct {
	boundaryStart float64
	boundaryEnd   float64
	segStart      float64
	segEnd        float64
	first         string
	second        string
}

// edgeComponent is a merged group of edge nodes forming one seam
type edgeComponent struct {
	zoneType      types.ZoneType
	boundaryStart float64
	boundaryEnd   float64
	segStart      float64
	segEnd        float64
	first         []string
	second        []string
}

// extent is a rect projected onto one axis: near/far along the drag
// direction, from/to across it.
type extent struct {
	id   string
	near float64
	far  float64
	from float64
	to   float64
}

func project(r types.PanelRect, zoneType types.ZoneType) extent {
	if zoneType == types.Vertical {
		return extent{id: r.PanelID, near: r.X, far: r.Right(), from: r.Y, to: r.Bottom()}
	}
	return extent{id: r.PanelID, near: r.Y, far: r.Bottom(), from: r.X, to: r.Right()}
}

// Detect returns the draggable border zones for a set of panel rectangles.
// Vertical zones come first, each group ordered by boundary then segment.
// The result is never nil. When a panel id repeats, only its first valid
// rect takes part.
func Detect(in DetectInput) []types.BorderZone {
	if !isFinite(in.ContainerWidth) || !isFinite(in.ContainerHeight) ||
		in.ContainerWidth <= 0 || in.ContainerHeight <= 0 {
		return []types.BorderZone{}
	}

	opts := DefaultDetectOptions()
	if in.Options != nil {
		opts = in.Options.normalize()
	}

	border := in.BorderPixels
	if !isFinite(border) || border < 0 {
		border = 0
	}

	valid := make([]types.PanelRect, 0, len(in.Panels))
	seen := make(map[string]struct{}, len(in.Panels))
	for _, p := range in.Panels {
		if !p.Valid() {
			continue
		}
		if _, dup := seen[p.PanelID]; dup {
			continue
		}
		seen[p.PanelID] = struct{}{}
		valid = append(valid, p)
	}
	if len(valid) < 2 {
		return []types.BorderZone{}
	}

	var components []edgeComponent
	for _, zoneType := range []types.ZoneType{types.Vertical, types.Horizontal} {
		nodes := buildEdgeNodes(valid, zoneType, border, opts)
		components = append(components, mergeEdgeNodes(nodes, zoneType, border, opts)...)
	}

	sort.SliceStable(components, func(i, j int) bool {
		a, b := components[i], components[j]
		if a.zoneType != b.zoneType {
			return a.zoneType == types.Vertical
		}
		am, bm := (a.boundaryStart+a.boundaryEnd)/2, (b.boundaryStart+b.boundaryEnd)/2
		if math.Abs(am-bm) > opts.EpsilonPx {
			return am < bm
		}
		return a.segStart < b.segStart
	})

	zones := make([]types.BorderZone, 0, len(components))
	for _, c := range components {
		if zone, ok := buildZone(c, in.ContainerWidth, in.ContainerHeight, opts); ok {
			zones = append(zones, zone)
		}
	}
	assignZoneIDs(zones)
	return zones
}

// assignZoneIDs sets ID to EdgeID and suffixes repeats with |segment-N,
// counting from 2 in emission order.
//
// With unique ids and non-overlapping panels a repeat cannot occur: the
// panels on each side of one boundary are disjoint along the seam, so their
// overlap graph is a forest and cannot hold two connected components with
// the same panel sets. Overlapping input can still produce one.
func assignZoneIDs(zones []types.BorderZone) {
	emitted := make(map[string]int, len(zones))
	for i := range zones {
		emitted[zones[i].EdgeID]++
		zones[i].ID = zones[i].EdgeID
		if n := emitted[zones[i].EdgeID]; n > 1 {
			zones[i].ID = fmt.Sprintf("%s|segment-%d", zones[i].EdgeID, n)
		}
	}
}

// buildEdgeNodes records every pair of panels whose facing edges sit within
// the border gap tolerance and which share more than epsilon of seam.
func buildEdgeNodes(panels []types.PanelRect, zoneType types.ZoneType, border float64, opts DetectOptions) []edgeNode {
	tol := opts.tolerance()
	maxGap := border*2 + tol

	extents := make([]extent, len(panels))
	for i, p := range panels {
		extents[i] = project(p, zoneType)
	}

	var nodes []edgeNode
	for i, a := range extents {
		for j, b := range extents {
			if i == j || a.id == b.id {
				continue
			}
			gap := b.near - a.far
			if gap < -tol || gap > maxGap {
				continue
			}
			from := math.Max(a.from, b.from)
			to := math.Min(a.to, b.to)
			if to-from <= opts.EpsilonPx {
				continue
			}
			nodes = append(nodes, edgeNode{
				boundaryStart: a.far,
				boundaryEnd:   b.near,
				segStart:      from,
				segEnd:        to,
				first:         a.id,
				second:        b.id,
			})
		}
	}
	return nodes
}

// shouldMerge reports whether two nodes are fragments of the same seam:
// same boundary line, touching spans and at least one panel in common on the
// same side. Collinear fragments without a shared panel are independent
// splits and stay separate even when perfectly aligned.
func shouldMerge(a, b edgeNode, border float64, opts DetectOptions) bool {
	tol := opts.tolerance()
	if math.Abs(a.boundaryStart-b.boundaryStart) > tol || math.Abs(a.boundaryEnd-b.boundaryEnd) > tol {
		return false
	}
	spanGap := math.Max(a.segStart, b.segStart) - math.Min(a.segEnd, b.segEnd)
	if spanGap > border+opts.EpsilonPx {
		return false
	}
	return a.first == b.first || a.second == b.second
}

func mergeEdgeNodes(nodes []edgeNode, zoneType types.ZoneType, border float64, opts DetectOptions) []edgeComponent {
	if len(nodes) == 0 {
		return nil
	}

	set := newDisjointSet(len(nodes))
	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			if shouldMerge(nodes[i], nodes[j], border, opts) {
				set.union(i, j)
			}
		}
	}

	groups := set.groups()
	components := make([]edgeComponent, 0, len(groups))
	for _, members := range groups {
		c := edgeComponent{
			zoneType: zoneType,
			segStart: math.Inf(1),
			segEnd:   math.Inf(-1),
		}
		var first, second []string
		for _, idx := range members {
			n := nodes[idx]
			c.boundaryStart += n.boundaryStart
			c.boundaryEnd += n.boundaryEnd
			c.segStart = math.Min(c.segStart, n.segStart)
			c.segEnd = math.Max(c.segEnd, n.segEnd)
			first = append(first, n.first)
			second = append(second, n.second)
		}
		count := float64(len(members))
		c.boundaryStart /= count
		c.boundaryEnd /= count
		c.first = sortedUnique(first)
		c.second = sortedUnique(second)
		components = append(components, c)
	}
	return components
}

// buildZone turns a component into a hit box clamped to the container
func buildZone(c edgeComponent, containerWidth, containerHeight float64, opts DetectOptions) (types.BorderZone, bool) {
	alongLimit, crossLimit := containerWidth, containerHeight
	if c.zoneType == types.Horizontal {
		alongLimit, crossLimit = containerHeight, containerWidth
	}

	visStart := math.Max(c.segStart, 0)
	visEnd := math.Min(c.segEnd, crossLimit)
	visible := visEnd - visStart
	if visible <= opts.EpsilonPx {
		return types.BorderZone{}, false
	}

	band := math.Abs(c.boundaryEnd - c.boundaryStart)
	seam := (c.boundaryStart + c.boundaryEnd) / 2

	thickness := math.Max(opts.MinHitTargetPx, band+2*opts.HitPaddingPx)
	thickness = math.Min(thickness, alongLimit)

	hitLen := clamp(visible*opts.HitLengthRatio, opts.HitLengthMinPx, opts.HitLengthMaxPx)
	hitLen = math.Max(hitLen, opts.MinHitTargetPx)
	hitLen = math.Min(hitLen, visible)

	alongPos := clamp(seam-thickness/2, 0, alongLimit-thickness)
	crossPos := clamp((visStart+visEnd)/2-hitLen/2, visStart, visEnd-hitLen)

	zone := types.BorderZone{
		Type:            c.zoneType,
		BoundaryStart:   c.boundaryStart,
		BoundaryEnd:     c.boundaryEnd,
		SegmentStart:    visStart,
		SegmentEnd:      visEnd,
		FirstPanelIDs:   c.first,
		SecondPanelIDs:  c.second,
		EdgeID:          BuildStableEdgeID(c.zoneType, c.first, c.second),
		HandleLength:    math.Min(opts.HandleLengthPx, hitLen),
		HandleThickness: math.Min(opts.HandleThicknessPx, thickness),
	}

	if c.zoneType == types.Vertical {
		zone.Cursor = types.CursorColResize
		zone.X, zone.Y = alongPos, crossPos
		zone.Width, zone.Height = thickness, hitLen
	} else {
		zone.Cursor = types.CursorRowResize
		zone.X, zone.Y = crossPos, alongPos
		zone.Width, zone.Height = hitLen, thickness
	}
	zone.CenterX = zone.X + zone.Width/2
	zone.CenterY = zone.Y + zone.Height/2
	return zone, true
}

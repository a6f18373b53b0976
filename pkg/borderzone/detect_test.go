package borderzone

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/menta2k/collage-kit/pkg/types"
)

const (
	testWidth  = 400.0
	testHeight = 300.0
	testBorder = 4.0
)

func rect(id string, x, y, w, h float64) types.PanelRect {
	return types.PanelRect{PanelID: id, X: x, Y: y, Width: w, Height: h}
}

// twoColumns is a single vertical split centered on x
func twoColumns(x float64) []types.PanelRect {
	half := testBorder / 2
	return []types.PanelRect{
		rect("left", 0, 0, x-half, testHeight),
		rect("right", x+half, 0, testWidth-x-half, testHeight),
	}
}

// fivePanels builds two stacked rows with independent vertical splits at
// topSplit (panel-1 | panel-2) and bottomSplit (panel-4 | panel-5), and a
// full width panel-3 underneath.
func fivePanels(topSplit, bottomSplit float64) []types.PanelRect {
	half := testBorder / 2
	return []types.PanelRect{
		rect("panel-1", 0, 0, topSplit-half, 96),
		rect("panel-2", topSplit+half, 0, testWidth-topSplit-half, 96),
		rect("panel-3", 0, 200, testWidth, 100),
		rect("panel-4", 0, 100, bottomSplit-half, 96),
		rect("panel-5", bottomSplit+half, 100, testWidth-bottomSplit-half, 96),
	}
}

func detect(panels []types.PanelRect) []types.BorderZone {
	return Detect(DetectInput{
		ContainerWidth:  testWidth,
		ContainerHeight: testHeight,
		BorderPixels:    testBorder,
		Panels:          panels,
	})
}

func zonesOfType(zones []types.BorderZone, zoneType types.ZoneType) []types.BorderZone {
	var out []types.BorderZone
	for _, z := range zones {
		if z.Type == zoneType {
			out = append(out, z)
		}
	}
	return out
}

func edgeIDs(zones []types.BorderZone) []string {
	out := make([]string, 0, len(zones))
	for _, z := range zones {
		out = append(out, z.EdgeID)
	}
	return out
}

func TestDetectEmptyAndInvalidInput(t *testing.T) {
	assert.Empty(t, detect(nil))
	assert.Empty(t, detect([]types.PanelRect{rect("only", 0, 0, 100, 100)}))

	bad := []DetectInput{
		{ContainerWidth: 0, ContainerHeight: 300, Panels: twoColumns(200)},
		{ContainerWidth: math.NaN(), ContainerHeight: 300, Panels: twoColumns(200)},
		{ContainerWidth: 400, ContainerHeight: math.Inf(1), Panels: twoColumns(200)},
	}
	for _, in := range bad {
		zones := Detect(in)
		assert.NotNil(t, zones)
		assert.Empty(t, zones)
	}
	assert.NotNil(t, detect(nil))
}

func TestDetectEmptyResultEncodesAsArray(t *testing.T) {
	for _, zones := range [][]types.BorderZone{
		Detect(DetectInput{ContainerWidth: -1, ContainerHeight: 300, Panels: twoColumns(200)}),
		detect([]types.PanelRect{rect("only", 0, 0, 100, 100)}),
	} {
		data, err := json.Marshal(zones)
		require.NoError(t, err)
		assert.JSONEq(t, "[]", string(data))
	}
}

func TestDetectSkipsInvalidPanels(t *testing.T) {
	panels := twoColumns(200)
	panels = append(panels,
		rect("ghost", 202, 0, 0, 300),
		types.PanelRect{PanelID: "nan", X: math.NaN(), Y: 0, Width: 10, Height: 10},
	)

	zones := detect(panels)
	require.Len(t, zones, 1)
	assert.Equal(t, "v|left|right", zones[0].EdgeID)
}

func TestDetectSingleVerticalSeamGeometry(t *testing.T) {
	zones := detect(twoColumns(200))
	require.Len(t, zones, 1)
	z := zones[0]

	assert.Equal(t, types.Vertical, z.Type)
	assert.Equal(t, types.CursorColResize, z.Cursor)
	assert.Equal(t, "v|left|right", z.ID)
	assert.Equal(t, []string{"left"}, z.LeftPanelIDs())
	assert.Equal(t, []string{"right"}, z.RightPanelIDs())
	assert.InDelta(t, 198, z.BoundaryStart, 1e-9)
	assert.InDelta(t, 202, z.BoundaryEnd, 1e-9)
	assert.InDelta(t, 0, z.SegmentStart, 1e-9)
	assert.InDelta(t, 300, z.SegmentEnd, 1e-9)

	// band 4 + 2*4 padding is below the 16px minimum target
	assert.InDelta(t, 16, z.Width, 1e-9)
	// 300 * 0.5 is capped at 120
	assert.InDelta(t, 120, z.Height, 1e-9)
	assert.InDelta(t, 192, z.X, 1e-9)
	assert.InDelta(t, 90, z.Y, 1e-9)
	assert.InDelta(t, 200, z.CenterX, 1e-9)
	assert.InDelta(t, 150, z.CenterY, 1e-9)
	assert.InDelta(t, 44, z.HandleLength, 1e-9)
	assert.InDelta(t, 6, z.HandleThickness, 1e-9)
}

func TestDetectHorizontalSeam(t *testing.T) {
	panels := []types.PanelRect{
		rect("top", 0, 0, 400, 148),
		rect("bottom", 0, 152, 400, 148),
	}
	zones := detect(panels)
	require.Len(t, zones, 1)
	z := zones[0]

	assert.Equal(t, types.Horizontal, z.Type)
	assert.Equal(t, types.CursorRowResize, z.Cursor)
	assert.Equal(t, "h|top|bottom", z.EdgeID)
	assert.Equal(t, []string{"top"}, z.TopPanelIDs())
	assert.Equal(t, []string{"bottom"}, z.BottomPanelIDs())
	assert.InDelta(t, 120, z.Width, 1e-9)
	assert.InDelta(t, 16, z.Height, 1e-9)
	assert.InDelta(t, 200, z.CenterX, 1e-9)
	assert.InDelta(t, 150, z.CenterY, 1e-9)
}

func TestDetectShortSeamUsesMinimumHitLength(t *testing.T) {
	panels := []types.PanelRect{
		rect("a", 0, 0, 98, 30),
		rect("b", 102, 0, 98, 30),
	}
	zones := Detect(DetectInput{ContainerWidth: 200, ContainerHeight: 30, BorderPixels: 4, Panels: panels})
	require.Len(t, zones, 1)
	assert.InDelta(t, 24, zones[0].Height, 1e-9)
	assert.GreaterOrEqual(t, zones[0].Y, 0.0)
	assert.LessOrEqual(t, zones[0].Y+zones[0].Height, 30.0)
}

func TestDetectClampsSegmentToContainer(t *testing.T) {
	panels := []types.PanelRect{
		rect("a", 0, -50, 198, 400),
		rect("b", 202, -50, 198, 400),
	}
	zones := detect(panels)
	require.Len(t, zones, 1)
	assert.InDelta(t, 0, zones[0].SegmentStart, 1e-9)
	assert.InDelta(t, testHeight, zones[0].SegmentEnd, 1e-9)
	assert.GreaterOrEqual(t, zones[0].Y, 0.0)
	assert.LessOrEqual(t, zones[0].Y+zones[0].Height, testHeight)
}

func TestDetectDropsSeamOutsideContainer(t *testing.T) {
	panels := []types.PanelRect{
		rect("a", 0, 400, 198, 100),
		rect("b", 202, 400, 198, 100),
	}
	assert.Empty(t, detect(panels))
}

func TestDetectHitBoxStaysInsideContainerAtEdge(t *testing.T) {
	panels := []types.PanelRect{
		rect("a", 0, 0, 2, 300),
		rect("b", 6, 0, 394, 300),
	}
	zones := detect(panels)
	require.Len(t, zones, 1)
	assert.InDelta(t, 0, zones[0].X, 1e-9)
	assert.InDelta(t, 8, zones[0].CenterX, 1e-9)
}

func TestDetectMergesStackedPanelsAgainstTallPanel(t *testing.T) {
	panels := []types.PanelRect{
		rect("l1", 0, 0, 198, 96),
		rect("l2", 0, 100, 198, 100),
		rect("l3", 0, 204, 198, 96),
		rect("r", 202, 0, 198, 300),
	}
	vertical := zonesOfType(detect(panels), types.Vertical)
	require.Len(t, vertical, 1)
	assert.Equal(t, "v|l1,l2,l3|r", vertical[0].EdgeID)
	assert.InDelta(t, 0, vertical[0].SegmentStart, 1e-9)
	assert.InDelta(t, 300, vertical[0].SegmentEnd, 1e-9)
}

func TestDetectToleratesDriftedGap(t *testing.T) {
	// 7px apart is within twice the nominal border
	panels := []types.PanelRect{
		rect("a", 0, 0, 198, 300),
		rect("b", 205, 0, 195, 300),
	}
	require.Len(t, detect(panels), 1)

	// 12px apart is not
	panels[1].X = 210
	assert.Empty(t, detect(panels))
}

func TestDetectToleratesSlightOverlap(t *testing.T) {
	panels := []types.PanelRect{
		rect("a", 0, 0, 200.5, 300),
		rect("b", 200, 0, 200, 300),
	}
	zones := detect(panels)
	require.Len(t, zones, 1)
	assert.Equal(t, "v|a|b", zones[0].EdgeID)
}

func TestDetectRequiresSeamOverlap(t *testing.T) {
	// facing edges line up but the panels only touch at a corner
	panels := []types.PanelRect{
		rect("a", 0, 0, 198, 100),
		rect("b", 202, 100.2, 198, 100),
	}
	assert.Empty(t, zonesOfType(detect(panels), types.Vertical))
}

func TestDetectIgnoresRepeatedPanelIDs(t *testing.T) {
	// a and b appear again in a row below a full width panel
	panels := []types.PanelRect{
		rect("a", 0, 0, 198, 96),
		rect("b", 202, 0, 198, 96),
		rect("mid", 0, 100, 400, 96),
		rect("a", 0, 200, 198, 100),
		rect("b", 202, 200, 198, 100),
	}
	zones := detect(panels)
	vertical := zonesOfType(zones, types.Vertical)
	require.Len(t, vertical, 1)
	assert.Equal(t, "v|a|b", vertical[0].ID)
	assert.InDelta(t, 0, vertical[0].SegmentStart, 1e-9)
	assert.InDelta(t, 96, vertical[0].SegmentEnd, 1e-9)
	for _, z := range zones {
		assert.NotContains(t, z.ID, "|segment-")
	}

	res := drag(panels, vertical[0], 20, 0)
	require.Equal(t, OutcomeChanged, res.Outcome)
	assert.InDelta(t, 218, res.NextPanels[0].Width, 1e-9)
	assert.InDelta(t, 222, res.NextPanels[1].X, 1e-9)
	assert.Equal(t, panels[3], res.NextPanels[3])
	assert.Equal(t, panels[4], res.NextPanels[4])
}

func TestDetectRepeatedIDUsesFirstValidRect(t *testing.T) {
	panels := []types.PanelRect{
		rect("a", 0, 0, 0, 300),
		rect("a", 0, 0, 198, 300),
		rect("b", 202, 0, 198, 300),
	}
	zone := mustFind(t, panels, "v|a|b")
	assert.InDelta(t, 200, (zone.BoundaryStart+zone.BoundaryEnd)/2, 1e-9)

	res := drag(panels, zone, 10, 0)
	require.Equal(t, OutcomeChanged, res.Outcome)
	assert.Equal(t, panels[0], res.NextPanels[0])
	assert.InDelta(t, 208, res.NextPanels[1].Width, 1e-9)
}

func TestAssignZoneIDs(t *testing.T) {
	zones := []types.BorderZone{
		{EdgeID: "v|a|b"},
		{EdgeID: "h|a|c"},
		{EdgeID: "v|a|b"},
		{EdgeID: "v|a|b"},
	}
	assignZoneIDs(zones)

	assert.Equal(t, "v|a|b", zones[0].ID)
	assert.Equal(t, "h|a|c", zones[1].ID)
	assert.Equal(t, "v|a|b|segment-2", zones[2].ID)
	assert.Equal(t, "v|a|b|segment-3", zones[3].ID)
	for _, z := range zones {
		assert.Contains(t, []string{"v|a|b", "h|a|c"}, z.EdgeID)
	}
}

func TestDetectCustomOptions(t *testing.T) {
	opts := DetectOptions{MinHitTargetPx: 30, HitLengthRatio: 1, HitLengthMaxPx: 1000}
	zones := Detect(DetectInput{
		ContainerWidth:  testWidth,
		ContainerHeight: testHeight,
		BorderPixels:    testBorder,
		Panels:          twoColumns(200),
		Options:         &opts,
	})
	require.Len(t, zones, 1)
	assert.InDelta(t, 30, zones[0].Width, 1e-9)
	assert.InDelta(t, 300, zones[0].Height, 1e-9)
}

func TestDetectOrdersVerticalBeforeHorizontal(t *testing.T) {
	zones := detect(fivePanels(200, 150))
	require.NotEmpty(t, zones)
	seenHorizontal := false
	for _, z := range zones {
		if z.Type == types.Horizontal {
			seenHorizontal = true
			continue
		}
		assert.False(t, seenHorizontal, "vertical zone %s after a horizontal one", z.ID)
	}
	assert.True(t, seenHorizontal)
}

func TestDetectIsIdempotent(t *testing.T) {
	panels := fivePanels(210, 150)
	first := detect(panels)
	second := detect(panels)
	assert.Equal(t, first, second)
}

func TestDetectKeepsIndependentSplitsAcrossAlignment(t *testing.T) {
	for _, topSplit := range []float64{250, 200, 175, 150} {
		vertical := zonesOfType(detect(fivePanels(topSplit, 150)), types.Vertical)
		require.Len(t, vertical, 2, "top split at %v", topSplit)

		ids := edgeIDs(vertical)
		assert.Contains(t, ids, "v|panel-1|panel-2")
		assert.Contains(t, ids, "v|panel-4|panel-5")
		assert.NotEqual(t, vertical[0].EdgeID, vertical[1].EdgeID)
	}
}

func TestDetectKeepsSplitsSeparateWhileGapsPartiallyOverlap(t *testing.T) {
	for _, apart := range []float64{6, 4, 2, 0} {
		vertical := zonesOfType(detect(fivePanels(150+apart, 150)), types.Vertical)
		assert.Len(t, vertical, 2, "splits %vpx apart", apart)
	}
}

func TestDetectCouplesHorizontalSeamThroughSharedPanels(t *testing.T) {
	horizontal := zonesOfType(detect(fivePanels(200, 150)), types.Horizontal)
	ids := edgeIDs(horizontal)
	assert.Contains(t, ids, "h|panel-1,panel-2|panel-4,panel-5")
	assert.Contains(t, ids, "h|panel-4,panel-5|panel-3")
	assert.Len(t, horizontal, 2)
}

func TestBuildStableEdgeID(t *testing.T) {
	assert.Equal(t, "v|a,b|c", BuildStableEdgeID(types.Vertical, []string{"b", "a", "b"}, []string{"c"}))
	assert.Equal(t, "h|x|y,z", BuildStableEdgeID(types.Horizontal, []string{"x"}, []string{"z", "y", ""}))
	assert.Equal(t, "v||", BuildStableEdgeID(types.Vertical, nil, nil))
}

func TestFindByEdgeID(t *testing.T) {
	zones := []types.BorderZone{
		{ID: "v|a|b", EdgeID: "v|a|b"},
		{ID: "v|a|b|segment-2", EdgeID: "v|a|b"},
		{ID: "h|a|c", EdgeID: "h|a|c"},
	}

	z, ok := FindByEdgeID(zones, "h|a|c")
	require.True(t, ok)
	assert.Equal(t, "h|a|c", z.ID)

	z, ok = FindByEdgeID(zones, "v|a|b")
	require.True(t, ok)
	assert.Equal(t, "v|a|b", z.ID)

	_, ok = FindByEdgeID(zones, "v|x|y")
	assert.False(t, ok)
	_, ok = FindByEdgeID(zones, "")
	assert.False(t, ok)
}

func TestDisjointSet(t *testing.T) {
	s := newDisjointSet(6)
	s.union(0, 1)
	s.union(2, 3)
	s.union(1, 3)
	s.union(4, 4)

	assert.Equal(t, s.find(0), s.find(3))
	assert.NotEqual(t, s.find(0), s.find(4))
	assert.Equal(t, [][]int{{0, 1, 2, 3}, {4}, {5}}, s.groups())
}

func TestNormalizeOptionsFallsBack(t *testing.T) {
	opts := DetectOptions{EpsilonPx: -1, HitLengthMinPx: 200, HitLengthMaxPx: 50}.normalize()
	def := DefaultDetectOptions()
	assert.Equal(t, def.EpsilonPx, opts.EpsilonPx)
	assert.Equal(t, 200.0, opts.HitLengthMinPx)
	assert.Equal(t, 200.0, opts.HitLengthMaxPx)
	assert.Equal(t, 1.0, opts.tolerance())
}

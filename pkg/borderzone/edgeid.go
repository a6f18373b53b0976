package borderzone

import (
	"slices"
	"strings"

	"github.com/menta2k/collage-kit/pkg/types"
)

// BuildStableEdgeID derives the identity of a seam from the panel ids on its
// two sides. Coordinates play no part, so the id survives resizing.
func BuildStableEdgeID(zoneType types.ZoneType, first, second []string) string {
	prefix := "h"
	if zoneType == types.Vertical {
		prefix = "v"
	}
	return prefix + "|" + strings.Join(sortedUnique(first), ",") + "|" + strings.Join(sortedUnique(second), ",")
}

// FindByEdgeID returns the first zone whose EdgeID or ID equals edgeID
func FindByEdgeID(zones []types.BorderZone, edgeID string) (types.BorderZone, bool) {
	if edgeID == "" {
		return types.BorderZone{}, false
	}
	for _, z := range zones {
		if z.EdgeID == edgeID || z.ID == edgeID {
			return z, true
		}
	}
	return types.BorderZone{}, false
}

// sortedUnique returns a sorted copy of ids without duplicates or empty entries
func sortedUnique(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != "" {
			out = append(out, id)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

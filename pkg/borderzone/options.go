package borderzone

import "math"

// DetectOptions tunes how seams are found and how large their hit boxes are.
// Zero or negative fields fall back to the defaults.
type DetectOptions struct {
	// MinHitTargetPx is the smallest hit box thickness and length.
	MinHitTargetPx float64
	// HandleLengthPx is the visual grip length, capped by the hit length.
	HandleLengthPx float64
	// HandleThicknessPx is the visual grip thickness.
	HandleThicknessPx float64
	// EpsilonPx is the interval tolerance used for overlaps and matching.
	EpsilonPx float64
	// HitLengthRatio is the share of the visible seam covered by the hit box.
	HitLengthRatio float64
	HitLengthMinPx float64
	HitLengthMaxPx float64
	// HitPaddingPx widens the gap band on each side.
	HitPaddingPx float64
}

// DefaultDetectOptions returns the default detection heuristics
func DefaultDetectOptions() DetectOptions {
	return DetectOptions{
		MinHitTargetPx:    16,
		HandleLengthPx:    44,
		HandleThicknessPx: 6,
		EpsilonPx:         0.5,
		HitLengthRatio:    0.5,
		HitLengthMinPx:    24,
		HitLengthMaxPx:    120,
		HitPaddingPx:      4,
	}
}

func (o DetectOptions) normalize() DetectOptions {
	def := DefaultDetectOptions()
	pick := func(v, fallback float64) float64 {
		if !isFinite(v) || v <= 0 {
			return fallback
		}
		return v
	}
	out := DetectOptions{
		MinHitTargetPx:    pick(o.MinHitTargetPx, def.MinHitTargetPx),
		HandleLengthPx:    pick(o.HandleLengthPx, def.HandleLengthPx),
		HandleThicknessPx: pick(o.HandleThicknessPx, def.HandleThicknessPx),
		EpsilonPx:         pick(o.EpsilonPx, def.EpsilonPx),
		HitLengthRatio:    pick(o.HitLengthRatio, def.HitLengthRatio),
		HitLengthMinPx:    pick(o.HitLengthMinPx, def.HitLengthMinPx),
		HitLengthMaxPx:    pick(o.HitLengthMaxPx, def.HitLengthMaxPx),
		HitPaddingPx:      pick(o.HitPaddingPx, def.HitPaddingPx),
	}
	if out.HitLengthMaxPx < out.HitLengthMinPx {
		out.HitLengthMaxPx = out.HitLengthMinPx
	}
	return out
}

// tolerance is the slack allowed when matching boundary coordinates
func (o DetectOptions) tolerance() float64 {
	return math.Max(o.EpsilonPx, 1)
}

// CenterSnap makes a drag stick to the middle of its allowed range when the
// requested delta is close enough to it.
type CenterSnap struct {
	Enabled bool
	// ThresholdPx overrides the ratio based threshold when positive.
	ThresholdPx    float64
	ThresholdRatio float64
	ThresholdMinPx float64
	ThresholdMaxPx float64
}

// DefaultCenterSnap returns an enabled center snap with default thresholds
func DefaultCenterSnap() CenterSnap {
	return CenterSnap{
		Enabled:        true,
		ThresholdRatio: 0.05,
		ThresholdMinPx: 4,
		ThresholdMaxPx: 16,
	}
}

// threshold returns the snap distance for an allowed range of the given span
func (c CenterSnap) threshold(span float64) float64 {
	if isFinite(c.ThresholdPx) && c.ThresholdPx > 0 {
		return c.ThresholdPx
	}
	def := DefaultCenterSnap()
	ratio, lo, hi := c.ThresholdRatio, c.ThresholdMinPx, c.ThresholdMaxPx
	if !isFinite(ratio) || ratio <= 0 {
		ratio = def.ThresholdRatio
	}
	if !isFinite(lo) || lo < 0 {
		lo = def.ThresholdMinPx
	}
	if !isFinite(hi) || hi <= 0 {
		hi = def.ThresholdMaxPx
	}
	if hi < lo {
		hi = lo
	}
	return clamp(span*ratio, lo, hi)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// clamp ensures a value is within the given bounds
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

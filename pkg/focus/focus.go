// Package focus picks the point of a panel image that should stay visible
// when the image is cropped to its panel.
package focus

import (
	"context"
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// DefaultSaliencyMaxDim is the long side of the copy saliency is measured on
const DefaultSaliencyMaxDim = 128

// CenterFocuser always focuses the middle of the image
type CenterFocuser struct{}

// Focus returns (0.5, 0.5)
func (CenterFocuser) Focus(_ context.Context, _ image.Image) (float64, float64, error) {
	return 0.5, 0.5, nil
}

// SaliencyFocuser focuses the centroid of edge energy. Flat images focus
// the center.
type SaliencyFocuser struct {
	MaxDim int
}

// NewSaliencyFocuser creates a saliency focuser with default settings
func NewSaliencyFocuser() *SaliencyFocuser {
	return &SaliencyFocuser{MaxDim: DefaultSaliencyMaxDim}
}

// Focus computes the energy centroid on a downscaled copy of img
func (s *SaliencyFocuser) Focus(ctx context.Context, img image.Image) (float64, float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, 0, err
	}
	b := img.Bounds()
	if b.Empty() {
		return 0.5, 0.5, nil
	}

	maxDim := s.MaxDim
	if maxDim <= 0 {
		maxDim = DefaultSaliencyMaxDim
	}
	small := imaging.Clone(img)
	if b.Dx() > maxDim || b.Dy() > maxDim {
		small = imaging.Fit(img, maxDim, maxDim, imaging.Box)
	}

	lum := luminance(small)
	w, h := small.Bounds().Dx(), small.Bounds().Dy()

	var total, sx, sy float64
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			e := edgeEnergy(lum, w, h, x, y)
			if e == 0 {
				continue
			}
			total += e
			sx += e * (float64(x) + 0.5)
			sy += e * (float64(y) + 0.5)
		}
	}
	if total < 1e-9 {
		return 0.5, 0.5, nil
	}
	return clamp(sx/total/float64(w), 0, 1), clamp(sy/total/float64(h), 0, 1), nil
}

// luminance returns Rec. 601 luma in [0,1], row-major
func luminance(img *image.NRGBA) []float64 {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	out := make([]float64, w*h)
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride:]
		for x := 0; x < w; x++ {
			p := row[x*4 : x*4+4]
			a := float64(p[3]) / 255
			out[y*w+x] = a * (0.299*float64(p[0]) + 0.587*float64(p[1]) + 0.114*float64(p[2])) / 255
		}
	}
	return out
}

// edgeEnergy is the central-difference gradient magnitude, clamped at borders
func edgeEnergy(lum []float64, w, h, x, y int) float64 {
	at := func(x, y int) float64 {
		x = min(max(x, 0), w-1)
		y = min(max(y, 0), h-1)
		return lum[y*w+x]
	}
	gx := at(x+1, y) - at(x-1, y)
	gy := at(x, y+1) - at(x, y-1)
	return math.Hypot(gx, gy)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

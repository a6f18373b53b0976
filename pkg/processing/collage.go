package processing

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"

	"github.com/menta2k/collage-kit/pkg/types"
)

// Focuser picks the normalized point of an image that should stay visible
// when it is cropped into a panel
type Focuser interface {
	Focus(ctx context.Context, img image.Image) (cx, cy float64, err error)
}

// CollageSpec describes one collage render
type CollageSpec struct {
	Width      int
	Height     int
	Background color.Color
	Panels     []types.PanelRect
	// Images maps panel ids to their source images. Panels without an
	// image are left as background.
	Images map[string]image.Image
	// Focus may be nil to center every crop.
	Focus Focuser
}

// ComposeCollage paints every panel image into its rectangle
func (p *Processor) ComposeCollage(ctx context.Context, spec CollageSpec) (*image.NRGBA, error) {
	if spec.Width <= 0 || spec.Height <= 0 {
		return nil, fmt.Errorf("invalid collage size %dx%d", spec.Width, spec.Height)
	}
	bg := spec.Background
	if bg == nil {
		bg = color.White
	}
	canvas := imaging.New(spec.Width, spec.Height, bg)
	frame := canvas.Bounds()

	for _, panel := range spec.Panels {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !panel.Valid() {
			continue
		}
		img, ok := spec.Images[panel.PanelID]
		if !ok || img == nil {
			continue
		}

		rect := PanelBounds(panel)
		if rect.Intersect(frame).Empty() {
			continue
		}

		cx, cy := 0.5, 0.5
		if spec.Focus != nil {
			fx, fy, err := spec.Focus.Focus(ctx, img)
			if err != nil {
				return nil, fmt.Errorf("focus for panel %s: %w", panel.PanelID, err)
			}
			cx, cy = fx, fy
		}

		filled, err := FillPanel(img, cx, cy, rect.Dx(), rect.Dy())
		if err != nil {
			return nil, fmt.Errorf("fill panel %s: %w", panel.PanelID, err)
		}
		canvas = imaging.Paste(canvas, filled, rect.Min)
	}
	return canvas, nil
}

// CreateZoneOverlay draws every zone hit box and its grip handle on a copy
// of img
func CreateZoneOverlay(img image.Image, zones []types.BorderZone) *image.NRGBA {
	nrgba := imaging.Clone(img)

	box := color.NRGBA{R: 255, G: 204, B: 0, A: 255}
	vertical := color.NRGBA{R: 255, A: 255}
	horizontal := color.NRGBA{G: 170, B: 255, A: 255}

	for _, z := range zones {
		x0 := int(math.Round(z.X))
		y0 := int(math.Round(z.Y))
		x1 := int(math.Round(z.X + z.Width))
		y1 := int(math.Round(z.Y + z.Height))
		drawRect(nrgba, x0, y0, x1, y1, box)

		handle := vertical
		hw, hh := z.HandleThickness, z.HandleLength
		if z.Type == types.Horizontal {
			handle = horizontal
			hw, hh = z.HandleLength, z.HandleThickness
		}
		fillRect(nrgba,
			int(math.Round(z.CenterX-hw/2)), int(math.Round(z.CenterY-hh/2)),
			int(math.Round(z.CenterX+hw/2)), int(math.Round(z.CenterY+hh/2)),
			handle)
	}
	return nrgba
}

func drawRect(img *image.NRGBA, x0, y0, x1, y1 int, c color.NRGBA) {
	if x1 <= x0 || y1 <= y0 {
		return
	}
	drawHLine(img, y0, x0, x1, c)
	drawHLine(img, y1-1, x0, x1, c)
	drawVLine(img, x0, y0, y1, c)
	drawVLine(img, x1-1, y0, y1, c)
}

func fillRect(img *image.NRGBA, x0, y0, x1, y1 int, c color.NRGBA) {
	for y := y0; y < y1; y++ {
		drawHLine(img, y, x0, x1, c)
	}
}

func drawHLine(img *image.NRGBA, y, x0, x1 int, c color.NRGBA) {
	if y < 0 || y >= img.Bounds().Dy() {
		return
	}
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if x1 <= 0 || x0 >= img.Bounds().Dx() {
		return
	}
	if x0 < 0 {
		x0 = 0
	}
	if x1 > img.Bounds().Dx() {
		x1 = img.Bounds().Dx()
	}
	i := y*img.Stride + x0*4
	for x := x0; x < x1; x++ {
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
		i += 4
	}
}

func drawVLine(img *image.NRGBA, x, y0, y1 int, c color.NRGBA) {
	if x < 0 || x >= img.Bounds().Dx() {
		return
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	if y1 <= 0 || y0 >= img.Bounds().Dy() {
		return
	}
	if y0 < 0 {
		y0 = 0
	}
	if y1 > img.Bounds().Dy() {
		y1 = img.Bounds().Dy()
	}
	i := y0*img.Stride + x*4
	for y := y0; y < y1; y++ {
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
		i += img.Stride
	}
}

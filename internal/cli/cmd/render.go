package cmd

import (
	"fmt"
	"image"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/menta2k/collage-kit/internal/config"
	"github.com/menta2k/collage-kit/internal/logging"
	"github.com/menta2k/collage-kit/internal/utils"
	"github.com/menta2k/collage-kit/pkg/focus"
	"github.com/menta2k/collage-kit/pkg/llamacpp"
	"github.com/menta2k/collage-kit/pkg/ollama"
	"github.com/menta2k/collage-kit/pkg/processing"
)

func newRenderCmd(a *app) *cobra.Command {
	var (
		layoutPath string
		imagesDir  string
		outPath    string
		overlay    bool
		focusMode  string
	)

	c := &cobra.Command{
		Use:   "render",
		Short: "Render a layout with panel images",
		Long: `Fill every panel of a layout with an image from --images and save the
collage. An image named after a panel id (panel-1.jpg) goes to that panel;
the other panels take the remaining images in name order. Without --out the
collage is written next to the layout as <layout>_collage.<render.format>.

Examples:
  collage-kit render --layout layout.json --images ./photos
  collage-kit render --layout layout.json --images ./photos --out collage.jpg
  collage-kit render --layout layout.json --images ./photos --out debug.png --overlay --focus none`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if imagesDir == "" {
				return fmt.Errorf("--images is required")
			}
			if focusMode != "" {
				a.cfg.Focus.Mode = focusMode
				if err := a.cfg.Validate(); err != nil {
					return err
				}
			}

			ctx := logging.WithComponent(cmd.Context(), "render")
			logger := logging.FromContext(ctx)

			ed, err := a.editor(cmd.Context(), layoutPath, false)
			if err != nil {
				return err
			}
			layout := ed.Layout()
			if outPath == "" {
				outPath = utils.GenerateOutputFilename(layoutPath, "_collage", a.cfg.Render.Format)
			}

			files, err := utils.ListImageFiles(imagesDir)
			if err != nil {
				return fmt.Errorf("list images: %w", err)
			}
			ids := make([]string, len(layout.Panels))
			for i, p := range layout.Panels {
				ids[i] = p.PanelID
			}
			assigned := utils.AssignImages(ids, files)

			var (
				panelIDs []string
				sources  []string
			)
			for _, id := range ids {
				if src, ok := assigned[id]; ok {
					panelIDs = append(panelIDs, id)
					sources = append(sources, src)
				}
			}

			proc := processing.NewProcessor()
			loaded, err := proc.LoadImages(ctx, sources, a.cfg.Render.Concurrency)
			if err != nil {
				return err
			}
			images := make(map[string]image.Image, len(loaded))
			for i, img := range loaded {
				images[panelIDs[i]] = img
			}
			logger.Debug().Int("panels", len(ids)).Int("images", len(images)).Msg("images loaded")

			focuser, err := newFocuser(a.cfg.Focus)
			if err != nil {
				return err
			}
			bg, err := processing.ParseHexColor(a.cfg.Render.Background)
			if err != nil {
				return err
			}

			collage, err := proc.ComposeCollage(ctx, processing.CollageSpec{
				Width:      int(math.Round(layout.Width)),
				Height:     int(math.Round(layout.Height)),
				Background: bg,
				Panels:     layout.Panels,
				Images:     images,
				Focus:      focuser,
			})
			if err != nil {
				return err
			}
			if overlay {
				collage = processing.CreateZoneOverlay(collage, ed.Zones())
			}

			format := utils.GetFileExtension(outPath)
			if format == "" {
				format = a.cfg.Render.Format
				outPath += "." + strings.ToLower(format)
			}
			if err := utils.EnsureDir(filepath.Dir(outPath)); err != nil {
				return err
			}
			if err := proc.SaveImage(collage, outPath, format, a.cfg.Render.Quality, a.cfg.Render.Lossless); err != nil {
				return fmt.Errorf("save %s: %w", outPath, err)
			}

			event := logger.Info().Str("out", outPath)
			if info, err := os.Stat(outPath); err == nil {
				event = event.Str("size", utils.FormatFileSize(info.Size()))
			}
			event.Msg("collage written")
			fmt.Fprintln(cmd.OutOrStdout(), outPath)
			return nil
		},
	}
	c.Flags().StringVar(&layoutPath, "layout", "", "layout JSON file")
	c.Flags().StringVar(&imagesDir, "images", "", "directory with panel images")
	c.Flags().StringVar(&outPath, "out", "", "output image (jpg, png or webp); defaults to <layout>_collage.<render.format>")
	c.Flags().BoolVar(&overlay, "overlay", false, "draw border hit boxes and handles")
	c.Flags().StringVar(&focusMode, "focus", "", "focus mode: none, saliency, ollama or llamacpp")
	return c
}

// newFocuser builds the focuser selected by the focus config
func newFocuser(cfg config.FocusConfig) (processing.Focuser, error) {
	var m *focus.ModelFocuser
	switch cfg.Mode {
	case "none":
		return focus.CenterFocuser{}, nil
	case "saliency":
		return focus.NewSaliencyFocuser(), nil
	case "ollama":
		c, err := ollama.NewClient(cfg.OllamaURL)
		if err != nil {
			return nil, fmt.Errorf("create ollama client: %w", err)
		}
		m = focus.NewModelFocuser(c, cfg.Model)
	case "llamacpp":
		c, err := llamacpp.NewClient(cfg.LlamaCppURL)
		if err != nil {
			return nil, fmt.Errorf("create llama.cpp client: %w", err)
		}
		m = focus.NewModelFocuser(c, cfg.Model)
	default:
		return nil, fmt.Errorf("unknown focus mode %q", cfg.Mode)
	}
	m.MinConfidence = cfg.MinConfidence
	m.SendSize = cfg.SendSize
	m.SendQuality = cfg.SendQuality
	return m, nil
}

package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/menta2k/collage-kit/internal/logging"
	"github.com/menta2k/collage-kit/pkg/focus"
	"github.com/menta2k/collage-kit/pkg/processing"
)

// focusOutput is the JSON printed by the focus command
type focusOutput struct {
	Image string  `json:"image"`
	Mode  string  `json:"mode"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

func newFocusCmd(a *app) *cobra.Command {
	var (
		imagePath string
		focusMode string
		describe  bool
	)

	c := &cobra.Command{
		Use:   "focus",
		Short: "Print the focal point render would use for an image",
		Long: `Compute the normalized focal point of one image with the configured focus
mode. With --describe the raw answer of the vision model is printed instead,
which helps when tuning prompts for the ollama and llamacpp modes.

Examples:
  collage-kit focus --image photo.jpg --focus saliency
  collage-kit focus --image photo.jpg --focus ollama --describe`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if imagePath == "" {
				return fmt.Errorf("--image is required")
			}
			if focusMode != "" {
				a.cfg.Focus.Mode = focusMode
				if err := a.cfg.Validate(); err != nil {
					return err
				}
			}

			ctx := logging.WithComponent(cmd.Context(), "focus")
			logger := logging.FromContext(ctx)

			img, err := processing.NewProcessor().LoadImageSmart(ctx, imagePath)
			if err != nil {
				return err
			}
			focuser, err := newFocuser(a.cfg.Focus)
			if err != nil {
				return err
			}

			if describe {
				model, ok := focuser.(*focus.ModelFocuser)
				if !ok {
					return fmt.Errorf("--describe needs a model focus mode, got %q", a.cfg.Focus.Mode)
				}
				answer, err := model.Describe(ctx, img)
				if err != nil {
					return err
				}
				logger.Debug().Str("model", model.Model).Int("bytes", len(answer)).Msg("model answered")
				fmt.Fprintln(cmd.OutOrStdout(), answer)
				return nil
			}

			x, y, err := focuser.Focus(ctx, img)
			if err != nil {
				return err
			}
			logger.Debug().Float64("x", x).Float64("y", y).Msg("focal point")

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(focusOutput{Image: imagePath, Mode: a.cfg.Focus.Mode, X: x, Y: y})
		},
	}
	c.Flags().StringVar(&imagePath, "image", "", "image file or URL")
	c.Flags().StringVar(&focusMode, "focus", "", "focus mode: none, saliency, ollama or llamacpp")
	c.Flags().BoolVar(&describe, "describe", false, "print the raw vision model answer")
	return c
}

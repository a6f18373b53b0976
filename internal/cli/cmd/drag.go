package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/menta2k/collage-kit/pkg/types"
)

// dragOutput is the JSON printed by the drag command
type dragOutput struct {
	Edge            string            `json:"edgeId"`
	Outcome         string            `json:"outcome"`
	Changed         bool              `json:"changed"`
	AppliedDeltaX   float64           `json:"appliedDeltaX"`
	AppliedDeltaY   float64           `json:"appliedDeltaY"`
	SnappedToCenter bool              `json:"snappedToCenter"`
	Panels          []types.PanelRect `json:"panels"`
	Written         bool              `json:"written"`
}

func newDragCmd(a *app) *cobra.Command {
	var (
		layoutPath string
		edge       string
		dx, dy     float64
		snap       bool
		write      bool
	)

	c := &cobra.Command{
		Use:   "drag",
		Short: "Drag one border of a layout",
		Long: `Apply a drag delta to the border zone with the given edge id and print the
resulting panels. Vertical borders use --dx, horizontal borders use --dy.

Examples:
  collage-kit drag --layout layout.json --edge "v|panel-1|panel-2" --dx 24
  collage-kit drag --layout layout.json --edge "h|panel-1|panel-3" --dy -10 --snap --write`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if edge == "" {
				return fmt.Errorf("--edge is required")
			}
			ed, err := a.editor(cmd.Context(), layoutPath, snap)
			if err != nil {
				return err
			}

			res, err := ed.Drag(edge, dx, dy)
			if err != nil {
				return err
			}

			out := dragOutput{
				Edge:            edge,
				Outcome:         string(res.Outcome),
				Changed:         res.Changed,
				AppliedDeltaX:   res.AppliedDeltaX,
				AppliedDeltaY:   res.AppliedDeltaY,
				SnappedToCenter: res.SnappedToCenter,
				Panels:          ed.Panels(),
			}
			if write && res.Changed {
				if err := types.SaveLayout(layoutPath, ed.Layout()); err != nil {
					return err
				}
				out.Written = true
				a.logger.Info().Str("layout", layoutPath).Msg("layout updated")
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}
	c.Flags().StringVar(&layoutPath, "layout", "", "layout JSON file")
	c.Flags().StringVar(&edge, "edge", "", "edge id of the border to drag")
	c.Flags().Float64Var(&dx, "dx", 0, "horizontal drag delta in pixels")
	c.Flags().Float64Var(&dy, "dy", 0, "vertical drag delta in pixels")
	c.Flags().BoolVar(&snap, "snap", false, "snap to the middle of the allowed range")
	c.Flags().BoolVar(&write, "write", false, "write the changed layout back to --layout")
	return c
}

package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

func newZonesCmd(a *app) *cobra.Command {
	var layoutPath string

	c := &cobra.Command{
		Use:   "zones",
		Short: "Print the draggable border zones of a layout",
		Long: `Detect the border zones of a layout and print them as JSON.

Examples:
  collage-kit zones --layout layout.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ed, err := a.editor(cmd.Context(), layoutPath, false)
			if err != nil {
				return err
			}
			zones := ed.Zones()
			a.logger.Info().Int("zones", len(zones)).Str("layout", layoutPath).Msg("detected border zones")

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(zones)
		},
	}
	c.Flags().StringVar(&layoutPath, "layout", "", "layout JSON file")
	return c
}

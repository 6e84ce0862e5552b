package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/fxdev/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove build artifacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ui, _ := cmd.Flags().GetBool("ui")

			return c.app.Clean(cmd.Context(), app.CleanOptions{
				UI: ui,
			})
		},
	}

	cmd.Flags().BoolP("ui", "u", false, "Also remove the UI dist directory")

	return cmd
}

package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/fxdev/internal/app"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Rebuild targets on change and restart the resource",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			game, _ := cmd.Flags().GetString("game")
			address, _ := cmd.Flags().GetString("address")

			return c.app.Watch(cmd.Context(), app.WatchOptions{
				Game:    game,
				Address: address,
			})
		},
	}

	cmd.Flags().StringP("game", "g", "", "Override the configured game (gta5 or rdr3)")
	cmd.Flags().StringP("address", "a", "", "Override the resolved server address")

	return cmd
}

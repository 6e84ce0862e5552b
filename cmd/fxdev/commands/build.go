package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/fxdev/internal/app"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build all targets once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			game, _ := cmd.Flags().GetString("game")
			address, _ := cmd.Flags().GetString("address")

			return c.app.Build(cmd.Context(), app.BuildOptions{
				Game:    game,
				Address: address,
			})
		},
	}

	cmd.Flags().StringP("game", "g", "", "Override the configured game (gta5 or rdr3)")
	cmd.Flags().StringP("address", "a", "", "Override the resolved server address")

	return cmd
}

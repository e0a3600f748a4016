package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSyncCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Refresh items from the remote backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Calendar.RefreshItems(cmd.Context()); err != nil {
				return err
			}
			if !app.Calendar.Connectivity() {
				fmt.Println("Backend unreachable, showing local data.")
				return nil
			}
			fmt.Printf("Synced %d items\n", len(app.Calendar.Items()))
			return nil
		},
	}
}

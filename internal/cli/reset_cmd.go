package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newResetDataCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reset-data",
		Short: "Wipe stored items and reseed the starter data",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				fmt.Print("This wipes all stored items. Continue? [y/N]: ")
				reader := bufio.NewReader(os.Stdin)
				answer, _ := reader.ReadString('\n')
				if strings.TrimSpace(strings.ToLower(answer)) != "y" {
					fmt.Println("Aborted.")
					return nil
				}
			}

			items, err := app.Calendar.ResetData(context.Background())
			if err != nil {
				return err
			}
			fmt.Printf("Reset complete, %d starter items seeded\n", len(items))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip the confirmation prompt")

	return cmd
}

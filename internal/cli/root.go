// Package cli wires the calendar engine into a cobra command tree.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/selfforge/calendar/internal/service"
)

// App holds the service surface used by CLI commands.
type App struct {
	Calendar *service.CalendarService
}

// NewRootCmd creates the top-level "selfforge-cal" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "selfforge-cal",
		Short: "Calendar and task scheduling engine",
	}

	root.AddCommand(
		newItemCmd(app),
		newCategoryCmd(app),
		newViewCmd(app),
		newSyncCmd(app),
		newResetDataCmd(app),
	)

	return root
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/selfforge/calendar/internal/category"
)

func newCategoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage categories",
	}

	cmd.AddCommand(
		newCategoryListCmd(app),
		newCategoryAddCmd(app),
		newCategoryRenameCmd(app),
		newCategoryRecolorCmd(app),
		newCategoryDeleteCmd(app),
		newCategoryResetCmd(app),
	)

	return cmd
}

func newCategoryListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, c := range app.Calendar.Categories().List() {
				tag := ""
				if c.IsDefault {
					tag = " (default)"
				}
				fmt.Printf("%-14s %-14s %s%s\n", c.ID, c.Label, c.Color, tag)
			}
			return nil
		},
	}
}

func colorFlags(cmd *cobra.Command, tokens *category.ColorTokens) {
	cmd.Flags().StringVar(&tokens.Color, "color", "#0891b2", "Foreground color token")
	cmd.Flags().StringVar(&tokens.BgColor, "bg", "#cffafe", "Background color token")
	cmd.Flags().StringVar(&tokens.BorderColor, "border", "#67e8f9", "Border color token")
}

func newCategoryAddCmd(app *App) *cobra.Command {
	var tokens category.ColorTokens

	cmd := &cobra.Command{
		Use:   "add <label>",
		Short: "Create a custom category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.Calendar.Categories().Add(args[0], tokens)
			if err != nil {
				return err
			}
			fmt.Printf("Created category %s (%s)\n", c.Label, c.ID)
			return nil
		},
	}

	colorFlags(cmd, &tokens)
	return cmd
}

func newCategoryRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <label>",
		Short: "Rename a custom category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.Calendar.Categories().Update(args[0], category.Patch{Label: &args[1]})
			if err != nil {
				return err
			}
			fmt.Printf("Renamed %s to %s\n", c.ID, c.Label)
			return nil
		},
	}
}

func newCategoryRecolorCmd(app *App) *cobra.Command {
	var tokens category.ColorTokens

	cmd := &cobra.Command{
		Use:   "recolor <id>",
		Short: "Change a category's colors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.Calendar.Categories().Update(args[0], category.Patch{Colors: &tokens})
			if err != nil {
				return err
			}
			fmt.Printf("Recolored %s (%s)\n", c.Label, c.Color)
			return nil
		},
	}

	colorFlags(cmd, &tokens)
	return cmd
}

func newCategoryDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a custom category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Calendar.Categories().Delete(args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted category %s\n", args[0])
			return nil
		},
	}
}

func newCategoryResetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore the default categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			cats, err := app.Calendar.Categories().ResetToDefaults()
			if err != nil {
				return err
			}
			fmt.Printf("Restored %d default categories\n", len(cats))
			return nil
		},
	}
}

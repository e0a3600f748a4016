package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/selfforge/calendar/internal/dateutil"
	"github.com/selfforge/calendar/internal/domain"
	"github.com/selfforge/calendar/internal/query"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04"
)

func parseDay(s string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}

func parseInstant(s string) (time.Time, error) {
	t, err := time.ParseInLocation(dateTimeLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid datetime %q (want YYYY-MM-DD HH:MM): %w", s, err)
	}
	return t, nil
}

func newItemCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Manage tasks and events",
	}

	cmd.AddCommand(
		newItemListCmd(app),
		newItemAddTaskCmd(app),
		newItemAddEventCmd(app),
		newItemEditCmd(app),
		newItemCompleteCmd(app),
		newItemDeleteCmd(app),
	)

	return cmd
}

func newItemListCmd(app *App) *cobra.Command {
	var day, kind, categoryID string
	var completed bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List items for a day",
		RunE: func(cmd *cobra.Command, args []string) error {
			date := time.Now()
			if day != "" {
				var err error
				date, err = parseDay(day)
				if err != nil {
					return err
				}
			}

			if kind != "" && !domain.ValidItemKinds[domain.ItemKind(kind)] {
				return fmt.Errorf("unknown kind %q (want task or event)", kind)
			}

			items := app.Calendar.ItemsForDate(date)
			opts := query.FilterOpts{
				Kind:       domain.ItemKind(kind),
				CategoryID: categoryID,
			}
			if cmd.Flags().Changed("completed") {
				opts.Completed = &completed
			}
			items = query.Filter(items, opts)

			if len(items) == 0 {
				fmt.Println("No items found.")
				return nil
			}
			for _, it := range items {
				fmt.Println(formatItemLine(it, app.Calendar.Categories()))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&day, "date", "", "Day to list (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&kind, "kind", "", "Filter by kind (task|event)")
	cmd.Flags().StringVar(&categoryID, "category", "", "Filter by category id")
	cmd.Flags().BoolVar(&completed, "completed", false, "Filter tasks by completion state")

	return cmd
}

func addItemFlags(cmd *cobra.Command, title, desc, start, end, categoryID *string, allDay *bool) {
	cmd.Flags().StringVar(title, "title", "", "Item title")
	cmd.Flags().StringVar(desc, "description", "", "Item description")
	cmd.Flags().StringVar(start, "start", "", `Start (YYYY-MM-DD HH:MM)`)
	cmd.Flags().StringVar(end, "end", "", `End (YYYY-MM-DD HH:MM)`)
	cmd.Flags().StringVar(categoryID, "category", "work", "Category id")
	cmd.Flags().BoolVar(allDay, "all-day", false, "All-day item")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("start")
}

func buildDraft(title, desc, start, end, categoryID string, allDay bool) (domain.ItemDraft, error) {
	startAt, err := parseInstant(start)
	if err != nil {
		return domain.ItemDraft{}, err
	}
	endAt := startAt
	if end != "" {
		endAt, err = parseInstant(end)
		if err != nil {
			return domain.ItemDraft{}, err
		}
	} else if !allDay {
		endAt = dateutil.EndOfDay(startAt)
	}
	return domain.ItemDraft{
		Title:         title,
		Description:   desc,
		StartDateTime: startAt,
		EndDateTime:   endAt,
		CategoryID:    categoryID,
		AllDay:        allDay,
	}, nil
}

func newItemAddTaskCmd(app *App) *cobra.Command {
	var title, desc, start, end, categoryID, priority string
	var allDay bool
	var estimated int

	cmd := &cobra.Command{
		Use:   "add-task",
		Short: "Create a new task",
		RunE: func(cmd *cobra.Command, args []string) error {
			draft, err := buildDraft(title, desc, start, end, categoryID, allDay)
			if err != nil {
				return err
			}
			draft.Priority = domain.Priority(priority)
			if estimated > 0 {
				draft.EstimatedMin = &estimated
			}

			task, err := app.Calendar.AddTask(context.Background(), draft)
			if err != nil {
				return err
			}
			fmt.Printf("Created task %s [%s]\n", task.Title, shortID(task.ID))
			return nil
		},
	}

	addItemFlags(cmd, &title, &desc, &start, &end, &categoryID, &allDay)
	cmd.Flags().StringVar(&priority, "priority", "medium", "Priority (low|medium|high)")
	cmd.Flags().IntVar(&estimated, "estimate", 0, "Estimated duration in minutes")

	return cmd
}

func newItemAddEventCmd(app *App) *cobra.Command {
	var title, desc, start, end, categoryID, location string
	var allDay bool
	var attendees []string

	cmd := &cobra.Command{
		Use:   "add-event",
		Short: "Create a new event",
		RunE: func(cmd *cobra.Command, args []string) error {
			draft, err := buildDraft(title, desc, start, end, categoryID, allDay)
			if err != nil {
				return err
			}
			draft.Location = location
			draft.Attendees = attendees

			event, err := app.Calendar.AddEvent(context.Background(), draft)
			if err != nil {
				return err
			}
			fmt.Printf("Created event %s [%s]\n", event.Title, shortID(event.ID))
			return nil
		},
	}

	addItemFlags(cmd, &title, &desc, &start, &end, &categoryID, &allDay)
	cmd.Flags().StringVar(&location, "location", "", "Event location")
	cmd.Flags().StringSliceVar(&attendees, "attendee", nil, "Attendee (repeatable)")

	return cmd
}

func newItemEditCmd(app *App) *cobra.Command {
	var title, desc, start, end, categoryID, priority string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveItemID(app, args[0])
			if err != nil {
				return err
			}

			var patch domain.Patch
			if cmd.Flags().Changed("title") {
				patch.Title = &title
			}
			if cmd.Flags().Changed("description") {
				patch.Description = &desc
			}
			if cmd.Flags().Changed("start") {
				at, err := parseInstant(start)
				if err != nil {
					return err
				}
				patch.StartDateTime = &at
			}
			if cmd.Flags().Changed("end") {
				at, err := parseInstant(end)
				if err != nil {
					return err
				}
				patch.EndDateTime = &at
			}
			if cmd.Flags().Changed("category") {
				patch.CategoryID = &categoryID
			}
			if cmd.Flags().Changed("priority") {
				p := domain.Priority(priority)
				patch.Priority = &p
			}

			updated, err := app.Calendar.UpdateItemByID(context.Background(), id, patch)
			if err != nil {
				return err
			}
			fmt.Printf("Updated %s [%s]\n", updated.Base().Title, shortID(id))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&desc, "description", "", "New description")
	cmd.Flags().StringVar(&start, "start", "", `New start (YYYY-MM-DD HH:MM)`)
	cmd.Flags().StringVar(&end, "end", "", `New end (YYYY-MM-DD HH:MM)`)
	cmd.Flags().StringVar(&categoryID, "category", "", "New category id")
	cmd.Flags().StringVar(&priority, "priority", "", "New priority (low|medium|high)")

	return cmd
}

func newItemCompleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "complete <id>",
		Short: "Toggle task completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveItemID(app, args[0])
			if err != nil {
				return err
			}
			task, err := app.Calendar.ToggleTaskCompletion(context.Background(), id)
			if err != nil {
				return err
			}
			state := "open"
			if task.Completed {
				state = "done"
			}
			fmt.Printf("Task %s is now %s\n", task.Title, state)
			return nil
		},
	}
}

func newItemDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveItemID(app, args[0])
			if err != nil {
				return err
			}
			if err := app.Calendar.DeleteItem(context.Background(), id); err != nil {
				return err
			}
			fmt.Printf("Deleted %s\n", shortID(id))
			return nil
		},
	}
}

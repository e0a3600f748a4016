package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/selfforge/calendar/internal/dateutil"
	"github.com/selfforge/calendar/internal/layout"
)

// viewStyles holds the lipgloss styles for calendar rendering. When stdout is
// not a terminal every style degrades to the identity so piped output stays
// plain text.
type viewStyles struct {
	header   lipgloss.Style
	today    lipgloss.Style
	muted    lipgloss.Style
	category func(color string) lipgloss.Style
}

func newViewStyles() viewStyles {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		plain := lipgloss.NewStyle()
		return viewStyles{
			header:   plain,
			today:    plain,
			muted:    plain,
			category: func(string) lipgloss.Style { return plain },
		}
	}
	return viewStyles{
		header: lipgloss.NewStyle().Bold(true),
		today:  lipgloss.NewStyle().Bold(true).Reverse(true),
		muted:  lipgloss.NewStyle().Faint(true),
		category: func(color string) lipgloss.Style {
			return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
		},
	}
}

func newViewCmd(app *App) *cobra.Command {
	var day string

	cmd := &cobra.Command{
		Use:   "view <month|week|day>",
		Short: "Render a calendar view",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date := time.Now()
			if day != "" {
				var err error
				date, err = parseDay(day)
				if err != nil {
					return err
				}
			}

			styles := newViewStyles()
			switch args[0] {
			case "month":
				return renderMonth(app, date, styles)
			case "week":
				return renderWeek(app, date, styles)
			case "day":
				return renderDay(app, date, styles)
			default:
				return fmt.Errorf("unknown view %q (want month, week or day)", args[0])
			}
		},
	}

	cmd.Flags().StringVar(&day, "date", "", "Anchor date (YYYY-MM-DD, default today)")

	return cmd
}

func renderMonth(app *App, date time.Time, styles viewStyles) error {
	grid := dateutil.MonthGrid(date)
	now := time.Now()

	fmt.Println(styles.header.Render(date.Format("January 2006")))
	fmt.Println(styles.muted.Render("Sun    Mon    Tue    Wed    Thu    Fri    Sat"))

	for row := 0; row < len(grid)/7; row++ {
		var cells []string
		for col := 0; col < 7; col++ {
			d := grid[row*7+col]
			n := len(app.Calendar.ItemsForDate(d))

			cell := fmt.Sprintf("%2d", d.Day())
			if n > 0 {
				cell += fmt.Sprintf(":%d", n)
			}
			cell = fmt.Sprintf("%-6s", cell)

			switch {
			case dateutil.SameDay(d, now):
				cell = styles.today.Render(cell)
			case d.Month() != date.Month():
				cell = styles.muted.Render(cell)
			}
			cells = append(cells, cell)
		}
		fmt.Println(strings.Join(cells, " "))
	}
	return nil
}

func renderWeek(app *App, date time.Time, styles viewStyles) error {
	days := layout.LayoutWeek(app.Calendar.Items(), date)
	for _, day := range days {
		fmt.Println(styles.header.Render(day.Date.Format("Mon Jan 2")))
		printDayLayout(app, day, styles)
		fmt.Println()
	}
	return nil
}

func renderDay(app *App, date time.Time, styles viewStyles) error {
	day := layout.LayoutDay(app.Calendar.Items(), date)
	fmt.Println(styles.header.Render(day.Date.Format("Monday, January 2 2006")))
	printDayLayout(app, day, styles)
	return nil
}

func printDayLayout(app *App, day layout.DayLayout, styles viewStyles) {
	reg := app.Calendar.Categories()

	for _, it := range day.AllDay {
		b := it.Base()
		cat := reg.Resolve(b.CategoryID)
		line := fmt.Sprintf("  all day     %s  #%s", b.Title, cat.Label)
		fmt.Println(styles.category(cat.Color).Render(line))
	}

	for _, p := range day.Placements {
		b := p.Item.Base()
		cat := reg.Resolve(b.CategoryID)
		indent := strings.Repeat("  ", p.Column)
		line := fmt.Sprintf("  %s-%s %s%s  #%s",
			b.StartDateTime.Format("15:04"), b.EndDateTime.Format("15:04"),
			indent, b.Title, cat.Label)
		if p.TotalColumns > 1 {
			line += styles.muted.Render(fmt.Sprintf(" [%d/%d]", p.Column+1, p.TotalColumns))
		}
		fmt.Println(styles.category(cat.Color).Render(line))
	}

	if len(day.AllDay) == 0 && len(day.Placements) == 0 {
		fmt.Println(styles.muted.Render("  no items"))
	}
}

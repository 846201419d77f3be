package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/saketh1999/consistency-cal-sub000/internal/client/session"
	"github.com/saketh1999/consistency-cal-sub000/internal/journal"
	"github.com/saketh1999/consistency-cal-sub000/internal/transport"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle  = lipgloss.NewStyle().Bold(true)
	dimStyle    = lipgloss.NewStyle().Faint(true)
)

func renderDay(w io.Writer, v session.View) {
	if v.Date.IsZero() {
		fmt.Fprintln(w, "No date selected")
		return
	}
	d := v.Data
	title := v.Date.Time().Format("Monday, 2 January 2006")
	fmt.Fprintln(w, headerStyle.Render(title))

	section(w, "Notes")
	text(w, d.Notes)

	section(w, "Important events")
	text(w, d.ImportantEvents)

	section(w, "Images")
	if len(d.ImageURLs) == 0 {
		fmt.Fprintln(w, dimStyle.Render("  (none)"))
	}
	for i, u := range d.ImageURLs {
		mark := " "
		if u == d.FeaturedImageURL {
			mark = "*"
		}
		fmt.Fprintf(w, " %s%d. %s\n", mark, i+1, u)
	}

	section(w, "Videos")
	if len(d.VideoURLs) == 0 {
		fmt.Fprintln(w, dimStyle.Render("  (none)"))
	}
	for i, u := range d.VideoURLs {
		fmt.Fprintf(w, "  %d. %s\n", i+1, u)
	}

	section(w, "Todos")
	if len(d.Todos) == 0 {
		fmt.Fprintln(w, dimStyle.Render("  (none)"))
	}
	for i, t := range d.Todos {
		box := "[ ]"
		if t.Completed {
			box = "[x]"
		}
		suffix := ""
		if t.Global {
			suffix = dimStyle.Render(" (every day)")
		}
		fmt.Fprintf(w, "  %d. %s %s%s\n", i+1, box, t.Text, suffix)
	}

	if len(d.CalendarEvents) > 0 {
		section(w, "Calendar")
		renderCalendar(w, d.CalendarEvents)
	}
}

func section(w io.Writer, name string) {
	fmt.Fprintln(w, labelStyle.Render(name+":"))
}

func text(w io.Writer, s string) {
	if strings.TrimSpace(s) == "" {
		fmt.Fprintln(w, dimStyle.Render("  (empty)"))
		return
	}
	for _, line := range strings.Split(s, "\n") {
		fmt.Fprintln(w, "  "+line)
	}
}

func renderCalendar(w io.Writer, events []journal.CalendarEvent) {
	if len(events) == 0 {
		fmt.Fprintln(w, dimStyle.Render("  (no calendar events)"))
		return
	}
	for _, e := range events {
		when := "all day"
		if !e.Start.IsZero() && (e.Start.Hour() != 0 || e.Start.Minute() != 0 || e.End.Sub(e.Start) < 24*time.Hour) {
			when = e.Start.Local().Format("15:04") + "-" + e.End.Local().Format("15:04")
		}
		line := fmt.Sprintf("  %s  %s", when, e.Title)
		if e.Location != "" {
			line += dimStyle.Render(" @ " + e.Location)
		}
		fmt.Fprintln(w, line)
	}
}

func renderQuotes(w io.Writer, list []journal.Quote) {
	if len(list) == 0 {
		fmt.Fprintln(w, dimStyle.Render("(no quotes)"))
		return
	}
	for i, q := range list {
		fmt.Fprintf(w, "%d. %q", i+1, q.Text)
		if q.Author != "" {
			fmt.Fprintf(w, " - %s", q.Author)
		}
		fmt.Fprintln(w)
	}
}

func renderMonth(w io.Writer, first time.Time, days []transport.DaySummary) {
	fmt.Fprintln(w, headerStyle.Render(first.Format("January 2006")))
	if len(days) == 0 {
		fmt.Fprintln(w, dimStyle.Render("  (nothing recorded)"))
		return
	}
	for _, d := range days {
		var marks []string
		if d.HasNotes {
			marks = append(marks, "notes")
		}
		if d.ImageCount > 0 {
			marks = append(marks, fmt.Sprintf("%d image(s)", d.ImageCount))
		}
		fmt.Fprintf(w, "  %s  %s\n", d.Date, strings.Join(marks, ", "))
	}
}

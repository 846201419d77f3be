package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/saketh1999/consistency-cal-sub000/internal/client/mutations"
	"github.com/saketh1999/consistency-cal-sub000/internal/common"
	"github.com/saketh1999/consistency-cal-sub000/internal/journal"
)

var errUsage = errors.New("usage")

func (a *App) usage(text string) error {
	fmt.Fprintln(a.out, "Usage:", text)
	return errUsage
}

// report prints the outcome of a mutation unless the user was already told.
func (a *App) report(ctx context.Context, r mutations.Result) error {
	if r.Err != nil {
		if !r.Notified {
			fmt.Fprintf(a.out, "Error: %v\n", r.Err)
		}
		return r.Err
	}
	return a.Show(ctx)
}

// parseDay resolves "today", "+N", "-N" (relative to cur) or YYYY-MM-DD.
func parseDay(arg string, cur journal.Date) (journal.Date, error) {
	switch {
	case arg == "" || arg == "today":
		return journal.Today(), nil
	case strings.HasPrefix(arg, "+") || strings.HasPrefix(arg, "-"):
		n, err := strconv.Atoi(arg)
		if err != nil {
			return "", fmt.Errorf("bad offset %q: %w", arg, common.ErrValidation)
		}
		if cur.IsZero() {
			cur = journal.Today()
		}
		return cur.AddDays(n), nil
	default:
		return journal.ParseDate(arg)
	}
}

// Day selects a date (today by default) and shows it.
func (a *App) Day(ctx context.Context, args []string) error {
	v, err := a.session.View(ctx)
	if err != nil {
		return err
	}
	arg := ""
	if len(args) > 0 {
		arg = args[0]
	}
	date, err := parseDay(arg, v.Date)
	if err != nil {
		fmt.Fprintf(a.out, "Error: %v\n", err)
		return err
	}
	if err := a.session.SelectDate(ctx, date); err != nil {
		fmt.Fprintf(a.out, "Could not load %s: %v\n", date, err)
		return err
	}
	return a.Show(ctx)
}

func (a *App) Show(ctx context.Context) error {
	v, err := a.session.View(ctx)
	if err != nil {
		return err
	}
	renderDay(a.out, v)
	return nil
}

// Notes replaces the notes of the day with the arguments, or with text
// read until an empty line.
func (a *App) Notes(ctx context.Context, args []string) error {
	text := strings.Join(args, " ")
	if text == "" {
		var err error
		if text, err = GetMultiline(a.reader, "Notes", a.out); err != nil {
			return err
		}
	}
	return a.session.SetNotes(ctx, text)
}

// Events replaces the free-text important events of the day.
func (a *App) Events(ctx context.Context, args []string) error {
	text := strings.Join(args, " ")
	if text == "" {
		var err error
		if text, err = GetMultiline(a.reader, "Important events", a.out); err != nil {
			return err
		}
	}
	return a.session.SetImportantEvents(ctx, text)
}

// Calendar lists the calendar events of the day.
func (a *App) Calendar(ctx context.Context) error {
	v, err := a.session.View(ctx)
	if err != nil {
		return err
	}
	renderCalendar(a.out, v.Data.CalendarEvents)
	return nil
}

// AddImage adds a URL, or uploads a local file.
func (a *App) AddImage(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return a.usage("addimage <url|path>")
	}
	if strings.Contains(args[0], "://") {
		return a.report(ctx, a.session.AddImage(ctx, args[0]))
	}
	return a.report(ctx, a.session.AddImageFile(ctx, args[0]))
}

// pick resolves a 1-based index or a literal value against list.
func pick(list []string, arg string) (string, bool) {
	if n, err := strconv.Atoi(arg); err == nil {
		if n < 1 || n > len(list) {
			return "", false
		}
		return list[n-1], true
	}
	for _, v := range list {
		if v == arg {
			return v, true
		}
	}
	return "", false
}

func (a *App) imageArg(ctx context.Context, args []string, usage string) (string, error) {
	if len(args) != 1 {
		return "", a.usage(usage)
	}
	v, err := a.session.View(ctx)
	if err != nil {
		return "", err
	}
	url, ok := pick(v.Data.ImageURLs, args[0])
	if !ok {
		fmt.Fprintln(a.out, "No such image:", args[0])
		return "", common.ErrorNotFound
	}
	return url, nil
}

func (a *App) RemoveImage(ctx context.Context, args []string) error {
	url, err := a.imageArg(ctx, args, "rmimage <n|url>")
	if err != nil {
		return err
	}
	return a.report(ctx, a.session.RemoveImage(ctx, url))
}

// Feature selects the featured image; selecting it again cycles.
func (a *App) Feature(ctx context.Context, args []string) error {
	url, err := a.imageArg(ctx, args, "feature <n|url>")
	if err != nil {
		return err
	}
	return a.report(ctx, a.session.SelectFeatured(ctx, url))
}

func (a *App) AddVideo(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return a.usage("addvideo <url> [tag...]")
	}
	return a.report(ctx, a.session.AddVideo(ctx, args[0], args[1:]))
}

func (a *App) RemoveVideo(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return a.usage("rmvideo <n|url>")
	}
	v, err := a.session.View(ctx)
	if err != nil {
		return err
	}
	url, ok := pick(v.Data.VideoURLs, args[0])
	if !ok {
		fmt.Fprintln(a.out, "No such video:", args[0])
		return common.ErrorNotFound
	}
	return a.report(ctx, a.session.RemoveVideo(ctx, url))
}

func (a *App) AddTodo(ctx context.Context, args []string, global bool) error {
	if len(args) == 0 {
		if global {
			return a.usage("gtodo <text>")
		}
		return a.usage("todo <text>")
	}
	return a.report(ctx, a.session.AddTodo(ctx, strings.Join(args, " "), global))
}

func (a *App) todoArg(ctx context.Context, args []string, usage string) (string, error) {
	if len(args) != 1 {
		return "", a.usage(usage)
	}
	v, err := a.session.View(ctx)
	if err != nil {
		return "", err
	}
	ids := make([]string, 0, len(v.Data.Todos))
	for _, t := range v.Data.Todos {
		ids = append(ids, t.ID)
	}
	id, ok := pick(ids, args[0])
	if !ok {
		fmt.Fprintln(a.out, "No such todo:", args[0])
		return "", common.ErrorNotFound
	}
	return id, nil
}

func (a *App) ToggleTodo(ctx context.Context, args []string) error {
	id, err := a.todoArg(ctx, args, "toggle <n>")
	if err != nil {
		return err
	}
	return a.report(ctx, a.session.ToggleTodo(ctx, id))
}

func (a *App) RemoveTodo(ctx context.Context, args []string) error {
	id, err := a.todoArg(ctx, args, "rmtodo <n>")
	if err != nil {
		return err
	}
	return a.report(ctx, a.session.RemoveTodo(ctx, id))
}

// AddQuote prompts for the quote text and an optional author.
func (a *App) AddQuote(ctx context.Context, args []string) error {
	text := strings.Join(args, " ")
	if text == "" {
		var err error
		if text, err = getSimpleText(a.reader, "Quote", a.out); err != nil {
			return err
		}
	}
	author, err := getSimpleText(a.reader, "Author (optional)", a.out)
	if err != nil {
		return err
	}
	q, err := a.session.AddQuote(ctx, text, author, "")
	if err != nil {
		fmt.Fprintf(a.out, "Error: %v\n", err)
		return err
	}
	fmt.Fprintf(a.out, "Saved quote %q\n", q.Text)
	return nil
}

func (a *App) Quotes(ctx context.Context) error {
	list, err := a.session.Quotes(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "Error: %v\n", err)
		return err
	}
	renderQuotes(a.out, list)
	return nil
}

func (a *App) DeleteQuote(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return a.usage("rmquote <n>")
	}
	list, err := a.session.Quotes(ctx)
	if err != nil {
		return err
	}
	ids := make([]string, 0, len(list))
	for _, q := range list {
		ids = append(ids, q.ID)
	}
	id, ok := pick(ids, args[0])
	if !ok {
		fmt.Fprintln(a.out, "No such quote:", args[0])
		return common.ErrorNotFound
	}
	return a.session.DeleteQuote(ctx, id)
}

func (a *App) Motivate(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return a.usage("motivate <goal>")
	}
	fmt.Fprintln(a.out, "Thinking...")
	msg, err := a.session.Motivate(ctx, strings.Join(args, " "))
	if errors.Is(err, common.ErrAuthRequired) {
		fmt.Fprintln(a.out, "Sign in to get motivational messages.")
		return err
	}
	if err != nil {
		fmt.Fprintf(a.out, "Error: %v\n", err)
		return err
	}
	fmt.Fprintln(a.out, msg)
	return nil
}

// Month summarizes the days with content in a month (YYYY-MM, default: the
// month of the selected date).
func (a *App) Month(ctx context.Context, args []string) error {
	v, err := a.session.View(ctx)
	if err != nil {
		return err
	}
	first := v.Date.Time()
	if v.Date.IsZero() {
		first = time.Now()
	}
	if len(args) > 0 {
		t, err := time.Parse("2006-01", args[0])
		if err != nil {
			return a.usage("month [YYYY-MM]")
		}
		first = t
	}
	first = time.Date(first.Year(), first.Month(), 1, 0, 0, 0, 0, time.UTC)
	from := journal.DateOf(first)
	to := journal.DateOf(first.AddDate(0, 1, -1))

	days, err := a.session.Days(ctx, from, to)
	if err != nil {
		fmt.Fprintf(a.out, "Error: %v\n", err)
		return err
	}
	renderMonth(a.out, first, days)
	return nil
}

// Sync sends pending edits and reloads the selected date.
func (a *App) Sync(ctx context.Context) error {
	if err := a.session.Reload(ctx); err != nil {
		fmt.Fprintf(a.out, "Sync failed: %v\n", err)
		return err
	}
	return a.Show(ctx)
}

package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	args  [][]string
}

func (f *fakeExec) rec(name string, args []string) error {
	f.calls = append(f.calls, name)
	f.args = append(f.args, args)
	return nil
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Register(context.Context) error {
	return f.rec("register", nil)
}
func (f *fakeExec) Login(context.Context) error {
	f.loggedIn = true
	return f.rec("login", nil)
}
func (f *fakeExec) Logout(context.Context) error {
	f.loggedIn = false
	return f.rec("logout", nil)
}
func (f *fakeExec) Whoami(context.Context) error                 { return f.rec("whoami", nil) }
func (f *fakeExec) Day(_ context.Context, a []string) error      { return f.rec("day", a) }
func (f *fakeExec) Show(context.Context) error                   { return f.rec("show", nil) }
func (f *fakeExec) Notes(_ context.Context, a []string) error    { return f.rec("notes", a) }
func (f *fakeExec) Events(_ context.Context, a []string) error   { return f.rec("events", a) }
func (f *fakeExec) Calendar(context.Context) error               { return f.rec("calendar", nil) }
func (f *fakeExec) AddImage(_ context.Context, a []string) error { return f.rec("addimage", a) }
func (f *fakeExec) RemoveImage(_ context.Context, a []string) error {
	return f.rec("rmimage", a)
}
func (f *fakeExec) Feature(_ context.Context, a []string) error  { return f.rec("feature", a) }
func (f *fakeExec) AddVideo(_ context.Context, a []string) error { return f.rec("addvideo", a) }
func (f *fakeExec) RemoveVideo(_ context.Context, a []string) error {
	return f.rec("rmvideo", a)
}
func (f *fakeExec) AddTodo(_ context.Context, a []string, global bool) error {
	if global {
		return f.rec("gtodo", a)
	}
	return f.rec("todo", a)
}
func (f *fakeExec) ToggleTodo(_ context.Context, a []string) error { return f.rec("toggle", a) }
func (f *fakeExec) RemoveTodo(_ context.Context, a []string) error { return f.rec("rmtodo", a) }
func (f *fakeExec) AddQuote(_ context.Context, a []string) error   { return f.rec("quote", a) }
func (f *fakeExec) Quotes(context.Context) error                   { return f.rec("quotes", nil) }
func (f *fakeExec) DeleteQuote(_ context.Context, a []string) error {
	return f.rec("rmquote", a)
}
func (f *fakeExec) Motivate(_ context.Context, a []string) error { return f.rec("motivate", a) }
func (f *fakeExec) Month(_ context.Context, a []string) error    { return f.rec("month", a) }
func (f *fakeExec) Sync(context.Context) error                   { return f.rec("sync", nil) }

func silence(t *testing.T) *[]string {
	t.Helper()
	var printed []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		printed = append(printed, strings.TrimSpace(fmt.Sprintln(a...)))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &printed
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	silence(t)

	input := strings.NewReader(strings.Join([]string{
		"help",
		"login",
		"day 2024-05-01",
		"next",
		"notes ran 5k",
		"addimage https://cdn/a.png",
		"feature 1",
		"todo buy milk",
		"gtodo meditate",
		"toggle 2",
		"addvideo https://youtu.be/x run",
		"motivate run a marathon",
		"sync",
		"",
		"logout",
		"exit",
		"show",
	}, "\n"))

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, bufio.NewScanner(input))

	require.Equal(t, []string{
		"login", "day", "day", "notes", "addimage", "feature", "todo", "gtodo",
		"toggle", "addvideo", "motivate", "sync", "logout",
	}, exec.calls)
	require.Equal(t, []string{"2024-05-01"}, exec.args[1])
	require.Equal(t, []string{"+1"}, exec.args[2])
	require.Equal(t, []string{"ran", "5k"}, exec.args[3])
	require.Equal(t, []string{"https://youtu.be/x", "run"}, exec.args[9])
}

func TestRunREPL_UnknownAndQuit(t *testing.T) {
	printed := silence(t)

	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewScanner(strings.NewReader("frobnicate\nquit\nday\n")))

	require.Empty(t, exec.calls)
	require.Contains(t, *printed, "Unknown command: frobnicate")
	require.Contains(t, *printed, "Bye!")
}

func TestRunREPL_HelpDependsOnLogin(t *testing.T) {
	printed := silence(t)
	runREPL(context.Background(), &fakeExec{}, func() string { return "" }, bufio.NewScanner(strings.NewReader("help\n")))
	require.Contains(t, *printed, "Account:  register, login")

	*printed = nil
	runREPL(context.Background(), &fakeExec{loggedIn: true}, func() string { return "" }, bufio.NewScanner(strings.NewReader("help\n")))
	require.Contains(t, *printed, "Account:  logout")
}

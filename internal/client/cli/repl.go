package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL dispatches to. The real App
// type satisfies it; tests provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error

	Day(ctx context.Context, args []string) error
	Show(ctx context.Context) error
	Notes(ctx context.Context, args []string) error
	Events(ctx context.Context, args []string) error
	Calendar(ctx context.Context) error
	AddImage(ctx context.Context, args []string) error
	RemoveImage(ctx context.Context, args []string) error
	Feature(ctx context.Context, args []string) error
	AddVideo(ctx context.Context, args []string) error
	RemoveVideo(ctx context.Context, args []string) error
	AddTodo(ctx context.Context, args []string, global bool) error
	ToggleTodo(ctx context.Context, args []string) error
	RemoveTodo(ctx context.Context, args []string) error
	AddQuote(ctx context.Context, args []string) error
	Quotes(ctx context.Context) error
	DeleteQuote(ctx context.Context, args []string) error
	Motivate(ctx context.Context, args []string) error
	Month(ctx context.Context, args []string) error
	Sync(ctx context.Context) error
}

const helpText = `Days:     day [today|YYYY-MM-DD|+N|-N], next, prev, show, month [YYYY-MM]
Writing:  notes [text], events [text]
Media:    addimage <url|path>, rmimage <n>, feature <n>, addvideo <url> [tags], rmvideo <n>
Todos:    todo <text>, gtodo <text>, toggle <n>, rmtodo <n>
Quotes:   quote [text], quotes, rmquote <n>
Other:    calendar, motivate <goal>, sync, whoami, exit`

// runREPL reads a line from scanner, parses the first token as the command,
// and dispatches to methods on a. Unknown commands are reported back to the
// user. The loop exits on scanner EOF or when the user types "exit" or
// "quit".
//
// Errors returned by command handlers are ignored here; handlers print
// their own messages.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("cal %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			printlnFn(helpText)
			if a.isLoggedIn() {
				printlnFn("Account:  logout")
			} else {
				printlnFn("Account:  register, login")
			}

		case "register":
			_ = a.Register(ctx)
		case "login":
			_ = a.Login(ctx)
		case "logout":
			_ = a.Logout(ctx)
		case "whoami":
			_ = a.Whoami(ctx)

		case "day", "d":
			_ = a.Day(ctx, args)
		case "next":
			_ = a.Day(ctx, []string{"+1"})
		case "prev":
			_ = a.Day(ctx, []string{"-1"})
		case "show", "s":
			_ = a.Show(ctx)
		case "month":
			_ = a.Month(ctx, args)

		case "notes":
			_ = a.Notes(ctx, args)
		case "events":
			_ = a.Events(ctx, args)
		case "calendar":
			_ = a.Calendar(ctx)

		case "addimage":
			_ = a.AddImage(ctx, args)
		case "rmimage":
			_ = a.RemoveImage(ctx, args)
		case "feature":
			_ = a.Feature(ctx, args)
		case "addvideo":
			_ = a.AddVideo(ctx, args)
		case "rmvideo":
			_ = a.RemoveVideo(ctx, args)

		case "todo":
			_ = a.AddTodo(ctx, args, false)
		case "gtodo":
			_ = a.AddTodo(ctx, args, true)
		case "toggle", "t":
			_ = a.ToggleTodo(ctx, args)
		case "rmtodo":
			_ = a.RemoveTodo(ctx, args)

		case "quote":
			_ = a.AddQuote(ctx, args)
		case "quotes":
			_ = a.Quotes(ctx)
		case "rmquote":
			_ = a.DeleteQuote(ctx, args)

		case "motivate":
			_ = a.Motivate(ctx, args)
		case "sync":
			_ = a.Sync(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

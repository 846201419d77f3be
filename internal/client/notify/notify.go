// Package notify surfaces non-blocking messages to the user, chiefly failed
// remote writes that left local state ahead of the server.
package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

type Level int

const (
	Info Level = iota
	Error
)

func (l Level) String() string {
	if l == Error {
		return "error"
	}
	return "info"
}

type Notification struct {
	Level   Level
	Message string
}

// Notifier delivers notifications. Implementations must be safe for
// concurrent use.
type Notifier interface {
	Notify(n Notification)
}

// Errorf is shorthand for an error-level notification.
func Errorf(n Notifier, format string, args ...any) {
	n.Notify(Notification{Level: Error, Message: fmt.Sprintf(format, args...)})
}

// Infof is shorthand for an info-level notification.
func Infof(n Notifier, format string, args ...any) {
	n.Notify(Notification{Level: Info, Message: fmt.Sprintf(format, args...)})
}

var (
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("203")).
			Bold(true).
			Padding(0, 1)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// Console prints styled notifications to a terminal.
type Console struct {
	mu sync.Mutex
	w  io.Writer
}

func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) Notify(n Notification) {
	style := infoStyle
	if n.Level == Error {
		style = errorStyle
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.w, style.Render(n.Message))
}

// Memory records notifications for inspection.
type Memory struct {
	mu   sync.Mutex
	list []Notification
}

func (m *Memory) Notify(n Notification) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.list = append(m.list, n)
}

func (m *Memory) All() []Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Notification(nil), m.list...)
}

// Count returns how many notifications of level were recorded.
func (m *Memory) Count(level Level) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, x := range m.list {
		if x.Level == level {
			n++
		}
	}
	return n
}

package journal

import "time"

// TodoItem is a to-do as shown for one day. Global items are templates
// materialized on every date; their completion is tracked per date.
type TodoItem struct {
	ID          string     `json:"id"`
	Text        string     `json:"text"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	Global      bool       `json:"global"`
}

func (t TodoItem) Clone() TodoItem {
	if t.CompletedAt != nil {
		at := *t.CompletedAt
		t.CompletedAt = &at
	}
	return t
}

// Toggle flips completion. CompletedAt is set to now when the item becomes
// completed and cleared when it becomes open.
func (t TodoItem) Toggle(now time.Time) TodoItem {
	t.Completed = !t.Completed
	if t.Completed {
		t.CompletedAt = &now
	} else {
		t.CompletedAt = nil
	}
	return t
}

// Task is the stored form of a to-do. Date is empty for global tasks.
type Task struct {
	ID          string
	UserID      string
	Date        Date
	Text        string
	Completed   bool
	CompletedAt *time.Time
	Position    int
	CreatedAt   time.Time
}

func (t Task) Global() bool { return t.Date.IsZero() }

// Item converts a date-bound task to a TodoItem.
func (t Task) Item() TodoItem {
	return TodoItem{
		ID:          t.ID,
		Text:        t.Text,
		Completed:   t.Completed,
		CompletedAt: t.CompletedAt,
		Global:      t.Global(),
	}
}

// MaterializeTodos builds the list for one day: dated items first, then the
// global templates with completion taken from completions (task id ->
// completion time for that day).
func MaterializeTodos(dated []TodoItem, globals []TodoItem, completions map[string]time.Time) []TodoItem {
	out := make([]TodoItem, 0, len(dated)+len(globals))
	for _, t := range dated {
		out = append(out, t.Clone())
	}
	for _, g := range globals {
		item := TodoItem{ID: g.ID, Text: g.Text, Global: true}
		if at, ok := completions[g.ID]; ok {
			item.Completed = true
			item.CompletedAt = &at
		}
		out = append(out, item)
	}
	return out
}

// SplitTodos separates date-bound items from global ones.
func SplitTodos(items []TodoItem) (dated, globals []TodoItem) {
	for _, t := range items {
		if t.Global {
			globals = append(globals, t)
		} else {
			dated = append(dated, t)
		}
	}
	return dated, globals
}

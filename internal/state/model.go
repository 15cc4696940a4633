package state

import (
	"strings"
	"time"
)

// Priority enumerates todo urgency levels.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Valid reports whether the priority is one of the known levels.
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

func (p Priority) weight() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

// NotificationKind tags the entity type a notification points back to.
type NotificationKind string

const (
	KindTodo NotificationKind = "todo"
	KindNote NotificationKind = "note"
)

// Valid reports whether the kind is one of the known variants.
func (k NotificationKind) Valid() bool {
	return k == KindTodo || k == KindNote
}

// Reminder schedules a one-shot alert for a todo or note. Enabled drops to
// false after the reminder fires so it never fires twice.
type Reminder struct {
	Enabled bool      `json:"enabled"`
	At      time.Time `json:"at"`
	Sound   string    `json:"sound"`
}

// Todo is a single task entry.
type Todo struct {
	ID        string     `json:"id"`
	Text      string     `json:"text"`
	Completed bool       `json:"completed"`
	Priority  Priority   `json:"priority"`
	Color     string     `json:"color"`
	CreatedAt time.Time  `json:"createdAt"`
	DueDate   *time.Time `json:"dueDate,omitempty"`
	Reminder  *Reminder  `json:"reminder,omitempty"`
}

// Note is a titled free-form text entry.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Color     string    `json:"color"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Reminder  *Reminder `json:"reminder,omitempty"`
}

// Habit tracks a recurring practice. CompletedDates holds local calendar
// dates in YYYY-MM-DD form; Streak is a cached value always recomputable
// from CompletedDates.
type Habit struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Color          string    `json:"color"`
	Streak         int       `json:"streak"`
	CompletedDates []string  `json:"completedDates"`
	CreatedAt      time.Time `json:"createdAt"`
}

// DrawingPad stores one saved sketch. ImageData is an opaque encoded raster
// snapshot; the core never inspects it.
type DrawingPad struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ImageData string    `json:"imageData"`
	Folder    string    `json:"folder,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// FileItem stores one uploaded file as an opaque encoded blob.
type FileItem struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	MIMEType  string    `json:"type"`
	Size      int64     `json:"size"`
	Data      string    `json:"data"`
	Folder    string    `json:"folder,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Notification is a transient alert surfaced to the user. ItemID is a
// back-reference, not an ownership relation: the notification outlives the
// originating entity until dismissed.
type Notification struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Kind      NotificationKind `json:"type"`
	ItemID    string           `json:"itemId"`
	Timestamp time.Time        `json:"timestamp"`
	Sound     string           `json:"sound"`
}

// User is the signed-in profile. Nil means signed out.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// DefaultView is the view selected on first launch.
const DefaultView = "dashboard"

// NoteCategories is the suggested category set offered by the notes widget.
// Categories remain free-form; this list is advisory only.
var NoteCategories = []string{"Personal", "Work", "Ideas", "Shopping", "Travel"}

// State is one immutable snapshot of the whole application. Collections keep
// insertion order; nothing reorders them except the explicit todo reorder
// operation.
type State struct {
	Todos         []Todo         `json:"todos"`
	Notes         []Note         `json:"notes"`
	Habits        []Habit        `json:"habits"`
	DrawingPads   []DrawingPad   `json:"drawingPads"`
	Files         []FileItem     `json:"files"`
	Notifications []Notification `json:"notifications"`
	CurrentView   string         `json:"currentView"`
	SidebarOpen   bool           `json:"sidebarOpen"`
	User          *User          `json:"user,omitempty"`
}

// DefaultState returns the empty state used before any snapshot exists.
func DefaultState() State {
	return State{CurrentView: DefaultView}
}

// Clone returns a deep copy of the state. Mutating the copy never affects
// the original.
func (s State) Clone() State {
	out := s
	out.Todos = cloneTodos(s.Todos)
	out.Notes = cloneNotes(s.Notes)
	out.Habits = cloneHabits(s.Habits)
	out.DrawingPads = append([]DrawingPad(nil), s.DrawingPads...)
	out.Files = append([]FileItem(nil), s.Files...)
	out.Notifications = append([]Notification(nil), s.Notifications...)
	if s.User != nil {
		user := *s.User
		out.User = &user
	}
	return out
}

func cloneTodos(todos []Todo) []Todo {
	out := make([]Todo, len(todos))
	for i, todo := range todos {
		out[i] = todo
		if todo.DueDate != nil {
			due := *todo.DueDate
			out[i].DueDate = &due
		}
		out[i].Reminder = cloneReminder(todo.Reminder)
	}
	return out
}

func cloneNotes(notes []Note) []Note {
	out := make([]Note, len(notes))
	for i, note := range notes {
		out[i] = note
		out[i].Reminder = cloneReminder(note.Reminder)
	}
	return out
}

func cloneHabits(habits []Habit) []Habit {
	out := make([]Habit, len(habits))
	for i, habit := range habits {
		out[i] = habit
		out[i].CompletedDates = append([]string(nil), habit.CompletedDates...)
	}
	return out
}

func cloneReminder(reminder *Reminder) *Reminder {
	if reminder == nil {
		return nil
	}
	copied := *reminder
	return &copied
}

func trimmed(value string) string {
	return strings.TrimSpace(value)
}

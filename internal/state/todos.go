package state

import (
	"sort"
	"time"
)

// TodoInput carries the caller-supplied fields for a new todo.
type TodoInput struct {
	Text     string
	Priority Priority
	Color    string
	DueDate  *time.Time
	Reminder *Reminder
}

// TodoUpdate is a partial update; nil fields are left untouched. ID and
// CreatedAt can never change.
type TodoUpdate struct {
	Text          *string
	Completed     *bool
	Priority      *Priority
	Color         *string
	DueDate       *time.Time
	Reminder      *Reminder
	ClearReminder bool
}

// TodoFilter selects todos for display.
type TodoFilter string

const (
	TodoFilterAll       TodoFilter = "all"
	TodoFilterActive    TodoFilter = "active"
	TodoFilterCompleted TodoFilter = "completed"
)

// AddTodo appends a new todo. Empty text is a silent no-op; an unknown
// priority falls back to medium.
func (s *Store) AddTodo(input TodoInput) {
	text := trimmed(input.Text)
	if text == "" {
		return
	}
	priority := input.Priority
	if !priority.Valid() {
		priority = PriorityMedium
	}
	s.mutate(func(next *State) []ChangeScope {
		id := s.newID()
		if id == "" {
			return nil
		}
		todo := Todo{
			ID:        id,
			Text:      text,
			Priority:  priority,
			Color:     input.Color,
			CreatedAt: s.now(),
			Reminder:  cloneReminder(input.Reminder),
		}
		if input.DueDate != nil {
			due := *input.DueDate
			todo.DueDate = &due
		}
		next.Todos = append(next.Todos, todo)
		return []ChangeScope{ScopeTodos}
	})
}

// UpdateTodo applies a partial update to the todo with the given id.
// Unknown ids and updates that change nothing are silent no-ops.
func (s *Store) UpdateTodo(id string, update TodoUpdate) {
	s.mutate(func(next *State) []ChangeScope {
		for i := range next.Todos {
			if next.Todos[i].ID != id {
				continue
			}
			applyTodoUpdate(&next.Todos[i], update)
			return []ChangeScope{ScopeTodos}
		}
		return nil
	})
}

// DeleteTodo removes the todo with the given id; unknown ids change nothing.
func (s *Store) DeleteTodo(id string) {
	s.mutate(func(next *State) []ChangeScope {
		filtered := next.Todos[:0]
		for _, todo := range next.Todos {
			if todo.ID != id {
				filtered = append(filtered, todo)
			}
		}
		if len(filtered) == len(next.Todos) {
			return nil
		}
		next.Todos = filtered
		return []ChangeScope{ScopeTodos}
	})
}

// ReorderTodos moves the todo at startIndex to endIndex, shifting the rest.
// Out-of-range indexes are a silent no-op.
func (s *Store) ReorderTodos(startIndex, endIndex int) {
	s.mutate(func(next *State) []ChangeScope {
		count := len(next.Todos)
		if startIndex < 0 || startIndex >= count || endIndex < 0 || endIndex >= count || startIndex == endIndex {
			return nil
		}
		moved := next.Todos[startIndex]
		rest := append(next.Todos[:startIndex], next.Todos[startIndex+1:]...)
		reordered := make([]Todo, 0, count)
		reordered = append(reordered, rest[:endIndex]...)
		reordered = append(reordered, moved)
		reordered = append(reordered, rest[endIndex:]...)
		next.Todos = reordered
		return []ChangeScope{ScopeTodos}
	})
}

func applyTodoUpdate(todo *Todo, update TodoUpdate) {
	if update.Text != nil {
		if text := trimmed(*update.Text); text != "" {
			todo.Text = text
		}
	}
	if update.Completed != nil {
		todo.Completed = *update.Completed
	}
	if update.Priority != nil && update.Priority.Valid() {
		todo.Priority = *update.Priority
	}
	if update.Color != nil {
		todo.Color = *update.Color
	}
	if update.DueDate != nil {
		due := *update.DueDate
		todo.DueDate = &due
	}
	if update.ClearReminder {
		todo.Reminder = nil
	} else if update.Reminder != nil {
		todo.Reminder = cloneReminder(update.Reminder)
	}
}

// FilterTodos returns the todos matching the display filter, preserving
// order. An unknown filter behaves like "all".
func FilterTodos(todos []Todo, filter TodoFilter) []Todo {
	out := make([]Todo, 0, len(todos))
	for _, todo := range todos {
		switch filter {
		case TodoFilterActive:
			if todo.Completed {
				continue
			}
		case TodoFilterCompleted:
			if !todo.Completed {
				continue
			}
		}
		out = append(out, todo)
	}
	return out
}

// SortTodosForDisplay orders todos by priority, high before medium before
// low; ties keep their prior relative order. The stored order is untouched.
func SortTodosForDisplay(todos []Todo) []Todo {
	out := append([]Todo(nil), todos...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority.weight() > out[j].Priority.weight()
	})
	return out
}

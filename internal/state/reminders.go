package state

import "time"

const (
	todoReminderTitle = "Todo Reminder"
	noteReminderTitle = "Note Reminder"
)

// FireDueReminders emits a notification for every enabled todo or note
// reminder due at or before now and disables that reminder in the same
// atomic mutation, so a reminder fires at most once. Completed todos never
// fire. Returns the number of reminders fired.
//
// The enabled flag is the de-duplication guard: a due-but-already-disabled
// reminder is skipped, and an entity deleted since scheduling simply no
// longer appears in the collection.
func (s *Store) FireDueReminders(now time.Time) int {
	fired := 0
	s.mutate(func(next *State) []ChangeScope {
		scopes := make([]ChangeScope, 0, 3)
		for i := range next.Todos {
			todo := &next.Todos[i]
			if !reminderDue(todo.Reminder, now) || todo.Completed {
				continue
			}
			id := s.newID()
			if id == "" {
				continue
			}
			next.Notifications = append(next.Notifications, Notification{
				ID:        id,
				Title:     todoReminderTitle,
				Message:   todo.Text,
				Kind:      KindTodo,
				ItemID:    todo.ID,
				Timestamp: s.now(),
				Sound:     todo.Reminder.Sound,
			})
			todo.Reminder.Enabled = false
			fired++
			scopes = appendScope(scopes, ScopeTodos)
		}
		for i := range next.Notes {
			note := &next.Notes[i]
			if !reminderDue(note.Reminder, now) {
				continue
			}
			id := s.newID()
			if id == "" {
				continue
			}
			next.Notifications = append(next.Notifications, Notification{
				ID:        id,
				Title:     noteReminderTitle,
				Message:   note.Title,
				Kind:      KindNote,
				ItemID:    note.ID,
				Timestamp: s.now(),
				Sound:     note.Reminder.Sound,
			})
			note.Reminder.Enabled = false
			fired++
			scopes = appendScope(scopes, ScopeNotes)
		}
		if fired == 0 {
			return nil
		}
		return appendScope(scopes, ScopeNotifications)
	})
	return fired
}

func reminderDue(reminder *Reminder, now time.Time) bool {
	return reminder != nil && reminder.Enabled && !reminder.At.After(now)
}

func appendScope(scopes []ChangeScope, scope ChangeScope) []ChangeScope {
	for _, existing := range scopes {
		if existing == scope {
			return scopes
		}
	}
	return append(scopes, scope)
}

package state

// NoteInput carries the caller-supplied fields for a new note. Title and
// content must both be non-empty.
type NoteInput struct {
	Title    string
	Content  string
	Color    string
	Category string
	Reminder *Reminder
}

// NoteUpdate is a partial update; nil fields are left untouched. Any applied
// update refreshes UpdatedAt.
type NoteUpdate struct {
	Title         *string
	Content       *string
	Color         *string
	Category      *string
	Reminder      *Reminder
	ClearReminder bool
}

// AddNote appends a new note. An empty title or empty content is a silent
// no-op.
func (s *Store) AddNote(input NoteInput) {
	title := trimmed(input.Title)
	content := trimmed(input.Content)
	if title == "" || content == "" {
		return
	}
	s.mutate(func(next *State) []ChangeScope {
		id := s.newID()
		if id == "" {
			return nil
		}
		createdAt := s.now()
		next.Notes = append(next.Notes, Note{
			ID:        id,
			Title:     title,
			Content:   content,
			Color:     input.Color,
			Category:  input.Category,
			CreatedAt: createdAt,
			UpdatedAt: createdAt,
			Reminder:  cloneReminder(input.Reminder),
		})
		return []ChangeScope{ScopeNotes}
	})
}

// UpdateNote applies a partial update to the note with the given id and
// advances UpdatedAt. UpdatedAt never moves backwards, even under a skewed
// clock. Unknown ids are silent no-ops.
func (s *Store) UpdateNote(id string, update NoteUpdate) {
	s.mutate(func(next *State) []ChangeScope {
		for i := range next.Notes {
			if next.Notes[i].ID != id {
				continue
			}
			applyNoteUpdate(&next.Notes[i], update)
			updatedAt := s.now()
			if updatedAt.Before(next.Notes[i].UpdatedAt) {
				updatedAt = next.Notes[i].UpdatedAt
			}
			next.Notes[i].UpdatedAt = updatedAt
			return []ChangeScope{ScopeNotes}
		}
		return nil
	})
}

// DeleteNote removes the note with the given id; unknown ids change nothing.
func (s *Store) DeleteNote(id string) {
	s.mutate(func(next *State) []ChangeScope {
		filtered := next.Notes[:0]
		for _, note := range next.Notes {
			if note.ID != id {
				filtered = append(filtered, note)
			}
		}
		if len(filtered) == len(next.Notes) {
			return nil
		}
		next.Notes = filtered
		return []ChangeScope{ScopeNotes}
	})
}

func applyNoteUpdate(note *Note, update NoteUpdate) {
	if update.Title != nil {
		if title := trimmed(*update.Title); title != "" {
			note.Title = title
		}
	}
	if update.Content != nil {
		if content := trimmed(*update.Content); content != "" {
			note.Content = content
		}
	}
	if update.Color != nil {
		note.Color = *update.Color
	}
	if update.Category != nil {
		note.Category = *update.Category
	}
	if update.ClearReminder {
		note.Reminder = nil
	} else if update.Reminder != nil {
		note.Reminder = cloneReminder(update.Reminder)
	}
}

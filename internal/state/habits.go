package state

import (
	"sort"
	"time"
)

// dateLayout is the calendar-date form stored in Habit.CompletedDates.
// Lexicographic order on this layout matches chronological order.
const dateLayout = "2006-01-02"

// HabitInput carries the caller-supplied fields for a new habit.
type HabitInput struct {
	Name        string
	Description string
	Color       string
}

// HabitUpdate is a partial update; nil fields are left untouched. Streak and
// CompletedDates are owned by ToggleHabitDate and cannot be set directly.
type HabitUpdate struct {
	Name        *string
	Description *string
	Color       *string
}

// AddHabit appends a new habit with an empty completion history. An empty
// name is a silent no-op.
func (s *Store) AddHabit(input HabitInput) {
	name := trimmed(input.Name)
	if name == "" {
		return
	}
	s.mutate(func(next *State) []ChangeScope {
		id := s.newID()
		if id == "" {
			return nil
		}
		next.Habits = append(next.Habits, Habit{
			ID:             id,
			Name:           name,
			Description:    input.Description,
			Color:          input.Color,
			CompletedDates: []string{},
			CreatedAt:      s.now(),
		})
		return []ChangeScope{ScopeHabits}
	})
}

// UpdateHabit applies a partial update to the habit with the given id.
// Unknown ids are silent no-ops.
func (s *Store) UpdateHabit(id string, update HabitUpdate) {
	s.mutate(func(next *State) []ChangeScope {
		for i := range next.Habits {
			if next.Habits[i].ID != id {
				continue
			}
			if update.Name != nil {
				if name := trimmed(*update.Name); name != "" {
					next.Habits[i].Name = name
				}
			}
			if update.Description != nil {
				next.Habits[i].Description = *update.Description
			}
			if update.Color != nil {
				next.Habits[i].Color = *update.Color
			}
			return []ChangeScope{ScopeHabits}
		}
		return nil
	})
}

// DeleteHabit removes the habit with the given id; unknown ids change
// nothing.
func (s *Store) DeleteHabit(id string) {
	s.mutate(func(next *State) []ChangeScope {
		filtered := next.Habits[:0]
		for _, habit := range next.Habits {
			if habit.ID != id {
				filtered = append(filtered, habit)
			}
		}
		if len(filtered) == len(next.Habits) {
			return nil
		}
		next.Habits = filtered
		return []ChangeScope{ScopeHabits}
	})
}

// ToggleHabitDate flips the completion mark for one calendar date and
// recomputes the cached streak. The date must be in YYYY-MM-DD form; a
// malformed date or unknown id is a silent no-op. The new completion set and
// the recomputed streak land in the same update.
func (s *Store) ToggleHabitDate(id, date string) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return
	}
	s.mutate(func(next *State) []ChangeScope {
		for i := range next.Habits {
			if next.Habits[i].ID != id {
				continue
			}
			completed := toggleDate(next.Habits[i].CompletedDates, date)
			sort.Strings(completed)
			next.Habits[i].CompletedDates = completed
			next.Habits[i].Streak = streakFor(completed, s.clock())
			return []ChangeScope{ScopeHabits}
		}
		return nil
	})
}

func toggleDate(dates []string, date string) []string {
	out := make([]string, 0, len(dates)+1)
	removed := false
	for _, existing := range dates {
		if existing == date {
			removed = true
			continue
		}
		out = append(out, existing)
	}
	if !removed {
		out = append(out, date)
	}
	return out
}

// streakFor counts the unbroken run of daily completions ending today, in
// the local calendar. A history that skips today scores zero no matter how
// dense the past is. dates must be sorted ascending.
func streakFor(dates []string, now time.Time) int {
	if len(dates) == 0 {
		return 0
	}
	today := now.Format(dateLayout)
	if !containsDate(dates, today) {
		return 0
	}
	streak := 0
	for i := len(dates) - 1; i >= 0; i-- {
		expected := now.AddDate(0, 0, -(len(dates) - 1 - i)).Format(dateLayout)
		if dates[i] != expected {
			break
		}
		streak++
	}
	return streak
}

func containsDate(sorted []string, date string) bool {
	index := sort.SearchStrings(sorted, date)
	return index < len(sorted) && sorted[index] == date
}

package state

// NotificationInput carries the caller-supplied fields for a new
// notification.
type NotificationInput struct {
	Title   string
	Message string
	Kind    NotificationKind
	ItemID  string
	Sound   string
}

// AddNotification appends a new notification. An empty title or unknown kind
// is a silent no-op.
func (s *Store) AddNotification(input NotificationInput) {
	title := trimmed(input.Title)
	if title == "" || !input.Kind.Valid() {
		return
	}
	s.mutate(func(next *State) []ChangeScope {
		id := s.newID()
		if id == "" {
			return nil
		}
		next.Notifications = append(next.Notifications, Notification{
			ID:        id,
			Title:     title,
			Message:   input.Message,
			Kind:      input.Kind,
			ItemID:    input.ItemID,
			Timestamp: s.now(),
			Sound:     input.Sound,
		})
		return []ChangeScope{ScopeNotifications}
	})
}

// RemoveNotification dismisses the notification with the given id; unknown
// ids change nothing.
func (s *Store) RemoveNotification(id string) {
	s.mutate(func(next *State) []ChangeScope {
		filtered := next.Notifications[:0]
		for _, notification := range next.Notifications {
			if notification.ID != id {
				filtered = append(filtered, notification)
			}
		}
		if len(filtered) == len(next.Notifications) {
			return nil
		}
		next.Notifications = filtered
		return []ChangeScope{ScopeNotifications}
	})
}

// ClearNotifications dismisses everything at once.
func (s *Store) ClearNotifications() {
	s.mutate(func(next *State) []ChangeScope {
		if len(next.Notifications) == 0 {
			return nil
		}
		next.Notifications = nil
		return []ChangeScope{ScopeNotifications}
	})
}

package state

// DrawingPadInput carries the caller-supplied fields for a new drawing pad.
type DrawingPadInput struct {
	Name      string
	ImageData string
	Folder    string
}

// DrawingPadUpdate is a partial update; nil fields are left untouched.
type DrawingPadUpdate struct {
	Name      *string
	ImageData *string
	Folder    *string
}

// AddDrawingPad appends a new drawing pad. An empty name is a silent no-op.
func (s *Store) AddDrawingPad(input DrawingPadInput) {
	name := trimmed(input.Name)
	if name == "" {
		return
	}
	s.mutate(func(next *State) []ChangeScope {
		id := s.newID()
		if id == "" {
			return nil
		}
		next.DrawingPads = append(next.DrawingPads, DrawingPad{
			ID:        id,
			Name:      name,
			ImageData: input.ImageData,
			Folder:    input.Folder,
			CreatedAt: s.now(),
		})
		return []ChangeScope{ScopeDrawings}
	})
}

// UpdateDrawingPad applies a partial update to the pad with the given id.
// Unknown ids are silent no-ops.
func (s *Store) UpdateDrawingPad(id string, update DrawingPadUpdate) {
	s.mutate(func(next *State) []ChangeScope {
		for i := range next.DrawingPads {
			if next.DrawingPads[i].ID != id {
				continue
			}
			if update.Name != nil {
				if name := trimmed(*update.Name); name != "" {
					next.DrawingPads[i].Name = name
				}
			}
			if update.ImageData != nil {
				next.DrawingPads[i].ImageData = *update.ImageData
			}
			if update.Folder != nil {
				next.DrawingPads[i].Folder = *update.Folder
			}
			return []ChangeScope{ScopeDrawings}
		}
		return nil
	})
}

// DeleteDrawingPad removes the pad with the given id; unknown ids change
// nothing.
func (s *Store) DeleteDrawingPad(id string) {
	s.mutate(func(next *State) []ChangeScope {
		filtered := next.DrawingPads[:0]
		for _, pad := range next.DrawingPads {
			if pad.ID != id {
				filtered = append(filtered, pad)
			}
		}
		if len(filtered) == len(next.DrawingPads) {
			return nil
		}
		next.DrawingPads = filtered
		return []ChangeScope{ScopeDrawings}
	})
}

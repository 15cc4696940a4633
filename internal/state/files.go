package state

// FileInput carries the caller-supplied fields for a new stored file. Data
// is an opaque encoded blob; the core never decodes it.
type FileInput struct {
	Name     string
	MIMEType string
	Size     int64
	Data     string
	Folder   string
}

// AddFile appends a new file. An empty name or negative size is a silent
// no-op.
func (s *Store) AddFile(input FileInput) {
	name := trimmed(input.Name)
	if name == "" || input.Size < 0 {
		return
	}
	s.mutate(func(next *State) []ChangeScope {
		id := s.newID()
		if id == "" {
			return nil
		}
		next.Files = append(next.Files, FileItem{
			ID:        id,
			Name:      name,
			MIMEType:  input.MIMEType,
			Size:      input.Size,
			Data:      input.Data,
			Folder:    input.Folder,
			CreatedAt: s.now(),
		})
		return []ChangeScope{ScopeFiles}
	})
}

// DeleteFile removes the file with the given id; unknown ids change nothing.
func (s *Store) DeleteFile(id string) {
	s.mutate(func(next *State) []ChangeScope {
		filtered := next.Files[:0]
		for _, file := range next.Files {
			if file.ID != id {
				filtered = append(filtered, file)
			}
		}
		if len(filtered) == len(next.Files) {
			return nil
		}
		next.Files = filtered
		return []ChangeScope{ScopeFiles}
	})
}

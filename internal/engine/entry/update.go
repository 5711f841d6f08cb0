package entry

// Update describes one reversible mutation of the store.
//
// Apply mutates the store and returns the update that restores the prior
// state exactly: for any update u, applying u and then applying the update
// it returned leaves the store structurally unchanged. Preconditions are
// validated before anything is mutated, so a failed Apply never leaves a
// partially applied state behind.
type Update interface {
	Apply(s *Store) (Update, error)
}

// Add inserts an entry under a specific id.
// The inverse is Remove of the same id.
type Add struct {
	ID    ID
	Entry Entry
}

// Apply implements Update.
func (u Add) Apply(s *Store) (Update, error) {
	if err := s.insert(u.ID, u.Entry); err != nil {
		return nil, err
	}
	return Remove{ID: u.ID}, nil
}

// Remove deletes the entry under an id.
// The inverse is Add carrying the captured entry.
type Remove struct {
	ID ID
}

// Apply implements Update.
func (u Remove) Apply(s *Store) (Update, error) {
	e, err := s.remove(u.ID)
	if err != nil {
		return nil, err
	}
	return Add{ID: u.ID, Entry: e}, nil
}

// Edit replaces the content of the entry under an id.
// The inverse is an Edit carrying the captured old content.
type Edit struct {
	ID      ID
	Content string
}

// Apply implements Update.
func (u Edit) Apply(s *Store) (Update, error) {
	e, ok := s.byID[u.ID]
	if !ok {
		return nil, ErrEntryNotFound
	}
	old := e.Content
	e.Content = u.Content
	e.Version++
	s.byID[u.ID] = e
	return Edit{ID: u.ID, Content: old}, nil
}

// Distribute applies a batch of edits as one atomic unit.
// Every target id is validated before the first edit runs; the inverse is
// a Distribute of the collected inverse edits in the original order.
type Distribute struct {
	Edits []Edit
}

// Apply implements Update.
func (u Distribute) Apply(s *Store) (Update, error) {
	for _, e := range u.Edits {
		if !s.Contains(e.ID) {
			return nil, ErrEntryNotFound
		}
	}

	inverse := make([]Edit, len(u.Edits))
	for i, e := range u.Edits {
		inv, err := e.Apply(s)
		if err != nil {
			// Unreachable after validation; surface it rather than guess.
			return nil, err
		}
		inverse[i] = inv.(Edit)
	}
	return Distribute{Edits: inverse}, nil
}

// Clear replaces the entire store contents with the given snapshots.
// A forward clear carries an empty snapshot list; the inverse carries the
// full prior sequence.
type Clear struct {
	Entries []Snapshot
}

// Apply implements Update.
func (u Clear) Apply(s *Store) (Update, error) {
	old := s.replaceAll(u.Entries)
	return Clear{Entries: old}, nil
}

package entry

import (
	"errors"
	"sort"
)

// Errors returned by store operations.
var (
	// ErrEntryNotFound indicates an update referenced an id with no live entry.
	ErrEntryNotFound = errors.New("entry not found")

	// ErrDuplicateID indicates an insertion referenced an id that is already live.
	ErrDuplicateID = errors.New("duplicate entry id")
)

// Store is an ordered collection of entries keyed by stable id.
// Iteration order is ascending id, which equals insertion order because
// ids are allocated from an increasing counter. The store is not
// goroutine-safe; the engine serializes access.
type Store struct {
	order  []ID
	byID   map[ID]Entry
	nextID ID
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{byID: make(map[ID]Entry)}
}

// FromSnapshots creates a store from persisted snapshots.
// Ids are compacted to 0..n-1 in snapshot order and versions reset, so
// the id counter never creeps upward across runs.
func FromSnapshots(snaps []Snapshot) *Store {
	s := NewStore()
	for _, snap := range snaps {
		id := s.nextID
		s.nextID++
		s.order = append(s.order, id)
		s.byID[id] = Entry{Label: snap.Entry.Label, Content: snap.Entry.Content}
	}
	return s
}

// Restore creates a store from persisted snapshots keeping their ids.
// Used when persisted history stacks still reference those ids and
// compaction would strand them.
func Restore(snaps []Snapshot) *Store {
	s := NewStore()
	s.replaceAll(snaps)
	return s
}

// Len returns the number of live entries.
func (s *Store) Len() int {
	return len(s.order)
}

// IsEmpty returns true if the store holds no entries.
func (s *Store) IsEmpty() bool {
	return len(s.order) == 0
}

// AllocateID reserves the next fresh id.
func (s *Store) AllocateID() ID {
	id := s.nextID
	s.nextID++
	return id
}

// IDs returns the live ids in store order.
func (s *Store) IDs() []ID {
	ids := make([]ID, len(s.order))
	copy(ids, s.order)
	return ids
}

// Get returns the entry for id.
func (s *Store) Get(id ID) (Entry, bool) {
	e, ok := s.byID[id]
	return e, ok
}

// Contains returns true if id names a live entry.
func (s *Store) Contains(id ID) bool {
	_, ok := s.byID[id]
	return ok
}

// Snapshots returns the full entry sequence in store order.
func (s *Store) Snapshots() []Snapshot {
	snaps := make([]Snapshot, 0, len(s.order))
	for _, id := range s.order {
		snaps = append(snaps, Snapshot{ID: id, Entry: s.byID[id]})
	}
	return snaps
}

// insert places an entry under id, keeping order sorted by id.
func (s *Store) insert(id ID, e Entry) error {
	if _, exists := s.byID[id]; exists {
		return ErrDuplicateID
	}
	idx := sort.Search(len(s.order), func(i int) bool { return s.order[i] >= id })
	s.order = append(s.order, 0)
	copy(s.order[idx+1:], s.order[idx:])
	s.order[idx] = id
	s.byID[id] = e

	// Keep the id generator ahead of everything ever inserted.
	if id >= s.nextID {
		s.nextID = id + 1
	}
	return nil
}

// remove deletes the entry under id and returns it.
func (s *Store) remove(id ID) (Entry, error) {
	e, ok := s.byID[id]
	if !ok {
		return Entry{}, ErrEntryNotFound
	}
	delete(s.byID, id)
	idx := sort.Search(len(s.order), func(i int) bool { return s.order[i] >= id })
	s.order = append(s.order[:idx], s.order[idx+1:]...)
	return e, nil
}

// replaceAll swaps the full contents for the given snapshots and returns
// the previous sequence. The id generator never moves backwards.
func (s *Store) replaceAll(snaps []Snapshot) []Snapshot {
	old := s.Snapshots()

	s.order = s.order[:0]
	s.byID = make(map[ID]Entry, len(snaps))
	for _, snap := range snaps {
		idx := sort.Search(len(s.order), func(i int) bool { return s.order[i] >= snap.ID })
		s.order = append(s.order, 0)
		copy(s.order[idx+1:], s.order[idx:])
		s.order[idx] = snap.ID
		s.byID[snap.ID] = snap.Entry
		if snap.ID >= s.nextID {
			s.nextID = snap.ID + 1
		}
	}
	return old
}

package history

import (
	"errors"
	"fmt"
	"testing"

	"github.com/dshills/linemine/internal/engine/entry"
)

// Helper to record an append of one labeled entry.
func recordAdd(t *testing.T, h *History, s *entry.Store, label string) entry.ID {
	t.Helper()
	id := s.AllocateID()
	if err := h.Record(s, entry.Add{ID: id, Entry: entry.New(label)}); err != nil {
		t.Fatalf("Record(Add %q): %v", label, err)
	}
	return id
}

func labels(s *entry.Store) []string {
	out := make([]string, 0, s.Len())
	for _, snap := range s.Snapshots() {
		out = append(out, snap.Entry.Content)
	}
	return out
}

func TestRecordPushesUndoClearsRedo(t *testing.T) {
	s := entry.NewStore()
	h := New(0)

	recordAdd(t, h, s, "a")
	recordAdd(t, h, s, "b")
	if h.UndoCount() != 2 {
		t.Fatalf("UndoCount() = %d, want 2", h.UndoCount())
	}

	if err := h.Undo(s); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if !h.CanRedo() {
		t.Fatal("redo should be available after undo")
	}

	recordAdd(t, h, s, "c")
	if h.CanRedo() {
		t.Error("new forward action must clear the redo stack")
	}
}

func TestUndoToEmptyRestoresInitialState(t *testing.T) {
	s := entry.NewStore()
	h := New(0)

	recordAdd(t, h, s, "a")
	recordAdd(t, h, s, "b")
	ids := s.IDs()
	if err := h.Record(s, entry.Edit{ID: ids[0], Content: "a2"}); err != nil {
		t.Fatalf("Record(Edit): %v", err)
	}
	if err := h.Record(s, entry.Remove{ID: ids[1]}); err != nil {
		t.Fatalf("Record(Remove): %v", err)
	}
	if err := h.Record(s, entry.Clear{}); err != nil {
		t.Fatalf("Record(Clear): %v", err)
	}

	for h.CanUndo() {
		if err := h.Undo(s); err != nil {
			t.Fatalf("Undo: %v", err)
		}
	}

	if !s.IsEmpty() {
		t.Errorf("store after full undo = %v, want empty", labels(s))
	}
}

func TestUndoRedoRoundTrip(t *testing.T) {
	s := entry.NewStore()
	h := New(0)

	recordAdd(t, h, s, "a")
	recordAdd(t, h, s, "b")
	want := labels(s)

	if err := h.Undo(s); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if err := h.Undo(s); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if err := h.Redo(s); err != nil {
		t.Fatalf("Redo: %v", err)
	}
	if err := h.Redo(s); err != nil {
		t.Fatalf("Redo: %v", err)
	}

	got := labels(s)
	if len(got) != len(want) {
		t.Fatalf("labels = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("labels = %v, want %v", got, want)
		}
	}
}

func TestEmptyStacksAreNoops(t *testing.T) {
	s := entry.NewStore()
	h := New(0)

	if err := h.Undo(s); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("Undo on empty = %v, want ErrNothingToUndo", err)
	}
	if err := h.Redo(s); !errors.Is(err, ErrNothingToRedo) {
		t.Errorf("Redo on empty = %v, want ErrNothingToRedo", err)
	}
}

func TestUndoStackBounded(t *testing.T) {
	s := entry.NewStore()
	h := New(0)

	for i := 0; i < DefaultMaxEntries+50; i++ {
		recordAdd(t, h, s, fmt.Sprintf("line %d", i))
	}

	if h.UndoCount() != DefaultMaxEntries {
		t.Errorf("UndoCount() = %d, want %d", h.UndoCount(), DefaultMaxEntries)
	}

	// Drain the stack; the oldest 50 additions must survive.
	for h.CanUndo() {
		if err := h.Undo(s); err != nil {
			t.Fatalf("Undo: %v", err)
		}
	}
	if s.Len() != 50 {
		t.Errorf("entries after full undo = %d, want 50", s.Len())
	}
	got := labels(s)
	if got[0] != "line 0" || got[49] != "line 49" {
		t.Errorf("oldest entries not preserved: first=%q last=%q", got[0], got[49])
	}
}

func TestSmallBoundDropsOldestFirst(t *testing.T) {
	s := entry.NewStore()
	h := New(3)

	for i := 0; i < 5; i++ {
		recordAdd(t, h, s, fmt.Sprintf("line %d", i))
	}
	if h.UndoCount() != 3 {
		t.Fatalf("UndoCount() = %d, want 3", h.UndoCount())
	}
	for h.CanUndo() {
		if err := h.Undo(s); err != nil {
			t.Fatalf("Undo: %v", err)
		}
	}
	got := labels(s)
	if len(got) != 2 || got[0] != "line 0" || got[1] != "line 1" {
		t.Errorf("remaining = %v, want the two oldest lines", got)
	}
}

func TestRestoreTruncates(t *testing.T) {
	_ = entry.NewStore()
	h := New(2)

	var undos []entry.Update
	for i := 0; i < 4; i++ {
		undos = append(undos, entry.Remove{ID: entry.ID(i)})
	}
	h.Restore(undos, nil)

	if h.UndoCount() != 2 {
		t.Errorf("UndoCount() = %d, want 2 after restore", h.UndoCount())
	}
	persisted, _ := h.Snapshot()
	if persisted[0].(entry.Remove).ID != 2 {
		t.Errorf("oldest surviving = %+v, want Remove{2}", persisted[0])
	}
}

func TestRecordFailedPreconditionRecordsNothing(t *testing.T) {
	s := entry.NewStore()
	h := New(0)

	err := h.Record(s, entry.Remove{ID: 42})
	if !errors.Is(err, entry.ErrEntryNotFound) {
		t.Fatalf("err = %v, want ErrEntryNotFound", err)
	}
	if h.CanUndo() {
		t.Error("failed update must not be recorded")
	}
}

package storage

import (
	"errors"
	"testing"

	"github.com/dshills/linemine/internal/engine/entry"
)

func TestEntriesRoundTrip(t *testing.T) {
	snaps := []entry.Snapshot{
		{ID: 0, Entry: entry.Entry{Label: "a", Content: "a"}},
		{ID: 3, Entry: entry.Entry{Label: "b", Content: "（a）\nb", Version: 2}},
	}

	raw, err := EncodeEntries(snaps)
	if err != nil {
		t.Fatalf("EncodeEntries: %v", err)
	}
	got, err := DecodeEntries(raw)
	if err != nil {
		t.Fatalf("DecodeEntries: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[1].ID != 3 || got[1].Entry.Label != "b" || got[1].Entry.Content != "（a）\nb" {
		t.Errorf("got[1] = %+v", got[1])
	}
	if got[1].Entry.Version != 0 {
		t.Errorf("Version = %d, versions must not be persisted", got[1].Entry.Version)
	}
}

func TestUpdatesRoundTrip(t *testing.T) {
	updates := []entry.Update{
		entry.Add{ID: 1, Entry: entry.New("line")},
		entry.Remove{ID: 2},
		entry.Edit{ID: 3, Content: ""},
		entry.Distribute{Edits: []entry.Edit{
			{ID: 4, Content: "x"},
			{ID: 5, Content: "y"},
		}},
		entry.Clear{Entries: []entry.Snapshot{
			{ID: 6, Entry: entry.Entry{Label: "z", Content: "z2"}},
		}},
	}

	raw, err := EncodeUpdates(updates)
	if err != nil {
		t.Fatalf("EncodeUpdates: %v", err)
	}
	got, err := DecodeUpdates(raw)
	if err != nil {
		t.Fatalf("DecodeUpdates: %v", err)
	}
	if len(got) != len(updates) {
		t.Fatalf("len = %d, want %d", len(got), len(updates))
	}

	if add, ok := got[0].(entry.Add); !ok || add.ID != 1 || add.Entry.Label != "line" {
		t.Errorf("got[0] = %#v", got[0])
	}
	if rm, ok := got[1].(entry.Remove); !ok || rm.ID != 2 {
		t.Errorf("got[1] = %#v", got[1])
	}
	if ed, ok := got[2].(entry.Edit); !ok || ed.ID != 3 || ed.Content != "" {
		t.Errorf("got[2] = %#v", got[2])
	}
	if d, ok := got[3].(entry.Distribute); !ok || len(d.Edits) != 2 || d.Edits[1].Content != "y" {
		t.Errorf("got[3] = %#v", got[3])
	}
	if c, ok := got[4].(entry.Clear); !ok || len(c.Entries) != 1 || c.Entries[0].Entry.Content != "z2" {
		t.Errorf("got[4] = %#v", got[4])
	}
}

func TestDecodeUpdatesUnknownOp(t *testing.T) {
	_, err := DecodeUpdates([]byte(`[{"op":"teleport","id":1}]`))
	if !errors.Is(err, ErrUnknownUpdate) {
		t.Errorf("err = %v, want ErrUnknownUpdate", err)
	}
}

func TestDecodeEntriesMalformed(t *testing.T) {
	if _, err := DecodeEntries([]byte(`{"not":"a list"}`)); err == nil {
		t.Error("expected error for malformed entries")
	}
}

func TestFontSizeRoundTrip(t *testing.T) {
	raw, err := EncodeFontSize(26)
	if err != nil {
		t.Fatalf("EncodeFontSize: %v", err)
	}
	size, err := DecodeFontSize(raw)
	if err != nil {
		t.Fatalf("DecodeFontSize: %v", err)
	}
	if size != 26 {
		t.Errorf("size = %d, want 26", size)
	}
}

func TestDecodedStackReplays(t *testing.T) {
	// A persisted undo stack must still apply against a restored store.
	s := entry.Restore([]entry.Snapshot{
		{ID: 5, Entry: entry.New("line")},
	})
	raw, err := EncodeUpdates([]entry.Update{entry.Remove{ID: 5}})
	if err != nil {
		t.Fatalf("EncodeUpdates: %v", err)
	}
	got, err := DecodeUpdates(raw)
	if err != nil {
		t.Fatalf("DecodeUpdates: %v", err)
	}
	if _, err := got[0].Apply(s); err != nil {
		t.Fatalf("Apply decoded update: %v", err)
	}
	if !s.IsEmpty() {
		t.Error("decoded remove did not apply")
	}
}

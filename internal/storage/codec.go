package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dshills/linemine/internal/engine/entry"
)

// ErrUnknownUpdate indicates a persisted update had an unrecognized op tag.
var ErrUnknownUpdate = errors.New("unknown update op")

// Op tags used in serialized updates.
const (
	opAdd        = "add"
	opRemove     = "remove"
	opEdit       = "edit"
	opDistribute = "distribute"
	opClear      = "clear"
)

// entryRecord is the wire shape of one entry.
// Versions are not persisted; they reset on load.
type entryRecord struct {
	ID      int64  `json:"id"`
	Label   string `json:"label"`
	Content string `json:"content"`
}

// updateRecord is the wire shape of one reversible update, tagged by op.
type updateRecord struct {
	Op      string         `json:"op"`
	ID      int64          `json:"id,omitempty"`
	Label   string         `json:"label,omitempty"`
	Content string         `json:"content,omitempty"`
	Entries []entryRecord  `json:"entries,omitempty"`
	Edits   []updateRecord `json:"edits,omitempty"`
}

func toEntryRecords(snaps []entry.Snapshot) []entryRecord {
	recs := make([]entryRecord, len(snaps))
	for i, snap := range snaps {
		recs[i] = entryRecord{
			ID:      int64(snap.ID),
			Label:   snap.Entry.Label,
			Content: snap.Entry.Content,
		}
	}
	return recs
}

func fromEntryRecords(recs []entryRecord) []entry.Snapshot {
	snaps := make([]entry.Snapshot, len(recs))
	for i, rec := range recs {
		snaps[i] = entry.Snapshot{
			ID:    entry.ID(rec.ID),
			Entry: entry.Entry{Label: rec.Label, Content: rec.Content},
		}
	}
	return snaps
}

// EncodeEntries serializes the entry sequence.
func EncodeEntries(snaps []entry.Snapshot) ([]byte, error) {
	return json.Marshal(toEntryRecords(snaps))
}

// DecodeEntries deserializes an entry sequence.
func DecodeEntries(raw []byte) ([]entry.Snapshot, error) {
	var recs []entryRecord
	if err := json.Unmarshal(raw, &recs); err != nil {
		return nil, fmt.Errorf("decode entries: %w", err)
	}
	return fromEntryRecords(recs), nil
}

func toUpdateRecord(u entry.Update) (updateRecord, error) {
	switch v := u.(type) {
	case entry.Add:
		return updateRecord{
			Op:      opAdd,
			ID:      int64(v.ID),
			Label:   v.Entry.Label,
			Content: v.Entry.Content,
		}, nil
	case entry.Remove:
		return updateRecord{Op: opRemove, ID: int64(v.ID)}, nil
	case entry.Edit:
		return updateRecord{Op: opEdit, ID: int64(v.ID), Content: v.Content}, nil
	case entry.Distribute:
		edits := make([]updateRecord, len(v.Edits))
		for i, e := range v.Edits {
			edits[i] = updateRecord{Op: opEdit, ID: int64(e.ID), Content: e.Content}
		}
		return updateRecord{Op: opDistribute, Edits: edits}, nil
	case entry.Clear:
		return updateRecord{Op: opClear, Entries: toEntryRecords(v.Entries)}, nil
	default:
		return updateRecord{}, fmt.Errorf("%w: %T", ErrUnknownUpdate, u)
	}
}

func fromUpdateRecord(rec updateRecord) (entry.Update, error) {
	switch rec.Op {
	case opAdd:
		return entry.Add{
			ID:    entry.ID(rec.ID),
			Entry: entry.Entry{Label: rec.Label, Content: rec.Content},
		}, nil
	case opRemove:
		return entry.Remove{ID: entry.ID(rec.ID)}, nil
	case opEdit:
		return entry.Edit{ID: entry.ID(rec.ID), Content: rec.Content}, nil
	case opDistribute:
		edits := make([]entry.Edit, len(rec.Edits))
		for i, e := range rec.Edits {
			edits[i] = entry.Edit{ID: entry.ID(e.ID), Content: e.Content}
		}
		return entry.Distribute{Edits: edits}, nil
	case opClear:
		return entry.Clear{Entries: fromEntryRecords(rec.Entries)}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownUpdate, rec.Op)
	}
}

// EncodeUpdates serializes a history stack, oldest first.
func EncodeUpdates(updates []entry.Update) ([]byte, error) {
	recs := make([]updateRecord, len(updates))
	for i, u := range updates {
		rec, err := toUpdateRecord(u)
		if err != nil {
			return nil, err
		}
		recs[i] = rec
	}
	return json.Marshal(recs)
}

// DecodeUpdates deserializes a history stack.
func DecodeUpdates(raw []byte) ([]entry.Update, error) {
	var recs []updateRecord
	if err := json.Unmarshal(raw, &recs); err != nil {
		return nil, fmt.Errorf("decode updates: %w", err)
	}
	updates := make([]entry.Update, len(recs))
	for i, rec := range recs {
		u, err := fromUpdateRecord(rec)
		if err != nil {
			return nil, err
		}
		updates[i] = u
	}
	return updates, nil
}

// EncodeFontSize serializes the display preference.
func EncodeFontSize(size int) ([]byte, error) {
	return json.Marshal(size)
}

// DecodeFontSize deserializes the display preference.
func DecodeFontSize(raw []byte) (int, error) {
	var size int
	if err := json.Unmarshal(raw, &size); err != nil {
		return 0, fmt.Errorf("decode font size: %w", err)
	}
	return size, nil
}

package storage

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/pretty"

	"github.com/dshills/linemine/internal/engine/entry"
)

// ExportFileName is the conventional name of the exported entry list.
const ExportFileName = "in.json"

// exportRecord is the wire shape of one exported line.
// Ids are a process detail and stay out of the export.
type exportRecord struct {
	Label   string `json:"label"`
	Content string `json:"content"`
}

// ExportEntries serializes the entry list as a formatted JSON blob
// suitable for download or hand-off to other tools.
func ExportEntries(snaps []entry.Snapshot) ([]byte, error) {
	recs := make([]exportRecord, len(snaps))
	for i, snap := range snaps {
		recs[i] = exportRecord{Label: snap.Entry.Label, Content: snap.Entry.Content}
	}
	data, err := json.Marshal(recs)
	if err != nil {
		return nil, fmt.Errorf("export entries: %w", err)
	}
	return pretty.Pretty(data), nil
}

// WriteExport writes the exported entry list to path.
func WriteExport(path string, snaps []entry.Snapshot) error {
	data, err := ExportEntries(snaps)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}

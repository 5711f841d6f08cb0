package app

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/tidwall/gjson"

	"github.com/dshills/linemine/internal/config"
	"github.com/dshills/linemine/internal/storage"
)

func newTestApp(t *testing.T) (*Application, string) {
	t.Helper()
	statePath := filepath.Join(t.TempDir(), "state.json")
	a, err := New(Options{StatePath: statePath})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return a, statePath
}

func TestMutationsPersistImmediately(t *testing.T) {
	a, statePath := newTestApp(t)

	id, ok := a.Engine().Append("first line")
	if !ok {
		t.Fatal("append rejected")
	}
	if _, ok := a.Engine().Append("second line"); !ok {
		t.Fatal("append rejected")
	}
	if _, err := a.Engine().SetContent(id, "edited"); err != nil {
		t.Fatalf("SetContent: %v", err)
	}

	data, err := os.ReadFile(statePath)
	if err != nil {
		t.Fatalf("read state: %v", err)
	}
	doc := gjson.ParseBytes(data)
	if n := len(doc.Get(storage.KeyEntries).Array()); n != 2 {
		t.Errorf("persisted entries = %d, want 2", n)
	}
	if n := len(doc.Get(storage.KeyUndoStack).Array()); n != 3 {
		t.Errorf("persisted undo stack = %d, want 3", n)
	}
	if got := doc.Get(storage.KeyEntries + ".0.content").String(); got != "edited" {
		t.Errorf("persisted content = %q", got)
	}
}

func TestStateSurvivesRestart(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "state.json")

	a, err := New(Options{StatePath: statePath})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	a.Engine().Append("kept across runs")
	a.Engine().Append("and undone")
	if err := a.Engine().Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}

	b, err := New(Options{StatePath: statePath})
	if err != nil {
		t.Fatalf("New (restart): %v", err)
	}
	views := b.Engine().Entries()
	if len(views) != 1 || views[0].Content != "kept across runs" {
		t.Fatalf("entries after restart = %+v", views)
	}
	if !b.Engine().CanRedo() {
		t.Fatal("redo stack lost across restart")
	}
	if err := b.Engine().Redo(); err != nil {
		t.Fatalf("Redo: %v", err)
	}
	if b.Engine().Count() != 2 {
		t.Errorf("count after redo = %d, want 2", b.Engine().Count())
	}
}

func TestCorruptStateStartsEmpty(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(statePath, []byte("not json at all"), 0o644); err != nil {
		t.Fatal(err)
	}

	a, err := New(Options{StatePath: statePath})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !a.Engine().IsEmpty() {
		t.Error("corrupt state should start empty")
	}
}

func TestCorruptStackDropsBothStacks(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "state.json")
	doc := `{"entries":[{"id":0,"label":"a","content":"a"}],"undoStack":"garbage","redoStack":[{"op":"add","id":1,"label":"b","content":"b"}]}`
	if err := os.WriteFile(statePath, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	a, err := New(Options{StatePath: statePath})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if a.Engine().CanUndo() || a.Engine().CanRedo() {
		t.Error("corrupt undo stack must drop both stacks")
	}
	if a.Engine().Count() != 1 {
		t.Errorf("entries = %d, want 1", a.Engine().Count())
	}
}

func TestFontSizePersistsAndClamps(t *testing.T) {
	a, statePath := newTestApp(t)

	if got := a.FontSize(); got != config.DefaultFontSize {
		t.Fatalf("default font size = %d, want %d", got, config.DefaultFontSize)
	}

	a.SetFontSize(30)
	a.AdjustFontSize(-100)
	if got := a.FontSize(); got != 1 {
		t.Errorf("font size = %d, want clamp to 1", got)
	}
	a.SetFontSize(18)

	b, err := New(Options{StatePath: statePath})
	if err != nil {
		t.Fatalf("New (restart): %v", err)
	}
	if got := b.FontSize(); got != 18 {
		t.Errorf("font size after restart = %d, want 18", got)
	}
}

func TestExportWritesFormattedJSON(t *testing.T) {
	a, _ := newTestApp(t)
	a.Engine().Append("line one")
	a.Engine().Append("line two")

	exportPath := filepath.Join(t.TempDir(), "in.json")
	if err := a.Export(exportPath); err != nil {
		t.Fatalf("Export: %v", err)
	}

	data, err := os.ReadFile(exportPath)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	var recs []struct {
		Label   string `json:"label"`
		Content string `json:"content"`
	}
	if err := json.Unmarshal(data, &recs); err != nil {
		t.Fatalf("unmarshal export: %v", err)
	}
	if len(recs) != 2 || recs[0].Label != "line one" || recs[1].Content != "line two" {
		t.Errorf("export = %+v", recs)
	}
}

func TestStartShutdownLifecycle(t *testing.T) {
	a, _ := newTestApp(t)

	if err := a.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := a.Start(); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("second Start err = %v, want ErrAlreadyRunning", err)
	}

	ctx := context.Background()
	if err := a.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	if err := a.Shutdown(ctx); !errors.Is(err, ErrNotRunning) {
		t.Errorf("second Shutdown err = %v, want ErrNotRunning", err)
	}
}

func TestFeedListensWhenConfigured(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "state.json")
	a, err := New(Options{StatePath: statePath, ListenAddr: "127.0.0.1:0"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := a.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer a.Shutdown(context.Background())

	if a.FeedAddr() == "" {
		t.Error("feed address empty after Start")
	}
}

func TestMissingFilterScriptFailsBootstrap(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "state.json")
	_, err := New(Options{
		StatePath:  statePath,
		FilterPath: filepath.Join(t.TempDir(), "missing.lua"),
	})
	if err == nil {
		t.Fatal("expected error for missing filter script")
	}
	var initErr *InitError
	if !errors.As(err, &initErr) || initErr.Component != "ingest filter" {
		t.Errorf("err = %v, want InitError for ingest filter", err)
	}
}

package app

import (
	"github.com/dshills/linemine/internal/engine"
	"github.com/dshills/linemine/internal/event"
	"github.com/dshills/linemine/internal/storage"
)

// registerSubscriptions wires the persistence handlers. Every mutation
// ends with its state on disk before control returns to the caller.
func (app *Application) registerSubscriptions() {
	app.bus.Subscribe(event.TopicEntriesChanged, app.persistEntries)
	app.bus.Subscribe(event.TopicHistoryChanged, app.persistHistory)
	app.bus.Subscribe(event.TopicPrefsChanged, app.persistPrefs)
}

// persistEntries saves the entry list. Save failures are logged, never
// surfaced; the in-memory state stays authoritative.
func (app *Application) persistEntries(event.Event) {
	log := app.logger.WithComponent("storage")

	raw, err := storage.EncodeEntries(app.eng.EntriesSnapshot())
	if err != nil {
		log.Error("encode entries: %v", err)
		return
	}
	if err := app.store.Save(storage.KeyEntries, raw); err != nil {
		log.Error("save entries: %v", err)
	}
}

// persistHistory saves both undo/redo stacks.
func (app *Application) persistHistory(event.Event) {
	log := app.logger.WithComponent("storage")

	undos, redos := app.eng.HistorySnapshot()
	for _, stack := range []struct {
		key     string
		updates []engine.Update
	}{
		{storage.KeyUndoStack, undos},
		{storage.KeyRedoStack, redos},
	} {
		raw, err := storage.EncodeUpdates(stack.updates)
		if err != nil {
			log.Error("encode %s: %v", stack.key, err)
			continue
		}
		if err := app.store.Save(stack.key, raw); err != nil {
			log.Error("save %s: %v", stack.key, err)
		}
	}
}

// persistPrefs saves the display preferences.
func (app *Application) persistPrefs(event.Event) {
	log := app.logger.WithComponent("storage")

	raw, err := storage.EncodeFontSize(app.FontSize())
	if err != nil {
		log.Error("encode font size: %v", err)
		return
	}
	if err := app.store.Save(storage.KeyFontSize, raw); err != nil {
		log.Error("save font size: %v", err)
	}
}

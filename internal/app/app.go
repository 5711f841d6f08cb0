package app

import (
	"context"
	"io"
	"sync"
	"sync/atomic"

	"github.com/dshills/linemine/internal/config"
	"github.com/dshills/linemine/internal/engine"
	"github.com/dshills/linemine/internal/event"
	"github.com/dshills/linemine/internal/ingest"
	"github.com/dshills/linemine/internal/storage"
)

// DefaultStatePath is where the state document lives when no path is given.
const DefaultStatePath = "linemine.json"

// Options configures the application.
type Options struct {
	// StatePath is the path of the persisted state document.
	StatePath string

	// ListenAddr is the WebSocket feed address. Empty disables the feed.
	ListenAddr string

	// FilterPath is an optional Lua ingest filter script.
	FilterPath string

	// LogLevel sets the logging verbosity.
	LogLevel string

	// LogOutput is where logs are written. Nil discards them, which is the
	// right default while the terminal belongs to the screen.
	LogOutput io.Writer
}

// Application is the central coordinator. It owns the engine, the state
// file, the event bus and the ingest pipeline; the terminal UI drives it.
type Application struct {
	opts   Options
	logger *Logger

	bus      *event.Bus
	store    *storage.FileStore
	eng      *engine.Engine
	ingestor *ingest.Ingestor
	filter   *ingest.Filter
	feed     *ingest.Server

	prefsMu sync.Mutex
	prefs   config.Prefs

	running atomic.Bool
}

// New creates an Application and loads its persisted state.
func New(opts Options) (*Application, error) {
	if opts.StatePath == "" {
		opts.StatePath = DefaultStatePath
	}

	app := &Application{opts: opts}

	if err := app.bootstrap(); err != nil {
		return nil, err
	}
	return app, nil
}

// bootstrap initializes all components in dependency order.
func (app *Application) bootstrap() error {
	if app.opts.LogOutput == nil {
		app.logger = NullLogger
	} else {
		app.logger = NewLogger(LoggerConfig{
			Level:  ParseLogLevel(app.opts.LogLevel),
			Output: app.opts.LogOutput,
			Prefix: "linemine",
		})
	}

	app.bus = event.NewBus(event.WithPanicHandler(func(ev event.Event, recovered any) {
		app.logger.Error("subscriber panic on %s: %v", ev.Topic, recovered)
	}))

	store, err := storage.NewFileStore(app.opts.StatePath)
	if err != nil {
		return &InitError{Component: "state file", Err: err}
	}
	app.store = store

	entries, undos, redos := app.loadState()
	app.prefs = app.loadPrefs()

	app.eng = engine.New(
		engine.WithEntries(entries),
		engine.WithHistory(undos, redos),
		engine.WithChangeListener(app.publishChange),
	)

	app.registerSubscriptions()

	if app.opts.FilterPath != "" {
		filter, err := ingest.LoadFilter(app.opts.FilterPath)
		if err != nil {
			return &InitError{Component: "ingest filter", Err: err}
		}
		app.filter = filter
	}

	var ingestOpts []ingest.Option
	if app.filter != nil {
		ingestOpts = append(ingestOpts, ingest.WithFilter(app.filter))
	}
	app.ingestor = ingest.New(app.eng, ingestOpts...)
	app.feed = ingest.NewServer(app.ingestor, app.logger.WithComponent("feed"))

	return nil
}

// loadState reads the persisted entries and history stacks. Corrupt or
// missing values degrade to empty instead of blocking startup.
func (app *Application) loadState() (entries []engine.Snapshot, undos, redos []engine.Update) {
	log := app.logger.WithComponent("storage")

	if raw, ok, err := app.store.Load(storage.KeyEntries); err != nil {
		log.Warn("load entries: %v", err)
	} else if ok {
		entries, err = storage.DecodeEntries(raw)
		if err != nil {
			log.Warn("discarding entries: %v", err)
			entries = nil
		}
	}

	undos = app.loadStack(storage.KeyUndoStack)
	redos = app.loadStack(storage.KeyRedoStack)

	// A half-decoded history could undo against the wrong entries, so
	// either stack failing drops both.
	if undos == nil && redos != nil {
		redos = nil
	}
	return entries, undos, redos
}

// loadStack reads one persisted history stack, nil on any failure.
func (app *Application) loadStack(key string) []engine.Update {
	log := app.logger.WithComponent("storage")

	raw, ok, err := app.store.Load(key)
	if err != nil {
		log.Warn("load %s: %v", key, err)
		return nil
	}
	if !ok {
		return nil
	}
	updates, err := storage.DecodeUpdates(raw)
	if err != nil {
		log.Warn("discarding %s: %v", key, err)
		return nil
	}
	return updates
}

// loadPrefs reads the persisted display preferences.
func (app *Application) loadPrefs() config.Prefs {
	prefs := config.Default()

	raw, ok, err := app.store.Load(storage.KeyFontSize)
	if err != nil || !ok {
		return prefs
	}
	size, err := storage.DecodeFontSize(raw)
	if err != nil {
		app.logger.WithComponent("storage").Warn("discarding font size: %v", err)
		return prefs
	}
	prefs.FontSize = size
	return prefs.Normalized()
}

// publishChange runs after every completed engine mutation.
func (app *Application) publishChange() {
	app.bus.Publish(event.New(event.TopicEntriesChanged, nil, "engine"))
	app.bus.Publish(event.New(event.TopicHistoryChanged, nil, "engine"))
}

// Start brings up the background services. Idempotent failure: a second
// Start returns ErrAlreadyRunning.
func (app *Application) Start() error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}

	if app.opts.ListenAddr != "" {
		if err := app.feed.Start(app.opts.ListenAddr); err != nil {
			app.running.Store(false)
			return &InitError{Component: "ingest feed", Err: err}
		}
	}
	app.logger.Info("started, state at %s", app.store.Path())
	return nil
}

// Shutdown stops background services. State is already on disk; every
// mutation persisted as it happened.
func (app *Application) Shutdown(ctx context.Context) error {
	if !app.running.CompareAndSwap(true, false) {
		return ErrNotRunning
	}

	var firstErr error
	if err := app.feed.Shutdown(ctx); err != nil {
		firstErr = err
	}
	if app.filter != nil {
		app.filter.Close()
	}
	app.logger.Info("shut down")
	return firstErr
}

// Engine returns the document engine.
func (app *Application) Engine() *engine.Engine {
	return app.eng
}

// Ingestor returns the ingest pipeline, for stdin feeds.
func (app *Application) Ingestor() *ingest.Ingestor {
	return app.ingestor
}

// Bus returns the event bus.
func (app *Application) Bus() *event.Bus {
	return app.bus
}

// Logger returns the application logger.
func (app *Application) Logger() *Logger {
	return app.logger
}

// FeedAddr returns the bound feed address, or "" when the feed is off.
func (app *Application) FeedAddr() string {
	return app.feed.Addr()
}

// FontSize returns the current display font size preference.
func (app *Application) FontSize() int {
	app.prefsMu.Lock()
	defer app.prefsMu.Unlock()
	return app.prefs.FontSize
}

// SetFontSize updates the font size preference. Values below 1 clamp to 1.
func (app *Application) SetFontSize(size int) {
	if size < 1 {
		size = 1
	}

	app.prefsMu.Lock()
	if app.prefs.FontSize == size {
		app.prefsMu.Unlock()
		return
	}
	app.prefs.FontSize = size
	app.prefsMu.Unlock()

	app.bus.Publish(event.New(event.TopicPrefsChanged, size, "app"))
}

// AdjustFontSize changes the font size preference by delta.
func (app *Application) AdjustFontSize(delta int) {
	app.SetFontSize(app.FontSize() + delta)
}

// Export writes the entry list to path as formatted JSON.
func (app *Application) Export(path string) error {
	if path == "" {
		path = storage.ExportFileName
	}
	if err := storage.WriteExport(path, app.eng.EntriesSnapshot()); err != nil {
		return err
	}
	app.logger.Info("exported %d entries to %s", app.eng.Count(), path)
	return nil
}

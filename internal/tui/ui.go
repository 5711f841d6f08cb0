package tui

import (
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/dshills/linemine/internal/app"
	"github.com/dshills/linemine/internal/engine"
	"github.com/dshills/linemine/internal/engine/selection"
	"github.com/dshills/linemine/internal/event"
)

const gutterWidth = 2

// Options configures the UI.
type Options struct {
	// ExportPath is where the export key writes the entry list.
	ExportPath string

	// Theme overrides the default theme when non-zero.
	Theme *Theme
}

// UI owns the terminal screen for the lifetime of Run.
type UI struct {
	application *app.Application
	opts        Options
	theme       Theme
	screen      tcell.Screen

	layout Layout
	offset int
	cursor int

	selecting bool
	haveSel   bool
	anchorRow int
	headRow   int
	selected  selection.Selection

	editing bool
	editID  engine.ID
	editBuf []rune

	statusMsg string
}

// New creates a UI bound to the application.
func New(application *app.Application, opts Options) *UI {
	theme := DefaultTheme()
	if opts.Theme != nil {
		theme = *opts.Theme
	}
	return &UI{
		application: application,
		opts:        opts,
		theme:       theme,
	}
}

// Run initializes the screen and blocks in the event loop until the user
// quits. The screen is restored on the way out, including on panic.
func (ui *UI) Run() error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	ui.screen = screen
	defer screen.Fini()

	screen.EnableMouse()
	screen.SetStyle(ui.theme.Normal)

	// Wake the loop whenever the engine or preferences change underneath
	// it; the feed goroutine mutates the engine while we block in Poll.
	wake := func(event.Event) {
		_ = screen.PostEvent(tcell.NewEventInterrupt(nil))
	}
	bus := ui.application.Bus()
	subs := []event.Subscription{
		bus.Subscribe(event.TopicEntriesChanged, wake),
		bus.Subscribe(event.TopicPrefsChanged, wake),
	}
	defer func() {
		for _, s := range subs {
			bus.Unsubscribe(s)
		}
	}()

	for {
		ui.draw()

		switch ev := screen.PollEvent().(type) {
		case *tcell.EventKey:
			if quit := ui.handleKey(ev); quit {
				return nil
			}
		case *tcell.EventMouse:
			ui.handleMouse(ev)
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventInterrupt:
			// Redraw only.
		case nil:
			return nil
		default:
			_ = ev
		}
	}
}

// handleKey processes one key event. Returns true to quit.
func (ui *UI) handleKey(ev *tcell.EventKey) bool {
	if ui.editing {
		ui.handleEditKey(ev)
		return false
	}

	switch ev.Key() {
	case tcell.KeyEscape:
		if ui.haveSel {
			ui.clearSelection()
			return false
		}
		return true
	case tcell.KeyCtrlC:
		return true
	case tcell.KeyCtrlR:
		ui.redo()
		return false
	case tcell.KeyUp:
		ui.moveCursor(-1)
		return false
	case tcell.KeyDown:
		ui.moveCursor(1)
		return false
	case tcell.KeyPgUp:
		ui.scrollBy(-ui.listHeight())
		return false
	case tcell.KeyPgDn:
		ui.scrollBy(ui.listHeight())
		return false
	case tcell.KeyHome:
		ui.cursor = 0
		return false
	case tcell.KeyEnd:
		ui.cursor = ui.application.Engine().Count() - 1
		return false
	}

	if ev.Key() != tcell.KeyRune {
		return false
	}

	switch ev.Rune() {
	case 'q':
		return true
	case 'j':
		ui.moveCursor(1)
	case 'k':
		ui.moveCursor(-1)
	case 'g':
		ui.cursor = 0
	case 'G':
		ui.cursor = ui.application.Engine().Count() - 1
	case 'u':
		ui.undo()
	case 'd':
		ui.distribute()
	case 'x':
		ui.removeCursorEntry()
	case 'e':
		ui.beginEdit()
	case 'r':
		ui.revertCursorEntry()
	case 'C':
		ui.clearAll()
	case 's':
		ui.export()
	case '+', '=':
		ui.application.AdjustFontSize(1)
	case '-':
		ui.application.AdjustFontSize(-1)
	}
	return false
}

// handleEditKey processes keys while the inline editor is open.
func (ui *UI) handleEditKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		ui.editing = false
		ui.statusMsg = "edit cancelled"
	case tcell.KeyEnter:
		ui.commitEdit()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(ui.editBuf) > 0 {
			ui.editBuf = ui.editBuf[:len(ui.editBuf)-1]
		}
	case tcell.KeyRune:
		ui.editBuf = append(ui.editBuf, ev.Rune())
	}
}

// handleMouse turns drags over entry rows into a selection.
func (ui *UI) handleMouse(ev *tcell.EventMouse) {
	_, y := ev.Position()
	buttons := ev.Buttons()

	switch {
	case buttons&tcell.WheelUp != 0:
		ui.scrollBy(-3)
	case buttons&tcell.WheelDown != 0:
		ui.scrollBy(3)
	case buttons&tcell.Button1 != 0:
		row := ui.offset + y
		if !ui.selecting {
			ui.selecting = true
			ui.anchorRow = row
		}
		ui.headRow = row
	default:
		if ui.selecting {
			ui.selecting = false
			ui.resolveSelection()
		}
	}
}

// resolveSelection maps the finished drag onto entries. A click without a
// drag is a collapsed range and clears the selection.
func (ui *UI) resolveSelection() {
	r := ui.layout.RangeOver(ui.anchorRow, ui.headRow)
	if ui.anchorRow == ui.headRow {
		// Collapsed: a plain click deselects, like a caret placement.
		ui.clearSelection()
		if idx := ui.layout.EntryIndex(ui.anchorRow); idx >= 0 {
			ui.cursor = idx
		}
		return
	}

	sel, ok := selection.Compute(r, ui.layout.Regions)
	if !ok {
		ui.clearSelection()
		return
	}
	ui.selected = sel
	ui.haveSel = true

	// The feed must not re-mine what the user just selected on screen.
	ui.application.Ingestor().SetPageText(sel.Text)
}

// clearSelection drops the active selection and its echo suppression.
func (ui *UI) clearSelection() {
	ui.haveSel = false
	ui.selected = selection.Selection{}
	ui.application.Ingestor().SetPageText("")
}

// refreshSelection re-resolves the drag rows against the current layout.
// Entries may have changed underneath the selection since the drag.
func (ui *UI) refreshSelection() {
	if !ui.haveSel {
		return
	}
	r := ui.layout.RangeOver(ui.anchorRow, ui.headRow)
	sel, ok := selection.Compute(r, ui.layout.Regions)
	if !ok {
		ui.clearSelection()
		return
	}
	ui.selected = sel
}

func (ui *UI) undo() {
	err := ui.application.Engine().Undo()
	switch {
	case errors.Is(err, engine.ErrNothingToUndo):
		ui.statusMsg = "nothing to undo"
	case err != nil:
		ui.statusMsg = fmt.Sprintf("undo: %v", err)
	default:
		ui.statusMsg = "undone"
	}
}

func (ui *UI) redo() {
	err := ui.application.Engine().Redo()
	switch {
	case errors.Is(err, engine.ErrNothingToRedo):
		ui.statusMsg = "nothing to redo"
	case err != nil:
		ui.statusMsg = fmt.Sprintf("redo: %v", err)
	default:
		ui.statusMsg = "redone"
	}
}

func (ui *UI) distribute() {
	if !ui.haveSel {
		ui.statusMsg = "select lines to distribute"
		return
	}
	done, err := ui.application.Engine().DistributeSelected(ui.selected.IDs)
	switch {
	case err != nil:
		ui.statusMsg = fmt.Sprintf("distribute: %v", err)
	case !done:
		ui.statusMsg = "distribute needs at least two lines"
	default:
		ui.statusMsg = fmt.Sprintf("distributed %d lines", ui.selected.Count())
		ui.clearSelection()
	}
}

func (ui *UI) removeCursorEntry() {
	id, ok := ui.cursorID()
	if !ok {
		return
	}
	if err := ui.application.Engine().Remove(id); err != nil {
		ui.statusMsg = fmt.Sprintf("remove: %v", err)
		return
	}
	ui.statusMsg = "line removed"
}

func (ui *UI) revertCursorEntry() {
	id, ok := ui.cursorID()
	if !ok {
		return
	}
	if err := ui.application.Engine().Revert(id); err != nil {
		ui.statusMsg = fmt.Sprintf("revert: %v", err)
		return
	}
	ui.statusMsg = "line reverted"
}

func (ui *UI) clearAll() {
	if ui.application.Engine().Clear() {
		ui.clearSelection()
		ui.statusMsg = "cleared (undo with u)"
	}
}

func (ui *UI) export() {
	path := ui.opts.ExportPath
	if err := ui.application.Export(path); err != nil {
		ui.statusMsg = fmt.Sprintf("export: %v", err)
		return
	}
	if path == "" {
		path = "in.json"
	}
	ui.statusMsg = fmt.Sprintf("exported to %s", path)
}

func (ui *UI) beginEdit() {
	id, ok := ui.cursorID()
	if !ok {
		return
	}
	cur, ok := ui.application.Engine().Get(id)
	if !ok {
		return
	}
	ui.editing = true
	ui.editID = id
	ui.editBuf = []rune(cur.Content)
}

func (ui *UI) commitEdit() {
	ui.editing = false
	changed, err := ui.application.Engine().SetContent(ui.editID, string(ui.editBuf))
	switch {
	case err != nil:
		ui.statusMsg = fmt.Sprintf("edit: %v", err)
	case !changed:
		ui.statusMsg = "no change"
	default:
		ui.statusMsg = "line updated"
	}
}

// cursorID resolves the keyboard cursor to an entry id.
func (ui *UI) cursorID() (engine.ID, bool) {
	views := ui.application.Engine().Entries()
	if len(views) == 0 {
		return 0, false
	}
	if ui.cursor >= len(views) {
		ui.cursor = len(views) - 1
	}
	if ui.cursor < 0 {
		ui.cursor = 0
	}
	return views[ui.cursor].ID, true
}

func (ui *UI) moveCursor(delta int) {
	ui.cursor += delta
	if ui.cursor < 0 {
		ui.cursor = 0
	}
	if n := ui.application.Engine().Count(); ui.cursor >= n && n > 0 {
		ui.cursor = n - 1
	}
}

func (ui *UI) scrollBy(delta int) {
	ui.offset += delta
	if ui.offset < 0 {
		ui.offset = 0
	}
}

func (ui *UI) listHeight() int {
	_, h := ui.screen.Size()
	if h <= 1 {
		return 1
	}
	return h - 1
}

// draw renders the entry list and status line from the live engine state.
func (ui *UI) draw() {
	screen := ui.screen
	width, height := screen.Size()
	if width <= gutterWidth || height < 2 {
		return
	}

	views := ui.application.Engine().Entries()
	ui.layout = LayoutEntries(views, width-gutterWidth)
	ui.refreshSelection()
	ui.clampViewport(height - 1)

	screen.Clear()

	selectedIDs := make(map[engine.ID]bool, ui.selected.Count())
	for _, id := range ui.selected.IDs {
		selectedIDs[id] = true
	}
	var cursorID engine.ID = -1
	if ui.cursor >= 0 && ui.cursor < len(views) {
		cursorID = views[ui.cursor].ID
	}

	for y := 0; y < height-1; y++ {
		rowIdx := ui.offset + y
		if rowIdx >= len(ui.layout.Rows) {
			break
		}
		row := ui.layout.Rows[rowIdx]

		style := ui.theme.Normal
		if row.Edited {
			style = ui.theme.Edited
		}
		if selectedIDs[row.ID] {
			style = ui.theme.Selected
		}

		if row.First && row.ID == cursorID {
			screen.SetContent(0, y, '>', nil, ui.theme.Cursor)
		}
		if row.First && row.Edited {
			screen.SetContent(1, y, '~', nil, ui.theme.Edited)
		}
		ui.drawText(gutterWidth, y, row.Text, style)
	}

	ui.drawStatus(width, height-1, views)
	screen.Show()
}

// clampViewport keeps the cursor entry visible.
func (ui *UI) clampViewport(visible int) {
	maxOffset := len(ui.layout.Rows) - visible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if ui.offset > maxOffset {
		ui.offset = maxOffset
	}

	if ui.cursor < 0 || ui.cursor >= len(ui.layout.Regions) {
		return
	}
	region := ui.layout.Regions[ui.cursor]
	if region.Start < ui.offset {
		ui.offset = region.Start
	}
	if region.End > ui.offset+visible {
		ui.offset = region.End - visible
	}
}

// drawStatus renders the bottom line: either the inline editor or the
// counters and key hints.
func (ui *UI) drawStatus(width, y int, views []engine.View) {
	if ui.editing {
		ui.fillRow(y, width, ui.theme.Message)
		ui.drawText(0, y, "edit: "+string(ui.editBuf)+"▏", ui.theme.Message)
		return
	}

	chars := 0
	for _, v := range views {
		chars += uniseg.GraphemeClusterCount(v.Content)
	}

	left := fmt.Sprintf(" %d lines · %d chars · undo %d · redo %d · font %d",
		len(views),
		chars,
		ui.application.Engine().UndoCount(),
		ui.application.Engine().RedoCount(),
		ui.application.FontSize(),
	)
	if addr := ui.application.FeedAddr(); addr != "" {
		left += " · feed " + addr
	}
	if ui.haveSel {
		left += fmt.Sprintf(" · %d selected", ui.selected.Count())
	}
	if ui.statusMsg != "" {
		left += " · " + ui.statusMsg
	}

	ui.fillRow(y, width, ui.theme.Status)
	ui.drawText(0, y, left, ui.theme.Status)
}

// fillRow paints one full row with the style's background.
func (ui *UI) fillRow(y, width int, style tcell.Style) {
	for x := 0; x < width; x++ {
		ui.screen.SetContent(x, y, ' ', nil, style)
	}
}

// drawText writes a string with correct wide-glyph advance.
func (ui *UI) drawText(x, y int, text string, style tcell.Style) {
	width, _ := ui.screen.Size()
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		if x >= width {
			return
		}
		runes := g.Runes()
		ui.screen.SetContent(x, y, runes[0], runes[1:], style)
		x += g.Width()
	}
}

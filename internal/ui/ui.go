package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"vtriage/internal/models"
	"vtriage/internal/selection"
	"vtriage/internal/services"
	"vtriage/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	ListView ViewState = iota
	ConfirmView
	ProgressView
	ResultView
)

// listTop is the screen row of the first list item (title + blank line).
const listTop = 2

// chromeRows is the number of non-list rows (title, blank, blank, help).
const chromeRows = 4

// Options tunes the TUI; zero values fall back to package defaults.
type Options struct {
	Status     string // Initial listing (default: inbox)
	ScrollZone int    // Drag auto-scroll edge zone in rows
	ScrollStep int    // Rows scrolled per auto-scroll tick
}

// Model represents the TUI application state.
type Model struct {
	ctx    context.Context
	view   ViewState
	svc    services.Service
	engine *tasks.TriageEngine

	width  int
	height int

	status string
	videos []models.Video
	order  []string
	cursor int
	offset int

	sel      *selection.Model
	drag     *selection.DragController
	scroller *selection.Scroller

	pendingTick *tickTask
	tickArmed   bool

	pendingPhase tasks.Phase
	pendingIDs   []string
	progressChan chan tasks.ProgressUpdate
	progress     tasks.ProgressUpdate
	batchResult  tasks.Result
	batchDone    bool
	batchErr     error

	err  error
	help help.Model
	keys keyMap
}

var _ selection.HitTester = (*Model)(nil)

type videosFetchedMsg struct {
	videos []models.Video
	err    error
}

type progressUpdateMsg tasks.ProgressUpdate

type batchCompleteMsg struct {
	result tasks.Result
	err    error
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, svc services.Service, engine *tasks.TriageEngine, opts Options) *Model {
	if opts.Status == "" {
		opts.Status = models.StatusInbox
	}
	// Terminal rows, not pixels: the package-level scroll defaults are far
	// too large here.
	if opts.ScrollZone <= 0 {
		opts.ScrollZone = 3
	}
	if opts.ScrollStep <= 0 {
		opts.ScrollStep = 1
	}

	m := &Model{
		ctx:    ctx,
		view:   ListView,
		svc:    svc,
		engine: engine,
		status: opts.Status,
		width:  80,
		height: 24,
		sel:    selection.NewModel(),
		help:   help.New(),
		keys:   newKeyMap(),
	}

	// The scroller sees the same screen coordinates the hit-tester does, so
	// its zones are measured against the full terminal height.
	m.scroller = selection.NewScroller(
		m.scrollBy,
		func(fn func()) selection.TaskHandle { return m.schedule(fn) },
		func() int { return m.height },
		selection.ScrollerOpts{ZoneSize: opts.ScrollZone, Step: opts.ScrollStep},
	)
	m.drag = selection.NewDragController(m, m.scroller)

	return m
}

// Init initializes the TUI by fetching the initial listing.
func (m *Model) Init() tea.Cmd {
	return m.fetchVideos()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clampViewport()
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case ListView:
			return m.handleListKeys(msg)
		case ConfirmView:
			return m.handleConfirmKeys(msg)
		case ResultView:
			return m.handleResultKeys(msg)
		}
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case scrollTickMsg:
		return m, m.runScrollTick()

	case videosFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.videos = msg.videos
		m.order = make([]string, len(msg.videos))
		for i, v := range msg.videos {
			m.order[i] = v.ID
		}
		m.clampViewport()
		return m, nil

	case progressUpdateMsg:
		m.progress = tasks.ProgressUpdate(msg)
		return m, m.waitForProgress()

	case batchCompleteMsg:
		m.batchResult = msg.result
		m.batchDone = true
		m.err = msg.err
		m.view = ResultView
		m.progressChan = nil
		m.sel.Clear()
		return m, nil
	}

	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil && m.view != ResultView {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress r to retry, q to quit", m.err))
	}

	switch m.view {
	case ListView:
		return m.renderList()
	case ConfirmView:
		return m.renderConfirm()
	case ProgressView:
		return m.renderProgress()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

// ResolveIDAt maps a screen coordinate to the video id rendered there,
// implementing [selection.HitTester] for drag gestures.
func (m *Model) ResolveIDAt(x, y int) (string, bool) {
	if x < 0 || x >= m.width {
		return "", false
	}
	row := y - listTop
	if row < 0 || row >= m.viewportHeight() {
		return "", false
	}
	idx := row + m.offset
	if idx < 0 || idx >= len(m.order) {
		return "", false
	}
	return m.order[idx], true
}

func (m *Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.drag.Close()
		return m, tea.Quit

	case "up", "k":
		m.moveCursor(-1)

	case "down", "j":
		m.moveCursor(1)

	case " ":
		if id, ok := m.cursorID(); ok {
			m.sel.Toggle(m.order, id, false)
		}

	case "v":
		if id, ok := m.cursorID(); ok {
			m.sel.Toggle(m.order, id, true)
		}

	case "a":
		m.sel.SelectAll(m.order)

	case "esc":
		m.sel.Clear()

	case "s":
		return m.confirmBatch(tasks.BulkSave)

	case "d":
		return m.confirmBatch(tasks.BulkDiscard)

	case "r":
		m.err = nil
		return m, m.fetchVideos()

	case "tab":
		m.status = nextStatus(m.status)
		m.cursor = 0
		m.offset = 0
		m.err = nil
		return m, m.fetchVideos()
	}

	return m, nil
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "n", "esc":
		m.view = ListView
		m.pendingIDs = nil
		return m, nil
	case "y":
		m.view = ProgressView
		m.progress = tasks.ProgressUpdate{}
		return m, m.startBatch()
	}
	return m, nil
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "r", "enter":
		m.view = ListView
		m.batchDone = false
		m.err = nil
		return m, m.fetchVideos()
	}
	return m, nil
}

// handleMouse feeds pointer events to the drag controller while the list is
// visible. A press that lands on a row starts a preview range, motion extends
// it, and release commits it as the selection.
func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.view != ListView {
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			m.drag.TouchStart(1, msg.X, msg.Y)
		case tea.MouseButtonWheelUp:
			m.scrollBy(-1)
		case tea.MouseButtonWheelDown:
			m.scrollBy(1)
		}

	case tea.MouseActionMotion:
		m.drag.TouchMove(m.order, 1, msg.X, msg.Y)

	case tea.MouseActionRelease:
		m.drag.TouchEnd(m.sel)
	}

	return m, m.armScrollCmd()
}

// confirmBatch stages a bulk operation over the selection, or over the cursor
// row when nothing is selected.
func (m *Model) confirmBatch(phase tasks.Phase) (tea.Model, tea.Cmd) {
	ids := m.sel.Ordered(m.order)
	if len(ids) == 0 {
		if id, ok := m.cursorID(); ok {
			ids = []string{id}
		}
	}
	if len(ids) == 0 {
		return m, nil
	}

	m.pendingPhase = phase
	m.pendingIDs = ids
	m.view = ConfirmView
	return m, nil
}

func (m *Model) startBatch() tea.Cmd {
	m.progressChan = make(chan tasks.ProgressUpdate, 50)
	ids := m.pendingIDs
	m.pendingIDs = nil

	go func() {
		var (
			res tasks.Result
			err error
		)
		if m.pendingPhase == tasks.BulkDiscard {
			res, err = m.engine.BulkDiscard(m.ctx, ids, m.progressChan)
		} else {
			res, err = m.engine.BulkSave(m.ctx, ids, m.progressChan)
		}
		m.batchResult = res
		m.batchErr = err
		close(m.progressChan)
	}()

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	return func() tea.Msg {
		if m.progressChan == nil {
			return batchCompleteMsg{result: m.batchResult, err: m.batchErr}
		}

		update, ok := <-m.progressChan
		if !ok {
			return batchCompleteMsg{result: m.batchResult, err: m.batchErr}
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) fetchVideos() tea.Cmd {
	status := m.status
	return func() tea.Msg {
		var (
			videos []models.Video
			err    error
		)

		switch status {
		case models.StatusSaved:
			var page *models.PaginatedVideos
			page, err = m.svc.SavedVideos(m.ctx, services.ListOpts{Limit: 200})
			if page != nil {
				videos = page.Videos
			}
		case models.StatusDiscarded:
			videos, err = m.svc.DiscardedVideos(m.ctx, 30, services.ListOpts{})
		default:
			videos, err = m.svc.InboxVideos(m.ctx, services.ListOpts{})
		}

		return videosFetchedMsg{videos: videos, err: err}
	}
}

func (m *Model) renderList() string {
	var b strings.Builder

	title := fmt.Sprintf("%s (%d)", statusTitle(m.status), len(m.videos))
	b.WriteString(styles.title.Render(title))
	b.WriteString("\n\n")

	vh := m.viewportHeight()
	drag := m.drag.State()
	for row := 0; row < vh; row++ {
		idx := m.offset + row
		if idx >= len(m.videos) {
			b.WriteString("\n")
			continue
		}
		v := m.videos[idx]
		b.WriteString(renderRow(v, m.width, m.sel.IsSelected(v.ID), drag.InPreview(v.ID), idx == m.cursor))
		b.WriteString("\n")
	}

	footer := m.help.ShortHelpView(m.keys.ShortHelp())
	if n := m.sel.Count(); n > 0 {
		footer = styles.ok.Render(fmt.Sprintf("%d selected", n)) + "  " + footer
	}
	b.WriteString("\n")
	b.WriteString(footer)

	return b.String()
}

func (m *Model) renderConfirm() string {
	verb := "Save"
	if m.pendingPhase == tasks.BulkDiscard {
		verb = "Discard"
	}

	title := styles.title.Render(fmt.Sprintf("%s %d videos?", verb, len(m.pendingIDs)))
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.yes, m.keys.no, m.keys.quit})

	return fmt.Sprintf("%s\n\n%s", title, helpView)
}

func (m *Model) renderProgress() string {
	verb := "Saving"
	if m.pendingPhase == tasks.BulkDiscard {
		verb = "Discarding"
	}

	title := styles.title.Render(fmt.Sprintf("%s videos", verb))
	line := m.progress.Message
	if line == "" {
		line = "Starting..."
	}
	return fmt.Sprintf("%s\n\n%s", title, line)
}

func (m *Model) renderResult() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Operation failed: %v\n\nPress r to go back, q to quit", m.err))
	}

	title := styles.ok.Render("✓ Done")
	info := fmt.Sprintf("\nUpdated: %d\nSkipped: %d", m.batchResult.Succeeded, m.batchResult.Skipped)

	var failed string
	if len(m.batchResult.Errors) > 0 {
		failed = "\n\n" + styles.warn.Render(fmt.Sprintf("%d errors:", len(m.batchResult.Errors)))
		for _, e := range m.batchResult.Errors {
			failed += fmt.Sprintf("\n  • %s", e)
		}
	}

	return fmt.Sprintf("%s\n%s%s\n\n%s", title, info, failed, styles.help.Render("r back • q quit"))
}

// viewportHeight reports how many list rows fit the current terminal size.
func (m *Model) viewportHeight() int {
	vh := m.height - chromeRows
	if vh < 1 {
		vh = 1
	}
	return vh
}

// scrollBy moves the viewport by delta rows, clamped to the listing bounds.
func (m *Model) scrollBy(delta int) {
	m.offset += delta
	m.clampOffset()
}

func (m *Model) clampOffset() {
	max := len(m.order) - m.viewportHeight()
	if max < 0 {
		max = 0
	}
	if m.offset > max {
		m.offset = max
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// clampViewport keeps the cursor and offset valid after a resize or refetch.
func (m *Model) clampViewport() {
	if m.cursor >= len(m.order) {
		m.cursor = len(m.order) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.clampOffset()
	m.ensureCursorVisible()
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.order) {
		m.cursor = len(m.order) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.ensureCursorVisible()
}

func (m *Model) ensureCursorVisible() {
	vh := m.viewportHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+vh {
		m.offset = m.cursor - vh + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m *Model) cursorID() (string, bool) {
	if m.cursor < 0 || m.cursor >= len(m.order) {
		return "", false
	}
	return m.order[m.cursor], true
}

func statusTitle(status string) string {
	switch status {
	case models.StatusSaved:
		return "Saved"
	case models.StatusDiscarded:
		return "Discarded"
	default:
		return "Inbox"
	}
}

func nextStatus(status string) string {
	switch status {
	case models.StatusInbox:
		return models.StatusSaved
	case models.StatusSaved:
		return models.StatusDiscarded
	default:
		return models.StatusInbox
	}
}

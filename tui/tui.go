package tui

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/user/trim-timeline-cli/clip"
	"github.com/user/trim-timeline-cli/config"
	"github.com/user/trim-timeline-cli/db"
	"github.com/user/trim-timeline-cli/mpv"
	"github.com/user/trim-timeline-cli/thumbs"
	"github.com/user/trim-timeline-cli/timeline"
	"github.com/user/trim-timeline-cli/tui/components"
	"github.com/user/trim-timeline-cli/tui/forms"
	"github.com/user/trim-timeline-cli/tui/layout"
	"github.com/user/trim-timeline-cli/tui/styles"
	"github.com/user/trim-timeline-cli/watch"
)

const (
	// resultDisplayDuration is how long to show command results.
	resultDisplayDuration = 3 * time.Second
	// trimsRefreshInterval is how often the trims panel is reloaded.
	trimsRefreshInterval = time.Second
	// scrollSettleDelay is the quiet time after which keyboard or wheel
	// scrolling counts as ended.
	scrollSettleDelay = 250 * time.Millisecond
	// watchSettleDelay is the quiet time before a rewritten video is reloaded.
	watchSettleDelay = 1500 * time.Millisecond
	// stripRows is the thumbnail height in terminal rows.
	stripRows = 2
	// fastNudge is the handle step for ctrl+arrow in columns.
	fastNudge = 5
	// minTerminalWidth is the narrowest terminal the strip is drawn in.
	minTerminalWidth = 40
)

// playbackMsg carries one poll of the mpv playback state.
type playbackMsg struct {
	timePos float64
	paused  bool
	eof     bool
	err     error
}

// clearResultMsg is sent to clear the result line.
type clearResultMsg struct{}

// trimsTickMsg reloads the trims panel.
type trimsTickMsg struct{}

// seekDoneMsg reports a seek finished by the player.
type seekDoneMsg mpv.SeekResult

// frameMsg delivers a thumbnail from the frame source.
type frameMsg thumbs.Frame

// scrollSettleMsg ends keyboard or wheel scrolling when id is still current.
type scrollSettleMsg struct{ id int }

// sourceEventMsg means the video file may have changed.
type sourceEventMsg struct{}

// watchPollMsg asks the watcher whether the change settled.
type watchPollMsg struct{}

// probeMsg carries the duration of the reloaded video.
type probeMsg struct {
	duration float64
	err      error
}

// FrameSource is the thumbnail source driven by the model.
type FrameSource interface {
	timeline.FrameSource
	SetCellSize(cols, rows int)
	Generation() uint64
	Refresh()
}

// Options wires the model to its collaborators. Every field except Config
// and VideoPath may be nil.
type Options struct {
	Config    *config.Config
	Client    *mpv.Client
	Playback  timeline.Playback
	DB        *sql.DB
	Frames    FrameSource
	Watcher   *watch.Watcher
	VideoPath string
	Duration  float64
}

type formKind int

const (
	formNone formKind = iota
	formSession
	formSave
	formQuit
)

type dragKind int

const (
	dragNone dragKind = iota
	dragHandle
	dragScroll
)

// mouseDrag tracks an in-progress mouse gesture on the strip.
type mouseDrag struct {
	kind        dragKind
	side        timeline.HandleSide
	startX      int
	startOffset float64
}

// Model is the Bubbletea model for the trimmer.
// It implements the tea.Model interface with Init, Update, and View methods.
type Model struct {
	cfg       *config.Config
	client    *mpv.Client
	playback  timeline.Playback
	db        *sql.DB
	source    FrameSource
	watcher   *watch.Watcher
	videoPath string
	video     *db.Video
	duration  float64

	engine  *timeline.Engine
	started bool

	// session limits, editable through the session form
	minDuration    float64
	maxDuration    float64
	framesPerCycle int

	// thumbnails for the current layout, by strip cell index
	frames map[int]thumbs.Cells
	// frames from generations below frameFloor belong to a replaced file
	frameFloor uint64

	width     int
	height    int
	statusBar components.StatusBarState
	trims     []components.TrimRow

	result    string
	resultErr bool
	showHelp  bool
	quitting  bool

	// keyboard handle grab
	grabbed  *timeline.HandleSide
	grabBase float64
	grabTx   float64

	// keyboard and wheel scrolling
	scrolling bool
	scrollID  int

	drag mouseDrag

	eofHandled bool

	form        *huh.Form
	formKind    formKind
	sessionForm *forms.SessionFormResult
	saveForm    *forms.SaveFormResult
	confirmQuit bool
}

// NewModel creates a new TUI model.
func NewModel(opts Options) *Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	// Keep a nil source a nil interface so the engine skips frame requests.
	var frames timeline.FrameSource
	if opts.Frames != nil {
		frames = opts.Frames
	}

	m := &Model{
		cfg:            cfg,
		client:         opts.Client,
		playback:       opts.Playback,
		db:             opts.DB,
		source:         opts.Frames,
		watcher:        opts.Watcher,
		videoPath:      opts.VideoPath,
		duration:       opts.Duration,
		minDuration:    cfg.Trim.MinDuration,
		maxDuration:    cfg.Trim.MaxDuration,
		framesPerCycle: cfg.Trim.FramesPerCycle,
		frames:         make(map[int]thumbs.Cells),
		statusBar: components.StatusBarState{
			Duration: opts.Duration,
			Filename: filepath.Base(opts.VideoPath),
		},
	}
	m.engine = timeline.New(timeline.GeometryConfig{}, frames, opts.Playback)
	return m
}

// Init starts the playback poll, the trims refresh and the file watcher.
func (m *Model) Init() tea.Cmd {
	m.loadTrims()
	cmds := []tea.Cmd{m.tickCmd(), trimsTickCmd()}
	if m.watcher != nil {
		cmds = append(cmds, waitForChange(m.watcher))
	}
	return tea.Batch(cmds...)
}

// tickCmd polls mpv after the configured tick interval.
func (m *Model) tickCmd() tea.Cmd {
	client := m.client
	return tea.Tick(m.cfg.Player.TickInterval, func(time.Time) tea.Msg {
		return pollPlayback(client)
	})
}

func pollPlayback(client *mpv.Client) playbackMsg {
	if client == nil || !client.IsConnected() {
		return playbackMsg{err: mpv.ErrNotConnected}
	}
	state, err := client.State()
	if err != nil {
		return playbackMsg{err: err}
	}
	return playbackMsg{timePos: state.TimePos, paused: state.Paused, eof: state.EOFReached}
}

func trimsTickCmd() tea.Cmd {
	return tea.Tick(trimsRefreshInterval, func(time.Time) tea.Msg {
		return trimsTickMsg{}
	})
}

func clearResultCmd() tea.Cmd {
	return tea.Tick(resultDisplayDuration, func(time.Time) tea.Msg {
		return clearResultMsg{}
	})
}

func waitForChange(w *watch.Watcher) tea.Cmd {
	return func() tea.Msg {
		<-w.Events()
		return sourceEventMsg{}
	}
}

func probeCmd(videoPath string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		d, err := thumbs.Probe(ctx, videoPath)
		return probeMsg{duration: d, err: err}
	}
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.form != nil {
		if _, isKey := msg.(tea.KeyMsg); isKey {
			return m.updateForm(msg)
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case playbackMsg:
		m.onPlayback(msg)
		return m, m.tickCmd()

	case seekDoneMsg:
		if !m.engine.SeekCompleted(msg.Token) {
			return m, nil
		}
		if msg.Err != nil {
			return m, m.setResult("Seek failed: "+msg.Err.Error(), true)
		}
		return m, nil

	case frameMsg:
		m.onFrame(thumbs.Frame(msg))
		return m, nil

	case scrollSettleMsg:
		if msg.id == m.scrollID && m.scrolling {
			m.endScroll()
		}
		return m, nil

	case trimsTickMsg:
		m.loadTrims()
		return m, trimsTickCmd()

	case clearResultMsg:
		m.result = ""
		return m, nil

	case sourceEventMsg:
		return m, tea.Batch(waitForChange(m.watcher), tea.Tick(watchSettleDelay, func(time.Time) tea.Msg {
			return watchPollMsg{}
		}))

	case watchPollMsg:
		return m, m.pollWatcher()

	case probeMsg:
		return m, m.onProbe(msg)

	case tea.MouseMsg:
		if m.form == nil {
			return m, m.onMouse(msg)
		}
		return m, nil

	case tea.KeyMsg:
		return m.onKey(msg)
	}

	if m.form != nil {
		return m.updateForm(msg)
	}
	return m, nil
}

// onKey handles key events outside forms.
func (m *Model) onKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Help overlay: any key dismisses it
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch msg.String() {
	case "?":
		m.showHelp = true
		return m, nil
	case "q", "ctrl+c":
		if m.statusBar.Unsaved && m.db != nil {
			return m, m.openForm(formQuit)
		}
		m.quitting = true
		return m, tea.Quit
	case " ":
		m.togglePause()
		return m, nil
	case "0":
		m.apply(m.engine.PlaybackFinished())
		return m, nil
	case "[":
		m.toggleGrab(timeline.LeftHandle)
		return m, nil
	case "]":
		m.toggleGrab(timeline.RightHandle)
		return m, nil
	case "enter":
		m.releaseGrab(timeline.GestureEnded)
		return m, nil
	case "esc":
		m.releaseGrab(timeline.GestureCancelled)
		return m, nil
	case "h", "left":
		return m, m.nudgeOrScroll(-1)
	case "l", "right":
		return m, m.nudgeOrScroll(1)
	case "ctrl+left":
		return m, m.nudgeOrScroll(-fastNudge)
	case "ctrl+right":
		return m, m.nudgeOrScroll(fastNudge)
	case "H", "shift+left":
		return m, m.scrollCells(-1)
	case "L", "shift+right":
		return m, m.scrollCells(1)
	case "w":
		return m, m.openForm(formSave)
	case "e":
		msg, err := m.saveTrim("", true)
		if err != nil {
			return m, m.setResult("Error: "+err.Error(), true)
		}
		return m, m.setResult(msg, false)
	case "r":
		return m, m.openForm(formSession)
	}
	return m, nil
}

// resize rebuilds the engine geometry for the terminal width and starts the
// session on the first usable size.
func (m *Model) resize() {
	if m.width < minTerminalWidth {
		return
	}
	cfg := m.geometryConfig()
	if m.source != nil && m.framesPerCycle > 0 {
		cols := int(math.Round(cfg.TrimmerWidth / float64(m.framesPerCycle)))
		if cols < 1 {
			cols = 1
		}
		m.source.SetCellSize(cols, stripRows)
	}
	m.releaseGrab(timeline.GestureCancelled)
	m.frames = make(map[int]thumbs.Cells)
	m.apply(m.engine.Resize(cfg))
	if !m.started {
		m.restartSession()
	}
}

func (m *Model) geometryConfig() timeline.GeometryConfig {
	inset := m.cfg.Strip.HorizonInset
	trimmer := float64(m.width-2) - 2*inset
	if trimmer < 1 {
		trimmer = 1
	}
	return timeline.GeometryConfig{
		TrimmerWidth:   trimmer,
		HorizonInset:   inset,
		HandleWidth:    m.cfg.Strip.HandleWidth,
		IndicatorWidth: m.cfg.Strip.IndicatorWidth,
	}
}

// restartSession starts a fresh trim session with the current limits.
func (m *Model) restartSession() {
	m.started = true
	m.frames = make(map[int]thumbs.Cells)
	m.apply(m.engine.StartOperation(m.duration, m.minDuration, m.maxDuration, m.framesPerCycle))
	m.statusBar.Unsaved = false
}

// apply reacts to engine events. Rendering reads the engine directly, so only
// host-side bookkeeping happens here.
func (m *Model) apply(events timeline.Events) {
	for _, ev := range events {
		switch ev.Kind {
		case timeline.RangeChanged:
			if m.started {
				m.statusBar.Unsaved = true
			}
		case timeline.BoundaryReached:
			log.Printf("tui: reached trim end at %.3fs, looping to %.3fs", ev.Range.Finish, ev.Range.Start)
		}
	}
}

func (m *Model) onPlayback(msg playbackMsg) {
	if msg.err != nil {
		return
	}
	m.statusBar.TimePos = msg.timePos
	m.statusBar.Paused = msg.paused
	if !m.started {
		return
	}
	if msg.eof {
		if !m.eofHandled {
			m.eofHandled = true
			m.apply(m.engine.PlaybackFinished())
		}
		return
	}
	m.eofHandled = false
	m.apply(m.engine.UpdatePositionFromPlayback(msg.timePos))
}

func (m *Model) onFrame(f thumbs.Frame) {
	if f.Generation < m.frameFloor {
		return
	}
	if math.Abs(f.Step-m.engine.Layout().DelayBetweenFrames) > 1e-9 {
		return
	}
	m.frames[f.Index] = f.Preview
}

func (m *Model) togglePause() {
	if m.playback != nil {
		if m.statusBar.Paused {
			m.playback.Play()
		} else {
			m.playback.Pause()
		}
		m.statusBar.Paused = !m.statusBar.Paused
		return
	}
	if m.client != nil && m.client.IsConnected() {
		_ = m.client.TogglePause()
	}
}

// toggleGrab grabs side with the keyboard, or releases it if already held.
func (m *Model) toggleGrab(side timeline.HandleSide) {
	if m.grabbed != nil {
		held := *m.grabbed
		m.releaseGrab(timeline.GestureEnded)
		if held == side {
			return
		}
	}
	if !m.started || m.drag.kind != dragNone {
		return
	}
	if m.scrolling {
		m.endScroll()
	}
	m.grabbed = &side
	m.grabBase = m.handleX(side)
	m.grabTx = 0
	m.apply(m.engine.HandlePan(side, timeline.GestureBegan, 0))
}

func (m *Model) releaseGrab(phase timeline.GesturePhase) {
	if m.grabbed == nil {
		return
	}
	side := *m.grabbed
	m.grabbed = nil
	m.apply(m.engine.HandlePan(side, phase, m.grabTx))
}

func (m *Model) handleX(side timeline.HandleSide) float64 {
	if side == timeline.LeftHandle {
		return m.engine.Geometry().LeftHandleX()
	}
	return m.engine.Geometry().RightHandleX()
}

// nudgeOrScroll moves the grabbed handle by delta columns, or scrolls the
// strip by delta cells when nothing is grabbed.
func (m *Model) nudgeOrScroll(delta int) tea.Cmd {
	if m.grabbed == nil {
		return m.scrollCells(delta)
	}
	side := *m.grabbed
	m.apply(m.engine.HandlePan(side, timeline.GestureChanged, m.grabTx+float64(delta)))
	// The geometry clamps; keep the translation in step with where the handle landed.
	m.grabTx = m.handleX(side) - m.grabBase
	return nil
}

// scrollCells scrolls the strip by whole thumbnail cells and schedules the
// end of the scroll gesture.
func (m *Model) scrollCells(cells int) tea.Cmd {
	if !m.started || m.grabbed != nil || m.drag.kind != dragNone {
		return nil
	}
	scale := m.engine.Geometry().Config().TrimmerScale()
	step := m.engine.Layout().PerFrameWidth() / scale
	if !m.scrolling {
		m.scrolling = true
		m.apply(m.engine.ScrollWillBeginDragging())
	}
	m.apply(m.engine.ScrollDidScroll(m.engine.ScrollOffset() + float64(cells)*step))
	m.scrollID++
	id := m.scrollID
	return tea.Tick(scrollSettleDelay, func(time.Time) tea.Msg {
		return scrollSettleMsg{id: id}
	})
}

func (m *Model) endScroll() {
	m.scrolling = false
	m.apply(m.engine.ScrollWillEndDragging())
	m.apply(m.engine.ScrollDidEndDecelerating())
}

// stripTop is the screen row of the first thumbnail row: status bar,
// controls line, then the strip box header.
func stripTop() int {
	return 2 + components.StripRowOffset
}

// onMouse turns mouse presses, drags and wheel turns over the strip into
// handle and scroll gestures.
func (m *Model) onMouse(msg tea.MouseMsg) tea.Cmd {
	if !m.started {
		return nil
	}
	geom := m.engine.Geometry()
	x := float64(msg.X-1) - geom.Config().HorizonInset + 0.5
	onStrip := msg.Y >= stripTop() && msg.Y < stripTop()+stripRows

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			if onStrip {
				return m.scrollCells(-1)
			}
			return nil
		case tea.MouseButtonWheelDown:
			if onStrip {
				return m.scrollCells(1)
			}
			return nil
		case tea.MouseButtonLeft:
		default:
			return nil
		}
		if !onStrip || m.drag.kind != dragNone {
			return nil
		}
		m.releaseGrab(timeline.GestureEnded)
		if m.scrolling {
			m.endScroll()
		}
		if side, ok := geom.HandleAt(x); ok {
			m.drag = mouseDrag{kind: dragHandle, side: side, startX: msg.X}
			m.apply(m.engine.HandlePan(side, timeline.GestureBegan, 0))
			return nil
		}
		m.drag = mouseDrag{kind: dragScroll, startX: msg.X, startOffset: m.engine.ScrollOffset()}
		m.apply(m.engine.ScrollWillBeginDragging())

	case tea.MouseActionMotion:
		dx := float64(msg.X - m.drag.startX)
		switch m.drag.kind {
		case dragHandle:
			m.apply(m.engine.HandlePan(m.drag.side, timeline.GestureChanged, dx))
		case dragScroll:
			scale := geom.Config().TrimmerScale()
			m.apply(m.engine.ScrollDidScroll(m.drag.startOffset - dx/(scale*scale)))
		}

	case tea.MouseActionRelease:
		switch m.drag.kind {
		case dragHandle:
			m.apply(m.engine.HandlePan(m.drag.side, timeline.GestureEnded, float64(msg.X-m.drag.startX)))
		case dragScroll:
			m.apply(m.engine.ScrollWillEndDragging())
			m.apply(m.engine.ScrollDidEndDecelerating())
		}
		m.drag = mouseDrag{}
	}
	return nil
}

func (m *Model) setResult(msg string, isError bool) tea.Cmd {
	m.result = msg
	m.resultErr = isError
	return clearResultCmd()
}

// pollWatcher reloads the session once the video file stopped changing.
func (m *Model) pollWatcher() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	changed, err := m.watcher.Poll(time.Now())
	if err != nil {
		log.Printf("tui: watch %s: %v", m.videoPath, err)
		return nil
	}
	if changed {
		return tea.Batch(m.setResult("Video changed on disk, reloading…", false), probeCmd(m.videoPath))
	}
	if m.watcher.Pending() {
		return tea.Tick(watchSettleDelay, func(time.Time) tea.Msg { return watchPollMsg{} })
	}
	return nil
}

func (m *Model) onProbe(msg probeMsg) tea.Cmd {
	if msg.err != nil {
		return m.setResult("Reload failed: "+msg.err.Error(), true)
	}
	m.duration = msg.duration
	m.statusBar.Duration = msg.duration
	m.video = nil
	if m.client != nil && m.client.IsConnected() {
		if err := m.client.LoadFile(m.videoPath); err != nil {
			log.Printf("tui: reload %s in mpv: %v", m.videoPath, err)
		}
	}
	if m.source != nil {
		m.source.Refresh()
		m.frameFloor = m.source.Generation() + 1
	}
	m.restartSession()
	return m.setResult(fmt.Sprintf("Reloaded (%.2fs)", msg.duration), false)
}

// openForm shows one of the huh forms in place of the main view.
func (m *Model) openForm(kind formKind) tea.Cmd {
	switch kind {
	case formSession:
		m.sessionForm = forms.NewSessionFormResult(m.minDuration, m.maxDuration, m.framesPerCycle)
		m.form = forms.NewSessionForm(m.duration, m.sessionForm)
	case formSave:
		if m.db == nil {
			return m.setResult("No database: cannot save trims", true)
		}
		r := m.engine.CurrentTrimRange()
		m.saveForm = &forms.SaveFormResult{}
		m.form = forms.NewSaveForm(r.Start, r.Finish, m.saveForm)
	case formQuit:
		m.confirmQuit = false
		m.form = forms.NewConfirmQuitForm(&m.confirmQuit)
	default:
		return nil
	}
	m.releaseGrab(timeline.GestureCancelled)
	m.formKind = kind
	return m.form.Init()
}

func (m *Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		m.closeForm()
		return m, nil
	}

	model, cmd := m.form.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateAborted:
		m.closeForm()
		return m, nil
	case huh.StateCompleted:
		kind := m.formKind
		m.closeForm()
		return m.completeForm(kind)
	}
	return m, cmd
}

func (m *Model) closeForm() {
	m.form = nil
	m.formKind = formNone
}

func (m *Model) completeForm(kind formKind) (tea.Model, tea.Cmd) {
	switch kind {
	case formSession:
		minDuration, maxDuration, framesPerCycle, err := m.sessionForm.Values()
		if err != nil {
			return m, m.setResult("Error: "+err.Error(), true)
		}
		m.minDuration, m.maxDuration, m.framesPerCycle = minDuration, maxDuration, framesPerCycle
		m.resize()
		m.restartSession()
		return m, m.setResult("Session restarted", false)

	case formSave:
		msg, err := m.saveTrim(m.saveForm.Label, m.saveForm.Export)
		if err != nil {
			return m, m.setResult("Error: "+err.Error(), true)
		}
		return m, m.setResult(msg, false)

	case formQuit:
		if m.confirmQuit {
			m.quitting = true
			return m, tea.Quit
		}
	}
	return m, nil
}

// saveTrim stores the current range and optionally queues it for export.
func (m *Model) saveTrim(label string, export bool) (string, error) {
	if m.db == nil {
		return "", errors.New("no database")
	}
	if m.video == nil {
		var size int64
		if info, err := os.Stat(m.videoPath); err == nil {
			size = info.Size()
		}
		v, err := db.EnsureVideo(m.db, m.videoPath, size, m.duration)
		if err != nil {
			return "", err
		}
		m.video = v
	}

	r := m.engine.CurrentTrimRange()
	id, err := db.InsertTrim(m.db, m.video.ID, r.Start, r.Finish, label)
	if err != nil {
		return "", err
	}
	m.statusBar.Unsaved = false

	msg := fmt.Sprintf("Trim %d saved (%.2fs)", id, r.Duration())
	if export {
		out := clip.OutputPath(m.videoPath, r.Start, r.Finish, label)
		if err := db.QueueTrimExport(m.db, id, out); err != nil {
			return "", fmt.Errorf("queue export: %w", err)
		}
		msg = fmt.Sprintf("Trim %d queued for export to %s", id, filepath.Base(out))
	}
	m.loadTrims()
	return msg, nil
}

// loadTrims refreshes the trims panel and the export counter.
func (m *Model) loadTrims() {
	if m.db == nil {
		return
	}
	trims, err := db.ListTrims(m.db, m.videoPath)
	if err != nil {
		log.Printf("tui: load trims: %v", err)
		return
	}
	m.trims = m.trims[:0]
	exports := 0
	for _, t := range trims {
		m.trims = append(m.trims, components.TrimRow{
			ID:     t.ID,
			Start:  t.Start,
			Finish: t.Finish,
			Label:  t.Label,
			Status: t.Status,
		})
		if t.Status == db.StatusPending || t.Status == db.StatusProcessing {
			exports++
		}
	}
	m.statusBar.Exports = exports
}

// View renders the current state of the model as a string.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	if m.showHelp {
		return components.HelpOverlay(m.width, m.height)
	}

	statusBar := components.StatusBar(m.statusBar, m.width)

	if m.form != nil {
		return statusBar + "\n\n" + m.form.View()
	}

	if m.width < minTerminalWidth {
		warningStyle := lipgloss.NewStyle().
			Foreground(styles.Pink).
			Bold(true)
		hintStyle := lipgloss.NewStyle().
			Foreground(styles.Lavender).
			Italic(true)
		return warningStyle.Render(fmt.Sprintf("Terminal too narrow (%d cols)", m.width)) + "\n" +
			hintStyle.Render(fmt.Sprintf("Minimum width: %d columns", minTerminalWidth))
	}

	strip := components.TrimStrip(m.engine, components.StripState{
		Frames:  m.frames,
		Rows:    stripRows,
		Inset:   int(m.cfg.Strip.HorizonInset),
		Grabbed: m.grabbed,
	}, m.width)

	// status + controls + strip (rows + 3) + result line
	used := 2 + stripRows + 3 + 1
	trimsPanel := components.TrimsPanel(m.trims, m.width, m.height-used-2)

	view := statusBar + "\n" +
		components.ControlsLine(m.width) + "\n" +
		strip + "\n" +
		components.ResultLine(m.result, m.resultErr, m.width) + "\n" +
		trimsPanel
	return layout.Fit(view, m.width, m.height)
}

// Run starts the Bubbletea program. The mpv player queue and the thumbnail
// source are created here when not supplied so their callbacks can reach the
// running program.
func Run(opts Options) error {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
		opts.Config = cfg
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var p *tea.Program

	if opts.Client != nil && opts.Playback == nil {
		player := mpv.NewPlayer(opts.Client)
		player.OnSeek = func(r mpv.SeekResult) {
			p.Send(seekDoneMsg(r))
		}
		go player.Run(ctx)
		opts.Playback = player
	}

	if opts.Frames == nil {
		cacheDir, err := cfg.ThumbnailCacheDir()
		if err != nil {
			return fmt.Errorf("thumbnail cache: %w", err)
		}
		source := thumbs.NewSource(opts.VideoPath, cacheDir, cfg.Thumbnail.Width, cfg.Thumbnail.Workers, func(f thumbs.Frame) {
			p.Send(frameMsg(f))
		})
		defer source.CancelPending()
		opts.Frames = source
	}

	model := NewModel(opts)
	p = tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

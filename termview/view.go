// Package termview is the view coordinator: it owns a Terminal engine, a
// renderer, the push-based PTY I/O pipeline, and the callback fan-out a host
// GUI wires up to embed a terminal. It is the Go realization of spec.md
// §4.H, built on goroutines and channels in place of GPUI's async executor.
package termview

import (
	"errors"
	"io"
	"sync"

	headlessterm "github.com/embeddedterm/goterm"
	"github.com/embeddedterm/goterm/input"
	"github.com/embeddedterm/goterm/mouse"
	"github.com/embeddedterm/goterm/render"
)

// Config is the TerminalConfig data model (spec.md §3): initial dimensions,
// font metrics inputs, scrollback capacity, and padding. Defaults match the
// spec exactly: 80x24, 14px monospace, 10 000 scrollback, 1.0 line-height,
// zero padding, default palette.
type Config struct {
	Cols, Rows           int
	FontFamily           string
	FontSizePx           float64
	Scrollback           int
	LineHeightMultiplier float64
	Padding              render.Edges
	Palette              headlessterm.Palette
}

// DefaultConfig returns spec.md §3's TerminalConfig defaults.
func DefaultConfig() Config {
	return Config{
		Cols:                 headlessterm.DEFAULT_COLS,
		Rows:                 headlessterm.DEFAULT_ROWS,
		FontFamily:           "monospace",
		FontSizePx:           14,
		Scrollback:           10000,
		LineHeightMultiplier: 1.0,
		Palette:              headlessterm.DefaultColorPalette(),
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Cols <= 0 {
		c.Cols = d.Cols
	}
	if c.Rows <= 0 {
		c.Rows = d.Rows
	}
	if c.FontFamily == "" {
		c.FontFamily = d.FontFamily
	}
	if c.FontSizePx <= 0 {
		c.FontSizePx = d.FontSizePx
	}
	if c.Scrollback == 0 {
		c.Scrollback = d.Scrollback
	}
	if c.LineHeightMultiplier <= 0 {
		c.LineHeightMultiplier = d.LineHeightMultiplier
	}
	if (c.Palette == headlessterm.Palette{}) {
		c.Palette = d.Palette
	}
	return c
}

func (c Config) renderConfig() render.Config {
	return render.Config{
		FontFamily:           c.FontFamily,
		FontSizePx:           c.FontSizePx,
		LineHeightMultiplier: c.LineHeightMultiplier,
		Palette:              c.Palette,
	}
}

// readBufferSize is the fixed-size chunk the reader goroutine reads into,
// per spec.md §4.H step 4.
const readBufferSize = 4096

// byteChannelCapacity bounds the "practically unbounded" byte channel (see
// DESIGN.md's Open Question resolution): large enough that a reader
// forwarding PTY output never blocks on a consumer that's merely busy
// painting, without requiring Go's nonexistent unbounded-channel primitive.
const byteChannelCapacity = 256

// ResizeCallback is invoked before the engine is resized, so the PTY can be
// resized first (spec.md §4.H resize loop ordering).
type ResizeCallback func(cols, rows int)

// KeyHandler lets the host intercept a keystroke before it is encoded.
// Returning true consumes the event (the core writes nothing).
type KeyHandler func(k input.Keystroke) bool

// BellCallback is invoked on a BEL control character.
type BellCallback func()

// TitleCallback is invoked when the window title changes (including "" on
// a title reset).
type TitleCallback func(title string)

// ClipboardStoreCallback is invoked when the application writes to the
// clipboard (OSC 52).
type ClipboardStoreCallback func(data []byte)

// ClipboardLoadCallback is invoked when the application requests the
// clipboard contents; the core performs no bytes-back injection (see
// DESIGN.md Open Questions), so the callback exists purely as a
// notification hook.
type ClipboardLoadCallback func(clipboard byte)

// ExitCallback is invoked exactly once, when the byte source closes (EOF or
// read error); the engine reports no termination of its own.
type ExitCallback func()

// View is the terminal view coordinator: lifecycle, I/O pipeline, callback
// fan-out, resize loop, and input routing (spec.md §4.H).
type View struct {
	term   *headlessterm.Terminal
	bridge *headlessterm.EventBridge

	writeMu sync.Mutex
	writer  io.Writer

	byteCh chan []byte

	cfgMu        sync.Mutex
	cfg          Config
	metrics      render.CellMetrics
	metricsValid bool

	cbMu             sync.Mutex
	resizeCB         ResizeCallback
	keyHandler       KeyHandler
	bellCB           BellCallback
	titleCB          TitleCallback
	clipboardStoreCB ClipboardStoreCallback
	clipboardLoadCB  ClipboardLoadCallback
	exitCB           ExitCallback

	clickCount int
}

// New constructs a View over an opaque byte-stream read handle and
// byte-sink write handle, and starts the I/O pipeline (reader and consumer
// goroutines) before returning. Events queue on the bridge until the host
// calls DrainEvents.
func New(reader io.Reader, writer io.Writer, cfg Config) (*View, error) {
	if reader == nil {
		return nil, errors.New("termview: reader must not be nil")
	}
	if writer == nil {
		return nil, errors.New("termview: writer must not be nil")
	}
	cfg = cfg.withDefaults()

	bridge := headlessterm.NewEventBridge(0)
	term := headlessterm.New(
		headlessterm.WithSize(cfg.Rows, cfg.Cols),
		headlessterm.WithBell(bridge),
		headlessterm.WithTitle(bridge),
		headlessterm.WithClipboard(bridge),
		headlessterm.WithScrollback(headlessterm.NewMemoryScrollback(cfg.Scrollback)),
	)

	v := &View{
		term:   term,
		bridge: bridge,
		writer: writer,
		cfg:    cfg,
		byteCh: make(chan []byte, byteChannelCapacity),
	}

	go v.readLoop(reader)
	go v.consumeLoop()

	return v, nil
}

// Terminal returns the underlying engine, for callers that need direct
// read access (e.g. to implement their own text selection).
func (v *View) Terminal() *headlessterm.Terminal {
	return v.term
}

// readLoop is the blocking-reader goroutine (spec.md §4.H step 4): it reads
// a fixed-size chunk at a time and forwards each non-empty read onto the
// byte channel, exiting on EOF or error. It owns the channel and closes it
// on exit, which is how the consumer goroutine learns the session ended.
func (v *View) readLoop(reader io.Reader) {
	defer close(v.byteCh)
	buf := make([]byte, readBufferSize)
	for {
		n, err := reader.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			v.byteCh <- chunk
		}
		if err != nil {
			return
		}
	}
}

// consumeLoop is the single-consumer goroutine (spec.md §4.H step 5): it
// awaits byte batches, applies them to the engine, and requests a repaint.
// When the channel closes it synthesizes an Exit event.
func (v *View) consumeLoop() {
	for chunk := range v.byteCh {
		v.term.Write(chunk)
		v.bridge.Wakeup()
	}
	v.bridge.Exit()
}

// DrainEvents pulls every currently-queued event off the bridge and
// dispatches it to the registered callbacks, in arrival order. The host
// calls this once per paint (spec.md §4.H "Event routing (per paint)").
func (v *View) DrainEvents() {
	for {
		select {
		case ev, ok := <-v.bridge.Events():
			if !ok {
				return
			}
			v.dispatch(ev)
		default:
			return
		}
	}
}

func (v *View) dispatch(ev headlessterm.TerminalEvent) {
	v.cbMu.Lock()
	bell, title, clipStore, clipLoad, exit := v.bellCB, v.titleCB, v.clipboardStoreCB, v.clipboardLoadCB, v.exitCB
	v.cbMu.Unlock()

	switch ev.Kind {
	case headlessterm.EventBell:
		if bell != nil {
			bell()
		}
	case headlessterm.EventTitle:
		if title != nil {
			title(ev.Title)
		}
	case headlessterm.EventClipboardStore:
		if clipStore != nil {
			clipStore(ev.Data)
		}
	case headlessterm.EventClipboardLoad:
		if clipLoad != nil {
			clipLoad(ev.Clipboard)
		}
	case headlessterm.EventExit:
		if exit != nil {
			exit()
		}
	case headlessterm.EventWakeup:
		// No-op: a Wakeup's only purpose is that Paint gets called again,
		// which the host's own event loop already does.
	}
}

// --- Callback registration (With* builders, chainable) ---

// WithResizeCallback registers the resize hook and returns v for chaining.
func (v *View) WithResizeCallback(cb ResizeCallback) *View {
	v.cbMu.Lock()
	v.resizeCB = cb
	v.cbMu.Unlock()
	return v
}

// WithKeyHandler registers the key-intercept hook.
func (v *View) WithKeyHandler(h KeyHandler) *View {
	v.cbMu.Lock()
	v.keyHandler = h
	v.cbMu.Unlock()
	return v
}

// WithBellCallback registers the bell hook.
func (v *View) WithBellCallback(cb BellCallback) *View {
	v.cbMu.Lock()
	v.bellCB = cb
	v.cbMu.Unlock()
	return v
}

// WithTitleCallback registers the title hook.
func (v *View) WithTitleCallback(cb TitleCallback) *View {
	v.cbMu.Lock()
	v.titleCB = cb
	v.cbMu.Unlock()
	return v
}

// WithClipboardStoreCallback registers the clipboard-store hook.
func (v *View) WithClipboardStoreCallback(cb ClipboardStoreCallback) *View {
	v.cbMu.Lock()
	v.clipboardStoreCB = cb
	v.cbMu.Unlock()
	return v
}

// WithClipboardLoadCallback registers the clipboard-load notification hook.
func (v *View) WithClipboardLoadCallback(cb ClipboardLoadCallback) *View {
	v.cbMu.Lock()
	v.clipboardLoadCB = cb
	v.cbMu.Unlock()
	return v
}

// WithExitCallback registers the exit hook.
func (v *View) WithExitCallback(cb ExitCallback) *View {
	v.cbMu.Lock()
	v.exitCB = cb
	v.cbMu.Unlock()
	return v
}

// --- Input routing ---

// KeyDown routes a keystroke: the user's KeyHandler gets first refusal; if
// it doesn't consume the event (or none is registered), the keystroke is
// encoded per the engine's current mode (APP_CURSOR) and written to the
// PTY sink. Write errors are ignored, matching spec.md §7's "writer
// failure: dropped silently" error kind.
func (v *View) KeyDown(k input.Keystroke) {
	v.cbMu.Lock()
	handler := v.keyHandler
	v.cbMu.Unlock()

	if handler != nil && handler(k) {
		return
	}

	out, ok := input.Encode(k, v.term.Mode())
	if !ok {
		return
	}
	v.writeBytes(out)
}

// reportMode derives the mouse package's ReportMode view of the engine's
// current terminal modes, from one consistent snapshot of the bitset.
func (v *View) reportMode() mouse.ReportMode {
	m := v.term.Mode()
	return mouse.ReportMode{
		ReportClick: m&headlessterm.ModeReportMouseClicks != 0,
		Motion:      m&headlessterm.ModeReportAllMouseMotion != 0,
		Drag:        m&headlessterm.ModeReportCellMouseMotion != 0,
		AltScreen:   m&headlessterm.ModeSwapScreenAndSetRestoreCursor != 0,
		AppCursor:   m&headlessterm.ModeCursorKeys != 0,
	}
}

// MouseButton reports a mouse press or release at a pixel position, SGR
// mouse-encoding it and writing the bytes to the PTY when the engine has
// mouse reporting enabled. ok reports whether any bytes were produced.
func (v *View) MouseButton(button mouse.Button, pressed bool, pixelX, pixelY, originX, originY float64) (ok bool) {
	metrics := v.cellMetrics()
	if metrics.Width <= 0 || metrics.Height <= 0 {
		return false
	}
	cell := mouse.PixelToCell(pixelX, pixelY, originX, originY, metrics.Width, metrics.Height)
	out, ok := mouse.ButtonReport(button, pressed, cell, 0, v.reportMode())
	if !ok {
		return false
	}
	v.writeBytes(out)
	return true
}

// MouseScroll reports a scroll-wheel event, translating it to an SGR wheel
// report, an arrow-key fallback, or nothing at all per mouse.ScrollReport's
// rules. ok is false when the host should scroll its own scrollback view
// instead.
func (v *View) MouseScroll(deltaPixels, pixelX, pixelY, originX, originY float64) (ok bool) {
	metrics := v.cellMetrics()
	if metrics.Width <= 0 || metrics.Height <= 0 {
		return false
	}
	lines := mouse.PixelsToScrollLines(deltaPixels, metrics.Height)
	if lines == 0 {
		return false
	}
	cell := mouse.PixelToCell(pixelX, pixelY, originX, originY, metrics.Width, metrics.Height)
	out, ok := mouse.ScrollReport(lines, cell, 0, v.reportMode())
	if !ok {
		return false
	}
	v.writeBytes(out)
	return true
}

// RegisterClick maps a consecutive-click count to the selection
// granularity (spec.md §4.D selection_type_from_clicks) and returns the
// resulting SelectionKind. It keeps no click state: the host counts
// consecutive clicks and owns its double/triple-click timing window.
func (v *View) RegisterClick(consecutive int) mouse.SelectionKind {
	return mouse.SelectionKindFromClicks(consecutive)
}

func (v *View) writeBytes(b []byte) {
	v.writeMu.Lock()
	defer v.writeMu.Unlock()
	_, _ = v.writer.Write(b)
}

// --- Resize loop ---

// cellMetrics returns the cached cell metrics. Callers that already hold a
// canvas during Paint go through render.MeasureCellMetrics directly; this
// path serves input routing (MouseButton/MouseScroll), where a canvas may
// not be at hand. Before the first Paint the cache is the zero value, and
// those callers treat it as "metrics unknown" and drop the event.
func (v *View) cellMetrics() render.CellMetrics {
	v.cfgMu.Lock()
	defer v.cfgMu.Unlock()
	return v.metrics
}

// applyResize computes the cols/rows that fit contentWidth/contentHeight
// (the paint bounds, already inset by padding) given metrics, and — if
// different from the engine's current dimensions — invokes the resize
// callback before resizing the engine itself, per spec.md §9's resize
// ordering ("so the PTY resizes before the grid") and Scenario S6 ("first
// paint must invoke resize_callback(80, 24) before any engine resize").
func (v *View) applyResize(contentWidth, contentHeight float64, metrics render.CellMetrics) {
	if metrics.Width <= 0 || metrics.Height <= 0 {
		return
	}

	cols := int(contentWidth / metrics.Width)
	if cols < 1 {
		cols = 1
	}
	rows := int(contentHeight / metrics.Height)
	if rows < 1 {
		rows = 1
	}

	if cols == v.term.Cols() && rows == v.term.Rows() {
		return
	}

	v.cbMu.Lock()
	resizeCB := v.resizeCB
	v.cbMu.Unlock()
	if resizeCB != nil {
		resizeCB(cols, rows)
	}
	v.term.Resize(rows, cols)
}

// --- Painting ---

// Paint measures cell metrics (remeasuring if the config changed since the
// last paint), runs the resize loop against bounds, then delegates to
// render.Paint. It does not itself drain events; call DrainEvents first if
// the host wants callbacks dispatched before painting.
func (v *View) Paint(bounds render.Rect, canvas render.Canvas) {
	v.cfgMu.Lock()
	cfg := v.cfg
	if !v.metricsValid {
		v.metrics = render.MeasureCellMetrics(canvas, cfg.renderConfig())
		v.metricsValid = true
	}
	metrics := v.metrics
	v.cfgMu.Unlock()

	content := bounds.Inset(cfg.Padding)
	v.applyResize(content.Width, content.Height, metrics)

	render.Paint(bounds, cfg.Padding, v.term, cfg.renderConfig(), canvas)
}

// UpdateConfig swaps the renderer's font/size/multiplier/palette and
// invalidates cached cell metrics so the next Paint remeasures, per
// spec.md §4.H's "Dynamic configuration" contract.
func (v *View) UpdateConfig(cfg Config) {
	v.cfgMu.Lock()
	defer v.cfgMu.Unlock()
	v.cfg = cfg.withDefaults()
	v.metricsValid = false
}

// Config returns the view's current configuration.
func (v *View) Config() Config {
	v.cfgMu.Lock()
	defer v.cfgMu.Unlock()
	return v.cfg
}

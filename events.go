package headlessterm

import "sync"

// TerminalEventKind identifies the kind of event carried on an EventBridge
// channel, mirroring the narrow set of engine events a host actually needs
// to react to (bell, title, clipboard, exit, repaint).
type TerminalEventKind int

const (
	// EventWakeup signals that the grid changed and the host should repaint.
	EventWakeup TerminalEventKind = iota
	// EventBell corresponds to a BEL (0x07) control character.
	EventBell
	// EventTitle carries a new window title (including the empty string for
	// a title reset, OSC's ResetTitle collapsed into Title("")).
	EventTitle
	// EventClipboardStore carries data the application asked to be copied
	// to the system clipboard (OSC 52 write).
	EventClipboardStore
	// EventClipboardLoad notifies that the application requested the
	// clipboard contents (OSC 52 read); no bytes-back injection is
	// performed by the core (see DESIGN.md Open Questions).
	EventClipboardLoad
	// EventExit signals that the terminal session ended because the byte
	// source closed (EOF or read error); the engine itself never emits it.
	EventExit
)

// TerminalEvent is one item on an EventBridge channel.
type TerminalEvent struct {
	Kind      TerminalEventKind
	Title     string
	Clipboard byte
	Data      []byte
}

// EventBridge multiplexes Terminal's provider callbacks (Bell, Title,
// Clipboard) plus the view coordinator's own Wakeup/Exit notifications onto
// a single, ordered Go channel of TerminalEvent, the typed stream spec.md
// §4.F describes. It implements BellProvider, TitleProvider,
// ClipboardProvider, WakeupProvider, and ExitProvider, so a single value can
// be installed as every relevant Terminal provider at once.
//
// The channel is given a large fixed capacity rather than true
// unboundedness (Go has no unbounded channel primitive); sends block past
// that capacity instead of dropping events, preserving the "never drop
// while the receiver is alive" invariant. MouseCursorDirty, PtyWrite,
// ColorRequest, TextAreaSizeRequest, and CursorBlinkingChange have no
// corresponding provider hook in this engine and are never produced.
type EventBridge struct {
	events chan TerminalEvent

	mu     sync.Mutex
	closed bool
}

// defaultEventCapacity is large enough that, in practice, a send never
// blocks the caller (bell/title/clipboard callbacks run synchronously
// inside Terminal.Write; the title callback runs while Terminal's lock is
// held) while still being a concrete,
// finite number as Go channels require.
const defaultEventCapacity = 1024

// NewEventBridge creates an EventBridge with the given channel capacity.
// A capacity <= 0 uses defaultEventCapacity.
func NewEventBridge(capacity int) *EventBridge {
	if capacity <= 0 {
		capacity = defaultEventCapacity
	}
	return &EventBridge{events: make(chan TerminalEvent, capacity)}
}

// Events returns the receive side of the event channel.
func (b *EventBridge) Events() <-chan TerminalEvent {
	return b.events
}

// Close closes the event channel. Safe to call more than once. Further
// sends after Close are silently discarded instead of panicking on a
// closed channel.
func (b *EventBridge) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	close(b.events)
}

func (b *EventBridge) send(ev TerminalEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.events <- ev
}

// Wakeup emits EventWakeup. The view coordinator calls this once per
// process_bytes batch, after the grid mutation is visible, to request a
// repaint.
func (b *EventBridge) Wakeup() {
	b.send(TerminalEvent{Kind: EventWakeup})
}

// Exit emits EventExit. The view coordinator calls this when the reader
// goroutine's byte channel closes (EOF/error); the engine has no exit
// notification of its own.
func (b *EventBridge) Exit() {
	b.send(TerminalEvent{Kind: EventExit})
}

// Ring implements BellProvider.
func (b *EventBridge) Ring() {
	b.send(TerminalEvent{Kind: EventBell})
}

// SetTitle implements TitleProvider.
func (b *EventBridge) SetTitle(title string) {
	b.send(TerminalEvent{Kind: EventTitle, Title: title})
}

// PushTitle implements TitleProvider. The title stack is maintained by the
// engine itself (see handler.go); the bridge only observes SetTitle calls.
func (b *EventBridge) PushTitle() {}

// PopTitle implements TitleProvider; PopTitle's resulting title change
// arrives through a subsequent SetTitle call.
func (b *EventBridge) PopTitle() {}

// Read implements ClipboardProvider. The core never injects a response
// back into the PTY (spec.md §9 Open Questions); it only notifies that a
// load was requested and returns an empty string.
func (b *EventBridge) Read(clipboard byte) string {
	b.send(TerminalEvent{Kind: EventClipboardLoad, Clipboard: clipboard})
	return ""
}

// Write implements ClipboardProvider, notifying the host that the
// application asked to store data to the clipboard (OSC 52).
func (b *EventBridge) Write(clipboard byte, data []byte) {
	cp := append([]byte(nil), data...)
	b.send(TerminalEvent{Kind: EventClipboardStore, Clipboard: clipboard, Data: cp})
}

var (
	_ BellProvider      = (*EventBridge)(nil)
	_ TitleProvider     = (*EventBridge)(nil)
	_ ClipboardProvider = (*EventBridge)(nil)
	_ WakeupProvider    = (*EventBridge)(nil)
	_ ExitProvider      = (*EventBridge)(nil)
)

// Package input translates host keystrokes into the byte sequences a PTY
// expects, independent of any particular windowing toolkit.
package input

import headlessterm "github.com/embeddedterm/goterm"

// Modifiers is the set of modifier keys held during a keystroke.
type Modifiers struct {
	Shift   bool
	Control bool
	Alt     bool
	Meta    bool
}

// Key names recognized by Encode for non-printable keys. Hosts translate
// their own key codes (GLFW, X11, terminfo, ...) to these before calling in.
const (
	KeySpace     = "space"
	KeyEnter     = "enter"
	KeyEscape    = "escape"
	KeyBackspace = "backspace"
	KeyTab       = "tab"
	KeyUp        = "up"
	KeyDown      = "down"
	KeyRight     = "right"
	KeyLeft      = "left"
	KeyHome      = "home"
	KeyEnd       = "end"
	KeyPageUp    = "pageup"
	KeyPageDown  = "pagedown"
	KeyInsert    = "insert"
	KeyDelete    = "delete"
)

// Keystroke is a single key event as reported by a host windowing toolkit.
// Key holds a named key (see the Key* constants) or, for printable keys, the
// single rune typed; Char, when non-empty, carries the shift/layout-resolved
// text the host produced (GPUI's key_char) and takes priority over Key for
// printable input.
type Keystroke struct {
	Key       string
	Char      string
	Modifiers Modifiers
}

var functionKeys = map[string][]byte{
	"f1":  []byte("\x1bOP"),
	"f2":  []byte("\x1bOQ"),
	"f3":  []byte("\x1bOR"),
	"f4":  []byte("\x1bOS"),
	"f5":  []byte("\x1b[15~"),
	"f6":  []byte("\x1b[17~"),
	"f7":  []byte("\x1b[18~"),
	"f8":  []byte("\x1b[19~"),
	"f9":  []byte("\x1b[20~"),
	"f10": []byte("\x1b[21~"),
	"f11": []byte("\x1b[23~"),
	"f12": []byte("\x1b[24~"),
}

var navigationKeys = map[string][]byte{
	KeyHome:     []byte("\x1b[H"),
	KeyEnd:      []byte("\x1b[F"),
	KeyPageUp:   []byte("\x1b[5~"),
	KeyPageDown: []byte("\x1b[6~"),
	KeyInsert:   []byte("\x1b[2~"),
	KeyDelete:   []byte("\x1b[3~"),
}

var ctrlSpecials = map[rune]byte{
	'[':  0x1b,
	'\\': 0x1c,
	']':  0x1d,
	'^':  0x1e,
	'_':  0x1f,
	'?':  0x7f,
}

// Encode converts a keystroke to the byte sequence that should be written
// to the PTY. mode is the terminal's current mode bitset; ModeCursorKeys
// (DECCKM) selects SS3 (ESC O) arrow-key sequences instead of the default
// CSI (ESC [) form. ok is false when the keystroke produces no PTY output
// at all (a bare modifier key, an unencodable special key).
func Encode(k Keystroke, mode headlessterm.TerminalMode) (out []byte, ok bool) {
	appCursor := mode&headlessterm.ModeCursorKeys != 0
	switch k.Key {
	case KeySpace:
		if k.Modifiers.Control {
			return []byte{0x00}, true
		}
		return []byte(" "), true
	case KeyEnter:
		return []byte("\r"), true
	case KeyEscape:
		return []byte("\x1b"), true
	case KeyBackspace:
		return []byte("\x7f"), true
	case KeyTab:
		if k.Modifiers.Shift {
			return []byte("\x1b[Z"), true
		}
		return []byte("\t"), true
	case KeyUp:
		return arrowBytes('A', appCursor), true
	case KeyDown:
		return arrowBytes('B', appCursor), true
	case KeyRight:
		return arrowBytes('C', appCursor), true
	case KeyLeft:
		return arrowBytes('D', appCursor), true
	}

	if seq, found := navigationKeys[k.Key]; found {
		return seq, true
	}
	if seq, found := functionKeys[k.Key]; found {
		return seq, true
	}

	if k.Modifiers.Control {
		if out, ok := encodeControl(k.Key); ok {
			return out, true
		}
	}

	if k.Modifiers.Alt {
		if r, isSingle := soleRune(k.Key); isSingle && r < 0x80 {
			return []byte{0x1b, byte(r)}, true
		}
	}

	if k.Char != "" && !k.Modifiers.Control && !k.Modifiers.Alt {
		return []byte(k.Char), true
	}

	if r, isSingle := soleRune(k.Key); isSingle {
		if r < 0x80 && !k.Modifiers.Control {
			if k.Modifiers.Shift {
				r = toUpperASCII(r)
			}
			return []byte{byte(r)}, true
		}
		if !k.Modifiers.Control && !k.Modifiers.Alt {
			return []byte(k.Key), true
		}
	}

	return nil, false
}

func arrowBytes(final byte, appCursor bool) []byte {
	if appCursor {
		return []byte{0x1b, 'O', final}
	}
	return []byte{0x1b, '[', final}
}

// encodeControl handles Ctrl+key for the single-character case: letters map
// to 0x01-0x1a, and a handful of punctuation keys map to the other C0
// controls a terminal keyboard can reach.
func encodeControl(key string) ([]byte, bool) {
	r, isSingle := soleRune(key)
	if !isSingle {
		return nil, false
	}
	if r >= 'a' && r <= 'z' {
		return []byte{byte(r-'a') + 1}, true
	}
	if r >= 'A' && r <= 'Z' {
		return []byte{byte(r-'A') + 1}, true
	}
	if b, found := ctrlSpecials[r]; found {
		return []byte{b}, true
	}
	return nil, false
}

func soleRune(s string) (rune, bool) {
	runes := []rune(s)
	if len(runes) != 1 {
		return 0, false
	}
	return runes[0], true
}

func toUpperASCII(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}

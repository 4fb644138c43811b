package main

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/embeddedterm/goterm/input"
	"github.com/embeddedterm/goterm/mouse"
)

// glfwKeyNames maps GLFW key codes to the named keys input.Encode
// recognizes. Printable keys arrive through the char callback instead (see
// main.go's charCallback), matching GPUI's key_char/key split that
// input.Keystroke.Char documents.
var glfwKeyNames = map[glfw.Key]string{
	glfw.KeySpace:     input.KeySpace,
	glfw.KeyEnter:     input.KeyEnter,
	glfw.KeyEscape:    input.KeyEscape,
	glfw.KeyBackspace: input.KeyBackspace,
	glfw.KeyTab:       input.KeyTab,
	glfw.KeyUp:        input.KeyUp,
	glfw.KeyDown:      input.KeyDown,
	glfw.KeyRight:     input.KeyRight,
	glfw.KeyLeft:      input.KeyLeft,
	glfw.KeyHome:      input.KeyHome,
	glfw.KeyEnd:       input.KeyEnd,
	glfw.KeyPageUp:    input.KeyPageUp,
	glfw.KeyPageDown:  input.KeyPageDown,
	glfw.KeyInsert:    input.KeyInsert,
	glfw.KeyDelete:    input.KeyDelete,
}

var glfwFunctionKeys = map[glfw.Key]string{
	glfw.KeyF1:  "f1",
	glfw.KeyF2:  "f2",
	glfw.KeyF3:  "f3",
	glfw.KeyF4:  "f4",
	glfw.KeyF5:  "f5",
	glfw.KeyF6:  "f6",
	glfw.KeyF7:  "f7",
	glfw.KeyF8:  "f8",
	glfw.KeyF9:  "f9",
	glfw.KeyF10: "f10",
	glfw.KeyF11: "f11",
	glfw.KeyF12: "f12",
}

// translateKey converts a GLFW key event to an input.Keystroke, or ok=false
// for keys this demo doesn't forward (e.g. bare modifier keys, media keys).
//
// Plain letters/digits are normally left to the char callback (translateChar
// below), which gets the platform's layout/shift-resolved codepoint. But
// input.Encode's Ctrl/Alt handling (encodeControl, the Alt-prefix branch)
// keys off Keystroke.Key, not Keystroke.Char — GLFW's char callback never
// fires for a Ctrl-held combo at all — so a held Control or Alt routes the
// ASCII key code through Key here instead.
func translateKey(key glfw.Key, mods glfw.ModifierKey) (input.Keystroke, bool) {
	modifiers := input.Modifiers{
		Shift:   mods&glfw.ModShift != 0,
		Control: mods&glfw.ModControl != 0,
		Alt:     mods&glfw.ModAlt != 0,
		Meta:    mods&glfw.ModSuper != 0,
	}

	name, isNamed := glfwKeyNames[key]
	if !isNamed {
		name, isNamed = glfwFunctionKeys[key]
	}
	if isNamed {
		return input.Keystroke{Key: name, Modifiers: modifiers}, true
	}

	if modifiers.Control || modifiers.Alt {
		if r, ok := asciiKeyRune(key); ok {
			return input.Keystroke{Key: string(r), Modifiers: modifiers}, true
		}
	}

	return input.Keystroke{}, false
}

// asciiKeyRune reports the ASCII rune a GLFW letter/digit key corresponds
// to. GLFW's glfw.KeyA..glfw.KeyZ and glfw.Key0..glfw.Key9 are defined as
// their ASCII/ISO-Latin codepoints, so the mapping is a direct cast.
func asciiKeyRune(key glfw.Key) (rune, bool) {
	switch {
	case key >= glfw.KeyA && key <= glfw.KeyZ:
		return rune('a' + (key - glfw.KeyA)), true
	case key >= glfw.Key0 && key <= glfw.Key9:
		return rune('0' + (key - glfw.Key0)), true
	default:
		return 0, false
	}
}

// translateMouseButton maps a GLFW mouse button to the mouse package's
// Button enum; ok is false for buttons with no SGR encoding (back/forward).
func translateMouseButton(b glfw.MouseButton) (mouse.Button, bool) {
	switch b {
	case glfw.MouseButtonLeft:
		return mouse.ButtonLeft, true
	case glfw.MouseButtonMiddle:
		return mouse.ButtonMiddle, true
	case glfw.MouseButtonRight:
		return mouse.ButtonRight, true
	default:
		return mouse.ButtonOther, false
	}
}

// translateChar converts a GLFW char callback codepoint (already
// layout/shift-resolved by the platform) to an input.Keystroke carrying
// Char, which Encode prioritizes over Key for printable text.
func translateChar(r rune, mods glfw.ModifierKey) input.Keystroke {
	return input.Keystroke{
		Char: string(r),
		Modifiers: input.Modifiers{
			Control: mods&glfw.ModControl != 0,
			Alt:     mods&glfw.ModAlt != 0,
			Meta:    mods&glfw.ModSuper != 0,
		},
	}
}

// Command demo is a minimal interactive host for the headlessterm engine:
// it spawns a shell under a PTY, opens a GLFW/OpenGL window, and wires
// termview.View + render.GLCanvas between them. It exists to exercise the
// library end to end, the way RavenTerminal's main.go drives its own
// grid/render/window packages.
package main

import (
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	"github.com/creack/pty"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	headlessterm "github.com/embeddedterm/goterm"
	"github.com/embeddedterm/goterm/render"
	"github.com/embeddedterm/goterm/termview"
)

func init() {
	// GLFW requires all of its calls to happen on the thread that called
	// glfw.Init.
	runtime.LockOSThread()
}

const (
	windowWidth  = 960
	windowHeight = 600
)

func main() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	demoCfg, err := loadDemoConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load ~/.termdemo.toml")
	}

	shell := demoCfg.Shell
	if shell == "" {
		shell = os.Getenv("SHELL")
	}
	if shell == "" {
		shell = "/bin/sh"
	}

	cfg := termview.DefaultConfig()
	if demoCfg.FontFamily != "" {
		cfg.FontFamily = demoCfg.FontFamily
	}
	if demoCfg.FontSizePx > 0 {
		cfg.FontSizePx = demoCfg.FontSizePx
	}
	cfg.Palette = applyPaletteOverrides(demoCfg)

	cmd := exec.Command(shell)
	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: uint16(cfg.Rows), Cols: uint16(cfg.Cols)})
	if err != nil {
		log.Fatal().Err(err).Str("shell", shell).Msg("failed to spawn shell under pty")
	}
	defer ptmx.Close()
	log.Info().Str("shell", shell).Int("pid", cmd.Process.Pid).Msg("spawned shell")

	if err := glfw.Init(); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize GLFW")
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	window, err := glfw.CreateWindow(windowWidth, windowHeight, "headlessterm demo", nil, nil)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create window")
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	if err := gl.Init(); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize OpenGL")
	}
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	fbWidth, fbHeight := window.GetFramebufferSize()
	canvas, err := render.NewGLCanvas(fbWidth, fbHeight, nil)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create GL canvas")
	}

	view, err := termview.New(ptmx, ptmx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create terminal view")
	}

	closeRequested := false

	view.WithResizeCallback(func(cols, rows int) {
		log.Info().Int("cols", cols).Int("rows", rows).Msg("resizing pty")
		if err := pty.Setsize(ptmx, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)}); err != nil {
			log.Warn().Err(err).Msg("pty resize failed")
		}
	})
	view.WithTitleCallback(func(title string) {
		window.SetTitle(titleOrDefault(title))
	})
	view.WithBellCallback(func() {
		log.Debug().Msg("bell")
	})
	view.WithClipboardStoreCallback(func(data []byte) {
		glfw.SetClipboardString(string(data))
	})
	view.WithExitCallback(func() {
		log.Info().Msg("shell exited")
		closeRequested = true
	})

	window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		canvas.Resize(width, height)
	})
	window.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		if action != glfw.Press && action != glfw.Repeat {
			return
		}
		if key == glfw.KeyF2 && action == glfw.Press {
			saveDebugScreenshot(view.Terminal())
			return
		}
		if k, ok := translateKey(key, mods); ok {
			view.KeyDown(k)
		}
	})
	window.SetCharModsCallback(func(_ *glfw.Window, r rune, mods glfw.ModifierKey) {
		view.KeyDown(translateChar(r, mods))
	})
	window.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		x, y := window.GetCursorPos()
		view.MouseScroll(yoff*40, x, y, 0, 0)
	})
	window.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		mb, ok := translateMouseButton(button)
		if !ok {
			return
		}
		x, y := window.GetCursorPos()
		view.MouseButton(mb, action == glfw.Press, x, y, 0, 0)
	})

	for !window.ShouldClose() && !closeRequested {
		glfw.PollEvents()
		view.DrainEvents()

		width, height := window.GetFramebufferSize()
		view.Paint(render.Rect{X: 0, Y: 0, Width: float64(width), Height: float64(height)}, canvas)

		window.SwapBuffers()
	}

	log.Info().Msg("shutting down")
	_ = cmd.Process.Kill()
}

func titleOrDefault(title string) string {
	if title == "" {
		return "headlessterm demo"
	}
	return title
}

// saveDebugScreenshot writes the current grid to a PNG in the system temp
// directory (os.TempDir), bound to F2 for poking at rendering issues without a debugger.
func saveDebugScreenshot(term *headlessterm.Terminal) {
	img := term.Screenshot()

	name := filepath.Join(os.TempDir(), "headlessterm-"+time.Now().Format("20060102-150405")+".png")
	f, err := os.Create(name)
	if err != nil {
		log.Warn().Err(err).Msg("screenshot: failed to create file")
		return
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		log.Warn().Err(err).Msg("screenshot: failed to encode png")
		return
	}
	log.Info().Str("path", name).Msg("screenshot saved")
}

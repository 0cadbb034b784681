// Package glfwhost drives a surface from a GLFW window: it owns the
// GL context and delivers the realize, resize, render and unrealize
// lifecycle the engine expects from its host toolkit.
package glfwhost

import (
	"log"
	"runtime"

	glfw "github.com/go-gl/glfw/v3.3/glfw"

	"github.com/fragview/fragview/glx"
	"github.com/fragview/fragview/glx/gl41"
	"github.com/fragview/fragview/surface"
)

// Init initializes GLFW. Must be called from the main thread, which
// is locked here for the lifetime of the process.
func Init() error {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return err
	}
	return nil
}

// Terminate shuts GLFW down. Must be called from the main thread.
func Terminate() {
	glfw.Terminate()
}

// Host pairs one window with one realized surface.
type Host struct {
	window      *glfw.Window
	surface     *surface.Surface
	funcs       glx.Funcs
	needsRedraw bool
}

// New creates a window with a 4.1 core profile context, makes it
// current and realizes the surface against it. The surface's redraw
// requests are wired to the host's event loop.
func New(title string, width, height int, s *surface.Surface, visible bool) (*Host, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	if visible {
		glfw.WindowHint(glfw.Resizable, glfw.True)
	} else {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		return nil, err
	}
	win.MakeContextCurrent()

	g, err := gl41.New()
	if err != nil {
		win.Destroy()
		return nil, err
	}

	h := &Host{window: win, surface: s, funcs: g, needsRedraw: true}
	s.OnRedraw(func() { h.needsRedraw = true })

	fbWidth, fbHeight := win.GetFramebufferSize()
	s.Resize(fbWidth, fbHeight)
	if err := s.Realize(g, false); err != nil {
		win.Destroy()
		return nil, err
	}

	win.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		s.Resize(width, height)
		h.needsRedraw = true
	})
	win.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			w.SetShouldClose(true)
		}
	})

	return h, nil
}

// Funcs returns the GL function table for the host's context.
func (h *Host) Funcs() glx.Funcs {
	return h.funcs
}

// Window returns the underlying GLFW window.
func (h *Host) Window() *glfw.Window {
	return h.window
}

// SwapBuffers presents the current frame.
func (h *Host) SwapBuffers() {
	h.window.SwapBuffers()
}

// Run is the interactive loop. If animate is non-nil it is invoked
// with the elapsed time before every frame and the surface renders
// continuously; otherwise the surface renders only when a redraw was
// requested.
func (h *Host) Run(animate func(t float64)) {
	start := glfw.GetTime()
	for !h.window.ShouldClose() {
		if animate != nil {
			animate(glfw.GetTime() - start)
			h.needsRedraw = true
		}
		if h.needsRedraw {
			h.needsRedraw = false
			if err := h.surface.Render(); err != nil {
				log.Printf("render: %v", err)
				return
			}
			h.window.SwapBuffers()
		}
		if animate != nil {
			glfw.PollEvents()
		} else {
			glfw.WaitEvents()
		}
	}
}

// Close unrealizes the surface and destroys the window. Safe to call
// once the loop has exited.
func (h *Host) Close() {
	h.surface.Unrealize()
	h.window.Destroy()
}

// Package glctx owns the GLFW window and the OpenGL context, and wraps the GL
// calls the rest of the viewer needs behind small typed helpers.
package glctx

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/bbredesen/obj-viewer/transform"
)

type Settings struct {
	Width, Height int
	Title         string
	VSync         bool
}

type Context struct {
	Window *glfw.Window
	Logger *slog.Logger

	// Input is written by the key callback during PollEvents.
	Input transform.Input

	// OnReset, when set, is called on a press of a key bound to "reset".
	OnReset func()
	// OnResize, when set, is called with the new framebuffer size.
	OnResize func(width, height int)

	keys keyMap
}

// Initialize creates the window, makes its context current and loads the GL
// function pointers. It must run on the main OS thread. Failures here leave
// nothing to render with, so they panic.
func (ctx *Context) Initialize(s Settings, bindings map[string]string) {
	if ctx.Logger == nil {
		ctx.Logger = slog.Default()
	}

	keys, err := newKeyMap(bindings)
	if err != nil {
		panic("Invalid key bindings: " + err.Error())
	}
	ctx.keys = keys

	if err := glfw.Init(); err != nil {
		panic("Could not initialize GLFW: " + err.Error())
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	ctx.Window, err = glfw.CreateWindow(s.Width, s.Height, s.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		panic("Could not create window: " + err.Error())
	}
	ctx.Window.MakeContextCurrent()

	if s.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	if err := gl.Init(); err != nil {
		ctx.Window.Destroy()
		glfw.Terminate()
		panic("Could not load OpenGL functions: " + err.Error())
	}

	ctx.Logger.Info("opengl context ready",
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)),
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
	)

	ctx.Window.SetKeyCallback(ctx.keyCallback)
	ctx.Window.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		if !focused {
			ctx.Input.Clear()
		}
	})
	ctx.Window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		gl.Viewport(0, 0, int32(width), int32(height))
		if ctx.OnResize != nil && width > 0 && height > 0 {
			ctx.OnResize(width, height)
		}
	})

	width, height := ctx.Window.GetFramebufferSize()
	gl.Viewport(0, 0, int32(width), int32(height))

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)
}

func (ctx *Context) Teardown() {
	if ctx.Window != nil {
		ctx.Window.Destroy()
		ctx.Window = nil
	}
	glfw.Terminate()
}

func (ctx *Context) ShouldClose() bool {
	return ctx.Window.ShouldClose()
}

func (ctx *Context) PollEvents() {
	glfw.PollEvents()
}

func (ctx *Context) SwapBuffers() {
	ctx.Window.SwapBuffers()
}

// Time is seconds since GLFW was initialized.
func (ctx *Context) Time() float64 {
	return glfw.GetTime()
}

func (ctx *Context) FramebufferSize() (width, height int) {
	return ctx.Window.GetFramebufferSize()
}

func (ctx *Context) Clear(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// CheckError logs any pending GL errors under label and reports whether there were any.
func (ctx *Context) CheckError(label string) bool {
	found := false
	for e := gl.GetError(); e != gl.NO_ERROR; e = gl.GetError() {
		ctx.Logger.Error("opengl error", "at", label, "code", fmt.Sprintf("0x%04x", e))
		found = true
	}
	return found
}

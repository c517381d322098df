// Package desktop opens lumen windows with GLFW and draws into them with the
// WebGPU backend.
package desktop

import (
	"fmt"
	"math"

	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/gekko3d/lumen"
	"github.com/gekko3d/lumen/gpu"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Platform owns the GLFW library. It must be created and used on the main
// goroutine, and that goroutine must be locked to the main OS thread from an
// init function in package main, before New is called.
type Platform struct {
	logger lumen.Logger
}

var (
	_ lumen.Platform     = (*Platform)(nil)
	_ lumen.NativeWindow = (*nativeWindow)(nil)
)

func New(logger lumen.Logger) (*Platform, error) {
	if err := glfw.Init(); err != nil {
		return nil, &lumen.WindowCreationError{Kind: lumen.WindowCreationPlatformSpecific, Message: err.Error(), Err: err}
	}
	if logger == nil {
		logger = lumen.NewNopLogger()
	}
	return &Platform{logger: logger}, nil
}

// Terminate shuts GLFW down. Every window must be destroyed first.
func (p *Platform) Terminate() {
	glfw.Terminate()
}

func (p *Platform) CreateWindow(res lumen.Resolution, title string) (lumen.NativeWindow, lumen.Backend, error) {
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI) // the surface comes from WebGPU, not OpenGL
	glfw.WindowHint(glfw.Resizable, glfw.True)

	var monitor *glfw.Monitor
	width, height := int(res.Width), int(res.Height)
	switch res.Kind {
	case lumen.ResolutionFullscreen:
		monitor = glfw.GetPrimaryMonitor()
		if monitor == nil {
			return nil, nil, &lumen.WindowCreationError{Kind: lumen.WindowCreationOs, Message: "no monitor for fullscreen window"}
		}
		mode := monitor.GetVideoMode()
		width, height = mode.Width, mode.Height
	case lumen.ResolutionLogical:
		if primary := glfw.GetPrimaryMonitor(); primary != nil {
			sx, sy := primary.GetContentScale()
			width = int(math.Round(res.Width * float64(sx)))
			height = int(math.Round(res.Height * float64(sy)))
		}
	}
	if width <= 0 || height <= 0 {
		return nil, nil, &lumen.WindowCreationError{Kind: lumen.WindowCreationOs, Message: fmt.Sprintf("invalid window size %dx%d", width, height)}
	}

	win, err := glfw.CreateWindow(width, height, title, monitor, nil)
	if err != nil {
		return nil, nil, &lumen.WindowCreationError{Kind: lumen.WindowCreationOs, Message: err.Error(), Err: err}
	}
	native := newNativeWindow(win, monitor != nil)

	backend, err := gpu.New(wgpuglfw.GetSurfaceDescriptor(win), native.framebufferSize, p.logger)
	if err != nil {
		win.Destroy()
		return nil, nil, err
	}
	p.logger.Debugf("desktop: window %dx%d created", width, height)
	return native, backend, nil
}

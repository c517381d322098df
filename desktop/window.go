package desktop

import (
	"fmt"
	"image"
	"time"

	"github.com/gekko3d/lumen"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// nativeWindow adapts a GLFW window. GLFW callbacks only queue events; they
// are handed to lumen from WaitEvents.
type nativeWindow struct {
	win    *glfw.Window
	events []lumen.Event

	fullscreen bool
	// windowed placement restored when leaving fullscreen
	restoreX, restoreY, restoreW, restoreH int
}

func newNativeWindow(win *glfw.Window, fullscreen bool) *nativeWindow {
	n := &nativeWindow{win: win, fullscreen: fullscreen}
	n.restoreX, n.restoreY = win.GetPos()
	n.restoreW, n.restoreH = win.GetSize()

	win.SetCloseCallback(func(w *glfw.Window) {
		// the lumen window decides whether to close
		w.SetShouldClose(false)
		n.events = append(n.events, lumen.CloseRequestedEvent{})
	})
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		n.events = append(n.events, lumen.ResizeEvent{Width: uint32(max(width, 0)), Height: uint32(max(height, 0))})
	})
	win.SetPosCallback(func(_ *glfw.Window, x, y int) {
		n.events = append(n.events, lumen.MoveEvent{X: int32(x), Y: int32(y)})
	})
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, _ glfw.ModifierKey) {
		if ev, ok := keyEvent(key, scancode, action); ok {
			n.events = append(n.events, ev)
		}
	})
	return n
}

func (n *nativeWindow) framebufferSize() (uint32, uint32) {
	w, h := n.win.GetFramebufferSize()
	return uint32(max(w, 0)), uint32(max(h, 0))
}

func (n *nativeWindow) SetTitle(title string) {
	n.win.SetTitle(title)
}

func (n *nativeWindow) SetIcon(img image.Image) (err error) {
	// GLFW reports unsupported platforms (Wayland, macOS) by panicking
	defer func() {
		if r := recover(); r != nil {
			err = &lumen.IconError{Kind: lumen.IconOs, Err: fmt.Errorf("%v", r)}
		}
	}()
	n.win.SetIcon([]image.Image{img})
	return nil
}

// pixelRatio is framebuffer pixels per GLFW screen coordinate.
func (n *nativeWindow) pixelRatio() float64 {
	fw, _ := n.win.GetFramebufferSize()
	ww, _ := n.win.GetSize()
	if fw <= 0 || ww <= 0 {
		return 1
	}
	return float64(fw) / float64(ww)
}

func (n *nativeWindow) SetInnerSize(width, height uint32) {
	ratio := n.pixelRatio()
	n.win.SetSize(int(float64(width)/ratio), int(float64(height)/ratio))
}

func (n *nativeWindow) SetOuterPosition(x, y int32) {
	left, top, _, _ := n.win.GetFrameSize()
	n.win.SetPos(int(x)+left, int(y)+top)
}

func (n *nativeWindow) SetFullscreen(fullscreen bool) {
	if fullscreen == n.fullscreen {
		return
	}
	if fullscreen {
		monitor := glfw.GetPrimaryMonitor()
		if monitor == nil {
			return
		}
		n.restoreX, n.restoreY = n.win.GetPos()
		n.restoreW, n.restoreH = n.win.GetSize()
		mode := monitor.GetVideoMode()
		n.win.SetMonitor(monitor, 0, 0, mode.Width, mode.Height, mode.RefreshRate)
	} else {
		n.win.SetMonitor(nil, n.restoreX, n.restoreY, n.restoreW, n.restoreH, glfw.DontCare)
	}
	n.fullscreen = fullscreen
}

func (n *nativeWindow) ScaleFactor() float64 {
	x, _ := n.win.GetContentScale()
	if x <= 0 {
		return 1
	}
	return float64(x)
}

func (n *nativeWindow) InnerSize() (uint32, uint32) {
	return n.framebufferSize()
}

func (n *nativeWindow) InnerPosition() (int32, int32, error) {
	x, y := n.win.GetPos()
	return int32(x), int32(y), nil
}

func (n *nativeWindow) WaitEvents(deadline time.Time) []lumen.Event {
	if timeout := time.Until(deadline); timeout > 0 {
		glfw.WaitEventsTimeout(timeout.Seconds())
	} else {
		glfw.PollEvents()
	}
	events := n.events
	n.events = nil
	return events
}

func (n *nativeWindow) Destroy() {
	n.win.Destroy()
}

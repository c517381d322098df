package lumen

import (
	"errors"
	"fmt"
	"time"
)

// WindowCallback is the behaviour attached to a Window. Embed
// DefaultWindowCallback to implement only the hooks you need.
type WindowCallback interface {
	OnError(window *Window, err RuntimeError)
	// OnClose runs when the user asks the OS to close the window. The window
	// only closes if the callback calls Close.
	OnClose(window *Window)
	OnResize(window *Window, res Resolution)
	OnMove(window *Window, pos Position)
	// OnTick runs at the start of every frame, before the scene ticks.
	OnTick(window *Window, frame *Frame)
}

// DefaultWindowCallback logs runtime errors and closes the window on errors
// and close requests.
type DefaultWindowCallback struct{}

func (DefaultWindowCallback) OnError(w *Window, err RuntimeError) {
	w.Logger().Errorf("%v; closing window", err)
	w.Close()
}

func (DefaultWindowCallback) OnClose(w *Window) {
	w.Close()
}

func (DefaultWindowCallback) OnResize(*Window, Resolution) {}
func (DefaultWindowCallback) OnMove(*Window, Position)     {}
func (DefaultWindowCallback) OnTick(*Window, *Frame)       {}

// Window owns the native window, its GPU backend, the active scene and the
// frame loop. All methods must be called from the goroutine running
// MainLoop, which on most platforms is the main thread.
type Window struct {
	// TargetFramerate is the number of ticks per second MainLoop aims for.
	TargetFramerate uint64

	callbacks WindowCallback
	scene     *Scene
	actions   []windowAction
	frame     Frame
	title     string

	native  NativeWindow
	backend Backend
	logger  Logger

	loopStarted bool
	ticked      bool
	destroyed   bool
	nextTick    time.Time

	// A SetScene made from one of the active scene's own hooks is held here
	// until that hook returns.
	pending  *Scene
	replaced bool
}

// NewWindow opens a window through platform. callbacks may be nil, in which
// case DefaultWindowCallback is used. Failures are *WindowCreationError.
func NewWindow(platform Platform, callbacks WindowCallback, cfg WindowConfig) (*Window, error) {
	cfg = cfg.withDefaults()

	logger := cfg.Logger
	if logger == nil {
		logger = NewDefaultLogger(cfg.LogPrefix, cfg.Debug)
	}

	res := Physical(cfg.Width, cfg.Height)
	if cfg.Fullscreen {
		res = Fullscreen()
	}
	native, backend, err := platform.CreateWindow(res, cfg.Title)
	if err != nil {
		var wce *WindowCreationError
		if errors.As(err, &wce) {
			return nil, wce
		}
		return nil, &WindowCreationError{Kind: WindowCreationOs, Message: err.Error(), Err: err}
	}

	if callbacks == nil {
		callbacks = DefaultWindowCallback{}
	}
	w := &Window{
		TargetFramerate: cfg.TargetFramerate,
		callbacks:       callbacks,
		title:           cfg.Title,
		native:          native,
		backend:         backend,
		logger:          logger,
		frame: Frame{
			Input: newInput(),
		},
	}
	width, height := native.InnerSize()
	w.frame.Display.Resolution = [2]uint32{width, height}
	w.refreshPosition()

	if cfg.IconPath != "" {
		if err := w.SetIcon(cfg.IconPath); err != nil {
			logger.Warnf("window icon %s: %v", cfg.IconPath, err)
		}
	}
	logger.Infof("window %q created (%dx%d)", cfg.Title, width, height)
	return w, nil
}

func (w *Window) Logger() Logger {
	return w.logger
}

// Backend is the GPU backend drawing into this window.
func (w *Window) Backend() Backend {
	return w.backend
}

// Frame is the current input, time and display state.
func (w *Window) Frame() *Frame {
	return &w.frame
}

func (w *Window) Title() string {
	return w.title
}

// Scene returns the active scene, or nil. A replacement requested from one of
// the active scene's own hooks shows up once that hook has returned.
func (w *Window) Scene() *Scene {
	return w.scene
}

// SetCallbacks replaces the behaviour. Called from inside one of the window's
// own hooks, the new value is kept once the hook returns.
func (w *Window) SetCallbacks(callbacks WindowCallback) {
	w.callbacks = callbacks
}

// SetScene makes scene the active one. The previous scene is removed and
// destroyed before scene's OnInsert fires. A nil scene just clears it.
//
// Called from inside one of the active scene's own hooks, the swap happens as
// soon as that hook returns, so the outgoing scene still gets its OnRemove and
// OnUnload. Its objects are not ticked again and it is not rendered. When
// several calls land in the same hook the last one wins and the scenes it
// supersedes are destroyed.
func (w *Window) SetScene(scene *Scene) {
	if cur := w.scene; cur != nil && cur.inHook() {
		if w.replaced && w.pending != nil && w.pending != scene && w.pending != cur {
			w.pending.Destroy()
		}
		w.pending, w.replaced = scene, true
		return
	}
	w.swapScene(scene)
}

func (w *Window) swapScene(scene *Scene) {
	if scene == w.scene {
		return
	}
	if old := w.scene; old != nil {
		w.scene = nil
		old.remove(w)
		old.Destroy()
	}
	if scene == nil {
		return
	}
	w.scene = scene
	scene.insert(w)
	w.applyPendingScene()
}

func (w *Window) applyPendingScene() {
	if !w.replaced {
		return
	}
	next := w.pending
	w.pending, w.replaced = nil, false
	w.swapScene(next)
}

// SetIcon decodes the image at path and installs it as the window icon.
// Failures are *IconError.
func (w *Window) SetIcon(path string) error {
	img, err := LoadImage(path)
	if err != nil {
		var de *DecodeError
		if errors.As(err, &de) && de.Kind == DecodeIo {
			return &IconError{Kind: IconIo, Err: err}
		}
		return &IconError{Kind: IconFormat, Err: err}
	}
	if img.Rect.Empty() {
		return &IconError{Kind: IconBad, Err: fmt.Errorf("%s: empty image", path)}
	}
	if err := w.native.SetIcon(img); err != nil {
		var ie *IconError
		if errors.As(err, &ie) {
			return ie
		}
		return &IconError{Kind: IconOs, Err: err}
	}
	return nil
}

func (w *Window) invoke(fn func(cb WindowCallback)) {
	cb := w.callbacks
	if cb == nil {
		return
	}
	w.callbacks = nil
	defer func() {
		if w.callbacks == nil {
			w.callbacks = cb
		}
	}()
	fn(cb)
}

func (w *Window) frameInterval() time.Duration {
	fps := w.TargetFramerate
	if fps == 0 {
		fps = DefaultTargetFramerate
	}
	return time.Second / time.Duration(fps)
}

// MainLoop runs the window until it closes, then removes and destroys the
// scene and releases the window. It may only be called once; later calls
// return ErrLoopAlreadyStarted and do nothing else.
func (w *Window) MainLoop() error {
	if w.loopStarted || w.destroyed {
		return ErrLoopAlreadyStarted
	}
	w.loopStarted = true
	defer w.Destroy()

	w.logger.Debugf("main loop started at %d fps", w.TargetFramerate)
	for w.step() {
	}
	w.logger.Debugf("main loop exited after %d frames", w.frame.Time.Frames)
	return nil
}

// step ticks when the deadline has passed, then waits for events until the
// next one. It reports false once the window should close.
func (w *Window) step() bool {
	if !w.ticked || !time.Now().Before(w.nextTick) {
		if !w.tick() || !w.runActions() {
			return false
		}
	}
	for _, ev := range w.native.WaitEvents(w.nextTick) {
		w.handleEvent(ev)
		if !w.runActions() {
			return false
		}
	}
	return true
}

func (w *Window) handleEvent(ev Event) {
	switch ev := ev.(type) {
	case CloseRequestedEvent:
		w.logger.Debugf("close requested")
		w.invoke(func(cb WindowCallback) { cb.OnClose(w) })
	case ResizeEvent:
		w.frame.Display.Resolution = [2]uint32{ev.Width, ev.Height}
		w.invoke(func(cb WindowCallback) { cb.OnResize(w, Physical(ev.Width, ev.Height)) })
	case MoveEvent:
		w.frame.Display.Position = [2]int32{ev.X, ev.Y}
		w.invoke(func(cb WindowCallback) { cb.OnMove(w, PhysicalPosition(ev.X, ev.Y)) })
	case KeyEvent:
		w.frame.Input.record(ev)
	}
}

// tick runs one frame. It reports false when a Close was queued by the
// window's OnTick, in which case nothing is rendered.
func (w *Window) tick() bool {
	now := time.Now()
	if w.ticked {
		w.frame.Time.Delta = now.Sub(w.frame.Time.FrameTime)
		w.frame.Time.Frames++
	} else {
		w.frame.Time.Delta = 0
		w.frame.Time.Frames = 0
		w.ticked = true
	}
	w.frame.Time.FrameTime = now
	w.nextTick = now.Add(w.frameInterval())

	w.invoke(func(cb WindowCallback) { cb.OnTick(w, &w.frame) })
	if !w.runActions() {
		return false
	}

	if scene := w.scene; scene != nil {
		scene.tickCallbacks(&w.frame)
		w.applyPendingScene()
		if w.scene == scene {
			scene.tickObjects(&w.frame)
		}
	}
	if scene := w.scene; scene != nil && !scene.Destroyed() {
		w.render(scene)
	}

	w.frame.Input.endFrame()
	return true
}

func (w *Window) render(scene *Scene) {
	target, err := w.backend.BeginFrame()
	if err != nil {
		w.presentFailed(err)
		return
	}
	if err := scene.render(target, w); err != nil {
		w.logger.Errorf("render frame %d: %v", w.frame.Time.Frames, err)
	}
	if err := target.Finish(); err != nil {
		w.presentFailed(err)
	}
}

// presentFailed reports a lost context to OnError and closes the window.
// Presenting the same frame twice is a programming error and panics.
func (w *Window) presentFailed(err error) {
	switch {
	case errors.Is(err, ErrAlreadyPresented):
		panic("lumen: frame presented more than once: " + err.Error())
	case errors.Is(err, ErrContextLost):
		w.logger.Errorf("gpu context lost: %v", err)
		w.invoke(func(cb WindowCallback) { cb.OnError(w, RuntimeError{Kind: RuntimeContextLost, Err: err}) })
		w.Close()
	default:
		w.logger.Errorf("present frame %d: %v", w.frame.Time.Frames, err)
	}
}

// Destroy removes and destroys the active scene and releases the backend and
// native window. MainLoop calls it on exit; it is safe to call more than once.
func (w *Window) Destroy() {
	if w.destroyed {
		return
	}
	w.destroyed = true
	w.SetScene(nil)
	w.backend.Release()
	w.native.Destroy()
	w.logger.Debugf("window destroyed")
}

package lumen

import (
	"math"
)

type windowActionKind int

const (
	actionClose windowActionKind = iota
	actionSetTitle
	actionUpdatePosition
	actionUpdateResolution
)

// windowAction is a request made during a callback, applied once the
// callback has returned.
type windowAction struct {
	kind  windowActionKind
	title string
}

// Close asks the window to stop. The loop exits after the current callback
// returns; nothing is rendered after a close.
func (w *Window) Close() {
	w.actions = append(w.actions, windowAction{kind: actionClose})
}

// SetTitle retitles the window once the current callback returns.
func (w *Window) SetTitle(title string) {
	w.actions = append(w.actions, windowAction{kind: actionSetTitle, title: title})
}

// SetResolution resizes the window now and refreshes Frame.Display once the
// current callback returns.
func (w *Window) SetResolution(res Resolution) {
	switch res.Kind {
	case ResolutionFullscreen:
		w.native.SetFullscreen(true)
	case ResolutionLogical:
		scale := w.native.ScaleFactor()
		w.native.SetFullscreen(false)
		w.native.SetInnerSize(uint32(math.Round(res.Width*scale)), uint32(math.Round(res.Height*scale)))
	default:
		w.native.SetFullscreen(false)
		w.native.SetInnerSize(uint32(res.Width), uint32(res.Height))
	}
	w.actions = append(w.actions, windowAction{kind: actionUpdateResolution})
}

// SetPosition moves the window's outer frame now and refreshes Frame.Display
// once the current callback returns.
func (w *Window) SetPosition(pos Position) {
	x, y := pos.X, pos.Y
	if pos.Kind == PositionLogical {
		scale := w.native.ScaleFactor()
		x, y = math.Round(x*scale), math.Round(y*scale)
	}
	w.native.SetOuterPosition(int32(x), int32(y))
	w.actions = append(w.actions, windowAction{kind: actionUpdatePosition})
}

// runActions drains the queue in order. It reports false when a Close was
// found; anything queued after the Close is dropped.
func (w *Window) runActions() bool {
	actions := w.actions
	w.actions = nil
	for _, a := range actions {
		switch a.kind {
		case actionClose:
			w.logger.Debugf("window close requested")
			return false
		case actionSetTitle:
			w.title = a.title
			w.native.SetTitle(a.title)
		case actionUpdatePosition:
			w.refreshPosition()
		case actionUpdateResolution:
			width, height := w.native.InnerSize()
			w.frame.Display.Resolution = [2]uint32{width, height}
		}
	}
	return true
}

func (w *Window) refreshPosition() {
	x, y, err := w.native.InnerPosition()
	if err != nil {
		x, y = 0, 0
	}
	w.frame.Display.Position = [2]int32{x, y}
}

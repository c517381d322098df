package lumen

import (
	"image"
	"time"
)

type ResolutionKind int

const (
	ResolutionPhysical ResolutionKind = iota
	ResolutionLogical
	ResolutionFullscreen
)

// Resolution is a window size in physical pixels, in logical (DPI-scaled)
// units, or borderless fullscreen.
type Resolution struct {
	Kind          ResolutionKind
	Width, Height float64
}

func Physical(width, height uint32) Resolution {
	return Resolution{Kind: ResolutionPhysical, Width: float64(width), Height: float64(height)}
}

func Logical(width, height float64) Resolution {
	return Resolution{Kind: ResolutionLogical, Width: width, Height: height}
}

func Fullscreen() Resolution {
	return Resolution{Kind: ResolutionFullscreen}
}

type PositionKind int

const (
	PositionPhysical PositionKind = iota
	PositionLogical
)

type Position struct {
	Kind PositionKind
	X, Y float64
}

func PhysicalPosition(x, y int32) Position {
	return Position{Kind: PositionPhysical, X: float64(x), Y: float64(y)}
}

func LogicalPosition(x, y float64) Position {
	return Position{Kind: PositionLogical, X: x, Y: y}
}

// Event is produced by a NativeWindow: ResizeEvent, MoveEvent,
// CloseRequestedEvent or KeyEvent.
type Event interface {
	isEvent()
}

type ResizeEvent struct {
	Width, Height uint32
}

type MoveEvent struct {
	X, Y int32
}

type CloseRequestedEvent struct{}

// KeyEvent is a raw key state change. Key is KeyUnknown when the key has no
// logical mapping.
type KeyEvent struct {
	ScanCode ScanCode
	Key      KeyCode
	Pressed  bool
}

func (ResizeEvent) isEvent()         {}
func (MoveEvent) isEvent()           {}
func (CloseRequestedEvent) isEvent() {}
func (KeyEvent) isEvent()            {}

// NativeWindow is the OS window and its event source.
type NativeWindow interface {
	SetTitle(title string)
	// SetIcon installs img as the window icon. Platform failures are returned
	// as *IconError.
	SetIcon(img image.Image) error
	SetInnerSize(width, height uint32)
	SetOuterPosition(x, y int32)
	SetFullscreen(fullscreen bool)
	// ScaleFactor converts logical units to physical pixels.
	ScaleFactor() float64
	InnerSize() (width, height uint32)
	// InnerPosition fails on platforms that cannot report window positions.
	InnerPosition() (x, y int32, err error)
	// WaitEvents blocks until an event arrives or deadline passes and returns
	// the events gathered. It never blocks past deadline.
	WaitEvents(deadline time.Time) []Event
	Destroy()
}

// Platform creates windows together with the GPU backend drawing into them.
// Failures are *WindowCreationError.
type Platform interface {
	CreateWindow(res Resolution, title string) (NativeWindow, Backend, error)
}

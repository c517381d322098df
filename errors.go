package lumen

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrContextLost is returned by a Backend or Target when the GPU context
	// (surface, device) is gone and the frame cannot be presented.
	ErrContextLost = errors.New("gpu context lost")
	// ErrAlreadyPresented is returned when a Target is finished twice.
	ErrAlreadyPresented = errors.New("frame already presented")
	// ErrLoopAlreadyStarted is returned by MainLoop on every call after the first.
	ErrLoopAlreadyStarted = errors.New("main loop already started")
	// ErrNotFound is wrapped by the Scene lookups that return an error.
	ErrNotFound = errors.New("not found")
)

type WindowCreationErrorKind int

const (
	WindowCreationOs WindowCreationErrorKind = iota
	WindowCreationNoSupportedBackend
	WindowCreationPlatformSpecific
	WindowCreationMultiple
)

// WindowCreationError reports why a window or its display surface could not
// be created. Multiple carries the individual failures when the platform
// tried several configurations.
type WindowCreationError struct {
	Kind     WindowCreationErrorKind
	Message  string
	Multiple []*WindowCreationError
	Err      error
}

func (e *WindowCreationError) Error() string {
	switch e.Kind {
	case WindowCreationNoSupportedBackend:
		return "window creation: no supported backend: " + e.Message
	case WindowCreationPlatformSpecific:
		return "window creation: platform error: " + e.Message
	case WindowCreationMultiple:
		parts := make([]string, 0, len(e.Multiple))
		for _, m := range e.Multiple {
			parts = append(parts, m.Error())
		}
		return "window creation: " + strings.Join(parts, "; ")
	default:
		return "window creation: os error: " + e.Message
	}
}

func (e *WindowCreationError) Unwrap() error { return e.Err }

type DecodeErrorKind int

const (
	DecodeIo DecodeErrorKind = iota
	DecodeFormat
)

// DecodeError is returned by the model and image loaders. Io means the file
// could not be opened or read; Format means its contents were not understood.
type DecodeError struct {
	Kind DecodeErrorKind
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	kind := "format"
	if e.Kind == DecodeIo {
		kind = "io"
	}
	return fmt.Sprintf("decode %s (%s): %v", e.Path, kind, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

type AssetCreationErrorKind int

const (
	AssetProgram AssetCreationErrorKind = iota
	AssetTexture
)

// AssetCreationError reports a failure to realize a GPU-side resource.
type AssetCreationError struct {
	Kind  AssetCreationErrorKind
	Label string
	Err   error
}

func (e *AssetCreationError) Error() string {
	if e.Kind == AssetTexture {
		return fmt.Sprintf("create texture %q: %v", e.Label, e.Err)
	}
	return fmt.Sprintf("create program %q: %v", e.Label, e.Err)
}

func (e *AssetCreationError) Unwrap() error { return e.Err }

type IconErrorKind int

const (
	IconIo IconErrorKind = iota
	IconFormat
	IconBad
	IconOs
)

type IconError struct {
	Kind IconErrorKind
	Err  error
}

func (e *IconError) Error() string {
	switch e.Kind {
	case IconIo:
		return fmt.Sprintf("set icon: io: %v", e.Err)
	case IconFormat:
		return fmt.Sprintf("set icon: image: %v", e.Err)
	case IconBad:
		return fmt.Sprintf("set icon: bad icon: %v", e.Err)
	default:
		return fmt.Sprintf("set icon: os: %v", e.Err)
	}
}

func (e *IconError) Unwrap() error { return e.Err }

type RuntimeErrorKind int

const (
	RuntimeContextLost RuntimeErrorKind = iota
)

// RuntimeError is handed to WindowCallback.OnError when something goes wrong
// while the loop is running.
type RuntimeError struct {
	Kind RuntimeErrorKind
	Err  error
}

func (e RuntimeError) Error() string {
	return fmt.Sprintf("window runtime error: %v", e.Err)
}

func (e RuntimeError) Unwrap() error { return e.Err }

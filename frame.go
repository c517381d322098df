package lumen

import (
	"maps"
	"time"
)

// Input tracks which keys are held and which changed during the current
// frame. The "this frame" maps record true for a press and false for a
// release and are cleared at the end of every tick.
type Input struct {
	scanCodes map[ScanCode]bool
	keyCodes  map[KeyCode]bool

	scanCodesThisFrame map[ScanCode]bool
	keyCodesThisFrame  map[KeyCode]bool
}

func newInput() Input {
	return Input{
		scanCodes:          make(map[ScanCode]bool),
		keyCodes:           make(map[KeyCode]bool),
		scanCodesThisFrame: make(map[ScanCode]bool),
		keyCodesThisFrame:  make(map[KeyCode]bool),
	}
}

func (in *Input) IsScanCodePressed(code ScanCode) bool {
	return in.scanCodes[code]
}

func (in *Input) IsKeyPressed(key KeyCode) bool {
	return in.keyCodes[key]
}

func (in *Input) IsScanCodePressedThisFrame(code ScanCode) bool {
	pressed, ok := in.scanCodesThisFrame[code]
	return ok && pressed
}

func (in *Input) IsScanCodeReleasedThisFrame(code ScanCode) bool {
	pressed, ok := in.scanCodesThisFrame[code]
	return ok && !pressed
}

func (in *Input) IsKeyPressedThisFrame(key KeyCode) bool {
	pressed, ok := in.keyCodesThisFrame[key]
	return ok && pressed
}

func (in *Input) IsKeyReleasedThisFrame(key KeyCode) bool {
	pressed, ok := in.keyCodesThisFrame[key]
	return ok && !pressed
}

func (in *Input) record(ev KeyEvent) {
	in.scanCodes[ev.ScanCode] = ev.Pressed
	in.scanCodesThisFrame[ev.ScanCode] = ev.Pressed
	if ev.Key != KeyUnknown {
		in.keyCodes[ev.Key] = ev.Pressed
		in.keyCodesThisFrame[ev.Key] = ev.Pressed
	}
}

func (in *Input) endFrame() {
	clear(in.scanCodesThisFrame)
	clear(in.keyCodesThisFrame)
}

func (in Input) clone() Input {
	return Input{
		scanCodes:          maps.Clone(in.scanCodes),
		keyCodes:           maps.Clone(in.keyCodes),
		scanCodesThisFrame: maps.Clone(in.scanCodesThisFrame),
		keyCodesThisFrame:  maps.Clone(in.keyCodesThisFrame),
	}
}

type Time struct {
	// Frames counts ticks since the loop started; the first tick is frame 0.
	Frames    uint64
	Delta     time.Duration
	FrameTime time.Time
}

type Display struct {
	Resolution [2]uint32
	Position   [2]int32
}

func (d Display) AspectRatio() float64 {
	if d.Resolution[1] == 0 {
		return 0
	}
	return float64(d.Resolution[0]) / float64(d.Resolution[1])
}

// Frame is the per-tick input, timing and display state handed to callbacks.
type Frame struct {
	Input   Input
	Time    Time
	Display Display
}

// Clone returns a deep copy; callbacks that keep a frame past the tick should
// hold a clone.
func (f *Frame) Clone() Frame {
	out := *f
	out.Input = f.Input.clone()
	return out
}

package lumen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInput_PressedAndThisFrame(t *testing.T) {
	in := newInput()
	in.record(KeyEvent{ScanCode: 30, Key: KeyA, Pressed: true})
	in.record(KeyEvent{ScanCode: 99, Key: KeyUnknown, Pressed: true})

	assert.True(t, in.IsKeyPressed(KeyA))
	assert.True(t, in.IsScanCodePressed(30))
	assert.True(t, in.IsKeyPressedThisFrame(KeyA))
	assert.False(t, in.IsKeyReleasedThisFrame(KeyA))
	assert.True(t, in.IsScanCodePressed(99))
	assert.False(t, in.IsKeyPressed(KeyUnknown))

	in.endFrame()
	assert.True(t, in.IsKeyPressed(KeyA))
	assert.False(t, in.IsKeyPressedThisFrame(KeyA))
	assert.False(t, in.IsScanCodePressedThisFrame(30))

	in.record(KeyEvent{ScanCode: 30, Key: KeyA, Pressed: false})
	assert.False(t, in.IsKeyPressed(KeyA))
	assert.True(t, in.IsKeyReleasedThisFrame(KeyA))
	assert.True(t, in.IsScanCodeReleasedThisFrame(30))
	assert.False(t, in.IsScanCodePressedThisFrame(30))
}

func TestFrame_CloneIsIndependent(t *testing.T) {
	f := &Frame{Input: newInput()}
	f.Input.record(KeyEvent{ScanCode: 1, Key: KeySpace, Pressed: true})
	f.Display.Resolution = [2]uint32{640, 480}

	c := f.Clone()
	f.Input.endFrame()
	f.Input.record(KeyEvent{ScanCode: 1, Key: KeySpace, Pressed: false})

	assert.True(t, c.Input.IsKeyPressed(KeySpace))
	assert.True(t, c.Input.IsKeyPressedThisFrame(KeySpace))
	assert.Equal(t, [2]uint32{640, 480}, c.Display.Resolution)
}

func TestDisplay_AspectRatio(t *testing.T) {
	assert.InDelta(t, 4.0/3.0, Display{Resolution: [2]uint32{640, 480}}.AspectRatio(), 1e-12)
	assert.Equal(t, 0.0, Display{}.AspectRatio())
}

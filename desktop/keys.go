package desktop

import (
	"github.com/gekko3d/lumen"
	"github.com/go-gl/glfw/v3.3/glfw"
)

var glfwToKey = map[glfw.Key]lumen.KeyCode{
	glfw.KeyA:            lumen.KeyA,
	glfw.KeyB:            lumen.KeyB,
	glfw.KeyC:            lumen.KeyC,
	glfw.KeyD:            lumen.KeyD,
	glfw.KeyE:            lumen.KeyE,
	glfw.KeyF:            lumen.KeyF,
	glfw.KeyG:            lumen.KeyG,
	glfw.KeyH:            lumen.KeyH,
	glfw.KeyI:            lumen.KeyI,
	glfw.KeyJ:            lumen.KeyJ,
	glfw.KeyK:            lumen.KeyK,
	glfw.KeyL:            lumen.KeyL,
	glfw.KeyM:            lumen.KeyM,
	glfw.KeyN:            lumen.KeyN,
	glfw.KeyO:            lumen.KeyO,
	glfw.KeyP:            lumen.KeyP,
	glfw.KeyQ:            lumen.KeyQ,
	glfw.KeyR:            lumen.KeyR,
	glfw.KeyS:            lumen.KeyS,
	glfw.KeyT:            lumen.KeyT,
	glfw.KeyU:            lumen.KeyU,
	glfw.KeyV:            lumen.KeyV,
	glfw.KeyW:            lumen.KeyW,
	glfw.KeyX:            lumen.KeyX,
	glfw.KeyY:            lumen.KeyY,
	glfw.KeyZ:            lumen.KeyZ,
	glfw.Key0:            lumen.Key0,
	glfw.Key1:            lumen.Key1,
	glfw.Key2:            lumen.Key2,
	glfw.Key3:            lumen.Key3,
	glfw.Key4:            lumen.Key4,
	glfw.Key5:            lumen.Key5,
	glfw.Key6:            lumen.Key6,
	glfw.Key7:            lumen.Key7,
	glfw.Key8:            lumen.Key8,
	glfw.Key9:            lumen.Key9,
	glfw.KeySpace:        lumen.KeySpace,
	glfw.KeyEnter:        lumen.KeyEnter,
	glfw.KeyEscape:       lumen.KeyEscape,
	glfw.KeyTab:          lumen.KeyTab,
	glfw.KeyBackspace:    lumen.KeyBackspace,
	glfw.KeyInsert:       lumen.KeyInsert,
	glfw.KeyDelete:       lumen.KeyDelete,
	glfw.KeyRight:        lumen.KeyRight,
	glfw.KeyLeft:         lumen.KeyLeft,
	glfw.KeyDown:         lumen.KeyDown,
	glfw.KeyUp:           lumen.KeyUp,
	glfw.KeyF1:           lumen.KeyF1,
	glfw.KeyF2:           lumen.KeyF2,
	glfw.KeyF3:           lumen.KeyF3,
	glfw.KeyF4:           lumen.KeyF4,
	glfw.KeyF5:           lumen.KeyF5,
	glfw.KeyF6:           lumen.KeyF6,
	glfw.KeyF7:           lumen.KeyF7,
	glfw.KeyF8:           lumen.KeyF8,
	glfw.KeyF9:           lumen.KeyF9,
	glfw.KeyF10:          lumen.KeyF10,
	glfw.KeyF11:          lumen.KeyF11,
	glfw.KeyF12:          lumen.KeyF12,
	glfw.KeyMinus:        lumen.KeyMinus,
	glfw.KeyEqual:        lumen.KeyEqual,
	glfw.KeyKPAdd:        lumen.KeyKPPlus,
	glfw.KeyKPSubtract:   lumen.KeyKPMinus,
	glfw.KeyLeftShift:    lumen.KeyLeftShift,
	glfw.KeyRightShift:   lumen.KeyRightShift,
	glfw.KeyLeftControl:  lumen.KeyLeftControl,
	glfw.KeyRightControl: lumen.KeyRightControl,
	glfw.KeyLeftAlt:      lumen.KeyLeftAlt,
	glfw.KeyRightAlt:     lumen.KeyRightAlt,
}

func keyFromGlfw(key glfw.Key) lumen.KeyCode {
	if code, ok := glfwToKey[key]; ok {
		return code
	}
	return lumen.KeyUnknown
}

// keyEvent converts a GLFW key callback. Repeats carry no state change and
// are dropped.
func keyEvent(key glfw.Key, scancode int, action glfw.Action) (lumen.KeyEvent, bool) {
	switch action {
	case glfw.Press, glfw.Release:
		return lumen.KeyEvent{
			ScanCode: lumen.ScanCode(scancode),
			Key:      keyFromGlfw(key),
			Pressed:  action == glfw.Press,
		}, true
	default:
		return lumen.KeyEvent{}, false
	}
}

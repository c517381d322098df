// Command reels is a small fruit-machine demo: press space to spin the three
// reels, F11 to toggle fullscreen and escape to quit.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand/v2"
	"runtime"

	"github.com/gekko3d/lumen"
	"github.com/gekko3d/lumen/desktop"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

func init() {
	// GLFW must run on the main thread
	runtime.LockOSThread()
}

const reelCount = 3

var reelColours = [reelCount][4]float32{
	{0.9, 0.2, 0.2, 1},
	{0.2, 0.8, 0.3, 1},
	{0.2, 0.4, 0.9, 1},
}

func main() {
	configPath := flag.String("config", "", "window config YAML file")
	debug := flag.Bool("debug", false, "enable debug logging")
	texturePath := flag.String("texture", "", "image drawn on the stand")
	modelPath := flag.String("model", "", "OBJ model placed above the reels")
	flag.Parse()

	cfg := lumen.NewWindowConfig()
	cfg.Title = "Reels"
	if *configPath != "" {
		loaded, err := lumen.LoadWindowConfig(*configPath)
		if err != nil {
			log.Fatal(err)
		}
		cfg = loaded
	}
	if *debug {
		cfg.Debug = true
	}
	logger := lumen.NewDefaultLogger(cfg.LogPrefix, cfg.Debug)
	cfg.Logger = logger

	platform, err := desktop.New(logger)
	if err != nil {
		log.Fatal(err)
	}
	defer platform.Terminate()

	window, err := lumen.NewWindow(platform, nil, cfg)
	if err != nil {
		log.Fatal(err)
	}

	scene, err := newReelScene(window.Backend(), *texturePath, *modelPath)
	if err != nil {
		logger.Errorf("build scene: %v", err)
		window.Destroy()
		return
	}
	window.SetScene(scene)

	if err := window.MainLoop(); err != nil {
		logger.Errorf("main loop: %v", err)
	}
}

func newReelScene(backend lumen.Backend, texturePath, modelPath string) (*lumen.Scene, error) {
	front := lumen.NewCamera(lumen.FromPosition(0, 0, -8), lumen.DefaultFov)
	front.SetClearColour(&[4]float32{0.08, 0.08, 0.12, 1})
	detail := lumen.NewCamera(lumen.FromPosition(0, 0, -4), 4)
	detail.SetClearColour(&[4]float32{0.15, 0.1, 0.1, 1})

	root := lumen.NewSplitView(
		lumen.SplitPane{View: front, Left: -1, Right: 0.5, Bottom: -1, Top: 1},
		lumen.SplitPane{View: detail, Left: 0.5, Right: 1, Bottom: -1, Top: 1},
	)
	scene := lumen.NewScene(&machine{}, root)

	for i := range reelCount {
		x := float64(i-1) * 2.5
		reel := lumen.NewGameObject(&reelBehaviour{index: i, base: lumen.FromPosition(x, 0, 0)}, fmt.Sprintf("reel-%d", i), lumen.FromPosition(x, 0, 0))
		reel.AddMesh(lumen.FromScale(1, 1, 0.6), lumen.Cube(lumen.NewFlatColour3D(reelColours[i])))
		scene.AddObject(reel)
	}

	stand := lumen.NewGameObject(nil, "stand", lumen.FromPosition(0, -2, 0).Mul(lumen.FromEulerAngles(math.Pi/2, 0, 0)))
	standShader := lumen.Shader(lumen.NewFlatColour3D([4]float32{0.6, 0.5, 0.2, 1}))
	if texturePath != "" {
		texture, err := lumen.NewTexture(texturePath, backend)
		if err != nil {
			return nil, err
		}
		standShader = lumen.NewTextured3D(texture)
	}
	stand.AddMesh(lumen.FromScale(4, 4, 1), lumen.Plane(true, standShader))
	scene.AddObject(stand)

	if modelPath != "" {
		mesh, err := lumen.LoadObj(modelPath, lumen.NewFlatColour3D([4]float32{1, 0.85, 0.1, 1}))
		if err != nil {
			return nil, err
		}
		model := lumen.NewGameObject(&spinner{}, "model", lumen.FromPosition(0, 2.5, 0))
		model.AddMesh(lumen.FromScale(0.5, 0.5, 0.5), mesh)
		scene.AddObject(model)
	}
	return scene, nil
}

// machine handles the keys that act on the whole window.
type machine struct {
	lumen.NopSceneCallback
	window     *lumen.Window
	fullscreen bool
	spins      int
}

func (m *machine) OnInsert(_ *lumen.Scene, w *lumen.Window) { m.window = w }
func (m *machine) OnRemove(*lumen.Scene, *lumen.Window)     { m.window = nil }

func (m *machine) OnTick(_ *lumen.Scene, frame *lumen.Frame) {
	if m.window == nil {
		return
	}
	in := &frame.Input
	switch {
	case in.IsKeyPressedThisFrame(lumen.KeyEscape):
		m.window.Close()
	case in.IsKeyPressedThisFrame(lumen.KeyF11):
		m.fullscreen = !m.fullscreen
		if m.fullscreen {
			m.window.SetResolution(lumen.Fullscreen())
		} else {
			m.window.SetResolution(lumen.Physical(lumen.DefaultWindowWidth, lumen.DefaultWindowHeight))
		}
	case in.IsKeyPressedThisFrame(lumen.KeySpace):
		m.spins++
		m.window.SetTitle(fmt.Sprintf("Reels: spin %d", m.spins))
	}
}

// reelBehaviour spins its reel about the x axis when space is pressed and
// eases it to rest on one of four faces.
type reelBehaviour struct {
	lumen.NopGameObjectCallback
	index int
	base  lumen.Transform
	angle float32
	spin  *gween.Tween
}

func (r *reelBehaviour) OnTick(obj *lumen.GameObject, frame *lumen.Frame) {
	if r.spin == nil && frame.Input.IsKeyPressedThisFrame(lumen.KeySpace) {
		face := rand.IntN(4)
		turns := float32(3 + r.index)
		stop := float32(math.Round(float64(r.angle)/(math.Pi/2))) * math.Pi / 2
		target := stop + turns*2*math.Pi + float32(face)*math.Pi/2
		r.spin = gween.New(r.angle, target, 1.5+0.5*float32(r.index), ease.OutCubic)
	}
	if r.spin == nil {
		return
	}
	angle, done := r.spin.Update(float32(frame.Time.Delta.Seconds()))
	r.angle = float32(math.Mod(float64(angle), 2*math.Pi))
	if done {
		r.spin = nil
	}
	obj.Transform = r.base.Mul(lumen.FromEulerAngles(float64(r.angle), 0, 0))
}

type spinner struct {
	lumen.NopGameObjectCallback
	angle float64
}

func (s *spinner) OnTick(obj *lumen.GameObject, frame *lumen.Frame) {
	x, y, z := obj.Transform.Position()
	s.angle += frame.Time.Delta.Seconds()
	obj.Transform = lumen.FromPosition(x, y, z).Mul(lumen.FromEulerAngles(0, s.angle, 0))
}

package lumen

import (
	"errors"
	"image"
	"time"
)

type fakeProgram struct {
	src      ShaderSource
	released bool
}

func (p *fakeProgram) Release() { p.released = true }

type fakeGeometry struct {
	vertices []Vertex
	indices  []uint32
	released bool
}

func (g *fakeGeometry) IndexCount() uint32 { return uint32(len(g.indices)) }
func (g *fakeGeometry) Release()           { g.released = true }

type fakeGpuTexture struct {
	w, h     uint32
	released bool
}

func (t *fakeGpuTexture) Size() (uint32, uint32) { return t.w, t.h }
func (t *fakeGpuTexture) Release()               { t.released = true }

// fakeBackend records every resource and draw instead of touching a GPU.
type fakeBackend struct {
	width, height uint32

	programs   []*fakeProgram
	geometries []*fakeGeometry
	textures   []*fakeGpuTexture
	targets    []*fakeTarget

	programErr error
	beginErr   error
	finishErr  error
	released   bool
}

func newFakeBackend(width, height uint32) *fakeBackend {
	return &fakeBackend{width: width, height: height}
}

func (b *fakeBackend) CreateProgram(src ShaderSource) (Program, error) {
	if b.programErr != nil {
		return nil, b.programErr
	}
	p := &fakeProgram{src: src}
	b.programs = append(b.programs, p)
	return p, nil
}

func (b *fakeBackend) CreateGeometry(vertices []Vertex, indices []uint32) (Geometry, error) {
	g := &fakeGeometry{vertices: vertices, indices: indices}
	b.geometries = append(b.geometries, g)
	return g, nil
}

func (b *fakeBackend) CreateTexture(img *image.RGBA) (GpuTexture, error) {
	size := img.Bounds().Size()
	t := &fakeGpuTexture{w: uint32(size.X), h: uint32(size.Y)}
	b.textures = append(b.textures, t)
	return t, nil
}

func (b *fakeBackend) BeginFrame() (Target, error) {
	if b.beginErr != nil {
		return nil, b.beginErr
	}
	t := &fakeTarget{width: b.width, height: b.height, finishErr: b.finishErr}
	b.targets = append(b.targets, t)
	return t, nil
}

func (b *fakeBackend) Release() { b.released = true }

func (b *fakeBackend) allDraws() []*DrawCall {
	var out []*DrawCall
	for _, t := range b.targets {
		out = append(out, t.draws...)
	}
	return out
}

type fakeTarget struct {
	width, height uint32
	draws         []*DrawCall
	depthClears   int
	finished      int
	finishErr     error
}

func (t *fakeTarget) Dimensions() (uint32, uint32) { return t.width, t.height }
func (t *fakeTarget) ClearDepth(float32)           { t.depthClears++ }

func (t *fakeTarget) Draw(call *DrawCall) error {
	t.draws = append(t.draws, call)
	return nil
}

func (t *fakeTarget) Finish() error {
	t.finished++
	if t.finished > 1 {
		return ErrAlreadyPresented
	}
	return t.finishErr
}

// fakeNative replays scripted event batches, one per WaitEvents call, and
// sleeps until the deadline once the script runs out.
type fakeNative struct {
	width, height uint32
	x, y          int32
	scale         float64
	positionErr   error
	iconErr       error

	title      string
	fullscreen bool
	icon       image.Image
	script     [][]Event
	waits      int
	destroyed  bool
}

func newFakeNative(width, height uint32) *fakeNative {
	return &fakeNative{width: width, height: height, scale: 1}
}

func (n *fakeNative) SetTitle(title string) { n.title = title }

func (n *fakeNative) SetIcon(img image.Image) error {
	if n.iconErr != nil {
		return n.iconErr
	}
	n.icon = img
	return nil
}

func (n *fakeNative) SetInnerSize(width, height uint32) { n.width, n.height = width, height }
func (n *fakeNative) SetOuterPosition(x, y int32)       { n.x, n.y = x, y }
func (n *fakeNative) SetFullscreen(fullscreen bool)     { n.fullscreen = fullscreen }
func (n *fakeNative) ScaleFactor() float64              { return n.scale }
func (n *fakeNative) InnerSize() (uint32, uint32)       { return n.width, n.height }

func (n *fakeNative) InnerPosition() (int32, int32, error) {
	if n.positionErr != nil {
		return 0, 0, n.positionErr
	}
	return n.x, n.y, nil
}

func (n *fakeNative) WaitEvents(deadline time.Time) []Event {
	n.waits++
	if len(n.script) > 0 {
		batch := n.script[0]
		n.script = n.script[1:]
		return batch
	}
	time.Sleep(time.Until(deadline))
	return nil
}

func (n *fakeNative) Destroy() { n.destroyed = true }

type fakePlatform struct {
	native  *fakeNative
	backend *fakeBackend
	err     error

	gotRes   Resolution
	gotTitle string
}

func newFakePlatform() *fakePlatform {
	return &fakePlatform{
		native:  newFakeNative(800, 600),
		backend: newFakeBackend(800, 600),
	}
}

func (p *fakePlatform) CreateWindow(res Resolution, title string) (NativeWindow, Backend, error) {
	p.gotRes, p.gotTitle = res, title
	if p.err != nil {
		return nil, nil, p.err
	}
	return p.native, p.backend, nil
}

var errFake = errors.New("fake failure")

func testWindowConfig() WindowConfig {
	cfg := NewWindowConfig()
	cfg.TargetFramerate = 1000
	cfg.Logger = NewNopLogger()
	return cfg
}

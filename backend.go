package lumen

import (
	"image"
)

// ShaderSource is a WGSL module exposing vs_main and fs_main entry points.
type ShaderSource struct {
	Label string
	Code  string
}

// Program is a compiled shader program owned by the Shader that created it.
type Program interface {
	Release()
}

// Geometry is an uploaded vertex/index buffer pair.
type Geometry interface {
	IndexCount() uint32
	Release()
}

// GpuTexture is an uploaded 2D RGBA texture.
type GpuTexture interface {
	Size() (width, height uint32)
	Release()
}

type DepthTest int

const (
	DepthTestOff DepthTest = iota
	DepthTestLess
)

type CullMode int

const (
	CullNone CullMode = iota
	// CullBack discards clockwise triangles; counter-clockwise faces the camera.
	CullBack
)

// Rect is a pixel rectangle with its origin at the bottom-left corner of the
// render target.
type Rect struct {
	Left, Bottom  uint32
	Width, Height uint32
}

// DrawCall is one indexed triangle-list draw.
type DrawCall struct {
	Program  Program
	Geometry Geometry
	Uniforms UniformSet
	// Viewport and Scissor default to the whole target when nil.
	Viewport   *Rect
	Scissor    *Rect
	DepthTest  DepthTest
	DepthWrite bool
	Cull       CullMode
}

// Backend is the GPU device the window renders with.
type Backend interface {
	// CreateProgram compiles and links src. Compilation failures are returned
	// as errors, never panics.
	CreateProgram(src ShaderSource) (Program, error)
	CreateGeometry(vertices []Vertex, indices []uint32) (Geometry, error)
	CreateTexture(img *image.RGBA) (GpuTexture, error)
	// BeginFrame acquires the next render target. It returns ErrContextLost
	// when the surface can no longer be drawn to.
	BeginFrame() (Target, error)
	Release()
}

// Target is a frame being drawn.
type Target interface {
	Dimensions() (width, height uint32)
	ClearDepth(depth float32)
	Draw(call *DrawCall) error
	// Finish presents the frame. It returns ErrContextLost if the context was
	// lost and ErrAlreadyPresented if called more than once.
	Finish() error
}

package lumen

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// UniformValue is one of Mat4Uniform, Vec4Uniform or TextureUniform.
type UniformValue interface {
	isUniformValue()
}

type Mat4Uniform mgl32.Mat4

type Vec4Uniform mgl32.Vec4

type TextureUniform struct {
	Texture *Texture
}

func (Mat4Uniform) isUniformValue()    {}
func (Vec4Uniform) isUniformValue()    {}
func (TextureUniform) isUniformValue() {}

type Uniform struct {
	Name  string
	Value UniformValue
}

// UniformSet is the ordered list of named parameters for one draw. Backends
// pack non-texture values into a uniform block in this order.
type UniformSet []Uniform

func (s UniformSet) Get(name string) (UniformValue, bool) {
	for _, u := range s {
		if u.Name == name {
			return u.Value, true
		}
	}
	return nil, false
}

// UniformParams is everything a shader may need to compute its uniforms.
type UniformParams struct {
	Camera      Transform
	Mesh        Transform
	Object      Transform
	Fov         float32
	AspectRatio float32
	ZFar        float32
	ZNear       float32
}

// Shader computes per-draw uniforms and lazily realizes its GPU program.
type Shader interface {
	Source() ShaderSource
	ComputeUniforms(p UniformParams) UniformSet
	// EnsureGpuResources creates the program on first use; afterwards it is a
	// no-op. Failures are *AssetCreationError.
	EnsureGpuResources(b Backend) error
	// Program returns nil until EnsureGpuResources has succeeded.
	Program() Program
	Release()
}

// shaderProgram holds the source and the lazily created program shared by
// every shader variant.
type shaderProgram struct {
	source  ShaderSource
	program Program
}

func (s *shaderProgram) Source() ShaderSource { return s.source }

func (s *shaderProgram) Program() Program { return s.program }

func (s *shaderProgram) EnsureGpuResources(b Backend) error {
	if s.program != nil {
		return nil
	}
	program, err := b.CreateProgram(s.source)
	if err != nil {
		return &AssetCreationError{Kind: AssetProgram, Label: s.source.Label, Err: err}
	}
	s.program = program
	return nil
}

// Release drops the program; the next EnsureGpuResources rebuilds it.
func (s *shaderProgram) Release() {
	if s.program != nil {
		s.program.Release()
		s.program = nil
	}
}

// transformUniforms emits the four matrices every variant's vertex stage uses.
// The view matrix is the inverted camera pose.
func transformUniforms(p UniformParams, projection mgl32.Mat4) UniformSet {
	return UniformSet{
		{Name: "perspective_matrix", Value: Mat4Uniform(projection)},
		{Name: "view_matrix", Value: Mat4Uniform(p.Camera.Inverse().ToRenderMatrix())},
		{Name: "object_matrix", Value: Mat4Uniform(p.Object.ToRenderMatrix())},
		{Name: "mesh_matrix", Value: Mat4Uniform(p.Mesh.ToRenderMatrix())},
	}
}

// orthoProjection scales by the aspect ratio (height/width) on whichever axis
// is longer so a non-square viewport never stretches the image.
func orthoProjection(aspect, zfar float32) mgl32.Mat4 {
	sx := zfar * min(aspect, 1)
	sy := zfar * min(1/aspect, 1)
	return mgl32.Mat4{
		sx, 0, 0, 0,
		0, sy, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, zfar,
	}
}

// perspectiveProjection treats fov as a divisor of pi: the vertical field of
// view is pi/fov radians, so the default 3.0 is 60 degrees.
func perspectiveProjection(fov, aspect, zfar, znear float32) mgl32.Mat4 {
	f := float32(1 / math.Tan(math.Pi/float64(fov)/2))
	return mgl32.Mat4{
		f * aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (zfar + znear) / (zfar - znear), 1,
		0, 0, -(2 * zfar * znear) / (zfar - znear), 0,
	}
}

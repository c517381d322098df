package lumen

import (
	"github.com/go-gl/mathgl/mgl32"
)

// The vertex stage remaps clip-space z from [-w, w] to [0, w] because the
// projections are built for a -1..1 depth range.
const flatColourWGSL = `
struct Uniforms {
    perspective_matrix: mat4x4<f32>,
    view_matrix: mat4x4<f32>,
    object_matrix: mat4x4<f32>,
    mesh_matrix: mat4x4<f32>,
    colour: vec4<f32>,
};

@group(0) @binding(0) var<uniform> u: Uniforms;

struct VertexInput {
    @location(0) position: vec3<f32>,
    @location(1) normal: vec3<f32>,
    @location(2) uv: vec2<f32>,
};

@vertex
fn vs_main(in: VertexInput) -> @builtin(position) vec4<f32> {
    var clip = u.perspective_matrix * u.view_matrix * u.object_matrix * u.mesh_matrix * vec4<f32>(in.position, 1.0);
    clip.z = (clip.z + clip.w) * 0.5;
    return clip;
}

@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return u.colour;
}
`

type flatColour struct {
	shaderProgram
	colour mgl32.Vec4
}

func (s *flatColour) SetColour(colour [4]float32) {
	s.colour = mgl32.Vec4(colour)
}

func (s *flatColour) Colour() [4]float32 {
	return [4]float32(s.colour)
}

// FlatColour2D fills every triangle with one colour using an orthographic
// projection.
type FlatColour2D struct {
	flatColour
}

func NewFlatColour2D(colour [4]float32) *FlatColour2D {
	return &FlatColour2D{flatColour{
		shaderProgram: shaderProgram{source: ShaderSource{Label: "flat colour 2D", Code: flatColourWGSL}},
		colour:        mgl32.Vec4(colour),
	}}
}

func (s *FlatColour2D) ComputeUniforms(p UniformParams) UniformSet {
	out := transformUniforms(p, orthoProjection(p.AspectRatio, p.ZFar))
	return append(out, Uniform{Name: "colour", Value: Vec4Uniform(s.colour)})
}

// FlatColour3D fills every triangle with one colour using a perspective
// projection.
type FlatColour3D struct {
	flatColour
}

func NewFlatColour3D(colour [4]float32) *FlatColour3D {
	return &FlatColour3D{flatColour{
		shaderProgram: shaderProgram{source: ShaderSource{Label: "flat colour 3D", Code: flatColourWGSL}},
		colour:        mgl32.Vec4(colour),
	}}
}

func (s *FlatColour3D) ComputeUniforms(p UniformParams) UniformSet {
	out := transformUniforms(p, perspectiveProjection(p.Fov, p.AspectRatio, p.ZFar, p.ZNear))
	return append(out, Uniform{Name: "colour", Value: Vec4Uniform(s.colour)})
}

package lumen

import (
	"github.com/go-gl/mathgl/mgl32"
)

// The clear pass ignores vertex positions and reads the rectangle corners from
// the positions matrix, one column per vertex index.
const clearWGSL = `
struct Uniforms {
    positions: mat4x4<f32>,
    clear_colour: vec4<f32>,
};

@group(0) @binding(0) var<uniform> u: Uniforms;

struct VertexInput {
    @builtin(vertex_index) index: u32,
    @location(0) position: vec3<f32>,
    @location(1) normal: vec3<f32>,
    @location(2) uv: vec2<f32>,
};

@vertex
fn vs_main(in: VertexInput) -> @builtin(position) vec4<f32> {
    return u.positions[in.index];
}

@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return u.clear_colour;
}
`

var clearVertices = []Vertex{
	{Position: [3]float32{1, 1, 0}},
	{Position: [3]float32{-1, 1, 0}},
	{Position: [3]float32{1, -1, 0}},
	{Position: [3]float32{-1, -1, 0}},
}

var clearIndices = []uint32{
	0, 1, 2,
	2, 1, 3,
}

// clearPass draws a solid rectangle over part of the target. The backend's own
// clear covers the whole surface, which would wipe neighbouring split panes.
type clearPass struct {
	shaderProgram
	geometry Geometry
}

func newClearPass() *clearPass {
	return &clearPass{shaderProgram: shaderProgram{source: ShaderSource{Label: "clear", Code: clearWGSL}}}
}

func (c *clearPass) ensure(b Backend) error {
	if err := c.EnsureGpuResources(b); err != nil {
		return err
	}
	if c.geometry == nil {
		geometry, err := b.CreateGeometry(clearVertices, clearIndices)
		if err != nil {
			return &AssetCreationError{Kind: AssetProgram, Label: c.source.Label, Err: err}
		}
		c.geometry = geometry
	}
	return nil
}

func (c *clearPass) draw(target Target, colour [4]float32, r ViewRect) error {
	positions := mgl32.Mat4{
		r.Right, r.Top, 0, 1,
		r.Left, r.Top, 0, 1,
		r.Right, r.Bottom, 0, 1,
		r.Left, r.Bottom, 0, 1,
	}
	return target.Draw(&DrawCall{
		Program:  c.program,
		Geometry: c.geometry,
		Uniforms: UniformSet{
			{Name: "positions", Value: Mat4Uniform(positions)},
			{Name: "clear_colour", Value: Vec4Uniform(colour)},
		},
	})
}

func (c *clearPass) Release() {
	c.shaderProgram.Release()
	if c.geometry != nil {
		c.geometry.Release()
		c.geometry = nil
	}
}

package lumen

// UVs follow a bottom-left origin, so v is flipped before sampling.
const texturedWGSL = `
struct Uniforms {
    perspective_matrix: mat4x4<f32>,
    view_matrix: mat4x4<f32>,
    object_matrix: mat4x4<f32>,
    mesh_matrix: mat4x4<f32>,
};

@group(0) @binding(0) var<uniform> u: Uniforms;
@group(1) @binding(0) var tex: texture_2d<f32>;
@group(1) @binding(1) var tex_sampler: sampler;

struct VertexInput {
    @location(0) position: vec3<f32>,
    @location(1) normal: vec3<f32>,
    @location(2) uv: vec2<f32>,
};

struct VertexOutput {
    @builtin(position) clip: vec4<f32>,
    @location(0) uv: vec2<f32>,
};

@vertex
fn vs_main(in: VertexInput) -> VertexOutput {
    var out: VertexOutput;
    var clip = u.perspective_matrix * u.view_matrix * u.object_matrix * u.mesh_matrix * vec4<f32>(in.position, 1.0);
    clip.z = (clip.z + clip.w) * 0.5;
    out.clip = clip;
    out.uv = vec2<f32>(in.uv.x, 1.0 - in.uv.y);
    return out;
}

@fragment
fn fs_main(in: VertexOutput) -> @location(0) vec4<f32> {
    return textureSample(tex, tex_sampler, in.uv);
}
`

type textured struct {
	shaderProgram
	texture *Texture
}

// Texture returns the shader's reference to its texture.
func (s *textured) Texture() *Texture {
	return s.texture
}

// Release drops the program and this shader's texture reference.
func (s *textured) Release() {
	s.shaderProgram.Release()
	if s.texture != nil {
		s.texture.Release()
		s.texture = nil
	}
}

// Textured2D samples a texture using an orthographic projection. The shader
// takes its own reference to texture.
type Textured2D struct {
	textured
}

func NewTextured2D(texture *Texture) *Textured2D {
	return &Textured2D{textured{
		shaderProgram: shaderProgram{source: ShaderSource{Label: "textured 2D", Code: texturedWGSL}},
		texture:       texture.Clone(),
	}}
}

func (s *Textured2D) ComputeUniforms(p UniformParams) UniformSet {
	out := transformUniforms(p, orthoProjection(p.AspectRatio, p.ZFar))
	return append(out, Uniform{Name: "tex", Value: TextureUniform{Texture: s.texture}})
}

// Textured3D samples a texture using a perspective projection.
type Textured3D struct {
	textured
}

func NewTextured3D(texture *Texture) *Textured3D {
	return &Textured3D{textured{
		shaderProgram: shaderProgram{source: ShaderSource{Label: "textured 3D", Code: texturedWGSL}},
		texture:       texture.Clone(),
	}}
}

func (s *Textured3D) ComputeUniforms(p UniformParams) UniformSet {
	out := transformUniforms(p, perspectiveProjection(p.Fov, p.AspectRatio, p.ZFar, p.ZNear))
	return append(out, Uniform{Name: "tex", Value: TextureUniform{Texture: s.texture}})
}

package lumen

import (
	"image"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShader_EnsureGpuResourcesIsIdempotent(t *testing.T) {
	b := newFakeBackend(1, 1)
	shader := NewFlatColour2D([4]float32{1, 1, 1, 1})
	assert.Nil(t, shader.Program())

	require.NoError(t, shader.EnsureGpuResources(b))
	first := shader.Program()
	require.NoError(t, shader.EnsureGpuResources(b))

	assert.Len(t, b.programs, 1)
	assert.Same(t, first, shader.Program())
	assert.Equal(t, "flat colour 2D", b.programs[0].src.Label)
	assert.Contains(t, b.programs[0].src.Code, "fn vs_main")

	shader.Release()
	assert.Nil(t, shader.Program())
	require.NoError(t, shader.EnsureGpuResources(b))
	assert.Len(t, b.programs, 2)
}

func TestShader_ProgramFailureIsAssetError(t *testing.T) {
	b := newFakeBackend(1, 1)
	b.programErr = errFake

	err := NewFlatColour3D([4]float32{}).EnsureGpuResources(b)

	var ace *AssetCreationError
	require.ErrorAs(t, err, &ace)
	assert.Equal(t, AssetProgram, ace.Kind)
	assert.Equal(t, "flat colour 3D", ace.Label)
	assert.ErrorIs(t, err, errFake)
}

func TestShader_OrthoProjectionKeepsAspect(t *testing.T) {
	wide := orthoProjection(0.5, 10)
	assert.Equal(t, float32(5), wide[0])
	assert.Equal(t, float32(10), wide[5])
	assert.Equal(t, float32(10), wide[15])

	tall := orthoProjection(2, 10)
	assert.Equal(t, float32(10), tall[0])
	assert.Equal(t, float32(5), tall[5])
}

func TestShader_PerspectiveProjection(t *testing.T) {
	m := perspectiveProjection(3, 1, 1024, 0.1)

	f := float32(1 / math.Tan(math.Pi/6))
	assert.InDelta(t, f, m[0], 1e-5)
	assert.InDelta(t, f, m[5], 1e-5)
	assert.Equal(t, float32(1), m[11])
	assert.Equal(t, float32(0), m[15])

	// The near plane maps to -1 and the far plane to +1 after division.
	near := (m[10]*0.1 + m[14]) / 0.1
	far := (m[10]*1024 + m[14]) / 1024
	assert.InDelta(t, -1, near, 1e-4)
	assert.InDelta(t, 1, far, 1e-4)
}

func TestShader_FlatColourUniforms(t *testing.T) {
	shader := NewFlatColour3D([4]float32{1, 0, 0, 1})
	shader.SetColour([4]float32{0, 0, 1, 1})

	set := shader.ComputeUniforms(UniformParams{
		Camera:      FromPosition(0, 0, -3),
		Mesh:        Origin(),
		Object:      Origin(),
		Fov:         DefaultFov,
		AspectRatio: 1,
		ZFar:        DefaultZFar,
		ZNear:       DefaultZNear,
	})

	colour, ok := set.Get("colour")
	require.True(t, ok)
	assert.Equal(t, Vec4Uniform{0, 0, 1, 1}, colour)
	assert.Equal(t, [4]float32{0, 0, 1, 1}, shader.Colour())

	view, ok := set.Get("view_matrix")
	require.True(t, ok)
	assert.Equal(t, float32(3), view.(Mat4Uniform)[14])

	_, ok = set.Get("tex")
	assert.False(t, ok)
}

func TestShader_TexturedHoldsItsOwnReference(t *testing.T) {
	b := newFakeBackend(1, 1)
	tex, err := NewTextureFromImage("symbols", image.NewRGBA(image.Rect(0, 0, 4, 2)), b)
	require.NoError(t, err)

	shader := NewTextured2D(tex)
	assert.Equal(t, 2, tex.RefCount())

	set := shader.ComputeUniforms(UniformParams{AspectRatio: 1, ZFar: 1})
	v, ok := set.Get("tex")
	require.True(t, ok)
	assert.Same(t, tex.Handle(), v.(TextureUniform).Texture.Handle())

	tex.Release()
	assert.Equal(t, 1, tex.RefCount())
	assert.False(t, b.textures[0].released)

	shader.Release()
	assert.True(t, b.textures[0].released)
	assert.Nil(t, shader.Texture())
}

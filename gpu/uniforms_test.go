package gpu

import (
	"image"
	"testing"

	"github.com/gekko3d/lumen"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTexture struct{}

func (stubTexture) Size() (uint32, uint32) { return 1, 1 }
func (stubTexture) Release()               {}

// stubBackend only uploads textures.
type stubBackend struct {
	lumen.Backend
}

func (stubBackend) CreateTexture(*image.RGBA) (lumen.GpuTexture, error) { return stubTexture{}, nil }

func stubTextureNamed(t *testing.T, label string) *lumen.Texture {
	tex, err := lumen.NewTextureFromImage(label, image.NewRGBA(image.Rect(0, 0, 1, 1)), stubBackend{})
	require.NoError(t, err)
	return tex
}

func TestPackUniforms(t *testing.T) {
	first := stubTextureNamed(t, "first")
	second := stubTextureNamed(t, "second")
	set := lumen.UniformSet{
		{Name: "perspective_matrix", Value: lumen.Mat4Uniform(mgl32.Ident4())},
		{Name: "tex", Value: lumen.TextureUniform{Texture: first}},
		{Name: "colour", Value: lumen.Vec4Uniform{0.25, 0.5, 0.75, 1}},
		{Name: "other", Value: lumen.TextureUniform{Texture: second}},
	}

	block, texture := packUniforms(set)
	require.Len(t, block, 20)
	assert.Equal(t, []float32{1, 0, 0, 0}, block[:4])
	assert.Equal(t, []float32{0.25, 0.5, 0.75, 1}, block[16:])
	assert.Same(t, first, texture)
}

func TestPackUniforms_Empty(t *testing.T) {
	block, texture := packUniforms(nil)
	assert.Empty(t, block)
	assert.Nil(t, texture)
}

func TestFlipRect(t *testing.T) {
	cases := []struct {
		name       string
		rect       lumen.Rect
		x, y, w, h uint32
	}{
		{"full", lumen.Rect{Width: 800, Height: 600}, 0, 0, 800, 600},
		{"bottom half", lumen.Rect{Width: 800, Height: 300}, 0, 300, 800, 300},
		{"top right", lumen.Rect{Left: 400, Bottom: 300, Width: 400, Height: 300}, 400, 0, 400, 300},
		{"overflowing", lumen.Rect{Left: 700, Bottom: 500, Width: 400, Height: 400}, 700, 0, 100, 100},
		{"outside", lumen.Rect{Left: 900, Bottom: 700, Width: 10, Height: 10}, 800, 0, 0, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			x, y, w, h := flipRect(c.rect, 800, 600)
			assert.Equal(t, [4]uint32{c.x, c.y, c.w, c.h}, [4]uint32{x, y, w, h})
		})
	}
}

func TestDiscardTarget(t *testing.T) {
	target := &discardTarget{}
	w, h := target.Dimensions()
	assert.Zero(t, w)
	assert.Zero(t, h)

	target.ClearDepth(1)
	assert.NoError(t, target.Draw(&lumen.DrawCall{}))
	assert.NoError(t, target.Finish())
	assert.ErrorIs(t, target.Finish(), lumen.ErrAlreadyPresented)
	assert.ErrorIs(t, target.Draw(&lumen.DrawCall{}), lumen.ErrAlreadyPresented)
}

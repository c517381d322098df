package lumen

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	path := filepath.Join(t.TempDir(), "icon.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

func TestLoadImage(t *testing.T) {
	img, err := LoadImage(writePNG(t, 3, 2))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 3, 2), img.Bounds())
	assert.Equal(t, color.RGBA{R: 255, A: 255}, img.RGBAAt(0, 0))
}

func TestLoadImage_Errors(t *testing.T) {
	_, err := LoadImage(filepath.Join(t.TempDir(), "missing.png"))
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, DecodeIo, de.Kind)

	garbage := filepath.Join(t.TempDir(), "garbage.png")
	require.NoError(t, os.WriteFile(garbage, []byte("not an image"), 0o644))
	_, err = LoadImage(garbage)
	require.ErrorAs(t, err, &de)
	assert.Equal(t, DecodeFormat, de.Kind)
}

func TestTexture_RefCounting(t *testing.T) {
	b := newFakeBackend(1, 1)
	tex, err := NewTexture(writePNG(t, 8, 4), b)
	require.NoError(t, err)
	require.Len(t, b.textures, 1)
	w, h := tex.Handle().Size()
	assert.Equal(t, [2]uint32{8, 4}, [2]uint32{w, h})

	clone := tex.Clone()
	assert.Equal(t, 2, clone.RefCount())

	tex.Release()
	tex.Release()
	assert.Equal(t, 1, clone.RefCount())
	assert.False(t, b.textures[0].released)

	clone.Release()
	assert.True(t, b.textures[0].released)
	assert.Nil(t, clone.Handle())
}

func TestTexture_MissingFile(t *testing.T) {
	_, err := NewTexture(filepath.Join(t.TempDir(), "nope.png"), newFakeBackend(1, 1))
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, DecodeIo, de.Kind)
}

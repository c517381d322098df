package lumen

import (
	"image"
	"sync/atomic"
)

type textureShared struct {
	refs   atomic.Int32
	handle GpuTexture
	label  string
}

// Texture is a decoded image uploaded to the GPU. Several meshes may share it:
// Clone hands out another reference and the GPU texture is released when the
// last reference is released.
type Texture struct {
	shared   *textureShared
	released bool
}

// NewTexture decodes the image at path and uploads it.
func NewTexture(path string, b Backend) (*Texture, error) {
	img, err := LoadImage(path)
	if err != nil {
		return nil, err
	}
	return newTexture(path, img, b)
}

func NewTextureFromImage(label string, img image.Image, b Backend) (*Texture, error) {
	return newTexture(label, toRGBA(img), b)
}

func newTexture(label string, img *image.RGBA, b Backend) (*Texture, error) {
	handle, err := b.CreateTexture(img)
	if err != nil {
		return nil, &AssetCreationError{Kind: AssetTexture, Label: label, Err: err}
	}
	shared := &textureShared{handle: handle, label: label}
	shared.refs.Store(1)
	return &Texture{shared: shared}, nil
}

// Clone returns a new reference to the same GPU texture.
func (t *Texture) Clone() *Texture {
	t.shared.refs.Add(1)
	return &Texture{shared: t.shared}
}

// Release drops this reference. Releasing the same reference twice is a no-op.
func (t *Texture) Release() {
	if t.released {
		return
	}
	t.released = true
	if t.shared.refs.Add(-1) == 0 {
		t.shared.handle.Release()
		t.shared.handle = nil
	}
}

// Handle returns the GPU texture, or nil once every reference is released.
func (t *Texture) Handle() GpuTexture {
	return t.shared.handle
}

func (t *Texture) RefCount() int {
	return int(t.shared.refs.Load())
}

func (t *Texture) Label() string {
	return t.shared.label
}

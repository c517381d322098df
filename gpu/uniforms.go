package gpu

import (
	"github.com/gekko3d/lumen"
)

// packUniforms lays the matrix and vector values of set out in order as one
// uniform block. Every value is a multiple of 16 bytes, so the block matches
// the WGSL struct with the same member order. Texture values are returned
// separately; only the first one is bound.
func packUniforms(set lumen.UniformSet) (block []float32, texture *lumen.Texture) {
	for _, u := range set {
		switch v := u.Value.(type) {
		case lumen.Mat4Uniform:
			block = append(block, v[:]...)
		case lumen.Vec4Uniform:
			block = append(block, v[:]...)
		case lumen.TextureUniform:
			if texture == nil {
				texture = v.Texture
			}
		}
	}
	return block, texture
}

// flipRect converts a bottom-left origin rectangle into the top-left origin
// WebGPU uses, clamped to the target.
func flipRect(r lumen.Rect, width, height uint32) (x, y, w, h uint32) {
	x, w = r.Left, r.Width
	if x > width {
		x = width
	}
	if x+w > width {
		w = width - x
	}
	bottom, top := r.Bottom, r.Bottom+r.Height
	if top > height {
		top = height
	}
	if bottom > top {
		bottom = top
	}
	return x, height - top, w, top - bottom
}

package gpu

import (
	"errors"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/lumen"
)

// frameTarget records one frame into a command encoder. Render passes are
// opened lazily; ClearDepth closes the open pass so the next one starts with
// a depth clear.
type frameTarget struct {
	backend *Backend
	texture *wgpu.Texture
	view    *wgpu.TextureView
	encoder *wgpu.CommandEncoder
	pass    *wgpu.RenderPassEncoder

	width, height uint32

	colourCleared bool
	depthClear    bool
	depthValue    float32

	// trash is released once the frame has been submitted.
	trash    []releaser
	finished bool
}

func (t *frameTarget) Dimensions() (uint32, uint32) { return t.width, t.height }

func (t *frameTarget) ClearDepth(depth float32) {
	if t.finished {
		return
	}
	if err := t.endPass(); err != nil {
		t.backend.logger.Warnf("gpu: end pass: %v", err)
	}
	t.depthClear = true
	t.depthValue = depth
}

func (t *frameTarget) beginPass() {
	colourLoad, depthLoad := wgpu.LoadOpLoad, wgpu.LoadOpLoad
	if !t.colourCleared {
		colourLoad, depthLoad = wgpu.LoadOpClear, wgpu.LoadOpClear
		t.colourCleared = true
	}
	if t.depthClear {
		depthLoad = wgpu.LoadOpClear
		t.depthClear = false
	}

	t.pass = t.encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       t.view,
			LoadOp:     colourLoad,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: wgpu.Color{R: 0, G: 0, B: 0, A: 1},
		}},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            t.backend.depthView,
			DepthLoadOp:     depthLoad,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: t.depthValue,
		},
	})
}

func (t *frameTarget) endPass() error {
	if t.pass == nil {
		return nil
	}
	err := t.pass.End()
	t.pass.Release()
	t.pass = nil
	return err
}

func (t *frameTarget) Draw(call *lumen.DrawCall) error {
	if t.finished {
		return lumen.ErrAlreadyPresented
	}
	prog, ok := call.Program.(*program)
	if !ok || prog.module == nil {
		return errors.New("gpu: draw with a program from another backend or one already released")
	}
	geom, ok := call.Geometry.(*geometry)
	if !ok || geom.released {
		return errors.New("gpu: draw with foreign or released geometry")
	}

	full := lumen.Rect{Width: t.width, Height: t.height}
	viewport, scissor := full, full
	if call.Viewport != nil {
		viewport = *call.Viewport
	}
	if call.Scissor != nil {
		scissor = *call.Scissor
	}
	vx, vy, vw, vh := flipRect(viewport, t.width, t.height)
	sx, sy, sw, sh := flipRect(scissor, t.width, t.height)
	if vw == 0 || vh == 0 || sw == 0 || sh == 0 {
		return nil
	}

	pipeline, err := prog.pipeline(pipelineKey{depthTest: call.DepthTest, depthWrite: call.DepthWrite, cull: call.Cull})
	if err != nil {
		return pipelineError(prog.label, err)
	}

	block, texture := packUniforms(call.Uniforms)
	var uniformGroup, textureGroup *wgpu.BindGroup
	if len(block) > 0 {
		uniformGroup, err = t.uniformBindGroup(pipeline, block)
		if err != nil {
			return err
		}
	}
	if texture != nil {
		handle, ok := texture.Handle().(*gpuTexture)
		if !ok {
			return fmt.Errorf("gpu: texture %q has not been uploaded", texture.Label())
		}
		textureGroup, err = t.textureBindGroup(pipeline, handle)
		if err != nil {
			return err
		}
	}

	if t.pass == nil {
		t.beginPass()
	}
	t.pass.SetPipeline(pipeline)
	if uniformGroup != nil {
		t.pass.SetBindGroup(0, uniformGroup, nil)
	}
	if textureGroup != nil {
		t.pass.SetBindGroup(1, textureGroup, nil)
	}
	t.pass.SetViewport(float32(vx), float32(vy), float32(vw), float32(vh), 0, 1)
	t.pass.SetScissorRect(sx, sy, sw, sh)
	t.pass.SetVertexBuffer(0, geom.vertex, 0, wgpu.WholeSize)
	t.pass.SetIndexBuffer(geom.index, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
	t.pass.DrawIndexed(geom.count, 1, 0, 0, 0)
	return nil
}

func (t *frameTarget) uniformBindGroup(pipeline *wgpu.RenderPipeline, block []float32) (*wgpu.BindGroup, error) {
	buf, err := t.backend.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "Uniform Buffer",
		Contents: wgpu.ToBytes(block),
		Usage:    wgpu.BufferUsageUniform,
	})
	if err != nil {
		return nil, fmt.Errorf("create uniform buffer: %w", err)
	}
	layout := pipeline.GetBindGroupLayout(0)
	defer layout.Release()

	group, err := t.backend.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Layout: layout,
		Entries: []wgpu.BindGroupEntry{{
			Binding: 0,
			Buffer:  buf,
			Size:    wgpu.WholeSize,
		}},
	})
	if err != nil {
		buf.Release()
		return nil, fmt.Errorf("create uniform bind group: %w", err)
	}
	t.trash = append(t.trash, group, buf)
	return group, nil
}

func (t *frameTarget) textureBindGroup(pipeline *wgpu.RenderPipeline, tex *gpuTexture) (*wgpu.BindGroup, error) {
	layout := pipeline.GetBindGroupLayout(1)
	defer layout.Release()

	group, err := t.backend.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Layout: layout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: tex.view, Size: wgpu.WholeSize},
			{Binding: 1, Sampler: t.backend.sampler, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create texture bind group: %w", err)
	}
	t.trash = append(t.trash, group)
	return group, nil
}

func (t *frameTarget) Finish() error {
	if t.finished {
		return lumen.ErrAlreadyPresented
	}
	t.finished = true
	defer t.release()

	// an empty frame still clears the surface
	if t.pass == nil && !t.colourCleared {
		t.beginPass()
	}
	if err := t.endPass(); err != nil {
		return fmt.Errorf("end render pass: %w", err)
	}
	cmd, err := t.encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("finish command encoder: %w", err)
	}
	defer cmd.Release()

	t.backend.queue.Submit(cmd)
	t.backend.surface.Present()
	return nil
}

func (t *frameTarget) release() {
	if t.pass != nil {
		t.pass.Release()
		t.pass = nil
	}
	t.encoder.Release()
	t.view.Release()
	t.texture.Release()
	if t.backend.frame == t {
		t.backend.frame = nil
	}
	for _, r := range t.trash {
		r.Release()
	}
	t.trash = nil
}

// discardTarget stands in for the surface while the window has no area.
type discardTarget struct {
	finished bool
}

func (*discardTarget) Dimensions() (uint32, uint32) { return 0, 0 }
func (*discardTarget) ClearDepth(float32)           {}

func (d *discardTarget) Draw(*lumen.DrawCall) error {
	if d.finished {
		return lumen.ErrAlreadyPresented
	}
	return nil
}

func (d *discardTarget) Finish() error {
	if d.finished {
		return lumen.ErrAlreadyPresented
	}
	d.finished = true
	return nil
}

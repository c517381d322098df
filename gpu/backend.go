// Package gpu implements lumen.Backend on WebGPU.
package gpu

import (
	"errors"
	"fmt"
	"image"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/lumen"
)

const depthFormat = wgpu.TextureFormatDepth24Plus

var (
	_ lumen.Backend = (*Backend)(nil)
	_ lumen.Target  = (*frameTarget)(nil)
	_ lumen.Target  = (*discardTarget)(nil)
)

// Backend renders into one window surface.
type Backend struct {
	instance *wgpu.Instance
	surface  *wgpu.Surface
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue
	config   *wgpu.SurfaceConfiguration
	logger   lumen.Logger

	// size reports the current framebuffer size in pixels.
	size func() (width, height uint32)

	depthTexture *wgpu.Texture
	depthView    *wgpu.TextureView
	sampler      *wgpu.Sampler

	frame    *frameTarget
	released bool
}

// New creates a surface from desc and the device drawing into it. size is
// polled every frame and the surface is reconfigured when it changes.
// Failures are *lumen.WindowCreationError.
func New(desc *wgpu.SurfaceDescriptor, size func() (uint32, uint32), logger lumen.Logger) (*Backend, error) {
	if logger == nil {
		logger = lumen.NewNopLogger()
	}
	b := &Backend{size: size, logger: logger}

	b.instance = wgpu.CreateInstance(nil)
	b.surface = b.instance.CreateSurface(desc)

	adapter, err := b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: b.surface,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		b.Release()
		return nil, &lumen.WindowCreationError{Kind: lumen.WindowCreationNoSupportedBackend, Message: err.Error(), Err: err}
	}
	b.adapter = adapter

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{Label: "lumen device"})
	if err != nil {
		b.Release()
		return nil, &lumen.WindowCreationError{Kind: lumen.WindowCreationPlatformSpecific, Message: err.Error(), Err: err}
	}
	b.device = device
	b.queue = device.GetQueue()

	caps := b.surface.GetCapabilities(adapter)
	if len(caps.Formats) == 0 || len(caps.AlphaModes) == 0 {
		b.Release()
		return nil, &lumen.WindowCreationError{Kind: lumen.WindowCreationNoSupportedBackend, Message: "surface reports no formats"}
	}
	width, height := size()
	b.config = &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      caps.Formats[0],
		Width:       width,
		Height:      height,
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   caps.AlphaModes[0],
	}
	if err := b.configure(width, height); err != nil {
		b.Release()
		return nil, &lumen.WindowCreationError{Kind: lumen.WindowCreationOs, Message: err.Error(), Err: err}
	}

	b.sampler, err = device.CreateSampler(&wgpu.SamplerDescriptor{
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MinFilter:     wgpu.FilterModeLinear,
		MagFilter:     wgpu.FilterModeLinear,
		MaxAnisotropy: 1,
	})
	if err != nil {
		b.Release()
		return nil, &lumen.WindowCreationError{Kind: lumen.WindowCreationPlatformSpecific, Message: err.Error(), Err: err}
	}

	logger.Infof("gpu: surface %dx%d, format %v", width, height, b.config.Format)
	return b, nil
}

// configure resizes the swap chain and the depth buffer. A zero size (a
// minimized window) only records the size.
func (b *Backend) configure(width, height uint32) error {
	b.config.Width, b.config.Height = width, height
	if width == 0 || height == 0 {
		return nil
	}
	b.surface.Configure(b.adapter, b.device, b.config)

	if b.depthView != nil {
		b.depthView.Release()
		b.depthTexture.Release()
		b.depthView, b.depthTexture = nil, nil
	}
	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "lumen depth",
		Size:          wgpu.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        depthFormat,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return fmt.Errorf("create depth texture: %w", err)
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return fmt.Errorf("create depth view: %w", err)
	}
	b.depthTexture, b.depthView = tex, view
	b.logger.Debugf("gpu: surface configured %dx%d", width, height)
	return nil
}

func (b *Backend) CreateProgram(src lumen.ShaderSource) (lumen.Program, error) {
	module, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          src.Label,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: src.Code},
	})
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", src.Label, err)
	}
	prog := &program{
		backend:   b,
		label:     src.Label,
		module:    module,
		pipelines: map[pipelineKey]*wgpu.RenderPipeline{},
	}
	if _, err := prog.pipeline(defaultPipeline); err != nil {
		prog.Release()
		return nil, err
	}
	return prog, nil
}

func (b *Backend) CreateGeometry(vertices []lumen.Vertex, indices []uint32) (lumen.Geometry, error) {
	if len(vertices) == 0 || len(indices) == 0 {
		return nil, errors.New("gpu: empty geometry")
	}
	vertexBuf, err := b.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "Vertex Buffer",
		Contents: wgpu.ToBytes(vertices),
		Usage:    wgpu.BufferUsageVertex,
	})
	if err != nil {
		return nil, fmt.Errorf("create vertex buffer: %w", err)
	}
	indexBuf, err := b.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "Index Buffer",
		Contents: wgpu.ToBytes(indices),
		Usage:    wgpu.BufferUsageIndex,
	})
	if err != nil {
		vertexBuf.Release()
		return nil, fmt.Errorf("create index buffer: %w", err)
	}
	return &geometry{backend: b, vertex: vertexBuf, index: indexBuf, count: uint32(len(indices))}, nil
}

func (b *Backend) CreateTexture(img *image.RGBA) (lumen.GpuTexture, error) {
	size := img.Rect.Size()
	if size.X <= 0 || size.Y <= 0 {
		return nil, errors.New("gpu: empty texture")
	}
	extent := wgpu.Extent3D{Width: uint32(size.X), Height: uint32(size.Y), DepthOrArrayLayers: 1}
	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Size:          extent,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatRGBA8UnormSrgb,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}
	err = b.queue.WriteTexture(
		tex.AsImageCopy(),
		img.Pix,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  uint32(img.Stride),
			RowsPerImage: extent.Height,
		},
		&extent,
	)
	if err != nil {
		tex.Release()
		return nil, err
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, err
	}
	return &gpuTexture{texture: tex, view: view, width: extent.Width, height: extent.Height}, nil
}

// BeginFrame acquires the next surface texture. A minimized window yields a
// target that discards everything.
func (b *Backend) BeginFrame() (lumen.Target, error) {
	if b.released {
		return nil, fmt.Errorf("%w: backend released", lumen.ErrContextLost)
	}
	if b.frame != nil {
		return nil, errors.New("gpu: previous frame was not finished")
	}

	width, height := b.size()
	if width == 0 || height == 0 {
		return &discardTarget{}, nil
	}
	if width != b.config.Width || height != b.config.Height || b.depthView == nil {
		if err := b.configure(width, height); err != nil {
			return nil, err
		}
	}

	texture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return nil, fmt.Errorf("%w: acquire surface texture: %v", lumen.ErrContextLost, err)
	}
	view, err := texture.CreateView(nil)
	if err != nil {
		texture.Release()
		return nil, fmt.Errorf("create surface view: %w", err)
	}
	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		texture.Release()
		return nil, fmt.Errorf("create command encoder: %w", err)
	}

	b.frame = &frameTarget{
		backend:    b,
		texture:    texture,
		view:       view,
		encoder:    encoder,
		width:      width,
		height:     height,
		depthValue: 1,
	}
	return b.frame, nil
}

// discard releases res now, or after the current frame is submitted when one
// is being recorded.
func (b *Backend) discard(res ...releaser) {
	if b.frame != nil {
		b.frame.trash = append(b.frame.trash, res...)
		return
	}
	for _, r := range res {
		r.Release()
	}
}

func (b *Backend) Release() {
	if b.released {
		return
	}
	b.released = true
	if b.sampler != nil {
		b.sampler.Release()
	}
	if b.depthView != nil {
		b.depthView.Release()
		b.depthTexture.Release()
	}
	if b.queue != nil {
		b.queue.Release()
	}
	if b.device != nil {
		b.device.Release()
	}
	if b.adapter != nil {
		b.adapter.Release()
	}
	if b.surface != nil {
		b.surface.Release()
	}
	if b.instance != nil {
		b.instance.Release()
	}
	b.logger.Debugf("gpu: backend released")
}

type releaser interface {
	Release()
}

type geometry struct {
	backend       *Backend
	vertex, index *wgpu.Buffer
	count         uint32
	released      bool
}

func (g *geometry) IndexCount() uint32 { return g.count }

func (g *geometry) Release() {
	if g.released {
		return
	}
	g.released = true
	g.backend.discard(g.vertex, g.index)
}

type gpuTexture struct {
	texture       *wgpu.Texture
	view          *wgpu.TextureView
	width, height uint32
}

func (t *gpuTexture) Size() (uint32, uint32) { return t.width, t.height }

func (t *gpuTexture) Release() {
	t.view.Release()
	t.texture.Release()
}

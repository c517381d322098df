package lumen

import (
	"fmt"
)

// ViewRect is a region of the render target in normalized device
// coordinates, each edge in [-1, 1].
type ViewRect struct {
	Left, Right, Bottom, Top float32
}

// FullView covers the whole target.
var FullView = ViewRect{Left: -1, Right: 1, Bottom: -1, Top: 1}

// Pixels maps the rect onto a width x height target. Edges outside [-1, 1]
// are clamped to the target and then truncated towards zero, so adjacent
// rects share a boundary without overlap.
func (r ViewRect) Pixels(width, height uint32) Rect {
	left := toPixel(r.Left, width)
	right := toPixel(r.Right, width)
	bottom := toPixel(r.Bottom, height)
	top := toPixel(r.Top, height)
	if right < left {
		right = left
	}
	if top < bottom {
		top = bottom
	}
	return Rect{Left: left, Bottom: bottom, Width: right - left, Height: top - bottom}
}

func toPixel(edge float32, dim uint32) uint32 {
	px := (edge + 1) / 2 * float32(dim)
	if !(px > 0) {
		return 0
	}
	return uint32(min(px, float32(dim)))
}

// Sub maps child, expressed in [-1, 1] relative to r, into r's coordinates.
func (r ViewRect) Sub(child ViewRect) ViewRect {
	mx := (r.Right - r.Left) / 2
	cx := (r.Right + r.Left) / 2
	my := (r.Top - r.Bottom) / 2
	cy := (r.Top + r.Bottom) / 2
	return ViewRect{
		Left:   mx*child.Left + cx,
		Right:  mx*child.Right + cx,
		Bottom: my*child.Bottom + cy,
		Top:    my*child.Top + cy,
	}
}

// Renderable draws a scene into part of a target: a *Camera or a *SplitView.
type Renderable interface {
	Render(target Target, scene *Scene, window *Window, view ViewRect) error
}

const (
	DefaultFov   float32 = 3.0
	DefaultZNear float32 = 0.1
	DefaultZFar  float32 = 1024.0
)

// Camera draws every object in the scene from its Transform. Fov is a divisor
// of pi (3.0 means a 60 degree vertical field of view).
type Camera struct {
	Transform Transform
	Fov       float32
	ZNear     float32
	ZFar      float32

	clearColour *[4]float32
	clear       *clearPass
}

func NewCamera(transform Transform, fov float32) *Camera {
	return &Camera{
		Transform: transform,
		Fov:       fov,
		ZNear:     DefaultZNear,
		ZFar:      DefaultZFar,
	}
}

// SetClearColour sets the colour painted behind the scene, or none when nil.
// Clear resources are rebuilt lazily on the next render.
func (c *Camera) SetClearColour(colour *[4]float32) {
	if colour != nil {
		v := *colour
		colour = &v
	}
	c.clearColour = colour
	c.Release()
}

func (c *Camera) ClearColour() (colour [4]float32, ok bool) {
	if c.clearColour == nil {
		return colour, false
	}
	return *c.clearColour, true
}

// Release frees the lazily created clear pass resources.
func (c *Camera) Release() {
	if c.clear != nil {
		c.clear.Release()
		c.clear = nil
	}
}

func (c *Camera) Render(target Target, scene *Scene, window *Window, view ViewRect) error {
	backend := window.Backend()
	target.ClearDepth(1)

	if c.clearColour != nil {
		if c.clear == nil {
			c.clear = newClearPass()
		}
		if err := c.clear.ensure(backend); err != nil {
			return fmt.Errorf("camera clear pass: %w", err)
		}
		if err := c.clear.draw(target, *c.clearColour, view); err != nil {
			return fmt.Errorf("camera clear pass: %w", err)
		}
	}

	width, height := target.Dimensions()
	px := view.Pixels(width, height)
	if px.Width == 0 || px.Height == 0 {
		return nil
	}
	aspect := float32(px.Height) / float32(px.Width)

	for _, obj := range scene.objects {
		for _, inst := range obj.Meshes {
			if err := c.drawMesh(target, backend, obj, inst, px, aspect); err != nil {
				return fmt.Errorf("draw %q: %w", obj.Name, err)
			}
		}
	}
	return nil
}

func (c *Camera) drawMesh(target Target, backend Backend, obj *GameObject, inst MeshInstance, px Rect, aspect float32) error {
	mesh := inst.Mesh
	if mesh == nil || mesh.Shader == nil || len(mesh.Indices) == 0 {
		return nil
	}

	geometry, err := backend.CreateGeometry(mesh.Vertices, mesh.Indices)
	if err != nil {
		return err
	}
	defer geometry.Release()

	shader := mesh.Shader
	uniforms := shader.ComputeUniforms(UniformParams{
		Camera:      c.Transform,
		Mesh:        inst.Local,
		Object:      obj.Transform,
		Fov:         c.Fov,
		AspectRatio: aspect,
		ZFar:        c.ZFar,
		ZNear:       c.ZNear,
	})
	if err := shader.EnsureGpuResources(backend); err != nil {
		return err
	}

	viewport := px
	scissor := px
	return target.Draw(&DrawCall{
		Program:    shader.Program(),
		Geometry:   geometry,
		Uniforms:   uniforms,
		Viewport:   &viewport,
		Scissor:    &scissor,
		DepthTest:  DepthTestLess,
		DepthWrite: true,
		Cull:       CullBack,
	})
}

// SplitPane is one child of a SplitView and the part of the parent it covers,
// each edge in [-1, 1] relative to the parent's centre.
type SplitPane struct {
	View                     Renderable
	Left, Right, Bottom, Top float32
}

func (p SplitPane) Rect() ViewRect {
	return ViewRect{Left: p.Left, Right: p.Right, Bottom: p.Bottom, Top: p.Top}
}

// SplitView lets several renderables share one target. Panes may nest.
type SplitView struct {
	Views []SplitPane
}

func NewSplitView(panes ...SplitPane) *SplitView {
	return &SplitView{Views: panes}
}

func (s *SplitView) Render(target Target, scene *Scene, window *Window, view ViewRect) error {
	for _, pane := range s.Views {
		if pane.View == nil {
			continue
		}
		if err := pane.View.Render(target, scene, window, view.Sub(pane.Rect())); err != nil {
			return err
		}
	}
	return nil
}

// Release frees clear resources held by cameras anywhere under the split.
func (s *SplitView) Release() {
	for _, pane := range s.Views {
		if r, ok := pane.View.(interface{ Release() }); ok {
			r.Release()
		}
	}
}

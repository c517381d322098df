package lumen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testWindowWithBackend(b Backend) *Window {
	return &Window{backend: b, logger: NewNopLogger(), frame: Frame{Input: newInput()}}
}

func sceneWithPlane(root Renderable) (*Scene, *FlatColour3D) {
	shader := NewFlatColour3D([4]float32{0, 1, 0, 1})
	obj := NewGameObject(nil, "plane", FromPosition(0, 0, 5))
	obj.AddMesh(Origin(), Plane(false, shader))
	scene := NewScene(nil, root)
	scene.AddObject(obj)
	return scene, shader
}

func TestViewRect_Pixels(t *testing.T) {
	assert.Equal(t, Rect{Left: 0, Bottom: 0, Width: 1000, Height: 500}, FullView.Pixels(1000, 500))
	assert.Equal(t, Rect{Left: 500, Bottom: 0, Width: 500, Height: 500}, ViewRect{0, 1, -1, 1}.Pixels(1000, 500))
	assert.Equal(t, Rect{Left: 250, Bottom: 250, Width: 0, Height: 0}, ViewRect{0, 0, 0, 0}.Pixels(500, 500))
}

func TestViewRect_PixelsClampsOutOfRangeEdges(t *testing.T) {
	assert.Equal(t, Rect{Left: 0, Bottom: 0, Width: 100, Height: 100}, ViewRect{-3, 2, -2, 3}.Pixels(100, 100))
	assert.Equal(t, Rect{Left: 0, Bottom: 0, Width: 0, Height: 0}, ViewRect{-5, -2, -4, -3}.Pixels(100, 100))
	assert.Equal(t, Rect{Left: 100, Bottom: 50, Width: 0, Height: 0}, ViewRect{2, 3, 1, 1.5}.Pixels(100, 50))

	// A split fraction past the edge still yields panes inside the target.
	pane := FullView.Sub(ViewRect{Left: -1, Right: 1.5, Bottom: -1, Top: 1})
	assert.Equal(t, Rect{Left: 0, Bottom: 0, Width: 200, Height: 80}, pane.Pixels(200, 80))
}

func TestViewRect_Sub(t *testing.T) {
	right := FullView.Sub(ViewRect{Left: 0, Right: 1, Bottom: -1, Top: 1})
	assert.Equal(t, ViewRect{Left: 0, Right: 1, Bottom: -1, Top: 1}, right)

	topOfRight := right.Sub(ViewRect{Left: -1, Right: 1, Bottom: 0, Top: 1})
	assert.Equal(t, ViewRect{Left: 0, Right: 1, Bottom: 0, Top: 1}, topOfRight)

	assert.Equal(t, right, right.Sub(FullView))
}

func TestCamera_SingleDrawFullViewport(t *testing.T) {
	b := newFakeBackend(800, 600)
	w := testWindowWithBackend(b)
	camera := NewCamera(Origin(), DefaultFov)
	scene, shader := sceneWithPlane(camera)

	target, err := b.BeginFrame()
	require.NoError(t, err)
	require.NoError(t, scene.render(target, w))

	draws := b.allDraws()
	require.Len(t, draws, 1)
	call := draws[0]
	assert.Equal(t, &Rect{Left: 0, Bottom: 0, Width: 800, Height: 600}, call.Viewport)
	assert.Equal(t, call.Viewport, call.Scissor)
	assert.Equal(t, DepthTestLess, call.DepthTest)
	assert.True(t, call.DepthWrite)
	assert.Equal(t, CullBack, call.Cull)
	assert.Same(t, shader.Program(), call.Program)
	assert.Equal(t, 1, b.targets[0].depthClears)

	// Geometry is rebuilt every draw and released afterwards.
	require.Len(t, b.geometries, 1)
	assert.True(t, b.geometries[0].released)
	assert.Equal(t, uint32(6), call.Geometry.IndexCount())

	names := make([]string, 0, len(call.Uniforms))
	for _, u := range call.Uniforms {
		names = append(names, u.Name)
	}
	assert.Equal(t, []string{"perspective_matrix", "view_matrix", "object_matrix", "mesh_matrix", "colour"}, names)

	v, ok := call.Uniforms.Get("object_matrix")
	require.True(t, ok)
	assert.Equal(t, float32(5), v.(Mat4Uniform)[14])
}

func TestCamera_ClearColourDrawsRectFirst(t *testing.T) {
	b := newFakeBackend(800, 600)
	w := testWindowWithBackend(b)
	camera := NewCamera(Origin(), DefaultFov)
	camera.SetClearColour(&[4]float32{0.1, 0.2, 0.3, 1})
	scene, _ := sceneWithPlane(camera)

	for i := 0; i < 2; i++ {
		target, err := b.BeginFrame()
		require.NoError(t, err)
		require.NoError(t, scene.render(target, w))
	}

	draws := b.allDraws()
	require.Len(t, draws, 4)
	clear := draws[0]
	assert.Nil(t, clear.Viewport)
	assert.Equal(t, DepthTestOff, clear.DepthTest)
	assert.False(t, clear.DepthWrite)
	colour, ok := clear.Uniforms.Get("clear_colour")
	require.True(t, ok)
	assert.Equal(t, Vec4Uniform{0.1, 0.2, 0.3, 1}, colour)

	// One clear program and one flat program, each built once.
	assert.Len(t, b.programs, 2)
	assert.Same(t, draws[0].Program, draws[2].Program)

	camera.SetClearColour(nil)
	assert.True(t, b.programs[0].released)
	_, ok = camera.ClearColour()
	assert.False(t, ok)
}

func TestCamera_ZeroAreaViewportDrawsNothing(t *testing.T) {
	b := newFakeBackend(800, 600)
	w := testWindowWithBackend(b)
	camera := NewCamera(Origin(), DefaultFov)
	scene, _ := sceneWithPlane(camera)

	target, err := b.BeginFrame()
	require.NoError(t, err)
	require.NoError(t, camera.Render(target, scene, w, ViewRect{0, 0, -1, 1}))

	assert.Empty(t, b.allDraws())
	assert.Equal(t, 1, b.targets[0].depthClears)
}

func TestCamera_ProgramErrorIsWrappedWithObjectName(t *testing.T) {
	b := newFakeBackend(800, 600)
	b.programErr = errFake
	w := testWindowWithBackend(b)
	camera := NewCamera(Origin(), DefaultFov)
	scene, _ := sceneWithPlane(camera)

	target, err := b.BeginFrame()
	require.NoError(t, err)
	err = scene.render(target, w)

	require.Error(t, err)
	assert.ErrorIs(t, err, errFake)
	assert.Contains(t, err.Error(), `"plane"`)
	var ace *AssetCreationError
	require.ErrorAs(t, err, &ace)
	assert.Equal(t, AssetProgram, ace.Kind)
}

func TestSplitView_SideBySide(t *testing.T) {
	b := newFakeBackend(1000, 500)
	w := testWindowWithBackend(b)
	left := NewCamera(Origin(), DefaultFov)
	right := NewCamera(FromPosition(1, 0, 0), DefaultFov)
	split := NewSplitView(
		SplitPane{View: left, Left: -1, Right: 0, Bottom: -1, Top: 1},
		SplitPane{View: right, Left: 0, Right: 1, Bottom: -1, Top: 1},
	)
	scene, _ := sceneWithPlane(split)

	target, err := b.BeginFrame()
	require.NoError(t, err)
	require.NoError(t, scene.render(target, w))

	draws := b.allDraws()
	require.Len(t, draws, 2)
	assert.Equal(t, &Rect{Left: 0, Bottom: 0, Width: 500, Height: 500}, draws[0].Viewport)
	assert.Equal(t, &Rect{Left: 500, Bottom: 0, Width: 500, Height: 500}, draws[1].Viewport)

	// Each pane is square, so the projection is not stretched.
	for _, d := range draws {
		v, ok := d.Uniforms.Get("perspective_matrix")
		require.True(t, ok)
		m := v.(Mat4Uniform)
		assert.InDelta(t, m[5], m[0], 1e-6)
	}
	assert.Equal(t, 2, b.targets[0].depthClears)
}

func TestSplitView_Nested(t *testing.T) {
	b := newFakeBackend(400, 400)
	w := testWindowWithBackend(b)
	inner := NewSplitView(SplitPane{View: NewCamera(Origin(), DefaultFov), Left: -1, Right: 1, Bottom: 0, Top: 1})
	outer := NewSplitView(SplitPane{View: inner, Left: 0, Right: 1, Bottom: -1, Top: 1})
	scene, _ := sceneWithPlane(outer)

	target, err := b.BeginFrame()
	require.NoError(t, err)
	require.NoError(t, scene.render(target, w))

	draws := b.allDraws()
	require.Len(t, draws, 1)
	assert.Equal(t, &Rect{Left: 200, Bottom: 200, Width: 200, Height: 200}, draws[0].Viewport)
}

func TestScene_DestroyReleasesCamera(t *testing.T) {
	b := newFakeBackend(100, 100)
	w := testWindowWithBackend(b)
	camera := NewCamera(Origin(), DefaultFov)
	camera.SetClearColour(&[4]float32{0, 0, 0, 1})
	scene := NewScene(nil, NewSplitView(SplitPane{View: camera, Left: -1, Right: 1, Bottom: -1, Top: 1}))

	target, err := b.BeginFrame()
	require.NoError(t, err)
	require.NoError(t, scene.render(target, w))
	require.Len(t, b.programs, 1)

	scene.Destroy()
	assert.True(t, b.programs[0].released)
	assert.True(t, b.geometries[0].released)
}

func TestCamera_CubeScene(t *testing.T) {
	b := newFakeBackend(640, 480)
	w := testWindowWithBackend(b)
	camera := NewCamera(FromScale(1, 1, 1), 3.0)

	cube := NewGameObject(nil, "cube", FromPosition(0, 0, 4))
	cube.AddMesh(Origin(), Cube(NewFlatColour3D([4]float32{1, 0, 0, 1})))
	scene := NewScene(nil, camera)
	scene.AddObject(cube)

	target, err := b.BeginFrame()
	require.NoError(t, err)
	require.NoError(t, scene.render(target, w))
	require.NoError(t, target.Finish())

	draws := b.allDraws()
	require.Len(t, draws, 1)
	assert.Equal(t, &Rect{Width: 640, Height: 480}, draws[0].Viewport)
	assert.Equal(t, uint32(36), draws[0].Geometry.IndexCount())
}

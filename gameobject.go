package lumen

import (
	"github.com/google/uuid"
)

// GameObjectCallback is the behaviour attached to a GameObject. Embed
// NopGameObjectCallback to implement only the hooks you need.
type GameObjectCallback interface {
	// OnLoad runs right after the object is added to a scene.
	OnLoad(obj *GameObject, scene *Scene)
	// OnUnload runs before the object leaves its scene.
	OnUnload(obj *GameObject, scene *Scene)
	// OnTick runs once per frame while the object is in a scene.
	OnTick(obj *GameObject, frame *Frame)
	// OnDestroy runs once before the object is discarded, e.g. to close files.
	OnDestroy(obj *GameObject)
}

type NopGameObjectCallback struct{}

func (NopGameObjectCallback) OnLoad(*GameObject, *Scene)   {}
func (NopGameObjectCallback) OnUnload(*GameObject, *Scene) {}
func (NopGameObjectCallback) OnTick(*GameObject, *Frame)   {}
func (NopGameObjectCallback) OnDestroy(*GameObject)        {}

// MeshInstance places a mesh relative to its owning object.
type MeshInstance struct {
	Local Transform
	Mesh  *Mesh
}

type objectState int

const (
	objectUnattached objectState = iota
	objectLoaded
	objectUnloaded
	objectDestroyed
)

// GameObject is an entity in a scene. Names are for lookup and need not be
// unique; ID is.
type GameObject struct {
	ID        uuid.UUID
	Name      string
	Transform Transform
	Meshes    []MeshInstance

	callbacks GameObjectCallback
	state     objectState
}

// NewGameObject creates an unattached object. callbacks may be nil.
func NewGameObject(callbacks GameObjectCallback, name string, transform Transform) *GameObject {
	return &GameObject{
		ID:        uuid.New(),
		Name:      name,
		Transform: transform,
		callbacks: callbacks,
	}
}

func (o *GameObject) AddMesh(local Transform, mesh *Mesh) {
	o.Meshes = append(o.Meshes, MeshInstance{Local: local, Mesh: mesh})
}

// SetCallbacks replaces the behaviour. Called from inside one of the object's
// own hooks, the new value is kept once the hook returns.
func (o *GameObject) SetCallbacks(callbacks GameObjectCallback) {
	o.callbacks = callbacks
}

func (o *GameObject) Loaded() bool {
	return o.state == objectLoaded
}

func (o *GameObject) Destroyed() bool {
	return o.state == objectDestroyed
}

// invoke takes the callbacks out of their slot for the duration of fn, so a
// re-entrant call finds the slot empty and does nothing.
func (o *GameObject) invoke(fn func(cb GameObjectCallback)) {
	cb := o.callbacks
	if cb == nil {
		return
	}
	o.callbacks = nil
	defer func() {
		if o.callbacks == nil {
			o.callbacks = cb
		}
	}()
	fn(cb)
}

func (o *GameObject) load(scene *Scene) {
	if o.state != objectUnattached {
		panic("lumen: game object " + o.Name + " is already attached to a scene")
	}
	o.state = objectLoaded
	o.invoke(func(cb GameObjectCallback) { cb.OnLoad(o, scene) })
}

func (o *GameObject) tick(frame *Frame) {
	if o.state != objectLoaded {
		return
	}
	o.invoke(func(cb GameObjectCallback) { cb.OnTick(o, frame) })
}

func (o *GameObject) unload(scene *Scene) {
	if o.state != objectLoaded {
		return
	}
	o.state = objectUnloaded
	o.invoke(func(cb GameObjectCallback) { cb.OnUnload(o, scene) })
}

// destroy fires OnDestroy once and frees the meshes' GPU resources.
func (o *GameObject) destroy() {
	if o.state == objectDestroyed {
		return
	}
	o.state = objectDestroyed
	o.invoke(func(cb GameObjectCallback) { cb.OnDestroy(o) })
	for _, m := range o.Meshes {
		if m.Mesh != nil {
			m.Mesh.Release()
		}
	}
}

package lumen

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// SceneCallback is the behaviour attached to a Scene. Embed NopSceneCallback
// to implement only the hooks you need.
type SceneCallback interface {
	OnLoad(scene *Scene)
	OnUnload(scene *Scene)
	OnInsert(scene *Scene, window *Window)
	OnRemove(scene *Scene, window *Window)
	OnTick(scene *Scene, frame *Frame)
}

type NopSceneCallback struct{}

func (NopSceneCallback) OnLoad(*Scene)            {}
func (NopSceneCallback) OnUnload(*Scene)          {}
func (NopSceneCallback) OnInsert(*Scene, *Window) {}
func (NopSceneCallback) OnRemove(*Scene, *Window) {}
func (NopSceneCallback) OnTick(*Scene, *Frame)    {}

// Scene is an ordered collection of game objects rendered through one root
// Renderable. Insertion order is tick and draw order.
type Scene struct {
	MainCamera Renderable

	callbacks SceneCallback
	objects   []*GameObject
	removed   bool
	destroyed bool
	hooked    bool
}

// NewScene creates a scene and fires OnLoad before returning. callbacks may
// be nil.
func NewScene(callbacks SceneCallback, root Renderable) *Scene {
	s := &Scene{MainCamera: root}
	if callbacks != nil {
		callbacks.OnLoad(s)
		if s.callbacks == nil {
			s.callbacks = callbacks
		}
	}
	return s
}

// SetCallbacks replaces the behaviour. Called from inside one of the scene's
// own hooks, the new value is kept once the hook returns.
func (s *Scene) SetCallbacks(callbacks SceneCallback) {
	s.callbacks = callbacks
}

func (s *Scene) invoke(fn func(cb SceneCallback)) {
	cb := s.callbacks
	if cb == nil {
		return
	}
	s.callbacks = nil
	s.hooked = true
	defer func() {
		s.hooked = false
		if s.callbacks == nil {
			s.callbacks = cb
		}
	}()
	fn(cb)
}

// inHook reports whether one of the scene's own hooks is running.
func (s *Scene) inHook() bool {
	return s.hooked
}

// AddObject fires the object's OnLoad and appends it. An object belongs to at
// most one scene; adding it twice panics.
func (s *Scene) AddObject(obj *GameObject) {
	obj.load(s)
	s.objects = append(s.objects, obj)
}

// Objects returns the objects in insertion order. The slice must not be
// modified.
func (s *Scene) Objects() []*GameObject {
	return s.objects
}

// FindObject returns the first object called name.
func (s *Scene) FindObject(name string) (*GameObject, bool) {
	for _, obj := range s.objects {
		if obj.Name == name {
			return obj, true
		}
	}
	return nil, false
}

// AlterObjectByName applies fn to the first object called name and reports
// whether one was found.
func (s *Scene) AlterObjectByName(name string, fn func(obj *GameObject)) bool {
	obj, ok := s.FindObject(name)
	if !ok {
		return false
	}
	fn(obj)
	return true
}

// RemoveObjectByName detaches the first object called name, firing its
// OnUnload then OnDestroy.
func (s *Scene) RemoveObjectByName(name string) bool {
	i := slices.IndexFunc(s.objects, func(o *GameObject) bool { return o.Name == name })
	if i < 0 {
		return false
	}
	s.detach(i)
	return true
}

// ObjectByID returns the object with the given ID. Unlike names, IDs are
// unique. A miss wraps ErrNotFound.
func (s *Scene) ObjectByID(id uuid.UUID) (*GameObject, error) {
	i := s.indexOfID(id)
	if i < 0 {
		return nil, fmt.Errorf("object %s: %w", id, ErrNotFound)
	}
	return s.objects[i], nil
}

// ObjectByName is FindObject returning an error that wraps ErrNotFound on a
// miss.
func (s *Scene) ObjectByName(name string) (*GameObject, error) {
	obj, ok := s.FindObject(name)
	if !ok {
		return nil, fmt.Errorf("object %q: %w", name, ErrNotFound)
	}
	return obj, nil
}

// RemoveObjectByID detaches the object with the given ID, firing its OnUnload
// then OnDestroy. A miss wraps ErrNotFound.
func (s *Scene) RemoveObjectByID(id uuid.UUID) error {
	i := s.indexOfID(id)
	if i < 0 {
		return fmt.Errorf("remove object %s: %w", id, ErrNotFound)
	}
	s.detach(i)
	return nil
}

func (s *Scene) indexOfID(id uuid.UUID) int {
	return slices.IndexFunc(s.objects, func(o *GameObject) bool { return o.ID == id })
}

func (s *Scene) detach(i int) {
	obj := s.objects[i]
	s.objects = slices.Delete(s.objects, i, i+1)
	obj.unload(s)
	obj.destroy()
}

func (s *Scene) tick(frame *Frame) {
	s.tickCallbacks(frame)
	s.tickObjects(frame)
}

func (s *Scene) tickCallbacks(frame *Frame) {
	s.invoke(func(cb SceneCallback) { cb.OnTick(s, frame) })
}

// tickObjects stops early once the scene is removed from its window. Objects
// added during the loop start ticking next frame.
func (s *Scene) tickObjects(frame *Frame) {
	for _, obj := range slices.Clone(s.objects) {
		if s.removed || s.destroyed {
			return
		}
		obj.tick(frame)
	}
}

func (s *Scene) render(target Target, window *Window) error {
	if s.MainCamera == nil {
		return nil
	}
	return s.MainCamera.Render(target, s, window, FullView)
}

func (s *Scene) insert(window *Window) {
	s.invoke(func(cb SceneCallback) { cb.OnInsert(s, window) })
}

// remove detaches the scene from its window: OnRemove, then every object is
// unloaded and destroyed.
func (s *Scene) remove(window *Window) {
	if s.removed {
		return
	}
	s.removed = true
	s.invoke(func(cb SceneCallback) { cb.OnRemove(s, window) })
	s.teardownObjects()
}

func (s *Scene) teardownObjects() {
	for _, obj := range s.objects {
		obj.unload(s)
		obj.destroy()
	}
}

// Destroy fires OnUnload and tears down any objects still alive. It is safe
// to call more than once; every hook still fires at most once.
func (s *Scene) Destroy() {
	if s.destroyed {
		return
	}
	s.destroyed = true
	s.invoke(func(cb SceneCallback) { cb.OnUnload(s) })
	s.teardownObjects()
	if c, ok := s.MainCamera.(interface{ Release() }); ok {
		c.Release()
	}
}

func (s *Scene) Destroyed() bool {
	return s.destroyed
}

package render

import (
	"errors"
	"fmt"
)

var (
	ErrNilScene       = errors.New("scene is nil")
	ErrDuplicateScene = errors.New("duplicate scene name")
	ErrSceneRange     = errors.New("scene out of range")
)

// Descriptor identifies a registered scene. ID is 1-based.
type Descriptor struct {
	ID   int
	Name string
}

// Registry is the static scene table. Ordinals follow registration order and
// are always contiguous from 1: nil and duplicate entries are rejected rather
// than leaving a gap.
type Registry struct {
	scenes []Scene
	byName map[string]int
}

func NewRegistry() *Registry { return &Registry{byName: map[string]int{}} }

// Register appends rr and returns its ordinal.
func (r *Registry) Register(rr Scene) (int, error) {
	if rr == nil {
		return 0, ErrNilScene
	}
	if id, ok := r.byName[rr.Name()]; ok {
		return 0, fmt.Errorf("%w: %q already registered as %d", ErrDuplicateScene, rr.Name(), id)
	}
	r.scenes = append(r.scenes, rr)
	id := len(r.scenes)
	r.byName[rr.Name()] = id
	return id, nil
}

func (r *Registry) Count() int { return len(r.scenes) }

// Get looks a scene up by ordinal. Out-of-range ordinals are rejected, not clamped.
func (r *Registry) Get(id int) (Scene, error) {
	if id < 1 || id > len(r.scenes) {
		return nil, fmt.Errorf("%w: %d not in 1..%d", ErrSceneRange, id, len(r.scenes))
	}
	return r.scenes[id-1], nil
}

// Lookup finds a scene ordinal by name.
func (r *Registry) Lookup(name string) (int, bool) {
	id, ok := r.byName[name]
	return id, ok
}

func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.scenes))
	for _, s := range r.scenes {
		out = append(out, s.Name())
	}
	return out
}

func (r *Registry) Descriptors() []Descriptor {
	out := make([]Descriptor, 0, len(r.scenes))
	for i, s := range r.scenes {
		out = append(out, Descriptor{ID: i + 1, Name: s.Name()})
	}
	return out
}

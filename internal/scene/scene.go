// Package scene implements the Scene Model of spec.md §2.2: a mapping
// from object name to its current polygonal footprint, centroid, color
// and movability, including the four fixed Phantom Regions.
package scene

import (
	"sort"

	"spatialreq/internal/domain"
	"spatialreq/internal/geometry"
)

// Scene owns every Object a planner instance knows about, keyed by name.
type Scene struct {
	objects map[string]*domain.Object
}

// New builds a Scene from an initial object set plus the four phantom
// corner regions for bounds.
func New(initial map[string]*domain.Object, bounds domain.Bounds) *Scene {
	objects := make(map[string]*domain.Object, len(initial)+4)
	for name, obj := range initial {
		objects[name] = obj
	}
	for name, obj := range domain.PhantomRegions(bounds) {
		objects[name] = obj
	}
	return &Scene{objects: objects}
}

// Object returns the named object and whether it exists.
func (s *Scene) Object(name string) (*domain.Object, bool) {
	obj, ok := s.objects[name]
	return obj, ok
}

// SortedNames returns every object name in sorted order, the iteration
// order spec.md §4.5's relevant_objects and get_next_step require for
// determinism.
func (s *Scene) SortedNames() []string {
	names := make([]string, 0, len(s.objects))
	for name := range s.objects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MovableNames returns every movable object's name, sorted.
func (s *Scene) MovableNames() []string {
	var names []string
	for name, obj := range s.objects {
		if obj.Movable {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// RegisterObservation replaces the polygons of every named object present
// in observations. Per spec.md §7's documented policy choice, unknown
// object names are ignored rather than rejecting the whole observation
// (a transient sensing glitch on one object should not stall the rest of
// the scene); ignored names are returned for the caller to log.
func (s *Scene) RegisterObservation(observations map[string]geometry.Polygon) (ignored []string) {
	for name, shape := range observations {
		obj, ok := s.objects[name]
		if !ok {
			ignored = append(ignored, name)
			continue
		}
		obj.RegisterObservation(shape)
	}
	sort.Strings(ignored)
	return ignored
}

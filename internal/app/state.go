// Package app provides application lifecycle management, state, and events.
package app

import (
	"fmt"
	"sync"

	"plan-measure/internal/image"
	"plan-measure/internal/measure"
	"plan-measure/internal/project"
	"plan-measure/internal/session"
	"plan-measure/internal/shape"
)

// State holds the application state: the current project, the floor plan
// image, calibration, shapes, and the interactive drawing session.
type State struct {
	mu sync.RWMutex

	// Project
	ProjectPath string
	Modified    bool

	// Floor plan image
	FloorPlan *image.Layer

	// Measurement core
	Calibration *measure.Calibration
	Shapes      *shape.Registry
	Session     *session.Session

	// Current selection (nil when nothing is selected)
	Selection *shape.Ref

	// Event listeners
	listeners map[EventType][]EventListener
}

// EventType identifies different application events.
type EventType int

const (
	EventProjectLoaded EventType = iota
	EventProjectSaved
	EventImageLoaded
	EventShapesChanged
	EventCalibrationChanged
	EventSelectionChanged
	EventModified
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// NewState creates a new application state.
func NewState() *State {
	cal := measure.NewCalibration()
	reg := shape.NewRegistry()
	return &State{
		Calibration: cal,
		Shapes:      reg,
		Session:     session.New(cal, reg),
		listeners:   make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// SetModified marks the project as modified and emits an event.
func (s *State) SetModified(modified bool) {
	s.mu.Lock()
	s.Modified = modified
	s.mu.Unlock()
	s.Emit(EventModified, modified)
}

// SetSelection updates the current selection and emits an event.
func (s *State) SetSelection(ref *shape.Ref) {
	s.mu.Lock()
	s.Selection = ref
	s.mu.Unlock()
	s.Emit(EventSelectionChanged, ref)
}

// ValidSelection returns the current selection, clearing and returning nil
// when it has gone stale through a registry mutation.
func (s *State) ValidSelection() *shape.Ref {
	s.mu.RLock()
	ref := s.Selection
	s.mu.RUnlock()

	if ref == nil {
		return nil
	}
	if !ref.Valid(s.Shapes) {
		s.SetSelection(nil)
		return nil
	}
	return ref
}

// DeleteSelected removes the currently selected shape. Returns false when
// nothing valid is selected.
func (s *State) DeleteSelected() bool {
	ref := s.ValidSelection()
	if ref == nil {
		return false
	}

	if !s.Shapes.Delete(ref.Kind, ref.Index) {
		return false
	}
	s.SetSelection(nil)
	s.SetModified(true)
	s.Emit(EventShapesChanged, nil)
	return true
}

// LoadImage loads a floor plan image from disk.
func (s *State) LoadImage(path string) error {
	layer, err := image.Load(path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.FloorPlan = layer
	s.mu.Unlock()

	s.SetModified(true)
	s.Emit(EventImageLoaded, layer)
	return nil
}

// NewProject resets the state to an empty untitled project.
func (s *State) NewProject() {
	s.mu.Lock()
	s.ProjectPath = ""
	s.Modified = false
	s.FloorPlan = nil
	s.Selection = nil
	s.mu.Unlock()

	s.Calibration.Reset()
	s.Shapes.Clear()
	s.Session.Reset()

	s.Emit(EventProjectLoaded, "")
	s.Emit(EventShapesChanged, nil)
	s.Emit(EventCalibrationChanged, nil)
}

// LoadProject loads a project from the specified path.
func (s *State) LoadProject(path string) error {
	doc, err := project.Load(path)
	if err != nil {
		return err
	}

	imageSrc := doc.Apply(s.Calibration, s.Shapes)
	s.Session.Reset()

	s.mu.Lock()
	s.ProjectPath = path
	s.Modified = false
	s.Selection = nil
	s.FloorPlan = nil
	s.mu.Unlock()

	// Geometry loads even when the embedded image is unreadable; the
	// image error is reported separately.
	var imgErr error
	if imageSrc != "" {
		img, err := image.DecodeDataURI(imageSrc)
		if err != nil {
			imgErr = fmt.Errorf("project image: %w", err)
		} else {
			layer := image.NewLayer()
			layer.Image = img
			s.mu.Lock()
			s.FloorPlan = layer
			s.mu.Unlock()
		}
	}

	s.Emit(EventProjectLoaded, path)
	s.Emit(EventShapesChanged, nil)
	s.Emit(EventCalibrationChanged, nil)
	return imgErr
}

// SaveProject saves the project to the specified path.
func (s *State) SaveProject(path string) error {
	var imageSrc string
	s.mu.RLock()
	floorPlan := s.FloorPlan
	s.mu.RUnlock()

	if floorPlan != nil && floorPlan.Image != nil {
		src, err := image.EncodeDataURI(floorPlan.Image)
		if err != nil {
			return fmt.Errorf("save project: %w", err)
		}
		imageSrc = src
	}

	doc := project.FromState(s.Calibration, s.Shapes, imageSrc)
	if err := doc.Save(path); err != nil {
		return fmt.Errorf("save project: %w", err)
	}

	s.mu.Lock()
	s.ProjectPath = path
	s.Modified = false
	s.mu.Unlock()

	s.Emit(EventProjectSaved, path)
	return nil
}

package shape

// Registry holds the four per-kind shape collections. Insertion order is
// z-order (last added is topmost) and the hit-test tie-break. Each
// collection carries a generation counter bumped on insert and delete so
// outstanding Refs can detect staleness.
type Registry struct {
	Polygons   []*Polygon
	Segments   []*Segment
	Rectangles []*Rectangle
	Texts      []*Text

	gens [4]uint64 // indexed by Kind
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Ref is a weak back-reference to a shape: kind, index, and the collection
// generation at resolution time. It carries no ownership; Valid reports
// whether the referenced collection has been mutated since.
type Ref struct {
	Kind  Kind
	Index int
	Gen   uint64
}

// Valid reports whether the reference still points at the shape it was
// resolved against. Any insert or delete in the same collection invalidates
// outstanding references.
func (r Ref) Valid(reg *Registry) bool {
	return r.Gen == reg.gens[r.Kind] && r.Index >= 0 && r.Index < reg.Count(r.Kind)
}

// ref builds a current-generation reference.
func (reg *Registry) ref(k Kind, index int) *Ref {
	return &Ref{Kind: k, Index: index, Gen: reg.gens[k]}
}

// RefAt builds a current-generation reference to an existing shape, or nil
// for an out-of-range index.
func (reg *Registry) RefAt(k Kind, index int) *Ref {
	if index < 0 || index >= reg.Count(k) {
		return nil
	}
	return reg.ref(k, index)
}

// AddPolygon appends a polygon and returns its reference.
func (reg *Registry) AddPolygon(p *Polygon) *Ref {
	reg.Polygons = append(reg.Polygons, p)
	reg.gens[KindPolygon]++
	return reg.ref(KindPolygon, len(reg.Polygons)-1)
}

// AddSegment appends a segment and returns its reference.
func (reg *Registry) AddSegment(s *Segment) *Ref {
	reg.Segments = append(reg.Segments, s)
	reg.gens[KindSegment]++
	return reg.ref(KindSegment, len(reg.Segments)-1)
}

// AddRectangle appends a rectangle and returns its reference.
func (reg *Registry) AddRectangle(r *Rectangle) *Ref {
	reg.Rectangles = append(reg.Rectangles, r)
	reg.gens[KindRectangle]++
	return reg.ref(KindRectangle, len(reg.Rectangles)-1)
}

// AddText appends a text label and returns its reference.
func (reg *Registry) AddText(t *Text) *Ref {
	reg.Texts = append(reg.Texts, t)
	reg.gens[KindText]++
	return reg.ref(KindText, len(reg.Texts)-1)
}

// Count returns the number of shapes of the given kind.
func (reg *Registry) Count(k Kind) int {
	switch k {
	case KindPolygon:
		return len(reg.Polygons)
	case KindRectangle:
		return len(reg.Rectangles)
	case KindSegment:
		return len(reg.Segments)
	case KindText:
		return len(reg.Texts)
	default:
		return 0
	}
}

// Total returns the number of shapes across all kinds.
func (reg *Registry) Total() int {
	return len(reg.Polygons) + len(reg.Segments) + len(reg.Rectangles) + len(reg.Texts)
}

// Delete removes the shape at index within the kind's collection, shifting
// later indices down by one. Returns false for an out-of-range index.
func (reg *Registry) Delete(k Kind, index int) bool {
	if index < 0 || index >= reg.Count(k) {
		return false
	}

	switch k {
	case KindPolygon:
		reg.Polygons = append(reg.Polygons[:index], reg.Polygons[index+1:]...)
	case KindRectangle:
		reg.Rectangles = append(reg.Rectangles[:index], reg.Rectangles[index+1:]...)
	case KindSegment:
		reg.Segments = append(reg.Segments[:index], reg.Segments[index+1:]...)
	case KindText:
		reg.Texts = append(reg.Texts[:index], reg.Texts[index+1:]...)
	}
	reg.gens[k]++
	return true
}

// Clear removes all shapes from every collection.
func (reg *Registry) Clear() {
	reg.Polygons = nil
	reg.Segments = nil
	reg.Rectangles = nil
	reg.Texts = nil
	for k := range reg.gens {
		reg.gens[k]++
	}
}

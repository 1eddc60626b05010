package measure

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"plan-measure/internal/shape"
)

// Summary aggregates the measured quantities of every shape in a registry,
// converted to real-world units by a calibration.
type Summary struct {
	SegmentCount int
	TotalLength  float64 // meters, across segments
	MeanLength   float64 // meters
	RegionCount  int     // polygons + rectangles
	TotalArea    float64 // square meters
	MeanArea     float64 // square meters
	TextCount    int
}

// Summarize computes summary statistics over the registry.
func Summarize(reg *shape.Registry, cal *Calibration) Summary {
	lengths := make([]float64, 0, len(reg.Segments))
	for _, s := range reg.Segments {
		lengths = append(lengths, cal.Length(s.PixelLength()))
	}

	areas := make([]float64, 0, len(reg.Polygons)+len(reg.Rectangles))
	for _, p := range reg.Polygons {
		areas = append(areas, cal.Area(p.PixelArea()))
	}
	for _, r := range reg.Rectangles {
		areas = append(areas, cal.Area(r.PixelArea()))
	}

	sum := Summary{
		SegmentCount: len(lengths),
		RegionCount:  len(areas),
		TextCount:    len(reg.Texts),
	}
	if len(lengths) > 0 {
		sum.TotalLength = floats.Sum(lengths)
		sum.MeanLength = stat.Mean(lengths, nil)
	}
	if len(areas) > 0 {
		sum.TotalArea = floats.Sum(areas)
		sum.MeanArea = stat.Mean(areas, nil)
	}
	return sum
}

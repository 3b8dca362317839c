package plot

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/floats/scalar"
)

// Description labels a special point.
type Description string

// Descriptions sort alphabetically by their text.
const (
	Intersection Description = "Intersection"
	Maximum      Description = "Maximum"
	Minimum      Description = "Minimum"
	YIntercept   Description = "Y-Intercept"
	Zero         Description = "Zero"
)

// SpecialPoint is a labelled location on one function's curve.
type SpecialPoint struct {
	X, Y         float64
	Index        int
	Descriptions []Description // sorted, unique
}

// Has reports whether p carries d.
func (p SpecialPoint) Has(d Description) bool {
	_, found := slices.BinarySearch(p.Descriptions, d)
	return found
}

func (p SpecialPoint) String() string {
	labels := make([]string, len(p.Descriptions))
	for i, d := range p.Descriptions {
		labels[i] = string(d)
	}
	return fmt.Sprintf("(%v, %v) [%s]", p.X, p.Y, strings.Join(labels, ", "))
}

// PointSet holds special points, merging discoveries that share the same
// rounded x on the same function.
type PointSet struct {
	points []SpecialPoint
}

// Reset drops every point.
func (s *PointSet) Reset() {
	s.points = s.points[:0]
}

// Len returns the number of points.
func (s *PointSet) Len() int {
	return len(s.points)
}

// Points returns a copy of the points in discovery order.
func (s *PointSet) Points() []SpecialPoint {
	out := make([]SpecialPoint, len(s.points))
	for i, p := range s.points {
		p.Descriptions = slices.Clone(p.Descriptions)
		out[i] = p
	}
	return out
}

// Add records d at x on function index, rounding x to digits decimals.
// If a point with the same rounded x and index exists, d is merged into
// it and y is ignored; ok reports whether a point was created or changed.
func (s *PointSet) Add(x, y float64, index int, d Description, digits int) bool {
	x = roundTo(x, digits)
	for i := range s.points {
		p := &s.points[i]
		if p.Index != index || p.X != x {
			continue
		}
		at, found := slices.BinarySearch(p.Descriptions, d)
		if found {
			return false
		}
		p.Descriptions = slices.Insert(p.Descriptions, at, d)
		return true
	}
	if d == Zero {
		y = 0
	}
	s.points = append(s.points, SpecialPoint{
		X:            x,
		Y:            roundTo(y, digits),
		Index:        index,
		Descriptions: []Description{d},
	})
	return true
}

// Find returns the point at rounded x on function index.
func (s *PointSet) Find(x float64, index int, digits int) (SpecialPoint, bool) {
	x = roundTo(x, digits)
	for _, p := range s.points {
		if p.Index == index && p.X == x {
			return p, true
		}
	}
	return SpecialPoint{}, false
}

func roundTo(v float64, digits int) float64 {
	v = scalar.Round(v, digits)
	if v == 0 {
		return 0
	}
	return v
}

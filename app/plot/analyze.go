package plot

import (
	"log/slog"
	"math"
	"time"

	"gonum.org/v1/gonum/floats/scalar"

	"graphplot/app/lang"
)

// maxGoldenIterations caps golden-section search when x is so large that
// the bracket can no longer shrink in float64.
const maxGoldenIterations = 200

// settleSpan is the distance, in refinement thresholds, at which settles
// compares |f| against the refined point.
const settleSpan = 16

var goldenRatio = (1 + math.Sqrt(5)) / 2

// Analyzer finds zeros, extrema, intersections and y-intercepts by
// sampling functions through the evaluation cache.
type Analyzer struct {
	cache       *Cache
	sensitivity float64
	log         *slog.Logger
}

// NewAnalyzer returns an analyzer evaluating through cache.
func NewAnalyzer(cache *Cache, cfg Config) *Analyzer {
	return &Analyzer{cache: cache, sensitivity: cfg.Sensitivity, log: cfg.logger("analyzer")}
}

type label struct {
	index int
	d     Description
}

type sample struct {
	y  float64
	ok bool
}

// sweep is the state of one Analyze call.
type sweep struct {
	a         *Analyzer
	fns       []*lang.Function
	points    *PointSet
	stepSize  float64
	threshold float64 // refinement precision
	near      float64 // tolerance for "close to zero" and "close to another curve"
	digits    int     // decimals kept when merging points

	testRun bool
	last    []sample
	last2   []sample
	labels  map[label]bool // recorded at the previous step
	current map[label]bool
}

// Analyze sweeps [start, end] in steps of stepSize and adds what it finds
// to points. stepSize is derived from the visible width, not from the
// swept range, so incremental sweeps use the same precision as full ones.
// The first step lies before start and only primes the sample history.
func (a *Analyzer) Analyze(fns []*lang.Function, start, end, stepSize float64, points *PointSet) {
	if !(stepSize > 0) || !(end > start) {
		return
	}
	began := time.Now()
	threshold := stepSize / a.sensitivity
	s := &sweep{
		a:         a,
		fns:       fns,
		points:    points,
		stepSize:  stepSize,
		threshold: threshold,
		near:      threshold * 100,
		digits:    PointDigits(stepSize, a.sensitivity),
		testRun:   true,
		labels:    map[label]bool{},
	}

	before := points.Len()
	for k := 0; ; k++ {
		x := start + float64(k-1)*stepSize
		if x >= end {
			break
		}
		s.step(x)
	}

	for i, fn := range fns {
		if y, ok := a.cache.Get(fn, 0); ok {
			s.add(0, y, i, YIntercept)
		}
	}

	a.log.Debug("analysis done",
		slog.Float64("start", start),
		slog.Float64("end", end),
		slog.Float64("step", stepSize),
		slog.Int("new_points", points.Len()-before),
		slog.Duration("took", time.Since(began)))
}

// PointDigits returns the number of decimals special points are rounded to
// for a sampling step: two digits above the refinement precision.
func PointDigits(stepSize, sensitivity float64) int {
	tol := stepSize / sensitivity * 2
	return -int(math.Ceil(math.Log10(tol))) - 1
}

func (s *sweep) eval(i int, x float64) (float64, bool) {
	return s.a.cache.Get(s.fns[i], x)
}

func (s *sweep) step(x float64) {
	values := make([]sample, len(s.fns))
	for i := range s.fns {
		values[i].y, values[i].ok = s.eval(i, x)
	}
	s.current = map[label]bool{}

	for i, v := range values {
		if !v.ok {
			continue
		}
		s.zeros(i, x, v)
		for j := i + 1; j < len(values); j++ {
			if values[j].ok {
				s.intersections(i, j, x, v, values[j])
			}
		}
	}
	if s.last2 != nil {
		for i, v := range values {
			s.extremum(i, x, v)
		}
	}

	s.last2, s.last = s.last, values
	s.labels = s.current
	s.testRun = false
}

func (s *sweep) zeros(i int, x float64, v sample) {
	if v.y == 0 {
		s.record(x, i, Zero)
		return
	}
	if s.last == nil || !s.last[i].ok {
		return
	}
	prev := s.last[i].y
	if !oppositeSigns(prev, v.y) {
		return
	}
	f := func(t float64) (float64, bool) { return s.eval(i, t) }
	root, ok := s.bisect(f, x, prev)
	if !ok || !s.settles(f, root, prev, v.y) {
		return
	}
	s.record(root, i, Zero)
}

func (s *sweep) intersections(i, j int, x float64, vi, vj sample) {
	if vi.y == vj.y {
		s.record(x, i, Intersection)
		s.record(x, j, Intersection)
		return
	}
	if s.last == nil || !s.last[i].ok || !s.last[j].ok {
		return
	}
	prev := s.last[i].y - s.last[j].y
	cur := vi.y - vj.y
	if !oppositeSigns(prev, cur) {
		return
	}
	diff := func(t float64) (float64, bool) {
		a, ok := s.eval(i, t)
		if !ok {
			return 0, false
		}
		b, ok := s.eval(j, t)
		if !ok {
			return 0, false
		}
		return a - b, true
	}
	at, ok := s.bisect(diff, x, prev)
	if !ok || !s.settles(diff, at, prev, cur) {
		return
	}
	s.record(at, i, Intersection)
	s.record(at, j, Intersection)
}

func (s *sweep) extremum(i int, x float64, v sample) {
	l1, l2 := s.last[i], s.last2[i]
	if !v.ok || !l1.ok || !l2.ok {
		return
	}
	isMax := l1.y > l2.y && l1.y > v.y
	isMin := l1.y < l2.y && l1.y < v.y
	if !isMax && !isMin {
		return
	}
	dir := sign(l1.y - l2.y)
	f := func(t float64) (float64, bool) { return s.eval(i, t) }
	ex, ok := s.goldenSection(f, x, dir)
	if !ok {
		return
	}
	ey, ok := f(ex)
	// A pole between samples drags the search away from the samples.
	if !ok || math.Abs(ey-l1.y) > math.Abs(l1.y-l2.y)+math.Abs(v.y-l1.y) {
		return
	}

	if isMax {
		s.record(ex, i, Maximum)
	} else {
		s.record(ex, i, Minimum)
	}
	if scalar.EqualWithinAbs(ey, 0, s.near) {
		s.record(ex, i, Zero)
	}
	for j := range s.fns {
		if j == i {
			continue
		}
		yj, ok := s.eval(j, ex)
		if ok && scalar.EqualWithinAbs(ey, yj, s.near) {
			s.record(ex, i, Intersection)
			s.record(ex, j, Intersection)
		}
	}
}

// bisect narrows a sign change of f between x-stepSize and x. prev is the
// value at x-stepSize. It gives up if f is undefined at any midpoint.
func (s *sweep) bisect(f func(float64) (float64, bool), x, prev float64) (float64, bool) {
	step := s.stepSize / 4
	mid := x - s.stepSize/2
	for step > s.threshold {
		v, ok := f(mid)
		if !ok {
			return 0, false
		}
		if v == 0 {
			break
		}
		if sign(v) == sign(prev) {
			mid += step
		} else {
			mid -= step
		}
		step /= 2
	}
	return mid, true
}

// settles reports whether the refined point at is a root rather than a
// pole. Away from a root |f| grows; away from a pole it shrinks.
func (s *sweep) settles(f func(float64) (float64, bool), at, prev, cur float64) bool {
	v, ok := f(at)
	if !ok {
		return false
	}
	v = math.Abs(v)
	if v <= s.near {
		return true
	}
	d := settleSpan * s.threshold
	sampled := false
	for _, t := range []float64{at - d, at + d} {
		w, ok := f(t)
		if !ok {
			continue
		}
		if math.Abs(w) > v {
			return true
		}
		sampled = true
	}
	if sampled {
		return false
	}
	return v <= math.Max(math.Abs(prev), math.Abs(cur))
}

// goldenSection searches [x-2·stepSize, x] for a maximum (dir 1) or a
// minimum (dir -1) and returns the midpoint of the final bracket.
func (s *sweep) goldenSection(f func(float64) (float64, bool), x, dir float64) (float64, bool) {
	a, b := x-2*s.stepSize, x
	for n := 0; b-a > s.threshold && n < maxGoldenIterations; n++ {
		c := (goldenRatio*a + b) / (1 + goldenRatio)
		d := a + b - c
		cy, ok := f(c)
		if !ok {
			return 0, false
		}
		dy, ok := f(d)
		if !ok {
			return 0, false
		}
		switch sign(dy - cy) {
		case 0:
			return (a + b) / 2, true
		case dir:
			a = c
		default:
			b = d
		}
	}
	return (a + b) / 2, true
}

// record adds d for function i at x unless the previous step already
// found the same label, which means the same feature is continuing.
func (s *sweep) record(x float64, i int, d Description) {
	l := label{i, d}
	s.current[l] = true
	if s.testRun || s.labels[l] {
		return
	}
	s.add(x, 0, i, d)
}

func (s *sweep) add(x, y float64, i int, d Description) {
	rx := roundTo(x, s.digits)
	if d != Zero {
		v, ok := s.eval(i, rx)
		if !ok {
			if v, ok = s.eval(i, x); !ok {
				return
			}
		}
		y = v
	}
	s.points.Add(rx, y, i, d, s.digits)
}

func oppositeSigns(a, b float64) bool {
	return (a < 0 && b > 0) || (a > 0 && b < 0)
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

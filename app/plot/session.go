package plot

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"golang.org/x/time/rate"

	"graphplot/app/lang"
)

// CurvePoint is one renderer sample. OK is false where the function is
// undefined, which breaks the line.
type CurvePoint struct {
	X, Y float64
	OK   bool
}

// Session is the application root: the function slots, their dependency
// graph, the evaluation cache, the viewport and the special points found
// on the visible curves. It is not safe for concurrent use.
type Session struct {
	cfg      Config
	log      *slog.Logger
	reg      *Registry
	resolver *Resolver
	cache    *Cache
	analyzer *Analyzer
	view     Viewport
	points   PointSet

	analysedMinX, analysedMaxX float64
	periodic                   rate.Sometimes
}

// NewSession creates a session for a width×height pixel canvas.
func NewSession(width, height float64, opts ...Option) (*Session, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("plot: canvas size %vx%v must be positive", width, height)
	}
	cfg := NewConfig(opts...)
	cache, err := NewCache(cfg.CacheSize)
	if err != nil {
		return nil, err
	}
	reg := NewRegistry(cfg)
	s := &Session{
		cfg:      cfg,
		log:      cfg.logger("session"),
		reg:      reg,
		resolver: NewResolver(reg, cfg),
		cache:    cache,
		analyzer: NewAnalyzer(cache, cfg),
		view:     NewViewport(width, height, cfg.PixelsPerUnit),
	}
	if cfg.ReanalyzeInterval > 0 {
		s.periodic = rate.Sometimes{Interval: cfg.ReanalyzeInterval}
	} else {
		s.periodic = rate.Sometimes{Every: 1}
	}
	s.analysedMinX, s.analysedMaxX = s.view.MinX, s.view.MaxX
	return s, nil
}

// Registry exposes the function slots.
func (s *Session) Registry() *Registry { return s.reg }

// Resolver exposes the dependency graph.
func (s *Session) Resolver() *Resolver { return s.resolver }

// Viewport returns the current viewport.
func (s *Session) Viewport() Viewport { return s.view }

// SetText replaces the text of slot, recompiles it and every slot that
// depends on it, and re-analyses the whole visible range.
func (s *Session) SetText(slot int, raw string) error {
	if err := s.reg.SetText(slot, raw); err != nil {
		return err
	}
	origins := s.recompile(slot)
	for _, dep := range s.resolver.PropagationOrder(origins...) {
		s.recompile(dep)
	}
	s.AnalyzeAll()
	return nil
}

// recompile resolves and compiles one slot and returns the slots whose
// function changed: the slot itself plus any slot forced into the error
// state by a cycle.
func (s *Session) recompile(slot int) []int {
	text := s.reg.Text(slot)
	resolved, err := s.resolver.Resolve(slot, text)

	var cycle *CycleError
	switch {
	case errors.As(err, &cycle):
		for _, i := range cycle.Slots {
			source := s.reg.SourceString(i)
			if i == slot {
				source = lang.Normalize(text)
			}
			s.reg.Replace(i, lang.ErrorFunction(source, err))
		}
		return cycle.Slots
	case err != nil:
		s.log.Debug("reference failed", slog.Int("slot", slot), slog.Any("err", err))
		s.reg.Replace(slot, lang.ErrorFunction(lang.Normalize(text), err))
		return []int{slot}
	}

	fn := lang.Compile(lang.Normalize(resolved), s.cfg.Variable)
	s.reg.Replace(slot, fn)
	s.log.Debug("compiled",
		slog.Int("slot", slot),
		slog.String("source", fn.Source),
		slog.String("status", fn.Status.String()),
		slog.Int("tier", fn.Tier),
		slog.Any("err", fn.Err))
	return []int{slot}
}

// AnalyzeAll clears the special points and sweeps the visible range.
func (s *Session) AnalyzeAll() {
	s.points.Reset()
	s.analysedMinX, s.analysedMaxX = s.view.MinX, s.view.MaxX
	s.analyze(s.view.MinX, s.view.MaxX)
}

func (s *Session) analyze(start, end float64) {
	s.analyzer.Analyze(s.reg.Functions(), start, end, s.view.StepSize(s.cfg.Divisions), &s.points)
}

// Tick re-analyses the visible range at most once per ReanalyzeInterval
// and reports whether it did.
func (s *Session) Tick() bool {
	ran := false
	s.periodic.Do(func() {
		s.AnalyzeAll()
		ran = true
	})
	return ran
}

// precisionChanged reports whether the visible span differs from the last
// fully analysed span by more than a factor of ten.
func (s *Session) precisionChanged() bool {
	span := s.view.SpanX()
	analysed := s.analysedMaxX - s.analysedMinX
	return span*10 < analysed || span > analysed*10
}

// Zoom zooms about the pixel (px, py) and analyses what became visible.
func (s *Session) Zoom(px, py float64, in bool) bool {
	oldMin, oldMax, changeX, ok := s.view.Zoom(px, py, in, s.cfg.ZoomSpeed)
	if !ok {
		return false
	}
	switch {
	case s.precisionChanged():
		s.AnalyzeAll()
	case changeX > 0:
		s.analyze(s.view.MinX, oldMin)
		s.analyze(oldMax, s.view.MaxX)
	}
	return true
}

// Move pans by a pixel drag and analyses the exposed strip.
func (s *Session) Move(dxPixels, dyPixels float64) {
	changeX := s.view.Move(dxPixels, dyPixels)
	if changeX > 0 {
		s.analyze(s.view.MaxX-changeX, s.view.MaxX)
	} else {
		s.analyze(s.view.MinX, s.view.MinX-changeX)
	}
}

// Resize changes the canvas size in pixels.
func (s *Session) Resize(width, height float64) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("plot: canvas size %vx%v must be positive", width, height)
	}
	oldMin, oldMax := s.view.MinX, s.view.MaxX
	s.view.Resize(width, height)
	s.analyzeExposed(oldMin, oldMax)
	return nil
}

// SetViewport installs an externally computed visible rectangle.
func (s *Session) SetViewport(minX, maxX, minY, maxY float64) error {
	next := s.view
	next.MinX, next.MaxX, next.MinY, next.MaxY = minX, maxX, minY, maxY
	if !next.valid() {
		return fmt.Errorf("plot: invalid viewport [%v, %v]x[%v, %v]", minX, maxX, minY, maxY)
	}
	oldMin, oldMax := s.view.MinX, s.view.MaxX
	s.view = next
	s.analyzeExposed(oldMin, oldMax)
	return nil
}

// analyzeExposed sweeps whatever part of the visible x range lies outside
// [oldMin, oldMax], or everything if the precision changed.
func (s *Session) analyzeExposed(oldMin, oldMax float64) {
	if s.precisionChanged() || s.view.MaxX <= oldMin || s.view.MinX >= oldMax {
		s.AnalyzeAll()
		return
	}
	if s.view.MinX < oldMin {
		s.analyze(s.view.MinX, oldMin)
	}
	if s.view.MaxX > oldMax {
		s.analyze(oldMax, s.view.MaxX)
	}
}

// Evaluate returns the value of slot at x through the cache.
func (s *Session) Evaluate(slot int, x float64) (float64, bool) {
	fn, err := s.reg.Get(slot)
	if err != nil {
		return 0, false
	}
	return s.cache.Get(fn, x)
}

// Curve samples slot every pixelStep pixels across the canvas.
func (s *Session) Curve(slot int, pixelStep float64) ([]CurvePoint, error) {
	fn, err := s.reg.Get(slot)
	if err != nil {
		return nil, err
	}
	if !(pixelStep > 0) {
		return nil, fmt.Errorf("plot: pixel step %v must be positive", pixelStep)
	}
	if !fn.Valid() {
		return nil, nil
	}
	n := int(math.Ceil(s.view.Width / pixelStep))
	curve := make([]CurvePoint, 0, n)
	for px := 0.0; px < s.view.Width; px += pixelStep {
		x, _ := s.view.ToUnits(px, 0)
		y, ok := s.cache.Get(fn, x)
		curve = append(curve, CurvePoint{X: x, Y: y, OK: ok})
	}
	return curve, nil
}

// Points returns the current special points.
func (s *Session) Points() []SpecialPoint {
	return s.points.Points()
}

// PointNear returns the point within radius pixels of (px, py) carrying
// the most descriptions.
func (s *Session) PointNear(px, py, radius float64) (SpecialPoint, bool) {
	var best SpecialPoint
	found := false
	for _, p := range s.points.Points() {
		x, y := s.view.ToPixels(p.X, p.Y)
		if math.Abs(x-px) >= radius || math.Abs(y-py) >= radius {
			continue
		}
		if !found || len(p.Descriptions) > len(best.Descriptions) {
			best, found = p, true
		}
	}
	return best, found
}

// SourceString returns the compiled expression of slot.
func (s *Session) SourceString(slot int) string { return s.reg.SourceString(slot) }

// ConstantDisplayString returns " = value" for a constant slot.
func (s *Session) ConstantDisplayString(slot int) string { return s.reg.ConstantDisplayString(slot) }

// IsValid reports whether slot can be plotted.
func (s *Session) IsValid(slot int) bool { return s.reg.IsValid(slot) }

// Status returns the state of slot.
func (s *Session) Status(slot int) lang.Status { return s.reg.Status(slot) }

// CacheStats returns the evaluation cache counters.
func (s *Session) CacheStats() CacheStats { return s.cache.Stats() }

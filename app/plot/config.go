package plot

import (
	"log/slog"
	"time"
)

// SlotCount is the fixed number of function slots.
const SlotCount = 10

const (
	// MinSpan and MaxSpan bound the visible x range reachable by zooming.
	MinSpan = 1e-8
	MaxSpan = 1e8
)

// Config holds the tunables shared by the registry, resolver, cache and
// analyzer.
type Config struct {
	// Sensitivity divides the sampling step to get the refinement precision.
	Sensitivity float64
	// Divisions is the number of sampling steps across the visible width.
	Divisions float64
	// CacheSize bounds the evaluation cache (entries, all functions).
	CacheSize int
	// ReanalyzeInterval throttles periodic full re-analysis.
	ReanalyzeInterval time.Duration
	// ZoomSpeed is the fraction of the span added or removed per zoom step.
	ZoomSpeed float64
	// BaseLetter names slot 0; slot i is BaseLetter+i.
	BaseLetter byte
	// Variable is the designated variable.
	Variable string
	// PixelsPerUnit sets the initial scale.
	PixelsPerUnit float64

	Logger *slog.Logger
}

// Option customizes a Config.
type Option func(*Config)

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		Sensitivity:       100000,
		Divisions:         100,
		CacheSize:         100000,
		ReanalyzeInterval: 500 * time.Millisecond,
		ZoomSpeed:         0.08,
		BaseLetter:        'f',
		Variable:          "x",
		PixelsPerUnit:     50,
	}
}

// NewConfig applies opts on top of DefaultConfig.
func NewConfig(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return cfg
}

// WithSensitivity sets the refinement sensitivity. Panics on s <= 0.
func WithSensitivity(s float64) Option {
	if s <= 0 {
		panic("plot: WithSensitivity requires a positive value")
	}
	return func(c *Config) { c.Sensitivity = s }
}

// WithDivisions sets the number of sampling steps per visible width.
// Panics on n <= 0.
func WithDivisions(n float64) Option {
	if n <= 0 {
		panic("plot: WithDivisions requires a positive value")
	}
	return func(c *Config) { c.Divisions = n }
}

// WithCacheSize sets the evaluation cache capacity. Panics on n <= 0.
func WithCacheSize(n int) Option {
	if n <= 0 {
		panic("plot: WithCacheSize requires a positive size")
	}
	return func(c *Config) { c.CacheSize = n }
}

// WithReanalyzeInterval sets the minimum time between periodic
// re-analyses. Zero re-analyses on every tick.
func WithReanalyzeInterval(d time.Duration) Option {
	return func(c *Config) { c.ReanalyzeInterval = d }
}

// WithZoomSpeed sets the zoom step fraction. Panics outside (0, 1).
func WithZoomSpeed(s float64) Option {
	if s <= 0 || s >= 1 {
		panic("plot: WithZoomSpeed requires a value in (0, 1)")
	}
	return func(c *Config) { c.ZoomSpeed = s }
}

// WithBaseLetter sets the name of slot 0. Panics unless the ten slot
// names are all lower-case letters.
func WithBaseLetter(b byte) Option {
	if b < 'a' || b+SlotCount-1 > 'z' {
		panic("plot: WithBaseLetter requires a lower-case letter with room for all slots")
	}
	return func(c *Config) { c.BaseLetter = b }
}

// WithLogger sets the logger components derive theirs from.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) { c.Logger = l }
}

func (c Config) logger(component string) *slog.Logger {
	l := c.Logger
	if l == nil {
		l = slog.Default()
	}
	return l.With(slog.String("component", component))
}

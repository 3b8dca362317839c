package plot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewViewport(t *testing.T) {
	v := NewViewport(800, 600, 50)
	assert.Equal(t, -8.0, v.MinX)
	assert.Equal(t, 8.0, v.MaxX)
	assert.Equal(t, -6.0, v.MinY)
	assert.Equal(t, 6.0, v.MaxY)
}

func TestMapValue(t *testing.T) {
	assert.Equal(t, 5.0, MapValue(0.5, 0, 1, 0, 10))
	assert.Equal(t, 10.0, MapValue(0, 0, 1, 10, 0))
	assert.Equal(t, -1.0, MapValue(0, 1, 2, 0, 1))
}

func TestViewportPixelRoundTrip(t *testing.T) {
	v := NewViewport(800, 600, 50)
	x, y := v.ToUnits(400, 300)
	assert.InDelta(t, 0, x, 1e-12)
	assert.InDelta(t, 0, y, 1e-12)

	x, y = v.ToUnits(0, 0)
	assert.Equal(t, -8.0, x)
	assert.Equal(t, 6.0, y, "pixel y grows downwards")

	px, py := v.ToPixels(2, -3)
	x, y = v.ToUnits(px, py)
	assert.InDelta(t, 2, x, 1e-12)
	assert.InDelta(t, -3, y, 1e-12)
}

func TestViewportZoomKeepsPointer(t *testing.T) {
	v := NewViewport(800, 600, 50)
	px, py := 600.0, 150.0
	ux, uy := v.ToUnits(px, py)

	oldMin, oldMax, change, ok := v.Zoom(px, py, true, 0.08)
	assert.True(t, ok)
	assert.Equal(t, -8.0, oldMin)
	assert.Equal(t, 8.0, oldMax)
	assert.InDelta(t, -0.08*16, change, 1e-12)
	assert.InDelta(t, 16*0.92, v.SpanX(), 1e-9)

	nx, ny := v.ToUnits(px, py)
	assert.InDelta(t, ux, nx, 1e-9)
	assert.InDelta(t, uy, ny, 1e-9)

	_, _, change, ok = v.Zoom(px, py, false, 0.08)
	assert.True(t, ok)
	assert.Greater(t, change, 0.0)
}

func TestViewportZoomLimits(t *testing.T) {
	v := Viewport{Width: 100, Height: 100, MinX: 0, MaxX: MinSpan / 2, MinY: 0, MaxY: 1}
	_, _, _, ok := v.Zoom(50, 50, true, 0.08)
	assert.False(t, ok)

	v = Viewport{Width: 100, Height: 100, MinX: 0, MaxX: MaxSpan * 2, MinY: 0, MaxY: 1}
	_, _, _, ok = v.Zoom(50, 50, false, 0.08)
	assert.False(t, ok)
}

func TestViewportMove(t *testing.T) {
	v := NewViewport(800, 600, 50)
	change := v.Move(100, 50)
	assert.Equal(t, -2.0, change, "dragging right shows what lies to the left")
	assert.Equal(t, -10.0, v.MinX)
	assert.Equal(t, 6.0, v.MaxX)
	assert.Equal(t, -5.0, v.MinY)
	assert.Equal(t, 7.0, v.MaxY)
}

func TestViewportResize(t *testing.T) {
	v := NewViewport(800, 600, 50)
	v.Resize(1000, 500)
	assert.InDelta(t, -10, v.MinX, 1e-12)
	assert.InDelta(t, 10, v.MaxX, 1e-12)
	assert.InDelta(t, -5, v.MinY, 1e-12)
	assert.InDelta(t, 5, v.MaxY, 1e-12)
	assert.Equal(t, 1000.0, v.Width)
}

func TestGridUnit(t *testing.T) {
	tests := []struct {
		span  float64
		unit  float64
		power int
	}{
		{16, 2, 0},       // 100px = 2 units
		{24, 2, 0},       // 100px = 3 units
		{56, 5, 0},       // 100px = 7 units
		{400, 50, 1},     // 100px = 50 units
		{1.6, 0.2, -1},   // 100px = 0.2 units
		{0.56, 0.05, -2}, // 100px = 0.07 units
	}
	for _, tt := range tests {
		v := Viewport{Width: 800, Height: 600, MinX: 0, MaxX: tt.span, MinY: 0, MaxY: 1}
		unit, power := v.GridUnit()
		assert.InDelta(t, tt.unit, unit, 1e-12, "span %v", tt.span)
		assert.Equal(t, tt.power, power, "span %v", tt.span)
	}
}

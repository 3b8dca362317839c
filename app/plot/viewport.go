package plot

import "math"

// Viewport maps between a pixel rectangle and the visible unit rectangle.
// Pixel y grows downwards; unit y grows upwards.
type Viewport struct {
	Width, Height float64 // pixels
	MinX, MaxX    float64
	MinY, MaxY    float64
}

// NewViewport centres the origin, showing pixelsPerUnit pixels per unit.
func NewViewport(width, height, pixelsPerUnit float64) Viewport {
	hx := width / pixelsPerUnit / 2
	hy := height / pixelsPerUnit / 2
	return Viewport{Width: width, Height: height, MinX: -hx, MaxX: hx, MinY: -hy, MaxY: hy}
}

// MapValue maps v linearly from [low1, high1] onto [low2, high2].
func MapValue(v, low1, high1, low2, high2 float64) float64 {
	return low2 + (v-low1)*(high2-low2)/(high1-low1)
}

// SpanX returns the visible width in units.
func (v *Viewport) SpanX() float64 { return v.MaxX - v.MinX }

// SpanY returns the visible height in units.
func (v *Viewport) SpanY() float64 { return v.MaxY - v.MinY }

// ToUnits converts a pixel position to unit coordinates.
func (v *Viewport) ToUnits(px, py float64) (x, y float64) {
	return MapValue(px, 0, v.Width, v.MinX, v.MaxX), MapValue(py, 0, v.Height, v.MaxY, v.MinY)
}

// ToPixels converts unit coordinates to a pixel position.
func (v *Viewport) ToPixels(x, y float64) (px, py float64) {
	return MapValue(x, v.MinX, v.MaxX, 0, v.Width), MapValue(y, v.MinY, v.MaxY, v.Height, 0)
}

// Zoom zooms in or out by speed about the pixel (px, py), keeping the unit
// position under it fixed. It returns the previous x range, the change of
// the x span and false if the span limits forbid the zoom.
func (v *Viewport) Zoom(px, py float64, in bool, speed float64) (prevMinX, prevMaxX, changeX float64, changed bool) {
	prevMinX, prevMaxX = v.MinX, v.MaxX
	var changeY float64
	if in {
		if v.SpanX() < MinSpan || v.SpanY() < MinSpan {
			return prevMinX, prevMaxX, 0, false
		}
		changeX, changeY = -speed*v.SpanX(), -speed*v.SpanY()
	} else {
		if v.SpanX() > MaxSpan || v.SpanY() > MaxSpan {
			return prevMinX, prevMaxX, 0, false
		}
		changeX, changeY = speed*v.SpanX(), speed*v.SpanY()
	}

	ux, uy := v.ToUnits(px, py)
	minXChange := (ux - v.MinX) * (1 - (v.SpanX()+changeX)/v.SpanX())
	minYChange := (uy - v.MinY) * (1 - (v.SpanY()+changeY)/v.SpanY())
	v.MinX += minXChange
	v.MaxX += minXChange + changeX
	v.MinY += minYChange
	v.MaxY += minYChange + changeY
	return prevMinX, prevMaxX, changeX, true
}

// Move pans by a pixel drag and returns the change in x units. Dragging
// right moves the view left.
func (v *Viewport) Move(dxPixels, dyPixels float64) (changeX float64) {
	changeX = -MapValue(dxPixels, 0, v.Width, 0, v.SpanX())
	changeY := MapValue(dyPixels, 0, v.Height, 0, v.SpanY())
	v.MinX += changeX
	v.MaxX += changeX
	v.MinY += changeY
	v.MaxY += changeY
	return changeX
}

// Resize changes the pixel size, keeping the scale and growing or
// shrinking the unit rectangle evenly on both sides.
func (v *Viewport) Resize(width, height float64) {
	pixel := v.SpanX() / v.Width
	changeX := (width - v.Width) * pixel
	changeY := (height - v.Height) * pixel
	v.MinX -= changeX / 2
	v.MaxX += changeX / 2
	v.MinY -= changeY / 2
	v.MaxY += changeY / 2
	v.Width, v.Height = width, height
}

// GridUnit returns the largest unit of the form 1, 2 or 5 times 10^power
// that spans less than 100 pixels.
func (v *Viewport) GridUnit() (unit float64, power int) {
	limit := MapValue(100, 0, v.Width, 0, v.SpanX())
	unit = 1
	if unit < limit {
		for unit*10 < limit {
			unit *= 10
			power++
		}
	} else {
		for unit > limit {
			unit /= 10
			power--
		}
	}
	switch first := limit / unit; {
	case first < 2:
	case first < 5:
		unit *= 2
	default:
		unit *= 5
	}
	return unit, power
}

// StepSize returns the sampling step for divisions steps per visible width.
func (v *Viewport) StepSize(divisions float64) float64 {
	return v.SpanX() / divisions
}

func (v *Viewport) valid() bool {
	return v.Width > 0 && v.Height > 0 && v.MaxX > v.MinX && v.MaxY > v.MinY &&
		!math.IsInf(v.SpanX(), 0) && !math.IsInf(v.SpanY(), 0)
}

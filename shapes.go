package st7789

import (
	"fmt"
	"image"

	"periph.io/x/devices/v3/st7789/rgb565"
)

// Region is an inclusive rectangular addressing window in logical
// coordinates.
type Region struct {
	X0, Y0 int
	X1, Y1 int
}

// RegionOf returns the Region covering the half-open rectangle r.
func RegionOf(r image.Rectangle) Region {
	return Region{X0: r.Min.X, Y0: r.Min.Y, X1: r.Max.X - 1, Y1: r.Max.Y - 1}
}

// Rect returns r as a half-open image.Rectangle.
func (r Region) Rect() image.Rectangle {
	return image.Rect(r.X0, r.Y0, r.X1+1, r.Y1+1)
}

// Width returns the number of columns in r.
func (r Region) Width() int { return r.X1 - r.X0 + 1 }

// Height returns the number of rows in r.
func (r Region) Height() int { return r.Y1 - r.Y0 + 1 }

// Area returns the number of pixels a write to r must carry.
func (r Region) Area() int {
	return r.Width() * r.Height()
}

// In reports whether r is well formed and lies within bounds.
func (r Region) In(bounds image.Rectangle) bool {
	return r.X0 <= r.X1 && r.Y0 <= r.Y1 && r.Rect().In(bounds)
}

func (r Region) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", r.X0, r.Y0, r.X1, r.Y1)
}

// Primitive is a shape that DrawPrimitive can rasterize. The set is closed:
// it is implemented by Line, Circle and Triangle only.
type Primitive interface {
	primitive()
}

// Line is a segment between two points, both included.
type Line struct {
	P0, P1 image.Point
}

// Circle is a circle of the given radius around Center.
type Circle struct {
	Center image.Point
	Radius int
}

// Triangle is the triangle spanned by three points.
type Triangle struct {
	P0, P1, P2 image.Point
}

func (Line) primitive()     {}
func (Circle) primitive()   {}
func (Triangle) primitive() {}

// Style describes how a Primitive is painted. A Style with neither stroke
// nor fill draws nothing. Lines only use the stroke.
type Style struct {
	StrokeColor rgb565.Color
	// StrokeWidth is the outline thickness in pixels. A wide line is drawn
	// as copies of the 1 pixel line shifted along its minor axis, so it is
	// StrokeWidth pixels thick horizontally or vertically but only about
	// StrokeWidth/√2 across at 45°. Triangles only support a width of 1.
	StrokeWidth uint32
	HasStroke   bool

	FillColor rgb565.Color
	HasFill   bool
}

// StrokeStyle returns a Style that outlines with c at the given width.
func StrokeStyle(c rgb565.Color, width uint32) Style {
	return Style{StrokeColor: c, StrokeWidth: width, HasStroke: true}
}

// FillStyle returns a Style that fills with c.
func FillStyle(c rgb565.Color) Style {
	return Style{FillColor: c, HasFill: true}
}

// WithStroke returns a copy of s with a stroke.
func (s Style) WithStroke(c rgb565.Color, width uint32) Style {
	s.StrokeColor, s.StrokeWidth, s.HasStroke = c, width, true
	return s
}

// WithFill returns a copy of s with a fill.
func (s Style) WithFill(c rgb565.Color) Style {
	s.FillColor, s.HasFill = c, true
	return s
}

func (s Style) validate(p Primitive) error {
	if !s.HasStroke {
		return nil
	}
	if s.StrokeWidth == 0 {
		return ErrInvalidStyle
	}
	if _, ok := p.(Triangle); ok && s.StrokeWidth > 1 {
		return ErrUnsupportedStrokeWidth
	}
	return nil
}

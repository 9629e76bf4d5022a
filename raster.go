package st7789

import (
	"fmt"
	"image"
	"math"
	"sort"

	"periph.io/x/devices/v3/st7789/rgb565"
)

// target receives the spans produced by the rasterizer. Every span is a
// Region already clipped to Bounds, painted with a single color.
type target interface {
	Bounds() image.Rectangle
	fillRegion(r Region, c rgb565.Color) error
}

// rasterize emits p painted with s as an ordered list of solid regions.
// The fill is painted before the stroke.
func rasterize(t target, p Primitive, s Style) error {
	if err := s.validate(p); err != nil {
		return err
	}
	sp := spanner{t: t, clip: t.Bounds()}
	switch p := p.(type) {
	case Line:
		if s.HasStroke {
			return sp.line(p.P0, p.P1, int(s.StrokeWidth), s.StrokeColor)
		}
	case Circle:
		if p.Radius < 0 {
			return nil
		}
		if s.HasFill {
			if err := sp.fillCircle(p, s.FillColor); err != nil {
				return err
			}
		}
		if s.HasStroke {
			if s.StrokeWidth == 1 {
				return sp.strokeCircle(p, s.StrokeColor)
			}
			return sp.ring(p, int(s.StrokeWidth), s.StrokeColor)
		}
	case Triangle:
		if s.HasFill {
			if err := sp.fillTriangle(p, s.FillColor); err != nil {
				return err
			}
		}
		if s.HasStroke {
			for _, e := range [...][2]image.Point{{p.P0, p.P1}, {p.P1, p.P2}, {p.P2, p.P0}} {
				if err := sp.thinLine(e[0], e[1], s.StrokeColor); err != nil {
					return err
				}
			}
		}
	default:
		return fmt.Errorf("st7789: unsupported primitive %T", p)
	}
	return nil
}

// spanner clips regions before handing them to the target.
type spanner struct {
	t    target
	clip image.Rectangle
}

// rect fills the inclusive rectangle spanned by (x0, y0) and (x1, y1).
func (s *spanner) rect(x0, y0, x1, y1 int, c rgb565.Color) error {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	r := image.Rect(x0, y0, x1+1, y1+1).Intersect(s.clip)
	if r.Empty() {
		return nil
	}
	return s.t.fillRegion(RegionOf(r), c)
}

func (s *spanner) hspan(y, x0, x1 int, c rgb565.Color) error {
	return s.rect(x0, y, x1, y, c)
}

// line draws a segment of the given width. Wide lines are drawn as parallel
// copies shifted along the minor axis; copies that cannot reach the clip
// rectangle are skipped.
func (s *spanner) line(p0, p1 image.Point, width int, c rgb565.Color) error {
	xMajor := abs(p1.X-p0.X) >= abs(p1.Y-p0.Y)
	lo := -(width - 1) / 2
	hi := lo + width - 1

	// Axis aligned: all copies form one rectangle.
	if p0.X == p1.X || p0.Y == p1.Y {
		if xMajor {
			return s.rect(p0.X, p0.Y+lo, p1.X, p1.Y+hi, c)
		}
		return s.rect(p0.X+lo, p0.Y, p1.X+hi, p1.Y, c)
	}

	if xMajor {
		lo = max(lo, s.clip.Min.Y-max(p0.Y, p1.Y))
		hi = min(hi, s.clip.Max.Y-1-min(p0.Y, p1.Y))
	} else {
		lo = max(lo, s.clip.Min.X-max(p0.X, p1.X))
		hi = min(hi, s.clip.Max.X-1-min(p0.X, p1.X))
	}
	for k := lo; k <= hi; k++ {
		off := image.Pt(0, k)
		if !xMajor {
			off = image.Pt(k, 0)
		}
		if err := s.thinLine(p0.Add(off), p1.Add(off), c); err != nil {
			return err
		}
	}
	return nil
}

// thinLine draws the Bresenham segment p0-p1 restricted to the clip
// rectangle. Pixels sharing a row (x-major) or a column (y-major) are
// emitted as a single span.
func (s *spanner) thinLine(p0, p1 image.Point, c rgb565.Color) error {
	dx, dy := p1.X-p0.X, p1.Y-p0.Y
	if abs(dx) >= abs(dy) {
		r := run{
			a0: p0.X, b0: p0.Y, da: dx, db: dy,
			aMin: s.clip.Min.X, aMax: s.clip.Max.X - 1,
			bMin: s.clip.Min.Y, bMax: s.clip.Max.Y - 1,
		}
		return r.walk(func(a0, a1, b int) error { return s.rect(a0, b, a1, b, c) })
	}
	r := run{
		a0: p0.Y, b0: p0.X, da: dy, db: dx,
		aMin: s.clip.Min.Y, aMax: s.clip.Max.Y - 1,
		bMin: s.clip.Min.X, bMax: s.clip.Max.X - 1,
	}
	return r.walk(func(a0, a1, b int) error { return s.rect(b, a0, b, a1, c) })
}

// run is a segment expressed along its major axis a and minor axis b, with
// |da| >= |db|, and the inclusive clip range on each axis.
//
// Pixel k of the segment, 0 <= k <= |da|, sits at a0+k*sign(da) and
// b0+j(k)*sign(db) where j(k) = floor((2k|db| + |da|) / 2|da|), the minor
// offset rounded half up. j is monotonic, so the visible part is a single
// k interval computed up front.
type run struct {
	a0, b0, da, db         int
	aMin, aMax, bMin, bMax int
}

// walk calls emit once per visible minor coordinate b with the major
// coordinates of the first and last pixel on it.
func (r run) walk(emit func(a0, a1, b int) error) error {
	n, m := int64(abs(r.da)), int64(abs(r.db))
	sa, sb := sign(r.da), sign(r.db)

	var kLo, kHi int64
	if sa >= 0 {
		kLo, kHi = int64(r.aMin-r.a0), int64(r.aMax-r.a0)
	} else {
		kLo, kHi = int64(r.a0-r.aMax), int64(r.a0-r.aMin)
	}
	kLo, kHi = max(kLo, 0), min(kHi, n)

	var jLo, jHi int64
	if sb >= 0 {
		jLo, jHi = int64(r.bMin-r.b0), int64(r.bMax-r.b0)
	} else {
		jLo, jHi = int64(r.b0-r.bMax), int64(r.b0-r.bMin)
	}
	if jHi < 0 || jLo > m {
		return nil
	}

	jOf := func(k int64) int64 {
		if n == 0 {
			return 0
		}
		return (2*k*m + n) / (2 * n)
	}
	// first returns the smallest k with j(k) >= j, for 1 <= j <= m.
	first := func(j int64) int64 {
		return ceilDiv(n*(2*j-1), 2*m)
	}
	if jLo > 0 {
		kLo = max(kLo, first(jLo))
	}
	if jHi < m {
		kHi = min(kHi, first(jHi+1)-1)
	}

	for k := kLo; k <= kHi; {
		j := jOf(k)
		end := kHi
		if j < m {
			end = min(kHi, first(j+1)-1)
		}
		a0 := r.a0 + sa*int(k)
		a1 := r.a0 + sa*int(end)
		if err := emit(a0, a1, r.b0+sb*int(j)); err != nil {
			return err
		}
		k = end + 1
	}
	return nil
}

// rows returns the offsets dy in [-r, r] for which row cy+dy is visible.
func (s *spanner) rows(cy, r int) (lo, hi int) {
	return max(-r, s.clip.Min.Y-cy), min(r, s.clip.Max.Y-1-cy)
}

// fillCircle paints one span per visible row, top to bottom.
func (s *spanner) fillCircle(ci Circle, c rgb565.Color) error {
	lo, hi := s.rows(ci.Center.Y, ci.Radius)
	for dy := lo; dy <= hi; dy++ {
		hw := halfWidth(ci.Radius, dy)
		if err := s.hspan(ci.Center.Y+dy, ci.Center.X-hw, ci.Center.X+hw, c); err != nil {
			return err
		}
	}
	return nil
}

// strokeCircle paints the 1 pixel outline row by row. On row dy the
// outline covers the columns between the half width of the next row out
// and its own half width, which keeps it 8-connected.
func (s *spanner) strokeCircle(ci Circle, c rgb565.Color) error {
	r := ci.Radius
	cx, cy := ci.Center.X, ci.Center.Y
	lo, hi := s.rows(cy, r)
	for dy := lo; dy <= hi; dy++ {
		row := abs(dy)
		b := halfWidth(r, row)
		a := 0
		if row < r {
			a = min(halfWidth(r, row+1)+1, b)
		}
		if a == 0 {
			if err := s.hspan(cy+dy, cx-b, cx+b, c); err != nil {
				return err
			}
			continue
		}
		if err := s.hspan(cy+dy, cx-b, cx-a, c); err != nil {
			return err
		}
		if err := s.hspan(cy+dy, cx+a, cx+b, c); err != nil {
			return err
		}
	}
	return nil
}

// ring paints a stroke of the given width centered on the circle outline as
// the difference between two filled discs.
func (s *spanner) ring(ci Circle, width int, c rgb565.Color) error {
	outer := ci.Radius + width/2
	inner := outer - width
	cx, cy := ci.Center.X, ci.Center.Y
	lo, hi := s.rows(cy, outer)
	for dy := lo; dy <= hi; dy++ {
		ho := halfWidth(outer, dy)
		if inner < 0 || abs(dy) > inner {
			if err := s.hspan(cy+dy, cx-ho, cx+ho, c); err != nil {
				return err
			}
			continue
		}
		hw := halfWidth(inner, dy)
		if err := s.hspan(cy+dy, cx-ho, cx-hw-1, c); err != nil {
			return err
		}
		if err := s.hspan(cy+dy, cx+hw+1, cx+ho, c); err != nil {
			return err
		}
	}
	return nil
}

// fillTriangle walks the edges of the triangle sorted by y and fills the
// span between the long edge and the two short ones on every visible row.
func (s *spanner) fillTriangle(t Triangle, c rgb565.Color) error {
	v := [3]image.Point{t.P0, t.P1, t.P2}
	sort.Slice(v[:], func(i, j int) bool { return v[i].Y < v[j].Y })
	a, b, d := v[0], v[1], v[2]

	if a.Y == d.Y {
		x0 := min(a.X, b.X, d.X)
		x1 := max(a.X, b.X, d.X)
		return s.hspan(a.Y, x0, x1, c)
	}
	for y := max(a.Y, s.clip.Min.Y); y <= min(d.Y, s.clip.Max.Y-1); y++ {
		x0 := edgeX(a, d, y)
		var x1 int
		if y < b.Y {
			x1 = edgeX(a, b, y)
		} else {
			x1 = edgeX(b, d, y)
		}
		if err := s.hspan(y, x0, x1, c); err != nil {
			return err
		}
	}
	return nil
}

// edgeX returns the x coordinate of edge pq on row y, rounded to the
// nearest pixel. Horizontal edges yield p.X.
func edgeX(p, q image.Point, y int) int {
	if p.Y == q.Y {
		return p.X
	}
	return p.X + int(divRound(int64(q.X-p.X)*int64(y-p.Y), int64(q.Y-p.Y)))
}

// halfWidth returns the rounded half width of the disc of radius r on row
// offset dy.
func halfWidth(r, dy int) int {
	return roundSqrt(int64(r)*int64(r) - int64(dy)*int64(dy))
}

// roundSqrt returns sqrt(v) rounded to the nearest integer, or 0 for v <= 0.
func roundSqrt(v int64) int {
	if v <= 0 {
		return 0
	}
	x := int64(math.Sqrt(float64(v)))
	for x*x > v {
		x--
	}
	for (x+1)*(x+1) <= v {
		x++
	}
	if v-x*x > x {
		x++
	}
	return int(x)
}

// divRound divides n by d > 0, rounding half away from zero.
func divRound(n, d int64) int64 {
	if n < 0 {
		return -((-2*n + d) / (2 * d))
	}
	return (2*n + d) / (2 * d)
}

// ceilDiv divides n >= 0 by d > 0, rounding up.
func ceilDiv(n, d int64) int64 {
	return (n + d - 1) / d
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}

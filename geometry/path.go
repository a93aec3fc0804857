package geometry

import (
	"fmt"
	"math"
	"strings"
)

// Point is a position in the plane.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Canon returns r with non-negative width and height.
func (r Rect) Canon() Rect {
	if r.Width < 0 {
		r.X += r.Width
		r.Width = -r.Width
	}
	if r.Height < 0 {
		r.Y += r.Height
		r.Height = -r.Height
	}
	return r
}

func (r Rect) MinX() float64 { return r.X }
func (r Rect) MinY() float64 { return r.Y }
func (r Rect) MaxX() float64 { return r.X + r.Width }
func (r Rect) MaxY() float64 { return r.Y + r.Height }

// Op is the kind of a path segment.
type Op int

const (
	MoveTo Op = iota
	LineTo
	ArcTo
	Close
)

// Segment is one drawing instruction. For ArcTo, Center, Radius and the
// start/end angles describe a clockwise circular arc ending at To. Angles
// are radians measured in screen space, so increasing angle turns clockwise.
type Segment struct {
	Op     Op
	To     Point
	Center Point
	Radius float64
	Start  float64
	End    float64
}

// Path is an ordered list of segments forming one closed subpath.
type Path []Segment

// RoundedPath returns the outline of rect with the corners in set rounded by
// radius and the others left square. The walk starts on the left edge just
// below the top-left corner and runs clockwise. A radius of zero or less
// yields the plain rectangle whatever the set; radius is clamped to half
// the shorter side.
func RoundedPath(rect Rect, radius float64, corners CornerSet) Path {
	rect = rect.Canon()
	r := clampRadius(rect, radius)
	if r == 0 {
		corners = NoCorners
	}

	minX, minY, maxX, maxY := rect.MinX(), rect.MinY(), rect.MaxX(), rect.MaxY()
	inset := func(c Corner) float64 {
		if corners.Has(c) {
			return r
		}
		return 0
	}

	tl, tr, br, bl := inset(TopLeft), inset(TopRight), inset(BottomRight), inset(BottomLeft)

	p := make(Path, 0, 9)
	p = append(p, Segment{Op: MoveTo, To: Point{minX, minY + tl}})
	if tl > 0 {
		p = append(p, arc(Point{minX + r, minY + r}, r, math.Pi, 1.5*math.Pi, Point{minX + r, minY}))
	}
	p = append(p, Segment{Op: LineTo, To: Point{maxX - tr, minY}})
	if tr > 0 {
		p = append(p, arc(Point{maxX - r, minY + r}, r, 1.5*math.Pi, 2*math.Pi, Point{maxX, minY + r}))
	}
	p = append(p, Segment{Op: LineTo, To: Point{maxX, maxY - br}})
	if br > 0 {
		p = append(p, arc(Point{maxX - r, maxY - r}, r, 0, 0.5*math.Pi, Point{maxX - r, maxY}))
	}
	p = append(p, Segment{Op: LineTo, To: Point{minX + bl, maxY}})
	if bl > 0 {
		p = append(p, arc(Point{minX + r, maxY - r}, r, 0.5*math.Pi, math.Pi, Point{minX, maxY - r}))
	}
	p = append(p, Segment{Op: Close, To: Point{minX, minY + tl}})
	return p
}

func arc(center Point, r, start, end float64, to Point) Segment {
	return Segment{Op: ArcTo, To: to, Center: center, Radius: r, Start: start, End: end}
}

func clampRadius(rect Rect, radius float64) float64 {
	if radius <= 0 || math.IsNaN(radius) {
		return 0
	}
	limit := math.Min(rect.Width, rect.Height) / 2
	if radius > limit {
		return limit
	}
	return radius
}

// arcSteps is how many chords Points uses per arc.
const arcSteps = 8

// Points flattens the path into vertices, sampling each arc with arcSteps
// chords. The closing segment repeats the start point.
func (p Path) Points() []Point {
	var pts []Point
	for _, s := range p {
		switch s.Op {
		case ArcTo:
			for i := 1; i < arcSteps; i++ {
				a := s.Start + (s.End-s.Start)*float64(i)/arcSteps
				pts = append(pts, Point{
					X: s.Center.X + s.Radius*math.Cos(a),
					Y: s.Center.Y + s.Radius*math.Sin(a),
				})
			}
			pts = append(pts, s.To)
		default:
			pts = append(pts, s.To)
		}
	}
	return pts
}

// Bounds returns the smallest rectangle containing every vertex.
func (p Path) Bounds() Rect {
	pts := p.Points()
	if len(pts) == 0 {
		return Rect{}
	}
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, pt := range pts[1:] {
		minX = math.Min(minX, pt.X)
		minY = math.Min(minY, pt.Y)
		maxX = math.Max(maxX, pt.X)
		maxY = math.Max(maxY, pt.Y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Arcs counts the rounded corners in the path.
func (p Path) Arcs() int {
	n := 0
	for _, s := range p {
		if s.Op == ArcTo {
			n++
		}
	}
	return n
}

// String renders the path as SVG path data.
func (p Path) String() string {
	var sb strings.Builder
	for i, s := range p {
		if i > 0 {
			sb.WriteByte(' ')
		}
		switch s.Op {
		case MoveTo:
			fmt.Fprintf(&sb, "M %s %s", num(s.To.X), num(s.To.Y))
		case LineTo:
			fmt.Fprintf(&sb, "L %s %s", num(s.To.X), num(s.To.Y))
		case ArcTo:
			fmt.Fprintf(&sb, "A %s %s 0 0 1 %s %s",
				num(s.Radius), num(s.Radius), num(s.To.X), num(s.To.Y))
		case Close:
			sb.WriteByte('Z')
		}
	}
	return sb.String()
}

func num(f float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.3f", f), "0"), ".")
}

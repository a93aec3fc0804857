// Package geometry computes outlines for rectangles whose corners can be
// rounded independently. Coordinates are screen-style: x grows right, y
// grows down.
package geometry

import "strings"

// Corner is one corner of a rectangle.
type Corner uint8

const (
	TopLeft Corner = 1 << iota
	TopRight
	BottomRight
	BottomLeft
)

// CornerSet is a set of corners.
type CornerSet uint8

const (
	NoCorners  CornerSet = 0
	AllCorners           = CornerSet(TopLeft | TopRight | BottomRight | BottomLeft)
)

// Corners builds a set from individual corners.
func Corners(cs ...Corner) CornerSet {
	var s CornerSet
	for _, c := range cs {
		s |= CornerSet(c)
	}
	return s
}

// Has reports whether c is in the set.
func (s CornerSet) Has(c Corner) bool {
	return s&CornerSet(c) != 0
}

// With returns the set with c added.
func (s CornerSet) With(c Corner) CornerSet {
	return s | CornerSet(c)
}

// Without returns the set with c removed.
func (s CornerSet) Without(c Corner) CornerSet {
	return s &^ CornerSet(c)
}

func (c Corner) String() string {
	switch c {
	case TopLeft:
		return "top-left"
	case TopRight:
		return "top-right"
	case BottomRight:
		return "bottom-right"
	case BottomLeft:
		return "bottom-left"
	default:
		return "corner(?)"
	}
}

// clockwise is the traversal order used by RoundedPath.
var clockwise = [4]Corner{TopLeft, TopRight, BottomRight, BottomLeft}

func (s CornerSet) String() string {
	if s == NoCorners {
		return "none"
	}
	if s == AllCorners {
		return "all"
	}
	var parts []string
	for _, c := range clockwise {
		if s.Has(c) {
			parts = append(parts, c.String())
		}
	}
	return strings.Join(parts, "|")
}

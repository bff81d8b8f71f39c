// Package track provides multi-person tracking across video frames.
// Detections carry no identity; the tracker assigns stable track IDs by
// matching each frame's boxes against known tracks with IoU overlap.
package track

// Box is an axis-aligned bounding box in pixel coordinates.
// Well-formed boxes satisfy X2 >= X1 and Y2 >= Y1.
type Box struct {
	X1         int     `json:"x1"`
	Y1         int     `json:"y1"`
	X2         int     `json:"x2"`
	Y2         int     `json:"y2"`
	Confidence float64 `json:"confidence"`
}

// Width returns the box width in pixels.
func (b Box) Width() int {
	return b.X2 - b.X1
}

// Height returns the box height in pixels.
func (b Box) Height() int {
	return b.Y2 - b.Y1
}

// Area returns the box area in square pixels.
func (b Box) Area() int {
	return b.Width() * b.Height()
}

// Center returns the center point of the box.
func (b Box) Center() (x, y int) {
	return b.X1 + b.Width()/2, b.Y1 + b.Height()/2
}

// IoU returns the intersection-over-union of two boxes, in [0, 1].
// Degenerate boxes with zero union yield 0.
func IoU(a, b Box) float64 {
	x1 := max(a.X1, b.X1)
	y1 := max(a.Y1, b.Y1)
	x2 := min(a.X2, b.X2)
	y2 := min(a.Y2, b.Y2)

	inter := max(0, x2-x1) * max(0, y2-y1)
	union := a.Area() + b.Area() - inter

	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

package geometry

// RectangleBoundary is an axis aligned rectangle. The zero value is a
// boundary at the origin with both dimensions set to zero.
type RectangleBoundary struct {
	position Point2D // -x, -y corner (third quadrant corner)
	xDim     float64
	yDim     float64
}

// NewRectangleBoundary stores the given lengths and position as they are.
// Negative lengths are not rejected, see NewValidatedRectangleBoundary.
func NewRectangleBoundary(xLength, yLength float64, position Point2D) RectangleBoundary {
	return RectangleBoundary{
		position: position,
		xDim:     xLength,
		yDim:     yLength,
	}
}

func (bound RectangleBoundary) XDim() float64 {
	return bound.xDim
}

func (bound RectangleBoundary) YDim() float64 {
	return bound.yDim
}

// Position returns the bottom left corner of the boundary.
func (bound RectangleBoundary) Position() Point2D {
	return bound.position
}

// Reset replaces the dimensions and the position of the boundary.
func (bound *RectangleBoundary) Reset(xLength, yLength float64, position Point2D) {
	bound.position = position
	bound.xDim = xLength
	bound.yDim = yLength
}

// Vertices returns the four corners counterclockwise, starting at Position.
func (bound RectangleBoundary) Vertices() []Point2D {
	return []Point2D{
		bound.position,
		bound.position.Add(Point2D{X: bound.xDim}),
		bound.position.Add(Point2D{X: bound.xDim, Y: bound.yDim}),
		bound.position.Add(Point2D{Y: bound.yDim}),
	}
}

func (bound RectangleBoundary) Center() Point2D {
	return bound.position.Add(Point2D{X: bound.xDim, Y: bound.yDim}.Scale(0.5))
}

// IsInside reports whether point lies strictly inside bound. Points on an
// edge or a corner are outside.
func IsInside(point Point2D, bound RectangleBoundary) bool {
	return point.X > bound.position.X &&
		point.X < bound.position.X+bound.xDim &&
		point.Y > bound.position.Y &&
		point.Y < bound.position.Y+bound.yDim
}

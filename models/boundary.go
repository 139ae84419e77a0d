package models

import "obstacle-detection/geometry"

type PointJSON struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

func NewPointJSON(point geometry.Point2D) PointJSON {
	return PointJSON{X: point.X, Y: point.Y}
}

func (point PointJSON) ToPoint() geometry.Point2D {
	return geometry.Point2D{X: point.X, Y: point.Y}
}

type BoundaryJSON struct {
	Position PointJSON `json:"position" yaml:"position"`
	XDim     float64   `json:"xDim" yaml:"xDim"`
	YDim     float64   `json:"yDim" yaml:"yDim"`
}

func NewBoundaryJSON(bound geometry.RectangleBoundary) BoundaryJSON {
	return BoundaryJSON{
		Position: NewPointJSON(bound.Position()),
		XDim:     bound.XDim(),
		YDim:     bound.YDim(),
	}
}

func (boundary BoundaryJSON) ToBoundary() geometry.RectangleBoundary {
	return geometry.NewRectangleBoundary(boundary.XDim, boundary.YDim, boundary.Position.ToPoint())
}

func NewPointsJSON(points []geometry.Point2D) []PointJSON {
	var result = make([]PointJSON, len(points))
	for i, point := range points {
		result[i] = NewPointJSON(point)
	}
	return result
}

func ToPoints(points []PointJSON) []geometry.Point2D {
	var result = make([]geometry.Point2D, len(points))
	for i, point := range points {
		result[i] = point.ToPoint()
	}
	return result
}

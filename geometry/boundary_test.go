package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultBoundary(t *testing.T) {
	var bound RectangleBoundary

	assert.Equal(t, 0.0, bound.XDim())
	assert.Equal(t, 0.0, bound.YDim())
	assert.Equal(t, Point2D{}, bound.Position())
}

func TestNewRectangleBoundary(t *testing.T) {
	bound := NewRectangleBoundary(3.5, 7.25, Point2D{X: -2, Y: 4})

	assert.Equal(t, 3.5, bound.XDim())
	assert.Equal(t, 7.25, bound.YDim())
	assert.Equal(t, Point2D{X: -2, Y: 4}, bound.Position())

	// Negative lengths are kept as given
	negative := NewRectangleBoundary(-1, -2, Point2D{})
	assert.Equal(t, -1.0, negative.XDim())
	assert.Equal(t, -2.0, negative.YDim())
}

func TestReset(t *testing.T) {
	bound := NewRectangleBoundary(10, 20, Point2D{X: 5, Y: 5})
	bound.Reset(1, 2, Point2D{X: -3, Y: 0.5})

	assert.Equal(t, 1.0, bound.XDim())
	assert.Equal(t, 2.0, bound.YDim())
	assert.Equal(t, Point2D{X: -3, Y: 0.5}, bound.Position())

	bound.Reset(0, 0, Point2D{})
	assert.Equal(t, RectangleBoundary{}, bound)
}

func TestVertices(t *testing.T) {
	bound := NewRectangleBoundary(4, 2, Point2D{X: 1, Y: 1})

	require.Equal(t, []Point2D{{1, 1}, {5, 1}, {5, 3}, {1, 3}}, bound.Vertices())

	// Vertices follow the current state of the boundary
	bound.Reset(1, 1, Point2D{})
	require.Equal(t, []Point2D{{0, 0}, {1, 0}, {1, 1}, {0, 1}}, bound.Vertices())
}

func TestVerticesFreshSlice(t *testing.T) {
	bound := NewRectangleBoundary(4, 2, Point2D{X: 1, Y: 1})

	first := bound.Vertices()
	first[0] = Point2D{X: 100, Y: 100}

	assert.Equal(t, Point2D{X: 1, Y: 1}, bound.Vertices()[0])
	assert.Equal(t, Point2D{X: 1, Y: 1}, bound.Position())
}

func TestVerticesDegenerate(t *testing.T) {
	bound := NewRectangleBoundary(0, 2, Point2D{X: 1, Y: 1})

	vertices := bound.Vertices()
	require.Len(t, vertices, 4)
	assert.Equal(t, vertices[0], vertices[1])
	assert.Equal(t, vertices[2], vertices[3])
}

func TestCenter(t *testing.T) {
	bound := NewRectangleBoundary(4, 2, Point2D{X: 1, Y: 1})
	assert.Equal(t, Point2D{X: 3, Y: 2}, bound.Center())

	bound.Reset(2, 6, Point2D{X: -1, Y: -1})
	assert.Equal(t, Point2D{X: 0, Y: 2}, bound.Center())
}

func TestIsInside(t *testing.T) {
	bound := NewRectangleBoundary(4, 2, Point2D{X: 1, Y: 1})

	tests := []struct {
		name   string
		point  Point2D
		inside bool
	}{
		{"center", Point2D{X: 3, Y: 2}, true},
		{"near corner", Point2D{X: 1.001, Y: 2.999}, true},
		{"left edge", Point2D{X: 1, Y: 2}, false},
		{"right edge", Point2D{X: 5, Y: 2}, false},
		{"bottom edge", Point2D{X: 3, Y: 1}, false},
		{"top edge", Point2D{X: 3, Y: 3}, false},
		{"corner", Point2D{X: 1, Y: 1}, false},
		{"opposite corner", Point2D{X: 5, Y: 3}, false},
		{"below", Point2D{X: 0, Y: 0}, false},
		{"above", Point2D{X: 6, Y: 4}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.inside, IsInside(tt.point, bound))
		})
	}
}

func TestIsInsideDegenerate(t *testing.T) {
	line := NewRectangleBoundary(0, 2, Point2D{X: 1, Y: 1})
	assert.False(t, IsInside(Point2D{X: 1, Y: 2}, line))
	assert.False(t, IsInside(Point2D{X: 1, Y: 1}, line))
	assert.False(t, IsInside(Point2D{X: 1.5, Y: 2}, line))

	var point RectangleBoundary
	assert.False(t, IsInside(Point2D{}, point))
}

func TestIsInsideNegativeDimensions(t *testing.T) {
	bound := NewRectangleBoundary(-4, -2, Point2D{X: 5, Y: 3})
	assert.False(t, IsInside(Point2D{X: 3, Y: 2}, bound))
}

func TestPointArithmetic(t *testing.T) {
	p := Point2D{X: 1, Y: 2}

	assert.Equal(t, Point2D{X: 4, Y: 6}, p.Add(Point2D{X: 3, Y: 4}))
	assert.Equal(t, Point2D{X: -2, Y: -2}, p.Sub(Point2D{X: 3, Y: 4}))
	assert.Equal(t, Point2D{X: 0.5, Y: 1}, p.Scale(0.5))
}

package geometry

// FilterInside returns the points lying strictly inside bound, in input order.
func FilterInside(points []Point2D, bound RectangleBoundary) []Point2D {
	var inside []Point2D
	for _, point := range points {
		if IsInside(point, bound) {
			inside = append(inside, point)
		}
	}
	return inside
}

// Partition splits points by IsInside. Points on the boundary edges end up in outside.
func Partition(points []Point2D, bound RectangleBoundary) (inside, outside []Point2D) {
	for _, point := range points {
		if IsInside(point, bound) {
			inside = append(inside, point)
		} else {
			outside = append(outside, point)
		}
	}
	return inside, outside
}

// CountInside is FilterInside without allocating the result.
func CountInside(points []Point2D, bound RectangleBoundary) int {
	count := 0
	for _, point := range points {
		if IsInside(point, bound) {
			count++
		}
	}
	return count
}

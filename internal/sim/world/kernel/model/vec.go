package model

type Vec3i struct{ X, Y, Z int }

// Within reports whether o is inside the axis-aligned cube of radius dist
// around v (Chebyshev distance).
func (v Vec3i) Within(o Vec3i, dist int) bool {
	return absInt(v.X-o.X) <= dist && absInt(v.Y-o.Y) <= dist && absInt(v.Z-o.Z) <= dist
}

// DistSq is the squared euclidean distance, used for nearest-object ties.
func (v Vec3i) DistSq(o Vec3i) int {
	dx, dy, dz := v.X-o.X, v.Y-o.Y, v.Z-o.Z
	return dx*dx + dy*dy + dz*dz
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

package math

// ExtentsOf returns the axis-aligned box around the given points.
// An empty input yields zero extents.
func ExtentsOf(points ...Vec3) Extents3D {
	if len(points) == 0 {
		return Extents3D{}
	}
	ext := Extents3D{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		ext = ext.Include(p)
	}
	return ext
}

// Include grows the extents so that p lies inside them.
func (e Extents3D) Include(p Vec3) Extents3D {
	return Extents3D{
		Min: Vec3{Min(e.Min.X, p.X), Min(e.Min.Y, p.Y), Min(e.Min.Z, p.Z)},
		Max: Vec3{Max(e.Max.X, p.X), Max(e.Max.Y, p.Y), Max(e.Max.Z, p.Z)},
	}
}

// Center is the midpoint of the box.
func (e Extents3D) Center() Vec3 {
	return e.Min.Lerp(e.Max, 0.5)
}

// Size is the edge length of the box on each axis.
func (e Extents3D) Size() Vec3 {
	return e.Max.Sub(e.Min)
}

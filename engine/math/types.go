package math

// Vec2 represents a 2D vector
type Vec2 struct {
	X, Y float64
}

// Vec3 represents a 3D vector
type Vec3 struct {
	X, Y, Z float64
}

// Vec4 represents a 4D vector
type Vec4 struct {
	X, Y, Z, W float64
}

/**
 * @brief a 4x4 matrix, typically used to represent object transformations.
 * Elements are stored row-major: Data[row*4+col].
 */
type Mat4 struct {
	/** @brief The matrix elements */
	Data [16]float64
}

/**
 * @brief Represents the extents of a 3d object.
 */
type Extents3D struct {
	/** @brief The minimum extents of the object. */
	Min Vec3
	/** @brief The maximum extents of the object. */
	Max Vec3
}

/**
 * @brief Represents the transform of an object in the world.
 * Rotation is expressed as Euler angles in radians, applied X then Y then Z.
 * NOTE: The properties are only reachable through the methods in transform.go
 * so that the cached model matrix is rebuilt after every change.
 */
type Transform struct {
	/** @brief The position in the world. */
	position Vec3
	/** @brief The rotation in the world, one angle per axis. */
	rotation Vec3
	/** @brief The scale in the world, 1.0 is neutral. */
	scale Vec3
	/**
	 * @brief Indicates if the position, rotation or scale have changed,
	 * indicating that the local matrix needs to be recalculated.
	 */
	isDirty bool
	/** @brief Incremented on every mutation. */
	version uint64
	/**
	 * @brief The local transformation matrix, updated whenever
	 * the position, rotation or scale have changed.
	 */
	local Mat4
}

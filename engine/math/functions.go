package math

import (
	"fmt"
	m "math"

	"github.com/spaghettifunk/wireframe/engine/core"
)

const (
	/** @brief An approximate representation of PI. */
	K_PI float64 = m.Pi
	/** @brief An approximate representation of PI multiplied by 2. */
	K_PI_2 float64 = 2.0 * K_PI
	/** @brief An approximate representation of PI divided by 2. */
	K_HALF_PI float64 = 0.5 * K_PI
	/** @brief A multiplier used to convert degrees to radians. */
	K_DEG2RAD_MULTIPLIER float64 = K_PI / 180.0
	/** @brief A multiplier used to convert radians to degrees. */
	K_RAD2DEG_MULTIPLIER float64 = 180.0 / K_PI
	/** @brief Smallest positive number where 1.0 + K_FLOAT_EPSILON != 0 */
	K_FLOAT_EPSILON float64 = 2.220446049250313e-16
	/** @brief Tolerance used when comparing composed matrices. */
	K_MATRIX_EPSILON float64 = 1e-9
)

func ksin(x float64) float64 {
	return m.Sin(x)
}

func kcos(x float64) float64 {
	return m.Cos(x)
}

func ksqrt(x float64) float64 {
	return m.Sqrt(x)
}

func kabs(x float64) float64 {
	return m.Abs(x)
}

// ------------------------------------------
// Vector 2
// ------------------------------------------

/**
 * @brief Creates and returns a new 2-element vector using the supplied values.
 *
 * @param x The x value.
 * @param y The y value.
 * @return A new 2-element vector.
 */
func NewVec2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

/**
 * @brief Creates and returns a 2-component vector with all components set to 0.0.
 */
func NewVec2Zero() Vec2 {
	return Vec2{0.0, 0.0}
}

/**
 * @brief Creates and returns a 2-component vector with all components set to 1.0.
 */
func NewVec2One() Vec2 {
	return Vec2{1.0, 1.0}
}

func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

func (v Vec2) Mul(other Vec2) Vec2 {
	return Vec2{v.X * other.X, v.Y * other.Y}
}

func (v Vec2) Div(other Vec2) Vec2 {
	return Vec2{v.X / other.X, v.Y / other.Y}
}

func (v Vec2) AddScalar(scalar float64) Vec2 {
	return Vec2{v.X + scalar, v.Y + scalar}
}

func (v Vec2) SubScalar(scalar float64) Vec2 {
	return Vec2{v.X - scalar, v.Y - scalar}
}

func (v Vec2) MulScalar(scalar float64) Vec2 {
	return Vec2{v.X * scalar, v.Y * scalar}
}

func (v Vec2) DivScalar(scalar float64) Vec2 {
	return Vec2{v.X / scalar, v.Y / scalar}
}

/**
 * @brief Returns the squared length of the provided vector.
 */
func (v Vec2) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

/**
 * @brief Returns the length (Euclidean magnitude) of the provided vector.
 */
func (v Vec2) Length() float64 {
	return ksqrt(v.LengthSquared())
}

/**
 * @brief Returns the distance between v and other, the length of other - v.
 */
func (v Vec2) Distance(other Vec2) float64 {
	return other.Sub(v).Length()
}

/**
 * @brief Linearly interpolates from v towards other. t is not clamped, values
 * outside [0, 1] extrapolate along the same line.
 */
func (v Vec2) Lerp(other Vec2, t float64) Vec2 {
	return Vec2{
		v.X + t*(other.X-v.X),
		v.Y + t*(other.Y-v.Y),
	}
}

/**
 * @brief Compares all elements of v and other and ensures the difference
 * is less than tolerance.
 */
func (v Vec2) Compare(other Vec2, tolerance float64) bool {
	return kabs(v.X-other.X) <= tolerance && kabs(v.Y-other.Y) <= tolerance
}

// ToVec3 widens the vector, z is 0.
func (v Vec2) ToVec3() Vec3 {
	return Vec3{v.X, v.Y, 0.0}
}

// ToVec4 widens the vector, z and w are 0.
func (v Vec2) ToVec4() Vec4 {
	return Vec4{v.X, v.Y, 0.0, 0.0}
}

func (v Vec2) String() string {
	return fmt.Sprintf("(%g, %g)", v.X, v.Y)
}

// ------------------------------------------
// Vector 3
// ------------------------------------------

/**
 * @brief Creates and returns a new 3-element vector using the supplied values.
 *
 * @param x The x value.
 * @param y The y value.
 * @param z The z value.
 * @return A new 3-element vector.
 */
func NewVec3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

/**
 * @brief Creates and returns a 3-component vector with all components set to 0.0.
 */
func NewVec3Zero() Vec3 {
	return Vec3{0.0, 0.0, 0.0}
}

/**
 * @brief Creates and returns a 3-component vector with all components set to 1.0.
 */
func NewVec3One() Vec3 {
	return Vec3{1.0, 1.0, 1.0}
}

/**
 * @brief Adds other to v and returns a copy of the result.
 *
 * @param other The second vector.
 * @return The resulting vector.
 */
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{
		X: v.X + other.X,
		Y: v.Y + other.Y,
		Z: v.Z + other.Z,
	}
}

/**
 * @brief Subtracts other from v and returns a copy of the result.
 *
 * @param other The second vector.
 * @return The resulting vector.
 */
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{
		X: v.X - other.X,
		Y: v.Y - other.Y,
		Z: v.Z - other.Z,
	}
}

/**
 * @brief Multiplies v by other componentwise and returns a copy of the result.
 */
func (v Vec3) Mul(other Vec3) Vec3 {
	return Vec3{
		X: v.X * other.X,
		Y: v.Y * other.Y,
		Z: v.Z * other.Z,
	}
}

/**
 * @brief Divides v by other componentwise and returns a copy of the result.
 */
func (v Vec3) Div(other Vec3) Vec3 {
	return Vec3{
		X: v.X / other.X,
		Y: v.Y / other.Y,
		Z: v.Z / other.Z,
	}
}

func (v Vec3) AddScalar(scalar float64) Vec3 {
	return Vec3{v.X + scalar, v.Y + scalar, v.Z + scalar}
}

func (v Vec3) SubScalar(scalar float64) Vec3 {
	return Vec3{v.X - scalar, v.Y - scalar, v.Z - scalar}
}

/**
 * @brief Multiplies all elements of v by scalar and returns a copy of the result.
 */
func (v Vec3) MulScalar(scalar float64) Vec3 {
	return Vec3{v.X * scalar, v.Y * scalar, v.Z * scalar}
}

func (v Vec3) DivScalar(scalar float64) Vec3 {
	return Vec3{v.X / scalar, v.Y / scalar, v.Z / scalar}
}

/**
 * @brief Returns the squared length of the provided vector.
 */
func (v Vec3) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

/**
 * @brief Returns the length (Euclidean magnitude) of the provided vector.
 */
func (v Vec3) Length() float64 {
	return ksqrt(v.LengthSquared())
}

/**
 * @brief Returns the distance between v and other, the length of other - v.
 */
func (v Vec3) Distance(other Vec3) float64 {
	return other.Sub(v).Length()
}

/**
 * @brief Linearly interpolates from v towards other. t is not clamped.
 */
func (v Vec3) Lerp(other Vec3, t float64) Vec3 {
	return Vec3{
		v.X + t*(other.X-v.X),
		v.Y + t*(other.Y-v.Y),
		v.Z + t*(other.Z-v.Z),
	}
}

/**
 * @brief Compares all elements of v and other and ensures the difference
 * is less than tolerance.
 *
 * @param tolerance The difference tolerance. Typically K_FLOAT_EPSILON or similar.
 * @return True if within tolerance; otherwise false.
 */
func (v Vec3) Compare(other Vec3, tolerance float64) bool {
	if kabs(v.X-other.X) > tolerance {
		return false
	}
	if kabs(v.Y-other.Y) > tolerance {
		return false
	}
	if kabs(v.Z-other.Z) > tolerance {
		return false
	}
	return true
}

// ToVec2 drops z.
func (v Vec3) ToVec2() Vec2 {
	return Vec2{v.X, v.Y}
}

// ToVec4 widens the vector with w = 0, i.e. a direction.
func (v Vec3) ToVec4() Vec4 {
	return Vec4{v.X, v.Y, v.Z, 0.0}
}

// ToHomogeneous lifts the point into homogeneous coordinates with w = 1.
func (v Vec3) ToHomogeneous() Vec4 {
	return Vec4{v.X, v.Y, v.Z, 1.0}
}

// CartesianToHomogeneous lifts a point into homogeneous coordinates with w = 1.
func CartesianToHomogeneous(v Vec3) Vec4 {
	return v.ToHomogeneous()
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}

// ------------------------------------------
// Vector 4
// ------------------------------------------

/**
 * @brief Creates and returns a new 4-element vector using the supplied values.
 *
 * @param x The x value.
 * @param y The y value.
 * @param z The z value.
 * @param w The w value.
 * @return A new 4-element vector.
 */
func NewVec4(x, y, z, w float64) Vec4 {
	return Vec4{X: x, Y: y, Z: z, W: w}
}

/**
 * @brief Creates and returns a 4-component vector with all components set to 0.0.
 */
func NewVec4Zero() Vec4 {
	return Vec4{0.0, 0.0, 0.0, 0.0}
}

/**
 * @brief Creates and returns a 4-component vector with all components set to 1.0.
 */
func NewVec4One() Vec4 {
	return Vec4{1.0, 1.0, 1.0, 1.0}
}

/**
 * @brief Returns a new vec4 using vector as the x, y and z components and w for w.
 */
func NewVec4FromVec3(v Vec3, w float64) Vec4 {
	return Vec4{v.X, v.Y, v.Z, w}
}

func (v Vec4) Add(other Vec4) Vec4 {
	return Vec4{
		X: v.X + other.X,
		Y: v.Y + other.Y,
		Z: v.Z + other.Z,
		W: v.W + other.W,
	}
}

func (v Vec4) Sub(other Vec4) Vec4 {
	return Vec4{
		X: v.X - other.X,
		Y: v.Y - other.Y,
		Z: v.Z - other.Z,
		W: v.W - other.W,
	}
}

func (v Vec4) Mul(other Vec4) Vec4 {
	return Vec4{
		X: v.X * other.X,
		Y: v.Y * other.Y,
		Z: v.Z * other.Z,
		W: v.W * other.W,
	}
}

func (v Vec4) Div(other Vec4) Vec4 {
	return Vec4{
		X: v.X / other.X,
		Y: v.Y / other.Y,
		Z: v.Z / other.Z,
		W: v.W / other.W,
	}
}

func (v Vec4) AddScalar(scalar float64) Vec4 {
	return Vec4{v.X + scalar, v.Y + scalar, v.Z + scalar, v.W + scalar}
}

func (v Vec4) SubScalar(scalar float64) Vec4 {
	return Vec4{v.X - scalar, v.Y - scalar, v.Z - scalar, v.W - scalar}
}

func (v Vec4) MulScalar(scalar float64) Vec4 {
	return Vec4{v.X * scalar, v.Y * scalar, v.Z * scalar, v.W * scalar}
}

func (v Vec4) DivScalar(scalar float64) Vec4 {
	return Vec4{v.X / scalar, v.Y / scalar, v.Z / scalar, v.W / scalar}
}

/**
 * @brief Returns the squared length of the provided vector.
 */
func (v Vec4) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z + v.W*v.W
}

/**
 * @brief Returns the length of the provided vector.
 */
func (v Vec4) Length() float64 {
	return ksqrt(v.LengthSquared())
}

func (v Vec4) Distance(other Vec4) float64 {
	return other.Sub(v).Length()
}

func (v Vec4) Lerp(other Vec4, t float64) Vec4 {
	return Vec4{
		v.X + t*(other.X-v.X),
		v.Y + t*(other.Y-v.Y),
		v.Z + t*(other.Z-v.Z),
		v.W + t*(other.W-v.W),
	}
}

/**
 * @brief Compares all elements of v and other and ensures the difference
 * is less than tolerance.
 */
func (v Vec4) Compare(other Vec4, tolerance float64) bool {
	if kabs(v.X-other.X) > tolerance {
		return false
	}
	if kabs(v.Y-other.Y) > tolerance {
		return false
	}
	if kabs(v.Z-other.Z) > tolerance {
		return false
	}
	if kabs(v.W-other.W) > tolerance {
		return false
	}
	return true
}

// ToVec2 drops z and w.
func (v Vec4) ToVec2() Vec2 {
	return Vec2{v.X, v.Y}
}

/**
 * @brief Returns a new vec3 containing the x, y and z components of the
 * supplied vec4, essentially dropping the w component.
 */
func (v Vec4) ToVec3() Vec3 {
	return Vec3{v.X, v.Y, v.Z}
}

/**
 * @brief Performs the perspective divide, returning x/w, y/w, z/w.
 * A zero w has no cartesian equivalent and yields core.ErrDegenerateProjection
 * instead of infinities.
 */
func (v Vec4) ToCartesian() (Vec3, error) {
	if v.W == 0 {
		return Vec3{}, fmt.Errorf("%w: %s", core.ErrDegenerateProjection, v)
	}
	return Vec3{v.X / v.W, v.Y / v.W, v.Z / v.W}, nil
}

// HomogeneousToCartesian performs the perspective divide. See Vec4.ToCartesian.
func HomogeneousToCartesian(v Vec4) (Vec3, error) {
	return v.ToCartesian()
}

func (v Vec4) String() string {
	return fmt.Sprintf("(%g, %g, %g, %g)", v.X, v.Y, v.Z, v.W)
}

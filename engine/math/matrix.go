package math

import (
	"fmt"
	"strings"

	"github.com/spaghettifunk/wireframe/engine/core"
)

/**
 * @brief Creates and returns an identity matrix:
 *
 * {
 *   {1, 0, 0, 0},
 *   {0, 1, 0, 0},
 *   {0, 0, 1, 0},
 *   {0, 0, 0, 1}
 * }
 *
 * @return A new identity matrix
 */
func NewMat4Identity() Mat4 {
	out_matrix := Mat4{}
	out_matrix.Data[0] = 1.0
	out_matrix.Data[5] = 1.0
	out_matrix.Data[10] = 1.0
	out_matrix.Data[15] = 1.0
	return out_matrix
}

// NewMat4 builds a matrix from 16 values given row by row.
func NewMat4(values ...float64) (Mat4, error) {
	if len(values) != 16 {
		return Mat4{}, fmt.Errorf("%w: a 4x4 matrix needs 16 values, got %d", core.ErrTypeMismatch, len(values))
	}
	out_matrix := Mat4{}
	copy(out_matrix.Data[:], values)
	return out_matrix, nil
}

// At returns the element at row, col.
func (mt Mat4) At(row, col int) float64 {
	return mt.Data[row*4+col]
}

/**
 * @brief Returns the result of multiplying mt and other, rows of mt by columns of other.
 * The product is not commutative: mt.Mul(other) applies other first when used on a vector.
 *
 * @param other The second matrix to be multiplied.
 * @return The result of the matrix multiplication.
 */
func (mt Mat4) Mul(other Mat4) Mat4 {
	out_matrix := Mat4{}

	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			sum := 0.0
			for i := 0; i < 4; i++ {
				sum += mt.Data[row*4+i] * other.Data[i*4+col]
			}
			out_matrix.Data[row*4+col] = sum
		}
	}

	return out_matrix
}

/**
 * @brief Multiplies the matrix by the column vector v.
 *
 * @param v The vector to transform.
 * @return The transformed vector.
 */
func (mt Mat4) MulVec4(v Vec4) Vec4 {
	d := mt.Data
	return Vec4{
		X: d[0]*v.X + d[1]*v.Y + d[2]*v.Z + d[3]*v.W,
		Y: d[4]*v.X + d[5]*v.Y + d[6]*v.Z + d[7]*v.W,
		Z: d[8]*v.X + d[9]*v.Y + d[10]*v.Z + d[11]*v.W,
		W: d[12]*v.X + d[13]*v.Y + d[14]*v.Z + d[15]*v.W,
	}
}

// cofactors holds the twelve 2x2 sub-determinants shared by Determinant and Inverse.
// s* come from the two upper rows, c* from the two lower rows.
type cofactors struct {
	s0, s1, s2, s3, s4, s5 float64
	c0, c1, c2, c3, c4, c5 float64
}

func (mt Mat4) cofactors() cofactors {
	a, b, c, d := mt.Data[0], mt.Data[1], mt.Data[2], mt.Data[3]
	e, f, g, h := mt.Data[4], mt.Data[5], mt.Data[6], mt.Data[7]
	i, j, k, l := mt.Data[8], mt.Data[9], mt.Data[10], mt.Data[11]
	m, n, o, p := mt.Data[12], mt.Data[13], mt.Data[14], mt.Data[15]

	return cofactors{
		s0: a*f - e*b,
		s1: a*g - e*c,
		s2: a*h - e*d,
		s3: b*g - f*c,
		s4: b*h - f*d,
		s5: c*h - g*d,

		c0: i*n - m*j,
		c1: i*o - m*k,
		c2: i*p - m*l,
		c3: j*o - n*k,
		c4: j*p - n*l,
		c5: k*p - o*l,
	}
}

func (cf cofactors) determinant() float64 {
	return cf.s0*cf.c5 - cf.s1*cf.c4 + cf.s2*cf.c3 + cf.s3*cf.c2 - cf.s4*cf.c1 + cf.s5*cf.c0
}

/**
 * @brief Returns the determinant of the matrix, expanded over the 2x2 minors
 * of the upper and lower row pairs.
 */
func (mt Mat4) Determinant() float64 {
	return mt.cofactors().determinant()
}

/**
 * @brief Creates and returns an inverse of the provided matrix: the adjugate
 * built from the 4x4 cofactors, scaled by 1/determinant.
 *
 * @return A inverted copy of the matrix, or core.ErrNonInvertibleMatrix
 * when the determinant is exactly zero.
 */
func (mt Mat4) Inverse() (Mat4, error) {
	cf := mt.cofactors()
	det := cf.determinant()
	if det == 0 {
		return Mat4{}, core.ErrNonInvertibleMatrix
	}

	a, b, c, d := mt.Data[0], mt.Data[1], mt.Data[2], mt.Data[3]
	e, f, g, h := mt.Data[4], mt.Data[5], mt.Data[6], mt.Data[7]
	i, j, k, l := mt.Data[8], mt.Data[9], mt.Data[10], mt.Data[11]
	m, n, o, p := mt.Data[12], mt.Data[13], mt.Data[14], mt.Data[15]

	inv := 1.0 / det
	out_matrix := Mat4{}
	r := &out_matrix.Data

	r[0] = (f*cf.c5 - g*cf.c4 + h*cf.c3) * inv
	r[1] = (-b*cf.c5 + c*cf.c4 - d*cf.c3) * inv
	r[2] = (n*cf.s5 - o*cf.s4 + p*cf.s3) * inv
	r[3] = (-j*cf.s5 + k*cf.s4 - l*cf.s3) * inv

	r[4] = (-e*cf.c5 + g*cf.c2 - h*cf.c1) * inv
	r[5] = (a*cf.c5 - c*cf.c2 + d*cf.c1) * inv
	r[6] = (-m*cf.s5 + o*cf.s2 - p*cf.s1) * inv
	r[7] = (i*cf.s5 - k*cf.s2 + l*cf.s1) * inv

	r[8] = (e*cf.c4 - f*cf.c2 + h*cf.c0) * inv
	r[9] = (-a*cf.c4 + b*cf.c2 - d*cf.c0) * inv
	r[10] = (m*cf.s4 - n*cf.s2 + p*cf.s0) * inv
	r[11] = (-i*cf.s4 + j*cf.s2 - l*cf.s0) * inv

	r[12] = (-e*cf.c3 + f*cf.c1 - g*cf.c0) * inv
	r[13] = (a*cf.c3 - b*cf.c1 + c*cf.c0) * inv
	r[14] = (-m*cf.s3 + n*cf.s1 - o*cf.s0) * inv
	r[15] = (i*cf.s3 - j*cf.s1 + k*cf.s0) * inv

	return out_matrix, nil
}

/**
 * @brief Returns a transposed copy of the provided matrix (rows->colums)
 */
func (mt Mat4) Transposed() Mat4 {
	out_matrix := Mat4{}
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			out_matrix.Data[col*4+row] = mt.Data[row*4+col]
		}
	}
	return out_matrix
}

// Compare reports whether every element of mt is within tolerance of other.
func (mt Mat4) Compare(other Mat4, tolerance float64) bool {
	for i := range mt.Data {
		if !equalWithinAbs(mt.Data[i], other.Data[i], tolerance) {
			return false
		}
	}
	return true
}

func (mt Mat4) String() string {
	var sb strings.Builder
	for row := 0; row < 4; row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "[%g %g %g %g]", mt.Data[row*4], mt.Data[row*4+1], mt.Data[row*4+2], mt.Data[row*4+3])
	}
	return sb.String()
}

/**
 * @brief Creates and returns a translation matrix from the given position.
 * The translation sits in the last column.
 *
 * @param position The position to be used to create the matrix.
 * @return A newly created translation matrix.
 */
func NewMat4Translation(position Vec3) Mat4 {
	out_matrix := NewMat4Identity()
	out_matrix.Data[3] = position.X
	out_matrix.Data[7] = position.Y
	out_matrix.Data[11] = position.Z
	return out_matrix
}

/**
 * @brief Returns a scale matrix using the provided scale.
 *
 * @param scale The 3-component scale.
 * @return A scale matrix.
 */
func NewMat4Scale(scale Vec3) Mat4 {
	out_matrix := NewMat4Identity()
	out_matrix.Data[0] = scale.X
	out_matrix.Data[5] = scale.Y
	out_matrix.Data[10] = scale.Z
	return out_matrix
}

/**
 * @brief Creates a right-handed rotation matrix about the x axis.
 *
 * @param angle_radians The x angle in radians.
 * @return A rotation matrix.
 */
func NewMat4EulerX(angle_radians float64) Mat4 {
	out_matrix := NewMat4Identity()
	c := kcos(angle_radians)
	s := ksin(angle_radians)

	out_matrix.Data[5] = c
	out_matrix.Data[6] = -s
	out_matrix.Data[9] = s
	out_matrix.Data[10] = c
	return out_matrix
}

/**
 * @brief Creates a right-handed rotation matrix about the y axis.
 *
 * @param angle_radians The y angle in radians.
 * @return A rotation matrix.
 */
func NewMat4EulerY(angle_radians float64) Mat4 {
	out_matrix := NewMat4Identity()
	c := kcos(angle_radians)
	s := ksin(angle_radians)

	out_matrix.Data[0] = c
	out_matrix.Data[2] = s
	out_matrix.Data[8] = -s
	out_matrix.Data[10] = c
	return out_matrix
}

/**
 * @brief Creates a right-handed rotation matrix about the z axis.
 *
 * @param angle_radians The z angle in radians.
 * @return A rotation matrix.
 */
func NewMat4EulerZ(angle_radians float64) Mat4 {
	out_matrix := NewMat4Identity()
	c := kcos(angle_radians)
	s := ksin(angle_radians)

	out_matrix.Data[0] = c
	out_matrix.Data[1] = -s
	out_matrix.Data[4] = s
	out_matrix.Data[5] = c
	return out_matrix
}

/**
 * @brief Creates a rotation matrix from the provided x, y and z axis rotations,
 * composed as Rx * Ry * Rz.
 */
func NewMat4EulerXYZ(x_radians, y_radians, z_radians float64) Mat4 {
	rx := NewMat4EulerX(x_radians)
	ry := NewMat4EulerY(y_radians)
	rz := NewMat4EulerZ(z_radians)
	return rx.Mul(ry).Mul(rz)
}

/**
 * @brief Creates and returns a perspective matrix.
 *
 * {
 *   {fov*aspect, 0,   0,                      0},
 *   {0,          fov, 0,                      0},
 *   {0,          0,   (far+near)/(far-near),  2*far*near/(near-far)},
 *   {0,          0,   1,                      0}
 * }
 *
 * @param fov_scale The field of view already turned into a scale factor (see Camera).
 * @param aspect_ratio The aspect ratio, min(width, height) / max(width, height).
 * @param far_clip The far clipping plane distance.
 * @param near_clip The near clipping plane distance.
 * @return A new perspective matrix. Row 3 copies z into w for the perspective divide.
 */
func NewMat4Projection(fov_scale, aspect_ratio, far_clip, near_clip float64) Mat4 {
	out_matrix := Mat4{}
	out_matrix.Data[0] = fov_scale * aspect_ratio
	out_matrix.Data[5] = fov_scale
	out_matrix.Data[10] = (far_clip + near_clip) / (far_clip - near_clip)
	out_matrix.Data[11] = (2.0 * far_clip * near_clip) / (near_clip - far_clip)
	out_matrix.Data[14] = 1.0
	return out_matrix
}

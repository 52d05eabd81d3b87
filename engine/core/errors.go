package core

import (
	"errors"
)

var (
	// ErrTypeMismatch is returned when an arithmetic operand is neither a scalar
	// nor a vector of the receiver's arity.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrNonInvertibleMatrix is returned when a matrix with a zero determinant is inverted.
	ErrNonInvertibleMatrix = errors.New("matrix can't be inverted")
	// ErrMalformedMesh is returned by the mesh loader for bad faces or vertices.
	ErrMalformedMesh = errors.New("malformed mesh")
	// ErrDegenerateProjection is returned by the perspective divide when w == 0.
	ErrDegenerateProjection = errors.New("degenerate projection: w is zero")
	// ErrInvalidViewport is returned for non-positive sizes, inverted clip planes or a bad fov.
	ErrInvalidViewport = errors.New("invalid viewport")
)

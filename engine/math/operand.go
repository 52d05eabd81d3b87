package math

import (
	"fmt"

	"github.com/spaghettifunk/wireframe/engine/core"
)

// Operand is the right-hand side of a vector operation whose kind is only known at
// run time, e.g. a value decoded from a scene file. It is a closed set: Scalar, Vec2,
// Vec3 and Vec4.
type Operand interface {
	operand()
}

// Scalar is a plain number used as an Operand.
type Scalar float64

func (Scalar) operand() {}
func (Vec2) operand()   {}
func (Vec3) operand()   {}
func (Vec4) operand()   {}

// ArithOp selects one of the four componentwise operations.
type ArithOp int

const (
	OpAdd ArithOp = iota
	OpSub
	OpMul
	OpDiv
)

func (op ArithOp) String() string {
	switch op {
	case OpAdd:
		return "add"
	case OpSub:
		return "sub"
	case OpMul:
		return "mul"
	case OpDiv:
		return "div"
	}
	return fmt.Sprintf("ArithOp(%d)", int(op))
}

func mismatch(op ArithOp, lhs interface{}, rhs Operand) error {
	return fmt.Errorf("%w: cannot %s %T and %T", core.ErrTypeMismatch, op, lhs, rhs)
}

func badOp(op ArithOp) error {
	return fmt.Errorf("%w: unknown operation %s", core.ErrTypeMismatch, op)
}

/**
 * @brief Applies op with a scalar or a 2-component vector on the right.
 * Any other operand fails with core.ErrTypeMismatch; nothing is coerced.
 */
func (v Vec2) Apply(op ArithOp, rhs Operand) (Vec2, error) {
	switch r := rhs.(type) {
	case Scalar:
		s := float64(r)
		switch op {
		case OpAdd:
			return v.AddScalar(s), nil
		case OpSub:
			return v.SubScalar(s), nil
		case OpMul:
			return v.MulScalar(s), nil
		case OpDiv:
			return v.DivScalar(s), nil
		}
		return Vec2{}, badOp(op)
	case Vec2:
		switch op {
		case OpAdd:
			return v.Add(r), nil
		case OpSub:
			return v.Sub(r), nil
		case OpMul:
			return v.Mul(r), nil
		case OpDiv:
			return v.Div(r), nil
		}
		return Vec2{}, badOp(op)
	}
	return Vec2{}, mismatch(op, v, rhs)
}

/**
 * @brief Applies op with a scalar or a 3-component vector on the right.
 * Any other operand fails with core.ErrTypeMismatch; nothing is coerced.
 */
func (v Vec3) Apply(op ArithOp, rhs Operand) (Vec3, error) {
	switch r := rhs.(type) {
	case Scalar:
		s := float64(r)
		switch op {
		case OpAdd:
			return v.AddScalar(s), nil
		case OpSub:
			return v.SubScalar(s), nil
		case OpMul:
			return v.MulScalar(s), nil
		case OpDiv:
			return v.DivScalar(s), nil
		}
		return Vec3{}, badOp(op)
	case Vec3:
		switch op {
		case OpAdd:
			return v.Add(r), nil
		case OpSub:
			return v.Sub(r), nil
		case OpMul:
			return v.Mul(r), nil
		case OpDiv:
			return v.Div(r), nil
		}
		return Vec3{}, badOp(op)
	}
	return Vec3{}, mismatch(op, v, rhs)
}

// Apply is the 4-component version of Vec3.Apply.
func (v Vec4) Apply(op ArithOp, rhs Operand) (Vec4, error) {
	switch r := rhs.(type) {
	case Scalar:
		s := float64(r)
		switch op {
		case OpAdd:
			return v.AddScalar(s), nil
		case OpSub:
			return v.SubScalar(s), nil
		case OpMul:
			return v.MulScalar(s), nil
		case OpDiv:
			return v.DivScalar(s), nil
		}
		return Vec4{}, badOp(op)
	case Vec4:
		switch op {
		case OpAdd:
			return v.Add(r), nil
		case OpSub:
			return v.Sub(r), nil
		case OpMul:
			return v.Mul(r), nil
		case OpDiv:
			return v.Div(r), nil
		}
		return Vec4{}, badOp(op)
	}
	return Vec4{}, mismatch(op, v, rhs)
}

// OperandFromValues turns a decoded number list into an Operand: one value is a
// Scalar, two to four values are the vector of that arity.
func OperandFromValues(values ...float64) (Operand, error) {
	switch len(values) {
	case 1:
		return Scalar(values[0]), nil
	case 2:
		return NewVec2(values[0], values[1]), nil
	case 3:
		return NewVec3(values[0], values[1], values[2]), nil
	case 4:
		return NewVec4(values[0], values[1], values[2], values[3]), nil
	}
	return nil, fmt.Errorf("%w: %d values do not form a scalar or a vector", core.ErrTypeMismatch, len(values))
}

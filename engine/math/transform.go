package math

import "fmt"

// NewTransform returns the neutral pose: origin, no rotation, unit scale.
func NewTransform() *Transform {
	return NewTransformFrom(NewVec3Zero(), NewVec3Zero(), NewVec3One())
}

// NewTransformZero returns a transform whose every component is zero. It is the
// "no motion" value for per-tick biases, where a unit scale would keep growing the object.
func NewTransformZero() *Transform {
	return NewTransformFrom(NewVec3Zero(), NewVec3Zero(), NewVec3Zero())
}

func NewTransformFromPosition(position Vec3) *Transform {
	return NewTransformFrom(position, NewVec3Zero(), NewVec3One())
}

func NewTransformFrom(position, rotation, scale Vec3) *Transform {
	t := &Transform{}
	t.SetPositionRotationScale(position, rotation, scale)
	t.local = NewMat4Identity()
	return t
}

func (t *Transform) touch() {
	t.isDirty = true
	t.version++
}

func (t *Transform) Position() Vec3 {
	return t.position
}

func (t *Transform) Rotation() Vec3 {
	return t.rotation
}

func (t *Transform) Scale() Vec3 {
	return t.scale
}

// Version increases on every mutation. Other caches compare it to tell whether
// something they derived from this transform is stale.
func (t *Transform) Version() uint64 {
	if t == nil {
		return 0
	}
	return t.version
}

func (t *Transform) SetPosition(position Vec3) {
	t.position = position
	t.touch()
}

func (t *Transform) Translate(translation Vec3) {
	t.position = t.position.Add(translation)
	t.touch()
}

func (t *Transform) SetRotation(rotation Vec3) {
	t.rotation = rotation
	t.touch()
}

// Rotate adds delta, in radians per axis, to the current rotation.
func (t *Transform) Rotate(delta Vec3) {
	t.rotation = t.rotation.Add(delta)
	t.touch()
}

func (t *Transform) SetScale(scale Vec3) {
	t.scale = scale
	t.touch()
}

// Grow adds delta to the current scale.
func (t *Transform) Grow(delta Vec3) {
	t.scale = t.scale.Add(delta)
	t.touch()
}

func (t *Transform) SetPositionRotationScale(position, rotation, scale Vec3) {
	t.position = position
	t.rotation = rotation
	t.scale = scale
	t.touch()
}

/**
 * @brief Returns the model matrix of the transform:
 * Translation(position) * Rx * Ry * Rz * Scale(scale).
 * All five factors are always multiplied; the result is cached until the
 * next mutation. A nil transform is the identity.
 */
func (t *Transform) ModelMatrix() Mat4 {
	if t == nil {
		return NewMat4Identity()
	}
	if t.isDirty {
		m := NewMat4Translation(t.position)
		m = m.Mul(NewMat4EulerX(t.rotation.X))
		m = m.Mul(NewMat4EulerY(t.rotation.Y))
		m = m.Mul(NewMat4EulerZ(t.rotation.Z))
		m = m.Mul(NewMat4Scale(t.scale))
		t.local = m
		t.isDirty = false
	}
	return t.local
}

func (t *Transform) String() string {
	return fmt.Sprintf("Transform(position=%s, rotation=%s, scale=%s)", t.position, t.rotation, t.scale)
}

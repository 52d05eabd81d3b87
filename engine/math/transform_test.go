package math

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestTransformModelMatrixOrder(t *testing.T) {
	pos := NewVec3(1, 2, 3)
	rot := NewVec3(0.3, -0.8, 1.2)
	scale := NewVec3(2, 1, 0.5)

	tr := NewTransformFrom(pos, rot, scale)

	ref := mgl64.Translate3D(pos.X, pos.Y, pos.Z).
		Mul4(mgl64.HomogRotate3DX(rot.X)).
		Mul4(mgl64.HomogRotate3DY(rot.Y)).
		Mul4(mgl64.HomogRotate3DZ(rot.Z)).
		Mul4(mgl64.Scale3D(scale.X, scale.Y, scale.Z))

	if got := tr.ModelMatrix(); !got.Compare(fromMgl(ref), 1e-12) {
		t.Errorf("model matrix =\n%v\nwant\n%v", got, fromMgl(ref))
	}
}

func TestTransformNeutralIsIdentity(t *testing.T) {
	if got := NewTransform().ModelMatrix(); got != NewMat4Identity() {
		t.Errorf("neutral transform should give the identity:\n%v", got)
	}
	var nilTransform *Transform
	if got := nilTransform.ModelMatrix(); got != NewMat4Identity() {
		t.Errorf("nil transform should give the identity:\n%v", got)
	}
}

func TestTransformCacheInvalidation(t *testing.T) {
	tr := NewTransform()
	before := tr.ModelMatrix()
	v0 := tr.Version()

	tests := []struct {
		name   string
		mutate func(*Transform)
	}{
		{name: "SetPosition", mutate: func(tr *Transform) { tr.SetPosition(NewVec3(1, 0, 0)) }},
		{name: "Translate", mutate: func(tr *Transform) { tr.Translate(NewVec3(0, 1, 0)) }},
		{name: "SetRotation", mutate: func(tr *Transform) { tr.SetRotation(NewVec3(0, 1, 0)) }},
		{name: "Rotate", mutate: func(tr *Transform) { tr.Rotate(NewVec3(0.5, 0, 0)) }},
		{name: "SetScale", mutate: func(tr *Transform) { tr.SetScale(NewVec3(2, 2, 2)) }},
		{name: "Grow", mutate: func(tr *Transform) { tr.Grow(NewVec3(1, 0, 0)) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prev := tr.ModelMatrix()
			version := tr.Version()
			tt.mutate(tr)
			if tr.Version() <= version {
				t.Errorf("version did not increase")
			}
			if tr.ModelMatrix() == prev {
				t.Errorf("model matrix was not recomputed")
			}
		})
	}

	if tr.Version() <= v0 || tr.ModelMatrix() == before {
		t.Errorf("transform should have changed")
	}
}

func TestTransformAdditiveMutators(t *testing.T) {
	tr := NewTransform()
	tr.Translate(NewVec3(1, 2, 3))
	tr.Translate(NewVec3(1, 1, 1))
	tr.Rotate(NewVec3(0.1, 0, 0))
	tr.Rotate(NewVec3(0.1, 0, 0))
	tr.Grow(NewVec3(1, 0, 0))

	if tr.Position() != NewVec3(2, 3, 4) {
		t.Errorf("position = %v", tr.Position())
	}
	if !tr.Rotation().Compare(NewVec3(0.2, 0, 0), 1e-15) {
		t.Errorf("rotation = %v", tr.Rotation())
	}
	if tr.Scale() != NewVec3(2, 1, 1) {
		t.Errorf("scale = %v", tr.Scale())
	}
	if NewTransformZero().Scale() != NewVec3Zero() {
		t.Errorf("zero transform should have zero scale")
	}
}

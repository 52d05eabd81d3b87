package math

import (
	"errors"
	m "math"
	"testing"

	"github.com/spaghettifunk/wireframe/engine/core"
)

// =============================================================================
// Vector Tests
// =============================================================================

func TestVec3Distance(t *testing.T) {
	tests := []struct {
		name string
		a, b Vec3
		want float64
	}{
		{name: "Same point", a: NewVec3(1, 2, 3), b: NewVec3(1, 2, 3), want: 0},
		{name: "Unit along X", a: NewVec3Zero(), b: NewVec3(1, 0, 0), want: 1},
		{name: "3-4-5 triangle", a: NewVec3(1, 1, 0), b: NewVec3(4, 5, 0), want: 5},
		{name: "Negative components", a: NewVec3(-1, -2, -2), b: NewVec3Zero(), want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ab := tt.a.Distance(tt.b)
			ba := tt.b.Distance(tt.a)
			if m.Abs(ab-tt.want) > 1e-12 {
				t.Errorf("Distance(a, b) = %v, want %v", ab, tt.want)
			}
			// Test symmetry
			if ab != ba {
				t.Errorf("Distance is not symmetric: %v != %v", ab, ba)
			}
			if d := tt.a.Distance(tt.a); d != 0 {
				t.Errorf("Distance(a, a) = %v, want 0", d)
			}
		})
	}
}

func TestVec3Lerp(t *testing.T) {
	a := NewVec3(1, -2, 3)
	b := NewVec3(-4, 5, 0.5)

	if got := a.Lerp(b, 0); got != a {
		t.Errorf("Lerp(a, b, 0) = %v, want %v", got, a)
	}
	if got := a.Lerp(b, 1); !got.Compare(b, 1e-12) {
		t.Errorf("Lerp(a, b, 1) = %v, want %v", got, b)
	}
	if got := a.Lerp(b, 0.5); !got.Compare(NewVec3(-1.5, 1.5, 1.75), 1e-12) {
		t.Errorf("Lerp(a, b, 0.5) = %v", got)
	}
	// t is not clamped
	if got := NewVec3Zero().Lerp(NewVec3One(), 2); !got.Compare(NewVec3(2, 2, 2), 1e-12) {
		t.Errorf("Lerp should extrapolate, got %v", got)
	}
}

func TestVecArithmetic(t *testing.T) {
	a := NewVec3(2, 4, 6)
	b := NewVec3(1, 2, 3)

	if got := a.Add(b); got != NewVec3(3, 6, 9) {
		t.Errorf("Add = %v", got)
	}
	if got := a.Sub(b); got != NewVec3(1, 2, 3) {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Mul(b); got != NewVec3(2, 8, 18) {
		t.Errorf("Mul = %v", got)
	}
	if got := a.Div(b); got != NewVec3(2, 2, 2) {
		t.Errorf("Div = %v", got)
	}
	if got := a.DivScalar(2); got != b {
		t.Errorf("DivScalar = %v", got)
	}
	if got := NewVec2(1, 2).AddScalar(1); got != NewVec2(2, 3) {
		t.Errorf("Vec2.AddScalar = %v", got)
	}
	if got := NewVec4(1, 2, 3, 4).SubScalar(1); got != NewVec4(0, 1, 2, 3) {
		t.Errorf("Vec4.SubScalar = %v", got)
	}
	if l := NewVec4(1, 1, 1, 1).Length(); l != 2 {
		t.Errorf("Vec4.Length = %v, want 2", l)
	}
	if l := NewVec2(3, 4).Length(); l != 5 {
		t.Errorf("Vec2.Length = %v, want 5", l)
	}
}

func TestVecConversions(t *testing.T) {
	tests := []struct {
		name string
		got  interface{}
		want interface{}
	}{
		{name: "Vec2 to Vec3", got: NewVec2(1, 2).ToVec3(), want: NewVec3(1, 2, 0)},
		{name: "Vec2 to Vec4", got: NewVec2(1, 2).ToVec4(), want: NewVec4(1, 2, 0, 0)},
		{name: "Vec3 to Vec2", got: NewVec3(1, 2, 3).ToVec2(), want: NewVec2(1, 2)},
		{name: "Vec3 to Vec4", got: NewVec3(1, 2, 3).ToVec4(), want: NewVec4(1, 2, 3, 0)},
		{name: "Vec3 to homogeneous", got: NewVec3(1, 2, 3).ToHomogeneous(), want: NewVec4(1, 2, 3, 1)},
		{name: "Vec4 to Vec3", got: NewVec4(1, 2, 3, 4).ToVec3(), want: NewVec3(1, 2, 3)},
		{name: "Vec4 to Vec2", got: NewVec4(1, 2, 3, 4).ToVec2(), want: NewVec2(1, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestHomogeneousRoundTrip(t *testing.T) {
	points := []Vec3{
		NewVec3Zero(),
		NewVec3(1, -2, 3),
		NewVec3(1e6, -1e-6, 42.5),
	}
	for _, p := range points {
		h := CartesianToHomogeneous(p)
		if h.W != 1 {
			t.Fatalf("w = %v, want 1", h.W)
		}
		back, err := HomogeneousToCartesian(h)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		again, err := CartesianToHomogeneous(back).ToCartesian()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if again != p {
			t.Errorf("round trip of %v gave %v", p, again)
		}
	}
}

func TestPerspectiveDivide(t *testing.T) {
	got, err := NewVec4(2, 4, 6, 2).ToCartesian()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != NewVec3(1, 2, 3) {
		t.Errorf("got %v, want (1, 2, 3)", got)
	}

	_, err = NewVec4(1, 1, 1, 0).ToCartesian()
	if !errors.Is(err, core.ErrDegenerateProjection) {
		t.Errorf("w = 0 should fail with ErrDegenerateProjection, got %v", err)
	}
}

// =============================================================================
// Operand Tests
// =============================================================================

func TestVec3Apply(t *testing.T) {
	v := NewVec3(2, 4, 6)
	tests := []struct {
		name    string
		op      ArithOp
		rhs     Operand
		want    Vec3
		wantErr bool
	}{
		{name: "Add scalar", op: OpAdd, rhs: Scalar(1), want: NewVec3(3, 5, 7)},
		{name: "Div scalar", op: OpDiv, rhs: Scalar(2), want: NewVec3(1, 2, 3)},
		{name: "Mul vector", op: OpMul, rhs: NewVec3(1, 0, -1), want: NewVec3(2, 0, -6)},
		{name: "Sub vector", op: OpSub, rhs: NewVec3One(), want: NewVec3(1, 3, 5)},
		{name: "Vec2 operand", op: OpAdd, rhs: NewVec2(1, 1), wantErr: true},
		{name: "Vec4 operand", op: OpMul, rhs: NewVec4One(), wantErr: true},
		{name: "Nil operand", op: OpAdd, rhs: nil, wantErr: true},
		{name: "Unknown op", op: ArithOp(42), rhs: Scalar(1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := v.Apply(tt.op, tt.rhs)
			if tt.wantErr {
				if !errors.Is(err, core.ErrTypeMismatch) {
					t.Fatalf("expected ErrTypeMismatch, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVec2AndVec4Apply(t *testing.T) {
	if got, err := NewVec2(1, 2).Apply(OpMul, Scalar(3)); err != nil || got != NewVec2(3, 6) {
		t.Errorf("Vec2.Apply = %v, %v", got, err)
	}
	if _, err := NewVec2(1, 2).Apply(OpMul, NewVec3One()); !errors.Is(err, core.ErrTypeMismatch) {
		t.Errorf("Vec2 * Vec3 should fail, got %v", err)
	}
	if got, err := NewVec4(1, 2, 3, 4).Apply(OpSub, NewVec4One()); err != nil || got != NewVec4(0, 1, 2, 3) {
		t.Errorf("Vec4.Apply = %v, %v", got, err)
	}
	if _, err := NewVec4One().Apply(OpAdd, NewVec2(1, 1)); !errors.Is(err, core.ErrTypeMismatch) {
		t.Errorf("Vec4 + Vec2 should fail, got %v", err)
	}
}

func TestOperandFromValues(t *testing.T) {
	tests := []struct {
		name    string
		values  []float64
		want    Operand
		wantErr bool
	}{
		{name: "Scalar", values: []float64{2}, want: Scalar(2)},
		{name: "Vec2", values: []float64{1, 2}, want: NewVec2(1, 2)},
		{name: "Vec3", values: []float64{1, 2, 3}, want: NewVec3(1, 2, 3)},
		{name: "Vec4", values: []float64{1, 2, 3, 4}, want: NewVec4(1, 2, 3, 4)},
		{name: "Empty", values: nil, wantErr: true},
		{name: "Too many", values: []float64{1, 2, 3, 4, 5}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := OperandFromValues(tt.values...)
			if tt.wantErr {
				if !errors.Is(err, core.ErrTypeMismatch) {
					t.Fatalf("expected ErrTypeMismatch, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	if Clamp(5, 0, 3) != 3 || Clamp(-1, 0, 3) != 0 || Clamp(2, 0, 3) != 2 {
		t.Errorf("Clamp on ints is wrong")
	}
	if Clamp(0.5, 0.0, 1.0) != 0.5 {
		t.Errorf("Clamp on floats is wrong")
	}
	if m.Abs(DegToRad(180)-K_PI) > 1e-15 || m.Abs(RadToDeg(K_HALF_PI)-90) > 1e-12 {
		t.Errorf("degree conversions are wrong")
	}
}

func TestExtentsOf(t *testing.T) {
	ext := ExtentsOf(NewVec3(1, -1, 0), NewVec3(-2, 3, 1), NewVec3(0, 0, -4))
	if ext.Min != NewVec3(-2, -1, -4) || ext.Max != NewVec3(1, 3, 1) {
		t.Errorf("unexpected extents %v", ext)
	}
	if ext.Size() != NewVec3(3, 4, 5) {
		t.Errorf("Size = %v", ext.Size())
	}
	if c := ext.Center(); !c.Compare(NewVec3(-0.5, 1, -1.5), 1e-12) {
		t.Errorf("Center = %v", c)
	}
	if empty := ExtentsOf(); empty != (Extents3D{}) {
		t.Errorf("empty extents = %v", empty)
	}
}

package components

import (
	"errors"
	"image/color"
	"testing"

	"github.com/spaghettifunk/wireframe/engine/core"
	"github.com/spaghettifunk/wireframe/engine/math"
	"github.com/spaghettifunk/wireframe/engine/renderer/metadata"
)

type polylineCall struct {
	colour color.RGBA
	closed bool
	points []metadata.Point
}

// recordingFramebuffer keeps every draw call instead of rasterising it.
type recordingFramebuffer struct {
	width, height int
	polylines     []polylineCall
	clears        []color.RGBA
	err           error
}

func (r *recordingFramebuffer) DrawPolyline(colour color.RGBA, closed bool, points []metadata.Point) error {
	if r.err != nil {
		return r.err
	}
	r.polylines = append(r.polylines, polylineCall{
		colour: colour,
		closed: closed,
		points: append([]metadata.Point(nil), points...),
	})
	return nil
}

func (r *recordingFramebuffer) Clear(colour color.RGBA) error {
	r.clears = append(r.clears, colour)
	return nil
}

func (r *recordingFramebuffer) Size() (int, int) {
	return r.width, r.height
}

// newLookingDownNegativeZ returns a 200x200 camera at the origin turned half a
// revolution around y, so that it looks towards -z.
func newLookingDownNegativeZ(t *testing.T) *Camera {
	t.Helper()
	camera, err := NewCamera(90, 200, 200, 0.1, 100)
	if err != nil {
		t.Fatalf("NewCamera: %v", err)
	}
	camera.Transform().SetRotation(math.NewVec3(0, math.K_PI, 0))
	return camera
}

// =============================================================================
// Camera Construction Tests
// =============================================================================

func TestNewCameraValidation(t *testing.T) {
	tests := []struct {
		name          string
		fov           float64
		width, height int
		near, far     float64
	}{
		{name: "Zero width", fov: 90, width: 0, height: 100, near: 0.1, far: 10},
		{name: "Negative height", fov: 90, width: 100, height: -1, near: 0.1, far: 10},
		{name: "Fov of 180", fov: 180, width: 100, height: 100, near: 0.1, far: 10},
		{name: "Zero fov", fov: 0, width: 100, height: 100, near: 0.1, far: 10},
		{name: "Near equals far", fov: 90, width: 100, height: 100, near: 10, far: 10},
		{name: "Near behind camera", fov: 90, width: 100, height: 100, near: -1, far: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCamera(tt.fov, tt.width, tt.height, tt.near, tt.far)
			if !errors.Is(err, core.ErrInvalidViewport) {
				t.Errorf("expected ErrInvalidViewport, got %v", err)
			}
		})
	}
}

func TestCameraProjectionValues(t *testing.T) {
	camera, err := NewCamera(120, 800, 600, 0.001, 1000)
	if err != nil {
		t.Fatalf("NewCamera: %v", err)
	}

	fovScale := math.DegToRad(60)
	want := math.NewMat4Projection(fovScale, 600.0/800.0, 1000, 0.001)
	if got := camera.Projection(); !got.Compare(want, 1e-12) {
		t.Errorf("projection =\n%v\nwant\n%v", got, want)
	}
	if hw, hh := camera.HalfSize(); hw != 400 || hh != 300 {
		t.Errorf("half size = %d, %d", hw, hh)
	}
	if clip := camera.ClipMidpoint(); clip != (1000-0.001)/2+0.001 {
		t.Errorf("clip midpoint = %v", clip)
	}
}

// =============================================================================
// Cache Invalidation Tests
// =============================================================================

func TestCameraResize(t *testing.T) {
	camera, err := NewCamera(90, 200, 100, 0.1, 100)
	if err != nil {
		t.Fatalf("NewCamera: %v", err)
	}
	before := camera.Projection()

	tests := []struct {
		width, height         int
		halfWidth, halfHeight int
	}{
		{width: 400, height: 300, halfWidth: 200, halfHeight: 150},
		{width: 201, height: 99, halfWidth: 100, halfHeight: 49},
		{width: 200, height: 100, halfWidth: 100, halfHeight: 50},
	}
	for _, tt := range tests {
		if err := camera.Resize(tt.width, tt.height); err != nil {
			t.Fatalf("Resize: %v", err)
		}
		if hw, hh := camera.HalfSize(); hw != tt.halfWidth || hh != tt.halfHeight {
			t.Errorf("Resize(%d, %d): half size = %d, %d", tt.width, tt.height, hw, hh)
		}
	}

	// Back to 200x100: the projection must match the first one again.
	if got := camera.Projection(); !got.Compare(before, 1e-15) {
		t.Errorf("projection differs after resizing back")
	}

	if err := camera.Resize(100, 100); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if camera.Projection().At(0, 0) == before.At(0, 0) {
		t.Errorf("aspect ratio change should change the x scale")
	}

	if err := camera.Resize(0, 100); !errors.Is(err, core.ErrInvalidViewport) {
		t.Errorf("expected ErrInvalidViewport, got %v", err)
	}
	if w, h := camera.Size(); w != 100 || h != 100 {
		t.Errorf("a failed resize must keep the old size, got %dx%d", w, h)
	}
}

func TestCameraFovAndClipChangeProjection(t *testing.T) {
	camera, err := NewCamera(90, 200, 200, 0.1, 100)
	if err != nil {
		t.Fatalf("NewCamera: %v", err)
	}
	before := camera.Projection()

	if err := camera.SetFov(60); err != nil {
		t.Fatalf("SetFov: %v", err)
	}
	// No explicit UpdateProjection: the next read must rebuild it.
	after := camera.Projection()
	if after.At(0, 0) == before.At(0, 0) || after.At(1, 1) == before.At(1, 1) {
		t.Errorf("fov change did not reach the projection diagonal")
	}
	if after.At(2, 2) != before.At(2, 2) {
		t.Errorf("fov change should not touch the depth terms")
	}

	if err := camera.SetClipPlanes(1, 50); err != nil {
		t.Fatalf("SetClipPlanes: %v", err)
	}
	clipped := camera.Projection()
	if clipped.At(2, 2) != 51.0/49.0 || clipped.At(2, 3) != 2*50*1/(1-50.0) {
		t.Errorf("clip plane change did not reach the depth terms:\n%v", clipped)
	}
	if camera.ClipMidpoint() != 25.5 {
		t.Errorf("clip midpoint = %v, want 25.5", camera.ClipMidpoint())
	}

	if err := camera.SetFov(200); !errors.Is(err, core.ErrInvalidViewport) {
		t.Errorf("expected ErrInvalidViewport, got %v", err)
	}
	if err := camera.SetClipPlanes(5, 1); !errors.Is(err, core.ErrInvalidViewport) {
		t.Errorf("expected ErrInvalidViewport, got %v", err)
	}
}

func TestCameraViewFollowsTransform(t *testing.T) {
	camera, err := NewCamera(90, 200, 200, 0.1, 100)
	if err != nil {
		t.Fatalf("NewCamera: %v", err)
	}
	view, err := camera.View()
	if err != nil {
		t.Fatalf("View: %v", err)
	}
	if view != math.NewMat4Identity() {
		t.Errorf("camera at the origin should have an identity view")
	}

	// Moving the pose without calling Update must still be observed.
	camera.Transform().SetPosition(math.NewVec3(1, 2, 3))
	view, err = camera.View()
	if err != nil {
		t.Fatalf("View: %v", err)
	}
	got := view.MulVec4(math.NewVec4(1, 2, 3, 1))
	if !got.Compare(math.NewVec4(0, 0, 0, 1), 1e-12) {
		t.Errorf("the camera position should map to the origin, got %v", got)
	}

	camera.Yaw(0.5)
	camera.Pitch(10)
	if r := camera.Transform().Rotation(); r.X != pitchLimit || r.Y != 0.5 {
		t.Errorf("rotation = %v", r)
	}
	view2, _ := camera.View()
	if view2 == view {
		t.Errorf("rotating the camera should change the view")
	}
}

func TestCameraNonInvertibleView(t *testing.T) {
	camera, err := NewCamera(90, 200, 200, 0.1, 100)
	if err != nil {
		t.Fatalf("NewCamera: %v", err)
	}
	camera.Transform().SetScale(math.NewVec3Zero())

	if _, err := camera.View(); !errors.Is(err, core.ErrNonInvertibleMatrix) {
		t.Errorf("expected ErrNonInvertibleMatrix, got %v", err)
	}
	fb := &recordingFramebuffer{width: 200, height: 200}
	mesh := &metadata.Mesh{Name: "tri", Triangles: []metadata.Triangle{{}}}
	if _, err := camera.RenderWireframe(fb, math.NewTransform(), mesh, color.RGBA{A: 255}); !errors.Is(err, core.ErrNonInvertibleMatrix) {
		t.Errorf("expected ErrNonInvertibleMatrix from render, got %v", err)
	}
	if len(fb.polylines) != 0 {
		t.Errorf("nothing should be drawn")
	}

	camera.Transform().SetScale(math.NewVec3One())
	if _, err := camera.View(); err != nil {
		t.Errorf("view should recover once the scale is fixed, got %v", err)
	}
}

func TestCameraMovement(t *testing.T) {
	camera := newLookingDownNegativeZ(t)
	if f := camera.Forward(); !f.Compare(math.NewVec3(0, 0, -1), 1e-12) {
		t.Errorf("forward = %v, want (0, 0, -1)", f)
	}
	camera.MoveForward(2)
	camera.MoveUp(1)
	camera.MoveRight(1)
	want := math.NewVec3(-1, 1, -2)
	if p := camera.Transform().Position(); !p.Compare(want, 1e-12) {
		t.Errorf("position = %v, want %v", p, want)
	}
	camera.MoveLeft(1)
	camera.MoveDown(1)
	camera.MoveBackward(2)
	if p := camera.Transform().Position(); !p.Compare(math.NewVec3Zero(), 1e-12) {
		t.Errorf("position = %v, want the origin", p)
	}
}

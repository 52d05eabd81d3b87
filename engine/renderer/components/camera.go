package components

import (
	"fmt"

	"github.com/spaghettifunk/wireframe/engine/core"
	"github.com/spaghettifunk/wireframe/engine/math"
)

/** @brief The name of the default camera. */
const DEFAULT_CAMERA_NAME string = "default"

// 89 degrees, the pitch limit used to avoid gimbal lock.
const pitchLimit float64 = 1.55334306

/**
 * @brief Represents the camera the wireframes are seen through. It owns its pose
 * as a transform and derives the projection and view matrices from it.
 * NOTE: the derived matrices are recomputed on read whenever the pose, the field
 * of view, the clip planes or the viewport size changed, so a stale matrix is
 * never returned even if nobody calls Update.
 */
type Camera struct {
	Name string

	transform *math.Transform
	/** @brief The field of view in degrees, in the open range (0, 180). */
	fov    float64
	width  int
	height int
	/** @brief Near and far clip distances, 0 < clipNear < clipFar. */
	clipNear float64
	clipFar  float64

	/** @brief Set when fov, clip planes or size changed since the projection was built. */
	projectionDirty bool
	projection      math.Mat4
	halfWidth       int
	halfHeight      int
	clip            float64

	/** @brief The transform version the view matrix was built from. */
	viewVersion uint64
	viewValid   bool
	view        math.Mat4
}

func validateViewport(fov float64, width, height int, near, far float64) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: size %dx%d", core.ErrInvalidViewport, width, height)
	}
	if fov <= 0 || fov >= 180 {
		return fmt.Errorf("%w: fov %g outside (0, 180)", core.ErrInvalidViewport, fov)
	}
	if near <= 0 || near >= far {
		return fmt.Errorf("%w: clip planes near=%g far=%g", core.ErrInvalidViewport, near, far)
	}
	return nil
}

/**
 * @brief Creates a camera at the origin with the given field of view (degrees),
 * viewport size (pixels) and clip distances.
 */
func NewCamera(fov float64, width, height int, clipNear, clipFar float64) (*Camera, error) {
	if err := validateViewport(fov, width, height, clipNear, clipFar); err != nil {
		return nil, err
	}
	c := &Camera{
		Name:      DEFAULT_CAMERA_NAME,
		transform: math.NewTransform(),
		fov:       fov,
		width:     width,
		height:    height,
		clipNear:  clipNear,
		clipFar:   clipFar,
	}
	c.UpdateProjection()
	if err := c.Update(); err != nil {
		return nil, err
	}
	return c, nil
}

// Transform is the pose of the camera. Mutating it is enough to move the camera.
func (c *Camera) Transform() *math.Transform {
	return c.transform
}

func (c *Camera) Fov() float64 {
	return c.fov
}

func (c *Camera) SetFov(fov float64) error {
	if err := validateViewport(fov, c.width, c.height, c.clipNear, c.clipFar); err != nil {
		return err
	}
	c.fov = fov
	c.projectionDirty = true
	return nil
}

func (c *Camera) ClipPlanes() (near, far float64) {
	return c.clipNear, c.clipFar
}

func (c *Camera) SetClipPlanes(near, far float64) error {
	if err := validateViewport(c.fov, c.width, c.height, near, far); err != nil {
		return err
	}
	c.clipNear = near
	c.clipFar = far
	c.projectionDirty = true
	return nil
}

func (c *Camera) Size() (width, height int) {
	return c.width, c.height
}

/**
 * @brief Changes the viewport size and rebuilds the projection, the half size
 * and the clip midpoint right away.
 */
func (c *Camera) Resize(width, height int) error {
	if err := validateViewport(c.fov, width, height, c.clipNear, c.clipFar); err != nil {
		return err
	}
	c.width = width
	c.height = height
	c.UpdateProjection()
	return nil
}

/**
 * @brief Rebuilds the projection matrix, the half viewport size and the clip midpoint.
 * The fov becomes a scale of (180 - fov) degrees in radians and the aspect ratio is
 * the short side over the long side.
 */
func (c *Camera) UpdateProjection() {
	fovScale := math.DegToRad(180.0 - c.fov)
	aspect := float64(math.Min(c.width, c.height)) / float64(math.Max(c.width, c.height))

	c.projection = math.NewMat4Projection(fovScale, aspect, c.clipFar, c.clipNear)
	c.halfWidth = c.width / 2
	c.halfHeight = c.height / 2
	c.clip = (c.clipFar-c.clipNear)/2.0 + c.clipNear
	c.projectionDirty = false
}

/**
 * @brief Rebuilds the view matrix, the inverse of the camera transform.
 * Fails with core.ErrNonInvertibleMatrix when the pose has a zero scale.
 */
func (c *Camera) Update() error {
	view, err := c.transform.ModelMatrix().Inverse()
	if err != nil {
		c.viewValid = false
		return fmt.Errorf("camera %s view: %w", c.Name, err)
	}
	c.view = view
	c.viewVersion = c.transform.Version()
	c.viewValid = true
	return nil
}

func (c *Camera) Projection() math.Mat4 {
	if c.projectionDirty {
		c.UpdateProjection()
	}
	return c.projection
}

func (c *Camera) View() (math.Mat4, error) {
	if !c.viewValid || c.viewVersion != c.transform.Version() {
		if err := c.Update(); err != nil {
			return math.Mat4{}, err
		}
	}
	return c.view, nil
}

// HalfSize is half the viewport, rounded down.
func (c *Camera) HalfSize() (int, int) {
	if c.projectionDirty {
		c.UpdateProjection()
	}
	return c.halfWidth, c.halfHeight
}

// ClipMidpoint is the distance halfway between the clip planes, used to scale depth.
func (c *Camera) ClipMidpoint() float64 {
	if c.projectionDirty {
		c.UpdateProjection()
	}
	return c.clip
}

// ViewProjection returns projection * view.
func (c *Camera) ViewProjection() (math.Mat4, error) {
	view, err := c.View()
	if err != nil {
		return math.Mat4{}, err
	}
	return c.Projection().Mul(view), nil
}

// Forward is the direction the camera looks at in world space, its local +z axis.
func (c *Camera) Forward() math.Vec3 {
	m := c.transform.ModelMatrix()
	return math.NewVec3(m.At(0, 2), m.At(1, 2), m.At(2, 2))
}

func (c *Camera) Backward() math.Vec3 {
	return c.Forward().MulScalar(-1)
}

// Right is the local +x axis of the camera in world space.
func (c *Camera) Right() math.Vec3 {
	m := c.transform.ModelMatrix()
	return math.NewVec3(m.At(0, 0), m.At(1, 0), m.At(2, 0))
}

func (c *Camera) Left() math.Vec3 {
	return c.Right().MulScalar(-1)
}

func (c *Camera) MoveForward(amount float64) {
	c.transform.Translate(c.Forward().MulScalar(amount))
}

func (c *Camera) MoveBackward(amount float64) {
	c.transform.Translate(c.Backward().MulScalar(amount))
}

func (c *Camera) MoveLeft(amount float64) {
	c.transform.Translate(c.Left().MulScalar(amount))
}

func (c *Camera) MoveRight(amount float64) {
	c.transform.Translate(c.Right().MulScalar(amount))
}

func (c *Camera) MoveUp(amount float64) {
	c.transform.Translate(math.NewVec3(0, amount, 0))
}

func (c *Camera) MoveDown(amount float64) {
	c.transform.Translate(math.NewVec3(0, -amount, 0))
}

func (c *Camera) Yaw(amount float64) {
	c.transform.Rotate(math.NewVec3(0, amount, 0))
}

func (c *Camera) Pitch(amount float64) {
	rotation := c.transform.Rotation()
	// Clamp to avoid Gimbal lock.
	rotation.X = math.Clamp(rotation.X+amount, -pitchLimit, pitchLimit)
	c.transform.SetRotation(rotation)
}

func (c *Camera) String() string {
	return fmt.Sprintf("Camera(%s, fov=%g, size=%dx%d, near=%g, far=%g, %s)",
		c.Name, c.fov, c.width, c.height, c.clipNear, c.clipFar, c.transform)
}

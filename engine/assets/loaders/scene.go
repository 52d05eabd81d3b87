package loaders

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/gg"
	"github.com/pelletier/go-toml/v2"
	"github.com/spaghettifunk/wireframe/engine/core"
	"github.com/spaghettifunk/wireframe/engine/math"
	"github.com/spaghettifunk/wireframe/engine/renderer/metadata"
)

var ErrInvalidScene = errors.New("invalid scene")

const (
	DefaultCameraFov  float64 = 120.0
	DefaultCameraNear float64 = 0.001
	DefaultCameraFar  float64 = 1000.0
	DefaultColour     string  = "#ffffff"
)

/**
 * @brief The camera section of a scene file. Angles are radians.
 */
type CameraConfig struct {
	Fov      float64     `toml:"fov"`
	Near     float64     `toml:"near"`
	Far      float64     `toml:"far"`
	Position interface{} `toml:"position"`
	Rotation interface{} `toml:"rotation"`
	/** @brief Rotation added to the camera every second. */
	Orbit interface{} `toml:"orbit"`
}

/** @brief Per second change of an object's transform. */
type BiasConfig struct {
	Position interface{} `toml:"position"`
	Rotation interface{} `toml:"rotation"`
	Scale    interface{} `toml:"scale"`
}

/**
 * @brief One [[objects]] entry of a scene file. Vector fields take either a
 * list of three numbers or a single number used for every axis.
 */
type ObjectConfig struct {
	Name string `toml:"name"`
	/** @brief Optional fixed identifier, a UUID. One is generated when empty. */
	ID   string `toml:"id"`
	Mesh string `toml:"mesh"`

	Position interface{} `toml:"position"`
	Rotation interface{} `toml:"rotation"`
	Scale    interface{} `toml:"scale"`
	/** @brief Hex colour of the wireframe, "#rrggbb". */
	Colour string     `toml:"colour"`
	Bias   BiasConfig `toml:"bias"`
}

type SceneConfig struct {
	Name    string         `toml:"name"`
	Camera  CameraConfig   `toml:"camera"`
	Objects []ObjectConfig `toml:"objects"`

	/** @brief Directory mesh paths are relative to. Set by the loader. */
	BaseDir string `toml:"-"`
}

type SceneLoader struct{}

func (sl *SceneLoader) Load(path string, params interface{}) (*metadata.Resource, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, err
	}

	scene, err := ParseScene(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	scene.BaseDir = filepath.Dir(path)
	if scene.Name == "" {
		scene.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	return &metadata.Resource{
		Type:     metadata.ResourceTypeScene,
		Name:     scene.Name,
		FullPath: path,
		DataSize: uint64(info.Size()),
		Data:     scene,
	}, nil
}

func (sl *SceneLoader) Unload(resource *metadata.Resource) error {
	resource.Data = nil
	return nil
}

// ParseScene decodes and validates a scene file. Missing camera values get defaults.
func ParseScene(r io.Reader) (*SceneConfig, error) {
	scene := &SceneConfig{}
	if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(scene); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidScene, err)
	}

	if scene.Camera.Fov == 0 {
		scene.Camera.Fov = DefaultCameraFov
	}
	if scene.Camera.Near == 0 {
		scene.Camera.Near = DefaultCameraNear
	}
	if scene.Camera.Far == 0 {
		scene.Camera.Far = DefaultCameraFar
	}
	if err := scene.Validate(); err != nil {
		return nil, err
	}
	return scene, nil
}

// Validate resolves every field once so that errors surface at load time.
func (sc *SceneConfig) Validate() error {
	if _, err := sc.Camera.Transform(); err != nil {
		return fmt.Errorf("camera: %w", err)
	}
	if _, err := sc.Camera.OrbitRate(); err != nil {
		return fmt.Errorf("camera orbit: %w", err)
	}
	for i, obj := range sc.Objects {
		if obj.Name == "" {
			return fmt.Errorf("%w: object %d has no name", ErrInvalidScene, i)
		}
		if obj.Mesh == "" {
			return fmt.Errorf("%w: object '%s' has no mesh", ErrInvalidScene, obj.Name)
		}
		if obj.ID != "" {
			if _, err := core.ParseIdentifier(obj.ID); err != nil {
				return fmt.Errorf("%w: object '%s' id: %s", ErrInvalidScene, obj.Name, err)
			}
		}
		if _, err := obj.Transform(); err != nil {
			return fmt.Errorf("object '%s': %w", obj.Name, err)
		}
		if _, err := obj.BiasTransform(); err != nil {
			return fmt.Errorf("object '%s' bias: %w", obj.Name, err)
		}
		if _, err := obj.RGBA(); err != nil {
			return fmt.Errorf("object '%s': %w", obj.Name, err)
		}
	}
	return nil
}

// MeshPath returns the mesh path of an object, relative paths being taken from BaseDir.
func (sc *SceneConfig) MeshPath(obj ObjectConfig) string {
	if filepath.IsAbs(obj.Mesh) || sc.BaseDir == "" {
		return filepath.Clean(obj.Mesh)
	}
	return filepath.Join(sc.BaseDir, obj.Mesh)
}

func (cc CameraConfig) Transform() (*math.Transform, error) {
	position, err := resolveVec3("position", cc.Position, math.NewVec3Zero())
	if err != nil {
		return nil, err
	}
	rotation, err := resolveVec3("rotation", cc.Rotation, math.NewVec3Zero())
	if err != nil {
		return nil, err
	}
	return math.NewTransformFrom(position, rotation, math.NewVec3One()), nil
}

func (cc CameraConfig) OrbitRate() (math.Vec3, error) {
	return resolveVec3("orbit", cc.Orbit, math.NewVec3Zero())
}

func (oc ObjectConfig) Transform() (*math.Transform, error) {
	return resolveTransform(oc.Position, oc.Rotation, oc.Scale, math.NewVec3One())
}

// BiasTransform is the per second change of the object. Missing values mean no change.
func (oc ObjectConfig) BiasTransform() (*math.Transform, error) {
	return resolveTransform(oc.Bias.Position, oc.Bias.Rotation, oc.Bias.Scale, math.NewVec3Zero())
}

func (oc ObjectConfig) RGBA() (color.RGBA, error) {
	return parseColour(oc.Colour)
}

func resolveTransform(position, rotation, scale interface{}, defaultScale math.Vec3) (*math.Transform, error) {
	p, err := resolveVec3("position", position, math.NewVec3Zero())
	if err != nil {
		return nil, err
	}
	r, err := resolveVec3("rotation", rotation, math.NewVec3Zero())
	if err != nil {
		return nil, err
	}
	s, err := resolveScale(scale, defaultScale)
	if err != nil {
		return nil, err
	}
	return math.NewTransformFrom(p, r, s), nil
}

// resolveVec3 turns a decoded value into a vector: a number fills every axis and a
// list must have exactly three numbers. Anything else fails with core.ErrTypeMismatch.
func resolveVec3(field string, value interface{}, fallback math.Vec3) (math.Vec3, error) {
	if value == nil {
		return fallback, nil
	}
	values, err := numbers(value)
	if err != nil {
		return math.Vec3{}, fmt.Errorf("%s: %w", field, err)
	}
	operand, err := math.OperandFromValues(values...)
	if err != nil {
		return math.Vec3{}, fmt.Errorf("%s: %w", field, err)
	}
	v, err := math.NewVec3Zero().Apply(math.OpAdd, operand)
	if err != nil {
		return math.Vec3{}, fmt.Errorf("%s: %w", field, err)
	}
	return v, nil
}

// resolveScale multiplies a unit vector by the decoded operand, so that "scale = 2"
// and "scale = [2, 2, 2]" mean the same thing.
func resolveScale(value interface{}, fallback math.Vec3) (math.Vec3, error) {
	if value == nil {
		return fallback, nil
	}
	values, err := numbers(value)
	if err != nil {
		return math.Vec3{}, fmt.Errorf("scale: %w", err)
	}
	operand, err := math.OperandFromValues(values...)
	if err != nil {
		return math.Vec3{}, fmt.Errorf("scale: %w", err)
	}
	v, err := math.NewVec3One().Apply(math.OpMul, operand)
	if err != nil {
		return math.Vec3{}, fmt.Errorf("scale: %w", err)
	}
	return v, nil
}

func number(value interface{}) (float64, bool) {
	switch n := value.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func numbers(value interface{}) ([]float64, error) {
	if n, ok := number(value); ok {
		return []float64{n}, nil
	}
	list, ok := value.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: expected a number or a list of numbers, got %T", core.ErrTypeMismatch, value)
	}
	out := make([]float64, 0, len(list))
	for _, item := range list {
		n, ok := number(item)
		if !ok {
			return nil, fmt.Errorf("%w: expected a number, got %T", core.ErrTypeMismatch, item)
		}
		out = append(out, n)
	}
	return out, nil
}

func parseColour(hex string) (color.RGBA, error) {
	if hex == "" {
		hex = DefaultColour
	}
	digits := strings.TrimPrefix(hex, "#")
	if len(digits) != 6 && len(digits) != 8 {
		return color.RGBA{}, fmt.Errorf("%w: colour %q is not #rrggbb or #rrggbbaa", ErrInvalidScene, hex)
	}
	for _, r := range digits {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return color.RGBA{}, fmt.Errorf("%w: colour %q is not hexadecimal", ErrInvalidScene, hex)
		}
	}
	c := gg.Hex(digits)
	return color.RGBA{R: channel(c.R * c.A), G: channel(c.G * c.A), B: channel(c.B * c.A), A: channel(c.A)}, nil
}

// channel rounds a [0, 1] component to 8 bits.
func channel(v float64) uint8 {
	return uint8(math.Clamp(v*255+0.5, 0, 255))
}

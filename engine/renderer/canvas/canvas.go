package canvas

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"

	"github.com/gogpu/gg"
	"github.com/spaghettifunk/wireframe/engine/core"
	"github.com/spaghettifunk/wireframe/engine/renderer/metadata"
)

// DefaultLineWidth is the stroke width of wireframe edges, in pixels.
const DefaultLineWidth float64 = 1.0

/**
 * @brief A software framebuffer drawn with gg. It is the only renderer backend:
 * wireframes are stroked on the CPU and the finished frame is handed out as an
 * image for the platform to present or save.
 */
type Canvas struct {
	appName   string
	ctx       *gg.Context
	lineWidth float64
	overlay   []string

	// frame is read by the platform, possibly from another goroutine.
	mutex sync.RWMutex
	frame *image.RGBA
}

var loggerOnce sync.Once

func New() *Canvas {
	return &Canvas{lineWidth: DefaultLineWidth}
}

func (c *Canvas) Initialize(appName string, width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: canvas %dx%d", core.ErrInvalidViewport, width, height)
	}
	loggerOnce.Do(func() {
		gg.SetLogger(core.SlogLogger())
	})
	c.appName = appName
	c.ctx = gg.NewContext(width, height)
	c.ctx.ClearWithColor(gg.Black)
	core.LogDebug("canvas for '%s' created with size %dx%d", appName, width, height)
	return nil
}

func (c *Canvas) Shutdown() error {
	if c.ctx == nil {
		return nil
	}
	return c.ctx.Close()
}

func (c *Canvas) Resized(width, height int) error {
	if err := c.ctx.Resize(width, height); err != nil {
		return fmt.Errorf("%w: %s", core.ErrInvalidViewport, err)
	}
	core.LogDebug("canvas resized to %dx%d", width, height)
	return nil
}

func (c *Canvas) BeginFrame(deltaTime float64) error {
	if c.ctx == nil {
		return fmt.Errorf("canvas for '%s' is not initialized", c.appName)
	}
	c.ctx.ClearPath()
	return nil
}

// EndFrame copies the drawing into a new image and puts the overlay on top of it.
func (c *Canvas) EndFrame(deltaTime float64) error {
	frame := c.Snapshot()
	if len(c.overlay) > 0 {
		DrawOverlay(frame, c.overlay)
	}
	c.mutex.Lock()
	c.frame = frame
	c.mutex.Unlock()
	return nil
}

func (c *Canvas) Framebuffer() metadata.Framebuffer {
	return c
}

func (c *Canvas) SetOverlay(lines []string) {
	c.overlay = lines
}

func (c *Canvas) Frame() *image.RGBA {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.frame
}

func (c *Canvas) SetLineWidth(width float64) {
	c.lineWidth = width
}

/**
 * @brief Strokes the segments between consecutive points. Points are moved to the
 * pixel centres so that one pixel wide lines stay crisp. Fewer than two points
 * draw nothing.
 */
func (c *Canvas) DrawPolyline(colour color.RGBA, closed bool, points []metadata.Point) error {
	if len(points) < 2 {
		return nil
	}
	c.ctx.SetColor(colour)
	c.ctx.SetLineWidth(c.lineWidth)
	c.ctx.MoveTo(float64(points[0].X)+0.5, float64(points[0].Y)+0.5)
	for _, p := range points[1:] {
		c.ctx.LineTo(float64(p.X)+0.5, float64(p.Y)+0.5)
	}
	if closed {
		c.ctx.ClosePath()
	}
	return c.ctx.Stroke()
}

func (c *Canvas) Clear(colour color.RGBA) error {
	c.ctx.ClearWithColor(gg.FromColor(colour))
	return nil
}

func (c *Canvas) Size() (int, int) {
	return c.ctx.Width(), c.ctx.Height()
}

// Snapshot returns a copy of the pixels drawn so far.
func (c *Canvas) Snapshot() *image.RGBA {
	img := c.ctx.Image()
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	rgba := image.NewRGBA(img.Bounds())
	draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	return rgba
}

// SavePNG writes the drawing to path.
func (c *Canvas) SavePNG(path string) error {
	return c.ctx.SavePNG(path)
}

//go:build cgo

package platform

import (
	"context"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/spaghettifunk/wireframe/engine/core"
)

// WindowConfig controls the desktop window.
type WindowConfig struct {
	Title  string
	Width  int
	Height int
	// Frames per second. 0 defaults to 60.
	FPS int
}

var keymap = map[ebiten.Key]core.KeyCode{
	ebiten.KeyEscape:     core.KEY_ESCAPE,
	ebiten.KeySpace:      core.KEY_SPACE,
	ebiten.KeyTab:        core.KEY_TAB,
	ebiten.KeyEnter:      core.KEY_ENTER,
	ebiten.KeyArrowLeft:  core.KEY_LEFT,
	ebiten.KeyArrowUp:    core.KEY_UP,
	ebiten.KeyArrowRight: core.KEY_RIGHT,
	ebiten.KeyArrowDown:  core.KEY_DOWN,
	ebiten.KeyA:          core.KEY_A,
	ebiten.KeyD:          core.KEY_D,
	ebiten.KeyP:          core.KEY_P,
	ebiten.KeyQ:          core.KEY_Q,
	ebiten.KeyR:          core.KEY_R,
	ebiten.KeyS:          core.KEY_S,
	ebiten.KeyW:          core.KEY_W,
}

/**
 * @brief A desktop window that shows the frames and forwards the keyboard and
 * resizes to the engine. It blocks in Run until the window closes.
 */
type Window struct {
	config WindowConfig
	input  *core.Input
	events *core.EventSystem
	frames FrameSource
}

func NewWindow(config WindowConfig, input *core.Input, events *core.EventSystem, frames FrameSource) (*Window, error) {
	if config.FPS <= 0 {
		config.FPS = 60
	}
	return &Window{config: config, input: input, events: events, frames: frames}, nil
}

func (w *Window) Run(ctx context.Context, step StepFunc) error {
	g := &windowGame{w: w, ctx: ctx, step: step, width: w.config.Width, height: w.config.Height}

	ebiten.SetWindowTitle(w.config.Title)
	ebiten.SetWindowSize(w.config.Width, w.config.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(w.config.FPS)
	if err := ebiten.RunGame(g); err != nil && err != ebiten.Termination {
		return stopped(err)
	}
	return nil
}

type windowGame struct {
	w    *Window
	ctx  context.Context
	step StepFunc

	width  int
	height int
	fbImg  *ebiten.Image
}

func (g *windowGame) Update() error {
	select {
	case <-g.ctx.Done():
		return ebiten.Termination
	default:
	}

	for key, code := range keymap {
		if inpututil.IsKeyJustPressed(key) {
			g.w.input.ProcessKey(code, true)
		}
		if inpututil.IsKeyJustReleased(key) {
			g.w.input.ProcessKey(code, false)
		}
	}

	if err := g.step(); err != nil {
		if stopped(err) == nil {
			return ebiten.Termination
		}
		return err
	}
	return nil
}

func (g *windowGame) Draw(screen *ebiten.Image) {
	frame := g.w.frames()
	if frame == nil {
		return
	}
	b := frame.Bounds()
	if g.fbImg == nil || g.fbImg.Bounds().Dx() != b.Dx() || g.fbImg.Bounds().Dy() != b.Dy() {
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(b.Dx(), b.Dy())
	}
	g.fbImg.WritePixels(frame.Pix)
	screen.DrawImage(g.fbImg, nil)
}

// Layout follows the window size; a change is posted as a resize event for the next frame.
func (g *windowGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 && (outsideWidth != g.width || outsideHeight != g.height) {
		g.width = outsideWidth
		g.height = outsideHeight
		g.w.events.Post(core.EventContext{
			Type: core.EVENT_CODE_RESIZED,
			Data: &core.SystemEvent{WindowWidth: uint32(outsideWidth), WindowHeight: uint32(outsideHeight)},
		})
	}
	return g.width, g.height
}

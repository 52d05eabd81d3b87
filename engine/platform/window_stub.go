//go:build !cgo

package platform

import (
	"context"
	"errors"

	"github.com/spaghettifunk/wireframe/engine/core"
)

type WindowConfig struct {
	Title  string
	Width  int
	Height int
	FPS    int
}

type Window struct{}

func NewWindow(config WindowConfig, input *core.Input, events *core.EventSystem, frames FrameSource) (*Window, error) {
	return nil, errors.New("window mode requires cgo (build/run with CGO_ENABLED=1), use --headless")
}

func (w *Window) Run(ctx context.Context, step StepFunc) error {
	return errors.New("window mode requires cgo")
}

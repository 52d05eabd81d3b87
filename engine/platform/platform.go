package platform

import (
	"context"
	"errors"
	"image"
)

// ErrQuit is returned by a StepFunc to end the run loop without an error.
var ErrQuit = errors.New("quit requested")

// StepFunc advances and draws one frame.
type StepFunc func() error

// FrameSource returns the last finished frame, or nil if there is none yet.
type FrameSource func() *image.RGBA

/**
 * @brief Drives the frame loop. Run calls step once per frame until the context
 * is cancelled, step returns ErrQuit (a clean stop) or another error.
 */
type Platform interface {
	Run(ctx context.Context, step StepFunc) error
}

func stopped(err error) error {
	if errors.Is(err, ErrQuit) {
		return nil
	}
	return err
}

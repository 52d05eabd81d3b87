package platform

import (
	"context"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/spaghettifunk/wireframe/engine/core"
)

// HeadlessConfig controls the no-window runner.
type HeadlessConfig struct {
	// Frames per second. 0 defaults to 60.
	FPS int
	// Stop after this many frames. 0 runs until the context is done.
	Frames uint64
	// Directory the frames are written to as PNG. Empty writes nothing.
	OutDir string
	// Write every n-th frame. 0 only writes the last one.
	SaveEvery uint64
}

/**
 * @brief Runs the frame loop on a ticker without opening a window, optionally
 * writing frames to disk. Used for tests, CI and machines without a display.
 */
type Headless struct {
	config HeadlessConfig
	frames FrameSource
	saved  []string
}

func NewHeadless(config HeadlessConfig, frames FrameSource) (*Headless, error) {
	if config.FPS < 0 {
		return nil, fmt.Errorf("invalid headless fps: %d", config.FPS)
	}
	if config.FPS == 0 {
		config.FPS = 60
	}
	if config.OutDir != "" && frames == nil {
		return nil, fmt.Errorf("an output directory needs a frame source")
	}
	return &Headless{config: config, frames: frames}, nil
}

func (h *Headless) Run(ctx context.Context, step StepFunc) error {
	d := time.Second / time.Duration(h.config.FPS)
	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return h.finish(tick, ctx.Err())
		case <-t.C:
			if err := step(); err != nil {
				return h.finish(tick, stopped(err))
			}
			tick++
			if h.config.SaveEvery > 0 && tick%h.config.SaveEvery == 0 {
				if err := h.save(tick); err != nil {
					return err
				}
			}
			if h.config.Frames > 0 && tick >= h.config.Frames {
				return h.finish(tick, nil)
			}
		}
	}
}

// finish writes the last frame when only that one is wanted and passes err through.
func (h *Headless) finish(tick uint64, err error) error {
	if h.config.SaveEvery == 0 && tick > 0 {
		if saveErr := h.save(tick); saveErr != nil && err == nil {
			return saveErr
		}
	}
	return err
}

func (h *Headless) save(tick uint64) error {
	if h.config.OutDir == "" {
		return nil
	}
	frame := h.frames()
	if frame == nil {
		return nil
	}
	if err := os.MkdirAll(h.config.OutDir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(h.config.OutDir, fmt.Sprintf("frame_%06d.png", tick))
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	if err := png.Encode(file, frame); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	h.saved = append(h.saved, path)
	core.LogDebug("frame %d written to %s", tick, path)
	return nil
}

// Saved lists the files written so far.
func (h *Headless) Saved() []string {
	return h.saved
}

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spaghettifunk/wireframe/engine"
	"github.com/spaghettifunk/wireframe/engine/core"
	"github.com/spaghettifunk/wireframe/testbed"
)

const defaultScene = "assets/scenes/default.toml"

// runCmd opens the scene in a window, or renders it headless.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Render a scene",
	Long: `Render a scene file. By default a window is opened and the camera can be
moved with W/A/S/D, SPACE and the arrow keys; P pauses, R resets and
Escape quits. With --headless frames are rendered off-screen and can be
written as PNG files with --out.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := applicationConfig()
		if err != nil {
			return err
		}
		return runGame(cmd.Context(), config)
	},
}

func init() {
	flags := runCmd.Flags()
	flags.Int("width", 800, "framebuffer width in pixels")
	flags.Int("height", 600, "framebuffer height in pixels")
	flags.Int("fps", engine.DEFAULT_TARGET_FPS, "target frames per second")
	flags.Duration("duration", 0, "stop after this long (0 runs until quit)")
	flags.Uint64("frames", 0, "stop after this many frames (0 runs until quit)")
	flags.Bool("headless", false, "render without a window")
	flags.String("out", "", "directory headless frames are written to")
	flags.Uint64("save-every", 0, "write every n-th headless frame (0 writes only the last)")
	flags.String("scene", defaultScene, "scene file to render")
	flags.String("assets", "", "assets directory (defaults to the scene directory)")
	flags.Bool("hud", true, "draw frame statistics on top of the wireframes")
	flags.Bool("watch", false, "reload meshes and the scene when they change on disk")
	flags.Int("workers", 0, "workers parsing meshes at start-up (0 uses the CPU count)")

	for _, name := range []string{
		"width", "height", "fps", "duration", "frames", "headless", "out",
		"save-every", "scene", "assets", "hud", "watch", "workers",
	} {
		_ = viper.BindPFlag(name, flags.Lookup(name))
	}
}

func applicationConfig() (*engine.ApplicationConfig, error) {
	level, err := core.ParseLogLevel(viper.GetString("log-level"))
	if err != nil {
		return nil, err
	}

	config := &engine.ApplicationConfig{
		StartWidth:  viper.GetInt("width"),
		StartHeight: viper.GetInt("height"),
		Name:        "Wireframe",
		LogLevel:    level,
		TargetFPS:   viper.GetInt("fps"),
		Duration:    viper.GetDuration("duration"),
		Frames:      viper.GetUint64("frames"),
		Headless:    viper.GetBool("headless"),
		OutDir:      viper.GetString("out"),
		SaveEvery:   viper.GetUint64("save-every"),
		ScenePath:   viper.GetString("scene"),
		AssetDir:    viper.GetString("assets"),
		Watch:       viper.GetBool("watch"),
		ShowOverlay: viper.GetBool("hud"),
		Workers:     viper.GetInt("workers"),
	}

	if config.StartWidth <= 0 || config.StartHeight <= 0 {
		return nil, fmt.Errorf("%w: size %dx%d", core.ErrInvalidViewport, config.StartWidth, config.StartHeight)
	}
	if config.ScenePath == "" {
		return nil, fmt.Errorf("a scene file is required")
	}
	if _, err := os.Stat(config.ScenePath); err != nil {
		return nil, fmt.Errorf("scene %s: %w", config.ScenePath, err)
	}
	if config.OutDir != "" && !config.Headless {
		core.LogWarn("--out is only used with --headless, ignoring %s", config.OutDir)
		config.OutDir = ""
	}
	return config, nil
}

func runGame(parent context.Context, config *engine.ApplicationConfig) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	tb := testbed.NewTestGame(config)

	e, err := engine.New(tb.Game)
	if err != nil {
		return err
	}
	if err := e.Initialize(); err != nil {
		_ = e.Shutdown()
		return err
	}

	runErr := e.Run(ctx)
	if err := e.Shutdown(); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

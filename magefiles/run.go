//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Opens the default scene in a window.
func (Run) Window() error {
	mg.Deps(Build.Binary)
	fmt.Println("Run wireframe...")
	_, err := executeCmd(binary, withArgs("run", "--scene", "assets/scenes/default.toml"), withStream())
	return err
}

// Renders five seconds of the default scene off-screen and keeps every 60th frame in out/.
func (Run) Headless() error {
	mg.Deps(Build.Binary)
	fmt.Println("Run wireframe headless...")
	_, err := executeCmd(binary, withArgs(
		"run", "--headless",
		"--scene", "assets/scenes/default.toml",
		"--duration", "5s",
		"--out", "out",
		"--save-every", "60",
	), withStream())
	return err
}

// Prints a summary of the default scene and its meshes.
func (Run) Inspect() error {
	mg.Deps(Build.Binary)
	_, err := executeCmd(binary, withArgs("inspect", "assets/scenes/default.toml"), withStream())
	return err
}

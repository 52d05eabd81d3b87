//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

const binary = "bin/wireframe"

// Downloads the modules and builds the wireframe binary into bin/.
func (Build) Binary() error {
	if _, err := executeCmd("go", withArgs("mod", "download")); err != nil {
		return err
	}
	if _, err := executeCmd("go", withArgs("build", "-o", binary, "."), withStream()); err != nil {
		return err
	}
	return nil
}

// Builds without cgo, which leaves only the headless platform.
func (Build) Headless() error {
	_, err := executeCmd("go", withArgs("build", "-o", binary+"-headless", "."), withEnv("CGO_ENABLED=0"), withStream())
	return err
}

// Runs vet and the tests of every package.
func Test() error {
	if _, err := executeCmd("go", withArgs("vet", "./..."), withStream()); err != nil {
		return err
	}
	_, err := executeCmd("go", withArgs("test", "-race", "./..."), withStream())
	return err
}

//go:build mage

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Generates the assets and runs the demo in a window.
func (Run) Demo() error {
	mg.Deps(Assets.Generate)
	fmt.Println("Run demo...")
	_, err := executeCmd("go", withArgs("run", "./"+demoDir, "-data", demoDir+"/data"), withStream())
	return err
}

// Plays back a recorded session headless. The file is taken from $REPLAY.
func (Run) Replay() error {
	mg.Deps(Assets.Generate)
	file := os.Getenv("REPLAY")
	if file == "" {
		return errors.New("REPLAY is not set")
	}
	_, err := executeCmd("go", withArgs("run", "./"+demoDir, "-data", demoDir+"/data", "-replay", file), withStream())
	return err
}

type Test mg.Namespace

// Runs the unit tests.
func (Test) Unit() error {
	_, err := executeCmd("go", withArgs("test", "./..."), withStream())
	return err
}

// Runs the unit tests with the race detector.
func (Test) Race() error {
	_, err := executeCmd("go", withArgs("test", "-race", "./..."), withStream())
	return err
}

//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

const demoDir = "cmd/demo"

type Build mg.Namespace

// Compiles every package and the demo binary into bin/.
func (Build) All() error {
	if _, err := executeCmd("go", withArgs("build", "./...")); err != nil {
		return err
	}
	_, err := executeCmd("go", withArgs("build", "-o", "bin/demo", "./"+demoDir), withStream())
	return err
}

// Runs go vet over the module.
func (Build) Vet() error {
	_, err := executeCmd("go", withArgs("vet", "./..."), withStream())
	return err
}

type Assets mg.Namespace

// Writes the demo images and sounds into cmd/demo/data.
func (Assets) Generate() error {
	_, err := executeCmd("go", withArgs("generate", "./..."), withDir(demoDir), withStream())
	return err
}

//go:build mage

// Package main contains Mage build targets for pdf-chunker developer tooling.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// workDirs lists the working directories a batch expects under its root.
var workDirs = []string{
	"input",
	"finished",
	"error",
	"output",
}

const binDir = "bin"

var binaries = map[string]string{
	"pdf-chunker":    "./cmd/pdf-chunker",
	"chunk-function": "./cmd/chunk-function",
}

// Init creates the batch working directories in the current directory.
func Init() error {
	for _, dir := range workDirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Println("  ", dir)
	}
	fmt.Println("Working directories initialized.")
	return nil
}

// Build compiles every binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	for name, pkg := range binaries {
		out := filepath.Join(binDir, name)
		if err := sh.RunV("go", "build", "-o", out, pkg); err != nil {
			return fmt.Errorf("go build %s: %w", pkg, err)
		}
		fmt.Printf("Built %s\n", out)
	}
	return nil
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Run builds and runs a batch over the current directory.
func Run() error {
	mg.Deps(Init, Build)
	return sh.RunV(filepath.Join(binDir, "pdf-chunker"))
}

//go:build mage

// Package main provides build targets for go-cargotoml using Mage.
//
// Usage:
//
//	mage build    Compile the cargotoml binary to bin/
//	mage test     Run all tests
//	mage fuzz     Run each fuzz target for a short while
//	mage lint     Run golangci-lint
//	mage clean    Remove build artifacts
package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binaryName = "cargotoml"
	binaryDir  = "bin"
	cmdDir     = "./cmd/cargotoml"
	fuzzTime   = "30s"
)

var fuzzTargets = []string{"FuzzParseManifest", "FuzzParseLockfile"}

// Build compiles the cargotoml binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV("go", "build", "-v", "-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Test runs all tests with the race detector.
func Test() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// Fuzz runs every fuzz target of the root package for fuzzTime each.
func Fuzz() error {
	mg.Deps(Test)
	for _, target := range fuzzTargets {
		if err := sh.RunV("go", "test", "-run", "^$", "-fuzz", "^"+target+"$", "-fuzztime", fuzzTime, "."); err != nil {
			return err
		}
	}
	return nil
}

// Lint runs golangci-lint.
func Lint() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Clean removes build artifacts.
func Clean() error {
	return os.RemoveAll(binaryDir)
}

// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package dependencies checks the external build tools are installed and recent enough.
package dependencies

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/luxfi/wasm-deploy/pkg/constants"
)

var ErrNoVersion = errors.New("unable to find a version in the tool output")

// Tool is an executable the build shells out to.
type Tool struct {
	Name       string
	MinVersion string
}

// BuildTools are needed by the build stage.
var BuildTools = []Tool{
	{Name: "cargo", MinVersion: constants.MinCargoVersion},
	{Name: "wasm-opt", MinVersion: constants.MinWasmOptVersion},
}

// VersionFunc returns what `name --version` prints.
type VersionFunc func(ctx context.Context, name string) (string, error)

// ExecVersion runs the installed tool.
func ExecVersion(ctx context.Context, name string) (string, error) {
	out, err := exec.CommandContext(ctx, name, "--version").Output() //nolint:gosec // G204: fixed tool names
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", fmt.Errorf("%s is not installed or not in PATH", name)
		}
		return "", fmt.Errorf("could not run %s --version: %w", name, err)
	}
	return string(out), nil
}

// Check fails on the first tool that is missing or older than its minimum.
func Check(ctx context.Context, tools []Tool, version VersionFunc) error {
	for _, tool := range tools {
		out, err := version(ctx, tool.Name)
		if err != nil {
			return err
		}
		v, err := ParseVersion(out)
		if err != nil {
			return fmt.Errorf("%s: %w", tool.Name, err)
		}
		if err := CheckVersionIsOverMin(tool.Name, v, tool.MinVersion); err != nil {
			return err
		}
	}
	return nil
}

// ParseVersion picks the first version-looking word of a --version line, so both
// "cargo 1.79.0 (ffa9cf99a 2024-06-03)" and "wasm-opt version 116 (version_116)" parse.
func ParseVersion(out string) (string, error) {
	for _, field := range strings.Fields(out) {
		field = strings.TrimPrefix(field, "v")
		end := strings.IndexFunc(field, func(r rune) bool {
			return (r < '0' || r > '9') && r != '.'
		})
		if end == 0 {
			continue
		}
		if end > 0 {
			field = field[:end]
		}
		v := "v" + strings.TrimSuffix(field, ".")
		if semver.IsValid(v) {
			return semver.Canonical(v), nil
		}
	}
	return "", ErrNoVersion
}

func CheckVersionIsOverMin(name, version, minVersion string) error {
	if minVersion == "" {
		return nil
	}
	if semver.Compare(version, minVersion) < 0 {
		return fmt.Errorf("minimum supported version of %s is %s, installed version is %s", name, minVersion, version)
	}
	return nil
}

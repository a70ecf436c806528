// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package prompts

import (
	"os"
	"strings"
	"sync/atomic"

	"golang.org/x/term"
)

// Environment variable names for non-interactive mode.
const (
	// EnvNonInteractive forces non-interactive mode.
	// Set to "1", "true", "yes", or "on" to enable.
	EnvNonInteractive = "WASM_DEPLOY_NON_INTERACTIVE"

	// EnvCI is a common CI environment variable.
	// When truthy, implies non-interactive.
	EnvCI = "CI"
)

// forced is set by --non-interactive and the non-interactive config key.
var forced atomic.Bool

// SetNonInteractive forces non-interactive mode regardless of the terminal.
func SetNonInteractive(v bool) {
	forced.Store(v)
}

// isTruthyEnv checks if an environment variable is set to a truthy value.
// Accepts: 1, true, t, yes, y, on (case-insensitive)
func isTruthyEnv(key string) bool {
	v, ok := os.LookupEnv(key)
	if !ok {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "t", "yes", "y", "on":
		return true
	default:
		return false
	}
}

// stdinIsTTY is a variable so tests can pretend to run on a terminal.
var stdinIsTTY = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// IsInteractive returns true if prompting is allowed.
//
// Interactive mode is enabled when ALL of:
//   - non-interactive mode was not forced
//   - stdin is a TTY (not piped/redirected)
//   - WASM_DEPLOY_NON_INTERACTIVE is not truthy
//   - CI is not truthy
func IsInteractive() bool {
	if forced.Load() {
		return false
	}
	if isTruthyEnv(EnvNonInteractive) {
		return false
	}
	if isTruthyEnv(EnvCI) {
		return false
	}
	return stdinIsTTY()
}

// IsNonInteractive is the inverse of IsInteractive.
func IsNonInteractive() bool {
	return !IsInteractive()
}

// NewPrompterForMode returns the appropriate prompter based on mode.
//
// If non-interactive, returns NonInteractivePrompter that fails fast.
// If interactive (TTY), returns the standard realPrompter that can prompt.
func NewPrompterForMode() Prompter {
	if IsNonInteractive() {
		return NewNonInteractivePrompter()
	}
	return NewPrompter()
}

// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package prompts

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNonInteractive is returned when a prompt is attempted in non-interactive mode.
// Commands should catch this error and provide actionable guidance.
var ErrNonInteractive = errors.New("cannot prompt in non-interactive mode")

// NonInteractivePrompter implements Prompter but fails fast on any prompt attempt.
// Use this in CI/script environments to detect missing flags early.
type NonInteractivePrompter struct {
	// FailMessage provides context about what flag/env var to set.
	// If empty, a default message is used.
	FailMessage string
}

// NewNonInteractivePrompter creates a prompter that fails fast on any interaction.
func NewNonInteractivePrompter() *NonInteractivePrompter {
	return &NonInteractivePrompter{}
}

func (p *NonInteractivePrompter) fail(operation string) error {
	msg := p.FailMessage
	if msg == "" {
		msg = "use flags to provide required values, or unset " + EnvNonInteractive
	}
	return fmt.Errorf("%w: %s - %s", ErrNonInteractive, operation, msg)
}

func (p *NonInteractivePrompter) CaptureYesNo(promptStr string) (bool, error) {
	return false, p.fail(promptStr)
}

func (p *NonInteractivePrompter) CaptureNoYes(promptStr string) (bool, error) {
	return false, p.fail(promptStr)
}

func (p *NonInteractivePrompter) CaptureList(promptStr string, _ []string) (string, error) {
	return "", p.fail(promptStr)
}

func (p *NonInteractivePrompter) CaptureListWithDefault(promptStr string, _ []string, _ string) (string, error) {
	return "", p.fail(promptStr)
}

func (p *NonInteractivePrompter) CaptureMultiSelect(promptStr string, _ []string) ([]string, error) {
	return nil, p.fail(promptStr)
}

func (p *NonInteractivePrompter) CaptureString(promptStr string) (string, error) {
	return "", p.fail(promptStr)
}

func (p *NonInteractivePrompter) CaptureStringAllowEmpty(promptStr string) (string, error) {
	return "", p.fail(promptStr)
}

func (p *NonInteractivePrompter) CaptureValidatedString(promptStr string, _ func(string) error) (string, error) {
	return "", p.fail(promptStr)
}

func (p *NonInteractivePrompter) CaptureURL(promptStr string) (string, error) {
	return "", p.fail(promptStr)
}

func (p *NonInteractivePrompter) CaptureUint64(promptStr string) (uint64, error) {
	return 0, p.fail(promptStr)
}

func (p *NonInteractivePrompter) CaptureFloat(promptStr string, _ func(float64) error) (float64, error) {
	return 0, p.fail(promptStr)
}

func (p *NonInteractivePrompter) CaptureJSON(promptStr string) (json.RawMessage, error) {
	return nil, p.fail(promptStr)
}

// Verify NonInteractivePrompter implements Prompter at compile time.
var _ Prompter = (*NonInteractivePrompter)(nil)

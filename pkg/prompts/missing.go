// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package prompts

import (
	"errors"
	"fmt"
	"strings"
)

// MissingOpt is a flag a command needs but did not get.
type MissingOpt struct {
	Flag    string // "--chain-id"
	Prompt  string // label used when asking for it, "Chain id"
	Note    string // alternative that also satisfies it, "or --grpc"
	Default string // filled in by RequireWithDefault
}

// MissingError lists every missing flag at once, so a script fails with the whole
// list instead of one flag per run:
//
//	missing required options:
//	  --chain-id
//	  --rpc - or --grpc
//
//	run 'wasm-deploy chain add --help' to see all options
func MissingError(cmd string, missing []MissingOpt) error {
	if len(missing) == 0 {
		return nil
	}
	var b strings.Builder
	b.WriteString("missing required options:\n")
	for _, m := range missing {
		fmt.Fprintf(&b, "  %s", m.Flag)
		if m.Note != "" {
			fmt.Fprintf(&b, " - %s", m.Note)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "\nrun '%s --help' to see all options", cmd)
	return errors.New(b.String())
}

// Validator collects the flags of one command that are still empty. Resolve then
// either prompts for them or fails with MissingError when prompting is off.
type Validator struct {
	cmd     string
	missing []MissingOpt
	values  []*string
}

func NewValidator(cmd string) *Validator {
	return &Validator{cmd: cmd}
}

// Require records target as missing when it is empty.
func (v *Validator) Require(target *string, opt MissingOpt) *Validator {
	if *target == "" {
		v.missing = append(v.missing, opt)
		v.values = append(v.values, target)
	}
	return v
}

// RequireWithDefault fills an empty target with defaultVal when prompting is off.
// On a terminal it is asked for with opt.Default set, so the prompt can show it.
func (v *Validator) RequireWithDefault(target *string, opt MissingOpt, defaultVal string) *Validator {
	if *target != "" {
		return v
	}
	if !IsInteractive() {
		*target = defaultVal
		return v
	}
	opt.Default = defaultVal
	return v.Require(target, opt)
}

func (v *Validator) HasMissing() bool {
	return len(v.missing) > 0
}

// Resolve asks promptFn for every missing value, in the order they were required.
func (v *Validator) Resolve(promptFn func(MissingOpt) (string, error)) error {
	if !v.HasMissing() {
		return nil
	}
	if !IsInteractive() {
		return MissingError(v.cmd, v.missing)
	}
	for i, m := range v.missing {
		val, err := promptFn(m)
		if err != nil {
			return fmt.Errorf("failed to get %s: %w", m.Flag, err)
		}
		*v.values[i] = val
	}
	return nil
}

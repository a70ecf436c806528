// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package contract describes the contracts of a workspace and assembles the JSON
// messages sent to them.
package contract

import (
	"path/filepath"
	"strings"

	"github.com/luxfi/wasm-deploy/pkg/constants"
	"github.com/luxfi/wasm-deploy/pkg/prompts"
)

// Msg is any value that encodes to a JSON object. A nil Msg means "no message".
type Msg = any

// Contract is a deployable contract of the workspace.
type Contract interface {
	// Name is the registry name and the instantiate label.
	Name() string
	// PackageID is the cargo package built for this contract.
	PackageID() string
	// BinName is the artifact base name, artifacts/<BinName>.wasm.gz.
	BinName() string
	// Path is the contract crate relative to the workspace root.
	Path() string
	// Admin is the admin address set at instantiation.
	Admin() string

	InstantiateMsg() Msg
	MigrateMsg() Msg
	SetConfigMsg() Msg
	SetUpMsgs() []Msg
	ExternalInstantiateMsgs() []ExternalInstantiate
}

// Interactive builds messages from user input instead of preprogrammed values.
type Interactive interface {
	InstantiateInteractive(prompts.Prompter) (Msg, error)
	MigrateInteractive(prompts.Prompter) (Msg, error)
	ExecuteInteractive(prompts.Prompter) (Msg, error)
	QueryInteractive(prompts.Prompter) (Msg, error)
	Cw20SendInteractive(prompts.Prompter) (Msg, error)
}

// ExternalInstantiate instantiates an already stored code id next to the owning
// contract. The resulting address is registered under Name.
type ExternalInstantiate struct {
	Msg    Msg    `yaml:"msg" json:"msg"`
	CodeID uint64 `yaml:"code_id" json:"code_id"`
	Name   string `yaml:"name" json:"name"`
}

// Base gives a Contract every optional message as absent and every interactive
// constructor as not implemented. Embed it and override what the contract needs.
type Base struct {
	ContractName string `yaml:"name"`
	Package      string `yaml:"package,omitempty"`
	Bin          string `yaml:"bin_name,omitempty"`
	Dir          string `yaml:"path,omitempty"`
	AdminAddr    string `yaml:"admin"`
}

var (
	_ Contract    = Base{}
	_ Interactive = Base{}
)

func (b Base) Name() string {
	return b.ContractName
}

func (b Base) PackageID() string {
	if b.Package != "" {
		return b.Package
	}
	return b.ContractName
}

// BinName defaults to the package id in snake case, which is what cargo emits.
func (b Base) BinName() string {
	if b.Bin != "" {
		return b.Bin
	}
	return SnakeCase(b.PackageID())
}

func (b Base) Path() string {
	if b.Dir != "" {
		return b.Dir
	}
	return filepath.Join(constants.DefaultContractSubdir, b.ContractName)
}

func (b Base) Admin() string {
	return b.AdminAddr
}

func (Base) InstantiateMsg() Msg                           { return nil }
func (Base) MigrateMsg() Msg                               { return nil }
func (Base) SetConfigMsg() Msg                             { return nil }
func (Base) SetUpMsgs() []Msg                              { return nil }
func (Base) ExternalInstantiateMsgs() []ExternalInstantiate { return nil }

func (Base) InstantiateInteractive(prompts.Prompter) (Msg, error) {
	return nil, constants.ErrNotImplemented
}

func (Base) MigrateInteractive(prompts.Prompter) (Msg, error) {
	return nil, constants.ErrNotImplemented
}

func (Base) ExecuteInteractive(prompts.Prompter) (Msg, error) {
	return nil, constants.ErrNotImplemented
}

func (Base) QueryInteractive(prompts.Prompter) (Msg, error) {
	return nil, constants.ErrNotImplemented
}

func (Base) Cw20SendInteractive(prompts.Prompter) (Msg, error) {
	return nil, constants.ErrNotImplemented
}

// Names returns the contract names in order.
func Names(contracts []Contract) []string {
	names := make([]string, 0, len(contracts))
	for _, c := range contracts {
		names = append(names, c.Name())
	}
	return names
}

// Select returns the contracts whose names are listed, in the listed order. An empty
// list selects everything.
func Select(contracts []Contract, names []string) ([]Contract, error) {
	if len(names) == 0 {
		return contracts, nil
	}
	byName := make(map[string]Contract, len(contracts))
	for _, c := range contracts {
		byName[c.Name()] = c
	}
	selected := make([]Contract, 0, len(names))
	for _, name := range names {
		c, ok := byName[name]
		if !ok {
			return nil, &constants.ContractNotFoundError{Name: name}
		}
		selected = append(selected, c)
	}
	return selected, nil
}

// SnakeCase converts a cargo package id such as "cw20-base" or "MyToken" to the
// file name cargo gives its library, "cw20_base" and "my_token".
func SnakeCase(s string) string {
	var b strings.Builder
	prevLower := false
	for _, r := range s {
		switch {
		case r == '-' || r == ' ' || r == '.':
			b.WriteByte('_')
			prevLower = false
		case r >= 'A' && r <= 'Z':
			if prevLower {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
			prevLower = false
		default:
			b.WriteRune(r)
			prevLower = (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		}
	}
	return b.String()
}

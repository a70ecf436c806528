// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package models

import (
	"github.com/luxfi/wasm-deploy/pkg/constants"
)

// ContractInfo is one registry entry. An empty Addr or a zero CodeID means the
// contract was never instantiated or stored; chains never assign code id 0.
type ContractInfo struct {
	Name   string `json:"name"`
	Addr   string `json:"addr,omitempty"`
	CodeID uint64 `json:"code_id,omitempty"`
}

func (c ContractInfo) String() string {
	return c.Name
}

func (c ContractInfo) HasAddr() bool {
	return c.Addr != ""
}

func (c ContractInfo) HasCodeID() bool {
	return c.CodeID != 0
}

// Contract returns the entry for name in the active env.
func (c *Config) Contract(name string) (ContractInfo, error) {
	env, err := c.ActiveEnv()
	if err != nil {
		return ContractInfo{}, err
	}
	for _, ci := range env.Contracts {
		if ci.Name == name {
			return ci, nil
		}
	}
	return ContractInfo{}, &constants.ContractNotFoundError{Name: name}
}

func (c *Config) ContractAddr(name string) (string, error) {
	ci, err := c.Contract(name)
	if err != nil {
		return "", err
	}
	if !ci.HasAddr() {
		return "", &constants.AddrNotFoundError{Name: name}
	}
	return ci.Addr, nil
}

func (c *Config) ContractCodeID(name string) (uint64, error) {
	ci, err := c.Contract(name)
	if err != nil {
		return 0, err
	}
	if !ci.HasCodeID() {
		return 0, &constants.CodeIDNotFoundError{Name: name}
	}
	return ci.CodeID, nil
}

// Contracts returns a copy of the active env's registry.
func (c *Config) Contracts() ([]ContractInfo, error) {
	env, err := c.ActiveEnv()
	if err != nil {
		return nil, err
	}
	out := make([]ContractInfo, len(env.Contracts))
	copy(out, env.Contracts)
	return out, nil
}

// UpsertContract replaces the entry with the same name or appends it. The whole entry
// is replaced; callers read-modify-write when changing a single field.
func (c *Config) UpsertContract(entry ContractInfo) error {
	env, err := c.ActiveEnv()
	if err != nil {
		return err
	}
	for i := range env.Contracts {
		if env.Contracts[i].Name == entry.Name {
			env.Contracts[i] = entry
			return nil
		}
	}
	env.Contracts = append(env.Contracts, entry)
	return nil
}

// AddContract registers a new entry and fails if the name is taken.
func (c *Config) AddContract(entry ContractInfo) error {
	if _, err := c.Contract(entry.Name); err == nil {
		return constants.ErrContractAlreadyExists
	}
	return c.UpsertContract(entry)
}

func (c *Config) DeleteContract(name string) error {
	env, err := c.ActiveEnv()
	if err != nil {
		return err
	}
	contracts := env.Contracts[:0]
	removed := false
	for _, ci := range env.Contracts {
		if ci.Name == name {
			removed = true
			continue
		}
		contracts = append(contracts, ci)
	}
	env.Contracts = contracts
	if !removed {
		return &constants.ContractNotFoundError{Name: name}
	}
	return nil
}

// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package models contains the persisted workspace state: chains, keys, environments and
// the per-environment contract registry.
package models

import (
	"github.com/luxfi/wasm-deploy/pkg/constants"
)

// Config is the workspace state file, .wasm-deploy/config.json.
type Config struct {
	Version            string       `json:"version,omitempty"`
	Settings           UserSettings `json:"settings"`
	ShellCompletionDir string       `json:"shell_completion_dir,omitempty"`
	Chains             Chains       `json:"chains"`
	Envs               []Env        `json:"envs"`
	Keys               []UserKey    `json:"keys"`
}

type UserSettings struct {
	StoreCodeChunkSize int `json:"store_code_chunk_size"`
}

func NewConfig() *Config {
	return &Config{
		Version:  constants.ConfigVersion,
		Settings: UserSettings{StoreCodeChunkSize: constants.DefaultStoreCodeChunkSize},
		Chains:   Chains{},
		Envs:     []Env{},
		Keys:     []UserKey{},
	}
}

// ChunkSize never returns less than one so a zeroed settings block still deploys.
func (s UserSettings) ChunkSize() int {
	if s.StoreCodeChunkSize <= 0 {
		return constants.DefaultStoreCodeChunkSize
	}
	return s.StoreCodeChunkSize
}

func (c *Config) ActiveEnv() (*Env, error) {
	for i := range c.Envs {
		if c.Envs[i].IsActive {
			return &c.Envs[i], nil
		}
	}
	return nil, constants.ErrEnvNotFound
}

func (c *Config) ActiveChainInfo() (ChainInfo, error) {
	env, err := c.ActiveEnv()
	if err != nil {
		return ChainInfo{}, err
	}
	info, ok := c.Chains[env.ChainLabel]
	if !ok {
		return ChainInfo{}, constants.ErrChainConfigNotFound
	}
	return info, nil
}

func (c *Config) ActiveKey() (UserKey, error) {
	env, err := c.ActiveEnv()
	if err != nil {
		return UserKey{}, err
	}
	return c.Key(env.KeyName)
}

func (c *Config) Key(name string) (UserKey, error) {
	for _, k := range c.Keys {
		if k.Name == name {
			return k, nil
		}
	}
	return UserKey{}, &constants.KeyNotFoundError{KeyName: name}
}

func (c *Config) AddChain(label string, info ChainInfo) error {
	if c.Chains == nil {
		c.Chains = Chains{}
	}
	if _, ok := c.Chains[label]; ok {
		return constants.ErrChainAlreadyExists
	}
	c.Chains[label] = info
	return nil
}

// ReplaceChain overwrites an existing chain entry, the only way to mutate one.
func (c *Config) ReplaceChain(label string, info ChainInfo) error {
	if _, ok := c.Chains[label]; !ok {
		return constants.ErrChainConfigNotFound
	}
	c.Chains[label] = info
	return nil
}

func (c *Config) DeleteChain(label string) {
	delete(c.Chains, label)
}

func (c *Config) AddKey(key UserKey) error {
	if _, err := c.Key(key.Name); err == nil {
		return constants.ErrKeyAlreadyExists
	}
	c.Keys = append(c.Keys, key)
	return nil
}

func (c *Config) DeleteKey(name string) {
	keys := c.Keys[:0]
	for _, k := range c.Keys {
		if k.Name != name {
			keys = append(keys, k)
		}
	}
	c.Keys = keys
}

// AddEnv appends env and makes it the active one.
func (c *Config) AddEnv(env Env) error {
	for _, e := range c.Envs {
		if e.EnvID == env.EnvID {
			return constants.ErrEnvAlreadyExists
		}
	}
	if env.Contracts == nil {
		env.Contracts = []ContractInfo{}
	}
	c.Envs = append(c.Envs, env)
	return c.ActivateEnv(env.EnvID)
}

// ActivateEnv sets is_active on exactly one env.
func (c *Config) ActivateEnv(envID string) error {
	found := false
	for _, e := range c.Envs {
		if e.EnvID == envID {
			found = true
			break
		}
	}
	if !found {
		return constants.ErrEnvNotFound
	}
	for i := range c.Envs {
		c.Envs[i].IsActive = c.Envs[i].EnvID == envID
	}
	return nil
}

// DeleteEnv removes the env. If it was active, no env is active until the caller
// activates another one.
func (c *Config) DeleteEnv(envID string) {
	envs := c.Envs[:0]
	for _, e := range c.Envs {
		if e.EnvID != envID {
			envs = append(envs, e)
		}
	}
	c.Envs = envs
}

func (c *Config) EnvIDs() []string {
	ids := make([]string, 0, len(c.Envs))
	for _, e := range c.Envs {
		ids = append(ids, e.EnvID)
	}
	return ids
}

func (c *Config) KeyNames() []string {
	names := make([]string, 0, len(c.Keys))
	for _, k := range c.Keys {
		names = append(names, k.Name)
	}
	return names
}

// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package models

import "encoding/json"

// Env is a named deployment scope bound to one chain and one key. Each env keeps its
// own contract registry.
type Env struct {
	EnvID      string         `json:"env_id"`
	ChainLabel string         `json:"chain_label"`
	KeyName    string         `json:"key_name"`
	IsActive   bool           `json:"is_active"`
	Contracts  []ContractInfo `json:"contracts"`
}

// UnmarshalJSON also reads the chain label from "chain_id", the key used before chains
// got labels.
func (e *Env) UnmarshalJSON(data []byte) error {
	type plain Env
	var wire struct {
		plain
		ChainID string `json:"chain_id"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	*e = Env(wire.plain)
	if e.ChainLabel == "" {
		e.ChainLabel = wire.ChainID
	}
	if e.Contracts == nil {
		e.Contracts = []ContractInfo{}
	}
	return nil
}

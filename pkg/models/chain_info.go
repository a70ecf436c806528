// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// ChainInfo describes how to reach and pay for transactions on one chain.
type ChainInfo struct {
	ChainID        string  `json:"chain_id"`
	Denom          string  `json:"denom"`
	Prefix         string  `json:"prefix"`
	DerivationPath string  `json:"derivation_path"`
	GasPrice       float64 `json:"gas_price"`
	GasAdjustment  float64 `json:"gas_adjustment"`
	RPCEndpoint    string  `json:"rpc_endpoint,omitempty"`
	GRPCEndpoint   string  `json:"grpc_endpoint,omitempty"`
}

// chainConfig is the nested "cfg" block written by older releases.
type chainConfig struct {
	ChainID        string  `json:"chain_id"`
	Denom          string  `json:"denom"`
	Prefix         string  `json:"prefix"`
	DerivationPath string  `json:"derivation_path"`
	GasPrice       float64 `json:"gas_price"`
	GasAdjustment  float64 `json:"gas_adjustment"`
}

// UnmarshalJSON accepts both the flat layout and the older {"cfg": {...}, "rpc_endpoint": ...} one.
func (c *ChainInfo) UnmarshalJSON(data []byte) error {
	type flat ChainInfo
	var wire struct {
		flat
		Cfg *chainConfig `json:"cfg"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	*c = ChainInfo(wire.flat)
	if wire.Cfg != nil {
		c.ChainID = wire.Cfg.ChainID
		c.Denom = wire.Cfg.Denom
		c.Prefix = wire.Cfg.Prefix
		c.DerivationPath = wire.Cfg.DerivationPath
		c.GasPrice = wire.Cfg.GasPrice
		c.GasAdjustment = wire.Cfg.GasAdjustment
	}
	return nil
}

// Chains maps a user-chosen label to its ChainInfo.
type Chains map[string]ChainInfo

// UnmarshalJSON decodes the current map layout, or the legacy list layout where each
// chain was keyed by its chain id.
func (c *Chains) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*c = Chains{}
		return nil
	}
	switch trimmed[0] {
	case '[':
		var legacy []ChainInfo
		if err := json.Unmarshal(trimmed, &legacy); err != nil {
			return fmt.Errorf("failed decoding legacy chain list: %w", err)
		}
		out := make(Chains, len(legacy))
		for _, info := range legacy {
			out[info.ChainID] = info
		}
		*c = out
	case '{':
		var current map[string]ChainInfo
		if err := json.Unmarshal(trimmed, &current); err != nil {
			return err
		}
		*c = current
	default:
		return fmt.Errorf("unexpected chains layout: %s", string(trimmed[:1]))
	}
	return nil
}

// Labels returns the chain labels sorted.
func (c Chains) Labels() []string {
	labels := make([]string, 0, len(c))
	for label := range c {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

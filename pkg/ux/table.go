// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ux

import (
	"io"
	"strconv"

	"github.com/luxfi/wasm-deploy/pkg/models"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// DefaultTable creates a left aligned table with the given headers
func DefaultTable(w io.Writer, headers []string) *tablewriter.Table {
	table := tablewriter.NewTable(w)
	table.Configure(func(config *tablewriter.Config) {
		config.Row.Alignment.Global = tw.AlignLeft
	})
	anyHeaders := make([]any, len(headers))
	for i, h := range headers {
		anyHeaders[i] = h
	}
	table.Header(anyHeaders...)
	return table
}

// PrintEnvs lists every env, marking the active one.
func PrintEnvs(w io.Writer, envs []models.Env) error {
	table := DefaultTable(w, []string{"Env", "Chain", "Key", "Active", "Contracts"})
	for _, e := range envs {
		active := ""
		if e.IsActive {
			active = "*"
		}
		if err := table.Append([]string{e.EnvID, e.ChainLabel, e.KeyName, active, strconv.Itoa(len(e.Contracts))}); err != nil {
			return err
		}
	}
	return table.Render()
}

func PrintChains(w io.Writer, chains models.Chains) error {
	table := DefaultTable(w, []string{"Label", "Chain ID", "Denom", "Prefix", "Gas Price", "RPC", "gRPC"})
	for _, label := range chains.Labels() {
		c := chains[label]
		row := []string{
			label,
			c.ChainID,
			c.Denom,
			c.Prefix,
			strconv.FormatFloat(c.GasPrice, 'f', -1, 64),
			c.RPCEndpoint,
			c.GRPCEndpoint,
		}
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}

func PrintContracts(w io.Writer, contracts []models.ContractInfo) error {
	table := DefaultTable(w, []string{"Contract", "Code ID", "Address"})
	for _, c := range contracts {
		codeID := ""
		if c.HasCodeID() {
			codeID = strconv.FormatUint(c.CodeID, 10)
		}
		if err := table.Append([]string{c.Name, codeID, c.Addr}); err != nil {
			return err
		}
	}
	return table.Render()
}

// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package prompts

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNonInteractivePrompter_CustomMessage(t *testing.T) {
	p := &NonInteractivePrompter{FailMessage: "use --rpc flag"}

	_, err := p.CaptureString("RPC endpoint")
	require.Error(t, err)
	require.Contains(t, err.Error(), "use --rpc flag")
	require.Contains(t, err.Error(), "RPC endpoint")
}

func TestNonInteractivePrompter_AllMethods(t *testing.T) {
	p := NewNonInteractivePrompter()

	tests := []struct {
		name string
		fn   func() error
	}{
		{"CaptureYesNo", func() error { _, err := p.CaptureYesNo(""); return err }},
		{"CaptureNoYes", func() error { _, err := p.CaptureNoYes(""); return err }},
		{"CaptureList", func() error { _, err := p.CaptureList("", nil); return err }},
		{"CaptureListWithDefault", func() error { _, err := p.CaptureListWithDefault("", nil, ""); return err }},
		{"CaptureMultiSelect", func() error { _, err := p.CaptureMultiSelect("", nil); return err }},
		{"CaptureString", func() error { _, err := p.CaptureString(""); return err }},
		{"CaptureStringAllowEmpty", func() error { _, err := p.CaptureStringAllowEmpty(""); return err }},
		{"CaptureValidatedString", func() error { _, err := p.CaptureValidatedString("", nil); return err }},
		{"CaptureURL", func() error { _, err := p.CaptureURL(""); return err }},
		{"CaptureUint64", func() error { _, err := p.CaptureUint64(""); return err }},
		{"CaptureFloat", func() error { _, err := p.CaptureFloat("", nil); return err }},
		{"CaptureJSON", func() error { _, err := p.CaptureJSON(""); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.fn()
			require.True(t, errors.Is(err, ErrNonInteractive))
		})
	}
}

func TestValidatorResolve(t *testing.T) {
	require := require.New(t)
	SetNonInteractive(true)
	defer SetNonInteractive(false)

	var rpc, grpc string
	grpc = "http://localhost:9090"
	v := NewValidator("wasm-deploy chain add").
		Require(&rpc, MissingOpt{Flag: "--rpc", Prompt: "RPC endpoint"}).
		Require(&grpc, MissingOpt{Flag: "--grpc", Prompt: "gRPC endpoint"})
	require.True(v.HasMissing())

	err := v.Resolve(func(MissingOpt) (string, error) { return "unused", nil })
	require.Error(err)
	require.Contains(err.Error(), "--rpc")
	require.NotContains(err.Error(), "--grpc")
}

func TestRequireWithDefault(t *testing.T) {
	require := require.New(t)
	SetNonInteractive(true)
	defer SetNonInteractive(false)

	var adjustment, given string
	given = "2"
	v := NewValidator("wasm-deploy chain add").
		RequireWithDefault(&adjustment, MissingOpt{Flag: "--gas-adjustment"}, "1.3").
		RequireWithDefault(&given, MissingOpt{Flag: "--gas-price"}, "0")
	require.False(v.HasMissing())
	require.Equal("1.3", adjustment)
	require.Equal("2", given)
}

func TestMissingErrorListsNotes(t *testing.T) {
	require := require.New(t)
	err := MissingError("wasm-deploy chain add", []MissingOpt{
		{Flag: "--chain-id"},
		{Flag: "--rpc", Note: "or --grpc"},
	})
	require.EqualError(err, "missing required options:\n  --chain-id\n  --rpc - or --grpc\n\nrun 'wasm-deploy chain add --help' to see all options")
	require.NoError(MissingError("wasm-deploy chain add", nil))
}

// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package chain submits CosmWasm transactions and queries to a Cosmos SDK chain.
package chain

import (
	"context"
	"encoding/json"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// CommitResult describes a transaction included in a block.
type CommitResult struct {
	GasWanted int64
	GasUsed   int64
	TxHash    string
	Height    int64
}

type StoreCodeResponse struct {
	// CodeIDs[i] belongs to the i-th submitted blob.
	CodeIDs []uint64
	Tx      CommitResult
}

type InstantiateRequest struct {
	CodeID uint64
	Msg    json.RawMessage
	Label  string
	Admin  string
	Funds  sdk.Coins
}

type InstantiateResponse struct {
	// Addresses[i] belongs to the i-th submitted request.
	Addresses []string
	Tx        CommitResult
}

type ExecRequest struct {
	Address string
	Msg     json.RawMessage
	Funds   sdk.Coins
}

type MigrateRequest struct {
	Address   string
	NewCodeID uint64
	Msg       json.RawMessage
}

// Client is what deployments need from a chain. Every batch call signs and submits
// its requests as one transaction and waits for it to be committed, so a batch either
// lands completely or not at all.
type Client interface {
	StoreCodeBatch(ctx context.Context, wasm [][]byte) (*StoreCodeResponse, error)
	InstantiateBatch(ctx context.Context, reqs []InstantiateRequest) (*InstantiateResponse, error)
	ExecuteBatch(ctx context.Context, reqs []ExecRequest) (*CommitResult, error)
	MigrateBatch(ctx context.Context, reqs []MigrateRequest) (*CommitResult, error)
	Send(ctx context.Context, to string, amount sdk.Coins) (*CommitResult, error)
	Query(ctx context.Context, address string, msg json.RawMessage) (json.RawMessage, error)
	// Address is the bech32 address of the signing account.
	Address() string
}

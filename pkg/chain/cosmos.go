// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	wasmtypes "github.com/CosmWasm/wasmd/x/wasm/types"
	rpchttp "github.com/cometbft/cometbft/rpc/client/http"
	coretypes "github.com/cometbft/cometbft/rpc/core/types"
	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/tx"
	sdk "github.com/cosmos/cosmos-sdk/types"
	signingtypes "github.com/cosmos/cosmos-sdk/types/tx/signing"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/luxfi/wasm-deploy/pkg/constants"
	"github.com/luxfi/wasm-deploy/pkg/key"
	"github.com/luxfi/wasm-deploy/pkg/models"
)

var errEmptyBatch = errors.New("refusing to submit an empty batch")

// CosmosClient talks to a chain over its Tendermint RPC and/or gRPC endpoint.
// Transactions need RPC since they are broadcast with block commit; queries use gRPC
// when configured and fall back to ABCI queries over RPC.
type CosmosClient struct {
	info      models.ChainInfo
	enc       EncodingConfig
	signer    *key.Signer
	address   string
	memo      string
	clientCtx client.Context
	rpc       *rpchttp.HTTP
	grpcConn  *grpc.ClientConn
	log       *zap.Logger
}

var _ Client = (*CosmosClient)(nil)

// Dial builds the encoding config and signer for info and connects to it.
func Dial(info models.ChainInfo, userKey models.UserKey, log *zap.Logger) (*CosmosClient, error) {
	enc, err := MakeEncodingConfig(info.Prefix)
	if err != nil {
		return nil, err
	}
	signer, err := key.Load(userKey, info, enc.Codec)
	if err != nil {
		return nil, err
	}
	return NewCosmosClient(info, signer, enc, log)
}

func NewCosmosClient(info models.ChainInfo, signer *key.Signer, enc EncodingConfig, log *zap.Logger) (*CosmosClient, error) {
	if info.RPCEndpoint == "" && info.GRPCEndpoint == "" {
		return nil, constants.ErrMissingClient
	}
	if log == nil {
		log = zap.NewNop()
	}
	// sdk.AccAddress.String reads the process wide prefix
	sdk.GetConfig().SetBech32PrefixForAccount(info.Prefix, info.Prefix+sdk.PrefixPublic)

	address, err := signer.Address(info.Prefix)
	if err != nil {
		return nil, err
	}
	bz, err := sdk.GetFromBech32(address, info.Prefix)
	if err != nil {
		return nil, err
	}
	fromAddr := sdk.AccAddress(bz)

	c := &CosmosClient{
		info:    info,
		enc:     enc,
		signer:  signer,
		address: address,
		memo:    constants.DefaultMemo,
		log:     log.With(zap.String("chain", info.ChainID)),
	}
	c.clientCtx = client.Context{}.
		WithCodec(enc.Codec).
		WithInterfaceRegistry(enc.InterfaceRegistry).
		WithTxConfig(enc.TxConfig).
		WithChainID(info.ChainID).
		WithKeyring(signer.Keyring).
		WithFromName(signer.UID).
		WithFromAddress(fromAddr)

	if info.RPCEndpoint != "" {
		rpc, err := rpchttp.New(info.RPCEndpoint, "/websocket")
		if err != nil {
			return nil, fmt.Errorf("invalid rpc endpoint %s: %w", info.RPCEndpoint, err)
		}
		c.rpc = rpc
		c.clientCtx = c.clientCtx.WithClient(rpc).WithNodeURI(info.RPCEndpoint)
	}
	if info.GRPCEndpoint != "" {
		conn, err := dialGRPC(info.GRPCEndpoint)
		if err != nil {
			return nil, fmt.Errorf("invalid grpc endpoint %s: %w", info.GRPCEndpoint, err)
		}
		c.grpcConn = conn
		c.clientCtx = c.clientCtx.WithGRPCClient(conn)
	}
	return c, nil
}

func dialGRPC(endpoint string) (*grpc.ClientConn, error) {
	target := endpoint
	creds := insecure.NewCredentials()
	if strings.Contains(endpoint, "://") {
		u, err := url.Parse(endpoint)
		if err != nil {
			return nil, err
		}
		target = u.Host
		if u.Scheme == "https" {
			creds = credentials.NewTLS(&tls.Config{MinVersion: tls.VersionTLS12})
		}
	}
	return grpc.NewClient(target, grpc.WithTransportCredentials(creds))
}

func (c *CosmosClient) Close() error {
	if c.grpcConn != nil {
		return c.grpcConn.Close()
	}
	return nil
}

func (c *CosmosClient) Address() string {
	return c.address
}

func (c *CosmosClient) StoreCodeBatch(ctx context.Context, wasm [][]byte) (*StoreCodeResponse, error) {
	msgs := make([]sdk.Msg, len(wasm))
	for i, code := range wasm {
		msgs[i] = &wasmtypes.MsgStoreCode{
			Sender:       c.address,
			WASMByteCode: code,
		}
	}
	res, commit, err := c.submit(ctx, msgs...)
	if err != nil {
		return nil, err
	}
	codeIDs, err := decodeCodeIDs(c.enc.Codec, res.TxResult, len(wasm))
	if err != nil {
		return nil, err
	}
	return &StoreCodeResponse{CodeIDs: codeIDs, Tx: commit}, nil
}

func (c *CosmosClient) InstantiateBatch(ctx context.Context, reqs []InstantiateRequest) (*InstantiateResponse, error) {
	msgs := make([]sdk.Msg, len(reqs))
	for i, r := range reqs {
		msgs[i] = &wasmtypes.MsgInstantiateContract{
			Sender: c.address,
			Admin:  r.Admin,
			CodeID: r.CodeID,
			Label:  r.Label,
			Msg:    wasmtypes.RawContractMessage(r.Msg),
			Funds:  r.Funds,
		}
	}
	res, commit, err := c.submit(ctx, msgs...)
	if err != nil {
		return nil, err
	}
	addrs, err := decodeAddresses(c.enc.Codec, res.TxResult, len(reqs))
	if err != nil {
		return nil, err
	}
	return &InstantiateResponse{Addresses: addrs, Tx: commit}, nil
}

func (c *CosmosClient) ExecuteBatch(ctx context.Context, reqs []ExecRequest) (*CommitResult, error) {
	msgs := make([]sdk.Msg, len(reqs))
	for i, r := range reqs {
		msgs[i] = &wasmtypes.MsgExecuteContract{
			Sender:   c.address,
			Contract: r.Address,
			Msg:      wasmtypes.RawContractMessage(r.Msg),
			Funds:    r.Funds,
		}
	}
	_, commit, err := c.submit(ctx, msgs...)
	if err != nil {
		return nil, err
	}
	return &commit, nil
}

func (c *CosmosClient) MigrateBatch(ctx context.Context, reqs []MigrateRequest) (*CommitResult, error) {
	msgs := make([]sdk.Msg, len(reqs))
	for i, r := range reqs {
		msgs[i] = &wasmtypes.MsgMigrateContract{
			Sender:   c.address,
			Contract: r.Address,
			CodeID:   r.NewCodeID,
			Msg:      wasmtypes.RawContractMessage(r.Msg),
		}
	}
	_, commit, err := c.submit(ctx, msgs...)
	if err != nil {
		return nil, err
	}
	return &commit, nil
}

func (c *CosmosClient) Send(ctx context.Context, to string, amount sdk.Coins) (*CommitResult, error) {
	msg := &banktypes.MsgSend{
		FromAddress: c.address,
		ToAddress:   to,
		Amount:      amount,
	}
	_, commit, err := c.submit(ctx, msg)
	if err != nil {
		return nil, err
	}
	return &commit, nil
}

func (c *CosmosClient) Query(ctx context.Context, address string, msg json.RawMessage) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.APIRequestTimeout)
	defer cancel()
	res, err := wasmtypes.NewQueryClient(c.clientCtx).SmartContractState(ctx, &wasmtypes.QuerySmartContractStateRequest{
		Address:   address,
		QueryData: wasmtypes.RawContractMessage(msg),
	})
	if err != nil {
		return nil, fmt.Errorf("query of %s failed: %w", address, err)
	}
	return json.RawMessage(res.Data), nil
}

// submit simulates, signs and broadcasts msgs as one transaction and waits for the
// block that includes it.
func (c *CosmosClient) submit(ctx context.Context, msgs ...sdk.Msg) (*coretypes.ResultBroadcastTxCommit, CommitResult, error) {
	if len(msgs) == 0 {
		return nil, CommitResult{}, errEmptyBatch
	}
	if c.rpc == nil {
		return nil, CommitResult{}, constants.ErrMissingRPC
	}
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	txf, err := c.factory()
	if err != nil {
		return nil, CommitResult{}, err
	}
	_, gas, err := tx.CalculateGas(c.clientCtx.WithCmdContext(ctx), txf, msgs...)
	if err != nil {
		return nil, CommitResult{}, fmt.Errorf("simulation failed: %w", err)
	}
	txf = txf.WithGas(gas)
	c.log.Debug("simulated tx", zap.Int("msgs", len(msgs)), zap.Uint64("gas", gas))

	txb, err := txf.BuildUnsignedTx(msgs...)
	if err != nil {
		return nil, CommitResult{}, err
	}
	if err := tx.Sign(ctx, txf, c.signer.UID, txb, true); err != nil {
		return nil, CommitResult{}, fmt.Errorf("failed signing tx: %w", err)
	}
	txBytes, err := c.enc.TxConfig.TxEncoder()(txb.GetTx())
	if err != nil {
		return nil, CommitResult{}, err
	}

	res, err := c.rpc.BroadcastTxCommit(ctx, txBytes)
	if err != nil {
		return nil, CommitResult{}, fmt.Errorf("broadcast failed: %w", err)
	}
	commit, err := checkBroadcast(res)
	if err != nil {
		c.log.Error("tx rejected", zap.Error(err))
		return nil, CommitResult{}, err
	}
	c.log.Info("tx committed",
		zap.String("hash", commit.TxHash),
		zap.Int64("height", commit.Height),
		zap.Int64("gasUsed", commit.GasUsed),
	)
	return res, commit, nil
}

func (c *CosmosClient) factory() (tx.Factory, error) {
	accNum, seq, err := authtypes.AccountRetriever{}.GetAccountNumberSequence(c.clientCtx, c.clientCtx.GetFromAddress())
	if err != nil {
		return tx.Factory{}, fmt.Errorf("failed fetching account %s, is it funded? %w", c.address, err)
	}
	gasAdjustment := c.info.GasAdjustment
	if gasAdjustment <= 0 {
		gasAdjustment = constants.DefaultGasAdjustment
	}
	signMode := signingtypes.SignMode_SIGN_MODE_DIRECT
	if c.signer.Ledger {
		signMode = signingtypes.SignMode_SIGN_MODE_LEGACY_AMINO_JSON
	}
	txf := tx.Factory{}.
		WithTxConfig(c.enc.TxConfig).
		WithKeybase(c.signer.Keyring).
		WithAccountRetriever(authtypes.AccountRetriever{}).
		WithChainID(c.info.ChainID).
		WithAccountNumber(accNum).
		WithSequence(seq).
		WithGasAdjustment(gasAdjustment).
		WithSimulateAndExecute(true).
		WithFromName(c.signer.UID).
		WithMemo(c.memo).
		WithSignMode(signMode)
	if c.info.GasPrice > 0 {
		if err := sdk.ValidateDenom(c.info.Denom); err != nil {
			return tx.Factory{}, err
		}
		txf = txf.WithGasPrices(strconv.FormatFloat(c.info.GasPrice, 'f', -1, 64) + c.info.Denom)
	}
	return txf, nil
}

// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package chainregistry imports chain settings from the cosmos chain registry.
package chainregistry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/luxfi/wasm-deploy/pkg/constants"
	"github.com/luxfi/wasm-deploy/pkg/models"
)

var ErrNoFeeToken = errors.New("chain registry entry lists no fee token")

// ChainJSON is the subset of a chain registry chain.json we read.
type ChainJSON struct {
	ChainName    string `json:"chain_name"`
	ChainID      string `json:"chain_id"`
	Bech32Prefix string `json:"bech32_prefix"`
	Slip44       uint32 `json:"slip44"`
	Fees         struct {
		FeeTokens []FeeToken `json:"fee_tokens"`
	} `json:"fees"`
	APIs struct {
		RPC  []endpoint `json:"rpc"`
		GRPC []endpoint `json:"grpc"`
	} `json:"apis"`
}

type FeeToken struct {
	Denom           string  `json:"denom"`
	AverageGasPrice float64 `json:"average_gas_price"`
}

type endpoint struct {
	Address  string `json:"address"`
	Provider string `json:"provider"`
}

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New() *Client {
	return &Client{
		BaseURL: constants.ChainRegistryURL,
		HTTP:    &http.Client{Timeout: constants.APIRequestTimeout},
	}
}

// Fetch downloads <name>/chain.json.
func (c *Client) Fetch(ctx context.Context, name string) (*ChainJSON, error) {
	u, err := url.JoinPath(c.BaseURL, url.PathEscape(name), "chain.json")
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed fetching %s: %w", u, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s is not in the chain registry", constants.ErrChainConfigNotFound, name)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed fetching %s: %s", u, resp.Status)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, err
	}
	var chain ChainJSON
	if err := json.Unmarshal(body, &chain); err != nil {
		return nil, fmt.Errorf("failed decoding chain.json of %s: %w", name, err)
	}
	return &chain, nil
}

// ChainInfo converts the registry entry using its first fee token and endpoints.
func (c *ChainJSON) ChainInfo() (models.ChainInfo, error) {
	if len(c.Fees.FeeTokens) == 0 {
		return models.ChainInfo{}, ErrNoFeeToken
	}
	fee := c.Fees.FeeTokens[0]
	info := models.ChainInfo{
		ChainID:        c.ChainID,
		Denom:          fee.Denom,
		Prefix:         c.Bech32Prefix,
		DerivationPath: fmt.Sprintf("m/44'/%d'/0'/0/0", c.Slip44),
		GasPrice:       fee.AverageGasPrice,
		GasAdjustment:  constants.DefaultGasAdjustment,
	}
	if len(c.APIs.RPC) > 0 {
		info.RPCEndpoint = c.APIs.RPC[0].Address
	}
	if len(c.APIs.GRPC) > 0 {
		info.GRPCEndpoint = grpcURL(c.APIs.GRPC[0].Address)
	}
	if info.RPCEndpoint == "" && info.GRPCEndpoint == "" {
		return models.ChainInfo{}, constants.ErrMissingClient
	}
	return info, nil
}

// grpcURL adds a scheme to bare host:port registry entries; port 443 implies TLS.
func grpcURL(addr string) string {
	if addr == "" || strings.Contains(addr, "://") {
		return addr
	}
	if strings.HasSuffix(addr, ":443") {
		return "https://" + addr
	}
	return "http://" + addr
}

// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package deployment runs deployment stages for a set of contracts against a chain and
// records the resulting code ids and addresses in the contract registry.
package deployment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/luxfi/wasm-deploy/pkg/chain"
	"github.com/luxfi/wasm-deploy/pkg/constants"
	"github.com/luxfi/wasm-deploy/pkg/contract"
	"github.com/luxfi/wasm-deploy/pkg/models"
	"github.com/luxfi/wasm-deploy/pkg/prompts"
	"github.com/luxfi/wasm-deploy/pkg/ux"
)

// Store is the contract registry of the active env. Save persists every change made
// through UpsertContract so far.
type Store interface {
	contract.Registry
	UpsertContract(models.ContractInfo) error
	Save() error
}

type Config struct {
	// Client may be nil when DryRun is set.
	Client       chain.Client
	Store        Store
	ArtifactsDir string
	// ChunkSize bounds the number of contracts stored per transaction.
	ChunkSize int
	DryRun    bool
	// Interactive makes instantiate and migrate ask for their messages.
	Interactive bool
	Prompt      prompts.Prompter
	Log         *zap.Logger
	Out         *ux.UserLog
	// Progress receives the store code progress bar. Nil hides it.
	Progress io.Writer
}

// Engine executes deployment stages. It keeps no state between runs; everything it
// needs to know about earlier stages is read back from the Store.
type Engine struct {
	cfg Config
	log *zap.Logger
	out *ux.UserLog
}

func New(cfg Config) *Engine {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = constants.DefaultStoreCodeChunkSize
	}
	log := cfg.Log
	if log == nil {
		log = zap.NewNop()
	}
	out := cfg.Out
	if out == nil {
		out = ux.Logger
	}
	if out == nil {
		out = ux.New(log, io.Discard)
	}
	return &Engine{cfg: cfg, log: log, out: out}
}

// ErrNoClient is returned when a stage has something to submit but the engine was
// built without a chain client.
var ErrNoClient = errors.New("no chain client: connect to the active env or use --dry-run")

// Run executes stage for contracts, in the given order.
func (e *Engine) Run(ctx context.Context, stage Stage, contracts []contract.Contract) error {
	e.log.Debug("running stage", zap.Stringer("stage", stage), zap.Strings("contracts", contract.Names(contracts)))
	switch stage {
	case StoreCode:
		return e.storeCode(ctx, contracts)
	case Instantiate:
		return e.instantiate(ctx, contracts)
	case ExternalInstantiate:
		return e.externalInstantiate(ctx, contracts)
	case Migrate:
		return e.migrate(ctx, contracts)
	case SetConfig:
		return e.setConfig(ctx, contracts)
	case SetUp:
		return e.setUp(ctx, contracts)
	default:
		return fmt.Errorf("unknown stage %s", stage)
	}
}

// ArtifactPath returns the gzipped artifact of c when present, else the plain wasm.
func ArtifactPath(artifactsDir string, c contract.Contract) string {
	gz := filepath.Join(artifactsDir, c.BinName()+constants.WasmExtension+constants.GzipExtension)
	if _, err := os.Stat(gz); err == nil {
		return gz
	}
	return filepath.Join(artifactsDir, c.BinName()+constants.WasmExtension)
}

func (e *Engine) storeCode(ctx context.Context, contracts []contract.Contract) error {
	var bar *progressbar.ProgressBar
	if e.cfg.Progress != nil && !e.cfg.DryRun && len(contracts) > 0 {
		bar = progressbar.NewOptions(
			len(contracts),
			progressbar.OptionSetWriter(e.cfg.Progress),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(15),
			progressbar.OptionSetDescription("storing code"),
		)
	}

	for start := 0; start < len(contracts); start += e.cfg.ChunkSize {
		end := min(start+e.cfg.ChunkSize, len(contracts))
		if err := e.storeChunk(ctx, contracts[start:end]); err != nil {
			return err
		}
		if bar != nil {
			_ = bar.Add(end - start)
		}
	}
	if bar != nil {
		_ = bar.Finish()
	}
	return nil
}

// storeChunk stores one chunk in one transaction and persists the registry right after,
// so a failure in a later chunk keeps the code ids of this one.
func (e *Engine) storeChunk(ctx context.Context, chunk []contract.Contract) error {
	blobs := make([][]byte, 0, len(chunk))
	for _, c := range chunk {
		path := ArtifactPath(e.cfg.ArtifactsDir, c)
		wasm, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed reading artifact of %s: %w", c.Name(), err)
		}
		if e.cfg.DryRun {
			e.out.PrintToUser("would store %s from %s (%s bytes)", c.Name(), path,
				ux.ConvertToStringWithThousandSeparator(uint64(len(wasm))))
			continue
		}
		e.out.PrintToUser("Storing code for %s", c.Name())
		blobs = append(blobs, wasm)
	}
	if e.cfg.DryRun || len(blobs) == 0 {
		return nil
	}

	client, err := e.client()
	if err != nil {
		return err
	}
	res, err := client.StoreCodeBatch(ctx, blobs)
	if err != nil {
		return fmt.Errorf("store code failed: %w", err)
	}
	if len(res.CodeIDs) != len(chunk) {
		return fmt.Errorf("%w: stored %d contracts, got %d code ids", chain.ErrMissingResponses, len(chunk), len(res.CodeIDs))
	}
	for i, c := range chunk {
		info, err := e.cfg.Store.Contract(c.Name())
		switch {
		case errors.Is(err, constants.ErrContractNotFound):
			info = models.ContractInfo{Name: c.Name()}
		case err != nil:
			return err
		}
		info.CodeID = res.CodeIDs[i]
		if err := e.cfg.Store.UpsertContract(info); err != nil {
			return err
		}
		e.log.Info("stored code", zap.String("contract", c.Name()), zap.Uint64("codeID", info.CodeID))
	}
	if err := e.cfg.Store.Save(); err != nil {
		return err
	}
	e.out.PrintTxResult(res.Tx.GasWanted, res.Tx.GasUsed, res.Tx.TxHash, res.Tx.Height)
	return nil
}

func (e *Engine) instantiate(ctx context.Context, contracts []contract.Contract) error {
	var (
		reqs  []chain.InstantiateRequest
		owner []contract.Contract
	)
	for _, c := range contracts {
		msg, err := e.instantiateMsg(c)
		if err != nil {
			return err
		}
		if msg == nil {
			continue
		}
		codeID, err := e.codeID(c.Name())
		if err != nil {
			return err
		}
		raw, err := contract.BuildMsg(msg, e.cfg.Store)
		if err != nil {
			return fmt.Errorf("failed building instantiate msg of %s: %w", c.Name(), err)
		}
		e.out.PrintToUser("Instantiating %s", c.Name())
		reqs = append(reqs, chain.InstantiateRequest{
			CodeID: codeID,
			Msg:    raw,
			Label:  c.Name(),
			Admin:  c.Admin(),
		})
		owner = append(owner, c)
	}
	if len(reqs) == 0 {
		return nil
	}
	if e.cfg.DryRun {
		return e.printMsgs(instantiateMsgs(reqs))
	}

	client, err := e.client()
	if err != nil {
		return err
	}
	res, err := client.InstantiateBatch(ctx, reqs)
	if err != nil {
		return fmt.Errorf("instantiate failed: %w", err)
	}
	if len(res.Addresses) != len(reqs) {
		return fmt.Errorf("%w: instantiated %d contracts, got %d addresses", chain.ErrMissingResponses, len(reqs), len(res.Addresses))
	}
	// only contracts that sent a request own a response slot
	for i, c := range owner {
		info, err := e.cfg.Store.Contract(c.Name())
		if err != nil {
			return err
		}
		info.Addr = res.Addresses[i]
		if err := e.cfg.Store.UpsertContract(info); err != nil {
			return err
		}
		e.log.Info("instantiated", zap.String("contract", c.Name()), zap.String("addr", info.Addr))
	}
	if err := e.cfg.Store.Save(); err != nil {
		return err
	}
	e.out.PrintTxResult(res.Tx.GasWanted, res.Tx.GasUsed, res.Tx.TxHash, res.Tx.Height)
	return nil
}

func (e *Engine) externalInstantiate(ctx context.Context, contracts []contract.Contract) error {
	var (
		reqs  []chain.InstantiateRequest
		names []string
	)
	for _, c := range contracts {
		for _, ext := range c.ExternalInstantiateMsgs() {
			raw, err := contract.BuildMsg(ext.Msg, e.cfg.Store)
			if err != nil {
				return fmt.Errorf("failed building instantiate msg of %s: %w", ext.Name, err)
			}
			e.out.PrintToUser("Instantiating %s", ext.Name)
			reqs = append(reqs, chain.InstantiateRequest{
				CodeID: ext.CodeID,
				Msg:    raw,
				Label:  ext.Name,
				Admin:  c.Admin(),
			})
			names = append(names, ext.Name)
		}
	}
	if len(reqs) == 0 {
		return nil
	}
	if e.cfg.DryRun {
		return e.printMsgs(instantiateMsgs(reqs))
	}

	client, err := e.client()
	if err != nil {
		return err
	}
	res, err := client.InstantiateBatch(ctx, reqs)
	if err != nil {
		return fmt.Errorf("external instantiate failed: %w", err)
	}
	if len(res.Addresses) != len(reqs) {
		return fmt.Errorf("%w: instantiated %d contracts, got %d addresses", chain.ErrMissingResponses, len(reqs), len(res.Addresses))
	}
	for i, name := range names {
		info := models.ContractInfo{
			Name:   name,
			Addr:   res.Addresses[i],
			CodeID: reqs[i].CodeID,
		}
		if err := e.cfg.Store.UpsertContract(info); err != nil {
			return err
		}
	}
	if err := e.cfg.Store.Save(); err != nil {
		return err
	}
	e.out.PrintTxResult(res.Tx.GasWanted, res.Tx.GasUsed, res.Tx.TxHash, res.Tx.Height)
	return nil
}

func (e *Engine) migrate(ctx context.Context, contracts []contract.Contract) error {
	var reqs []chain.MigrateRequest
	for _, c := range contracts {
		msg, err := e.migrateMsg(c)
		if err != nil {
			return err
		}
		if msg == nil {
			continue
		}
		addr, err := e.addr(c.Name())
		if err != nil {
			return err
		}
		codeID, err := e.codeID(c.Name())
		if err != nil {
			return err
		}
		raw, err := contract.BuildMsg(msg, e.cfg.Store)
		if err != nil {
			return fmt.Errorf("failed building migrate msg of %s: %w", c.Name(), err)
		}
		e.out.PrintToUser("Migrating %s", c.Name())
		reqs = append(reqs, chain.MigrateRequest{
			Address:   addr,
			NewCodeID: codeID,
			Msg:       raw,
		})
	}
	if len(reqs) == 0 {
		return nil
	}
	if e.cfg.DryRun {
		msgs := make([]json.RawMessage, len(reqs))
		for i, r := range reqs {
			msgs[i] = r.Msg
		}
		return e.printMsgs(msgs)
	}

	client, err := e.client()
	if err != nil {
		return err
	}
	res, err := client.MigrateBatch(ctx, reqs)
	if err != nil {
		return fmt.Errorf("migrate failed: %w", err)
	}
	e.out.PrintTxResult(res.GasWanted, res.GasUsed, res.TxHash, res.Height)
	return nil
}

func (e *Engine) setConfig(ctx context.Context, contracts []contract.Contract) error {
	var reqs []chain.ExecRequest
	for _, c := range contracts {
		msg := c.SetConfigMsg()
		if msg == nil {
			continue
		}
		req, err := e.execRequest(c.Name(), msg)
		if err != nil {
			return err
		}
		e.out.PrintToUser("Executing set_config for %s", c.Name())
		reqs = append(reqs, req)
	}
	return e.execute(ctx, reqs)
}

// setUp sends the set up msgs of every contract in one transaction, ordered by
// contract and then by msg.
func (e *Engine) setUp(ctx context.Context, contracts []contract.Contract) error {
	var reqs []chain.ExecRequest
	for _, c := range contracts {
		for i, msg := range c.SetUpMsgs() {
			if msg == nil {
				continue
			}
			req, err := e.execRequest(c.Name(), msg)
			if err != nil {
				return err
			}
			if i == 0 {
				e.out.PrintToUser("Executing set_up for %s", c.Name())
			}
			reqs = append(reqs, req)
		}
	}
	return e.execute(ctx, reqs)
}

func (e *Engine) execRequest(name string, msg contract.Msg) (chain.ExecRequest, error) {
	addr, err := e.addr(name)
	if err != nil {
		return chain.ExecRequest{}, err
	}
	raw, err := contract.BuildMsg(msg, e.cfg.Store)
	if err != nil {
		return chain.ExecRequest{}, fmt.Errorf("failed building msg of %s: %w", name, err)
	}
	return chain.ExecRequest{Address: addr, Msg: raw}, nil
}

func (e *Engine) execute(ctx context.Context, reqs []chain.ExecRequest) error {
	if len(reqs) == 0 {
		return nil
	}
	if e.cfg.DryRun {
		msgs := make([]json.RawMessage, len(reqs))
		for i, r := range reqs {
			msgs[i] = r.Msg
		}
		return e.printMsgs(msgs)
	}
	client, err := e.client()
	if err != nil {
		return err
	}
	res, err := client.ExecuteBatch(ctx, reqs)
	if err != nil {
		return fmt.Errorf("execute failed: %w", err)
	}
	e.out.PrintTxResult(res.GasWanted, res.GasUsed, res.TxHash, res.Height)
	return nil
}

func (e *Engine) instantiateMsg(c contract.Contract) (contract.Msg, error) {
	if !e.cfg.Interactive {
		return c.InstantiateMsg(), nil
	}
	ic, ok := c.(contract.Interactive)
	if !ok {
		return nil, fmt.Errorf("%s: %w", c.Name(), constants.ErrNotImplemented)
	}
	return ic.InstantiateInteractive(e.cfg.Prompt)
}

func (e *Engine) migrateMsg(c contract.Contract) (contract.Msg, error) {
	if !e.cfg.Interactive {
		return c.MigrateMsg(), nil
	}
	ic, ok := c.(contract.Interactive)
	if !ok {
		return nil, fmt.Errorf("%s: %w", c.Name(), constants.ErrNotImplemented)
	}
	return ic.MigrateInteractive(e.cfg.Prompt)
}

// codeID reads the stored code id of name. A contract missing from the registry was
// never stored either.
func (e *Engine) codeID(name string) (uint64, error) {
	info, err := e.cfg.Store.Contract(name)
	if errors.Is(err, constants.ErrContractNotFound) {
		return 0, &constants.CodeIDNotFoundError{Name: name}
	}
	if err != nil {
		return 0, err
	}
	if !info.HasCodeID() {
		return 0, &constants.CodeIDNotFoundError{Name: name}
	}
	return info.CodeID, nil
}

func (e *Engine) addr(name string) (string, error) {
	info, err := e.cfg.Store.Contract(name)
	if errors.Is(err, constants.ErrContractNotFound) {
		return "", &constants.AddrNotFoundError{Name: name}
	}
	if err != nil {
		return "", err
	}
	if !info.HasAddr() {
		return "", &constants.AddrNotFoundError{Name: name}
	}
	return info.Addr, nil
}

func (e *Engine) client() (chain.Client, error) {
	if e.cfg.Client == nil {
		return nil, ErrNoClient
	}
	return e.cfg.Client, nil
}

func instantiateMsgs(reqs []chain.InstantiateRequest) []json.RawMessage {
	msgs := make([]json.RawMessage, len(reqs))
	for i, r := range reqs {
		msgs[i] = r.Msg
	}
	return msgs
}

func (e *Engine) printMsgs(msgs []json.RawMessage) error {
	return e.out.PrintJSON(msgs)
}

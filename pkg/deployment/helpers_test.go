// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package deployment_test

import (
	"bytes"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/luxfi/wasm-deploy/pkg/constants"
	"github.com/luxfi/wasm-deploy/pkg/contract"
	"github.com/luxfi/wasm-deploy/pkg/deployment"
	"github.com/luxfi/wasm-deploy/pkg/models"
	"github.com/luxfi/wasm-deploy/pkg/ux"
)

// memStore keeps the registry in memory and snapshots it on every Save.
type memStore struct {
	*models.Config
	saves   [][]models.ContractInfo
	saveErr error
}

func newStore(entries ...models.ContractInfo) *memStore {
	cfg := models.NewConfig()
	if err := cfg.AddEnv(models.Env{EnvID: "dev", ChainLabel: "local", KeyName: "deployer"}); err != nil {
		panic(err)
	}
	for _, e := range entries {
		if err := cfg.UpsertContract(e); err != nil {
			panic(err)
		}
	}
	return &memStore{Config: cfg}
}

func (s *memStore) Save() error {
	contracts, err := s.Contracts()
	if err != nil {
		return err
	}
	s.saves = append(s.saves, contracts)
	return s.saveErr
}

func (s *memStore) get(name string) models.ContractInfo {
	info, err := s.Contract(name)
	if err != nil {
		return models.ContractInfo{}
	}
	return info
}

func wasmFor(name string) []byte {
	return []byte("\x00asm-" + name)
}

// writeArtifacts writes a fake optimized artifact per contract and returns the dir.
func writeArtifacts(dir string, contracts ...contract.Contract) string {
	for _, c := range contracts {
		path := filepath.Join(dir, c.BinName()+constants.WasmExtension+constants.GzipExtension)
		if err := os.WriteFile(path, wasmFor(c.Name()), constants.WriteReadReadPerms); err != nil {
			panic(err)
		}
	}
	return dir
}

func named(name string) *contract.ManifestContract {
	return &contract.ManifestContract{Base: contract.Base{ContractName: name, AdminAddr: "wasm1admin"}}
}

func contracts(cs ...*contract.ManifestContract) []contract.Contract {
	out := make([]contract.Contract, len(cs))
	for i, c := range cs {
		out[i] = c
	}
	return out
}

func engineConfig(store deployment.Store, artifacts string, out *bytes.Buffer) deployment.Config {
	return deployment.Config{
		Store:        store,
		ArtifactsDir: artifacts,
		ChunkSize:    2,
		Log:          zap.NewNop(),
		Out:          ux.New(zap.NewNop(), out),
	}
}

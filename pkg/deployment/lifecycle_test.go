// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package deployment_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	sdk "github.com/cosmos/cosmos-sdk/types"
	ginkgo "github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/luxfi/wasm-deploy/pkg/chain"
	"github.com/luxfi/wasm-deploy/pkg/constants"
	"github.com/luxfi/wasm-deploy/pkg/contract"
	"github.com/luxfi/wasm-deploy/pkg/deployment"
	"github.com/luxfi/wasm-deploy/pkg/models"
)

// fakeChain hands out increasing code ids and addresses and remembers every batch.
type fakeChain struct {
	nextCodeID uint64
	nextAddr   int
	txs        int
	executed   []chain.ExecRequest
	migrated   []chain.MigrateRequest
	labels     []string
	failOnTx   int
}

var _ chain.Client = (*fakeChain)(nil)

func (f *fakeChain) commit() (chain.CommitResult, error) {
	f.txs++
	if f.failOnTx == f.txs {
		return chain.CommitResult{}, &chain.Error{Code: 11, Codespace: "sdk", Log: "out of gas"}
	}
	return chain.CommitResult{GasWanted: 100, GasUsed: 90, TxHash: fmt.Sprintf("TX%d", f.txs), Height: int64(f.txs)}, nil
}

func (f *fakeChain) StoreCodeBatch(_ context.Context, wasm [][]byte) (*chain.StoreCodeResponse, error) {
	res, err := f.commit()
	if err != nil {
		return nil, err
	}
	ids := make([]uint64, len(wasm))
	for i := range wasm {
		f.nextCodeID++
		ids[i] = f.nextCodeID
	}
	return &chain.StoreCodeResponse{CodeIDs: ids, Tx: res}, nil
}

func (f *fakeChain) InstantiateBatch(_ context.Context, reqs []chain.InstantiateRequest) (*chain.InstantiateResponse, error) {
	res, err := f.commit()
	if err != nil {
		return nil, err
	}
	addrs := make([]string, len(reqs))
	for i, r := range reqs {
		f.nextAddr++
		addrs[i] = fmt.Sprintf("wasm1contract%d", f.nextAddr)
		f.labels = append(f.labels, r.Label)
	}
	return &chain.InstantiateResponse{Addresses: addrs, Tx: res}, nil
}

func (f *fakeChain) ExecuteBatch(_ context.Context, reqs []chain.ExecRequest) (*chain.CommitResult, error) {
	res, err := f.commit()
	if err != nil {
		return nil, err
	}
	f.executed = append(f.executed, reqs...)
	return &res, nil
}

func (f *fakeChain) MigrateBatch(_ context.Context, reqs []chain.MigrateRequest) (*chain.CommitResult, error) {
	res, err := f.commit()
	if err != nil {
		return nil, err
	}
	f.migrated = append(f.migrated, reqs...)
	return &res, nil
}

func (f *fakeChain) Send(context.Context, string, sdk.Coins) (*chain.CommitResult, error) {
	res, err := f.commit()
	return &res, err
}

func (*fakeChain) Query(context.Context, string, json.RawMessage) (json.RawMessage, error) {
	return json.RawMessage(`{}`), nil
}

func (*fakeChain) Address() string {
	return "wasm1deployer"
}

type countingBuilder struct {
	builds int
}

func (b *countingBuilder) Build(context.Context, []contract.Contract) error {
	b.builds++
	return nil
}

var _ = ginkgo.Describe("[Deployment lifecycle]", func() {
	var (
		fake      *fakeChain
		store     *memStore
		builder   *countingBuilder
		seq       *deployment.Sequencer
		workspace []contract.Contract
		out       bytes.Buffer
	)

	ginkgo.BeforeEach(func() {
		token := named("token")
		token.Instantiate = map[string]any{"name": "Token", "decimals": 6}
		token.SetConfig = map[string]any{"set_minter": map[string]any{"minter": "&market"}}
		token.Migrate = map[string]any{"version": "2"}

		market := named("market")
		market.Instantiate = map[string]any{"quote_denom": "uusdc"}
		market.SetUp = []contract.Msg{
			map[string]any{"add_pair": map[string]any{"base": "&token", "quote": "&usdc"}},
			map[string]any{"open": map[string]any{}},
		}
		market.External = []contract.ExternalInstantiate{
			{Name: "usdc", CodeID: 99, Msg: map[string]any{"symbol": "USDC"}},
		}
		workspace = contracts(token, market)

		dir, err := os.MkdirTemp("", "wasm-deploy-artifacts")
		gomega.Expect(err).Should(gomega.BeNil())
		ginkgo.DeferCleanup(os.RemoveAll, dir)
		writeArtifacts(dir, workspace...)

		fake = &fakeChain{nextCodeID: 10}
		store = newStore()
		builder = &countingBuilder{}
		out.Reset()
		cfg := engineConfig(store, dir, &out)
		cfg.Client = fake
		seq = &deployment.Sequencer{Engine: deployment.New(cfg), Builder: builder}
	})

	ginkgo.It("deploys a workspace end to end", func() {
		err := seq.Deploy(context.Background(), workspace, false)
		gomega.Expect(err).Should(gomega.BeNil())
		gomega.Expect(builder.builds).Should(gomega.Equal(1))

		// store, instantiate, external instantiate, set config, set up
		gomega.Expect(fake.txs).Should(gomega.Equal(5))
		gomega.Expect(store.get("token")).Should(gomega.Equal(models.ContractInfo{Name: "token", Addr: "wasm1contract1", CodeID: 11}))
		gomega.Expect(store.get("market")).Should(gomega.Equal(models.ContractInfo{Name: "market", Addr: "wasm1contract2", CodeID: 12}))
		gomega.Expect(store.get("usdc")).Should(gomega.Equal(models.ContractInfo{Name: "usdc", Addr: "wasm1contract3", CodeID: 99}))
		gomega.Expect(fake.labels).Should(gomega.Equal([]string{"token", "market", "usdc"}))

		gomega.Expect(fake.executed).Should(gomega.HaveLen(3))
		gomega.Expect(string(fake.executed[0].Msg)).Should(gomega.MatchJSON(`{"set_minter":{"minter":"wasm1contract2"}}`))
		gomega.Expect(string(fake.executed[1].Msg)).Should(gomega.MatchJSON(`{"add_pair":{"base":"wasm1contract1","quote":"wasm1contract3"}}`))
		gomega.Expect(fake.executed[2].Address).Should(gomega.Equal("wasm1contract2"))
		gomega.Expect(out.String()).Should(gomega.ContainSubstring("tx hash: TX5"))
	})

	ginkgo.It("stops at the first failing stage", func() {
		fake.failOnTx = 2
		err := seq.Deploy(context.Background(), workspace, true)
		gomega.Expect(err).Should(gomega.MatchError(chain.ErrTxFailed))
		gomega.Expect(builder.builds).Should(gomega.Equal(0))
		gomega.Expect(store.get("token").CodeID).Should(gomega.Equal(uint64(11)))
		gomega.Expect(store.get("token").HasAddr()).Should(gomega.BeFalse())
	})

	ginkgo.It("fails before the chain when a referenced contract has no address", func() {
		gomega.Expect(seq.Engine.Run(context.Background(), deployment.StoreCode, workspace)).Should(gomega.Succeed())
		router := named("router")
		router.Instantiate = map[string]any{"market": "&market"}
		gomega.Expect(store.UpsertContract(models.ContractInfo{Name: "router", CodeID: 5})).Should(gomega.Succeed())

		err := seq.Engine.Run(context.Background(), deployment.Instantiate, contracts(router))
		gomega.Expect(err).Should(gomega.MatchError(constants.ErrAddrNotFound))
		gomega.Expect(fake.txs).Should(gomega.Equal(1))
	})

	ginkgo.It("migrates to freshly stored code", func() {
		gomega.Expect(seq.Deploy(context.Background(), workspace, true)).Should(gomega.Succeed())
		fake.txs = 0

		gomega.Expect(seq.Migrate(context.Background(), workspace, false)).Should(gomega.Succeed())
		gomega.Expect(builder.builds).Should(gomega.Equal(1))
		gomega.Expect(fake.txs).Should(gomega.Equal(2))
		gomega.Expect(fake.migrated).Should(gomega.HaveLen(1))
		gomega.Expect(fake.migrated[0].Address).Should(gomega.Equal("wasm1contract1"))
		gomega.Expect(fake.migrated[0].NewCodeID).Should(gomega.Equal(uint64(13)))
	})

	ginkgo.It("migrates without rebuilding when asked to", func() {
		gomega.Expect(seq.Deploy(context.Background(), workspace, true)).Should(gomega.Succeed())
		fake.txs = 0

		gomega.Expect(seq.Migrate(context.Background(), workspace, true)).Should(gomega.Succeed())
		gomega.Expect(builder.builds).Should(gomega.Equal(0))
		gomega.Expect(fake.txs).Should(gomega.Equal(1))
		gomega.Expect(fake.migrated[0].NewCodeID).Should(gomega.Equal(uint64(11)))
	})
})

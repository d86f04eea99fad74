package tests

import (
	"math/rand"
	"path"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/core/interop/storage"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/neotest/chain"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

const (
	factoryPath = "../factory"
	vaultPath   = "../vault"
	tradePath   = "../trade"
	auctionPath = "../auction"
	rentalPath  = "../rental"

	assetRecvPath = "../internal/testcontracts/assetrecv"
)

// currencyID is the asset id every test suite uses for the in-game currency.
var currencyID = []byte("gold")

// economy groups the script hashes of a fully deployed contract suite.
type economy struct {
	factory util.Uint160
	vault   util.Uint160
	trade   util.Uint160
	auction util.Uint160
	rental  util.Uint160
}

func newExecutor(t *testing.T) *neotest.Executor {
	bc, acc := chain.NewSingle(t)
	return neotest.NewExecutor(t, bc, acc, acc)
}

func compileContract(t *testing.T, e *neotest.Executor, ctrPath string) *neotest.Contract {
	return neotest.CompileFile(t, e.CommitteeHash, ctrPath, path.Join(ctrPath, "config.yml"))
}

// deployEconomy compiles and deploys the whole suite. Hashes of dependent
// contracts are known before deployment, so the vault learns its settlement
// contracts and the settlement contracts learn the vault in one pass.
func deployEconomy(t *testing.T, e *neotest.Executor) economy {
	ctrFactory := compileContract(t, e, factoryPath)
	ctrVault := compileContract(t, e, vaultPath)
	ctrTrade := compileContract(t, e, tradePath)
	ctrAuction := compileContract(t, e, auctionPath)
	ctrRental := compileContract(t, e, rentalPath)

	e.DeployContract(t, ctrFactory, nil)
	e.DeployContract(t, ctrVault, []any{
		ctrFactory.Hash,
		[]any{ctrTrade.Hash, ctrAuction.Hash, ctrRental.Hash},
	})
	e.DeployContract(t, ctrTrade, []any{ctrVault.Hash})
	e.DeployContract(t, ctrAuction, []any{ctrVault.Hash, currencyID})
	e.DeployContract(t, ctrRental, []any{ctrVault.Hash})

	return economy{
		factory: ctrFactory.Hash,
		vault:   ctrVault.Hash,
		trade:   ctrTrade.Hash,
		auction: ctrAuction.Hash,
		rental:  ctrRental.Hash,
	}
}

func newEconomyInvokers(t *testing.T) (*neotest.Executor, economy) {
	e := newExecutor(t)
	return e, deployEconomy(t, e)
}

// mintAndDeposit mints amount units of an existing asset to the account
// and pushes them into vault custody.
func mintAndDeposit(t *testing.T, e *neotest.Executor, ec economy, acc neotest.Signer, id []byte, amount int64) {
	e.CommitteeInvoker(ec.factory).Invoke(t, nil, "mint", acc.ScriptHash(), id, amount)
	e.NewInvoker(ec.vault, acc).Invoke(t, nil, "deposit", acc.ScriptHash(), id, amount)
}

func newAsset(t *testing.T, e *neotest.Executor, ec economy, id []byte, symbol string, price int64) {
	e.CommitteeInvoker(ec.factory).Invoke(t, nil, "newAsset", id, symbol, price)
}

func iteratorToArray(iter *storage.Iterator) []stackitem.Item {
	stackItems := make([]stackitem.Item, 0)
	for iter.Next() {
		stackItems = append(stackItems, iter.Value())
	}
	return stackItems
}

func randomBytes(n int) []byte {
	a := make([]byte, n)
	rand.Read(a) //nolint:staticcheck // SA1019: rand.Read has been deprecated since Go 1.20
	return a
}

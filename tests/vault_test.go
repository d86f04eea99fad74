package tests

import (
	"testing"

	"github.com/emberforge/arcade-contract/common"
	"github.com/emberforge/arcade-contract/vault"
	"github.com/nspcc-dev/neo-go/pkg/core/interop/storage"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

func TestVaultDeposit(t *testing.T) {
	e, ec := newEconomyInvokers(t)
	cFactory := e.CommitteeInvoker(ec.factory)

	id := []byte("ore")
	newAsset(t, e, ec, id, "ORE", 5)

	acc := e.NewAccount(t)
	cFactory.Invoke(t, nil, "mint", acc.ScriptHash(), id, int64(10))

	cAcc := e.NewInvoker(ec.vault, acc)
	cAcc.Invoke(t, nil, "deposit", acc.ScriptHash(), id, int64(7))

	// Custody moved to the vault, credit recorded for the depositor.
	cFactory.Invoke(t, int64(3), "balanceOf", acc.ScriptHash(), id)
	cFactory.Invoke(t, int64(7), "balanceOf", ec.vault, id)
	cAcc.Invoke(t, int64(7), "balanceOf", acc.ScriptHash(), id)
	cAcc.Invoke(t, int64(0), "lockedOf", acc.ScriptHash(), id)

	cAcc.InvokeFail(t, vault.ErrFactoryTransfer, "deposit", acc.ScriptHash(), id, int64(4))
	cAcc.InvokeFail(t, vault.ErrNegativeAmount, "deposit", acc.ScriptHash(), id, int64(-1))

	stranger := e.NewAccount(t)
	e.NewInvoker(ec.vault, stranger).InvokeFail(t, common.ErrOwnerWitnessFailed,
		"deposit", acc.ScriptHash(), id, int64(1))
}

func TestVaultDepositBatch(t *testing.T) {
	e, ec := newEconomyInvokers(t)
	cFactory := e.CommitteeInvoker(ec.factory)

	ids := [][]byte{[]byte("iron"), []byte("coal")}
	newAsset(t, e, ec, ids[0], "IRON", 2)
	newAsset(t, e, ec, ids[1], "COAL", 1)

	acc := e.NewAccount(t)
	cFactory.Invoke(t, nil, "mint", acc.ScriptHash(), ids[0], int64(10))
	cFactory.Invoke(t, nil, "mint", acc.ScriptHash(), ids[1], int64(10))

	cAcc := e.NewInvoker(ec.vault, acc)
	cAcc.Invoke(t, nil, "depositBatch", acc.ScriptHash(),
		[]any{ids[0], ids[1]}, []any{int64(4), int64(6)})
	cAcc.Invoke(t, int64(4), "balanceOf", acc.ScriptHash(), ids[0])
	cAcc.Invoke(t, int64(6), "balanceOf", acc.ScriptHash(), ids[1])

	cAcc.InvokeFail(t, vault.ErrArraysLengthMismatch, "depositBatch",
		acc.ScriptHash(), []any{ids[0], ids[1]}, []any{int64(1)})

	// One short entry rolls back the whole batch.
	cAcc.InvokeFail(t, vault.ErrFactoryTransfer, "depositBatch",
		acc.ScriptHash(), []any{ids[0], ids[1]}, []any{int64(1), int64(100)})
	cAcc.Invoke(t, int64(4), "balanceOf", acc.ScriptHash(), ids[0])
	cFactory.Invoke(t, int64(6), "balanceOf", acc.ScriptHash(), ids[0])
}

func TestVaultWithdraw(t *testing.T) {
	e, ec := newEconomyInvokers(t)
	cFactory := e.CommitteeInvoker(ec.factory)

	id := []byte("silk")
	newAsset(t, e, ec, id, "SILK", 8)

	acc := e.NewAccount(t)
	mintAndDeposit(t, e, ec, acc, id, 9)

	cAcc := e.NewInvoker(ec.vault, acc)
	cAcc.Invoke(t, nil, "withdraw", acc.ScriptHash(), acc.ScriptHash(), id, int64(4))
	cAcc.Invoke(t, int64(5), "balanceOf", acc.ScriptHash(), id)
	cFactory.Invoke(t, int64(4), "balanceOf", acc.ScriptHash(), id)

	// Withdrawal to a third party.
	other := e.NewAccount(t)
	cAcc.Invoke(t, nil, "withdraw", acc.ScriptHash(), other.ScriptHash(), id, int64(2))
	cFactory.Invoke(t, int64(2), "balanceOf", other.ScriptHash(), id)
	cAcc.Invoke(t, int64(3), "balanceOf", acc.ScriptHash(), id)

	cAcc.InvokeFail(t, vault.ErrInsufficientBalance, "withdraw",
		acc.ScriptHash(), acc.ScriptHash(), id, int64(4))
	cAcc.InvokeFail(t, vault.ErrNegativeAmount, "withdraw",
		acc.ScriptHash(), acc.ScriptHash(), id, int64(-1))

	stranger := e.NewAccount(t)
	e.NewInvoker(ec.vault, stranger).InvokeFail(t, common.ErrOwnerWitnessFailed,
		"withdraw", acc.ScriptHash(), stranger.ScriptHash(), id, int64(1))
}

func TestVaultWithdrawToContract(t *testing.T) {
	e, ec := newEconomyInvokers(t)

	ctrRecv := compileContract(t, e, assetRecvPath)
	e.DeployContract(t, ctrRecv, nil)

	id := []byte("ink")
	newAsset(t, e, ec, id, "INK", 1)

	acc := e.NewAccount(t)
	mintAndDeposit(t, e, ec, acc, id, 5)

	cAcc := e.NewInvoker(ec.vault, acc)
	cAcc.Invoke(t, nil, "withdraw", acc.ScriptHash(), ctrRecv.Hash, id, int64(2))
	e.CommitteeInvoker(ec.factory).Invoke(t, int64(2), "balanceOf", ctrRecv.Hash, id)
	cAcc.Invoke(t, int64(3), "balanceOf", acc.ScriptHash(), id)

	// Receivers without the acknowledgement hook reject the push and the
	// debit rolls back with it.
	cAcc.InvokeFail(t, "method not found", "withdraw",
		acc.ScriptHash(), ec.trade, id, int64(1))
	cAcc.Invoke(t, int64(3), "balanceOf", acc.ScriptHash(), id)
}

func TestVaultSettlementGuard(t *testing.T) {
	e, ec := newEconomyInvokers(t)

	id := []byte("clay")
	newAsset(t, e, ec, id, "CLAY", 1)

	acc := e.NewAccount(t)
	mintAndDeposit(t, e, ec, acc, id, 5)

	cAcc := e.NewInvoker(ec.vault, acc)
	cAcc.InvokeFail(t, vault.ErrNotSettlement, "lock", acc.ScriptHash(), id, int64(1))
	cAcc.InvokeFail(t, vault.ErrNotSettlement, "unlock", acc.ScriptHash(), id, int64(1))
	cAcc.InvokeFail(t, vault.ErrNotSettlement, "transferLocked",
		acc.ScriptHash(), acc.ScriptHash(), id, int64(1))

	// Even the committee can't settle directly.
	e.CommitteeInvoker(ec.vault).InvokeFail(t, vault.ErrNotSettlement,
		"lock", acc.ScriptHash(), id, int64(1))
}

func TestVaultOnGameAssetPayment(t *testing.T) {
	e, ec := newEconomyInvokers(t)

	acc := e.NewAccount(t)
	e.NewInvoker(ec.vault, acc).InvokeFail(t, vault.ErrUnexpectedPayment,
		"onGameAssetPayment", acc.ScriptHash(), int64(1), []byte("ore"), nil)
}

func TestVaultAddSettlement(t *testing.T) {
	e, ec := newEconomyInvokers(t)
	c := e.CommitteeInvoker(ec.vault)

	acc := e.NewAccount(t)
	e.NewInvoker(ec.vault, acc).InvokeFail(t, "only committee", "addSettlement",
		acc.ScriptHash())
	c.InvokeFail(t, "incorrect length", "addSettlement", []byte{1, 2, 3})
	c.Invoke(t, nil, "addSettlement", acc.ScriptHash())
}

func TestVaultIterateBalances(t *testing.T) {
	e, ec := newEconomyInvokers(t)

	ids := [][]byte{[]byte("amber"), []byte("bone")}
	newAsset(t, e, ec, ids[0], "AMBR", 3)
	newAsset(t, e, ec, ids[1], "BONE", 2)

	acc := e.NewAccount(t)
	mintAndDeposit(t, e, ec, acc, ids[0], 4)
	mintAndDeposit(t, e, ec, acc, ids[1], 6)

	c := e.CommitteeInvoker(ec.vault)
	s, err := c.TestInvoke(t, "iterateBalances", acc.ScriptHash())
	require.NoError(t, err)

	iter := s.Pop().Value().(*storage.Iterator)
	items := iteratorToArray(iter)
	// Find yields raw key-value pairs, amounts come back as bigint bytes.
	require.ElementsMatch(t, []stackitem.Item{
		stackitem.NewStruct([]stackitem.Item{
			stackitem.Make(ids[0]), stackitem.Make([]byte{4}),
		}),
		stackitem.NewStruct([]stackitem.Item{
			stackitem.Make(ids[1]), stackitem.Make([]byte{6}),
		}),
	}, items)
}

// The sum of spendable and locked units inside the vault plus factory
// holdings outside it stays equal to the minted supply through the whole
// custody cycle.
func TestVaultConservation(t *testing.T) {
	e, ec := newEconomyInvokers(t)
	cFactory := e.CommitteeInvoker(ec.factory)

	id := []byte("jade")
	newAsset(t, e, ec, id, "JADE", 12)

	alice := e.NewAccount(t)
	bob := e.NewAccount(t)
	mintAndDeposit(t, e, ec, alice, id, 10)
	mintAndDeposit(t, e, ec, bob, id, 10)

	total := func() int64 {
		var sum int64
		c := e.CommitteeInvoker(ec.vault)
		for _, h := range []any{alice.ScriptHash(), bob.ScriptHash()} {
			s, err := c.TestInvoke(t, "balanceOf", h, id)
			require.NoError(t, err)
			sum += s.Pop().BigInt().Int64()
			s, err = c.TestInvoke(t, "lockedOf", h, id)
			require.NoError(t, err)
			sum += s.Pop().BigInt().Int64()
		}
		return sum
	}
	require.EqualValues(t, 20, total())

	// Locking through a settlement moves units between columns, never
	// creates or destroys them.
	cAlice := e.NewInvoker(ec.rental, alice)
	cAlice.Invoke(t, int64(1), "create", alice.ScriptHash(), id, int64(2))
	e.CommitteeInvoker(ec.vault).Invoke(t, int64(9), "balanceOf", alice.ScriptHash(), id)
	e.CommitteeInvoker(ec.vault).Invoke(t, int64(1), "lockedOf", alice.ScriptHash(), id)
	require.EqualValues(t, 20, total())

	cAlice.Invoke(t, nil, "cancel", int64(1))
	e.CommitteeInvoker(ec.vault).Invoke(t, int64(0), "lockedOf", alice.ScriptHash(), id)
	require.EqualValues(t, 20, total())

	// Withdrawal moves custody out, vault totals drop accordingly.
	e.NewInvoker(ec.vault, bob).Invoke(t, nil, "withdraw",
		bob.ScriptHash(), bob.ScriptHash(), id, int64(5))
	require.EqualValues(t, 15, total())
	cFactory.Invoke(t, int64(20), "supplyOf", id)
}

package tests

import (
	"testing"

	"github.com/emberforge/arcade-contract/common"
	"github.com/emberforge/arcade-contract/rental"
	"github.com/emberforge/arcade-contract/vault"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

var lampID = []byte("lamp")

func TestRentalCreate(t *testing.T) {
	e, ec := newEconomyInvokers(t)
	newAsset(t, e, ec, lampID, "LAMP", 7)

	owner := e.NewAccount(t)
	mintAndDeposit(t, e, ec, owner, lampID, 1)

	cOwner := e.NewInvoker(ec.rental, owner)
	cVault := e.CommitteeInvoker(ec.vault)

	cOwner.InvokeFail(t, rental.ErrNegativeAmount, "create",
		owner.ScriptHash(), lampID, int64(-1))

	stranger := e.NewAccount(t)
	e.NewInvoker(ec.rental, stranger).InvokeFail(t, common.ErrOwnerWitnessFailed,
		"create", owner.ScriptHash(), lampID, int64(3))

	cOwner.Invoke(t, int64(1), "create", owner.ScriptHash(), lampID, int64(3))
	cOwner.Invoke(t, int64(1), "count")
	cVault.Invoke(t, int64(0), "balanceOf", owner.ScriptHash(), lampID)
	cVault.Invoke(t, int64(1), "lockedOf", owner.ScriptHash(), lampID)

	cOwner.Invoke(t, stackitem.NewStruct([]stackitem.Item{
		stackitem.Make(owner.ScriptHash().BytesBE()),
		stackitem.Make(lampID),
		stackitem.Make(3),
		stackitem.Make(true),
	}), "get", int64(1))

	// The unit backing the listing can't be listed twice.
	cOwner.InvokeFail(t, vault.ErrInsufficientBalance, "create",
		owner.ScriptHash(), lampID, int64(3))

	cOwner.InvokeFail(t, rental.ErrNotExist, "get", int64(42))
}

func TestRentalCancel(t *testing.T) {
	e, ec := newEconomyInvokers(t)
	newAsset(t, e, ec, lampID, "LAMP", 7)

	owner := e.NewAccount(t)
	mintAndDeposit(t, e, ec, owner, lampID, 1)

	cOwner := e.NewInvoker(ec.rental, owner)
	cVault := e.CommitteeInvoker(ec.vault)

	cOwner.Invoke(t, int64(1), "create", owner.ScriptHash(), lampID, int64(3))

	stranger := e.NewAccount(t)
	e.NewInvoker(ec.rental, stranger).InvokeFail(t, rental.ErrNotOwner,
		"cancel", int64(1))

	cOwner.Invoke(t, nil, "cancel", int64(1))
	cVault.Invoke(t, int64(1), "balanceOf", owner.ScriptHash(), lampID)
	cVault.Invoke(t, int64(0), "lockedOf", owner.ScriptHash(), lampID)

	cOwner.InvokeFail(t, rental.ErrNotActive, "cancel", int64(1))
}

func TestRentalRent(t *testing.T) {
	e, ec := newEconomyInvokers(t)
	newAsset(t, e, ec, lampID, "LAMP", 7)

	owner := e.NewAccount(t)
	mintAndDeposit(t, e, ec, owner, lampID, 1)

	cOwner := e.NewInvoker(ec.rental, owner)
	cOwner.Invoke(t, int64(1), "create", owner.ScriptHash(), lampID, int64(3))

	renter := e.NewAccount(t)
	e.NewInvoker(ec.rental, renter).InvokeFail(t, rental.ErrNotImplemented,
		"rent", int64(1), renter.ScriptHash(), int64(2))
}

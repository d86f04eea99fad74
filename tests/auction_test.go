package tests

import (
	"testing"
	"time"

	"github.com/emberforge/arcade-contract/auction"
	"github.com/emberforge/arcade-contract/common"
	"github.com/emberforge/arcade-contract/vault"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

var relicID = []byte("relic")

const msPerHour = uint64(time.Hour / time.Millisecond)

// warpTime appends an empty block with the given timestamp so that
// subsequent invocations observe it as the current time.
func warpTime(t *testing.T, e *neotest.Executor, ts uint64) {
	b := e.NewUnsignedBlock(t)
	b.Timestamp = ts
	require.NoError(t, e.Chain.AddBlock(e.SignBlock(b)))
}

func setupAuction(t *testing.T, e *neotest.Executor, ec economy) (seller neotest.Signer, deadline int64) {
	newAsset(t, e, ec, relicID, "RELC", 50)
	newAsset(t, e, ec, currencyID, "GOLD", 1)

	seller = e.NewAccount(t)
	mintAndDeposit(t, e, ec, seller, relicID, 1)

	return seller, int64(e.TopBlock(t).Timestamp + msPerHour)
}

func newBidder(t *testing.T, e *neotest.Executor, ec economy, gold int64) neotest.Signer {
	acc := e.NewAccount(t)
	mintAndDeposit(t, e, ec, acc, currencyID, gold)
	return acc
}

func TestAuctionCreate(t *testing.T) {
	e, ec := newEconomyInvokers(t)
	seller, deadline := setupAuction(t, e, ec)

	cSeller := e.NewInvoker(ec.auction, seller)

	cSeller.InvokeFail(t, auction.ErrStyleNotSupported, "create",
		seller.ScriptHash(), relicID, int64(10), deadline, int64(1))
	cSeller.InvokeFail(t, auction.ErrNegativeAmount, "create",
		seller.ScriptHash(), relicID, int64(-1), deadline, int64(0))
	cSeller.InvokeFail(t, auction.ErrInvalidDeadline, "create",
		seller.ScriptHash(), relicID, int64(10), int64(1), int64(0))

	stranger := e.NewAccount(t)
	e.NewInvoker(ec.auction, stranger).InvokeFail(t, common.ErrOwnerWitnessFailed,
		"create", seller.ScriptHash(), relicID, int64(10), deadline, int64(0))

	cSeller.Invoke(t, int64(1), "create",
		seller.ScriptHash(), relicID, int64(10), deadline, int64(0))
	cSeller.Invoke(t, int64(1), "count")

	cVault := e.CommitteeInvoker(ec.vault)
	cVault.Invoke(t, int64(0), "balanceOf", seller.ScriptHash(), relicID)
	cVault.Invoke(t, int64(1), "lockedOf", seller.ScriptHash(), relicID)

	// The only unit is locked under auction #1 already.
	cSeller.InvokeFail(t, vault.ErrInsufficientBalance, "create",
		seller.ScriptHash(), relicID, int64(10), deadline, int64(0))

	cSeller.InvokeFail(t, auction.ErrNotExist, "get", int64(42))
	cSeller.InvokeFail(t, auction.ErrNotExist, "bids", int64(42))
}

func TestAuctionBidding(t *testing.T) {
	e, ec := newEconomyInvokers(t)
	seller, deadline := setupAuction(t, e, ec)

	e.NewInvoker(ec.auction, seller).Invoke(t, int64(1), "create",
		seller.ScriptHash(), relicID, int64(10), deadline, int64(0))

	bob := newBidder(t, e, ec, 100)
	carol := newBidder(t, e, ec, 100)

	cBob := e.NewInvoker(ec.auction, bob)
	cCarol := e.NewInvoker(ec.auction, carol)
	cVault := e.CommitteeInvoker(ec.vault)

	cBob.Invoke(t, nil, "placeBid", int64(1), bob.ScriptHash(), int64(20))
	bobTime := e.TopBlock(t).Timestamp
	cVault.Invoke(t, int64(80), "balanceOf", bob.ScriptHash(), currencyID)
	cVault.Invoke(t, int64(20), "lockedOf", bob.ScriptHash(), currencyID)

	// An equal bid is not an outbid.
	cCarol.InvokeFail(t, auction.ErrBidTooLow, "placeBid",
		int64(1), carol.ScriptHash(), int64(20))

	// Outbidding releases the previous highest bidder in the same call.
	cCarol.Invoke(t, nil, "placeBid", int64(1), carol.ScriptHash(), int64(25))
	carolTime := e.TopBlock(t).Timestamp
	cVault.Invoke(t, int64(100), "balanceOf", bob.ScriptHash(), currencyID)
	cVault.Invoke(t, int64(0), "lockedOf", bob.ScriptHash(), currencyID)
	cVault.Invoke(t, int64(25), "lockedOf", carol.ScriptHash(), currencyID)

	e.NewInvoker(ec.auction, seller).InvokeFail(t, auction.ErrSellerBid,
		"placeBid", int64(1), seller.ScriptHash(), int64(30))
	cBob.InvokeFail(t, common.ErrOwnerWitnessFailed, "placeBid",
		int64(1), carol.ScriptHash(), int64(30))

	// Bids above the spendable balance can't be backed.
	cBob.InvokeFail(t, vault.ErrInsufficientBalance, "placeBid",
		int64(1), bob.ScriptHash(), int64(101))

	cBob.Invoke(t, stackitem.NewArray([]stackitem.Item{
		stackitem.NewStruct([]stackitem.Item{
			stackitem.Make(bob.ScriptHash().BytesBE()),
			stackitem.Make(20),
			stackitem.Make(bobTime),
		}),
		stackitem.NewStruct([]stackitem.Item{
			stackitem.Make(carol.ScriptHash().BytesBE()),
			stackitem.Make(25),
			stackitem.Make(carolTime),
		}),
	}), "bids", int64(1))

	warpTime(t, e, uint64(deadline))
	cBob.InvokeFail(t, auction.ErrDeadlinePassed, "placeBid",
		int64(1), bob.ScriptHash(), int64(30))
}

func TestAuctionCancel(t *testing.T) {
	e, ec := newEconomyInvokers(t)
	seller, deadline := setupAuction(t, e, ec)

	cSeller := e.NewInvoker(ec.auction, seller)
	cVault := e.CommitteeInvoker(ec.vault)

	cSeller.Invoke(t, int64(1), "create",
		seller.ScriptHash(), relicID, int64(10), deadline, int64(0))

	stranger := e.NewAccount(t)
	e.NewInvoker(ec.auction, stranger).InvokeFail(t, auction.ErrNotSeller,
		"cancel", int64(1))

	cSeller.Invoke(t, nil, "cancel", int64(1))
	cVault.Invoke(t, int64(1), "balanceOf", seller.ScriptHash(), relicID)
	cVault.Invoke(t, int64(0), "lockedOf", seller.ScriptHash(), relicID)

	cSeller.InvokeFail(t, auction.ErrNotOpen, "cancel", int64(1))

	// A bid pins the asset until completion.
	cSeller.Invoke(t, int64(2), "create",
		seller.ScriptHash(), relicID, int64(10), deadline, int64(0))
	bob := newBidder(t, e, ec, 100)
	e.NewInvoker(ec.auction, bob).Invoke(t, nil, "placeBid",
		int64(2), bob.ScriptHash(), int64(15))
	cSeller.InvokeFail(t, auction.ErrHasBids, "cancel", int64(2))
}

func TestAuctionCompleteAndClaim(t *testing.T) {
	e, ec := newEconomyInvokers(t)
	seller, deadline := setupAuction(t, e, ec)

	cSeller := e.NewInvoker(ec.auction, seller)
	cVault := e.CommitteeInvoker(ec.vault)

	cSeller.Invoke(t, int64(1), "create",
		seller.ScriptHash(), relicID, int64(10), deadline, int64(0))

	bob := newBidder(t, e, ec, 100)
	carol := newBidder(t, e, ec, 100)
	e.NewInvoker(ec.auction, bob).Invoke(t, nil, "placeBid",
		int64(1), bob.ScriptHash(), int64(15))
	e.NewInvoker(ec.auction, carol).Invoke(t, nil, "placeBid",
		int64(1), carol.ScriptHash(), int64(30))

	cSeller.InvokeFail(t, auction.ErrDeadlineNotPassed, "complete", int64(1))

	warpTime(t, e, uint64(deadline))

	stranger := e.NewAccount(t)
	e.NewInvoker(ec.auction, stranger).InvokeFail(t, auction.ErrNotSeller,
		"complete", int64(1))

	cSeller.Invoke(t, nil, "complete", int64(1))
	cSeller.InvokeFail(t, auction.ErrNotOpen, "complete", int64(1))
	e.NewInvoker(ec.auction, bob).InvokeFail(t, auction.ErrNotOpen,
		"placeBid", int64(1), bob.ScriptHash(), int64(40))

	// Settlement happens on claim, not on completion.
	cVault.Invoke(t, int64(1), "lockedOf", seller.ScriptHash(), relicID)
	cVault.Invoke(t, int64(30), "lockedOf", carol.ScriptHash(), currencyID)

	e.NewInvoker(ec.auction, bob).InvokeFail(t, auction.ErrNotWinner,
		"claim", int64(1))

	cCarol := e.NewInvoker(ec.auction, carol)
	cCarol.Invoke(t, nil, "claim", int64(1))

	cVault.Invoke(t, int64(1), "balanceOf", carol.ScriptHash(), relicID)
	cVault.Invoke(t, int64(70), "balanceOf", carol.ScriptHash(), currencyID)
	cVault.Invoke(t, int64(0), "lockedOf", carol.ScriptHash(), currencyID)
	cVault.Invoke(t, int64(30), "balanceOf", seller.ScriptHash(), currencyID)
	cVault.Invoke(t, int64(0), "lockedOf", seller.ScriptHash(), relicID)

	cCarol.InvokeFail(t, auction.ErrAlreadyClaimed, "claim", int64(1))
}

func TestAuctionReserveNotMet(t *testing.T) {
	e, ec := newEconomyInvokers(t)
	seller, deadline := setupAuction(t, e, ec)

	cSeller := e.NewInvoker(ec.auction, seller)
	cVault := e.CommitteeInvoker(ec.vault)

	cSeller.Invoke(t, int64(1), "create",
		seller.ScriptHash(), relicID, int64(100), deadline, int64(0))

	bob := newBidder(t, e, ec, 100)
	e.NewInvoker(ec.auction, bob).Invoke(t, nil, "placeBid",
		int64(1), bob.ScriptHash(), int64(50))

	warpTime(t, e, uint64(deadline))
	cSeller.Invoke(t, nil, "complete", int64(1))

	// Both locks are released, nobody owes anything.
	cVault.Invoke(t, int64(1), "balanceOf", seller.ScriptHash(), relicID)
	cVault.Invoke(t, int64(0), "lockedOf", seller.ScriptHash(), relicID)
	cVault.Invoke(t, int64(100), "balanceOf", bob.ScriptHash(), currencyID)
	cVault.Invoke(t, int64(0), "lockedOf", bob.ScriptHash(), currencyID)

	e.NewInvoker(ec.auction, bob).InvokeFail(t, auction.ErrNotEnded, "claim", int64(1))
}

func TestAuctionCompleteNoBids(t *testing.T) {
	e, ec := newEconomyInvokers(t)
	seller, deadline := setupAuction(t, e, ec)

	cSeller := e.NewInvoker(ec.auction, seller)
	cVault := e.CommitteeInvoker(ec.vault)

	// Reserve price of zero still can't produce a winner out of thin air.
	cSeller.Invoke(t, int64(1), "create",
		seller.ScriptHash(), relicID, int64(0), deadline, int64(0))

	warpTime(t, e, uint64(deadline))
	cSeller.Invoke(t, nil, "complete", int64(1))

	cVault.Invoke(t, int64(1), "balanceOf", seller.ScriptHash(), relicID)
	cVault.Invoke(t, int64(0), "lockedOf", seller.ScriptHash(), relicID)
	cSeller.InvokeFail(t, auction.ErrNotEnded, "claim", int64(1))
}

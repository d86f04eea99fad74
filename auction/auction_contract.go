package auction

import (
	"github.com/emberforge/arcade-contract/common"
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

type (
	// Auction holds the full state of a single listing.
	Auction struct {
		// Account that listed the asset and locked one unit of it.
		Seller interop.Hash160
		// Listed asset, one unit.
		AssetID []byte
		// Minimum winning bid in currency units.
		ReservePrice int
		// Block timestamp (ms) from which the auction can be completed
		// and no longer accepts bids.
		Deadline int
		// One of the style* constants, only styleEnglish is supported.
		Style int
		// Highest accepted bid so far, zero when there are no bids.
		HighestBid int
		// Account behind HighestBid, empty when there are no bids.
		HighestBidder interop.Hash160
		// Fixed on completion from HighestBid/HighestBidder.
		WinningBid    int
		WinningBidder interop.Hash160
		// One of the status* constants.
		Status int
		// Set once the winner exercises Claim. Not a status value: a
		// claimed auction remains Ended.
		Claimed bool
	}

	// Bid is a single accepted bid, kept as append-only history.
	Bid struct {
		Bidder interop.Hash160
		Amount int
		// Block timestamp (ms) of acceptance.
		Time int
	}
)

const (
	statusOpen = iota
	statusCanceled
	statusEnded
	statusReserveNotMet
)

const (
	styleEnglish = iota
	styleDutch
	styleBlind
	styleCandle
)

const (
	// ErrNotExist is thrown when auction id doesn't exist.
	ErrNotExist = "auction doesn't exist"
	// ErrNotOpen is thrown on a transition of a non-open auction.
	ErrNotOpen = "auction is not open"
	// ErrNotSeller is thrown when cancel or complete is invoked by anybody
	// but the seller.
	ErrNotSeller = "not the auction seller"
	// ErrNotWinner is thrown when claim is invoked by anybody but the
	// winning bidder.
	ErrNotWinner = "not the winning bidder"
	// ErrNotEnded is thrown when claim is invoked before the auction ended
	// with the reserve met.
	ErrNotEnded = "auction is not ended"
	// ErrAlreadyClaimed is thrown on a second claim.
	ErrAlreadyClaimed = "auction is already claimed"
	// ErrStyleNotSupported is thrown for any style but the English one.
	ErrStyleNotSupported = "only English auctions are supported"
	// ErrDeadlinePassed is thrown when a bid arrives at or past the deadline.
	ErrDeadlinePassed = "auction deadline has passed"
	// ErrDeadlineNotPassed is thrown when complete is invoked before the
	// deadline.
	ErrDeadlineNotPassed = "auction deadline hasn't passed yet"
	// ErrInvalidDeadline is thrown when a new auction's deadline is not in
	// the future.
	ErrInvalidDeadline = "deadline must be in the future"
	// ErrBidTooLow is thrown when a bid doesn't strictly exceed the highest
	// one.
	ErrBidTooLow = "bid is not higher than the highest bid"
	// ErrSellerBid is thrown when the seller bids on their own auction.
	ErrSellerBid = "seller can't bid"
	// ErrHasBids is thrown when cancel is invoked after a bid was accepted.
	ErrHasBids = "auction already has bids"
	// ErrNegativeAmount is thrown when reserve price is negative.
	ErrNegativeAmount = "negative amount"
)

const (
	vaultKey    = 'v'
	currencyKey = 'm'
	counterKey  = 'c'

	auctionPrefix = 'a'
	bidsPrefix    = 'h'
)

// nolint:deadcode,unused
func _deploy(data interface{}, isUpdate bool) {
	ctx := storage.GetContext()
	if isUpdate {
		args := data.([]interface{})
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	args := data.(struct {
		addrVault  interop.Hash160
		currencyID []byte
	})

	if len(args.addrVault) != interop.Hash160Len {
		panic("incorrect length of vault script hash")
	}
	if len(args.currencyID) == 0 {
		panic("empty currency asset ID")
	}

	storage.Put(ctx, vaultKey, args.addrVault)
	storage.Put(ctx, currencyKey, args.currencyID)

	runtime.Log("auction contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by committee.
func Update(script []byte, manifest []byte, data interface{}) {
	if !common.HasUpdateAccess() {
		panic("only committee can update contract")
	}

	contract.Call(interop.Hash160(management.Hash), "update", contract.All,
		script, manifest, common.AppendVersion(data))
	runtime.Log("auction contract updated")
}

// Create lists one unit of the asset for an ascending open-bid auction. The
// unit is locked in the vault immediately; the seller must have deposited it
// beforehand. Deadline is an absolute block timestamp in milliseconds and
// must be in the future. Styles other than English are declared but not
// implemented. It can be invoked only by the seller. Returns the id of the
// new auction, ids start at 1.
//
// It produces AuctionCreated notification.
func Create(seller interop.Hash160, assetID []byte, reservePrice, deadline, style int) int {
	common.CheckOwnerWitness(seller)

	if style != styleEnglish {
		panic(ErrStyleNotSupported)
	}
	if reservePrice < 0 {
		panic(ErrNegativeAmount)
	}
	if deadline <= runtime.GetTime() {
		panic(ErrInvalidDeadline)
	}

	ctx := storage.GetContext()
	vaultLock(ctx, seller, assetID, 1)

	id := common.GetInt(ctx, counterKey) + 1
	storage.Put(ctx, counterKey, id)

	putAuction(ctx, id, Auction{
		Seller:       seller,
		AssetID:      assetID,
		ReservePrice: reservePrice,
		Deadline:     deadline,
		Style:        style,
		Status:       statusOpen,
	})

	runtime.Notify("AuctionCreated", id, seller, assetID, reservePrice, deadline)

	return id
}

// PlaceBid accepts a bid strictly higher than the current highest one while
// the auction is open and the deadline hasn't passed. The bid amount is
// locked from the bidder's currency balance in the vault; the previously
// highest bidder's lock is released in the same call. It can be invoked only
// by the bidder.
//
// It produces BidPlaced notification.
func PlaceBid(id int, bidder interop.Hash160, amount int) {
	common.CheckOwnerWitness(bidder)

	ctx := storage.GetContext()
	a := getAuction(ctx, id)
	if a.Status != statusOpen {
		panic(ErrNotOpen)
	}

	now := runtime.GetTime()
	if now >= a.Deadline {
		panic(ErrDeadlinePassed)
	}
	if amount <= a.HighestBid {
		panic(ErrBidTooLow)
	}
	if bidder.Equals(a.Seller) {
		panic(ErrSellerBid)
	}

	currency := getCurrency(ctx)
	vaultLock(ctx, bidder, currency, amount)
	if len(a.HighestBidder) == interop.Hash160Len {
		vaultUnlock(ctx, a.HighestBidder, currency, a.HighestBid)
	}

	a.HighestBid = amount
	a.HighestBidder = bidder
	putAuction(ctx, id, a)

	bids := getBids(ctx, id)
	bids = append(bids, Bid{Bidder: bidder, Amount: amount, Time: now})
	common.SetSerialized(ctx, bidsKey(id), bids)

	runtime.Notify("BidPlaced", id, bidder, amount)
}

// Cancel delists an open auction that has received no bids yet and releases
// the seller's locked asset. It can be invoked only by the seller.
//
// It produces AuctionCanceled notification.
func Cancel(id int) {
	ctx := storage.GetContext()
	a := getAuction(ctx, id)
	if a.Status != statusOpen {
		panic(ErrNotOpen)
	}
	if !runtime.CheckWitness(a.Seller) {
		panic(ErrNotSeller)
	}
	if len(a.HighestBidder) == interop.Hash160Len {
		panic(ErrHasBids)
	}

	vaultUnlock(ctx, a.Seller, a.AssetID, 1)

	a.Status = statusCanceled
	putAuction(ctx, id, a)

	runtime.Notify("AuctionCanceled", id)
}

// Complete closes an open auction once the deadline has passed. When the
// highest bid meets the reserve price, the auction ends and the winner is
// recorded for Claim. Otherwise both locks are released: the asset back to
// the seller, the highest bid (if any) back to its bidder. Completion is
// caller-triggered, not automatic; it can be invoked only by the seller.
//
// It produces AuctionEnded notification.
func Complete(id int) {
	ctx := storage.GetContext()
	a := getAuction(ctx, id)
	if a.Status != statusOpen {
		panic(ErrNotOpen)
	}
	if !runtime.CheckWitness(a.Seller) {
		panic(ErrNotSeller)
	}
	if runtime.GetTime() < a.Deadline {
		panic(ErrDeadlineNotPassed)
	}

	if len(a.HighestBidder) != interop.Hash160Len || a.HighestBid < a.ReservePrice {
		vaultUnlock(ctx, a.Seller, a.AssetID, 1)
		if len(a.HighestBidder) == interop.Hash160Len {
			vaultUnlock(ctx, a.HighestBidder, getCurrency(ctx), a.HighestBid)
		}
		a.Status = statusReserveNotMet
	} else {
		a.WinningBid = a.HighestBid
		a.WinningBidder = a.HighestBidder
		a.Status = statusEnded
	}

	putAuction(ctx, id, a)

	runtime.Notify("AuctionEnded", id, a.Status)
}

// Claim settles an ended auction: the locked winning bid moves to the
// seller's currency balance and the locked asset unit moves to the winner.
// It can be invoked only by the winning bidder and only once.
//
// It produces Claimed notification.
func Claim(id int) {
	ctx := storage.GetContext()
	a := getAuction(ctx, id)
	if a.Status != statusEnded {
		panic(ErrNotEnded)
	}
	if a.Claimed {
		panic(ErrAlreadyClaimed)
	}
	if !runtime.CheckWitness(a.WinningBidder) {
		panic(ErrNotWinner)
	}

	vaultTransferLocked(ctx, a.WinningBidder, a.Seller, getCurrency(ctx), a.WinningBid)
	vaultTransferLocked(ctx, a.Seller, a.WinningBidder, a.AssetID, 1)

	a.Claimed = true
	putAuction(ctx, id, a)

	runtime.Notify("Claimed", id, a.WinningBidder, a.WinningBid)
}

// Get returns the auction record. Records are kept forever, terminal ones
// included.
func Get(id int) Auction {
	return getAuction(storage.GetReadOnlyContext(), id)
}

// Bids returns the append-only bid history of the auction.
func Bids(id int) []Bid {
	ctx := storage.GetReadOnlyContext()
	getAuction(ctx, id) // existence check
	return getBids(ctx, id)
}

// Count returns the total number of auctions ever created.
func Count() int {
	return common.GetInt(storage.GetReadOnlyContext(), counterKey)
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func auctionKey(id int) []byte {
	return append([]byte{auctionPrefix}, std.Itoa(id, 10)...)
}

func bidsKey(id int) []byte {
	return append([]byte{bidsPrefix}, std.Itoa(id, 10)...)
}

func getAuction(ctx storage.Context, id int) Auction {
	data := storage.Get(ctx, auctionKey(id))
	if data == nil {
		panic(ErrNotExist)
	}

	return std.Deserialize(data.([]byte)).(Auction)
}

func putAuction(ctx storage.Context, id int, a Auction) {
	common.SetSerialized(ctx, auctionKey(id), a)
}

func getBids(ctx storage.Context, id int) []Bid {
	data := storage.Get(ctx, bidsKey(id))
	if data == nil {
		return []Bid{}
	}

	return std.Deserialize(data.([]byte)).([]Bid)
}

func getVault(ctx storage.Context) interop.Hash160 {
	return storage.Get(ctx, vaultKey).(interop.Hash160)
}

func getCurrency(ctx storage.Context) []byte {
	return storage.Get(ctx, currencyKey).([]byte)
}

func vaultLock(ctx storage.Context, account interop.Hash160, id []byte, amount int) {
	contract.Call(getVault(ctx), "lock", contract.All, account, id, amount)
}

func vaultUnlock(ctx storage.Context, account interop.Hash160, id []byte, amount int) {
	contract.Call(getVault(ctx), "unlock", contract.All, account, id, amount)
}

func vaultTransferLocked(ctx storage.Context, from, to interop.Hash160, id []byte, amount int) {
	contract.Call(getVault(ctx), "transferLocked", contract.All, from, to, id, amount)
}

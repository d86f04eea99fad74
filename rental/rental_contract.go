package rental

import (
	"github.com/emberforge/arcade-contract/common"
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// Listing is a rental offer for a single asset unit.
type Listing struct {
	// Account that listed the asset and locked one unit of it.
	Owner interop.Hash160
	// Listed asset, one unit.
	AssetID []byte
	// Rent in currency units per epoch.
	PricePerEpoch int
	// True until the listing is canceled.
	Active bool
}

const (
	// ErrNotExist is thrown when listing id doesn't exist.
	ErrNotExist = "listing doesn't exist"
	// ErrNotActive is thrown when the listing has been canceled already.
	ErrNotActive = "listing is not active"
	// ErrNotOwner is thrown when cancel is invoked by anybody but the owner.
	ErrNotOwner = "not the listing owner"
	// ErrNotImplemented is thrown by the settlement methods.
	ErrNotImplemented = "rental settlement is not implemented yet"
	// ErrNegativeAmount is thrown when price is negative.
	ErrNegativeAmount = "negative amount"
)

const (
	vaultKey   = 'v'
	counterKey = 'c'

	listingPrefix = 'r'
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
		addrVault interop.Hash160
	})

	if len(args.addrVault) != interop.Hash160Len {
		panic("incorrect length of vault script hash")
	}

	storage.Put(ctx, vaultKey, args.addrVault)

	runtime.Log("rental contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by committee.
func Update(script []byte, manifest []byte, data interface{}) {
	if !common.HasUpdateAccess() {
		panic("only committee can update contract")
	}

	contract.Call(interop.Hash160(management.Hash), "update", contract.All,
		script, manifest, common.AppendVersion(data))
	runtime.Log("rental contract updated")
}

// Create lists one unit of the asset for rent and locks it in the vault. It
// can be invoked only by the owner. Returns the id of the new listing, ids
// start at 1.
//
// It produces ListingCreated notification.
func Create(owner interop.Hash160, assetID []byte, pricePerEpoch int) int {
	common.CheckOwnerWitness(owner)

	if pricePerEpoch < 0 {
		panic(ErrNegativeAmount)
	}

	ctx := storage.GetContext()
	contract.Call(getVault(ctx), "lock", contract.All, owner, assetID, 1)

	id := common.GetInt(ctx, counterKey) + 1
	storage.Put(ctx, counterKey, id)

	common.SetSerialized(ctx, listingKey(id), Listing{
		Owner:         owner,
		AssetID:       assetID,
		PricePerEpoch: pricePerEpoch,
		Active:        true,
	})

	runtime.Notify("ListingCreated", id, owner, assetID, pricePerEpoch)

	return id
}

// Cancel delists an active listing and releases the owner's locked asset. It
// can be invoked only by the owner.
//
// It produces ListingCanceled notification.
func Cancel(id int) {
	ctx := storage.GetContext()
	l := getListing(ctx, id)
	if !l.Active {
		panic(ErrNotActive)
	}
	if !runtime.CheckWitness(l.Owner) {
		panic(ErrNotOwner)
	}

	contract.Call(getVault(ctx), "unlock", contract.All, l.Owner, l.AssetID, 1)

	l.Active = false
	common.SetSerialized(ctx, listingKey(id), l)

	runtime.Notify("ListingCanceled", id)
}

// Rent will hand the listed asset to the renter for the paid number of
// epochs. Rental settlement hasn't been designed yet, the method is declared
// for the wire format only.
func Rent(id int, renter interop.Hash160, epochs int) {
	panic(ErrNotImplemented)
}

// Get returns the listing record.
func Get(id int) Listing {
	return getListing(storage.GetReadOnlyContext(), id)
}

// Count returns the total number of listings ever created.
func Count() int {
	return common.GetInt(storage.GetReadOnlyContext(), counterKey)
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func listingKey(id int) []byte {
	return append([]byte{listingPrefix}, std.Itoa(id, 10)...)
}

func getListing(ctx storage.Context, id int) Listing {
	data := storage.Get(ctx, listingKey(id))
	if data == nil {
		panic(ErrNotExist)
	}

	return std.Deserialize(data.([]byte)).(Listing)
}

func getVault(ctx storage.Context) interop.Hash160 {
	return storage.Get(ctx, vaultKey).(interop.Hash160)
}

package factory

import (
	"github.com/emberforge/arcade-contract/common"
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// Asset holds registry information about a single game asset class.
type Asset struct {
	// Asset identifier, 1..32 bytes.
	ID []byte
	// Human readable ticker.
	Symbol string
	// Shop price in currency units, informational.
	Price int
	// Total minted amount still in circulation.
	Supply int
}

const (
	// ErrInvalidAssetID is thrown when asset id is empty or longer than 32 bytes.
	ErrInvalidAssetID = "invalid asset ID"
	// ErrAssetExists is thrown when asset id has been registered before.
	ErrAssetExists = "asset already exists"
	// ErrAssetNotExist is thrown when asset id is not registered.
	ErrAssetNotExist = "asset doesn't exist"
	// ErrInsufficientBalance is thrown when the sender doesn't hold enough units.
	ErrInsufficientBalance = "insufficient asset balance"
	// ErrArraysLengthMismatch is thrown by batch methods when id and amount
	// arrays have different lengths.
	ErrArraysLengthMismatch = "arrays length mismatch"
	// ErrNegativeAmount is thrown when amount is negative.
	ErrNegativeAmount = "negative amount"
)

const (
	assetPrefix  = 'a'
	holderPrefix = 'h'

	maxAssetIDLen = 32
)

// OnGameAssetPayment is the method name invoked on contract recipients of an
// asset transfer. Recipients unwilling to accept the asset must panic.
const OnGameAssetPayment = "onGameAssetPayment"

// nolint:deadcode,unused
func _deploy(data interface{}, isUpdate bool) {
	if isUpdate {
		args := data.([]interface{})
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	runtime.Log("factory contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by committee.
func Update(script []byte, manifest []byte, data interface{}) {
	if !common.HasUpdateAccess() {
		panic("only committee can update contract")
	}

	contract.Call(interop.Hash160(management.Hash), "update", contract.All,
		script, manifest, common.AppendVersion(data))
	runtime.Log("factory contract updated")
}

// NewAsset registers a new asset class with the given id, ticker symbol and
// shop price. It can be invoked only by committee. Produces AssetCreated
// notification.
func NewAsset(id []byte, symbol string, price int) {
	common.CheckCommitteeWitness()

	if len(id) == 0 || len(id) > maxAssetIDLen {
		panic(ErrInvalidAssetID)
	}
	if price < 0 {
		panic(ErrNegativeAmount)
	}

	ctx := storage.GetContext()
	key := append([]byte{assetPrefix}, id...)
	if storage.Get(ctx, key) != nil {
		panic(ErrAssetExists)
	}

	common.SetSerialized(ctx, key, Asset{
		ID:     id,
		Symbol: symbol,
		Price:  price,
		Supply: 0,
	})

	runtime.Notify("AssetCreated", id, symbol, price)
}

// Mint creates amount units of the asset on the receiver account. It can be
// invoked only by committee. Produces Mint and Transfer notifications.
func Mint(to interop.Hash160, id []byte, amount int) {
	common.CheckCommitteeWitness()

	if amount < 0 {
		panic(ErrNegativeAmount)
	}

	ctx := storage.GetContext()
	asset := getAsset(ctx, id)
	asset.Supply += amount
	common.SetSerialized(ctx, append([]byte{assetPrefix}, id...), asset)

	addBalance(ctx, to, id, amount)

	runtime.Notify("Mint", to, id, amount)
	runtime.Notify("Transfer", interop.Hash160(nil), to, id, amount)
}

// Burn destroys amount units of the asset held by the from account. It can be
// invoked only by committee. Produces Burn and Transfer notifications.
func Burn(from interop.Hash160, id []byte, amount int) {
	common.CheckCommitteeWitness()

	if amount < 0 {
		panic(ErrNegativeAmount)
	}

	ctx := storage.GetContext()
	subBalance(ctx, from, id, amount)

	asset := getAsset(ctx, id)
	if asset.Supply < amount {
		panic("negative supply after burn")
	}
	asset.Supply -= amount
	common.SetSerialized(ctx, append([]byte{assetPrefix}, id...), asset)

	runtime.Notify("Burn", from, id, amount)
	runtime.Notify("Transfer", from, interop.Hash160(nil), id, amount)
}

// Transfer moves amount units of the asset from one account to another. It can
// be invoked by the sender or by a contract acting as the sender. Returns
// false when the sender doesn't hold enough units or addresses are malformed.
//
// If the receiver is a deployed contract, its onGameAssetPayment method is
// invoked after balances are updated; a missing or panicking handler aborts
// the whole transfer.
//
// It produces Transfer notification.
func Transfer(from, to interop.Hash160, id []byte, amount int, data interface{}) bool {
	ctx := storage.GetContext()
	return transferInternal(ctx, from, to, id, amount, data)
}

// TransferBatch is a vectorized Transfer over several asset ids at once. All
// entries are applied or none: any insufficient entry aborts the transaction.
// It panics with ErrArraysLengthMismatch when ids and amounts lengths differ.
//
// It produces Transfer notification per entry.
func TransferBatch(from, to interop.Hash160, ids [][]byte, amounts []int, data interface{}) bool {
	if len(ids) != len(amounts) {
		panic(ErrArraysLengthMismatch)
	}

	if !isUsableAddress(from) || len(to) != interop.Hash160Len {
		return false
	}

	ctx := storage.GetContext()
	for i := range ids {
		if amounts[i] < 0 {
			panic(ErrNegativeAmount)
		}
		// Abort instead of returning false: prior iterations may have
		// mutated balances already and must be rolled back.
		subBalance(ctx, from, ids[i], amounts[i])
		addBalance(ctx, to, ids[i], amounts[i])
	}

	for i := range ids {
		runtime.Notify("Transfer", from, to, ids[i], amounts[i])
	}

	postTransfer(from, to, ids, amounts, data)

	return true
}

// BalanceOf returns the amount of the asset held by the owner account.
func BalanceOf(owner interop.Hash160, id []byte) int {
	ctx := storage.GetReadOnlyContext()
	return getBalance(ctx, owner, id)
}

// SupplyOf returns the total circulating amount of the asset.
func SupplyOf(id []byte) int {
	ctx := storage.GetReadOnlyContext()
	return getAsset(ctx, id).Supply
}

// PriceOf returns the shop price of the asset.
func PriceOf(id []byte) int {
	ctx := storage.GetReadOnlyContext()
	return getAsset(ctx, id).Price
}

// AssetOf returns the full registry record of the asset.
func AssetOf(id []byte) Asset {
	ctx := storage.GetReadOnlyContext()
	return getAsset(ctx, id)
}

// SetPrice updates the shop price of the asset. It can be invoked only by
// committee. Produces PriceUpdated notification.
func SetPrice(id []byte, price int) {
	common.CheckCommitteeWitness()

	if price < 0 {
		panic(ErrNegativeAmount)
	}

	ctx := storage.GetContext()
	asset := getAsset(ctx, id)
	asset.Price = price
	common.SetSerialized(ctx, append([]byte{assetPrefix}, id...), asset)

	runtime.Notify("PriceUpdated", id, price)
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func transferInternal(ctx storage.Context, from, to interop.Hash160, id []byte, amount int, data interface{}) bool {
	if amount < 0 {
		panic(ErrNegativeAmount)
	}

	if !isUsableAddress(from) || len(to) != interop.Hash160Len {
		runtime.Log("bad script hashes")
		return false
	}

	balance := getBalance(ctx, from, id)
	if balance < amount {
		runtime.Log("not enough assets")
		return false
	}

	setBalance(ctx, from, id, balance-amount)
	addBalance(ctx, to, id, amount)

	runtime.Notify("Transfer", from, to, id, amount)

	postTransfer(from, to, [][]byte{id}, []int{amount}, data)

	return true
}

// postTransfer invokes the receiver-acknowledgement hook on contract
// recipients. Balances are already settled at this point, so a reentrant
// call observes a consistent state.
func postTransfer(from, to interop.Hash160, ids [][]byte, amounts []int, data interface{}) {
	if management.GetContract(to) == nil {
		return
	}

	for i := range ids {
		contract.Call(to, OnGameAssetPayment, contract.All, from, amounts[i], ids[i], data)
	}
}

// isUsableAddress checks if the sender is either a correct account address or
// a calling smart contract.
func isUsableAddress(addr interop.Hash160) bool {
	if len(addr) == interop.Hash160Len {
		if runtime.CheckWitness(addr) {
			return true
		}

		callingScriptHash := runtime.GetCallingScriptHash()
		if callingScriptHash.Equals(addr) {
			return true
		}
	}

	return false
}

func getAsset(ctx storage.Context, id []byte) Asset {
	data := storage.Get(ctx, append([]byte{assetPrefix}, id...))
	if data == nil {
		panic(ErrAssetNotExist)
	}

	return std.Deserialize(data.([]byte)).(Asset)
}

func holderKey(owner interop.Hash160, id []byte) []byte {
	return append(append([]byte{holderPrefix}, owner...), id...)
}

func getBalance(ctx storage.Context, owner interop.Hash160, id []byte) int {
	return common.GetInt(ctx, holderKey(owner, id))
}

func setBalance(ctx storage.Context, owner interop.Hash160, id []byte, amount int) {
	key := holderKey(owner, id)
	if amount == 0 {
		storage.Delete(ctx, key)
	} else {
		storage.Put(ctx, key, amount)
	}
}

func addBalance(ctx storage.Context, owner interop.Hash160, id []byte, amount int) {
	setBalance(ctx, owner, id, getBalance(ctx, owner, id)+amount)
}

// subBalance performs the sufficiency check before any mutation.
func subBalance(ctx storage.Context, owner interop.Hash160, id []byte, amount int) {
	balance := getBalance(ctx, owner, id)
	if balance < amount {
		panic(ErrInsufficientBalance)
	}
	setBalance(ctx, owner, id, balance-amount)
}

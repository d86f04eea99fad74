package vault

import (
	"github.com/emberforge/arcade-contract/common"
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

const (
	// ErrInsufficientBalance is thrown when the account doesn't hold enough
	// spendable units of the asset.
	ErrInsufficientBalance = "vault: insufficient balance"
	// ErrInsufficientLocked is thrown when the account doesn't hold enough
	// locked units of the asset.
	ErrInsufficientLocked = "vault: insufficient locked balance"
	// ErrArraysLengthMismatch is thrown by batch methods when id and amount
	// arrays have different lengths.
	ErrArraysLengthMismatch = "arrays length mismatch"
	// ErrNegativeAmount is thrown when amount is negative.
	ErrNegativeAmount = "negative amount"
	// ErrNotSettlement is thrown when lock, unlock or transferLocked is
	// invoked by anything but a registered settlement contract.
	ErrNotSettlement = "caller is not a settlement contract"
	// ErrFactoryTransfer is thrown when the factory refuses a custody
	// transfer, e.g. when the depositor doesn't hold enough in the factory.
	ErrFactoryTransfer = "factory transfer failed"
	// ErrUnexpectedPayment is thrown when an asset payment arrives from
	// anything but the factory contract.
	ErrUnexpectedPayment = "unexpected asset payment"
)

const (
	factoryKey = 'f'

	balancePrefix    = 'b'
	lockedPrefix     = 'l'
	settlementPrefix = 's'
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
		addrFactory interop.Hash160
		settlements []interop.Hash160
	})

	if len(args.addrFactory) != interop.Hash160Len {
		panic("incorrect length of factory script hash")
	}

	storage.Put(ctx, factoryKey, args.addrFactory)

	for _, h := range args.settlements {
		if len(h) != interop.Hash160Len {
			panic("incorrect length of settlement script hash")
		}
		storage.Put(ctx, append([]byte{settlementPrefix}, h...), true)
	}

	runtime.Log("vault contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by committee.
func Update(script []byte, manifest []byte, data interface{}) {
	if !common.HasUpdateAccess() {
		panic("only committee can update contract")
	}

	contract.Call(interop.Hash160(management.Hash), "update", contract.All,
		script, manifest, common.AppendVersion(data))
	runtime.Log("vault contract updated")
}

// AddSettlement registers a new settlement contract allowed to lock, unlock
// and settle balances. It can be invoked only by committee.
func AddSettlement(addr interop.Hash160) {
	common.CheckCommitteeWitness()

	if len(addr) != interop.Hash160Len {
		panic("incorrect length of settlement script hash")
	}

	storage.Put(storage.GetContext(), append([]byte{settlementPrefix}, addr...), true)
}

// Deposit pulls amount units of the asset from the depositor's factory
// holdings into vault custody and credits the depositor's vault balance. It
// can be invoked only by the depositor. Panics with ErrFactoryTransfer when
// the factory refuses the pull.
//
// It produces Deposit notification.
func Deposit(from interop.Hash160, id []byte, amount int) {
	common.CheckOwnerWitness(from)
	if amount < 0 {
		panic(ErrNegativeAmount)
	}

	ctx := storage.GetContext()
	factoryTransfer(ctx, from, runtime.GetExecutingScriptHash(), id, amount,
		common.DepositDetails([]byte{}))

	addBalance(ctx, balancePrefix, from, id, amount)

	runtime.Notify("Deposit", from, id, amount)
}

// DepositBatch is a vectorized Deposit over several asset ids at once. The
// underlying factory pull is a single atomic call, so either every entry is
// credited or none. Panics with ErrArraysLengthMismatch when ids and amounts
// lengths differ.
//
// It produces Deposit notification per entry.
func DepositBatch(from interop.Hash160, ids [][]byte, amounts []int) {
	if len(ids) != len(amounts) {
		panic(ErrArraysLengthMismatch)
	}
	common.CheckOwnerWitness(from)

	ctx := storage.GetContext()
	factory := getFactory(ctx)
	ok := contract.Call(factory, "transferBatch", contract.All,
		from, runtime.GetExecutingScriptHash(), ids, amounts, common.DepositDetails([]byte{})).(bool)
	if !ok {
		panic(ErrFactoryTransfer)
	}

	for i := range ids {
		if amounts[i] < 0 {
			panic(ErrNegativeAmount)
		}
		addBalance(ctx, balancePrefix, from, ids[i], amounts[i])
		runtime.Notify("Deposit", from, ids[i], amounts[i])
	}
}

// Withdraw debits the owner's vault balance and pushes amount units of the
// asset out of custody to the receiver's factory holdings. It can be invoked
// only by the owner. The balance is debited before the factory push, so a
// reentrant call can never observe funds both in the vault and outside it.
//
// It produces Withdraw notification.
func Withdraw(from, to interop.Hash160, id []byte, amount int) {
	common.CheckOwnerWitness(from)
	if amount < 0 {
		panic(ErrNegativeAmount)
	}

	ctx := storage.GetContext()
	subBalance(ctx, balancePrefix, from, id, amount, ErrInsufficientBalance)

	factoryTransfer(ctx, runtime.GetExecutingScriptHash(), to, id, amount,
		common.WithdrawDetails([]byte{}))

	runtime.Notify("Withdraw", from, to, id, amount)
}

// Lock reserves amount units of the account's spendable balance to back a
// pending settlement. It can be invoked only by a registered settlement
// contract. No custody leaves the vault.
//
// It produces Lock notification.
func Lock(account interop.Hash160, id []byte, amount int) {
	ctx := storage.GetContext()
	checkSettlement(ctx)
	if amount < 0 {
		panic(ErrNegativeAmount)
	}

	subBalance(ctx, balancePrefix, account, id, amount, ErrInsufficientBalance)
	addBalance(ctx, lockedPrefix, account, id, amount)

	runtime.Notify("Lock", account, id, amount)
}

// Unlock releases amount units of the account's locked balance back to the
// spendable one. It can be invoked only by a registered settlement contract.
//
// It produces Unlock notification.
func Unlock(account interop.Hash160, id []byte, amount int) {
	ctx := storage.GetContext()
	checkSettlement(ctx)
	if amount < 0 {
		panic(ErrNegativeAmount)
	}

	subBalance(ctx, lockedPrefix, account, id, amount, ErrInsufficientLocked)
	addBalance(ctx, balancePrefix, account, id, amount)

	runtime.Notify("Unlock", account, id, amount)
}

// TransferLocked moves amount units from one account's locked balance into
// another account's spendable balance. This is the settlement primitive
// executed when a proposal or auction resolves. It can be invoked only by a
// registered settlement contract.
//
// It produces Settle notification.
func TransferLocked(from, to interop.Hash160, id []byte, amount int) {
	ctx := storage.GetContext()
	checkSettlement(ctx)
	if amount < 0 {
		panic(ErrNegativeAmount)
	}

	subBalance(ctx, lockedPrefix, from, id, amount, ErrInsufficientLocked)
	addBalance(ctx, balancePrefix, to, id, amount)

	runtime.Notify("Settle", from, to, id, amount)
}

// BalanceOf returns the spendable vault balance of the account for the asset.
func BalanceOf(account interop.Hash160, id []byte) int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, accountKey(balancePrefix, account, id))
}

// LockedOf returns the locked vault balance of the account for the asset.
func LockedOf(account interop.Hash160, id []byte) int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, accountKey(lockedPrefix, account, id))
}

// IterateBalances returns an iterator over all spendable balances of the
// account. Iteration is through key-value pairs where key is the asset id
// and value is the amount.
func IterateBalances(account interop.Hash160) iterator.Iterator {
	return storage.Find(storage.GetReadOnlyContext(),
		append([]byte{balancePrefix}, account...), storage.RemovePrefix)
}

// OnGameAssetPayment is the factory receiver-acknowledgement hook. The vault
// accepts custody transfers from the factory contract only.
func OnGameAssetPayment(from interop.Hash160, amount int, id []byte, data interface{}) {
	caller := runtime.GetCallingScriptHash()
	factory := getFactory(storage.GetReadOnlyContext())
	if !caller.Equals(factory) {
		panic(ErrUnexpectedPayment)
	}
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func getFactory(ctx storage.Context) interop.Hash160 {
	return storage.Get(ctx, factoryKey).(interop.Hash160)
}

func checkSettlement(ctx storage.Context) {
	caller := runtime.GetCallingScriptHash()
	if storage.Get(ctx, append([]byte{settlementPrefix}, caller...)) == nil {
		panic(ErrNotSettlement)
	}
}

func factoryTransfer(ctx storage.Context, from, to interop.Hash160, id []byte, amount int, details []byte) {
	factory := getFactory(ctx)
	ok := contract.Call(factory, "transfer", contract.All, from, to, id, amount, details).(bool)
	if !ok {
		panic(ErrFactoryTransfer)
	}
}

func accountKey(prefix byte, account interop.Hash160, id []byte) []byte {
	return append(append([]byte{prefix}, account...), id...)
}

// subBalance performs the sufficiency check before any mutation. Balance
// entries resting at zero are removed from storage.
func subBalance(ctx storage.Context, prefix byte, account interop.Hash160, id []byte, amount int, errMsg string) {
	key := accountKey(prefix, account, id)
	balance := common.GetInt(ctx, key)
	if balance < amount {
		panic(errMsg)
	}

	if balance == amount {
		storage.Delete(ctx, key)
	} else {
		storage.Put(ctx, key, balance-amount)
	}
}

func addBalance(ctx storage.Context, prefix byte, account interop.Hash160, id []byte, amount int) {
	key := accountKey(prefix, account, id)
	storage.Put(ctx, key, common.GetInt(ctx, key)+amount)
}

package trade

import (
	"github.com/emberforge/arcade-contract/common"
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// Proposal is a pending bilateral exchange offer between two accounts.
type Proposal struct {
	// Account that created the proposal and locked the offered asset.
	Proposer interop.Hash160
	// Account allowed to accept or reject the proposal.
	Counterparty interop.Hash160
	// Asset the proposer gives away, one unit.
	OfferedID []byte
	// Asset the proposer wants in return, one unit.
	RequestedID []byte
	// One of the status* constants.
	Status int
}

const (
	statusPending = iota
	statusApproved
	statusRejected
	statusCanceled
)

const (
	// ErrNotExist is thrown when proposal id doesn't exist.
	ErrNotExist = "proposal doesn't exist"
	// ErrNotPending is thrown on a transition out of a terminal status.
	ErrNotPending = "proposal is not pending"
	// ErrNotCounterparty is thrown when accept or reject is invoked by
	// anybody but the designated counterparty.
	ErrNotCounterparty = "not the proposal counterparty"
	// ErrNotProposer is thrown when cancel is invoked by anybody but the
	// proposer.
	ErrNotProposer = "not the proposal proposer"
	// ErrSelfTrade is thrown when proposer and counterparty are the same
	// account.
	ErrSelfTrade = "can't trade with self"
)

const (
	vaultKey   = 'v'
	counterKey = 'c'

	proposalPrefix = 'p'
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

	runtime.Log("trade contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by committee.
func Update(script []byte, manifest []byte, data interface{}) {
	if !common.HasUpdateAccess() {
		panic("only committee can update contract")
	}

	contract.Call(interop.Hash160(management.Hash), "update", contract.All,
		script, manifest, common.AppendVersion(data))
	runtime.Log("trade contract updated")
}

// Create opens a new trade proposal offering one unit of the offered asset to
// the counterparty in exchange for one unit of the requested asset. One unit
// of the offered asset is locked in the vault immediately; the proposer must
// have deposited it beforehand. It can be invoked only by the proposer.
// Returns the id of the new proposal, ids start at 1.
//
// It produces TradeCreated notification.
func Create(proposer, counterparty interop.Hash160, offeredID, requestedID []byte) int {
	common.CheckOwnerWitness(proposer)

	if len(counterparty) != interop.Hash160Len {
		panic("incorrect length of counterparty script hash")
	}
	if proposer.Equals(counterparty) {
		panic(ErrSelfTrade)
	}

	ctx := storage.GetContext()
	vaultLock(ctx, proposer, offeredID, 1)

	id := common.GetInt(ctx, counterKey) + 1
	storage.Put(ctx, counterKey, id)

	common.SetSerialized(ctx, proposalKey(id), Proposal{
		Proposer:     proposer,
		Counterparty: counterparty,
		OfferedID:    offeredID,
		RequestedID:  requestedID,
		Status:       statusPending,
	})

	runtime.Notify("TradeCreated", id, proposer, counterparty, offeredID, requestedID)

	return id
}

// Accept approves a pending proposal. One unit of the requested asset is
// locked from the counterparty's vault balance and both locked units swap
// owners atomically. It can be invoked only by the counterparty and only
// while the proposal is pending.
//
// It produces TradeAccepted notification.
func Accept(id int) {
	ctx := storage.GetContext()
	p := getProposal(ctx, id)
	if p.Status != statusPending {
		panic(ErrNotPending)
	}
	if !runtime.CheckWitness(p.Counterparty) {
		panic(ErrNotCounterparty)
	}

	vaultTransferLocked(ctx, p.Proposer, p.Counterparty, p.OfferedID, 1)
	vaultLock(ctx, p.Counterparty, p.RequestedID, 1)
	vaultTransferLocked(ctx, p.Counterparty, p.Proposer, p.RequestedID, 1)

	p.Status = statusApproved
	common.SetSerialized(ctx, proposalKey(id), p)

	runtime.Notify("TradeAccepted", id)
}

// Reject declines a pending proposal and releases the proposer's locked
// asset back to them. It can be invoked only by the counterparty and only
// while the proposal is pending.
//
// It produces TradeRejected notification.
func Reject(id int) {
	ctx := storage.GetContext()
	p := getProposal(ctx, id)
	if p.Status != statusPending {
		panic(ErrNotPending)
	}
	if !runtime.CheckWitness(p.Counterparty) {
		panic(ErrNotCounterparty)
	}

	vaultUnlock(ctx, p.Proposer, p.OfferedID, 1)

	p.Status = statusRejected
	common.SetSerialized(ctx, proposalKey(id), p)

	runtime.Notify("TradeRejected", id)
}

// Cancel withdraws a pending proposal and releases the proposer's locked
// asset back to them. It can be invoked only by the proposer and only while
// the proposal is pending.
//
// It produces TradeCanceled notification.
func Cancel(id int) {
	ctx := storage.GetContext()
	p := getProposal(ctx, id)
	if p.Status != statusPending {
		panic(ErrNotPending)
	}
	if !runtime.CheckWitness(p.Proposer) {
		panic(ErrNotProposer)
	}

	vaultUnlock(ctx, p.Proposer, p.OfferedID, 1)

	p.Status = statusCanceled
	common.SetSerialized(ctx, proposalKey(id), p)

	runtime.Notify("TradeCanceled", id)
}

// Get returns the proposal record. Records are kept forever, terminal ones
// included.
func Get(id int) Proposal {
	return getProposal(storage.GetReadOnlyContext(), id)
}

// Count returns the total number of proposals ever created.
func Count() int {
	return common.GetInt(storage.GetReadOnlyContext(), counterKey)
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func proposalKey(id int) []byte {
	return append([]byte{proposalPrefix}, std.Itoa(id, 10)...)
}

func getProposal(ctx storage.Context, id int) Proposal {
	data := storage.Get(ctx, proposalKey(id))
	if data == nil {
		panic(ErrNotExist)
	}

	return std.Deserialize(data.([]byte)).(Proposal)
}

func getVault(ctx storage.Context) interop.Hash160 {
	return storage.Get(ctx, vaultKey).(interop.Hash160)
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

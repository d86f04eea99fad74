/*
Package vault implements Asset Vault contract which is deployed to the game
chain.

Vault contract is the custodial balance ledger shared by every settlement
module of the game economy. It tracks, per account and per asset, a spendable
balance and a locked balance. Deposit pulls units out of the player's factory
holdings into vault custody, withdraw pushes them back out. Lock, unlock and
transferLocked never move custody outside the vault: they reserve spendable
units to back a pending trade, auction or rental, release the reservation, or
move reserved units to the other party when the settlement resolves.

Lock, unlock and transferLocked can be invoked only by settlement contracts
registered at deploy time (or later by committee). The vault is the sole
source of truth for spendable quantity: settlement modules hold no balances
of their own.

Every balance-decreasing operation performs its sufficiency check before any
mutation, and the withdrawal debit happens before the external factory push,
so a reentrant call triggered by the factory's receiver hook can never spend
the same units twice.

# Contract notifications

Deposit notification. Produced when custody enters the vault.

	Deposit:
	  - name: from
	    type: Hash160
	  - name: id
	    type: ByteArray
	  - name: amount
	    type: Integer

Withdraw notification. Produced when custody leaves the vault.

	Withdraw:
	  - name: from
	    type: Hash160
	  - name: to
	    type: Hash160
	  - name: id
	    type: ByteArray
	  - name: amount
	    type: Integer

Lock notification. Produced when spendable balance is reserved.

	Lock:
	  - name: account
	    type: Hash160
	  - name: id
	    type: ByteArray
	  - name: amount
	    type: Integer

Unlock notification. Produced when a reservation is released.

	Unlock:
	  - name: account
	    type: Hash160
	  - name: id
	    type: ByteArray
	  - name: amount
	    type: Integer

Settle notification. Produced when locked balance moves between accounts.

	Settle:
	  - name: from
	    type: Hash160
	  - name: to
	    type: Hash160
	  - name: id
	    type: ByteArray
	  - name: amount
	    type: Integer
*/
package vault

/*
Contract storage model.

# Summary
Key-value storage format:
 - 'f' -> interop.Hash160
   Factory contract reference
 - 's' + [20]byte settlement contract hash -> bool
   registered settlement contracts allowed to lock/unlock/settle
 - 'b' + [20]byte account + [32]byte asset ID -> int
   spendable balances
 - 'l' + [20]byte account + [32]byte asset ID -> int
   locked balances backing pending settlements

# Accounting
For every asset the sum of all 'b' and 'l' entries equals the amount the
factory holds in vault custody.
*/

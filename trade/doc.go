/*
Package trade implements Asset Trade contract which is deployed to the game
chain.

Trade contract runs the bilateral exchange state machine of the game economy.
A proposal offers one unit of an asset to a designated counterparty in
exchange for one unit of another asset. Creating a proposal locks the offered
unit in the Vault; the single transition out of the pending state either
settles both locked units to their new owners (accept), or releases the
offered unit back to the proposer (reject by the counterparty, cancel by the
proposer). Terminal proposals are kept as history and never transition again.

There is no convenience auto-deposit: both parties must have deposited the
asset they give away into the Vault before the corresponding transition, or
the vault lock fails the whole call.

# Contract notifications

TradeCreated notification.

	TradeCreated:
	  - name: id
	    type: Integer
	  - name: proposer
	    type: Hash160
	  - name: counterparty
	    type: Hash160
	  - name: offeredID
	    type: ByteArray
	  - name: requestedID
	    type: ByteArray

TradeAccepted notification.

	TradeAccepted:
	  - name: id
	    type: Integer

TradeRejected notification.

	TradeRejected:
	  - name: id
	    type: Integer

TradeCanceled notification.

	TradeCanceled:
	  - name: id
	    type: Integer
*/
package trade

/*
Contract storage model.

# Summary
Key-value storage format:
 - 'v' -> interop.Hash160
   Vault contract reference
 - 'c' -> int
   proposal id counter, ids start at 1
 - 'p' + decimal proposal id -> std.Serialize(Proposal)
   all proposals ever created, terminal ones included
*/

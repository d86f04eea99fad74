/*
Package factory implements Asset Factory contract which is deployed to the
game chain.

Factory contract is the canonical issuance service of the game economy. It
keeps the registry of asset classes (game items and the in-game currency),
their circulating supply and shop prices, and the per-account holdings of
every asset. Creation, minting and burning of assets are administrative
actions gated by the committee witness; transfers can be performed by asset
owners or by contracts acting on their behalf (the Vault contract pulls and
pushes custody through Transfer and TransferBatch).

When the receiver of a transfer is a deployed contract, the factory invokes
the onGameAssetPayment method on it after balances are settled. A receiver
without such method, or one that panics from it, aborts the whole transfer.
This mirrors the safe-transfer convention of token standards and lets the
Vault acknowledge incoming custody.

# Contract notifications

AssetCreated notification. Produced when a new asset class is registered.

	AssetCreated:
	  - name: id
	    type: ByteArray
	  - name: symbol
	    type: String
	  - name: price
	    type: Integer

Mint notification. Produced when new units enter circulation.

	Mint:
	  - name: to
	    type: Hash160
	  - name: id
	    type: ByteArray
	  - name: amount
	    type: Integer

Burn notification. Produced when units leave circulation.

	Burn:
	  - name: from
	    type: Hash160
	  - name: id
	    type: ByteArray
	  - name: amount
	    type: Integer

Transfer notification. Produced on every balance movement, including mint
(from is null) and burn (to is null).

	Transfer:
	  - name: from
	    type: Hash160
	  - name: to
	    type: Hash160
	  - name: id
	    type: ByteArray
	  - name: amount
	    type: Integer

PriceUpdated notification. Produced when the shop price of an asset changes.

	PriceUpdated:
	  - name: id
	    type: ByteArray
	  - name: price
	    type: Integer
*/
package factory

/*
Contract storage model.

# Summary
Key-value storage format:
 - 'a' + [32]byte asset ID -> std.Serialize(Asset)
   registry records of all asset classes
 - 'h' + [20]byte account + [32]byte asset ID -> int
   per-account holdings of every asset

# Issuance
Contract stores the authoritative supply of every game asset.
*/

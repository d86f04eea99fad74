/*
Package auction implements Asset Auction contract which is deployed to the
game chain.

Auction contract runs ascending open-bid (English) auctions over single asset
units, settled in the in-game currency. Listing locks one unit of the asset
in the Vault; every accepted bid locks the bid amount of currency from the
bidder and releases the previous highest bidder's lock, so exactly one bid is
backed by locked currency at any time. Once the deadline passes the seller
completes the auction: with the reserve met the winner is recorded and may
claim (locked bid to the seller, locked asset to the winner, exactly once),
otherwise all locks are released. Dutch, blind and candle styles are declared
for the wire format but not implemented.

Deadlines are absolute block timestamps in milliseconds, compared against
runtime.GetTime. The deadline moment itself belongs to the closed phase: a
bid at the deadline is late, completion at the deadline is allowed.

# Contract notifications

AuctionCreated notification.

	AuctionCreated:
	  - name: id
	    type: Integer
	  - name: seller
	    type: Hash160
	  - name: assetID
	    type: ByteArray
	  - name: reservePrice
	    type: Integer
	  - name: deadline
	    type: Integer

BidPlaced notification.

	BidPlaced:
	  - name: id
	    type: Integer
	  - name: bidder
	    type: Hash160
	  - name: amount
	    type: Integer

AuctionCanceled notification.

	AuctionCanceled:
	  - name: id
	    type: Integer

AuctionEnded notification. Status distinguishes a sale from a failed reserve.

	AuctionEnded:
	  - name: id
	    type: Integer
	  - name: status
	    type: Integer

Claimed notification.

	Claimed:
	  - name: id
	    type: Integer
	  - name: winner
	    type: Hash160
	  - name: amount
	    type: Integer
*/
package auction

/*
Contract storage model.

# Summary
Key-value storage format:
 - 'v' -> interop.Hash160
   Vault contract reference
 - 'm' -> []byte
   currency asset ID used for bids
 - 'c' -> int
   auction id counter, ids start at 1
 - 'a' + decimal auction id -> std.Serialize(Auction)
   all auctions ever created, terminal ones included
 - 'h' + decimal auction id -> std.Serialize([]Bid)
   append-only bid history
*/

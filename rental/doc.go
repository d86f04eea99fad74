/*
Package rental implements Asset Rental contract which is deployed to the game
chain.

Rental contract keeps the registry of rental listings: creating a listing
locks one unit of the asset in the Vault, canceling releases it. The actual
rental settlement (handing the asset to a renter for paid epochs and
returning it) hasn't been designed yet; Rent is declared for the wire format
and panics.

# Contract notifications

ListingCreated notification.

	ListingCreated:
	  - name: id
	    type: Integer
	  - name: owner
	    type: Hash160
	  - name: assetID
	    type: ByteArray
	  - name: pricePerEpoch
	    type: Integer

ListingCanceled notification.

	ListingCanceled:
	  - name: id
	    type: Integer
*/
package rental

/*
Contract storage model.

# Summary
Key-value storage format:
 - 'v' -> interop.Hash160
   Vault contract reference
 - 'c' -> int
   listing id counter, ids start at 1
 - 'r' + decimal listing id -> std.Serialize(Listing)
*/

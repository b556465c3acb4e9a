// Package browse provides use cases for reading and administering the media
// catalog. It implements the listing, lookup, and bulk mutation logic behind
// the public API and delegates persistence to the media repository.
package browse

import "errors"

// Sentinel errors for browse use case operations.
var (
	// ErrEntryNotFound indicates that no entry matches the requested key.
	// Lookups return it when the repository reports no row rather than a
	// failure.
	ErrEntryNotFound = errors.New("entry not found")

	// ErrInvalidSince indicates that a diff request carried a missing or
	// non-positive since timestamp. Incremental sync needs a concrete
	// starting point.
	ErrInvalidSince = errors.New("since must be a positive unix timestamp")
)

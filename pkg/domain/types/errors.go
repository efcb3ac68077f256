package types

import (
	"errors"

	"github.com/m-mizutani/goerr/v2"
)

// Shared error taxonomy. Every store-facing operation resolves to exactly one
// of these classes so callers can discriminate bad input, genuinely absent
// data and storage problems uniformly across backends.
var (
	// ErrInvalidID means a caller-supplied identifier is malformed. Returned
	// before any store access, never retried.
	ErrInvalidID = errors.New("invalid identifier")

	// ErrNotFound means a single-entity lookup or single-id delete matched
	// nothing.
	ErrNotFound = errors.New("not found")

	// ErrExpired means a correlation id is absent from the key-value store:
	// expired, already consumed, or never issued. The three cases are
	// indistinguishable by design.
	ErrExpired = errors.New("expired or unknown")
)

// Tags for storage failures. Wrapped errors keep the underlying cause for
// logging; the tag distinguishes "store answered with an error" from "store
// unreachable" for observability only, the user-visible treatment is the same.
var (
	TagStorage     = goerr.NewTag("storage")
	TagUnavailable = goerr.NewTag("storage_unavailable")
)

// IsStorageErr reports whether err is a storage-layer failure of either class
func IsStorageErr(err error) bool {
	return goerr.HasTag(err, TagStorage) || goerr.HasTag(err, TagUnavailable)
}

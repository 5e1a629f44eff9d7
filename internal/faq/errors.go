// File path: internal/faq/errors.go
package faq

import "errors"

var (
	// ErrIndexGap is returned when an upsert would leave the step sequence
	// non-contiguous from zero.
	ErrIndexGap = errors.New("step index gap")

	// ErrUnrecognizedFormat is returned by the legacy parser when a document
	// carries none of the expected structural markers. Parsing is
	// all-or-nothing; no partial result accompanies this error.
	ErrUnrecognizedFormat = errors.New("unrecognized document format")

	// ErrAdapterUnavailable signals a failed enhancement call. Recoverable:
	// the affected step is marked pending and reconciliation continues.
	ErrAdapterUnavailable = errors.New("enhancement adapter unavailable")

	// ErrIdentityConflict is returned when a parsed legacy document targets
	// an identity that already has versions and the caller did not force
	// the merge.
	ErrIdentityConflict = errors.New("identity already exists")

	// ErrVersionConflict is returned by the version store when a put does
	// not extend the current head by exactly one. Safe to retry after
	// re-reading the latest version.
	ErrVersionConflict = errors.New("version conflict")

	// ErrAssetUnavailable is returned when a screenshot reference cannot be
	// resolved. Non-fatal to rendering; a placeholder is emitted instead.
	ErrAssetUnavailable = errors.New("asset unavailable")

	// ErrNotFound is returned for unknown identities or versions.
	ErrNotFound = errors.New("document not found")
)

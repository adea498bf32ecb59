package domain

import "errors"

// Catalog errors. Infrastructure wraps these with detail; callers match with errors.Is.
var (
	// ErrCatalogDisabled is returned when no catalog client credentials are configured.
	// It is permanent for the lifetime of the process.
	ErrCatalogDisabled = errors.New("catalog access is not configured")

	// ErrCredentialUnavailable is returned when a credential exchange fails.
	// The next call tries again.
	ErrCredentialUnavailable = errors.New("catalog credential unavailable")

	// ErrInvalidCatalogURL is returned when an input is neither a track nor a playlist URL.
	ErrInvalidCatalogURL = errors.New("not a valid catalog track or playlist URL")

	// ErrMalformedCatalogResponse is returned when a catalog response lacks expected fields.
	ErrMalformedCatalogResponse = errors.New("malformed catalog response")

	// ErrUnauthorized is returned when the catalog rejects the access token.
	ErrUnauthorized = errors.New("catalog request unauthorized")

	// ErrCatalogRequest is returned for transport failures and unexpected catalog statuses.
	ErrCatalogRequest = errors.New("catalog request failed")
)

// ErrPlayerStateNotFound is returned by repositories when a guild has no player.
var ErrPlayerStateNotFound = errors.New("player state not found")

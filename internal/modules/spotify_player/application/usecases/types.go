package usecases

import (
	"github.com/sglre6355/spotilink/internal/modules/spotify_player/domain"
)

// Re-export domain types for presentation layer use.
// This allows presentation to depend only on usecases without importing domain directly.

// Track is an alias for domain.Track.
type Track = domain.Track

// LoadOutcome is an alias for domain.LoadOutcome.
type LoadOutcome = domain.LoadOutcome

// BatchSummary is an alias for domain.BatchSummary.
type BatchSummary = domain.BatchSummary

// PlayerStateRepository is an alias for domain.PlayerStateRepository.
type PlayerStateRepository = domain.PlayerStateRepository

// Catalog errors re-exported for presentation.
var (
	ErrCatalogDisabled          = domain.ErrCatalogDisabled
	ErrCredentialUnavailable    = domain.ErrCredentialUnavailable
	ErrInvalidCatalogURL        = domain.ErrInvalidCatalogURL
	ErrMalformedCatalogResponse = domain.ErrMalformedCatalogResponse
	ErrUnauthorized             = domain.ErrUnauthorized
	ErrCatalogRequest           = domain.ErrCatalogRequest
)

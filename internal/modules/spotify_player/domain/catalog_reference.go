package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultCatalogDomain is the host of public catalog share links.
const DefaultCatalogDomain = "open.spotify.com"

// CatalogKind is the kind of item a catalog URL points at.
type CatalogKind int

const (
	CatalogKindTrack CatalogKind = iota
	CatalogKindPlaylist
)

// String returns a human-readable representation of the kind.
func (k CatalogKind) String() string {
	switch k {
	case CatalogKindTrack:
		return "track"
	case CatalogKindPlaylist:
		return "playlist"
	default:
		return "unknown"
	}
}

// CatalogReference identifies a single catalog item.
type CatalogReference struct {
	Kind CatalogKind
	ID   string
}

// CatalogURLParser classifies share links for one catalog domain.
type CatalogURLParser struct {
	trackPattern    *regexp.Regexp
	playlistPattern *regexp.Regexp
}

// NewCatalogURLParser creates a parser for the given host, e.g. "open.spotify.com".
// An empty domain selects DefaultCatalogDomain.
func NewCatalogURLParser(domain string) *CatalogURLParser {
	if domain == "" {
		domain = DefaultCatalogDomain
	}
	host := regexp.QuoteMeta(domain)

	return &CatalogURLParser{
		// https://<domain>/track/<id> with an optional /intl/ or /intl-xx/ locale segment.
		trackPattern: regexp.MustCompile(
			`^https://` + host + `/(?:intl(?:-[a-z]{2})?/)?track/([a-zA-Z0-9]+)$`,
		),
		// https://<domain>/playlist/<id> optionally followed by a query string.
		playlistPattern: regexp.MustCompile(
			`^https://` + host + `/playlist/([a-zA-Z0-9]+)(?:\?.*)?$`,
		),
	}
}

// Parse classifies the input URL.
// Returns ErrInvalidCatalogURL when it matches neither shape.
func (p *CatalogURLParser) Parse(input string) (CatalogReference, error) {
	input = strings.TrimSpace(input)

	if m := p.trackPattern.FindStringSubmatch(input); m != nil {
		return CatalogReference{Kind: CatalogKindTrack, ID: m[1]}, nil
	}
	if m := p.playlistPattern.FindStringSubmatch(input); m != nil {
		return CatalogReference{Kind: CatalogKindPlaylist, ID: m[1]}, nil
	}

	return CatalogReference{}, fmt.Errorf("%w: %q", ErrInvalidCatalogURL, input)
}

package domain

// SearchSource is the search provider marker prepended to backend queries.
type SearchSource string

const (
	// SourceYouTube searches YouTube.
	SourceYouTube SearchSource = "ytsearch"
	// SourceYouTubeMusic searches YouTube Music.
	SourceYouTubeMusic SearchSource = "ytmsearch"
	// SourceSoundCloud searches SoundCloud.
	SourceSoundCloud SearchSource = "scsearch"
)

// CatalogItem holds the descriptive fields of one catalog track.
type CatalogItem struct {
	Title         string
	PrimaryArtist string
}

// PlaylistInfo is the header of a catalog playlist.
type PlaylistInfo struct {
	ID    string
	Name  string
	Total int
}

// SearchQuery is a free-text query for the audio-search backend.
type SearchQuery struct {
	Text   string
	Source SearchSource
}

// NewSearchQuery builds the query for a catalog item as "<title> <artist>".
// Empty fields are kept as-is; an empty source falls back to SourceYouTube.
func NewSearchQuery(item CatalogItem, source SearchSource) SearchQuery {
	if source == "" {
		source = SourceYouTube
	}
	return SearchQuery{
		Text:   item.Title + " " + item.PrimaryArtist,
		Source: source,
	}
}

// BackendQuery returns the query string formatted for Lavalink, e.g. "ytsearch:Song Artist".
func (q SearchQuery) BackendQuery() string {
	return string(q.Source) + ":" + q.Text
}

package domain

import "testing"

func TestNewSearchQuery(t *testing.T) {
	tests := []struct {
		name        string
		item        CatalogItem
		source      SearchSource
		wantText    string
		wantBackend string
	}{
		{
			name:        "title and artist",
			item:        CatalogItem{Title: "Never Gonna Give You Up", PrimaryArtist: "Rick Astley"},
			source:      SourceYouTube,
			wantText:    "Never Gonna Give You Up Rick Astley",
			wantBackend: "ytsearch:Never Gonna Give You Up Rick Astley",
		},
		{
			name:        "default source",
			item:        CatalogItem{Title: "Song", PrimaryArtist: "Band"},
			wantText:    "Song Band",
			wantBackend: "ytsearch:Song Band",
		},
		{
			name:        "alternate source",
			item:        CatalogItem{Title: "Song", PrimaryArtist: "Band"},
			source:      SourceSoundCloud,
			wantText:    "Song Band",
			wantBackend: "scsearch:Song Band",
		},
		{
			name:        "empty artist kept verbatim",
			item:        CatalogItem{Title: "Song"},
			source:      SourceYouTube,
			wantText:    "Song ",
			wantBackend: "ytsearch:Song ",
		},
		{
			name:        "inner whitespace kept verbatim",
			item:        CatalogItem{Title: "  Spaced ", PrimaryArtist: "Artist"},
			source:      SourceYouTubeMusic,
			wantText:    "  Spaced  Artist",
			wantBackend: "ytmsearch:  Spaced  Artist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := NewSearchQuery(tt.item, tt.source)

			if q.Text != tt.wantText {
				t.Errorf("Text = %q, want %q", q.Text, tt.wantText)
			}
			if got := q.BackendQuery(); got != tt.wantBackend {
				t.Errorf("BackendQuery() = %q, want %q", got, tt.wantBackend)
			}
		})
	}
}

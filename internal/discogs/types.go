package discogs

// Pagination describes the page window of a search response.
type Pagination struct {
	Page    int `json:"page"`
	Pages   int `json:"pages"`
	PerPage int `json:"per_page"`
	Items   int `json:"items"`
}

// SearchResult is one entry of a database search. Type is "release",
// "master", "artist" or "label".
type SearchResult struct {
	ID          int64    `json:"id"`
	Type        string   `json:"type"`
	Title       string   `json:"title"`
	CatNo       string   `json:"catno"`
	Year        string   `json:"year"`
	Country     string   `json:"country"`
	Label       []string `json:"label"`
	Format      []string `json:"format"`
	MasterID    int64    `json:"master_id"`
	ResourceURL string   `json:"resource_url"`
}

// SearchResponse models the paginated database search payload.
type SearchResponse struct {
	Pagination Pagination     `json:"pagination"`
	Results    []SearchResult `json:"results"`
}

// Track is a tracklist entry. Duration is the display string ("3:03") and may be empty.
type Track struct {
	Position string `json:"position"`
	Type     string `json:"type_"`
	Title    string `json:"title"`
	Duration string `json:"duration"`
}

// Release is the detail payload shared by the release and master endpoints.
// Optional fields stay nil when Discogs omits them or sends null.
type Release struct {
	ID        int64    `json:"id"`
	Title     string   `json:"title"`
	Year      *int     `json:"year"`
	Genres    []string `json:"genres"`
	Styles    []string `json:"styles"`
	Tracklist []Track  `json:"tracklist"`
}

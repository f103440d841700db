package feed

// Metadata is the fixed channel description of the published document.
// Set once when the document is created and never mutated afterwards.
type Metadata struct {
	Title       string
	Link        string
	Description string
	SelfURL     string
}

// Item is a single published entry. Link doubles as the document-wide
// unique identifier.
type Item struct {
	Title   string
	Link    string
	GUID    string
	PubDate string // RFC 1123, carried verbatim when the document is rewritten
}

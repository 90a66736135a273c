package models

// Document is a single loaded source: one scraped page or one file from an
// ingestion directory. Immutable once created.
type Document struct {
	Content string
	Source  string
	// ImageURL is set when a scraped page carried a lead image reference.
	ImageURL string
}

// Chunk is a bounded slice of a Document's content. Chunks keep the parent's
// source so answers can cite where they came from.
type Chunk struct {
	Content string
	Source  string
	Index   int
}

// QueryResult is the outcome of one retrieval-augmented query. Sources holds
// one entry per retrieved chunk, in retrieval order, not deduplicated.
type QueryResult struct {
	Answer  string   `json:"answer"`
	Sources []string `json:"sources"`
}

package domain

import "context"

// SearchResult is one web search hit considered as a potential competitor.
// Fields may be empty when the provider omits them.
type SearchResult struct {
	Title   string
	Snippet string
	Link    string
}

// ScoredCandidate is a search result with its semantic similarity to the
// idea. Scores come from cosine similarity and are conceptually in [-1, 1];
// floating-point drift may push them slightly outside.
type ScoredCandidate struct {
	Score   float64
	Title   string
	Link    string
	Snippet string
}

// MarketService defines the operations exposed by the application core.
type MarketService interface {
	// FindCompetitors ranks search results for the idea by embedding
	// similarity, best first, at most topN entries. A search that returns
	// nothing yields an empty slice and a nil error.
	FindCompetitors(ctx context.Context, idea string, topN int) ([]ScoredCandidate, error)
	// GenerateReport asks the language model for a market-gap analysis of
	// the idea against the ranked competitors.
	GenerateReport(ctx context.Context, idea string, candidates []ScoredCandidate) (string, error)
}

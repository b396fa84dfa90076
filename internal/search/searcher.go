package search

import (
	"context"

	"marketcheck/internal/domain"
)

// Searcher issues one web search and returns the provider's results in
// provider order, at most maxResults of them.
type Searcher interface {
	Name() string
	Search(ctx context.Context, query string, maxResults int) ([]domain.SearchResult, error)
}

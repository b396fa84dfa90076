package service

import (
	"context"
	"fmt"

	"marketcheck/internal/domain"
	"marketcheck/internal/embedding"
	"marketcheck/internal/report"
	"marketcheck/internal/search"
	"marketcheck/internal/similarity"
)

const defaultTopN = 5

// MarketServiceImpl wires the search provider, embedder and report generator
// into the idea-to-competitor pipeline.
type MarketServiceImpl struct {
	searcher      search.Searcher
	embedder      embedding.Embedder
	generator     report.Generator
	searchResults int
}

// NewMarketService creates the service. searchResults is how many results to
// request from the search provider per idea (default 10).
func NewMarketService(searcher search.Searcher, embedder embedding.Embedder, generator report.Generator, searchResults int) *MarketServiceImpl {
	if searchResults <= 0 {
		searchResults = 10
	}
	return &MarketServiceImpl{
		searcher:      searcher,
		embedder:      embedder,
		generator:     generator,
		searchResults: searchResults,
	}
}

// outcome records one search result's scoring attempt. Ranking keeps only
// the successes; a failed candidate is dropped, not fatal.
type outcome struct {
	candidate domain.SearchResult
	score     float64
	err       error
}

// FindCompetitors embeds the idea, searches the web for it, scores every
// result by cosine similarity of its "title. snippet" text against the idea,
// and returns the best topN in descending score order. Candidates that fail
// to embed (or produce a degenerate vector) are skipped; ranking is best
// effort over whatever the search engine returned. An empty search yields an
// empty slice and a nil error.
func (s *MarketServiceImpl) FindCompetitors(ctx context.Context, idea string, topN int) ([]domain.ScoredCandidate, error) {
	if topN <= 0 {
		topN = defaultTopN
	}
	ideaVec, err := s.embedder.Embed(idea)
	if err != nil {
		return nil, fmt.Errorf("failed to embed idea: %w", err)
	}
	results, err := s.searcher.Search(ctx, idea, s.searchResults)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return []domain.ScoredCandidate{}, nil
	}

	outcomes := make([]outcome, 0, len(results))
	for _, r := range results {
		combined := r.Title + ". " + r.Snippet
		vec, err := s.embedder.Embed(combined)
		if err != nil {
			outcomes = append(outcomes, outcome{candidate: r, err: err})
			continue
		}
		score, err := similarity.Cosine(ideaVec, vec)
		if err != nil {
			outcomes = append(outcomes, outcome{candidate: r, err: err})
			continue
		}
		outcomes = append(outcomes, outcome{candidate: r, score: score})
	}

	scored := make([]domain.ScoredCandidate, 0, len(outcomes))
	for _, o := range outcomes {
		if o.err != nil {
			continue
		}
		scored = append(scored, domain.ScoredCandidate{
			Score:   o.score,
			Title:   o.candidate.Title,
			Link:    o.candidate.Link,
			Snippet: o.candidate.Snippet,
		})
	}
	similarity.Rank(scored)
	if len(scored) > topN {
		scored = scored[:topN]
	}
	return scored, nil
}

// GenerateReport delegates to the configured report generator.
func (s *MarketServiceImpl) GenerateReport(ctx context.Context, idea string, candidates []domain.ScoredCandidate) (string, error) {
	return s.generator.Generate(ctx, idea, candidates)
}

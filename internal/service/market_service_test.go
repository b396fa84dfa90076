package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketcheck/internal/domain"
)

type fakeSearcher struct {
	results []domain.SearchResult
	err     error
	calls   int
}

func (f *fakeSearcher) Name() string { return "fake" }

func (f *fakeSearcher) Search(_ context.Context, _ string, _ int) ([]domain.SearchResult, error) {
	f.calls++
	return f.results, f.err
}

type fakeEmbedder struct {
	vectors map[string][]float64
	fail    map[string]bool
	calls   []string
}

func (f *fakeEmbedder) Name() string   { return "fake" }
func (f *fakeEmbedder) Dimension() int { return 2 }

func (f *fakeEmbedder) Embed(text string) ([]float64, error) {
	f.calls = append(f.calls, text)
	if f.fail[text] {
		return nil, errors.New("embed failed")
	}
	v, ok := f.vectors[text]
	if !ok {
		return nil, fmt.Errorf("no vector for %q", text)
	}
	return v, nil
}

type fakeGenerator struct {
	out      string
	err      error
	gotIdea  string
	gotCands []domain.ScoredCandidate
}

func (f *fakeGenerator) Name() string { return "fake" }

func (f *fakeGenerator) Generate(_ context.Context, idea string, cands []domain.ScoredCandidate) (string, error) {
	f.gotIdea = idea
	f.gotCands = cands
	return f.out, f.err
}

// unit returns the 2D unit vector whose cosine against (1,0) is exactly c.
func unit(c float64) []float64 {
	return []float64{c, math.Sqrt(1 - c*c)}
}

const idea = "AI-powered recipe app"

func newFixture(results []domain.SearchResult, vectors map[string][]float64) (*MarketServiceImpl, *fakeSearcher, *fakeEmbedder, *fakeGenerator) {
	searcher := &fakeSearcher{results: results}
	embedder := &fakeEmbedder{vectors: vectors, fail: map[string]bool{}}
	generator := &fakeGenerator{out: "report"}
	return NewMarketService(searcher, embedder, generator, 10), searcher, embedder, generator
}

func TestFindCompetitorsRanksBySimilarity(t *testing.T) {
	results := []domain.SearchResult{
		{Title: "CookBot", Snippet: "smart cooking", Link: "https://a.example"},
		{Title: "MealPlan", Snippet: "weekly menus", Link: "https://b.example"},
		{Title: "GardenShop", Snippet: "buy plants", Link: "https://c.example"},
	}
	vectors := map[string][]float64{
		idea:                        {1, 0},
		"CookBot. smart cooking":    unit(0.9),
		"MealPlan. weekly menus":    unit(0.5),
		"GardenShop. buy plants":    unit(0.1),
	}
	svc, _, _, _ := newFixture(results, vectors)

	got, err := svc.FindCompetitors(context.Background(), idea, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "CookBot", got[0].Title)
	assert.Equal(t, "MealPlan", got[1].Title)
	assert.InDelta(t, 0.9, got[0].Score, 1e-9)
	assert.InDelta(t, 0.5, got[1].Score, 1e-9)
}

func TestFindCompetitorsNeverExceedsTopN(t *testing.T) {
	var results []domain.SearchResult
	vectors := map[string][]float64{idea: {1, 0}}
	for i := 0; i < 8; i++ {
		r := domain.SearchResult{Title: fmt.Sprintf("Biz%d", i), Snippet: "s"}
		results = append(results, r)
		vectors[r.Title+". s"] = unit(float64(i) / 10)
	}
	svc, _, _, _ := newFixture(results, vectors)

	got, err := svc.FindCompetitors(context.Background(), idea, 5)
	require.NoError(t, err)
	assert.Len(t, got, 5)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Score, got[i].Score)
	}
}

func TestFindCompetitorsEmptySearch(t *testing.T) {
	svc, _, embedder, _ := newFixture(nil, map[string][]float64{idea: {1, 0}})

	got, err := svc.FindCompetitors(context.Background(), idea, 5)
	require.NoError(t, err)
	assert.Empty(t, got)
	// only the idea itself was embedded, never a candidate
	assert.Equal(t, []string{idea}, embedder.calls)
}

func TestFindCompetitorsSkipsFailedCandidate(t *testing.T) {
	results := []domain.SearchResult{
		{Title: "Good", Snippet: "one"},
		{Title: "Bad", Snippet: "one"},
		{Title: "Fine", Snippet: "one"},
	}
	vectors := map[string][]float64{
		idea:         {1, 0},
		"Good. one":  unit(0.8),
		"Fine. one":  unit(0.4),
	}
	svc, _, embedder, _ := newFixture(results, vectors)
	embedder.fail["Bad. one"] = true

	got, err := svc.FindCompetitors(context.Background(), idea, 5)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Good", got[0].Title)
	assert.Equal(t, "Fine", got[1].Title)
}

func TestFindCompetitorsSkipsZeroNormVector(t *testing.T) {
	results := []domain.SearchResult{
		{Title: "Flat", Snippet: "zero"},
		{Title: "Real", Snippet: "one"},
	}
	vectors := map[string][]float64{
		idea:         {1, 0},
		"Flat. zero": {0, 0},
		"Real. one":  unit(0.7),
	}
	svc, _, _, _ := newFixture(results, vectors)

	got, err := svc.FindCompetitors(context.Background(), idea, 5)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Real", got[0].Title)
}

func TestFindCompetitorsStableTieOrder(t *testing.T) {
	results := []domain.SearchResult{
		{Title: "First", Snippet: "tie"},
		{Title: "Second", Snippet: "tie"},
	}
	vectors := map[string][]float64{
		idea:          {1, 0},
		"First. tie":  unit(0.5),
		"Second. tie": unit(0.5),
	}
	svc, _, _, _ := newFixture(results, vectors)

	got, err := svc.FindCompetitors(context.Background(), idea, 5)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "First", got[0].Title)
	assert.Equal(t, "Second", got[1].Title)
}

func TestFindCompetitorsSearchErrorPropagates(t *testing.T) {
	searcher := &fakeSearcher{err: errors.New("search failed (status 500)")}
	embedder := &fakeEmbedder{vectors: map[string][]float64{idea: {1, 0}}, fail: map[string]bool{}}
	svc := NewMarketService(searcher, embedder, &fakeGenerator{}, 10)

	_, err := svc.FindCompetitors(context.Background(), idea, 5)
	assert.Error(t, err)
}

func TestFindCompetitorsIdeaEmbedErrorIsFatal(t *testing.T) {
	searcher := &fakeSearcher{results: []domain.SearchResult{{Title: "X"}}}
	embedder := &fakeEmbedder{vectors: map[string][]float64{}, fail: map[string]bool{idea: true}}
	svc := NewMarketService(searcher, embedder, &fakeGenerator{}, 10)

	_, err := svc.FindCompetitors(context.Background(), idea, 5)
	assert.Error(t, err)
	// the pipeline never got as far as searching
	assert.Equal(t, 0, searcher.calls)
}

func TestGenerateReportDelegates(t *testing.T) {
	svc, _, _, generator := newFixture(nil, map[string][]float64{idea: {1, 0}})
	generator.out = "crowded market"
	cands := []domain.ScoredCandidate{{Score: 0.9, Title: "CookBot"}}

	got, err := svc.GenerateReport(context.Background(), idea, cands)
	require.NoError(t, err)
	assert.Equal(t, "crowded market", got)
	assert.Equal(t, idea, generator.gotIdea)
	assert.Equal(t, cands, generator.gotCands)
}

func TestGenerateReportErrorPropagates(t *testing.T) {
	svc, _, _, generator := newFixture(nil, map[string][]float64{idea: {1, 0}})
	generator.out = ""
	generator.err = errors.New("report generation failed")

	_, err := svc.GenerateReport(context.Background(), idea, nil)
	assert.Error(t, err)
}

package report

import (
	"context"
	"fmt"
	"strings"

	"marketcheck/internal/domain"
)

// Generator turns the idea and its ranked competitors into a free-text
// market analysis. The output is returned verbatim, with no schema.
type Generator interface {
	Name() string
	Generate(ctx context.Context, idea string, candidates []domain.ScoredCandidate) (string, error)
}

// BuildPrompt renders the fixed analysis prompt: the idea, a numbered
// "title (link)" list with snippets in ranked order, and three questions for
// the model. An empty candidate list produces an empty competitor section.
func BuildPrompt(idea string, candidates []domain.ScoredCandidate) string {
	var listing strings.Builder
	for i, c := range candidates {
		if i > 0 {
			listing.WriteString("\n")
		}
		fmt.Fprintf(&listing, "%d. %s (%s)\n%s", i+1, c.Title, c.Link, c.Snippet)
	}
	return fmt.Sprintf(`You are a startup consultant. A founder has this idea: %q

Here are the top competitors from the market:
%s

Analyze:
1. Which competitors are most similar to the idea?
2. What market gap still exists?
3. Is this idea unique or crowded?

Give a clear, concise report.`, idea, listing.String())
}

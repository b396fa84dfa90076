package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"marketcheck/internal/domain"
)

func TestBuildPromptNumbersCandidatesInOrder(t *testing.T) {
	cands := []domain.ScoredCandidate{
		{Score: 0.9, Title: "CookBot", Link: "https://cookbot.example", Snippet: "smart cooking"},
		{Score: 0.5, Title: "MealPlan", Link: "https://mealplan.example", Snippet: "weekly menus"},
	}
	prompt := BuildPrompt("AI-powered recipe app", cands)

	assert.Contains(t, prompt, `"AI-powered recipe app"`)
	assert.Contains(t, prompt, "1. CookBot (https://cookbot.example)\nsmart cooking")
	assert.Contains(t, prompt, "2. MealPlan (https://mealplan.example)\nweekly menus")
	assert.Less(t, strings.Index(prompt, "CookBot"), strings.Index(prompt, "MealPlan"))
}

func TestBuildPromptKeepsFixedStructure(t *testing.T) {
	prompt := BuildPrompt("idea", []domain.ScoredCandidate{{Title: "X", Link: "l", Snippet: "s"}})
	assert.Contains(t, prompt, "You are a startup consultant.")
	assert.Contains(t, prompt, "Here are the top competitors from the market:")
	assert.Contains(t, prompt, "1. Which competitors are most similar to the idea?")
	assert.Contains(t, prompt, "2. What market gap still exists?")
	assert.Contains(t, prompt, "3. Is this idea unique or crowded?")
	assert.Contains(t, prompt, "Give a clear, concise report.")
}

func TestBuildPromptEmptyCandidates(t *testing.T) {
	prompt := BuildPrompt("niche idea", nil)
	assert.NotEmpty(t, prompt)
	assert.Contains(t, prompt, `"niche idea"`)

	// the competitor section is present but empty
	start := strings.Index(prompt, "market:\n")
	end := strings.Index(prompt, "\n\nAnalyze:")
	if assert.GreaterOrEqual(t, start, 0) && assert.Greater(t, end, start) {
		assert.Empty(t, strings.TrimSpace(prompt[start+len("market:\n"):end]))
	}
}

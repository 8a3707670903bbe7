package insights

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

// stubGenerator returns a canned response or error and records the prompts.
type stubGenerator struct {
	response string
	err      error

	lastSystem string
	lastUser   string
}

func (g *stubGenerator) Generate(_ context.Context, system, user string, _ *genai.Schema) (string, error) {
	g.lastSystem = system
	g.lastUser = user
	if g.err != nil {
		return "", g.err
	}
	return g.response, nil
}

func TestProductionInsights(t *testing.T) {
	gen := &stubGenerator{response: `{
		"reportTitle": "Cattle Production Report",
		"executiveSummary": "Yields are stable.",
		"trendAnalysis": "Milk output flat month over month.",
		"recommendations": ["Review ration"],
		"profitOpportunities": ["Sell surplus"],
		"animalWellnessSuggestions": ["Check hooves"]
	}`}
	r := NewRequester(gen, nil)

	got := r.ProductionInsights(context.Background(), ProductionInsightsInput{
		LivestockType:     "Cattle",
		ProductionMetrics: `[{"type":"Milk","value":"18"}]`,
	})
	require.NotNil(t, got)
	assert.Equal(t, "Cattle Production Report", got.ReportTitle)
	assert.Equal(t, []string{"Review ration"}, got.Recommendations)

	// The farm data travels in the user prompt, not the system prompt.
	assert.Contains(t, gen.lastUser, "Cattle")
	assert.Contains(t, gen.lastUser, `\"type\":\"Milk\"`)
}

func TestProductionInsightsServiceFailure(t *testing.T) {
	r := NewRequester(&stubGenerator{err: errors.New("quota exceeded")}, nil)
	got := r.ProductionInsights(context.Background(), ProductionInsightsInput{LivestockType: "Cattle"})
	assert.Nil(t, got)
}

func TestProductionInsightsMalformedResponse(t *testing.T) {
	r := NewRequester(&stubGenerator{response: "not json"}, nil)
	got := r.ProductionInsights(context.Background(), ProductionInsightsInput{LivestockType: "Cattle"})
	assert.Nil(t, got)
}

func TestProfitSuggestions(t *testing.T) {
	gen := &stubGenerator{response: `{"suggestions": "Cut feed costs: buy in bulk.\nRaise prices: demand supports it."}`}
	r := NewRequester(gen, nil)

	got := r.ProfitSuggestions(context.Background(), ProfitOptimizationInput{FinancialData: "[]"})
	require.Len(t, got, 2)
	assert.Equal(t, "Cut feed costs", got[0].Title)
	assert.Equal(t, "Raise prices", got[1].Title)
}

func TestProfitSuggestionsFallbackOnFailure(t *testing.T) {
	r := NewRequester(&stubGenerator{err: errors.New("network unreachable")}, nil)

	got := r.ProfitSuggestions(context.Background(), ProfitOptimizationInput{})
	require.Len(t, got, 1)
	assert.Equal(t, DefaultTitle, got[0].Title)
	assert.Equal(t, FallbackSuggestion, got[0].Description)
}

func TestProfitSuggestionsFallbackOnMalformedResponse(t *testing.T) {
	r := NewRequester(&stubGenerator{response: `{"wrong": "shape"}`}, nil)

	got := r.ProfitSuggestions(context.Background(), ProfitOptimizationInput{})
	require.Len(t, got, 1)
	assert.Equal(t, FallbackSuggestion, got[0].Description)
}

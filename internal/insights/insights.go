// Package insights formats farm data into prompts for an external generative
// text service and validates the structured responses. Service failures are
// absorbed at this boundary: callers get a nil or placeholder result and a
// logged diagnostic, never an error. No retry is attempted.
package insights

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// FallbackSuggestion is the fixed user-visible error state for the profit
// optimizer when the service call fails.
const FallbackSuggestion = "Failed to load AI suggestions. Please try again later."

// Generator is the seam to the external text service: one structured-output
// request, one JSON response matching the declared schema.
type Generator interface {
	Generate(ctx context.Context, system, user string, schema *genai.Schema) (string, error)
}

type ProductionInsightsInput struct {
	LivestockType           string `json:"livestockType"`
	ProductionMetrics       string `json:"productionMetrics"` // JSON-encoded metrics
	FarmManagementPractices string `json:"farmManagementPractices"`
}

type ProductionInsights struct {
	ReportTitle               string   `json:"reportTitle"`
	ExecutiveSummary          string   `json:"executiveSummary"`
	TrendAnalysis             string   `json:"trendAnalysis"`
	Recommendations           []string `json:"recommendations"`
	ProfitOpportunities       []string `json:"profitOpportunities"`
	AnimalWellnessSuggestions []string `json:"animalWellnessSuggestions"`
}

type ProfitOptimizationInput struct {
	FinancialData              string `json:"financialData"`              // JSON-encoded
	LivestockProductionMetrics string `json:"livestockProductionMetrics"` // JSON-encoded
}

type Requester struct {
	gen     Generator
	log     *zap.Logger
	timeout time.Duration
}

func NewRequester(gen Generator, log *zap.Logger) *Requester {
	if log == nil {
		log = zap.NewNop()
	}
	return &Requester{gen: gen, log: log, timeout: 60 * time.Second}
}

const productionSystemPrompt = `You are an experienced livestock production consultant.
Given the farm's livestock type, its recorded production metrics, and the farm's
management practices, produce a production insights report. Be specific and
ground every observation in the supplied data.`

const profitSystemPrompt = `You are a farm profitability advisor. Given the farm's
financial records and livestock production metrics, suggest concrete ways to
improve profit. Return one suggestion per line, each formatted as
"Title: description".`

// ProductionInsights requests the structured production report. Any failure
// (network, schema mismatch, empty response) yields nil.
func (r *Requester) ProductionInsights(ctx context.Context, in ProductionInsightsInput) *ProductionInsights {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	user, err := json.Marshal(in)
	if err != nil {
		r.log.Error("insights input not serializable", zap.Error(err))
		return nil
	}

	raw, err := r.gen.Generate(ctx, productionSystemPrompt, string(user), productionInsightsSchema())
	if err != nil {
		r.log.Warn("production insights request failed", zap.Error(err))
		requests.WithLabelValues("production", "error").Inc()
		return nil
	}
	var out ProductionInsights
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		r.log.Warn("production insights response did not match schema", zap.Error(err))
		requests.WithLabelValues("production", "error").Inc()
		return nil
	}
	requests.WithLabelValues("production", "ok").Inc()
	return &out
}

// ProfitSuggestions requests newline-delimited profit suggestions and parses
// them into titled entries. On failure it returns the single fixed fallback
// rather than an error.
func (r *Requester) ProfitSuggestions(ctx context.Context, in ProfitOptimizationInput) []Suggestion {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	user, err := json.Marshal(in)
	if err != nil {
		r.log.Error("profit input not serializable", zap.Error(err))
		return ParseSuggestions(FallbackSuggestion)
	}

	raw, err := r.gen.Generate(ctx, profitSystemPrompt, string(user), profitSuggestionsSchema())
	if err != nil {
		r.log.Warn("profit suggestions request failed", zap.Error(err))
		requests.WithLabelValues("profit", "error").Inc()
		return ParseSuggestions(FallbackSuggestion)
	}
	var out struct {
		Suggestions string `json:"suggestions"`
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil || out.Suggestions == "" {
		r.log.Warn("profit suggestions response did not match schema", zap.Error(err))
		requests.WithLabelValues("profit", "error").Inc()
		return ParseSuggestions(FallbackSuggestion)
	}
	requests.WithLabelValues("profit", "ok").Inc()
	return ParseSuggestions(out.Suggestions)
}

func productionInsightsSchema() *genai.Schema {
	stringList := &genai.Schema{Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}}
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"reportTitle":               {Type: genai.TypeString},
			"executiveSummary":          {Type: genai.TypeString},
			"trendAnalysis":             {Type: genai.TypeString},
			"recommendations":           stringList,
			"profitOpportunities":       stringList,
			"animalWellnessSuggestions": stringList,
		},
		Required: []string{
			"reportTitle", "executiveSummary", "trendAnalysis",
			"recommendations", "profitOpportunities", "animalWellnessSuggestions",
		},
	}
}

func profitSuggestionsSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"suggestions": {Type: genai.TypeString, Description: "One suggestion per line, formatted as Title: description"},
		},
		Required: []string{"suggestions"},
	}
}

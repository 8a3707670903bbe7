package main

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"farmkeep/backend/internal/insights"
	"farmkeep/backend/internal/model"
	"farmkeep/backend/internal/store"
)

func insightsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Generate AI-backed reports from the stored farm data",
	}
	cmd.AddCommand(productionInsightsCmd())
	cmd.AddCommand(profitInsightsCmd())
	return cmd
}

func productionInsightsCmd() *cobra.Command {
	var practices string

	cmd := &cobra.Command{
		Use:   "production <livestock-type>",
		Short: "Generate a production insights report for a livestock type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, st, cleanup, err := setupInsights(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			livestockType := args[0]
			animals := store.Load[model.Animal](st, model.KeyLivestock)
			metrics := make([]model.ProductionMetric, 0)
			for _, a := range model.AnimalsInCategory(animals, livestockType) {
				metrics = append(metrics, a.ProductionMetrics...)
			}
			metricsJSON, _ := json.Marshal(metrics)

			result := req.ProductionInsights(cmd.Context(), insights.ProductionInsightsInput{
				LivestockType:           livestockType,
				ProductionMetrics:       string(metricsJSON),
				FarmManagementPractices: practices,
			})
			if result == nil {
				color.Red("Failed to generate the AI report")
				return nil
			}

			color.New(color.Bold).Println(result.ReportTitle)
			fmt.Println()
			fmt.Println(result.ExecutiveSummary)
			fmt.Println()
			color.New(color.Bold).Println("Trend Analysis")
			fmt.Println(result.TrendAnalysis)
			printList("Recommendations", result.Recommendations)
			printList("Profit Opportunities", result.ProfitOpportunities)
			printList("Animal Wellness", result.AnimalWellnessSuggestions)
			return nil
		},
	}

	cmd.Flags().StringVar(&practices, "practices", "", "free-text description of the farm's management practices")
	return cmd
}

func profitInsightsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profit",
		Short: "Generate profit optimization suggestions",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, st, cleanup, err := setupInsights(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			records := store.Load[model.FinancialRecord](st, model.KeyFinancial)
			animals := store.Load[model.Animal](st, model.KeyLivestock)
			metrics := make([]model.ProductionMetric, 0)
			for _, a := range animals {
				metrics = append(metrics, a.ProductionMetrics...)
			}
			financeJSON, _ := json.Marshal(records)
			metricsJSON, _ := json.Marshal(metrics)

			suggestions := req.ProfitSuggestions(cmd.Context(), insights.ProfitOptimizationInput{
				FinancialData:              string(financeJSON),
				LivestockProductionMetrics: string(metricsJSON),
			})
			for _, sg := range suggestions {
				color.New(color.Bold).Printf("%s: ", sg.Title)
				fmt.Println(sg.Description)
			}
			return nil
		},
	}
}

func setupInsights(cmd *cobra.Command) (*insights.Requester, *store.Store, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	log, err := newLogger(cfg.Debug)
	if err != nil {
		return nil, nil, nil, err
	}
	req := newRequester(cmd.Context(), cfg, log)
	if req == nil {
		_ = log.Sync()
		return nil, nil, nil, fmt.Errorf("GEMINI_API_KEY is not configured")
	}
	st, err := openStore(cfg, log)
	if err != nil {
		_ = log.Sync()
		return nil, nil, nil, err
	}
	cleanup := func() {
		_ = st.Close()
		_ = log.Sync()
	}
	return req, st, cleanup, nil
}

func printList(title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Println()
	color.New(color.Bold).Println(title)
	for _, item := range items {
		fmt.Printf("  - %s\n", item)
	}
}

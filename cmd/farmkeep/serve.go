package main

import (
	"context"
	"net/http"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"farmkeep/backend/internal/api"
	"farmkeep/backend/internal/config"
	"farmkeep/backend/internal/insights"
	"farmkeep/backend/internal/report"
	"farmkeep/backend/internal/store"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the local API server for the app UI",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			log, err := newLogger(cfg.Debug)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			st, err := openStore(cfg, log)
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			srv := api.NewServer(api.Options{
				Store:           st,
				Insights:        newRequester(cmd.Context(), cfg, log),
				Profile:         profileFromConfig(cfg),
				DefaultCurrency: cfg.Currency,
				CORSOrigins:     cfg.CORSAllowedOrigins,
				Log:             log,
			})

			log.Info("farmkeep serving", zap.String("port", cfg.Port), zap.String("driver", cfg.DataDriver))
			return http.ListenAndServe(":"+cfg.Port, srv.Mux())
		},
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if debug {
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return zcfg.Build()
}

func openStore(cfg config.Config, log *zap.Logger) (*store.Store, error) {
	backend, err := store.Open(cfg.DataDriver, cfg.DataDir)
	if err != nil {
		return nil, err
	}
	return store.New(backend, log), nil
}

// newRequester returns nil when no API key is configured; AI features are
// simply absent in that case, everything else keeps working.
func newRequester(ctx context.Context, cfg config.Config, log *zap.Logger) *insights.Requester {
	if cfg.GeminiAPIKey == "" {
		return nil
	}
	gen, err := insights.NewGeminiGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Warn("AI insights disabled", zap.Error(err))
		return nil
	}
	return insights.NewRequester(gen, log)
}

func profileFromConfig(cfg config.Config) report.Profile {
	return report.Profile{
		FarmName: cfg.FarmName,
		Manager:  cfg.FarmManager,
		Location: cfg.FarmLocation,
	}
}

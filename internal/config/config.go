package config

import (
	"os"
	"strings"
)

type Config struct {
	Port               string
	DataDriver         string
	DataDir            string
	FarmName           string
	FarmManager        string
	FarmLocation       string
	Currency           string
	GeminiAPIKey       string
	GeminiModel        string
	CORSAllowedOrigins []string
	Debug              bool
}

func Load() (Config, error) {
	cfg := Config{
		Port:               getEnvOrDefault("PORT", "8080"),
		DataDriver:         getEnvOrDefault("FARMKEEP_DATA_DRIVER", "fs"),
		DataDir:            getEnvOrDefault("FARMKEEP_DATA_DIR", "./farmdata"),
		FarmName:           getEnvOrDefault("FARM_NAME", "My Farm"),
		FarmManager:        strings.TrimSpace(os.Getenv("FARM_MANAGER")),
		FarmLocation:       strings.TrimSpace(os.Getenv("FARM_LOCATION")),
		Currency:           getEnvOrDefault("FARM_CURRENCY", "USD"),
		GeminiAPIKey:       strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		GeminiModel:        strings.TrimSpace(os.Getenv("GEMINI_MODEL")),
		CORSAllowedOrigins: splitCSVEnv(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173,http://127.0.0.1:5173")),
		Debug:              os.Getenv("FARMKEEP_DEBUG") == "1",
	}
	return cfg, nil
}

func getEnvOrDefault(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func splitCSVEnv(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		item := strings.TrimSpace(p)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}

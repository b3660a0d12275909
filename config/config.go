package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the solar ROI service.
type Config struct {
	// Server configuration
	Port           string
	AllowedOrigins string

	// Rate limiting
	RateLimitPerMinute int

	// Gemini configuration (empty API key disables AI insights; the numeric
	// fallback estimator still answers)
	GeminiAPIKey string
	GeminiModel  string

	// Geocoding
	NominatimBaseURL string

	// Optional MySQL DSN for the geocode cache; empty disables caching.
	GeocodeCacheDSN string

	// Regional defaults. The tariff/irradiance pair is the deploy-time answer
	// to which constant set is authoritative; defaults are the Malaysian ones.
	ElectricityRate float64 // currency per kWh
	SolarIrradiance float64 // kWh/m²/day
	PanelEfficiency float64 // assumed efficiency for survey estimates

	// Mock survey generation
	SurveySeed        int64 // 0 seeds from the clock
	SurveyPeakMonth   int   // zero-based month the generation curve peaks at
	SeasonalAmplitude float64

	// Session hand-off lifetime
	SessionTTL time.Duration

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables.
func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "*"),

		RateLimitPerMinute: getIntEnv("RATE_LIMIT_PER_MINUTE", 60),

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.0-flash"),

		NominatimBaseURL: getEnv("NOMINATIM_BASE_URL", ""),
		GeocodeCacheDSN:  getEnv("GEOCODE_CACHE_DSN", ""),

		ElectricityRate: getFloatEnv("ELECTRICITY_RATE", 0.40),
		SolarIrradiance: getFloatEnv("SOLAR_IRRADIANCE", 5.0),
		PanelEfficiency: getFloatEnv("PANEL_EFFICIENCY", 0.20),

		SurveySeed:        int64(getIntEnv("SURVEY_SEED", 0)),
		SurveyPeakMonth:   getIntEnv("SURVEY_PEAK_MONTH", 2),
		SeasonalAmplitude: getFloatEnv("SURVEY_SEASONAL_AMPLITUDE", 0.12),

		SessionTTL: getDurationEnv("SESSION_TTL", 30*time.Minute),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

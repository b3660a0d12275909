package main

import (
	"database/sql"
	"time"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"solar-roi-service/config"
	"solar-roi-service/geocode"
	"solar-roi-service/handlers"
	"solar-roi-service/insights"
	"solar-roi-service/metrics"
	"solar-roi-service/middleware"
	"solar-roi-service/session"
	"solar-roi-service/survey"
)

const (
	EndPointHealth         = "/health"
	EndPointVersion        = "/version"
	EndPointMetrics        = "/metrics"
	EndPointROI            = "/api/roi"
	EndPointAnalyze        = "/api/roof/analyze"
	EndPointResults        = "/api/results/:id"
	EndPointSelectPanel    = "/api/results/:id/panel"
	EndPointInsights       = "/api/insights"
	EndPointPanels         = "/api/panels"
	EndPointGeocode        = "/api/geocode"
	EndPointReverseGeocode = "/api/geocode/reverse"
)

func main() {
	cfg := config.Load()

	log.SetLevelFromString(cfg.LogLevel)
	log.Info("Starting the solar ROI service...")

	metrics.Register()

	geocoder := buildGeocoder(cfg)
	provider := buildInsightsProvider(cfg)
	sessions := session.NewStore(cfg.SessionTTL)
	surveys := buildSurveyGenerator(cfg)

	h := handlers.New(cfg, geocoder, provider, sessions, surveys)

	router := gin.Default()

	// CORS for the map-drawing frontend.
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", cfg.AllowedOrigins)
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	router.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		if ep := c.FullPath(); ep != "" {
			metrics.RequestDurationSeconds.WithLabelValues(ep).Observe(time.Since(start).Seconds())
		}
	})

	router.GET(EndPointHealth, h.HealthCheck)
	router.GET(EndPointVersion, h.Version)
	router.GET(EndPointMetrics, gin.WrapH(promhttp.Handler()))

	rateLimited := router.Group("/")
	rateLimited.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))
	{
		rateLimited.POST(EndPointROI, h.ComputeROI)
		rateLimited.POST(EndPointAnalyze, h.AnalyzeRoof)
		rateLimited.GET(EndPointResults, h.GetResults)
		rateLimited.POST(EndPointSelectPanel, h.SelectPanel)
		rateLimited.POST(EndPointInsights, h.GetInsights)
		rateLimited.GET(EndPointPanels, h.ListPanels)
		rateLimited.GET(EndPointGeocode, h.Geocode)
		rateLimited.GET(EndPointReverseGeocode, h.ReverseGeocode)
	}

	log.Infof("Solar ROI service starting on port %s", cfg.Port)
	log.Infof("Rate limit: %d requests per minute", cfg.RateLimitPerMinute)
	log.Infof("Regional defaults: %.2f/kWh tariff, %.1f kWh/m²/day irradiance",
		cfg.ElectricityRate, cfg.SolarIrradiance)

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// buildGeocoder assembles the Nominatim client, wrapped in the MySQL cache
// when a DSN is configured.
func buildGeocoder(cfg *config.Config) geocode.Geocoder {
	client := geocode.NewClient(cfg.NominatimBaseURL)
	if cfg.GeocodeCacheDSN == "" {
		return client
	}

	db, err := sql.Open("mysql", cfg.GeocodeCacheDSN)
	if err != nil {
		log.Errorf("Opening geocode cache database: %v; continuing uncached", err)
		return client
	}
	cached := geocode.NewCachedClient(client, db)
	if err := cached.CreateCacheTable(); err != nil {
		log.Errorf("Preparing geocode cache: %v; continuing uncached", err)
		return client
	}
	log.Info("Geocode cache enabled")
	return cached
}

// buildInsightsProvider picks the AI provider. Without an API key every
// insight request is answered by the numeric fallback.
func buildInsightsProvider(cfg *config.Config) insights.Provider {
	if cfg.GeminiAPIKey == "" {
		log.Warn("GEMINI_API_KEY not set; AI insights disabled, numeric fallback only")
		return nil
	}
	return insights.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel, "")
}

func buildSurveyGenerator(cfg *config.Config) *survey.Generator {
	seed := cfg.SurveySeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return survey.NewSeeded(survey.Config{
		ElectricityRate:   cfg.ElectricityRate,
		Irradiance:        cfg.SolarIrradiance,
		PanelEfficiency:   cfg.PanelEfficiency,
		PeakMonth:         cfg.SurveyPeakMonth,
		SeasonalAmplitude: cfg.SeasonalAmplitude,
	}, seed)
}

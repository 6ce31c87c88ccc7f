package main

import (
	"context"
	"flag"
	"net/http"
	"strings"
	"time"

	"aviation-ingest-service/internal/infrastructure/config"
	"aviation-ingest-service/internal/infrastructure/credentials"
	"aviation-ingest-service/internal/infrastructure/oauth"
	"aviation-ingest-service/internal/infrastructure/persistence"
	"aviation-ingest-service/internal/interface/provider"
	warehouseRepo "aviation-ingest-service/internal/interface/repository"
	"aviation-ingest-service/internal/usecase"
	"aviation-ingest-service/pkg/logger"
	"aviation-ingest-service/pkg/metrics"
	"aviation-ingest-service/pkg/timeutil"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	dateFlag := flag.String("date", "", "ingestion date (YYYY-MM-DD, default: today UTC)")
	airportsFlag := flag.String("airports", "", "comma-separated airport ICAO codes (overrides AIRPORTS)")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	// Create logger
	log := logger.NewLoggerWithLevel(cfg.LogLevel)
	log.Info("Starting aviation ingest run")

	date := *dateFlag
	if date == "" {
		date = time.Now().UTC().Format(timeutil.DateLayout)
	}

	airports := cfg.Airports
	if *airportsFlag != "" {
		airports = splitAirports(*airportsFlag)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Resolve provider credentials
	resolver := credentials.NewResolver(log)

	clientID, clientSecret, err := resolver.ResolvePair("OPENSKY_CLIENT_ID", "OPENSKY_CLIENT_SECRET", cfg.OpenSkyCredentialsFile)
	if err != nil {
		log.Fatal("Failed to resolve OpenSky credentials", "error", err)
	}

	apiKey, err := resolver.Resolve("AERODATABOX_API_KEY", cfg.AeroDataBoxKeyFile, "key")
	if err != nil {
		log.Fatal("Failed to resolve AeroDataBox key", "error", err)
	}

	// Set up warehouse connection, scoped to this run
	log.Info("Connecting to warehouse")
	db, err := persistence.NewPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("Failed to connect to warehouse", "error", err)
	}
	defer persistence.Close(db)

	m := metrics.NewMetrics("aviation_ingest")

	// Optional metrics listener while the batch run proceeds
	if cfg.MetricsPort != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("Healthy"))
		})
		go func() {
			log.Info("Starting metrics listener", "port", cfg.MetricsPort)
			if err := http.ListenAndServe(":"+cfg.MetricsPort, mux); err != nil {
				log.Error("Metrics listener error", "error", err)
			}
		}()
	}

	// Wire providers
	openSkyOAuth := oauth.NewOpenSkyOAuth(clientID, clientSecret, cfg.OpenSkyAuthURL, log)
	openSkyClient := provider.NewOpenSkyClient(
		openSkyOAuth,
		cfg.OpenSkyBaseURL,
		cfg.OpenSkyEndpoint,
		cfg.OpenSkyTimeout,
		cfg.TokenRetryBudget,
		cfg.DefaultBackoff,
		cfg.MaxBackoffAttempts,
		m,
		log,
	)
	aeroDataBoxClient := provider.NewAeroDataBoxClient(
		cfg.AeroDataBoxBaseURL,
		cfg.AeroDataBoxEndpoint,
		apiKey,
		cfg.AeroDataBoxTimeout,
		m,
		log,
	)

	// Wire ingestion
	warehouse := warehouseRepo.NewGormWarehouseRepository(db, m, log)
	movementIngestor := usecase.NewMovementIngestor(openSkyClient, log)
	scheduleIngestor := usecase.NewScheduleIngestor(aeroDataBoxClient, log)
	runner := usecase.NewRunner(movementIngestor, scheduleIngestor, warehouse, airports, log)
	runner.MovementAirports = cfg.MovementAirports

	if err := runner.Run(ctx, date); err != nil {
		log.Fatal("Ingestion run failed", "date", date, "error", err)
	}

	log.Info("Aviation ingest run finished", "date", date)
}

func splitAirports(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

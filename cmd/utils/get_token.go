package main

import (
	"context"
	"fmt"
	"log"

	"aviation-ingest-service/internal/infrastructure/config"
	"aviation-ingest-service/internal/infrastructure/credentials"
	"aviation-ingest-service/internal/infrastructure/oauth"
	"aviation-ingest-service/pkg/logger"
)

// One-shot helper: mint an OpenSky bearer token with the configured
// credentials and print it, for poking the API by hand.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	lg := logger.NewLogger()
	resolver := credentials.NewResolver(lg)

	clientID, clientSecret, err := resolver.ResolvePair("OPENSKY_CLIENT_ID", "OPENSKY_CLIENT_SECRET", cfg.OpenSkyCredentialsFile)
	if err != nil {
		log.Fatalf("failed to resolve credentials: %v", err)
	}

	auth := oauth.NewOpenSkyOAuth(clientID, clientSecret, cfg.OpenSkyAuthURL, lg)
	token, err := auth.AcquireToken(context.Background())
	if err != nil {
		log.Fatalf("failed to acquire token: %v", err)
	}

	fmt.Printf("\nAccess Token: %s\n\n", token)
}

package oauth

import (
	"context"
	"fmt"

	"golang.org/x/oauth2/clientcredentials"

	"aviation-ingest-service/internal/domain/entity"
	"aviation-ingest-service/pkg/logger"
)

// OpenSkyOAuth handles client-credentials authentication with the OpenSky
// realm. Tokens are minted on demand, held in memory for the duration of one
// run, and reminted when the API answers 401.
type OpenSkyOAuth struct {
	config *clientcredentials.Config
	logger logger.Logger
}

// NewOpenSkyOAuth creates a new OpenSky OAuth handler
func NewOpenSkyOAuth(clientID, clientSecret, tokenURL string, logger logger.Logger) *OpenSkyOAuth {
	config := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
	}

	return &OpenSkyOAuth{
		config: config,
		logger: logger,
	}
}

// AcquireToken mints a fresh bearer token via the client-credentials grant.
// The provider manages expiry (nominally 30 minutes); callers discard the
// token at the end of the run.
func (o *OpenSkyOAuth) AcquireToken(ctx context.Context) (string, error) {
	o.logger.Info("Requesting new access token")

	token, err := o.config.Token(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %v", entity.ErrAuth, err)
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("%w: token endpoint returned no access_token", entity.ErrAuth)
	}

	o.logger.Info("Access token acquired", "expiry", token.Expiry)
	return token.AccessToken, nil
}

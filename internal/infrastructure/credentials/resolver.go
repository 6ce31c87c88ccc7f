// Package credentials resolves API secrets from environment variables with a
// local JSON credentials file as fallback, uniformly across both providers.
package credentials

import (
	"encoding/json"
	"fmt"
	"os"

	"aviation-ingest-service/internal/domain/entity"
	"aviation-ingest-service/pkg/logger"
)

// Resolver reads credential values for one provider
type Resolver struct {
	logger logger.Logger
}

// NewResolver creates a new credential resolver
func NewResolver(logger logger.Logger) *Resolver {
	return &Resolver{logger: logger}
}

// Resolve returns the value of the named environment variable, or falls back
// to fileKey inside the JSON file at filePath. The chosen source is logged
// for operational debugging; the value itself never is.
func (r *Resolver) Resolve(envVar, filePath, fileKey string) (string, error) {
	if value := os.Getenv(envVar); value != "" {
		r.logger.Info("Credential resolved from environment", "envVar", envVar)
		return value, nil
	}

	creds, err := r.readFile(filePath)
	if err != nil {
		return "", err
	}

	value, ok := creds[fileKey]
	if !ok || value == "" {
		return "", fmt.Errorf("%w: neither env %s nor key %q in %s", entity.ErrCredentialNotFound, envVar, fileKey, filePath)
	}

	r.logger.Info("Credential resolved from file", "file", filePath, "key", fileKey)
	return value, nil
}

// ResolvePair resolves a client id and secret that share one fallback file,
// the {"clientId": ..., "clientSecret": ...} layout.
func (r *Resolver) ResolvePair(idEnv, secretEnv, filePath string) (string, string, error) {
	id, err := r.Resolve(idEnv, filePath, "clientId")
	if err != nil {
		return "", "", err
	}
	secret, err := r.Resolve(secretEnv, filePath, "clientSecret")
	if err != nil {
		return "", "", err
	}
	return id, secret, nil
}

func (r *Resolver) readFile(filePath string) (map[string]string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, &entity.CredentialFileError{Path: filePath, Err: err}
	}

	var creds map[string]string
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, &entity.CredentialFileError{Path: filePath, Err: fmt.Errorf("not valid JSON: %w", err)}
	}
	return creds, nil
}

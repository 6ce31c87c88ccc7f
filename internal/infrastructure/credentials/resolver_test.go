package credentials

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"aviation-ingest-service/internal/domain/entity"
	"aviation-ingest-service/pkg/logger"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "credentials.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestResolvePrefersEnvironment(t *testing.T) {
	t.Setenv("TEST_API_KEY", "from-env")
	path := writeFile(t, `{"key": "from-file"}`)

	r := NewResolver(logger.NewNop())
	value, err := r.Resolve("TEST_API_KEY", path, "key")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if value != "from-env" {
		t.Errorf("value = %q, want from-env", value)
	}
}

func TestResolveFallsBackToFile(t *testing.T) {
	path := writeFile(t, `{"key": "from-file"}`)

	r := NewResolver(logger.NewNop())
	value, err := r.Resolve("TEST_API_KEY_UNSET", path, "key")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if value != "from-file" {
		t.Errorf("value = %q, want from-file", value)
	}
}

func TestResolveMissingEverywhere(t *testing.T) {
	path := writeFile(t, `{"other": "x"}`)

	r := NewResolver(logger.NewNop())
	_, err := r.Resolve("TEST_API_KEY_UNSET", path, "key")
	if !errors.Is(err, entity.ErrCredentialNotFound) {
		t.Errorf("Resolve = %v, want ErrCredentialNotFound", err)
	}
}

func TestResolveFileErrors(t *testing.T) {
	r := NewResolver(logger.NewNop())

	var fileErr *entity.CredentialFileError
	if _, err := r.Resolve("TEST_API_KEY_UNSET", "/does/not/exist.json", "key"); !errors.As(err, &fileErr) {
		t.Errorf("missing file: error = %v, want CredentialFileError", err)
	}

	path := writeFile(t, `{not json`)
	if _, err := r.Resolve("TEST_API_KEY_UNSET", path, "key"); !errors.As(err, &fileErr) {
		t.Errorf("malformed file: error = %v, want CredentialFileError", err)
	}
}

func TestResolvePair(t *testing.T) {
	path := writeFile(t, `{"clientId": "cid", "clientSecret": "secret"}`)

	r := NewResolver(logger.NewNop())
	id, secret, err := r.ResolvePair("TEST_CID_UNSET", "TEST_SECRET_UNSET", path)
	if err != nil {
		t.Fatalf("ResolvePair: %v", err)
	}
	if id != "cid" || secret != "secret" {
		t.Errorf("pair = %q/%q", id, secret)
	}
}

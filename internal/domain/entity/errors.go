package entity

import (
	"errors"
	"fmt"
)

// ErrCredentialNotFound indicates neither the environment variable nor the
// fallback credentials file yielded a value.
var ErrCredentialNotFound = errors.New("credential not found")

// ErrAuth indicates the token endpoint rejected the client-credentials grant
// or was unreachable.
var ErrAuth = errors.New("authentication failed")

// ErrAuthExhausted indicates the bounded token-refresh budget ran out while
// retrying a 401 response. It fails the whole run.
var ErrAuthExhausted = errors.New("token refresh budget exhausted")

// CredentialFileError indicates the credentials file is missing or malformed.
type CredentialFileError struct {
	Path string
	Err  error
}

func (e *CredentialFileError) Error() string {
	return fmt.Sprintf("credentials file %s: %v", e.Path, e.Err)
}

func (e *CredentialFileError) Unwrap() error { return e.Err }

// ProviderError is an unrecoverable provider response; it carries the HTTP
// status and response body for operators. Transport failures wrap the
// original cause with Status zero.
type ProviderError struct {
	Provider string
	Status   int
	Body     string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s request failed: %v", e.Provider, e.Err)
	}
	return fmt.Sprintf("%s returned status %d: %s", e.Provider, e.Status, e.Body)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// SchemaMismatchError indicates a buffered record diverges from the named
// column schema of its destination table. Raised before any SQL is issued.
type SchemaMismatchError struct {
	Table  string
	Detail string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("schema mismatch for table %s: %s", e.Table, e.Detail)
}

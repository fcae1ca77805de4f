// Package validate checks Mistral API credentials before a pipeline run,
// so a bad key fails fast with a clear message instead of mid-pipeline.
package validate

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"pdf-to-english/internal/logger"
	"pdf-to-english/internal/types"
)

// httpTimeout bounds the credential check request.
const httpTimeout = 30 * time.Second

// Handle is a validated credential pair, returned only when the server
// accepted the key. Stage clients are constructed from it.
type Handle struct {
	APIKey  string
	BaseURL string
}

// ValidateKeyFormat performs a local sanity check on an API key.
// Mistral keys have no documented fixed format, so this only rejects
// keys that are empty or whitespace.
func ValidateKeyFormat(key string) bool {
	return strings.TrimSpace(key) != ""
}

// ValidateKey verifies the key against the API by listing models, the
// cheapest authenticated endpoint. A non-nil Handle means the key was
// accepted; a nil Handle with a message means it was rejected. A handle
// is never returned on failure.
//
// A network fault is an error, not a verdict: the key may be fine.
func ValidateKey(ctx context.Context, key, baseURL string) (*Handle, string, error) {
	if !ValidateKeyFormat(key) {
		return nil, "API key is empty", nil
	}
	baseURL = strings.TrimRight(baseURL, "/")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/models", nil)
	if err != nil {
		return nil, "", types.NewAppError(types.ErrValidation, "failed to create validation request", err)
	}
	req.Header.Set("Authorization", "Bearer "+key)

	client := &http.Client{Timeout: httpTimeout}
	resp, err := client.Do(req)
	if err != nil {
		logger.Error("key validation request failed", err)
		return nil, "", types.NewAppError(types.ErrNetwork, "could not reach the API to validate the key", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	switch {
	case resp.StatusCode == http.StatusOK:
		logger.Info("API key validated", logger.String("baseURL", baseURL))
		return &Handle{APIKey: key, BaseURL: baseURL}, "API key is valid", nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, "API key was rejected by the server", nil
	default:
		return nil, "", types.NewAppErrorWithDetails(
			types.ErrValidation,
			"unexpected response while validating the key",
			resp.Status,
			nil,
		)
	}
}

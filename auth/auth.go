// Package auth gates requests on an external authentication service: the
// core only needs "is this bearer token valid, and for whom".
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

var ErrInvalidToken = errors.New("invalid token")

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type Verifier interface {
	Verify(ctx context.Context, token string) (*User, error)
}

// HTTPVerifier validates tokens against a GoTrue-compatible auth endpoint
// (GET {base}/auth/v1/user with the bearer token).
type HTTPVerifier struct {
	baseURL string
	client  *http.Client
}

func NewHTTPVerifier(baseURL string) *HTTPVerifier {
	return &HTTPVerifier{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (v *HTTPVerifier) Verify(ctx context.Context, token string) (*User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, fmt.Errorf("build auth request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("auth request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, ErrInvalidToken
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("auth service returned %d", resp.StatusCode)
	}

	var u User
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		return nil, fmt.Errorf("decode auth response: %w", err)
	}
	if u.ID == "" {
		return nil, ErrInvalidToken
	}
	return &u, nil
}

// StaticVerifier maps fixed tokens to users. Used for single-operator
// deployments without an auth service, and as the test stub.
type StaticVerifier map[string]User

func (v StaticVerifier) Verify(_ context.Context, token string) (*User, error) {
	u, ok := v[token]
	if !ok {
		return nil, ErrInvalidToken
	}
	return &u, nil
}

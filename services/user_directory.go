// services/user_directory.go
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// UserInfo is the subset of the directory's user record the dispatcher and
// the CRUD service need.
type UserInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserDirectory resolves user ids against the external directory. Lookup
// returns (nil, nil) when the user does not exist.
type UserDirectory interface {
	Lookup(ctx context.Context, userID string) (*UserInfo, error)
}

// HTTPUserDirectory talks to the frontend's user API.
type HTTPUserDirectory struct {
	baseURL string
	authKey string
	client  *http.Client
}

func NewHTTPUserDirectory(baseURL, authKey string) *HTTPUserDirectory {
	return &HTTPUserDirectory{
		baseURL: baseURL,
		authKey: authKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (d *HTTPUserDirectory) Lookup(ctx context.Context, userID string) (*UserInfo, error) {
	endpoint := fmt.Sprintf("%s/api/users/%s?auth=%s",
		d.baseURL, url.PathEscape(userID), url.QueryEscape(d.authKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("user lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("user lookup failed: status %d", resp.StatusCode)
	}

	var payload struct {
		User *UserInfo `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("user lookup failed: %w", err)
	}

	return payload.User, nil
}

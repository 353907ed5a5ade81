package secretstore

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// HTTPStore fetches secret payloads from a Barbican-style HTTP secret
// store: GET {BaseURL}/{reference} returns the cleartext body, 404 means
// not-found, anything else is treated as transient.
type HTTPStore struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPStore builds an HTTPStore against baseURL using http.DefaultClient
// unless client is supplied.
func NewHTTPStore(baseURL string, client *http.Client) *HTTPStore {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPStore{BaseURL: baseURL, Client: client}
}

func (s *HTTPStore) Fetch(ctx context.Context, reference string) ([]byte, error) {
	endpoint, err := url.JoinPath(s.BaseURL, url.PathEscape(reference))
	if err != nil {
		return nil, &TransientError{Reference: reference, Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &TransientError{Reference: reference, Cause: err}
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, &TransientError{Reference: reference, Cause: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, &NotFoundError{Reference: reference}
	case resp.StatusCode >= 500:
		return nil, &TransientError{Reference: reference, Cause: fmt.Errorf("status %d", resp.StatusCode)}
	case resp.StatusCode != http.StatusOK:
		return nil, &TransientError{Reference: reference, Cause: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransientError{Reference: reference, Cause: err}
	}
	return body, nil
}

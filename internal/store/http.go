package store

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dompet-dev/dompet/internal/model"
)

// HTTPStore talks to a dompet server's /api/data endpoints.
type HTTPStore struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewHTTPStore creates a client for the server at baseURL. A non-empty
// token is sent as a bearer credential.
func NewHTTPStore(baseURL, token string) *HTTPStore {
	return &HTTPStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *HTTPStore) endpoint(key string) string {
	return s.baseURL + "/api/data/" + url.PathEscape(key)
}

func (s *HTTPStore) Load(ctx context.Context, key string) (model.Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint(key), nil)
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("building request: %w", err)
	}
	body, status, err := s.do(req)
	if err != nil {
		return model.Snapshot{}, err
	}
	if status == http.StatusNotFound {
		return model.EmptySnapshot(), nil
	}
	if status != http.StatusOK {
		return model.Snapshot{}, fmt.Errorf("loading %q: server returned %d: %s", key, status, bytes.TrimSpace(body))
	}
	return Decode(body)
}

func (s *HTTPStore) Save(ctx context.Context, key string, snap model.Snapshot) error {
	data, err := Encode(snap)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint(key), bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	body, status, err := s.do(req)
	if err != nil {
		return err
	}
	if status < 200 || status >= 300 {
		return fmt.Errorf("saving %q: server returned %d: %s", key, status, bytes.TrimSpace(body))
	}
	return nil
}

func (s *HTTPStore) do(req *http.Request) ([]byte, int, error) {
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("reading response: %w", err)
	}
	return body, resp.StatusCode, nil
}

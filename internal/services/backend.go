// Analysis backend implementation of [Backend]
//
// Communicates with the companion service that owns the Spotify app
// credentials and the AI summarization call.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/nafisuddinn/spotify-ai-analysis/internal/models"
	"github.com/nafisuddinn/spotify-ai-analysis/internal/shared"
)

const defaultBackendURL = "http://127.0.0.1:8000"

// BackendService implements [Backend] over the companion service's HTTP API.
type BackendService struct {
	baseURL    string
	httpClient *http.Client
}

// NewBackendService creates a backend gateway for the given base URL.
func NewBackendService(baseURL string, client *http.Client) *BackendService {
	if baseURL == "" {
		baseURL = defaultBackendURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &BackendService{
		baseURL:    baseURL,
		httpClient: client,
	}
}

// LoginURL fetches the provider authorize URL from GET /login.
func (b *BackendService) LoginURL(ctx context.Context) (string, error) {
	var response struct {
		URL string `json:"url"`
	}

	if err := b.get(ctx, "/login", &response); err != nil {
		return "", err
	}

	if response.URL == "" {
		return "", fmt.Errorf("%w: backend returned no login URL", shared.ErrUpstream)
	}

	return response.URL, nil
}

// ExchangeCode swaps an authorization code for an access token via
// GET /callback?code=.
func (b *BackendService) ExchangeCode(ctx context.Context, code string) (string, error) {
	if code == "" {
		return "", fmt.Errorf("%w: missing authorization code", shared.ErrInvalidArgument)
	}

	var response struct {
		AccessToken string `json:"access_token"`
	}

	endpoint := "/callback?code=" + url.QueryEscape(code)
	if err := b.get(ctx, endpoint, &response); err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrAuthExchangeFailed, err)
	}

	if response.AccessToken == "" {
		return "", fmt.Errorf("%w: response contained no access token", shared.ErrAuthExchangeFailed)
	}

	return response.AccessToken, nil
}

// Analyze submits the track listing to POST /analyze-playlist and returns
// the generated summary.
//
// The backend charges an AI inference per request, so failures are
// surfaced to the caller and never retried here.
func (b *BackendService) Analyze(ctx context.Context, tracks []models.Track) (string, error) {
	body, err := json.Marshal(tracks)
	if err != nil {
		return "", fmt.Errorf("failed to marshal tracks: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/analyze-playlist", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrAnalysisFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp struct {
			Detail string `json:"detail"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Detail != "" {
			return "", fmt.Errorf("%w: status %d: %s", shared.ErrAnalysisFailed, resp.StatusCode, errResp.Detail)
		}
		return "", fmt.Errorf("%w: status %d", shared.ErrAnalysisFailed, resp.StatusCode)
	}

	var response struct {
		Summary string `json:"summary"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("%w: failed to decode response: %v", shared.ErrAnalysisFailed, err)
	}

	if response.Summary == "" {
		return "", fmt.Errorf("%w: response contained no summary", shared.ErrAnalysisFailed)
	}

	return response.Summary, nil
}

// get performs a GET against the backend and decodes the JSON body.
func (b *BackendService) get(ctx context.Context, endpoint string, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: backend unreachable: %v", shared.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: backend status %d", shared.ErrUpstream, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("%w: failed to decode response: %v", shared.ErrUpstream, err)
		}
	}

	return nil
}

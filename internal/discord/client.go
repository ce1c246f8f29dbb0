package discord

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/jarvisgaming/TaikoBot_Go/internal/domain"
	"github.com/jarvisgaming/TaikoBot_Go/internal/shop"
	"github.com/jarvisgaming/TaikoBot_Go/internal/submission"
)

// APIClient handles communication with the TaikoBot Core API
type APIClient struct {
	BaseURL string
	Client  *http.Client
	APIKey  string
}

// NewAPIClient creates a new API client
func NewAPIClient(baseURL, apiKey string) *APIClient {
	return &APIClient{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
		APIKey: apiKey,
	}
}

// doRequest performs an HTTP request with retry logic
func (c *APIClient) doRequest(method, path string, body interface{}) (*http.Response, error) {
	var reqBody []byte
	var err error

	if body != nil {
		reqBody, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal body: %w", err)
		}
	}

	url := fmt.Sprintf("%s%s", c.BaseURL, path)

	// Retry configuration
	maxRetries := 3
	retryDelay := 500 * time.Millisecond

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff with jitter
			jitter := time.Duration(time.Now().UnixNano()%100) * time.Millisecond
			delay := retryDelay*time.Duration(1<<uint(attempt-1)) + jitter
			time.Sleep(delay)
			slog.Info("Retrying API request", "attempt", attempt, "path", path, "delay", delay)
		}

		req, err := http.NewRequest(method, url, bytes.NewBuffer(reqBody))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		req.Header.Set("Content-Type", "application/json")
		if c.APIKey != "" {
			req.Header.Set("X-API-Key", c.APIKey)
		}

		resp, err := c.Client.Do(req)
		if err != nil {
			lastErr = err
			slog.Warn("API request failed", "error", err, "attempt", attempt)
			continue
		}

		// Success or non-retryable error
		if resp.StatusCode < 500 {
			return resp, nil
		}

		// Server error - retry
		resp.Body.Close()
		lastErr = fmt.Errorf("server error: %d", resp.StatusCode)
		slog.Warn("Server error, will retry", "status", resp.StatusCode, "attempt", attempt)
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

// apiError extracts the error message from a non-OK response body.
func apiError(resp *http.Response) error {
	var errResp struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error != "" {
		return fmt.Errorf("API error: %s", errResp.Error)
	}
	return fmt.Errorf("API returned status: %d", resp.StatusCode)
}

// RegisterUser links a Discord account to an osu! account
func (c *APIClient) RegisterUser(discordID string, osuID int, username string) (*domain.User, error) {
	req := map[string]interface{}{
		"discord_id": discordID,
		"osu_id":     osuID,
		"username":   username,
	}

	resp, err := c.doRequest(http.MethodPost, "/api/v1/user/register", req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, apiError(resp)
	}

	var user domain.User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}

	return &user, nil
}

// SubmitRecent asks the core API to process the user's recent scores
func (c *APIClient) SubmitRecent(discordID string, limit int) (*submission.BatchResult, error) {
	req := map[string]interface{}{
		"discord_id": discordID,
		"limit":      limit,
	}

	resp, err := c.doRequest(http.MethodPost, "/api/v1/submit", req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var batch submission.BatchResult
	if err := json.NewDecoder(resp.Body).Decode(&batch); err != nil {
		return nil, fmt.Errorf("failed to decode batch result: %w", err)
	}

	return &batch, nil
}

// GetProfile retrieves the user's progression snapshot
func (c *APIClient) GetProfile(discordID string) (*domain.ProfileSnapshot, error) {
	params := url.Values{}
	params.Set("discord_id", discordID)

	resp, err := c.doRequest(http.MethodGet, "/api/v1/user/profile?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var profile domain.ProfileSnapshot
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}

	return &profile, nil
}

// ListUpgrades retrieves the shop catalog annotated with the user's levels
func (c *APIClient) ListUpgrades(discordID string) ([]shop.Listing, error) {
	params := url.Values{}
	params.Set("discord_id", discordID)

	resp, err := c.doRequest(http.MethodGet, "/api/v1/shop/?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var listResp struct {
		Upgrades []shop.Listing `json:"upgrades"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&listResp); err != nil {
		return nil, fmt.Errorf("failed to decode upgrades: %w", err)
	}

	return listResp.Upgrades, nil
}

// BuyUpgrade purchases upgrade levels
func (c *APIClient) BuyUpgrade(discordID, upgradeID string, times int) (*shop.PurchaseResult, error) {
	req := map[string]interface{}{
		"discord_id": discordID,
		"upgrade_id": upgradeID,
		"times":      times,
	}

	resp, err := c.doRequest(http.MethodPost, "/api/v1/shop/buy", req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var result shop.PurchaseResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode purchase result: %w", err)
	}

	return &result, nil
}

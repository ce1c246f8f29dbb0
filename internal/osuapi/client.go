package osuapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/jarvisgaming/TaikoBot_Go/internal/config"
	"github.com/jarvisgaming/TaikoBot_Go/internal/domain"
	"github.com/jarvisgaming/TaikoBot_Go/internal/logger"
	"github.com/jarvisgaming/TaikoBot_Go/internal/metrics"
)

const (
	requestTimeout = 10 * time.Second

	// Renew the token this long before it actually expires.
	tokenExpiryMargin = time.Minute

	attrCacheSize = 2048
	attrCacheTTL  = 12 * time.Hour
)

// srChangingMods lists the mod acronyms that change a map's star rating and
// therefore require a modded attributes lookup.
var srChangingMods = []string{"HR", "EZ", "DT", "NC", "HT", "DC", "FL"}

// Client is an osu! v2 API client using the client-credentials grant. Safe
// for concurrent use; the access token is renewed lazily under a mutex and
// modded star ratings are served from an expiring LRU.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	tokenURL     string
	clientID     int
	clientSecret string

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time

	attrs *expirable.LRU[string, float64]
}

// NewClient creates a client from the application config.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		httpClient:   &http.Client{Timeout: requestTimeout},
		baseURL:      cfg.OsuAPIBaseURL,
		tokenURL:     cfg.OsuTokenURL,
		clientID:     cfg.OsuClientID,
		clientSecret: cfg.OsuClientSecret,
		attrs:        expirable.NewLRU[string, float64](attrCacheSize, nil, attrCacheTTL),
	}
}

// RecentScores returns the user's recent taiko scores, including fails, with
// star ratings adjusted for rate/difficulty mods.
func (c *Client) RecentScores(ctx context.Context, osuID, limit int) ([]domain.Score, error) {
	log := logger.FromContext(ctx)

	path := fmt.Sprintf("/users/%d/scores/recent?mode=taiko&include_fails=1&limit=%d", osuID, limit)
	var raw []apiScore
	if err := c.getJSON(ctx, "recent_scores", path, &raw); err != nil {
		return nil, fmt.Errorf("failed to fetch recent scores: %w", err)
	}

	scores := make([]domain.Score, 0, len(raw))
	for _, s := range raw {
		score, err := c.toDomainScore(ctx, s)
		if err != nil {
			// A single unparsable score shouldn't sink the whole fetch.
			log.Error("Skipping unparsable score", "scoreID", s.ID, "error", err)
			continue
		}
		scores = append(scores, score)
	}
	return scores, nil
}

func (c *Client) toDomainScore(ctx context.Context, s apiScore) (domain.Score, error) {
	endedAt, err := time.Parse(time.RFC3339, s.EndedAt)
	if err != nil {
		return domain.Score{}, fmt.Errorf("bad ended_at %q: %w", s.EndedAt, err)
	}

	mods := make([]domain.Mod, len(s.Mods))
	acronyms := make([]string, len(s.Mods))
	for i, m := range s.Mods {
		mods[i] = domain.Mod{Acronym: m.Acronym, Settings: m.Settings}
		acronyms[i] = m.Acronym
	}

	starRating := s.Beatmap.DifficultyRating
	if hasAny(acronyms, srChangingMods) {
		if modded, err := c.BeatmapStarRating(ctx, s.Beatmap.ID, acronyms); err != nil {
			// Fall back to the listing star rating rather than dropping the score.
			logger.FromContext(ctx).Error("Failed to fetch modded star rating",
				"beatmap", s.Beatmap.ID, "mods", acronyms, "error", err)
		} else {
			starRating = modded
		}
	}

	return domain.Score{
		Username:   s.User.Username,
		OsuID:      s.UserID,
		ScoreID:    s.ID,
		N300s:      s.Statistics.Great,
		N100s:      s.Statistics.Ok,
		Misses:     s.Statistics.Miss,
		Accuracy:   s.Accuracy * 100,
		Rank:       s.Rank,
		MaxCombo:   s.MaxCombo,
		Mods:       mods,
		Timestamp:  endedAt,
		TotalScore: s.TotalScore,
		IsPass:     s.Passed,
		IsConvert:  s.Beatmap.Convert,
		Beatmap: domain.Beatmap{
			ID:             s.Beatmap.ID,
			URL:            s.Beatmap.URL,
			Mode:           s.Beatmap.Mode,
			Checksum:       s.Beatmap.Checksum,
			DifficultyName: s.Beatmap.Version,
			StarRating:     starRating,
			NumNotes:       s.Beatmap.CountCircles,
			NumSliders:     s.Beatmap.CountSliders,
			NumSpinners:    s.Beatmap.CountSpinners,
			DrainTime:      s.Beatmap.HitLength,
			Status:         s.Beatmap.Status,
		},
		Beatmapset: domain.Beatmapset{
			ID:      s.Beatmapset.ID,
			Artist:  s.Beatmapset.Artist,
			Title:   s.Beatmapset.Title,
			Creator: s.Beatmapset.Creator,
		},
	}, nil
}

// BeatmapStarRating returns the map's star rating under the given mods,
// served from cache when possible.
func (c *Client) BeatmapStarRating(ctx context.Context, beatmapID int, mods []string) (float64, error) {
	key := attrCacheKey(beatmapID, mods)
	if sr, ok := c.attrs.Get(key); ok {
		return sr, nil
	}

	body, err := json.Marshal(map[string]interface{}{
		"mods":    mods,
		"ruleset": "taiko",
	})
	if err != nil {
		return 0, fmt.Errorf("failed to marshal attributes request: %w", err)
	}

	var attrs apiAttributes
	path := fmt.Sprintf("/beatmaps/%d/attributes", beatmapID)
	if err := c.postJSON(ctx, "beatmap_attributes", path, body, &attrs); err != nil {
		return 0, fmt.Errorf("failed to fetch beatmap attributes: %w", err)
	}

	c.attrs.Add(key, attrs.Attributes.StarRating)
	return attrs.Attributes.StarRating, nil
}

// accessToken returns a valid bearer token, renewing it when close to expiry.
func (c *Client) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && time.Now().Before(c.tokenExpiry.Add(-tokenExpiryMargin)) {
		return c.token, nil
	}

	body, err := json.Marshal(map[string]interface{}{
		"client_id":     c.clientID,
		"client_secret": c.clientSecret,
		"grant_type":    "client_credentials",
		"scope":         "public",
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal token request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("token request returned %d: %s", resp.StatusCode, payload)
	}

	var token tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}

	c.token = token.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(token.ExpiresIn) * time.Second)
	metrics.OsuAPITokenRenewals.Inc()
	return c.token, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint, path string, out interface{}) error {
	return c.doJSON(ctx, endpoint, http.MethodGet, path, nil, out)
}

func (c *Client) postJSON(ctx context.Context, endpoint, path string, body []byte, out interface{}) error {
	return c.doJSON(ctx, endpoint, http.MethodPost, path, body, out)
}

func (c *Client) doJSON(ctx context.Context, endpoint, method, path string, body []byte, out interface{}) error {
	token, err := c.accessToken(ctx)
	if err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.OsuAPIRequests.WithLabelValues(endpoint, "error").Inc()
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	metrics.OsuAPIRequests.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s %s returned %d: %s", method, path, resp.StatusCode, payload)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// attrCacheKey builds a stable key regardless of mod order.
func attrCacheKey(beatmapID int, mods []string) string {
	sorted := append([]string(nil), mods...)
	sort.Strings(sorted)
	return strconv.Itoa(beatmapID) + ":" + strings.Join(sorted, ",")
}

func hasAny(haystack, needles []string) bool {
	for _, h := range haystack {
		for _, n := range needles {
			if h == n {
				return true
			}
		}
	}
	return false
}

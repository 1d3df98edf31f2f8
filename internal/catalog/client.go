package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"cardfolio/internal/config"
)

// Client talks to the card-pricing API that publishes per-set card listings
// with current market quotes.
type Client struct {
	cfg        config.Config
	httpClient *http.Client
	limiter    *rateLimiter
}

type cardsPage struct {
	Data       []map[string]any `json:"data"`
	Page       int              `json:"page"`
	PageSize   int              `json:"pageSize"`
	Count      int              `json:"count"`
	TotalCount int              `json:"totalCount"`
}

func NewClient(cfg config.Config) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: time.Duration(cfg.TCGTimeoutMs) * time.Millisecond},
		limiter:    newRateLimiter(cfg.TCGRateLimitRPS),
	}
}

// GetSetCards pages through every card of one set and returns the raw item
// records exactly as the API serialized them, so the documents written to
// disk keep the nested shape the normalizer expects.
func (c *Client) GetSetCards(ctx context.Context, setID string) ([]map[string]any, error) {
	all := make([]map[string]any, 0)
	page := 1

	for {
		body, err := c.fetchJSON(ctx, "cards", map[string]string{
			"q":        "set.id:" + setID,
			"page":     strconv.Itoa(page),
			"pageSize": strconv.Itoa(c.cfg.TCGPageSize),
			"orderBy":  "number",
		})
		if err != nil {
			return nil, err
		}

		var payload cardsPage
		dec := json.NewDecoder(strings.NewReader(string(body)))
		dec.UseNumber()
		if err := dec.Decode(&payload); err != nil {
			return nil, err
		}

		all = append(all, payload.Data...)
		if payload.Count == 0 || len(all) >= payload.TotalCount {
			break
		}
		page++
	}

	return all, nil
}

func (c *Client) fetchJSON(ctx context.Context, endpoint string, params map[string]string) ([]byte, error) {
	baseURL := strings.TrimRight(c.cfg.TCGAPIBaseURL, "/") + "/"
	u, err := url.Parse(baseURL + endpoint)
	if err != nil {
		return nil, err
	}

	q := u.Query()
	for k, v := range params {
		if strings.TrimSpace(v) != "" {
			q.Set(k, v)
		}
	}
	u.RawQuery = q.Encode()

	var lastErr error
	for attempt := 1; attempt <= 5; attempt++ {
		c.limiter.waitTurn()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(c.cfg.TCGAPIToken) != "" {
			req.Header.Set("X-Api-Key", c.cfg.TCGAPIToken)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if readErr != nil {
			lastErr = readErr
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			if isRetryableStatus(resp.StatusCode) && attempt < 5 {
				backoff := time.Duration(250*(1<<(attempt-1))+rand.Intn(100)) * time.Millisecond
				time.Sleep(backoff)
				lastErr = fmt.Errorf("tcg api status %d", resp.StatusCode)
				continue
			}
			return nil, fmt.Errorf("tcg api error: status=%d body=%s", resp.StatusCode, string(body))
		}

		return body, nil
	}

	if lastErr == nil {
		lastErr = errors.New("tcg api request failed")
	}
	return nil, lastErr
}

func isRetryableStatus(status int) bool {
	switch status {
	case 429, 500, 502, 503, 504:
		return true
	default:
		return false
	}
}

package catalog

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"testing"

	"cardfolio/internal/config"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func TestGetSetCardsPagesAndRetries(t *testing.T) {
	attempt := 0

	cfg := config.Test()
	cfg.TCGAPIBaseURL = "https://example.test/v2"
	cfg.TCGAPIToken = "test-key"
	cfg.TCGRateLimitRPS = 1000
	cfg.TCGPageSize = 1

	client := NewClient(cfg)
	client.httpClient = &http.Client{
		Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			if r.URL.Path != "/v2/cards" {
				t.Fatalf("unexpected path %s", r.URL.Path)
			}
			if r.Header.Get("X-Api-Key") != "test-key" {
				t.Fatalf("missing api key header")
			}
			attempt++
			if attempt == 1 {
				return &http.Response{
					StatusCode: http.StatusTooManyRequests,
					Body:       io.NopCloser(strings.NewReader(`{"error":"throttled"}`)),
					Header:     make(http.Header),
				}, nil
			}

			page := r.URL.Query().Get("page")
			pageNum, _ := strconv.Atoi(page)
			payload := map[string]any{
				"data":       []map[string]any{{"id": "set1-" + page, "name": "Card " + page}},
				"page":       pageNum,
				"pageSize":   1,
				"count":      1,
				"totalCount": 2,
			}
			blob, _ := json.Marshal(payload)
			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(strings.NewReader(string(blob))),
				Header:     make(http.Header),
			}, nil
		}),
	}

	cards, err := client.GetSetCards(context.Background(), "set1")
	if err != nil {
		t.Fatal(err)
	}
	if len(cards) != 2 {
		t.Fatalf("len=%d", len(cards))
	}
	if cards[0]["id"] != "set1-1" || cards[1]["id"] != "set1-2" {
		t.Fatalf("unexpected cards: %v", cards)
	}
}

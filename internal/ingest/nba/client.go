package nba

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"golang.org/x/time/rate"
)

const (
	BaseURL = "https://cdn.nba.com/static/json/liveData"

	// UserAgent for requests; the CDN rejects Go's default one.
	UserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	DefaultRequestsPerSecond = 2.0
	DefaultTimeout           = 15 * time.Second
)

var (
	ErrHTMLResponse     = errors.New("nba cdn returned an html page")
	ErrUnexpectedStatus = errors.New("nba cdn returned unexpected status")
)

// Client handles NBA live-data CDN requests
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// New creates a CDN client. Zero values fall back to package defaults.
func New(baseURL string, requestsPerSecond float64, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = BaseURL
	}
	if requestsPerSecond <= 0 {
		requestsPerSecond = DefaultRequestsPerSecond
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	log.Printf("[nba-client] New() called with baseURL: %s", baseURL)

	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
	}
}

// NewClient creates a CDN client with default settings
func NewClient() *Client {
	return New(BaseURL, DefaultRequestsPerSecond, DefaultTimeout)
}

// FetchScoreboard fetches today's scoreboard
func (c *Client) FetchScoreboard(ctx context.Context) (map[string]interface{}, error) {
	url := fmt.Sprintf("%s/scoreboard/todaysScoreboard_00.json", c.baseURL)
	return c.fetch(ctx, url)
}

// FetchPlayByPlay fetches the full action list of a game
func (c *Client) FetchPlayByPlay(ctx context.Context, gameID string) (map[string]interface{}, error) {
	url := fmt.Sprintf("%s/playbyplay/playbyplay_%s.json", c.baseURL, gameID)
	return c.fetch(ctx, url)
}

// FetchBoxScore fetches the live box score of a game (used for rosters)
func (c *Client) FetchBoxScore(ctx context.Context, gameID string) (map[string]interface{}, error) {
	url := fmt.Sprintf("%s/boxscore/boxscore_%s.json", c.baseURL, gameID)
	return c.fetch(ctx, url)
}

func (c *Client) fetch(ctx context.Context, url string) (map[string]interface{}, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d (body: %s)", ErrUnexpectedStatus, resp.StatusCode, preview(body))
	}

	// Check if we got HTML error page
	if len(body) > 0 && body[0] == '<' {
		return nil, fmt.Errorf("%w: %s", ErrHTMLResponse, preview(body))
	}

	var result map[string]interface{}
	if err := sonic.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decoding response: %w (body: %s)", err, preview(body))
	}

	return result, nil
}

func preview(body []byte) string {
	return string(body[:min(len(body), 200)])
}

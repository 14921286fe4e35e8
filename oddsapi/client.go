// Package oddsapi proxies the-odds-api.com so browsing odds never exposes
// the API key to clients and repeated requests don't burn through the
// provider quota.
package oddsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

const defaultBaseURL = "https://api.the-odds-api.com/v4"

// The sports the competition supports picking from.
var supportedSports = map[string]bool{
	"americanfootball_nfl": true,
	"basketball_nba":       true,
	"baseball_mlb":         true,
	"icehockey_nhl":        true,
}

// Default player prop markets requested for an event.
const defaultPropMarkets = "player_pass_tds,player_pass_yds,player_rush_yds," +
	"player_receptions,player_reception_yds,player_points,player_rebounds,player_assists"

// Sport is one selectable sport from the provider
type Sport struct {
	Key    string `json:"key"`
	Group  string `json:"group"`
	Title  string `json:"title"`
	Active bool   `json:"active"`
}

// Game is a simplified upcoming event
type Game struct {
	ID           string    `json:"id"`
	HomeTeam     string    `json:"homeTeam"`
	AwayTeam     string    `json:"awayTeam"`
	CommenceTime time.Time `json:"commenceTime"`
	Sport        string    `json:"sport"`
}

type providerEvent struct {
	ID           string    `json:"id"`
	HomeTeam     string    `json:"home_team"`
	AwayTeam     string    `json:"away_team"`
	CommenceTime time.Time `json:"commence_time"`
}

type cacheEntry struct {
	body      []byte
	expiresAt time.Time
}

// Client fetches odds from the provider with a short-TTL response cache
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	cacheTTL   time.Duration

	mu    sync.Mutex
	cache map[string]cacheEntry
}

// NewClient creates a provider client. A 5 minute cache matches the
// provider's own update cadence.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cacheTTL:   5 * time.Minute,
		cache:      make(map[string]cacheEntry),
	}
}

// get fetches path with query params, serving from cache when fresh. The
// API key is appended here and never appears in cache keys or errors.
func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	cacheKey := path + "?" + params.Encode()

	c.mu.Lock()
	entry, ok := c.cache[cacheKey]
	c.mu.Unlock()
	if ok && entry.expiresAt.After(time.Now()) {
		return entry.body, nil
	}

	params.Set("apiKey", c.apiKey)
	reqURL := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build odds request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("odds provider returned status %d for %s", resp.StatusCode, path)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read odds response: %w", err)
	}

	c.mu.Lock()
	c.cache[cacheKey] = cacheEntry{body: body, expiresAt: time.Now().Add(c.cacheTTL)}
	c.mu.Unlock()

	return body, nil
}

// Sports returns the provider's sports filtered to the supported set
func (c *Client) Sports(ctx context.Context) ([]Sport, error) {
	body, err := c.get(ctx, "/sports", url.Values{})
	if err != nil {
		return nil, err
	}

	var all []Sport
	if err := json.Unmarshal(body, &all); err != nil {
		return nil, fmt.Errorf("failed to decode sports: %w", err)
	}

	sports := make([]Sport, 0, len(supportedSports))
	for _, sport := range all {
		if supportedSports[sport.Key] {
			sports = append(sports, sport)
		}
	}

	return sports, nil
}

// Games returns upcoming head-to-head events for a sport, simplified to
// the fields the pick form needs.
func (c *Client) Games(ctx context.Context, sport string) ([]Game, error) {
	if sport == "" {
		sport = "americanfootball_nfl"
	}

	params := url.Values{}
	params.Set("regions", "us")
	params.Set("markets", "h2h")
	params.Set("oddsFormat", "american")

	body, err := c.get(ctx, "/sports/"+url.PathEscape(sport)+"/odds", params)
	if err != nil {
		return nil, err
	}

	var raw []providerEvent
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode games: %w", err)
	}

	games := make([]Game, 0, len(raw))
	for _, event := range raw {
		games = append(games, Game{
			ID:           event.ID,
			HomeTeam:     event.HomeTeam,
			AwayTeam:     event.AwayTeam,
			CommenceTime: event.CommenceTime,
			Sport:        sport,
		})
	}

	return games, nil
}

// PlayerProps returns the raw provider odds payload for one event's player
// prop markets. Passed through untouched, the browsing UI owns the shape.
func (c *Client) PlayerProps(ctx context.Context, sport, eventID string, markets []string) (json.RawMessage, error) {
	if eventID == "" {
		return nil, fmt.Errorf("event ID is required")
	}
	if sport == "" {
		sport = "americanfootball_nfl"
	}

	marketList := defaultPropMarkets
	if len(markets) > 0 {
		marketList = strings.Join(markets, ",")
	}

	params := url.Values{}
	params.Set("regions", "us")
	params.Set("markets", marketList)
	params.Set("oddsFormat", "american")

	body, err := c.get(ctx, "/sports/"+url.PathEscape(sport)+"/events/"+url.PathEscape(eventID)+"/odds", params)
	if err != nil {
		return nil, err
	}

	return json.RawMessage(body), nil
}

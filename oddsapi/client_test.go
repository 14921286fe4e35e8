package oddsapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(serverURL string) *Client {
	client := NewClient("test-key")
	client.baseURL = serverURL
	return client
}

func TestClient_Sports(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sports", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("apiKey"))
		w.Write([]byte(`[
			{"key":"americanfootball_nfl","group":"American Football","title":"NFL","active":true},
			{"key":"basketball_nba","group":"Basketball","title":"NBA","active":true},
			{"key":"soccer_epl","group":"Soccer","title":"EPL","active":true}
		]`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	sports, err := client.Sports(context.Background())
	require.NoError(t, err)

	// Unsupported sports are filtered out
	require.Len(t, sports, 2)
	assert.Equal(t, "americanfootball_nfl", sports[0].Key)
	assert.Equal(t, "basketball_nba", sports[1].Key)
}

func TestClient_Games(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sports/basketball_nba/odds", r.URL.Path)
		assert.Equal(t, "american", r.URL.Query().Get("oddsFormat"))
		w.Write([]byte(`[
			{"id":"ev1","home_team":"Lakers","away_team":"Celtics","commence_time":"2024-10-13T18:00:00Z"}
		]`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	games, err := client.Games(context.Background(), "basketball_nba")
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, "ev1", games[0].ID)
	assert.Equal(t, "Lakers", games[0].HomeTeam)
	assert.Equal(t, "basketball_nba", games[0].Sport)
	assert.Equal(t, time.Date(2024, 10, 13, 18, 0, 0, 0, time.UTC), games[0].CommenceTime)
}

func TestClient_PlayerProps(t *testing.T) {
	payload := `{"id":"ev1","bookmakers":[]}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sports/americanfootball_nfl/events/ev1/odds", r.URL.Path)
		assert.Equal(t, "player_pass_tds", r.URL.Query().Get("markets"))
		w.Write([]byte(payload))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	props, err := client.PlayerProps(context.Background(), "", "ev1", []string{"player_pass_tds"})
	require.NoError(t, err)
	assert.JSONEq(t, payload, string(props))
}

func TestClient_PlayerProps_RequiresEventID(t *testing.T) {
	client := NewClient("test-key")

	_, err := client.PlayerProps(context.Background(), "americanfootball_nfl", "", nil)
	assert.Error(t, err)
}

func TestClient_CachesResponses(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.Sports(context.Background())
	require.NoError(t, err)
	_, err = client.Sports(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int32(1), hits.Load())
}

func TestClient_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.Sports(context.Background())
	assert.ErrorContains(t, err, "status 401")
}

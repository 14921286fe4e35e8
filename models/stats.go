package models

// UserAggregates holds the derived statistics stored on a user. They are
// always recomputed wholesale from the full bet history, never patched
// incrementally.
type UserAggregates struct {
	TotalPoints int
	BetsWon     int
	BetsLost    int
	BiggestHit  int
}

// LeaderboardEntry represents one ranked row of the leaderboard
type LeaderboardEntry struct {
	Rank        int     `json:"rank"`
	Username    string  `json:"username"`
	TotalPoints int     `json:"totalPoints"`
	BetsWon     int     `json:"betsWon"`
	BetsLost    int     `json:"betsLost"`
	BiggestHit  int     `json:"biggestHit"`
	WinRate     float64 `json:"winRate"`
}

// ComputeWinRate derives the presentation-layer win rate as a 0-100
// percentage, 0 when the user has no resolved win/loss bets.
func (e *LeaderboardEntry) ComputeWinRate() float64 {
	resolved := e.BetsWon + e.BetsLost
	if resolved == 0 {
		return 0
	}
	return float64(e.BetsWon) / float64(resolved) * 100
}

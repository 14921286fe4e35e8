package service

import (
	"parlay/models"
)

// PointsForResolution computes the points awarded for a winning bet: the
// locked American odds, floored at zero, doubled for a King Lock. Only
// positive odds pass the placement gate, the floor covers data corrected out
// of band.
func PointsForResolution(oddsLocked int, isKingLock bool) int {
	base := oddsLocked
	if base < 0 {
		base = 0
	}
	if isKingLock {
		return base * 2
	}
	return base
}

// PointsForStatus maps a terminal status to the points to stamp on the bet.
// WON earns computed points, LOST earns an explicit zero. VOIDED earns nil:
// "no points", distinct from zero and excluded from win/loss counts.
func PointsForStatus(status models.BetStatus, oddsLocked int, isKingLock bool) *int {
	switch status {
	case models.BetStatusWon:
		points := PointsForResolution(oddsLocked, isKingLock)
		return &points
	case models.BetStatusLost:
		zero := 0
		return &zero
	default:
		return nil
	}
}

// ComputeAggregates derives a user's stored statistics from their full bet
// history. Always a wholesale recompute: deterministic, self-healing if a
// prior resolution was corrected out of band, at the cost of an O(n) scan.
func ComputeAggregates(bets []*models.Bet) models.UserAggregates {
	var agg models.UserAggregates

	for _, bet := range bets {
		points := 0
		if bet.PointsAwarded != nil {
			points = *bet.PointsAwarded
		}

		switch bet.Status {
		case models.BetStatusWon:
			agg.TotalPoints += points
			agg.BetsWon++
		case models.BetStatusLost:
			agg.BetsLost++
		}

		if points > agg.BiggestHit {
			agg.BiggestHit = points
		}
	}

	return agg
}

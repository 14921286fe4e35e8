package service

import (
	"fmt"

	"parlay/models"
)

// CheckPlacementPolicy gates a new placement against the user's existing
// bets for the week: at most one King Lock and at most three regular bets.
// The caller must fetch existingBets fresh, inside the placement
// transaction, after taking the placement lock.
func CheckPlacementPolicy(existingBets []*models.Bet, requestIsKingLock bool) error {
	var regular, kingLocks int
	for _, bet := range existingBets {
		if bet.IsKingLock {
			kingLocks++
		} else {
			regular++
		}
	}

	if requestIsKingLock && kingLocks >= models.MaxKingLocksPerWeek {
		return fmt.Errorf("you have already placed your King Lock this week: %w", models.ErrPolicyViolation)
	}

	if !requestIsKingLock && regular >= models.MaxRegularBetsPerWeek {
		return fmt.Errorf("you have already placed %d regular bets this week: %w", models.MaxRegularBetsPerWeek, models.ErrPolicyViolation)
	}

	return nil
}

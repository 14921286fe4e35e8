package testutil

import (
	"fmt"
	"time"

	"parlay/models"
)

// CreateTestUser creates a test user with default values
func CreateTestUser(username string) *models.User {
	return &models.User{
		Email:          fmt.Sprintf("%s@example.com", username),
		Username:       username,
		PasswordHash:   "$2a$10$abcdefghijklmnopqrstuvwxyz012345678901234567890123456",
		Role:           models.RoleUser,
		InviteCodeUsed: "TESTCODE",
	}
}

// CreateTestAdmin creates a test user with the admin role
func CreateTestAdmin(username string) *models.User {
	user := CreateTestUser(username)
	user.Role = models.RoleAdmin
	return user
}

// CreateTestBet creates a pending test bet with default values
func CreateTestBet(userID int64, weekNumber, odds int) *models.Bet {
	return &models.Bet{
		UserID:        userID,
		WeekNumber:    weekNumber,
		Sport:         "americanfootball_nfl",
		Description:   "Chiefs moneyline",
		OddsAmerican:  odds,
		OddsLocked:    odds,
		GameStartTime: time.Now().Add(24 * time.Hour),
	}
}

// CreateTestKingLock creates a pending test bet flagged as the weekly King Lock
func CreateTestKingLock(userID int64, weekNumber, odds int) *models.Bet {
	bet := CreateTestBet(userID, weekNumber, odds)
	bet.IsKingLock = true
	bet.Description = "Chiefs moneyline (King Lock)"
	return bet
}

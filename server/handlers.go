package server

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"parlay/models"
	"parlay/service"

	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Email      string `json:"email" binding:"required"`
	Username   string `json:"username" binding:"required"`
	Password   string `json:"password" binding:"required"`
	InviteCode string `json:"inviteCode" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type placeBetRequest struct {
	Sport         string    `json:"sport" binding:"required"`
	Description   string    `json:"description" binding:"required"`
	OddsAmerican  int       `json:"oddsAmerican" binding:"required"`
	GameStartTime time.Time `json:"gameStartTime" binding:"required"`
	IsKingLock    bool      `json:"isKingLock"`
}

type resolveBetRequest struct {
	BetID  int64  `json:"betId" binding:"required"`
	Status string `json:"status" binding:"required"`
}

type createInviteCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

type userResponse struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	Username    string `json:"username"`
	Role        string `json:"role"`
	TotalPoints int    `json:"totalPoints"`
	BetsWon     int    `json:"betsWon"`
	BetsLost    int    `json:"betsLost"`
	BiggestHit  int    `json:"biggestHit"`
}

type betResponse struct {
	ID            int64      `json:"id"`
	UserID        int64      `json:"userId"`
	WeekNumber    int        `json:"weekNumber"`
	Sport         string     `json:"sport"`
	Description   string     `json:"description"`
	OddsAmerican  int        `json:"oddsAmerican"`
	OddsLocked    int        `json:"oddsLocked"`
	IsKingLock    bool       `json:"isKingLock"`
	GameStartTime time.Time  `json:"gameStartTime"`
	Status        string     `json:"status"`
	PointsAwarded *int       `json:"pointsAwarded"`
	ResolvedAt    *time.Time `json:"resolvedAt"`
	CreatedAt     time.Time  `json:"createdAt"`
}

type inviteCodeResponse struct {
	Code      string     `json:"code"`
	IsActive  bool       `json:"isActive"`
	UsedBy    *int64     `json:"usedBy"`
	UsedAt    *time.Time `json:"usedAt"`
	CreatedAt time.Time  `json:"createdAt"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:          u.ID,
		Email:       u.Email,
		Username:    u.Username,
		Role:        string(u.Role),
		TotalPoints: u.TotalPoints,
		BetsWon:     u.BetsWon,
		BetsLost:    u.BetsLost,
		BiggestHit:  u.BiggestHit,
	}
}

func toBetResponse(b *models.Bet) betResponse {
	return betResponse{
		ID:            b.ID,
		UserID:        b.UserID,
		WeekNumber:    b.WeekNumber,
		Sport:         b.Sport,
		Description:   b.Description,
		OddsAmerican:  b.OddsAmerican,
		OddsLocked:    b.OddsLocked,
		IsKingLock:    b.IsKingLock,
		GameStartTime: b.GameStartTime,
		Status:        string(b.Status),
		PointsAwarded: b.PointsAwarded,
		ResolvedAt:    b.ResolvedAt,
		CreatedAt:     b.CreatedAt,
	}
}

func toBetResponses(bets []*models.Bet) []betResponse {
	out := make([]betResponse, 0, len(bets))
	for _, b := range bets {
		out = append(out, toBetResponse(b))
	}
	return out
}

func (s *Server) handleRegister(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	username := sanitizeString(req.Username, 30)
	code := strings.ToUpper(strings.TrimSpace(req.InviteCode))

	if !validateEmail(email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email address"})
		return
	}
	if !validateUsername(username) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username must be 3-30 characters, letters, numbers and underscores only"})
		return
	}
	if !validatePassword(req.Password) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be 8-100 characters"})
		return
	}
	if !validateInviteCodeFormat(code) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid invite code format"})
		return
	}

	user, err := s.users.Register(c.Request.Context(), service.RegisterInput{
		Email:      email,
		Username:   username,
		Password:   req.Password,
		InviteCode: code,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := GenerateJWT(user, s.cfg.JWTSecret)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user":  toUserResponse(user),
	})
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	user, err := s.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := GenerateJWT(user, s.cfg.JWTSecret)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  toUserResponse(user),
	})
}

func (s *Server) handlePlaceBet(c *gin.Context) {
	var req placeBetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	userID := c.GetInt64(contextUserID)

	bet, err := s.betting.PlaceBet(c.Request.Context(), userID, service.PlaceBetInput{
		Sport:         sanitizeString(req.Sport, 50),
		Description:   sanitizeString(req.Description, 200),
		OddsAmerican:  req.OddsAmerican,
		GameStartTime: req.GameStartTime,
		IsKingLock:    req.IsKingLock,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toBetResponse(bet))
}

// handleListBets returns the caller's bets for a week, defaulting to the
// current week when no week parameter is given.
func (s *Server) handleListBets(c *gin.Context) {
	userID := c.GetInt64(contextUserID)

	week := s.betting.CurrentWeek()
	if raw := c.Query("week"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 52 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Week must be a number between 1 and 52"})
			return
		}
		week = parsed
	}

	bets, err := s.betting.GetBetsForWeek(c.Request.Context(), userID, week)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"week": week,
		"bets": toBetResponses(bets),
	})
}

func (s *Server) handleDeleteBet(c *gin.Context) {
	betID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bet ID"})
		return
	}

	userID := c.GetInt64(contextUserID)

	if err := s.betting.DeleteBet(c.Request.Context(), betID, userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Bet deleted"})
}

func (s *Server) handleResolveBet(c *gin.Context) {
	var req resolveBetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	status := models.BetStatus(strings.ToUpper(strings.TrimSpace(req.Status)))

	bet, err := s.betting.ResolveBet(c.Request.Context(), req.BetID, status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toBetResponse(bet))
}

func (s *Server) handleLeaderboard(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Limit must be a positive number"})
			return
		}
		limit = parsed
	}

	entries, err := s.stats.GetLeaderboard(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"leaderboard": entries})
}

func (s *Server) handleCreateInviteCode(c *gin.Context) {
	var req createInviteCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	code, err := s.invites.CreateCode(c.Request.Context(), req.Code)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, inviteCodeResponse{
		Code:      code.Code,
		IsActive:  code.IsActive,
		UsedBy:    code.UsedBy,
		UsedAt:    code.UsedAt,
		CreatedAt: code.CreatedAt,
	})
}

func (s *Server) handleListInviteCodes(c *gin.Context) {
	codes, err := s.invites.ListCodes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]inviteCodeResponse, 0, len(codes))
	for _, code := range codes {
		out = append(out, inviteCodeResponse{
			Code:      code.Code,
			IsActive:  code.IsActive,
			UsedBy:    code.UsedBy,
			UsedAt:    code.UsedAt,
			CreatedAt: code.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{"inviteCodes": out})
}

func (s *Server) handleOddsSports(c *gin.Context) {
	sports, err := s.odds.Sports(c.Request.Context())
	if err != nil {
		respondError(c, fmt.Errorf("odds provider: %w", err))
		return
	}
	c.JSON(http.StatusOK, sports)
}

func (s *Server) handleOddsGames(c *gin.Context) {
	games, err := s.odds.Games(c.Request.Context(), c.Query("sport"))
	if err != nil {
		respondError(c, fmt.Errorf("odds provider: %w", err))
		return
	}
	c.JSON(http.StatusOK, games)
}

func (s *Server) handleOddsPlayerProps(c *gin.Context) {
	if c.Query("eventId") == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Event ID is required"})
		return
	}

	var markets []string
	if raw := c.Query("markets"); raw != "" {
		markets = strings.Split(raw, ",")
	}

	props, err := s.odds.PlayerProps(c.Request.Context(), c.Query("sport"), c.Query("eventId"), markets)
	if err != nil {
		respondError(c, fmt.Errorf("odds provider: %w", err))
		return
	}

	c.Data(http.StatusOK, "application/json", props)
}

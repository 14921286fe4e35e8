// Package server exposes the competition over HTTP: registration behind the
// invite gate, the bet lifecycle, admin resolution and the leaderboard.
package server

import (
	"context"
	"net/http"
	"time"

	"parlay/config"
	"parlay/oddsapi"
	"parlay/ratelimit"
	"parlay/service"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// Server wires services into the HTTP surface
type Server struct {
	cfg *config.Config

	betting service.BettingService
	users   service.UserService
	stats   service.StatsService
	invites service.InviteService
	odds    *oddsapi.Client
	limiter ratelimit.Limiter

	engine  *gin.Engine
	httpSrv *http.Server
}

// New builds a server with all routes registered
func New(
	cfg *config.Config,
	betting service.BettingService,
	users service.UserService,
	stats service.StatsService,
	invites service.InviteService,
	odds *oddsapi.Client,
	limiter ratelimit.Limiter,
) *Server {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		cfg:     cfg,
		betting: betting,
		users:   users,
		stats:   stats,
		invites: invites,
		odds:    odds,
		limiter: limiter,
		engine:  gin.New(),
	}

	s.engine.Use(gin.Recovery())
	s.registerRoutes()

	return s
}

func (s *Server) registerRoutes() {
	s.engine.GET("/health", s.handleHealth)

	api := s.engine.Group("/api")

	// Unauthenticated routes rate-limit by client IP
	auth := api.Group("/auth")
	auth.Use(RateLimitMiddleware(s.limiter))
	auth.POST("/register", s.handleRegister)
	auth.POST("/login", s.handleLogin)

	// Leaderboard reads are public; everything else needs a session
	api.GET("/leaderboard", RateLimitMiddleware(s.limiter), s.handleLeaderboard)

	// Authenticated routes rate-limit by user ID, so the limiter runs after
	// the token check has put the identity in context
	authed := api.Group("")
	authed.Use(JWTAuthMiddleware(s.cfg.JWTSecret))
	authed.Use(RateLimitMiddleware(s.limiter))

	authed.POST("/bets", s.handlePlaceBet)
	authed.GET("/bets", s.handleListBets)
	authed.DELETE("/bets/:id", s.handleDeleteBet)

	authed.GET("/odds/sports", s.handleOddsSports)
	authed.GET("/odds/games", s.handleOddsGames)
	authed.GET("/odds/player-props", s.handleOddsPlayerProps)

	admin := authed.Group("/admin")
	admin.Use(AdminOnlyMiddleware(s.users))
	admin.POST("/resolve-bet", s.handleResolveBet)
	admin.POST("/invite-codes", s.handleCreateInviteCode)
	admin.GET("/invite-codes", s.handleListInviteCodes)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Run serves until ctx is cancelled, then drains in-flight requests
func (s *Server) Run(ctx context.Context) error {
	s.httpSrv = &http.Server{
		Addr:    ":" + s.cfg.AppPort,
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("port", s.cfg.AppPort).Info("HTTP server listening")
		if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log.Info("Shutting down HTTP server")
	return s.httpSrv.Shutdown(shutdownCtx)
}

package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"giftvault/cfg"
	"giftvault/service"
)

type Server struct {
	config *cfg.Config
	svc    service.IGiftService
	engine *gin.Engine
	logger zerolog.Logger
}

func New(config *cfg.Config, svc service.IGiftService, logger zerolog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	s := &Server{
		config: config,
		svc:    svc,
		engine: gin.New(),
		logger: logger,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.engine.Use(gin.Recovery(), s.cors())

	s.engine.GET("/healthz", s.handleHealth)

	api := s.engine.Group("/api")
	api.GET("/users/:id", s.handleGetUser)
	api.GET("/users/:id/gifts", s.handleListGifts)
	api.GET("/market/gifts", s.handleSearchMarket)
	api.GET("/market/floor/:name", s.handleFloorPrice)

	authed := api.Group("", s.initDataAuth())
	authed.POST("/users/:id/wallet", s.handleLinkWallet)
	authed.POST("/users/:id/gifts", s.handleCreditGift)
	authed.DELETE("/users/:id/gifts/:giftId", s.handleWithdrawGift)
}

func (s *Server) cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, "+initDataHeader)
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.config.ListenAddr(),
		Handler: s.engine,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", srv.Addr).Msg("HTTP server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

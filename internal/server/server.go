package server

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/petriapp/petri-backend/internal/ai"
	"github.com/petriapp/petri-backend/internal/cards"
	"github.com/petriapp/petri-backend/internal/config"
	"github.com/petriapp/petri-backend/internal/handler"
	appmw "github.com/petriapp/petri-backend/internal/middleware"
	"github.com/petriapp/petri-backend/internal/repository"
	"github.com/petriapp/petri-backend/internal/service"
	"github.com/petriapp/petri-backend/internal/storage"
	"gorm.io/gorm"
)

type Server struct {
	e   *echo.Echo
	cfg *config.Config
}

func New(ctx context.Context, db *gorm.DB, cfg *config.Config, sha, buildTime string) (*Server, error) {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		AllowOriginFunc: func(origin string) (bool, error) {
			low := strings.ToLower(origin)
			if strings.HasPrefix(low, "http://localhost:") || strings.HasPrefix(low, "http://127.0.0.1:") ||
				strings.HasPrefix(low, "https://localhost:") || strings.HasPrefix(low, "https://127.0.0.1:") {
				return true, nil
			}
			u, err := url.Parse(origin)
			if err != nil {
				return false, nil
			}
			if u.Scheme != "http" && u.Scheme != "https" {
				return false, nil
			}
			if strings.HasSuffix(u.Hostname(), "vercel.app") {
				return true, nil
			}
			return false, nil
		},
	}))

	userRepo := repository.NewUserRepository(db)
	treeRepo := repository.NewTreeRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	tradeRepo := repository.NewTradeRepository(db)
	healthRepo := repository.NewHealthRepository(db)
	personalityRepo := repository.NewPersonalityRepository(db)
	chatRepo := repository.NewChatRepository(db)

	var audioStore storage.AudioStore
	if cfg.StorageBucket != "" {
		gcs, err := storage.NewGCSStore(ctx, cfg.StorageBucket)
		if err != nil {
			return nil, err
		}
		audioStore = gcs
	} else {
		audioStore = storage.NewLocalStore(cfg.AudioDir, cfg.PublicBaseURL)
		e.Static("/static/audio", cfg.AudioDir)
	}

	generator := ai.NewGeminiGenerator(cfg.GeminiAPIKey, cfg.GeminiModel)
	synthesizer := ai.NewElevenLabsClient(cfg.ElevenLabsAPIKey, nil)
	cardClient := cards.NewClient(cfg.CardServiceURL, nil)

	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret, time.Duration(cfg.TokenTTLMinutes)*time.Minute)
	treeSvc := service.NewTreeService(treeRepo, healthRepo)
	healthSvc := service.NewHealthService(treeRepo, tokenRepo, healthRepo)
	tokenSvc := service.NewTokenService(treeRepo, tokenRepo, cardClient)
	tradeSvc := service.NewTradeService(tokenRepo, tradeRepo)
	personalitySvc := service.NewPersonalityService(treeRepo, personalityRepo)
	chatSvc := service.NewChatService(treeRepo, healthRepo, personalityRepo, chatRepo, generator, synthesizer, audioStore)
	portfolioSvc := service.NewPortfolioService(treeRepo, tokenRepo)

	authHandler := handler.NewAuthHandler(authSvc)
	treeHandler := handler.NewTreeHandler(treeSvc)
	healthHandler := handler.NewHealthHandler(healthSvc)
	tokenHandler := handler.NewTokenHandler(tokenSvc)
	tradeHandler := handler.NewTradeHandler(tradeSvc)
	personalityHandler := handler.NewPersonalityHandler(personalitySvc)
	chatHandler := handler.NewChatHandler(chatSvc)
	portfolioHandler := handler.NewPortfolioHandler(portfolioSvc)

	authMw := appmw.NewAuthMiddleware(authSvc)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"ok":         "true",
			"git_sha":    sha,
			"build_time": buildTime,
		})
	})

	api := e.Group("/api")
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/auth/me", authHandler.Me, authMw.RequireAuth)

	api.POST("/trees", treeHandler.Plant, authMw.RequireAuth)
	api.GET("/trees", treeHandler.List, authMw.RequireAuth)
	api.GET("/trees/:id", treeHandler.Get, authMw.RequireAuth)
	api.POST("/trees/:id/visibility", treeHandler.SetVisibility, authMw.RequireAuth)
	api.GET("/marketplace/trees", treeHandler.Marketplace, authMw.RequireAuth)

	api.POST("/trees/:id/health", healthHandler.Record, authMw.RequireAuth)
	api.GET("/trees/:id/health-history", healthHandler.History, authMw.RequireAuth)

	api.POST("/trees/:id/mint", tokenHandler.Mint, authMw.RequireAuth)
	api.GET("/tokens", tokenHandler.List, authMw.RequireAuth)
	api.GET("/tokens/:tokenId", tokenHandler.Get, authMw.RequireAuth)
	api.POST("/tokens/:tokenId/trades", tradeHandler.Execute, authMw.RequireAuth)
	api.GET("/tokens/:tokenId/trades", tradeHandler.List, authMw.RequireAuth)

	api.POST("/trees/:id/personality", personalityHandler.Set, authMw.RequireAuth)
	api.GET("/trees/:id/personality", personalityHandler.Get, authMw.RequireAuth)
	api.GET("/voices", personalityHandler.Voices)

	api.POST("/trees/:id/chat", chatHandler.Chat, authMw.RequireAuth)
	api.GET("/trees/:id/chat-history", chatHandler.History, authMw.RequireAuth)

	api.GET("/portfolio/me", portfolioHandler.Me, authMw.RequireAuth)

	return &Server{e: e, cfg: cfg}, nil
}

func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}

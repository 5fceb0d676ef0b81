package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/agripoint/loyalty-api/internal/config"
	"github.com/agripoint/loyalty-api/internal/domain/checkin"
	"github.com/agripoint/loyalty-api/internal/domain/content"
	"github.com/agripoint/loyalty-api/internal/domain/ledger"
	"github.com/agripoint/loyalty-api/internal/domain/member"
	"github.com/agripoint/loyalty-api/internal/domain/mission"
	"github.com/agripoint/loyalty-api/internal/domain/receipt"
	"github.com/agripoint/loyalty-api/internal/domain/reward"
	"github.com/agripoint/loyalty-api/internal/domain/tier"
	"github.com/agripoint/loyalty-api/internal/middleware"
	"github.com/agripoint/loyalty-api/internal/pkg/database"
	"github.com/agripoint/loyalty-api/internal/pkg/imaging"
	"github.com/agripoint/loyalty-api/internal/pkg/jwt"
	"github.com/agripoint/loyalty-api/internal/pkg/logger"
	pkgresponse "github.com/agripoint/loyalty-api/internal/pkg/response"
	"github.com/agripoint/loyalty-api/internal/pkg/storage"
)

func main() {
	cfg := config.Load()
	logger.Init(logger.Config{Level: cfg.LogLevel, Environment: cfg.Env})

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting loyalty API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	rdb, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(rdb)

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)

	store, err := storage.NewR2Storage(storage.R2Config{
		AccountID:       cfg.R2AccountID,
		AccessKeyID:     cfg.R2AccessKeyID,
		AccessKeySecret: cfg.R2AccessKeySecret,
		BucketName:      cfg.R2BucketName,
		PublicURL:       cfg.R2PublicURL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create R2 storage")
	}

	processor := imaging.NewProcessor(imaging.DefaultConfig())

	// ---------- Repositories ----------
	memberRepo := member.NewRepository(db)
	refreshRepo := member.NewRefreshTokenRepository(rdb)
	ledgerRepo := ledger.NewRepository(db)
	tierRepo := tier.NewRepository(db)
	rewardRepo := reward.NewRepository(db, ledgerRepo)
	contentRepo := content.NewRepository(db, ledgerRepo)
	missionRepo := mission.NewRepository(db, ledgerRepo)
	checkinRepo := checkin.NewRepository(db, ledgerRepo)
	receiptRepo := receipt.NewRepository(db, ledgerRepo)

	// ---------- Services ----------
	ledgerService := ledger.NewService(ledgerRepo)
	memberService := member.NewService(memberRepo, refreshRepo, jwtService, ledgerService, cfg.RegistrationBonusPoints)
	rewardService := reward.NewService(rewardRepo, memberRepo)
	contentService := content.NewService(contentRepo, memberRepo)
	missionService := mission.NewService(missionRepo, memberRepo)
	checkinService := checkin.NewService(checkinRepo, memberRepo)
	receiptService := receipt.NewService(receiptRepo, memberRepo, store, processor)

	// ---------- Handlers ----------
	memberHandler := member.NewHandler(memberService)
	ledgerHandler := ledger.NewHandler(ledgerService)
	tierHandler := tier.NewHandler(tierRepo)
	rewardHandler := reward.NewHandler(rewardService)
	contentHandler := content.NewHandler(contentService)
	missionHandler := mission.NewHandler(missionService)
	checkinHandler := checkin.NewHandler(checkinService)
	receiptHandler := receipt.NewHandler(receiptService)

	authMiddleware := middleware.Auth(jwtService)
	adminOnly := middleware.RequireAdmin()
	rateLimit := middleware.RateLimit(rdb, cfg.RateLimitPerMinute)

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		pkgresponse.OK(w, map[string]string{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/members", memberHandler.Routes(authMiddleware))
		r.Mount("/tiers", tierHandler.Routes())
		r.Mount("/ledger", ledgerHandler.Routes(authMiddleware))

		// Ledger-affecting surfaces sit behind the rate limiter.
		r.Group(func(r chi.Router) {
			r.Use(rateLimit)
			r.Mount("/rewards", rewardHandler.Routes(authMiddleware))
			r.Mount("/content", contentHandler.Routes(authMiddleware))
			r.Mount("/missions", missionHandler.Routes(authMiddleware))
			r.Mount("/checkins", checkinHandler.Routes(authMiddleware))
			r.Mount("/receipts", receiptHandler.Routes(authMiddleware))
		})
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Mount("/members", memberHandler.AdminRoutes(authMiddleware, adminOnly))
		r.Mount("/rewards", rewardHandler.AdminRoutes(authMiddleware, adminOnly))
		r.Mount("/receipts", receiptHandler.AdminRoutes(authMiddleware, adminOnly))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}

package tronmarket

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/go-chi/jwtauth/v5"
	"github.com/rs/cors"

	"tron-market/internal/tronmarket/handlers"
	"tron-market/internal/tronmarket/middleware"
	"tron-market/internal/tronmarket/service"
	"tron-market/pkg/logging"
)

type RateLimitConfig struct {
	Window      time.Duration
	MaxRequests int
}

type Config struct {
	ServerAddress   string
	ShutdownTimeout time.Duration
	Network         string
	USDTContract    string
	UploadDir       string
	AllowedOrigins  []string
	RateLimit       RateLimitConfig
}

type Server struct {
	logger     *logging.ZapLogger
	httpServer *http.Server
	cfg        Config
}

func NewServer(
	cfg Config,
	orders *service.Orders,
	approval *service.Approval,
	wallet *service.Wallet,
	adminAuth *service.AdminAuth,
	tokenAuth *jwtauth.JWTAuth,
	logger *logging.ZapLogger,
) *Server {
	srv := &http.Server{
		Addr: cfg.ServerAddress,
		Handler: createMux(
			cfg,
			orders,
			approval,
			wallet,
			adminAuth,
			tokenAuth,
			logger,
		),
	}

	return &Server{
		cfg:        cfg,
		logger:     logger,
		httpServer: srv,
	}
}

func (s *Server) Run() error {
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server ListenAndServe failed: %w", err)
	}
	return nil
}

func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}

func createMux(
	cfg Config,
	orders *service.Orders,
	approval *service.Approval,
	wallet *service.Wallet,
	adminAuth *service.AdminAuth,
	tokenAuth *jwtauth.JWTAuth,
	logger *logging.ZapLogger,
) *chi.Mux {
	infoHandler := handlers.NewInfoHandler(cfg.Network, cfg.USDTContract, logger)
	orderPlacingHandler := handlers.NewOrderPlacingHandler(orders, logger)
	ordersGettingHandler := handlers.NewOrdersGettingHandler(orders, logger)
	pendingOrdersGettingHandler := handlers.NewPendingOrdersGettingHandler(orders, logger)
	orderApprovingHandler := handlers.NewOrderApprovingHandler(approval, logger)
	adminLoginHandler := handlers.NewAdminLoginHandler(adminAuth, logger)
	proofUploadingHandler := handlers.NewProofUploadingHandler(cfg.UploadDir, logger)
	balanceGettingHandler := handlers.NewBalanceGettingHandler(wallet, logger)
	trxSendingHandler := handlers.NewTRXSendingHandler(wallet, logger)
	usdtSendingHandler := handlers.NewUSDTSendingHandler(wallet, logger)
	walletGeneratingHandler := handlers.NewWalletGeneratingHandler(wallet, logger)

	adminAuthMiddleware := middleware.NewAdminAuth(adminAuth, tokenAuth, logger)
	limiter := httprate.LimitByIP(cfg.RateLimit.MaxRequests, cfg.RateLimit.Window)

	router := chi.NewRouter()
	router.Use(middleware.NewLoggerContext().CreateHandler)
	router.Use(middleware.NewPanicRecover(logger).CreateHandler)
	if len(cfg.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Options{
			AllowedOrigins: cfg.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost},
			AllowedHeaders: []string{"Authorization", "Content-Type"},
		}).Handler)
	}

	router.Get("/", infoHandler.ServeHTTP)
	router.Get("/balance/{address}", balanceGettingHandler.ServeHTTP)
	router.With(limiter).Post("/send", trxSendingHandler.ServeHTTP)
	router.With(limiter).Post("/send-usdt", usdtSendingHandler.ServeHTTP)
	router.Get("/generate-wallet", walletGeneratingHandler.ServeHTTP)

	router.Route("/api", func(router chi.Router) {
		router.With(limiter).Post("/order", orderPlacingHandler.ServeHTTP)
		router.Post("/order/proof", proofUploadingHandler.ServeHTTP)
		router.With(adminAuthMiddleware.CreateHandler).Get("/orders", ordersGettingHandler.ServeHTTP)

		router.Route("/admin", func(router chi.Router) {
			router.Post("/login", adminLoginHandler.ServeHTTP)

			router.Group(func(router chi.Router) {
				router.Use(adminAuthMiddleware.CreateHandler)
				router.Get("/orders", pendingOrdersGettingHandler.ServeHTTP)
				router.Post("/approve", orderApprovingHandler.ServeHTTP)
			})
		})
	})

	return router
}

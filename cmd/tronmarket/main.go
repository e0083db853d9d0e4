package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/go-chi/jwtauth/v5"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"tron-market/cmd/tronmarket/config"
	"tron-market/internal/tronmarket"
	"tron-market/internal/tronmarket/data/database"
	"tron-market/internal/tronmarket/data/dbrepository"
	"tron-market/internal/tronmarket/data/memstore"
	"tron-market/internal/tronmarket/service"
	"tron-market/internal/tronmarket/tronclient"
	"tron-market/pkg/jwtfactory"
	"tron-market/pkg/logging"
	"tron-market/pkg/pgxstorage"
)

const jwtAlgorithm = "HS256"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := logging.NewZapLogger(zapcore.DebugLevel)
	if err != nil {
		log.Fatal(err)
	}

	rootCtx, cancelCtx := signal.NotifyContext(
		context.Background(),
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
		syscall.SIGABRT,
	)
	defer cancelCtx()

	repository, closeStorage, err := createRepository(cfg, logger)
	if err != nil {
		log.Fatal(err)
	}
	defer closeStorage()

	ledgerClient, err := tronclient.New(cfg.Tron, logger)
	if err != nil {
		log.Fatal(err)
	}
	if ledgerClient.OwnerAddress() != "" {
		logger.InfoCtx(rootCtx, "ledger client ready", zap.String("owner", ledgerClient.OwnerAddress()))
	} else {
		logger.WarnCtx(rootCtx, "no private key configured, transfers are disabled")
	}
	if cfg.Admin.Secret == "" {
		logger.WarnCtx(rootCtx, "no admin secret configured, admin endpoints are disabled")
	}

	tokenAuth := jwtauth.New(jwtAlgorithm, []byte(cfg.Admin.Secret), nil)
	tokenFactory := jwtfactory.New(tokenAuth, cfg.Admin.TokenTTL)

	ordersService := service.NewOrders(repository, logger)
	approvalService := service.NewApproval(cfg.Approval, repository, ledgerClient, logger)
	walletService := service.NewWallet(ledgerClient, logger)
	adminAuthService := service.NewAdminAuth(cfg.Admin.Secret, tokenFactory)

	server := tronmarket.NewServer(
		cfg.Server,
		ordersService,
		approvalService,
		walletService,
		adminAuthService,
		tokenAuth,
		logger,
	)

	if err := run(rootCtx, cfg, server, logger); err != nil {
		logger.ErrorCtx(rootCtx, "Server shutdown with error", zap.Error(err))
	} else {
		logger.InfoCtx(rootCtx, "Server shutdown gracefully")
	}
}

func createRepository(cfg *config.Config, logger *logging.ZapLogger) (service.OrderRepository, func(), error) {
	if cfg.DB.ConnectionString == "" {
		logger.InfoCtx(context.Background(), "using in-memory order store")
		return memstore.New(), func() {}, nil
	}

	dbFactory := database.NewPgxDatabaseFactory(cfg.DB)
	storage, err := pgxstorage.New(dbFactory)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create storage: %w", err)
	}
	return dbrepository.New(storage, logger), storage.Close, nil
}

func run(rootCtx context.Context, cfg *config.Config, server *tronmarket.Server, logger *logging.ZapLogger) error {
	g, ctx := errgroup.WithContext(rootCtx)

	context.AfterFunc(ctx, func() {
		ctx, cancelCtx := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancelCtx()

		<-ctx.Done()
		log.Fatal("failed to gracefully shutdown the server")
	})

	g.Go(func() error {
		if err := server.Run(); err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		defer logger.InfoCtx(ctx, "Shutting down server")
		<-ctx.Done()
		if err := server.Shutdown(); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("goroutine error occured: %w", err)
	}

	return nil
}

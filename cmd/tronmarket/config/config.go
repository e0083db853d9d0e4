package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"tron-market/internal/tronmarket"
	"tron-market/internal/tronmarket/data/database"
	"tron-market/internal/tronmarket/service"
	"tron-market/internal/tronmarket/tronclient"
)

const (
	serverAddressFlag    = "a"
	serverAddressEnv     = "RUN_ADDRESS"
	serverAddressDefault = "localhost:3000"

	fullNodeFlag    = "n"
	fullNodeEnv     = "FULL_NODE"
	fullNodeDefault = "https://api.trongrid.io"

	dbConnectionStringFlag    = "d"
	dbConnectionStringEnv     = "DATABASE_URI"
	dbConnectionStringDefault = ""

	uploadDirFlag    = "u"
	uploadDirEnv     = "UPLOAD_DIR"
	uploadDirDefault = "uploads"

	solidityNodeEnv    = "SOLIDITY_NODE"
	eventServerEnv     = "EVENT_SERVER"
	apiKeyEnv          = "TRONGRID_API_KEY"
	privateKeyEnv      = "PRIVATE_KEY"
	adminSecretEnv     = "ADMIN_SECRET"
	feeLimitEnv        = "FEE_LIMIT"
	transferTimeoutEnv = "TRANSFER_TIMEOUT"
	rateLimitWindowEnv = "RATE_LIMIT_WINDOW"
	rateLimitMaxEnv    = "RATE_LIMIT_MAX"
	allowedOriginsEnv  = "ALLOWED_ORIGINS"
	usdtContractEnv    = "USDT_CONTRACT"

	// Mainnet USDT TRC20 contract, overridable for testnets.
	usdtContractDefault = "TR7NHqjeKQxGTCi8q8ZY4pL8otSzgjLj6t"
	networkName         = "TRON Mainnet"

	// 100 TRX in sun, the ceiling the original deployment used.
	feeLimitDefault = 100_000_000

	transferTimeoutDefault = 30 * time.Second
	rateLimitWindowDefault = time.Minute
	rateLimitMaxDefault    = 10
	shutdownTimeout        = 5 * time.Second
	adminTokenTTL          = time.Hour
)

type AdminConfig struct {
	Secret   string
	TokenTTL time.Duration
}

type Config struct {
	Server          tronmarket.Config
	Tron            tronclient.Config
	Admin           AdminConfig
	DB              database.Config
	Approval        service.ApprovalConfig
	ShutdownTimeout time.Duration
}

func Load() (*Config, error) {
	serverAddress := flag.String(
		serverAddressFlag,
		serverAddressDefault,
		"Server address host:port",
	)

	fullNode := flag.String(
		fullNodeFlag,
		fullNodeDefault,
		"TRON full node URL",
	)

	dbConnectionString := flag.String(
		dbConnectionStringFlag,
		dbConnectionStringDefault,
		"PostgreSQL connection string (empty = in-memory store)",
	)

	uploadDir := flag.String(
		uploadDirFlag,
		uploadDirDefault,
		"Directory for uploaded proof-of-payment files",
	)

	flag.Parse()

	if valStr, ok := os.LookupEnv(serverAddressEnv); ok {
		*serverAddress = valStr
	}

	if valStr, ok := os.LookupEnv(fullNodeEnv); ok {
		*fullNode = valStr
	}

	if valStr, ok := os.LookupEnv(dbConnectionStringEnv); ok {
		*dbConnectionString = valStr
	}

	if valStr, ok := os.LookupEnv(uploadDirEnv); ok {
		*uploadDir = valStr
	}

	solidityNode := envOrDefault(solidityNodeEnv, *fullNode)
	eventServer := envOrDefault(eventServerEnv, *fullNode)

	feeLimit, err := envInt64(feeLimitEnv, feeLimitDefault)
	if err != nil {
		return nil, err
	}

	transferTimeout, err := envDuration(transferTimeoutEnv, transferTimeoutDefault)
	if err != nil {
		return nil, err
	}

	rateLimitWindow, err := envDuration(rateLimitWindowEnv, rateLimitWindowDefault)
	if err != nil {
		return nil, err
	}

	rateLimitMax, err := envInt(rateLimitMaxEnv, rateLimitMaxDefault)
	if err != nil {
		return nil, err
	}

	var allowedOrigins []string
	if valStr, ok := os.LookupEnv(allowedOriginsEnv); ok && valStr != "" {
		allowedOrigins = strings.Split(valStr, ",")
	}

	return &Config{
		Server: tronmarket.Config{
			ServerAddress:   *serverAddress,
			ShutdownTimeout: shutdownTimeout,
			Network:         networkName,
			USDTContract:    envOrDefault(usdtContractEnv, usdtContractDefault),
			UploadDir:       *uploadDir,
			AllowedOrigins:  allowedOrigins,
			RateLimit: tronmarket.RateLimitConfig{
				Window:      rateLimitWindow,
				MaxRequests: rateLimitMax,
			},
		},
		Tron: tronclient.Config{
			FullNodeURL:     *fullNode,
			SolidityNodeURL: solidityNode,
			EventServerURL:  eventServer,
			APIKey:          os.Getenv(apiKeyEnv),
			PrivateKey:      os.Getenv(privateKeyEnv),
			USDTContract:    envOrDefault(usdtContractEnv, usdtContractDefault),
			FeeLimit:        feeLimit,
		},
		Admin: AdminConfig{
			Secret:   os.Getenv(adminSecretEnv),
			TokenTTL: adminTokenTTL,
		},
		DB: database.Config{
			ConnectionString: *dbConnectionString,
			RetryAttemptDelays: []time.Duration{
				time.Second,
				3 * time.Second,
				5 * time.Second,
			},
		},
		Approval: service.ApprovalConfig{
			TransferTimeout: transferTimeout,
		},
		ShutdownTimeout: shutdownTimeout,
	}, nil
}

func envOrDefault(name, fallback string) string {
	if valStr, ok := os.LookupEnv(name); ok {
		return valStr
	}
	return fallback
}

func envInt(name string, fallback int) (int, error) {
	valStr, ok := os.LookupEnv(name)
	if !ok {
		return fallback, nil
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", name, err)
	}
	return val, nil
}

func envInt64(name string, fallback int64) (int64, error) {
	valStr, ok := os.LookupEnv(name)
	if !ok {
		return fallback, nil
	}
	val, err := strconv.ParseInt(valStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", name, err)
	}
	return val, nil
}

func envDuration(name string, fallback time.Duration) (time.Duration, error) {
	valStr, ok := os.LookupEnv(name)
	if !ok {
		return fallback, nil
	}
	val, err := time.ParseDuration(valStr)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", name, err)
	}
	return val, nil
}

package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"tron-market/internal/tronmarket/data"
	"tron-market/internal/tronmarket/tronclient"
)

// OrderRepository is satisfied by both the in-memory store and the
// postgres repository. CompleteOrder must fail with
// data.ErrOrderNotPending unless the order is still PENDING.
type OrderRepository interface {
	InsertOrder(ctx context.Context, order *data.Order) error
	GetOrder(ctx context.Context, id string) (data.Order, error)
	GetOrders(ctx context.Context, allowedStatuses ...data.Status) ([]data.Order, error)
	CompleteOrder(
		ctx context.Context,
		id string,
		destinationAddress string,
		transferReceipt string,
		completedAt time.Time,
	) error
}

// LedgerClient is the narrow view of the TRON client the services
// depend on.
type LedgerClient interface {
	ValidateAddress(address string) bool
	GetBalance(ctx context.Context, address string) (tronclient.Balance, error)
	SendTRX(ctx context.Context, to string, amount decimal.Decimal) (string, error)
	SendUSDT(ctx context.Context, to string, amount decimal.Decimal) (string, error)
	GenerateAccount() (tronclient.Account, error)
}

type TokenFactory interface {
	Generate(extraClaims map[string]string) (string, error)
}

package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"tron-market/internal/tronmarket/tronclient"
	"tron-market/pkg/logging"
)

// Wallet is the pass-through surface over the ledger client: balance
// queries, direct TRX/USDT sends and wallet generation. It is not part
// of the order workflow.
type Wallet struct {
	client LedgerClient
	logger *logging.ZapLogger
}

func NewWallet(client LedgerClient, logger *logging.ZapLogger) *Wallet {
	return &Wallet{
		client: client,
		logger: logger,
	}
}

func (w *Wallet) GetBalance(ctx context.Context, address string) (tronclient.Balance, error) {
	if !w.client.ValidateAddress(address) {
		return tronclient.Balance{}, fmt.Errorf("%w: %s", ErrInvalidAddress, address)
	}
	balance, err := w.client.GetBalance(ctx, address)
	if err != nil {
		return tronclient.Balance{}, fmt.Errorf("error getting balance: %w", err)
	}
	return balance, nil
}

func (w *Wallet) SendTRX(ctx context.Context, to string, amount decimal.Decimal) (string, error) {
	if err := w.checkSend(to, amount); err != nil {
		return "", err
	}
	txid, err := w.client.SendTRX(ctx, to, amount)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTransferFailed, err)
	}
	w.logger.InfoCtx(ctx, "TRX sent", zap.String("to", to), zap.String("amount", amount.String()))
	return txid, nil
}

func (w *Wallet) SendUSDT(ctx context.Context, to string, amount decimal.Decimal) (string, error) {
	if err := w.checkSend(to, amount); err != nil {
		return "", err
	}
	txid, err := w.client.SendUSDT(ctx, to, amount)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTransferFailed, err)
	}
	w.logger.InfoCtx(ctx, "USDT sent", zap.String("to", to), zap.String("amount", amount.String()))
	return txid, nil
}

func (w *Wallet) GenerateWallet() (tronclient.Account, error) {
	account, err := w.client.GenerateAccount()
	if err != nil {
		return tronclient.Account{}, fmt.Errorf("error generating wallet: %w", err)
	}
	return account, nil
}

func (w *Wallet) checkSend(to string, amount decimal.Decimal) error {
	if !w.client.ValidateAddress(to) {
		return fmt.Errorf("%w: %s", ErrInvalidAddress, to)
	}
	if amount.Sign() <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrValidation)
	}
	return nil
}

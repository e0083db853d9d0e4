package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"tron-market/internal/tronmarket/data"
	"tron-market/pkg/logging"
	"tron-market/pkg/threadsafe"
)

type ApprovalConfig struct {
	TransferTimeout time.Duration
}

// Approval moves buy orders from PENDING to COMPLETED. It is the only
// writer of the mutable order fields. A per-order in-flight marker
// serializes concurrent approval calls against the same order, so at
// most one transfer is ever issued for a pending order.
type Approval struct {
	repository OrderRepository
	client     LedgerClient
	inFlight   *threadsafe.HashSet[string]
	cfg        ApprovalConfig
	logger     *logging.ZapLogger
}

func NewApproval(
	cfg ApprovalConfig,
	repository OrderRepository,
	client LedgerClient,
	logger *logging.ZapLogger,
) *Approval {
	return &Approval{
		repository: repository,
		client:     client,
		inFlight:   threadsafe.NewHashSet[string](),
		cfg:        cfg,
		logger:     logger,
	}
}

// Approve sends the order amount in USDT to destinationAddress and
// completes the order, returning the transaction id. On any failure
// the order stays PENDING and remains eligible for another attempt;
// retries are the caller's responsibility.
func (a *Approval) Approve(ctx context.Context, orderID, destinationAddress string) (string, error) {
	order, err := a.repository.GetOrder(ctx, orderID)
	if err != nil {
		return "", fmt.Errorf("error getting order: %w", err)
	}
	if err := checkApprovable(order); err != nil {
		return "", err
	}
	if !a.client.ValidateAddress(destinationAddress) {
		return "", fmt.Errorf("%w: %s", ErrInvalidAddress, destinationAddress)
	}

	if !a.inFlight.Add(orderID) {
		return "", fmt.Errorf("%w: approval already in progress", ErrInvalidOrderState)
	}
	defer a.inFlight.Remove(orderID)

	// Re-read under the marker: a concurrent approval may have
	// completed the order between the first check and Add.
	order, err = a.repository.GetOrder(ctx, orderID)
	if err != nil {
		return "", fmt.Errorf("error getting order: %w", err)
	}
	if err := checkApprovable(order); err != nil {
		return "", err
	}

	transferCtx, cancel := context.WithTimeout(ctx, a.cfg.TransferTimeout)
	defer cancel()

	txid, err := a.client.SendUSDT(transferCtx, destinationAddress, order.Amount)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(transferCtx.Err(), context.DeadlineExceeded) {
			a.logger.WarnCtx(
				ctx,
				"transfer timed out, it may still confirm on-chain",
				zap.String("orderID", orderID),
				zap.String("destination", destinationAddress),
			)
		}
		a.logger.WarnCtx(
			ctx,
			"approval attempt failed, order stays pending",
			zap.String("orderID", orderID),
			zap.String("destination", destinationAddress),
			zap.Error(err),
		)
		return "", fmt.Errorf("%w: %w", ErrTransferFailed, err)
	}

	err = a.repository.CompleteOrder(ctx, orderID, destinationAddress, txid, time.Now())
	if err != nil {
		// The transfer went out but the terminal state did not land.
		// Keep the txid in the log so an operator can reconcile.
		a.logger.ErrorCtx(
			ctx,
			"transfer sent but order completion failed",
			zap.String("orderID", orderID),
			zap.String("txid", txid),
			zap.Error(err),
		)
		return "", fmt.Errorf("error completing order: %w", err)
	}

	a.logger.InfoCtx(
		ctx,
		"order approved",
		zap.String("orderID", orderID),
		zap.String("destination", destinationAddress),
		zap.String("txid", txid),
	)
	return txid, nil
}

func checkApprovable(order data.Order) error {
	if order.Kind != data.BuyKind {
		return fmt.Errorf("%w: only buy orders can be approved", ErrInvalidOrderState)
	}
	if order.Status != data.PendingStatus {
		return fmt.Errorf("%w: order is %s", ErrInvalidOrderState, order.Status)
	}
	return nil
}

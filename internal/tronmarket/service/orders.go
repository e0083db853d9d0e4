package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"tron-market/internal/tronmarket/data"
	"tron-market/pkg/logging"
)

const anonymousName = "Anonymous"

type PlaceOrderRequest struct {
	Kind           data.Kind
	Amount         decimal.Decimal
	Contact        string
	Name           string
	ProofReference string
}

type Orders struct {
	repository OrderRepository
	logger     *logging.ZapLogger
}

func NewOrders(repository OrderRepository, logger *logging.ZapLogger) *Orders {
	return &Orders{
		repository: repository,
		logger:     logger,
	}
}

func (o *Orders) PlaceOrder(ctx context.Context, request PlaceOrderRequest) (string, error) {
	if request.Kind != data.BuyKind && request.Kind != data.SellKind {
		return "", fmt.Errorf("%w: unknown order type %q", ErrValidation, request.Kind)
	}
	if request.Amount.Sign() <= 0 {
		return "", fmt.Errorf("%w: amount must be positive", ErrValidation)
	}
	if request.Contact == "" {
		return "", fmt.Errorf("%w: contact is required", ErrValidation)
	}
	name := request.Name
	if name == "" {
		name = anonymousName
	}

	order := &data.Order{
		ID:             uuid.NewString(),
		Kind:           request.Kind,
		Amount:         request.Amount,
		Contact:        request.Contact,
		Name:           name,
		ProofReference: request.ProofReference,
		Status:         data.PendingStatus,
		CreatedAt:      time.Now(),
	}
	if err := o.repository.InsertOrder(ctx, order); err != nil {
		return "", fmt.Errorf("error inserting order: %w", err)
	}
	o.logger.InfoCtx(
		ctx,
		"order placed",
		zap.String("orderID", order.ID),
		zap.String("kind", string(order.Kind)),
		zap.String("amount", order.Amount.String()),
	)
	return order.ID, nil
}

func (o *Orders) GetOrder(ctx context.Context, id string) (data.Order, error) {
	order, err := o.repository.GetOrder(ctx, id)
	if err != nil {
		return data.Order{}, fmt.Errorf("error getting order: %w", err)
	}
	return order, nil
}

func (o *Orders) GetAllOrders(ctx context.Context) ([]data.Order, error) {
	orders, err := o.repository.GetOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting all orders: %w", err)
	}
	return orders, nil
}

func (o *Orders) GetPendingOrders(ctx context.Context) ([]data.Order, error) {
	orders, err := o.repository.GetOrders(ctx, data.PendingStatus)
	if err != nil {
		return nil, fmt.Errorf("error getting pending orders: %w", err)
	}
	return orders, nil
}

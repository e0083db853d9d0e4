package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"tron-market/internal/tronmarket/data"
	"tron-market/pkg/logging"
)

type OrdersGettingHandler struct {
	service OrdersGettingService
	logger  *logging.ZapLogger
}

type OrdersGettingService interface {
	GetAllOrders(ctx context.Context) ([]data.Order, error)
}

func NewOrdersGettingHandler(service OrdersGettingService, logger *logging.ZapLogger) *OrdersGettingHandler {
	return &OrdersGettingHandler{
		service: service,
		logger:  logger,
	}
}

func (h *OrdersGettingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.GetAllOrders(r.Context())
	if err != nil {
		h.logger.ErrorCtx(r.Context(), "error getting orders", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if err := tryWriteResponseJSON(w, toProtocolOrders(orders)); err != nil {
		h.logger.ErrorCtx(r.Context(), "error writing response", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
}

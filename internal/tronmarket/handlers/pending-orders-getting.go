package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"tron-market/internal/tronmarket/data"
	"tron-market/pkg/logging"
)

type PendingOrdersGettingHandler struct {
	service PendingOrdersGettingService
	logger  *logging.ZapLogger
}

type PendingOrdersGettingService interface {
	GetPendingOrders(ctx context.Context) ([]data.Order, error)
}

func NewPendingOrdersGettingHandler(
	service PendingOrdersGettingService,
	logger *logging.ZapLogger,
) *PendingOrdersGettingHandler {
	return &PendingOrdersGettingHandler{
		service: service,
		logger:  logger,
	}
}

func (h *PendingOrdersGettingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.GetPendingOrders(r.Context())
	if err != nil {
		h.logger.ErrorCtx(r.Context(), "error getting pending orders", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if err := tryWriteResponseJSON(w, toProtocolOrders(orders)); err != nil {
		h.logger.ErrorCtx(r.Context(), "error writing response", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
}

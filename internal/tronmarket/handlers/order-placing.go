package handlers

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"tron-market/internal/common/clientprotocol"
	"tron-market/internal/tronmarket/data"
	"tron-market/internal/tronmarket/service"
	"tron-market/pkg/logging"
)

type OrderPlacingHandler struct {
	service OrderPlacingService
	logger  *logging.ZapLogger
}

type OrderPlacingService interface {
	PlaceOrder(ctx context.Context, request service.PlaceOrderRequest) (string, error)
}

func NewOrderPlacingHandler(service OrderPlacingService, logger *logging.ZapLogger) *OrderPlacingHandler {
	return &OrderPlacingHandler{
		service: service,
		logger:  logger,
	}
}

func (h *OrderPlacingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defer closeBody(r.Context(), r.Body, h.logger)

	request, err := decodeJSON[clientprotocol.PlaceOrderRequest](r.Body)
	if err != nil {
		h.logger.DebugCtx(r.Context(), "input decoding error", zap.Error(err))
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	orderID, err := h.service.PlaceOrder(r.Context(), service.PlaceOrderRequest{
		Kind:           data.Kind(request.Type),
		Amount:         request.Amount,
		Contact:        request.Phone,
		Name:           request.Name,
		ProofReference: request.Proof,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			h.logger.DebugCtx(r.Context(), "order rejected", zap.Error(err))
			writeError(w, http.StatusBadRequest, err.Error())
			return
		default:
			h.logger.ErrorCtx(r.Context(), "error placing order", zap.Error(err))
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
	}

	if err := tryWriteResponseJSON(w, clientprotocol.PlaceOrderResponse{
		Success: true,
		OrderID: orderID,
	}); err != nil {
		h.logger.ErrorCtx(r.Context(), "error writing response", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
}

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

type OrderApprovingHandler struct {
	service OrderApprovingService
	logger  *logging.ZapLogger
}

type OrderApprovingService interface {
	Approve(ctx context.Context, orderID, destinationAddress string) (string, error)
}

func NewOrderApprovingHandler(service OrderApprovingService, logger *logging.ZapLogger) *OrderApprovingHandler {
	return &OrderApprovingHandler{
		service: service,
		logger:  logger,
	}
}

func (h *OrderApprovingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defer closeBody(r.Context(), r.Body, h.logger)

	request, err := decodeJSON[clientprotocol.ApproveOrderRequest](r.Body)
	if err != nil {
		h.logger.DebugCtx(r.Context(), "input decoding error", zap.Error(err))
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	txid, err := h.service.Approve(r.Context(), request.OrderID, request.UserAddress)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrOrderNotFound):
			writeError(w, http.StatusBadRequest, "order not found")
			return
		case errors.Is(err, service.ErrInvalidOrderState):
			h.logger.DebugCtx(r.Context(), "approval rejected", zap.Error(err))
			writeError(w, http.StatusBadRequest, "invalid order")
			return
		case errors.Is(err, service.ErrInvalidAddress):
			writeError(w, http.StatusBadRequest, "invalid TRON address")
			return
		case errors.Is(err, service.ErrTransferFailed):
			h.logger.ErrorCtx(r.Context(), "transfer failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		default:
			h.logger.ErrorCtx(r.Context(), "error approving order", zap.Error(err))
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
	}

	if err := tryWriteResponseJSON(w, clientprotocol.ApproveOrderResponse{
		Success:  true,
		TxID:     txid,
		Explorer: clientprotocol.ExplorerTxURL(txid),
	}); err != nil {
		h.logger.ErrorCtx(r.Context(), "error writing response", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
}

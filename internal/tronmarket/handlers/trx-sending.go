package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"tron-market/internal/common/clientprotocol"
	"tron-market/internal/tronmarket/service"
	"tron-market/pkg/logging"
)

type TRXSendingHandler struct {
	service TRXSendingService
	logger  *logging.ZapLogger
}

type TRXSendingService interface {
	SendTRX(ctx context.Context, to string, amount decimal.Decimal) (string, error)
}

func NewTRXSendingHandler(service TRXSendingService, logger *logging.ZapLogger) *TRXSendingHandler {
	return &TRXSendingHandler{
		service: service,
		logger:  logger,
	}
}

func (h *TRXSendingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defer closeBody(r.Context(), r.Body, h.logger)

	request, err := decodeJSON[clientprotocol.SendRequest](r.Body)
	if err != nil {
		h.logger.DebugCtx(r.Context(), "input decoding error", zap.Error(err))
		writeError(w, http.StatusBadRequest, "Missing/invalid to or amount")
		return
	}

	txid, err := h.service.SendTRX(r.Context(), request.To, request.Amount)
	if err != nil {
		writeSendError(w, r, err, h.logger)
		return
	}

	if err := tryWriteResponseJSON(w, clientprotocol.SendResponse{
		Success:  true,
		TxID:     txid,
		Message:  fmt.Sprintf("Sent %s TRX to %s", request.Amount, request.To),
		Explorer: clientprotocol.ExplorerTxURL(txid),
	}); err != nil {
		h.logger.ErrorCtx(r.Context(), "error writing response", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
}

func writeSendError(w http.ResponseWriter, r *http.Request, err error, logger *logging.ZapLogger) {
	switch {
	case errors.Is(err, service.ErrInvalidAddress):
		writeError(w, http.StatusBadRequest, "Invalid recipient address")
	case errors.Is(err, service.ErrValidation):
		writeError(w, http.StatusBadRequest, "Missing/invalid to or amount")
	default:
		logger.ErrorCtx(r.Context(), "transfer failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

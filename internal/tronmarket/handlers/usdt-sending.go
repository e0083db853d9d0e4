package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"tron-market/internal/common/clientprotocol"
	"tron-market/pkg/logging"
)

type USDTSendingHandler struct {
	service USDTSendingService
	logger  *logging.ZapLogger
}

type USDTSendingService interface {
	SendUSDT(ctx context.Context, to string, amount decimal.Decimal) (string, error)
}

func NewUSDTSendingHandler(service USDTSendingService, logger *logging.ZapLogger) *USDTSendingHandler {
	return &USDTSendingHandler{
		service: service,
		logger:  logger,
	}
}

func (h *USDTSendingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defer closeBody(r.Context(), r.Body, h.logger)

	request, err := decodeJSON[clientprotocol.SendRequest](r.Body)
	if err != nil {
		h.logger.DebugCtx(r.Context(), "input decoding error", zap.Error(err))
		writeError(w, http.StatusBadRequest, "Missing/invalid to or amount")
		return
	}

	txid, err := h.service.SendUSDT(r.Context(), request.To, request.Amount)
	if err != nil {
		writeSendError(w, r, err, h.logger)
		return
	}

	if err := tryWriteResponseJSON(w, clientprotocol.SendResponse{
		Success:  true,
		TxID:     txid,
		Message:  fmt.Sprintf("Sent %s USDT to %s", request.Amount, request.To),
		Explorer: clientprotocol.ExplorerTxURL(txid),
	}); err != nil {
		h.logger.ErrorCtx(r.Context(), "error writing response", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
}

package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"tron-market/internal/common/clientprotocol"
	"tron-market/internal/tronmarket/service"
	"tron-market/internal/tronmarket/tronclient"
	"tron-market/pkg/logging"
)

type BalanceGettingHandler struct {
	service BalanceGettingService
	logger  *logging.ZapLogger
}

type BalanceGettingService interface {
	GetBalance(ctx context.Context, address string) (tronclient.Balance, error)
}

func NewBalanceGettingHandler(service BalanceGettingService, logger *logging.ZapLogger) *BalanceGettingHandler {
	return &BalanceGettingHandler{
		service: service,
		logger:  logger,
	}
}

func (h *BalanceGettingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	address := chi.URLParam(r, "address")

	balance, err := h.service.GetBalance(r.Context(), address)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidAddress):
			writeError(w, http.StatusBadRequest, "Invalid TRON address")
			return
		default:
			h.logger.ErrorCtx(r.Context(), "error getting balance", zap.Error(err))
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}

	if err := tryWriteResponseJSON(w, clientprotocol.BalanceResponse{
		Address:    address,
		BalanceTRX: balance.TRX,
		BalanceSun: balance.Sun,
	}); err != nil {
		h.logger.ErrorCtx(r.Context(), "error writing response", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
}

package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"tron-market/internal/common/clientprotocol"
	"tron-market/internal/tronmarket/tronclient"
	"tron-market/pkg/logging"
)

const privateKeyWarning = "Keep privateKey secret! Fund via faucet."

type WalletGeneratingHandler struct {
	service WalletGeneratingService
	logger  *logging.ZapLogger
}

type WalletGeneratingService interface {
	GenerateWallet() (tronclient.Account, error)
}

func NewWalletGeneratingHandler(
	service WalletGeneratingService,
	logger *logging.ZapLogger,
) *WalletGeneratingHandler {
	return &WalletGeneratingHandler{
		service: service,
		logger:  logger,
	}
}

func (h *WalletGeneratingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	account, err := h.service.GenerateWallet()
	if err != nil {
		h.logger.ErrorCtx(r.Context(), "error generating wallet", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if err := tryWriteResponseJSON(w, clientprotocol.WalletResponse{
		Address:    account.Address,
		PrivateKey: account.PrivateKey,
		Warning:    privateKeyWarning,
	}); err != nil {
		h.logger.ErrorCtx(r.Context(), "error writing response", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
}

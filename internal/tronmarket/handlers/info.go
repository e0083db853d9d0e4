package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"tron-market/internal/common/clientprotocol"
	"tron-market/pkg/logging"
)

type InfoHandler struct {
	network      string
	usdtContract string
	logger       *logging.ZapLogger
}

func NewInfoHandler(network, usdtContract string, logger *logging.ZapLogger) *InfoHandler {
	return &InfoHandler{
		network:      network,
		usdtContract: usdtContract,
		logger:       logger,
	}
}

func (h *InfoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := tryWriteResponseJSON(w, clientprotocol.InfoResponse{
		Message:      "TRON market server is live",
		Network:      h.network,
		USDTContract: h.usdtContract,
	}); err != nil {
		h.logger.ErrorCtx(r.Context(), "error writing response", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
}

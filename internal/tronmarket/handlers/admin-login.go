package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"tron-market/internal/common/clientprotocol"
	"tron-market/internal/tronmarket/service"
	"tron-market/pkg/logging"
)

type AdminLoginHandler struct {
	service AdminLoginService
	logger  *logging.ZapLogger
}

type AdminLoginService interface {
	Login(secret string) (string, error)
}

func NewAdminLoginHandler(service AdminLoginService, logger *logging.ZapLogger) *AdminLoginHandler {
	return &AdminLoginHandler{
		service: service,
		logger:  logger,
	}
}

func (h *AdminLoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defer closeBody(r.Context(), r.Body, h.logger)

	request, err := decodeJSON[clientprotocol.AdminLoginRequest](r.Body)
	if err != nil {
		h.logger.DebugCtx(r.Context(), "input decoding error", zap.Error(err))
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := h.service.Login(request.Secret)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnauthorized):
			h.logger.DebugCtx(r.Context(), "admin login rejected")
			w.WriteHeader(http.StatusForbidden)
			return
		default:
			h.logger.ErrorCtx(r.Context(), "error logging admin in", zap.Error(err))
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
	}

	if err := tryWriteResponseJSON(w, clientprotocol.AdminLoginResponse{Token: token}); err != nil {
		h.logger.ErrorCtx(r.Context(), "error writing response", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
}

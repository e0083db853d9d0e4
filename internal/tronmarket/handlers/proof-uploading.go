package handlers

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tron-market/internal/common/clientprotocol"
	"tron-market/pkg/logging"
)

const (
	proofFormField    = "proof"
	maxProofSizeBytes = 8 << 20
)

var allowedProofExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".pdf":  {},
}

// ProofUploadingHandler stores a proof-of-payment artifact for sell
// orders and returns an opaque reference the client passes back on
// order placement.
type ProofUploadingHandler struct {
	uploadDir string
	logger    *logging.ZapLogger
}

func NewProofUploadingHandler(uploadDir string, logger *logging.ZapLogger) *ProofUploadingHandler {
	return &ProofUploadingHandler{
		uploadDir: uploadDir,
		logger:    logger,
	}
}

func (h *ProofUploadingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defer closeBody(r.Context(), r.Body, h.logger)

	r.Body = http.MaxBytesReader(w, r.Body, maxProofSizeBytes)
	file, header, err := r.FormFile(proofFormField)
	if err != nil {
		h.logger.DebugCtx(r.Context(), "proof upload rejected", zap.Error(err))
		writeError(w, http.StatusBadRequest, "missing proof file")
		return
	}
	defer closeBody(r.Context(), file, h.logger)

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if _, ok := allowedProofExtensions[ext]; !ok {
		writeError(w, http.StatusBadRequest, "unsupported proof file type")
		return
	}

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		h.logger.ErrorCtx(r.Context(), "failed to create upload dir", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	reference := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(h.uploadDir, reference))
	if err != nil {
		h.logger.ErrorCtx(r.Context(), "failed to create proof file", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	defer closeBody(r.Context(), dst, h.logger)

	if _, err := io.Copy(dst, file); err != nil {
		h.logger.ErrorCtx(r.Context(), "failed to store proof file", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if err := tryWriteResponseJSON(w, clientprotocol.ProofUploadResponse{Reference: reference}); err != nil {
		h.logger.ErrorCtx(r.Context(), "error writing response", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
}

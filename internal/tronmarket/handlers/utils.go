package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"go.uber.org/zap"

	"tron-market/internal/common/clientprotocol"
	"tron-market/internal/tronmarket/data"
	"tron-market/pkg/logging"
)

func closeBody(ctx context.Context, body io.ReadCloser, logger *logging.ZapLogger) {
	err := body.Close()
	if err != nil {
		logger.ErrorCtx(ctx, "failed to close body", zap.Error(err))
	}
}

func decodeJSON[T any](r io.Reader) (T, error) {
	var out T
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	err := decoder.Decode(&out)
	return out, err
}

func tryWriteResponseJSON(w http.ResponseWriter, responseItem any) error {
	res, err := json.Marshal(responseItem)
	if err != nil {
		return err
	}
	w.Header().Add("Content-Type", "application/json")
	_, err = w.Write(res)
	if err != nil {
		return err
	}
	return nil
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	res, err := json.Marshal(clientprotocol.ErrorResponse{Error: message})
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_, _ = w.Write(res)
}

func toProtocolOrder(order data.Order) clientprotocol.Order {
	res := clientprotocol.Order{
		ID:                 order.ID,
		Type:               clientprotocol.OrderType(order.Kind),
		Amount:             order.Amount,
		Phone:              order.Contact,
		Name:               order.Name,
		Proof:              order.ProofReference,
		CreatedAt:          order.CreatedAt,
		DestinationAddress: order.DestinationAddress,
		TransferReceipt:    order.TransferReceipt,
	}
	switch order.Status {
	case data.CompletedStatus:
		res.Status = clientprotocol.CompletedOrder
	default:
		res.Status = clientprotocol.PendingOrder
	}
	if !order.CompletedAt.IsZero() {
		completedAt := order.CompletedAt
		res.CompletedAt = &completedAt
	}
	return res
}

func toProtocolOrders(orders []data.Order) []clientprotocol.Order {
	res := make([]clientprotocol.Order, len(orders))
	for i, order := range orders {
		res[i] = toProtocolOrder(order)
	}
	return res
}

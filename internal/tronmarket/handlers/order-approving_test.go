package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tron-market/internal/common/clientprotocol"
	"tron-market/internal/tronmarket/data"
	"tron-market/internal/tronmarket/handlers"
	"tron-market/internal/tronmarket/service"
)

type fakeOrderApprovingService struct {
	lastOrderID string
	lastAddress string
	txid        string
	err         error
}

func (f *fakeOrderApprovingService) Approve(_ context.Context, orderID, destinationAddress string) (string, error) {
	f.lastOrderID = orderID
	f.lastAddress = destinationAddress
	return f.txid, f.err
}

func TestOrderApprovingHandler(t *testing.T) {
	tests := []struct {
		name               string
		body               string
		serviceErr         error
		expectedStatusCode int
		expectedError      string
	}{
		{
			name:               "approved",
			body:               `{"orderId":"order-1","userAddress":"TADDR"}`,
			expectedStatusCode: http.StatusOK,
		},
		{
			name:               "malformed json",
			body:               `{"orderId"`,
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name:               "order not found",
			body:               `{"orderId":"missing","userAddress":"TADDR"}`,
			serviceErr:         data.ErrOrderNotFound,
			expectedStatusCode: http.StatusBadRequest,
			expectedError:      "order not found",
		},
		{
			name:               "sell or completed order",
			body:               `{"orderId":"order-1","userAddress":"TADDR"}`,
			serviceErr:         fmt.Errorf("%w: sell orders are not approvable", service.ErrInvalidOrderState),
			expectedStatusCode: http.StatusBadRequest,
			expectedError:      "invalid order",
		},
		{
			name:               "invalid address",
			body:               `{"orderId":"order-1","userAddress":"bogus"}`,
			serviceErr:         service.ErrInvalidAddress,
			expectedStatusCode: http.StatusBadRequest,
			expectedError:      "invalid TRON address",
		},
		{
			name:               "transfer failed",
			body:               `{"orderId":"order-1","userAddress":"TADDR"}`,
			serviceErr:         fmt.Errorf("%w: broadcast rejected", service.ErrTransferFailed),
			expectedStatusCode: http.StatusInternalServerError,
		},
		{
			name:               "storage error",
			body:               `{"orderId":"order-1","userAddress":"TADDR"}`,
			serviceErr:         errors.New("connection refused"),
			expectedStatusCode: http.StatusInternalServerError,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			fakeService := &fakeOrderApprovingService{txid: "tx789", err: test.serviceErr}
			handler := handlers.NewOrderApprovingHandler(fakeService, newTestLogger(t))

			recorder := httptest.NewRecorder()
			request := httptest.NewRequest(http.MethodPost, "/api/admin/approve", strings.NewReader(test.body))
			handler.ServeHTTP(recorder, request)

			require.Equal(t, test.expectedStatusCode, recorder.Code)
			if test.expectedError != "" {
				var response clientprotocol.ErrorResponse
				require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
				assert.Equal(t, test.expectedError, response.Error)
			}
			if test.expectedStatusCode != http.StatusOK {
				return
			}
			var response clientprotocol.ApproveOrderResponse
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
			assert.True(t, response.Success)
			assert.Equal(t, "tx789", response.TxID)
			assert.Equal(t, clientprotocol.ExplorerTxURL("tx789"), response.Explorer)
			assert.Equal(t, "order-1", fakeService.lastOrderID)
			assert.Equal(t, "TADDR", fakeService.lastAddress)
		})
	}
}

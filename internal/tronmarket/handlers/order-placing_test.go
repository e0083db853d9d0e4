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
	"go.uber.org/zap/zapcore"

	"tron-market/internal/common/clientprotocol"
	"tron-market/internal/tronmarket/handlers"
	"tron-market/internal/tronmarket/service"
	"tron-market/pkg/logging"
)

func newTestLogger(t *testing.T) *logging.ZapLogger {
	t.Helper()
	logger, err := logging.NewZapLogger(zapcore.ErrorLevel)
	require.NoError(t, err)
	return logger
}

type fakeOrderPlacingService struct {
	lastRequest service.PlaceOrderRequest
	orderID     string
	err         error
}

func (f *fakeOrderPlacingService) PlaceOrder(_ context.Context, request service.PlaceOrderRequest) (string, error) {
	f.lastRequest = request
	return f.orderID, f.err
}

func TestOrderPlacingHandler(t *testing.T) {
	tests := []struct {
		name               string
		body               string
		serviceErr         error
		expectedStatusCode int
	}{
		{
			name:               "created",
			body:               `{"type":"buy","amount":"50","phone":"+100000000","name":"Alice"}`,
			expectedStatusCode: http.StatusOK,
		},
		{
			name:               "malformed json",
			body:               `{"type":`,
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name:               "unknown field",
			body:               `{"type":"buy","amount":"50","phone":"+1","wallet":"x"}`,
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name:               "validation error",
			body:               `{"type":"buy","amount":"0","phone":"+1"}`,
			serviceErr:         fmt.Errorf("%w: amount must be positive", service.ErrValidation),
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name:               "storage error",
			body:               `{"type":"buy","amount":"50","phone":"+1"}`,
			serviceErr:         errors.New("connection refused"),
			expectedStatusCode: http.StatusInternalServerError,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			fakeService := &fakeOrderPlacingService{orderID: "order-1", err: test.serviceErr}
			handler := handlers.NewOrderPlacingHandler(fakeService, newTestLogger(t))

			recorder := httptest.NewRecorder()
			request := httptest.NewRequest(http.MethodPost, "/api/order", strings.NewReader(test.body))
			handler.ServeHTTP(recorder, request)

			require.Equal(t, test.expectedStatusCode, recorder.Code)
			if test.expectedStatusCode != http.StatusOK {
				return
			}
			var response clientprotocol.PlaceOrderResponse
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
			assert.True(t, response.Success)
			assert.Equal(t, "order-1", response.OrderID)
		})
	}
}

func TestOrderPlacingHandlerPassesFieldsThrough(t *testing.T) {
	fakeService := &fakeOrderPlacingService{orderID: "order-1"}
	handler := handlers.NewOrderPlacingHandler(fakeService, newTestLogger(t))

	body := `{"type":"sell","amount":"12.5","phone":"+100000001","name":"Bob","proof":"receipt.png"}`
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/api/order", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.EqualValues(t, "sell", fakeService.lastRequest.Kind)
	assert.Equal(t, "12.5", fakeService.lastRequest.Amount.String())
	assert.Equal(t, "+100000001", fakeService.lastRequest.Contact)
	assert.Equal(t, "Bob", fakeService.lastRequest.Name)
	assert.Equal(t, "receipt.png", fakeService.lastRequest.ProofReference)
}

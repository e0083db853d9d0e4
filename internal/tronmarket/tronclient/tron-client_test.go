package tronclient_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"tron-market/internal/common/tronprotocol"
	"tron-market/internal/tronmarket/tronclient"
	"tron-market/pkg/logging"
	"tron-market/pkg/tronaddr"
)

const usdtContract = "TR7NHqjeKQxGTCi8q8ZY4pL8otSzgjLj6t"

type nodeStub struct {
	mux *http.ServeMux

	broadcastRequests []tronprotocol.Transaction
	triggerRequests   []tronprotocol.TriggerSmartContractRequest
	broadcastResponse tronprotocol.BroadcastResponse
}

func newNodeStub(t *testing.T) *nodeStub {
	t.Helper()
	stub := &nodeStub{
		mux:               http.NewServeMux(),
		broadcastResponse: tronprotocol.BroadcastResponse{Result: true},
	}

	stub.mux.HandleFunc("/wallet/getaccount", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, tronprotocol.Account{Balance: 123_456_789})
	})

	stub.mux.HandleFunc("/wallet/createtransaction", func(w http.ResponseWriter, r *http.Request) {
		var request tronprotocol.TransferRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&request))
		writeJSON(t, w, unsignedTransaction())
	})

	stub.mux.HandleFunc("/wallet/triggersmartcontract", func(w http.ResponseWriter, r *http.Request) {
		var request tronprotocol.TriggerSmartContractRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&request))
		stub.triggerRequests = append(stub.triggerRequests, request)
		writeJSON(t, w, tronprotocol.TriggerSmartContractResponse{
			Result:      tronprotocol.TriggerResult{Result: true},
			Transaction: unsignedTransaction(),
		})
	})

	stub.mux.HandleFunc("/wallet/broadcasttransaction", func(w http.ResponseWriter, r *http.Request) {
		var request tronprotocol.Transaction
		require.NoError(t, json.NewDecoder(r.Body).Decode(&request))
		stub.broadcastRequests = append(stub.broadcastRequests, request)
		response := stub.broadcastResponse
		if response.Result && response.TxID == "" {
			response.TxID = request.TxID
		}
		writeJSON(t, w, response)
	})

	return stub
}

func writeJSON(t *testing.T, w http.ResponseWriter, item any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(item))
}

func unsignedTransaction() tronprotocol.Transaction {
	hash := sha256.Sum256([]byte("raw data"))
	return tronprotocol.Transaction{
		Visible:    true,
		TxID:       hex.EncodeToString(hash[:]),
		RawData:    json.RawMessage(`{}`),
		RawDataHex: "00",
	}
}

func newTestClient(t *testing.T, url string) *tronclient.Client {
	t.Helper()
	logger, err := logging.NewZapLogger(zapcore.ErrorLevel)
	require.NoError(t, err)

	priv, err := tronaddr.GenerateKey()
	require.NoError(t, err)

	client, err := tronclient.New(tronclient.Config{
		FullNodeURL:  url,
		PrivateKey:   hex.EncodeToString(priv.Serialize()),
		USDTContract: usdtContract,
		FeeLimit:     100_000_000,
	}, logger)
	require.NoError(t, err)
	return client
}

func TestGetBalance(t *testing.T) {
	stub := newNodeStub(t)
	server := httptest.NewServer(stub.mux)
	defer server.Close()

	client := newTestClient(t, server.URL)

	balance, err := client.GetBalance(context.Background(), usdtContract)
	require.NoError(t, err)
	assert.EqualValues(t, 123_456_789, balance.Sun)
	assert.Equal(t, "123.456789", balance.TRX.String())
}

func TestGetBalanceRejectsInvalidAddress(t *testing.T) {
	stub := newNodeStub(t)
	server := httptest.NewServer(stub.mux)
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.GetBalance(context.Background(), "bogus")
	assert.ErrorIs(t, err, tronclient.ErrInvalidRecipient)
}

func TestSendTRXSignsAndBroadcasts(t *testing.T) {
	stub := newNodeStub(t)
	server := httptest.NewServer(stub.mux)
	defer server.Close()

	client := newTestClient(t, server.URL)

	txid, err := client.SendTRX(context.Background(), usdtContract, decimal.NewFromInt(5))
	require.NoError(t, err)
	assert.Equal(t, unsignedTransaction().TxID, txid)

	require.Len(t, stub.broadcastRequests, 1)
	broadcast := stub.broadcastRequests[0]
	require.Len(t, broadcast.Signature, 1)
	signature, err := hex.DecodeString(broadcast.Signature[0])
	require.NoError(t, err)
	assert.Len(t, signature, 65)
}

func TestSendTRXAmountValidation(t *testing.T) {
	stub := newNodeStub(t)
	server := httptest.NewServer(stub.mux)
	defer server.Close()

	client := newTestClient(t, server.URL)

	tests := []struct {
		name   string
		amount decimal.Decimal
	}{
		{name: "zero", amount: decimal.Zero},
		{name: "negative", amount: decimal.NewFromInt(-1)},
		{name: "too many decimal places", amount: decimal.RequireFromString("0.0000001")},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := client.SendTRX(context.Background(), usdtContract, test.amount)
			assert.ErrorIs(t, err, tronclient.ErrInvalidAmount)
		})
	}
	assert.Empty(t, stub.broadcastRequests)
}

func TestSendUSDTEncodesTransferCall(t *testing.T) {
	stub := newNodeStub(t)
	server := httptest.NewServer(stub.mux)
	defer server.Close()

	client := newTestClient(t, server.URL)

	recipient := "TXYZopYRdj2D9XRtbG411XZZ3kM5VkAeBf"
	_, err := client.SendUSDT(context.Background(), recipient, decimal.RequireFromString("12.5"))
	require.NoError(t, err)

	require.Len(t, stub.triggerRequests, 1)
	trigger := stub.triggerRequests[0]
	assert.Equal(t, usdtContract, trigger.ContractAddress)
	assert.Equal(t, "transfer(address,uint256)", trigger.FunctionSelector)
	assert.EqualValues(t, 100_000_000, trigger.FeeLimit)
	assert.Zero(t, trigger.CallValue)

	parameter, err := hex.DecodeString(trigger.Parameter)
	require.NoError(t, err)
	require.Len(t, parameter, 64)

	body, err := tronaddr.Decode(recipient)
	require.NoError(t, err)
	assert.Equal(t, body, parameter[12:32])
	// 12.5 USDT = 12_500_000 units
	assert.EqualValues(t, 12_500_000, int64(parameter[60])<<24|int64(parameter[61])<<16|int64(parameter[62])<<8|int64(parameter[63]))

	require.Len(t, stub.broadcastRequests, 1)
	assert.Len(t, stub.broadcastRequests[0].Signature, 1)
}

func TestBroadcastRejectionSurfacesNodeMessage(t *testing.T) {
	stub := newNodeStub(t)
	stub.broadcastResponse = tronprotocol.BroadcastResponse{
		Result:  false,
		Code:    "SIGERROR",
		Message: hex.EncodeToString([]byte("validate signature error")),
	}
	server := httptest.NewServer(stub.mux)
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.SendTRX(context.Background(), usdtContract, decimal.NewFromInt(5))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SIGERROR")
	assert.Contains(t, err.Error(), "validate signature error")
}

func TestSendWithoutPrivateKey(t *testing.T) {
	logger, err := logging.NewZapLogger(zapcore.ErrorLevel)
	require.NoError(t, err)

	client, err := tronclient.New(tronclient.Config{FullNodeURL: "http://localhost:0"}, logger)
	require.NoError(t, err)

	_, err = client.SendTRX(context.Background(), usdtContract, decimal.NewFromInt(1))
	assert.ErrorIs(t, err, tronclient.ErrNoPrivateKey)

	_, err = client.SendUSDT(context.Background(), usdtContract, decimal.NewFromInt(1))
	assert.ErrorIs(t, err, tronclient.ErrNoPrivateKey)
}

func TestGenerateAccount(t *testing.T) {
	logger, err := logging.NewZapLogger(zapcore.ErrorLevel)
	require.NoError(t, err)

	client, err := tronclient.New(tronclient.Config{FullNodeURL: "http://localhost:0"}, logger)
	require.NoError(t, err)

	account, err := client.GenerateAccount()
	require.NoError(t, err)
	assert.True(t, tronaddr.Validate(account.Address))

	priv, err := tronaddr.ParsePrivateKey(account.PrivateKey)
	require.NoError(t, err)
	assert.Equal(t, account.Address, tronaddr.FromPrivateKey(priv))
}

// Package clientprotocol holds the JSON bodies of the public HTTP API.
package clientprotocol

import (
	"time"

	"github.com/shopspring/decimal"
)

const explorerTxURL = "https://tronscan.org/#/transaction/"

const (
	BuyOrder  OrderType = "buy"
	SellOrder OrderType = "sell"
)

type OrderType string

const (
	PendingOrder   OrderStatus = "pending"
	CompletedOrder OrderStatus = "completed"
)

type OrderStatus string

type PlaceOrderRequest struct {
	Type   OrderType       `json:"type"`
	Amount decimal.Decimal `json:"amount"`
	Phone  string          `json:"phone"`
	Name   string          `json:"name,omitempty"`
	Proof  string          `json:"proof,omitempty"`
}

type PlaceOrderResponse struct {
	Success bool   `json:"success"`
	OrderID string `json:"orderId"`
}

type Order struct {
	ID                 string          `json:"id"`
	Type               OrderType       `json:"type"`
	Amount             decimal.Decimal `json:"amount"`
	Phone              string          `json:"phone"`
	Name               string          `json:"name"`
	Proof              string          `json:"proof,omitempty"`
	Status             OrderStatus     `json:"status"`
	DestinationAddress string          `json:"userAddress,omitempty"`
	TransferReceipt    string          `json:"txid,omitempty"`
	CreatedAt          time.Time       `json:"createdAt"`
	CompletedAt        *time.Time      `json:"completedAt,omitempty"`
}

type ApproveOrderRequest struct {
	OrderID     string `json:"orderId"`
	UserAddress string `json:"userAddress"`
}

type ApproveOrderResponse struct {
	Success  bool   `json:"success"`
	TxID     string `json:"txid"`
	Explorer string `json:"explorer"`
}

type AdminLoginRequest struct {
	Secret string `json:"secret"`
}

type AdminLoginResponse struct {
	Token string `json:"token"`
}

type ProofUploadResponse struct {
	Reference string `json:"reference"`
}

type BalanceResponse struct {
	Address    string          `json:"address"`
	BalanceTRX decimal.Decimal `json:"balanceTRX"`
	BalanceSun int64           `json:"balanceSun"`
}

type SendRequest struct {
	To     string          `json:"to"`
	Amount decimal.Decimal `json:"amount"`
}

type SendResponse struct {
	Success  bool   `json:"success"`
	TxID     string `json:"txid"`
	Message  string `json:"message"`
	Explorer string `json:"explorer"`
}

type WalletResponse struct {
	Address    string `json:"address"`
	PrivateKey string `json:"privateKey"`
	Warning    string `json:"warning"`
}

type InfoResponse struct {
	Message      string `json:"message"`
	Network      string `json:"network"`
	USDTContract string `json:"usdt_contract"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// ExplorerTxURL builds the tronscan link returned alongside a
// transaction id.
func ExplorerTxURL(txid string) string {
	return explorerTxURL + txid
}

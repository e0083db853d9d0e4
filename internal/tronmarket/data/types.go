package data

import (
	"time"

	"github.com/shopspring/decimal"
)

type Kind string

const (
	NullKind Kind = ""
	BuyKind  Kind = "buy"
	SellKind Kind = "sell"
)

type Status string

const (
	NullStatus      Status = ""
	PendingStatus   Status = "PENDING"
	CompletedStatus Status = "COMPLETED"
)

// Order is a request to buy or sell USDT. Everything except Status,
// DestinationAddress, TransferReceipt and CompletedAt is immutable
// after creation; those four are written exactly once, by the approval
// workflow, when the order moves from PENDING to COMPLETED.
type Order struct {
	ID                 string
	Kind               Kind
	Amount             decimal.Decimal
	Contact            string
	Name               string
	ProofReference     string
	Status             Status
	DestinationAddress string
	TransferReceipt    string
	CreatedAt          time.Time
	CompletedAt        time.Time
}

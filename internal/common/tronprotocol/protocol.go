// Package tronprotocol holds the wire types of the TRON full-node
// HTTP API (the /wallet/* endpoints served by TronGrid).
package tronprotocol

import "encoding/json"

// Transaction is an unsigned or signed transaction as returned by the
// node. RawData is kept opaque: the node built it and broadcast takes
// it back verbatim, only Signature is added in between. TxID is the
// hex-encoded sha256 of the serialized raw data and is the payload
// that gets signed.
type Transaction struct {
	Visible    bool            `json:"visible"`
	TxID       string          `json:"txID"`
	RawData    json.RawMessage `json:"raw_data"`
	RawDataHex string          `json:"raw_data_hex"`
	Signature  []string        `json:"signature,omitempty"`
	Error      string          `json:"Error,omitempty"`
}

type AccountRequest struct {
	Address string `json:"address"`
	Visible bool   `json:"visible"`
}

// Account is the subset of wallet/getaccount we consume. A never-used
// address comes back as an empty object, which scans as zero balance.
type Account struct {
	Address string `json:"address"`
	Balance int64  `json:"balance"`
}

type TransferRequest struct {
	OwnerAddress string `json:"owner_address"`
	ToAddress    string `json:"to_address"`
	Amount       int64  `json:"amount"`
	Visible      bool   `json:"visible"`
}

type TriggerSmartContractRequest struct {
	OwnerAddress     string `json:"owner_address"`
	ContractAddress  string `json:"contract_address"`
	FunctionSelector string `json:"function_selector"`
	Parameter        string `json:"parameter"`
	FeeLimit         int64  `json:"fee_limit"`
	CallValue        int64  `json:"call_value"`
	Visible          bool   `json:"visible"`
}

type TriggerSmartContractResponse struct {
	Result      TriggerResult `json:"result"`
	Transaction Transaction   `json:"transaction"`
}

type TriggerResult struct {
	Result  bool   `json:"result"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type BroadcastResponse struct {
	Result  bool   `json:"result"`
	TxID    string `json:"txid"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

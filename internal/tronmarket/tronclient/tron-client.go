// Package tronclient talks to a TRON full node over the /wallet/* HTTP
// API: balance queries, TRX transfers, TRC20 USDT transfers and local
// account generation. Transactions are built by the node, signed
// locally and broadcast back.
package tronclient

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/btcec"
	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"tron-market/internal/common/tronprotocol"
	"tron-market/pkg/logging"
	"tron-market/pkg/tronaddr"
)

const (
	apiKeyHeader     = "TRON-PRO-API-KEY"
	transferSelector = "transfer(address,uint256)"

	// Both TRX (in sun) and TRC20 USDT carry six decimal places.
	assetDecimals = 6

	abiWordLen = 32
)

var (
	ErrNoPrivateKey     = errors.New("no private key configured")
	ErrInvalidAmount    = errors.New("invalid transfer amount")
	ErrInvalidRecipient = errors.New("invalid recipient address")
)

type Config struct {
	FullNodeURL     string
	SolidityNodeURL string
	EventServerURL  string
	APIKey          string
	PrivateKey      string
	USDTContract    string
	FeeLimit        int64
}

type Balance struct {
	Sun int64
	TRX decimal.Decimal
}

type Account struct {
	Address    string
	PrivateKey string
}

type Client struct {
	http         *resty.Client
	cfg          Config
	privateKey   *btcec.PrivateKey
	ownerAddress string
	logger       *logging.ZapLogger
}

func New(cfg Config, logger *logging.ZapLogger) (*Client, error) {
	httpClient := resty.New().SetBaseURL(cfg.FullNodeURL)
	if cfg.APIKey != "" {
		httpClient.SetHeader(apiKeyHeader, cfg.APIKey)
	}
	c := &Client{
		http:   httpClient,
		cfg:    cfg,
		logger: logger,
	}
	if cfg.PrivateKey != "" {
		priv, err := tronaddr.ParsePrivateKey(cfg.PrivateKey)
		if err != nil {
			return nil, fmt.Errorf("failed to parse private key: %w", err)
		}
		c.privateKey = priv
		c.ownerAddress = tronaddr.FromPrivateKey(priv)
	}
	return c, nil
}

// OwnerAddress is the address derived from the configured private key,
// empty when the client is read-only.
func (c *Client) OwnerAddress() string {
	return c.ownerAddress
}

func (c *Client) ValidateAddress(address string) bool {
	return tronaddr.Validate(address)
}

func (c *Client) GetBalance(ctx context.Context, address string) (Balance, error) {
	if !tronaddr.Validate(address) {
		return Balance{}, ErrInvalidRecipient
	}
	var account tronprotocol.Account
	err := c.post(ctx, "/wallet/getaccount", tronprotocol.AccountRequest{
		Address: address,
		Visible: true,
	}, &account)
	if err != nil {
		return Balance{}, err
	}
	return Balance{
		Sun: account.Balance,
		TRX: decimal.NewFromInt(account.Balance).Shift(-assetDecimals),
	}, nil
}

func (c *Client) SendTRX(ctx context.Context, to string, amount decimal.Decimal) (string, error) {
	if c.privateKey == nil {
		return "", ErrNoPrivateKey
	}
	if !tronaddr.Validate(to) {
		return "", ErrInvalidRecipient
	}
	sun, err := sunFromAmount(amount)
	if err != nil {
		return "", err
	}
	var tx tronprotocol.Transaction
	err = c.post(ctx, "/wallet/createtransaction", tronprotocol.TransferRequest{
		OwnerAddress: c.ownerAddress,
		ToAddress:    to,
		Amount:       sun,
		Visible:      true,
	}, &tx)
	if err != nil {
		return "", err
	}
	if tx.Error != "" {
		return "", fmt.Errorf("node rejected transaction: %s", tx.Error)
	}
	if tx.TxID == "" {
		return "", errors.New("node returned no transaction")
	}
	return c.signAndBroadcast(ctx, &tx)
}

func (c *Client) SendUSDT(ctx context.Context, to string, amount decimal.Decimal) (string, error) {
	if c.privateKey == nil {
		return "", ErrNoPrivateKey
	}
	sun, err := sunFromAmount(amount)
	if err != nil {
		return "", err
	}
	parameter, err := encodeTransferParameter(to, sun)
	if err != nil {
		return "", err
	}
	var response tronprotocol.TriggerSmartContractResponse
	err = c.post(ctx, "/wallet/triggersmartcontract", tronprotocol.TriggerSmartContractRequest{
		OwnerAddress:     c.ownerAddress,
		ContractAddress:  c.cfg.USDTContract,
		FunctionSelector: transferSelector,
		Parameter:        parameter,
		FeeLimit:         c.cfg.FeeLimit,
		CallValue:        0,
		Visible:          true,
	}, &response)
	if err != nil {
		return "", err
	}
	if !response.Result.Result {
		return "", fmt.Errorf(
			"contract call rejected: %s %s",
			response.Result.Code,
			decodeNodeMessage(response.Result.Message),
		)
	}
	return c.signAndBroadcast(ctx, &response.Transaction)
}

// GenerateAccount creates a fresh keypair locally, the node is not
// involved.
func (c *Client) GenerateAccount() (Account, error) {
	priv, err := tronaddr.GenerateKey()
	if err != nil {
		return Account{}, fmt.Errorf("failed to generate account: %w", err)
	}
	return Account{
		Address:    tronaddr.FromPrivateKey(priv),
		PrivateKey: hex.EncodeToString(priv.Serialize()),
	}, nil
}

func (c *Client) signAndBroadcast(ctx context.Context, tx *tronprotocol.Transaction) (string, error) {
	hash, err := hex.DecodeString(tx.TxID)
	if err != nil {
		return "", fmt.Errorf("transaction id is not valid hex: %w", err)
	}
	signature, err := tronaddr.Sign(c.privateKey, hash)
	if err != nil {
		return "", fmt.Errorf("failed to sign transaction: %w", err)
	}
	tx.Signature = append(tx.Signature, hex.EncodeToString(signature))

	var result tronprotocol.BroadcastResponse
	if err := c.post(ctx, "/wallet/broadcasttransaction", tx, &result); err != nil {
		return "", err
	}
	if !result.Result {
		return "", fmt.Errorf(
			"broadcast rejected: %s %s",
			result.Code,
			decodeNodeMessage(result.Message),
		)
	}
	txid := result.TxID
	if txid == "" {
		txid = tx.TxID
	}
	c.logger.InfoCtx(ctx, "transaction broadcast", zap.String("txid", txid))
	return txid, nil
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		Post(path)
	if err != nil {
		return fmt.Errorf("post %s failed: %w", path, err)
	}
	if resp.IsError() {
		return fmt.Errorf("post %s: unexpected status code %v", path, resp.StatusCode())
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("post %s: error unmarshalling response: %w", path, err)
	}
	return nil
}

func sunFromAmount(amount decimal.Decimal) (int64, error) {
	shifted := amount.Shift(assetDecimals)
	if shifted.Sign() <= 0 {
		return 0, ErrInvalidAmount
	}
	if !shifted.IsInteger() {
		return 0, fmt.Errorf("%w: more than %v decimal places", ErrInvalidAmount, assetDecimals)
	}
	if !shifted.BigInt().IsInt64() {
		return 0, fmt.Errorf("%w: amount out of range", ErrInvalidAmount)
	}
	return shifted.IntPart(), nil
}

// encodeTransferParameter ABI-encodes the arguments of
// transfer(address,uint256): two 32-byte words, the 20-byte address
// body and the big-endian amount, both left-padded.
func encodeTransferParameter(to string, sun int64) (string, error) {
	body, err := tronaddr.Decode(to)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidRecipient, to)
	}
	parameter := make([]byte, 2*abiWordLen)
	copy(parameter[abiWordLen-len(body):abiWordLen], body)
	amountBytes := big.NewInt(sun).Bytes()
	copy(parameter[2*abiWordLen-len(amountBytes):], amountBytes)
	return hex.EncodeToString(parameter), nil
}

// Node error messages arrive hex-encoded; fall back to the raw value
// when they do not decode.
func decodeNodeMessage(message string) string {
	decoded, err := hex.DecodeString(message)
	if err != nil {
		return message
	}
	return string(decoded)
}

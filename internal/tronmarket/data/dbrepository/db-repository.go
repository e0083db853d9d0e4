package dbrepository

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"tron-market/internal/tronmarket/data"
	"tron-market/pkg/logging"
)

const uniqueViolationCode = "23505"

type DBStorage interface {
	Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, query string, args ...any) (pgx.Row, error)
	Query(ctx context.Context, query string, args ...any) (pgx.Rows, error)
	QueryValue(ctx context.Context, query string, args []any, dest []any) error
}

type DBRepository struct {
	storage DBStorage
	logger  *logging.ZapLogger
}

func New(storage DBStorage, logger *logging.ZapLogger) *DBRepository {
	return &DBRepository{
		storage: storage,
		logger:  logger,
	}
}

//go:embed sql/insert_order.sql
var insertOrderQuery string

func (db *DBRepository) InsertOrder(ctx context.Context, order *data.Order) error {
	_, err := db.storage.Exec(
		ctx,
		insertOrderQuery,
		order.ID,
		string(order.Kind),
		order.Amount,
		order.Contact,
		order.Name,
		nullable(order.ProofReference),
		string(order.Status),
		order.CreatedAt,
	)
	if err != nil {
		return handleSQLError(err)
	}
	return nil
}

//go:embed sql/select_order.sql
var selectOrderQuery string

func (db *DBRepository) GetOrder(ctx context.Context, id string) (data.Order, error) {
	order := data.Order{ID: id}
	var (
		proof       *string
		destination *string
		receipt     *string
		completedAt *time.Time
	)
	err := db.storage.QueryValue(
		ctx,
		selectOrderQuery,
		[]any{id},
		[]any{
			&order.Kind,
			&order.Amount,
			&order.Contact,
			&order.Name,
			&proof,
			&order.Status,
			&destination,
			&receipt,
			&order.CreatedAt,
			&completedAt,
		},
	)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return data.Order{}, data.ErrOrderNotFound
		default:
			return data.Order{}, handleSQLError(err)
		}
	}
	order.ProofReference = deref(proof)
	order.DestinationAddress = deref(destination)
	order.TransferReceipt = deref(receipt)
	if completedAt != nil {
		order.CompletedAt = *completedAt
	}
	return order, nil
}

func (db *DBRepository) GetOrders(ctx context.Context, allowedStatuses ...data.Status) ([]data.Order, error) {
	query := `SELECT id, kind, amount, contact, name, proof_reference, status,
		destination_address, transfer_receipt, created_at, completed_at FROM orders`
	args := make([]any, 0, len(allowedStatuses))
	if len(allowedStatuses) > 0 {
		query += fmt.Sprintf(" WHERE status IN (%s)", formatParams(1, len(allowedStatuses)))
		for _, allowedStatus := range allowedStatuses {
			args = append(args, string(allowedStatus))
		}
	}
	query += " ORDER BY created_at"

	rows, err := db.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, handleSQLError(err)
	}
	defer rows.Close()

	result := make([]data.Order, 0)
	for rows.Next() {
		var (
			order       data.Order
			proof       *string
			destination *string
			receipt     *string
			completedAt *time.Time
		)
		err := rows.Scan(
			&order.ID,
			&order.Kind,
			&order.Amount,
			&order.Contact,
			&order.Name,
			&proof,
			&order.Status,
			&destination,
			&receipt,
			&order.CreatedAt,
			&completedAt,
		)
		if err != nil {
			return nil, handleSQLError(err)
		}
		order.ProofReference = deref(proof)
		order.DestinationAddress = deref(destination)
		order.TransferReceipt = deref(receipt)
		if completedAt != nil {
			order.CompletedAt = *completedAt
		}
		result = append(result, order)
	}
	if err = rows.Err(); err != nil {
		return nil, handleSQLError(err)
	}
	return result, nil
}

//go:embed sql/complete_order.sql
var completeOrderQuery string

// CompleteOrder performs the PENDING -> COMPLETED transition as a
// conditional update, so a second completion attempt affects no rows.
func (db *DBRepository) CompleteOrder(
	ctx context.Context,
	id string,
	destinationAddress string,
	transferReceipt string,
	completedAt time.Time,
) error {
	tag, err := db.storage.Exec(
		ctx,
		completeOrderQuery,
		id,
		string(data.CompletedStatus),
		destinationAddress,
		transferReceipt,
		completedAt,
		string(data.PendingStatus),
	)
	if err != nil {
		return handleSQLError(err)
	}
	if tag.RowsAffected() == 0 {
		order, err := db.GetOrder(ctx, id)
		if err != nil {
			return err
		}
		if order.Status != data.PendingStatus {
			return data.ErrOrderNotPending
		}
		return data.ErrOrderNotFound
	}
	return nil
}

func handleSQLError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == uniqueViolationCode {
			return data.ErrUniqueConstraintViolation
		}
	}
	return err
}

func formatParams(firstNumber, valuesCount int) string {
	currentNum := firstNumber
	values := make([]string, valuesCount)
	for i := range valuesCount {
		values[i] = fmt.Sprintf("$%v", currentNum)
		currentNum++
	}
	return strings.Join(values, ",")
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

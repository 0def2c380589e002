package repository

import (
	"context"
	"errors"
	"fmt"

	"mini-checkout/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// uniqueViolation is the PostgreSQL SQLSTATE for unique_violation.
const uniqueViolation = "23505"

const orderColumns = `id, source_session_id, owner_id, product_name, amount, currency,
	payment_status, payment_reference_id, customer_email, customer_name,
	payment_method_kinds, purchased_at`

// orderRepository implements the OrderRepository interface using PostgreSQL.
// Orders are never updated or deleted.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

// Create inserts a new order. A second insert for the same source session
// fails the UNIQUE constraint and is reported as model.ErrDuplicateOrder.
func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	kinds := order.PaymentMethodKinds
	if kinds == nil {
		kinds = []string{}
	}

	_, err := r.pool.Exec(ctx, query,
		order.ID,
		order.SourceSessionID,
		order.OwnerID,
		order.ProductName,
		order.Amount,
		order.Currency,
		order.PaymentStatus,
		order.PaymentReferenceID,
		order.CustomerEmail,
		order.CustomerName,
		kinds,
		order.PurchasedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			r.logger.Info().
				Str("session_id", order.SourceSessionID).
				Msg("order already recorded for session")
			return model.ErrDuplicateOrder
		}
		r.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Str("session_id", order.SourceSessionID).
			Msg("failed to create order")
		return fmt.Errorf("failed to create order: %w", err)
	}

	r.logger.Debug().
		Str("order_id", order.ID.String()).
		Str("session_id", order.SourceSessionID).
		Msg("order created successfully")

	return nil
}

// GetBySessionID returns the order recorded for a checkout session, or nil.
func (r *orderRepository) GetBySessionID(ctx context.Context, sessionID string) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE source_session_id = $1`

	order, err := scanOrder(r.pool.QueryRow(ctx, query, sessionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("session_id", sessionID).Msg("order not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("session_id", sessionID).Msg("failed to query order")
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	return order, nil
}

// List returns orders, newest first.
func (r *orderRepository) List(ctx context.Context, limit, offset int) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY purchased_at DESC, id LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query orders")
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := []model.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order row")
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, *order)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order rows")
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	return orders, nil
}

func scanOrder(row pgx.Row) (*model.Order, error) {
	var order model.Order
	err := row.Scan(
		&order.ID,
		&order.SourceSessionID,
		&order.OwnerID,
		&order.ProductName,
		&order.Amount,
		&order.Currency,
		&order.PaymentStatus,
		&order.PaymentReferenceID,
		&order.CustomerEmail,
		&order.CustomerName,
		&order.PaymentMethodKinds,
		&order.PurchasedAt,
	)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

package service

import (
	"context"
	"fmt"

	"mini-checkout/internal/model"
	"mini-checkout/internal/repository"

	"github.com/rs/zerolog"
)

// orderService implements OrderService.
type orderService struct {
	orderRepo repository.OrderRepository
	logger    zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(orderRepo repository.OrderRepository, logger zerolog.Logger) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		logger:    logger.With().Str("service", "order").Logger(),
	}
}

// Order ledger page bounds.
const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// ClampPage returns the limit and offset List actually applies.
func ClampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// List retrieves orders with pagination.
func (s *orderService) List(ctx context.Context, limit, offset int) ([]model.Order, error) {
	limit, offset = ClampPage(limit, offset)

	orders, err := s.orderRepo.List(ctx, limit, offset)
	if err != nil {
		s.logger.Error().Err(err).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to list orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	s.logger.Debug().
		Int("count", len(orders)).
		Int("limit", limit).
		Int("offset", offset).
		Msg("retrieved orders")

	return orders, nil
}

// GetBySessionID retrieves the order for a checkout session. It returns nil, nil when none exists.
func (s *orderService) GetBySessionID(ctx context.Context, sessionID string) (*model.Order, error) {
	if sessionID == "" {
		s.logger.Warn().Msg("session ID is empty")
		return nil, fmt.Errorf("session ID is required")
	}

	order, err := s.orderRepo.GetBySessionID(ctx, sessionID)
	if err != nil {
		s.logger.Error().Err(err).Str("session_id", sessionID).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if order == nil {
		s.logger.Debug().Str("session_id", sessionID).Msg("order not found")
	}

	return order, nil
}

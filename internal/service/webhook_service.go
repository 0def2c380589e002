package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mini-checkout/internal/cache"
	"mini-checkout/internal/metrics"
	"mini-checkout/internal/model"
	"mini-checkout/internal/payment"
	"mini-checkout/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// webhookService implements WebhookService.
type webhookService struct {
	gateway      payment.Gateway
	orderRepo    repository.OrderRepository
	cartRepo     repository.CartRepository
	lock         cache.WebhookLock
	defaultOwner string
	now          func() time.Time
	logger       zerolog.Logger
}

// NewWebhookService creates a new webhook service. defaultOwner is the cart
// cleared when a session carries no owner reference.
func NewWebhookService(
	gateway payment.Gateway,
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	lock cache.WebhookLock,
	defaultOwner string,
	logger zerolog.Logger,
) WebhookService {
	if lock == nil {
		lock = cache.NopLock{}
	}
	return &webhookService{
		gateway:      gateway,
		orderRepo:    orderRepo,
		cartRepo:     cartRepo,
		lock:         lock,
		defaultOwner: defaultOwner,
		now:          time.Now,
		logger:       logger.With().Str("service", "webhook").Logger(),
	}
}

func (s *webhookService) HandleEvent(ctx context.Context, payload []byte, signature string) (Outcome, error) {
	event, err := s.gateway.ParseWebhook(payload, signature)
	if err != nil {
		if errors.Is(err, model.ErrInvalidSignature) {
			metrics.WebhookEvents.WithLabelValues("invalid_signature").Inc()
			return "", err
		}
		return "", s.fail(err)
	}

	if event.Type != payment.EventCheckoutSessionCompleted {
		s.logger.Info().
			Str("event_id", event.ID).
			Str("event_type", event.Type).
			Msg("unhandled event type")
		metrics.WebhookEvents.WithLabelValues(string(OutcomeIgnored)).Inc()
		return OutcomeIgnored, nil
	}

	session := event.Session
	if session == nil || session.ID == "" {
		return "", s.fail(fmt.Errorf("event %s carries no checkout session", event.ID))
	}

	token, acquired, err := s.lock.Acquire(ctx, session.ID)
	if err != nil {
		return "", s.fail(fmt.Errorf("failed to acquire webhook lock: %w", err))
	}
	if !acquired {
		return "", s.fail(fmt.Errorf("session %s is already being processed", session.ID))
	}
	defer func() {
		if err := s.lock.Release(context.WithoutCancel(ctx), session.ID, token); err != nil {
			s.logger.Warn().Err(err).Str("session_id", session.ID).Msg("failed to release webhook lock")
		}
	}()

	existing, err := s.orderRepo.GetBySessionID(ctx, session.ID)
	if err != nil {
		return "", s.fail(model.NewPersistenceError("look up order", err))
	}
	if existing != nil {
		s.logger.Info().
			Str("session_id", session.ID).
			Str("order_id", existing.ID.String()).
			Msg("duplicate delivery for recorded session")
		metrics.WebhookEvents.WithLabelValues(string(OutcomeDuplicate)).Inc()
		return OutcomeDuplicate, nil
	}

	ownerID := session.OwnerID
	if ownerID == "" {
		ownerID = s.defaultOwner
	}

	order := &model.Order{
		ID:                 uuid.New(),
		SourceSessionID:    session.ID,
		OwnerID:            ownerID,
		ProductName:        session.ProductName,
		Amount:             session.AmountTotal,
		Currency:           session.Currency,
		PaymentStatus:      session.PaymentStatus,
		PaymentReferenceID: session.PaymentIntentID,
		CustomerEmail:      session.CustomerEmail,
		CustomerName:       session.CustomerName,
		PaymentMethodKinds: session.PaymentMethodTypes,
		PurchasedAt:        s.now().UTC(),
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		if errors.Is(err, model.ErrDuplicateOrder) {
			metrics.WebhookEvents.WithLabelValues(string(OutcomeDuplicate)).Inc()
			return OutcomeDuplicate, nil
		}
		return "", s.fail(model.NewPersistenceError("record order", err))
	}

	if err := s.cartRepo.Delete(ctx, ownerID); err != nil {
		s.logger.Error().
			Err(err).
			Str("session_id", session.ID).
			Str("owner_id", ownerID).
			Msg("order recorded but cart could not be cleared")
	}

	s.logger.Info().
		Str("session_id", session.ID).
		Str("order_id", order.ID.String()).
		Str("owner_id", ownerID).
		Int64("amount", order.Amount).
		Msg("order recorded")
	metrics.WebhookEvents.WithLabelValues(string(OutcomeRecorded)).Inc()

	return OutcomeRecorded, nil
}

// fail logs err and returns it as a webhook processing error.
func (s *webhookService) fail(err error) error {
	s.logger.Error().Err(err).Msg("failed to process webhook event")
	metrics.WebhookEvents.WithLabelValues("failed").Inc()
	if errors.Is(err, model.ErrWebhookProcessing) {
		return err
	}
	return model.NewWebhookProcessingError(err)
}

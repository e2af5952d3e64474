package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/painelfacil/painel-api/internal/core/domain"
	"github.com/painelfacil/painel-api/internal/core/ports"
	"github.com/painelfacil/painel-api/internal/realtime"
)

type OrderService struct {
	repo   ports.OrderRepository
	hub    *realtime.Hub
	logger zerolog.Logger
}

func NewOrderService(repo ports.OrderRepository, hub *realtime.Hub, logger zerolog.Logger) *OrderService {
	return &OrderService{repo: repo, hub: hub, logger: logger}
}

func (s *OrderService) List(ctx context.Context) ([]domain.Order, error) {
	return s.repo.List(ctx)
}

func (s *OrderService) Create(ctx context.Context, in ports.CreateOrderInput) (*domain.Order, error) {
	now := time.Now().UTC()
	order := &domain.Order{
		CustomerName:  in.CustomerName,
		CustomerPhone: in.CustomerPhone,
		Status:        domain.OrderPending,
		Items:         in.Items,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, order); err != nil {
		s.logger.Error().Err(err).Msg("failed to create order")
		return nil, err
	}

	s.logger.Info().Int("order_id", order.ID).Msg("order created")
	s.publish(*order)
	return order, nil
}

func (s *OrderService) UpdateStatus(ctx context.Context, id int, status domain.OrderStatus) (*domain.Order, error) {
	if !domain.ValidOrderStatus(status) {
		return nil, domain.ErrInvalidStatus
	}

	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	order.Status = status
	order.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, order); err != nil {
		return nil, err
	}

	s.publish(*order)
	return order, nil
}

func (s *OrderService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.hub.Publish(realtime.Event{Name: realtime.EventOrdersUpdated, Payload: id})
	return nil
}

// publish pushes the full record under both the legacy and the singular
// event names; different dashboard views subscribe to each.
func (s *OrderService) publish(order domain.Order) {
	s.hub.Publish(realtime.Event{Name: realtime.EventOrdersUpdated, Payload: order})
	s.hub.Publish(realtime.Event{Name: realtime.EventOrderUpdated, Payload: order})
}

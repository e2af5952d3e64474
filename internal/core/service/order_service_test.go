package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/painelfacil/painel-api/internal/core/domain"
	"github.com/painelfacil/painel-api/internal/core/ports"
	"github.com/painelfacil/painel-api/internal/realtime"
)

func TestOrderService_Create_StartsPending(t *testing.T) {
	repo := newStubOrderRepo()
	hub, sub := testHub()
	svc := NewOrderService(repo, hub, zerolog.Nop())

	order, err := svc.Create(context.Background(), ports.CreateOrderInput{
		CustomerName: "Maria",
		Items:        []domain.OrderItem{{Item: "Pizza", Qty: 2, Price: 30}},
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if order.Status != domain.OrderPending {
		t.Fatalf("new order status: got %s, want %s", order.Status, domain.OrderPending)
	}
	if order.Total() != 60 {
		t.Fatalf("total: got %v, want 60", order.Total())
	}

	events := drainEvents(sub)
	if len(events) != 2 {
		t.Fatalf("expected ordersUpdated and orderUpdated, got %v", events)
	}
	if events[0].Name != realtime.EventOrdersUpdated || events[1].Name != realtime.EventOrderUpdated {
		t.Fatalf("unexpected event names: %s, %s", events[0].Name, events[1].Name)
	}
	pushed, ok := events[1].Payload.(domain.Order)
	if !ok || pushed.ID != order.ID {
		t.Fatalf("expected full order payload, got %#v", events[1].Payload)
	}
}

func TestOrderService_UpdateStatus(t *testing.T) {
	repo := newStubOrderRepo()
	hub, sub := testHub()
	svc := NewOrderService(repo, hub, zerolog.Nop())

	order, _ := svc.Create(context.Background(), ports.CreateOrderInput{CustomerName: "Maria"})
	drainEvents(sub)

	updated, err := svc.UpdateStatus(context.Background(), order.ID, domain.OrderConfirmed)
	if err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}
	if updated.Status != domain.OrderConfirmed {
		t.Fatalf("status: got %s, want %s", updated.Status, domain.OrderConfirmed)
	}

	stored, _ := repo.FindByID(context.Background(), order.ID)
	if stored.Status != domain.OrderConfirmed {
		t.Fatalf("persisted status: got %s", stored.Status)
	}
	if events := drainEvents(sub); len(events) != 2 {
		t.Fatalf("expected both update events, got %v", events)
	}
}

func TestOrderService_UpdateStatus_Invalid(t *testing.T) {
	repo := newStubOrderRepo()
	hub, _ := testHub()
	svc := NewOrderService(repo, hub, zerolog.Nop())

	order, _ := svc.Create(context.Background(), ports.CreateOrderInput{CustomerName: "Maria"})

	if _, err := svc.UpdateStatus(context.Background(), order.ID, "shipped"); !errors.Is(err, domain.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestOrderService_Delete(t *testing.T) {
	repo := newStubOrderRepo()
	hub, sub := testHub()
	svc := NewOrderService(repo, hub, zerolog.Nop())

	order, _ := svc.Create(context.Background(), ports.CreateOrderInput{CustomerName: "Maria"})
	drainEvents(sub)

	if err := svc.Delete(context.Background(), order.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := repo.FindByID(context.Background(), order.ID); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected order gone, got %v", err)
	}

	events := drainEvents(sub)
	if len(events) != 1 || events[0].Name != realtime.EventOrdersUpdated {
		t.Fatalf("expected one ordersUpdated event, got %v", events)
	}
	if id, ok := events[0].Payload.(int); !ok || id != order.ID {
		t.Fatalf("delete payload: got %#v, want id %d", events[0].Payload, order.ID)
	}
}

func TestOrderService_Delete_Unknown(t *testing.T) {
	repo := newStubOrderRepo()
	hub, _ := testHub()
	svc := NewOrderService(repo, hub, zerolog.Nop())

	if err := svc.Delete(context.Background(), 99); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

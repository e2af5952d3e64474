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

func newMenuService() (*MenuService, *stubMenuRepo, *realtime.Subscription) {
	repo := newStubMenuRepo()
	hub, sub := testHub()
	return NewMenuService(repo, hub, zerolog.Nop()), repo, sub
}

func TestMenuService_Visible(t *testing.T) {
	svc, _, _ := newMenuService()

	_, _ = svc.Create(context.Background(), ports.MenuInput{Name: "Pedidos", Path: "/orders", RoleIDs: []int{1, 2}})
	_, _ = svc.Create(context.Background(), ports.MenuInput{Name: "Usuários", Path: "/users", RoleIDs: []int{1}})

	visible, err := svc.Visible(context.Background(), 2)
	if err != nil {
		t.Fatalf("Visible returned error: %v", err)
	}
	if len(visible) != 1 || visible[0].Path != "/orders" {
		t.Fatalf("role 2 menus: got %v", visible)
	}
}

func TestMenuService_AddSubmenu(t *testing.T) {
	svc, repo, sub := newMenuService()

	menu, _ := svc.Create(context.Background(), ports.MenuInput{Name: "Produtos", Path: "/products", RoleIDs: []int{2}})
	drainEvents(sub)

	created, err := svc.AddSubmenu(context.Background(), menu.ID, ports.SubmenuInput{Name: "Categorias", Path: "/products/categories"})
	if err != nil {
		t.Fatalf("AddSubmenu returned error: %v", err)
	}
	if created.MenuID != menu.ID {
		t.Fatalf("submenu owner: got %d, want %d", created.MenuID, menu.ID)
	}
	if created.ID == 0 {
		t.Fatalf("expected assigned submenu id")
	}

	stored, _ := repo.FindByID(context.Background(), menu.ID)
	if len(stored.Submenus) != 1 || stored.Submenus[0].ID != created.ID {
		t.Fatalf("persisted submenus: %v", stored.Submenus)
	}

	events := drainEvents(sub)
	if len(events) != 2 {
		t.Fatalf("expected submenuUpdated and menuUpdated, got %v", events)
	}
	if events[0].Name != realtime.EventSubmenuUpdated || events[1].Name != realtime.EventMenuUpdated {
		t.Fatalf("unexpected event names: %s, %s", events[0].Name, events[1].Name)
	}
	pushed, ok := events[0].Payload.(domain.Submenu)
	if !ok || pushed.MenuID != menu.ID {
		t.Fatalf("submenu payload must carry the parent id, got %#v", events[0].Payload)
	}
}

func TestMenuService_UpdateSubmenu_RoutesThroughOwner(t *testing.T) {
	svc, _, sub := newMenuService()

	menu, _ := svc.Create(context.Background(), ports.MenuInput{Name: "Produtos", Path: "/products"})
	created, _ := svc.AddSubmenu(context.Background(), menu.ID, ports.SubmenuInput{Name: "Categorias", Path: "/products/categories"})
	drainEvents(sub)

	updated, err := svc.UpdateSubmenu(context.Background(), created.ID, ports.SubmenuInput{Name: "Estoque", Path: "/products/stock"})
	if err != nil {
		t.Fatalf("UpdateSubmenu returned error: %v", err)
	}
	if updated.Name != "Estoque" || updated.MenuID != menu.ID {
		t.Fatalf("updated submenu: %#v", updated)
	}

	events := drainEvents(sub)
	if len(events) != 1 || events[0].Name != realtime.EventSubmenuUpdated {
		t.Fatalf("expected submenuUpdated, got %v", events)
	}
}

func TestMenuService_UpdateSubmenu_Unknown(t *testing.T) {
	svc, _, _ := newMenuService()

	if _, err := svc.UpdateSubmenu(context.Background(), 404, ports.SubmenuInput{Name: "x", Path: "/x"}); !errors.Is(err, domain.ErrSubmenuNotFound) {
		t.Fatalf("expected ErrSubmenuNotFound, got %v", err)
	}
}

func TestMenuService_DeleteSubmenu(t *testing.T) {
	svc, repo, sub := newMenuService()

	menu, _ := svc.Create(context.Background(), ports.MenuInput{Name: "Produtos", Path: "/products"})
	created, _ := svc.AddSubmenu(context.Background(), menu.ID, ports.SubmenuInput{Name: "Categorias", Path: "/products/categories"})
	drainEvents(sub)

	if err := svc.DeleteSubmenu(context.Background(), created.ID); err != nil {
		t.Fatalf("DeleteSubmenu returned error: %v", err)
	}

	stored, _ := repo.FindByID(context.Background(), menu.ID)
	if len(stored.Submenus) != 0 {
		t.Fatalf("submenu still present: %v", stored.Submenus)
	}

	events := drainEvents(sub)
	if len(events) != 1 || events[0].Name != realtime.EventSubmenuDeleted {
		t.Fatalf("expected submenuDeleted, got %v", events)
	}
	if id, _ := events[0].Payload.(int); id != created.ID {
		t.Fatalf("delete payload: got %#v, want %d", events[0].Payload, created.ID)
	}
}

func TestMenuService_Delete(t *testing.T) {
	svc, _, sub := newMenuService()

	menu, _ := svc.Create(context.Background(), ports.MenuInput{Name: "Produtos", Path: "/products"})
	drainEvents(sub)

	if err := svc.Delete(context.Background(), menu.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	events := drainEvents(sub)
	if len(events) != 1 || events[0].Name != realtime.EventMenuDeleted {
		t.Fatalf("expected menuDeleted, got %v", events)
	}
}

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

func newUserService() (*UserService, *stubUserRepo, *realtime.Subscription) {
	repo := newStubUserRepo()
	hub, sub := testHub()
	return NewUserService(repo, newStubRoleRepo(), hub, zerolog.Nop()), repo, sub
}

func TestUserService_Create(t *testing.T) {
	svc, _, sub := newUserService()

	user, err := svc.Create(context.Background(), "Ana", "ana@example.com", "secret", 2)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if user.RoleID != 2 {
		t.Fatalf("role: got %d, want 2", user.RoleID)
	}

	events := drainEvents(sub)
	if len(events) != 1 || events[0].Name != realtime.EventUserCreated {
		t.Fatalf("expected userCreated, got %v", events)
	}
}

func TestUserService_Create_UnknownRole(t *testing.T) {
	svc, _, _ := newUserService()

	if _, err := svc.Create(context.Background(), "Ana", "ana@example.com", "secret", 9); !errors.Is(err, domain.ErrRoleNotFound) {
		t.Fatalf("expected ErrRoleNotFound, got %v", err)
	}
}

func TestUserService_Update_PushesProfileEvent(t *testing.T) {
	svc, _, sub := newUserService()

	user, _ := svc.Create(context.Background(), "Ana", "ana@example.com", "secret", 2)
	drainEvents(sub)

	updated, err := svc.Update(context.Background(), user.ID, ports.UpdateUserInput{
		Name:   "Ana Maria",
		RoleID: domain.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.RoleID != domain.RoleAdmin {
		t.Fatalf("role: got %d, want %d", updated.RoleID, domain.RoleAdmin)
	}

	events := drainEvents(sub)
	if len(events) != 2 {
		t.Fatalf("expected userUpdated plus per-user event, got %v", events)
	}
	if events[0].Name != realtime.EventUserUpdated {
		t.Fatalf("first event: got %s", events[0].Name)
	}
	if events[1].Name != realtime.UserEvent(user.ID) {
		t.Fatalf("second event: got %s, want %s", events[1].Name, realtime.UserEvent(user.ID))
	}
	profile, ok := events[1].Payload.(profileEvent)
	if !ok {
		t.Fatalf("profile payload: got %#v", events[1].Payload)
	}
	if profile.Name != "Ana Maria" {
		t.Fatalf("profile name: got %s", profile.Name)
	}
	if profile.Role == nil || profile.Role.ID != domain.RoleAdmin {
		t.Fatalf("profile role: got %#v", profile.Role)
	}
}

func TestUserService_Update_KeepsPasswordWhenEmpty(t *testing.T) {
	svc, repo, _ := newUserService()

	user, _ := svc.Create(context.Background(), "Ana", "ana@example.com", "secret", 2)
	before, _ := repo.FindByID(context.Background(), user.ID)

	if _, err := svc.Update(context.Background(), user.ID, ports.UpdateUserInput{Name: "Renamed"}); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	after, _ := repo.FindByID(context.Background(), user.ID)
	if after.PasswordHash != before.PasswordHash {
		t.Fatalf("password hash changed on a password-less update")
	}
	if after.Name != "Renamed" {
		t.Fatalf("name: got %s", after.Name)
	}
}

func TestUserService_Update_DuplicateEmail(t *testing.T) {
	svc, _, _ := newUserService()

	_, _ = svc.Create(context.Background(), "Ana", "ana@example.com", "secret", 2)
	second, _ := svc.Create(context.Background(), "Bia", "bia@example.com", "secret", 2)

	_, err := svc.Update(context.Background(), second.ID, ports.UpdateUserInput{Email: "ana@example.com"})
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestUserService_Delete(t *testing.T) {
	svc, repo, sub := newUserService()

	user, _ := svc.Create(context.Background(), "Ana", "ana@example.com", "secret", 2)
	drainEvents(sub)

	if err := svc.Delete(context.Background(), user.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := repo.FindByID(context.Background(), user.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected user gone, got %v", err)
	}

	events := drainEvents(sub)
	if len(events) != 1 || events[0].Name != realtime.EventUserDeleted {
		t.Fatalf("expected userDeleted, got %v", events)
	}
	if id, _ := events[0].Payload.(int); id != user.ID {
		t.Fatalf("delete payload: got %#v", events[0].Payload)
	}
}

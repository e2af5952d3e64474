package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/painelfacil/painel-api/internal/core/domain"
	"github.com/painelfacil/painel-api/internal/core/ports"
	"github.com/painelfacil/painel-api/internal/realtime"
)

// profileEvent is the payload of the per-subject user-updated-<id> event,
// consumed by the session that belongs to the edited user.
type profileEvent struct {
	Role *domain.Role `json:"role"`
	Name string       `json:"name"`
}

type UserService struct {
	users  ports.UserRepository
	roles  ports.RoleRepository
	hub    *realtime.Hub
	logger zerolog.Logger
}

func NewUserService(users ports.UserRepository, roles ports.RoleRepository, hub *realtime.Hub, logger zerolog.Logger) *UserService {
	return &UserService{users: users, roles: roles, hub: hub, logger: logger}
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) Roles(ctx context.Context) ([]domain.Role, error) {
	return s.roles.ListRoles(ctx)
}

func (s *UserService) Create(ctx context.Context, name, email, password string, roleID int) (*domain.User, error) {
	if name == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if !domain.ValidEmail(email) {
		return nil, domain.ErrInvalidEmail
	}
	if _, err := s.roles.FindRole(ctx, roleID); err != nil {
		return nil, err
	}
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		RoleID:       roleID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Int("user_id", user.ID).Msg("user created")
	s.hub.Publish(realtime.Event{Name: realtime.EventUserCreated, Payload: *user})
	return user, nil
}

func (s *UserService) Update(ctx context.Context, id int, in ports.UpdateUserInput) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Email != "" && in.Email != user.Email {
		if !domain.ValidEmail(in.Email) {
			return nil, domain.ErrInvalidEmail
		}
		if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
			return nil, domain.ErrUserExists
		} else if !errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		user.Email = in.Email
	}
	if in.Name != "" {
		user.Name = in.Name
	}
	if in.RoleID > 0 {
		if _, err := s.roles.FindRole(ctx, in.RoleID); err != nil {
			return nil, err
		}
		user.RoleID = in.RoleID
	}
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}

	user.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	s.hub.Publish(realtime.Event{Name: realtime.EventUserUpdated, Payload: *user})

	// Personalization push for the edited user's own open session; best
	// effort, the role lookup failing is not fatal to the update.
	role, err := s.roles.FindRole(ctx, user.RoleID)
	if err != nil {
		s.logger.Warn().Err(err).Int("role_id", user.RoleID).Msg("role lookup for profile event failed")
	}
	s.hub.Publish(realtime.Event{
		Name:    realtime.UserEvent(user.ID),
		Payload: profileEvent{Role: role, Name: user.Name},
	})

	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id int) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.hub.Publish(realtime.Event{Name: realtime.EventUserDeleted, Payload: id})
	return nil
}

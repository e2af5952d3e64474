package ports

import (
	"context"

	"github.com/painelfacil/painel-api/internal/core/domain"
)

type UserRepository interface {
	List(ctx context.Context) ([]domain.User, error)
	FindByID(ctx context.Context, id int) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
	Update(ctx context.Context, u *domain.User) error
	Delete(ctx context.Context, id int) error
}

type RoleRepository interface {
	ListRoles(ctx context.Context) ([]domain.Role, error)
	FindRole(ctx context.Context, id int) (*domain.Role, error)
}

// UpdateUserInput carries the editable user fields. Password is optional;
// empty means keep the current hash.
type UpdateUserInput struct {
	Name     string
	Email    string
	RoleID   int
	Password string
}

type UserService interface {
	List(ctx context.Context) ([]domain.User, error)
	Create(ctx context.Context, name, email, password string, roleID int) (*domain.User, error)
	Update(ctx context.Context, id int, in UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id int) error
	Roles(ctx context.Context) ([]domain.Role, error)
}

package ports

import (
	"context"

	"github.com/painelfacil/painel-api/internal/core/domain"
)

type AuthService interface {
	// Register creates an operator account. Email shape is validated;
	// the password is stored as a bcrypt hash.
	Register(ctx context.Context, name, email, password string, roleID int) (*domain.User, error)
	// Login verifies the credentials and returns a signed session token
	// alongside the user.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}

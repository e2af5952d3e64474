package ports

import (
	"context"

	"github.com/painelfacil/painel-api/internal/core/domain"
)

// MenuRepository defines persistence for menus. Submenus live inside their
// owning menu document; there is no top-level submenu collection.
type MenuRepository interface {
	List(ctx context.Context) ([]domain.Menu, error)
	// ListByRole returns the menus the server exposes to the role. This
	// is the source of truth for role visibility.
	ListByRole(ctx context.Context, roleID int) ([]domain.Menu, error)
	FindByID(ctx context.Context, id int) (*domain.Menu, error)
	Create(ctx context.Context, m *domain.Menu) error
	Update(ctx context.Context, m *domain.Menu) error
	Delete(ctx context.Context, id int) error
	// FindBySubmenu returns the menu owning the given submenu id.
	FindBySubmenu(ctx context.Context, submenuID int) (*domain.Menu, error)
	// NextSubmenuID reserves an id for a new submenu.
	NextSubmenuID(ctx context.Context) (int, error)
}

type MenuInput struct {
	Name    string
	Path    string
	Icon    string
	RoleIDs []int
}

type SubmenuInput struct {
	Name string
	Path string
	Icon string
}

type MenuService interface {
	List(ctx context.Context) ([]domain.Menu, error)
	Visible(ctx context.Context, roleID int) ([]domain.Menu, error)
	Create(ctx context.Context, in MenuInput) (*domain.Menu, error)
	Update(ctx context.Context, id int, in MenuInput) (*domain.Menu, error)
	Delete(ctx context.Context, id int) error
	// AddSubmenu and UpdateSubmenu operate through the owning menu and
	// push submenu-scoped events carrying the parent id.
	AddSubmenu(ctx context.Context, menuID int, in SubmenuInput) (*domain.Submenu, error)
	UpdateSubmenu(ctx context.Context, submenuID int, in SubmenuInput) (*domain.Submenu, error)
	DeleteSubmenu(ctx context.Context, submenuID int) error
}

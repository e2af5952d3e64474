package ports

import (
	"context"

	"github.com/painelfacil/painel-api/internal/core/domain"
)

// ListProductsFilter carries the query parameters for the product list.
type ListProductsFilter struct {
	CategoryID    int    // optional: 0 = no filter
	SubcategoryID int    // optional
	Search        string // optional: partial match on name or isbn
	Page          int    // 1-based
	Limit         int    // rows per page (capped by the service)
}

type ProductRepository interface {
	List(ctx context.Context, filter ListProductsFilter) ([]domain.Product, int64, error)
	FindByID(ctx context.Context, id int) (*domain.Product, error)
	Create(ctx context.Context, p *domain.Product) error
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id int) error
}

type CategoryRepository interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	ListSubcategories(ctx context.Context, categoryID int) ([]domain.Subcategory, error)
}

type ProductInput struct {
	Name          string
	Price         float64
	Stock         int
	CategoryID    int
	SubcategoryID int
	ISBN          string
}

type ProductService interface {
	List(ctx context.Context, filter ListProductsFilter) ([]domain.Product, int64, error)
	Create(ctx context.Context, in ProductInput) (*domain.Product, error)
	Update(ctx context.Context, id int, in ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id int) error
	Categories(ctx context.Context) ([]domain.Category, error)
	Subcategories(ctx context.Context, categoryID int) ([]domain.Subcategory, error)
}

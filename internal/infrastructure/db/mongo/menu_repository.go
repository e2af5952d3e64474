package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/painelfacil/painel-api/internal/core/domain"
)

const collectionMenus = "menus"

// MenuRepository stores each menu as one document with its submenus
// embedded; submenu ids come from their own sequence so they stay unique
// across menus.
type MenuRepository struct {
	col *mongo.Collection
	seq *counters
}

func NewMenuRepository(db *mongo.Database) *MenuRepository {
	return &MenuRepository{col: db.Collection(collectionMenus), seq: newCounters(db)}
}

func (r *MenuRepository) List(ctx context.Context) ([]domain.Menu, error) {
	return r.find(ctx, bson.M{})
}

// ListByRole returns the menus exposed to the role, the source of truth for
// navigation visibility.
func (r *MenuRepository) ListByRole(ctx context.Context, roleID int) ([]domain.Menu, error) {
	return r.find(ctx, bson.M{"role_ids": roleID})
}

func (r *MenuRepository) find(ctx context.Context, query bson.M) ([]domain.Menu, error) {
	ctx, cancel := opContext(ctx)
	defer cancel()

	cur, err := r.col.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	menus := []domain.Menu{}
	if err := cur.All(ctx, &menus); err != nil {
		return nil, err
	}
	return menus, nil
}

func (r *MenuRepository) FindByID(ctx context.Context, id int) (*domain.Menu, error) {
	ctx, cancel := opContext(ctx)
	defer cancel()

	var m domain.Menu
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&m)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMenuNotFound
		}
		return nil, err
	}
	return &m, nil
}

// FindBySubmenu returns the menu owning the given submenu id.
func (r *MenuRepository) FindBySubmenu(ctx context.Context, submenuID int) (*domain.Menu, error) {
	ctx, cancel := opContext(ctx)
	defer cancel()

	var m domain.Menu
	err := r.col.FindOne(ctx, bson.M{"submenus._id": submenuID}).Decode(&m)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSubmenuNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *MenuRepository) Create(ctx context.Context, m *domain.Menu) error {
	id, err := r.seq.next(ctx, "menus")
	if err != nil {
		return err
	}
	m.ID = id

	ctx, cancel := opContext(ctx)
	defer cancel()

	_, err = r.col.InsertOne(ctx, m)
	return err
}

func (r *MenuRepository) Update(ctx context.Context, m *domain.Menu) error {
	ctx, cancel := opContext(ctx)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": m.ID}, m)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrMenuNotFound
	}
	return nil
}

func (r *MenuRepository) Delete(ctx context.Context, id int) error {
	ctx, cancel := opContext(ctx)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrMenuNotFound
	}
	return nil
}

// NextSubmenuID reserves an id for a new submenu.
func (r *MenuRepository) NextSubmenuID(ctx context.Context) (int, error) {
	return r.seq.next(ctx, "submenus")
}

// EnsureSeed inserts the administration menus on a fresh database. They are
// plain rows visible only to the admin role, so the guard and the sidebar
// treat them like any other entry.
func (r *MenuRepository) EnsureSeed(ctx context.Context) error {
	seed := []domain.Menu{
		{Name: "Administração de Usuários", Path: "/users", Icon: "users", RoleIDs: []int{domain.RoleAdmin}},
		{Name: "Gerenciamento de Menus", Path: "/menu", Icon: "menu", RoleIDs: []int{domain.RoleAdmin}},
	}

	for _, m := range seed {
		findCtx, cancel := opContext(ctx)
		err := r.col.FindOne(findCtx, bson.M{"path": m.Path}).Err()
		cancel()
		if err == nil {
			continue
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return err
		}
		menu := m
		if err := r.Create(ctx, &menu); err != nil {
			return err
		}
	}
	return nil
}

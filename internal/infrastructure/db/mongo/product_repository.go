package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/painelfacil/painel-api/internal/core/domain"
	"github.com/painelfacil/painel-api/internal/core/ports"
)

const (
	collectionProducts      = "products"
	collectionCategories    = "categories"
	collectionSubcategories = "subcategories"
)

type ProductRepository struct {
	col *mongo.Collection
	seq *counters
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{col: db.Collection(collectionProducts), seq: newCounters(db)}
}

// List returns one page of products matching the filter plus the total
// count before paging.
func (r *ProductRepository) List(ctx context.Context, filter ports.ListProductsFilter) ([]domain.Product, int64, error) {
	ctx, cancel := opContext(ctx)
	defer cancel()

	query := bson.M{}
	if filter.CategoryID > 0 {
		query["category_id"] = filter.CategoryID
	}
	if filter.SubcategoryID > 0 {
		query["subcategory_id"] = filter.SubcategoryID
	}
	if filter.Search != "" {
		pattern := primitive.Regex{Pattern: regexQuote(filter.Search), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"name": pattern},
			bson.M{"isbn": pattern},
		}
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
		if filter.Page > 1 {
			opts.SetSkip(int64((filter.Page - 1) * filter.Limit))
		}
	}

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	products := []domain.Product{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id int) (*domain.Product, error) {
	ctx, cancel := opContext(ctx)
	defer cancel()

	var p domain.Product
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	id, err := r.seq.next(ctx, "products")
	if err != nil {
		return err
	}
	p.ID = id

	ctx, cancel := opContext(ctx)
	defer cancel()

	_, err = r.col.InsertOne(ctx, p)
	return err
}

func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) error {
	ctx, cancel := opContext(ctx)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id int) error {
	ctx, cancel := opContext(ctx)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// regexQuote escapes regex metacharacters so user search input matches
// literally.
func regexQuote(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\', '.', '+', '*', '?', '(', ')', '|', '[', ']', '{', '}', '^', '$':
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}
	return string(out)
}

// CategoryRepository serves the static category and subcategory lookups.
type CategoryRepository struct {
	categories    *mongo.Collection
	subcategories *mongo.Collection
}

func NewCategoryRepository(db *mongo.Database) *CategoryRepository {
	return &CategoryRepository{
		categories:    db.Collection(collectionCategories),
		subcategories: db.Collection(collectionSubcategories),
	}
}

func (r *CategoryRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	ctx, cancel := opContext(ctx)
	defer cancel()

	cur, err := r.categories.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	cats := []domain.Category{}
	if err := cur.All(ctx, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

func (r *CategoryRepository) ListSubcategories(ctx context.Context, categoryID int) ([]domain.Subcategory, error) {
	ctx, cancel := opContext(ctx)
	defer cancel()

	query := bson.M{}
	if categoryID > 0 {
		query["category_id"] = categoryID
	}

	cur, err := r.subcategories.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	subs := []domain.Subcategory{}
	if err := cur.All(ctx, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

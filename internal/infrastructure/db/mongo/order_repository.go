package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/painelfacil/painel-api/internal/core/domain"
)

const collectionOrders = "orders"

type OrderRepository struct {
	col *mongo.Collection
	seq *counters
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{col: db.Collection(collectionOrders), seq: newCounters(db)}
}

// List returns all orders in insertion order.
func (r *OrderRepository) List(ctx context.Context) ([]domain.Order, error) {
	ctx, cancel := opContext(ctx)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	orders := []domain.Order{}
	if err := cur.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id int) (*domain.Order, error) {
	ctx, cancel := opContext(ctx)
	defer cancel()

	var o domain.Order
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&o)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	return &o, nil
}

// Create inserts the order and assigns its id from the order sequence.
func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) error {
	id, err := r.seq.next(ctx, "orders")
	if err != nil {
		return err
	}
	o.ID = id

	ctx, cancel := opContext(ctx)
	defer cancel()

	_, err = r.col.InsertOne(ctx, o)
	return err
}

func (r *OrderRepository) Update(ctx context.Context, o *domain.Order) error {
	ctx, cancel := opContext(ctx)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": o.ID}, o)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (r *OrderRepository) Delete(ctx context.Context, id int) error {
	ctx, cancel := opContext(ctx)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/painelfacil/painel-api/internal/core/domain"
)

const collectionAppointments = "appointments"

type AppointmentRepository struct {
	col *mongo.Collection
	seq *counters
}

func NewAppointmentRepository(db *mongo.Database) *AppointmentRepository {
	return &AppointmentRepository{col: db.Collection(collectionAppointments), seq: newCounters(db)}
}

// List returns all appointments ordered by scheduled date.
func (r *AppointmentRepository) List(ctx context.Context) ([]domain.Appointment, error) {
	ctx, cancel := opContext(ctx)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "scheduled_date", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	appts := []domain.Appointment{}
	if err := cur.All(ctx, &appts); err != nil {
		return nil, err
	}
	return appts, nil
}

func (r *AppointmentRepository) FindByID(ctx context.Context, id int) (*domain.Appointment, error) {
	ctx, cancel := opContext(ctx)
	defer cancel()

	var a domain.Appointment
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAppointmentNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *AppointmentRepository) Create(ctx context.Context, a *domain.Appointment) error {
	id, err := r.seq.next(ctx, "appointments")
	if err != nil {
		return err
	}
	a.ID = id

	ctx, cancel := opContext(ctx)
	defer cancel()

	_, err = r.col.InsertOne(ctx, a)
	return err
}

func (r *AppointmentRepository) Update(ctx context.Context, a *domain.Appointment) error {
	ctx, cancel := opContext(ctx)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": a.ID}, a)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrAppointmentNotFound
	}
	return nil
}

func (r *AppointmentRepository) Delete(ctx context.Context, id int) error {
	ctx, cancel := opContext(ctx)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrAppointmentNotFound
	}
	return nil
}

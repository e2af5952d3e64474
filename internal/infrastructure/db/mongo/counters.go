package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionCounters = "counters"

// counters hands out small sequential integer ids, one sequence per entity
// kind. The dashboard keys every record by an integer id, so ObjectIDs stay
// internal to the driver.
type counters struct {
	col *mongo.Collection
}

func newCounters(db *mongo.Database) *counters {
	return &counters{col: db.Collection(collectionCounters)}
}

// next atomically increments and returns the sequence named by kind. The
// first call for a kind yields 1.
func (c *counters) next(ctx context.Context, kind string) (int, error) {
	ctx, cancel := opContext(ctx)
	defer cancel()

	var doc struct {
		Seq int `bson:"seq"`
	}
	err := c.col.FindOneAndUpdate(ctx,
		bson.M{"_id": kind},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().
			SetUpsert(true).
			SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return 0, err
	}
	return doc.Seq, nil
}

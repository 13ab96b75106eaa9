package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/semka95/authors/domain"
)

// AuthorCollection is the collection authors are published to
const AuthorCollection = "author"

// authorDocument is the stored shape of an author. The id lives in the
// filter, birth_date is kept as YYYY-MM-DD.
type authorDocument struct {
	FirstName string `bson:"first_name"`
	LastName  string `bson:"last_name"`
	BirthDate string `bson:"birth_date"`
}

// PublishResult reports what a Publish call changed
type PublishResult struct {
	Inserted int64
	Updated  int64
}

// Publish upserts authors into the author collection keyed by id, so it can
// be run repeatedly against the same database.
func Publish(ctx context.Context, db *mongo.Database, authors []domain.Author) (PublishResult, error) {
	if len(authors) == 0 {
		return PublishResult{}, nil
	}

	models := make([]mongo.WriteModel, 0, len(authors))
	for _, a := range authors {
		doc, err := StructToDoc(authorDocument{
			FirstName: a.FirstName,
			LastName:  a.LastName,
			BirthDate: a.BirthDate.String(),
		})
		if err != nil {
			return PublishResult{}, fmt.Errorf("can't convert author %s to bson.D: %w: %s", a.ID, domain.ErrInternalServerError, err.Error())
		}

		models = append(models, mongo.NewUpdateOneModel().
			SetFilter(bson.D{primitive.E{Key: "_id", Value: a.ID}}).
			SetUpdate(bson.D{primitive.E{Key: "$set", Value: doc}}).
			SetUpsert(true))
	}

	res, err := db.Collection(AuthorCollection).BulkWrite(ctx, models, options.BulkWrite().SetOrdered(true))
	if err != nil {
		return PublishResult{}, fmt.Errorf("author publish error: %w: %s", domain.ErrInternalServerError, err.Error())
	}

	return PublishResult{
		Inserted: res.UpsertedCount,
		Updated:  res.ModifiedCount,
	}, nil
}

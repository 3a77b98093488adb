package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/anjiri1684/thinksync/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type mongoCollection[T any] struct {
	coll *mongo.Collection
}

func newMongoCollection[T any](db *mongo.Database, name string) *mongoCollection[T] {
	return &mongoCollection[T]{coll: db.Collection(name)}
}

func (c *mongoCollection[T]) InsertOne(ctx context.Context, doc *T) (models.InsertResult, error) {
	res, err := c.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.InsertResult{}, ErrDuplicate
		}
		return models.InsertResult{}, fmt.Errorf("insert into %s: %w", c.coll.Name(), err)
	}

	out := models.InsertResult{Acknowledged: true}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		out.InsertedID = oid.Hex()
	} else {
		out.InsertedID = fmt.Sprint(res.InsertedID)
	}
	return out, nil
}

func (c *mongoCollection[T]) Find(ctx context.Context, filter bson.M) ([]T, error) {
	if filter == nil {
		filter = bson.M{}
	}
	cursor, err := c.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find in %s: %w", c.coll.Name(), err)
	}
	defer cursor.Close(ctx)

	docs := []T{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.coll.Name(), err)
	}
	if docs == nil {
		docs = []T{}
	}
	return docs, nil
}

func (c *mongoCollection[T]) FindByID(ctx context.Context, id primitive.ObjectID) (*T, error) {
	var doc T
	err := c.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find %s by id: %w", c.coll.Name(), err)
	}
	return &doc, nil
}

func (c *mongoCollection[T]) UpdateByID(ctx context.Context, id primitive.ObjectID, set bson.M) (models.UpdateResult, error) {
	res, err := c.coll.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.UpdateResult{}, ErrDuplicate
		}
		return models.UpdateResult{}, fmt.Errorf("update %s: %w", c.coll.Name(), err)
	}
	return models.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
	}, nil
}

func (c *mongoCollection[T]) DeleteByID(ctx context.Context, id primitive.ObjectID) (models.DeleteResult, error) {
	res, err := c.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return models.DeleteResult{}, fmt.Errorf("delete from %s: %w", c.coll.Name(), err)
	}
	return models.DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}, nil
}

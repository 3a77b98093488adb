package database

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/anjiri1684/thinksync/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memoryCollection keeps documents in their BSON form so filters and $set
// merges behave like the Mongo implementation for top-level fields.
type memoryCollection[T any] struct {
	mu      sync.RWMutex
	order   []primitive.ObjectID
	docs    map[primitive.ObjectID]bson.M
	indexes []uniqueIndex
}

func newMemoryCollection[T any](name string) *memoryCollection[T] {
	return &memoryCollection[T]{
		docs:    make(map[primitive.ObjectID]bson.M),
		indexes: uniqueIndexes[name],
	}
}

func (c *memoryCollection[T]) InsertOne(ctx context.Context, doc *T) (models.InsertResult, error) {
	if err := ctx.Err(); err != nil {
		return models.InsertResult{}, err
	}
	m, err := toBSON(doc)
	if err != nil {
		return models.InsertResult{}, err
	}

	id, ok := m["_id"].(primitive.ObjectID)
	if !ok || id.IsZero() {
		id = primitive.NewObjectID()
		m["_id"] = id
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.docs[id]; exists {
		return models.InsertResult{}, ErrDuplicate
	}
	if c.violatesUnique(id, m) {
		return models.InsertResult{}, ErrDuplicate
	}
	c.docs[id] = m
	c.order = append(c.order, id)

	return models.InsertResult{Acknowledged: true, InsertedID: id.Hex()}, nil
}

func (c *memoryCollection[T]) Find(ctx context.Context, filter bson.M) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for k := range filter {
		if strings.HasPrefix(k, "$") {
			return nil, fmt.Errorf("memory store: operator %s not supported", k)
		}
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	out := []T{}
	for _, id := range c.order {
		m := c.docs[id]
		if !matches(m, filter) {
			continue
		}
		var doc T
		if err := fromBSON(m, &doc); err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, nil
}

func (c *memoryCollection[T]) FindByID(ctx context.Context, id primitive.ObjectID) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	m, ok := c.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	var doc T
	if err := fromBSON(m, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (c *memoryCollection[T]) UpdateByID(ctx context.Context, id primitive.ObjectID, set bson.M) (models.UpdateResult, error) {
	if err := ctx.Err(); err != nil {
		return models.UpdateResult{}, err
	}
	normalized, err := toBSON(set)
	if err != nil {
		return models.UpdateResult{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	current, ok := c.docs[id]
	if !ok {
		return models.UpdateResult{Acknowledged: true}, nil
	}

	next := make(bson.M, len(current)+len(normalized))
	for k, v := range current {
		next[k] = v
	}
	for k, v := range normalized {
		if k == "_id" {
			continue
		}
		next[k] = v
	}

	if reflect.DeepEqual(current, next) {
		return models.UpdateResult{Acknowledged: true, MatchedCount: 1}, nil
	}
	if c.violatesUnique(id, next) {
		return models.UpdateResult{}, ErrDuplicate
	}
	c.docs[id] = next

	return models.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil
}

func (c *memoryCollection[T]) DeleteByID(ctx context.Context, id primitive.ObjectID) (models.DeleteResult, error) {
	if err := ctx.Err(); err != nil {
		return models.DeleteResult{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.docs[id]; !ok {
		return models.DeleteResult{Acknowledged: true}, nil
	}
	delete(c.docs, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return models.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
}

// violatesUnique must be called with c.mu held.
func (c *memoryCollection[T]) violatesUnique(id primitive.ObjectID, m bson.M) bool {
	for _, idx := range c.indexes {
		for otherID, other := range c.docs {
			if otherID == id {
				continue
			}
			same := true
			for _, key := range idx.keys {
				if !reflect.DeepEqual(m[key], other[key]) {
					same = false
					break
				}
			}
			if same {
				return true
			}
		}
	}
	return false
}

func matches(m, filter bson.M) bool {
	for k, want := range filter {
		if !reflect.DeepEqual(m[k], want) {
			return false
		}
	}
	return true
}

func toBSON(v any) (bson.M, error) {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("memory store: marshal: %w", err)
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("memory store: unmarshal: %w", err)
	}
	return m, nil
}

func fromBSON(m bson.M, out any) error {
	raw, err := bson.Marshal(m)
	if err != nil {
		return fmt.Errorf("memory store: marshal: %w", err)
	}
	if err := bson.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("memory store: decode: %w", err)
	}
	return nil
}

package database

import (
	"context"
	"errors"

	"github.com/anjiri1684/thinksync/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound  = errors.New("document not found")
	ErrDuplicate = errors.New("duplicate key")
)

const (
	UsersCollection     = "users"
	SessionsCollection  = "StudySession"
	BookingsCollection  = "bookedSessions"
	MaterialsCollection = "materials"
	NotesCollection     = "notes"
	ReviewsCollection   = "reviews"
)

// Collection is the single-operation surface every handler works against.
// Filters are equality matches on top-level fields; set documents are merged
// into the stored document field by field.
type Collection[T any] interface {
	InsertOne(ctx context.Context, doc *T) (models.InsertResult, error)
	Find(ctx context.Context, filter bson.M) ([]T, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*T, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, set bson.M) (models.UpdateResult, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) (models.DeleteResult, error)
}

type uniqueIndex struct {
	name string
	keys []string
}

var uniqueIndexes = map[string][]uniqueIndex{
	UsersCollection:    {{name: "uniq_user_email", keys: []string{"email"}}},
	BookingsCollection: {{name: "uniq_booking_session_student", keys: []string{"sessionId", "studentEmail"}}},
}

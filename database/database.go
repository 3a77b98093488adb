package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/anjiri1684/thinksync/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Store holds one typed collection per entity. It is built once at startup and
// handed to every component that talks to the database.
type Store struct {
	Users     Collection[models.User]
	Sessions  Collection[models.StudySession]
	Bookings  Collection[models.Booking]
	Materials Collection[models.Material]
	Notes     Collection[models.Note]
	Reviews   Collection[models.Review]

	ping  func(ctx context.Context) error
	close func(ctx context.Context) error
}

func ConnectMongo(ctx context.Context, uri, dbName string, log *zap.Logger) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	serverAPI := options.ServerAPI(options.ServerAPIVersion1).SetStrict(true).SetDeprecationErrors(true)
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(dbName)
	store := newMongoStore(client, db)

	if err := ensureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	log.Info("Database connected", zap.String("database", dbName))
	return store, nil
}

func newMongoStore(client *mongo.Client, db *mongo.Database) *Store {
	return &Store{
		Users:     newMongoCollection[models.User](db, UsersCollection),
		Sessions:  newMongoCollection[models.StudySession](db, SessionsCollection),
		Bookings:  newMongoCollection[models.Booking](db, BookingsCollection),
		Materials: newMongoCollection[models.Material](db, MaterialsCollection),
		Notes:     newMongoCollection[models.Note](db, NotesCollection),
		Reviews:   newMongoCollection[models.Review](db, ReviewsCollection),
		ping: func(ctx context.Context) error {
			return client.Database("admin").RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
		},
		close: client.Disconnect,
	}
}

// NewMemoryStore returns a process-local store with the same unique
// constraints as the Mongo one. Data is lost on exit.
func NewMemoryStore() *Store {
	return &Store{
		Users:     newMemoryCollection[models.User](UsersCollection),
		Sessions:  newMemoryCollection[models.StudySession](SessionsCollection),
		Bookings:  newMemoryCollection[models.Booking](BookingsCollection),
		Materials: newMemoryCollection[models.Material](MaterialsCollection),
		Notes:     newMemoryCollection[models.Note](NotesCollection),
		Reviews:   newMemoryCollection[models.Review](ReviewsCollection),
		ping:      func(context.Context) error { return nil },
		close:     func(context.Context) error { return nil },
	}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.ping(ctx)
}

func (s *Store) Close(ctx context.Context) error {
	return s.close(ctx)
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	for collection, indexes := range uniqueIndexes {
		for _, idx := range indexes {
			keys := bson.D{}
			for _, k := range idx.keys {
				keys = append(keys, bson.E{Key: k, Value: 1})
			}
			model := mongo.IndexModel{
				Keys:    keys,
				Options: options.Index().SetUnique(true).SetName(idx.name),
			}
			if _, err := db.Collection(collection).Indexes().CreateOne(ctx, model); err != nil {
				return fmt.Errorf("create index %s on %s: %w", idx.name, collection, err)
			}
		}
	}
	return nil
}

// SeedAdmin makes sure the configured admin account exists. An empty email
// disables seeding.
func SeedAdmin(ctx context.Context, store *Store, email, name string, log *zap.Logger) error {
	if email == "" {
		return nil
	}

	admin := models.User{
		Name:      name,
		Email:     email,
		Role:      models.RoleAdmin,
		CreatedAt: time.Now().UTC(),
	}
	_, err := store.Users.InsertOne(ctx, &admin)
	if errors.Is(err, ErrDuplicate) {
		log.Info("Admin user already exists", zap.String("email", email))
		return nil
	}
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	log.Info("Admin user seeded", zap.String("email", email))
	return nil
}

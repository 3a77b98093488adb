package database

import (
	"context"
	"sync"
	"testing"

	"github.com/anjiri1684/thinksync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func TestMemoryInsertAndFindByID(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	in := models.StudySession{Title: "Calculus", TutorEmail: "t@x.com", Fee: 0, Status: models.StatusPending}
	res, err := store.Sessions.InsertOne(ctx, &in)
	require.NoError(t, err)
	assert.True(t, res.Acknowledged)

	id, err := primitive.ObjectIDFromHex(res.InsertedID)
	require.NoError(t, err)

	got, err := store.Sessions.FindByID(ctx, id)
	require.NoError(t, err)

	in.ID = id
	assert.Equal(t, in, *got)
}

func TestMemoryFindFilters(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	for _, n := range []models.Note{
		{Email: "a@x.com", Title: "one"},
		{Email: "b@x.com", Title: "two"},
		{Email: "a@x.com", Title: "three"},
	} {
		_, err := store.Notes.InsertOne(ctx, &n)
		require.NoError(t, err)
	}

	all, err := store.Notes.Find(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	mine, err := store.Notes.Find(ctx, bson.M{"email": "a@x.com"})
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "one", mine[0].Title)
	assert.Equal(t, "three", mine[1].Title)

	none, err := store.Notes.Find(ctx, bson.M{"email": "c@x.com"})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	_, err = store.Notes.Find(ctx, bson.M{"$or": bson.A{}})
	assert.Error(t, err)
}

func TestMemoryUniqueUserEmail(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.Users.InsertOne(ctx, &models.User{Email: "a@x.com"})
	require.NoError(t, err)

	_, err = store.Users.InsertOne(ctx, &models.User{Email: "a@x.com", Name: "again"})
	assert.ErrorIs(t, err, ErrDuplicate)

	users, err := store.Users.Find(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestMemoryUniqueBookingPairUnderConcurrency(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	var wg sync.WaitGroup
	var mu sync.Mutex
	inserted := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Bookings.InsertOne(ctx, &models.Booking{SessionID: "s1", StudentEmail: "st@x.com"})
			if err == nil {
				mu.Lock()
				inserted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, inserted)

	_, err := store.Bookings.InsertOne(ctx, &models.Booking{SessionID: "s2", StudentEmail: "st@x.com"})
	assert.NoError(t, err)
}

func TestMemoryUpdateByID(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	res, err := store.Sessions.InsertOne(ctx, &models.StudySession{Title: "Physics", Fee: 10, Status: models.StatusPending})
	require.NoError(t, err)
	id, _ := primitive.ObjectIDFromHex(res.InsertedID)

	upd, err := store.Sessions.UpdateByID(ctx, id, bson.M{"Status": models.StatusApproved, "Fee": 25.5})
	require.NoError(t, err)
	assert.Equal(t, int64(1), upd.MatchedCount)
	assert.Equal(t, int64(1), upd.ModifiedCount)

	got, err := store.Sessions.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, got.Status)
	assert.Equal(t, 25.5, got.Fee)
	assert.Equal(t, "Physics", got.Title)

	same, err := store.Sessions.UpdateByID(ctx, id, bson.M{"Status": models.StatusApproved})
	require.NoError(t, err)
	assert.Equal(t, int64(1), same.MatchedCount)
	assert.Equal(t, int64(0), same.ModifiedCount)

	missing, err := store.Sessions.UpdateByID(ctx, primitive.NewObjectID(), bson.M{"Status": models.StatusRejected})
	require.NoError(t, err)
	assert.Equal(t, int64(0), missing.MatchedCount)
}

func TestMemoryUpdateRespectsUniqueIndex(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.Users.InsertOne(ctx, &models.User{Email: "a@x.com"})
	require.NoError(t, err)
	res, err := store.Users.InsertOne(ctx, &models.User{Email: "b@x.com"})
	require.NoError(t, err)
	id, _ := primitive.ObjectIDFromHex(res.InsertedID)

	_, err = store.Users.UpdateByID(ctx, id, bson.M{"email": "a@x.com"})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestMemoryDeleteByID(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	res, err := store.Reviews.InsertOne(ctx, &models.Review{SessionID: "s", Rating: 4})
	require.NoError(t, err)
	id, _ := primitive.ObjectIDFromHex(res.InsertedID)

	del, err := store.Reviews.DeleteByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), del.DeletedCount)

	_, err = store.Reviews.FindByID(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)

	again, err := store.Reviews.DeleteByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(0), again.DeletedCount)
}

func TestMemoryHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMemoryStore().Notes.Find(ctx, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSeedAdmin(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	log := zap.NewNop()

	require.NoError(t, SeedAdmin(ctx, store, "", "Nobody", log))
	require.NoError(t, SeedAdmin(ctx, store, "admin@x.com", "Admin", log))
	require.NoError(t, SeedAdmin(ctx, store, "admin@x.com", "Admin", log))

	users, err := store.Users.Find(ctx, bson.M{"email": "admin@x.com"})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, models.RoleAdmin, users[0].Role)
}

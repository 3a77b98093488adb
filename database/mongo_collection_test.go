package database

import (
	"context"
	"testing"

	"github.com/anjiri1684/thinksync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func newMock(t *testing.T) *mtest.T {
	return mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock).DatabaseName("ThinkSyncDB"))
}

func TestMongoInsertOne(t *testing.T) {
	mt := newMock(t)

	mt.Run("returns hex id", func(mt *mtest.T) {
		users := newMongoCollection[models.User](mt.DB, UsersCollection)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		res, err := users.InsertOne(context.Background(), &models.User{Email: "a@x.com", Role: models.RoleStudent})
		require.NoError(mt, err)
		assert.True(mt, res.Acknowledged)
		_, err = primitive.ObjectIDFromHex(res.InsertedID)
		assert.NoError(mt, err)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "insert", started.CommandName)
		assert.Equal(mt, UsersCollection, started.Command.Lookup("insert").StringValue())
	})

	mt.Run("duplicate key", func(mt *mtest.T) {
		bookings := newMongoCollection[models.Booking](mt.DB, BookingsCollection)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Code:    11000,
			Message: "E11000 duplicate key error collection: ThinkSyncDB.bookedSessions",
		}))

		_, err := bookings.InsertOne(context.Background(), &models.Booking{SessionID: "s1", StudentEmail: "st@x.com"})
		assert.ErrorIs(mt, err, ErrDuplicate)
	})

	mt.Run("other failures are wrapped", func(mt *mtest.T) {
		notes := newMongoCollection[models.Note](mt.DB, NotesCollection)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code: 13, Name: "Unauthorized", Message: "not authorized",
		}))

		_, err := notes.InsertOne(context.Background(), &models.Note{Email: "a@x.com", Title: "t"})
		require.Error(mt, err)
		assert.NotErrorIs(mt, err, ErrDuplicate)
		assert.ErrorContains(mt, err, "insert into notes")
	})
}

func TestMongoFind(t *testing.T) {
	mt := newMock(t)

	mt.Run("decodes documents", func(mt *mtest.T) {
		users := newMongoCollection[models.User](mt.DB, UsersCollection)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "ThinkSyncDB.users", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: id}, {Key: "email", Value: "a@x.com"}, {Key: "role", Value: models.RoleAdmin}},
		))

		found, err := users.Find(context.Background(), bson.M{"email": "a@x.com"})
		require.NoError(mt, err)
		require.Len(mt, found, 1)
		assert.Equal(mt, id, found[0].ID)
		assert.Equal(mt, models.RoleAdmin, found[0].Role)

		filter := mt.GetStartedEvent().Command.Lookup("filter").Document()
		assert.Equal(mt, "a@x.com", filter.Lookup("email").StringValue())
	})

	mt.Run("empty result is an empty slice", func(mt *mtest.T) {
		notes := newMongoCollection[models.Note](mt.DB, NotesCollection)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "ThinkSyncDB.notes", mtest.FirstBatch))

		found, err := notes.Find(context.Background(), nil)
		require.NoError(mt, err)
		assert.NotNil(mt, found)
		assert.Empty(mt, found)
	})
}

func TestMongoFindByID(t *testing.T) {
	mt := newMock(t)

	mt.Run("found", func(mt *mtest.T) {
		sessions := newMongoCollection[models.StudySession](mt.DB, SessionsCollection)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "ThinkSyncDB.StudySession", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: id}, {Key: "title", Value: "Calculus"}, {Key: "Fee", Value: 12.5}, {Key: "Status", Value: models.StatusApproved}},
		))

		got, err := sessions.FindByID(context.Background(), id)
		require.NoError(mt, err)
		assert.Equal(mt, "Calculus", got.Title)
		assert.Equal(mt, 12.5, got.Fee)
		assert.Equal(mt, models.StatusApproved, got.Status)
	})

	mt.Run("missing", func(mt *mtest.T) {
		sessions := newMongoCollection[models.StudySession](mt.DB, SessionsCollection)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "ThinkSyncDB.StudySession", mtest.FirstBatch))

		_, err := sessions.FindByID(context.Background(), primitive.NewObjectID())
		assert.ErrorIs(mt, err, ErrNotFound)
	})
}

func TestMongoUpdateByID(t *testing.T) {
	mt := newMock(t)

	mt.Run("reports counts", func(mt *mtest.T) {
		sessions := newMongoCollection[models.StudySession](mt.DB, SessionsCollection)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		res, err := sessions.UpdateByID(context.Background(), primitive.NewObjectID(), bson.M{"Status": models.StatusRejected})
		require.NoError(mt, err)
		assert.Equal(mt, int64(1), res.MatchedCount)
		assert.Equal(mt, int64(1), res.ModifiedCount)

		assert.Equal(mt, "update", mt.GetStartedEvent().CommandName)
	})

	mt.Run("no match", func(mt *mtest.T) {
		sessions := newMongoCollection[models.StudySession](mt.DB, SessionsCollection)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		res, err := sessions.UpdateByID(context.Background(), primitive.NewObjectID(), bson.M{"Status": models.StatusPending})
		require.NoError(mt, err)
		assert.Equal(mt, int64(0), res.MatchedCount)
	})

	mt.Run("duplicate key", func(mt *mtest.T) {
		users := newMongoCollection[models.User](mt.DB, UsersCollection)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Code: 11000, Message: "E11000 duplicate key"}))

		_, err := users.UpdateByID(context.Background(), primitive.NewObjectID(), bson.M{"email": "taken@x.com"})
		assert.ErrorIs(mt, err, ErrDuplicate)
	})
}

func TestMongoDeleteByID(t *testing.T) {
	mt := newMock(t)

	mt.Run("deleted then gone", func(mt *mtest.T) {
		reviews := newMongoCollection[models.Review](mt.DB, ReviewsCollection)
		id := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}),
		)

		res, err := reviews.DeleteByID(context.Background(), id)
		require.NoError(mt, err)
		assert.Equal(mt, int64(1), res.DeletedCount)

		res, err = reviews.DeleteByID(context.Background(), id)
		require.NoError(mt, err)
		assert.Equal(mt, int64(0), res.DeletedCount)
	})
}

func TestEnsureIndexes(t *testing.T) {
	mt := newMock(t)

	mt.Run("creates unique indexes", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(), mtest.CreateSuccessResponse())

		require.NoError(mt, ensureIndexes(context.Background(), mt.DB))

		events := mt.GetAllStartedEvents()
		require.Len(mt, events, 2)
		names := map[string]string{}
		for _, ev := range events {
			assert.Equal(mt, "createIndexes", ev.CommandName)
			coll := ev.Command.Lookup("createIndexes").StringValue()
			index := ev.Command.Lookup("indexes", "0").Document()
			assert.True(mt, index.Lookup("unique").Boolean(), coll)
			names[coll] = index.Lookup("name").StringValue()
		}
		assert.Equal(mt, map[string]string{
			UsersCollection:    "uniq_user_email",
			BookingsCollection: "uniq_booking_session_student",
		}, names)
	})

	mt.Run("fails on server error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code: 85, Name: "IndexOptionsConflict", Message: "index exists with different options",
		}))

		err := ensureIndexes(context.Background(), mt.DB)
		assert.ErrorContains(mt, err, "create index")
	})
}

func TestMongoStorePing(t *testing.T) {
	mt := newMock(t)

	mt.Run("ping", func(mt *mtest.T) {
		store := newMongoStore(mt.Client, mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		require.NoError(mt, store.Ping(context.Background()))
		assert.Equal(mt, "ping", mt.GetStartedEvent().CommandName)
	})
}

package mongo

import (
	"alcyxob/exercise-tracker/internal/domain"
	"alcyxob/exercise-tracker/internal/repository"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func seqResponse(name string, seq int64) bson.D {
	return bson.D{
		{Key: "ok", Value: 1},
		{Key: "value", Value: bson.D{{Key: "_id", Value: name}, {Key: "seq", Value: seq}}},
	}
}

func TestMongoUserRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("create assigns id and sequence", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.DB)
		mt.AddMockResponses(seqResponse("users", 3), mtest.CreateSuccessResponse())

		u := &domain.User{Username: "alice"}
		id, err := repo.Create(context.Background(), u)
		require.NoError(mt, err)
		require.NotEmpty(mt, id)
		require.EqualValues(mt, 3, u.Seq)
	})

	mt.Run("get by id", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.DB)
		ns := mt.DB.Name() + "." + userCollectionName
		mt.AddMockResponses(mtest.CreateCursorResponse(1, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "abc"},
			{Key: "username", Value: "bob"},
			{Key: "seq", Value: int64(1)},
		}))

		u, err := repo.GetByID(context.Background(), "abc")
		require.NoError(mt, err)
		require.Equal(mt, "bob", u.Username)
	})

	mt.Run("get by id not found", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.DB)
		ns := mt.DB.Name() + "." + userCollectionName
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := repo.GetByID(context.Background(), "missing")
		require.ErrorIs(mt, err, repository.ErrNotFound)
	})

	mt.Run("list keeps server order", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.DB)
		ns := mt.DB.Name() + "." + userCollectionName
		first := mtest.CreateCursorResponse(1, ns, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "a"}, {Key: "username", Value: "one"}, {Key: "seq", Value: int64(1)}},
			bson.D{{Key: "_id", Value: "b"}, {Key: "username", Value: "two"}, {Key: "seq", Value: int64(2)}},
		)
		end := mtest.CreateCursorResponse(0, ns, mtest.NextBatch)
		mt.AddMockResponses(first, end)

		users, err := repo.List(context.Background())
		require.NoError(mt, err)
		require.Len(mt, users, 2)
		require.Equal(mt, "one", users[0].Username)
		require.Equal(mt, "two", users[1].Username)
	})
}

func TestMongoExerciseRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("create", func(mt *mtest.T) {
		repo := NewMongoExerciseRepository(mt.DB)
		mt.AddMockResponses(seqResponse("exercises", 7), mtest.CreateSuccessResponse())

		d := 30
		ex := &domain.Exercise{UserID: "u", Description: "run", Duration: &d, Date: "Sun Jan 15 2023"}
		require.NoError(mt, repo.Create(context.Background(), ex))
		require.EqualValues(mt, 7, ex.Seq)
	})

	mt.Run("get by user decodes null duration", func(mt *mtest.T) {
		repo := NewMongoExerciseRepository(mt.DB)
		ns := mt.DB.Name() + "." + exerciseCollectionName
		first := mtest.CreateCursorResponse(1, ns, mtest.FirstBatch,
			bson.D{{Key: "userId", Value: "u"}, {Key: "description", Value: "run"}, {Key: "duration", Value: int32(30)}, {Key: "date", Value: "Sun Jan 15 2023"}},
			bson.D{{Key: "userId", Value: "u"}, {Key: "description", Value: "swim"}, {Key: "duration", Value: nil}, {Key: "date", Value: "Mon Jan 16 2023"}},
		)
		end := mtest.CreateCursorResponse(0, ns, mtest.NextBatch)
		mt.AddMockResponses(first, end)

		log, err := repo.GetByUserID(context.Background(), "u")
		require.NoError(mt, err)
		require.Len(mt, log, 2)
		require.Equal(mt, 30, *log[0].Duration)
		require.Nil(mt, log[1].Duration)
	})
}

package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
	"go.uber.org/zap"

	domainErrors "github.com/kawsar-hussain/server-A11/internal/domain/errors"
	"github.com/kawsar-hussain/server-A11/internal/domain/model"
)

func TestDecimalCodec(t *testing.T) {
	payment := model.Payment{
		Amount:        decimal.RequireFromString("25.00"),
		TransactionID: "pi_123",
	}

	raw, err := bson.MarshalWithRegistry(Registry, payment)
	require.NoError(t, err)

	value := bson.Raw(raw).Lookup("amount")
	assert.Equal(t, bsontype.Decimal128, value.Type)

	var decoded model.Payment
	require.NoError(t, bson.UnmarshalWithRegistry(Registry, raw, &decoded))
	assert.True(t, decoded.Amount.Equal(decimal.NewFromInt(25)), "got %s", decoded.Amount)

	t.Run("legacy double amounts decode", func(t *testing.T) {
		raw, err := bson.Marshal(bson.M{"amount": 12.5})
		require.NoError(t, err)

		var p model.Payment
		require.NoError(t, bson.UnmarshalWithRegistry(Registry, raw, &p))
		assert.True(t, p.Amount.Equal(decimal.RequireFromString("12.5")))
	})
}

func TestMapError(t *testing.T) {
	assert.NoError(t, mapError(nil, "payment", "x"))
	assert.True(t, errors.Is(mapError(mongo.ErrNoDocuments, "payment", "x"), domainErrors.ErrNotFound))
	assert.True(t, errors.Is(mapError(context.DeadlineExceeded, "payment", "x"), domainErrors.ErrStoreUnavailable))
	assert.True(t, errors.Is(mapError(mongo.ErrClientDisconnected, "payment", "x"), domainErrors.ErrStoreUnavailable))

	other := mapError(errors.New("boom"), "payment", "x")
	assert.False(t, errors.Is(other, domainErrors.ErrNotFound))
	assert.Contains(t, other.Error(), "boom")
}

func TestPaymentRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	logger := zap.NewNop()

	mt.Run("create assigns id", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := NewPaymentRepository(mt.DB, time.Second, logger)

		payment := &model.Payment{Amount: decimal.NewFromInt(25), TransactionID: "pi_1"}
		require.NoError(t, repo.Create(context.Background(), payment))
		assert.False(t, payment.ID.IsZero())
	})

	mt.Run("duplicate transaction id", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: payment index: transactionId_1",
		}))
		repo := NewPaymentRepository(mt.DB, time.Second, logger)

		err := repo.Create(context.Background(), &model.Payment{TransactionID: "pi_1"})
		assert.True(t, errors.Is(err, domainErrors.ErrDuplicateKey))
	})

	mt.Run("get by transaction id", func(mt *mtest.T) {
		amount, err := primitive.ParseDecimal128("25.00")
		require.NoError(t, err)
		oid := primitive.NewObjectID()

		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.payment", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: oid},
			{Key: "amount", Value: amount},
			{Key: "currency", Value: "usd"},
			{Key: "donorEmail", Value: "donor@example.com"},
			{Key: "transactionId", Value: "pi_1"},
			{Key: "paymentStatus", Value: "paid"},
		}))
		repo := NewPaymentRepository(mt.DB, time.Second, logger)

		payment, err := repo.GetByTransactionID(context.Background(), "pi_1")
		require.NoError(t, err)
		assert.Equal(t, oid, payment.ID)
		assert.Equal(t, "pi_1", payment.TransactionID)
		assert.True(t, payment.Amount.Equal(decimal.NewFromInt(25)))
	})

	mt.Run("missing transaction id", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.payment", mtest.FirstBatch))
		repo := NewPaymentRepository(mt.DB, time.Second, logger)

		_, err := repo.GetByTransactionID(context.Background(), "pi_missing")
		assert.True(t, errors.Is(err, domainErrors.ErrNotFound))
	})
}

func TestDonationRequestRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	logger := zap.NewNop()

	mt.Run("create returns acknowledgement", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := NewDonationRequestRepository(mt.DB, time.Second, logger)

		req := &model.DonationRequest{RequesterEmail: "a@example.com", Status: model.RequestStatusPending}
		res, err := repo.Create(context.Background(), req)
		require.NoError(t, err)
		assert.True(t, res.Acknowledged)
		assert.Equal(t, req.ID.Hex(), res.InsertedID)
	})

	mt.Run("list by requester", func(mt *mtest.T) {
		first := bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "requesterEmail", Value: "a@example.com"}, {Key: "status", Value: "pending"}}
		second := bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "requesterEmail", Value: "a@example.com"}, {Key: "status", Value: "done"}}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.request", mtest.FirstBatch, first, second))
		repo := NewDonationRequestRepository(mt.DB, time.Second, logger)

		requests, err := repo.ListByRequesterEmail(context.Background(), " A@Example.com ")
		require.NoError(t, err)
		require.Len(t, requests, 2)
		assert.Equal(t, "done", requests[1].Status)

		started := mt.GetStartedEvent()
		require.NotNil(t, started)
		filter := started.Command.Lookup("filter").Document()
		assert.Equal(t, "a@example.com", filter.Lookup("requesterEmail").StringValue())
		assert.Equal(t, int32(2), started.Command.Lookup("collation", "strength").Int32())
	})

	mt.Run("list empty", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.request", mtest.FirstBatch))
		repo := NewDonationRequestRepository(mt.DB, time.Second, logger)

		requests, err := repo.List(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, requests)
		assert.Empty(t, requests)
	})

	mt.Run("update missing id reports zero matches", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))
		repo := NewDonationRequestRepository(mt.DB, time.Second, logger)

		res, err := repo.Update(context.Background(), primitive.NewObjectID(), map[string]interface{}{"status": "done"})
		require.NoError(t, err)
		assert.Equal(t, &model.UpdateResult{Acknowledged: true}, res)
	})

	mt.Run("update sets only given fields", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))
		repo := NewDonationRequestRepository(mt.DB, time.Second, logger)

		res, err := repo.Update(context.Background(), primitive.NewObjectID(), map[string]interface{}{"status": "canceled"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), res.MatchedCount)
		assert.Equal(t, int64(1), res.ModifiedCount)

		started := mt.GetStartedEvent()
		require.NotNil(t, started)
		set := started.Command.Lookup("updates", "0", "u", "$set").Document()
		elems, err := set.Elements()
		require.NoError(t, err)
		require.Len(t, elems, 1)
		assert.Equal(t, "canceled", set.Lookup("status").StringValue())
	})

	mt.Run("delete", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))
		repo := NewDonationRequestRepository(mt.DB, time.Second, logger)

		res, err := repo.Delete(context.Background(), primitive.NewObjectID())
		require.NoError(t, err)
		assert.Equal(t, int64(1), res.DeletedCount)
	})

	mt.Run("get missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.request", mtest.FirstBatch))
		repo := NewDonationRequestRepository(mt.DB, time.Second, logger)

		_, err := repo.GetByID(context.Background(), primitive.NewObjectID())
		assert.True(t, errors.Is(err, domainErrors.ErrNotFound))
	})
}

func TestUserRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	logger := zap.NewNop()

	mt.Run("duplicate email", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: users index: email_1",
		}))
		repo := NewUserRepository(mt.DB, time.Second, logger)

		_, err := repo.Create(context.Background(), &model.User{Email: "a@example.com"})
		assert.True(t, errors.Is(err, domainErrors.ErrDuplicateKey))
	})

	mt.Run("get by email", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.users", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "email", Value: "a@example.com"},
			{Key: "role", Value: "volunteer"},
			{Key: "status", Value: "active"},
		}))
		repo := NewUserRepository(mt.DB, time.Second, logger)

		user, err := repo.GetByEmail(context.Background(), "A@example.com")
		require.NoError(t, err)
		assert.Equal(t, model.RoleVolunteer, user.Role)
	})
}

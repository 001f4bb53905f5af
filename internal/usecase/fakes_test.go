package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	domainErrors "github.com/kawsar-hussain/server-A11/internal/domain/errors"
	"github.com/kawsar-hussain/server-A11/internal/domain/model"
	"github.com/kawsar-hussain/server-A11/internal/domain/provider"
)

// MockCheckoutGateway is a mock implementation of provider.CheckoutGateway
type MockCheckoutGateway struct {
	mock.Mock
}

func (m *MockCheckoutGateway) CreateSession(ctx context.Context, req *provider.CreateSessionRequest) (*provider.CreateSessionResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.CreateSessionResponse), args.Error(1)
}

func (m *MockCheckoutGateway) RetrieveSession(ctx context.Context, sessionID string) (*provider.SessionSnapshot, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.SessionSnapshot), args.Error(1)
}

func (m *MockCheckoutGateway) GetProviderName() string {
	return "mock"
}

// fakePaymentRepo enforces a unique transaction id like the Mongo index does
type fakePaymentRepo struct {
	mu   sync.Mutex
	byTx map[string]*model.Payment

	// when set, the first two lookups wait for each other before returning
	lookupBarrier *sync.WaitGroup
	lookups       int
	inserts       int

	lookupErr error
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{byTx: make(map[string]*model.Payment)}
}

func (r *fakePaymentRepo) Create(_ context.Context, payment *model.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byTx[payment.TransactionID]; ok {
		return domainErrors.NewDuplicateKeyError("payment already exists", nil)
	}
	payment.ID = primitive.NewObjectID()
	stored := *payment
	r.byTx[payment.TransactionID] = &stored
	r.inserts++
	return nil
}

func (r *fakePaymentRepo) GetByID(_ context.Context, id primitive.ObjectID) (*model.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.byTx {
		if p.ID == id {
			found := *p
			return &found, nil
		}
	}
	return nil, domainErrors.NewNotFoundError("payment", id.Hex())
}

func (r *fakePaymentRepo) GetByTransactionID(_ context.Context, transactionID string) (*model.Payment, error) {
	r.mu.Lock()
	r.lookups++
	n := r.lookups
	p, ok := r.byTx[transactionID]
	lookupErr := r.lookupErr
	r.mu.Unlock()

	if r.lookupBarrier != nil && n <= 2 {
		r.lookupBarrier.Done()
		r.lookupBarrier.Wait()
	}

	if lookupErr != nil {
		return nil, lookupErr
	}
	if !ok {
		return nil, domainErrors.NewNotFoundError("payment", transactionID)
	}
	found := *p
	return &found, nil
}

func (r *fakePaymentRepo) ListByDonorEmail(_ context.Context, email string) ([]*model.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*model.Payment, 0)
	for _, p := range r.byTx {
		if strings.EqualFold(p.DonorEmail, email) {
			found := *p
			out = append(out, &found)
		}
	}
	return out, nil
}

// memoryRequestRepo applies $set updates the way the document store does,
// including dotted extra.<key> paths.
type memoryRequestRepo struct {
	mu    sync.Mutex
	docs  map[primitive.ObjectID]*model.DonationRequest
	order []primitive.ObjectID
}

func newMemoryRequestRepo() *memoryRequestRepo {
	return &memoryRequestRepo{docs: make(map[primitive.ObjectID]*model.DonationRequest)}
}

func (r *memoryRequestRepo) Create(_ context.Context, req *model.DonationRequest) (*model.InsertResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	req.ID = primitive.NewObjectID()
	stored := *req
	r.docs[req.ID] = &stored
	r.order = append(r.order, req.ID)
	return &model.InsertResult{Acknowledged: true, InsertedID: req.ID.Hex()}, nil
}

func (r *memoryRequestRepo) List(_ context.Context) ([]*model.DonationRequest, error) {
	return r.filter(func(*model.DonationRequest) bool { return true }), nil
}

func (r *memoryRequestRepo) ListByRequesterEmail(_ context.Context, email string) ([]*model.DonationRequest, error) {
	return r.filter(func(d *model.DonationRequest) bool {
		return strings.EqualFold(d.RequesterEmail, email)
	}), nil
}

func (r *memoryRequestRepo) filter(keep func(*model.DonationRequest) bool) []*model.DonationRequest {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*model.DonationRequest, 0)
	for _, id := range r.order {
		if d, ok := r.docs[id]; ok && keep(d) {
			found := *d
			out = append(out, &found)
		}
	}
	return out
}

func (r *memoryRequestRepo) GetByID(_ context.Context, id primitive.ObjectID) (*model.DonationRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.docs[id]
	if !ok {
		return nil, domainErrors.NewNotFoundError("donation request", id.Hex())
	}
	found := *d
	return &found, nil
}

func (r *memoryRequestRepo) Update(_ context.Context, id primitive.ObjectID, set map[string]interface{}) (*model.UpdateResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.docs[id]
	if !ok {
		return &model.UpdateResult{Acknowledged: true}, nil
	}

	raw, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}

	for key, value := range set {
		if strings.HasPrefix(key, "extra.") {
			extra, _ := doc["extra"].(map[string]interface{})
			if extra == nil {
				extra = make(map[string]interface{})
			}
			extra[strings.TrimPrefix(key, "extra.")] = value
			doc["extra"] = extra
			continue
		}
		doc[key] = value
	}

	raw, err = json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var updated model.DonationRequest
	if err := json.Unmarshal(raw, &updated); err != nil {
		return nil, err
	}

	r.docs[id] = &updated
	return &model.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil
}

func (r *memoryRequestRepo) Delete(_ context.Context, id primitive.ObjectID) (*model.DeleteResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.docs[id]; !ok {
		return &model.DeleteResult{Acknowledged: true}, nil
	}
	delete(r.docs, id)
	return &model.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
}

// MockUserRepository is a mock implementation of repository.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) (*model.InsertResult, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.InsertResult), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]*model.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) UpdateByEmail(ctx context.Context, email string, set map[string]interface{}) (*model.UpdateResult, error) {
	args := m.Called(ctx, email, set)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UpdateResult), args.Error(1)
}

func (m *MockUserRepository) UpdateByID(ctx context.Context, id primitive.ObjectID, set map[string]interface{}) (*model.UpdateResult, error) {
	args := m.Called(ctx, id, set)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UpdateResult), args.Error(1)
}

package service

import (
	"encoding/json"
	"testing"

	"skillconnect-order-service/internal/gig"
	"skillconnect-order-service/internal/gig/repository"
	"skillconnect-order-service/internal/order"
	"skillconnect-order-service/internal/rating"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// --- MOCK DEFINITIONS ---

// MockOrderReader adalah mock untuk interface OrderReader
type MockOrderReader struct {
	mock.Mock
}

func (m *MockOrderReader) FindByID(id uuid.UUID) (*order.Order, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

// --- CONSTANTS & DATA HELPER ---

var (
	testGigID      = uuid.MustParse("a609d17d-7b24-4f40-b615-5e6f3d9a1f28")
	testOrderID    = uuid.MustParse("b7c8e9f0-1234-5678-9abc-def012345678")
	testClientID   = uuid.MustParse("c1d2e3f4-0000-1111-2222-333344445555")
	testProviderID = uuid.MustParse("d9e8f7a6-9999-8888-7777-666655554444")
)

func completedOrder() *order.Order {
	return &order.Order{
		ID:         testOrderID,
		ClientID:   testClientID,
		ProviderID: testProviderID,
		GigID:      testGigID,
		Status:     order.StatusSelesai,
	}
}

func ratedGig() *gig.Gig {
	return &gig.Gig{
		ID:          testGigID,
		ProviderID:  testProviderID,
		Title:       "Desain logo profesional",
		Price:       decimal.NewFromInt(500000),
		RatingAvg:   4.0,
		RatingCount: 3,
	}
}

// --- TEST SETUP ---

func setupTest(t *testing.T) (GigService, *repository.MockGigRepository, *MockOrderReader, *miniredis.Miniredis) {
	mockRepo := new(repository.MockGigRepository)
	mockOrders := new(MockOrderReader)

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	svc := NewGigService(mockRepo, mockOrders, rdb, zap.NewNop())

	return svc, mockRepo, mockOrders, mr
}

// --- TEST CASES: CreateGig ---

func TestGigService_CreateGig_Success(t *testing.T) {
	svc, mockRepo, _, mr := setupTest(t)
	defer mr.Close()

	req := gig.CreateGigRequest{
		Title: "Desain logo profesional",
		Price: decimal.NewFromInt(500000),
	}
	mockRepo.On("Save", mock.AnythingOfType("*gig.Gig")).
		Return(ratedGig(), nil).Once()

	created, err := svc.CreateGig(req, testProviderID)

	assert.NoError(t, err)
	assert.NotNil(t, created)
	mockRepo.AssertExpectations(t)
}

func TestGigService_CreateGig_InvalidPrice(t *testing.T) {
	svc, mockRepo, _, mr := setupTest(t)
	defer mr.Close()

	req := gig.CreateGigRequest{Title: "Gratis", Price: decimal.Zero}

	_, err := svc.CreateGig(req, testProviderID)

	assert.ErrorIs(t, err, gig.ErrInvalidPrice)
	mockRepo.AssertNotCalled(t, "Save", mock.Anything)
}

// --- TEST CASES: GetGig ---

func TestGigService_GetGig_CacheHit(t *testing.T) {
	svc, mockRepo, _, mr := setupTest(t)
	defer mr.Close()

	gigJSON, _ := json.Marshal(ratedGig())
	mr.Set(gigCacheKey(testGigID), string(gigJSON))

	g, err := svc.GetGig(testGigID)

	assert.NoError(t, err)
	assert.Equal(t, testGigID, g.ID)
	mockRepo.AssertNotCalled(t, "FindByID", mock.Anything)
}

func TestGigService_GetGig_CacheMiss(t *testing.T) {
	svc, mockRepo, _, mr := setupTest(t)
	defer mr.Close()

	mockRepo.On("FindByID", testGigID).Return(ratedGig(), nil).Once()

	g, err := svc.GetGig(testGigID)

	assert.NoError(t, err)
	assert.Equal(t, testGigID, g.ID)

	val, _ := mr.Get(gigCacheKey(testGigID))
	assert.True(t, len(val) > 0, "gig harus tersimpan di cache setelah cache miss")
	mockRepo.AssertExpectations(t)
}

// --- TEST CASES: AddReview ---

func TestGigService_AddReview_Success(t *testing.T) {
	svc, mockRepo, mockOrders, mr := setupTest(t)
	defer mr.Close()

	// 1. Arrange: order selesai milik client, belum ada review
	mockOrders.On("FindByID", testOrderID).Return(completedOrder(), nil).Once()
	mockRepo.On("ReviewExistsForOrder", testOrderID).Return(false, nil).Once()
	mockRepo.On("FindByID", testGigID).Return(ratedGig(), nil).Once()

	// (4.0, 3) + rating 5 -> (4.25, 4)
	mockRepo.On("SaveReviewWithRating", mock.AnythingOfType("*gig.Review"), 3, 4.25).
		Return(nil).Once()

	// Seed cache gig: review harus membuangnya
	mr.Set(gigCacheKey(testGigID), `{"id":"x"}`)

	// 2. Act
	rev, err := svc.AddReview(testOrderID, testClientID, gig.CreateReviewRequest{Rating: 5, Comment: "Mantap"})

	// 3. Assert
	assert.NoError(t, err)
	assert.Equal(t, testOrderID, rev.OrderID)
	assert.Equal(t, testGigID, rev.GigID)
	assert.Equal(t, 5, rev.Rating)
	assert.False(t, mr.Exists(gigCacheKey(testGigID)), "cache gig harus di-invalidate setelah review")

	mockOrders.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
}

func TestGigService_AddReview_OrderNotCompleted(t *testing.T) {
	svc, mockRepo, mockOrders, mr := setupTest(t)
	defer mr.Close()

	ord := completedOrder()
	ord.Status = order.StatusDikerjakan
	mockOrders.On("FindByID", testOrderID).Return(ord, nil).Once()

	_, err := svc.AddReview(testOrderID, testClientID, gig.CreateReviewRequest{Rating: 5})

	assert.ErrorIs(t, err, gig.ErrOrderNotCompleted)
	mockRepo.AssertNotCalled(t, "SaveReviewWithRating", mock.Anything, mock.Anything, mock.Anything)
}

func TestGigService_AddReview_NotOrderOwner(t *testing.T) {
	svc, mockRepo, mockOrders, mr := setupTest(t)
	defer mr.Close()

	mockOrders.On("FindByID", testOrderID).Return(completedOrder(), nil).Once()

	_, err := svc.AddReview(testOrderID, uuid.New(), gig.CreateReviewRequest{Rating: 5})

	assert.ErrorIs(t, err, gig.ErrNotOrderOwner)
	mockRepo.AssertNotCalled(t, "SaveReviewWithRating", mock.Anything, mock.Anything, mock.Anything)
}

func TestGigService_AddReview_Duplicate(t *testing.T) {
	svc, mockRepo, mockOrders, mr := setupTest(t)
	defer mr.Close()

	mockOrders.On("FindByID", testOrderID).Return(completedOrder(), nil).Once()
	mockRepo.On("ReviewExistsForOrder", testOrderID).Return(true, nil).Once()

	_, err := svc.AddReview(testOrderID, testClientID, gig.CreateReviewRequest{Rating: 4})

	assert.ErrorIs(t, err, gig.ErrReviewExists)
	mockRepo.AssertNotCalled(t, "SaveReviewWithRating", mock.Anything, mock.Anything, mock.Anything)
}

func TestGigService_AddReview_InvalidRating(t *testing.T) {
	svc, mockRepo, mockOrders, mr := setupTest(t)
	defer mr.Close()

	mockOrders.On("FindByID", testOrderID).Return(completedOrder(), nil).Once()
	mockRepo.On("ReviewExistsForOrder", testOrderID).Return(false, nil).Once()
	mockRepo.On("FindByID", testGigID).Return(ratedGig(), nil).Once()

	_, err := svc.AddReview(testOrderID, testClientID, gig.CreateReviewRequest{Rating: 6})

	assert.ErrorIs(t, err, rating.ErrInvalidRating)
	mockRepo.AssertNotCalled(t, "SaveReviewWithRating", mock.Anything, mock.Anything, mock.Anything)
}

func TestGigService_AddReview_ConcurrentConflict(t *testing.T) {
	svc, mockRepo, mockOrders, mr := setupTest(t)
	defer mr.Close()

	mockOrders.On("FindByID", testOrderID).Return(completedOrder(), nil).Once()
	mockRepo.On("ReviewExistsForOrder", testOrderID).Return(false, nil).Once()
	mockRepo.On("FindByID", testGigID).Return(ratedGig(), nil).Once()
	mockRepo.On("SaveReviewWithRating", mock.AnythingOfType("*gig.Review"), 3, 4.25).
		Return(gig.ErrConcurrentModification).Once()

	_, err := svc.AddReview(testOrderID, testClientID, gig.CreateReviewRequest{Rating: 5})

	assert.ErrorIs(t, err, gig.ErrConcurrentModification)
}

// --- TEST CASES: ListReviews ---

func TestGigService_ListReviews(t *testing.T) {
	svc, mockRepo, _, mr := setupTest(t)
	defer mr.Close()

	expected := []gig.Review{
		{ID: uuid.New(), GigID: testGigID, Rating: 5},
		{ID: uuid.New(), GigID: testGigID, Rating: 3},
	}
	mockRepo.On("FindByID", testGigID).Return(ratedGig(), nil).Once()
	mockRepo.On("FindReviewsByGigID", testGigID).Return(expected, nil).Once()

	reviews, err := svc.ListReviews(testGigID)

	assert.NoError(t, err)
	assert.Len(t, reviews, 2)
	mockRepo.AssertExpectations(t)
}

func TestGigService_ListReviews_GigNotFound(t *testing.T) {
	svc, mockRepo, _, mr := setupTest(t)
	defer mr.Close()

	mockRepo.On("FindByID", testGigID).Return(nil, gig.ErrGigNotFound).Once()

	_, err := svc.ListReviews(testGigID)

	assert.ErrorIs(t, err, gig.ErrGigNotFound)
}

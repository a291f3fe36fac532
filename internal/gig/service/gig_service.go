package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"skillconnect-order-service/internal/gig"
	"skillconnect-order-service/internal/gig/repository"
	"skillconnect-order-service/internal/order"
	"skillconnect-order-service/internal/rating"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Konteks global untuk Redis
var ctx = context.Background()

const gigCacheTTL = 10 * time.Minute

// GigService adalah kontrak modul gig: listing layanan dan review yang
// menggerakkan state rating agregat.
type GigService interface {
	CreateGig(req gig.CreateGigRequest, providerID uuid.UUID) (*gig.Gig, error)
	GetGig(id uuid.UUID) (*gig.Gig, error)
	AddReview(orderID, clientID uuid.UUID, req gig.CreateReviewRequest) (*gig.Review, error)
	ListReviews(gigID uuid.UUID) ([]gig.Review, error)
}

// OrderReader adalah kontrak minimal untuk memeriksa order saat review
// masuk: kepemilikan dan status selesai.
type OrderReader interface {
	FindByID(id uuid.UUID) (*order.Order, error)
}

type gigService struct {
	repo   repository.GigRepository
	orders OrderReader
	rdb    *redis.Client
	log    *zap.Logger
}

func NewGigService(repo repository.GigRepository, orders OrderReader, rdb *redis.Client, log *zap.Logger) GigService {
	return &gigService{
		repo:   repo,
		orders: orders,
		rdb:    rdb,
		log:    log,
	}
}

func (s *gigService) CreateGig(req gig.CreateGigRequest, providerID uuid.UUID) (*gig.Gig, error) {
	if !req.Price.IsPositive() {
		return nil, gig.ErrInvalidPrice
	}

	newGig := &gig.Gig{
		ProviderID:  providerID,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		// State rating dimulai dari (0, 0)
		RatingAvg:   0,
		RatingCount: 0,
	}

	savedGig, err := s.repo.Save(newGig)
	if err != nil {
		return nil, fmt.Errorf("gagal menyimpan gig: %w", err)
	}
	return savedGig, nil
}

// GetGig mengambil satu gig dengan cache Redis di depannya.
func (s *gigService) GetGig(id uuid.UUID) (*gig.Gig, error) {
	cacheKey := gigCacheKey(id)

	if val, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
		var g gig.Gig
		if json.Unmarshal([]byte(val), &g) == nil {
			s.log.Debug("cache hit untuk gig", zap.String("gig_id", id.String()))
			return &g, nil
		}
	}

	g, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if jsonData, err := json.Marshal(g); err == nil {
		s.rdb.Set(ctx, cacheKey, jsonData, gigCacheTTL)
	}

	return g, nil
}

// AddReview menegakkan aturan satu review per order yang sudah selesai,
// lalu melipat rating-nya ke state agregat gig. Penyimpanan review dan
// update rating terjadi dalam satu transaksi di repository.
func (s *gigService) AddReview(orderID, clientID uuid.UUID, req gig.CreateReviewRequest) (*gig.Review, error) {
	ord, err := s.orders.FindByID(orderID)
	if err != nil {
		return nil, err
	}
	if ord.ClientID != clientID {
		return nil, gig.ErrNotOrderOwner
	}
	if ord.Status != order.StatusSelesai {
		return nil, gig.ErrOrderNotCompleted
	}

	exists, err := s.repo.ReviewExistsForOrder(orderID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, gig.ErrReviewExists
	}

	g, err := s.repo.FindByID(ord.GigID)
	if err != nil {
		return nil, err
	}

	newState, err := rating.Add(rating.State{Average: g.RatingAvg, Count: g.RatingCount}, req.Rating)
	if err != nil {
		return nil, err
	}

	rev := &gig.Review{
		OrderID:  orderID,
		GigID:    ord.GigID,
		ClientID: clientID,
		Rating:   req.Rating,
		Comment:  req.Comment,
	}

	if err := s.repo.SaveReviewWithRating(rev, g.RatingCount, newState.Average); err != nil {
		return nil, err
	}

	// Rating gig berubah, buang cache-nya
	s.rdb.Del(ctx, gigCacheKey(ord.GigID))

	return rev, nil
}

func (s *gigService) ListReviews(gigID uuid.UUID) ([]gig.Review, error) {
	if _, err := s.repo.FindByID(gigID); err != nil {
		return nil, err
	}
	return s.repo.FindReviewsByGigID(gigID)
}

func gigCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("gig:%s", id.String())
}

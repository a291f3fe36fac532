package repository

import (
	"skillconnect-order-service/internal/gig"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockGigRepository adalah mock testify untuk GigRepository.
type MockGigRepository struct {
	mock.Mock
}

func (m *MockGigRepository) Save(g *gig.Gig) (*gig.Gig, error) {
	args := m.Called(g)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gig.Gig), args.Error(1)
}

func (m *MockGigRepository) FindByID(id uuid.UUID) (*gig.Gig, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gig.Gig), args.Error(1)
}

func (m *MockGigRepository) ReviewExistsForOrder(orderID uuid.UUID) (bool, error) {
	args := m.Called(orderID)
	return args.Bool(0), args.Error(1)
}

func (m *MockGigRepository) SaveReviewWithRating(rev *gig.Review, prevCount int, newAvg float64) error {
	args := m.Called(rev, prevCount, newAvg)
	return args.Error(0)
}

func (m *MockGigRepository) FindReviewsByGigID(gigID uuid.UUID) ([]gig.Review, error) {
	args := m.Called(gigID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]gig.Review), args.Error(1)
}

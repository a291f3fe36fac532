package repository

import (
	"errors"
	"time"

	"skillconnect-order-service/internal/gig"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Kontrak persistensi gig dan review. Penyimpanan review dan update state
// rating gig adalah SATU unit atomik.
type GigRepository interface {
	Save(g *gig.Gig) (*gig.Gig, error)
	FindByID(id uuid.UUID) (*gig.Gig, error)
	ReviewExistsForOrder(orderID uuid.UUID) (bool, error)
	SaveReviewWithRating(rev *gig.Review, prevCount int, newAvg float64) error
	FindReviewsByGigID(gigID uuid.UUID) ([]gig.Review, error)
}

type gigRepository struct {
	db *gorm.DB
}

func NewGigRepository(db *gorm.DB) GigRepository {
	return &gigRepository{db: db}
}

func (r *gigRepository) Save(g *gig.Gig) (*gig.Gig, error) {
	if err := r.db.Create(g).Error; err != nil {
		return nil, err
	}
	return g, nil
}

func (r *gigRepository) FindByID(id uuid.UUID) (*gig.Gig, error) {
	var g gig.Gig
	if err := r.db.First(&g, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gig.ErrGigNotFound
		}
		return nil, err
	}
	return &g, nil
}

func (r *gigRepository) ReviewExistsForOrder(orderID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.Model(&gig.Review{}).Where("order_id = ?", orderID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// SaveReviewWithRating menyimpan review dan melipat rating-nya ke state
// agregat gig dalam satu transaksi. Update gig di-compare-and-swap pada
// rating_count: kalau review lain masuk duluan, count sudah bergeser dan
// kita kembalikan ErrConcurrentModification tanpa menyimpan apa pun.
func (r *gigRepository) SaveReviewWithRating(rev *gig.Review, prevCount int, newAvg float64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(rev).Error; err != nil {
			return err
		}

		res := tx.Model(&gig.Gig{}).
			Where("id = ? AND rating_count = ?", rev.GigID, prevCount).
			Updates(map[string]interface{}{
				"rating_avg":   newAvg,
				"rating_count": prevCount + 1,
				"updated_at":   time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gig.ErrConcurrentModification
		}
		return nil
	})
}

func (r *gigRepository) FindReviewsByGigID(gigID uuid.UUID) ([]gig.Review, error) {
	var reviews []gig.Review
	if err := r.db.Where("gig_id = ?", gigID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

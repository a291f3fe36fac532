package gig

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Gig adalah model domain dan GORM untuk tabel 'gigs' (layanan yang
// ditawarkan provider). RatingAvg/RatingCount adalah state agregat rating:
// dimulai dari (0, 0) dan hanya dimutasi lewat AddReview, satu kali per
// review yang diterima.
type Gig struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	ProviderID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"provider_id"`
	Title       string          `gorm:"type:varchar(255);not null" json:"title"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"price"`
	RatingAvg   float64         `gorm:"type:decimal(3,2);not null;default:0" json:"rating_avg"`
	RatingCount int             `gorm:"not null;default:0" json:"rating_count"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Hook GORM untuk membuat UUID baru sebelum create
func (g *Gig) BeforeCreate(tx *gorm.DB) (err error) {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return
}

// Review adalah penilaian client atas satu order yang sudah selesai.
// Unique index pada OrderID menjadi backstop aturan satu review per order.
type Review struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"order_id"`
	GigID     uuid.UUID `gorm:"type:uuid;not null;index" json:"gig_id"`
	ClientID  uuid.UUID `gorm:"type:uuid;not null;index" json:"client_id"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `gorm:"type:text" json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}

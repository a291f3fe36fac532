package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Status Pesanan (Enum)
type OrderStatus string

const (
	StatusMenungguPembayaran OrderStatus = "menunggu_pembayaran"
	StatusDibayar            OrderStatus = "dibayar"
	StatusDikerjakan         OrderStatus = "dikerjakan"
	StatusMenungguReview     OrderStatus = "menunggu_review"
	StatusRevisi             OrderStatus = "revisi"
	StatusSelesai            OrderStatus = "selesai"
	StatusDispute            OrderStatus = "dispute"
	StatusDibatalkan         OrderStatus = "dibatalkan"
	StatusRefunded           OrderStatus = "refunded"
)

// Peran aktor yang melakukan sebuah transisi status
type ActorRole string

const (
	ActorClient   ActorRole = "client"
	ActorProvider ActorRole = "provider"
	ActorAdmin    ActorRole = "admin"
	ActorSystem   ActorRole = "system"
)

// Order adalah model domain dan GORM untuk tabel 'orders'.
// GrossPrice bersifat immutable setelah order dibuat; fee selalu dihitung
// sebagai turunan, tidak pernah ditulis balik ke kolom ini.
// Order tidak pernah dihapus secara fisik: pembatalan adalah status terminal.
type Order struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	ClientID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"client_id"`
	ProviderID uuid.UUID       `gorm:"type:uuid;not null;index" json:"provider_id"`
	GigID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"gig_id"`
	GrossPrice decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"gross_price"`
	Status     OrderStatus     `gorm:"type:varchar(32);not null;index" json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// Hook GORM untuk membuat UUID dan status awal sebelum create
func (o *Order) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.Status == "" {
		o.Status = StatusMenungguPembayaran
	}
	return
}

// StatusHistoryEntry adalah catatan audit append-only: satu baris per
// transisi status, tidak pernah di-update atau dihapus.
// PreviousStatus bernilai nil hanya untuk event pembuatan order.
type StatusHistoryEntry struct {
	ID             uint64       `gorm:"primary_key;autoIncrement" json:"id"`
	OrderID        uuid.UUID    `gorm:"type:uuid;not null;index" json:"order_id"`
	PreviousStatus *OrderStatus `gorm:"type:varchar(32)" json:"previous_status"`
	NewStatus      OrderStatus  `gorm:"type:varchar(32);not null" json:"new_status"`
	ActorRole      ActorRole    `gorm:"type:varchar(16);not null" json:"actor_role"`
	Reason         string       `gorm:"type:text" json:"reason,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
}

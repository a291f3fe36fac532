package repository

import (
	"errors"
	"time"

	"skillconnect-order-service/internal/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Kontrak persistensi order. Transisi status dan penulisan history adalah
// SATU unit atomik: keduanya sukses atau keduanya gagal.
type OrderRepository interface {
	Save(ord *order.Order, actor order.ActorRole) (*order.Order, error)
	FindByID(id uuid.UUID) (*order.Order, error)
	TransitionStatus(id uuid.UUID, from, to order.OrderStatus, actor order.ActorRole, reason string) (*order.Order, error)
	HistoryByOrderID(orderID uuid.UUID) ([]order.StatusHistoryEntry, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// Save menyimpan order baru BESERTA history entry pembuatannya dalam satu
// transaksi. PreviousStatus nil menandai event pembuatan.
func (r *orderRepository) Save(ord *order.Order, actor order.ActorRole) (*order.Order, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(ord).Error; err != nil {
			return err
		}
		entry := &order.StatusHistoryEntry{
			OrderID:   ord.ID,
			NewStatus: ord.Status,
			ActorRole: actor,
		}
		return tx.Create(entry).Error
	})
	if err != nil {
		return nil, err
	}
	return ord, nil
}

func (r *orderRepository) FindByID(id uuid.UUID) (*order.Order, error) {
	var ord order.Order
	if err := r.db.First(&ord, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound
		}
		return nil, err
	}
	return &ord, nil
}

// TransitionStatus melakukan compare-and-swap pada status order dan menambah
// satu history entry, semuanya dalam satu transaksi. UPDATE-nya difilter
// pada status asal: kalau 0 baris berubah padahal ordernya ada, berarti
// proses lain menang duluan dan kita kembalikan ErrConcurrentModification.
func (r *orderRepository) TransitionStatus(id uuid.UUID, from, to order.OrderStatus, actor order.ActorRole, reason string) (*order.Order, error) {
	var updated order.Order
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&order.Order{}).
			Where("id = ? AND status = ?", id, from).
			Updates(map[string]interface{}{
				"status":     to,
				"updated_at": time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Bedakan order hilang vs status sudah bergeser
			var count int64
			if err := tx.Model(&order.Order{}).Where("id = ?", id).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return order.ErrOrderNotFound
			}
			return order.ErrConcurrentModification
		}

		prev := from
		entry := &order.StatusHistoryEntry{
			OrderID:        id,
			PreviousStatus: &prev,
			NewStatus:      to,
			ActorRole:      actor,
			Reason:         reason,
		}
		if err := tx.Create(entry).Error; err != nil {
			return err
		}

		return tx.First(&updated, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// HistoryByOrderID mengembalikan seluruh history sebuah order terurut naik
// berdasarkan waktu; ID auto-increment jadi tie-break untuk transisi yang
// terjadi di timestamp sama.
func (r *orderRepository) HistoryByOrderID(orderID uuid.UUID) ([]order.StatusHistoryEntry, error) {
	var entries []order.StatusHistoryEntry
	if err := r.db.Where("order_id = ?", orderID).
		Order("created_at ASC, id ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

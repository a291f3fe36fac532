package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"skillconnect-order-service/internal/event"
	"skillconnect-order-service/internal/gig"
	"skillconnect-order-service/internal/order"
	"skillconnect-order-service/internal/payment"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Konteks global untuk Redis
var ctx = context.Background()

const historyCacheTTL = 10 * time.Minute

// OrderService adalah kontrak lifecycle manager order: pembuatan, transisi
// status, audit history, dan fee breakdown turunan.
type OrderService interface {
	CreateOrder(req order.CreateOrderRequest, clientID uuid.UUID) (*order.Order, error)
	GetOrder(id uuid.UUID) (*order.Order, error)
	Transition(id uuid.UUID, target order.OrderStatus, actor order.ActorRole, reason string) (*order.Order, error)
	History(orderID uuid.UUID) ([]order.StatusHistoryEntry, error)
	Fees(orderID uuid.UUID) (payment.FeeBreakdown, error)
}

// OrderRepository adalah subset kontrak repository yang dipakai service ini.
type OrderRepository interface {
	Save(ord *order.Order, actor order.ActorRole) (*order.Order, error)
	FindByID(id uuid.UUID) (*order.Order, error)
	TransitionStatus(id uuid.UUID, from, to order.OrderStatus, actor order.ActorRole, reason string) (*order.Order, error)
	HistoryByOrderID(orderID uuid.UUID) ([]order.StatusHistoryEntry, error)
}

// GigReader adalah kontrak minimal untuk mengambil data gig yang dibutuhkan
// saat membuat order (harga dan provider).
type GigReader interface {
	FindByID(id uuid.UUID) (*gig.Gig, error)
}

type orderService struct {
	repo      OrderRepository
	gigs      GigReader
	rdb       *redis.Client
	publisher event.Publisher
	log       *zap.Logger
}

func NewOrderService(repo OrderRepository, gigs GigReader, rdb *redis.Client, publisher event.Publisher, log *zap.Logger) OrderService {
	return &orderService{
		repo:      repo,
		gigs:      gigs,
		rdb:       rdb,
		publisher: publisher,
		log:       log,
	}
}

// CreateOrder membuat order baru di status menunggu_pembayaran. Harga dan
// provider diambil dari gig, bukan dari request, supaya tidak bisa
// dimanipulasi client.
func (s *orderService) CreateOrder(req order.CreateOrderRequest, clientID uuid.UUID) (*order.Order, error) {
	g, err := s.gigs.FindByID(req.GigID)
	if err != nil {
		return nil, err
	}
	if g.ProviderID == clientID {
		return nil, order.ErrOwnGig
	}

	newOrder := &order.Order{
		ClientID:   clientID,
		ProviderID: g.ProviderID,
		GigID:      g.ID,
		GrossPrice: g.Price,
		Status:     order.StatusMenungguPembayaran,
	}

	savedOrder, err := s.repo.Save(newOrder, order.ActorClient)
	if err != nil {
		return nil, fmt.Errorf("gagal menyimpan order: %w", err)
	}

	s.publishOrderCreated(savedOrder)

	return savedOrder, nil
}

func (s *orderService) GetOrder(id uuid.UUID) (*order.Order, error) {
	return s.repo.FindByID(id)
}

// Transition menjalankan satu transisi status: validasi terhadap tabel
// transisi legal, lalu compare-and-swap + penulisan history secara atomik di
// repository. Dari dua transisi bersamaan pada order yang sama, tepat satu
// yang menang; yang kalah menerima ErrConcurrentModification.
func (s *orderService) Transition(id uuid.UUID, target order.OrderStatus, actor order.ActorRole, reason string) (*order.Order, error) {
	ord, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if err := order.ValidateTransition(ord.Status, target); err != nil {
		return nil, err
	}

	updated, err := s.repo.TransitionStatus(id, ord.Status, target, actor, reason)
	if err != nil {
		return nil, err
	}

	s.publishStatusChanged(updated, ord.Status, actor, reason)

	// History berubah, buang cache-nya agar GET berikutnya mengambil data baru
	s.rdb.Del(ctx, historyCacheKey(id))

	return updated, nil
}

// History mengembalikan audit trail sebuah order terurut naik berdasarkan
// waktu, dengan cache Redis di depannya (pola cache-aside).
func (s *orderService) History(orderID uuid.UUID) ([]order.StatusHistoryEntry, error) {
	cacheKey := historyCacheKey(orderID)

	if val, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
		var entries []order.StatusHistoryEntry
		if json.Unmarshal([]byte(val), &entries) == nil {
			s.log.Debug("cache hit untuk history order", zap.String("order_id", orderID.String()))
			return entries, nil
		}
	}

	// Order tidak dikenal harus jadi ErrOrderNotFound, bukan history kosong
	if _, err := s.repo.FindByID(orderID); err != nil {
		return nil, err
	}

	entries, err := s.repo.HistoryByOrderID(orderID)
	if err != nil {
		return nil, err
	}

	if jsonData, err := json.Marshal(entries); err == nil {
		s.rdb.Set(ctx, cacheKey, jsonData, historyCacheTTL)
	}

	return entries, nil
}

// Fees menghitung fee breakdown order dengan tarif default platform.
// Murni turunan dari harga kotor; tidak ada yang dipersistenkan.
func (s *orderService) Fees(orderID uuid.UUID) (payment.FeeBreakdown, error) {
	ord, err := s.repo.FindByID(orderID)
	if err != nil {
		return payment.FeeBreakdown{}, err
	}
	return payment.ComputeDefaultFees(ord.GrossPrice)
}

// --- Helper internal ---

func historyCacheKey(orderID uuid.UUID) string {
	return fmt.Sprintf("order_history:%s", orderID.String())
}

// publishOrderCreated mengirim event order.created. Kalau publish gagal,
// catat peringatan tapi JANGAN gagalkan operasinya: ordernya sudah
// tersimpan, itu yang utama.
func (s *orderService) publishOrderCreated(ord *order.Order) {
	payload := struct {
		OrderID    string `json:"orderId"`
		ClientID   string `json:"clientId"`
		ProviderID string `json:"providerId"`
		GigID      string `json:"gigId"`
		GrossPrice string `json:"grossPrice"`
		Timestamp  string `json:"timestamp"`
	}{
		OrderID:    ord.ID.String(),
		ClientID:   ord.ClientID.String(),
		ProviderID: ord.ProviderID.String(),
		GigID:      ord.GigID.String(),
		GrossPrice: ord.GrossPrice.StringFixed(2),
		Timestamp:  time.Now().Format(time.RFC3339),
	}

	body, err := json.Marshal(payload)
	if err == nil {
		err = s.publisher.Publish(event.RoutingOrderCreated, body)
	}
	if err != nil {
		s.log.Warn("order tersimpan tapi gagal publish event order.created",
			zap.String("order_id", ord.ID.String()), zap.Error(err))
	}
}

// publishStatusChanged mengirim event order.status_changed dengan posture
// yang sama: gagal publish hanya dicatat, transisinya sudah final.
func (s *orderService) publishStatusChanged(ord *order.Order, prev order.OrderStatus, actor order.ActorRole, reason string) {
	payload := struct {
		OrderID        string `json:"orderId"`
		PreviousStatus string `json:"previousStatus"`
		NewStatus      string `json:"newStatus"`
		ActorRole      string `json:"actorRole"`
		Reason         string `json:"reason,omitempty"`
		Timestamp      string `json:"timestamp"`
	}{
		OrderID:        ord.ID.String(),
		PreviousStatus: string(prev),
		NewStatus:      string(ord.Status),
		ActorRole:      string(actor),
		Reason:         reason,
		Timestamp:      time.Now().Format(time.RFC3339),
	}

	body, err := json.Marshal(payload)
	if err == nil {
		err = s.publisher.Publish(event.RoutingStatusChanged, body)
	}
	if err != nil {
		s.log.Warn("transisi tersimpan tapi gagal publish event order.status_changed",
			zap.String("order_id", ord.ID.String()), zap.Error(err))
	}
}

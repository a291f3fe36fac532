package order

import (
	"github.com/google/uuid"
)

// Payload JSON untuk POST /orders. Harga dan provider tidak dikirim client:
// keduanya diambil dari gig supaya tidak bisa dimanipulasi dari request.
type CreateOrderRequest struct {
	GigID uuid.UUID `json:"gig_id" binding:"required"`
}

// Payload JSON untuk POST /orders/:id/status
type TransitionRequest struct {
	TargetStatus OrderStatus `json:"target_status" binding:"required"`
	Reason       string      `json:"reason"`
}

// Payload JSON callback dari payment gateway (gaya notifikasi Midtrans).
// transaction_status 'settlement'/'capture' berarti pembayaran sukses,
// 'expire'/'cancel'/'deny' berarti pembayaran gagal.
type PaymentNotificationRequest struct {
	OrderID           uuid.UUID `json:"order_id" binding:"required"`
	TransactionStatus string    `json:"transaction_status" binding:"required"`
}

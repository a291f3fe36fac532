package handler

import (
	"errors"
	"net/http"

	"skillconnect-order-service/internal/auth"
	"skillconnect-order-service/internal/gig"
	"skillconnect-order-service/internal/order"
	"skillconnect-order-service/internal/order/service"
	"skillconnect-order-service/internal/payment"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OrderHandler menerjemahkan request HTTP menjadi operasi lifecycle order
// dan error domain menjadi status code.
type OrderHandler struct {
	Service service.OrderService
}

func NewOrderHandler(svc service.OrderService) *OrderHandler {
	return &OrderHandler{Service: svc}
}

// CreateOrder menangani endpoint POST /orders
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req order.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Format request salah atau field wajib kosong.", "details": err.Error()})
		return
	}

	claims, ok := auth.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Tidak terautentikasi."})
		return
	}

	createdOrder, err := h.Service.CreateOrder(req, claims.UserID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, createdOrder)
}

// GetOrder menangani endpoint GET /orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, ok := parseOrderID(c)
	if !ok {
		return
	}

	ord, err := h.Service.GetOrder(id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, ord)
}

// TransitionStatus menangani endpoint POST /orders/:id/status.
// Peran aktor diambil dari claims JWT, bukan dari body.
func (h *OrderHandler) TransitionStatus(c *gin.Context) {
	id, ok := parseOrderID(c)
	if !ok {
		return
	}

	var req order.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Format request salah atau field wajib kosong.", "details": err.Error()})
		return
	}

	claims, ok := auth.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Tidak terautentikasi."})
		return
	}

	updated, err := h.Service.Transition(id, req.TargetStatus, order.ActorRole(claims.Role), req.Reason)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// History menangani endpoint GET /orders/:id/history
func (h *OrderHandler) History(c *gin.Context) {
	id, ok := parseOrderID(c)
	if !ok {
		return
	}

	entries, err := h.Service.History(id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}

// Fees menangani endpoint GET /orders/:id/fees
func (h *OrderHandler) Fees(c *gin.Context) {
	id, ok := parseOrderID(c)
	if !ok {
		return
	}

	breakdown, err := h.Service.Fees(id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, breakdown)
}

// PaymentNotification menangani endpoint POST /payments/notification:
// callback bergaya Midtrans yang diterjemahkan menjadi transisi oleh aktor
// 'system'.
func (h *OrderHandler) PaymentNotification(c *gin.Context) {
	var req order.PaymentNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Format notifikasi salah atau field wajib kosong.", "details": err.Error()})
		return
	}

	var target order.OrderStatus
	switch req.TransactionStatus {
	case "settlement", "capture":
		target = order.StatusDibayar
	case "expire", "cancel", "deny":
		target = order.StatusDibatalkan
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "transaction_status tidak dikenal."})
		return
	}

	updated, err := h.Service.Transition(req.OrderID, target, order.ActorSystem, "midtrans: "+req.TransactionStatus)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// --- Helper internal ---

func parseOrderID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Format Order ID tidak valid."})
		return uuid.Nil, false
	}
	return id, true
}

// writeError memetakan error domain ke status HTTP: 400 validasi, 404 tidak
// ditemukan, 409 konflik concurrent, 422 transisi ilegal / status terminal.
func writeError(c *gin.Context, err error) {
	var invalidTransition *order.InvalidTransitionError
	var terminalState *order.TerminalStateError

	switch {
	case errors.Is(err, order.ErrOrderNotFound), errors.Is(err, gig.ErrGigNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, order.ErrConcurrentModification):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &invalidTransition), errors.As(err, &terminalState),
		errors.Is(err, order.ErrOwnGig):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, payment.ErrInvalidAmount), errors.Is(err, payment.ErrInvalidRate):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

package handler

import (
	"errors"
	"net/http"

	"skillconnect-order-service/internal/auth"
	"skillconnect-order-service/internal/gig"
	"skillconnect-order-service/internal/gig/service"
	"skillconnect-order-service/internal/order"
	"skillconnect-order-service/internal/rating"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GigHandler menerjemahkan request HTTP menjadi operasi modul gig/review.
type GigHandler struct {
	Service service.GigService
}

func NewGigHandler(svc service.GigService) *GigHandler {
	return &GigHandler{Service: svc}
}

// CreateGig menangani endpoint POST /gigs (role provider)
func (h *GigHandler) CreateGig(c *gin.Context) {
	var req gig.CreateGigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Format request salah atau field wajib kosong.", "details": err.Error()})
		return
	}

	claims, ok := auth.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Tidak terautentikasi."})
		return
	}

	createdGig, err := h.Service.CreateGig(req, claims.UserID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, createdGig)
}

// GetGig menangani endpoint GET /gigs/:id
func (h *GigHandler) GetGig(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Format Gig ID tidak valid."})
		return
	}

	g, err := h.Service.GetGig(id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, g)
}

// ListReviews menangani endpoint GET /gigs/:id/reviews
func (h *GigHandler) ListReviews(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Format Gig ID tidak valid."})
		return
	}

	reviews, err := h.Service.ListReviews(id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, reviews)
}

// CreateReview menangani endpoint POST /orders/:id/review (role client).
// Review melekat pada order; gig yang dinilai diambil dari ordernya.
func (h *GigHandler) CreateReview(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Format Order ID tidak valid."})
		return
	}

	var req gig.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Format request salah atau rating di luar rentang 1-5.", "details": err.Error()})
		return
	}

	claims, ok := auth.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Tidak terautentikasi."})
		return
	}

	rev, err := h.Service.AddReview(orderID, claims.UserID, req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, rev)
}

// writeError memetakan error domain gig/review ke status HTTP.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gig.ErrGigNotFound), errors.Is(err, order.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, gig.ErrReviewExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, gig.ErrConcurrentModification):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, gig.ErrNotOrderOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, gig.ErrOrderNotCompleted):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, gig.ErrInvalidPrice), errors.Is(err, rating.ErrInvalidRating):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

package gig

import "github.com/shopspring/decimal"

// Payload JSON untuk POST /gigs
type CreateGigRequest struct {
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" binding:"required"`
}

// Payload JSON untuk POST /orders/:id/review
type CreateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

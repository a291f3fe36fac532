package gig

import "errors"

var (
	ErrGigNotFound   = errors.New("gig tidak ditemukan")
	ErrInvalidPrice  = errors.New("harga gig harus lebih besar dari nol")
	ErrReviewExists  = errors.New("order ini sudah memiliki review")
	ErrNotOrderOwner = errors.New("review hanya bisa diberikan oleh client pemilik order")

	// ErrOrderNotCompleted: review hanya untuk order berstatus selesai.
	ErrOrderNotCompleted = errors.New("review hanya bisa diberikan untuk order yang sudah selesai")

	// ErrConcurrentModification: compare-and-swap rating_count gagal karena
	// review lain masuk duluan. Caller boleh retry dengan state terbaru.
	ErrConcurrentModification = errors.New("rating gig sedang dimodifikasi oleh proses lain")
)

package order

import (
	"errors"
	"fmt"
)

var (
	// ErrOrderNotFound dikembalikan saat order dengan ID tersebut tidak ada.
	ErrOrderNotFound = errors.New("order tidak ditemukan")

	// ErrConcurrentModification dikembalikan saat compare-and-swap status
	// gagal karena order dimodifikasi proses lain. Caller boleh retry
	// dengan state terbaru.
	ErrConcurrentModification = errors.New("order sedang dimodifikasi oleh proses lain")

	// ErrOwnGig dikembalikan saat client mencoba memesan gig miliknya sendiri.
	ErrOwnGig = errors.New("tidak bisa memesan gig milik sendiri")
)

// InvalidTransitionError menandakan pasangan (from, to) tidak ada di tabel
// transisi legal.
type InvalidTransitionError struct {
	From OrderStatus
	To   OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("transisi status %s -> %s tidak diizinkan", e.From, e.To)
}

// TerminalStateError menandakan order sudah berada di status terminal dan
// tidak bisa ditransisikan lagi.
type TerminalStateError struct {
	Status OrderStatus
}

func (e *TerminalStateError) Error() string {
	return fmt.Sprintf("order sudah berada di status terminal %s", e.Status)
}

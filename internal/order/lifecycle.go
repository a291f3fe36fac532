package order

// Tabel transisi legal status order. Ini satu-satunya sumber kebenaran untuk
// state machine order: semua call site memvalidasi lewat ValidateTransition,
// tidak ada yang menurunkan aturannya sendiri.
var legalTransitions = map[OrderStatus][]OrderStatus{
	StatusMenungguPembayaran: {StatusDibayar, StatusDibatalkan},
	StatusDibayar:            {StatusDikerjakan, StatusRefunded, StatusDispute},
	StatusDikerjakan:         {StatusMenungguReview, StatusDispute},
	StatusMenungguReview:     {StatusSelesai, StatusRevisi, StatusDispute},
	StatusRevisi:             {StatusDikerjakan},
	// Hasil resolusi dispute
	StatusDispute: {StatusRefunded, StatusSelesai, StatusDibatalkan},
}

// Status terminal: tidak ada transisi keluar setelah tercapai.
var terminalStatuses = map[OrderStatus]bool{
	StatusSelesai:    true,
	StatusDibatalkan: true,
	StatusRefunded:   true,
}

// IsValid melaporkan apakah s adalah salah satu status yang dikenal.
func (s OrderStatus) IsValid() bool {
	if terminalStatuses[s] {
		return true
	}
	_, ok := legalTransitions[s]
	return ok
}

// IsTerminal melaporkan apakah s adalah status terminal.
func (s OrderStatus) IsTerminal() bool {
	return terminalStatuses[s]
}

// CanTransition melaporkan apakah pasangan (from, to) ada di tabel transisi.
func CanTransition(from, to OrderStatus) bool {
	for _, next := range legalTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidateTransition memeriksa apakah transisi from -> to diizinkan.
// Mengembalikan TerminalStateError jika order sudah di status terminal,
// atau InvalidTransitionError jika pasangannya tidak ada di tabel.
func ValidateTransition(from, to OrderStatus) error {
	if from.IsTerminal() {
		return &TerminalStateError{Status: from}
	}
	if !CanTransition(from, to) {
		return &InvalidTransitionError{From: from, To: to}
	}
	return nil
}

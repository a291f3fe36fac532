package rating

import (
	"errors"
	"math"
)

var (
	ErrInvalidRating = errors.New("rating harus bilangan bulat antara 1 sampai 5")
	ErrInvalidState  = errors.New("state rating agregat tidak konsisten")
)

// State adalah agregat rating yang melekat pada sebuah gig: rata-rata
// berjalan (2 desimal) dan jumlah rating yang sudah diterima.
type State struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// Add melipat satu rating baru ke dalam rata-rata berjalan memakai rumus
// incremental mean. Setiap pemanggilan menambah Count tepat satu; hasilnya
// deterministik untuk input yang sama. Add tidak mencegah rating ganda dari
// reviewer yang sama: itu tanggung jawab keterkaitan order-review di luar
// paket ini.
func Add(current State, newRating int) (State, error) {
	if newRating < 1 || newRating > 5 {
		return State{}, ErrInvalidRating
	}
	if current.Count < 0 || current.Average < 0 || current.Average > 5 {
		return State{}, ErrInvalidState
	}

	sum := current.Average*float64(current.Count) + float64(newRating)
	return State{
		Average: math.Round(sum/float64(current.Count+1)*100) / 100,
		Count:   current.Count + 1,
	}, nil
}

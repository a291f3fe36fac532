package logger

import "go.uber.org/zap"

// New membuat zap logger production dengan level yang bisa dikonfigurasi
// lewat string ("debug", "info", "warn", ...).
func New(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl

	return cfg.Build()
}

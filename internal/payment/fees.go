package payment

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Tarif default pembagian dana escrow SkillConnect.
const (
	DefaultPlatformRate = 0.05
	DefaultGatewayRate  = 0.01
)

var (
	ErrInvalidAmount = errors.New("harga kotor tidak boleh negatif")
	ErrInvalidRate   = errors.New("tarif fee harus berada di rentang [0,1]")
)

// FeeBreakdown adalah hasil pembagian dana escrow untuk satu order.
// Nilai ini selalu turunan dari harga kotor, tidak pernah dipersistenkan.
type FeeBreakdown struct {
	GrossPrice  decimal.Decimal `json:"gross_price"`
	PlatformFee decimal.Decimal `json:"platform_fee"`
	GatewayFee  decimal.Decimal `json:"gateway_fee"`
	NetPayout   decimal.Decimal `json:"net_payout"`
}

// ComputeFees membagi harga kotor menjadi fee platform, fee gateway, dan
// payout bersih untuk provider. Pembulatan 2 desimal hanya diterapkan pada
// komponen fee; payout dihitung sebagai sisa, sehingga
// platform + gateway + payout selalu persis sama dengan harga kotor.
func ComputeFees(gross decimal.Decimal, platformRate, gatewayRate float64) (FeeBreakdown, error) {
	if gross.IsNegative() {
		return FeeBreakdown{}, ErrInvalidAmount
	}
	if platformRate < 0 || platformRate > 1 || gatewayRate < 0 || gatewayRate > 1 {
		return FeeBreakdown{}, ErrInvalidRate
	}

	platformFee := gross.Mul(decimal.NewFromFloat(platformRate)).Round(2)
	gatewayFee := gross.Mul(decimal.NewFromFloat(gatewayRate)).Round(2)
	netPayout := gross.Sub(platformFee).Sub(gatewayFee)

	return FeeBreakdown{
		GrossPrice:  gross,
		PlatformFee: platformFee,
		GatewayFee:  gatewayFee,
		NetPayout:   netPayout,
	}, nil
}

// ComputeDefaultFees memakai tarif default platform.
func ComputeDefaultFees(gross decimal.Decimal) (FeeBreakdown, error) {
	return ComputeFees(gross, DefaultPlatformRate, DefaultGatewayRate)
}

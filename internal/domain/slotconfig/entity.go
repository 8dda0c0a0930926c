package slotconfig

import (
	"errors"

	"promo-slot-engine/internal/domain/promotion"
)

var (
	ErrNegativeCapacity = errors.New("daily capacity cannot be negative")
	ErrNegativeCharge   = errors.New("daily charge cannot be negative")
)

// Config is the per-type capacity row: at most one active row per promotion
// type, seeded and administered outside the engine. Read-only here.
type Config struct {
	promoType        promotion.Type
	dailyCapacity    int
	dailyChargeCents int64
}

func NewConfig(promoType promotion.Type, dailyCapacity int, dailyChargeCents int64) (*Config, error) {
	if !promoType.IsValid() {
		return nil, promotion.ErrInvalidType
	}
	if dailyCapacity < 0 {
		return nil, ErrNegativeCapacity
	}
	if dailyChargeCents < 0 {
		return nil, ErrNegativeCharge
	}
	return &Config{
		promoType:        promoType,
		dailyCapacity:    dailyCapacity,
		dailyChargeCents: dailyChargeCents,
	}, nil
}

// CostFor is the reservation cost over n days. Callers must have validated
// availability first; this is pure multiplication.
func (c *Config) CostFor(days int) int64 {
	if days < 0 {
		return 0
	}
	return c.dailyChargeCents * int64(days)
}

func (c *Config) Type() promotion.Type    { return c.promoType }
func (c *Config) DailyCapacity() int      { return c.dailyCapacity }
func (c *Config) DailyChargeCents() int64 { return c.dailyChargeCents }

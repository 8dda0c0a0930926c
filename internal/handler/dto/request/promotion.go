package request

import (
	"errors"
	"time"

	"promo-slot-engine/internal/domain/promotion"

	"github.com/google/uuid"
)

var ErrMalformedDate = errors.New("dates must be in YYYY-MM-DD form")

type CreatePromotionRequest struct {
	Type      string     `json:"type" binding:"required"`
	ProductID *uuid.UUID `json:"product_id"`
	ShopID    *uuid.UUID `json:"shop_id"`
	StartDate string     `json:"start_date" binding:"required"`
	EndDate   string     `json:"end_date" binding:"required"`
	Status    string     `json:"status" binding:"required"`
}

func (r *CreatePromotionRequest) ParseDates() (start, end time.Time, err error) {
	start, err = ParseDay(r.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err = ParseDay(r.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

type UpdatePromotionRequest struct {
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
	Status    string  `json:"status" binding:"required"`
}

func (r *UpdatePromotionRequest) ParseDates() (start, end *time.Time, err error) {
	if r.StartDate != nil {
		t, err := ParseDay(*r.StartDate)
		if err != nil {
			return nil, nil, err
		}
		start = &t
	}
	if r.EndDate != nil {
		t, err := ParseDay(*r.EndDate)
		if err != nil {
			return nil, nil, err
		}
		end = &t
	}
	return start, end, nil
}

type AvailabilityRequest struct {
	Type      string     `form:"type" binding:"required"`
	ProductID *uuid.UUID `form:"product_id"`
	ShopID    *uuid.UUID `form:"shop_id"`
	StartDate *string    `form:"start_date"`
	EndDate   *string    `form:"end_date"`
}

func (r *AvailabilityRequest) ParseDates() (start, end *time.Time, err error) {
	if r.StartDate != nil && *r.StartDate != "" {
		t, err := ParseDay(*r.StartDate)
		if err != nil {
			return nil, nil, err
		}
		start = &t
	}
	if r.EndDate != nil && *r.EndDate != "" {
		t, err := ParseDay(*r.EndDate)
		if err != nil {
			return nil, nil, err
		}
		end = &t
	}
	return start, end, nil
}

type CostRequest struct {
	Type      string `form:"type" binding:"required"`
	StartDate string `form:"start_date" binding:"required"`
	EndDate   string `form:"end_date" binding:"required"`
}

func (r *CostRequest) ParseDates() (start, end time.Time, err error) {
	start, err = ParseDay(r.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err = ParseDay(r.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

func ParseDay(s string) (time.Time, error) {
	t, err := time.ParseInLocation(promotion.DayKeyFormat, s, time.UTC)
	if err != nil {
		return time.Time{}, ErrMalformedDate
	}
	return t, nil
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Payphone-Digital/carrental/internal/model"
)

type CreateCarRequest struct {
	Brand        string          `json:"brand" binding:"required,max=100"`
	Model        string          `json:"model" binding:"required,max=100"`
	Year         int             `json:"year" binding:"required,gte=1900,lte=2100"`
	Seats        int             `json:"seats" binding:"required,gte=1,lte=60"`
	FuelType     string          `json:"fuelType" binding:"required,oneof=gasoline diesel electric hybrid"`
	Transmission string          `json:"transmission" binding:"required,oneof=automatic manual"`
	Description  string          `json:"description" binding:"max=2000"`
	Price        decimal.Decimal `json:"price"`
	Images       []string        `json:"images" binding:"omitempty,dive,required,max=2048"`
}

// UpdateCarRequest replaces the scalar fields. Images is only touched when
// present in the payload.
type UpdateCarRequest struct {
	Brand        string          `json:"brand" binding:"required,max=100"`
	Model        string          `json:"model" binding:"required,max=100"`
	Year         int             `json:"year" binding:"required,gte=1900,lte=2100"`
	Seats        int             `json:"seats" binding:"required,gte=1,lte=60"`
	FuelType     string          `json:"fuelType" binding:"required,oneof=gasoline diesel electric hybrid"`
	Transmission string          `json:"transmission" binding:"required,oneof=automatic manual"`
	Description  string          `json:"description" binding:"max=2000"`
	Price        decimal.Decimal `json:"price"`
	Images       *[]string       `json:"images" binding:"omitempty,dive,required,max=2048"`
}

// CarFilter is bound from the browse query string.
type CarFilter struct {
	Search       string `form:"search"`
	Brand        string `form:"brand"`
	Transmission string `form:"transmission" binding:"omitempty,oneof=automatic manual"`
	FuelType     string `form:"fuelType" binding:"omitempty,oneof=gasoline diesel electric hybrid"`
	MinPrice     string `form:"minPrice" binding:"omitempty,numeric"`
	MaxPrice     string `form:"maxPrice" binding:"omitempty,numeric"`
	MinSeats     int    `form:"minSeats" binding:"omitempty,gte=1"`
}

type CarResponse struct {
	ID           uint            `json:"id"`
	UserID       uint            `json:"userId"`
	Brand        string          `json:"brand"`
	Model        string          `json:"model"`
	Year         int             `json:"year"`
	Seats        int             `json:"seats"`
	FuelType     string          `json:"fuelType"`
	Transmission string          `json:"transmission"`
	Description  string          `json:"description"`
	PricePerDay  decimal.Decimal `json:"pricePerDay"`
	Images       []string        `json:"images"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

func ToCarResponse(c *model.Car) CarResponse {
	images := []string(c.Images)
	if images == nil {
		images = []string{}
	}
	return CarResponse{
		ID:           c.ID,
		UserID:       c.UserID,
		Brand:        c.Brand,
		Model:        c.CarModel,
		Year:         c.Year,
		Seats:        c.Seats,
		FuelType:     c.FuelType,
		Transmission: c.Transmission,
		Description:  c.Description,
		PricePerDay:  c.PricePerDay,
		Images:       images,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func ToCarResponses(cars []model.Car) []CarResponse {
	out := make([]CarResponse, 0, len(cars))
	for i := range cars {
		out = append(out, ToCarResponse(&cars[i]))
	}
	return out
}

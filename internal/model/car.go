package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type Car struct {
	ID           uint                       `gorm:"primaryKey"`
	UserID       uint                       `gorm:"column:user_id;index:idx_cars_user_id;not null"`
	Brand        string                     `gorm:"column:brand;not null"`
	CarModel     string                     `gorm:"column:model;not null"`
	Year         int                        `gorm:"column:year;not null"`
	Seats        int                        `gorm:"column:seats;not null"`
	FuelType     string                     `gorm:"column:fuel_type;type:varchar(16);not null"`
	Transmission string                     `gorm:"column:transmission;type:varchar(16);not null"`
	Description  string                     `gorm:"column:description;type:text"`
	PricePerDay  decimal.Decimal            `gorm:"column:price_per_day;type:numeric(10,2);not null"`
	Images       datatypes.JSONSlice[string] `gorm:"column:images"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Car) TableName() string {
	return "cars"
}

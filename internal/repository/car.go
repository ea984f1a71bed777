package repository

import (
	"context"
	"strings"
	"time"

	"github.com/Payphone-Digital/carrental/internal/model"
	ctxutil "github.com/Payphone-Digital/carrental/pkg/context"
	"github.com/Payphone-Digital/carrental/pkg/logger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CarRepository struct {
	db *gorm.DB
}

func NewCarRepository(db *gorm.DB) *CarRepository {
	return &CarRepository{db: db}
}

// CarSearch narrows the public browse listing. Zero values mean no filter.
type CarSearch struct {
	Search       string
	Brand        string
	Transmission string
	FuelType     string
	MinPrice     *decimal.Decimal
	MaxPrice     *decimal.Decimal
	MinSeats     int
	Limit        int
	Offset       int
}

func (r *CarRepository) Create(ctx context.Context, car *model.Car) error {
	ctx = ctxutil.WithOperation(ctx, "repository", "CreateCar")

	if err := r.db.WithContext(ctx).Create(car).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to create car").
			Uint("owner_id", car.UserID).
			Err(err).
			Log()
		return err
	}

	logger.InfoWithContext(ctx, "Car created").
		Uint("car_id", car.ID).
		Uint("owner_id", car.UserID).
		Log()

	return nil
}

func (r *CarRepository) GetByID(ctx context.Context, id uint) (*model.Car, error) {
	ctx = ctxutil.WithOperation(ctx, "repository", "GetCarByID")

	var car model.Car
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&car).Error; err != nil {
		logger.DebugWithContext(ctx, "Car lookup failed").
			Uint("car_id", id).
			Err(err).
			Log()
		return nil, err
	}

	return &car, nil
}

// ListByOwner returns the cars of userID, newest first.
func (r *CarRepository) ListByOwner(ctx context.Context, userID uint) ([]model.Car, error) {
	ctx = ctxutil.WithOperation(ctx, "repository", "ListByOwner")

	var cars []model.Car
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&cars).Error
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to list owner cars").
			Uint("owner_id", userID).
			Err(err).
			Log()
		return nil, err
	}

	return cars, nil
}

// Update writes every column of car.
func (r *CarRepository) Update(ctx context.Context, car *model.Car) error {
	ctx = ctxutil.WithOperation(ctx, "repository", "UpdateCar")

	result := r.db.WithContext(ctx).
		Model(car).
		Select("brand", "model", "year", "seats", "fuel_type", "transmission", "description", "price_per_day", "images").
		Updates(car)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to update car").
			Uint("car_id", car.ID).
			Err(result.Error).
			Log()
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *CarRepository) Delete(ctx context.Context, id uint) error {
	ctx = ctxutil.WithOperation(ctx, "repository", "DeleteCar")

	result := r.db.WithContext(ctx).Delete(&model.Car{}, id)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to delete car").
			Uint("car_id", id).
			Err(result.Error).
			Log()
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	logger.InfoWithContext(ctx, "Car deleted").
		Uint("car_id", id).
		Log()

	return nil
}

// Search returns one page of cars matching q and the total match count.
func (r *CarRepository) Search(ctx context.Context, q CarSearch) ([]model.Car, int64, error) {
	ctx = ctxutil.WithOperation(ctx, "repository", "SearchCars")

	start := time.Now()
	query := r.db.WithContext(ctx).Model(&model.Car{})

	if q.Search != "" {
		pattern := "%" + strings.ToLower(q.Search) + "%"
		query = query.Where("LOWER(brand) LIKE ? OR LOWER(model) LIKE ?", pattern, pattern)
	}
	if q.Brand != "" {
		query = query.Where("LOWER(brand) = ?", strings.ToLower(q.Brand))
	}
	if q.Transmission != "" {
		query = query.Where("transmission = ?", q.Transmission)
	}
	if q.FuelType != "" {
		query = query.Where("fuel_type = ?", q.FuelType)
	}
	if q.MinPrice != nil {
		query = query.Where("price_per_day >= ?", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		query = query.Where("price_per_day <= ?", *q.MaxPrice)
	}
	if q.MinSeats > 0 {
		query = query.Where("seats >= ?", q.MinSeats)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to count cars").
			Err(err).
			Log()
		return nil, 0, err
	}

	var cars []model.Car
	if err := query.Order("created_at DESC").Order("id DESC").Limit(q.Limit).Offset(q.Offset).Find(&cars).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to fetch cars").
			Int("limit", q.Limit).
			Int("offset", q.Offset).
			Err(err).
			Log()
		return nil, 0, err
	}

	logger.DebugWithContext(ctx, "Cars retrieved successfully").
		String("search", q.Search).
		Int64("total", total).
		Int("returned_count", len(cars)).
		Duration(time.Since(start)).
		Log()

	return cars, total, nil
}

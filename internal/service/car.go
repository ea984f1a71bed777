package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Payphone-Digital/carrental/internal/constants"
	"github.com/Payphone-Digital/carrental/internal/dto"
	apperrors "github.com/Payphone-Digital/carrental/internal/errors"
	"github.com/Payphone-Digital/carrental/internal/model"
	"github.com/Payphone-Digital/carrental/internal/repository"
	ctxutil "github.com/Payphone-Digital/carrental/pkg/context"
	"github.com/Payphone-Digital/carrental/pkg/logger"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CarService struct {
	repoCar CarStore
}

func NewCarService(repo CarStore) *CarService {
	return &CarService{repoCar: repo}
}

func (s *CarService) Create(ctx context.Context, ownerID uint, req dto.CreateCarRequest) (*dto.CarResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "CreateCar")

	if !req.Price.IsPositive() {
		return nil, apperrors.ErrInvalidPrice
	}

	car := &model.Car{
		UserID:       ownerID,
		Brand:        strings.TrimSpace(req.Brand),
		CarModel:     strings.TrimSpace(req.Model),
		Year:         req.Year,
		Seats:        req.Seats,
		FuelType:     req.FuelType,
		Transmission: req.Transmission,
		Description:  req.Description,
		PricePerDay:  req.Price.Round(2),
		Images:       datatypes.JSONSlice[string](nonNil(req.Images)),
	}

	if err := s.repoCar.Create(ctx, car); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "Car listed").
		Uint("car_id", car.ID).
		Uint("owner_id", ownerID).
		Log()

	response := dto.ToCarResponse(car)
	return &response, nil
}

func (s *CarService) ListMine(ctx context.Context, ownerID uint) ([]dto.CarResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "ListMyCars")

	cars, err := s.repoCar.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	return dto.ToCarResponses(cars), nil
}

func (s *CarService) Get(ctx context.Context, id uint) (*dto.CarResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "GetCar")

	car, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	response := dto.ToCarResponse(car)
	return &response, nil
}

// Update replaces the listing fields of car id. Only the owner may update;
// images are replaced only when the request carries them.
func (s *CarService) Update(ctx context.Context, callerID, id uint, req dto.UpdateCarRequest) (*dto.CarResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "UpdateCar")

	car, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if car.UserID != callerID {
		logger.WarnWithContext(ctx, "Car update denied").
			Uint("car_id", id).
			Uint("caller_id", callerID).
			Log()
		return nil, apperrors.ErrCarUpdateDenied
	}
	if !req.Price.IsPositive() {
		return nil, apperrors.ErrInvalidPrice
	}

	car.Brand = strings.TrimSpace(req.Brand)
	car.CarModel = strings.TrimSpace(req.Model)
	car.Year = req.Year
	car.Seats = req.Seats
	car.FuelType = req.FuelType
	car.Transmission = req.Transmission
	car.Description = req.Description
	car.PricePerDay = req.Price.Round(2)
	if req.Images != nil {
		car.Images = datatypes.JSONSlice[string](nonNil(*req.Images))
	}

	if err := s.repoCar.Update(ctx, car); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCarNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	response := dto.ToCarResponse(car)
	return &response, nil
}

func (s *CarService) Delete(ctx context.Context, callerID, id uint) error {
	ctx = ctxutil.WithOperation(ctx, "service", "DeleteCar")

	car, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if car.UserID != callerID {
		logger.WarnWithContext(ctx, "Car delete denied").
			Uint("car_id", id).
			Uint("caller_id", callerID).
			Log()
		return apperrors.ErrCarDeleteDenied
	}

	if err := s.repoCar.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrCarNotFound
		}
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	return nil
}

// Browse returns one page of public listings plus the total match count
// and page count.
func (s *CarService) Browse(ctx context.Context, filter dto.CarFilter, page constants.PaginationParams) ([]dto.CarResponse, int64, int, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "BrowseCars")

	minPrice, err := parsePrice(filter.MinPrice)
	if err != nil {
		return nil, 0, 0, apperrors.WrapError(apperrors.ErrInvalidInput, err)
	}
	maxPrice, err := parsePrice(filter.MaxPrice)
	if err != nil {
		return nil, 0, 0, apperrors.WrapError(apperrors.ErrInvalidInput, err)
	}

	cars, total, err := s.repoCar.Search(ctx, repository.CarSearch{
		Search:       strings.TrimSpace(filter.Search),
		Brand:        strings.TrimSpace(filter.Brand),
		Transmission: filter.Transmission,
		FuelType:     filter.FuelType,
		MinPrice:     minPrice,
		MaxPrice:     maxPrice,
		MinSeats:     filter.MinSeats,
		Limit:        page.Limit,
		Offset:       page.Offset,
	})
	if err != nil {
		return nil, 0, 0, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	return dto.ToCarResponses(cars), total, constants.PageTotal(total, page.Limit), nil
}

func (s *CarService) load(ctx context.Context, id uint) (*model.Car, error) {
	car, err := s.repoCar.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCarNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return car, nil
}

func parsePrice(raw string) (*decimal.Decimal, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Payphone-Digital/carrental/internal/constants"
	"github.com/Payphone-Digital/carrental/internal/dto"
	apperrors "github.com/Payphone-Digital/carrental/internal/errors"
	"github.com/Payphone-Digital/carrental/pkg/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func carRequest(price string) dto.CreateCarRequest {
	return dto.CreateCarRequest{
		Brand:        "Toyota",
		Model:        "Vios",
		Year:         2022,
		Seats:        5,
		FuelType:     "gasoline",
		Transmission: "automatic",
		Price:        decimal.RequireFromString(price),
		Images:       []string{"/uploads/cars/a.png"},
	}
}

func updateRequest(from dto.CreateCarRequest) dto.UpdateCarRequest {
	return dto.UpdateCarRequest{
		Brand:        from.Brand,
		Model:        from.Model,
		Year:         from.Year,
		Seats:        from.Seats,
		FuelType:     from.FuelType,
		Transmission: from.Transmission,
		Description:  from.Description,
		Price:        from.Price,
	}
}

func TestCarService_CreateAndGet(t *testing.T) {
	logger.SetLogger(zap.NewNop())
	svc := NewCarService(newFakeCarStore())
	ctx := context.Background()

	tests := []struct {
		name    string
		price   string
		wantErr error
	}{
		{"positive price", "1500.50", nil},
		{"zero price", "0", apperrors.ErrInvalidPrice},
		{"negative price", "-10", apperrors.ErrInvalidPrice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			car, err := svc.Create(ctx, 7, carRequest(tt.price))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Create() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}

			got, err := svc.Get(ctx, car.ID)
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if got.UserID != 7 || !got.PricePerDay.Equal(decimal.RequireFromString(tt.price)) {
				t.Errorf("Unexpected car: %+v", got)
			}
		})
	}

	if _, err := svc.Get(ctx, 999); !errors.Is(err, apperrors.ErrCarNotFound) {
		t.Errorf("Expected ErrCarNotFound, got %v", err)
	}
}

func TestCarService_OwnerOnly(t *testing.T) {
	logger.SetLogger(zap.NewNop())
	svc := NewCarService(newFakeCarStore())
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, carRequest("1000"))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	_, err = svc.Update(ctx, 2, created.ID, updateRequest(carRequest("900")))
	if !errors.Is(err, apperrors.ErrCarUpdateDenied) || apperrors.ToHTTPStatus(err) != 403 {
		t.Errorf("Expected 403 ErrCarUpdateDenied, got %v", err)
	}

	err = svc.Delete(ctx, 2, created.ID)
	if !errors.Is(err, apperrors.ErrCarDeleteDenied) || apperrors.ToHTTPStatus(err) != 403 {
		t.Errorf("Expected 403 ErrCarDeleteDenied, got %v", err)
	}

	if err := svc.Delete(ctx, 1, 999); !errors.Is(err, apperrors.ErrCarNotFound) {
		t.Errorf("Expected ErrCarNotFound, got %v", err)
	}

	if err := svc.Delete(ctx, 1, created.ID); err != nil {
		t.Fatalf("owner Delete() error = %v", err)
	}
	if _, err := svc.Get(ctx, created.ID); !errors.Is(err, apperrors.ErrCarNotFound) {
		t.Errorf("Expected deleted car to be gone, got %v", err)
	}
}

func TestCarService_UpdateImages(t *testing.T) {
	logger.SetLogger(zap.NewNop())
	svc := NewCarService(newFakeCarStore())
	ctx := context.Background()

	created, _ := svc.Create(ctx, 1, carRequest("1000"))

	req := updateRequest(carRequest("1200"))
	updated, err := svc.Update(ctx, 1, created.ID, req)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if len(updated.Images) != 1 {
		t.Errorf("Expected images kept when absent, got %v", updated.Images)
	}
	if !updated.PricePerDay.Equal(decimal.NewFromInt(1200)) {
		t.Errorf("Expected price 1200, got %s", updated.PricePerDay)
	}

	images := []string{"/uploads/cars/b.png", "/uploads/cars/c.png"}
	req.Images = &images
	updated, err = svc.Update(ctx, 1, created.ID, req)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if len(updated.Images) != 2 || updated.Images[0] != "/uploads/cars/b.png" {
		t.Errorf("Expected images replaced, got %v", updated.Images)
	}
}

func TestCarService_ListMineAndBrowse(t *testing.T) {
	logger.SetLogger(zap.NewNop())
	svc := NewCarService(newFakeCarStore())
	ctx := context.Background()

	for _, price := range []string{"800", "1500", "2500"} {
		if _, err := svc.Create(ctx, 1, carRequest(price)); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}
	if _, err := svc.Create(ctx, 2, carRequest("3000")); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	mine, err := svc.ListMine(ctx, 1)
	if err != nil {
		t.Fatalf("ListMine() error = %v", err)
	}
	if len(mine) != 3 || mine[0].ID < mine[2].ID {
		t.Errorf("Expected 3 cars newest first, got %+v", mine)
	}

	page := constants.PaginationParams{Page: 1, Limit: 2, Offset: 0}
	cars, total, pageTotal, err := svc.Browse(ctx, dto.CarFilter{MinPrice: "1000"}, page)
	if err != nil {
		t.Fatalf("Browse() error = %v", err)
	}
	if total != 3 || pageTotal != 2 || len(cars) != 2 {
		t.Errorf("Browse() = %d cars, total %d, pages %d", len(cars), total, pageTotal)
	}

	_, _, _, err = svc.Browse(ctx, dto.CarFilter{MaxPrice: "cheap"}, page)
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for bad price filter, got %v", err)
	}
}

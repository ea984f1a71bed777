package handler

import (
	"net/http"
	"strconv"

	"github.com/Payphone-Digital/carrental/internal/constants"
	"github.com/Payphone-Digital/carrental/internal/dto"
	apperrors "github.com/Payphone-Digital/carrental/internal/errors"
	"github.com/Payphone-Digital/carrental/internal/middleware"
	"github.com/Payphone-Digital/carrental/internal/service"
	ctxutil "github.com/Payphone-Digital/carrental/pkg/context"
	"github.com/Payphone-Digital/carrental/pkg/logger"
	"github.com/gin-gonic/gin"
)

type CarHandler struct {
	carService *service.CarService
}

func NewCarHandler(carService *service.CarService) *CarHandler {
	return &CarHandler{carService: carService}
}

func (h *CarHandler) Create(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "CreateCar")

	ownerID, ok := middleware.CurrentUserID(c)
	if !ok {
		respondError(c, ctx, apperrors.ErrMissingToken, "")
		return
	}

	var req dto.CreateCarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, ctx, err)
		return
	}

	car, err := h.carService.Create(ctx, ownerID, req)
	if err != nil {
		respondError(c, ctx, err, "")
		return
	}

	c.JSON(http.StatusCreated, constants.BuildMessageDataResponse(constants.MsgCarListed, car))
}

func (h *CarHandler) ListMine(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "ListMyCars")

	ownerID, ok := middleware.CurrentUserID(c)
	if !ok {
		respondError(c, ctx, apperrors.ErrMissingToken, "")
		return
	}

	cars, err := h.carService.ListMine(ctx, ownerID)
	if err != nil {
		respondError(c, ctx, err, "")
		return
	}

	c.JSON(http.StatusOK, constants.BuildDataResponse(cars))
}

func (h *CarHandler) Get(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "GetCar")

	id, ok := carID(c)
	if !ok {
		return
	}

	car, err := h.carService.Get(ctx, id)
	if err != nil {
		respondError(c, ctx, err, "")
		return
	}

	c.JSON(http.StatusOK, constants.BuildDataResponse(car))
}

func (h *CarHandler) Update(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "UpdateCar")

	callerID, ok := middleware.CurrentUserID(c)
	if !ok {
		respondError(c, ctx, apperrors.ErrMissingToken, "")
		return
	}
	id, ok := carID(c)
	if !ok {
		return
	}

	var req dto.UpdateCarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, ctx, err)
		return
	}

	car, err := h.carService.Update(ctx, callerID, id, req)
	if err != nil {
		respondError(c, ctx, err, "")
		return
	}

	c.JSON(http.StatusOK, constants.BuildMessageDataResponse(constants.MsgCarUpdated, car))
}

func (h *CarHandler) Delete(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "DeleteCar")

	callerID, ok := middleware.CurrentUserID(c)
	if !ok {
		respondError(c, ctx, apperrors.ErrMissingToken, "")
		return
	}
	id, ok := carID(c)
	if !ok {
		return
	}

	if err := h.carService.Delete(ctx, callerID, id); err != nil {
		respondError(c, ctx, err, "")
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse(constants.MsgCarDeleted))
}

// Browse lists public cars with pagination and filters.
func (h *CarHandler) Browse(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "BrowseCars")

	pagination := constants.ParsePaginationParams(c)

	var filter dto.CarFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		respondBindError(c, ctx, err)
		return
	}

	logger.DebugWithContext(ctx, "Browse cars request").
		Int("page", pagination.Page).
		Int("limit", pagination.Limit).
		String("search", filter.Search).
		Log()

	cars, total, pageTotal, err := h.carService.Browse(ctx, filter, pagination)
	if err != nil {
		respondError(c, ctx, err, "")
		return
	}

	c.JSON(http.StatusOK, constants.BuildListResponse(total, pagination.Page, pageTotal, cars))
}

func carID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(constants.MsgInvalidCarID, nil))
		return 0, false
	}
	return uint(id), true
}

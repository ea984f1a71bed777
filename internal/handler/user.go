package handler

import (
	"net/http"

	"github.com/Payphone-Digital/carrental/internal/constants"
	"github.com/Payphone-Digital/carrental/internal/dto"
	apperrors "github.com/Payphone-Digital/carrental/internal/errors"
	"github.com/Payphone-Digital/carrental/internal/middleware"
	"github.com/Payphone-Digital/carrental/internal/service"
	ctxutil "github.com/Payphone-Digital/carrental/pkg/context"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(service *service.UserService) *UserHandler {
	return &UserHandler{userService: service}
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "GetProfile")

	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		respondError(c, ctx, apperrors.ErrMissingToken, "")
		return
	}

	profile, err := h.userService.GetProfile(ctx, userID)
	if err != nil {
		respondError(c, ctx, err, "")
		return
	}

	c.JSON(http.StatusOK, constants.BuildDataResponse(profile))
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "UpdateProfile")

	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		respondError(c, ctx, apperrors.ErrMissingToken, "")
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, ctx, err)
		return
	}

	profile, err := h.userService.UpdateProfile(ctx, userID, req)
	if err != nil {
		respondError(c, ctx, err, "")
		return
	}

	c.JSON(http.StatusOK, constants.BuildMessageDataResponse(constants.MsgProfileUpdated, profile))
}

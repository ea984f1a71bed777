package handler

import (
	"net/http"
	"strconv"

	"github.com/Payphone-Digital/carrental/internal/constants"
	"github.com/Payphone-Digital/carrental/internal/service"
	ctxutil "github.com/Payphone-Digital/carrental/pkg/context"
	"github.com/Payphone-Digital/carrental/pkg/logger"
	"github.com/gin-gonic/gin"
)

type CacheHandler struct {
	cacheService *service.CacheService
	userService  *service.UserService
}

func NewCacheHandler(cacheService *service.CacheService, userService *service.UserService) *CacheHandler {
	return &CacheHandler{
		cacheService: cacheService,
		userService:  userService,
	}
}

// InvalidateUser drops the cached profile of the user in the path.
func (h *CacheHandler) InvalidateUser(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "InvalidateUserCache")

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(constants.MsgInvalidUser, nil))
		return
	}

	h.userService.InvalidateProfile(ctx, uint(id))

	logger.InfoWithContext(ctx, "User cache invalidated").
		Uint("target_user_id", uint(id)).
		Log()

	c.JSON(http.StatusOK, constants.BuildSuccessResponse(constants.MsgCacheInvalidated))
}

func (h *CacheHandler) GetCacheStats(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "GetCacheStats")

	stats, err := h.cacheService.GetCacheStats(ctx)
	if err != nil {
		respondError(c, ctx, err, "")
		return
	}

	c.JSON(http.StatusOK, constants.BuildDataResponse(stats))
}

// CacheHealth reports the cache backend status.
func (h *CacheHandler) CacheHealth(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "CacheHealth")

	status := h.cacheService.Health(ctx)
	code := http.StatusOK
	if status["status"] != "healthy" {
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, status)
}

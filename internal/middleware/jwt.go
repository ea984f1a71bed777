package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/Payphone-Digital/carrental/internal/constants"
	apperrors "github.com/Payphone-Digital/carrental/internal/errors"
	"github.com/Payphone-Digital/carrental/internal/model"
	"github.com/Payphone-Digital/carrental/internal/service"
	ctxutil "github.com/Payphone-Digital/carrental/pkg/context"
	"github.com/Payphone-Digital/carrental/pkg/logger"
	"github.com/gin-gonic/gin"
)

// UserLookup loads the current record of an authenticated user.
type UserLookup interface {
	GetByID(ctx context.Context, id uint) (*model.User, error)
}

type JWTMiddleware struct {
	jwtService *service.JWTService
	users      UserLookup
}

func NewJWTMiddleware(jwtService *service.JWTService, users UserLookup) *JWTMiddleware {
	return &JWTMiddleware{
		jwtService: jwtService,
		users:      users,
	}
}

// RequireAuth accepts only session tokens and records the caller's user id
// on both the gin and the request context.
func (m *JWTMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "middleware", "RequireAuth")

		tokenString := bearerToken(c.GetHeader(constants.HeaderAuthorization))
		if tokenString == "" {
			logger.WarnWithContext(ctx, "Missing bearer token").
				Path(c.Request.URL.Path).
				Method(c.Request.Method).
				Log()
			abortWithError(c, apperrors.ErrMissingToken)
			return
		}

		claims, err := m.jwtService.Verify(tokenString)
		if err != nil {
			logger.WarnWithContext(ctx, "Invalid bearer token").
				Path(c.Request.URL.Path).
				String("reason", service.VerifyFailureReason(err)).
				Log()
			abortWithError(c, apperrors.ErrInvalidToken)
			return
		}
		if claims.UserID == 0 {
			logger.WarnWithContext(ctx, "Bearer token is not a session token").
				Path(c.Request.URL.Path).
				Log()
			abortWithError(c, apperrors.ErrInvalidToken)
			return
		}

		c.Set(constants.GinKeyUserID, claims.UserID)
		c.Request = c.Request.WithContext(ctxutil.WithUserID(c.Request.Context(), claims.UserID))

		c.Next()
	}
}

// RequireRole must run after RequireAuth. It loads the caller and rejects
// roles outside roles with 403.
func (m *JWTMiddleware) RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "middleware", "RequireRole")

		userID, ok := CurrentUserID(c)
		if !ok {
			abortWithError(c, apperrors.ErrMissingToken)
			return
		}

		user, err := m.users.GetByID(ctx, userID)
		if err != nil {
			logger.WarnWithContext(ctx, "Role check could not load user").
				Uint("user_id", userID).
				Err(err).
				Log()
			if apperrors.ToHTTPStatus(err) == http.StatusNotFound {
				abortWithError(c, apperrors.ErrForbidden)
				return
			}
			abortWithError(c, err)
			return
		}

		if !allowed[user.Role] {
			logger.WarnWithContext(ctx, "Role not permitted").
				Uint("user_id", userID).
				String("role", user.Role).
				Path(c.Request.URL.Path).
				Log()
			abortWithError(c, apperrors.ErrForbidden)
			return
		}

		c.Set(constants.GinKeyUser, user)
		c.Next()
	}
}

// CurrentUserID returns the id stored by RequireAuth.
func CurrentUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get(constants.GinKeyUserID)
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id > 0
}

func bearerToken(header string) string {
	if !strings.HasPrefix(header, constants.BearerPrefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, constants.BearerPrefix))
}

func abortWithError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
}

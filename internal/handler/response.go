package handler

import (
	"context"
	"net/http"

	"github.com/Payphone-Digital/carrental/internal/constants"
	apperrors "github.com/Payphone-Digital/carrental/internal/errors"
	"github.com/Payphone-Digital/carrental/pkg/logger"
	"github.com/Payphone-Digital/carrental/pkg/validation"
	"github.com/gin-gonic/gin"
)

// respondError writes err as the standard error body. Internal failures
// are reported with fallback and never echo the cause.
func respondError(c *gin.Context, ctx context.Context, err error, fallback string) {
	status := apperrors.ToHTTPStatus(err)
	message := apperrors.GetErrorMessage(err)

	if status >= http.StatusInternalServerError {
		if fallback != "" && status == http.StatusInternalServerError {
			message = fallback
		}
		logger.ErrorWithContext(ctx, "Request failed").
			StatusCode(status).
			Err(err).
			Log()
	} else {
		logger.InfoWithContext(ctx, "Request rejected").
			StatusCode(status).
			String("reason", message).
			Log()
	}

	c.JSON(status, constants.BuildErrorResponse(message, nil))
}

// respondBindError reports binding and validation failures with 400.
func respondBindError(c *gin.Context, ctx context.Context, err error) {
	messages := validation.Messages(err)

	logger.InfoWithContext(ctx, "Request validation failed").
		Any("validation_errors", messages).
		Log()

	c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(messages[0], messages))
}

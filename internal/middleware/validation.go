package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/Payphone-Digital/carrental/internal/constants"
	"github.com/Payphone-Digital/carrental/pkg/logger"
	"github.com/Payphone-Digital/carrental/pkg/validation"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const maxValidatedBody = 1 << 20

// ValidationMiddleware checks JSON bodies against the binding tags of a
// request type before the handler runs.
type ValidationMiddleware struct {
	validate *validator.Validate
}

func NewValidationMiddleware() (*ValidationMiddleware, error) {
	validate := validator.New()
	validate.SetTagName("binding")
	if err := validation.RegisterCustomRules(validate); err != nil {
		return nil, err
	}
	return &ValidationMiddleware{validate: validate}, nil
}

// ValidateRequestBody decodes the body into a value from factory and
// rejects it with 400 when invalid. The body is restored for the handler.
func (m *ValidationMiddleware) ValidateRequestBody(factory func() interface{}) gin.HandlerFunc {
	return func(c *gin.Context) {
		var bodyBytes []byte
		if c.Request.Body != nil {
			var err error
			bodyBytes, err = io.ReadAll(io.LimitReader(c.Request.Body, maxValidatedBody))
			if err != nil {
				logger.GetLogger().Warn("Failed to read request body",
					zap.String("path", c.Request.URL.Path),
					zap.Error(err),
				)
				c.AbortWithStatusJSON(http.StatusBadRequest, constants.BuildErrorResponse(constants.MsgBadRequest, nil))
				return
			}
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(bodyBytes))

		request := factory()
		if err := json.Unmarshal(bodyBytes, request); err != nil {
			logger.GetLogger().Debug("Request body is not valid JSON",
				zap.String("path", c.Request.URL.Path),
				zap.Int("body_size", len(bodyBytes)),
				zap.Error(err),
			)
			c.AbortWithStatusJSON(http.StatusBadRequest, constants.BuildErrorResponse(constants.MsgBadRequest, validation.Messages(err)))
			return
		}

		if err := m.validate.Struct(request); err != nil {
			messages := validation.Messages(err)
			logger.GetLogger().Debug("Request validation failed",
				zap.String("path", c.Request.URL.Path),
				zap.Strings("validation_errors", messages),
			)
			c.AbortWithStatusJSON(http.StatusBadRequest, constants.BuildErrorResponse(messages[0], messages))
			return
		}

		c.Next()
	}
}

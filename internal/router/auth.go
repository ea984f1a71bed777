package router

import (
	"github.com/Payphone-Digital/carrental/internal/dto"
	"github.com/gin-gonic/gin"
)

func (r *Router) authRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		// Multipart form, bound by the handler
		auth.POST("/register", r.authHandler.Register)

		auth.POST("/login", r.validMw.ValidateRequestBody(func() interface{} { return &dto.LoginRequest{} }), r.authHandler.Login)
		auth.POST("/send-verification", r.validMw.ValidateRequestBody(func() interface{} { return &dto.SendVerificationRequest{} }), r.authHandler.SendVerification)
		auth.POST("/verify-phone", r.authHandler.VerifyPhone)
	}
}

package router

import (
	"github.com/Payphone-Digital/carrental/internal/dto"
	"github.com/gin-gonic/gin"
)

func (r *Router) userRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	users.Use(r.jwtMw.RequireAuth())
	{
		users.GET("/profile", r.userHandler.GetProfile)
		users.PUT("/profile", r.validMw.ValidateRequestBody(func() interface{} { return &dto.UpdateProfileRequest{} }), r.userHandler.UpdateProfile)
	}
}

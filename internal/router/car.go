package router

import (
	"github.com/Payphone-Digital/carrental/internal/dto"
	"github.com/gin-gonic/gin"
)

func (r *Router) carRoutes(rg *gin.RouterGroup) {
	cars := rg.Group("/cars")
	{
		cars.GET("", r.carHandler.Browse)
		cars.GET("/:id", r.carHandler.Get)

		protected := cars.Group("")
		protected.Use(r.jwtMw.RequireAuth())
		{
			protected.POST("", r.validMw.ValidateRequestBody(func() interface{} { return &dto.CreateCarRequest{} }), r.carHandler.Create)
			protected.GET("/my-cars", r.carHandler.ListMine)
			protected.PUT("/:id", r.validMw.ValidateRequestBody(func() interface{} { return &dto.UpdateCarRequest{} }), r.carHandler.Update)
			protected.DELETE("/:id", r.carHandler.Delete)
		}
	}
}

func (r *Router) uploadRoutes(rg *gin.RouterGroup) {
	rg.POST("/upload", r.jwtMw.RequireAuth(), r.uploadHandler.Upload)
}

package router

import (
	"path"
	"path/filepath"

	"github.com/Payphone-Digital/carrental/config"
	"github.com/Payphone-Digital/carrental/internal/constants"
	"github.com/Payphone-Digital/carrental/internal/handler"
	"github.com/Payphone-Digital/carrental/internal/middleware"
	"github.com/gin-gonic/gin"
)

type Router struct {
	authHandler   *handler.AuthHandler
	userHandler   *handler.UserHandler
	carHandler    *handler.CarHandler
	uploadHandler *handler.UploadHandler
	cacheHandler  *handler.CacheHandler
	healthHandler *handler.HealthHandler

	validMw *middleware.ValidationMiddleware
	jwtMw   *middleware.JWTMiddleware
	Config  *config.Config
}

func NewRouter(
	auth *handler.AuthHandler,
	user *handler.UserHandler,
	car *handler.CarHandler,
	upload *handler.UploadHandler,
	cache *handler.CacheHandler,
	health *handler.HealthHandler,

	validMw *middleware.ValidationMiddleware,
	jwtMw *middleware.JWTMiddleware,
	config *config.Config,
) *Router {
	return &Router{
		authHandler:   auth,
		userHandler:   user,
		carHandler:    car,
		uploadHandler: upload,
		cacheHandler:  cache,
		healthHandler: health,

		validMw: validMw,
		jwtMw:   jwtMw,
		Config:  config,
	}
}

func (r *Router) SetupRoutes() *gin.Engine {
	router := gin.New()
	router.MaxMultipartMemory = r.Config.Upload.MaxFileSize * 2

	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS())
	router.Use(middleware.ContextMiddleware("http", r.Config.App.Timeout))
	router.Use(middleware.LoggingMiddleware())

	// Car images only; license scans stay private
	images := router.Group(path.Join(constants.UploadURLPrefix, constants.UploadSubdirCars), middleware.NoSniff())
	images.Static("/", filepath.Join(r.Config.Upload.Dir, constants.UploadSubdirCars))

	api := router.Group("/api")
	{
		api.GET("/health", r.healthHandler.HealthCheck)

		r.authRoutes(api)
		r.userRoutes(api)
		r.carRoutes(api)
		r.uploadRoutes(api)
		r.cacheRoutes(api)
	}

	return router
}

// cacheRoutes defines cache management routes
func (r *Router) cacheRoutes(rg *gin.RouterGroup) {
	cache := rg.Group("/cache")
	{
		cache.GET("/health", r.cacheHandler.CacheHealth)

		admin := cache.Group("")
		admin.Use(r.jwtMw.RequireAuth(), r.jwtMw.RequireRole(constants.RoleAdmin))
		{
			admin.GET("/stats", r.cacheHandler.GetCacheStats)
			admin.DELETE("/users/:id", r.cacheHandler.InvalidateUser)
		}
	}
}

package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/medcollect/pickup-api/internal/api/handler"
	"github.com/medcollect/pickup-api/internal/api/middleware"
	"github.com/medcollect/pickup-api/internal/core/service"
	mongodb "github.com/medcollect/pickup-api/internal/infrastructure/db/mongo"
	redisdb "github.com/medcollect/pickup-api/internal/infrastructure/db/redis"
)

// NewRouter builds the Echo instance with all dependencies wired and all
// routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, jwtSecret string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("pickup"))

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	driverRepo := mongodb.NewDriverRepository(db)
	clinicRepo := mongodb.NewClinicRepository(db)
	pickupRepo := mongodb.NewPickupRepository(db)
	photoCache := redisdb.NewPhotoCache(rdb)

	// --- Services ---
	authService := service.NewAuthService(userRepo, jwtSecret, log)
	userService := service.NewUserService(userRepo, driverRepo, log)
	driverService := service.NewDriverService(driverRepo, userRepo, log)
	clinicService := service.NewClinicService(clinicRepo, log)
	pickupService := service.NewPickupService(pickupRepo, driverRepo, clinicRepo, userRepo, log)
	photoService := service.NewPhotoService(pickupRepo, photoCache, log)

	// --- Handlers ---
	userHandler := handler.NewUserHandler(userService, authService)
	driverHandler := handler.NewDriverHandler(driverService)
	clinicHandler := handler.NewClinicHandler(clinicService)
	pickupHandler := handler.NewPickupHandler(pickupService, photoService)

	auth := middleware.Auth(jwtSecret, userRepo)
	admin := middleware.RequireAdmin

	// --- Users & sessions ---
	e.POST("/users/login", userHandler.Login)
	e.POST("/users/logout", userHandler.Logout, auth)
	e.POST("/users/logoutAll", userHandler.LogoutAll, auth)
	e.GET("/users", userHandler.List, auth, admin)
	e.GET("/users/:id", userHandler.Get, auth)
	e.POST("/users", userHandler.Create, auth, admin)
	e.PATCH("/users/:id", userHandler.Update, auth)
	e.DELETE("/users/many", userHandler.DeleteMany, auth, admin)
	e.DELETE("/users/:id", userHandler.Delete, auth, admin)

	// --- Drivers ---
	e.GET("/drivers", driverHandler.List, auth, admin)
	e.GET("/drivers/user/:userId", driverHandler.GetByUser, auth)
	e.GET("/drivers/:id", driverHandler.Get, auth, admin)
	e.POST("/drivers", driverHandler.Create, auth, admin)
	e.PATCH("/drivers/:id", driverHandler.Update, auth, admin)
	e.DELETE("/drivers/many", driverHandler.DeleteMany, auth, admin)
	e.DELETE("/drivers/:id", driverHandler.Delete, auth, admin)

	// --- Clinics ---
	e.GET("/clinics", clinicHandler.List, auth)
	e.GET("/clinics/:id", clinicHandler.Get, auth)
	e.POST("/clinics", clinicHandler.Create, auth, admin)
	e.PATCH("/clinics/:id", clinicHandler.Update, auth)
	e.DELETE("/clinics/many", clinicHandler.DeleteMany, auth, admin)
	e.DELETE("/clinics/:id", clinicHandler.Delete, auth, admin)

	// --- Pickups ---
	e.GET("/pickUps", pickupHandler.List, auth, admin)
	e.GET("/pickUps/driver", pickupHandler.ListForDriver, auth)
	e.GET("/pickUps/:id", pickupHandler.Get, auth)
	e.POST("/pickUps", pickupHandler.Create, auth, admin)
	e.PATCH("/pickUps/:id", pickupHandler.Update, auth)
	e.DELETE("/pickUps/many", pickupHandler.DeleteMany, auth, admin)
	e.DELETE("/pickUps/:id", pickupHandler.Delete, auth, admin)
	e.POST("/pickUps/:id/photo", pickupHandler.UploadPhoto, auth)
	e.GET("/pickUps/:id/photo", pickupHandler.GetPhoto, auth)
	e.DELETE("/pickUps/:id/photo", pickupHandler.DeletePhoto, auth)

	// --- Probes & metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}

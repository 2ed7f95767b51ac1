package routes

import (
	"salonease-backend/config"
	"salonease-backend/controllers"
	"salonease-backend/models"
	"salonease-backend/services"
	"salonease-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter(cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(config.RequestLogger())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	bookingSvc := services.NewBookingService(config.DB, config.Log)
	authCtrl := controllers.NewAuthController(cfg)
	bookingCtrl := controllers.NewBookingController(bookingSvc)
	reviewCtrl := controllers.NewReviewController(bookingSvc)
	uploadCtrl := controllers.NewUploadController(cfg)

	authed := utils.AuthMiddleware(cfg)

	r.GET("/api/health", controllers.Health)
	r.Static("/uploads", cfg.UploadPath)

	auth := r.Group("/api/auth")
	{
		auth.POST("/register", authCtrl.Register)
		auth.POST("/login", authCtrl.Login)
		auth.POST("/logout", authed, authCtrl.Logout)
		auth.GET("/profile", authed, authCtrl.Profile)
	}

	users := r.Group("/api/users")
	users.Use(authed)
	{
		users.GET("/me", controllers.GetMe)
		users.PUT("/me", controllers.UpdateProfile)
		users.DELETE("/me", controllers.DeactivateAccount)
		users.PUT("/change-password", controllers.ChangePassword)
		users.GET("", utils.RequireRoles(models.RoleAdmin), controllers.GetAllUsers)
		users.GET("/:id", utils.RequireRoles(models.RoleAdmin), controllers.GetUserByID)
	}

	salons := r.Group("/api/salons")
	{
		salons.GET("", controllers.GetAllSalons)
		salons.GET("/owner", authed, utils.RequireRoles(models.RoleSalonOwner), controllers.GetSalonByOwner)
		salons.GET("/:id", controllers.GetSalonByID)
		salons.POST("", authed, utils.RequireRoles(models.RoleSalonOwner), controllers.CreateSalon)
		salons.PUT("/:id", authed, utils.RequireRoles(models.RoleSalonOwner, models.RoleAdmin), controllers.UpdateSalon)
		salons.DELETE("/:id", authed, utils.RequireRoles(models.RoleSalonOwner, models.RoleAdmin), controllers.DeleteSalon)
	}

	svcs := r.Group("/api/services")
	{
		svcs.GET("/salon", authed, utils.RequireRoles(models.RoleSalonOwner), controllers.GetServicesByCurrentSalon)
		svcs.GET("/salon/:salonId", controllers.GetServicesBySalon)
		svcs.GET("/:id", controllers.GetServiceByID)
		svcs.POST("", authed, utils.RequireRoles(models.RoleSalonOwner), controllers.CreateService)
		svcs.PUT("/:id", authed, utils.RequireRoles(models.RoleSalonOwner), controllers.UpdateService)
		svcs.DELETE("/:id", authed, utils.RequireRoles(models.RoleSalonOwner), controllers.DeleteService)
	}

	bookings := r.Group("/api/bookings")
	bookings.Use(authed)
	{
		bookings.POST("", utils.RequireRoles(models.RoleCustomer), bookingCtrl.Create)
		bookings.GET("/user", utils.RequireRoles(models.RoleCustomer), bookingCtrl.ListForUser)
		bookings.GET("/salon", utils.RequireRoles(models.RoleSalonOwner), bookingCtrl.ListForCurrentSalon)
		bookings.GET("/salon/:salonId", utils.RequireRoles(models.RoleSalonOwner, models.RoleAdmin), bookingCtrl.ListForSalon)
		bookings.GET("/:id", bookingCtrl.Get)
		bookings.PUT("/:id", bookingCtrl.Update)
		bookings.PATCH("/:id/status", utils.RequireRoles(models.RoleSalonOwner, models.RoleAdmin), bookingCtrl.UpdateStatus)
		bookings.DELETE("/:id", bookingCtrl.Cancel)
	}

	reviews := r.Group("/api/reviews")
	{
		reviews.GET("/salon/:salonId", reviewCtrl.ListForSalon)
		reviews.GET("/service/:serviceId", reviewCtrl.ListForService)
		reviews.POST("", authed, utils.RequireRoles(models.RoleCustomer), reviewCtrl.Add)
		reviews.PUT("/:bookingId", authed, utils.RequireRoles(models.RoleCustomer), reviewCtrl.Update)
		reviews.DELETE("/:bookingId", authed, reviewCtrl.Delete)
	}

	uploads := r.Group("/api/uploads")
	uploads.Use(authed)
	{
		uploads.POST("/avatar", uploadCtrl.Avatar)
		uploads.POST("/salon/:salonId", uploadCtrl.SalonImage)
		uploads.POST("/image", uploadCtrl.Image)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{"success": false, "message": "Route " + c.Request.URL.Path + " not found"})
	})

	return r
}

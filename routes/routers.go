package routes

import (
	"net/http"

	"bimber/constants"
	"bimber/controllers"
	_ "bimber/docs"
	middlewares "bimber/middleware"
	"bimber/services"
	"bimber/services/logger"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Dependencies là các service đã khởi tạo mà router cần
type Dependencies struct {
	Tokens   *services.TokenService
	Auth     *services.AuthService
	Users    *services.UserService
	Payments *services.PaymentService
	Hotels   *services.HotelService
	Rooms    *services.RoomService
	Bookings *services.BookingService
	Comments *services.CommentService
	Melody   *melody.Melody
	Limiter  *middlewares.RateLimiter
	Logger   logger.Logger
}

func SetupRoutes(router *gin.Engine, deps Dependencies) {
	authController := controllers.NewAuthController(deps.Auth)
	userController := controllers.NewAccountController(deps.Users, deps.Payments, constants.RoleUser)
	adminController := controllers.NewAccountController(deps.Users, deps.Payments, constants.RoleAdmin)
	anyAccount := controllers.NewAccountController(deps.Users, deps.Payments, "")
	hotelController := controllers.NewHotelController(deps.Hotels)
	roomController := controllers.NewRoomController(deps.Rooms)
	bookingController := controllers.NewBookingController(deps.Bookings)
	commentController := controllers.NewCommentController(deps.Comments)

	authed := middlewares.AuthMiddleware(deps.Tokens)
	adminOnly := middlewares.AuthMiddleware(deps.Tokens, constants.RoleAdmin)

	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if deps.Melody != nil {
		wsController := controllers.NewWebSocketController(deps.Melody, deps.Tokens, deps.Logger)
		router.GET("/ws", wsController.Connect)
	}

	v1 := router.Group("/api/v1")
	if deps.Limiter != nil {
		v1.Use(deps.Limiter.Middleware())
	}

	auth := v1.Group("/auth")
	auth.POST("/register", authController.Register)
	auth.POST("/register/admin", authController.RegisterAdmin)
	auth.GET("/verify", authController.Verify)
	auth.POST("/resend-verification", authController.ResendVerification)
	auth.POST("/login", authController.Login)
	auth.POST("/google", authController.GoogleLogin)
	auth.DELETE("/logout", authed, authController.Logout)

	users := v1.Group("/users", authed)
	users.GET("", middlewares.RoleMiddleware(constants.RoleAdmin), anyAccount.ListAccounts)
	users.GET("/:id", userController.GetAccount)
	users.PUT("/:id", userController.EditAccount)
	users.DELETE("/:id", userController.DeleteAccount)
	users.POST("/:id/fund", anyAccount.FundAccount)
	users.GET("/:id/payments", anyAccount.Payments)
	users.GET("/:id/bookings", bookingController.ListByUser)
	users.GET("/:id/comments", commentController.ByUser)

	admins := v1.Group("/admins", adminOnly)
	admins.GET("/:id", adminController.GetAccount)
	admins.PUT("/:id", adminController.EditAccount)
	admins.DELETE("/:id", adminController.DeleteAccount)

	hotels := v1.Group("/hotels")
	hotels.GET("", hotelController.ListHotels)
	hotels.GET("/:id", hotelController.GetHotel)
	hotels.POST("", adminOnly, hotelController.CreateHotel)
	hotels.PUT("/:id", adminOnly, hotelController.EditHotel)
	hotels.DELETE("/:id", adminOnly, hotelController.DeleteHotel)
	hotels.POST("/:id/pictures", adminOnly, hotelController.UploadPictures)

	hotels.GET("/:id/rooms", roomController.RoomsByHotel)
	hotels.POST("/:id/rooms", adminOnly, roomController.CreateRoom)
	hotels.PUT("/:id/rooms/:roomId/activate", adminOnly, roomController.Activate)
	hotels.PUT("/:id/rooms/:roomId/deactivate", adminOnly, roomController.Deactivate)

	hotels.GET("/:id/comments", commentController.ByHotel)
	hotels.POST("/:id/comments", authed, commentController.AddComment)
	hotels.DELETE("/:id/comments/:commentId", authed, commentController.DeleteComment)

	states := v1.Group("/states/:state/hotels")
	states.GET("/count", hotelController.CountInState)
	states.GET("/most-booked", hotelController.MostBooked)

	rooms := v1.Group("/rooms")
	rooms.GET("/search", roomController.Search)
	rooms.GET("/:roomId/availability", roomController.IsAvailable)
	rooms.PUT("/:roomId", adminOnly, roomController.EditRoom)
	rooms.DELETE("/:roomId", adminOnly, roomController.DeleteRoom)
	rooms.POST("/:roomId/pictures", adminOnly, roomController.UploadPictures)

	bookings := v1.Group("/bookings", authed)
	bookings.POST("", bookingController.BookRoom)
	bookings.GET("", middlewares.RoleMiddleware(constants.RoleAdmin), bookingController.ListAll)
	bookings.GET("/:id", bookingController.GetBooking)
	bookings.PUT("/:id", bookingController.UpdateBooking)
	bookings.POST("/:id/cancel", bookingController.CancelBooking)
}

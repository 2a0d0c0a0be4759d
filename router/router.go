package router

import (
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Waqasabid99/rms-backend/controllers"
	"github.com/Waqasabid99/rms-backend/middlewares"
)

// Deps carries everything the route table needs. Stores are interfaces
// so tests can plug in fakes.
type Deps struct {
	Menu         controllers.MenuStore
	Reservations controllers.ReservationStore
	Takeaway     controllers.TakeawayStore
	Delivery     controllers.DeliveryStore
	DB           *gorm.DB
	Verifier     *middlewares.IdentityVerifier
}

func SetupRouter(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	// Global limit must be attached before any route is registered; gin
	// snapshots a route's handler chain at registration time.
	rateLimiter := middlewares.NewRateLimiter(50, 1)
	r.Use(rateLimiter.RateLimit())

	strict := os.Getenv("STRICT_STATUS_TRANSITIONS") == "true"

	menuCtrl := controllers.NewMenuController(deps.Menu)
	reservationCtrl := controllers.NewReservationController(deps.Reservations, strict)
	takeawayCtrl := controllers.NewTakeawayController(deps.Takeaway, strict)
	deliveryCtrl := controllers.NewDeliveryController(deps.Delivery, strict)
	tokenCtrl := controllers.NewTokenController()
	authCtrl := controllers.NewAuthController(deps.DB)
	userCtrl := controllers.NewUserController(deps.DB)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	// MENU
	menu := api.Group("/menu")
	{
		menu.GET("/", menuCtrl.GetAllMenuItems)
		menu.GET("/stats", menuCtrl.GetMenuStats)
		menu.GET("/:id", menuCtrl.GetMenuItemByID)
		menu.POST("/", menuCtrl.CreateMenuItem)
		menu.PUT("/:id", menuCtrl.UpdateMenuItem)
		menu.PATCH("/:id", menuCtrl.UpdateMenuItemAvailability)
		menu.DELETE("/:id", menuCtrl.DeleteMenuItem)
	}

	// RESERVATIONS
	reservations := api.Group("/reservations")
	{
		reservations.GET("/", reservationCtrl.GetAllReservations)
		reservations.GET("/stats", reservationCtrl.GetReservationStats)
		reservations.GET("/search/user", reservationCtrl.GetReservationsByUser)
		reservations.GET("/:id", reservationCtrl.GetReservationByID)
		reservations.POST("/", reservationCtrl.CreateReservation)
		reservations.PUT("/:id", reservationCtrl.UpdateReservation)
		reservations.PATCH("/:id/status", reservationCtrl.UpdateReservationStatus)
		reservations.PATCH("/email/:email", reservationCtrl.UpdateReservationByEmail)
		reservations.PATCH("/:id", reservationCtrl.UpdateReservationByID)
		reservations.DELETE("/:id", reservationCtrl.DeleteReservation)
	}

	// TAKEAWAY ORDERS
	takeaway := api.Group("/takeaway")
	{
		takeaway.GET("/", takeawayCtrl.GetAllOrders)
		takeaway.GET("/stats", takeawayCtrl.GetOrderStats)
		takeaway.GET("/:id", takeawayCtrl.GetOrderByID)
		takeaway.POST("/", takeawayCtrl.CreateOrder)
		takeaway.PUT("/:id", takeawayCtrl.UpdateOrder)
		takeaway.PATCH("/:id/status", takeawayCtrl.UpdateOrderStatus)
		takeaway.PATCH("/email/:email", takeawayCtrl.UpdateOrderByEmail)
		takeaway.PATCH("/:id", takeawayCtrl.UpdateOrderByID)
		takeaway.DELETE("/:id", takeawayCtrl.DeleteOrder)

		// Requires a verified external identity.
		takeaway.GET("/search/user", deps.Verifier.Middleware(), takeawayCtrl.GetOrdersByUser)
	}

	api.POST("/getToken", deps.Verifier.Middleware(), tokenCtrl.GetToken)

	// DELIVERY ORDERS
	delivery := api.Group("/delivery")
	{
		delivery.GET("/", deliveryCtrl.GetAllOrders)
		delivery.GET("/stats", deliveryCtrl.GetOrderStats)
		delivery.GET("/search/user", deliveryCtrl.GetOrdersByUser)
		delivery.GET("/:id", deliveryCtrl.GetOrderByID)
		delivery.POST("/", deliveryCtrl.CreateOrder)
		delivery.PUT("/:id", deliveryCtrl.UpdateOrder)
		delivery.PATCH("/:id/status", deliveryCtrl.UpdateOrderStatus)
		delivery.PATCH("/email/:email", deliveryCtrl.UpdateOrderByEmail)
		delivery.PATCH("/:id", deliveryCtrl.UpdateOrderByID)
		delivery.DELETE("/:id", deliveryCtrl.DeleteOrder)
	}

	// STAFF AUTH
	auth := api.Group("/auth")
	{
		auth.POST("/login", middlewares.NewStrictRateLimiter(), authCtrl.Login)

		session := auth.Group("/")
		session.Use(middlewares.SessionAuth(deps.DB))
		{
			session.GET("/profile", authCtrl.GetProfile)
			session.POST("/change-password", authCtrl.ChangePassword)
		}
	}

	// USER MANAGEMENT (admin only)
	users := api.Group("/users")
	users.Use(middlewares.SessionAuth(deps.DB), middlewares.RequireRoles("admin"))
	{
		users.GET("/", userCtrl.GetAllUsers)
		users.GET("/:id", userCtrl.GetUserByID)
		users.POST("/", userCtrl.CreateUser)
		users.PUT("/:id", userCtrl.UpdateUser)
		users.DELETE("/:id", userCtrl.DeleteUser)
	}

	return r
}

package api

import (
	stdhttp "net/http"

	intconfig "busbooking/internal/config"
	h "busbooking/internal/http/handlers"
	"busbooking/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	_ = r.SetTrustedProxies(nil)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"message": "route not found",
			"path":    c.Request.URL.Path,
			"method":  c.Request.Method,
		})
	})

	auth := middleware.RequireAuth([]byte(env.JWTSecret))
	admin := middleware.RequireRoles("admin")

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		api.POST("/auth/signup", h.Signup(env))
		api.POST("/auth/login", h.Login(env))

		api.GET("/routes", h.ListRoutes)
		api.POST("/routes", auth, admin, h.CreateRoute)
		api.DELETE("/routes/:id", auth, admin, h.DeleteRoute)
		api.GET("/routes/:id/seats", auth, h.ListRouteSeats)

		api.POST("/book-seat", auth, h.BookSeat(env))
		api.GET("/my-bookings", auth, h.MyBookings)

		bookings := api.Group("/bookings", auth)
		bookings.DELETE("/:seatId", h.CancelBooking)
		bookings.GET("/:seatId/e-ticket", h.BookingETicket)
	}

	return r
}

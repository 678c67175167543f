// README: HTTP route table.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taxi/internal/http/handlers"
	"taxi/internal/http/middleware"
)

func registerRoutes(r *gin.Engine, deps ServerDeps, loginLimiter *middleware.IPLimiter) {
	accountHandler := handlers.NewAccountHandler(deps.Accounts, deps.Sessions)
	bookingHandler := handlers.NewBookingHandler(deps.Bookings)
	adminHandler := handlers.NewAdminHandler(deps.Bookings, deps.Drivers)

	limiter := middleware.RateLimit(loginLimiter)
	auth := middleware.Auth(deps.Sessions)

	api := r.Group("/api")
	api.POST("/accounts", accountHandler.SignUp)
	api.POST("/sessions", limiter, accountHandler.Login)
	api.POST("/admin/sessions", limiter, accountHandler.AdminLogin)
	api.GET("/fares/estimate", bookingHandler.Estimate)

	authed := api.Group("", auth)
	authed.DELETE("/sessions", accountHandler.Logout)
	authed.POST("/bookings", bookingHandler.Book)
	authed.GET("/bookings", bookingHandler.History)
	authed.GET("/bookings/:id/receipt.pdf", bookingHandler.Receipt)
	authed.GET("/admin/bookings", adminHandler.Bookings)
	authed.GET("/admin/drivers", adminHandler.Drivers)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	if deps.MetricsHandler != nil {
		r.GET("/metrics", gin.WrapH(deps.MetricsHandler))
	}
}

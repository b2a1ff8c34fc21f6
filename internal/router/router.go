// Package router registers the HTTP routes of the booking API.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/train-seat-booking/internal/config"
	"github.com/iliyamo/train-seat-booking/internal/handler"
	"github.com/iliyamo/train-seat-booking/internal/middleware"
	"github.com/iliyamo/train-seat-booking/internal/model"
)

// Deps bundles what the routes need. Redis may be nil, in which case the
// cache and the rate limiter pass requests through.
type Deps struct {
	Seats     *handler.SeatHandler
	Bookings  *handler.BookingHandler
	Auth      *handler.AuthHandler
	JWTSecret string
	Redis     *redis.Client
	Cache     config.CacheConfig
	RateLimit config.RateLimitConfig
}

// RegisterRoutes registers routes that do not require authentication.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterPublic registers the read-only seat map endpoints. Only the
// layout is cached: it is fixed for the life of the process, while seat
// state changes with every booking.
func RegisterPublic(e *echo.Echo, d Deps) {
	g := e.Group("/v1")
	g.GET("/layout", d.Seats.GetLayout, middleware.NewRedisCache(d.Cache, d.Redis))
	g.GET("/rows", d.Seats.ListRows)
	g.GET("/rows/:row/seats", d.Seats.GetRowSeats)
	g.GET("/seats", d.Seats.GetSeatMap)
	g.GET("/stats", d.Seats.GetStats)
}

// RegisterAuth registers the login endpoint.
func RegisterAuth(e *echo.Echo, d Deps) {
	e.POST("/v1/auth/login", d.Auth.Login)
}

// RegisterBookings registers the authenticated booking endpoints.
// Customers and operators may book and list their own bookings; only
// operators see the whole journal. Middleware is attached per route so
// unknown /v1 paths still answer 404 instead of 401.
func RegisterBookings(e *echo.Echo, d Deps) {
	auth := func(extra ...echo.MiddlewareFunc) []echo.MiddlewareFunc {
		return append([]echo.MiddlewareFunc{
			middleware.JWTAuth(d.JWTSecret),
			middleware.RequireRole(model.RoleCustomer, model.RoleOperator),
		}, extra...)
	}
	operator := middleware.RequireRole(model.RoleOperator)

	g := e.Group("/v1")
	g.POST("/bookings", d.Bookings.Book, auth(middleware.NewTokenBucket(d.RateLimit, d.Redis))...)
	g.GET("/my-bookings", d.Bookings.MyBookings, auth()...)
	g.GET("/bookings", d.Bookings.ListBookings, auth(operator)...)
	g.GET("/bookings/:id", d.Bookings.GetBooking, auth(operator)...)
}

// New builds an Echo instance with every route registered.
func New(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.RequestLogger())
	RegisterRoutes(e)
	RegisterPublic(e, d)
	RegisterAuth(e, d)
	RegisterBookings(e, d)
	return e
}

// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"yatra/internal/delivery/http/middleware"
	"yatra/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler      *handler.UserHandler
	ProximityHandler *handler.ProximityHandler
	LocationHandler  *handler.LocationHandler
	BookingHandler   *handler.BookingHandler
	ChatHandler      *handler.ChatHandler
	PlaceHandler     *handler.PlaceHandler
	CurrencyHandler  *handler.CurrencyHandler
	TranslateHandler *handler.TranslateHandler
	AuthMiddleware   *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler      *handler.UserHandler
	proximityHandler *handler.ProximityHandler
	locationHandler  *handler.LocationHandler
	bookingHandler   *handler.BookingHandler
	chatHandler      *handler.ChatHandler
	placeHandler     *handler.PlaceHandler
	currencyHandler  *handler.CurrencyHandler
	translateHandler *handler.TranslateHandler
	authMiddleware   *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:      params.UserHandler,
		proximityHandler: params.ProximityHandler,
		locationHandler:  params.LocationHandler,
		bookingHandler:   params.BookingHandler,
		chatHandler:      params.ChatHandler,
		placeHandler:     params.PlaceHandler,
		currencyHandler:  params.CurrencyHandler,
		translateHandler: params.TranslateHandler,
		authMiddleware:   params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.userHandler.Register)
		authGroup.POST("/login", r.userHandler.Login)
	}

	// Public discovery routes
	placeGroup := e.Group("/places")
	{
		placeGroup.GET("", r.placeHandler.SearchPlaces)
		placeGroup.GET("/city/:city", r.placeHandler.ListPlacesByCity)
		placeGroup.GET("/:id", r.placeHandler.GetPlace)
	}

	currencyGroup := e.Group("/currency")
	{
		currencyGroup.GET("/convert", r.currencyHandler.Convert)
		currencyGroup.GET("/rates", r.currencyHandler.Rates)
	}

	translateGroup := e.Group("/translate")
	{
		translateGroup.POST("", r.translateHandler.Translate)
		translateGroup.GET("/phrasebook/:lang", r.translateHandler.Phrasebook)
		translateGroup.GET("/languages", r.translateHandler.Languages)
	}

	// User routes that require authentication
	userGroup := e.Group("/user")
	userGroup.Use(r.authMiddleware.Authenticate) // Apply JWT authentication middleware
	{
		userGroup.GET("/profile", r.userHandler.GetProfile)
		userGroup.POST("/devices", r.userHandler.RegisterDevice)
		userGroup.GET("/devices", r.userHandler.ListDevices)
		userGroup.DELETE("/devices/:id", r.userHandler.RemoveDevice)
	}

	// Proximity tracking routes
	proximityGroup := e.Group("/proximity")
	proximityGroup.Use(r.authMiddleware.Authenticate)
	{
		proximityGroup.POST("/start", r.proximityHandler.StartTracking)
		proximityGroup.POST("/stop", r.proximityHandler.StopTracking)
		proximityGroup.POST("/refresh", r.proximityHandler.RefreshLocation)
		proximityGroup.GET("/state", r.proximityHandler.GetState)
		proximityGroup.GET("/settings", r.proximityHandler.GetSettings)
		proximityGroup.PATCH("/settings", r.proximityHandler.UpdateSettings)
		proximityGroup.DELETE("/notified", r.proximityHandler.ClearNotifiedPlaces)
	}

	// Device location feed
	locationGroup := e.Group("/location")
	locationGroup.Use(r.authMiddleware.Authenticate)
	{
		locationGroup.POST("/sample", r.locationHandler.ReportSample)
		locationGroup.POST("/error", r.locationHandler.ReportError)
	}

	// Booking routes
	bookingGroup := e.Group("/bookings")
	bookingGroup.Use(r.authMiddleware.Authenticate)
	{
		bookingGroup.POST("/quotes", r.bookingHandler.QuoteFares)
		bookingGroup.POST("", r.bookingHandler.CreateBooking)
		bookingGroup.GET("", r.bookingHandler.ListBookings)
		bookingGroup.GET("/:id", r.bookingHandler.GetBooking)
		bookingGroup.POST("/:id/cancel", r.bookingHandler.CancelBooking)
		bookingGroup.GET("/:id/qrcode", r.bookingHandler.BookingQRCode)
		bookingGroup.GET("/:id/itinerary", r.bookingHandler.ItineraryPDF)
	}

	// Assistant routes
	chatGroup := e.Group("/chat")
	chatGroup.Use(r.authMiddleware.Authenticate)
	{
		chatGroup.POST("", r.chatHandler.Reply)
		chatGroup.GET("/ws", r.chatHandler.Stream)
	}
}

// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"prostore/internal/delivery/http/middleware"
	"prostore/internal/delivery/http/router/handler"
	"prostore/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler    *handler.UserHandler
	CartHandler    *handler.CartHandler
	ProductHandler *handler.ProductHandler
	OrderHandler   *handler.OrderHandler
	ReviewHandler  *handler.ReviewHandler
	WebhookHandler *handler.WebhookHandler

	AuthMiddleware        *middleware.AuthMiddleware
	SessionCartMiddleware *middleware.SessionCartMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	params RouterParams
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{params: params}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	auth := r.params.AuthMiddleware
	session := r.params.SessionCartMiddleware

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Payment provider callbacks, no session or auth
	e.POST("/webhooks/stripe", r.params.WebhookHandler.HandleStripe)

	// Auth routes carry the session cart identity so sign-in can adopt it
	authGroup := e.Group("/auth", session.EnsureSessionCart)
	{
		authGroup.POST("/register", r.params.UserHandler.Register)
		authGroup.POST("/login", r.params.UserHandler.Login)
	}

	// Catalog routes, open to everyone
	productGroup := e.Group("/products")
	{
		productGroup.GET("/latest", r.params.ProductHandler.GetLatest)
		productGroup.GET("/featured", r.params.ProductHandler.GetFeatured)
		productGroup.GET("/search", r.params.ProductHandler.Search)
		productGroup.GET("/categories", r.params.ProductHandler.ListCategories)
		productGroup.GET("/slug/:slug", r.params.ProductHandler.GetBySlug)
		productGroup.GET("/slug/:slug/qr", r.params.ProductHandler.QRCode)
		productGroup.GET("/:productId/reviews", r.params.ReviewHandler.ListForProduct)
	}

	// Cart routes work for guests and signed-in users alike
	cartGroup := e.Group("/cart", session.EnsureSessionCart)
	cartGroup.Use(auth.OptionalAuthenticate)
	{
		cartGroup.GET("", r.params.CartHandler.GetCart)
		cartGroup.POST("/items", r.params.CartHandler.AddItem)
		cartGroup.DELETE("/items/:productId", r.params.CartHandler.RemoveItem)
	}

	// User routes that require authentication
	userGroup := e.Group("/user")
	userGroup.Use(auth.Authenticate)
	{
		userGroup.GET("/profile", r.params.UserHandler.GetProfile)
		userGroup.PUT("/profile", r.params.UserHandler.UpdateProfile)
		userGroup.PUT("/address", r.params.UserHandler.UpdateShippingAddress)
		userGroup.PUT("/payment-method", r.params.UserHandler.UpdatePaymentMethod)
	}

	// Order routes that require authentication
	orderGroup := e.Group("/orders")
	orderGroup.Use(auth.Authenticate)
	{
		orderGroup.POST("", r.params.OrderHandler.Create)
		orderGroup.GET("/mine", r.params.OrderHandler.ListMine)
		orderGroup.GET("/:id", r.params.OrderHandler.Get)
		orderGroup.POST("/:id/paypal", r.params.OrderHandler.CreatePayPalOrder)
		orderGroup.POST("/:id/paypal/capture", r.params.OrderHandler.ApprovePayPalOrder)
	}

	// Review routes that require authentication
	reviewGroup := e.Group("/reviews")
	reviewGroup.Use(auth.Authenticate)
	{
		reviewGroup.POST("", r.params.ReviewHandler.Upsert)
		reviewGroup.GET("/mine/:productId", r.params.ReviewHandler.GetMine)
	}

	// Admin routes require authentication and the "admin" role
	adminGroup := e.Group("/admin")
	adminGroup.Use(auth.Authenticate)
	adminGroup.Use(auth.RequireRole(entity.RoleAdmin))
	{
		adminGroup.GET("/overview", r.params.OrderHandler.Summary)

		adminGroup.GET("/products", r.params.ProductHandler.Search)
		adminGroup.GET("/products/:id", r.params.ProductHandler.GetByID)
		adminGroup.POST("/products", r.params.ProductHandler.Create)
		adminGroup.PUT("/products/:id", r.params.ProductHandler.Update)
		adminGroup.DELETE("/products/:id", r.params.ProductHandler.Delete)

		adminGroup.GET("/orders", r.params.OrderHandler.List)
		adminGroup.PUT("/orders/:id/pay", r.params.OrderHandler.MarkPaid)
		adminGroup.PUT("/orders/:id/deliver", r.params.OrderHandler.MarkDelivered)
		adminGroup.DELETE("/orders/:id", r.params.OrderHandler.Delete)

		adminGroup.GET("/users", r.params.UserHandler.ListUsers)
		adminGroup.PUT("/users/:id", r.params.UserHandler.UpdateUser)
		adminGroup.DELETE("/users/:id", r.params.UserHandler.DeleteUser)
	}
}

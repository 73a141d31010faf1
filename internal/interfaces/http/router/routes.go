package router

import (
	"github.com/gin-gonic/gin"
	"github.com/toystore/backend/internal/interfaces/http/handler"
)

// StoreRoutes registers the storefront API surface: public catalog,
// authentication, cart, orders, and the admin endpoints.
type StoreRoutes struct {
	Products  *handler.ProductHandler
	Auth      *handler.AuthHandler
	Cart      *handler.CartHandler
	Orders    *handler.OrderHandler
	Users     *handler.UserHandler
	Analytics *handler.AnalyticsHandler

	// RequireAuth guards endpoints that need a signed-in user
	RequireAuth gin.HandlerFunc
	// RequireAdmin guards endpoints reserved for administrators.
	// It runs after RequireAuth.
	RequireAdmin gin.HandlerFunc
}

// RegisterRoutes implements RouteRegistrar
func (r *StoreRoutes) RegisterRoutes(api *gin.RouterGroup) {
	// Public catalog
	products := api.Group("/products")
	{
		products.GET("", r.Products.List)
		products.GET("/featured", r.Products.Featured)
		products.GET("/:id", r.Products.Get)
	}

	// Authentication
	auth := api.Group("/auth")
	{
		auth.POST("/register", r.Auth.Register)
		auth.POST("/login", r.Auth.Login)
		auth.POST("/logout", r.RequireAuth, r.Auth.Logout)
		auth.GET("/me", r.RequireAuth, r.Auth.Me)
		auth.PUT("/me", r.RequireAuth, r.Auth.UpdateProfile)
	}

	// Shopping cart
	cart := api.Group("/cart", r.RequireAuth)
	{
		cart.GET("", r.Cart.Get)
		cart.DELETE("", r.Cart.Clear)
		cart.POST("/items", r.Cart.AddItem)
		cart.PUT("/items/:id", r.Cart.UpdateItem)
		cart.DELETE("/items/:id", r.Cart.RemoveItem)
	}

	// Customer orders
	orders := api.Group("/orders", r.RequireAuth)
	{
		orders.POST("", r.Orders.Place)
		orders.GET("", r.Orders.ListMine)
		orders.GET("/:id", r.Orders.GetMine)
	}

	// Admin surface
	admin := api.Group("/admin", r.RequireAuth, r.RequireAdmin)
	{
		admin.GET("/products", r.Products.List)
		admin.POST("/products", r.Products.Create)
		admin.PUT("/products/:id", r.Products.Update)
		admin.DELETE("/products/:id", r.Products.Delete)

		admin.GET("/orders", r.Orders.List)
		admin.GET("/orders/stats", r.Orders.Stats)
		admin.GET("/orders/:id", r.Orders.Get)
		admin.PUT("/orders/:id/status", r.Orders.UpdateStatus)

		admin.GET("/users", r.Users.List)
		admin.GET("/users/stats", r.Users.Stats)
		admin.GET("/users/:id", r.Users.Get)
		admin.PATCH("/users/:id", r.Users.Update)
		admin.DELETE("/users/:id", r.Users.Delete)

		admin.GET("/analytics/dashboard", r.Analytics.Dashboard)
		admin.GET("/analytics/sales", r.Analytics.Sales)
		admin.GET("/analytics/revenue", r.Analytics.Revenue)
		admin.GET("/analytics/products", r.Analytics.Products)
	}
}

// SystemRoutes registers health and liveness endpoints
type SystemRoutes struct {
	System *handler.SystemHandler
}

// RegisterRoutes implements RouteRegistrar
func (r *SystemRoutes) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/health", r.System.Health)
	api.GET("/ping", r.System.Ping)
}

package routes

import (
	"bookstore-api/handlers"

	"github.com/gin-gonic/gin"
)

// SetupRoutes registers all endpoints. Authentication and authorization run
// in the global middleware chain (gateway + policy table), so routes are
// registered without per-group guards.
func SetupRoutes(r *gin.Engine) {
	// ── Users ──────────────────────────────────────────────────────
	r.POST("/user/register", handlers.Register)
	r.POST("/user/login", handlers.Login)
	r.POST("/user/refresh", handlers.Refresh)
	r.GET("/user/me", handlers.Me)
	r.GET("/user/:id", handlers.GetUser)
	r.PUT("/user/:id/profile", handlers.UpdateProfile)
	r.DELETE("/user/:id", handlers.DeleteUser)
	r.GET("/users", handlers.ListUsers)

	// ── Catalog ────────────────────────────────────────────────────
	r.GET("/books", handlers.ListBooks)
	r.GET("/books/:id", handlers.GetBook)

	// ── Cart ───────────────────────────────────────────────────────
	r.POST("/cart/add", handlers.AddToCart)
	r.GET("/cart", handlers.GetCart)
	r.DELETE("/cart/:id", handlers.RemoveCartItem)

	// ── Orders ─────────────────────────────────────────────────────
	r.POST("/orders/place", handlers.PlaceOrder)
	r.GET("/orders/mine", handlers.MyOrders)
	r.GET("/orders/user/:id", handlers.UserOrders)
	r.GET("/orders/:id", handlers.GetOrder)
	r.PUT("/orders/:id/cancel", handlers.CancelOrder)
	r.DELETE("/orders/:id", handlers.DeleteOrder)

	// ── Delivery agents ────────────────────────────────────────────
	r.GET("/delivery/available", handlers.AvailableOrders)
	r.POST("/delivery/assign", handlers.AssignOrder)
	r.GET("/delivery/assigned", handlers.AssignedOrders)
	r.GET("/delivery/orders/:orderId", handlers.DeliveryOrder)
	r.POST("/delivery/status/:orderId/:status", handlers.DeliveryUpdateStatus)

	// ── Admin ──────────────────────────────────────────────────────
	r.GET("/admin/orders", handlers.AdminAllOrders)
	r.PUT("/admin/orders/:id/status", handlers.AdminForceOrderStatus)
	r.POST("/admin/books", handlers.CreateBook)
	r.POST("/admin/books/bulk", handlers.BulkCreateBooks)
	r.POST("/admin/books/upload", handlers.UploadBookImage)
	r.PUT("/admin/books/:id", handlers.UpdateBook)
	r.DELETE("/admin/books/:id", handlers.DeleteBook)

	// ── Payments ───────────────────────────────────────────────────
	r.POST("/payment/create-order", handlers.CreatePaymentOrder)
	r.POST("/payment/verify", handlers.VerifyPayment)

	// ── Docs ───────────────────────────────────────────────────────
	r.GET("/state-machine", handlers.GetStateMachineInfo)
}

package handlers

import (
	"net/http"

	"bookstore-api/middleware"
	"bookstore-api/models"

	"github.com/gin-gonic/gin"
)

type PlaceOrderRequest struct {
	Address string `json:"address" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
}

// PlaceOrder consolidates the caller's cart into a new order
func PlaceOrder(c *gin.Context) {
	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	order, err := orderSvc.PlaceOrder(middleware.GetUserID(c), req.Address, req.Phone)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Order placed successfully", "order": order})
}

// GetOrder returns a single order; customers may only read their own
func GetOrder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	order, err := orderSvc.GetOrder(id)
	if err != nil {
		fail(c, err)
		return
	}
	identity, _ := middleware.IdentityFrom(c)
	if identity.Role != models.RoleAdmin && order.UserID != identity.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "this order does not belong to you"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

// UserOrders returns all orders of a user; customers may only read their own
func UserOrders(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	identity, _ := middleware.IdentityFrom(c)
	if identity.Role != models.RoleAdmin && identity.UserID != id {
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
		return
	}
	orders, err := orderSvc.FindByUser(id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// MyOrders returns the caller's own orders
func MyOrders(c *gin.Context) {
	orders, err := orderSvc.FindByUser(middleware.GetUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// CancelOrder cancels one of the caller's own orders while still allowed by
// the lifecycle
func CancelOrder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	order, err := orderSvc.GetOrder(id)
	if err != nil {
		fail(c, err)
		return
	}
	identity, _ := middleware.IdentityFrom(c)
	if identity.Role != models.RoleAdmin && order.UserID != identity.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "this order does not belong to you"})
		return
	}
	updated, err := orderSvc.UpdateStatus(id, models.StatusCancelled)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order cancelled", "order": updated})
}

// DeleteOrder removes an order with its items and history; owner or admin
func DeleteOrder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	order, err := orderSvc.GetOrder(id)
	if err != nil {
		fail(c, err)
		return
	}
	identity, _ := middleware.IdentityFrom(c)
	if identity.Role != models.RoleAdmin && order.UserID != identity.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "this order does not belong to you"})
		return
	}
	if err := orderSvc.DeleteOrder(id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order deleted"})
}

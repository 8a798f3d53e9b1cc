package handlers

import (
	"net/http"

	"bookstore-api/middleware"
	"bookstore-api/statemachine"

	"github.com/gin-gonic/gin"
)

// AvailableOrders shows unclaimed, un-picked-up orders to delivery agents
func AvailableOrders(c *gin.Context) {
	orders, err := deliverySvc.AvailableOrders()
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

type AssignOrderRequest struct {
	OrderID uint `json:"order_id" binding:"required"`
}

// AssignOrder lets the calling agent claim an unassigned order
func AssignOrder(c *gin.Context) {
	var req AssignOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	order, err := deliverySvc.AssignOrder(middleware.GetUserID(c), req.OrderID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order assigned", "order": order})
}

// AssignedOrders returns the calling agent's claimed orders
func AssignedOrders(c *gin.Context) {
	orders, err := deliverySvc.AssignedOrders(middleware.GetUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// DeliveryOrder returns one order for an agent's view
func DeliveryOrder(c *gin.Context) {
	id, ok := parseID(c, "orderId")
	if !ok {
		return
	}
	order, err := orderSvc.GetOrder(id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

// DeliveryUpdateStatus advances an order's status (SHIPPED, PICKED_UP,
// DELIVERED, CANCELLED) through the lifecycle graph
func DeliveryUpdateStatus(c *gin.Context) {
	id, ok := parseID(c, "orderId")
	if !ok {
		return
	}
	status, err := statemachine.ParseStatus(c.Param("status"))
	if err != nil {
		fail(c, err)
		return
	}
	order, err := orderSvc.UpdateStatus(id, status)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Status updated", "order": order})
}

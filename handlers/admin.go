package handlers

import (
	"net/http"

	"bookstore-api/models"
	"bookstore-api/statemachine"

	"github.com/gin-gonic/gin"
)

// AdminAllOrders returns every order with a status summary
func AdminAllOrders(c *gin.Context) {
	orders, err := orderSvc.FindAll()
	if err != nil {
		fail(c, err)
		return
	}

	summary := map[string]int{}
	var totalRevenue float64
	for _, o := range orders {
		summary[string(o.Status)]++
		if o.Status == models.StatusDelivered {
			totalRevenue += o.Total
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"order_summary": summary,
		"total_revenue": totalRevenue,
		"count":         len(orders),
		"orders":        orders,
	})
}

type ForceStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AdminForceOrderStatus overrides an order's status outside the lifecycle
// graph. History is still appended.
func AdminForceOrderStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req ForceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	status, err := statemachine.ParseStatus(req.Status)
	if err != nil {
		fail(c, err)
		return
	}
	order, err := orderSvc.ForceStatus(id, status)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order status force-updated", "order": order})
}

package handlers

import (
	"net/http"

	"bookstore-api/middleware"

	"github.com/gin-gonic/gin"
)

type AddToCartRequest struct {
	BookID   uint `json:"book_id" binding:"required"`
	Quantity int  `json:"quantity" binding:"required,min=1"`
}

// AddToCart puts a book into the caller's cart
func AddToCart(c *gin.Context) {
	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item, err := cartSvc.AddItem(middleware.GetUserID(c), req.BookID, req.Quantity)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Added to cart", "item": item})
}

// GetCart lists the caller's unassigned cart items
func GetCart(c *gin.Context) {
	items, err := cartSvc.Items(middleware.GetUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(items), "items": items})
}

// RemoveCartItem deletes one of the caller's cart items
func RemoveCartItem(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := cartSvc.RemoveItem(middleware.GetUserID(c), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item removed from cart"})
}

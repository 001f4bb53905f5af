package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Handlers groups the route handlers registered by RegisterRoutes
type Handlers struct {
	DonationRequest *DonationRequestHandler
	Payment         *PaymentHandler
	User            *UserHandler
}

// RegisterRoutes mounts the public API. Paths match the existing frontend.
func RegisterRoutes(e *echo.Echo, h Handlers) {
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "Hello Developer!")
	})

	// Donation requests
	e.POST("/create-donation-request", h.DonationRequest.CreateRequest)
	e.GET("/create-donation-request", h.DonationRequest.ListRequests)
	e.GET("/my-requests", h.DonationRequest.ListMyRequests)
	e.GET("/donation-request/:id", h.DonationRequest.GetRequest)
	e.PATCH("/update/donation-status/:id", h.DonationRequest.UpdateStatus)
	e.PUT("/update/request/:id", h.DonationRequest.ReplaceFields)
	e.DELETE("/delete/:id", h.DonationRequest.DeleteRequest)

	// Payments
	e.POST("/create-payment-checkout", h.Payment.CreateCheckout)
	e.POST("/success-payment", h.Payment.Reconcile)
	e.GET("/payments", h.Payment.ListPayments)
	e.GET("/payments/:id", h.Payment.GetPayment)

	// Users
	users := e.Group("/users")
	users.POST("", h.User.Register)
	users.GET("", h.User.List)
	users.GET("/role/:email", h.User.GetRole)
	users.PUT("/profile/:email", h.User.UpdateProfile)
	users.PATCH("/role/:id", h.User.UpdateRole)
	users.PATCH("/status/:id", h.User.UpdateStatus)
}

package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/kawsar-hussain/server-A11/internal/usecase"
)

// HeaderIdempotencyKey lets a client retry checkout creation safely
const HeaderIdempotencyKey = "Idempotency-Key"

type PaymentHandler struct {
	service PaymentService
	logger  *zap.Logger
}

func NewPaymentHandler(service PaymentService, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		logger:  logger,
	}
}

// CreateCheckoutRequest accepts donateAmount as a JSON number or numeric string
type CreateCheckoutRequest struct {
	DonateAmount interface{} `json:"donateAmount"`
	DonorName    string      `json:"donorName"`
	DonorEmail   string      `json:"donorEmail" validate:"omitempty,email"`
}

type CreateCheckoutResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

func (h *PaymentHandler) CreateCheckout(c echo.Context) error {
	var req CreateCheckoutRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	amount, err := usecase.ParseAmount(req.DonateAmount)
	if err != nil {
		return err
	}

	h.logger.Info("Creating donation checkout...",
		zap.String("amount", amount.String()),
		zap.String("donor_email", req.DonorEmail))

	session, err := h.service.CreateCheckout(c.Request().Context(), usecase.CheckoutInput{
		Amount:         amount,
		DonorName:      req.DonorName,
		DonorEmail:     req.DonorEmail,
		IdempotencyKey: c.Request().Header.Get(HeaderIdempotencyKey),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, CreateCheckoutResponse{ID: session.ID, URL: session.URL})
}

var reconcileStatus = map[usecase.ReconcileOutcome]int{
	usecase.OutcomeRecorded:          http.StatusCreated,
	usecase.OutcomeAlreadyReconciled: http.StatusOK,
	usecase.OutcomeNotSettled:        http.StatusAccepted,
}

// Reconcile records the payment of a completed checkout session. The
// frontend calls it from the success page, so it must tolerate repeats.
func (h *PaymentHandler) Reconcile(c echo.Context) error {
	result, err := h.service.Reconcile(c.Request().Context(), c.QueryParam("session_id"))
	if err != nil {
		return err
	}

	status, ok := reconcileStatus[result.Outcome]
	if !ok {
		status = http.StatusOK
	}
	return c.JSON(status, result)
}

func (h *PaymentHandler) GetPayment(c echo.Context) error {
	payment, err := h.service.GetPayment(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, payment)
}

func (h *PaymentHandler) ListPayments(c echo.Context) error {
	payments, err := h.service.ListPaymentsByDonor(c.Request().Context(), c.QueryParam("email"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, payments)
}

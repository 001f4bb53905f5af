package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/kawsar-hussain/server-A11/internal/domain/model"
)

type DonationRequestHandler struct {
	service DonationRequestService
	logger  *zap.Logger
}

func NewDonationRequestHandler(service DonationRequestService, logger *zap.Logger) *DonationRequestHandler {
	return &DonationRequestHandler{
		service: service,
		logger:  logger,
	}
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (h *DonationRequestHandler) CreateRequest(c echo.Context) error {
	var fields model.RequestFields
	if err := bindBody(c, &fields); err != nil {
		return err
	}

	result, err := h.service.CreateRequest(c.Request().Context(), fields)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, result)
}

func (h *DonationRequestHandler) ListRequests(c echo.Context) error {
	requests, err := h.service.ListRequests(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, requests)
}

func (h *DonationRequestHandler) ListMyRequests(c echo.Context) error {
	requests, err := h.service.ListRequestsByRequester(c.Request().Context(), c.QueryParam("email"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, requests)
}

func (h *DonationRequestHandler) GetRequest(c echo.Context) error {
	request, err := h.service.GetRequestByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, request)
}

func (h *DonationRequestHandler) UpdateStatus(c echo.Context) error {
	var req UpdateStatusRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.service.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

func (h *DonationRequestHandler) ReplaceFields(c echo.Context) error {
	var fields model.RequestFields
	if err := bindBody(c, &fields); err != nil {
		return err
	}

	result, err := h.service.ReplaceFields(c.Request().Context(), c.Param("id"), fields)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

func (h *DonationRequestHandler) DeleteRequest(c echo.Context) error {
	result, err := h.service.DeleteRequest(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

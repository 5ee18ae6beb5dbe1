package handlers

import (
	"bytes"
	"encoding/json"
	"errors"

	"kiosk/internal/apperr"
	"kiosk/internal/models"
	"kiosk/internal/services"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service *services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service: service,
	}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/order")
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Get("/:order_id", h.HandleGetOrderByID)
	orderRoutes.Post("/", h.HandleCreateOrder)
}

// HandleGetOrders retrieves all orders.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	page, err := parsePage(c)
	if err != nil {
		return err
	}
	orders, err := h.service.ListOrders(c.UserContext(), page)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": orders})
}

// HandleGetOrderByID retrieves a single order by its ID.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	orderID, err := pathParam(c, "order_id")
	if err != nil {
		return err
	}
	order, err := h.service.GetOrder(c.UserContext(), orderID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": order})
}

// HandleCreateOrder creates a new order. The body is either an object with
// an items list or a bare list of items.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	req, err := decodeOrderRequest(c.Body())
	if err != nil {
		return err
	}

	order, err := h.service.CreateOrder(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": order})
}

// decodeOrderRequest reports every undecodable body as invalid input.
func decodeOrderRequest(body []byte) (models.OrderRequest, error) {
	var req models.OrderRequest
	trimmed := bytes.TrimSpace(body)
	var err error
	if len(trimmed) > 0 && trimmed[0] == '[' {
		err = json.Unmarshal(trimmed, &req.Items)
	} else {
		err = json.Unmarshal(trimmed, &req)
	}
	if err == nil {
		return req, nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return req, apperr.Invalid("%s must be %s, got %s", field, typeErr.Type, typeErr.Value)
	}
	return req, apperr.Invalid("invalid request body: %v", err)
}

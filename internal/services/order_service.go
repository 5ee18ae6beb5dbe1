package services

import (
	"context"
	"fmt"
	"time"

	"kiosk/internal/apperr"
	"kiosk/internal/models"
	"kiosk/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// OrderCreatedRoutingKey is the routing key of order creation events.
const OrderCreatedRoutingKey = "order.created"

// EventPublisher sends domain events to the message broker.
type EventPublisher interface {
	PublishJSON(ctx context.Context, routingKey string, payload any) error
}

// OrderCreatedEvent is the message published after an order is stored.
type OrderCreatedEvent struct {
	OrderID   string             `json:"order_id"`
	Status    string             `json:"status"`
	Total     float64            `json:"total"`
	Items     []models.OrderLine `json:"items"`
	CreatedAt time.Time          `json:"created_at"`
}

// OrderService handles business logic related to orders.
type OrderService struct {
	orderRepo repositories.OrderRepository
	itemRepo  repositories.MenuItemRepository
	publisher EventPublisher
	log       logrus.FieldLogger
	now       func() time.Time
	newID     func() string
}

// NewOrderService creates a new OrderService. publisher may be nil, in
// which case no events are sent.
func NewOrderService(orderRepo repositories.OrderRepository, itemRepo repositories.MenuItemRepository, publisher EventPublisher, log logrus.FieldLogger) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		itemRepo:  itemRepo,
		publisher: publisher,
		log:       log,
		now:       time.Now,
		newID:     func() string { return uuid.New().String() },
	}
}

// ListOrders retrieves orders, oldest first.
func (s *OrderService) ListOrders(ctx context.Context, page models.Page) ([]models.Order, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}
	return s.orderRepo.GetAll(ctx, page)
}

// GetOrder retrieves a single order by its ID.
func (s *OrderService) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	return s.orderRepo.GetByID(ctx, id)
}

// CreateOrder validates the request, prices it with the current menu and
// stores it. Checks run in this order: at least one line, every item
// exists, every quantity is at least one, payment method is known.
func (s *OrderService) CreateOrder(ctx context.Context, req models.OrderRequest) (*models.Order, error) {
	if err := models.Validate(req); err != nil {
		return nil, err
	}

	menuItems := make([]*models.MenuItem, len(req.Items))
	for i, line := range req.Items {
		item, err := s.itemRepo.GetByID(ctx, line.ItemID)
		if err != nil {
			return nil, err
		}
		menuItems[i] = item
	}

	for i, line := range req.Items {
		if line.Quantity < 1 {
			return nil, apperr.Invalid("items[%d].quantity must be at least 1, got %d", i, line.Quantity)
		}
	}

	if req.Payment != nil {
		if err := models.Validate(req.Payment); err != nil {
			return nil, err
		}
	}

	total := decimal.Zero
	lines := make([]models.OrderLine, len(req.Items))
	for i, line := range req.Items {
		item := menuItems[i]
		price := decimal.NewFromFloat(item.Price)
		total = total.Add(price.Mul(decimal.NewFromInt(int64(line.Quantity))))
		lines[i] = models.OrderLine{
			ItemID:    item.ID,
			Name:      item.Name,
			UnitPrice: item.Price,
			Quantity:  line.Quantity,
		}
	}

	order := &models.Order{
		ID:        s.newID(),
		Items:     lines,
		Total:     total.Round(2).InexactFloat64(),
		Status:    models.OrderStatusPending,
		Payment:   req.Payment,
		CreatedAt: s.now().UTC().Truncate(time.Microsecond),
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to store order: %w", err)
	}

	s.publishCreated(ctx, order)
	return order, nil
}

// publishCreated sends the creation event. A broker failure is logged and
// does not affect the stored order.
func (s *OrderService) publishCreated(ctx context.Context, order *models.Order) {
	if s.publisher == nil {
		return
	}
	event := OrderCreatedEvent{
		OrderID:   order.ID,
		Status:    order.Status,
		Total:     order.Total,
		Items:     order.Items,
		CreatedAt: order.CreatedAt,
	}
	entry := s.logger().WithField("order_id", order.ID)
	if err := s.publisher.PublishJSON(ctx, OrderCreatedRoutingKey, event); err != nil {
		entry.WithError(err).Warn("failed to publish order created event")
		return
	}
	entry.Debug("published order created event")
}

func (s *OrderService) logger() logrus.FieldLogger {
	if s.log == nil {
		return logrus.StandardLogger()
	}
	return s.log
}

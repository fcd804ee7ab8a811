// Package worker consumes domain events and maintains the deferred
// aggregates: product ratings after reviews, sales counters after orders.
package worker

import (
	"encoding/json"
	"fmt"

	"bazaar/internal/models"
	"bazaar/internal/services"
	"bazaar/pkg/rabbitmq"

	amqp "github.com/streadway/amqp"
	"go.uber.org/zap"
)

// Worker binds to the event exchange and applies aggregate updates.
type Worker struct {
	client         *rabbitmq.Client
	productService *services.ProductService
}

// New creates a Worker.
func New(client *rabbitmq.Client, productService *services.ProductService) *Worker {
	return &Worker{
		client:         client,
		productService: productService,
	}
}

// Start registers the consumer. Deliveries are handled on the client's
// consumer goroutine; a handler error requeues the message.
func (w *Worker) Start() error {
	return w.client.Consume(w.handle,
		models.EventReviewCreated,
		models.EventOrderCreated,
	)
}

func (w *Worker) handle(msg amqp.Delivery) error {
	switch msg.RoutingKey {
	case models.EventReviewCreated:
		var event models.ReviewCreatedEvent
		if err := json.Unmarshal(msg.Body, &event); err != nil {
			return fmt.Errorf("failed to decode review event: %w", err)
		}
		if err := w.productService.RefreshRating(event.ProductID); err != nil {
			return fmt.Errorf("failed to refresh rating for product %s: %w", event.ProductID, err)
		}
		zap.L().Info("product rating refreshed", zap.String("product_id", event.ProductID))
		return nil

	case models.EventOrderCreated:
		var event models.OrderCreatedEvent
		if err := json.Unmarshal(msg.Body, &event); err != nil {
			return fmt.Errorf("failed to decode order event: %w", err)
		}
		if err := w.productService.RecordSales(event.Items); err != nil {
			return fmt.Errorf("failed to record sales for order %s: %w", event.OrderID, err)
		}
		zap.L().Info("sales counters updated", zap.String("order_id", event.OrderID))
		return nil

	default:
		zap.L().Warn("unhandled event", zap.String("routing_key", msg.RoutingKey))
		return nil
	}
}

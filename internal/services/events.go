package services

import (
	"encoding/json"

	"go.uber.org/zap"
)

// EventPublisher is the slice of the message broker client the services
// need. A nil publisher disables event publication (tests, broker outage).
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// publishEvent marshals payload and publishes it under routingKey. Broker
// failures are logged, never propagated: the persisted state is the source
// of truth and consumers catch up from it.
func publishEvent(publisher EventPublisher, routingKey string, payload interface{}) {
	if publisher == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		zap.L().Error("failed to marshal event", zap.String("routing_key", routingKey), zap.Error(err))
		return
	}
	if err := publisher.Publish(routingKey, body); err != nil {
		zap.L().Warn("failed to publish event", zap.String("routing_key", routingKey), zap.Error(err))
		return
	}
	zap.L().Debug("event published", zap.String("routing_key", routingKey))
}

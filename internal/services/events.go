package services

import (
	"encoding/json"

	"github.com/rs/zerolog/log"
)

// EventPublisher publishes entity lifecycle events. Services treat a nil
// publisher as "events disabled".
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// publishEvent marshals payload and publishes it under routingKey. Publish
// failures are logged and never fail the surrounding mutation.
func publishEvent(mq EventPublisher, routingKey string, payload any) {
	if mq == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Str("event", routingKey).Msg("Failed to marshal event payload")
		return
	}
	if err := mq.Publish(routingKey, body); err != nil {
		log.Warn().Err(err).Str("event", routingKey).Msg("Failed to publish event")
	}
}

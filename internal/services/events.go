package services

// Routing keys of product lifecycle events.
const (
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"
)

// EventPublisher delivers a JSON event to the message broker.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

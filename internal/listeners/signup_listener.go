package listeners

import (
	"encoding/json"
	"fmt"

	"github.com/streadway/amqp"
	"go.uber.org/zap"

	"pds/internal/models"
)

// SignupQueue receives every shopkeeper.registered event for operator review.
const SignupQueue = "shopkeeper_approvals"

// Consumer is satisfied by *rabbitmq.Client.
type Consumer interface {
	Consume(queueName, bindingKey string, handler func(msg amqp.Delivery) error) error
}

// SignupListener surfaces new shopkeeper accounts waiting for approval.
type SignupListener struct {
	log *zap.Logger
}

func NewSignupListener(log *zap.Logger) *SignupListener {
	return &SignupListener{log: log}
}

// Start binds the approvals queue and begins consuming in the background.
func (l *SignupListener) Start(consumer Consumer) error {
	if err := consumer.Consume(SignupQueue, models.EventShopkeeperRegistered, l.Handle); err != nil {
		return fmt.Errorf("failed to start signup listener: %w", err)
	}
	l.log.Info("signup listener started", zap.String("queue", SignupQueue))
	return nil
}

// Handle processes one delivery. A malformed body is returned as an error so
// the consumer can requeue it once before dropping it.
func (l *SignupListener) Handle(msg amqp.Delivery) error {
	var event models.ShopkeeperRegistered
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		l.log.Warn("malformed signup event", zap.Uint64("delivery_tag", msg.DeliveryTag), zap.Error(err))
		return fmt.Errorf("failed to decode signup event: %w", err)
	}

	if event.Status != models.StatusPending {
		l.log.Debug("ignoring signup event", zap.String("shop_id", event.ShopID), zap.String("status", event.Status))
		return nil
	}

	l.log.Info("shopkeeper awaiting approval",
		zap.String("id", event.ID),
		zap.String("shop_id", event.ShopID),
		zap.String("shop_name", event.ShopName),
		zap.String("email", event.Email),
		zap.Float64s("coordinates", event.Location.Coordinates))
	return nil
}

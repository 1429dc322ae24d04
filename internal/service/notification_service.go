package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/store-rating-service/internal/events"
)

// NotificationService consumes domain events and records them. It is a log
// sink today; the subscription points are where email/webhook delivery would
// attach.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger) *NotificationService {
	return &NotificationService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventUserRegistered, n.handleUserRegistered)
	n.dispatcher.Subscribe(events.EventStoreCreated, n.handleStoreCreated)
	n.dispatcher.Subscribe(events.EventRatingSubmitted, n.handleRatingSubmitted)
}

func (n *NotificationService) handleUserRegistered(_ context.Context, event events.Event) error {
	n.logger.Info("UserRegistered", zap.String("actor_id", event.ActorID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleStoreCreated(_ context.Context, event events.Event) error {
	n.logger.Info("StoreCreated", zap.String("actor_id", event.ActorID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleRatingSubmitted(_ context.Context, event events.Event) error {
	n.logger.Info("RatingSubmitted", zap.String("actor_id", event.ActorID), zap.Any("payload", event.Payload))
	return nil
}

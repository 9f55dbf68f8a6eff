package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/user-directory/internal/config"
	"github.com/spec-kit/user-directory/internal/events"
)

// NotificationService forwards controller events to the third-party board as
// best-effort updates. Without real credentials every update is mocked into
// the log; failures never reach the request path.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
	production bool
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig, production bool) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
		production: production,
	}
}

// RegisterHandlers subscribes to every controller event type.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	for _, eventType := range []events.EventType{
		events.EventUserCreated,
		events.EventUserUpdated,
		events.EventUserDeleted,
		events.EventUserAccessed,
		events.EventUserSearch,
		events.EventStatsAccessed,
		events.EventDepartmentAccessed,
		events.EventActiveUsersAccessed,
		events.EventAPIAccessed,
	} {
		n.dispatcher.Subscribe(eventType, n.handleEvent)
	}
}

func (n *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	if n.production && n.cfg.WebhookURL != "" && n.cfg.BoardID != "" && n.cfg.ItemID != "" {
		n.sendWebhookUpdateStub(event)
		return nil
	}
	n.sendMockUpdate(event)
	return nil
}

// sendMockUpdate mirrors what a real board update would carry.
func (n *NotificationService) sendMockUpdate(event events.Event) {
	n.logger.Info("board update (mock)",
		zap.String("update_id", "mock_"+uuid.NewString()),
		zap.String("status", string(event.Type)),
		zap.String("message", event.Message),
		zap.Time("timestamp", event.Timestamp))
}

func (n *NotificationService) sendWebhookUpdateStub(event events.Event) {
	n.logger.Info("board update (webhook stub)",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("board_id", n.cfg.BoardID),
		zap.String("item_id", n.cfg.ItemID),
		zap.String("status", string(event.Type)),
		zap.String("message", event.Message))
}

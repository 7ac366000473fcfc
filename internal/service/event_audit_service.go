// FILE: internal/service/event_audit_service.go
// PURPOSE: Drains the widget event stream into the structured log so
// QUERY_RESOLVED / OFFER_NORMALIZED events are queryable without a separate
// analytics store.
package service

import (
	"context"

	"ai-shopassist-be/internal/pkg/logger"
	"ai-shopassist-be/pkg/events"
	natsbus "ai-shopassist-be/pkg/nats"
)

type IEventAuditService interface {
	Start() error
}

type eventAuditService struct {
	sub *natsbus.Subscriber
	log logger.ILogger
}

func NewEventAuditService(sub *natsbus.Subscriber, log logger.ILogger) IEventAuditService {
	return &eventAuditService{
		sub: sub,
		log: log,
	}
}

// Start attaches the durable audit consumer to the widget stream. Without a
// NATS connection the audit trail is simply absent; queries still work.
func (s *eventAuditService) Start() error {
	if s.sub == nil {
		return nil
	}
	return s.sub.Subscribe("widget.>", "widget-event-audit", s.record)
}

func (s *eventAuditService) record(ctx context.Context, event events.Event) error {
	s.log.Info("events", "widget event", map[string]interface{}{
		"subject": event.EventType(),
		"payload": event.Payload(),
	})
	return nil
}

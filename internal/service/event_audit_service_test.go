package service

import (
	"context"
	"testing"

	"ai-shopassist-be/pkg/events"
)

type capturingLogger struct {
	noopLogger
	infos []map[string]interface{}
}

func (l *capturingLogger) Info(module, message string, details map[string]interface{}) {
	l.infos = append(l.infos, details)
}

func TestEventAuditRecordsEvents(t *testing.T) {
	log := &capturingLogger{}
	svc := &eventAuditService{log: log}

	event := events.NewEvent("widget.QUERY_RESOLVED", map[string]interface{}{
		"resolution": "single",
	})
	if err := svc.record(context.Background(), event); err != nil {
		t.Fatalf("record returned error: %v", err)
	}

	if len(log.infos) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(log.infos))
	}
	if log.infos[0]["subject"] != "widget.QUERY_RESOLVED" {
		t.Errorf("subject = %v, want widget.QUERY_RESOLVED", log.infos[0]["subject"])
	}
}

func TestEventAuditStartWithoutNats(t *testing.T) {
	svc := NewEventAuditService(nil, noopLogger{})
	if err := svc.Start(); err != nil {
		t.Errorf("Start without a NATS connection should be a no-op, got %v", err)
	}
}

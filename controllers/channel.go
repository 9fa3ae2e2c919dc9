package controllers

import (
	"MoodDiaryGo/models"
	"context"
	"fmt"
	"sync"
)

// ReplyCollector buffers the outbound events produced while handling
// one inbound event, so they can be returned to the gateway in the
// HTTP response in the order they were emitted.
type ReplyCollector struct {
	mu     sync.Mutex
	events []models.OutboundEvent
}

func (r *ReplyCollector) append(event models.OutboundEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

// Events returns the collected outbound events in emission order.
func (r *ReplyCollector) Events() []models.OutboundEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.OutboundEvent(nil), r.events...)
}

type collectorKey struct{}

// WithCollector binds a collector to the request context.
func WithCollector(ctx context.Context, collector *ReplyCollector) context.Context {
	return context.WithValue(ctx, collectorKey{}, collector)
}

// GatewayChannel is the services.Channel implementation for the HTTP
// gateway: replies land in the request's collector rather than being
// pushed to a transport directly.
type GatewayChannel struct{}

func (GatewayChannel) Send(ctx context.Context, userID string, event models.OutboundEvent) error {
	collector, ok := ctx.Value(collectorKey{}).(*ReplyCollector)
	if !ok {
		return fmt.Errorf("no reply collector bound for user %s", userID)
	}
	collector.append(event)
	return nil
}

package client

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"matchday/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

type EventType string

const (
	EventLineupApproved      EventType = "lineup.approved"
	EventRefereeApproved     EventType = "referee.approved"
	EventMatchStarted        EventType = "match.started"
	EventMatchClosed         EventType = "match.closed"
	EventReservesUpdated     EventType = "match.reserves_updated"
	EventMatchDataDeleted    EventType = "match.data_deleted"
	EventMoveRequestCreated  EventType = "move_request.created"
	EventMoveRequestAccepted EventType = "move_request.accepted"
	EventMoveRequestApproved EventType = "move_request.approved"
	EventMoveRequestRejected EventType = "move_request.rejected"
)

// LifecycleEvent is published after a match day transition has been committed.
type LifecycleEvent struct {
	Type       EventType      `json:"type"`
	MatchId    int            `json:"match_id"`
	ActorId    string         `json:"actor_id"`
	OccurredAt time.Time      `json:"occurred_at"`
	Data       map[string]any `json:"data,omitempty"`
}

type EventPublisher interface {
	Publish(ctx context.Context, event LifecycleEvent)
}

// MessageWriter is the part of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaEventPublisher writes events keyed by match id, so all events of one
// match land on the same partition in order. Failures are logged and counted
// and never reach the caller.
type KafkaEventPublisher struct {
	writer  MessageWriter
	logger  *logrus.Logger
	timeout time.Duration
}

func NewKafkaEventPublisher(writer MessageWriter, logger *logrus.Logger) *KafkaEventPublisher {
	return &KafkaEventPublisher{writer: writer, logger: logger, timeout: 5 * time.Second}
}

func (p *KafkaEventPublisher) Publish(ctx context.Context, event LifecycleEvent) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}
	log := p.logger.WithFields(logrus.Fields{"event": event.Type, "match_id": event.MatchId})
	data, err := json.Marshal(event)
	if err != nil {
		metrics.EventPublishErrors.WithLabelValues(string(event.Type)).Inc()
		log.WithError(err).Error("could not encode lifecycle event")
		return
	}
	timer := prometheus.NewTimer(metrics.EventPublishDuration)
	defer timer.ObserveDuration()
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.Itoa(event.MatchId)),
		Value: data,
	})
	if err != nil {
		metrics.EventPublishErrors.WithLabelValues(string(event.Type)).Inc()
		log.WithError(err).Warn("could not publish lifecycle event")
		return
	}
	log.Debug("published lifecycle event")
}

func (p *KafkaEventPublisher) Close() error {
	return p.writer.Close()
}

// LogEventPublisher only logs events. Used when no broker is configured.
type LogEventPublisher struct {
	logger *logrus.Logger
}

func NewLogEventPublisher(logger *logrus.Logger) *LogEventPublisher {
	return &LogEventPublisher{logger: logger}
}

func (p *LogEventPublisher) Publish(_ context.Context, event LifecycleEvent) {
	p.logger.WithFields(logrus.Fields{
		"event":    event.Type,
		"match_id": event.MatchId,
		"actor":    event.ActorId,
	}).Info("lifecycle event")
}

type MemoryEventPublisher struct {
	mu     sync.Mutex
	events []LifecycleEvent
}

func NewMemoryEventPublisher() *MemoryEventPublisher {
	return &MemoryEventPublisher{events: make([]LifecycleEvent, 0)}
}

func (p *MemoryEventPublisher) Publish(_ context.Context, event LifecycleEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *MemoryEventPublisher) Events() []LifecycleEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]LifecycleEvent, len(p.events))
	copy(out, p.events)
	return out
}

package service

import (
	"context"
	"time"

	"matchday/client"
	"matchday/metrics"

	"github.com/sirupsen/logrus"
)

// transitions records a committed transition: metric, log line and lifecycle event.
type transitions struct {
	publisher client.EventPublisher
	logger    *logrus.Logger
}

func newTransitions(publisher client.EventPublisher, logger *logrus.Logger) transitions {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if publisher == nil {
		publisher = client.NewLogEventPublisher(logger)
	}
	return transitions{publisher: publisher, logger: logger}
}

func (t transitions) record(ctx context.Context, eventType client.EventType, matchId int, actorId string, data map[string]any) {
	metrics.TransitionsTotal.WithLabelValues(string(eventType)).Inc()
	fields := logrus.Fields{"match_id": matchId, "actor": actorId}
	for key, value := range data {
		fields[key] = value
	}
	t.logger.WithFields(fields).Info(string(eventType))
	t.publisher.Publish(ctx, client.LifecycleEvent{
		Type:       eventType,
		MatchId:    matchId,
		ActorId:    actorId,
		OccurredAt: time.Now(),
		Data:       data,
	})
}

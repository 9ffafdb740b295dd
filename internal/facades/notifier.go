package facades

import (
	"context"
	"encoding/json"
	"time"

	"github.com/li812/face-bank/internal/logger"
	"github.com/li812/face-bank/internal/metrics"
	"github.com/segmentio/kafka-go"
)

// MessageWriter is the subset of *kafka.Writer the notifier needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// Notification is the message published for the mail relay.
type Notification struct {
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	To        string    `json:"to"`
	CreatedAt time.Time `json:"created_at"`
}

// KafkaNotifier publishes notifications to a Kafka topic consumed by the mail relay.
type KafkaNotifier struct {
	writer  MessageWriter
	topic   string
	timeout time.Duration
}

// NewKafkaNotifier creates a notifier. topic is only used as a metrics label;
// the writer decides where messages go.
func NewKafkaNotifier(writer MessageWriter, topic string, timeout time.Duration) *KafkaNotifier {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &KafkaNotifier{writer: writer, topic: topic, timeout: timeout}
}

// Send publishes the notification. Failures are logged and counted, never returned.
func (n *KafkaNotifier) Send(ctx context.Context, subject, body, to string) {
	if to == "" {
		logger.Log.Warnw("notification has no recipient, skipping", "subject", subject)
		return
	}

	data, err := json.Marshal(Notification{
		Subject:   subject,
		Body:      body,
		To:        to,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		logger.Log.Errorw("failed to marshal notification", "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), n.timeout)
	defer cancel()

	if err := n.writer.WriteMessages(ctx, kafka.Message{Key: []byte(to), Value: data}); err != nil {
		metrics.PublishFailures.WithLabelValues(n.topic).Inc()
		logger.Log.Errorw("failed to publish notification", "subject", subject, "to", to, "error", err)
		return
	}

	logger.Log.Infow("notification published", "subject", subject, "to", to)
}

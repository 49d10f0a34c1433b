// Package kafka announces issued labels on a Kafka topic so the store front can
// notify customers without polling the orders table.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"shipping/internal/core/domain/model/shipment"

	kafkago "github.com/segmentio/kafka-go"
)

// EventType is written into every message and its headers.
const EventType = "shipment.label_issued"

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// LabelIssuedMessage is the JSON payload of a label-issued event.
type LabelIssuedMessage struct {
	Type           string    `json:"type"`
	RunID          string    `json:"run_id"`
	OrderID        string    `json:"order_id"`
	OrderNumber    string    `json:"order_number"`
	TrackingNumber string    `json:"tracking_number"`
	LabelURL       string    `json:"label_url,omitempty"`
	Carrier        string    `json:"carrier"`
	Service        string    `json:"service,omitempty"`
	CostCents      int64     `json:"cost_cents"`
	IssuedAt       time.Time `json:"issued_at"`
}

// Publisher implements ports.LabelEventPublisher.
type Publisher struct {
	writer messageWriter
	logger *slog.Logger
}

// NewPublisher creates a Publisher writing to topic on the given broker.
func NewPublisher(brokerURL, topic string, logger *slog.Logger) *Publisher {
	return NewPublisherWithWriter(&kafkago.Writer{
		Addr:                   kafkago.TCP(brokerURL),
		Topic:                  topic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireOne,
		AllowAutoTopicCreation: true,
	}, logger)
}

// NewPublisherWithWriter creates a Publisher over an existing writer.
func NewPublisherWithWriter(writer messageWriter, logger *slog.Logger) *Publisher {
	return &Publisher{
		writer: writer,
		logger: logger.With("component", "label_events"),
	}
}

// PublishLabelIssued writes one message keyed by order id, so events of the same
// order land on the same partition.
func (p *Publisher) PublishLabelIssued(ctx context.Context, event shipment.LabelIssued) error {
	payload, err := json.Marshal(LabelIssuedMessage{
		Type:           EventType,
		RunID:          event.RunID.String(),
		OrderID:        event.OrderID.String(),
		OrderNumber:    event.OrderNumber,
		TrackingNumber: event.TrackingNumber,
		LabelURL:       event.LabelURL,
		Carrier:        event.Carrier,
		Service:        event.Service,
		CostCents:      event.Cost.Cents(),
		IssuedAt:       event.IssuedAt.UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal label event: %w", err)
	}

	msg := kafkago.Message{
		Key:     []byte(event.OrderID.String()),
		Value:   payload,
		Headers: []kafkago.Header{{Key: "type", Value: []byte(EventType)}},
		Time:    event.IssuedAt,
	}
	if err = p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish label event: %w", err)
	}

	p.logger.DebugContext(ctx, "label event published",
		"order", event.OrderNumber, "tracking_number", event.TrackingNumber)
	return nil
}

// Close flushes and closes the writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}

package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// AnalysisEvent 每次分析结束后发出的事件，不包含查询原文
type AnalysisEvent struct {
	ID          string    `json:"id"`
	Status      string    `json:"status"`
	ErrorKind   string    `json:"error_kind,omitempty"`
	Model       string    `json:"model"`
	SourceCount int       `json:"source_count"`
	DurationMs  int64     `json:"duration_ms"`
	OccurredAt  time.Time `json:"occurred_at"`
}

type EventPublisher interface {
	Publish(ctx context.Context, ev AnalysisEvent) error
}

// Publisher *amqp.Channel 的发布方法
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// RabbitEventPublisher 通过默认 exchange 投递到队列
type RabbitEventPublisher struct {
	ch    Publisher
	queue string
}

func NewRabbitEventPublisher(ch Publisher, queue string) *RabbitEventPublisher {
	return &RabbitEventPublisher{ch: ch, queue: queue}
}

func (p *RabbitEventPublisher) Publish(ctx context.Context, ev AnalysisEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal analysis event: %w", err)
	}

	err = p.ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    ev.ID,
		Timestamp:    ev.OccurredAt,
		Type:         "analysis." + ev.Status,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish analysis event to %q: %w", p.queue, err)
	}
	return nil
}

// NopEventPublisher 未配置 RabbitMQ 时使用
type NopEventPublisher struct{}

func (NopEventPublisher) Publish(context.Context, AnalysisEvent) error { return nil }

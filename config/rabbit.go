package config

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// DialRabbit 连接 RabbitMQ 并声明事件队列；url 为空时返回 (nil, nil, nil) 表示未启用
func DialRabbit(cfg *Config) (*amqp.Connection, *amqp.Channel, error) {
	url := cfg.RabbitMQ.Url
	if url == "" {
		return nil, nil, nil
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("failed to open RabbitMQ channel: %w", err)
	}

	qname := cfg.RabbitMQ.Queue
	if qname == "" {
		qname = "analysis.events"
	}
	if _, err := ch.QueueDeclare(qname, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, nil, fmt.Errorf("failed to declare RabbitMQ queue %q: %w", qname, err)
	}

	return conn, ch, nil
}

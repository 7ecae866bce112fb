package rabbitmq

import (
	"errors"
	"fmt"

	amqp "github.com/streadway/amqp"
)

// Client owns the AMQP connection and the channel used for publishing.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// Dial connects and declares the durable topic exchange notifications go to.
func Dial(url, exchange string) (*Client, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err = ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}

	return &Client{conn: conn, channel: ch}, nil
}

// Channel returns the publishing channel.
func (c *Client) Channel() *amqp.Channel {
	return c.channel
}

// Close closes the channel, then the connection.
func (c *Client) Close() error {
	var channelErr, connErr error
	if c.channel != nil {
		channelErr = c.channel.Close()
	}
	if c.conn != nil {
		connErr = c.conn.Close()
	}
	return errors.Join(channelErr, connErr)
}

// Package redis publishes engine events to Redis pub/sub channels so
// other processes (notification workers, additional game servers) can
// observe them.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Nolimiter/nOHACK/internal/ports/secondary"
)

const (
	publishTimeout = 2 * time.Second
	queueSize      = 256
)

type message struct {
	channel string
	data    []byte
}

// Publisher implements secondary.EventSink on Redis pub/sub. Each user
// has their own channel. Publish only enqueues; a background worker
// performs the network call, so a slow or down Redis never stalls the
// engine. Delivery is best-effort: failures are logged and events are
// dropped when the queue is full.
type Publisher struct {
	client *redis.Client
	queue  chan message
	done   chan struct{}

	// send performs one PUBLISH. Swapped out in tests.
	send func(ctx context.Context, channel string, data []byte) error
}

// NewPublisher creates a Publisher for the given Redis address and
// starts its worker.
func NewPublisher(addr string) *Publisher {
	client := redis.NewClient(&redis.Options{Addr: addr})
	return newPublisher(client, func(ctx context.Context, channel string, data []byte) error {
		return client.Publish(ctx, channel, data).Err()
	})
}

func newPublisher(client *redis.Client, send func(ctx context.Context, channel string, data []byte) error) *Publisher {
	p := &Publisher{
		client: client,
		queue:  make(chan message, queueSize),
		done:   make(chan struct{}),
		send:   send,
	}
	go p.worker()
	return p
}

// Channel returns the pub/sub channel name for a user's events.
func Channel(userID string) string {
	return fmt.Sprintf("nohack:user:%s:events", userID)
}

func (p *Publisher) Publish(userID, event string, payload any) {
	data, err := json.Marshal(secondary.Event{Name: event, UserID: userID, Payload: payload})
	if err != nil {
		log.Printf("redis publish encode: %v", err)
		return
	}

	select {
	case p.queue <- message{channel: Channel(userID), data: data}:
	default:
		log.Printf("redis publish: queue full, dropping %s for %s", event, userID)
	}
}

func (p *Publisher) worker() {
	defer close(p.done)
	for msg := range p.queue {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		if err := p.send(ctx, msg.channel, msg.data); err != nil {
			log.Printf("redis publish: %v", err)
		}
		cancel()
	}
}

// Ping verifies the connection. Used at startup to fail fast on a bad
// address.
func (p *Publisher) Ping(ctx context.Context) error {
	if err := p.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to ping redis: %w", err)
	}
	return nil
}

// Close drains the queue, stops the worker, and releases the client.
// Callers must stop publishing before Close.
func (p *Publisher) Close() error {
	close(p.queue)
	<-p.done
	return p.client.Close()
}

// Ensure Publisher implements the interface
var _ secondary.EventSink = (*Publisher)(nil)

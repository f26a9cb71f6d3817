package redis

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Nolimiter/nOHACK/internal/ports/secondary"
)

func TestChannel(t *testing.T) {
	if got := Channel("u1"); got != "nohack:user:u1:events" {
		t.Errorf("unexpected channel name: %s", got)
	}
}

func TestPublisher_DeliversThroughWorker(t *testing.T) {
	sent := make(chan message, 1)
	p := newPublisher(redis.NewClient(&redis.Options{Addr: "localhost:0"}), func(ctx context.Context, channel string, data []byte) error {
		sent <- message{channel: channel, data: data}
		return nil
	})

	p.Publish("u1", secondary.EventOperationComplete, map[string]any{"operationId": "op1"})

	select {
	case msg := <-sent:
		if msg.channel != Channel("u1") {
			t.Errorf("unexpected channel: %s", msg.channel)
		}
		var e secondary.Event
		if err := json.Unmarshal(msg.data, &e); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		if e.Name != secondary.EventOperationComplete {
			t.Errorf("unexpected event name: %s", e.Name)
		}
	case <-time.After(time.Second):
		t.Fatal("worker never delivered the event")
	}

	if err := p.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestPublisher_NeverBlocksWhenRedisStalls(t *testing.T) {
	stall := make(chan struct{})
	p := newPublisher(redis.NewClient(&redis.Options{Addr: "localhost:0"}), func(ctx context.Context, channel string, data []byte) error {
		<-stall
		return nil
	})

	// Worker is stuck on the first message; overfill the queue. Every
	// call must return immediately, dropping the overflow.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < queueSize*2; i++ {
			p.Publish("u1", secondary.EventOperationProgress, i)
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked on a stalled worker")
	}

	close(stall)
	if err := p.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

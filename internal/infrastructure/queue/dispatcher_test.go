package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/scholarfolio/portfolio-api/internal/core/ports"
)

type recordingService struct {
	mu   sync.Mutex
	got  []ports.ContactMessage
	done chan struct{}
	want int
	err  error
}

func (s *recordingService) Deliver(_ context.Context, msg ports.ContactMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.got = append(s.got, msg)
	if len(s.got) == s.want {
		close(s.done)
	}
	return s.err
}

func TestDispatcher_DeliversInOrderPerSender(t *testing.T) {
	svc := &recordingService{done: make(chan struct{}), want: 3}
	d := NewDispatcher(4, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for _, body := range []string{"first", "second", "third"} {
		if err := d.Enqueue(ports.ContactMessage{Name: "Ana", Email: "ana@example.com", Message: body}); err != nil {
			t.Fatalf("Enqueue: %v", err)
		}
	}

	select {
	case <-svc.done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for delivery")
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()
	for i, want := range []string{"first", "second", "third"} {
		if svc.got[i].Message != want {
			t.Fatalf("message %d: expected %q, got %q", i, want, svc.got[i].Message)
		}
	}
}

func TestDispatcher_ShardIndexIgnoresCase(t *testing.T) {
	d := NewDispatcher(8, &recordingService{}, zerolog.Nop())
	if d.shardIndex("Ana@Example.com") != d.shardIndex("ana@example.com") {
		t.Fatal("expected the same shard regardless of case")
	}
}

func TestDispatcher_EnqueueFullShard(t *testing.T) {
	d := NewDispatcher(1, &recordingService{}, zerolog.Nop())
	msg := ports.ContactMessage{Name: "Ana", Email: "ana@example.com", Message: "hi"}

	for i := 0; i < channelBuffer; i++ {
		if err := d.Enqueue(msg); err != nil {
			t.Fatalf("Enqueue %d: %v", i, err)
		}
	}
	if got := d.Depth(); got != channelBuffer {
		t.Fatalf("expected depth %d, got %d", channelBuffer, got)
	}
	if err := d.Enqueue(msg); !errors.Is(err, ports.ErrQueueFull) {
		t.Fatalf("expected ports.ErrQueueFull, got %v", err)
	}
}

func TestNewDispatcher_DefaultWorkers(t *testing.T) {
	d := NewDispatcher(0, &recordingService{}, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
}

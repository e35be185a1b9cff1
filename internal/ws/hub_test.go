package ws

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/postmessages/board-api/internal/core/domain"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
	return hub
}

// connect registers a bare client on the hub. The network pumps are not
// started; tests read frames straight off the send channel.
func connect(hub *Hub, buffer int) *Client {
	client := &Client{hub: hub, send: make(chan []byte, buffer)}
	hub.register <- client
	return client
}

func receiveFrame(t *testing.T, client *Client) broadcastFrame {
	t.Helper()
	select {
	case payload, ok := <-client.send:
		if !ok {
			t.Fatalf("send channel closed")
		}
		var frame broadcastFrame
		if err := json.Unmarshal(payload, &frame); err != nil {
			t.Fatalf("invalid frame: %v", err)
		}
		return frame
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for broadcast")
	}
	return broadcastFrame{}
}

func TestHub_BroadcastReachesAllSubscribers(t *testing.T) {
	hub := startHub(t)
	first := connect(hub, sendBuffer)
	second := connect(hub, sendBuffer)

	msg := domain.Message{ID: "m1", Content: "hello", AuthorMail: "a@x.com"}
	hub.Publish(msg)

	for _, client := range []*Client{first, second} {
		frame := receiveFrame(t, client)
		if frame.Event != "broadcast" {
			t.Errorf("event = %q, want broadcast", frame.Event)
		}
		if frame.Data.ID != "m1" || frame.Data.Content != "hello" {
			t.Errorf("unexpected payload: %+v", frame.Data)
		}
	}
}

func TestHub_DeliveryOrderMatchesPublishOrder(t *testing.T) {
	hub := startHub(t)
	client := connect(hub, sendBuffer)

	for _, id := range []string{"m1", "m2", "m3"} {
		hub.Publish(domain.Message{ID: id})
	}

	for _, want := range []string{"m1", "m2", "m3"} {
		if got := receiveFrame(t, client).Data.ID; got != want {
			t.Fatalf("out of order: got %q, want %q", got, want)
		}
	}
}

func TestHub_NoReplayForLateSubscriber(t *testing.T) {
	hub := startHub(t)
	early := connect(hub, sendBuffer)

	hub.Publish(domain.Message{ID: "m1"})
	if got := receiveFrame(t, early).Data.ID; got != "m1" {
		t.Fatalf("early subscriber got %q", got)
	}

	// m1 has been fanned out; a subscriber joining now must only see
	// messages published after it connected.
	late := connect(hub, sendBuffer)
	hub.Publish(domain.Message{ID: "m2"})

	if got := receiveFrame(t, late).Data.ID; got != "m2" {
		t.Fatalf("late subscriber saw replayed message %q", got)
	}
}

func TestHub_PublishNeverBlocks(t *testing.T) {
	// No Run goroutine: the inbox fills and further publishes must
	// drop instead of stalling the caller.
	hub := NewHub(zerolog.Nop())
	for i := 0; i < inboxBuffer; i++ {
		hub.Publish(domain.Message{ID: "fill"})
	}

	done := make(chan struct{})
	go func() {
		hub.Publish(domain.Message{ID: "overflow"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("Publish blocked on a full inbox")
	}
}

func TestHub_UnregisterAfterShutdownReturns(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	client := connect(hub, sendBuffer)

	cancel()

	// Shutdown closes every send channel; wait until it has happened.
	select {
	case _, ok := <-client.send:
		if ok {
			t.Fatalf("unexpected frame during shutdown")
		}
	case <-time.After(time.Second):
		t.Fatalf("hub did not close subscribers on shutdown")
	}

	// A pump finishing after Run returned must still be able to
	// unregister without blocking forever.
	released := make(chan struct{})
	go func() {
		hub.drop(client)
		close(released)
	}()

	select {
	case <-released:
	case <-time.After(time.Second):
		t.Fatalf("unregister blocked after shutdown")
	}
}

func TestHub_EvictsSlowSubscriber(t *testing.T) {
	hub := startHub(t)
	slow := connect(hub, 1)
	fast := connect(hub, sendBuffer)

	// The slow client never drains; its one-slot buffer overflows on the
	// second delivery and the hub closes it out.
	hub.Publish(domain.Message{ID: "m1"})
	hub.Publish(domain.Message{ID: "m2"})

	if got := receiveFrame(t, fast).Data.ID; got != "m1" {
		t.Fatalf("fast subscriber got %q, want m1", got)
	}
	if got := receiveFrame(t, fast).Data.ID; got != "m2" {
		t.Fatalf("fast subscriber got %q, want m2", got)
	}

	<-slow.send // buffered m1
	select {
	case _, ok := <-slow.send:
		if ok {
			t.Fatalf("slow subscriber received a frame after falling behind")
		}
	case <-time.After(time.Second):
		t.Fatalf("slow subscriber was not evicted")
	}
}

package events

import (
	"testing"
	"time"
)

func TestPublishDeliversToSubscribers(t *testing.T) {
	hub := NewHub(10)
	var got []Event
	unsubscribe := hub.Subscribe(func(evt Event) {
		got = append(got, evt)
	})
	defer unsubscribe()

	hub.Publish(EventResult, "first")
	hub.Publish(EventResult, "second")

	if len(got) != 2 {
		t.Fatalf("expected 2 events, got %d", len(got))
	}
	if got[0].Payload != "first" || got[1].Payload != "second" {
		t.Fatalf("unexpected payloads: %+v", got)
	}
	if got[0].Sequence >= got[1].Sequence {
		t.Fatalf("sequences not increasing: %d, %d", got[0].Sequence, got[1].Sequence)
	}
}

func TestLateSubscriberGetsReplay(t *testing.T) {
	hub := NewHub(10)
	hub.Publish(EventResult, 1)
	hub.Publish(EventResult, 2)
	hub.Publish(EventResult, 3)
	hub.Publish(EventComplete, "done")

	var got []Event
	unsubscribe := hub.Subscribe(func(evt Event) {
		got = append(got, evt)
	})
	defer unsubscribe()

	if len(got) != 4 {
		t.Fatalf("expected replay of 4 events, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].Sequence <= got[i-1].Sequence {
			t.Fatalf("replay out of order at %d: %+v", i, got)
		}
	}
	if got[3].Name != EventComplete {
		t.Fatalf("expected terminal complete event last, got %q", got[3].Name)
	}
}

func TestReplayThenLive(t *testing.T) {
	hub := NewHub(10)
	hub.Publish(EventResult, "buffered")

	var got []any
	unsubscribe := hub.Subscribe(func(evt Event) {
		got = append(got, evt.Payload)
	})
	defer unsubscribe()

	hub.Publish(EventResult, "live")

	if len(got) != 2 || got[0] != "buffered" || got[1] != "live" {
		t.Fatalf("unexpected delivery order: %v", got)
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	hub := NewHub(10)
	count := 0
	unsubscribe := hub.Subscribe(func(Event) { count++ })

	hub.Publish(EventResult, nil)
	unsubscribe()
	hub.Publish(EventResult, nil)

	if count != 1 {
		t.Fatalf("expected 1 delivery, got %d", count)
	}
}

func TestPanickingHandlerDoesNotBlockOthers(t *testing.T) {
	hub := NewHub(10)
	defer hub.Subscribe(func(Event) { panic("handler failure") })()

	delivered := false
	defer hub.Subscribe(func(Event) { delivered = true })()

	hub.Publish(EventResult, nil)

	if !delivered {
		t.Fatal("second handler not reached after first panicked")
	}
}

func TestBufferBounded(t *testing.T) {
	hub := NewHub(3)
	for i := 0; i < 10; i++ {
		hub.Publish(EventResult, i)
	}

	var got []Event
	defer hub.Subscribe(func(evt Event) { got = append(got, evt) })()

	if len(got) != 3 {
		t.Fatalf("expected 3 buffered events, got %d", len(got))
	}
	if got[0].Payload != 7 || got[2].Payload != 9 {
		t.Fatalf("expected oldest events dropped, got %+v", got)
	}
}

func TestResetClearsBuffer(t *testing.T) {
	hub := NewHub(10)
	hub.Publish(EventResult, nil)
	hub.Reset()

	if hub.Buffered() != 0 {
		t.Fatalf("expected empty buffer, got %d", hub.Buffered())
	}
}

func TestScheduleResetClearsAfterGrace(t *testing.T) {
	hub := NewHub(10, WithGraceWindow(20*time.Millisecond))
	hub.Publish(EventComplete, nil)
	hub.ScheduleReset()

	if hub.Buffered() != 1 {
		t.Fatalf("buffer should survive until the grace window elapses, got %d", hub.Buffered())
	}

	deadline := time.Now().Add(2 * time.Second)
	for hub.Buffered() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("buffer not cleared after grace window")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestResetCancelsScheduledReset(t *testing.T) {
	hub := NewHub(10, WithGraceWindow(10*time.Millisecond))
	hub.Publish(EventComplete, nil)
	hub.ScheduleReset()
	hub.Reset()
	hub.Publish(EventResult, "next batch")

	time.Sleep(50 * time.Millisecond)

	if hub.Buffered() != 1 {
		t.Fatalf("stale scheduled reset cleared the new batch's events, buffered=%d", hub.Buffered())
	}
}

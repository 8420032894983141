// ABOUTME: Tests for the typed event bus
// ABOUTME: Covers ordered delivery, unsubscribe, and mutation during publish

package eventbus

import (
	"reflect"
	"testing"
)

func TestBus_PublishSubscribe(t *testing.T) {
	t.Parallel()

	bus := New[string]()
	var received string
	bus.Subscribe(func(s string) { received = s })

	bus.Publish("hello")

	if received != "hello" {
		t.Errorf("received = %q, want %q", received, "hello")
	}
}

func TestBus_OrderedDelivery(t *testing.T) {
	t.Parallel()

	bus := New[int]()
	var order []int
	for i := range 3 {
		bus.Subscribe(func(n int) { order = append(order, i*100+n) })
	}

	bus.Publish(1)

	if want := []int{1, 101, 201}; !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestBus_Unsubscribe(t *testing.T) {
	t.Parallel()

	bus := New[int]()
	calls := 0
	unsub := bus.Subscribe(func(int) { calls++ })

	bus.Publish(1)
	unsub()
	bus.Publish(2)

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if bus.Count() != 0 {
		t.Errorf("Count() = %d, want 0", bus.Count())
	}
}

func TestBus_UnsubscribeDuringPublish(t *testing.T) {
	t.Parallel()

	bus := New[int]()
	var second int
	var unsubFirst func()
	unsubFirst = bus.Subscribe(func(int) { unsubFirst() })
	bus.Subscribe(func(n int) { second += n })

	bus.Publish(5)
	bus.Publish(5)

	if second != 10 {
		t.Errorf("second handler total = %d, want 10", second)
	}
	if bus.Count() != 1 {
		t.Errorf("Count() = %d, want 1", bus.Count())
	}
}

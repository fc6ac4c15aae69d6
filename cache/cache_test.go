package cache_test

import (
	"testing"

	"cstyle/cache"
)

type node struct {
	key string
	tag string
}

func (n *node) Key() string { return n.key }

func TestCache_AddReturnsCanonicalInstance(t *testing.T) {
	c := cache.New[*node]()

	first := &node{key: "a", tag: "first"}
	second := &node{key: "a", tag: "second"}

	if got := c.Add(first); got != first {
		t.Fatal("expected first add to return the passed instance")
	}
	got := c.Add(second)
	if got != first {
		t.Error("expected duplicate add to return the stored instance")
	}
	if got.tag != "first" {
		t.Errorf("expected canonical instance, got tag '%s'", got.tag)
	}
	if c.Count(second) != 2 {
		t.Errorf("expected count 2, got %d", c.Count(second))
	}
}

func TestCache_RemoveEvictsAtZero(t *testing.T) {
	c := cache.New[*node]()
	n := &node{key: "a"}

	c.Add(n)
	c.Add(n)

	c.Remove(n)
	if !c.Has(n) {
		t.Fatal("expected entry to survive first remove")
	}
	c.Remove(n)
	if c.Has(n) {
		t.Error("expected entry to evict at count zero")
	}
	if c.Count(n) != 0 {
		t.Errorf("expected count 0 after eviction, got %d", c.Count(n))
	}
}

func TestCache_RemoveAbsentIsNoop(t *testing.T) {
	c := cache.New[*node]()
	c.Remove(&node{key: "missing"}) // must not panic or emit

	if c.Len() != 0 {
		t.Errorf("expected empty cache, got %d entries", c.Len())
	}
}

func TestCache_EventsOnTransitionsOnly(t *testing.T) {
	type event struct {
		ev  cache.Event
		key string
	}
	var events []event

	c := cache.New(func(ev cache.Event, n *node) {
		events = append(events, event{ev, n.key})
	})

	n := &node{key: "a"}
	c.Add(n)
	c.Add(n) // count 1→2, no event
	c.Remove(n)
	c.Remove(n) // count 1→0, event

	want := []event{{cache.EventAdd, "a"}, {cache.EventRemove, "a"}}
	if len(events) != len(want) {
		t.Fatalf("expected %d events, got %d", len(want), len(events))
	}
	for i, e := range want {
		if events[i] != e {
			t.Errorf("event %d: expected %v, got %v", i, e, events[i])
		}
	}
}

func TestCache_ListenersRunInRegistrationOrder(t *testing.T) {
	var order []int
	c := cache.New(func(cache.Event, *node) { order = append(order, 1) })
	c.Subscribe(func(cache.Event, *node) { order = append(order, 2) })

	c.Add(&node{key: "a"})

	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("expected listeners in registration order, got %v", order)
	}
}

func TestCache_ValuesInsertionOrder(t *testing.T) {
	c := cache.New[*node]()
	keys := []string{"c", "a", "b"}
	for _, k := range keys {
		c.Add(&node{key: k})
	}
	c.Add(&node{key: "a"}) // bump, must not reorder

	values := c.Values()
	if len(values) != 3 {
		t.Fatalf("expected 3 values, got %d", len(values))
	}
	for i, k := range keys {
		if values[i].key != k {
			t.Errorf("value %d: expected key '%s', got '%s'", i, k, values[i].key)
		}
	}
}

func TestCache_EmptyDrainsAllCounts(t *testing.T) {
	removed := 0
	c := cache.New(func(ev cache.Event, _ *node) {
		if ev == cache.EventRemove {
			removed++
		}
	})

	a := &node{key: "a"}
	b := &node{key: "b"}
	c.Add(a)
	c.Add(a)
	c.Add(a)
	c.Add(b)

	c.Empty()

	if c.Len() != 0 {
		t.Errorf("expected drained cache, got %d entries", c.Len())
	}
	if removed != 2 {
		t.Errorf("expected one remove event per entry (2), got %d", removed)
	}
}

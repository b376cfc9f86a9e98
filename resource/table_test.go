package resource

import (
	"testing"
)

type testObserver struct {
	events []Event
}

func (o *testObserver) OnResourceEvent(e Event) {
	o.events = append(o.events, e)
}

type dropCounter struct {
	count int
}

func (d *dropCounter) Drop() {
	d.count++
}

func TestTable_Basic(t *testing.T) {
	table := NewTable[string]()

	h := table.Insert("test")
	if h == 0 {
		t.Fatal("Expected non-zero handle")
	}

	val, ok := table.Get(h)
	if !ok || val != "test" {
		t.Fatalf("Get = %q, %v", val, ok)
	}

	val, ok = table.Remove(h)
	if !ok || val != "test" {
		t.Fatalf("Remove = %q, %v", val, ok)
	}
	if table.Len() != 0 {
		t.Fatal("Expected Len() == 0 after Remove")
	}
	if _, ok := table.Get(h); ok {
		t.Fatal("Get succeeded on a removed handle")
	}
	if _, ok := table.Remove(h); ok {
		t.Fatal("second Remove succeeded")
	}
}

func TestTable_InvalidHandles(t *testing.T) {
	table := NewTable[int]()
	table.Insert(1)

	for _, h := range []Handle{0, 2, 1000} {
		if _, ok := table.Get(h); ok {
			t.Errorf("Get(%d) succeeded", h)
		}
		if _, ok := table.Remove(h); ok {
			t.Errorf("Remove(%d) succeeded", h)
		}
	}
}

func TestTable_SlotReuse(t *testing.T) {
	table := NewTable[string]()

	h1 := table.Insert("a")
	h2 := table.Insert("b")
	table.Remove(h1)

	h3 := table.Insert("c")
	if h3 != h1 {
		t.Fatalf("freed slot not reused: got %d, want %d", h3, h1)
	}
	if v, _ := table.Get(h2); v != "b" {
		t.Fatalf("neighbouring value changed: %q", v)
	}
	if table.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", table.Len())
	}
}

func TestTable_Observer(t *testing.T) {
	table := NewTable[string]()
	obs := &testObserver{}
	table.Subscribe(obs)

	h := table.Insert("test")
	if len(obs.events) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(obs.events))
	}
	if obs.events[0].Type != EventCreated || obs.events[0].Handle != h {
		t.Fatalf("unexpected event %+v", obs.events[0])
	}

	table.Remove(h)
	if len(obs.events) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(obs.events))
	}
	if obs.events[1].Type != EventDropped || obs.events[1].Value != "test" {
		t.Fatalf("unexpected event %+v", obs.events[1])
	}

	table.Unsubscribe(obs)
	table.Insert("test2")
	if len(obs.events) != 2 {
		t.Fatal("Should not receive events after Unsubscribe")
	}
}

func TestTable_Each(t *testing.T) {
	table := NewTable[int]()
	for i := 1; i <= 5; i++ {
		table.Insert(i * 10)
	}

	sum := 0
	table.Each(func(h Handle, v int) bool {
		sum += v
		return true
	})
	if sum != 150 {
		t.Fatalf("sum = %d, want 150", sum)
	}

	visited := 0
	table.Each(func(h Handle, v int) bool {
		visited++
		return visited < 2
	})
	if visited != 2 {
		t.Fatalf("Each did not stop early: visited %d", visited)
	}

	// Removing while iterating is allowed.
	table.Each(func(h Handle, v int) bool {
		table.Remove(h)
		return true
	})
	if table.Len() != 0 {
		t.Fatalf("Len() = %d after removing everything", table.Len())
	}
}

func TestTable_Clear(t *testing.T) {
	table := NewTable[*dropCounter]()
	d := &dropCounter{}

	table.Insert(d)
	table.Insert(d)
	table.Insert(d)
	table.Clear()

	if table.Len() != 0 {
		t.Fatal("Expected Len() == 0 after Clear")
	}
	if d.count != 3 {
		t.Fatalf("Drop called %d times, want 3", d.count)
	}
	if h := table.Insert(d); h == 0 {
		t.Fatal("Clear closed the table")
	}
}

func TestTable_Close(t *testing.T) {
	table := NewTable[*dropCounter]()
	obs := &testObserver{}
	table.Subscribe(obs)

	a, b := &dropCounter{}, &dropCounter{}
	table.Insert(a)
	table.Insert(b)

	if err := table.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if a.count != 1 || b.count != 1 {
		t.Fatalf("drops = %d, %d, want 1, 1", a.count, b.count)
	}
	if len(obs.events) != 4 {
		t.Fatalf("events = %d, want 4", len(obs.events))
	}

	if h := table.Insert(&dropCounter{}); h != 0 {
		t.Fatal("Expected Insert to fail after Close")
	}
	if err := table.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}
	if a.count != 1 {
		t.Fatal("second Close dropped again")
	}
}

func TestTable_DropperInterface(t *testing.T) {
	table := NewTable[any]()
	d := &dropCounter{}

	h := table.Insert(d)
	table.Remove(h)

	if d.count != 1 {
		t.Fatalf("Expected Drop() to be called once, called %d times", d.count)
	}
}

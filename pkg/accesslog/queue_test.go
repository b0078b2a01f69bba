package accesslog

import "testing"

func TestQueueFIFOOrder(t *testing.T) {
	q := NewQueue()
	for i := 0; i < 5; i++ {
		q.Push(Entry{Door: 1, Principal: "Alice"})
	}
	if q.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", q.Len())
	}
	drained := q.DrainN(5)
	if len(drained) != 5 {
		t.Fatalf("drained %d entries, want 5", len(drained))
	}
	if q.Len() != 0 {
		t.Error("queue should be empty after draining all entries")
	}
}

func TestQueueOverflowDropsOldest(t *testing.T) {
	q := NewQueue()
	for i := 0; i < MaxQueueLength; i++ {
		q.Push(Entry{Credential: "first-batch"})
	}
	q.Push(Entry{Credential: "overflow"}) // 501st entry

	if q.Len() != MaxQueueLength {
		t.Fatalf("Len() = %d, want %d", q.Len(), MaxQueueLength)
	}
	head, ok := q.Peek()
	if !ok || head.Credential != "first-batch" {
		t.Errorf("expected the second-oldest entry to survive, got %+v", head)
	}
}

func TestQueuePopRemovesHeadOnly(t *testing.T) {
	q := NewQueue()
	q.Push(Entry{Credential: "a"})
	q.Push(Entry{Credential: "b"})
	q.Pop()
	head, ok := q.Peek()
	if !ok || head.Credential != "b" {
		t.Errorf("expected head to be \"b\" after popping \"a\", got %+v", head)
	}
}

func TestQueueTailReturnsNewestWithoutRemoving(t *testing.T) {
	q := NewQueue()
	q.Push(Entry{Credential: "a"})
	q.Push(Entry{Credential: "b"})
	tail, ok := q.Tail()
	if !ok || tail.Credential != "b" {
		t.Errorf("Tail() = %+v, want \"b\"", tail)
	}
	if q.Len() != 2 {
		t.Errorf("Tail() should not remove entries, Len() = %d", q.Len())
	}
}

func TestDrainNPartial(t *testing.T) {
	q := NewQueue()
	q.Push(Entry{Credential: "a"})
	q.Push(Entry{Credential: "b"})
	q.Push(Entry{Credential: "c"})
	drained := q.DrainN(2)
	if len(drained) != 2 || drained[0].Credential != "a" || drained[1].Credential != "b" {
		t.Errorf("DrainN(2) = %+v", drained)
	}
	if q.Len() != 1 {
		t.Errorf("Len() = %d, want 1", q.Len())
	}
}

package modal

import "testing"

func TestStoreOpenClose(t *testing.T) {
	s := NewStore()
	if s.IsOpen() {
		t.Fatal("new store should start closed")
	}

	s.Open()
	if !s.IsOpen() {
		t.Fatal("expected open after Open()")
	}

	s.Close()
	if s.IsOpen() {
		t.Fatal("expected closed after Close()")
	}
}

func TestStoreOpenWhileOpenIsNoOp(t *testing.T) {
	s := NewStore()
	var edges []bool
	s.Subscribe(func(open bool) { edges = append(edges, open) })

	s.Open()
	s.Open()
	s.Open()

	if !s.IsOpen() {
		t.Fatal("expected still open")
	}
	if len(edges) != 1 {
		t.Fatalf("expected a single closed-to-open edge, got %v", edges)
	}
}

func TestStoreNotifiesEdgesInOrder(t *testing.T) {
	s := NewStore()
	var edges []bool
	s.Subscribe(func(open bool) { edges = append(edges, open) })

	s.Open()
	s.Close()
	s.Close()
	s.Open()

	want := []bool{true, false, true}
	if len(edges) != len(want) {
		t.Fatalf("expected %v, got %v", want, edges)
	}
	for i := range want {
		if edges[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, edges)
		}
	}
}

func TestStoreIndependentInstances(t *testing.T) {
	a, b := NewStore(), NewStore()
	a.Open()
	if b.IsOpen() {
		t.Fatal("stores must not share state")
	}
}

func TestScrollLockReleaseIsIdempotent(t *testing.T) {
	l := NewScrollLock()

	release := l.Acquire()
	if !l.Locked() {
		t.Fatal("expected locked after acquire")
	}

	release()
	release() // double release from an abnormal teardown must not underflow
	if l.Locked() {
		t.Fatal("expected unlocked after release")
	}

	// A fresh acquire still works.
	release2 := l.Acquire()
	if !l.Locked() {
		t.Fatal("expected locked after re-acquire")
	}
	release2()
	if l.Locked() {
		t.Fatal("expected unlocked")
	}
}

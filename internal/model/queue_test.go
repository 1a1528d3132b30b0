package model

import "testing"

func TestQueueDedupesAndPairsInOrder(t *testing.T) {
	q := NewQueue()

	if err := q.AddPlayer(Player{ID: "alice"}); err != nil {
		t.Fatalf("add alice: %v", err)
	}
	if err := q.AddPlayer(Player{ID: "alice"}); err == nil {
		t.Fatal("expected duplicate enqueue to fail")
	}
	if err := q.AddPlayer(Player{ID: "bob"}); err != nil {
		t.Fatalf("add bob: %v", err)
	}
	if err := q.AddPlayer(Player{ID: "carol"}); err != nil {
		t.Fatalf("add carol: %v", err)
	}
	if q.Size() != 3 {
		t.Fatalf("queue size = %d, want 3", q.Size())
	}

	p1, p2 := q.GetNextPair()
	if p1.ID != "alice" || p2.ID != "bob" {
		t.Fatalf("paired (%s, %s), want the two longest waiting", p1.ID, p2.ID)
	}
	if q.Size() != 1 {
		t.Fatalf("queue size after pairing = %d, want 1", q.Size())
	}
}

func TestQueueRemovePlayer(t *testing.T) {
	q := NewQueue()
	q.AddPlayer(Player{ID: "alice"})
	q.AddPlayer(Player{ID: "bob"})
	q.AddPlayer(Player{ID: "carol"})

	q.RemovePlayer("bob")
	if q.Size() != 2 {
		t.Fatalf("queue size after removal = %d, want 2", q.Size())
	}
	q.RemovePlayer("nobody")
	if q.Size() != 2 {
		t.Fatalf("removing an absent player changed the size to %d", q.Size())
	}

	p1, p2 := q.GetNextPair()
	if p1.ID != "alice" || p2.ID != "carol" {
		t.Fatalf("paired (%s, %s), want the removed player skipped", p1.ID, p2.ID)
	}
}

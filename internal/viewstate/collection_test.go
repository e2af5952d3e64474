package viewstate

import (
	"testing"

	"github.com/painelfacil/painel-api/internal/core/domain"
)

func order(id int, status domain.OrderStatus) domain.Order {
	return domain.Order{ID: id, CustomerName: "Ana", Status: status}
}

// uniqueIDs fails the test if any id appears twice.
func uniqueIDs(t *testing.T, c *Collection[domain.Order]) {
	t.Helper()
	seen := make(map[int]bool)
	for _, it := range c.Snapshot() {
		if seen[it.ID] {
			t.Fatalf("duplicate id %d in collection", it.ID)
		}
		seen[it.ID] = true
	}
}

func TestCollection_CreateTwiceKeepsOneEntry(t *testing.T) {
	c := NewCollection[domain.Order](nil)

	// Optimistic POST-response insert and the pushed created event both
	// fire for the same record.
	c.ApplyCreate(order(1, domain.OrderPending))
	c.ApplyCreate(order(1, domain.OrderPending))

	if c.Len() != 1 {
		t.Fatalf("len = %d, want 1", c.Len())
	}
	uniqueIDs(t, c)
}

func TestCollection_UpdateIsIdempotent(t *testing.T) {
	c := NewCollection([]domain.Order{order(1, domain.OrderPending)})

	c.ApplyUpdate(order(1, domain.OrderConfirmed))
	once := c.Snapshot()

	c.ApplyUpdate(order(1, domain.OrderConfirmed))
	twice := c.Snapshot()

	if len(once) != len(twice) {
		t.Fatalf("len changed from %d to %d", len(once), len(twice))
	}
	if once[0].Status != twice[0].Status {
		t.Fatalf("status changed from %s to %s", once[0].Status, twice[0].Status)
	}
}

func TestCollection_UpdateUnknownIDInserts(t *testing.T) {
	c := NewCollection[domain.Order](nil)

	c.ApplyUpdate(order(9, domain.OrderConfirmed))

	got, ok := c.Get(9)
	if !ok {
		t.Fatal("self-healing insert did not happen")
	}
	if got.Status != domain.OrderConfirmed {
		t.Fatalf("status = %s", got.Status)
	}
}

func TestCollection_DeletionWins(t *testing.T) {
	c := NewCollection[domain.Order](nil)

	c.ApplyCreate(order(1, domain.OrderPending))
	c.ApplyUpdate(order(1, domain.OrderConfirmed))
	c.ApplyDelete(1)
	// Nothing later in the same batch resurrects the id.
	if _, ok := c.Get(1); ok {
		t.Fatal("deleted id still present")
	}

	c.ApplyDelete(1) // no-op on absent id
	if c.Len() != 0 {
		t.Fatalf("len = %d, want 0", c.Len())
	}
}

func TestCollection_InterleavingNeverDuplicates(t *testing.T) {
	c := NewCollection([]domain.Order{order(1, domain.OrderPending), order(2, domain.OrderPending)})

	c.ApplyCreate(order(3, domain.OrderPending))
	c.ApplyUpdate(order(2, domain.OrderCancelled))
	c.ApplyCreate(order(2, domain.OrderCancelled)) // late echo of an earlier create
	c.ApplyDelete(1)
	c.ApplyUpdate(order(1, domain.OrderCompleted)) // re-insert after delete
	c.ApplyCreate(order(3, domain.OrderConfirmed))

	uniqueIDs(t, c)
	if c.Len() != 3 {
		t.Fatalf("len = %d, want 3", c.Len())
	}
}

func TestCollection_PreservesInsertionOrder(t *testing.T) {
	c := NewCollection([]domain.Order{order(2, domain.OrderPending), order(1, domain.OrderPending)})
	c.ApplyCreate(order(3, domain.OrderPending))
	c.ApplyUpdate(order(2, domain.OrderConfirmed)) // replace in place

	want := []int{2, 1, 3}
	for i, it := range c.Snapshot() {
		if it.ID != want[i] {
			t.Fatalf("position %d = id %d, want %d", i, it.ID, want[i])
		}
	}
}

func TestEventID(t *testing.T) {
	cases := []struct {
		name    string
		payload any
		id      int
		ok      bool
	}{
		{"int", 5, 5, true},
		{"float64 from json", float64(7), 7, true},
		{"entity", order(3, domain.OrderPending), 3, true},
		{"string", "nope", 0, false},
		{"nil", nil, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			id, ok := EventID(tc.payload)
			if id != tc.id || ok != tc.ok {
				t.Fatalf("EventID(%v) = (%d, %v), want (%d, %v)", tc.payload, id, ok, tc.id, tc.ok)
			}
		})
	}
}

package state

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/churrascode/churrasco/internal/itemstore"
	"github.com/churrascode/churrasco/internal/payments"
)

func sampleDoc() itemstore.Document {
	return itemstore.Document{
		Items:       []itemstore.Item{{CollaboratorID: "1", Name: "Carvão", Quantity: 2}},
		ExtraGuests: itemstore.ExtraGuests{"1": 1},
	}
}

func TestStore_UpdateAndSnapshotClone(t *testing.T) {
	var s Store

	roster := []payments.Row{{CollaboratorID: "1", Name: "Ana", Paid: []bool{true}}}
	before := time.Now()
	s.Update(roster, sampleDoc(), nil)

	snap := s.Snapshot()
	if !snap.HasData || len(snap.Roster) != 1 || snap.Roster[0].Name != "Ana" {
		t.Fatalf("snapshot roster = %#v, want Ana", snap.Roster)
	}
	if len(snap.Document.Items) != 1 {
		t.Fatalf("snapshot items = %#v, want 1 item", snap.Document.Items)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.LastError != nil {
		t.Fatalf("LastError = %v, want nil", snap.LastError)
	}

	// Returned snapshot should be independent of the stored one.
	snap.Roster[0].Paid[0] = false
	snap.Document.Items[0].Name = "changed"
	snap.Document.ExtraGuests["1"] = 9
	snap2 := s.Snapshot()
	if !snap2.Roster[0].Paid[0] || snap2.Document.Items[0].Name != "Carvão" || snap2.Document.ExtraGuests["1"] != 1 {
		t.Fatalf("Snapshot should deep-copy data; got %#v", snap2)
	}

	// Nor should the caller's inputs alias stored data.
	roster[0].Name = "mutated"
	if s.Snapshot().Roster[0].Name != "Ana" {
		t.Fatal("Update should copy the roster")
	}
}

func TestStore_UpdateErrorKeepsPreviousData(t *testing.T) {
	var s Store

	s.Update([]payments.Row{{CollaboratorID: "1"}}, sampleDoc(), nil)

	origErr := errors.New("boom")
	s.Update(nil, itemstore.Document{}, origErr)

	snap := s.Snapshot()
	if !snap.HasData || len(snap.Roster) != 1 || len(snap.Document.Items) != 1 {
		t.Fatalf("data changed on error: %#v", snap)
	}
	if snap.LastError == nil || snap.LastError.Error() != "boom" {
		t.Fatalf("LastError = %v, want boom", snap.LastError)
	}
	if reflect.ValueOf(snap.LastError).Pointer() == reflect.ValueOf(origErr).Pointer() {
		t.Fatalf("Snapshot should clone error instance")
	}
	if !errors.Is(snap.LastError, origErr) {
		t.Fatalf("cloned error should wrap the original")
	}
}

func TestStore_ConsecutiveFailures(t *testing.T) {
	var s Store

	if s.Snapshot().IsOffline() {
		t.Fatal("IsOffline() = true, want false with 0 failures")
	}

	s.Update(nil, itemstore.Document{}, errors.New("fail 1"))
	if snap := s.Snapshot(); snap.ConsecutiveFailures != 1 || snap.IsOffline() {
		t.Fatalf("after one failure: %d failures, offline=%v", snap.ConsecutiveFailures, snap.IsOffline())
	}

	s.Update(nil, itemstore.Document{}, errors.New("fail 2"))
	if snap := s.Snapshot(); snap.ConsecutiveFailures != 2 || !snap.IsOffline() {
		t.Fatalf("after two failures: %d failures, offline=%v", snap.ConsecutiveFailures, snap.IsOffline())
	}

	s.Update(nil, itemstore.EmptyDocument(), nil)
	if snap := s.Snapshot(); snap.ConsecutiveFailures != 0 || snap.IsOffline() {
		t.Fatalf("success should reset failures; got %d", snap.ConsecutiveFailures)
	}
}

func TestStore_UpdateDocument(t *testing.T) {
	var s Store
	s.Update([]payments.Row{{CollaboratorID: "1"}}, itemstore.EmptyDocument(), nil)

	s.UpdateDocument(sampleDoc())
	snap := s.Snapshot()
	if len(snap.Document.Items) != 1 || len(snap.Roster) != 1 {
		t.Fatalf("UpdateDocument snapshot = %#v", snap)
	}
}

package dedup

import (
	"fmt"
	"testing"
)

func TestContains_TrueAfterAdd(t *testing.T) {
	l := NewLedger(100)

	if l.Contains("ev-1") {
		t.Fatal("empty ledger should not contain anything")
	}

	l.Add("ev-1")
	if !l.Contains("ev-1") {
		t.Fatal("ledger should contain id immediately after Add")
	}
}

// Over capacity, exactly the most recent 100 distinct ids survive and
// eviction is oldest-first.
func TestAdd_EvictsOldestFirst(t *testing.T) {
	l := NewLedger(100)

	for i := 0; i < 150; i++ {
		l.Add(fmt.Sprintf("ev-%d", i))
	}

	if got := l.Len(); got != 100 {
		t.Fatalf("expected 100 retained entries, got %d", got)
	}

	for i := 0; i < 50; i++ {
		if l.Contains(fmt.Sprintf("ev-%d", i)) {
			t.Fatalf("ev-%d should have been evicted", i)
		}
	}
	for i := 50; i < 150; i++ {
		if !l.Contains(fmt.Sprintf("ev-%d", i)) {
			t.Fatalf("ev-%d should still be retained", i)
		}
	}
}

// An entry stays visible until 100 subsequent distinct ids push it out.
func TestContains_SurvivesUntilCapacityExceeded(t *testing.T) {
	l := NewLedger(100)

	l.Add("first")
	for i := 0; i < 99; i++ {
		l.Add(fmt.Sprintf("filler-%d", i))
	}
	if !l.Contains("first") {
		t.Fatal("id evicted too early: only 99 ids added after it")
	}

	l.Add("filler-99")
	if l.Contains("first") {
		t.Fatal("id should be evicted after 100 subsequent adds")
	}
}

func TestNewLedger_NonPositiveCapacityUsesDefault(t *testing.T) {
	l := NewLedger(0)

	for i := 0; i < DefaultCapacity+1; i++ {
		l.Add(fmt.Sprintf("ev-%d", i))
	}
	if got := l.Len(); got != DefaultCapacity {
		t.Fatalf("expected default capacity %d, got %d", DefaultCapacity, got)
	}
}

package main

import "testing"

func TestWhowasRingRecordAndLookup(t *testing.T) {
	r := newWhowasRing(2)
	r.Record(WhowasEntry{Nick: "alice", User: "a1"})
	r.Record(WhowasEntry{Nick: "alice", User: "a2"})

	entries := r.Lookup(Rfc1459, "alice")
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, wanted 2", len(entries))
	}
	if entries[0].User != "a2" {
		t.Errorf("entries[0].User = %q, wanted a2 (most recent first)", entries[0].User)
	}
}

func TestWhowasRingEvictsOldest(t *testing.T) {
	r := newWhowasRing(2)
	r.Record(WhowasEntry{Nick: "alice", User: "a1"})
	r.Record(WhowasEntry{Nick: "bob", User: "b1"})
	r.Record(WhowasEntry{Nick: "carol", User: "c1"})

	if entries := r.Lookup(Rfc1459, "alice"); len(entries) != 0 {
		t.Errorf("expected alice's entry to have been evicted, got %v", entries)
	}
	if entries := r.Lookup(Rfc1459, "bob"); len(entries) != 1 {
		t.Errorf("expected bob's entry to still be present, got %v", entries)
	}
	if entries := r.Lookup(Rfc1459, "carol"); len(entries) != 1 {
		t.Errorf("expected carol's entry to be present, got %v", entries)
	}
}

func TestWhowasRingCaseFolding(t *testing.T) {
	r := newWhowasRing(10)
	r.Record(WhowasEntry{Nick: "Alice", User: "a1"})

	entries := r.Lookup(Rfc1459, canonicalizeNick(Rfc1459, "alice"))
	if len(entries) != 1 {
		t.Fatalf("expected case-folded lookup to find the entry, got %d", len(entries))
	}
}

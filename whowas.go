package main

import "time"

// WhowasEntry is one historical record of a nick that has left the network,
// kept for the WHOWAS command (§4.6, §5).
type WhowasEntry struct {
	Nick     string
	User     string
	RealName string
	Host     string
	When     time.Time
}

// WhowasRing is a bounded FIFO of recent departures, evicted oldest-first
// once full. Size is configurable (Options.WhowasHistorySize, default 100
// per §5).
type WhowasRing struct {
	entries []WhowasEntry
	size    int
	next    int // next slot to write once full
	full    bool
}

func newWhowasRing(size int) *WhowasRing {
	if size <= 0 {
		size = 100
	}
	return &WhowasRing{entries: make([]WhowasEntry, 0, size), size: size}
}

// Record appends an entry, evicting the oldest if the ring is at capacity.
func (r *WhowasRing) Record(e WhowasEntry) {
	if len(r.entries) < r.size {
		r.entries = append(r.entries, e)
		return
	}
	r.entries[r.next] = e
	r.next = (r.next + 1) % r.size
	r.full = true
}

// Lookup returns every recorded entry for a canonical nick, most recent
// first.
func (r *WhowasRing) Lookup(d Dialect, canonicalNick string) []WhowasEntry {
	var out []WhowasEntry
	n := len(r.entries)
	start := n - 1
	if r.full {
		start = r.next - 1
		if start < 0 {
			start = n - 1
		}
	}
	for i, seen := start, 0; seen < n; i, seen = i-1, seen+1 {
		if i < 0 {
			i = n - 1
		}
		e := r.entries[i]
		if canonicalizeNick(d, e.Nick) == canonicalNick {
			out = append(out, e)
		}
	}
	return out
}

package main

import "testing"

func TestIsValidNick(t *testing.T) {
	tests := []struct {
		dialect Dialect
		nick    string
		valid   bool
	}{
		{Rfc1459, "alice", true},
		{Rfc1459, "Alice_9", true},
		{Rfc1459, "[bot]", true},
		{Rfc1459, "a b", false},
		{Rfc1459, "", false},
		{Rfc1459, "z", true},
		{Rfc1459, "Z", true},
		{Rfc1459, "9", true},
		{Modern, "alice!", false},
		{Modern, "alice#chan", false},
		{Modern, "alice", true},
	}

	for _, test := range tests {
		got := isValidNick(test.dialect, 30, test.nick)
		if got != test.valid {
			t.Errorf("isValidNick(%v, %q) = %v, wanted %v", test.dialect, test.nick, got, test.valid)
		}
	}
}

func TestIsValidNickLength(t *testing.T) {
	if isValidNick(Rfc1459, 5, "abcdef") {
		t.Errorf("expected nick longer than max length to be rejected")
	}
	if !isValidNick(Rfc1459, 5, "abcde") {
		t.Errorf("expected nick at max length to be accepted")
	}
}

func TestIsValidChannelName(t *testing.T) {
	reg := NewChannelTypeRegistry()

	tests := []struct {
		name  string
		valid bool
	}{
		{"#room", true},
		{"room", false},
		{"#room with space", false},
		{"#room,comma", false},
		{"&room", false},
		{"", false},
	}

	for _, test := range tests {
		got := isValidChannelName(reg, 50, test.name)
		if got != test.valid {
			t.Errorf("isValidChannelName(%q) = %v, wanted %v", test.name, got, test.valid)
		}
	}
}

func TestCanonicalizeNickLegacyFolding(t *testing.T) {
	tests := []struct {
		a, b string
	}{
		{"Alice", "alice"},
		{"Foo{}", "foo[]"},
		{"bar|baz", "bar\\baz"},
		{"x^y", "x~y"},
	}

	for _, test := range tests {
		ca := canonicalizeNick(Rfc1459, test.a)
		cb := canonicalizeNick(Rfc1459, test.b)
		if ca != cb {
			t.Errorf("canonicalizeNick(%q)=%q, canonicalizeNick(%q)=%q, wanted equal",
				test.a, ca, test.b, cb)
		}
	}
}

func TestCanonicalizeNickModernDoesNotFold(t *testing.T) {
	a := canonicalizeNick(Modern, "Foo{}")
	b := canonicalizeNick(Modern, "foo[]")
	if a == b {
		t.Errorf("modern dialect should not fold {}| to []\\~, got equal canon forms %q", a)
	}
}

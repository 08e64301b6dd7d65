package main

import "strings"

// wildcardMatch reports whether s matches pattern, where '*' matches any run
// of characters (including none) and '?' matches exactly one character.
// Grounded on the glob semantics horgh-catbox's ircd_test.go exercises for
// ban/exception masks (TestUserMatchesMask); case-insensitive, since IRC
// masks are conventionally matched without regard to case.
func wildcardMatch(pattern, s string) bool {
	pattern = strings.ToLower(pattern)
	s = strings.ToLower(s)
	return globMatch(pattern, s)
}

// globMatch is a standard two-pointer glob matcher with backtracking on '*'.
func globMatch(pattern, s string) bool {
	var pi, si int
	var starIdx, starMatch = -1, 0

	for si < len(s) {
		if pi < len(pattern) && (pattern[pi] == '?' || pattern[pi] == s[si]) {
			pi++
			si++
			continue
		}
		if pi < len(pattern) && pattern[pi] == '*' {
			starIdx = pi
			starMatch = si
			pi++
			continue
		}
		if starIdx != -1 {
			pi = starIdx + 1
			starMatch++
			si = starMatch
			continue
		}
		return false
	}

	for pi < len(pattern) && pattern[pi] == '*' {
		pi++
	}

	return pi == len(pattern)
}

// maskMatch reports whether a nick!user@host usermask matches a ban-style
// mask of the same form.
func maskMatch(usermask, mask string) bool {
	return wildcardMatch(mask, usermask)
}

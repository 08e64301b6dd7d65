package main

import "testing"

func TestModeRegistryDialectGating(t *testing.T) {
	rfc1459 := NewModeRegistry(Rfc1459)
	if _, ok := rfc1459.Rank('h'); ok {
		t.Errorf("half-op should not exist under Rfc1459")
	}
	if _, ok := rfc1459.ChannelMode('e'); ok {
		t.Errorf("ban-exception should not exist under Rfc1459")
	}

	rfc2810 := NewModeRegistry(Rfc2810)
	if _, ok := rfc2810.ChannelMode('e'); !ok {
		t.Errorf("ban-exception should exist under Rfc2810")
	}
	if _, ok := rfc2810.Rank('h'); ok {
		t.Errorf("half-op should not exist under Rfc2810")
	}

	modern := NewModeRegistry(Modern)
	if _, ok := modern.Rank('h'); !ok {
		t.Errorf("half-op should exist under Modern")
	}
	if _, ok := modern.ChannelMode('c'); !ok {
		t.Errorf("colorless mode should exist under Modern")
	}
}

func TestModeRegistryHighestRank(t *testing.T) {
	r := NewModeRegistry(Modern)
	hi := r.HighestRank()
	if hi.Letter != 'o' {
		t.Errorf("HighestRank().Letter = %c, wanted o", hi.Letter)
	}
}

func TestModeRegistryRanksByLevelDescending(t *testing.T) {
	r := NewModeRegistry(Modern)
	levels := r.RanksByLevel()
	for i := 1; i < len(levels); i++ {
		if levels[i-1].Level < levels[i].Level {
			t.Fatalf("ranks not sorted descending by level: %v", levels)
		}
	}
}

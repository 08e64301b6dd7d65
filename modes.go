package main

// ModeRegistry is the C2 component: the catalog of channel modes, channel
// ranks, and user modes recognized by the active dialect. It is built once
// at startup (NewModeRegistry) and never mutated afterward, mirroring the
// one-shot registration horgh-catbox does for its much smaller mode set in
// ircd.go/local_user.go.

// Rank is a per-channel status flag: op, half-op, or voice.
type Rank struct {
	Letter byte
	Prefix byte // the symbol used in NAMES/WHO output, e.g. '@', '%', '+'
	Name   string
	// Level orders ranks for privilege comparisons; higher is more
	// privileged. Op > half-op > voice.
	Level int
}

// ChannelMode describes one channel-mode letter.
type ChannelMode struct {
	Letter byte

	// ParamOnSet/ParamOnUnset say whether setting/unsetting this mode consumes
	// a parameter token from the MODE command.
	ParamOnSet   bool
	ParamOnUnset bool

	// IsList means the mode holds a mask list (ban, ban-exception,
	// invite-exception, invite-list) rather than a single value.
	IsList bool

	// MinRank is the minimum rank level required to change this mode. Most
	// channel modes require op; ban/ban-exception may be settable by half-op
	// under Modern (see NewModeRegistry).
	MinRank int
}

// UserMode describes one user-mode letter (invisible, oper, local-oper,
// restricted, wallops, ...).
type UserMode struct {
	Letter byte

	// OperOnly means only a server operator may set this on themselves (the
	// oper flag itself is instead granted by the OPER command, never by MODE;
	// see handlers_oper.go).
	OperOnly bool
}

// ModeRegistry is the dialect-scoped catalog.
type ModeRegistry struct {
	Dialect Dialect

	channelModes map[byte]ChannelMode
	ranks        map[byte]Rank
	userModes    map[byte]UserMode

	// ranksByLevel is ranks sorted most-privileged first, used to pick the
	// rank a channel creator gets and to pick the highest-rank prefix to show.
	ranksByLevel []Rank
}

// NewModeRegistry builds the registry for a dialect, per spec §4.2.
func NewModeRegistry(d Dialect) *ModeRegistry {
	r := &ModeRegistry{
		Dialect:      d,
		channelModes: map[byte]ChannelMode{},
		ranks:        map[byte]Rank{},
		userModes:    map[byte]UserMode{},
	}

	// Always-present channel modes.
	r.addChannelMode(ChannelMode{Letter: 'b', ParamOnSet: true, ParamOnUnset: true, IsList: true, MinRank: 0})
	r.addChannelMode(ChannelMode{Letter: 'i', MinRank: 0})
	r.addChannelMode(ChannelMode{Letter: 'k', ParamOnSet: true, ParamOnUnset: false, MinRank: 0})
	r.addChannelMode(ChannelMode{Letter: 'l', ParamOnSet: true, ParamOnUnset: false, MinRank: 0})
	r.addChannelMode(ChannelMode{Letter: 'm', MinRank: 0})
	r.addChannelMode(ChannelMode{Letter: 'n', MinRank: 0})
	r.addChannelMode(ChannelMode{Letter: 's', MinRank: 0})
	r.addChannelMode(ChannelMode{Letter: 'p', MinRank: 0})
	r.addChannelMode(ChannelMode{Letter: 't', MinRank: 0})

	// Always-present ranks: op, voice.
	opLevel := 100
	voiceLevel := 10
	r.addRank(Rank{Letter: 'o', Prefix: '@', Name: "op", Level: opLevel})
	r.addRank(Rank{Letter: 'v', Prefix: '+', Name: "voice", Level: voiceLevel})

	// Always-present user modes.
	r.addUserMode(UserMode{Letter: 'O', OperOnly: true}) // local-oper
	r.addUserMode(UserMode{Letter: 'i'})                 // invisible
	r.addUserMode(UserMode{Letter: 'o', OperOnly: true}) // oper (set only via OPER/server)
	r.addUserMode(UserMode{Letter: 'r'})                 // restricted
	r.addUserMode(UserMode{Letter: 'w'})                 // wallops

	// ban/invite exceptions require half-op or better to change under Modern;
	// under Rfc2810 they're op-only since half-op doesn't exist yet.
	minRankForExceptions := opLevel
	if d.atLeast(Rfc2810) {
		r.addChannelMode(ChannelMode{Letter: 'e', ParamOnSet: true, ParamOnUnset: true, IsList: true, MinRank: minRankForExceptions})
		r.addChannelMode(ChannelMode{Letter: 'I', ParamOnSet: true, ParamOnUnset: true, IsList: true, MinRank: minRankForExceptions})
	}

	if d.atLeast(Modern) {
		r.addChannelMode(ChannelMode{Letter: 'c', MinRank: 0})
		r.addChannelMode(ChannelMode{Letter: 'T', MinRank: 0})

		halfOpLevel := 50
		r.addRank(Rank{Letter: 'h', Prefix: '%', Name: "half-op", Level: halfOpLevel})

		// Half-op may now change ban/ban-exception/invite-exception.
		minRankForExceptions = halfOpLevel
		r.channelModes['e'] = ChannelMode{Letter: 'e', ParamOnSet: true, ParamOnUnset: true, IsList: true, MinRank: minRankForExceptions}
		r.channelModes['I'] = ChannelMode{Letter: 'I', ParamOnSet: true, ParamOnUnset: true, IsList: true, MinRank: minRankForExceptions}
		r.channelModes['b'] = ChannelMode{Letter: 'b', ParamOnSet: true, ParamOnUnset: true, IsList: true, MinRank: halfOpLevel}
	}

	r.rebuildRanksByLevel()

	return r
}

func (r *ModeRegistry) addChannelMode(m ChannelMode) { r.channelModes[m.Letter] = m }
func (r *ModeRegistry) addRank(rk Rank)              { r.ranks[rk.Letter] = rk }
func (r *ModeRegistry) addUserMode(m UserMode)       { r.userModes[m.Letter] = m }

func (r *ModeRegistry) rebuildRanksByLevel() {
	r.ranksByLevel = nil
	for _, rk := range r.ranks {
		r.ranksByLevel = append(r.ranksByLevel, rk)
	}
	// Insertion-sort by level descending; the rank set is tiny (<=3).
	for i := 1; i < len(r.ranksByLevel); i++ {
		for j := i; j > 0 && r.ranksByLevel[j-1].Level < r.ranksByLevel[j].Level; j-- {
			r.ranksByLevel[j-1], r.ranksByLevel[j] = r.ranksByLevel[j], r.ranksByLevel[j-1]
		}
	}
}

// ChannelMode looks up a channel-mode letter. ok is false if the letter
// isn't registered in this dialect (spec P4).
func (r *ModeRegistry) ChannelMode(letter byte) (ChannelMode, bool) {
	m, ok := r.channelModes[letter]
	return m, ok
}

// Rank looks up a rank letter.
func (r *ModeRegistry) Rank(letter byte) (Rank, bool) {
	rk, ok := r.ranks[letter]
	return rk, ok
}

// UserMode looks up a user-mode letter.
func (r *ModeRegistry) UserMode(letter byte) (UserMode, bool) {
	m, ok := r.userModes[letter]
	return m, ok
}

// HighestRank returns the most privileged rank available in the dialect.
// JOIN grants this to a channel's creator.
func (r *ModeRegistry) HighestRank() Rank {
	return r.ranksByLevel[0]
}

// RankChangeMinLevel is the rank level required to grant/revoke ranks with
// MODE.
func (r *ModeRegistry) RankChangeMinLevel() int {
	return 100
}

// RanksByLevel returns ranks most-privileged first, used to compute a
// member's display prefix in NAMES/WHO.
func (r *ModeRegistry) RanksByLevel() []Rank {
	return r.ranksByLevel
}

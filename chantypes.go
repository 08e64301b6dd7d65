package main

// ChannelType describes the semantics attached to a channel-name prefix
// character (C3). Only the normal '#' channel is defined by spec §4.3; the
// registry shape is extensible so '&', '+', '!' could be added later without
// touching consumers.
type ChannelType struct {
	Prefix byte

	SupportsModes  bool
	SupportsBans   bool
	SupportsInvite bool

	// CrossServerVisible says whether membership in this channel type is
	// announced to linked servers. Always false here: server linking is a
	// reserved extension point per spec §9, not implemented.
	CrossServerVisible bool
}

// ChannelTypeRegistry maps a prefix byte to its ChannelType.
type ChannelTypeRegistry struct {
	types map[byte]ChannelType
}

// NewChannelTypeRegistry builds the registry. Only NormalChannel ('#') is
// registered, per spec §4.3.
func NewChannelTypeRegistry() *ChannelTypeRegistry {
	r := &ChannelTypeRegistry{types: map[byte]ChannelType{}}
	r.types['#'] = ChannelType{
		Prefix:         '#',
		SupportsModes:  true,
		SupportsBans:   true,
		SupportsInvite: true,
	}
	return r
}

// Lookup returns the ChannelType for a name's first byte, if registered.
func (r *ChannelTypeRegistry) Lookup(prefix byte) (ChannelType, bool) {
	t, ok := r.types[prefix]
	return t, ok
}

// IsRegisteredPrefix reports whether a byte is a known channel-type prefix.
func (r *ChannelTypeRegistry) IsRegisteredPrefix(b byte) bool {
	_, ok := r.types[b]
	return ok
}

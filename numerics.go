package main

// Numeric reply codes used by the core (§4.6/§6). github.com/horgh/irc only
// defines the two it needed (ReplyWelcome, ReplyYoureOper); the rest of the
// catalog this server actually emits lives here.
const (
	RplWelcome  = "001"
	RplYourHost = "002"
	RplCreated  = "003"
	RplMyInfo   = "004"
	RplISupport = "005"

	RplAway    = "301"
	RplUnAway  = "305"
	RplNowAway = "306"

	RplWhoisUser     = "311"
	RplWhoisServer   = "312"
	RplWhoisOperator = "313"
	RplWhoWasUser    = "314"
	RplEndOfWho      = "315"
	RplWhoisIdle     = "317"
	RplEndOfWhois    = "318"
	RplWhoisChannels = "319"

	RplListStart       = "321"
	RplList            = "322"
	RplListEnd         = "323"
	RplChannelMode     = "324"
	RplNoTopic         = "331"
	RplTopic           = "332"
	RplTopicWhoTime    = "333"
	RplInviting        = "341"
	RplWhoReply        = "352"
	RplNameReply       = "353"
	RplLinks           = "364"
	RplEndOfLinks      = "365"
	RplEndOfNames      = "366"
	RplBanList         = "367"
	RplEndOfBanList    = "368"
	RplInviteList      = "346"
	RplEndOfInviteList = "347"
	RplExceptList      = "348"
	RplEndOfExceptList = "349"
	RplEndOfWhoWas     = "369"
	RplMotd            = "372"
	RplMotdStart       = "375"
	RplEndOfMotd       = "376"
	RplYoureOper       = "381"
	RplRehashing       = "382"

	RplLUserClient   = "251"
	RplLUserOp       = "252"
	RplLUserUnknown  = "253"
	RplLUserChannels = "254"
	RplLUserMe       = "255"

	RplAdminMe   = "256"
	RplAdminLoc1 = "257"

	RplTime = "391"

	RplInfo      = "371"
	RplEndOfInfo = "374"

	RplVersion = "351"

	RplIson     = "303"
	RplUserhost = "302"

	RplStatsOLine  = "243"
	RplStatsUptime = "242"
	RplEndOfStats  = "219"

	RplSilelist      = "271"
	RplEndOfSilelist = "272"

	ErrNoSuchNick        = "401"
	ErrNoSuchChannel     = "403"
	ErrCannotSendToChan  = "404"
	ErrNoTextToSend      = "412"
	ErrTooManyChannels   = "405"
	ErrWasNoSuchNick     = "406"
	ErrNoOrigin          = "409"
	ErrUnknownCommand    = "421"
	ErrNoMotd            = "422"
	ErrNoNicknameGiven   = "431"
	ErrErroneusNickname  = "432"
	ErrNicknameInUse     = "433"
	ErrUserNotInChannel  = "441"
	ErrNotOnChannel      = "442"
	ErrUserOnChannel     = "443"
	ErrNotRegistered     = "451"
	ErrNeedMoreParams    = "461"
	ErrAlreadyRegistered = "462"
	ErrPasswdMismatch    = "464"
	ErrKeySet            = "467"
	ErrChannelIsFull     = "471"
	ErrUnknownMode       = "472"
	ErrInviteOnlyChan    = "473"
	ErrBannedFromChan    = "474"
	ErrBadChannelKey     = "475"
	ErrNoPrivileges      = "481"
	ErrChanOPrivsNeeded  = "482"
	ErrUmodeUnknownFlag  = "501"
	ErrUsersDontMatch    = "502"
)

package main

// registerCommands builds the C6 name->handler table for every command
// named in §4.6's required-command list, with the arity/registration/oper/
// dialect gates the dispatcher checks before invoking each handler.
func registerCommands(s *Server) {
	reg := func(spec *CommandSpec) { s.Commands.Register(spec) }

	// Registration handshake: accepted before registration completes.
	reg(&CommandSpec{Name: "PASS", MinArgs: 1, Handler: handlePass})
	reg(&CommandSpec{Name: "NICK", MinArgs: 1, Handler: handleNick})
	reg(&CommandSpec{Name: "USER", MinArgs: 4, Handler: handleUser})
	reg(&CommandSpec{Name: "CAP", MinArgs: 1, MinDialect: Modern, Handler: handleCap})
	reg(&CommandSpec{Name: "QUIT", Handler: handleQuit})
	reg(&CommandSpec{Name: "PING", Handler: handlePing})
	reg(&CommandSpec{Name: "PONG", Handler: handlePong})

	// Channel operations.
	reg(&CommandSpec{Name: "JOIN", MinArgs: 1, RequiresRegistration: true, Handler: handleJoin})
	reg(&CommandSpec{Name: "PART", MinArgs: 1, RequiresRegistration: true, Handler: handlePart})
	reg(&CommandSpec{Name: "TOPIC", MinArgs: 1, RequiresRegistration: true, Handler: handleTopic})
	reg(&CommandSpec{Name: "NAMES", RequiresRegistration: true, Handler: handleNames})
	reg(&CommandSpec{Name: "LIST", RequiresRegistration: true, Handler: handleList})
	reg(&CommandSpec{Name: "INVITE", MinArgs: 2, RequiresRegistration: true, Handler: handleInvite})
	reg(&CommandSpec{Name: "KICK", MinArgs: 2, RequiresRegistration: true, Handler: handleKick})
	reg(&CommandSpec{Name: "KNOCK", MinArgs: 1, RequiresRegistration: true, MinDialect: Modern, Handler: handleKnock})

	// Mode.
	reg(&CommandSpec{Name: "MODE", MinArgs: 1, RequiresRegistration: true, Handler: handleMode})

	// Messaging.
	reg(&CommandSpec{Name: "PRIVMSG", MinArgs: 1, RequiresRegistration: true, Handler: handlePrivmsg})
	reg(&CommandSpec{Name: "NOTICE", MinArgs: 1, RequiresRegistration: true, Handler: handleNotice})
	reg(&CommandSpec{Name: "AWAY", RequiresRegistration: true, Handler: handleAway})

	// Queries.
	reg(&CommandSpec{Name: "WHO", RequiresRegistration: true, Handler: handleWho})
	reg(&CommandSpec{Name: "WHOIS", MinArgs: 1, RequiresRegistration: true, Handler: handleWhois})
	reg(&CommandSpec{Name: "WHOWAS", MinArgs: 1, RequiresRegistration: true, Handler: handleWhowas})
	reg(&CommandSpec{Name: "ISON", MinArgs: 1, RequiresRegistration: true, Handler: handleIson})
	reg(&CommandSpec{Name: "USERHOST", MinArgs: 1, RequiresRegistration: true, Handler: handleUserhost})
	reg(&CommandSpec{Name: "LUSERS", RequiresRegistration: true, Handler: handleLusers})
	reg(&CommandSpec{Name: "MOTD", RequiresRegistration: true, Handler: handleMotdCmd})
	reg(&CommandSpec{Name: "VERSION", RequiresRegistration: true, Handler: handleVersion})
	reg(&CommandSpec{Name: "TIME", RequiresRegistration: true, Handler: handleTime})
	reg(&CommandSpec{Name: "ADMIN", RequiresRegistration: true, Handler: handleAdmin})
	reg(&CommandSpec{Name: "INFO", RequiresRegistration: true, Handler: handleInfo})
	reg(&CommandSpec{Name: "LINKS", RequiresRegistration: true, Handler: handleLinks})
	reg(&CommandSpec{Name: "STATS", RequiresRegistration: true, Handler: handleStats})

	// Operator / process lifecycle.
	reg(&CommandSpec{Name: "OPER", MinArgs: 2, RequiresRegistration: true, Handler: handleOper})
	reg(&CommandSpec{Name: "KILL", MinArgs: 2, RequiresRegistration: true, OperOnly: true, Handler: handleKill})
	reg(&CommandSpec{Name: "REHASH", RequiresRegistration: true, OperOnly: true, Handler: handleRehash})
	reg(&CommandSpec{Name: "RESTART", RequiresRegistration: true, OperOnly: true, Handler: handleRestart})
	reg(&CommandSpec{Name: "DIE", RequiresRegistration: true, OperOnly: true, Handler: handleDie})
	reg(&CommandSpec{Name: "WALLOPS", MinArgs: 1, RequiresRegistration: true, OperOnly: true, Handler: handleWallops})

	// Modern-only extensions beyond CAP/KNOCK.
	reg(&CommandSpec{Name: "SILENCE", MinDialect: Modern, RequiresRegistration: true, Handler: handleSilence})
	reg(&CommandSpec{Name: "LANGUAGE", MinDialect: Modern, RequiresRegistration: true, Handler: handleLanguage})

	// Server-linking surface named by §4.6 but out of scope (§9): accepted so
	// a well-behaved client gets a NOTICE rather than 421, never wired to
	// any cross-server behavior.
	for _, name := range []string{"CONNECT", "SQUIT", "SERVER", "SUMMON", "TRACE"} {
		reg(&CommandSpec{Name: name, RequiresRegistration: true, OperOnly: true, Handler: unsupportedServerLinkCommand})
	}
	reg(&CommandSpec{Name: "SERVICE", RequiresRegistration: true, OperOnly: true, Handler: unsupportedServerLinkCommand})
	reg(&CommandSpec{Name: "ERROR", Handler: handleError})
	reg(&CommandSpec{Name: "SERVLIST", MinDialect: Rfc2810, RequiresRegistration: true, Handler: unsupportedServerLinkCommand})
	reg(&CommandSpec{Name: "SQUERY", MinDialect: Rfc2810, RequiresRegistration: true, Handler: unsupportedServerLinkCommand})
}

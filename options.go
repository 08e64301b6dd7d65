package main

import (
	"strconv"
	"strings"
	"time"

	"github.com/horgh/config"
	"github.com/pkg/errors"
)

// Options is the server's immutable per-run configuration (C1). Nothing
// outside NewOptions may mutate it after construction.
type Options struct {
	Dialect Dialect

	ServerName string
	ServerInfo string
	Version    string

	// ServerPass, if non-blank, must be supplied via PASS before NICK/USER.
	ServerPass string

	ListenPorts []string
	ListenHost  string

	MaxLineLength        int
	MaxNickLength        int
	MaxChannelsPerUser   int
	MaxChannelNameLength int
	WhowasHistorySize    int

	PingTime time.Duration
	DeadTime time.Duration

	// Opers maps oper name to password, loaded from a separate key=value file.
	Opers map[string]string

	// MOTD holds the Message-of-the-day collaborator's lines.
	MOTD *MOTD

	// ConfigFile is the path we were loaded from, kept for REHASH.
	ConfigFile string
}

// NewOptions loads and validates the server configuration from a flat
// key=value file, following horgh-catbox's config.go convention of reading
// a small set of required top-level keys plus pointers to satellite files.
func NewOptions(path string) (*Options, error) {
	configMap, err := config.ReadStringMap(path)
	if err != nil {
		return nil, errors.Wrap(err, "unable to read config file")
	}

	required := []string{
		"server-name",
		"server-info",
		"version",
		"dialect",
		"listen-host",
		"listen-ports",
		"max-line-length",
		"max-nick-length",
		"max-channels-per-user",
		"max-channel-name-length",
		"whowas-history-size",
		"ping-time",
		"dead-time",
	}
	for _, key := range required {
		v, exists := configMap[key]
		if !exists || len(v) == 0 {
			return nil, errors.Errorf("missing or blank required config key: %s", key)
		}
	}

	o := &Options{ConfigFile: path}

	o.Dialect, err = ParseDialect(configMap["dialect"])
	if err != nil {
		return nil, errors.Wrap(err, "invalid dialect")
	}

	o.ServerName = configMap["server-name"]
	o.ServerInfo = configMap["server-info"]
	o.Version = configMap["version"]
	o.ServerPass = configMap["server-pass"]
	o.ListenHost = configMap["listen-host"]
	o.ListenPorts = strings.Split(configMap["listen-ports"], ",")
	for i := range o.ListenPorts {
		o.ListenPorts[i] = strings.TrimSpace(o.ListenPorts[i])
	}

	if o.MaxLineLength, err = parsePositiveInt(configMap["max-line-length"]); err != nil {
		return nil, errors.Wrap(err, "max-line-length")
	}
	if o.MaxNickLength, err = parsePositiveInt(configMap["max-nick-length"]); err != nil {
		return nil, errors.Wrap(err, "max-nick-length")
	}
	if o.MaxChannelsPerUser, err = parsePositiveInt(configMap["max-channels-per-user"]); err != nil {
		return nil, errors.Wrap(err, "max-channels-per-user")
	}
	if o.MaxChannelNameLength, err = parsePositiveInt(configMap["max-channel-name-length"]); err != nil {
		return nil, errors.Wrap(err, "max-channel-name-length")
	}
	if o.WhowasHistorySize, err = parsePositiveInt(configMap["whowas-history-size"]); err != nil {
		return nil, errors.Wrap(err, "whowas-history-size")
	}

	if o.PingTime, err = time.ParseDuration(configMap["ping-time"]); err != nil {
		return nil, errors.Wrap(err, "ping-time")
	}
	if o.DeadTime, err = time.ParseDuration(configMap["dead-time"]); err != nil {
		return nil, errors.Wrap(err, "dead-time")
	}

	if opersFile, exists := configMap["opers-config"]; exists && len(opersFile) > 0 {
		opers, err := config.ReadStringMap(opersFile)
		if err != nil {
			return nil, errors.Wrap(err, "unable to load opers config")
		}
		o.Opers = opers
	} else {
		o.Opers = map[string]string{}
	}

	motdFile := configMap["motd-file"]
	motd, err := LoadMOTD(motdFile)
	if err != nil {
		return nil, errors.Wrap(err, "unable to load motd")
	}
	o.MOTD = motd

	return o, nil
}

func parsePositiveInt(s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if v <= 0 {
		return 0, errors.Errorf("value must be positive: %d", v)
	}
	return v, nil
}

// defaultMaxLineLength is used by tests and by NewOptionsForTest; production
// configuration always supplies an explicit value.
const defaultMaxLineLength = 512

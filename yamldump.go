package main

import (
	"gopkg.in/yaml.v3"
)

// optionsSnapshot is a read-only, YAML-friendly view of Options for
// `--dump-config`. It exists only to let an operator inspect the effective
// configuration; it is never parsed back in.
type optionsSnapshot struct {
	Dialect    string `yaml:"dialect"`
	ServerName string `yaml:"server_name"`
	ServerInfo string `yaml:"server_info"`
	Version    string `yaml:"version"`

	ListenHost  string   `yaml:"listen_host"`
	ListenPorts []string `yaml:"listen_ports"`

	MaxLineLength        int `yaml:"max_line_length"`
	MaxNickLength        int `yaml:"max_nick_length"`
	MaxChannelsPerUser   int `yaml:"max_channels_per_user"`
	MaxChannelNameLength int `yaml:"max_channel_name_length"`
	WhowasHistorySize    int `yaml:"whowas_history_size"`

	PingTime string `yaml:"ping_time"`
	DeadTime string `yaml:"dead_time"`

	OperNames []string `yaml:"oper_names"`
	MotdLines int      `yaml:"motd_lines"`
}

func snapshotOptions(o *Options) optionsSnapshot {
	var operNames []string
	for name := range o.Opers {
		operNames = append(operNames, name)
	}
	motdLines := 0
	if o.MOTD != nil {
		motdLines = len(o.MOTD.Lines)
	}

	return optionsSnapshot{
		Dialect:              o.Dialect.String(),
		ServerName:           o.ServerName,
		ServerInfo:           o.ServerInfo,
		Version:              o.Version,
		ListenHost:           o.ListenHost,
		ListenPorts:          o.ListenPorts,
		MaxLineLength:        o.MaxLineLength,
		MaxNickLength:        o.MaxNickLength,
		MaxChannelsPerUser:   o.MaxChannelsPerUser,
		MaxChannelNameLength: o.MaxChannelNameLength,
		WhowasHistorySize:    o.WhowasHistorySize,
		PingTime:             o.PingTime.String(),
		DeadTime:             o.DeadTime.String(),
		OperNames:            operNames,
		MotdLines:            motdLines,
	}
}

func dumpOptionsYAML(o *Options) (string, error) {
	out, err := yaml.Marshal(snapshotOptions(o))
	if err != nil {
		return "", err
	}
	return string(out), nil
}

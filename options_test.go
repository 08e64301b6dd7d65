package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTestConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "ircd.conf")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("writing test config: %s", err)
	}
	return path
}

const minimalConfig = `
server-name = test.server
server-info = a test server
version = 0.0.0-test
dialect = modern
listen-host = 0.0.0.0
listen-ports = 6667
max-line-length = 512
max-nick-length = 30
max-channels-per-user = 20
max-channel-name-length = 50
whowas-history-size = 100
ping-time = 1m
dead-time = 5m
`

func TestNewOptionsLoadsRequiredFields(t *testing.T) {
	path := writeTestConfig(t, minimalConfig)

	opts, err := NewOptions(path)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if opts.Dialect != Modern {
		t.Errorf("Dialect = %v, wanted Modern", opts.Dialect)
	}
	if opts.ServerName != "test.server" {
		t.Errorf("ServerName = %q, wanted test.server", opts.ServerName)
	}
	if len(opts.ListenPorts) != 1 || opts.ListenPorts[0] != "6667" {
		t.Errorf("ListenPorts = %v, wanted [6667]", opts.ListenPorts)
	}
	if opts.MaxNickLength != 30 {
		t.Errorf("MaxNickLength = %d, wanted 30", opts.MaxNickLength)
	}
	if opts.PingTime.String() != "1m0s" {
		t.Errorf("PingTime = %v, wanted 1m0s", opts.PingTime)
	}
}

func TestNewOptionsMissingRequiredKey(t *testing.T) {
	path := writeTestConfig(t, `server-name = test.server`)

	if _, err := NewOptions(path); err == nil {
		t.Errorf("expected an error for a config missing required keys")
	}
}

func TestNewOptionsInvalidDialect(t *testing.T) {
	contents := `
server-name = test.server
server-info = a test server
version = 0.0.0-test
dialect = not-a-real-dialect
listen-host = 0.0.0.0
listen-ports = 6667
max-line-length = 512
max-nick-length = 30
max-channels-per-user = 20
max-channel-name-length = 50
whowas-history-size = 100
ping-time = 1m
dead-time = 5m
`
	path := writeTestConfig(t, contents)

	if _, err := NewOptions(path); err == nil {
		t.Errorf("expected an error for an invalid dialect")
	}
}

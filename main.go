package main

import (
	"flag"
	"os"
)

// args holds the flags accepted on the command line, mirroring the shape of
// horgh-catbox/args.go's own flag.Parse-based entry point.
type args struct {
	configFile string
	debugLog   bool
	dumpConfig bool
}

func parseArgs() (args, error) {
	var a args
	flag.StringVar(&a.configFile, "config", "", "Path to the server's configuration file.")
	flag.BoolVar(&a.debugLog, "debug", false, "Enable debug level logging.")
	flag.BoolVar(&a.dumpConfig, "dump-config", false, "Print the effective configuration as YAML and exit.")
	flag.Parse()

	if a.configFile == "" {
		return a, errNoConfigFile
	}
	return a, nil
}

var errNoConfigFile = flagError("-config is required")

type flagError string

func (e flagError) Error() string { return string(e) }

func main() {
	a, err := parseArgs()
	if err != nil {
		flag.Usage()
		os.Exit(2)
	}

	log := newLogger("ircd", a.debugLog)

	opts, err := NewOptions(a.configFile)
	if err != nil {
		log.Error("unable to load configuration", "error", err)
		os.Exit(1)
	}

	if a.dumpConfig {
		out, err := dumpOptionsYAML(opts)
		if err != nil {
			log.Error("unable to dump configuration", "error", err)
			os.Exit(1)
		}
		os.Stdout.WriteString(out)
		return
	}

	s := NewServer(opts, log)
	if err := s.Run(); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

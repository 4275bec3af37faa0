// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"
	"io"
	"strings"
	"time"

	"github.com/lgbarn/movetx/internal/config"
)

// options holds the parsed command line.
type options struct {
	configPath string
	layouts    layoutList
	logLevel   string
	jsonLogs   bool
	jsonReport bool
	verify     bool
	timeout    time.Duration
	version    bool
	workers    int
	moves      []string

	set map[string]bool
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	o := &options{set: make(map[string]bool)}
	fs := flag.NewFlagSet("movetx", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { usage(fs, stderr) }

	fs.StringVar(&o.configPath, "config", "", "YAML configuration file")
	fs.Var(&o.layouts, "layout", "Starting piece placement; repeat for several boards (default standard)")
	fs.StringVar(&o.logLevel, "log-level", "", "Log level: trace, debug, info, warn, error")
	fs.BoolVar(&o.jsonLogs, "log-json", false, "Write logs as JSON")
	fs.BoolVar(&o.jsonReport, "J", false, "Print the report as JSON")
	fs.BoolVar(&o.verify, "verify", false, "Verify the board after every rollback")
	fs.DurationVar(&o.timeout, "timeout", 0, "Deadline for identity and bounds checks")
	fs.IntVar(&o.workers, "workers", 0, "Boards moved in parallel")
	fs.BoolVar(&o.version, "version", false, "Print version and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) { o.set[f.Name] = true })
	o.moves = fs.Args()
	return o, nil
}

// applyFlags overrides cfg with every flag given on the command line.
func applyFlags(cfg *config.Config, o *options) {
	if o.set["log-level"] {
		cfg.Log.Level = o.logLevel
	}
	if o.set["log-json"] {
		if o.jsonLogs {
			cfg.Log.Format = config.LogFormatJSON
		} else {
			cfg.Log.Format = config.LogFormatText
		}
	}
	if o.set["verify"] {
		cfg.Engine.VerifyRollback = o.verify
	}
	if o.set["timeout"] {
		cfg.Engine.CheckTimeout = o.timeout
	}
	if o.set["workers"] {
		cfg.Worker.Count = o.workers
	}
}

// layoutList collects repeated -layout flags.
type layoutList []string

func (l *layoutList) String() string {
	if l == nil {
		return ""
	}
	return strings.Join(*l, " ")
}

func (l *layoutList) Set(v string) error {
	*l = append(*l, v)
	return nil
}

func usage(fs *flag.FlagSet, w io.Writer) {
	io.WriteString(w, "usage: movetx [flags] move...\n\n")
	io.WriteString(w, "Each move names an origin and a destination square, e.g. d2d3 or d2-d3.\n")
	io.WriteString(w, "Every move is played on every board given with -layout, in order.\n\n")
	fs.PrintDefaults()
}

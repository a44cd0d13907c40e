package main

import "flag"

type config struct {
	Decompress bool
	Input      string // path or "-"; stdin if empty
	Output     string // path or "-"; stdout if empty
	LogFile    string
	Verbose    bool
	Quiet      bool
}

func (c *config) RegisterFlags(flag *flag.FlagSet) {
	// No help here because we put it all in _usage.
	flag.BoolVar(&c.Decompress, "d", false, "")
	flag.StringVar(&c.Output, "o", "", "")
	flag.StringVar(&c.LogFile, "log", "", "")
	flag.BoolVar(&c.Verbose, "verbose", false, "")
	flag.BoolVar(&c.Quiet, "quiet", false, "")
}

// Flags rebuilds a list of arguments from which this configuration may be
// parsed.
func (c *config) Flags() []string {
	var args []string
	if c.Decompress {
		args = append(args, "-d")
	}
	if len(c.Output) > 0 {
		args = append(args, "-o", c.Output)
	}
	if len(c.LogFile) > 0 {
		args = append(args, "-log", c.LogFile)
	}
	if c.Verbose {
		args = append(args, "-verbose")
	}
	if c.Quiet {
		args = append(args, "-quiet")
	}
	if len(c.Input) > 0 {
		args = append(args, c.Input)
	}
	return args
}

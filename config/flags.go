package config

import (
	"flag"
	"fmt"
)

// Flags holds values parsed from command-line flags.
type Flags struct {
	ConfigFilePath string
	LogLevel       string
	LogFilePath    string
	MaxHistory     int

	set *flag.FlagSet
}

// DefineFlags registers the config overrides on fs.
func (f *Flags) DefineFlags(fs *flag.FlagSet) {
	f.set = fs
	fs.StringVar(&f.ConfigFilePath, "config", "", fmt.Sprintf("Path to TOML configuration file (default %s)", DefaultPath()))
	fs.StringVar(&f.LogLevel, "loglevel", "", "Log level (debug, info, warn, error) - Overrides config file")
	fs.StringVar(&f.LogFilePath, "logfile", "", "Path to write log file (use '-' for stderr) - Overrides config file")
	fs.IntVar(&f.MaxHistory, "max-history", 0, "Undo depth, 0 for unlimited - Overrides config file")
}

// Path returns the config file to load: the -config flag or the default.
func (f *Flags) Path() string {
	if f.ConfigFilePath != "" {
		return f.ConfigFilePath
	}
	return DefaultPath()
}

// ApplyOverrides updates cfg with the flags that were actually set.
func (f *Flags) ApplyOverrides(cfg *Config) {
	if f.set == nil {
		return
	}
	f.set.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "loglevel":
			if f.LogLevel != "" {
				cfg.Logger.Level = f.LogLevel
			}
		case "logfile":
			cfg.Logger.FilePath = f.LogFilePath
		case "max-history":
			if f.MaxHistory >= 0 {
				cfg.History.MaxDepth = f.MaxHistory
			}
		}
	})
}

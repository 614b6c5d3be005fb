// Package cli parses command line arguments and environment variables.
package cli

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds the settings parsed from the command line.
type Config struct {
	GamePath    string        // path to the game data directory
	EntryScript string        // entry script name (when a script file is given directly)
	Timeout     time.Duration // execution timeout (0 means unlimited)
	LogLevel    string        // debug, info, warn, error
	Headless    bool          // run without a display
	Skip        bool          // start with skip mode enabled
	ShowHelp    bool          // print usage and exit
}

// ParseArgs parses args into a Config.
// Flags may appear before or after the positional game path.
func ParseArgs(args []string) (*Config, error) {
	reorderedArgs := reorderArgs(args)

	fs := flag.NewFlagSet("tsugi", flag.ContinueOnError)

	config := &Config{}

	var timeoutSec int
	fs.IntVar(&timeoutSec, "timeout", 0, "terminate after this many seconds")
	fs.IntVar(&timeoutSec, "t", 0, "terminate after this many seconds (shorthand)")
	fs.StringVar(&config.LogLevel, "log-level", "info", "log level (debug, info, warn, error)")
	fs.StringVar(&config.LogLevel, "l", "info", "log level (shorthand)")
	fs.BoolVar(&config.Headless, "headless", false, "run without a display")
	fs.BoolVar(&config.Skip, "skip", false, "start with skip mode enabled")
	fs.BoolVar(&config.ShowHelp, "help", false, "show help")
	fs.BoolVar(&config.ShowHelp, "h", false, "show help (shorthand)")

	if err := fs.Parse(reorderedArgs); err != nil {
		return nil, err
	}

	// Environment variables fill in anything the flags left at defaults.
	if !config.Headless {
		if headlessEnv := os.Getenv("HEADLESS"); headlessEnv != "" {
			config.Headless = headlessEnv == "1" || strings.ToLower(headlessEnv) == "true"
		}
	}

	if timeoutSec == 0 {
		if timeoutEnv := os.Getenv("TIMEOUT"); timeoutEnv != "" {
			if t, err := strconv.Atoi(timeoutEnv); err == nil && t > 0 {
				timeoutSec = t
			}
		}
	}

	if config.LogLevel == "info" {
		if logLevelEnv := os.Getenv("LOG_LEVEL"); logLevelEnv != "" {
			config.LogLevel = strings.ToLower(logLevelEnv)
		}
	}

	if timeoutSec < 0 {
		return nil, fmt.Errorf("timeout must be non-negative, got %d", timeoutSec)
	}
	config.Timeout = time.Duration(timeoutSec) * time.Second

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[config.LogLevel] {
		return nil, fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", config.LogLevel)
	}

	// Positional argument: game directory, or a script file inside one.
	if fs.NArg() > 0 {
		path := fs.Arg(0)

		if strings.HasSuffix(strings.ToLower(path), ".txt") {
			config.GamePath = filepath.Dir(filepath.Dir(path))
			config.EntryScript = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		} else {
			config.GamePath = path
		}
	}

	return config, nil
}

// reorderArgs moves flags ahead of positional arguments so the flag package
// does not stop parsing at the first positional.
func reorderArgs(args []string) []string {
	var flags []string
	var positional []string

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if len(arg) > 0 && arg[0] == '-' {
			flags = append(flags, arg)

			// Value-taking flags consume the following argument too.
			if i+1 < len(args) && len(args[i+1]) > 0 && args[i+1][0] != '-' {
				if !isBoolFlag(arg) {
					i++
					flags = append(flags, args[i])
				}
			}
		} else {
			positional = append(positional, arg)
		}
	}

	return append(flags, positional...)
}

func isBoolFlag(arg string) bool {
	switch arg {
	case "-h", "--help", "-help", "--headless", "-headless", "--skip", "-skip":
		return true
	}
	return false
}

// PrintHelp prints the usage message.
func PrintHelp() {
	fmt.Fprintf(os.Stdout, `tsugi - visual novel engine

Usage:
  tsugi [options] [game-path]

Arguments:
  game-path     Path to the game data directory (omit to use the embedded game).
                A script file inside a game's scripts directory may be given
                instead to start from that script.

Options:
  -t, --timeout <seconds>     Terminate after this many seconds (default: unlimited)
  -l, --log-level <level>     Log level: debug, info, warn, error (default: info)
  --headless                  Run without a display
  --skip                      Start with skip mode enabled
  -h, --help                  Show this help

Environment Variables:
  HEADLESS=1                  Enable headless mode
  TIMEOUT=<seconds>           Execution timeout in seconds
  LOG_LEVEL=<level>           Log level

Examples:
  tsugi /path/to/game                      Run a game directory
  tsugi /path/to/game/scripts/chapter2.txt Start from a specific script
  tsugi --timeout 10                       Exit automatically after 10 seconds
  tsugi --headless --skip                  Fast non-interactive playthrough
`)
}

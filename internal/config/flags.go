package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-f string   path of the SQLite task store
//	-s string   HMAC secret for session tokens
//	-e string   session token cache file
//	-t int      session validity, hours
//	-m string   fallback date format (Go reference layout)
//
// Only the flags listed here are parsed; subcommand flags pass through
// untouched thanks to flagx.FilterArgs.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-f", "-s", "-e", "-t", "-m"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.DatabasePath, "f", config.DatabasePath, "path of the task store database")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key for session tokens")
	fs.StringVar(&config.SessionFile, "e", config.SessionFile, "session token cache file")
	fs.StringVar(&config.DateFormat, "m", config.DateFormat, "fallback date display format")

	sessionValidity := fs.Int("t", int(config.SessionValidityDuration.Hours()), "session validity (in hours)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.SessionValidityDuration = time.Duration(*sessionValidity) * time.Hour
}

package config

import (
	"flag"
	"os"
)

// parses CLI flags for the terminal chat client
func ParseTUIFlags(args []string) Flags {
	fs := flag.NewFlagSet("tui", flag.ExitOnError)
	serverURL := fs.String("server", getEnv("RMP_SERVER_URL", "http://localhost:8080"), "chat server base URL")
	theme := fs.String("theme", "dark", "initial theme (dark or light)")
	fs.Parse(args) //nolint:errcheck,gosec // G104: ExitOnError flag set handles errors

	return Flags{ServerURL: *serverURL, Theme: *theme}
}

// parses the process arguments for the terminal chat client
func ParseOSFlags() Flags {
	return ParseTUIFlags(os.Args[1:])
}

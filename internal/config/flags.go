package config

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// newFlagCommand creates a cobra command with all daemon flags configured.
func newFlagCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "shocklink",
		Short:         "Local OpenShock death-trigger daemon for game mods",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	cmd.SetOut(os.Stdout)
	configureFlags(cmd.Flags())
	return cmd
}

// configureFlags sets up all CLI flags on the provided flag set.
func configureFlags(flags *pflag.FlagSet) {
	// Bridge and settings flags
	flags.StringP("listen", "l", "127.0.0.1:8437", "Address for the game-mod WebSocket bridge")
	flags.StringP("settings-dir", "s", ".", "Directory holding settings.json and readme.txt")

	// Dispatch flags
	flags.Duration("timeout", 30*time.Second, "Per-request timeout for OpenShock control calls")
	flags.Duration("cooldown", 0, "Minimum interval between triggered shocks (0 disables)")

	// Logging flags
	flags.String("log-level", "info", "Log level (trace, debug, info, warn, error)")
	flags.String("log-file", "", "Also write rotated logs to this file")

	// Tracing flags
	flags.String("trace-endpoint", "", "OTLP endpoint for trace export (empty disables tracing)")
	flags.String("trace-protocol", "grpc", "OTLP protocol: 'grpc' or 'http'")
	flags.String("trace-service", "", "Service name reported on trace spans")
	flags.Bool("trace-insecure", false, "Disable TLS for OTLP export")
	flags.Float64("trace-sample-rate", 1.0, "Trace sampling rate between 0.0 and 1.0")

	flags.String("config", "", "Path to daemon configuration file (JSON or YAML)")
}

func displayHelp(cmd *cobra.Command) {
	_ = cmd.Usage()
}

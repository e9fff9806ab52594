package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ErrHelpRequested is returned when the user asks for usage via --help.
var ErrHelpRequested = errors.New("help requested")

// Options configure the daemon itself, as opposed to the per-trigger
// OpenShock settings in settings.json.
type Options struct {
	ListenAddr  string
	SettingsDir string
	Timeout     time.Duration
	Cooldown    time.Duration
	LogLevel    string
	LogFile     string
	ConfigFile  string
	Tracing     TracingConfig
}

// TracingConfig controls the optional OTLP trace export. Tracing stays off
// until an endpoint is configured.
type TracingConfig struct {
	Endpoint    string
	Protocol    string
	ServiceName string
	Insecure    bool
	SampleRate  float64
}

// Enabled reports whether trace spans should be exported.
func (t TracingConfig) Enabled() bool {
	return strings.TrimSpace(t.Endpoint) != ""
}

// ValidationError aggregates every option problem found in one pass.
type ValidationError struct {
	issues []string
}

func (e ValidationError) Error() string {
	if len(e.issues) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(e.issues, "; "))
}

func (e ValidationError) Issues() []string {
	return append([]string(nil), e.issues...)
}

func (o Options) Validate() error {
	var issues []string

	if strings.TrimSpace(o.ListenAddr) == "" {
		issues = append(issues, "listen address is required")
	}
	if strings.TrimSpace(o.SettingsDir) == "" {
		issues = append(issues, "settings directory is required")
	}
	if o.Timeout < 0 {
		issues = append(issues, "timeout must be >= 0")
	}
	if o.Cooldown < 0 {
		issues = append(issues, "cooldown must be >= 0")
	}
	if o.Tracing.SampleRate < 0 || o.Tracing.SampleRate > 1 {
		issues = append(issues, "trace sample rate must be between 0.0 and 1.0")
	}
	switch strings.ToLower(strings.TrimSpace(o.Tracing.Protocol)) {
	case "", "grpc", "http":
	default:
		issues = append(issues, fmt.Sprintf("trace protocol %q is not supported", o.Tracing.Protocol))
	}

	if len(issues) > 0 {
		return ValidationError{issues: issues}
	}
	return nil
}

// LoadOptions parses command-line arguments and an optional config file
// (JSON or YAML, via --config) into daemon Options. Explicitly set flags win
// over file values; file values win over flag defaults.
func LoadOptions(args []string) (*Options, error) {
	cmd := newFlagCommand()
	if err := cmd.Flags().Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			displayHelp(cmd)
			return nil, ErrHelpRequested
		}
		return nil, err
	}

	flags := cmd.Flags()
	if helpFlag := flags.Lookup("help"); helpFlag != nil {
		if wantsHelp, err := strconv.ParseBool(helpFlag.Value.String()); err == nil && wantsHelp {
			displayHelp(cmd)
			return nil, ErrHelpRequested
		}
	}

	configPath := flags.Lookup("config").Value.String()

	v := viper.New()
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}
	if err := v.BindPFlags(flags); err != nil {
		return nil, err
	}

	opts := &Options{
		ListenAddr:  strings.TrimSpace(v.GetString("listen")),
		SettingsDir: strings.TrimSpace(v.GetString("settings-dir")),
		Timeout:     v.GetDuration("timeout"),
		Cooldown:    v.GetDuration("cooldown"),
		LogLevel:    strings.TrimSpace(v.GetString("log-level")),
		LogFile:     strings.TrimSpace(v.GetString("log-file")),
		ConfigFile:  configPath,
		Tracing: TracingConfig{
			Endpoint:    strings.TrimSpace(v.GetString("trace-endpoint")),
			Protocol:    strings.ToLower(strings.TrimSpace(v.GetString("trace-protocol"))),
			ServiceName: strings.TrimSpace(v.GetString("trace-service")),
			Insecure:    v.GetBool("trace-insecure"),
			SampleRate:  v.GetFloat64("trace-sample-rate"),
		},
	}

	return opts, nil
}

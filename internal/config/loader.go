package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"shocklink/internal/docs"
)

// SettingsFileName is the OpenShock configuration file read on every trigger.
const SettingsFileName = "settings.json"

// Loader reads and validates the OpenShock settings file from a fixed
// directory. A fresh Settings value is produced on every Load call; nothing
// is cached between triggers.
type Loader struct {
	dir string
	log zerolog.Logger
}

func NewLoader(dir string, log zerolog.Logger) *Loader {
	return &Loader{dir: dir, log: log}
}

// Dir returns the settings directory the loader is bound to.
func (l *Loader) Dir() string { return l.dir }

// Load writes the schema documentation file, then reads, defaults, and
// validates settings.json. Every failure comes back as *Error; no partial
// configuration ever reaches the caller.
func (l *Loader) Load() (*Settings, error) {
	if err := docs.Write(l.dir); err != nil {
		l.log.Warn().Err(err).Str("dir", l.dir).Msg("could not write documentation file")
	}

	data, err := os.ReadFile(filepath.Join(l.dir, SettingsFileName))
	if err != nil {
		l.log.Error().Err(err).Str("dir", l.dir).Msg("settings file could not be opened")
		return nil, newError(KindMissing, err, "open %s", SettingsFileName)
	}

	var raw rawSettings
	if err := json.Unmarshal(data, &raw); err != nil {
		l.log.Error().Err(err).Msg("settings file is not valid JSON")
		return nil, newError(KindMalformed, err, "parse %s", SettingsFileName)
	}

	s := &Settings{
		ShockerID:      strings.TrimSpace(raw.ShockerID),
		Token:          strings.TrimSpace(raw.Token),
		CustomName:     strings.TrimSpace(raw.CustomName),
		MinDuration:    DefaultMinDuration,
		MaxDuration:    DefaultMaxDuration,
		MinIntensity:   DefaultMinIntensity,
		MaxIntensity:   DefaultMaxIntensity,
		EndpointDomain: strings.TrimSpace(raw.EndpointDomain),
	}
	if raw.MinDuration != nil {
		s.MinDuration = *raw.MinDuration
	}
	if raw.MaxDuration != nil {
		s.MaxDuration = *raw.MaxDuration
	}
	if raw.MinIntensity != nil {
		s.MinIntensity = *raw.MinIntensity
	}
	if raw.MaxIntensity != nil {
		s.MaxIntensity = *raw.MaxIntensity
	}
	if s.EndpointDomain == "" {
		s.EndpointDomain = DefaultEndpointDomain
	}

	if s.MinDuration < MinDurationFloor || s.MaxDuration > MaxDurationCeiling || s.MinDuration > s.MaxDuration {
		l.log.Error().
			Int("minDuration", s.MinDuration).
			Int("maxDuration", s.MaxDuration).
			Msg("invalid duration range in settings")
		return nil, newError(KindInvalidRange, nil,
			"duration bounds %d..%d must satisfy %d <= min <= max <= %d",
			s.MinDuration, s.MaxDuration, MinDurationFloor, MaxDurationCeiling)
	}

	if s.MinIntensity < MinIntensityFloor || s.MaxIntensity > MaxIntensityCap || s.MinIntensity > s.MaxIntensity {
		l.log.Error().
			Int("minIntensity", s.MinIntensity).
			Int("maxIntensity", s.MaxIntensity).
			Msg("invalid intensity range in settings")
		return nil, newError(KindInvalidRange, nil,
			"intensity bounds %d..%d must satisfy %d <= min <= max <= %d",
			s.MinIntensity, s.MaxIntensity, MinIntensityFloor, MaxIntensityCap)
	}

	// Required strings are checked after the numeric ranges, so a file with
	// both problems reports the range violation first.
	var missing []string
	if s.ShockerID == "" {
		missing = append(missing, "shockerID")
	}
	if s.Token == "" {
		missing = append(missing, "OpenShockToken")
	}
	if s.CustomName == "" {
		missing = append(missing, "customName")
	}
	if len(missing) > 0 {
		l.log.Error().Strs("fields", missing).Msg("required settings fields are absent or empty")
		return nil, newError(KindMissingFields, nil, "required fields absent or empty: %s", strings.Join(missing, ", "))
	}

	// OpenShock shocker IDs are UUIDs; an unparsable value is almost
	// certainly a paste error, but the API gets the final say.
	if _, err := uuid.Parse(s.ShockerID); err != nil {
		l.log.Warn().Str("shockerID", s.ShockerID).Msg("shockerID is not a UUID")
	}

	return s, nil
}

package config

// Defaults applied when optional settings.json fields are absent.
const (
	DefaultMinDuration    = 300
	DefaultMaxDuration    = 30000
	DefaultMinIntensity   = 1
	DefaultMaxIntensity   = 100
	DefaultEndpointDomain = "api.openshock.app"
)

// Hard bounds enforced on every configuration regardless of defaults.
const (
	MinDurationFloor   = 300
	MaxDurationCeiling = 30000
	MinIntensityFloor  = 1
	MaxIntensityCap    = 100
)

// Settings is a fully validated OpenShock trigger configuration. Instances
// only come out of Loader.Load and satisfy every range and required-field
// rule; durations are milliseconds.
type Settings struct {
	ShockerID      string
	Token          string
	CustomName     string
	MinDuration    int
	MaxDuration    int
	MinIntensity   int
	MaxIntensity   int
	EndpointDomain string
}

// rawSettings mirrors the settings.json document before defaulting and
// validation. Pointer fields distinguish absent values from explicit zeros.
type rawSettings struct {
	ShockerID      string `json:"shockerID"`
	Token          string `json:"OpenShockToken"`
	CustomName     string `json:"customName"`
	MinDuration    *int   `json:"minDuration"`
	MaxDuration    *int   `json:"maxDuration"`
	MinIntensity   *int   `json:"minIntensity"`
	MaxIntensity   *int   `json:"maxIntensity"`
	EndpointDomain string `json:"endpointDomain"`
}

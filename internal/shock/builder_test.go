package shock_test

import (
	"encoding/json"
	"testing"

	"shocklink/internal/config"
	"shocklink/internal/shock"
)

// lowSource always draws the lowest value of the interval.
type lowSource struct{}

func (lowSource) Intn(n int) int { return 0 }

// highSource always draws the highest value of the interval.
type highSource struct{}

func (highSource) Intn(n int) int { return n - 1 }

func validSettings() *config.Settings {
	return &config.Settings{
		ShockerID:      "7a3e1c5b-fb7c-4b1c-8b6e-6a2e1f8b7d92",
		Token:          "token-value",
		CustomName:     "ShockControl",
		MinDuration:    500,
		MaxDuration:    10000,
		MinIntensity:   10,
		MaxIntensity:   90,
		EndpointDomain: "api.openshock.app",
	}
}

func TestBuildDrawsWithinBounds(t *testing.T) {
	cases := []struct {
		name                       string
		minDur, maxDur             int
		minIntensity, maxIntensity int
	}{
		{"representative", 500, 10000, 10, 90},
		{"full range", 300, 30000, 1, 100},
		{"degenerate", 700, 700, 42, 42},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := validSettings()
			s.MinDuration, s.MaxDuration = tc.minDur, tc.maxDur
			s.MinIntensity, s.MaxIntensity = tc.minIntensity, tc.maxIntensity

			builder := shock.NewBuilder(nil)
			for i := 0; i < 10000; i++ {
				req, err := builder.Build(s)
				if err != nil {
					t.Fatalf("Build() error = %v", err)
				}
				if req.Intensity < tc.minIntensity || req.Intensity > tc.maxIntensity {
					t.Fatalf("Intensity = %d, want within [%d, %d]", req.Intensity, tc.minIntensity, tc.maxIntensity)
				}
				if req.DurationMs < tc.minDur || req.DurationMs > tc.maxDur {
					t.Fatalf("DurationMs = %d, want within [%d, %d]", req.DurationMs, tc.minDur, tc.maxDur)
				}
			}
		})
	}
}

func TestBuildBoundaryDraws(t *testing.T) {
	s := validSettings()

	low, err := shock.NewBuilder(lowSource{}).Build(s)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if low.Intensity != s.MinIntensity || low.DurationMs != s.MinDuration {
		t.Errorf("low draw = (%d, %d), want (%d, %d)", low.Intensity, low.DurationMs, s.MinIntensity, s.MinDuration)
	}

	high, err := shock.NewBuilder(highSource{}).Build(s)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if high.Intensity != s.MaxIntensity || high.DurationMs != s.MaxDuration {
		t.Errorf("high draw = (%d, %d), want (%d, %d)", high.Intensity, high.DurationMs, s.MaxIntensity, s.MaxDuration)
	}
}

func TestBuildBodyShape(t *testing.T) {
	s := validSettings()
	req, err := shock.NewBuilder(lowSource{}).Build(s)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	var body struct {
		Shocks []struct {
			ID        string `json:"id"`
			Type      string `json:"type"`
			Intensity int    `json:"intensity"`
			Duration  int    `json:"duration"`
			Exclusive bool   `json:"exclusive"`
		} `json:"shocks"`
		CustomName string `json:"customName"`
	}
	if err := json.Unmarshal(req.Body, &body); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if len(body.Shocks) != 1 {
		t.Fatalf("len(Shocks) = %d, want 1", len(body.Shocks))
	}
	entry := body.Shocks[0]
	if entry.ID != s.ShockerID {
		t.Errorf("shock id = %q, want %q", entry.ID, s.ShockerID)
	}
	if entry.Type != "Shock" {
		t.Errorf("shock type = %q, want Shock", entry.Type)
	}
	if !entry.Exclusive {
		t.Errorf("exclusive = false, want true")
	}
	if entry.Intensity != s.MinIntensity {
		t.Errorf("intensity = %d, want %d", entry.Intensity, s.MinIntensity)
	}
	if entry.Duration != s.MinDuration {
		t.Errorf("duration = %d, want %d", entry.Duration, s.MinDuration)
	}
	if body.CustomName != s.CustomName {
		t.Errorf("customName = %q, want %q", body.CustomName, s.CustomName)
	}
}

func TestBuildURLAndHeaders(t *testing.T) {
	s := validSettings()
	s.EndpointDomain = "api.customdomain.com"

	req, err := shock.NewBuilder(nil).Build(s)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if req.URL != "https://api.customdomain.com/2/shockers/control" {
		t.Errorf("URL = %q, want https://api.customdomain.com/2/shockers/control", req.URL)
	}
	if got := req.Headers.Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", got)
	}
	if got := req.Headers.Get("accept"); got != "application/json" {
		t.Errorf("accept = %q, want application/json", got)
	}
	if got := req.Headers.Get(shock.TokenHeader); got != s.Token {
		t.Errorf("%s = %q, want %q", shock.TokenHeader, got, s.Token)
	}
}
